package main

import (
	"github.com/miekg/dns"

	"github.com/markdingo/zeronsd/pregen"
)

var commonCHAOSPrefix = programName + " " + pregen.Version + " " + pregen.ReleaseDate

// Called if Qclass = CHAOS. Every name gets the same details as there is no agreed
// syntax between implementations.
func (t *server) serveCHAOS(wtr dns.ResponseWriter, req *request) {
	if req.question.Qtype != dns.TypeTXT && req.question.Qtype != dns.TypeANY {
		t.serveRefused(wtr, req)
		req.stats.gen.chaosRefused++
		return
	}

	var response string
	switch req.qName {
	case "version.bind.", "version.server.", "authors.bind.":
		response = commonCHAOSPrefix + " " + t.cfg.projectURL
	case "hostname.bind.", "id.server.":
		response = t.cfg.nsid
		if len(response) == 0 {
			response = programName
		}
	default:
		t.serveRefused(wtr, req)
		req.stats.gen.chaosRefused++
		return
	}
	req.response.SetReply(req.query)
	txt := new(dns.TXT)
	txt.Hdr.Name = req.question.Name
	txt.Hdr.Class = dns.ClassCHAOS
	txt.Hdr.Rrtype = dns.TypeTXT
	txt.Hdr.Ttl = t.cfg.TTLAsSecs
	txt.Txt = append(txt.Txt, response)

	req.response.Answer = append(req.response.Answer, txt)
	t.writeMsg(wtr, req)
}
