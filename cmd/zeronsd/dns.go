package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/markdingo/rrl"
	"github.com/miekg/dns"

	"github.com/markdingo/zeronsd/dnsutil"
	"github.com/markdingo/zeronsd/log"
)

// Called from miekg - handles all DNS queries.
func (t *server) ServeDNS(wtr dns.ResponseWriter, query *dns.Msg) {
	req := newRequest(query, wtr.RemoteAddr(), t.network)
	req.stats.gen.queries++
	if t.cfg.logQueries.Load() {
		defer req.log()
	}
	defer t.addStats(&req.stats)

	// As of RFC7873 a query with no questions and a COOKIE OPT is valid.
	if len(req.query.Question) > 0 {
		req.question = req.query.Question[0]
		req.qName = strings.ToLower(req.question.Name)
		req.logQName = req.qName
		if log.IfDebug() {
			log.Debug("Query ", dnsutil.PrettyQuestion(req.question), " from ", req.src)
		}
	}

	req.opt = req.query.IsEdns0()

	if len(t.cfg.nsid) > 0 && req.findNSID() != nil {
		req.nsidOut = t.cfg.nsidAsHex
		req.stats.gen.nsid++
	}

	// Cookies are exchanged and checked but a mismatch only results in a note and a
	// fresh cookie.
	req.findCookies()
	if req.cookiesPresent {
		req.stats.gen.cookie++
		if !req.cookieWellFormed {
			req.addNote("Malformed cookie")
			req.stats.gen.malformedCookie++
			t.serveFormErr(wtr, req)
			return
		}
		if !req.validateOrGenerateCookie(t.cookieSecrets, time.Now().Unix()) {
			if len(req.serverCookie) > 0 {
				req.addNote("Server cookie mismatch")
				req.stats.gen.wrongCookie++
			}
		}
	}

	if len(req.clientCookie) > 0 && len(req.query.Question) == 0 {
		req.addNote("Cookie-only query")
		req.stats.gen.cookieOnly++
		req.response.SetReply(query)
		t.writeMsg(wtr, req)
		return
	}

	// miekg performs most of these checks prior to calling ServeDNS(), but precisely
	// what it checks is undocumented.
	if len(req.query.Question) != 1 ||
		len(req.query.Answer) != 0 ||
		len(req.query.Ns) != 0 ||
		req.query.Opcode != dns.OpcodeQuery {
		req.addNote("Malformed Query")
		req.stats.gen.badRequest++
		t.serveFormErr(wtr, req)
		return
	}

	if t.network == dnsutil.UDPNetwork {
		req.maxSize = dns.MinMsgSize
		if req.opt != nil {
			req.maxSize = dnsutil.MaxUDPSize
			mz := req.opt.UDPSize()
			if mz > dns.MinMsgSize && mz <= dnsutil.MaxUDPSize {
				req.maxSize = mz
			}
		}
	}

	req.snap = t.authority.Current() // Used for the rest of this query

	// Dispatch order:
	//
	// 1. CHAOS
	// 2. In zone or reverse
	// 3. Not ClassINET
	// 4. Apex SOA, NS and ANY
	// 5. Snapshot database

	// Dispatch 1. CHAOS
	if req.question.Qclass == dns.ClassCHAOS {
		req.stats.gen.chaos++
		if t.cfg.chaosFlag {
			t.serveCHAOS(wtr, req)
		} else {
			req.stats.gen.chaosRefused++
			t.serveRefused(wtr, req)
		}
		return
	}

	// Dispatch 2. In zone or reverse
	inZone := req.snap.InZone(req.qName)
	if !inZone && !req.snap.InReverse(req.qName) {
		req.addNote("out of zone")
		req.stats.gen.noAuthority++
		t.serveRefused(wtr, req)
		return
	}

	// Dispatch 3. Not ClassINET
	if req.question.Qclass != dns.ClassINET {
		req.addNote(fmt.Sprintf("Wrong class %s", dnsutil.ClassToString(req.question.Qclass)))
		req.stats.gen.wrongClass++
		t.serveRefused(wtr, req)
		return
	}

	// Dispatch 4. Apex
	if inZone && req.snap.IsApex(req.qName) {
		switch req.question.Qtype {
		case dns.TypeANY:
			req.response.SetReply(req.query)
			req.response.Answer = append(req.response.Answer, dns.Copy(req.snap.SOA))
			req.response.Answer = append(req.response.Answer, t.apexNS(req)...)
			req.stats.gen.authZoneANY++
			t.writeMsg(wtr, req)
			return

		case dns.TypeSOA:
			req.response.SetReply(req.query)
			req.response.Answer = append(req.response.Answer, dns.Copy(req.snap.SOA))
			req.response.Ns = append(req.response.Ns, t.apexNS(req)...)
			req.stats.gen.authZoneSOA++
			t.writeMsg(wtr, req)
			return

		case dns.TypeNS:
			req.response.SetReply(req.query)
			req.response.Answer = append(req.response.Answer, t.apexNS(req)...)
			req.stats.gen.authZoneNS++
			t.writeMsg(wtr, req)
			return
		}
	}

	// Dispatch 5. Snapshot database
	qts := req.stats.qTypeStats(req.question.Qtype)
	if qts != nil {
		qts.queries++
	}
	var ar []dns.RR
	var nx bool
	if req.question.Qtype == dns.TypeANY {
		ar, nx = req.snap.LookupAll(req.question.Qclass, req.qName)
	} else {
		ar, nx = req.snap.Lookup(req.question.Qclass, req.question.Qtype, req.qName)
	}

	switch {
	case len(ar) > 0:
		req.stats.gen.dbDone++
		if qts != nil {
			qts.good++
			qts.answers += len(ar)
		}
		req.response.SetReply(req.query)
		req.response.Answer = append(req.response.Answer, ar...)
		t.writeMsg(wtr, req)

	case nx:
		req.stats.gen.dbNXDomain++
		if qts != nil {
			qts.nxDomain++
		}
		t.serveNXDomain(wtr, req)

	default:
		req.stats.gen.dbNoError++
		if qts != nil {
			qts.noData++
		}
		t.serveNoError(wtr, req)
	}
}

func (t *server) apexNS(req *request) (ar []dns.RR) {
	for _, ns := range req.snap.NS {
		ar = append(ar, dns.Copy(ns))
	}

	return
}

// addNegativeSOA adds the SOA to the authority section of negative responses for names in
// the forward zone. Reverse names have no zone of their own so get no SOA.
func (t *server) addNegativeSOA(req *request) {
	if req.snap != nil && req.snap.InZone(req.qName) {
		req.response.Ns = append(req.response.Ns, dns.Copy(req.snap.SOA))
	}
}

func (t *server) serveNoError(wtr dns.ResponseWriter, req *request) {
	req.response.SetRcode(req.query, dns.RcodeSuccess)
	t.addNegativeSOA(req)
	t.writeMsg(wtr, req)
}

func (t *server) serveFormErr(wtr dns.ResponseWriter, req *request) {
	req.response.SetRcodeFormatError(req.query)
	t.writeMsg(wtr, req)
}

func (t *server) serveNXDomain(wtr dns.ResponseWriter, req *request) {
	req.response.SetRcode(req.query, dns.RcodeNameError)
	t.addNegativeSOA(req)
	t.writeMsg(wtr, req)
}

func (t *server) serveRefused(wtr dns.ResponseWriter, req *request) {
	req.response.SetRcode(req.query, dns.RcodeRefused)
	t.writeMsg(wtr, req)
}

// newRRLTuple categorizes the response for rrl. Negative responses are accounted against
// the zone rather than the query name so random sub-domain floods share one bucket.
func newRRLTuple(req *request) *rrl.ResponseTuple {
	tuple := &rrl.ResponseTuple{
		Class:       req.question.Qclass,
		Type:        req.question.Qtype,
		SalientName: req.qName,
	}

	switch {
	case req.response.Rcode == dns.RcodeNameError:
		tuple.AllowanceCategory = rrl.AllowanceNXDomain
	case req.response.Rcode != dns.RcodeSuccess:
		tuple.AllowanceCategory = rrl.AllowanceError
	case len(req.response.Answer) > 0:
		tuple.AllowanceCategory = rrl.AllowanceAnswer
	default:
		tuple.AllowanceCategory = rrl.AllowanceNoData
	}

	if tuple.AllowanceCategory != rrl.AllowanceAnswer && req.snap != nil &&
		req.snap.InZone(req.qName) {
		tuple.SalientName = req.snap.Domain
	}

	return tuple
}

// writeMsg finalizes the response with all the common processing then calls the response
// writer. Any error is recorded in req.logError. If rrl is active it may replace the
// response with a truncated one or suppress it altogether.
func (t *server) writeMsg(wtr dns.ResponseWriter, req *request) {
	if t.rrlHandler != nil {
		req.rrlAction, _, _ = t.rrlHandler.Debit(wtr.RemoteAddr(), newRRLTuple(req))
		switch req.rrlAction {
		case rrl.Drop:
			req.stats.gen.rrlDrop++
			if !t.cfg.rrlDryRun {
				return
			}
		case rrl.Slip:
			req.stats.gen.rrlSlip++
			if !t.cfg.rrlDryRun {
				slip := new(dns.Msg)
				slip.SetReply(req.query)
				slip.Truncated = true
				req.response = slip
			}
		}
	}

	opt := req.genOpt()
	if opt != nil {
		req.response.Extra = append(req.response.Extra, opt)
	}

	req.response.Authoritative = true

	if req.maxSize > 0 {
		req.response.Truncate(int(req.maxSize)) // Removes excess RRs and sets TC=1
	}

	req.msgSize = req.response.Len()
	req.compressed = req.response.Compress
	req.truncated = req.response.MsgHdr.Truncated

	err := wtr.WriteMsg(req.response)
	if err != nil {
		req.logError = fmt.Errorf("WriteMsg failed: %w", dnsutil.ShortenNetError(err))
	}
}
