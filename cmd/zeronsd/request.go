package main

import (
	"fmt"
	"net"
	"strings"

	"github.com/markdingo/rrl"
	"github.com/miekg/dns"

	"github.com/markdingo/zeronsd/dnsutil"
	"github.com/markdingo/zeronsd/log"
	"github.com/markdingo/zeronsd/zone"
)

// Information about a query and its response is accumulated in a request as it is
// dispatched rather than passed around as a fleet of function parameters. It also carries
// the values reported by the query logger. A request is only ever accessed by a single
// go-routine and only lives for the life of a DNS query.
type request struct {
	snap     *zone.Snapshot // Current as of the start of the query
	query    *dns.Msg
	response *dns.Msg
	question dns.Question
	qName    string // Lower-cased question name

	opt     *dns.OPT
	nsidOut string // hex

	cookiesPresent   bool
	cookieWellFormed bool
	cookieValid      bool
	clientCookie     []byte
	serverCookie     []byte
	cookieOut        []byte // Client + server cookie to return

	src        net.Addr // From here on down is log data
	network    string
	logQName   string
	logNote    string
	logError   error
	msgSize    int
	maxSize    uint16 // EDNS0 or zero which will cause dns.WriteMsg() to default
	compressed bool
	truncated  bool
	rrlAction  rrl.Action

	// Stats are accumulated per-request and added to the server totals at the end so
	// the query runs lock free.
	stats serverStats
}

func newRequest(query *dns.Msg, src net.Addr, network string) *request {
	return &request{
		query:    query,
		response: new(dns.Msg),
		src:      src,
		network:  network,
	}
}

func (t *request) addNote(note string) {
	if len(t.logNote) > 0 {
		t.logNote += ":"
	}
	t.logNote += note
}

// rrlLetter returns a single letter for actions which alter the response.
func (t *request) rrlLetter() string {
	switch t.rrlAction {
	case rrl.Drop:
		return "D"
	case rrl.Slip:
		return "S"
	}

	return ""
}

func (t *request) log() {
	var note []string
	if len(t.logNote) > 0 {
		note = append(note, t.logNote)
	}
	if t.logError != nil {
		note = append(note, t.logError.Error())
	}
	var noteStr string
	if len(note) > 0 {
		noteStr = " " + strings.Join(note, ":")
	}
	rcodeStr := "ok"
	if t.response.MsgHdr.Rcode != dns.RcodeSuccess {
		rcodeStr = dnsutil.RcodeToString(t.response.MsgHdr.Rcode)
	}
	if l := t.rrlLetter(); len(l) > 0 {
		rcodeStr += "/" + l
	}

	hFlags := make([]byte, 0, 10)
	if t.network == dnsutil.TCPNetwork {
		hFlags = append(hFlags, 'T')
	} else {
		hFlags = append(hFlags, 'U') // Ensures h= doesn't dangle
	}
	if len(t.clientCookie) > 0 {
		hFlags = append(hFlags, 'C')
	}
	if len(t.serverCookie) > 0 {
		hFlags = append(hFlags, 'S')
		if t.cookieValid {
			hFlags = append(hFlags, 'v')
		}
	}
	if t.compressed {
		hFlags = append(hFlags, 'z')
	}
	if len(t.nsidOut) > 0 {
		hFlags = append(hFlags, 'n')
	}
	if t.truncated {
		hFlags = append(hFlags, 't')
	}

	var src string
	if t.src != nil {
		src = t.src.String()
	}

	fmt.Fprintf(log.Out(), "ru=%s q=%s/%s s=%s id=%d h=%s sz=%d/%d C=%d/%d/%d%s\n",
		rcodeStr, dnsutil.TypeToString(t.question.Qtype), t.logQName,
		src,
		t.response.MsgHdr.Id, string(hFlags), t.msgSize, t.maxSize,
		len(t.response.Answer), len(t.response.Ns), len(t.response.Extra), noteStr)
}
