package main

import (
	"github.com/miekg/dns"
)

// customMsgAcceptFunc defers to dns.DefaultMsgAcceptFunc for everything except the
// question count. A query with no question is allowed through so cookie-only queries
// (RFC7873 Section 5.4) reach ServeDNS, which is responsible for all other validation.
func (t *server) customMsgAcceptFunc(dh dns.Header) dns.MsgAcceptAction {
	if dh.Qdcount == 0 {
		dh.Qdcount = 1
	}

	action := dns.DefaultMsgAcceptFunc(dh)
	if action != dns.MsgAccept {
		t.addAcceptError()
	}

	return action
}
