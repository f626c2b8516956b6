package dnsutil

import (
	"fmt"
	"strings"

	"github.com/miekg/dns"
)

// PrettyRR returns a compact one-line rendering of the address-ish RRs zeronsd deals with,
// e.g. "zt-abc.domain. A 60 10.0.0.1". The dig-style String() is used for anything else.
func PrettyRR(rr dns.RR) string {
	h := rr.Header()
	var data string
	switch rrt := rr.(type) {
	case *dns.A:
		data = rrt.A.String()
	case *dns.AAAA:
		data = rrt.AAAA.String()
	case *dns.PTR:
		data = rrt.Ptr
	case *dns.NS:
		data = rrt.Ns
	case *dns.SOA:
		data = fmt.Sprintf("%s %s %d", rrt.Ns, rrt.Mbox, rrt.Serial)
	default:
		return rr.String()
	}

	return fmt.Sprintf("%s %s %d %s", h.Name, TypeToString(h.Rrtype), h.Ttl, data)
}

// PrettyRRSet joins PrettyRR of each RR with ", ".
func PrettyRRSet(rrs []dns.RR) string {
	ar := make([]string, 0, len(rrs))
	for _, rr := range rrs {
		ar = append(ar, PrettyRR(rr))
	}

	return strings.Join(ar, ", ")
}

// PrettyQuestion returns "CLASS/TYPE name".
func PrettyQuestion(q dns.Question) string {
	return ClassToString(q.Qclass) + "/" + TypeToString(q.Qtype) + " " + q.Name
}
