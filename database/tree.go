package database

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/miekg/dns"

	"github.com/markdingo/zeronsd/dnsutil"
)

// If RR is a.b.c. IN A 1.2.3.4, then the reference to the RR is:
//
// rrSet := database.cm[IN].children[c].children[b].children[a].tm[A]

type classMap map[uint16]*node
type typeMap map[uint16][]dns.RR
type labelMap map[string]*node

type node struct {
	tm       typeMap  // Both maps are created on-demand so the presence of a map
	children labelMap // implies at least one entry.
}

// Database is constructed with NewDatabase(). A zero Database panics on AddRR.
type Database struct {
	cm    classMap
	count int
}

func NewDatabase() *Database {
	return &Database{cm: make(classMap)}
}

// walk follows the labels of qName down from the class root. If create is true missing
// nodes are added, otherwise a nil return means the name does not exist.
func (t *Database) walk(qClass uint16, qName string, create bool) *node {
	parent := t.cm[qClass]
	if parent == nil {
		if !create {
			return nil
		}
		parent = &node{}
		t.cm[qClass] = parent
	}

	qName = dnsutil.ChompCanonicalName(qName)
	if len(qName) == 0 { // The root
		return parent
	}
	labels := strings.Split(qName, ".")
	for ix := len(labels) - 1; ix >= 0; ix-- {
		child := parent.children[labels[ix]]
		if child == nil {
			if !create {
				return nil
			}
			if parent.children == nil {
				parent.children = make(labelMap)
			}
			child = &node{}
			parent.children[labels[ix]] = child
		}
		parent = child
	}

	return parent
}

// AddRR places a copy of the RR in the tree. Returns false if an identical RR (ignoring
// TTL) is already present.
func (t *Database) AddRR(rr dns.RR) bool {
	hdr := rr.Header()
	n := t.walk(hdr.Class, hdr.Name, true)
	if n.tm == nil {
		n.tm = make(typeMap)
	}

	rrset := n.tm[hdr.Rrtype]
	for _, eRR := range rrset {
		if dns.IsDuplicate(eRR, rr) {
			return false
		}
	}

	n.tm[hdr.Rrtype] = append(rrset, dns.Copy(rr))
	t.count++

	return true
}

// LookupRR returns copies of the matching RRs as callers are likely to modify them,
// particularly the TTL. nxDomain is true if there is no node for qName. A node is only
// ever created when something is added below it so its presence implies RRs or children.
func (t *Database) LookupRR(qClass, qType uint16, qName string) (ans []dns.RR, nxDomain bool) {
	n := t.walk(qClass, qName, false)
	if n == nil {
		return nil, true
	}
	for _, rr := range n.tm[qType] {
		ans = append(ans, dns.Copy(rr))
	}

	return
}

// LookupAll is LookupRR for every type at qName, ordered by type number so that ANY
// responses are stable.
func (t *Database) LookupAll(qClass uint16, qName string) (ans []dns.RR, nxDomain bool) {
	n := t.walk(qClass, qName, false)
	if n == nil {
		return nil, true
	}

	types := make([]int, 0, len(n.tm))
	for qType := range n.tm {
		types = append(types, int(qType))
	}
	sort.Ints(types)
	for _, qType := range types {
		for _, rr := range n.tm[uint16(qType)] {
			ans = append(ans, dns.Copy(rr))
		}
	}

	return
}

// Count returns the total count of all RRs in the database.
func (t *Database) Count() int {
	return t.count
}

// Dump writes every RR to w, one per line, in no particular order.
func (t *Database) Dump(w io.Writer) {
	fmt.Fprintln(w, "Database Dump", t.count)
	for ct, parent := range t.cm {
		t.dumpChildren(w, dnsutil.ClassToString(ct)+" ", parent)
	}
}

func (t *Database) dumpChildren(w io.Writer, prefix string, parent *node) {
	for _, rrset := range parent.tm {
		fmt.Fprintln(w, prefix, dnsutil.PrettyRRSet(rrset))
	}
	for _, child := range parent.children {
		t.dumpChildren(w, prefix+" ", child)
	}
}
