package zone

import (
	"net/netip"

	"github.com/miekg/dns"

	"github.com/markdingo/zeronsd/dnsutil"
)

// recordKey is the identity of a record in State. Two RRs with the same key are the same
// record even if their TTLs differ.
type recordKey struct {
	name   string
	rrtype uint16
	addr   netip.Addr
}

// State is the ordered record set and serial of the zone. It has no locking. Authority
// only mutates private copies and publishes them once complete.
type State struct {
	serial  uint32
	records []dns.RR
	index   map[recordKey]int // Position in records
}

// NewState creates an empty State. The first mutation returns serial+1.
func NewState(serial uint32) *State {
	return &State{serial: serial, index: make(map[recordKey]int)}
}

// keyOf panics with an InvariantError for anything other than a well-formed A or AAAA.
func keyOf(rr dns.RR) recordKey {
	if rr == nil {
		panic(&InvariantError{RR: "<nil>", Reason: "nil RR"})
	}
	hdr := rr.Header()
	addr, ok := dnsutil.AddressOf(rr)
	if !ok {
		panic(&InvariantError{RR: rr.String(), Reason: "Not an address record"})
	}
	switch rr.(type) {
	case *dns.A:
		if hdr.Rrtype != dns.TypeA || !addr.Is4() {
			panic(&InvariantError{RR: rr.String(), Reason: "A does not hold an IPv4 address"})
		}
	case *dns.AAAA:
		if hdr.Rrtype != dns.TypeAAAA || !addr.Is6() {
			panic(&InvariantError{RR: rr.String(), Reason: "AAAA does not hold an IPv6 address"})
		}
	}

	return recordKey{name: dns.CanonicalName(hdr.Name), rrtype: hdr.Rrtype, addr: addr}
}

// nextSerial follows RFC1982 serial arithmetic. 0 is skipped on wrap as many secondaries
// treat it as unset.
func nextSerial(s uint32) uint32 {
	s++
	if s == 0 {
		s = 1
	}

	return s
}

// Upsert replaces the record with the same name, type and address in place or appends it
// if there is none. Either way the serial advances by one and is returned.
func (t *State) Upsert(rr dns.RR) uint32 {
	key := keyOf(rr)
	rr = dns.Copy(rr)
	rr.Header().Name = key.name
	if ix, ok := t.index[key]; ok {
		t.records[ix] = rr
	} else {
		t.index[key] = len(t.records)
		t.records = append(t.records, rr)
	}
	t.serial = nextSerial(t.serial)

	return t.serial
}

// Remove deletes the record with the same identity as rr. Only an actual removal advances
// the serial.
func (t *State) Remove(rr dns.RR) (uint32, bool) {
	key := keyOf(rr)
	ix, ok := t.index[key]
	if !ok {
		return t.serial, false
	}

	t.records = append(t.records[:ix], t.records[ix+1:]...)
	delete(t.index, key)
	for ; ix < len(t.records); ix++ {
		t.index[keyOf(t.records[ix])] = ix
	}
	t.serial = nextSerial(t.serial)

	return t.serial, true
}

// Contains returns true if a record with the same identity as rr is present.
func (t *State) Contains(rr dns.RR) bool {
	_, ok := t.index[keyOf(rr)]

	return ok
}

// Records returns copies of all records in insertion order.
func (t *State) Records() []dns.RR {
	ar := make([]dns.RR, 0, len(t.records))
	for _, rr := range t.records {
		ar = append(ar, dns.Copy(rr))
	}

	return ar
}

func (t *State) Serial() uint32 {
	return t.serial
}

func (t *State) Len() int {
	return len(t.records)
}

// Clone returns an independent copy. RRs are shared as State never modifies an RR once
// stored.
func (t *State) Clone() *State {
	n := &State{
		serial:  t.serial,
		records: append([]dns.RR{}, t.records...),
		index:   make(map[recordKey]int, len(t.index)),
	}
	for k, v := range t.index {
		n.index[k] = v
	}

	return n
}
