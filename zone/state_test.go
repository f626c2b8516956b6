package zone

import (
	"errors"
	"math"
	"net"
	"testing"

	"github.com/miekg/dns"
)

func TestUpsertSerial(t *testing.T) {
	st := NewState(1)
	rrs := []dns.RR{
		newRR("zt-abc.domain. 60 IN A 10.0.0.1"),
		newRR("zt-abc.domain. 60 IN A 10.0.0.2"),
		newRR("zt-abc.domain. 60 IN AAAA fd00::1"),
		newRR("zt-abc.domain. 60 IN A 10.0.0.1"), // Same identity as the first
	}
	for ix, rr := range rrs {
		s := st.Upsert(rr)
		if s != uint32(ix+2) {
			t.Error(ix, "Serial should be", ix+2, "not", s)
		}
	}
	if st.Serial() != 5 {
		t.Error("Final serial wrong", st.Serial())
	}
	if st.Len() != 3 {
		t.Error("Duplicate should replace, not append", st.Len(), st.Records())
	}
}

func TestUpsertReplacesInPlace(t *testing.T) {
	st := NewState(1)
	st.Upsert(newRR("a.domain. 60 IN A 10.0.0.1"))
	st.Upsert(newRR("b.domain. 60 IN A 10.0.0.2"))
	st.Upsert(newRR("A.Domain. 300 IN A 10.0.0.1")) // Case and TTL differ

	recs := st.Records()
	if len(recs) != 2 {
		t.Fatal("Expected two records", recs)
	}
	if recs[0].Header().Name != "a.domain." || recs[0].Header().Ttl != 300 {
		t.Error("First record should be replaced in position", recs[0])
	}
	if recs[1].Header().Name != "b.domain." {
		t.Error("Order disturbed", recs)
	}
}

func TestSameNameDifferentTypes(t *testing.T) {
	st := NewState(1)
	st.Upsert(newRR("a.domain. 60 IN A 10.0.0.1"))
	st.Upsert(newRR("a.domain. 60 IN AAAA ::ffff:10.0.0.1"))
	if st.Len() != 2 {
		t.Error("A and AAAA with the same bits are distinct records", st.Records())
	}
}

func TestRemove(t *testing.T) {
	st := NewState(10)
	st.Upsert(newRR("a.domain. 60 IN A 10.0.0.1"))
	st.Upsert(newRR("b.domain. 60 IN A 10.0.0.2"))
	st.Upsert(newRR("c.domain. 60 IN A 10.0.0.3"))

	s, ok := st.Remove(newRR("x.domain. 60 IN A 10.0.0.1"))
	if ok || s != 13 {
		t.Error("Remove of missing record should not bump serial", s, ok)
	}
	s, ok = st.Remove(newRR("a.domain. 60 IN A 10.0.0.1"))
	if !ok || s != 14 {
		t.Error("Remove should bump serial", s, ok)
	}
	if st.Contains(newRR("a.domain. 60 IN A 10.0.0.1")) {
		t.Error("Record still present after Remove")
	}
	if !st.Contains(newRR("c.domain. 60 IN A 10.0.0.3")) {
		t.Error("Index broken after Remove")
	}

	// Upsert after Remove must still replace the right entry
	st.Upsert(newRR("c.domain. 90 IN A 10.0.0.3"))
	recs := st.Records()
	if len(recs) != 2 || recs[1].Header().Ttl != 90 {
		t.Error("Index stale after Remove", recs)
	}
}

func TestSerialWrap(t *testing.T) {
	st := NewState(math.MaxUint32 - 1)
	exp := []uint32{math.MaxUint32, 1, 2}
	for ix, e := range exp {
		s := st.Upsert(newRR("a.domain. 60 IN A 10.0.0.1"))
		if s != e {
			t.Error(ix, "Serial", s, "expected", e)
		}
	}
}

func TestRecordsAreCopies(t *testing.T) {
	st := NewState(1)
	rr := newRR("a.domain. 60 IN A 10.0.0.1")
	st.Upsert(rr)
	rr.Header().Ttl = 1
	recs := st.Records()
	if recs[0].Header().Ttl != 60 {
		t.Error("Caller modified stored RR", recs[0])
	}
	recs[0].Header().Ttl = 2
	if st.Records()[0].Header().Ttl != 60 {
		t.Error("Returned RR shares storage")
	}
}

func TestClone(t *testing.T) {
	st := NewState(1)
	st.Upsert(newRR("a.domain. 60 IN A 10.0.0.1"))
	cl := st.Clone()
	cl.Upsert(newRR("b.domain. 60 IN A 10.0.0.2"))
	if st.Len() != 1 || st.Serial() != 2 {
		t.Error("Clone mutation leaked into original", st.Len(), st.Serial())
	}
	if cl.Len() != 2 || cl.Serial() != 3 {
		t.Error("Clone not mutated", cl.Len(), cl.Serial())
	}
}

func TestInvariantPanics(t *testing.T) {
	testCases := []dns.RR{
		newRR("domain. 60 IN NS ns1.domain."),
		&dns.A{Hdr: dns.RR_Header{Name: "a.", Rrtype: dns.TypeA, Class: dns.ClassINET},
			A: net.ParseIP("fd00::1")},
		&dns.A{Hdr: dns.RR_Header{Name: "a.", Rrtype: dns.TypeAAAA, Class: dns.ClassINET},
			A: net.ParseIP("10.0.0.1")},
		&dns.A{Hdr: dns.RR_Header{Name: "a.", Rrtype: dns.TypeA, Class: dns.ClassINET}},
	}

	for ix, rr := range testCases {
		func() {
			defer func() {
				r := recover()
				if r == nil {
					t.Error(ix, "Expected panic with", rr)
					return
				}
				err, ok := r.(error)
				var ie *InvariantError
				if !ok || !errors.As(err, &ie) {
					t.Error(ix, "Expected InvariantError, got", r)
				}
			}()
			NewState(1).Upsert(rr)
		}()
	}
}
