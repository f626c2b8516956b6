package main

import (
	"fmt"

	"github.com/miekg/dns"
)

// qTypeStats is for the high activity qTypes: A, AAAA and PTR.
type qTypeStats struct {
	queries  int // Type specific query count
	good     int // Replies with at least one answer
	answers  int // Total RRs sent in all good replies
	noData   int
	nxDomain int
}

func (t *qTypeStats) add(from *qTypeStats) {
	t.queries += from.queries
	t.good += from.good
	t.answers += from.answers
	t.noData += from.noData
	t.nxDomain += from.nxDomain
}

func (t *qTypeStats) String() string {
	return fmt.Sprintf("q=%d good=%d(%d) nodata=%d nx=%d",
		t.queries, t.good, t.answers, t.noData, t.nxDomain)
}

type generalStats struct {
	queries    int // Total queries
	badRequest int // No Question, wrong op-code

	chaos int
	nsid  int

	cookie          int
	cookieOnly      int
	wrongCookie     int // Server cookie mismatch
	malformedCookie int

	chaosRefused int // Refused counters
	noAuthority  int
	wrongClass   int

	authZoneANY int // Apex counters
	authZoneSOA int
	authZoneNS  int

	dbDone     int
	dbNoError  int
	dbNXDomain int

	rrlDrop int
	rrlSlip int
}

func (t *generalStats) add(from *generalStats) {
	t.queries += from.queries
	t.badRequest += from.badRequest
	t.chaos += from.chaos
	t.nsid += from.nsid
	t.cookie += from.cookie
	t.cookieOnly += from.cookieOnly
	t.wrongCookie += from.wrongCookie
	t.malformedCookie += from.malformedCookie
	t.chaosRefused += from.chaosRefused
	t.noAuthority += from.noAuthority
	t.wrongClass += from.wrongClass
	t.authZoneANY += from.authZoneANY
	t.authZoneSOA += from.authZoneSOA
	t.authZoneNS += from.authZoneNS
	t.dbDone += from.dbDone
	t.dbNoError += from.dbNoError
	t.dbNXDomain += from.dbNXDomain
	t.rrlDrop += from.rrlDrop
	t.rrlSlip += from.rrlSlip
}

func (t *generalStats) String() string {
	return fmt.Sprintf("q=%d/%d/%d/%d C=%d/%d/%d/%d ref=%d/%d/%d auth=%d/%d/%d db=%d/%d/%d rrl=%d/%d",
		t.queries, t.badRequest, t.chaos, t.nsid,
		t.cookie, t.cookieOnly, t.wrongCookie, t.malformedCookie,
		t.chaosRefused, t.noAuthority, t.wrongClass,
		t.authZoneANY, t.authZoneSOA, t.authZoneNS,
		t.dbDone, t.dbNoError, t.dbNXDomain,
		t.rrlDrop, t.rrlSlip)
}

type serverStats struct {
	gen  generalStats
	A    qTypeStats
	AAAA qTypeStats
	PTR  qTypeStats
}

func (t *serverStats) add(from *serverStats) {
	t.gen.add(&from.gen)
	t.A.add(&from.A)
	t.AAAA.add(&from.AAAA)
	t.PTR.add(&from.PTR)
}

// qTypeStats returns the per-type counters for qType or nil if qType is not tracked.
func (t *serverStats) qTypeStats(qType uint16) *qTypeStats {
	switch qType {
	case dns.TypeA:
		return &t.A
	case dns.TypeAAAA:
		return &t.AAAA
	case dns.TypePTR:
		return &t.PTR
	}

	return nil
}

func (t *serverStats) String() string {
	return "Gen: " + t.gen.String() +
		" A: " + t.A.String() +
		" AAAA: " + t.AAAA.String() +
		" PTR: " + t.PTR.String()
}

// syncStats tracks the outcome of configure passes. Only the sync go-routine writes
// them, but the stats reporter reads them so they are protected by zeronsd.syncMu.
type syncStats struct {
	passes   int
	failures int
	changes  int // Passes which changed the record set

	lastSerial  uint32
	lastRecords int
	lastError   error
}

func (t *syncStats) String() string {
	s := fmt.Sprintf("passes=%d fail=%d chg=%d serial=%d rrs=%d",
		t.passes, t.failures, t.changes, t.lastSerial, t.lastRecords)
	if t.lastError != nil {
		s += " last error: " + t.lastError.Error()
	}

	return s
}
