package main

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"net/netip"

	"github.com/dchest/siphash"
	"github.com/miekg/dns"
)

const (
	cCookieLength    = 8 // Client cookie is always exactly this long
	sCookieMinLength = 8 // If present, a server cookie must be in this range
	sCookieMaxLength = 32
	sCookieV1Length  = 16 // A version '1' cookie is exactly 128 bits
)

// findNSID searches the OPT RR for an NSID request. Return the NSID opt if found,
// otherwise nil.
func (t *request) findNSID() *dns.EDNS0_NSID {
	if t.opt == nil {
		return nil
	}

	for _, subopt := range t.opt.Option {
		if so, ok := subopt.(*dns.EDNS0_NSID); ok {
			return so
		}
	}

	return nil
}

// genOpt creates an OPT RR with all the required sub-opt values. Return nil if the query
// had no OPT or if there is nothing to put in the response OPT.
func (t *request) genOpt() *dns.OPT {
	if t.opt == nil {
		return nil
	}

	var returnOpt bool

	opt := new(dns.OPT)
	opt.Hdr.Name = "."
	opt.Hdr.Rrtype = dns.TypeOPT

	if t.maxSize > 0 {
		returnOpt = true
		opt.SetUDPSize(t.maxSize)
	}

	if len(t.nsidOut) > 0 {
		returnOpt = true
		e := new(dns.EDNS0_NSID)
		e.Code = dns.EDNS0NSID
		e.Nsid = t.nsidOut
		opt.Option = append(opt.Option, e)
	}

	if len(t.cookieOut) > 0 {
		returnOpt = true
		e := new(dns.EDNS0_COOKIE)
		e.Code = dns.EDNS0COOKIE
		e.Cookie = hex.EncodeToString(t.cookieOut) // miekg wants hex
		opt.Option = append(opt.Option, e)
	}

	if returnOpt {
		return opt
	}

	return nil
}

// findCookies searches the OPT RR for RFC7873 cookies and sets all the cookie-related
// variables in the request. Whatever cookie material is found is kept, valid or not, as
// it is useful for logging.
func (t *request) findCookies() {
	if t.opt == nil {
		return
	}

	var so *dns.EDNS0_COOKIE
	for _, subopt := range t.opt.Option {
		if c, ok := subopt.(*dns.EDNS0_COOKIE); ok {
			so = c
			break
		}
	}
	if so == nil {
		return
	}
	t.cookiesPresent = true

	if len(so.Cookie) < (2 * cCookieLength) { // 8 bytes is 16 hex
		t.clientCookie, _ = hex.DecodeString(so.Cookie)
		return
	}

	t.clientCookie, _ = hex.DecodeString(so.Cookie[:cCookieLength*2])
	t.serverCookie, _ = hex.DecodeString(so.Cookie[cCookieLength*2:])

	t.cookieWellFormed = len(t.clientCookie) == cCookieLength &&
		(len(t.serverCookie) == 0 ||
			(len(t.serverCookie) >= sCookieMinLength &&
				len(t.serverCookie) <= sCookieMaxLength))
}

const (
	wrapDistance = uint64(1<<31) - 1 // Assume wrap if gap is greater than this
	maxBehindGap = 60 * 60           // Timestamps older than this are ignored (seconds)
	maxAheadGap  = 60 * 5            // Timestamps ahead by more than this much are ignored
	reissueGap   = maxAheadGap / 2   // Reissue cookie if their timestamp is getting old
)

// validateOrGenerateCookie compares the client supplied server cookie with the one we
// expect. A valid timestamp is in the range now-maxBehindGap to now+maxAheadGap. If the
// timestamp is older than reissueGap a fresh cookie is generated, otherwise the client's
// cookie is returned to them.
//
// Returns true if the server cookie is valid. Regardless of validity, cookieOut is always
// populated with the full cookie to send back to the client.
func (t *request) validateOrGenerateCookie(secrets [2]uint64, unixTime int64) bool {
	now := uint32(unixTime & 0xFFFFFFFF)
	var now64, ts64 uint64
	if len(t.serverCookie) == sCookieV1Length &&
		t.serverCookie[0] == 1 && // v1
		t.serverCookie[1] == 0 && // and zero in the reserved bytes
		t.serverCookie[2] == 0 &&
		t.serverCookie[3] == 0 {
		ts := binary.BigEndian.Uint32(t.serverCookie[4:8])
		now64, ts64 = normalizeTimestamps(now, ts)
		if (ts64+maxBehindGap > now64) && (now64+maxAheadGap) > ts64 {
			t.cookieOut = genV1Cookie(secrets, ts, t.src.String(), t.clientCookie)
			t.cookieValid = bytes.Equal(t.serverCookie, t.cookieOut[cCookieLength:])
		}
	}

	if !t.cookieValid || ts64+reissueGap < now64 {
		t.cookieOut = genV1Cookie(secrets, now, t.src.String(), t.clientCookie)
	}

	return t.cookieValid
}

// normalizeTimestamps converts "serial number arithmetic" uint32s into comparable uint64s
// by adding the capacity of a uint32 to the lower number if it has wrapped.
func normalizeTimestamps(a, b uint32) (A, B uint64) {
	A = uint64(a)
	B = uint64(b)
	if A > B && (A-B) > wrapDistance {
		B += 1 << 32
		return
	}

	if B > A && (B-A) > wrapDistance {
		A += 1 << 32
	}

	return
}

// genV1Cookie generates a version '1' full cookie (RFC9018) including the 8-byte client
// cookie prefix. The server cookie is:
//
//	[0:1] Version - 0x1
//	[1:4] Reserved - 0x0
//	[4:8] Timestamp - serial number arithmetic unix time
//	[8:16] SipHash-2-4
//
// The hash input is the client cookie, the first eight bytes of the server cookie and
// the client IP in its 4 or 16 byte form.
func genV1Cookie(secrets [2]uint64, clock uint32, clientAddr string, clientCookie []byte) []byte {
	cookie := make([]byte, cCookieLength+8+16) // Largest hash input
	ap, err := netip.ParseAddrPort(clientAddr)
	if err != nil {
		return cookie[:cCookieLength+sCookieV1Length] // Garbage never validates
	}
	ip := ap.Addr().Unmap()

	copy(cookie, clientCookie)
	cookie[8] = 1
	binary.BigEndian.PutUint32(cookie[12:16], clock)

	ix := 16
	b := ip.AsSlice()
	copy(cookie[ix:], b)
	ix += len(b)

	sum64 := siphash.Hash(secrets[0], secrets[1], cookie[:ix])
	binary.BigEndian.PutUint64(cookie[16:24], sum64)

	return cookie[:cCookieLength+sCookieV1Length]
}
