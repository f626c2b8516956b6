package dnsutil

const (
	V4Suffix = ".in-addr.arpa." // Leading '.' matters as callers use strings.HasSuffix()
	V6Suffix = ".ip6.arpa."     // to label match.

	TCPNetwork = "tcp"
	UDPNetwork = "udp"

	MaxUDPSize uint16 = 1232 // Generally accepted as safe for edns0

	MaxLabelLength = 63  // rfc1035 2.3.4
	MaxNameLength  = 253 // Presentation format, excluding the trailing dot
)
