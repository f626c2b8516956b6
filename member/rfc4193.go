package member

import (
	"encoding/hex"
	"fmt"
	"net/netip"
	"strings"
)

const (
	NetworkIDLength = 16 // Hex digits
	NodeIDLength    = 10
)

// ParseNetworkID checks for a 16 hex digit ZeroTier network ID and returns it in lower
// case.
func ParseNetworkID(s string) (string, error) {
	return parseHexID(s, NetworkIDLength, "network")
}

func parseHexID(s string, want int, what string) (string, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) != want {
		return "", fmt.Errorf("%s ID '%s' must be %d hex digits", what, s, want)
	}
	if _, err := hex.DecodeString(s); err != nil {
		return "", fmt.Errorf("%s ID '%s' is not hex", what, s)
	}

	return s, nil
}

// RFC4193Addr returns the address ZeroTier assigns a node when RFC4193 mode is enabled on
// the network:
//
//	fd<network id: 8 bytes>9993<node id: 5 bytes>
func RFC4193Addr(networkID, nodeID string) (netip.Addr, error) {
	nw, err := ParseNetworkID(networkID)
	if err != nil {
		return netip.Addr{}, err
	}
	node, err := parseHexID(nodeID, NodeIDLength, "node")
	if err != nil {
		return netip.Addr{}, err
	}

	b, _ := hex.DecodeString("fd" + nw + "9993" + node)
	var a16 [16]byte
	copy(a16[:], b)

	return netip.AddrFrom16(a16), nil
}
