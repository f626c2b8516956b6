package mock

// NetAddr satisfies net.Addr for requests constructed outside a real listener.
type NetAddr struct {
	network, address string
}

func (t *NetAddr) Network() string {
	return t.network
}

func (t *NetAddr) String() string {
	return t.address
}

// NewNetAddr defaults an empty network to "udp".
func NewNetAddr(network, address string) *NetAddr {
	if len(network) == 0 {
		network = "udp"
	}

	return &NetAddr{network: network, address: address}
}
