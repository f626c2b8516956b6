package hosts

import (
	"net/netip"
)

// Table is an ordered address to names map. The zero value is not usable, use NewTable.
type Table struct {
	order []netip.Addr
	names map[netip.Addr][]string
}

func NewTable() *Table {
	return &Table{names: make(map[netip.Addr][]string)}
}

// Add appends name to the list for addr unless it is already present. Returns true if
// the name was added. Callers are expected to supply canonical names.
func (t *Table) Add(addr netip.Addr, name string) bool {
	addr = addr.Unmap()
	list, ok := t.names[addr]
	if !ok {
		t.order = append(t.order, addr)
	}
	for _, n := range list {
		if n == name {
			return false
		}
	}
	t.names[addr] = append(list, name)

	return true
}

// Addrs returns the addresses in the order they first appeared.
func (t *Table) Addrs() []netip.Addr {
	return append([]netip.Addr{}, t.order...)
}

// Names returns a copy of the names for addr in insertion order, or nil.
func (t *Table) Names(addr netip.Addr) []string {
	list := t.names[addr.Unmap()]
	if list == nil {
		return nil
	}

	return append([]string{}, list...)
}

// Len returns the number of distinct addresses. A nil Table is empty.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}

	return len(t.order)
}

// Count returns the total number of address/name pairs.
func (t *Table) Count() (c int) {
	for _, list := range t.names {
		c += len(list)
	}

	return
}
