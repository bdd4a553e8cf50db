package net

import (
	"fmt"
	"net/netip"
)

// ParseDestination parses a single destination socket address. Only IP
// literals are accepted; names are never resolved.
func ParseDestination(token string) (netip.AddrPort, error) {
	addr, err := netip.ParseAddrPort(token)
	if err != nil {
		return netip.AddrPort{}, fmt.Errorf("invalid destination %q. %w", token, err)
	}
	return addr, nil
}

// ParseDestinations parses destination tokens in order, failing on the
// first invalid token. List order is fan-out order.
func ParseDestinations(tokens []string) ([]netip.AddrPort, error) {
	dests := make([]netip.AddrPort, 0, len(tokens))
	for _, token := range tokens {
		addr, err := ParseDestination(token)
		if err != nil {
			return nil, err
		}
		dests = append(dests, addr)
	}
	return dests, nil
}

// NetworkOf returns the stdlib network name for the address family.
func NetworkOf(addr netip.Addr) string {
	if addr.Is4() {
		return "udp4"
	}
	return "udp6"
}
