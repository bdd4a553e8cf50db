package net

import (
	"fmt"
	"github.com/bytepowered/assert"
	"net/netip"
	"strconv"
	"strings"
)

type ListenerKind int32

const (
	KindUnicast     ListenerKind = 0
	KindMulticastV4 ListenerKind = 1
	KindMulticastV6 ListenerKind = 2
)

func (k ListenerKind) String() string {
	switch k {
	case KindUnicast:
		return "unicast"
	case KindMulticastV4:
		return "multicast-v4"
	case KindMulticastV6:
		return "multicast-v6"
	default:
		return "unknown"
	}
}

// ListenerSpec describes the socket a relay receives on. Addr is the
// bind address of a unicast listener, or the group address of a
// multicast listener. Multicast listeners additionally carry the
// interface selector of their family: a local IPv4 address, or an
// IPv6 interface index.
type ListenerSpec struct {
	Kind      ListenerKind
	Addr      netip.AddrPort
	Local     netip.Addr
	Interface uint32
}

func UnicastSpec(addr netip.AddrPort) ListenerSpec {
	return ListenerSpec{Kind: KindUnicast, Addr: addr}
}

func MulticastV4Spec(group netip.AddrPort, local netip.Addr) ListenerSpec {
	assert.MustTrue(isMulticast4(group.Addr()), "multicast-v4 group is not multicast, was: %s", group)
	assert.MustTrue(local.Is4(), "multicast-v4 local address is not ipv4, was: %s", local)
	return ListenerSpec{Kind: KindMulticastV4, Addr: group, Local: local}
}

func MulticastV6Spec(group netip.AddrPort, ifaceIndex uint32) ListenerSpec {
	assert.MustTrue(isMulticast6(group.Addr()), "multicast-v6 group is not multicast, was: %s", group)
	return ListenerSpec{Kind: KindMulticastV6, Addr: group, Interface: ifaceIndex}
}

// ParseListenerSpec resolves the textual listener form:
//
//	<ipv4>:<port>              unicast bind address
//	[<ipv6>]:<port>            unicast bind address
//	<group>:<port>/<local>     IPv4 multicast group with a local interface address
//	[<group>]:<port>/<index>   IPv6 multicast group with an interface index
//
// A bare multicast group selects the default interface of its family.
// Selectors apply only to genuine multicast groups; a unicast address
// carrying a selector is rejected, never downgraded.
func ParseListenerSpec(spec string) (ListenerSpec, error) {
	if addr, err := netip.ParseAddrPort(spec); err == nil {
		switch {
		case isMulticast4(addr.Addr()):
			return MulticastV4Spec(addr, netip.IPv4Unspecified()), nil
		case isMulticast6(addr.Addr()):
			return MulticastV6Spec(addr, 0), nil
		default:
			return UnicastSpec(addr), nil
		}
	}
	group, detail, ok := strings.Cut(spec, "/")
	if !ok {
		return ListenerSpec{}, fmt.Errorf("%w: %s", ErrInvalidListenerSpec, spec)
	}
	addr, err := netip.ParseAddrPort(group)
	if err != nil {
		return ListenerSpec{}, fmt.Errorf("%w: %s", ErrInvalidListenerSpec, spec)
	}
	switch {
	case isMulticast4(addr.Addr()):
		local, lErr := netip.ParseAddr(detail)
		if lErr != nil || !local.Is4() {
			return ListenerSpec{}, fmt.Errorf("%w: local interface address: %s", ErrInvalidListenerSpec, spec)
		}
		return MulticastV4Spec(addr, local), nil
	case isMulticast6(addr.Addr()):
		index, iErr := strconv.ParseUint(detail, 10, 32)
		if iErr != nil {
			return ListenerSpec{}, fmt.Errorf("%w: interface index: %s", ErrInvalidListenerSpec, spec)
		}
		return MulticastV6Spec(addr, uint32(index)), nil
	default:
		return ListenerSpec{}, fmt.Errorf("%w: selector on unicast address: %s", ErrInvalidListenerSpec, spec)
	}
}

// Network returns the stdlib network name of the listener family.
func (s ListenerSpec) Network() string {
	return NetworkOf(s.Addr.Addr())
}

func (s ListenerSpec) String() string {
	switch s.Kind {
	case KindMulticastV4:
		return fmt.Sprintf("%s/%s", s.Addr, s.Local)
	case KindMulticastV6:
		return fmt.Sprintf("%s/%d", s.Addr, s.Interface)
	default:
		return s.Addr.String()
	}
}

func isMulticast4(ip netip.Addr) bool {
	return ip.Is4() && ip.IsMulticast()
}

// isMulticast6 tests ff00::/8 on the 16-byte form. IPv4-mapped
// addresses never qualify; they stay unicast listeners of the IPv6
// family.
func isMulticast6(ip netip.Addr) bool {
	return !ip.Is4() && ip.As16()[0] == 0xff
}
