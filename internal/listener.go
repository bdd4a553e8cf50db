package internal

import (
	"context"
	"fmt"
	"github.com/udprelay/udprelay/net"
	"golang.org/x/net/ipv4"
	"golang.org/x/net/ipv6"
	stdnet "net"
	"net/netip"
)

// OpenListener binds the relay's receive socket. Unicast listeners bind
// the given address directly, with no address reuse so a port collision
// stays visible. Multicast listeners bind the wildcard address on the
// group port, then join the group on the selected interface.
func OpenListener(ctx context.Context, spec net.ListenerSpec) (*stdnet.UDPConn, error) {
	switch spec.Kind {
	case net.KindUnicast:
		listener, err := stdnet.ListenUDP(spec.Network(), stdnet.UDPAddrFromAddrPort(spec.Addr))
		if err != nil {
			return nil, fmt.Errorf("listener: bind %s. %w", spec.Addr, err)
		}
		return listener, nil
	case net.KindMulticastV4:
		ifi, err := interfaceByAddr(spec.Local)
		if err != nil {
			return nil, err
		}
		listener, err := bindWildcard(ctx, "udp4", spec.Addr.Port())
		if err != nil {
			return nil, err
		}
		group := &stdnet.UDPAddr{IP: spec.Addr.Addr().AsSlice()}
		if err := ipv4.NewPacketConn(listener).JoinGroup(ifi, group); err != nil {
			_ = listener.Close()
			return nil, fmt.Errorf("listener: join group %s. %w", spec, err)
		}
		return listener, nil
	case net.KindMulticastV6:
		ifi, err := interfaceByIndex(spec.Interface)
		if err != nil {
			return nil, err
		}
		listener, err := bindWildcard(ctx, "udp6", spec.Addr.Port())
		if err != nil {
			return nil, err
		}
		group := &stdnet.UDPAddr{IP: spec.Addr.Addr().AsSlice()}
		if err := ipv6.NewPacketConn(listener).JoinGroup(ifi, group); err != nil {
			_ = listener.Close()
			return nil, fmt.Errorf("listener: join group %s. %w", spec, err)
		}
		return listener, nil
	default:
		return nil, fmt.Errorf("listener: unsupported kind: %s", spec.Kind)
	}
}

// bindWildcard binds the wildcard address of the given family. Multicast
// receivers share their port, so the socket is marked address-reusable
// before binding.
func bindWildcard(ctx context.Context, network string, port uint16) (*stdnet.UDPConn, error) {
	lc := stdnet.ListenConfig{Control: multicastSockopts}
	conn, err := lc.ListenPacket(ctx, network, fmt.Sprintf(":%d", port))
	if err != nil {
		return nil, fmt.Errorf("listener: bind %s wildcard port %d. %w", network, port, err)
	}
	return conn.(*stdnet.UDPConn), nil
}

// interfaceByAddr resolves the interface owning the given local address.
// The unspecified address selects the system default.
func interfaceByAddr(local netip.Addr) (*stdnet.Interface, error) {
	if local.IsUnspecified() {
		return nil, nil
	}
	ifaces, err := stdnet.Interfaces()
	if err != nil {
		return nil, fmt.Errorf("listener: list interfaces. %w", err)
	}
	want := stdnet.IP(local.AsSlice())
	for i := range ifaces {
		addrs, aErr := ifaces[i].Addrs()
		if aErr != nil {
			continue
		}
		for _, addr := range addrs {
			switch v := addr.(type) {
			case *stdnet.IPNet:
				if v.IP.Equal(want) {
					return &ifaces[i], nil
				}
			case *stdnet.IPAddr:
				if v.IP.Equal(want) {
					return &ifaces[i], nil
				}
			}
		}
	}
	return nil, fmt.Errorf("listener: no interface with address %s", local)
}

// interfaceByIndex resolves the interface with the given index. Index
// zero selects the system default.
func interfaceByIndex(index uint32) (*stdnet.Interface, error) {
	if index == 0 {
		return nil, nil
	}
	ifi, err := stdnet.InterfaceByIndex(int(index))
	if err != nil {
		return nil, fmt.Errorf("listener: no interface with index %d. %w", index, err)
	}
	return ifi, nil
}
