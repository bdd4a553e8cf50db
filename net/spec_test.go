package net

import (
	"net/netip"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseListenerSpecUnicast(t *testing.T) {
	cases := []struct {
		spec string
		addr string
	}{
		{spec: "10.1.1.10:4000", addr: "10.1.1.10:4000"},
		{spec: "127.0.0.1:0", addr: "127.0.0.1:0"},
		{spec: "[2001::1]:4000", addr: "[2001::1]:4000"},
		{spec: "[::1]:9000", addr: "[::1]:9000"},
		// IPv4-mapped groups are not ff00::/8, so they stay unicast.
		{spec: "[::ffff:224.1.2.3]:4000", addr: "[::ffff:224.1.2.3]:4000"},
	}
	for _, tc := range cases {
		spec, err := ParseListenerSpec(tc.spec)
		require.NoError(t, err, "spec: %s", tc.spec)
		require.Equal(t, UnicastSpec(netip.MustParseAddrPort(tc.addr)), spec, "spec: %s", tc.spec)
	}
}

func TestParseListenerSpecMulticastV4Default(t *testing.T) {
	spec, err := ParseListenerSpec("224.10.10.10:4000")
	require.NoError(t, err)
	require.Equal(t, MulticastV4Spec(netip.MustParseAddrPort("224.10.10.10:4000"), netip.IPv4Unspecified()), spec)
	require.Equal(t, KindMulticastV4, spec.Kind)
}

func TestParseListenerSpecMulticastV4LocalAddr(t *testing.T) {
	spec, err := ParseListenerSpec("224.10.10.10:4000/192.168.1.10")
	require.NoError(t, err)
	require.Equal(t, KindMulticastV4, spec.Kind)
	require.Equal(t, netip.MustParseAddrPort("224.10.10.10:4000"), spec.Addr)
	require.Equal(t, netip.MustParseAddr("192.168.1.10"), spec.Local)
}

func TestParseListenerSpecMulticastV6Default(t *testing.T) {
	spec, err := ParseListenerSpec("[ff0e::1]:4000")
	require.NoError(t, err)
	require.Equal(t, MulticastV6Spec(netip.MustParseAddrPort("[ff0e::1]:4000"), 0), spec)
	require.Equal(t, uint32(0), spec.Interface)
}

func TestParseListenerSpecMulticastV6InterfaceIndex(t *testing.T) {
	spec, err := ParseListenerSpec("[ff0e::1]:4000/2")
	require.NoError(t, err)
	require.Equal(t, KindMulticastV6, spec.Kind)
	require.Equal(t, netip.MustParseAddrPort("[ff0e::1]:4000"), spec.Addr)
	require.Equal(t, uint32(2), spec.Interface)
}

func TestParseListenerSpecInvalid(t *testing.T) {
	cases := []struct {
		name string
		spec string
	}{
		{name: "empty", spec: ""},
		{name: "no address structure", spec: "not-an-address"},
		{name: "missing port", spec: "224.10.10.10"},
		{name: "selector on unicast v4", spec: "10.1.1.10:4000/192.168.1.10"},
		{name: "selector on unicast v6", spec: "[2001::1]:4000/2"},
		{name: "selector on mapped group", spec: "[::ffff:224.1.2.3]:4000/2"},
		{name: "v4 group with index selector", spec: "224.10.10.10:4000/2"},
		{name: "v4 group with v6 selector", spec: "224.10.10.10:4000/ff0e::1"},
		{name: "v6 group with address selector", spec: "[ff0e::1]:4000/192.168.1.10"},
		{name: "v6 group with negative index", spec: "[ff0e::1]:4000/-1"},
		{name: "v6 group index out of range", spec: "[ff0e::1]:4000/4294967296"},
		{name: "group without port", spec: "224.10.10.10/192.168.1.10"},
		{name: "empty selector", spec: "224.10.10.10:4000/"},
		{name: "structureless selector", spec: "a/b"},
	}
	for _, tc := range cases {
		_, err := ParseListenerSpec(tc.spec)
		require.ErrorIs(t, err, ErrInvalidListenerSpec, "case: %s", tc.name)
	}
}

func TestListenerSpecNetwork(t *testing.T) {
	cases := []struct {
		spec    string
		network string
	}{
		{spec: "10.1.1.10:4000", network: "udp4"},
		{spec: "224.10.10.10:4000", network: "udp4"},
		{spec: "[2001::1]:4000", network: "udp6"},
		{spec: "[ff0e::1]:4000", network: "udp6"},
		{spec: "[::ffff:224.1.2.3]:4000", network: "udp6"},
	}
	for _, tc := range cases {
		spec, err := ParseListenerSpec(tc.spec)
		require.NoError(t, err)
		require.Equal(t, tc.network, spec.Network(), "spec: %s", tc.spec)
	}
}

func TestListenerSpecString(t *testing.T) {
	cases := []struct {
		spec string
		text string
	}{
		{spec: "10.1.1.10:4000", text: "10.1.1.10:4000"},
		{spec: "224.10.10.10:4000", text: "224.10.10.10:4000/0.0.0.0"},
		{spec: "224.10.10.10:4000/192.168.1.10", text: "224.10.10.10:4000/192.168.1.10"},
		{spec: "[ff0e::1]:4000", text: "[ff0e::1]:4000/0"},
		{spec: "[ff0e::1]:4000/2", text: "[ff0e::1]:4000/2"},
	}
	for _, tc := range cases {
		spec, err := ParseListenerSpec(tc.spec)
		require.NoError(t, err)
		require.Equal(t, tc.text, spec.String())
	}
}

func TestListenerKindString(t *testing.T) {
	require.Equal(t, "unicast", KindUnicast.String())
	require.Equal(t, "multicast-v4", KindMulticastV4.String())
	require.Equal(t, "multicast-v6", KindMulticastV6.String())
	require.Equal(t, "unknown", ListenerKind(99).String())
}

func TestMulticastSpecFactoriesRejectUnicast(t *testing.T) {
	require.Panics(t, func() {
		MulticastV4Spec(netip.MustParseAddrPort("10.1.1.10:4000"), netip.IPv4Unspecified())
	})
	require.Panics(t, func() {
		MulticastV6Spec(netip.MustParseAddrPort("[2001::1]:4000"), 0)
	})
}
