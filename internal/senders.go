package internal

import (
	"fmt"
	"github.com/bytepowered/assert"
	stdnet "net"
	"net/netip"
)

// Senders holds at most one wildcard-bound send socket per address
// family. Sockets are created once, before the relay loop starts, and
// reused for every datagram.
type Senders struct {
	v4 *stdnet.UDPConn
	v6 *stdnet.UDPConn
}

// OpenSenders binds an ephemeral send socket for each family present in
// the destination list. A family with no destination gets no socket.
func OpenSenders(dests []netip.AddrPort) (*Senders, error) {
	senders := &Senders{}
	for _, dest := range dests {
		if dest.Addr().Is4() {
			if senders.v4 != nil {
				continue
			}
			conn, err := stdnet.ListenUDP("udp4", &stdnet.UDPAddr{})
			if err != nil {
				_ = senders.Close()
				return nil, fmt.Errorf("sender: bind udp4. %w", err)
			}
			senders.v4 = conn
		} else {
			if senders.v6 != nil {
				continue
			}
			conn, err := stdnet.ListenUDP("udp6", &stdnet.UDPAddr{})
			if err != nil {
				_ = senders.Close()
				return nil, fmt.Errorf("sender: bind udp6. %w", err)
			}
			senders.v6 = conn
		}
	}
	return senders, nil
}

// Send relays one datagram to dest through the socket of its family.
// The socket always exists because construction derives from the same
// destination list; a miss is a programming error.
func (s *Senders) Send(data []byte, dest netip.AddrPort) (int, error) {
	conn := s.v6
	if dest.Addr().Is4() {
		conn = s.v4
	}
	assert.MustTrue(conn != nil, "sender is not initialized for destination: %s", dest)
	return conn.WriteToUDPAddrPort(data, dest)
}

// Close releases both send sockets.
func (s *Senders) Close() error {
	if s.v4 != nil {
		_ = s.v4.Close()
	}
	if s.v6 != nil {
		_ = s.v6.Close()
	}
	return nil
}
