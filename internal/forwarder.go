package internal

import (
	"context"
	"fmt"
	"github.com/udprelay/udprelay"
	"github.com/udprelay/udprelay/net"
	stdnet "net"
	"net/netip"
)

// mtu caps a relayed datagram at the standard Ethernet payload size.
// The receive call truncates anything larger; the truncated bytes are
// relayed as received.
const mtu = 1500

// Forwarder owns one relay: the bound listener socket, the per-family
// send sockets and the destination list. It is single-threaded; nothing
// in it is safe for concurrent use.
type Forwarder struct {
	spec     net.ListenerSpec
	dests    []netip.AddrPort
	listener *stdnet.UDPConn
	senders  *Senders
}

// NewForwarder opens the listener and the send sockets. Any bind or
// join failure aborts construction; nothing is retried.
func NewForwarder(ctx context.Context, spec net.ListenerSpec, dests []netip.AddrPort) (*Forwarder, error) {
	listener, err := OpenListener(ctx, spec)
	if err != nil {
		return nil, err
	}
	senders, err := OpenSenders(dests)
	if err != nil {
		_ = listener.Close()
		return nil, err
	}
	return &Forwarder{
		spec:     spec,
		dests:    dests,
		listener: listener,
		senders:  senders,
	}, nil
}

// LocalAddr reports the bound listener address.
func (f *Forwarder) LocalAddr() netip.AddrPort {
	return f.listener.LocalAddr().(*stdnet.UDPAddr).AddrPort()
}

// Serve relays datagrams until the first receive or send error, or
// until serveCtx is done. Every datagram is retransmitted unmodified to
// all destinations in list order; the origin address is discarded and
// never answered.
func (f *Forwarder) Serve(serveCtx context.Context) error {
	relay.Logger(serveCtx).Infof("relay: listen start, address: %s, kind: %s", f.LocalAddr(), f.spec.Kind)
	go func() {
		<-serveCtx.Done()
		_ = f.listener.Close()
	}()
	buffer := make([]byte, mtu)
	for {
		n, _, rErr := f.listener.ReadFromUDPAddrPort(buffer)
		if rErr != nil {
			select {
			case <-serveCtx.Done():
				return serveCtx.Err()
			default:
				return fmt.Errorf("relay: receive on %s. %w", f.spec, rErr)
			}
		}
		for _, dest := range f.dests {
			if _, sErr := f.senders.Send(buffer[:n], dest); sErr != nil {
				return fmt.Errorf("relay: send to %s. %w", dest, sErr)
			}
		}
	}
}

// Close releases the listener and the send sockets.
func (f *Forwarder) Close() error {
	_ = f.listener.Close()
	return f.senders.Close()
}
