//go:build darwin || linux

package internal

import (
	"golang.org/x/sys/unix"
	"syscall"
)

// multicastSockopts marks a multicast listener socket address-reusable
// before bind, so several receivers can share one group port.
func multicastSockopts(network string, address string, conn syscall.RawConn) error {
	var opErr error
	if err := conn.Control(func(fd uintptr) {
		opErr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEADDR, 1)
		if opErr != nil {
			return
		}
		opErr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEPORT, 1)
	}); err != nil {
		return err
	}
	return opErr
}
