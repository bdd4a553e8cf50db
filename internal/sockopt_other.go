//go:build !(darwin || linux)

package internal

import (
	"syscall"
)

func multicastSockopts(network string, address string, conn syscall.RawConn) error {
	return nil
}
