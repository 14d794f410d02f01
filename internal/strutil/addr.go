package strutil

import (
	"net"
	"strconv"
)

const defaultAddress = "127.0.0.1"

// Address joins host and port. Empty host falls back to the loopback.
func Address(host string, port uint16) string {
	if len(host) == 0 {
		host = defaultAddress
	}

	return net.JoinHostPort(host, strconv.Itoa(int(port)))
}
