package transport

import (
	"net"

	"github.com/indigo-web/wicket/config"
	"github.com/indigo-web/wicket/internal/shutdown"
)

// OnConn takes the ownership over an accepted connection.
type OnConn func(conn net.Conn)

type Transport interface {
	Bind(addr string) error
	Listen(sig *shutdown.Signal, cfg config.NET, cb OnConn) error
	Addr() net.Addr
	Close()
}
