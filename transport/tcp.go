package transport

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"os"
	"syscall"
	"time"

	"github.com/indigo-web/wicket/config"
	"github.com/indigo-web/wicket/internal/shutdown"
	"github.com/indigo-web/wicket/internal/timer"
	"golang.org/x/sys/unix"
)

var aLongTimeAgo = time.Unix(1, 0)

type listener interface {
	net.Listener
	SetDeadline(t time.Time) error
}

var _ Transport = new(TCP)

// TCP is the accept loop. It never spawns anything on its own: every accepted connection is
// handed over to the callback synchronously, so callbacks observe connections in the order
// they were accepted.
type TCP struct {
	l         listener
	logger    *slog.Logger
	reusePort bool
}

// NewTCP returns an unbound transport. With reusePort set, the listening socket gets
// SO_REUSEPORT, so multiple processes may share the same port.
func NewTCP(logger *slog.Logger, reusePort bool) *TCP {
	return &TCP{
		logger:    logger,
		reusePort: reusePort,
	}
}

func bindTCP(addr string, reusePort bool) (*net.TCPListener, error) {
	lc := net.ListenConfig{}
	if reusePort {
		lc.Control = setReusePort
	}

	l, err := lc.Listen(context.Background(), "tcp", addr)
	if err != nil {
		return nil, err
	}

	return l.(*net.TCPListener), nil
}

func setReusePort(_, _ string, c syscall.RawConn) error {
	var sockErr error
	err := c.Control(func(fd uintptr) {
		sockErr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEPORT, 1)
	})
	if err != nil {
		return err
	}

	return sockErr
}

func (t *TCP) Bind(addr string) (err error) {
	t.l, err = bindTCP(addr, t.reusePort)
	return err
}

// Addr returns the bound address. Useful when binding on port 0.
func (t *TCP) Addr() net.Addr {
	return t.l.Addr()
}

// Listen accepts connections until the signal is raised. Every Accept() is bounded by
// cfg.AcceptLoopInterruptPeriod, after which the signal is checked again. Raising the
// signal also interrupts a pending Accept() right away.
func (t *TCP) Listen(sig *shutdown.Signal, cfg config.NET, cb OnConn) error {
	interrupt := context.AfterFunc(sig.Context(), func() {
		_ = t.l.SetDeadline(aLongTimeAgo)
	})
	defer interrupt()

	for !sig.IsSet() {
		if err := t.l.SetDeadline(timer.Deadline(cfg.AcceptLoopInterruptPeriod)); err != nil {
			return err
		}

		conn, err := t.l.Accept()
		switch {
		case err == nil:
			cb(conn)
		case errors.Is(err, os.ErrDeadlineExceeded):
		case errors.Is(err, net.ErrClosed):
			if !sig.IsSet() {
				return err
			}
		default:
			t.logger.Error("cannot accept connection", "error", err)
		}
	}

	t.logger.Info("stopped listening", "addr", t.l.Addr().String())
	return nil
}

func (t *TCP) Close() {
	_ = t.l.Close()
}
