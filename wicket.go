package wicket

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"time"

	"github.com/indigo-web/wicket/config"
	"github.com/indigo-web/wicket/dispatcher"
	"github.com/indigo-web/wicket/internal/accesslog"
	"github.com/indigo-web/wicket/internal/queue"
	httpserver "github.com/indigo-web/wicket/internal/server/http"
	"github.com/indigo-web/wicket/internal/shutdown"
	"github.com/indigo-web/wicket/internal/strutil"
	"github.com/indigo-web/wicket/router/static"
	"github.com/indigo-web/wicket/transport"
	"golang.org/x/sync/errgroup"
)

// App wires the accept loop, the connection queue, the handler loop and the interrupt
// watcher together. An App serves only once.
type App struct {
	cfg       *config.Config
	logger    *slog.Logger
	accessLog io.Writer
	notifier  shutdown.Notifier
	sig       *shutdown.Signal
	hooks     hooks
	addr      net.Addr
}

// New returns a new App instance listening on the port of the loopback.
func New(port uint16) *App {
	cfg := config.Default()
	cfg.NET.Port = port

	return &App{
		cfg:      cfg,
		logger:   slog.Default(),
		notifier: shutdown.OSNotifier{},
		sig:      shutdown.NewSignal(),
	}
}

// Tune replaces the config. The port passed to New is overridden by cfg.NET.Port.
func (a *App) Tune(cfg *config.Config) *App {
	a.cfg = cfg
	return a
}

// Logger replaces the default slog logger.
func (a *App) Logger(logger *slog.Logger) *App {
	a.logger = logger
	return a
}

// AccessLog enables JSON access logging into w.
func (a *App) AccessLog(w io.Writer) *App {
	a.accessLog = w
	return a
}

// Notifier replaces the source of interrupt notifications, which is SIGINT and SIGTERM
// by default.
func (a *App) Notifier(n shutdown.Notifier) *App {
	a.notifier = n
	return a
}

// NotifyOnStart calls the callback at the moment, when the listener is bound and both loops
// are about to start.
func (a *App) NotifyOnStart(cb func()) *App {
	a.hooks.OnStart = cb
	return a
}

// NotifyOnStop calls the callback at the moment, when both loops are stopped. It's guaranteed,
// that at the moment as the callback is called, the server isn't able to accept any new connections
// and all the clients are already disconnected
func (a *App) NotifyOnStop(cb func()) *App {
	a.hooks.OnStop = cb
	return a
}

// Addr returns the address the listener is bound to. It's valid only from the moment the
// OnStart hook is called.
func (a *App) Addr() net.Addr {
	return a.addr
}

// Serve blocks until an interrupt arrives, Stop is called or ctx is done. Failing to register
// the interrupt listener is fatal, in this case nothing is started at all.
func (a *App) Serve(ctx context.Context) error {
	watcher, err := shutdown.NewWatcher(a.notifier, a.sig, a.logger)
	if err != nil {
		return err
	}

	tcp := transport.NewTCP(a.logger, a.cfg.NET.ReusePort)
	addr := strutil.Address(a.cfg.NET.Host, a.cfg.NET.Port)
	if err = tcp.Bind(addr); err != nil {
		watcher.Close()
		return fmt.Errorf("bind %s: %w", addr, err)
	}

	defer tcp.Close()
	a.addr = tcp.Addr()

	q := queue.New(a.cfg.Dispatch.Order, a.cfg.Dispatch.QueueCapacity)
	server := httpserver.NewServer(a.cfg, static.New(a.cfg.Static), a.logger, a.newAccessLog())
	d := dispatcher.New(a.cfg.Dispatch, q, server, a.logger)

	g, gctx := errgroup.WithContext(ctx)
	// either loop failing, or the caller giving up, brings everything down
	stop := context.AfterFunc(gctx, func() {
		a.sig.Set()
	})
	defer stop()

	g.Go(func() error {
		watcher.Wait(gctx)
		return nil
	})
	g.Go(func() error {
		return tcp.Listen(a.sig, a.cfg.NET, a.enqueue(q))
	})
	g.Go(func() error {
		return d.Run(a.sig)
	})

	a.logger.Info("listening",
		"addr", a.addr.String(),
		"order", q.Order().String(),
		"root", a.cfg.Static.Root,
	)
	callIfNotNil(a.hooks.OnStart)

	err = g.Wait()
	if dropped := d.CloseQueued(); dropped > 0 {
		a.logger.Debug("closed connections queued during shutdown", "count", dropped)
	}

	callIfNotNil(a.hooks.OnStop)

	return err
}

// Stop raises the shutdown signal. The call isn't blocking: both loops stop shortly after,
// Serve returns once they do.
func (a *App) Stop() {
	a.sig.Set()
}

func (a *App) enqueue(q *queue.Queue) transport.OnConn {
	return func(conn net.Conn) {
		entry := queue.Entry{
			Conn:     conn,
			Addr:     conn.RemoteAddr(),
			Accepted: time.Now(),
		}

		if err := q.Push(entry); err != nil {
			a.logger.Warn("dropping connection", "remote", entry.Addr.String(), "error", err)
			_ = conn.Close()
			return
		}

		a.logger.Debug("accepted connection", "remote", entry.Addr.String())
	}
}

func (a *App) newAccessLog() *accesslog.Writer {
	if a.accessLog == nil {
		return nil
	}

	return accesslog.New(a.accessLog)
}

type hooks struct {
	OnStart, OnStop func()
}

func callIfNotNil(f func()) {
	if f != nil {
		f()
	}
}
