package dispatcher

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/indigo-web/wicket/config"
	"github.com/indigo-web/wicket/internal/queue"
	"github.com/indigo-web/wicket/internal/shutdown"
)

// Handler processes a single connection. It must return as soon as ctx is done.
type Handler interface {
	Serve(ctx context.Context, conn net.Conn) error
}

// Dispatcher is the handler loop. It takes connections off the queue and serves each one
// in its own goroutine, bounded by the handler timeout.
type Dispatcher struct {
	cfg     config.Dispatch
	queue   *queue.Queue
	handler Handler
	logger  *slog.Logger
}

func New(cfg config.Dispatch, q *queue.Queue, handler Handler, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		cfg:     cfg,
		queue:   q,
		handler: handler,
		logger:  logger,
	}
}

// Run dequeues connections until the signal is raised. Once it is, in-flight handlers are
// given cfg.GracePeriod to finish, then cancelled. Run returns only after every handler
// returned and every connection still queued is closed.
func (d *Dispatcher) Run(sig *shutdown.Signal) error {
	// handlers don't inherit the signal's context, otherwise there'd be no grace period
	base, cancelAll := context.WithCancel(context.WithoutCancel(sig.Context()))
	defer cancelAll()

	var wg sync.WaitGroup

	for !sig.IsSet() {
		entry, ok := d.queue.Pop()
		if !ok {
			d.idle(sig)
			continue
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			d.handle(base, entry)
		}()
	}

	d.awaitGrace(&wg)
	cancelAll()
	wg.Wait()

	dropped := d.CloseQueued()
	d.logger.Info("stopped handling clients", "dropped", dropped)

	return nil
}

// idle blocks until either something is pushed, the idle period elapses or the signal
// is raised, whichever is first.
func (d *Dispatcher) idle(sig *shutdown.Signal) {
	timer := time.NewTimer(d.cfg.IdlePeriod)
	defer timer.Stop()

	select {
	case <-d.queue.Ready():
	case <-timer.C:
	case <-sig.Done():
	}
}

func (d *Dispatcher) handle(base context.Context, entry queue.Entry) {
	ctx, cancel := context.WithTimeout(base, d.cfg.HandlerTimeout)
	defer cancel()

	err := d.handler.Serve(ctx, entry.Conn)
	_ = entry.Conn.Close()

	switch {
	case err == nil:
	case errors.Is(err, context.DeadlineExceeded):
		d.logger.Warn("handler timed out, dropping connection",
			"remote", entry.Addr.String(),
			"timeout", d.cfg.HandlerTimeout,
		)
	case errors.Is(err, context.Canceled):
		d.logger.Debug("handler cancelled", "remote", entry.Addr.String())
	default:
		d.logger.Error("handler failed", "remote", entry.Addr.String(), "error", err)
	}
}

func (d *Dispatcher) awaitGrace(wg *sync.WaitGroup) {
	if d.cfg.GracePeriod <= 0 {
		return
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	timer := time.NewTimer(d.cfg.GracePeriod)
	defer timer.Stop()

	select {
	case <-done:
	case <-timer.C:
		d.logger.Warn("grace period is over, cancelling in-flight handlers")
	}
}

// CloseQueued closes the connections that never made it to a handler and returns how
// many there were. The accept loop may still push a few after Run returned, so it's
// worth calling once both loops have stopped.
func (d *Dispatcher) CloseQueued() int {
	entries := d.queue.Drain()
	for _, entry := range entries {
		_ = entry.Conn.Close()
	}

	return len(entries)
}
