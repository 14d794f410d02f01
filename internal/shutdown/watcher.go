package shutdown

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"

	"golang.org/x/sys/unix"
)

// ErrRegister is returned when the interrupt listener couldn't be set up. Without it
// there's no way to stop the server cleanly, so it must be treated as fatal.
var ErrRegister = errors.New("cannot register interrupt listener")

// Notifier subscribes to external interrupt notifications.
type Notifier interface {
	// Register starts the delivery. The returned stop function must be called once the
	// channel isn't needed anymore.
	Register() (notifications <-chan os.Signal, stop func(), err error)
}

// OSNotifier delivers SIGINT and SIGTERM.
type OSNotifier struct{}

func (OSNotifier) Register() (<-chan os.Signal, func(), error) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, unix.SIGINT, unix.SIGTERM)

	return ch, func() { signal.Stop(ch) }, nil
}

// Watcher listens for an interrupt and raises the signal. The registration is split from
// waiting so a failure can be reported before anything starts serving.
type Watcher struct {
	sig           *Signal
	logger        *slog.Logger
	notifications <-chan os.Signal
	stopOnce      sync.Once
	stop          func()
}

// NewWatcher registers the notifier right away.
func NewWatcher(n Notifier, sig *Signal, logger *slog.Logger) (*Watcher, error) {
	notifications, stop, err := n.Register()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRegister, err)
	}

	return &Watcher{
		sig:           sig,
		logger:        logger,
		notifications: notifications,
		stop:          stop,
	}, nil
}

// Wait blocks until either an interrupt arrives, which raises the signal, or ctx is done, or
// the signal was raised by somebody else. In the last two cases the signal is left untouched.
func (w *Watcher) Wait(ctx context.Context) {
	defer w.Close()

	select {
	case s := <-w.notifications:
		w.logger.Info("shutting server down", "signal", s.String())
		w.sig.Set()
	case <-ctx.Done():
	case <-w.sig.Done():
	}
}

// Close stops the delivery of notifications. It's safe to call it more than once.
func (w *Watcher) Close() {
	w.stopOnce.Do(w.stop)
}

// Watch is a shorthand for NewWatcher followed by Wait.
func Watch(ctx context.Context, n Notifier, sig *Signal, logger *slog.Logger) error {
	w, err := NewWatcher(n, sig, logger)
	if err != nil {
		return err
	}

	w.Wait(ctx)
	return nil
}
