package shutdown

import (
	"context"
	"sync"
	"sync/atomic"
)

// Signal is set at most once and is never reset. Long-running loops either poll it via
// IsSet or select on Done; handler tasks derive their contexts from Context, so setting
// the signal cancels them too.
type Signal struct {
	once   sync.Once
	set    atomic.Bool
	ctx    context.Context
	cancel context.CancelFunc
}

func NewSignal() *Signal {
	ctx, cancel := context.WithCancel(context.Background())

	return &Signal{
		ctx:    ctx,
		cancel: cancel,
	}
}

// Set raises the signal. Only the first call has any effect, and it reports whether it was
// the one.
func (s *Signal) Set() (first bool) {
	s.once.Do(func() {
		s.set.Store(true)
		s.cancel()
		first = true
	})

	return first
}

// IsSet reports whether the signal was raised.
func (s *Signal) IsSet() bool {
	return s.set.Load()
}

// Done is closed as soon as the signal is raised.
func (s *Signal) Done() <-chan struct{} {
	return s.ctx.Done()
}

// Context is cancelled as soon as the signal is raised.
func (s *Signal) Context() context.Context {
	return s.ctx
}
