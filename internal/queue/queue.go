package queue

import (
	"errors"
	"net"
	"sync"
	"time"

	"github.com/indigo-web/wicket/config"
)

var ErrFull = errors.New("connection queue is full")

// Entry is an accepted connection waiting for a handler. Its ownership moves along with it:
// whoever popped an entry is the only one responsible for closing the connection.
type Entry struct {
	Conn     net.Conn
	Addr     net.Addr
	Accepted time.Time
}

// Queue is the single point of coordination between the accept loop and the handler loop.
// All operations hold the lock only for a single push or pop.
type Queue struct {
	mu       sync.Mutex
	entries  []Entry
	order    config.Order
	capacity int
	ready    chan struct{}
}

// New returns an empty queue. Zero capacity means unbounded.
func New(order config.Order, capacity int) *Queue {
	if order != config.FIFO {
		order = config.LIFO
	}

	return &Queue{
		order:    order,
		capacity: capacity,
		ready:    make(chan struct{}, 1),
	}
}

// Push appends the entry. It fails only if the queue is bounded and already full, in which
// case the ownership stays with the caller.
func (q *Queue) Push(entry Entry) error {
	q.mu.Lock()
	if q.capacity > 0 && len(q.entries) >= q.capacity {
		q.mu.Unlock()
		return ErrFull
	}

	q.entries = append(q.entries, entry)
	q.mu.Unlock()

	select {
	case q.ready <- struct{}{}:
	default:
	}

	return nil
}

// Pop removes a single entry. The most recently pushed one is returned in LIFO mode,
// the oldest one in FIFO.
func (q *Queue) Pop() (entry Entry, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.entries) == 0 {
		return entry, false
	}

	switch q.order {
	case config.FIFO:
		entry = q.entries[0]
		q.entries[0] = Entry{}
		q.entries = q.entries[1:]
	default:
		last := len(q.entries) - 1
		entry = q.entries[last]
		q.entries[last] = Entry{}
		q.entries = q.entries[:last]
	}

	if len(q.entries) == 0 {
		// let the backing array go once in a while, otherwise a FIFO queue keeps
		// sliding over an ever-growing one
		q.entries = nil
	}

	return entry, true
}

// Drain removes all the entries at once.
func (q *Queue) Drain() []Entry {
	q.mu.Lock()
	entries := q.entries
	q.entries = nil
	q.mu.Unlock()

	return entries
}

// Len returns the number of waiting entries.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	return len(q.entries)
}

// Ready is notified after pushes. The notification is coalesced: many pushes may result
// in a single wake-up, so the consumer must pop until the queue is empty.
func (q *Queue) Ready() <-chan struct{} {
	return q.ready
}

// Order returns the dequeue order in effect.
func (q *Queue) Order() config.Order {
	return q.order
}
