package dummy

import (
	"io"
	"net"
	"os"
	"sync"
	"time"
)

var _ net.Conn = new(Conn)

// Conn is a scripted net.Conn. Every Read returns the next chunk it was initialised with.
// When the chunks run out, it either returns io.EOF or, if hanging, blocks until the deadline
// expires or the connection is closed. All the written data is journaled.
type Conn struct {
	mu       sync.Mutex
	chunks   [][]byte
	written  []byte
	hang     bool
	closed   bool
	deadline time.Time
	wake     chan struct{}
}

func NewConn(chunks ...[]byte) *Conn {
	return &Conn{
		chunks: chunks,
		wake:   make(chan struct{}),
	}
}

// Hang makes reads block after all chunks are consumed, like a peer that went silent.
func (c *Conn) Hang() *Conn {
	c.hang = true
	return c
}

func (c *Conn) Read(b []byte) (n int, err error) {
	for {
		c.mu.Lock()
		switch {
		case c.closed:
			c.mu.Unlock()
			return 0, net.ErrClosed
		case !c.deadline.IsZero() && !time.Now().Before(c.deadline):
			c.mu.Unlock()
			return 0, os.ErrDeadlineExceeded
		case len(c.chunks) > 0:
			n = copy(b, c.chunks[0])
			if n < len(c.chunks[0]) {
				c.chunks[0] = c.chunks[0][n:]
			} else {
				c.chunks = c.chunks[1:]
			}
			c.mu.Unlock()
			return n, nil
		case !c.hang:
			c.mu.Unlock()
			return 0, io.EOF
		}

		wake, deadline := c.wake, c.deadline
		c.mu.Unlock()

		if deadline.IsZero() {
			<-wake
			continue
		}

		timer := time.NewTimer(time.Until(deadline))
		select {
		case <-wake:
		case <-timer.C:
		}
		timer.Stop()
	}
}

func (c *Conn) Write(b []byte) (n int, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return 0, net.ErrClosed
	}

	if !c.deadline.IsZero() && !time.Now().Before(c.deadline) {
		return 0, os.ErrDeadlineExceeded
	}

	c.written = append(c.written, b...)
	return len(b), nil
}

// Written returns everything written so far.
func (c *Conn) Written() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return string(c.written)
}

// Closed tells whether Close was called.
func (c *Conn) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.closed
}

func (c *Conn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.closed {
		c.closed = true
		c.notify()
	}

	return nil
}

func (c *Conn) LocalAddr() net.Addr {
	return &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 3000}
}

func (c *Conn) RemoteAddr() net.Addr {
	return &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 50000}
}

func (c *Conn) SetDeadline(t time.Time) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.deadline = t
	c.notify()
	return nil
}

func (c *Conn) SetReadDeadline(t time.Time) error {
	return c.SetDeadline(t)
}

func (c *Conn) SetWriteDeadline(time.Time) error {
	return nil
}

// notify wakes up blocked readers. Must be called with the lock held.
func (c *Conn) notify() {
	close(c.wake)
	c.wake = make(chan struct{})
}
