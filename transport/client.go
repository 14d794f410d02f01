package transport

import (
	"net"
)

type Client interface {
	Read() ([]byte, error)
	Pushback([]byte)
	Write([]byte) (int, error)
	Conn() net.Conn
	Remote() net.Addr
	Close() error
}

// client doesn't manage deadlines on its own. Whoever owns the connection is expected to
// set them, as the deadline usually spans the whole exchange rather than a single read.
type client struct {
	conn    net.Conn
	buff    []byte
	pending []byte
}

func NewClient(conn net.Conn, buff []byte) Client {
	return &client{
		buff: buff,
		conn: conn,
	}
}

// Read reads data into the internal buffer and returns a piece of it back. The returned
// slice is valid until the next call.
func (c *client) Read() ([]byte, error) {
	if len(c.pending) > 0 {
		pending := c.pending
		c.pending = nil

		return pending, nil
	}

	n, err := c.conn.Read(c.buff)
	return c.buff[:n], err
}

// Pushback preserves a chunk of data from previous read for the next read.
func (c *client) Pushback(b []byte) {
	c.pending = b
}

// Conn unwraps the underlying net.Conn.
func (c *client) Conn() net.Conn {
	return c.conn
}

// Write writes data into the underlying connection.
func (c *client) Write(b []byte) (int, error) {
	return c.conn.Write(b)
}

// Remote returns the remote address of the connection.
func (c *client) Remote() net.Addr {
	return c.conn.RemoteAddr()
}

// Close closes the connection.
func (c *client) Close() error {
	return c.conn.Close()
}
