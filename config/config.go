package config

import (
	"time"
)

// Order defines in which order queued connections are dequeued.
type Order uint8

const (
	// LIFO serves the most recently accepted connection first. Under sustained load
	// older connections may starve.
	LIFO Order = iota + 1
	// FIFO serves connections in the order they were accepted.
	FIFO
)

func (o Order) String() string {
	switch o {
	case LIFO:
		return "LIFO"
	case FIFO:
		return "FIFO"
	default:
		return "unknown"
	}
}

type (
	NET struct {
		// Host is the address the listener binds to. Empty means the loopback.
		Host string
		// Port is the TCP port to listen on.
		Port uint16
		// ReadBufferSize is a size of buffer in bytes which will be used to read from
		// socket. A request head may span multiple reads.
		ReadBufferSize int
		// MaxHeaderSize limits the request line together with headers. Requests exceeding it
		// are dropped with status.ErrHeaderFieldsTooLarge.
		MaxHeaderSize int
		// AcceptLoopInterruptPeriod controls how often will the Accept() call be interrupted
		// in order to check whether it's time to stop.
		AcceptLoopInterruptPeriod time.Duration
		// ReusePort sets SO_REUSEPORT on the listening socket.
		ReusePort bool `test:"nullable"`
	}

	Dispatch struct {
		// Order of dequeuing accepted connections.
		Order Order
		// QueueCapacity limits how many accepted connections may wait for a handler. Zero
		// disables the limit, so the queue grows as long as the handler loop lags behind.
		QueueCapacity int `test:"nullable"`
		// IdlePeriod is how long the handler loop sleeps when there's nothing queued.
		// A push wakes it earlier.
		IdlePeriod time.Duration
		// HandlerTimeout bounds the whole per-connection pipeline: reading, parsing,
		// routing, formatting and writing. On expiry the connection is dropped without
		// a response.
		HandlerTimeout time.Duration
		// GracePeriod is how long in-flight handlers are awaited on shutdown before
		// being forcibly cancelled. Zero cancels them right away.
		GracePeriod time.Duration `test:"nullable"`
	}

	Body struct {
		// MaxSize is the maximal number of body bytes collected after the head when
		// a Content-Length is announced.
		MaxSize int
	}

	Static struct {
		// Root is the directory static content is served from.
		Root string
		// Index is the file name looked up inside directories.
		Index string
		// NotFound is the page served when nothing else matched, relative to Root.
		NotFound string
		// Aliases are paths served by the root index.
		Aliases []string
	}
)

// Config holds settings used across various parts of wicket, mainly restrictions, limitations
// and timings.
//
// You must ALWAYS modify defaults (returned via Default()) and NEVER try to initialize the
// config manually, because most likely this will result in ambiguous errors.
type Config struct {
	NET      NET
	Dispatch Dispatch
	Body     Body
	Static   Static
}

// Default returns default config.
func Default() *Config {
	return &Config{
		NET: NET{
			Host:                      "127.0.0.1",
			Port:                      3000,
			ReadBufferSize:            1024,
			MaxHeaderSize:             16 * 1024,
			AcceptLoopInterruptPeriod: 1 * time.Second,
		},
		Dispatch: Dispatch{
			Order:          LIFO,
			QueueCapacity:  0,
			IdlePeriod:     50 * time.Millisecond,
			HandlerTimeout: 5 * time.Second,
			GracePeriod:    0,
		},
		Body: Body{
			MaxSize: 100 * 1024,
		},
		Static: Static{
			Root:     "./www",
			Index:    "index.html",
			NotFound: "not-found/index.html",
			Aliases:  []string{"/", "/index.html", "/www/index.html", "/www"},
		},
	}
}
