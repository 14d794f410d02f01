package accesslog

import (
	"io"
	"sync"
	"time"

	json "github.com/json-iterator/go"
)

// Record describes a single finished exchange. Fields of a request that failed to parse
// are left empty.
type Record struct {
	ID         string  `json:"id"`
	Remote     string  `json:"remote"`
	Method     string  `json:"method,omitempty"`
	Path       string  `json:"path,omitempty"`
	Proto      string  `json:"proto,omitempty"`
	Status     int     `json:"status,omitempty"`
	Bytes      int     `json:"bytes"`
	DurationMs float64 `json:"duration_ms"`
	Error      string  `json:"error,omitempty"`
}

// Writer encodes records as newline-delimited JSON. It's safe for concurrent use.
type Writer struct {
	mu  sync.Mutex
	out io.Writer
}

func New(out io.Writer) *Writer {
	return &Writer{out: out}
}

// Write encodes the record. A nil Writer discards everything, so callers don't need to
// check whether access logging is enabled.
func (w *Writer) Write(record Record) error {
	if w == nil {
		return nil
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	stream := json.ConfigDefault.BorrowStream(w.out)
	stream.WriteVal(record)
	stream.WriteRaw("\n")
	err := stream.Flush()
	json.ConfigDefault.ReturnStream(stream)

	return err
}

// Duration converts a duration into fractional milliseconds.
func Duration(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
