package timer

import (
	"sync"
	"sync/atomic"
	"time"
)

// Time contains the unix-time in milliseconds updated every [Resolution] milliseconds
var Time = new(atomic.Int64)

// Resolution is the frequency at which time is updated. Default 500ms are
// precise enough for setting I/O deadlines
const Resolution = 500 * time.Millisecond

var start sync.Once

// Now returns the coarse current time. The ticking goroutine is started on the first
// call, so merely importing the package costs nothing.
func Now() time.Time {
	start.Do(run)
	millis := Time.Load()
	return time.Unix(millis/1000, (millis%1000)*1e6)
}

// Deadline returns the coarse time shifted by d. Because of the resolution, the deadline
// might come earlier than exactly d, but never later. Durations not exceeding the resolution
// are counted from the precise time, otherwise the deadline could already be in the past.
func Deadline(d time.Duration) time.Time {
	if d <= Resolution {
		return time.Now().Add(d)
	}

	return Now().Add(d)
}

func run() {
	Time.Store(time.Now().UnixMilli())

	go func() {
		for {
			time.Sleep(Resolution)
			Time.Store(time.Now().UnixMilli())
		}
	}()
}
