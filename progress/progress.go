package progress

import (
	"log/slog"
	"strconv"
	"sync/atomic"
)

// Observer is notified once per completed file, success or
// failure. Implementations must be cheap and non-blocking;
// workers call Done from their own goroutines.
type Observer interface {
	Done(path string, err error)
}

// Noop discards notifications. Used when verbose mode is off.
type Noop struct{}

func (Noop) Done(string, error) {}

// Logger reports each completed file through slog together with
// a running count. The total is unknown ("?") while enumeration
// is still streaming; SetTotal pins it once the walk finishes.
type Logger struct {
	count atomic.Int64
	total atomic.Int64
}

// NewLogger returns a Logger with an unknown total.
func NewLogger() *Logger {
	lg := &Logger{}
	lg.total.Store(-1)

	return lg
}

// SetTotal fixes the denominator. Safe to call while workers
// are still completing files.
func (lg *Logger) SetTotal(n int) {
	lg.total.Store(int64(n))
}

// Count returns the number of completions observed so far.
func (lg *Logger) Count() int64 {
	return lg.count.Load()
}

func (lg *Logger) Done(path string, err error) {
	done := lg.count.Add(1)

	total := "?"
	if known := lg.total.Load(); known >= 0 {
		total = strconv.FormatInt(known, 10)
	}

	if err != nil {
		slog.Warn(
			"hashing failed",
			"path", path,
			"done", done,
			"total", total,
			"error", err,
		)

		return
	}

	slog.Info(
		"processed",
		"path", path,
		"done", done,
		"total", total,
	)
}
