// Package progress provides the CLI driver's periodic progress reporting
// and append-only structured log, kept out of the enumeration engine
// itself: progress reporting is externalized to a callback so the
// engine's traversal code stays free of logging concerns.
//
// A long-running batch enumerator needs to report liveness across runs
// that can take hours, so this package uses structured JSON-lines
// logging via github.com/rs/zerolog.
package progress

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// DefaultInterval is the number of emissions between progress callbacks:
// a callback invoked every N = 500_000_000 emissions by default,
// configurable for tests.
const DefaultInterval = 500_000_000

// Tracker carries the mutable state a long enumeration run reports
// through: the current emission count, the last emitted string, and a
// structured logger. It is passed explicitly into the engine's sink and
// into the signal handler, rather than kept as package-level mutable
// state.
type Tracker struct {
	logger   zerolog.Logger
	interval uint64
	start    time.Time

	count uint64
	last  string

	// Stop is polled by the sink wrapper built by NewSink after each
	// emission; a signal handler sets it to request early, flushed
	// termination. The engine itself never reads this field.
	Stop bool
}

// New builds a Tracker that writes one JSON object per line to w, using
// interval as the emission count between progress log lines. interval <=
// 0 is replaced with DefaultInterval.
func New(w io.Writer, interval int) *Tracker {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Tracker{
		logger:   zerolog.New(w).With().Timestamp().Logger(),
		interval: uint64(interval),
		start:    time.Now(),
	}
}

// Startup logs the banner recording the run's options, once, before any
// emission.
func (t *Tracker) Startup(fields map[string]any) {
	ev := t.logger.Info().Str("event", "startup")
	for k, v := range fields {
		ev = ev.Interface(k, v)
	}
	ev.Msg("keywalk starting")
}

// Signal logs receipt of a signal that is about to terminate the run.
func (t *Tracker) Signal(name string) {
	t.logger.Info().
		Str("event", "signal").
		Str("signal", name).
		Uint64("emitted", t.count).
		Str("last", t.last).
		Msg("signal received")
}

// stopSignal is the sentinel NewSink's wrapper panics with once Stop has
// been set. The engine's Sink type is func(string) with no return
// value, so a requested stop is threaded back out of the traversal
// through panic/recover instead of a callback return value; IsStop turns
// the recovered value back into a clean, non-error condition.
type stopSignal struct{}

// NewSink wraps sink so that every call is counted, remembered as the
// last emission, and every interval-th call also writes a progress log
// line. Once Stop is set (by a signal handler, between emissions), the
// next call unwinds the traversal via panic(stopSignal{}); pair with a
// recover+IsStop block around the engine call.
func (t *Tracker) NewSink(sink func(string)) func(string) {
	return func(s string) {
		sink(s)
		t.count++
		t.last = s
		if t.count%t.interval == 0 {
			t.logger.Info().
				Str("event", "progress").
				Uint64("emitted", t.count).
				Float64("elapsed_seconds", time.Since(t.start).Seconds()).
				Str("last", s).
				Msg("progress")
		}
		if t.Stop {
			panic(stopSignal{})
		}
	}
}

// IsStop reports whether a value recovered from panic is the stop
// sentinel a NewSink wrapper raises. recover() must be called directly
// inside the caller's own deferred function — Go only honors a recover
// call made there — so this helper classifies the already-recovered
// value rather than calling recover itself:
//
//	defer func() {
//	    if r := recover(); r != nil {
//	        if !progress.IsStop(r) {
//	            panic(r)
//	        }
//	        stopped = true
//	    }
//	}()
func IsStop(r any) bool {
	_, ok := r.(stopSignal)
	return ok
}

// Flush logs a final banner. Called once, on normal completion or on
// signal-induced termination, before the process exits.
func (t *Tracker) Flush(reason string) {
	t.logger.Info().
		Str("event", "flush").
		Str("reason", reason).
		Uint64("emitted", t.count).
		Str("last", t.last).
		Float64("elapsed_seconds", time.Since(t.start).Seconds()).
		Msg("flush")
}

// Count reports the number of emissions observed so far.
func (t *Tracker) Count() uint64 { return t.count }

// Last reports the most recently observed emission.
func (t *Tracker) Last() string { return t.last }
