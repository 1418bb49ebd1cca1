package keywalk

import (
	"sync"

	"github.com/rafaelsanzio/keywalk/internal/walkerr"
)

// Mode selects what a Driver run computes.
type Mode int

const (
	// ModeEnumerate emits every walk-derived string in the window.
	ModeEnumerate Mode = iota
	// ModeCount computes the exact count without enumerating ("dry run").
	ModeCount
)

// RunOptions bundles everything one Driver.Run call needs: the starting
// keys in emission order, the length window, the mode, and an optional
// restart string.
type RunOptions struct {
	Starts []byte
	Min    int
	Max    int
	Mode   Mode

	// Restart, if non-empty, resumes enumeration past a previously
	// emitted string. It is consumed at most once, against the first
	// starting key whose base character equals Restart's first byte; a
	// mismatch against every starting key is a KindConfiguration error. Only
	// meaningful when Mode == ModeEnumerate.
	Restart []byte

	// StackCeiling bounds the worst-case traversal stack depth. Zero
	// selects DefaultStackCeiling.
	StackCeiling int

	// Sink receives one emitted string per call, in the caller-supplied
	// order of Starts, concatenated across starting keys. Required when
	// Mode == ModeEnumerate; ignored otherwise.
	Sink Sink
}

// Report is the result of a Driver.Run call: the counts (ModeCount) or
// the number of strings actually emitted (ModeEnumerate).
type Report struct {
	Mode    Mode
	Counts  Counts
	Emitted uint64
}

// Driver orchestrates one run of the counting or enumeration engine
// across every requested starting key, consuming at most one restart
// string. The mutex lets a single Driver be shared by concurrent
// callers — the HTTP service layer keeps one Driver per loaded keyboard
// and serializes requests through it, preserving the single-writer
// discipline the underlying engines assume.
type Driver struct {
	mu sync.Mutex
}

// Run validates opts against kb and executes the requested mode.
func (d *Driver) Run(kb *Keyboard, opts RunOptions) (Report, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := validateMinMax(opts.Min, opts.Max); err != nil {
		return Report{}, err
	}
	if len(opts.Starts) == 0 {
		return Report{}, walkerr.Argumentf("at least one starting key is required")
	}
	ceiling := opts.StackCeiling
	if ceiling <= 0 {
		ceiling = DefaultStackCeiling
	}
	if err := kb.CheckStackCeiling(opts.Max, ceiling); err != nil {
		return Report{}, err
	}

	switch opts.Mode {
	case ModeCount:
		counts, err := kb.Count(opts.Starts, opts.Min, opts.Max)
		if err != nil {
			return Report{}, err
		}
		return Report{Mode: ModeCount, Counts: counts}, nil
	case ModeEnumerate:
		return d.runEnumerate(kb, opts)
	default:
		return Report{}, walkerr.Argumentf("unknown mode %d", opts.Mode)
	}
}

func (d *Driver) runEnumerate(kb *Keyboard, opts RunOptions) (Report, error) {
	if opts.Sink == nil {
		return Report{}, walkerr.Argumentf("ModeEnumerate requires a Sink")
	}

	var emitted uint64
	countingSink := func(s string) {
		emitted++
		opts.Sink(s)
	}

	restartConsumed := len(opts.Restart) == 0
	seen := make(map[byte]bool, len(opts.Starts))
	for _, s := range opts.Starts {
		if seen[s] {
			return Report{}, walkerr.Argumentf("duplicate start key %s", formatByte(s))
		}
		seen[s] = true

		idx, ok := kb.FindByChar(s)
		if !ok {
			return Report{}, walkerr.Configurationf("unknown start key %s", formatByte(s))
		}
		if !kb.Keys[idx].Active {
			return Report{}, walkerr.Configurationf("start key %s is inactive", formatByte(s))
		}

		if !restartConsumed && opts.Restart[0] == s {
			if err := kb.EnumerateFromRestart(idx, opts.Min, opts.Max, opts.Restart, countingSink); err != nil {
				return Report{}, err
			}
			restartConsumed = true
			continue
		}
		if err := kb.Enumerate(idx, opts.Min, opts.Max, countingSink); err != nil {
			return Report{}, err
		}
	}
	if !restartConsumed {
		return Report{}, walkerr.Configurationf("restart string does not match any requested start key")
	}
	return Report{Mode: ModeEnumerate, Emitted: emitted}, nil
}
