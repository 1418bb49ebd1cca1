package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rafaelsanzio/keywalk"
	"github.com/rafaelsanzio/keywalk/internal/configfile"
	"github.com/rafaelsanzio/keywalk/internal/progress"
)

// run executes the CLI and returns the process exit code. It never calls
// os.Exit itself, so it stays testable.
func run(stdout, stderr io.Writer, args []string) int {
	opts, err := parseArgs(args)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
	if opts.help {
		printHelp(stdout)
		return exitOK
	}
	if err := opts.validate(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}

	kb, err := configfile.Load(opts.arrangement)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}

	logf, err := os.OpenFile(opts.logfile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		fmt.Fprintf(stderr, "Error: opening log file: %v\n", err)
		return exitError
	}
	defer logf.Close()

	tracker := progress.New(logf, 0)
	tracker.Startup(map[string]any{
		"arrangement": opts.arrangement,
		"keys":        opts.keys,
		"min":         opts.min,
		"max":         opts.max,
		"dryrun":      opts.dryrun,
		"infinite":    opts.infinite,
		"restart":     opts.restart,
		"stop":        opts.stop,
	})

	// SIGSEGV is deliberately not in this list: the Go runtime terminates
	// the process on a genuine segmentation fault before user code can
	// run, so there is nothing a handler here could reliably do.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGALRM, syscall.SIGPIPE)
	defer signal.Stop(sigCh)

	done := make(chan struct{})
	go func() {
		select {
		case sig := <-sigCh:
			tracker.Signal(sig.String())
			tracker.Stop = true
		case <-done:
		}
	}()

	if opts.stop > 0 {
		timer := time.AfterFunc(time.Duration(opts.stop)*time.Second, func() {
			tracker.Signal(fmt.Sprintf("scheduled stop after %ds", opts.stop))
			tracker.Stop = true
		})
		defer timer.Stop()
	}

	driver := &keywalk.Driver{}
	runOpts := keywalk.RunOptions{
		Starts:  []byte(opts.keys),
		Min:     opts.min,
		Max:     opts.max,
		Restart: []byte(opts.restart),
	}

	var (
		report  keywalk.Report
		runErr  error
		stopped bool
	)
	func() {
		defer func() {
			if r := recover(); r != nil {
				if !progress.IsStop(r) {
					panic(r)
				}
				stopped = true
			}
		}()
		if opts.dryrun {
			runOpts.Mode = keywalk.ModeCount
			report, runErr = driver.Run(kb, runOpts)
			return
		}
		runOpts.Mode = keywalk.ModeEnumerate
		out := bufio.NewWriter(stdout)
		runOpts.Sink = tracker.NewSink(func(s string) { fmt.Fprintln(out, s) })
		report, runErr = driver.Run(kb, runOpts)
		out.Flush()
	}()
	close(done)

	if runErr != nil {
		fmt.Fprintf(stderr, "Error: %v\n", runErr)
		tracker.Flush("error")
		return exitError
	}
	if opts.dryrun {
		printCounts(stdout, opts.keys, report.Counts)
	}

	switch {
	case stopped:
		tracker.Flush("signal")
	case opts.infinite:
		tracker.Flush("completed, waiting for signal")
		<-sigCh
		tracker.Flush("signal")
	default:
		tracker.Flush("completed")
	}
	return exitOK
}

// printCounts writes the counting-mode report in the order of keys, one
// "<base>: <count>" line per start key, plus a final "Total: <sum>" line
// using big.Int.String() for arbitrary precision.
func printCounts(w io.Writer, keys string, counts keywalk.Counts) {
	for i := 0; i < len(keys); i++ {
		base := keys[i]
		fmt.Fprintf(w, "%c: %s\n", base, counts.PerStart[base].String())
	}
	fmt.Fprintf(w, "Total: %s\n", counts.Total.String())
}
