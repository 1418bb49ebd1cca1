package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Exit codes returned by [run].
const (
	exitOK    = 0 // normal completion, or signal-induced termination after flush
	exitError = 1 // configuration, I/O, or internal-consistency error
)

// options holds the parsed CLI flags.
type options struct {
	arrangement string
	keys        string
	min         int
	max         int
	dryrun      bool
	infinite    bool
	logfile     string
	stop        int // seconds; 0 = no scheduled termination
	restart     string
	help        bool
}

// parseArgs parses the keywalk flag set. Every flag is `--name=value`
// except the boolean switches `--dryrun`, `--infinite` and `--help`/`-h`.
func parseArgs(args []string) (options, error) {
	var opts options
	for _, arg := range args {
		switch {
		case arg == "--help" || arg == "-h":
			opts.help = true
		case arg == "--dryrun":
			opts.dryrun = true
		case arg == "--infinite":
			opts.infinite = true
		case strings.HasPrefix(arg, "--arrangement="):
			opts.arrangement = strings.TrimPrefix(arg, "--arrangement=")
		case strings.HasPrefix(arg, "--keys="):
			opts.keys = strings.TrimPrefix(arg, "--keys=")
		case strings.HasPrefix(arg, "--logfile="):
			opts.logfile = strings.TrimPrefix(arg, "--logfile=")
		case strings.HasPrefix(arg, "--restart="):
			opts.restart = strings.TrimPrefix(arg, "--restart=")
		case strings.HasPrefix(arg, "--min="):
			n, err := strconv.Atoi(strings.TrimPrefix(arg, "--min="))
			if err != nil || n <= 0 {
				return opts, fmt.Errorf("invalid --min value: must be a positive integer")
			}
			opts.min = n
		case strings.HasPrefix(arg, "--max="):
			n, err := strconv.Atoi(strings.TrimPrefix(arg, "--max="))
			if err != nil || n <= 0 {
				return opts, fmt.Errorf("invalid --max value: must be a positive integer")
			}
			opts.max = n
		case strings.HasPrefix(arg, "--stop="):
			n, err := strconv.Atoi(strings.TrimPrefix(arg, "--stop="))
			if err != nil || n <= 0 {
				return opts, fmt.Errorf("invalid --stop value: must be a positive integer number of seconds")
			}
			opts.stop = n
		default:
			return opts, fmt.Errorf("unknown flag: %s\nRun 'keywalk --help' for usage", arg)
		}
	}
	return opts, nil
}

// validate checks required-flag and range constraints beyond what
// parseArgs already checked per-value.
func (o options) validate() error {
	if o.arrangement == "" {
		return fmt.Errorf("--arrangement is required")
	}
	if o.keys == "" {
		return fmt.Errorf("--keys is required")
	}
	if o.min == 0 {
		return fmt.Errorf("--min is required")
	}
	if o.max == 0 {
		return fmt.Errorf("--max is required")
	}
	if o.max < o.min {
		return fmt.Errorf("--max must be >= --min")
	}
	if o.logfile == "" {
		return fmt.Errorf("--logfile is required")
	}
	if hasDuplicateByte(o.keys) {
		return fmt.Errorf("--keys must not contain duplicate characters")
	}
	return nil
}

func hasDuplicateByte(s string) bool {
	seen := make(map[byte]bool, len(s))
	for i := 0; i < len(s); i++ {
		if seen[s[i]] {
			return true
		}
		seen[s[i]] = true
	}
	return false
}

func printHelp(w io.Writer) {
	fmt.Fprintf(w, `keywalk %s - keyboard-walk password-space enumerator

Usage:
  keywalk --arrangement=FILE --keys=STRING --min=N --max=N --logfile=FILE [flags]

Flags:
  --arrangement=PATH   configuration file (required)
  --keys=STRING        concatenated base characters of start keys, no duplicates (required)
  --min=N              minimum walk length, N > 0 (required)
  --max=N              maximum walk length, N >= min (required)
  --dryrun             select counting mode instead of enumeration
  --infinite           after completion, wait for a signal before exiting
  --logfile=PATH       append-only progress log (required)
  --stop=N             schedule termination after N seconds
  --restart=STRING     resume from this previously emitted string
  --help, -h           show this help message

Exit codes:
  0   normal completion, or signal-induced termination after flush
  1   configuration, I/O, or internal-consistency error
`, version)
}
