// Package service exposes the counting and enumeration engines over HTTP:
// a zero-dependency net/http core (service/http.go), a one-line Chi
// adapter (service/chi.go), and build-tag-gated adapters for Gin, Echo,
// and Fiber (service/gin.go, service/echo.go, service/fiber.go).
//
// Count and Enumerate are the core domain operations, requested remotely
// instead of from the CLI.
package service

import (
	"fmt"
	"sync"

	"github.com/rafaelsanzio/keywalk"
	"github.com/rafaelsanzio/keywalk/internal/configfile"
	"github.com/rafaelsanzio/keywalk/internal/walkerr"
)

// Request is the shared request body for both POST /count and
// POST /enumerate.
type Request struct {
	// Arrangement is the path to a configuration file. Loaded keyboards
	// are cached by this path for the life of the Service, so repeated
	// requests against the same arrangement don't re-read and
	// re-validate the file.
	Arrangement string `json:"arrangement"`
	Keys        string `json:"keys"`
	Min         int    `json:"min"`
	Max         int    `json:"max"`
	// Restart is only meaningful for POST /enumerate.
	Restart string `json:"restart,omitempty"`
}

// CountResponse reports per-key and total counts as decimal strings:
// big.Int does not fit a JSON number safely once a walk count exceeds
// 2^53, so counts always travel as strings.
type CountResponse struct {
	PerStart map[string]string `json:"per_start"`
	Total    string            `json:"total"`
}

// keyboardEntry pairs a loaded keyboard with the Driver that serializes
// requests against it, preserving the single-writer discipline the
// underlying engines assume.
type keyboardEntry struct {
	kb     *keywalk.Keyboard
	driver *keywalk.Driver
}

// Service caches loaded keyboards by arrangement path and dispatches
// Count/Enumerate requests to a per-keyboard Driver.
type Service struct {
	mu        sync.Mutex
	keyboards map[string]*keyboardEntry
}

// New returns an empty Service.
func New() *Service {
	return &Service{keyboards: make(map[string]*keyboardEntry)}
}

func (s *Service) entry(arrangement string) (*keyboardEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.keyboards[arrangement]; ok {
		return e, nil
	}
	kb, err := configfile.Load(arrangement)
	if err != nil {
		return nil, err
	}
	e := &keyboardEntry{kb: kb, driver: &keywalk.Driver{}}
	s.keyboards[arrangement] = e
	return e, nil
}

// Count runs ModeCount for req and renders the result as decimal strings.
func (s *Service) Count(req Request) (CountResponse, error) {
	e, err := s.entry(req.Arrangement)
	if err != nil {
		return CountResponse{}, err
	}
	report, err := e.driver.Run(e.kb, keywalk.RunOptions{
		Starts: []byte(req.Keys),
		Min:    req.Min,
		Max:    req.Max,
		Mode:   keywalk.ModeCount,
	})
	if err != nil {
		return CountResponse{}, err
	}
	resp := CountResponse{PerStart: make(map[string]string, len(report.Counts.PerStart))}
	for base, count := range report.Counts.PerStart {
		resp.PerStart[string(rune(base))] = count.String()
	}
	resp.Total = report.Counts.Total.String()
	return resp, nil
}

// Enumerate runs ModeEnumerate for req, calling sink once per emitted
// walk-string, optionally seeded by req.Restart.
func (s *Service) Enumerate(req Request, sink keywalk.Sink) error {
	e, err := s.entry(req.Arrangement)
	if err != nil {
		return err
	}
	var restart []byte
	if req.Restart != "" {
		restart = []byte(req.Restart)
	}
	_, err = e.driver.Run(e.kb, keywalk.RunOptions{
		Starts:  []byte(req.Keys),
		Min:     req.Min,
		Max:     req.Max,
		Mode:    keywalk.ModeEnumerate,
		Restart: restart,
		Sink:    sink,
	})
	return err
}

// statusFor maps a walkerr.Kind to an HTTP status, shared by every
// framework adapter so each one reports the same status for the same
// failure instead of reinventing its own mapping.
func statusFor(err error) int {
	kind, ok := walkerr.KindOf(err)
	if !ok {
		return 500
	}
	switch kind {
	case walkerr.KindArgument, walkerr.KindConfiguration:
		return 400
	case walkerr.KindCapacity:
		return 413
	case walkerr.KindResource:
		return 502
	case walkerr.KindInternal:
		return 500
	default:
		return 500
	}
}

func errorBody(err error) map[string]string {
	return map[string]string{"error": fmt.Sprintf("%v", err)}
}
