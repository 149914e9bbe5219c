// Package pipeline orchestrates the capture flow: image in, extraction and
// normalization against the external model, and the store update, together
// with the user-visible scan status.
package pipeline

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/jonathan/cardpulse/internal/capture"
	"github.com/jonathan/cardpulse/internal/extraction"
	"github.com/jonathan/cardpulse/internal/store"
	"github.com/jonathan/cardpulse/internal/types"
)

// UserErrorMessage is the single message every capture failure collapses to.
const UserErrorMessage = "Failed to extract card details. Please try another photo."

// DefaultSuccessReset is how long the success status shows before the flow
// returns to idle.
const DefaultSuccessReset = 3 * time.Second

// ErrScanInFlight is returned when a scan is requested while another one is
// still running. The status machine has a single slot, so overlapping
// captures are rejected rather than interleaved.
var ErrScanInFlight = errors.New("a scan is already in progress")

// Status is a snapshot of the user-visible capture flow state.
type Status struct {
	State types.ScanStatus `json:"state"`
	// Error carries the user-facing message while State is "error".
	Error string `json:"error,omitempty"`
}

// Scanner runs capture cycles one at a time.
type Scanner struct {
	gateway      *extraction.Gateway
	store        *store.Store
	successReset time.Duration

	// flight serializes scans; TryAcquire failing means one is running.
	flight *semaphore.Weighted

	mu      sync.Mutex
	status  Status
	resetAt *time.Timer
}

// NewScanner creates a scanner. A non-positive successReset falls back to
// DefaultSuccessReset.
func NewScanner(gateway *extraction.Gateway, st *store.Store, successReset time.Duration) *Scanner {
	if successReset <= 0 {
		successReset = DefaultSuccessReset
	}
	return &Scanner{
		gateway:      gateway,
		store:        st,
		successReset: successReset,
		flight:       semaphore.NewWeighted(1),
		status:       Status{State: types.ScanIdle},
	}
}

// Status returns the current user-visible state.
func (s *Scanner) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Scan runs one full capture cycle for an already-acquired image and returns
// the stored card. Nothing is added to the collection unless extraction and
// normalization both succeed. A second Scan while one is running fails with
// ErrScanInFlight.
func (s *Scanner) Scan(ctx context.Context, img capture.Image) (types.BusinessCard, error) {
	if !s.flight.TryAcquire(1) {
		return types.BusinessCard{}, ErrScanInFlight
	}
	defer s.flight.Release(1)

	s.setStatus(Status{State: types.ScanScanning})

	fields, err := s.gateway.ExtractFields(ctx, img)
	if err != nil {
		s.logFailure(err)
		s.setStatus(Status{State: types.ScanError, Error: UserErrorMessage})
		return types.BusinessCard{}, err
	}

	card, err := s.store.Add(ctx, types.NewBusinessCard(fields, img.DataURL()))
	if err != nil {
		s.logFailure(err)
		s.setStatus(Status{State: types.ScanError, Error: UserErrorMessage})
		return types.BusinessCard{}, err
	}

	s.setStatus(Status{State: types.ScanSuccess})
	s.scheduleReset()
	return card, nil
}

// logFailure records the failure kind distinctly for diagnostics; users only
// ever see UserErrorMessage.
func (s *Scanner) logFailure(err error) {
	var parseErr *extraction.ParseError
	var apiErr *extraction.APICallError
	switch {
	case errors.As(err, &parseErr):
		log.Printf("scan: normalization failed: %v", parseErr)
	case errors.As(err, &apiErr):
		log.Printf("scan: extraction call failed: %v", apiErr)
	default:
		log.Printf("scan: failed: %v", err)
	}
}

func (s *Scanner) setStatus(st Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.resetAt != nil {
		s.resetAt.Stop()
		s.resetAt = nil
	}
	s.status = st
}

// scheduleReset clears a success status back to idle after the fixed delay.
// Error status sticks until the next scan.
func (s *Scanner) scheduleReset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetAt = time.AfterFunc(s.successReset, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.status.State == types.ScanSuccess {
			s.status = Status{State: types.ScanIdle}
		}
	})
}
