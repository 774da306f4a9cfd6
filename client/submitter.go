package client

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
)

// ErrSubmissionInFlight is returned when Submit is called while a previous
// submission has not finished.
var ErrSubmissionInFlight = errors.New("client: submission already in flight")

// Submitter serializes booking submission for one checkout flow. It mints an
// idempotency key per attempt so that network-level retries of the same
// attempt can never double-book:
//
//   - a second Submit while one is running fails fast with
//     ErrSubmissionInFlight instead of firing a second request;
//   - a failed attempt discards its key, so the next Submit is a fresh
//     attempt with a fresh key;
//   - a cancelled attempt keeps its key, so resuming retries the same
//     attempt and replays the server-side outcome if the first request
//     actually landed.
type Submitter struct {
	client *Client

	mu       sync.Mutex
	inFlight bool
	key      string
	cancel   context.CancelFunc
	newKey   func() string
}

func NewSubmitter(c *Client) *Submitter {
	return &Submitter{client: c, newKey: uuid.NewString}
}

// Submit sends the booking request and returns the created booking id.
func (s *Submitter) Submit(ctx context.Context, req CreateBookingRequest) (string, error) {
	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		return "", ErrSubmissionInFlight
	}
	s.inFlight = true
	if s.key == "" {
		s.key = s.newKey()
	}
	key := s.key
	reqCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.mu.Unlock()

	id, err := s.client.CreateBooking(reqCtx, req, key)
	cancel()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight = false
	s.cancel = nil
	switch {
	case err == nil:
		s.key = ""
		return id, nil
	case KindOf(err) == KindCancelled:
		// Keep the key: if the request reached the server, resubmitting
		// replays that outcome instead of booking twice.
		return "", err
	default:
		s.key = ""
		return "", err
	}
}

// Cancel aborts the in-flight submission, if any. The attempt's key is
// retained for a later resubmit.
func (s *Submitter) Cancel() {
	s.mu.Lock()
	cancel := s.cancel
	s.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// InFlight reports whether a submission is currently running.
func (s *Submitter) InFlight() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inFlight
}
