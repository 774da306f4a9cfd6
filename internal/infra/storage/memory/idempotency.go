package memory

import (
	"context"
	"sync"
	"time"

	"nomadstay/internal/app/middleware"
)

// IdempotencyStore keeps command outcomes keyed by idempotency key. Entries
// expire after TTL so abandoned keys do not pile up.
type IdempotencyStore struct {
	mu      sync.RWMutex
	ttl     time.Duration
	records map[string]middleware.IdempotencyRecord
	now     func() time.Time
}

func NewIdempotencyStore(ttl time.Duration) *IdempotencyStore {
	return &IdempotencyStore{
		ttl:     ttl,
		records: make(map[string]middleware.IdempotencyRecord),
		now:     time.Now,
	}
}

func (s *IdempotencyStore) Get(_ context.Context, key string) (middleware.IdempotencyRecord, bool, error) {
	s.mu.RLock()
	rec, ok := s.records[key]
	s.mu.RUnlock()
	if !ok {
		return middleware.IdempotencyRecord{}, false, nil
	}
	if s.ttl > 0 && s.now().Sub(rec.OccurredAt) > s.ttl {
		s.mu.Lock()
		delete(s.records, key)
		s.mu.Unlock()
		return middleware.IdempotencyRecord{}, false, nil
	}
	return rec, true, nil
}

func (s *IdempotencyStore) Save(_ context.Context, rec middleware.IdempotencyRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[rec.Key] = rec
	return nil
}
