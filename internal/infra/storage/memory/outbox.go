package memory

import (
	"context"
	"sync"

	"nomadstay/internal/app/outbox"
)

// Publisher receives flushed event records. The Kafka producer satisfies it
// in production; tests plug in a recorder.
type Publisher interface {
	Publish(ctx context.Context, record outbox.EventRecord) error
}

// Outbox buffers event records in memory and hands them to the publisher on
// Flush. Records that fail to publish stay queued for the next flush.
type Outbox struct {
	mu        sync.Mutex
	queue     []outbox.EventRecord
	publisher Publisher
}

func NewOutbox(publisher Publisher) *Outbox {
	return &Outbox{publisher: publisher}
}

func (o *Outbox) Add(_ context.Context, record outbox.EventRecord) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.queue = append(o.queue, record)
	return nil
}

func (o *Outbox) Flush(ctx context.Context) error {
	o.mu.Lock()
	pending := o.queue
	o.queue = nil
	o.mu.Unlock()

	for i, rec := range pending {
		if o.publisher == nil {
			continue
		}
		if err := o.publisher.Publish(ctx, rec); err != nil {
			o.mu.Lock()
			o.queue = append(pending[i:], o.queue...)
			o.mu.Unlock()
			return err
		}
	}
	return nil
}

// Pending snapshots the queued records, oldest first.
func (o *Outbox) Pending() []outbox.EventRecord {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]outbox.EventRecord, len(o.queue))
	copy(out, o.queue)
	return out
}
