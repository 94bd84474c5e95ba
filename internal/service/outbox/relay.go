package outbox

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/askdev-backend/internal/metrics"
)

const (
	defaultBatchSize = 100
	defaultInterval  = 5 * time.Second
)

// Relay redelivers events that were committed but never marked dispatched.
type Relay struct {
	publisher *Publisher
	batchSize int
	interval  time.Duration
	log       *slog.Logger
}

// NewRelay creates a Relay sweeping batchSize events every interval.
func NewRelay(log *slog.Logger, publisher *Publisher, batchSize int, interval time.Duration) *Relay {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Relay{
		publisher: publisher,
		batchSize: batchSize,
		interval:  interval,
		log:       log.With("service", "outbox_relay"),
	}
}

// RunOnce walks every pending event in append order, batchSize at a time,
// and returns how many were dispatched. An event whose delivery fails stays
// pending for the next pass; the walk continues past it.
func (r *Relay) RunOnce(ctx context.Context) (int, error) {
	var (
		afterSeq   int64
		seen       int
		dispatched int
	)

	for {
		pending, err := r.publisher.store.ListPendingEvents(ctx, afterSeq, r.batchSize)
		if err != nil {
			return dispatched, fmt.Errorf("list pending events: %w", err)
		}
		seen += len(pending)
		if len(pending) == 0 {
			break
		}

		done := make([]uuid.UUID, 0, len(pending))
		for _, event := range pending {
			if err := r.publisher.deliver(ctx, event); err != nil {
				r.log.WarnContext(ctx, "redelivery failed",
					slog.String("event_id", event.ID.String()),
					slog.Int64("seq", event.Seq),
					slog.String("error", err.Error()),
				)
				continue
			}
			done = append(done, event.ID)
		}

		if len(done) > 0 {
			if err := r.publisher.store.MarkEventsDispatched(ctx, done); err != nil {
				return dispatched, fmt.Errorf("mark events dispatched: %w", err)
			}
			dispatched += len(done)
		}

		afterSeq = pending[len(pending)-1].Seq
		if len(pending) < r.batchSize {
			break
		}
	}

	metrics.RelayLag.Observe(float64(seen))
	if seen > 0 {
		r.log.DebugContext(ctx, "relay pass",
			slog.Int("pending", seen),
			slog.Int("dispatched", dispatched),
		)
	}

	return dispatched, nil
}

// Run sweeps on every tick until ctx is done.
func (r *Relay) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if _, err := r.RunOnce(ctx); err != nil && ctx.Err() == nil {
				r.log.ErrorContext(ctx, "relay pass failed", slog.String("error", err.Error()))
			}
		}
	}
}
