// Package outbox delivers committed domain events to their subscribers.
//
// Events are appended to the store in the same transaction as the state
// change they describe. The Publisher pushes each one to all subscribers right
// after commit; the Relay sweeps up whatever was not marked dispatched (crash,
// subscriber error) and delivers it again. Delivery is therefore
// at-least-once and subscribers must be idempotent on Event.ID.
package outbox

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/sourcegraph/conc/pool"

	"github.com/heartmarshall/askdev-backend/internal/domain"
	"github.com/heartmarshall/askdev-backend/internal/metrics"
)

// Subscriber consumes domain events.
type Subscriber interface {
	Name() string
	HandleEvent(ctx context.Context, event domain.Event) error
}

type eventStore interface {
	ListPendingEvents(ctx context.Context, afterSeq int64, limit int) ([]domain.Event, error)
	MarkEventsDispatched(ctx context.Context, ids []uuid.UUID) error
}

// Publisher fans events out to subscribers.
type Publisher struct {
	store eventStore
	subs  []Subscriber
	log   *slog.Logger
}

// NewPublisher creates a Publisher delivering to subs.
func NewPublisher(log *slog.Logger, store eventStore, subs ...Subscriber) *Publisher {
	return &Publisher{
		store: store,
		subs:  subs,
		log:   log.With("service", "outbox"),
	}
}

// Publish delivers a freshly committed event. Failures are logged and left
// for the relay; the caller's operation has already succeeded.
func (p *Publisher) Publish(ctx context.Context, event domain.Event) {
	ctx = context.WithoutCancel(ctx)

	if err := p.deliver(ctx, event); err != nil {
		p.log.WarnContext(ctx, "event delivery failed, relay will retry",
			slog.String("event_id", event.ID.String()),
			slog.String("kind", event.Kind.String()),
			slog.String("error", err.Error()),
		)
		return
	}

	if err := p.store.MarkEventsDispatched(ctx, []uuid.UUID{event.ID}); err != nil {
		p.log.WarnContext(ctx, "mark event dispatched failed",
			slog.String("event_id", event.ID.String()),
			slog.String("error", err.Error()),
		)
	}
}

// deliver runs every subscriber concurrently and returns the joined errors.
func (p *Publisher) deliver(ctx context.Context, event domain.Event) error {
	wp := pool.New().WithContext(ctx)
	for _, sub := range p.subs {
		wp.Go(func(ctx context.Context) error {
			if err := sub.HandleEvent(ctx, event); err != nil {
				return fmt.Errorf("%s: %w", sub.Name(), err)
			}
			return nil
		})
	}

	err := wp.Wait()
	result := "ok"
	if err != nil {
		result = "error"
	}
	metrics.EventsDispatched.WithLabelValues(event.Kind.String(), result).Inc()
	return err
}
