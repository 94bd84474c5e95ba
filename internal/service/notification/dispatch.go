package notification

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/askdev-backend/internal/domain"
	"github.com/heartmarshall/askdev-backend/internal/metrics"
)

// Dispatch creates the notifications for an event. Redelivering an event
// creates nothing new. It returns the number of notifications inserted.
func (s *Service) Dispatch(ctx context.Context, ev domain.Event) (int, error) {
	created := 0
	for _, d := range deliveries(ev) {
		n := domain.NewNotification(ev.ID, d.recipient, d.payload, s.now())

		inserted, err := s.store.AppendNotification(ctx, n)
		if err != nil {
			return created, fmt.Errorf("append notification for %s: %w", d.recipient, err)
		}
		if !inserted {
			continue
		}
		created++
		metrics.NotificationsCreated.WithLabelValues(n.Kind.String()).Inc()

		s.log.DebugContext(ctx, "notification created",
			slog.String("event_id", ev.ID.String()),
			slog.String("recipient_id", d.recipient.String()),
			slog.String("kind", n.Kind.String()),
		)
	}
	return created, nil
}
