package notification

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/askdev-backend/internal/domain"
	"github.com/heartmarshall/askdev-backend/internal/gateway"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type notificationStore interface {
	AppendNotification(ctx context.Context, n domain.Notification) (bool, error)
	ListNotifications(ctx context.Context, filter gateway.NotificationFilter) ([]domain.Notification, int, error)
	CountUnread(ctx context.Context, userID uuid.UUID) (int, error)
	MarkNotificationRead(ctx context.Context, userID, notificationID uuid.UUID) error
	MarkAllNotificationsRead(ctx context.Context, userID uuid.UUID) (int, error)
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service turns domain events into notifications and serves the inbox.
type Service struct {
	store notificationStore
	now   func() time.Time
	log   *slog.Logger
}

// NewService creates a new Notification service.
func NewService(log *slog.Logger, store notificationStore) *Service {
	return &Service{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
		log:   log.With("service", "notification"),
	}
}

// Name identifies the service as an event subscriber.
func (s *Service) Name() string { return "notification" }

// HandleEvent dispatches an event delivered by the outbox.
func (s *Service) HandleEvent(ctx context.Context, ev domain.Event) error {
	_, err := s.Dispatch(ctx, ev)
	return err
}
