package notification

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/askdev-backend/internal/domain"
	"github.com/heartmarshall/askdev-backend/internal/gateway"
)

// List returns a page of the user's notifications.
func (s *Service) List(ctx context.Context, input ListInput) (*ListResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	limit := input.Limit
	if limit == 0 {
		limit = defaultLimit
	}

	items, total, err := s.store.ListNotifications(ctx, gateway.NotificationFilter{
		RecipientID: input.UserID,
		UnreadOnly:  input.UnreadOnly,
		Kinds:       input.Kinds,
		Limit:       limit,
		Offset:      input.Offset,
	})
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return &ListResult{Notifications: items, Total: total}, nil
}

// MarkRead marks one of the user's notifications read. Marking a read
// notification again succeeds.
func (s *Service) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	if userID == uuid.Nil {
		return domain.NewValidationError("user_id", "required")
	}
	if notificationID == uuid.Nil {
		return domain.NewValidationError("notification_id", "required")
	}

	if err := s.store.MarkNotificationRead(ctx, userID, notificationID); err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	return nil
}

// MarkAllRead marks every unread notification of the user read and returns
// how many changed.
func (s *Service) MarkAllRead(ctx context.Context, userID uuid.UUID) (int, error) {
	if userID == uuid.Nil {
		return 0, domain.NewValidationError("user_id", "required")
	}

	n, err := s.store.MarkAllNotificationsRead(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("mark all notifications read: %w", err)
	}

	s.log.InfoContext(ctx, "notifications marked read",
		slog.String("user_id", userID.String()),
		slog.Int("count", n),
	)
	return n, nil
}

// UnreadCount returns how many unread notifications the user has.
func (s *Service) UnreadCount(ctx context.Context, userID uuid.UUID) (int, error) {
	if userID == uuid.Nil {
		return 0, domain.NewValidationError("user_id", "required")
	}

	n, err := s.store.CountUnread(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("count unread: %w", err)
	}
	return n, nil
}
