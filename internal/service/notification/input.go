package notification

import (
	"github.com/google/uuid"

	"github.com/heartmarshall/askdev-backend/internal/domain"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

// ListInput holds the parameters for listing a user's notifications.
type ListInput struct {
	UserID     uuid.UUID
	UnreadOnly bool
	Kinds      []domain.NotificationKind
	Limit      int
	Offset     int
}

// Validate checks all fields and collects all errors.
func (i ListInput) Validate() error {
	var errs []domain.FieldError

	if i.UserID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "user_id", Message: "required"})
	}
	if i.Limit < 0 || i.Limit > maxLimit {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "must be between 0 and 100"})
	}
	if i.Offset < 0 {
		errs = append(errs, domain.FieldError{Field: "offset", Message: "must be >= 0"})
	}
	for _, k := range i.Kinds {
		if !k.IsValid() {
			errs = append(errs, domain.FieldError{Field: "kinds", Message: "unknown kind " + string(k)})
			break
		}
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ListResult is a page of notifications, newest first.
type ListResult struct {
	Notifications []domain.Notification
	Total         int
}
