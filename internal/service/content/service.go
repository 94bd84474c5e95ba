package content

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/askdev-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type contentStore interface {
	RegisterQuestion(ctx context.Context, q domain.Question) error
	RegisterAnswer(ctx context.Context, a domain.Answer, event domain.Event) error
	GetQuestion(ctx context.Context, questionID uuid.UUID) (*domain.Question, error)
}

type eventPublisher interface {
	Publish(ctx context.Context, event domain.Event)
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service registers questions and answers coming from the content store so
// they can be voted on and accepted. Bodies, titles and tags stay with the
// content store.
type Service struct {
	store  contentStore
	events eventPublisher
	now    func() time.Time
	log    *slog.Logger
}

// NewService creates a new Content service.
func NewService(log *slog.Logger, store contentStore, events eventPublisher) *Service {
	return &Service{
		store:  store,
		events: events,
		now:    func() time.Time { return time.Now().UTC() },
		log:    log.With("service", "content"),
	}
}
