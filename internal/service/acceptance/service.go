package acceptance

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/askdev-backend/internal/domain"
	"github.com/heartmarshall/askdev-backend/internal/retry"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type aggregateStore interface {
	GetQuestion(ctx context.Context, questionID uuid.UUID) (*domain.Question, error)
	GetAnswer(ctx context.Context, answerID uuid.UUID) (*domain.Answer, error)
	SetAcceptance(ctx context.Context, w domain.AcceptanceWrite, event domain.Event) (domain.AcceptanceState, error)
}

type eventPublisher interface {
	Publish(ctx context.Context, event domain.Event)
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service coordinates the accepted answer of each question. Every change
// goes through a single compare-and-swap on the question version.
type Service struct {
	store  aggregateStore
	events eventPublisher
	policy retry.Policy
	now    func() time.Time
	log    *slog.Logger
}

// NewService creates a new Acceptance service.
func NewService(
	log *slog.Logger,
	store aggregateStore,
	events eventPublisher,
	policy retry.Policy,
) *Service {
	return &Service{
		store:  store,
		events: events,
		policy: policy,
		now:    func() time.Time { return time.Now().UTC() },
		log:    log.With("service", "acceptance"),
	}
}
