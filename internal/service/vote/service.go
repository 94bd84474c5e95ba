package vote

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

type voteStore interface {
	ReadTarget(ctx context.Context, ref domain.TargetRef) (domain.TargetState, error)
	GetVote(ctx context.Context, voterID uuid.UUID, ref domain.TargetRef) (*domain.VoteRecord, error)
	WriteVote(ctx context.Context, w domain.VoteWrite, event domain.Event) (domain.TargetState, error)
}

type eventPublisher interface {
	Publish(ctx context.Context, event domain.Event)
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service is the vote ledger: one vote per (voter, target), tallies kept in
// step with the records.
type Service struct {
	votes  voteStore
	events eventPublisher
	policy retry.Policy
	now    func() time.Time
	log    *slog.Logger
}

// NewService creates a new Vote service.
func NewService(
	log *slog.Logger,
	votes voteStore,
	events eventPublisher,
	policy retry.Policy,
) *Service {
	return &Service{
		votes:  votes,
		events: events,
		policy: policy,
		now:    func() time.Time { return time.Now().UTC() },
		log:    log.With("service", "vote"),
	}
}
