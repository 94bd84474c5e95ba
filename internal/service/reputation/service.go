// Package reputation projects vote and acceptance events onto user
// reputation.
//
// The store keeps the raw sum of every applied delta, keyed by
// (event, user) so redelivered events are ignored. The floor is applied when
// the value is read, so the visible reputation is the same whatever order the
// events arrived in.
package reputation

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/askdev-backend/internal/domain"
	"github.com/heartmarshall/askdev-backend/internal/metrics"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type ledger interface {
	ApplyReputation(ctx context.Context, eventID, userID uuid.UUID, delta int64) (bool, error)
	GetReputation(ctx context.Context, userID uuid.UUID) (int64, error)
	ListReputations(ctx context.Context) (map[uuid.UUID]int64, error)
}

type eventLog interface {
	ListEvents(ctx context.Context, afterSeq int64, limit int) ([]domain.Event, error)
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

const auditPageSize = 500

// Service is the reputation accumulator.
type Service struct {
	ledger  ledger
	events  eventLog
	weights Weights
	floor   int64
	log     *slog.Logger
}

// NewService creates a new Reputation service.
func NewService(
	log *slog.Logger,
	ledger ledger,
	events eventLog,
	weights Weights,
	floor int64,
) *Service {
	return &Service{
		ledger:  ledger,
		events:  events,
		weights: weights,
		floor:   floor,
		log:     log.With("service", "reputation"),
	}
}

// Name identifies the service as an event subscriber.
func (s *Service) Name() string { return "reputation" }

// HandleEvent applies an event delivered by the outbox.
func (s *Service) HandleEvent(ctx context.Context, ev domain.Event) error {
	_, err := s.Apply(ctx, ev)
	return err
}

// Apply records the event's deltas. It returns how many deltas were newly
// applied; a redelivered event applies none.
func (s *Service) Apply(ctx context.Context, ev domain.Event) (int, error) {
	applied := 0
	for _, d := range s.weights.Deltas(ev) {
		ok, err := s.ledger.ApplyReputation(ctx, ev.ID, d.UserID, d.Amount)
		if err != nil {
			return applied, fmt.Errorf("apply reputation for %s: %w", d.UserID, err)
		}
		if !ok {
			metrics.ReputationApplied.WithLabelValues("duplicate").Inc()
			continue
		}
		metrics.ReputationApplied.WithLabelValues("applied").Inc()
		applied++

		s.log.DebugContext(ctx, "reputation applied",
			slog.String("event_id", ev.ID.String()),
			slog.String("user_id", d.UserID.String()),
			slog.Int64("delta", d.Amount),
		)
	}
	return applied, nil
}

// GetReputation returns the user's reputation, never below the floor.
func (s *Service) GetReputation(ctx context.Context, userID uuid.UUID) (int64, error) {
	if userID == uuid.Nil {
		return 0, domain.NewValidationError("user_id", "required")
	}

	raw, err := s.ledger.GetReputation(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("get reputation: %w", err)
	}
	return s.clamp(raw), nil
}

// Standing returns the user's reputation with level and badge.
func (s *Service) Standing(ctx context.Context, userID uuid.UUID) (*domain.Standing, error) {
	rep, err := s.GetReputation(ctx, userID)
	if err != nil {
		return nil, err
	}
	st := domain.NewStanding(userID, rep)
	return &st, nil
}

// Drift is a user whose stored reputation disagrees with a full replay.
type Drift struct {
	UserID   uuid.UUID
	Stored   int64
	Replayed int64
}

// Audit replays the whole event log from scratch and compares the result to
// the stored sums.
func (s *Service) Audit(ctx context.Context) ([]Drift, error) {
	all, err := s.allEvents(ctx)
	if err != nil {
		return nil, err
	}

	replayed := s.weights.Replay(all)
	stored, err := s.ledger.ListReputations(ctx)
	if err != nil {
		return nil, fmt.Errorf("list reputations: %w", err)
	}

	var drifts []Drift
	for id, want := range replayed {
		if got := stored[id]; got != want {
			drifts = append(drifts, Drift{UserID: id, Stored: got, Replayed: want})
		}
	}
	for id, got := range stored {
		if _, ok := replayed[id]; !ok && got != 0 {
			drifts = append(drifts, Drift{UserID: id, Stored: got})
		}
	}

	s.log.InfoContext(ctx, "reputation audit finished",
		slog.Int("events", len(all)),
		slog.Int("users", len(replayed)),
		slog.Int("drifts", len(drifts)),
	)
	return drifts, nil
}

// Rebuild re-applies every event in the log and returns how many deltas were
// newly recorded. Deltas missed by a lost delivery are restored; deltas with
// no event behind them are left for an operator.
func (s *Service) Rebuild(ctx context.Context) (int, error) {
	all, err := s.allEvents(ctx)
	if err != nil {
		return 0, err
	}

	applied := 0
	for _, ev := range all {
		n, err := s.Apply(ctx, ev)
		if err != nil {
			return applied, err
		}
		applied += n
	}

	s.log.InfoContext(ctx, "reputation rebuild finished",
		slog.Int("events", len(all)),
		slog.Int("applied", applied),
	)
	return applied, nil
}

func (s *Service) allEvents(ctx context.Context) ([]domain.Event, error) {
	var (
		all   []domain.Event
		after int64
	)
	for {
		page, err := s.events.ListEvents(ctx, after, auditPageSize)
		if err != nil {
			return nil, fmt.Errorf("list events: %w", err)
		}
		all = append(all, page...)
		if len(page) < auditPageSize {
			return all, nil
		}
		after = page[len(page)-1].Seq
	}
}

func (s *Service) clamp(raw int64) int64 {
	return max(raw, s.floor)
}
