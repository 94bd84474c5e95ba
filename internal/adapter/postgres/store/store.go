// Package store composes the PostgreSQL repositories into the engine's data
// gateway. Multi-row writes run in one transaction through TxManager, so a
// state change and the event describing it commit together.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/askdev-backend/internal/adapter/postgres"
	"github.com/heartmarshall/askdev-backend/internal/adapter/postgres/aggregate"
	"github.com/heartmarshall/askdev-backend/internal/adapter/postgres/event"
	"github.com/heartmarshall/askdev-backend/internal/adapter/postgres/notification"
	"github.com/heartmarshall/askdev-backend/internal/adapter/postgres/reputation"
	"github.com/heartmarshall/askdev-backend/internal/adapter/postgres/vote"
	"github.com/heartmarshall/askdev-backend/internal/domain"
	"github.com/heartmarshall/askdev-backend/internal/gateway"
)

var _ gateway.Gateway = (*Store)(nil)

// Store implements gateway.Gateway on a pgx pool.
type Store struct {
	pool          *pgxpool.Pool
	tx            *postgres.TxManager
	aggregates    *aggregate.Repo
	votes         *vote.Repo
	events        *event.Repo
	reputation    *reputation.Repo
	notifications *notification.Repo
	now           func() time.Time
}

// New creates a Store. The store takes ownership of pool; Close closes it.
func New(pool *pgxpool.Pool) *Store {
	return &Store{
		pool:          pool,
		tx:            postgres.NewTxManager(pool),
		aggregates:    aggregate.New(pool),
		votes:         vote.New(pool),
		events:        event.New(pool),
		reputation:    reputation.New(pool),
		notifications: notification.New(pool),
		now:           time.Now,
	}
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.pool.Ping(ctx); err != nil {
		return postgres.Transient(fmt.Errorf("ping: %w", err))
	}
	return nil
}

// Close releases the pool.
func (s *Store) Close() { s.pool.Close() }

// ---------------------------------------------------------------------------
// Votes
// ---------------------------------------------------------------------------

func (s *Store) ReadTarget(ctx context.Context, ref domain.TargetRef) (domain.TargetState, error) {
	return s.aggregates.ReadTarget(ctx, ref)
}

func (s *Store) GetVote(ctx context.Context, voterID uuid.UUID, ref domain.TargetRef) (*domain.VoteRecord, error) {
	return s.votes.Get(ctx, voterID, ref)
}

// WriteVote bumps the target tally first. The conditional UPDATE takes the
// target row lock, which serializes the vote record change behind it.
// An event id already in the log means an earlier attempt committed.
func (s *Store) WriteVote(ctx context.Context, w domain.VoteWrite, ev domain.Event) (domain.TargetState, error) {
	var state domain.TargetState
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		recorded, err := s.events.Exists(ctx, ev.ID)
		if err != nil {
			return err
		}
		if recorded {
			return fmt.Errorf("event %s: %w", ev.ID, domain.ErrEventRecorded)
		}

		state, err = s.aggregates.BumpTally(ctx, w.Target, w.TallyDelta, w.ExpectedVersion)
		if err != nil {
			return err
		}
		if err := s.votes.Apply(ctx, w); err != nil {
			return err
		}
		return s.events.Append(ctx, ev)
	})
	if err != nil {
		return domain.TargetState{}, err
	}
	return state, nil
}

// ---------------------------------------------------------------------------
// Aggregates
// ---------------------------------------------------------------------------

func (s *Store) GetQuestion(ctx context.Context, questionID uuid.UUID) (*domain.Question, error) {
	return s.aggregates.GetQuestion(ctx, questionID)
}

func (s *Store) GetAnswer(ctx context.Context, answerID uuid.UUID) (*domain.Answer, error) {
	return s.aggregates.GetAnswer(ctx, answerID)
}

// SetAcceptance swaps the question pointer first, then clears the previous
// answer's flag before setting the new one so the one-accepted-answer index
// never sees two rows.
func (s *Store) SetAcceptance(ctx context.Context, w domain.AcceptanceWrite, ev domain.Event) (domain.AcceptanceState, error) {
	var version int64
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		version, err = s.aggregates.CompareAndSetAccepted(ctx, w.QuestionID, w.NewAnswerID, w.PreviousAnswerID, w.ExpectedVersion)
		if err != nil {
			return err
		}
		if w.PreviousAnswerID != nil {
			if err := s.aggregates.SetAnswerAccepted(ctx, w.QuestionID, *w.PreviousAnswerID, false); err != nil {
				return err
			}
		}
		if w.NewAnswerID != nil {
			if err := s.aggregates.SetAnswerAccepted(ctx, w.QuestionID, *w.NewAnswerID, true); err != nil {
				return err
			}
		}
		return s.events.Append(ctx, ev)
	})
	if err != nil {
		return domain.AcceptanceState{}, err
	}

	return domain.AcceptanceState{
		QuestionID:       w.QuestionID,
		AcceptedAnswerID: w.NewAnswerID,
		Version:          version,
	}, nil
}

func (s *Store) RegisterQuestion(ctx context.Context, q domain.Question) error {
	return s.aggregates.InsertQuestion(ctx, q)
}

func (s *Store) RegisterAnswer(ctx context.Context, a domain.Answer, ev domain.Event) error {
	return s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.aggregates.InsertAnswer(ctx, a); err != nil {
			return err
		}
		return s.events.Append(ctx, ev)
	})
}

// ---------------------------------------------------------------------------
// Events
// ---------------------------------------------------------------------------

func (s *Store) AppendEvent(ctx context.Context, ev domain.Event) error {
	return s.events.Append(ctx, ev)
}

func (s *Store) ListPendingEvents(ctx context.Context, afterSeq int64, limit int) ([]domain.Event, error) {
	return s.events.ListPending(ctx, afterSeq, limit)
}

func (s *Store) MarkEventsDispatched(ctx context.Context, ids []uuid.UUID) error {
	return s.events.MarkDispatched(ctx, ids, s.now().UTC())
}

func (s *Store) ListEvents(ctx context.Context, afterSeq int64, limit int) ([]domain.Event, error) {
	return s.events.List(ctx, afterSeq, limit)
}

// ---------------------------------------------------------------------------
// Reputation
// ---------------------------------------------------------------------------

func (s *Store) ApplyReputation(ctx context.Context, eventID, userID uuid.UUID, delta int64) (bool, error) {
	var applied bool
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		applied, err = s.reputation.Apply(ctx, eventID, userID, delta)
		return err
	})
	return applied, err
}

func (s *Store) GetReputation(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.reputation.Get(ctx, userID)
}

func (s *Store) ListReputations(ctx context.Context) (map[uuid.UUID]int64, error) {
	return s.reputation.List(ctx)
}

// ---------------------------------------------------------------------------
// Notifications
// ---------------------------------------------------------------------------

func (s *Store) AppendNotification(ctx context.Context, n domain.Notification) (bool, error) {
	return s.notifications.Insert(ctx, n)
}

func (s *Store) ListNotifications(ctx context.Context, f gateway.NotificationFilter) ([]domain.Notification, int, error) {
	return s.notifications.List(ctx, notification.Filter{
		RecipientID: f.RecipientID,
		UnreadOnly:  f.UnreadOnly,
		Kinds:       f.Kinds,
		Limit:       f.Limit,
		Offset:      f.Offset,
	})
}

func (s *Store) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	return s.notifications.CountUnread(ctx, userID)
}

func (s *Store) MarkNotificationRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	return s.notifications.MarkRead(ctx, userID, notificationID)
}

func (s *Store) MarkAllNotificationsRead(ctx context.Context, userID uuid.UUID) (int, error) {
	return s.notifications.MarkAllRead(ctx, userID)
}
