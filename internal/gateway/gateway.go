// Package gateway defines the persistence boundary of the engine.
//
// Two implementations exist: adapter/postgres/store (durable) and
// adapter/memory (ephemeral, for tests and demo). Which one is used is a
// configuration choice made in internal/app.
//
// Guarantees every implementation must provide:
//   - WriteVote and SetAcceptance are atomic compare-and-swaps, linearizable
//     per target: two concurrent calls against the same ExpectedVersion never
//     both succeed. The loser gets domain.ErrVersionConflict and nothing is
//     written.
//   - The event passed to WriteVote/SetAcceptance is appended in the same
//     transaction as the state change, so it exists iff the change committed.
//   - WriteVote checks the event id before anything else: when the event is
//     already in the log it returns domain.ErrEventRecorded and writes
//     nothing, so a retry after a lost commit acknowledgement is detected.
//   - AppendEvent, ApplyReputation and AppendNotification are idempotent on
//     their caller-supplied keys.
//   - I/O failures worth retrying are reported wrapping domain.ErrTransient.
package gateway

import (
	"context"

	"github.com/google/uuid"

	"github.com/heartmarshall/askdev-backend/internal/domain"
)

// Votes is the vote-ledger facet.
type Votes interface {
	// ReadTarget returns the point-in-time tally and version of a target.
	ReadTarget(ctx context.Context, ref domain.TargetRef) (domain.TargetState, error)
	// GetVote returns the voter's record on the target, or domain.ErrNotFound.
	GetVote(ctx context.Context, voterID uuid.UUID, ref domain.TargetRef) (*domain.VoteRecord, error)
	// WriteVote applies w and appends event iff the target is still at
	// w.ExpectedVersion. Returns the new target state, or
	// domain.ErrEventRecorded when event was committed before.
	WriteVote(ctx context.Context, w domain.VoteWrite, event domain.Event) (domain.TargetState, error)
}

// Aggregates is the question/answer facet.
type Aggregates interface {
	GetQuestion(ctx context.Context, questionID uuid.UUID) (*domain.Question, error)
	GetAnswer(ctx context.Context, answerID uuid.UUID) (*domain.Answer, error)
	// SetAcceptance moves the accepted answer of w.QuestionID from
	// w.PreviousAnswerID to w.NewAnswerID (either may be nil) and appends
	// event, iff the question is still at w.ExpectedVersion.
	SetAcceptance(ctx context.Context, w domain.AcceptanceWrite, event domain.Event) (domain.AcceptanceState, error)
	RegisterQuestion(ctx context.Context, q domain.Question) error
	// RegisterAnswer stores the answer and appends event atomically.
	RegisterAnswer(ctx context.Context, a domain.Answer, event domain.Event) error
}

// Events is the outbox facet.
type Events interface {
	// AppendEvent stores event unless an event with the same id exists.
	AppendEvent(ctx context.Context, event domain.Event) error
	// ListPendingEvents returns undispatched events with Seq > afterSeq in
	// append order.
	ListPendingEvents(ctx context.Context, afterSeq int64, limit int) ([]domain.Event, error)
	MarkEventsDispatched(ctx context.Context, ids []uuid.UUID) error
	// ListEvents pages through the whole log by sequence number.
	ListEvents(ctx context.Context, afterSeq int64, limit int) ([]domain.Event, error)
}

// Reputation is the reputation ledger facet. Values are raw (unclamped) sums.
type Reputation interface {
	// ApplyReputation adds delta to userID once per (eventID, userID).
	// Returns false when the pair was already applied.
	ApplyReputation(ctx context.Context, eventID, userID uuid.UUID, delta int64) (bool, error)
	GetReputation(ctx context.Context, userID uuid.UUID) (int64, error)
	ListReputations(ctx context.Context) (map[uuid.UUID]int64, error)
}

// Notifications is the notification store facet.
type Notifications interface {
	// AppendNotification inserts n unless (SourceEventID, RecipientID) exists.
	// Returns false on a dedup hit.
	AppendNotification(ctx context.Context, n domain.Notification) (bool, error)
	ListNotifications(ctx context.Context, filter NotificationFilter) ([]domain.Notification, int, error)
	CountUnread(ctx context.Context, userID uuid.UUID) (int, error)
	MarkNotificationRead(ctx context.Context, userID, notificationID uuid.UUID) error
	MarkAllNotificationsRead(ctx context.Context, userID uuid.UUID) (int, error)
}

// NotificationFilter selects a page of a user's notifications, newest first.
type NotificationFilter struct {
	RecipientID uuid.UUID
	UnreadOnly  bool
	Kinds       []domain.NotificationKind
	Limit       int
	Offset      int
}

// Gateway is the full contract.
type Gateway interface {
	Votes
	Aggregates
	Events
	Reputation
	Notifications
	Ping(ctx context.Context) error
	Close()
}
