package domain

import (
	"time"

	"github.com/google/uuid"
)

// Question is the root of an aggregate (a question plus its answers).
// Version is bumped on every committed change to the aggregate root and is
// the optimistic-concurrency token for votes on the question and for
// acceptance changes.
type Question struct {
	ID               uuid.UUID
	AuthorID         uuid.UUID
	AcceptedAnswerID *uuid.UUID
	VoteTally        int64
	Version          int64
	CreatedAt        time.Time
}

// HasAcceptedAnswer reports whether the question is in the accepted state.
func (q *Question) HasAcceptedAnswer() bool { return q.AcceptedAnswerID != nil }

// Answer belongs to exactly one question. IsAccepted mirrors the owning
// question's AcceptedAnswerID and only changes through acceptance writes.
type Answer struct {
	ID         uuid.UUID
	QuestionID uuid.UUID
	AuthorID   uuid.UUID
	IsAccepted bool
	VoteTally  int64
	Version    int64
	CreatedAt  time.Time
}

// TargetRef addresses a votable question or answer.
type TargetRef struct {
	Type TargetType `json:"type"`
	ID   uuid.UUID  `json:"id"`
}

// TargetState is a point-in-time read of a vote target.
type TargetState struct {
	Ref        TargetRef
	AuthorID   uuid.UUID
	QuestionID uuid.UUID
	Tally      int64
	Version    int64
}

// AcceptanceState is the acceptance state machine position of a question:
// Unanswered when AcceptedAnswerID is nil, HasAcceptedAnswer otherwise.
type AcceptanceState struct {
	QuestionID       uuid.UUID
	AcceptedAnswerID *uuid.UUID
	Version          int64
}

// AcceptanceWrite is a compare-and-swap on a question's accepted answer.
// The gateway applies it atomically: the question row (conditioned on
// ExpectedVersion), the previously accepted answer and the new one.
type AcceptanceWrite struct {
	QuestionID       uuid.UUID
	NewAnswerID      *uuid.UUID
	PreviousAnswerID *uuid.UUID
	ExpectedVersion  int64
}
