package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Event is an immutable record of a committed state change. ID is unique and
// is the idempotency key for every projection that consumes the event. Seq is
// assigned by the store on append and orders redelivery.
type Event struct {
	ID         uuid.UUID
	Seq        int64
	Kind       EventKind
	ActorID    uuid.UUID
	Payload    EventPayload
	OccurredAt time.Time
}

// NewEvent stamps a payload with a fresh id.
func NewEvent(actorID uuid.UUID, payload EventPayload, at time.Time) Event {
	return Event{
		ID:         uuid.New(),
		Kind:       payload.EventKind(),
		ActorID:    actorID,
		Payload:    payload,
		OccurredAt: at,
	}
}

// EventPayload is the closed set of event variants. Consumers type-switch
// over the concrete types below.
type EventPayload interface {
	EventKind() EventKind
	isEventPayload()
}

// VoteCast: a voter voted on a target for the first time.
type VoteCast struct {
	Target     TargetRef     `json:"target"`
	QuestionID uuid.UUID     `json:"questionId"`
	AuthorID   uuid.UUID     `json:"authorId"`
	Direction  VoteDirection `json:"direction"`
	TallyDelta int64         `json:"tallyDelta"`
}

// VoteChanged: a voter flipped an existing vote.
type VoteChanged struct {
	Target     TargetRef     `json:"target"`
	QuestionID uuid.UUID     `json:"questionId"`
	AuthorID   uuid.UUID     `json:"authorId"`
	From       VoteDirection `json:"from"`
	To         VoteDirection `json:"to"`
	TallyDelta int64         `json:"tallyDelta"`
}

// VoteRetracted: a voter withdrew a vote by casting the same direction again.
type VoteRetracted struct {
	Target     TargetRef     `json:"target"`
	QuestionID uuid.UUID     `json:"questionId"`
	AuthorID   uuid.UUID     `json:"authorId"`
	Direction  VoteDirection `json:"direction"`
	TallyDelta int64         `json:"tallyDelta"`
}

// AnswerAccepted: the question author accepted an answer. When another answer
// was accepted before, PreviousAnswerID and PreviousAuthorID are set.
type AnswerAccepted struct {
	QuestionID       uuid.UUID  `json:"questionId"`
	QuestionAuthorID uuid.UUID  `json:"questionAuthorId"`
	AnswerID         uuid.UUID  `json:"answerId"`
	AnswerAuthorID   uuid.UUID  `json:"answerAuthorId"`
	PreviousAnswerID *uuid.UUID `json:"previousAnswerId,omitempty"`
	PreviousAuthorID *uuid.UUID `json:"previousAuthorId,omitempty"`
}

// AnswerUnaccepted: the question author cleared the accepted answer.
type AnswerUnaccepted struct {
	QuestionID       uuid.UUID `json:"questionId"`
	QuestionAuthorID uuid.UUID `json:"questionAuthorId"`
	AnswerID         uuid.UUID `json:"answerId"`
	AnswerAuthorID   uuid.UUID `json:"answerAuthorId"`
}

// AnswerPosted: a new answer was registered from the content store.
type AnswerPosted struct {
	QuestionID       uuid.UUID `json:"questionId"`
	QuestionAuthorID uuid.UUID `json:"questionAuthorId"`
	AnswerID         uuid.UUID `json:"answerId"`
	AnswerAuthorID   uuid.UUID `json:"answerAuthorId"`
}

func (VoteCast) EventKind() EventKind         { return EventVoteCast }
func (VoteChanged) EventKind() EventKind      { return EventVoteChanged }
func (VoteRetracted) EventKind() EventKind    { return EventVoteRetracted }
func (AnswerAccepted) EventKind() EventKind   { return EventAnswerAccepted }
func (AnswerUnaccepted) EventKind() EventKind { return EventAnswerUnaccepted }
func (AnswerPosted) EventKind() EventKind     { return EventAnswerPosted }

func (VoteCast) isEventPayload()         {}
func (VoteChanged) isEventPayload()      {}
func (VoteRetracted) isEventPayload()    {}
func (AnswerAccepted) isEventPayload()   {}
func (AnswerUnaccepted) isEventPayload() {}
func (AnswerPosted) isEventPayload()     {}

// MarshalEventPayload encodes a payload for storage.
func MarshalEventPayload(p EventPayload) ([]byte, error) {
	if p == nil {
		return nil, fmt.Errorf("marshal event payload: nil payload")
	}
	return json.Marshal(p)
}

// UnmarshalEventPayload decodes a stored payload of the given kind.
func UnmarshalEventPayload(kind EventKind, data []byte) (EventPayload, error) {
	var (
		p   EventPayload
		err error
	)

	switch kind {
	case EventVoteCast:
		var v VoteCast
		err = json.Unmarshal(data, &v)
		p = v
	case EventVoteChanged:
		var v VoteChanged
		err = json.Unmarshal(data, &v)
		p = v
	case EventVoteRetracted:
		var v VoteRetracted
		err = json.Unmarshal(data, &v)
		p = v
	case EventAnswerAccepted:
		var v AnswerAccepted
		err = json.Unmarshal(data, &v)
		p = v
	case EventAnswerUnaccepted:
		var v AnswerUnaccepted
		err = json.Unmarshal(data, &v)
		p = v
	case EventAnswerPosted:
		var v AnswerPosted
		err = json.Unmarshal(data, &v)
		p = v
	default:
		return nil, fmt.Errorf("unmarshal event payload: unknown kind %q", kind)
	}

	if err != nil {
		return nil, fmt.Errorf("unmarshal %s payload: %w", kind, err)
	}
	return p, nil
}
