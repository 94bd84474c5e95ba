package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// notificationNamespace seeds deterministic notification ids.
var notificationNamespace = uuid.MustParse("5b0f3c7e-2a59-4a8e-9c1d-6f1e0d7b2a44")

// NotificationID derives the id of the notification produced for recipient
// from source event. Redelivering the event yields the same id.
func NotificationID(sourceEventID, recipientID uuid.UUID) uuid.UUID {
	key := make([]byte, 0, 32)
	key = append(key, sourceEventID[:]...)
	key = append(key, recipientID[:]...)
	return uuid.NewSHA1(notificationNamespace, key)
}

// Notification is addressed to one user. (SourceEventID, RecipientID) is
// unique; Read is the only field that changes after creation.
type Notification struct {
	ID            uuid.UUID
	RecipientID   uuid.UUID
	SourceEventID uuid.UUID
	Kind          NotificationKind
	Payload       NotificationPayload
	Read          bool
	CreatedAt     time.Time
}

// NewNotification builds the notification for recipient from a source event.
func NewNotification(sourceEventID, recipientID uuid.UUID, payload NotificationPayload, at time.Time) Notification {
	return Notification{
		ID:            NotificationID(sourceEventID, recipientID),
		RecipientID:   recipientID,
		SourceEventID: sourceEventID,
		Kind:          payload.NotificationKind(),
		Payload:       payload,
		CreatedAt:     at,
	}
}

// Message renders the notification text.
func (n *Notification) Message() string {
	if n.Payload == nil {
		return ""
	}
	return n.Payload.Message()
}

// NotificationPayload is the closed set of notification variants.
type NotificationPayload interface {
	NotificationKind() NotificationKind
	Message() string
	isNotificationPayload()
}

// VoteNotice tells a content author their post received a vote.
type VoteNotice struct {
	ActorID    uuid.UUID     `json:"actorId"`
	Target     TargetRef     `json:"target"`
	QuestionID uuid.UUID     `json:"questionId"`
	Direction  VoteDirection `json:"direction"`
}

// AnswerNotice tells a question author a new answer arrived.
type AnswerNotice struct {
	ActorID    uuid.UUID `json:"actorId"`
	QuestionID uuid.UUID `json:"questionId"`
	AnswerID   uuid.UUID `json:"answerId"`
}

// AcceptedNotice tells an answer author their answer was accepted.
type AcceptedNotice struct {
	ActorID    uuid.UUID `json:"actorId"`
	QuestionID uuid.UUID `json:"questionId"`
	AnswerID   uuid.UUID `json:"answerId"`
}

// RevokedNotice tells an answer author their answer is no longer accepted.
type RevokedNotice struct {
	ActorID    uuid.UUID `json:"actorId"`
	QuestionID uuid.UUID `json:"questionId"`
	AnswerID   uuid.UUID `json:"answerId"`
}

func (VoteNotice) NotificationKind() NotificationKind     { return NotificationVoteReceived }
func (AnswerNotice) NotificationKind() NotificationKind   { return NotificationAnswerReceived }
func (AcceptedNotice) NotificationKind() NotificationKind { return NotificationAnswerAccepted }
func (RevokedNotice) NotificationKind() NotificationKind  { return NotificationAcceptanceRevoked }

func (VoteNotice) isNotificationPayload()     {}
func (AnswerNotice) isNotificationPayload()   {}
func (AcceptedNotice) isNotificationPayload() {}
func (RevokedNotice) isNotificationPayload()  {}

func (n VoteNotice) Message() string {
	noun := "question"
	if n.Target.Type == TargetTypeAnswer {
		noun = "answer"
	}
	if n.Direction == VoteDown {
		return fmt.Sprintf("Your %s received a downvote", noun)
	}
	return fmt.Sprintf("Your %s received an upvote", noun)
}

func (AnswerNotice) Message() string   { return "Your question received a new answer" }
func (AcceptedNotice) Message() string { return "Your answer was accepted" }
func (RevokedNotice) Message() string  { return "Your answer is no longer the accepted answer" }

// MarshalNotificationPayload encodes a payload for storage.
func MarshalNotificationPayload(p NotificationPayload) ([]byte, error) {
	if p == nil {
		return nil, fmt.Errorf("marshal notification payload: nil payload")
	}
	return json.Marshal(p)
}

// UnmarshalNotificationPayload decodes a stored payload of the given kind.
func UnmarshalNotificationPayload(kind NotificationKind, data []byte) (NotificationPayload, error) {
	var (
		p   NotificationPayload
		err error
	)

	switch kind {
	case NotificationVoteReceived:
		var v VoteNotice
		err = json.Unmarshal(data, &v)
		p = v
	case NotificationAnswerReceived:
		var v AnswerNotice
		err = json.Unmarshal(data, &v)
		p = v
	case NotificationAnswerAccepted:
		var v AcceptedNotice
		err = json.Unmarshal(data, &v)
		p = v
	case NotificationAcceptanceRevoked:
		var v RevokedNotice
		err = json.Unmarshal(data, &v)
		p = v
	default:
		return nil, fmt.Errorf("unmarshal notification payload: unknown kind %q", kind)
	}

	if err != nil {
		return nil, fmt.Errorf("unmarshal %s payload: %w", kind, err)
	}
	return p, nil
}
