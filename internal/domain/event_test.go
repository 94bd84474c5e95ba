package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestEventPayload_RoundTripPreservesVariant(t *testing.T) {
	t.Parallel()

	prevAnswer, prevAuthor := uuid.New(), uuid.New()
	payload := AnswerAccepted{
		QuestionID:       uuid.New(),
		QuestionAuthorID: uuid.New(),
		AnswerID:         uuid.New(),
		AnswerAuthorID:   uuid.New(),
		PreviousAnswerID: &prevAnswer,
		PreviousAuthorID: &prevAuthor,
	}

	data, err := MarshalEventPayload(payload)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	got, err := UnmarshalEventPayload(EventAnswerAccepted, data)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	accepted, ok := got.(AnswerAccepted)
	if !ok {
		t.Fatalf("got %T, want AnswerAccepted", got)
	}
	if *accepted.PreviousAuthorID != prevAuthor {
		t.Errorf("previous author: got %s, want %s", *accepted.PreviousAuthorID, prevAuthor)
	}
}

func TestUnmarshalEventPayload_UnknownKind(t *testing.T) {
	t.Parallel()

	if _, err := UnmarshalEventPayload(EventKind("MENTION"), []byte(`{}`)); err == nil {
		t.Fatal("expected error for unknown kind")
	}
}

func TestNewEvent_KindFollowsPayload(t *testing.T) {
	t.Parallel()

	e := NewEvent(uuid.New(), AnswerPosted{AnswerID: uuid.New()}, time.Now())
	if e.Kind != EventAnswerPosted {
		t.Errorf("kind: got %s, want %s", e.Kind, EventAnswerPosted)
	}
	if e.ID == uuid.Nil {
		t.Error("event id must be set")
	}
}

func TestNotificationID_Deterministic(t *testing.T) {
	t.Parallel()

	ev, rcpt := uuid.New(), uuid.New()
	if NotificationID(ev, rcpt) != NotificationID(ev, rcpt) {
		t.Fatal("same key must yield same id")
	}
	if NotificationID(ev, rcpt) == NotificationID(ev, uuid.New()) {
		t.Fatal("different recipients must yield different ids")
	}
}
