package domain

// TargetType identifies what a vote is cast on.
type TargetType string

const (
	TargetTypeQuestion TargetType = "QUESTION"
	TargetTypeAnswer   TargetType = "ANSWER"
)

func (t TargetType) String() string { return string(t) }

func (t TargetType) IsValid() bool {
	switch t {
	case TargetTypeQuestion, TargetTypeAnswer:
		return true
	}
	return false
}

// VoteDirection is the direction of a single vote.
type VoteDirection string

const (
	VoteUp   VoteDirection = "UP"
	VoteDown VoteDirection = "DOWN"
)

func (d VoteDirection) String() string { return string(d) }

func (d VoteDirection) IsValid() bool {
	switch d {
	case VoteUp, VoteDown:
		return true
	}
	return false
}

// Weight is the contribution of a vote in this direction to a tally.
func (d VoteDirection) Weight() int64 {
	switch d {
	case VoteUp:
		return 1
	case VoteDown:
		return -1
	}
	return 0
}

// Opposite returns the other direction.
func (d VoteDirection) Opposite() VoteDirection {
	if d == VoteUp {
		return VoteDown
	}
	return VoteUp
}

// EventKind identifies the variant of a domain event.
type EventKind string

const (
	EventVoteCast         EventKind = "VOTE_CAST"
	EventVoteChanged      EventKind = "VOTE_CHANGED"
	EventVoteRetracted    EventKind = "VOTE_RETRACTED"
	EventAnswerAccepted   EventKind = "ANSWER_ACCEPTED"
	EventAnswerUnaccepted EventKind = "ANSWER_UNACCEPTED"
	EventAnswerPosted     EventKind = "ANSWER_POSTED"
)

func (k EventKind) String() string { return string(k) }

func (k EventKind) IsValid() bool {
	switch k {
	case EventVoteCast, EventVoteChanged, EventVoteRetracted,
		EventAnswerAccepted, EventAnswerUnaccepted, EventAnswerPosted:
		return true
	}
	return false
}

// NotificationKind identifies the variant of a notification.
type NotificationKind string

const (
	NotificationVoteReceived      NotificationKind = "VOTE_RECEIVED"
	NotificationAnswerReceived    NotificationKind = "ANSWER_RECEIVED"
	NotificationAnswerAccepted    NotificationKind = "ANSWER_ACCEPTED"
	NotificationAcceptanceRevoked NotificationKind = "ACCEPTANCE_REVOKED"
)

func (k NotificationKind) String() string { return string(k) }

func (k NotificationKind) IsValid() bool {
	switch k {
	case NotificationVoteReceived, NotificationAnswerReceived,
		NotificationAnswerAccepted, NotificationAcceptanceRevoked:
		return true
	}
	return false
}

// VoteOutcome describes what a cast did to the voter's existing record.
type VoteOutcome string

const (
	VoteOutcomeCast      VoteOutcome = "CAST"
	VoteOutcomeChanged   VoteOutcome = "CHANGED"
	VoteOutcomeRetracted VoteOutcome = "RETRACTED"
)

func (o VoteOutcome) String() string { return string(o) }
