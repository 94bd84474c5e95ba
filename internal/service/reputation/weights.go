package reputation

import (
	"bytes"
	"slices"

	"github.com/google/uuid"

	"github.com/heartmarshall/askdev-backend/internal/domain"
)

// Weights is the reputation point table.
type Weights struct {
	UpvoteReceived   int64
	DownvoteReceived int64
	AnswerAccepted   int64
	// DownvoteCast is charged to the voter for every downvote they hold.
	DownvoteCast int64
}

// DefaultWeights returns the stock point table.
func DefaultWeights() Weights {
	return Weights{
		UpvoteReceived:   10,
		DownvoteReceived: -2,
		AnswerAccepted:   15,
		DownvoteCast:     0,
	}
}

// Delta is a reputation change for one user caused by one event.
type Delta struct {
	UserID uuid.UUID
	Amount int64
}

// Deltas projects an event onto per-user reputation changes. The result is
// sorted by user, merged per user and free of zero amounts. It depends only on
// the event, never on current state.
func (w Weights) Deltas(ev domain.Event) []Delta {
	acc := make(map[uuid.UUID]int64, 2)

	switch p := ev.Payload.(type) {
	case domain.VoteCast:
		acc[p.AuthorID] += w.received(p.Direction)
		acc[ev.ActorID] += w.cast(p.Direction)
	case domain.VoteChanged:
		acc[p.AuthorID] += w.received(p.To) - w.received(p.From)
		acc[ev.ActorID] += w.cast(p.To) - w.cast(p.From)
	case domain.VoteRetracted:
		acc[p.AuthorID] -= w.received(p.Direction)
		acc[ev.ActorID] -= w.cast(p.Direction)
	case domain.AnswerAccepted:
		if p.AnswerAuthorID != p.QuestionAuthorID {
			acc[p.AnswerAuthorID] += w.AnswerAccepted
		}
		if p.PreviousAuthorID != nil && *p.PreviousAuthorID != p.QuestionAuthorID {
			acc[*p.PreviousAuthorID] -= w.AnswerAccepted
		}
	case domain.AnswerUnaccepted:
		if p.AnswerAuthorID != p.QuestionAuthorID {
			acc[p.AnswerAuthorID] -= w.AnswerAccepted
		}
	case domain.AnswerPosted:
	}

	out := make([]Delta, 0, len(acc))
	for id, amount := range acc {
		if amount != 0 && id != uuid.Nil {
			out = append(out, Delta{UserID: id, Amount: amount})
		}
	}
	slices.SortFunc(out, func(a, b Delta) int { return bytes.Compare(a.UserID[:], b.UserID[:]) })
	return out
}

// Replay folds events into raw per-user sums starting from an empty
// accumulator. Events repeated by id count once.
func (w Weights) Replay(events []domain.Event) map[uuid.UUID]int64 {
	seen := make(map[uuid.UUID]struct{}, len(events))
	out := make(map[uuid.UUID]int64)

	for _, ev := range events {
		if _, ok := seen[ev.ID]; ok {
			continue
		}
		seen[ev.ID] = struct{}{}
		for _, d := range w.Deltas(ev) {
			out[d.UserID] += d.Amount
		}
	}
	return out
}

func (w Weights) received(d domain.VoteDirection) int64 {
	if d == domain.VoteDown {
		return w.DownvoteReceived
	}
	return w.UpvoteReceived
}

func (w Weights) cast(d domain.VoteDirection) int64 {
	if d == domain.VoteDown {
		return w.DownvoteCast
	}
	return 0
}
