package notification

import (
	"github.com/google/uuid"

	"github.com/heartmarshall/askdev-backend/internal/domain"
)

// delivery is one notification payload for one recipient.
type delivery struct {
	recipient uuid.UUID
	payload   domain.NotificationPayload
}

// Recipients computes who hears about an event. The actor never does, and a
// user appears at most once.
func Recipients(ev domain.Event) []uuid.UUID {
	ds := deliveries(ev)
	out := make([]uuid.UUID, len(ds))
	for i, d := range ds {
		out[i] = d.recipient
	}
	return out
}

func deliveries(ev domain.Event) []delivery {
	var candidates []delivery

	switch p := ev.Payload.(type) {
	case domain.VoteCast:
		candidates = append(candidates, delivery{p.AuthorID, domain.VoteNotice{
			ActorID: ev.ActorID, Target: p.Target, QuestionID: p.QuestionID, Direction: p.Direction,
		}})
	case domain.VoteChanged:
		candidates = append(candidates, delivery{p.AuthorID, domain.VoteNotice{
			ActorID: ev.ActorID, Target: p.Target, QuestionID: p.QuestionID, Direction: p.To,
		}})
	case domain.VoteRetracted:
	case domain.AnswerPosted:
		candidates = append(candidates, delivery{p.QuestionAuthorID, domain.AnswerNotice{
			ActorID: ev.ActorID, QuestionID: p.QuestionID, AnswerID: p.AnswerID,
		}})
	case domain.AnswerAccepted:
		candidates = append(candidates, delivery{p.AnswerAuthorID, domain.AcceptedNotice{
			ActorID: ev.ActorID, QuestionID: p.QuestionID, AnswerID: p.AnswerID,
		}})
		if p.PreviousAuthorID != nil && p.PreviousAnswerID != nil {
			candidates = append(candidates, delivery{*p.PreviousAuthorID, domain.RevokedNotice{
				ActorID: ev.ActorID, QuestionID: p.QuestionID, AnswerID: *p.PreviousAnswerID,
			}})
		}
	case domain.AnswerUnaccepted:
		candidates = append(candidates, delivery{p.AnswerAuthorID, domain.RevokedNotice{
			ActorID: ev.ActorID, QuestionID: p.QuestionID, AnswerID: p.AnswerID,
		}})
	}

	out := candidates[:0]
	seen := make(map[uuid.UUID]struct{}, len(candidates))
	for _, d := range candidates {
		if d.recipient == uuid.Nil || d.recipient == ev.ActorID {
			continue
		}
		if _, dup := seen[d.recipient]; dup {
			continue
		}
		seen[d.recipient] = struct{}{}
		out = append(out, d)
	}
	return out
}
