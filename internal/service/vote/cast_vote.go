package vote

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/askdev-backend/internal/domain"
	"github.com/heartmarshall/askdev-backend/internal/retry"
)

// CastVote records a vote. Casting the same direction twice retracts the
// vote; casting the opposite direction flips it. Each committed call emits
// exactly one event.
//
// The event id is fixed for the whole call. When a commit lands but its
// acknowledgement is lost, the retry finds the event already recorded and
// reports the committed outcome instead of planning the toggle again.
func (s *Service) CastVote(ctx context.Context, input CastVoteInput) (*VoteResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var (
		eventID = uuid.New()
		result  *VoteResult
		event   domain.Event
		// attempted is the plan of the last write whose result is unknown.
		attempted      *VoteResult
		attemptedEvent domain.Event
	)

	err := retry.Run(ctx, s.policy, "cast vote", func(ctx context.Context) error {
		target, err := s.votes.ReadTarget(ctx, input.Target)
		if err != nil {
			return fmt.Errorf("read target: %w", err)
		}
		if target.AuthorID == input.VoterID {
			return domain.NewValidationError("voter_id", "cannot vote on own content")
		}

		existing, err := s.votes.GetVote(ctx, input.VoterID, input.Target)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("get vote: %w", err)
		}

		outcome, delta := domain.PlanVote(existing, input.Direction)
		now := s.now()
		ev := domain.NewEvent(input.VoterID, votePayload(target, existing, input.Direction, outcome, delta), now)
		ev.ID = eventID

		planned := &VoteResult{
			Target:  input.Target,
			Delta:   delta,
			Outcome: outcome,
			EventID: ev.ID,
		}

		state, err := s.votes.WriteVote(ctx, domain.VoteWrite{
			VoterID:         input.VoterID,
			Target:          input.Target,
			Outcome:         outcome,
			Direction:       input.Direction,
			TallyDelta:      delta,
			ExpectedVersion: target.Version,
			At:              now,
		}, ev)
		switch {
		case err == nil:
		case errors.Is(err, domain.ErrEventRecorded) && attempted != nil:
			committed := *attempted
			committed.Tally = target.Tally
			result, event = &committed, attemptedEvent
			return nil
		default:
			attempted, attemptedEvent = planned, ev
			return fmt.Errorf("write vote: %w", err)
		}

		planned.Tally = state.Tally
		result, event = planned, ev
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.events.Publish(ctx, event)

	s.log.InfoContext(ctx, "vote recorded",
		slog.String("voter_id", input.VoterID.String()),
		slog.String("target_type", input.Target.Type.String()),
		slog.String("target_id", input.Target.ID.String()),
		slog.String("outcome", result.Outcome.String()),
		slog.Int64("tally", result.Tally),
	)

	return result, nil
}

func votePayload(
	target domain.TargetState,
	existing *domain.VoteRecord,
	dir domain.VoteDirection,
	outcome domain.VoteOutcome,
	delta int64,
) domain.EventPayload {
	switch outcome {
	case domain.VoteOutcomeChanged:
		return domain.VoteChanged{
			Target:     target.Ref,
			QuestionID: target.QuestionID,
			AuthorID:   target.AuthorID,
			From:       existing.Direction,
			To:         dir,
			TallyDelta: delta,
		}
	case domain.VoteOutcomeRetracted:
		return domain.VoteRetracted{
			Target:     target.Ref,
			QuestionID: target.QuestionID,
			AuthorID:   target.AuthorID,
			Direction:  dir,
			TallyDelta: delta,
		}
	default:
		return domain.VoteCast{
			Target:     target.Ref,
			QuestionID: target.QuestionID,
			AuthorID:   target.AuthorID,
			Direction:  dir,
			TallyDelta: delta,
		}
	}
}
