package acceptance

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/askdev-backend/internal/domain"
	"github.com/heartmarshall/askdev-backend/internal/retry"
)

const (
	opAccept   = "accept answer"
	opUnaccept = "unaccept answer"
)

// Accept marks answerID as the accepted answer of its question, clearing any
// previously accepted answer in the same write. Accepting the answer that is
// already accepted is a no-op.
func (s *Service) Accept(ctx context.Context, input AcceptInput) (*Result, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var (
		result *Result
		event  *domain.Event
	)

	err := retry.Run(ctx, s.policy, opAccept, func(ctx context.Context) error {
		result, event = nil, nil

		q, err := s.authorizedQuestion(ctx, input.QuestionID, input.RequesterID, "accept an answer")
		if err != nil {
			return err
		}
		if err := checkExpected(opAccept, input.ExpectedVersion, q.Version); err != nil {
			return err
		}

		answer, err := s.store.GetAnswer(ctx, input.AnswerID)
		if err != nil {
			return fmt.Errorf("get answer: %w", err)
		}
		if answer.QuestionID != q.ID {
			return fmt.Errorf("answer %s on question %s: %w", answer.ID, q.ID, domain.ErrNotFound)
		}

		if q.AcceptedAnswerID != nil && *q.AcceptedAnswerID == answer.ID {
			result = &Result{QuestionID: q.ID, AcceptedAnswerID: q.AcceptedAnswerID, Version: q.Version}
			return nil
		}

		payload := domain.AnswerAccepted{
			QuestionID:       q.ID,
			QuestionAuthorID: q.AuthorID,
			AnswerID:         answer.ID,
			AnswerAuthorID:   answer.AuthorID,
		}
		if q.AcceptedAnswerID != nil {
			prev, err := s.store.GetAnswer(ctx, *q.AcceptedAnswerID)
			if err != nil {
				return fmt.Errorf("get previous answer: %w", err)
			}
			payload.PreviousAnswerID = &prev.ID
			payload.PreviousAuthorID = &prev.AuthorID
		}

		ev := domain.NewEvent(input.RequesterID, payload, s.now())
		state, err := s.store.SetAcceptance(ctx, domain.AcceptanceWrite{
			QuestionID:       q.ID,
			NewAnswerID:      &answer.ID,
			PreviousAnswerID: q.AcceptedAnswerID,
			ExpectedVersion:  q.Version,
		}, ev)
		if err != nil {
			return fmt.Errorf("set acceptance: %w", err)
		}

		result = &Result{
			QuestionID:       q.ID,
			AcceptedAnswerID: state.AcceptedAnswerID,
			PreviousAnswerID: payload.PreviousAnswerID,
			Version:          state.Version,
			Changed:          true,
			EventID:          ev.ID,
		}
		event = &ev
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.commit(ctx, event, result)
	return result, nil
}

// Unaccept clears the accepted answer of a question. A question without an
// accepted answer is left untouched.
func (s *Service) Unaccept(ctx context.Context, input UnacceptInput) (*Result, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var (
		result *Result
		event  *domain.Event
	)

	err := retry.Run(ctx, s.policy, opUnaccept, func(ctx context.Context) error {
		result, event = nil, nil

		q, err := s.authorizedQuestion(ctx, input.QuestionID, input.RequesterID, "unaccept an answer")
		if err != nil {
			return err
		}
		if err := checkExpected(opUnaccept, input.ExpectedVersion, q.Version); err != nil {
			return err
		}

		if q.AcceptedAnswerID == nil {
			result = &Result{QuestionID: q.ID, Version: q.Version}
			return nil
		}

		current, err := s.store.GetAnswer(ctx, *q.AcceptedAnswerID)
		if err != nil {
			return fmt.Errorf("get accepted answer: %w", err)
		}

		ev := domain.NewEvent(input.RequesterID, domain.AnswerUnaccepted{
			QuestionID:       q.ID,
			QuestionAuthorID: q.AuthorID,
			AnswerID:         current.ID,
			AnswerAuthorID:   current.AuthorID,
		}, s.now())

		state, err := s.store.SetAcceptance(ctx, domain.AcceptanceWrite{
			QuestionID:       q.ID,
			PreviousAnswerID: q.AcceptedAnswerID,
			ExpectedVersion:  q.Version,
		}, ev)
		if err != nil {
			return fmt.Errorf("set acceptance: %w", err)
		}

		result = &Result{
			QuestionID:       q.ID,
			PreviousAnswerID: &current.ID,
			Version:          state.Version,
			Changed:          true,
			EventID:          ev.ID,
		}
		event = &ev
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.commit(ctx, event, result)
	return result, nil
}

// Status returns the current acceptance state of a question.
func (s *Service) Status(ctx context.Context, questionID uuid.UUID) (*domain.AcceptanceState, error) {
	if questionID == uuid.Nil {
		return nil, domain.NewValidationError("question_id", "required")
	}

	q, err := s.store.GetQuestion(ctx, questionID)
	if err != nil {
		return nil, fmt.Errorf("get question: %w", err)
	}
	return &domain.AcceptanceState{
		QuestionID:       q.ID,
		AcceptedAnswerID: q.AcceptedAnswerID,
		Version:          q.Version,
	}, nil
}

func (s *Service) authorizedQuestion(ctx context.Context, questionID, requesterID uuid.UUID, action string) (*domain.Question, error) {
	q, err := s.store.GetQuestion(ctx, questionID)
	if err != nil {
		return nil, fmt.Errorf("get question: %w", err)
	}
	if q.AuthorID != requesterID {
		return nil, &domain.AuthorizationError{ActorID: requesterID.String(), Action: action}
	}
	return q, nil
}

func (s *Service) commit(ctx context.Context, event *domain.Event, result *Result) {
	if event == nil {
		s.log.DebugContext(ctx, "acceptance unchanged", slog.String("question_id", result.QuestionID.String()))
		return
	}

	s.events.Publish(ctx, *event)

	attrs := []any{
		slog.String("question_id", result.QuestionID.String()),
		slog.String("event", event.Kind.String()),
		slog.Int64("version", result.Version),
	}
	if result.AcceptedAnswerID != nil {
		attrs = append(attrs, slog.String("answer_id", result.AcceptedAnswerID.String()))
	}
	s.log.InfoContext(ctx, "acceptance changed", attrs...)
}

// checkExpected fails fast when the caller acted on a stale question version.
func checkExpected(op string, expected *int64, current int64) error {
	if expected == nil || *expected == current {
		return nil
	}
	return &domain.ConflictError{Op: op, Attempts: 1}
}
