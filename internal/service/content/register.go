package content

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/askdev-backend/internal/domain"
)

// RegisterQuestion makes a question known to the engine. It starts
// unanswered with a zero tally.
func (s *Service) RegisterQuestion(ctx context.Context, input RegisterQuestionInput) (*domain.Question, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	id := input.QuestionID
	if id == uuid.Nil {
		id = uuid.New()
	}

	q := domain.Question{ID: id, AuthorID: input.AuthorID, CreatedAt: s.now()}
	if err := s.store.RegisterQuestion(ctx, q); err != nil {
		return nil, fmt.Errorf("register question: %w", err)
	}

	s.log.InfoContext(ctx, "question registered",
		slog.String("question_id", q.ID.String()),
		slog.String("author_id", q.AuthorID.String()),
	)
	return &q, nil
}

// PostAnswer registers an answer and emits AnswerPosted in the same write.
func (s *Service) PostAnswer(ctx context.Context, input PostAnswerInput) (*domain.Answer, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	q, err := s.store.GetQuestion(ctx, input.QuestionID)
	if err != nil {
		return nil, fmt.Errorf("get question: %w", err)
	}

	id := input.AnswerID
	if id == uuid.Nil {
		id = uuid.New()
	}

	now := s.now()
	a := domain.Answer{ID: id, QuestionID: q.ID, AuthorID: input.AuthorID, CreatedAt: now}
	ev := domain.NewEvent(input.AuthorID, domain.AnswerPosted{
		QuestionID:       q.ID,
		QuestionAuthorID: q.AuthorID,
		AnswerID:         a.ID,
		AnswerAuthorID:   a.AuthorID,
	}, now)

	if err := s.store.RegisterAnswer(ctx, a, ev); err != nil {
		return nil, fmt.Errorf("register answer: %w", err)
	}

	s.events.Publish(ctx, ev)

	s.log.InfoContext(ctx, "answer posted",
		slog.String("question_id", q.ID.String()),
		slog.String("answer_id", a.ID.String()),
	)
	return &a, nil
}
