package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/askdev-backend/internal/domain"
)

// SeedQuestion inserts an unanswered question by a fresh author.
func SeedQuestion(t *testing.T, pool *pgxpool.Pool) domain.Question {
	t.Helper()

	q := domain.Question{
		ID:        uuid.New(),
		AuthorID:  uuid.New(),
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO questions (id, author_id, created_at) VALUES ($1, $2, $3)`,
		q.ID, q.AuthorID, q.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedQuestion: %v", err)
	}
	return q
}

// SeedAnswer inserts an unaccepted answer to questionID by a fresh author.
func SeedAnswer(t *testing.T, pool *pgxpool.Pool, questionID uuid.UUID) domain.Answer {
	t.Helper()

	a := domain.Answer{
		ID:         uuid.New(),
		QuestionID: questionID,
		AuthorID:   uuid.New(),
		CreatedAt:  time.Now().UTC().Truncate(time.Microsecond),
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO answers (id, question_id, author_id, created_at) VALUES ($1, $2, $3, $4)`,
		a.ID, a.QuestionID, a.AuthorID, a.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedAnswer: %v", err)
	}
	return a
}
