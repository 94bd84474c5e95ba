// Package aggregate implements question/answer persistence using PostgreSQL.
// Every write that changes a question or answer bumps its version and is
// conditioned on the version the caller read.
package aggregate

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/askdev-backend/internal/adapter/postgres"
	"github.com/heartmarshall/askdev-backend/internal/domain"
)

// Repo provides question and answer persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new aggregate repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// SQL
// ---------------------------------------------------------------------------

const getQuestionSQL = `
SELECT id, author_id, accepted_answer_id, vote_tally, version, created_at
FROM questions
WHERE id = $1`

const getAnswerSQL = `
SELECT id, question_id, author_id, is_accepted, vote_tally, version, created_at
FROM answers
WHERE id = $1`

const insertQuestionSQL = `
INSERT INTO questions (id, author_id, vote_tally, version, created_at)
VALUES ($1, $2, 0, 0, $3)`

const insertAnswerSQL = `
INSERT INTO answers (id, question_id, author_id, is_accepted, vote_tally, version, created_at)
VALUES ($1, $2, $3, false, 0, 0, $4)`

const readQuestionTargetSQL = `
SELECT id, author_id, id, vote_tally, version
FROM questions
WHERE id = $1`

const readAnswerTargetSQL = `
SELECT id, author_id, question_id, vote_tally, version
FROM answers
WHERE id = $1`

const bumpQuestionTallySQL = `
UPDATE questions
SET vote_tally = vote_tally + $2, version = version + 1
WHERE id = $1 AND version = $3
RETURNING id, author_id, id, vote_tally, version`

const bumpAnswerTallySQL = `
UPDATE answers
SET vote_tally = vote_tally + $2, version = version + 1
WHERE id = $1 AND version = $3
RETURNING id, author_id, question_id, vote_tally, version`

const casAcceptedAnswerSQL = `
UPDATE questions
SET accepted_answer_id = $2, version = version + 1
WHERE id = $1 AND version = $3 AND accepted_answer_id IS NOT DISTINCT FROM $4
RETURNING version`

const setAnswerAcceptedSQL = `
UPDATE answers
SET is_accepted = $3
WHERE id = $1 AND question_id = $2`

// ---------------------------------------------------------------------------
// Questions & answers
// ---------------------------------------------------------------------------

// GetQuestion returns a question by primary key.
// Returns domain.ErrNotFound if the question does not exist.
func (r *Repo) GetQuestion(ctx context.Context, questionID uuid.UUID) (*domain.Question, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var out domain.Question
	err := q.QueryRow(ctx, getQuestionSQL, questionID).Scan(
		&out.ID, &out.AuthorID, &out.AcceptedAnswerID, &out.VoteTally, &out.Version, &out.CreatedAt,
	)
	if err != nil {
		return nil, postgres.MapError(err, "question", questionID)
	}
	return &out, nil
}

// GetAnswer returns an answer by primary key.
// Returns domain.ErrNotFound if the answer does not exist.
func (r *Repo) GetAnswer(ctx context.Context, answerID uuid.UUID) (*domain.Answer, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var out domain.Answer
	err := q.QueryRow(ctx, getAnswerSQL, answerID).Scan(
		&out.ID, &out.QuestionID, &out.AuthorID, &out.IsAccepted, &out.VoteTally, &out.Version, &out.CreatedAt,
	)
	if err != nil {
		return nil, postgres.MapError(err, "answer", answerID)
	}
	return &out, nil
}

// InsertQuestion stores a new, unanswered question.
// Returns domain.ErrAlreadyExists if the id is taken.
func (r *Repo) InsertQuestion(ctx context.Context, question domain.Question) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := q.Exec(ctx, insertQuestionSQL, question.ID, question.AuthorID, question.CreatedAt); err != nil {
		return postgres.MapError(err, "question", question.ID)
	}
	return nil
}

// InsertAnswer stores a new, unaccepted answer.
// Returns domain.ErrNotFound if the question does not exist.
func (r *Repo) InsertAnswer(ctx context.Context, a domain.Answer) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := q.Exec(ctx, insertAnswerSQL, a.ID, a.QuestionID, a.AuthorID, a.CreatedAt); err != nil {
		return postgres.MapError(err, "answer", a.ID)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Vote targets
// ---------------------------------------------------------------------------

// ReadTarget returns the tally and version of a question or answer.
func (r *Repo) ReadTarget(ctx context.Context, ref domain.TargetRef) (domain.TargetState, error) {
	query, err := targetSQL(ref.Type, readQuestionTargetSQL, readAnswerTargetSQL)
	if err != nil {
		return domain.TargetState{}, err
	}

	row := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, ref.ID)
	state, err := scanTarget(row, ref.Type)
	if err != nil {
		return domain.TargetState{}, postgres.MapError(err, entity(ref.Type), ref.ID)
	}
	return state, nil
}

// BumpTally adds delta to the target's tally iff it is still at
// expectedVersion. Returns domain.ErrVersionConflict when it is not, and
// domain.ErrNotFound when the target does not exist.
func (r *Repo) BumpTally(ctx context.Context, ref domain.TargetRef, delta, expectedVersion int64) (domain.TargetState, error) {
	query, err := targetSQL(ref.Type, bumpQuestionTallySQL, bumpAnswerTallySQL)
	if err != nil {
		return domain.TargetState{}, err
	}

	row := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, ref.ID, delta, expectedVersion)
	state, err := scanTarget(row, ref.Type)
	if err == nil {
		return state, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return domain.TargetState{}, postgres.MapError(err, entity(ref.Type), ref.ID)
	}

	// No row updated: either the target is gone or the version moved on.
	if _, readErr := r.ReadTarget(ctx, ref); readErr != nil {
		return domain.TargetState{}, readErr
	}
	return domain.TargetState{}, fmt.Errorf("%s %s: %w", entity(ref.Type), ref.ID, domain.ErrVersionConflict)
}

// ---------------------------------------------------------------------------
// Acceptance
// ---------------------------------------------------------------------------

// CompareAndSetAccepted points the question at newAnswerID (nil clears it)
// iff the question is still at expectedVersion and currently points at
// expectedPrevious. Returns the new version.
func (r *Repo) CompareAndSetAccepted(
	ctx context.Context,
	questionID uuid.UUID,
	newAnswerID, expectedPrevious *uuid.UUID,
	expectedVersion int64,
) (int64, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var version int64
	err := q.QueryRow(ctx, casAcceptedAnswerSQL, questionID, newAnswerID, expectedVersion, expectedPrevious).Scan(&version)
	if err == nil {
		return version, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, postgres.MapError(err, "question", questionID)
	}

	if _, getErr := r.GetQuestion(ctx, questionID); getErr != nil {
		return 0, getErr
	}
	return 0, fmt.Errorf("question %s: %w", questionID, domain.ErrVersionConflict)
}

// SetAnswerAccepted flips the accepted flag of an answer of questionID.
// Returns domain.ErrNotFound if no such answer belongs to the question.
func (r *Repo) SetAnswerAccepted(ctx context.Context, questionID, answerID uuid.UUID, accepted bool) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, setAnswerAcceptedSQL, answerID, questionID, accepted)
	if err != nil {
		return postgres.MapError(err, "answer", answerID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("answer %s on question %s: %w", answerID, questionID, domain.ErrNotFound)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func targetSQL(t domain.TargetType, questionSQL, answerSQL string) (string, error) {
	switch t {
	case domain.TargetTypeQuestion:
		return questionSQL, nil
	case domain.TargetTypeAnswer:
		return answerSQL, nil
	default:
		return "", domain.NewValidationError("target_type", "must be QUESTION or ANSWER")
	}
}

func scanTarget(row pgx.Row, t domain.TargetType) (domain.TargetState, error) {
	state := domain.TargetState{Ref: domain.TargetRef{Type: t}}
	err := row.Scan(&state.Ref.ID, &state.AuthorID, &state.QuestionID, &state.Tally, &state.Version)
	return state, err
}

func entity(t domain.TargetType) string {
	if t == domain.TargetTypeAnswer {
		return "answer"
	}
	return "question"
}
