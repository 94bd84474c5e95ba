// Package vote implements the per-voter vote ledger using PostgreSQL.
package vote

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/askdev-backend/internal/adapter/postgres"
	"github.com/heartmarshall/askdev-backend/internal/domain"
)

// Repo provides vote record persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new vote repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const getVoteSQL = `
SELECT direction, cast_at
FROM votes
WHERE voter_id = $1 AND target_type = $2 AND target_id = $3`

const insertVoteSQL = `
INSERT INTO votes (voter_id, target_type, target_id, direction, cast_at)
VALUES ($1, $2, $3, $4, $5)`

const updateDirectionSQL = `
UPDATE votes
SET direction = $4, cast_at = $5
WHERE voter_id = $1 AND target_type = $2 AND target_id = $3 AND direction <> $4`

const deleteVoteSQL = `
DELETE FROM votes
WHERE voter_id = $1 AND target_type = $2 AND target_id = $3 AND direction = $4`

// Get returns the voter's current record on the target.
// Returns domain.ErrNotFound if the voter has no vote there.
func (r *Repo) Get(ctx context.Context, voterID uuid.UUID, ref domain.TargetRef) (*domain.VoteRecord, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rec := domain.VoteRecord{VoterID: voterID, Target: ref}
	var direction string
	err := q.QueryRow(ctx, getVoteSQL, voterID, string(ref.Type), ref.ID).Scan(&direction, &rec.CastAt)
	if err != nil {
		return nil, postgres.MapError(err, "vote", ref.ID)
	}
	rec.Direction = domain.VoteDirection(direction)
	return &rec, nil
}

// Apply performs the record change selected by w.Outcome. A change that
// finds the record in an unexpected state returns domain.ErrVersionConflict;
// the surrounding transaction is expected to roll back.
func (r *Repo) Apply(ctx context.Context, w domain.VoteWrite) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)
	args := []any{w.VoterID, string(w.Target.Type), w.Target.ID, string(w.Direction)}

	switch w.Outcome {
	case domain.VoteOutcomeCast:
		_, err := q.Exec(ctx, insertVoteSQL, append(args, w.At)...)
		if err != nil {
			mapped := postgres.MapError(err, "vote", w.Target.ID)
			if domain.KindOf(mapped) == domain.KindConflict {
				// Someone else's insert for the same voter won.
				return fmt.Errorf("vote %s: %w", w.Target.ID, domain.ErrVersionConflict)
			}
			return mapped
		}
		return nil

	case domain.VoteOutcomeChanged:
		tag, err := q.Exec(ctx, updateDirectionSQL, append(args, w.At)...)
		if err != nil {
			return postgres.MapError(err, "vote", w.Target.ID)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("vote %s: %w", w.Target.ID, domain.ErrVersionConflict)
		}
		return nil

	case domain.VoteOutcomeRetracted:
		tag, err := q.Exec(ctx, deleteVoteSQL, args...)
		if err != nil {
			return postgres.MapError(err, "vote", w.Target.ID)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("vote %s: %w", w.Target.ID, domain.ErrVersionConflict)
		}
		return nil

	default:
		return domain.NewValidationError("outcome", fmt.Sprintf("unknown vote outcome %q", w.Outcome))
	}
}
