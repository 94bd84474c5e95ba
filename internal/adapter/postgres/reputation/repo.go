// Package reputation implements the reputation ledger using PostgreSQL.
package reputation

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/askdev-backend/internal/adapter/postgres"
)

// Repo provides reputation persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new reputation repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const insertLedgerSQL = `
INSERT INTO reputation_ledger (event_id, user_id, delta)
VALUES ($1, $2, $3)
ON CONFLICT (event_id, user_id) DO NOTHING`

const upsertReputationSQL = `
INSERT INTO user_reputation (user_id, reputation, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (user_id) DO UPDATE
SET reputation = user_reputation.reputation + EXCLUDED.reputation, updated_at = now()`

const getReputationSQL = `
SELECT COALESCE((SELECT reputation FROM user_reputation WHERE user_id = $1), 0)`

const listReputationsSQL = `
SELECT user_id, reputation FROM user_reputation`

// Apply records (eventID, userID) in the ledger and adds delta to the user's
// total. Returns false when the pair was already recorded; the total is then
// untouched. Must run inside a transaction.
func (r *Repo) Apply(ctx context.Context, eventID, userID uuid.UUID, delta int64) (bool, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, insertLedgerSQL, eventID, userID, delta)
	if err != nil {
		return false, postgres.MapError(err, "reputation ledger", eventID)
	}
	if tag.RowsAffected() == 0 {
		return false, nil
	}

	if _, err := q.Exec(ctx, upsertReputationSQL, userID, delta); err != nil {
		return false, postgres.MapError(err, "user reputation", userID)
	}
	return true, nil
}

// Get returns the stored raw reputation, 0 for unknown users.
func (r *Repo) Get(ctx context.Context, userID uuid.UUID) (int64, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var rep int64
	if err := q.QueryRow(ctx, getReputationSQL, userID).Scan(&rep); err != nil {
		return 0, postgres.MapError(err, "user reputation", userID)
	}
	return rep, nil
}

// List returns every stored raw reputation.
func (r *Repo) List(ctx context.Context) (map[uuid.UUID]int64, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, listReputationsSQL)
	if err != nil {
		return nil, postgres.MapError(err, "user reputation", uuid.Nil)
	}
	defer rows.Close()

	out := make(map[uuid.UUID]int64)
	for rows.Next() {
		var (
			userID uuid.UUID
			rep    int64
		)
		if err := rows.Scan(&userID, &rep); err != nil {
			return nil, fmt.Errorf("scan reputation: %w", err)
		}
		out[userID] = rep
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "user reputation", uuid.Nil)
	}
	return out, nil
}
