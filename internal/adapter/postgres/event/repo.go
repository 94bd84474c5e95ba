// Package event implements the transactional outbox using PostgreSQL.
package event

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/askdev-backend/internal/adapter/postgres"
	"github.com/heartmarshall/askdev-backend/internal/domain"
)

// Repo provides event log persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new event repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const appendEventSQL = `
INSERT INTO events (id, kind, actor_id, payload, occurred_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (id) DO NOTHING`

const eventExistsSQL = `
SELECT EXISTS (SELECT 1 FROM events WHERE id = $1)`

const listPendingSQL = `
SELECT seq, id, kind, actor_id, payload, occurred_at
FROM events
WHERE dispatched_at IS NULL AND seq > $1
ORDER BY seq
LIMIT $2`

const listAfterSQL = `
SELECT seq, id, kind, actor_id, payload, occurred_at
FROM events
WHERE seq > $1
ORDER BY seq
LIMIT $2`

const markDispatchedSQL = `
UPDATE events
SET dispatched_at = $2
WHERE id = ANY($1) AND dispatched_at IS NULL`

// Append stores ev unless an event with the same id exists.
func (r *Repo) Append(ctx context.Context, ev domain.Event) error {
	payload, err := domain.MarshalEventPayload(ev.Payload)
	if err != nil {
		return fmt.Errorf("event %s: %w", ev.ID, err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	_, err = q.Exec(ctx, appendEventSQL, ev.ID, string(ev.Kind), ev.ActorID, payload, ev.OccurredAt)
	if err != nil {
		return postgres.MapError(err, "event", ev.ID)
	}
	return nil
}

// Exists reports whether an event with id is in the log.
func (r *Repo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	if err := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, eventExistsSQL, id).Scan(&exists); err != nil {
		return false, postgres.MapError(err, "event", id)
	}
	return exists, nil
}

// ListPending returns undispatched events after afterSeq in append order.
func (r *Repo) ListPending(ctx context.Context, afterSeq int64, limit int) ([]domain.Event, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, listPendingSQL, afterSeq, limit)
	if err != nil {
		return nil, postgres.MapError(err, "event", uuid.Nil)
	}
	return collect(rows)
}

// List pages through the log by sequence number.
func (r *Repo) List(ctx context.Context, afterSeq int64, limit int) ([]domain.Event, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, listAfterSQL, afterSeq, limit)
	if err != nil {
		return nil, postgres.MapError(err, "event", uuid.Nil)
	}
	return collect(rows)
}

// MarkDispatched stamps the given events as delivered. Unknown or already
// dispatched ids are ignored.
func (r *Repo) MarkDispatched(ctx context.Context, ids []uuid.UUID, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	if _, err := q.Exec(ctx, markDispatchedSQL, ids, at); err != nil {
		return postgres.MapError(err, "event", ids[0])
	}
	return nil
}

func collect(rows pgx.Rows) ([]domain.Event, error) {
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		var (
			ev      domain.Event
			kind    string
			payload []byte
		)
		if err := rows.Scan(&ev.Seq, &ev.ID, &kind, &ev.ActorID, &payload, &ev.OccurredAt); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}

		ev.Kind = domain.EventKind(kind)
		p, err := domain.UnmarshalEventPayload(ev.Kind, payload)
		if err != nil {
			return nil, fmt.Errorf("event %s: %w", ev.ID, err)
		}
		ev.Payload = p
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "event", uuid.Nil)
	}
	return events, nil
}
