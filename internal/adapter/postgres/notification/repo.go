// Package notification implements the notification store using PostgreSQL.
package notification

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/askdev-backend/internal/adapter/postgres"
	"github.com/heartmarshall/askdev-backend/internal/domain"
)

const table = "notifications"

var columns = []string{"id", "recipient_id", "source_event_id", "kind", "payload", "is_read", "created_at"}

// Filter selects a page of one recipient's notifications.
type Filter struct {
	RecipientID uuid.UUID
	UnreadOnly  bool
	Kinds       []domain.NotificationKind
	Limit       int
	Offset      int
}

// Repo provides notification persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new notification repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Insert stores n unless (source_event_id, recipient_id) already exists.
// Returns false on a dedup hit.
func (r *Repo) Insert(ctx context.Context, n domain.Notification) (bool, error) {
	payload, err := domain.MarshalNotificationPayload(n.Payload)
	if err != nil {
		return false, fmt.Errorf("notification %s: %w", n.ID, err)
	}

	query := postgres.Builder().
		Insert(table).
		Columns(columns...).
		Values(n.ID, n.RecipientID, n.SourceEventID, string(n.Kind), payload, n.Read, n.CreatedAt).
		Suffix("ON CONFLICT (source_event_id, recipient_id) DO NOTHING")

	sql, args, err := query.ToSql()
	if err != nil {
		return false, fmt.Errorf("build insert notification: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, sql, args...)
	if err != nil {
		return false, postgres.MapError(err, "notification", n.ID)
	}
	return tag.RowsAffected() == 1, nil
}

// List returns one page of notifications, newest first, and the number of
// notifications matching the filter across all pages.
func (r *Repo) List(ctx context.Context, f Filter) ([]domain.Notification, int, error) {
	where := filterWhere(f)
	q := postgres.QuerierFromCtx(ctx, r.pool)

	countSQL, countArgs, err := postgres.Builder().
		Select("count(*)").From(table).Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count notifications: %w", err)
	}

	var total int
	if err := q.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, postgres.MapError(err, "notifications of", f.RecipientID)
	}

	listSQL, listArgs, err := postgres.Builder().
		Select(columns...).From(table).Where(where).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(f.Limit)).Offset(uint64(f.Offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list notifications: %w", err)
	}

	rows, err := q.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, postgres.MapError(err, "notifications of", f.RecipientID)
	}
	defer rows.Close()

	var out []domain.Notification
	for rows.Next() {
		var (
			n       domain.Notification
			kind    string
			payload []byte
		)
		if err := rows.Scan(&n.ID, &n.RecipientID, &n.SourceEventID, &kind, &payload, &n.Read, &n.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan notification: %w", err)
		}
		n.Kind = domain.NotificationKind(kind)
		if n.Payload, err = domain.UnmarshalNotificationPayload(n.Kind, payload); err != nil {
			return nil, 0, fmt.Errorf("notification %s: %w", n.ID, err)
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, postgres.MapError(err, "notifications of", f.RecipientID)
	}
	return out, total, nil
}

// CountUnread returns how many unread notifications the user has.
func (r *Repo) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	sql, args, err := postgres.Builder().
		Select("count(*)").From(table).
		Where(squirrel.Eq{"recipient_id": userID, "is_read": false}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count unread: %w", err)
	}

	var n int
	if err := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		return 0, postgres.MapError(err, "notifications of", userID)
	}
	return n, nil
}

// MarkRead marks one of the user's notifications read. Marking an already
// read notification succeeds. Returns domain.ErrNotFound when the
// notification does not exist or belongs to someone else.
func (r *Repo) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	sql, args, err := postgres.Builder().
		Update(table).
		Set("is_read", true).
		Where(squirrel.Eq{"id": notificationID, "recipient_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build mark read: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "notification", notificationID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("notification %s: %w", notificationID, domain.ErrNotFound)
	}
	return nil
}

// MarkAllRead marks every unread notification of the user read and returns
// how many changed.
func (r *Repo) MarkAllRead(ctx context.Context, userID uuid.UUID) (int, error) {
	sql, args, err := postgres.Builder().
		Update(table).
		Set("is_read", true).
		Where(squirrel.Eq{"recipient_id": userID, "is_read": false}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build mark all read: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, sql, args...)
	if err != nil {
		return 0, postgres.MapError(err, "notifications of", userID)
	}
	return int(tag.RowsAffected()), nil
}

func filterWhere(f Filter) squirrel.And {
	where := squirrel.And{squirrel.Eq{"recipient_id": f.RecipientID}}
	if f.UnreadOnly {
		where = append(where, squirrel.Eq{"is_read": false})
	}
	if len(f.Kinds) > 0 {
		kinds := make([]string, len(f.Kinds))
		for i, k := range f.Kinds {
			kinds[i] = string(k)
		}
		where = append(where, squirrel.Eq{"kind": kinds})
	}
	return where
}
