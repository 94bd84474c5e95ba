package postgres_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/askdev-backend/internal/adapter/postgres"
	"github.com/heartmarshall/askdev-backend/internal/adapter/postgres/testhelper"
)

// questionExists checks whether a question row with the given ID exists in the database.
func questionExists(t *testing.T, pool *pgxpool.Pool, questionID uuid.UUID) bool {
	t.Helper()
	var exists bool
	err := pool.QueryRow(
		context.Background(),
		`SELECT EXISTS(SELECT 1 FROM questions WHERE id = $1)`,
		questionID,
	).Scan(&exists)
	if err != nil {
		t.Fatalf("questionExists query: %v", err)
	}
	return exists
}

func TestRunInTx_Commit(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)

	questionID := uuid.New()

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		q := postgres.QuerierFromCtx(ctx, pool)
		_, err := q.Exec(ctx,
			`INSERT INTO questions (id, author_id) VALUES ($1, $2)`,
			questionID, uuid.New(),
		)
		return err
	})
	if err != nil {
		t.Fatalf("RunInTx returned error: %v", err)
	}

	if !questionExists(t, pool, questionID) {
		t.Fatal("expected question to exist after committed transaction")
	}
}

func TestRunInTx_RollbackOnError(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)

	questionID := uuid.New()
	sentinel := errors.New("business logic error")

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		q := postgres.QuerierFromCtx(ctx, pool)
		_, execErr := q.Exec(ctx,
			`INSERT INTO questions (id, author_id) VALUES ($1, $2)`,
			questionID, uuid.New(),
		)
		if execErr != nil {
			t.Fatalf("insert inside tx failed: %v", execErr)
		}
		return sentinel
	})

	if !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel error, got: %v", err)
	}

	if questionExists(t, pool, questionID) {
		t.Fatal("expected question NOT to exist after rolled-back transaction")
	}
}

func TestRunInTx_RollbackOnPanic(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)

	questionID := uuid.New()

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic to be re-raised")
		}
		if r != "test panic" {
			t.Fatalf("expected panic value %q, got %v", "test panic", r)
		}

		// Verify data was rolled back.
		if questionExists(t, pool, questionID) {
			t.Fatal("expected question NOT to exist after panic-rolled-back transaction")
		}
	}()

	_ = tm.RunInTx(context.Background(), func(ctx context.Context) error {
		q := postgres.QuerierFromCtx(ctx, pool)
		_, err := q.Exec(ctx,
			`INSERT INTO questions (id, author_id) VALUES ($1, $2)`,
			questionID, uuid.New(),
		)
		if err != nil {
			t.Fatalf("insert inside tx failed: %v", err)
		}
		panic("test panic")
	})
}

func TestRunInTx_QuerierFromCtx_UsesTx(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)

	questionID := uuid.New()

	// Insert inside a transaction, then verify it's visible within the same tx
	// but NOT outside until commit.
	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		q := postgres.QuerierFromCtx(ctx, pool)
		_, err := q.Exec(ctx,
			`INSERT INTO questions (id, author_id) VALUES ($1, $2)`,
			questionID, uuid.New(),
		)
		if err != nil {
			return err
		}

		// Should be visible within the transaction.
		var exists bool
		err = q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM questions WHERE id = $1)`, questionID).Scan(&exists)
		if err != nil {
			return err
		}
		if !exists {
			t.Fatal("expected question to be visible within the transaction")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("RunInTx returned error: %v", err)
	}

	// After commit, also visible outside.
	if !questionExists(t, pool, questionID) {
		t.Fatal("expected question to exist after committed transaction")
	}
}

func TestRunInTx_NestedJoinsOuter(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)

	outerID, innerID := uuid.New(), uuid.New()
	sentinel := errors.New("outer fails after inner succeeded")

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		if _, err := postgres.QuerierFromCtx(ctx, pool).Exec(ctx,
			`INSERT INTO questions (id, author_id) VALUES ($1, $2)`, outerID, uuid.New(),
		); err != nil {
			t.Fatalf("outer insert: %v", err)
		}

		innerErr := tm.RunInTx(ctx, func(ctx context.Context) error {
			_, err := postgres.QuerierFromCtx(ctx, pool).Exec(ctx,
				`INSERT INTO questions (id, author_id) VALUES ($1, $2)`, innerID, uuid.New(),
			)
			return err
		})
		if innerErr != nil {
			t.Fatalf("inner RunInTx: %v", innerErr)
		}
		return sentinel
	})

	if !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel error, got: %v", err)
	}
	if questionExists(t, pool, outerID) || questionExists(t, pool, innerID) {
		t.Fatal("expected both inserts to roll back with the outer transaction")
	}
}
