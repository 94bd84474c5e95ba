//go:build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/askdev-backend/internal/adapter/postgres/store"
	"github.com/heartmarshall/askdev-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/askdev-backend/internal/app"
	"github.com/heartmarshall/askdev-backend/internal/auth"
	"github.com/heartmarshall/askdev-backend/internal/config"
)

// ---------------------------------------------------------------------------
// testServer wraps the full-stack HTTP server for E2E tests.
// ---------------------------------------------------------------------------

type testServer struct {
	URL        string
	Client     *http.Client
	Pool       *pgxpool.Pool
	Components *app.Components
	jwt        *auth.JWTManager
}

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// setupTestServer bootstraps the application over a real PostgreSQL
// container (shared via testhelper).
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	pool := testhelper.SetupTestDB(t)
	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, &slog.HandlerOptions{Level: slog.LevelWarn}))

	cfg := &config.Config{
		Storage: config.StorageConfig{Driver: config.DriverPostgres},
		Auth:    config.AuthConfig{JWTSecret: "test-secret-at-least-32-chars-long!!", JWTIssuer: "test-issuer"},
		Reputation: config.ReputationConfig{
			UpvoteReceived:   10,
			DownvoteReceived: -2,
			AnswerAccepted:   15,
		},
		Retry: config.RetryConfig{
			MaxRetries:      20,
			InitialInterval: time.Millisecond,
			MaxInterval:     20 * time.Millisecond,
			Multiplier:      1.5,
		},
		Outbox: config.OutboxConfig{Interval: time.Second, BatchSize: 50},
		CORS: config.CORSConfig{
			AllowedOrigins: "*",
			AllowedMethods: "GET,POST,DELETE,OPTIONS",
			AllowedHeaders: "Authorization,Content-Type",
		},
	}

	// The pool is shared across tests; the store is not closed here.
	c := app.NewComponents(cfg, store.New(pool), logger)
	jwtMgr := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer)

	handler, stop := app.NewHandler(cfg, c, jwtMgr, logger)
	srv := httptest.NewServer(handler)
	t.Cleanup(func() {
		srv.Close()
		stop()
	})

	return &testServer{
		URL:        srv.URL,
		Client:     srv.Client(),
		Pool:       pool,
		Components: c,
		jwt:        jwtMgr,
	}
}

// newUser returns a fresh user id and a valid access token for it.
func (ts *testServer) newUser(t *testing.T) (uuid.UUID, string) {
	t.Helper()

	id := uuid.New()
	tok, err := ts.jwt.GenerateAccessToken(id, 15*time.Minute)
	require.NoError(t, err)
	return id, tok
}

// request sends a JSON request and returns status + decoded object body.
func (ts *testServer) request(t *testing.T, method, path, token string, body any) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, ts.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var out map[string]any
	if trimmed := bytes.TrimSpace(raw); len(trimmed) > 0 && trimmed[0] == '{' {
		require.NoError(t, json.Unmarshal(trimmed, &out))
	}
	return resp.StatusCode, out
}

// createQuestion registers a question authored by the token's user.
func (ts *testServer) createQuestion(t *testing.T, token string) string {
	t.Helper()
	status, body := ts.request(t, http.MethodPost, "/v1/questions", token, nil)
	require.Equal(t, http.StatusCreated, status, "create question: %v", body)
	return body["id"].(string)
}

// createAnswer posts an answer to questionID authored by the token's user.
func (ts *testServer) createAnswer(t *testing.T, token, questionID string) string {
	t.Helper()
	status, body := ts.request(t, http.MethodPost, "/v1/questions/"+questionID+"/answers", token, nil)
	require.Equal(t, http.StatusCreated, status, "create answer: %v", body)
	return body["id"].(string)
}
