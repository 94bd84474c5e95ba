//go:build e2e

package e2e_test

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/askdev-backend/internal/domain"
)

func TestE2E_Probes(t *testing.T) {
	ts := setupTestServer(t)

	for _, path := range []string{"/live", "/ready", "/health"} {
		status, body := ts.request(t, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusOK, status, path)
		assert.Equal(t, "ok", body["status"], path)
	}

	_, body := ts.request(t, http.MethodGet, "/health", "", nil)
	components, ok := body["components"].(map[string]any)
	require.True(t, ok, "expected components object")
	st, ok := components["store"].(map[string]any)
	require.True(t, ok, "expected store component")
	assert.Equal(t, "postgres", st["kind"])
}

// TestE2E_ConcurrentVotesOnOneTarget checks that concurrent voters never lose
// an update: the tally equals the number of voters.
func TestE2E_ConcurrentVotesOnOneTarget(t *testing.T) {
	ts := setupTestServer(t)

	_, authorTok := ts.newUser(t)
	questionID := ts.createQuestion(t, authorTok)

	const voters = 12
	tokens := make([]string, voters)
	for i := range tokens {
		_, tokens[i] = ts.newUser(t)
	}

	var wg sync.WaitGroup
	statuses := make([]int, voters)
	for i, tok := range tokens {
		wg.Add(1)
		go func() {
			defer wg.Done()
			statuses[i], _ = ts.request(t, http.MethodPost, "/v1/votes", tok, map[string]any{
				"targetType": "QUESTION", "targetId": questionID, "direction": "UP",
			})
		}()
	}
	wg.Wait()

	for i, s := range statuses {
		assert.Equal(t, http.StatusOK, s, "voter %d", i)
	}

	q, err := ts.Components.Gateway.GetQuestion(context.Background(), uuid.MustParse(questionID))
	require.NoError(t, err)
	assert.EqualValues(t, voters, q.VoteTally)

	var records int
	require.NoError(t, ts.Pool.QueryRow(context.Background(),
		`SELECT count(*) FROM votes WHERE target_id = $1`, uuid.MustParse(questionID)).Scan(&records))
	assert.Equal(t, voters, records)
}

// TestE2E_ConcurrentAccepts checks that racing acceptances of different
// answers leave exactly one accepted answer consistent with the question.
func TestE2E_ConcurrentAccepts(t *testing.T) {
	ts := setupTestServer(t)

	_, askerTok := ts.newUser(t)
	questionID := ts.createQuestion(t, askerTok)

	const answers = 6
	answerIDs := make([]string, answers)
	for i := range answerIDs {
		_, tok := ts.newUser(t)
		answerIDs[i] = ts.createAnswer(t, tok, questionID)
	}

	var wg sync.WaitGroup
	for _, id := range answerIDs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			status, body := ts.request(t, http.MethodPost, "/v1/questions/"+questionID+"/accept", askerTok,
				map[string]any{"answerId": id})
			if status != http.StatusOK {
				assert.Equal(t, http.StatusConflict, status, "unexpected response %v", body)
			}
		}()
	}
	wg.Wait()

	status, st := ts.request(t, http.MethodGet, "/v1/questions/"+questionID+"/acceptance", "", nil)
	require.Equal(t, http.StatusOK, status)
	accepted, ok := st["acceptedAnswerId"].(string)
	require.True(t, ok, "expected an accepted answer")

	var flagged []string
	rows, err := ts.Pool.Query(context.Background(),
		`SELECT id FROM answers WHERE question_id = $1 AND is_accepted`, uuid.MustParse(questionID))
	require.NoError(t, err)
	for rows.Next() {
		var id uuid.UUID
		require.NoError(t, rows.Scan(&id))
		flagged = append(flagged, id.String())
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, []string{accepted}, flagged)
}

// TestE2E_RelayRedeliversLostEvents checks that an event committed without a
// successful dispatch is picked up by the relay and applied once.
func TestE2E_RelayRedeliversLostEvents(t *testing.T) {
	ts := setupTestServer(t)
	ctx := context.Background()

	author := uuid.New()
	voter := uuid.New()
	target := domain.TargetRef{Type: domain.TargetTypeAnswer, ID: uuid.New()}

	// Appended straight to the log, as if the process died before publishing.
	ev := domain.NewEvent(voter, domain.VoteCast{
		Target:     target,
		AuthorID:   author,
		Direction:  domain.VoteUp,
		TallyDelta: 1,
	}, time.Now().UTC())
	require.NoError(t, ts.Components.Gateway.AppendEvent(ctx, ev))

	for range 2 {
		_, err := ts.Components.Relay.RunOnce(ctx)
		require.NoError(t, err)
	}

	st, err := ts.Components.Reputation.Standing(ctx, author)
	require.NoError(t, err)
	assert.EqualValues(t, 10, st.Reputation)

	n, err := ts.Components.Notifications.UnreadCount(ctx, author)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestE2E_NotificationInbox(t *testing.T) {
	ts := setupTestServer(t)

	_, askerTok := ts.newUser(t)
	questionID := ts.createQuestion(t, askerTok)

	for range 3 {
		_, tok := ts.newUser(t)
		ts.createAnswer(t, tok, questionID)
	}

	status, body := ts.request(t, http.MethodGet, "/v1/notifications?limit=2", askerTok, nil)
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 3, body["total"])
	assert.Len(t, body["items"], 2)

	status, body = ts.request(t, http.MethodGet, "/v1/notifications?limit=2&offset=2", askerTok, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["items"], 1)

	status, body = ts.request(t, http.MethodPost, "/v1/notifications/read-all", askerTok, nil)
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 3, body["marked"])

	status, body = ts.request(t, http.MethodGet, "/v1/notifications/unread-count", askerTok, nil)
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 0, body["unread"])
}
