package rest

import (
	"net/http"

	"github.com/heartmarshall/askdev-backend/internal/transport/middleware"
)

// Handlers groups every HTTP handler of the API.
type Handlers struct {
	Health        *HealthHandler
	Votes         *VoteHandler
	Acceptance    *AcceptanceHandler
	Reputation    *ReputationHandler
	Notifications *NotificationHandler
	Content       *ContentHandler
}

// Register mounts the probes and the /v1 API on mux. voteLimit wraps the
// vote endpoint only; pass nil to leave it unthrottled.
func (h Handlers) Register(mux *http.ServeMux, voteLimit middleware.Middleware) {
	mux.HandleFunc("GET /live", h.Health.Live)
	mux.HandleFunc("GET /ready", h.Health.Ready)
	mux.HandleFunc("GET /health", h.Health.Health)

	mux.Handle("POST /v1/votes", middleware.Chain(voteLimit)(http.HandlerFunc(h.Votes.Cast)))

	mux.HandleFunc("POST /v1/questions", h.Content.RegisterQuestion)
	mux.HandleFunc("POST /v1/questions/{id}/answers", h.Content.PostAnswer)

	mux.HandleFunc("POST /v1/questions/{id}/accept", h.Acceptance.Accept)
	mux.HandleFunc("DELETE /v1/questions/{id}/accept", h.Acceptance.Unaccept)
	mux.HandleFunc("GET /v1/questions/{id}/acceptance", h.Acceptance.Status)

	mux.HandleFunc("GET /v1/users/{id}/reputation", h.Reputation.Get)

	mux.HandleFunc("GET /v1/notifications", h.Notifications.List)
	mux.HandleFunc("GET /v1/notifications/unread-count", h.Notifications.UnreadCount)
	mux.HandleFunc("POST /v1/notifications/read-all", h.Notifications.MarkAllRead)
	mux.HandleFunc("POST /v1/notifications/{id}/read", h.Notifications.MarkRead)
}
