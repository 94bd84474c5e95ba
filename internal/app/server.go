package app

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/heartmarshall/askdev-backend/internal/auth"
	"github.com/heartmarshall/askdev-backend/internal/config"
	"github.com/heartmarshall/askdev-backend/internal/transport/middleware"
	"github.com/heartmarshall/askdev-backend/internal/transport/rest"
)

const limiterCleanupInterval = 5 * time.Minute

// NewHandler assembles the HTTP surface: probes, /metrics and the /v1 API
// behind the middleware chain. The returned stop func releases the rate
// limiter's background sweeper.
func NewHandler(cfg *config.Config, c *Components, tokens *auth.JWTManager, logger *slog.Logger) (http.Handler, func()) {
	handlers := rest.Handlers{
		Health:        rest.NewHealthHandler(c.Gateway, cfg.Storage.Driver, BuildVersion()),
		Votes:         rest.NewVoteHandler(c.Votes, logger),
		Acceptance:    rest.NewAcceptanceHandler(c.Acceptance, logger),
		Reputation:    rest.NewReputationHandler(c.Reputation, logger),
		Notifications: rest.NewNotificationHandler(c.Notifications, logger),
		Content:       rest.NewContentHandler(c.Content, logger),
	}

	limiter := middleware.NewRateLimiter(limiterCleanupInterval)

	api := http.NewServeMux()
	handlers.Register(api, limiter.Limit(cfg.RateLimit.VotesPerMinute, cfg.RateLimit.Burst))

	chained := middleware.Chain(
		middleware.RequestID(),
		middleware.Recovery(logger),
		middleware.CORS(cfg.CORS),
		middleware.Auth(tokens),
		middleware.Logger(logger),
	)(api)

	root := http.NewServeMux()
	root.Handle("GET /metrics", promhttp.Handler())
	root.Handle("/", chained)

	return root, limiter.Stop
}
