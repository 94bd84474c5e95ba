package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/askdev-backend/internal/adapter/memory"
	"github.com/heartmarshall/askdev-backend/internal/adapter/postgres"
	"github.com/heartmarshall/askdev-backend/internal/adapter/postgres/store"
	"github.com/heartmarshall/askdev-backend/internal/config"
	"github.com/heartmarshall/askdev-backend/internal/gateway"
	"github.com/heartmarshall/askdev-backend/internal/retry"
	"github.com/heartmarshall/askdev-backend/internal/service/acceptance"
	"github.com/heartmarshall/askdev-backend/internal/service/content"
	"github.com/heartmarshall/askdev-backend/internal/service/notification"
	"github.com/heartmarshall/askdev-backend/internal/service/outbox"
	"github.com/heartmarshall/askdev-backend/internal/service/reputation"
	"github.com/heartmarshall/askdev-backend/internal/service/vote"
	"github.com/heartmarshall/askdev-backend/migrations"
)

// OpenGateway returns the data gateway selected by cfg.Storage.Driver. The
// postgres gateway is migrated first when MigrateOnStart is set.
func OpenGateway(ctx context.Context, cfg *config.Config, logger *slog.Logger) (gateway.Gateway, error) {
	switch cfg.Storage.Driver {
	case config.DriverMemory:
		logger.Warn("using in-memory storage, state is lost on restart")
		return memory.New(), nil

	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		if cfg.Storage.MigrateOnStart {
			if err := postgres.Migrate(ctx, pool, migrations.FS, logger); err != nil {
				pool.Close()
				return nil, fmt.Errorf("migrate: %w", err)
			}
		}
		return store.New(pool), nil

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

// Components is the wired service graph over one gateway.
type Components struct {
	Gateway       gateway.Gateway
	Votes         *vote.Service
	Acceptance    *acceptance.Service
	Reputation    *reputation.Service
	Notifications *notification.Service
	Content       *content.Service
	Publisher     *outbox.Publisher
	Relay         *outbox.Relay
}

// NewComponents builds every service over gw. Reputation and notifications
// subscribe to the outbox; the write services publish through it.
func NewComponents(cfg *config.Config, gw gateway.Gateway, logger *slog.Logger) *Components {
	policy := retry.Policy{
		MaxRetries:      cfg.Retry.MaxRetries,
		InitialInterval: cfg.Retry.InitialInterval,
		MaxInterval:     cfg.Retry.MaxInterval,
		Multiplier:      cfg.Retry.Multiplier,
	}

	weights := reputation.Weights{
		UpvoteReceived:   cfg.Reputation.UpvoteReceived,
		DownvoteReceived: cfg.Reputation.DownvoteReceived,
		AnswerAccepted:   cfg.Reputation.AnswerAccepted,
		DownvoteCast:     cfg.Reputation.DownvoteCast,
	}

	reputationService := reputation.NewService(logger, gw, gw, weights, cfg.Reputation.Floor)
	notificationService := notification.NewService(logger, gw)

	publisher := outbox.NewPublisher(logger, gw, reputationService, notificationService)
	relay := outbox.NewRelay(logger, publisher, cfg.Outbox.BatchSize, cfg.Outbox.Interval)

	return &Components{
		Gateway:       gw,
		Votes:         vote.NewService(logger, gw, publisher, policy),
		Acceptance:    acceptance.NewService(logger, gw, publisher, policy),
		Reputation:    reputationService,
		Notifications: notificationService,
		Content:       content.NewService(logger, gw, publisher),
		Publisher:     publisher,
		Relay:         relay,
	}
}
