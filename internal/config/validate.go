package config

import (
	"fmt"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	switch c.Storage.Driver {
	case DriverPostgres:
		if c.Database.DSN == "" {
			return fmt.Errorf("database.dsn is required for storage driver %q", DriverPostgres)
		}
	case DriverMemory:
	default:
		return fmt.Errorf("storage.driver must be %q or %q (got %q)", DriverPostgres, DriverMemory, c.Storage.Driver)
	}

	if err := c.Reputation.validate(); err != nil {
		return fmt.Errorf("reputation: %w", err)
	}
	if err := c.Retry.validate(); err != nil {
		return fmt.Errorf("retry: %w", err)
	}

	if c.Outbox.BatchSize <= 0 {
		return fmt.Errorf("outbox.batch_size must be > 0 (got %d)", c.Outbox.BatchSize)
	}
	if c.Outbox.Interval <= 0 {
		return fmt.Errorf("outbox.interval must be > 0 (got %s)", c.Outbox.Interval)
	}
	if c.RateLimit.VotesPerMinute < 0 || c.RateLimit.Burst < 0 {
		return fmt.Errorf("rate_limit values must be >= 0")
	}

	return nil
}

func (r ReputationConfig) validate() error {
	if r.UpvoteReceived < 0 {
		return fmt.Errorf("upvote_received must be >= 0 (got %d)", r.UpvoteReceived)
	}
	if r.DownvoteReceived > 0 {
		return fmt.Errorf("downvote_received must be <= 0 (got %d)", r.DownvoteReceived)
	}
	if r.AnswerAccepted < 0 {
		return fmt.Errorf("answer_accepted must be >= 0 (got %d)", r.AnswerAccepted)
	}
	if r.DownvoteCast > 0 {
		return fmt.Errorf("downvote_cast must be <= 0 (got %d)", r.DownvoteCast)
	}
	return nil
}

func (r RetryConfig) validate() error {
	if r.InitialInterval <= 0 || r.MaxInterval < r.InitialInterval {
		return fmt.Errorf("intervals must satisfy 0 < initial_interval <= max_interval")
	}
	if r.Multiplier < 1 {
		return fmt.Errorf("multiplier must be >= 1 (got %v)", r.Multiplier)
	}
	return nil
}
