// Package retry runs compare-and-swap operations under the engine's retry
// policy: version conflicts and transient store errors are retried with
// exponential backoff, everything else fails immediately.
package retry

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/heartmarshall/askdev-backend/internal/domain"
	"github.com/heartmarshall/askdev-backend/internal/metrics"
)

// Policy configures the backoff between attempts.
type Policy struct {
	MaxRetries      uint64
	InitialInterval time.Duration
	MaxInterval     time.Duration
	Multiplier      float64
}

// DefaultPolicy retries three times after the first attempt.
func DefaultPolicy() Policy {
	return Policy{
		MaxRetries:      3,
		InitialInterval: 20 * time.Millisecond,
		MaxInterval:     400 * time.Millisecond,
		Multiplier:      2,
	}
}

// Immediate is a policy with no sleeping between attempts. Used in tests.
func Immediate(maxRetries uint64) Policy {
	return Policy{MaxRetries: maxRetries, InitialInterval: time.Nanosecond, MaxInterval: time.Nanosecond, Multiplier: 1}
}

func (p Policy) backOff(ctx context.Context) backoff.BackOffContext {
	exp := backoff.NewExponentialBackOff(
		backoff.WithInitialInterval(p.InitialInterval),
		backoff.WithMaxInterval(p.MaxInterval),
		backoff.WithMultiplier(p.Multiplier),
		backoff.WithMaxElapsedTime(0),
	)
	return backoff.WithContext(backoff.WithMaxRetries(exp, p.MaxRetries), ctx)
}

// Retryable reports whether err is worth another attempt against fresh state.
func Retryable(err error) bool {
	return errors.Is(err, domain.ErrVersionConflict) || errors.Is(err, domain.ErrTransient)
}

// Run executes fn until it succeeds, fails permanently, or the budget is
// spent. fn must re-read any state it depends on: each attempt starts fresh.
//
// On exhaustion a version conflict becomes *domain.ConflictError and a
// transient failure becomes *domain.TransientStoreError. Context errors are
// returned as-is.
func Run(ctx context.Context, p Policy, op string, fn func(ctx context.Context) error) error {
	attempts := 0

	err := backoff.Retry(func() error {
		if err := ctx.Err(); err != nil {
			return backoff.Permanent(err)
		}
		attempts++

		err := fn(ctx)
		metrics.CASAttempts.WithLabelValues(op, resultLabel(err)).Inc()
		if err == nil {
			return nil
		}
		if !Retryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}, p.backOff(ctx))
	if err == nil {
		return nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil && !Retryable(err) {
		return err
	}

	switch {
	case errors.Is(err, domain.ErrVersionConflict):
		metrics.CASExhausted.WithLabelValues(op, string(domain.KindConflict)).Inc()
		return &domain.ConflictError{Op: op, Attempts: attempts}
	case errors.Is(err, domain.ErrTransient):
		metrics.CASExhausted.WithLabelValues(op, string(domain.KindTransient)).Inc()
		return &domain.TransientStoreError{Op: op, Attempts: attempts, Err: err}
	default:
		return err
	}
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrVersionConflict):
		return "conflict"
	case errors.Is(err, domain.ErrTransient):
		return "transient"
	default:
		return "error"
	}
}
