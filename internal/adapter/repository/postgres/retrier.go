package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
)

// SQLSTATE codes of transactions aborted by lock contention.
const (
	pgErrDeadlock             = "40P01"
	pgErrSerializationFailure = "40001"
	pgErrLockNotAvailable     = "55P03"
)

// RetryPolicy bounds how often a conflicted transaction is run again.
type RetryPolicy struct {
	MaxRetries      uint64
	InitialInterval time.Duration
	MaxInterval     time.Duration
	MaxElapsedTime  time.Duration
}

// DefaultRetryPolicy fits short wallet transactions contending on account rows.
var DefaultRetryPolicy = RetryPolicy{
	MaxRetries:      3,
	InitialInterval: 50 * time.Millisecond,
	MaxInterval:     time.Second,
	MaxElapsedTime:  10 * time.Second,
}

// Retrier implements usecase.Retrier. Only lock conflicts are retried; domain
// errors and everything else are returned on the first attempt.
type Retrier struct {
	policy RetryPolicy
	logger zerolog.Logger
}

// NewRetrier creates a Retrier with DefaultRetryPolicy.
func NewRetrier(logger zerolog.Logger) *Retrier {
	return NewRetrierWithPolicy(logger, DefaultRetryPolicy)
}

// NewRetrierWithPolicy creates a Retrier with a custom policy.
func NewRetrierWithPolicy(logger zerolog.Logger, policy RetryPolicy) *Retrier {
	return &Retrier{
		policy: policy,
		logger: logger.With().Str("component", "retrier").Logger(),
	}
}

// Retry runs operation until it succeeds, fails permanently or the policy is
// exhausted. The last error is returned unwrapped.
func (r *Retrier) Retry(ctx context.Context, operation func() error) error {
	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = r.policy.InitialInterval
	eb.MaxInterval = r.policy.MaxInterval
	eb.MaxElapsedTime = r.policy.MaxElapsedTime

	b := backoff.WithContext(backoff.WithMaxRetries(eb, r.policy.MaxRetries), ctx)

	attempt := 0
	return backoff.RetryNotify(func() error {
		attempt++
		err := operation()
		if err != nil && sqlState(err) == "" {
			return backoff.Permanent(err)
		}
		return err
	}, b, func(err error, wait time.Duration) {
		r.logger.Warn().
			Err(err).
			Str("sqlstate", sqlState(err)).
			Int("attempt", attempt).
			Dur("backoff", wait).
			Msg("transaction conflict, retrying")
	})
}

// sqlState returns the SQLSTATE of a retryable error, or "" when err should
// not be retried.
func sqlState(err error) string {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return ""
	}
	switch pgErr.Code {
	case pgErrDeadlock, pgErrSerializationFailure, pgErrLockNotAvailable:
		return pgErr.Code
	}
	return ""
}
