package usecase

import "time"

const (
	// DefaultTransactionTimeout is the maximum duration for a database transaction
	// This prevents long-running transactions from blocking tables
	DefaultTransactionTimeout = 10 * time.Second

	// IdempotencyKeyTTL is how long idempotency keys are cached
	IdempotencyKeyTTL = 24 * time.Hour

	// DefaultOTPTTL is how long a verification code stays valid.
	DefaultOTPTTL = 10 * time.Minute

	// DefaultFeeRate is the platform share of a delivered order.
	DefaultFeeRate = "0.05"

	otpKeyPrefix = "otp:"
	systemActor  = "system"
)
