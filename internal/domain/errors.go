package domain

import "errors"

// Kind classifies a domain error. Every error returned by the domain and
// use case layers wraps exactly one Kind, so callers can branch with
// errors.Is(err, domain.NotFound).
type Kind string

func (k Kind) Error() string { return string(k) }

const (
	ValidationError     Kind = "validation_error"
	NotFound            Kind = "not_found"
	InvalidState        Kind = "invalid_state"
	InsufficientBalance Kind = "insufficient_balance"
	Unauthorized        Kind = "unauthorized"
	Conflict            Kind = "conflict"
	Internal            Kind = "internal"
)

// Error is a domain error carrying its kind and a user-facing message.
type Error struct {
	kind Kind
	msg  string
}

// NewError creates a domain error of the given kind.
func NewError(kind Kind, msg string) *Error {
	return &Error{kind: kind, msg: msg}
}

func (e *Error) Error() string { return e.msg }

// Unwrap exposes the kind to errors.Is.
func (e *Error) Unwrap() error { return e.kind }

// Kind returns the error kind.
func (e *Error) Kind() Kind { return e.kind }

// KindOf returns the kind of err, or Internal when err is not a domain error.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}

	var k Kind
	if errors.As(err, &k) {
		return k
	}

	return Internal
}

var (
	// Account errors
	ErrAccountNotFound     = NewError(NotFound, "account not found")
	ErrInsufficientBalance = NewError(InsufficientBalance, "insufficient balance")
	ErrEmailTaken          = NewError(Conflict, "email is already registered")
	ErrAccountNotVerified  = NewError(Unauthorized, "account is not verified")
	ErrAlreadyVerified     = NewError(InvalidState, "account is already verified")

	// Ledger errors
	ErrEntryNotFound          = NewError(NotFound, "ledger entry not found")
	ErrSelfTransfer           = NewError(ValidationError, "cannot transfer to the same account")
	ErrIdempotencyKeyRequired = NewError(ValidationError, "idempotency key is required")
	ErrDuplicateIdempotency   = NewError(Conflict, "idempotency key already used")
	ErrIdempotencyInFlight    = NewError(Conflict, "request with this idempotency key is in progress")
	ErrIdempotencyKeyMismatch = NewError(Conflict, "idempotency key was used for a different request")

	// Love request errors
	ErrLoveRequestNotFound   = NewError(NotFound, "love request not found")
	ErrLoveRequestNotPending = NewError(InvalidState, "love request is not pending")
	ErrNotRequestTarget      = NewError(Unauthorized, "only the requested user can decide this request")
	ErrNotRequestParticipant = NewError(Unauthorized, "not a participant of this love request")

	// Product errors
	ErrProductNotFound = NewError(NotFound, "product not found")
	ErrOwnProduct      = NewError(ValidationError, "cannot order your own product")

	// Order errors
	ErrOrderNotFound          = NewError(NotFound, "order not found")
	ErrOrderAlreadyProcessed  = NewError(InvalidState, "order already processed")
	ErrInvalidOrderTransition = NewError(InvalidState, "order transition not allowed")
	ErrUnknownOrderAction     = NewError(ValidationError, "unknown order action")
	ErrNotOrderParticipant    = NewError(Unauthorized, "not allowed to act on this order")
	ErrTotalMismatch          = NewError(ValidationError, "total amount does not match product price")

	// Notification errors
	ErrNotificationNotFound = NewError(NotFound, "notification not found")
)

// Authentication errors
var (
	ErrUnauthenticated    = NewError(Unauthorized, "authentication required")
	ErrInvalidCredentials = NewError(Unauthorized, "invalid credentials")
	ErrInvalidToken       = NewError(Unauthorized, "invalid token")
	ErrExpiredToken       = NewError(Unauthorized, "token has expired")
	ErrInsufficientRole   = NewError(Unauthorized, "insufficient role for this operation")
	ErrInvalidOTP         = NewError(ValidationError, "invalid or expired verification code")
)
