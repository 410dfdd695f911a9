package domain

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Validation errors
var (
	ErrInvalidAmount         = NewError(ValidationError, "amount must be positive")
	ErrAmountTooLarge        = NewError(ValidationError, "amount exceeds maximum allowed")
	ErrAmountTooSmall        = NewError(ValidationError, "amount below minimum allowed")
	ErrAmountPrecision       = NewError(ValidationError, "amount has too many decimal places")
	ErrInvalidLoveAmount     = NewError(ValidationError, "invalid love amount")
	ErrPaymentMethodRequired = NewError(ValidationError, "payment method is required")
	ErrInvalidName           = NewError(ValidationError, "invalid name")
	ErrInvalidEmail          = NewError(ValidationError, "invalid email format")
	ErrPasswordTooWeak       = NewError(ValidationError, "password does not meet requirements")
	ErrInvalidQuantity       = NewError(ValidationError, "quantity must be positive")
	ErrInvalidShipping       = NewError(ValidationError, "incomplete shipping details")
	ErrInvalidIdempotencyKey = NewError(ValidationError, "invalid idempotency key")
	ErrInvalidRequest        = NewError(ValidationError, "invalid request")
)

// Validation constants
const (
	MaxNameLength           = 255
	MaxPaymentMethodLength  = 64
	MaxIdempotencyKeyLength = 255
	MaxAmount               = "1000000000000" // 1 trillion
	MinAmount               = "0.01"
	AmountDecimalPlaces     = 2
	MinPasswordLength       = 8
	MaxPasswordLength       = 128
	MaxOrderQuantity        = 1000
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	minAmount  = decimal.RequireFromString(MinAmount)
	maxAmount  = decimal.RequireFromString(MaxAmount)
)

// ValidateAmount validates a monetary amount. Amounts carry at most
// AmountDecimalPlaces digits after the point, trailing zeros aside.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	if amount.LessThan(minAmount) {
		return fmt.Errorf("%w: minimum amount is %s", ErrAmountTooSmall, MinAmount)
	}

	if amount.GreaterThan(maxAmount) {
		return fmt.Errorf("%w: maximum amount is %s", ErrAmountTooLarge, MaxAmount)
	}

	if !amount.Equal(amount.Truncate(AmountDecimalPlaces)) {
		return fmt.Errorf("%w: at most %d allowed, got %s", ErrAmountPrecision, AmountDecimalPlaces, amount)
	}

	return nil
}

// ValidateLoveAmount validates the Love credited for a peer payment of amount.
// A peer payment never credits more Love than it debits.
func ValidateLoveAmount(love, amount decimal.Decimal) error {
	if err := ValidateAmount(love); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidLoveAmount, err)
	}
	if love.GreaterThan(amount) {
		return fmt.Errorf("%w: total love %s exceeds amount %s", ErrInvalidLoveAmount, love, amount)
	}
	return nil
}

// ValidatePaymentMethod validates the free-text payment method.
func ValidatePaymentMethod(method string) error {
	method = strings.TrimSpace(method)
	if method == "" {
		return ErrPaymentMethodRequired
	}
	if len(method) > MaxPaymentMethodLength {
		return fmt.Errorf("%w: exceeds %d characters", ErrPaymentMethodRequired, MaxPaymentMethodLength)
	}
	return nil
}

// ValidateName validates a display or product name.
func ValidateName(name string) error {
	name = strings.TrimSpace(name)

	if name == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidName)
	}

	if len(name) > MaxNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidName, MaxNameLength)
	}

	return nil
}

// ValidateEmail validates email format
func ValidateEmail(email string) error {
	email = strings.TrimSpace(strings.ToLower(email))

	if !emailRegex.MatchString(email) {
		return ErrInvalidEmail
	}

	return nil
}

// NormalizeEmail lowercases and trims an email address.
func NormalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}

var (
	hasUpper  = regexp.MustCompile(`[A-Z]`)
	hasLower  = regexp.MustCompile(`[a-z]`)
	hasNumber = regexp.MustCompile(`[0-9]`)
)

// ValidatePassword validates password strength
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return fmt.Errorf("%w: must be at least %d characters", ErrPasswordTooWeak, MinPasswordLength)
	}

	if len(password) > MaxPasswordLength {
		return fmt.Errorf("%w: must not exceed %d characters", ErrPasswordTooWeak, MaxPasswordLength)
	}

	if !hasUpper.MatchString(password) || !hasLower.MatchString(password) || !hasNumber.MatchString(password) {
		return fmt.Errorf("%w: must contain uppercase, lowercase, and numbers", ErrPasswordTooWeak)
	}

	return nil
}

// ValidateIdempotencyKey validates a caller-supplied request id.
func ValidateIdempotencyKey(key string) error {
	if key == "" {
		return ErrIdempotencyKeyRequired
	}
	if len(key) > MaxIdempotencyKeyLength {
		return fmt.Errorf("%w: exceeds %d characters", ErrInvalidIdempotencyKey, MaxIdempotencyKeyLength)
	}
	return nil
}

// ValidateQuantity validates an order quantity.
func ValidateQuantity(quantity int32) error {
	if quantity <= 0 || quantity > MaxOrderQuantity {
		return fmt.Errorf("%w: must be between 1 and %d", ErrInvalidQuantity, MaxOrderQuantity)
	}
	return nil
}

// ValidateShipping checks that the fields needed for delivery are present.
func ValidateShipping(s Shipping) error {
	if strings.TrimSpace(s.Name) == "" || strings.TrimSpace(s.Address) == "" || strings.TrimSpace(s.City) == "" {
		return fmt.Errorf("%w: name, address and city are required", ErrInvalidShipping)
	}
	return nil
}

// ValidatePagination validates and limits pagination parameters
func ValidatePagination(limit, offset int) (int, int) {
	const MaxPageSize = 100
	const DefaultPageSize = 20

	if limit <= 0 {
		limit = DefaultPageSize
	}

	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset
}
