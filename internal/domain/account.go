package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PlatformAccountID is the seeded account that collects order fees.
const PlatformAccountID = "platform"

// Privacy controls who can see an account's profile.
type Privacy string

const (
	PrivacyPublic  Privacy = "public"
	PrivacyPrivate Privacy = "private"
)

// Account is a user record holding a Love balance.
type Account struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Balance      decimal.Decimal
	Role         Role
	Privacy      Privacy
	Verified     bool
	Version      int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ValidateDebit checks the account can be debited by amount without going negative.
func (a *Account) ValidateDebit(amount decimal.Decimal) error {
	if a.Balance.LessThan(amount) {
		return ErrInsufficientBalance
	}
	return nil
}

// ApplyDelta returns the balance after applying a signed delta.
func (a *Account) ApplyDelta(delta decimal.Decimal) decimal.Decimal {
	return a.Balance.Add(delta)
}

// IsPlatform reports whether this is the fee-collecting platform account.
func (a *Account) IsPlatform() bool {
	return a.ID == PlatformAccountID
}

// Actor returns the identity this account acts as.
func (a *Account) Actor() Actor {
	return Actor{ID: a.ID, Email: a.Email, Role: a.Role}
}
