package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LoveRequestStatus is the state of a love request.
type LoveRequestStatus string

const (
	LoveRequestPending  LoveRequestStatus = "pending"
	LoveRequestAccepted LoveRequestStatus = "accepted"
	LoveRequestRejected LoveRequestStatus = "rejected"
)

// LoveRequest asks TargetID to send Amount to RequesterID.
type LoveRequest struct {
	ID            string
	RequesterID   string
	TargetID      string
	Amount        decimal.Decimal
	Status        LoveRequestStatus
	LedgerEntryID string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Validate checks the request before it is stored.
func (r *LoveRequest) Validate() error {
	if r.RequesterID == r.TargetID {
		return ErrSelfTransfer
	}
	return ValidateAmount(r.Amount)
}

// CanDecide checks that actorID may accept or reject the request now.
func (r *LoveRequest) CanDecide(actorID string) error {
	if actorID != r.TargetID {
		return ErrNotRequestTarget
	}
	if r.Status != LoveRequestPending {
		return ErrLoveRequestNotPending
	}
	return nil
}

// IsParticipant reports whether accountID is the requester or the target.
func (r *LoveRequest) IsParticipant(accountID string) bool {
	return accountID == r.RequesterID || accountID == r.TargetID
}
