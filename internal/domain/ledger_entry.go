package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus describes why a ledger entry was written.
type EntryStatus string

const (
	EntryStatusRecharge EntryStatus = "recharge"
	EntryStatusSend     EntryStatus = "send"
	EntryStatusReceived EntryStatus = "received"
	EntryStatusBuy      EntryStatus = "buy"
	EntryStatusRefund   EntryStatus = "refund"
	EntryStatusSale     EntryStatus = "sale"
	EntryStatusFee      EntryStatus = "fee"
)

// ReferenceType names the workflow that produced an entry.
type ReferenceType string

const (
	ReferenceRecharge    ReferenceType = "recharge"
	ReferenceTransfer    ReferenceType = "transfer"
	ReferenceLoveRequest ReferenceType = "love_request"
	ReferenceOrder       ReferenceType = "order"
)

// LedgerEntry is an immutable record of exactly one balance mutation on one account.
// Delta is the signed effect on the owner's balance; Amount and TotalLove keep
// the values the operation was requested with.
type LedgerEntry struct {
	CreatedAt      time.Time
	ID             string
	AccountID      string
	CounterpartyID string
	ReferenceID    string
	ReferenceType  ReferenceType
	Status         EntryStatus
	PaymentMethod  string
	IdempotencyKey string
	Amount         decimal.Decimal
	TotalLove      decimal.Decimal
	Delta          decimal.Decimal
	BalanceBefore  decimal.Decimal
	BalanceAfter   decimal.Decimal
	AccountVersion int64
}

// IsCredit reports whether the entry increased the owner's balance.
func (e *LedgerEntry) IsCredit() bool {
	return e.Delta.IsPositive()
}

// BalanceMismatch reports an account whose stored balance disagrees with its ledger.
type BalanceMismatch struct {
	AccountID         string
	RecordedBalance   decimal.Decimal
	CalculatedBalance decimal.Decimal
}

// Difference returns recorded minus calculated balance.
func (m BalanceMismatch) Difference() decimal.Decimal {
	return m.RecordedBalance.Sub(m.CalculatedBalance)
}
