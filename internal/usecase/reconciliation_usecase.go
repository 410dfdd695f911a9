package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bdCalling-Sdt-hub/trade-connect-backend-globetrotter-sub000/internal/domain"
)

// ReconciliationUseCase handles balance reconciliation operations
type ReconciliationUseCase struct {
	ledgerRepo LedgerRepository
}

// NewReconciliationUseCase creates a new reconciliation use case
func NewReconciliationUseCase(ledgerRepo LedgerRepository) *ReconciliationUseCase {
	return &ReconciliationUseCase{ledgerRepo: ledgerRepo}
}

// ReconciliationResult represents the result of a reconciliation check
type ReconciliationResult struct {
	AccountID         string
	RecordedBalance   decimal.Decimal
	CalculatedBalance decimal.Decimal
	Difference        decimal.Decimal
	IsReconciled      bool
	LastChecked       time.Time
}

// ReconcileAccount compares an account's stored balance with the sum of its
// ledger deltas.
func (uc *ReconciliationUseCase) ReconcileAccount(ctx context.Context, accountID string) (*ReconciliationResult, error) {
	balance, err := uc.ledgerRepo.AccountBalance(ctx, accountID)
	if errors.Is(err, domain.ErrAccountNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read ledger for account %s: %w", accountID, err)
	}

	diff := balance.Difference()

	return &ReconciliationResult{
		AccountID:         accountID,
		RecordedBalance:   balance.RecordedBalance,
		CalculatedBalance: balance.CalculatedBalance,
		Difference:        diff,
		IsReconciled:      diff.IsZero(),
		LastChecked:       time.Now().UTC(),
	}, nil
}

// ConsistencyReport summarizes a ledger-wide check.
type ConsistencyReport struct {
	Consistent bool
	Mismatches []domain.BalanceMismatch
	CheckedAt  time.Time
}

// CheckConsistency lists every account whose balance disagrees with its ledger.
func (uc *ReconciliationUseCase) CheckConsistency(ctx context.Context) (*ConsistencyReport, error) {
	mismatches, err := uc.ledgerRepo.FindBalanceMismatches(ctx)
	if err != nil {
		return nil, err
	}

	return &ConsistencyReport{
		Consistent: len(mismatches) == 0,
		Mismatches: mismatches,
		CheckedAt:  time.Now().UTC(),
	}, nil
}
