package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/bdCalling-Sdt-hub/trade-connect-backend-globetrotter-sub000/internal/domain"
	"github.com/bdCalling-Sdt-hub/trade-connect-backend-globetrotter-sub000/internal/infrastructure/postgres/generated"
)

// LedgerRepository implements usecase.LedgerRepository.
type LedgerRepository struct {
	queries *generated.Queries
}

// NewLedgerRepository creates a new LedgerRepository.
func NewLedgerRepository(db generated.DBTX) *LedgerRepository {
	return &LedgerRepository{queries: generated.New(db)}
}

// FindBalanceMismatches lists accounts whose balance differs from the sum of
// their entry deltas.
func (r *LedgerRepository) FindBalanceMismatches(ctx context.Context) ([]domain.BalanceMismatch, error) {
	rows, err := r.queries.FindBalanceMismatches(ctx)
	if err != nil {
		return nil, err
	}

	mismatches := make([]domain.BalanceMismatch, 0, len(rows))
	for _, row := range rows {
		mismatches = append(mismatches, domain.BalanceMismatch{
			AccountID:         row.ID,
			RecordedBalance:   numericToDecimal(row.Balance),
			CalculatedBalance: numericToDecimal(row.Calculated),
		})
	}

	return mismatches, nil
}

// AccountBalance reads an account's stored balance and the sum of its entry
// deltas in one statement, so both come from the same snapshot.
func (r *LedgerRepository) AccountBalance(ctx context.Context, accountID string) (domain.BalanceMismatch, error) {
	row, err := r.queries.GetAccountLedgerBalance(ctx, accountID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.BalanceMismatch{}, domain.ErrAccountNotFound
		}
		return domain.BalanceMismatch{}, err
	}

	return domain.BalanceMismatch{
		AccountID:         row.ID,
		RecordedBalance:   numericToDecimal(row.Balance),
		CalculatedBalance: numericToDecimal(row.Calculated),
	}, nil
}
