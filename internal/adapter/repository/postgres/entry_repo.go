package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/bdCalling-Sdt-hub/trade-connect-backend-globetrotter-sub000/internal/domain"
	"github.com/bdCalling-Sdt-hub/trade-connect-backend-globetrotter-sub000/internal/infrastructure/postgres/generated"
	"github.com/bdCalling-Sdt-hub/trade-connect-backend-globetrotter-sub000/internal/usecase"
)

// EntryRepository implements usecase.LedgerEntryRepository.
type EntryRepository struct {
	queries *generated.Queries
}

// NewEntryRepository creates a new EntryRepository.
func NewEntryRepository(db generated.DBTX) *EntryRepository {
	return &EntryRepository{queries: generated.New(db)}
}

// Create appends an entry. The partial unique index on
// (account_id, idempotency_key) turns a reused key into ErrDuplicateIdempotency.
func (r *EntryRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.LedgerEntry) error {
	queries, err := txQueries(tx)
	if err != nil {
		return err
	}

	err = queries.CreateLedgerEntry(ctx, generated.CreateLedgerEntryParams{
		ID:             entry.ID,
		AccountID:      entry.AccountID,
		CounterpartyID: entry.CounterpartyID,
		ReferenceID:    entry.ReferenceID,
		ReferenceType:  string(entry.ReferenceType),
		Status:         string(entry.Status),
		PaymentMethod:  entry.PaymentMethod,
		IdempotencyKey: entry.IdempotencyKey,
		Amount:         decimalToNumeric(entry.Amount),
		TotalLove:      decimalToNumeric(entry.TotalLove),
		Delta:          decimalToNumeric(entry.Delta),
		BalanceBefore:  decimalToNumeric(entry.BalanceBefore),
		BalanceAfter:   decimalToNumeric(entry.BalanceAfter),
		AccountVersion: entry.AccountVersion,
		CreatedAt:      timeToPgTimestamptz(entry.CreatedAt),
	})
	if violates(err, pgErrUniqueViolation, constraintEntryIdempotencyKey) {
		return domain.ErrDuplicateIdempotency
	}

	return err
}

// GetByID retrieves an entry by ID.
func (r *EntryRepository) GetByID(ctx context.Context, id string) (*domain.LedgerEntry, error) {
	row, err := r.queries.GetLedgerEntryByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEntryNotFound
		}
		return nil, err
	}

	return rowToEntry(row), nil
}

// GetByIdempotencyKey retrieves the entry an account wrote under key.
func (r *EntryRepository) GetByIdempotencyKey(ctx context.Context, accountID, key string) (*domain.LedgerEntry, error) {
	row, err := r.queries.GetLedgerEntryByIdempotencyKey(ctx, generated.GetLedgerEntryByIdempotencyKeyParams{
		AccountID:      accountID,
		IdempotencyKey: key,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEntryNotFound
		}
		return nil, err
	}

	return rowToEntry(row), nil
}

// ListByAccount retrieves entries by account ID, newest first.
func (r *EntryRepository) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.LedgerEntry, error) {
	rows, err := r.queries.ListLedgerEntriesByAccount(ctx, generated.ListLedgerEntriesByAccountParams{
		AccountID: accountID,
		Limit:     clampInt32(limit),
		Offset:    clampInt32(offset),
	})
	if err != nil {
		return nil, err
	}

	entries := make([]*domain.LedgerEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, rowToEntry(row))
	}

	return entries, nil
}

func rowToEntry(row generated.LedgerEntry) *domain.LedgerEntry {
	return &domain.LedgerEntry{
		ID:             row.ID,
		AccountID:      row.AccountID,
		CounterpartyID: row.CounterpartyID,
		ReferenceID:    row.ReferenceID,
		ReferenceType:  domain.ReferenceType(row.ReferenceType),
		Status:         domain.EntryStatus(row.Status),
		PaymentMethod:  row.PaymentMethod,
		IdempotencyKey: row.IdempotencyKey,
		Amount:         numericToDecimal(row.Amount),
		TotalLove:      numericToDecimal(row.TotalLove),
		Delta:          numericToDecimal(row.Delta),
		BalanceBefore:  numericToDecimal(row.BalanceBefore),
		BalanceAfter:   numericToDecimal(row.BalanceAfter),
		AccountVersion: row.AccountVersion,
		CreatedAt:      row.CreatedAt.Time,
	}
}
