package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/bdCalling-Sdt-hub/trade-connect-backend-globetrotter-sub000/internal/domain"
	"github.com/bdCalling-Sdt-hub/trade-connect-backend-globetrotter-sub000/internal/infrastructure/postgres/generated"
	"github.com/bdCalling-Sdt-hub/trade-connect-backend-globetrotter-sub000/internal/usecase"
)

// LoveRequestRepository implements usecase.LoveRequestRepository.
type LoveRequestRepository struct {
	queries *generated.Queries
}

// NewLoveRequestRepository creates a new LoveRequestRepository.
func NewLoveRequestRepository(db generated.DBTX) *LoveRequestRepository {
	return &LoveRequestRepository{queries: generated.New(db)}
}

// Create stores a new request.
func (r *LoveRequestRepository) Create(ctx context.Context, tx usecase.Transaction, request *domain.LoveRequest) error {
	queries, err := txQueries(tx)
	if err != nil {
		return err
	}

	return queries.CreateLoveRequest(ctx, generated.CreateLoveRequestParams{
		ID:            request.ID,
		RequesterID:   request.RequesterID,
		TargetID:      request.TargetID,
		Amount:        decimalToNumeric(request.Amount),
		Status:        string(request.Status),
		LedgerEntryID: request.LedgerEntryID,
		CreatedAt:     timeToPgTimestamptz(request.CreatedAt),
		UpdatedAt:     timeToPgTimestamptz(request.UpdatedAt),
	})
}

// GetByID retrieves a request by ID.
func (r *LoveRequestRepository) GetByID(ctx context.Context, id string) (*domain.LoveRequest, error) {
	return getLoveRequest(r.queries.GetLoveRequestByID(ctx, id))
}

// GetByIDForUpdate retrieves a request and locks it until tx ends.
func (r *LoveRequestRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.LoveRequest, error) {
	queries, err := txQueries(tx)
	if err != nil {
		return nil, err
	}

	return getLoveRequest(queries.GetLoveRequestByIDForUpdate(ctx, id))
}

// UpdateStatus is a compare-and-set on the status column.
func (r *LoveRequestRepository) UpdateStatus(ctx context.Context, tx usecase.Transaction, id string, from, to domain.LoveRequestStatus, ledgerEntryID string, updatedAt time.Time) error {
	queries, err := txQueries(tx)
	if err != nil {
		return err
	}

	n, err := queries.UpdateLoveRequestStatus(ctx, generated.UpdateLoveRequestStatusParams{
		ToStatus:      string(to),
		LedgerEntryID: ledgerEntryID,
		UpdatedAt:     timeToPgTimestamptz(updatedAt),
		ID:            id,
		FromStatus:    string(from),
	})
	if err != nil {
		return err
	}
	if n == 1 {
		return nil
	}

	if _, err := getLoveRequest(queries.GetLoveRequestByID(ctx, id)); err != nil {
		return err
	}

	return domain.ErrLoveRequestNotPending
}

// ListIncoming lists requests addressed to targetID, newest first.
func (r *LoveRequestRepository) ListIncoming(ctx context.Context, targetID string, limit, offset int) ([]*domain.LoveRequest, error) {
	rows, err := r.queries.ListLoveRequestsByTarget(ctx, generated.ListLoveRequestsByTargetParams{
		TargetID: targetID,
		Limit:    clampInt32(limit),
		Offset:   clampInt32(offset),
	})
	if err != nil {
		return nil, err
	}

	return rowsToLoveRequests(rows), nil
}

// ListOutgoing lists requests created by requesterID, newest first.
func (r *LoveRequestRepository) ListOutgoing(ctx context.Context, requesterID string, limit, offset int) ([]*domain.LoveRequest, error) {
	rows, err := r.queries.ListLoveRequestsByRequester(ctx, generated.ListLoveRequestsByRequesterParams{
		RequesterID: requesterID,
		Limit:       clampInt32(limit),
		Offset:      clampInt32(offset),
	})
	if err != nil {
		return nil, err
	}

	return rowsToLoveRequests(rows), nil
}

func getLoveRequest(row generated.LoveRequest, err error) (*domain.LoveRequest, error) {
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrLoveRequestNotFound
		}
		return nil, err
	}

	return rowToLoveRequest(row), nil
}

func rowsToLoveRequests(rows []generated.LoveRequest) []*domain.LoveRequest {
	out := make([]*domain.LoveRequest, 0, len(rows))
	for _, row := range rows {
		out = append(out, rowToLoveRequest(row))
	}
	return out
}

func rowToLoveRequest(row generated.LoveRequest) *domain.LoveRequest {
	return &domain.LoveRequest{
		ID:            row.ID,
		RequesterID:   row.RequesterID,
		TargetID:      row.TargetID,
		Amount:        numericToDecimal(row.Amount),
		Status:        domain.LoveRequestStatus(row.Status),
		LedgerEntryID: row.LedgerEntryID,
		CreatedAt:     row.CreatedAt.Time,
		UpdatedAt:     row.UpdatedAt.Time,
	}
}
