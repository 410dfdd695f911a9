package handler

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/bdCalling-Sdt-hub/trade-connect-backend-globetrotter-sub000/internal/adapter/http/dto"
	"github.com/bdCalling-Sdt-hub/trade-connect-backend-globetrotter-sub000/internal/adapter/http/middleware"
	"github.com/bdCalling-Sdt-hub/trade-connect-backend-globetrotter-sub000/internal/domain"
	"github.com/bdCalling-Sdt-hub/trade-connect-backend-globetrotter-sub000/internal/usecase"
)

// IdempotencyKeyHeader carries the caller's request id for wallet writes.
const IdempotencyKeyHeader = middleware.IdempotencyKeyHeader

// WalletService defines the behavior needed by WalletHandler.
type WalletService interface {
	Recharge(ctx context.Context, actor domain.Actor, input usecase.RechargeInput) (*domain.LedgerEntry, error)
	Transfer(ctx context.Context, actor domain.Actor, input usecase.TransferInput) (*domain.LedgerEntry, error)
	Balance(ctx context.Context, actor domain.Actor) (decimal.Decimal, error)
}

// WalletHandler handles recharges, transfers and balance reads.
type WalletHandler struct {
	walletUC WalletService
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(walletUC WalletService) *WalletHandler {
	return &WalletHandler{walletUC: walletUC}
}

// Recharge credits the caller's wallet.
func (h *WalletHandler) Recharge(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	var req dto.RechargeRequest
	if err := dto.Decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	entry, err := h.walletUC.Recharge(r.Context(), actor, req.ToUseCaseInput(r.Header.Get(IdempotencyKeyHeader)))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.EntryFromDomain(entry))
}

// Transfer pays another account directly.
func (h *WalletHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	var req dto.TransferRequest
	if err := dto.Decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	entry, err := h.walletUC.Transfer(r.Context(), actor, req.ToUseCaseInput(r.Header.Get(IdempotencyKeyHeader)))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.EntryFromDomain(entry))
}

// Balance returns the caller's balance.
func (h *WalletHandler) Balance(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	balance, err := h.walletUC.Balance(r.Context(), actor)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.BalanceResponse{AccountID: actor.ID, Balance: balance})
}
