package handler

import (
	"context"
	"net/http"

	"github.com/bdCalling-Sdt-hub/trade-connect-backend-globetrotter-sub000/internal/adapter/http/dto"
	"github.com/bdCalling-Sdt-hub/trade-connect-backend-globetrotter-sub000/internal/domain"
	"github.com/bdCalling-Sdt-hub/trade-connect-backend-globetrotter-sub000/internal/usecase"
)

// AccountService defines the behavior needed by AccountHandler.
type AccountService interface {
	Me(ctx context.Context, actor domain.Actor) (*domain.Account, error)
	ListAccounts(ctx context.Context, actor domain.Actor, input usecase.ListAccountsInput) ([]*domain.Account, error)
}

// AccountHandler handles account-related HTTP requests.
type AccountHandler struct {
	accountUC AccountService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountUC AccountService) *AccountHandler {
	return &AccountHandler{accountUC: accountUC}
}

// Me returns the caller's account.
func (h *AccountHandler) Me(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	account, err := h.accountUC.Me(r.Context(), actor)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account))
}

// List lists accounts with pagination.
func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	accounts, err := h.accountUC.ListAccounts(r.Context(), actor, usecase.ListAccountsInput{
		Limit:  parseIntQuery(r, "limit", 20),
		Offset: parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountsFromDomain(accounts))
}
