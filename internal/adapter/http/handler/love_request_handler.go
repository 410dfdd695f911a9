package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bdCalling-Sdt-hub/trade-connect-backend-globetrotter-sub000/internal/adapter/http/dto"
	"github.com/bdCalling-Sdt-hub/trade-connect-backend-globetrotter-sub000/internal/domain"
	"github.com/bdCalling-Sdt-hub/trade-connect-backend-globetrotter-sub000/internal/usecase"
)

// LoveRequestService defines the behavior needed by LoveRequestHandler.
type LoveRequestService interface {
	Create(ctx context.Context, actor domain.Actor, input usecase.CreateLoveRequestInput) (*domain.LoveRequest, error)
	Accept(ctx context.Context, actor domain.Actor, id string, input usecase.AcceptLoveRequestInput) (*domain.LedgerEntry, error)
	Reject(ctx context.Context, actor domain.Actor, id string) (*domain.LoveRequest, error)
	Get(ctx context.Context, actor domain.Actor, id string) (*domain.LoveRequest, error)
	List(ctx context.Context, actor domain.Actor, input usecase.ListLoveRequestsInput) ([]*domain.LoveRequest, error)
}

// LoveRequestHandler handles the love request workflow.
type LoveRequestHandler struct {
	requestUC LoveRequestService
}

// NewLoveRequestHandler creates a new LoveRequestHandler.
func NewLoveRequestHandler(requestUC LoveRequestService) *LoveRequestHandler {
	return &LoveRequestHandler{requestUC: requestUC}
}

// Create asks another user for Love.
func (h *LoveRequestHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	var req dto.CreateLoveRequestRequest
	if err := dto.Decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	request, err := h.requestUC.Create(r.Context(), actor, req.ToUseCaseInput())
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.LoveRequestFromDomain(request))
}

// Accept pays a pending request and returns the payer's entry.
func (h *LoveRequestHandler) Accept(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	var req dto.AcceptLoveRequestRequest
	if err := dto.Decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	entry, err := h.requestUC.Accept(r.Context(), actor, chi.URLParam(r, "id"), req.ToUseCaseInput())
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.EntryFromDomain(entry))
}

// Reject declines a pending request.
func (h *LoveRequestHandler) Reject(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	request, err := h.requestUC.Reject(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.LoveRequestFromDomain(request))
}

// Get returns a request the caller takes part in.
func (h *LoveRequestHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	request, err := h.requestUC.Get(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.LoveRequestFromDomain(request))
}

// List lists incoming requests, or outgoing ones with ?direction=outgoing.
func (h *LoveRequestHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	requests, err := h.requestUC.List(r.Context(), actor, usecase.ListLoveRequestsInput{
		Direction: usecase.LoveRequestDirection(r.URL.Query().Get("direction")),
		Limit:     parseIntQuery(r, "limit", 20),
		Offset:    parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.LoveRequestsFromDomain(requests))
}
