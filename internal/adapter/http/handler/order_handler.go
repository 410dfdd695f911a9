package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bdCalling-Sdt-hub/trade-connect-backend-globetrotter-sub000/internal/adapter/http/dto"
	"github.com/bdCalling-Sdt-hub/trade-connect-backend-globetrotter-sub000/internal/domain"
	"github.com/bdCalling-Sdt-hub/trade-connect-backend-globetrotter-sub000/internal/usecase"
)

// OrderService defines the behavior needed by OrderHandler.
type OrderService interface {
	Create(ctx context.Context, actor domain.Actor, input usecase.CreateOrderInput) (*domain.Order, error)
	Transition(ctx context.Context, actor domain.Actor, id string, action domain.OrderAction) (*domain.Order, error)
	Get(ctx context.Context, actor domain.Actor, id string) (*domain.Order, error)
	List(ctx context.Context, actor domain.Actor, input usecase.ListOrdersInput) ([]*domain.Order, error)
}

// OrderHandler handles orders and their escrow transitions.
type OrderHandler struct {
	orderUC OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(orderUC OrderService) *OrderHandler {
	return &OrderHandler{orderUC: orderUC}
}

// Create places an order and moves its total into escrow.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	var req dto.CreateOrderRequest
	if err := dto.Decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	order, err := h.orderUC.Create(r.Context(), actor, req.ToUseCaseInput())
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.OrderFromDomain(order))
}

// Transition returns a handler applying action to the order in the path.
func (h *OrderHandler) Transition(action domain.OrderAction) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(w, r)
		if !ok {
			return
		}

		order, err := h.orderUC.Transition(r.Context(), actor, chi.URLParam(r, "id"), action)
		if err != nil {
			writeError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, dto.OrderFromDomain(order))
	}
}

// Get returns an order the caller takes part in.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	order, err := h.orderUC.Get(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.OrderFromDomain(order))
}

// List lists the caller's orders as buyer, or as seller with ?as=seller.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	orders, err := h.orderUC.List(r.Context(), actor, usecase.ListOrdersInput{
		As:     domain.OrderParty(r.URL.Query().Get("as")),
		Limit:  parseIntQuery(r, "limit", 20),
		Offset: parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.OrdersFromDomain(orders))
}
