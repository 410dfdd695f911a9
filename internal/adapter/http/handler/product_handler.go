package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bdCalling-Sdt-hub/trade-connect-backend-globetrotter-sub000/internal/adapter/http/dto"
	"github.com/bdCalling-Sdt-hub/trade-connect-backend-globetrotter-sub000/internal/domain"
	"github.com/bdCalling-Sdt-hub/trade-connect-backend-globetrotter-sub000/internal/usecase"
)

// ProductService defines the behavior needed by ProductHandler.
type ProductService interface {
	Create(ctx context.Context, actor domain.Actor, input usecase.CreateProductInput) (*domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
}

// ProductHandler handles the product catalog.
type ProductHandler struct {
	productUC ProductService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(productUC ProductService) *ProductHandler {
	return &ProductHandler{productUC: productUC}
}

// Create lists a product owned by the caller.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	var req dto.CreateProductRequest
	if err := dto.Decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	product, err := h.productUC.Create(r.Context(), actor, req.ToUseCaseInput())
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.ProductFromDomain(product))
}

// Get returns a product.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	product, err := h.productUC.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ProductFromDomain(product))
}
