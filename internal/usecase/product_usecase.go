package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bdCalling-Sdt-hub/trade-connect-backend-globetrotter-sub000/internal/domain"
)

// ProductUseCase handles the minimal product catalog orders are placed against.
type ProductUseCase struct {
	productRepo ProductRepository
	idGen       IDGenerator
}

// NewProductUseCase creates a new ProductUseCase.
func NewProductUseCase(productRepo ProductRepository, idGen IDGenerator) *ProductUseCase {
	return &ProductUseCase{
		productRepo: productRepo,
		idGen:       idGen,
	}
}

// CreateProductInput represents input for listing a product.
type CreateProductInput struct {
	Name  string
	Price decimal.Decimal
}

// Create lists a product owned by the actor.
func (uc *ProductUseCase) Create(ctx context.Context, actor domain.Actor, input CreateProductInput) (*domain.Product, error) {
	product := &domain.Product{
		ID:        uc.idGen.Generate(),
		OwnerID:   actor.ID,
		Name:      input.Name,
		Price:     input.Price,
		CreatedAt: time.Now().UTC(),
	}

	if err := product.Validate(); err != nil {
		return nil, err
	}

	if err := uc.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// Get retrieves a product by ID.
func (uc *ProductUseCase) Get(ctx context.Context, id string) (*domain.Product, error) {
	return uc.productRepo.GetByID(ctx, id)
}
