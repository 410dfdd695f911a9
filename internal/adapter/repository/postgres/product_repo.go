package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/bdCalling-Sdt-hub/trade-connect-backend-globetrotter-sub000/internal/domain"
	"github.com/bdCalling-Sdt-hub/trade-connect-backend-globetrotter-sub000/internal/infrastructure/postgres/generated"
)

// ProductRepository implements usecase.ProductRepository.
type ProductRepository struct {
	queries *generated.Queries
}

// NewProductRepository creates a new ProductRepository.
func NewProductRepository(db generated.DBTX) *ProductRepository {
	return &ProductRepository{queries: generated.New(db)}
}

func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	return r.queries.CreateProduct(ctx, generated.CreateProductParams{
		ID:        product.ID,
		OwnerID:   product.OwnerID,
		Name:      product.Name,
		Price:     decimalToNumeric(product.Price),
		CreatedAt: timeToPgTimestamptz(product.CreatedAt),
	})
}

func (r *ProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	row, err := r.queries.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}
		return nil, err
	}

	return &domain.Product{
		ID:        row.ID,
		OwnerID:   row.OwnerID,
		Name:      row.Name,
		Price:     numericToDecimal(row.Price),
		CreatedAt: row.CreatedAt.Time,
	}, nil
}
