package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/bdCalling-Sdt-hub/trade-connect-backend-globetrotter-sub000/internal/domain"
	"github.com/bdCalling-Sdt-hub/trade-connect-backend-globetrotter-sub000/internal/infrastructure/postgres/generated"
	"github.com/bdCalling-Sdt-hub/trade-connect-backend-globetrotter-sub000/internal/usecase"
)

// OrderRepository implements usecase.OrderRepository.
type OrderRepository struct {
	queries *generated.Queries
}

// NewOrderRepository creates a new OrderRepository.
func NewOrderRepository(db generated.DBTX) *OrderRepository {
	return &OrderRepository{queries: generated.New(db)}
}

// Create stores a new order.
func (r *OrderRepository) Create(ctx context.Context, tx usecase.Transaction, order *domain.Order) error {
	queries, err := txQueries(tx)
	if err != nil {
		return err
	}

	return queries.CreateOrder(ctx, generated.CreateOrderParams{
		ID:                 order.ID,
		BuyerID:            order.BuyerID,
		SellerID:           order.SellerID,
		ProductID:          order.ProductID,
		Quantity:           order.Quantity,
		TotalAmount:        decimalToNumeric(order.TotalAmount),
		FeeAmount:          decimalToNumeric(order.FeeAmount),
		ShippingName:       order.Shipping.Name,
		ShippingPhone:      order.Shipping.Phone,
		ShippingAddress:    order.Shipping.Address,
		ShippingCity:       order.Shipping.City,
		ShippingPostalCode: order.Shipping.PostalCode,
		ShippingCountry:    order.Shipping.Country,
		Status:             string(order.Status),
		CreatedAt:          timeToPgTimestamptz(order.CreatedAt),
		UpdatedAt:          timeToPgTimestamptz(order.UpdatedAt),
	})
}

// GetByID retrieves an order by ID.
func (r *OrderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	return getOrder(r.queries.GetOrderByID(ctx, id))
}

// GetByIDForUpdate retrieves an order and locks it until tx ends.
func (r *OrderRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Order, error) {
	queries, err := txQueries(tx)
	if err != nil {
		return nil, err
	}

	return getOrder(queries.GetOrderByIDForUpdate(ctx, id))
}

// UpdateStatus moves the order from one status to another and records the
// fee taken so far.
func (r *OrderRepository) UpdateStatus(ctx context.Context, tx usecase.Transaction, id string, from, to domain.OrderStatus, feeAmount decimal.Decimal, updatedAt time.Time) error {
	queries, err := txQueries(tx)
	if err != nil {
		return err
	}

	n, err := queries.UpdateOrderStatus(ctx, generated.UpdateOrderStatusParams{
		ToStatus:   string(to),
		FeeAmount:  decimalToNumeric(feeAmount),
		UpdatedAt:  timeToPgTimestamptz(updatedAt),
		ID:         id,
		FromStatus: string(from),
	})
	if err != nil {
		return err
	}
	if n == 1 {
		return nil
	}

	if _, err := getOrder(queries.GetOrderByID(ctx, id)); err != nil {
		return err
	}

	return domain.ErrInvalidOrderTransition
}

// ListByBuyer lists a buyer's orders, newest first.
func (r *OrderRepository) ListByBuyer(ctx context.Context, buyerID string, limit, offset int) ([]*domain.Order, error) {
	rows, err := r.queries.ListOrdersByBuyer(ctx, generated.ListOrdersByBuyerParams{
		BuyerID: buyerID,
		Limit:   clampInt32(limit),
		Offset:  clampInt32(offset),
	})
	if err != nil {
		return nil, err
	}

	return rowsToOrders(rows), nil
}

// ListBySeller lists a seller's orders, newest first.
func (r *OrderRepository) ListBySeller(ctx context.Context, sellerID string, limit, offset int) ([]*domain.Order, error) {
	rows, err := r.queries.ListOrdersBySeller(ctx, generated.ListOrdersBySellerParams{
		SellerID: sellerID,
		Limit:    clampInt32(limit),
		Offset:   clampInt32(offset),
	})
	if err != nil {
		return nil, err
	}

	return rowsToOrders(rows), nil
}

func getOrder(row generated.Order, err error) (*domain.Order, error) {
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}

	return rowToOrder(row), nil
}

func rowsToOrders(rows []generated.Order) []*domain.Order {
	out := make([]*domain.Order, 0, len(rows))
	for _, row := range rows {
		out = append(out, rowToOrder(row))
	}
	return out
}

func rowToOrder(row generated.Order) *domain.Order {
	return &domain.Order{
		ID:          row.ID,
		BuyerID:     row.BuyerID,
		SellerID:    row.SellerID,
		ProductID:   row.ProductID,
		Quantity:    row.Quantity,
		TotalAmount: numericToDecimal(row.TotalAmount),
		FeeAmount:   numericToDecimal(row.FeeAmount),
		Shipping: domain.Shipping{
			Name:       row.ShippingName,
			Phone:      row.ShippingPhone,
			Address:    row.ShippingAddress,
			City:       row.ShippingCity,
			PostalCode: row.ShippingPostalCode,
			Country:    row.ShippingCountry,
		},
		Status:    domain.OrderStatus(row.Status),
		CreatedAt: row.CreatedAt.Time,
		UpdatedAt: row.UpdatedAt.Time,
	}
}
