package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bdCalling-Sdt-hub/trade-connect-backend-globetrotter-sub000/internal/domain"
)

// AccountRepository defines data access for accounts.
type AccountRepository interface {
	Create(ctx context.Context, tx Transaction, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	GetByIDsForUpdate(ctx context.Context, tx Transaction, ids []string) ([]*domain.Account, error)
	// AdjustBalance adds delta to the balance only when the result stays
	// non-negative, bumps the version and returns the updated account.
	// It returns domain.ErrInsufficientBalance when the guard rejects the change.
	AdjustBalance(ctx context.Context, tx Transaction, id string, delta decimal.Decimal, updatedAt time.Time) (*domain.Account, error)
	MarkVerified(ctx context.Context, id string, updatedAt time.Time) error
	List(ctx context.Context, limit, offset int) ([]*domain.Account, error)
}

// LedgerEntryRepository defines data access for ledger entries.
type LedgerEntryRepository interface {
	// Create returns domain.ErrDuplicateIdempotency when the owner already
	// has an entry with the same idempotency key.
	Create(ctx context.Context, tx Transaction, entry *domain.LedgerEntry) error
	GetByID(ctx context.Context, id string) (*domain.LedgerEntry, error)
	GetByIdempotencyKey(ctx context.Context, accountID, key string) (*domain.LedgerEntry, error)
	ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.LedgerEntry, error)
}

// LedgerRepository defines data access for ledger-wide checks.
type LedgerRepository interface {
	// FindBalanceMismatches returns every account whose balance differs from
	// the sum of its entry deltas.
	FindBalanceMismatches(ctx context.Context) ([]domain.BalanceMismatch, error)
	// AccountBalance returns the stored balance and the ledger sum of one
	// account read together; domain.ErrAccountNotFound if it does not exist.
	AccountBalance(ctx context.Context, accountID string) (domain.BalanceMismatch, error)
}

// LoveRequestRepository defines data access for love requests.
type LoveRequestRepository interface {
	Create(ctx context.Context, tx Transaction, request *domain.LoveRequest) error
	GetByID(ctx context.Context, id string) (*domain.LoveRequest, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.LoveRequest, error)
	// UpdateStatus moves the request from one status to another and returns
	// domain.ErrLoveRequestNotPending when it is no longer in from.
	UpdateStatus(ctx context.Context, tx Transaction, id string, from, to domain.LoveRequestStatus, ledgerEntryID string, updatedAt time.Time) error
	ListIncoming(ctx context.Context, targetID string, limit, offset int) ([]*domain.LoveRequest, error)
	ListOutgoing(ctx context.Context, requesterID string, limit, offset int) ([]*domain.LoveRequest, error)
}

// ProductRepository defines data access for products.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

// OrderRepository defines data access for orders.
type OrderRepository interface {
	Create(ctx context.Context, tx Transaction, order *domain.Order) error
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Order, error)
	// UpdateStatus moves the order from one status to another and returns
	// domain.ErrInvalidOrderTransition when it is no longer in from.
	UpdateStatus(ctx context.Context, tx Transaction, id string, from, to domain.OrderStatus, feeAmount decimal.Decimal, updatedAt time.Time) error
	ListByBuyer(ctx context.Context, buyerID string, limit, offset int) ([]*domain.Order, error)
	ListBySeller(ctx context.Context, sellerID string, limit, offset int) ([]*domain.Order, error)
}

// NotificationRepository defines data access for notifications.
type NotificationRepository interface {
	// CreateIfAbsent stores the notification and reports false when one with
	// the same id already exists.
	CreateIfAbsent(ctx context.Context, notification *domain.Notification) (bool, error)
	ListByUser(ctx context.Context, userID string, unreadOnly bool, limit, offset int) ([]*domain.Notification, error)
	MarkRead(ctx context.Context, userID, id string) error
}

// OutboxRepository defines data access for outbox events.
type OutboxRepository interface {
	Create(ctx context.Context, tx Transaction, event *domain.OutboxEvent) error
	GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkPublished(ctx context.Context, id string, publishedAt time.Time) error
	DeletePublished(ctx context.Context, before time.Time) error
}

// AuditRepository defines data access for audit logs.
type AuditRepository interface {
	CreateTx(ctx context.Context, tx Transaction, log *domain.AuditLog) error
	List(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}
