package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/bdCalling-Sdt-hub/trade-connect-backend-globetrotter-sub000/internal/domain"
	"github.com/bdCalling-Sdt-hub/trade-connect-backend-globetrotter-sub000/internal/usecase"
)

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Email     string          `json:"email"`
	Balance   decimal.Decimal `json:"balance"`
	Role      domain.Role     `json:"role"`
	Privacy   domain.Privacy  `json:"privacy"`
	Verified  bool            `json:"verified"`
	Version   int64           `json:"version"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// AccountFromDomain converts domain account to response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:        a.ID,
		Name:      a.Name,
		Email:     a.Email,
		Balance:   a.Balance,
		Role:      a.Role,
		Privacy:   a.Privacy,
		Verified:  a.Verified,
		Version:   a.Version,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// LoginResponse is a session token plus the signed-in account.
type LoginResponse struct {
	Token   string           `json:"token"`
	Account *AccountResponse `json:"account"`
}

// LoginFromUseCase converts a login result to response.
func LoginFromUseCase(r *usecase.LoginResult) *LoginResponse {
	return &LoginResponse{Token: r.Token, Account: AccountFromDomain(r.Account)}
}

// BalanceResponse is the caller's current balance.
type BalanceResponse struct {
	AccountID string          `json:"account_id"`
	Balance   decimal.Decimal `json:"balance"`
}

// EntryResponse represents a ledger entry in API responses.
type EntryResponse struct {
	ID             string          `json:"id"`
	AccountID      string          `json:"account_id"`
	CounterpartyID string          `json:"counterparty_id,omitempty"`
	ReferenceType  string          `json:"reference_type"`
	ReferenceID    string          `json:"reference_id"`
	Status         string          `json:"status"`
	PaymentMethod  string          `json:"payment_method,omitempty"`
	Amount         decimal.Decimal `json:"amount"`
	TotalLove      decimal.Decimal `json:"total_love"`
	Delta          decimal.Decimal `json:"delta"`
	BalanceBefore  decimal.Decimal `json:"balance_before"`
	BalanceAfter   decimal.Decimal `json:"balance_after"`
	AccountVersion int64           `json:"account_version"`
	CreatedAt      time.Time       `json:"created_at"`
}

// EntryFromDomain converts domain entry to response.
func EntryFromDomain(e *domain.LedgerEntry) *EntryResponse {
	return &EntryResponse{
		ID:             e.ID,
		AccountID:      e.AccountID,
		CounterpartyID: e.CounterpartyID,
		ReferenceType:  string(e.ReferenceType),
		ReferenceID:    e.ReferenceID,
		Status:         string(e.Status),
		PaymentMethod:  e.PaymentMethod,
		Amount:         e.Amount,
		TotalLove:      e.TotalLove,
		Delta:          e.Delta,
		BalanceBefore:  e.BalanceBefore,
		BalanceAfter:   e.BalanceAfter,
		AccountVersion: e.AccountVersion,
		CreatedAt:      e.CreatedAt,
	}
}

// EntriesFromDomain converts domain entries to responses.
func EntriesFromDomain(entries []*domain.LedgerEntry) []*EntryResponse {
	result := make([]*EntryResponse, len(entries))
	for i, e := range entries {
		result[i] = EntryFromDomain(e)
	}
	return result
}

// LoveRequestResponse represents a love request in API responses.
type LoveRequestResponse struct {
	ID            string          `json:"id"`
	RequesterID   string          `json:"requester_id"`
	TargetID      string          `json:"target_id"`
	Amount        decimal.Decimal `json:"amount"`
	Status        string          `json:"status"`
	LedgerEntryID string          `json:"ledger_entry_id,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// LoveRequestFromDomain converts a domain love request to response.
func LoveRequestFromDomain(r *domain.LoveRequest) *LoveRequestResponse {
	return &LoveRequestResponse{
		ID:            r.ID,
		RequesterID:   r.RequesterID,
		TargetID:      r.TargetID,
		Amount:        r.Amount,
		Status:        string(r.Status),
		LedgerEntryID: r.LedgerEntryID,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

// LoveRequestsFromDomain converts domain love requests to responses.
func LoveRequestsFromDomain(requests []*domain.LoveRequest) []*LoveRequestResponse {
	result := make([]*LoveRequestResponse, len(requests))
	for i, r := range requests {
		result[i] = LoveRequestFromDomain(r)
	}
	return result
}

// ProductResponse represents a product in API responses.
type ProductResponse struct {
	ID        string          `json:"id"`
	OwnerID   string          `json:"owner_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	CreatedAt time.Time       `json:"created_at"`
}

// ProductFromDomain converts a domain product to response.
func ProductFromDomain(p *domain.Product) *ProductResponse {
	return &ProductResponse{
		ID:        p.ID,
		OwnerID:   p.OwnerID,
		Name:      p.Name,
		Price:     p.Price,
		CreatedAt: p.CreatedAt,
	}
}

// ShippingResponse is the delivery address of an order.
type ShippingResponse struct {
	Name       string `json:"name"`
	Phone      string `json:"phone,omitempty"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code,omitempty"`
	Country    string `json:"country,omitempty"`
}

// OrderResponse represents an order in API responses.
type OrderResponse struct {
	ID          string           `json:"id"`
	BuyerID     string           `json:"buyer_id"`
	SellerID    string           `json:"seller_id"`
	ProductID   string           `json:"product_id"`
	Quantity    int32            `json:"quantity"`
	TotalAmount decimal.Decimal  `json:"total_amount"`
	FeeAmount   decimal.Decimal  `json:"fee_amount"`
	Status      string           `json:"status"`
	Shipping    ShippingResponse `json:"shipping"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// OrderFromDomain converts a domain order to response.
func OrderFromDomain(o *domain.Order) *OrderResponse {
	return &OrderResponse{
		ID:          o.ID,
		BuyerID:     o.BuyerID,
		SellerID:    o.SellerID,
		ProductID:   o.ProductID,
		Quantity:    o.Quantity,
		TotalAmount: o.TotalAmount,
		FeeAmount:   o.FeeAmount,
		Status:      string(o.Status),
		Shipping: ShippingResponse{
			Name:       o.Shipping.Name,
			Phone:      o.Shipping.Phone,
			Address:    o.Shipping.Address,
			City:       o.Shipping.City,
			PostalCode: o.Shipping.PostalCode,
			Country:    o.Shipping.Country,
		},
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}

// OrdersFromDomain converts domain orders to responses.
func OrdersFromDomain(orders []*domain.Order) []*OrderResponse {
	result := make([]*OrderResponse, len(orders))
	for i, o := range orders {
		result[i] = OrderFromDomain(o)
	}
	return result
}

// NotificationResponse represents a notification in API responses.
type NotificationResponse struct {
	ID            string         `json:"id"`
	Type          string         `json:"type"`
	Message       string         `json:"message"`
	ReferenceType string         `json:"reference_type,omitempty"`
	ReferenceID   string         `json:"reference_id,omitempty"`
	Payload       map[string]any `json:"payload,omitempty"`
	Read          bool           `json:"read"`
	CreatedAt     time.Time      `json:"created_at"`
}

// NotificationsFromDomain converts domain notifications to responses.
func NotificationsFromDomain(notifications []*domain.Notification) []*NotificationResponse {
	result := make([]*NotificationResponse, len(notifications))
	for i, n := range notifications {
		result[i] = &NotificationResponse{
			ID:            n.ID,
			Type:          n.Type,
			Message:       n.Message,
			ReferenceType: n.ReferenceType,
			ReferenceID:   n.ReferenceID,
			Payload:       n.Payload,
			Read:          n.Read,
			CreatedAt:     n.CreatedAt,
		}
	}
	return result
}

// AuditLogResponse represents an audit log entry in API responses.
type AuditLogResponse struct {
	ID           string      `json:"id"`
	UserID       string      `json:"user_id"`
	Action       string      `json:"action"`
	ResourceType string      `json:"resource_type"`
	ResourceID   string      `json:"resource_id"`
	RequestID    string      `json:"request_id,omitempty"`
	BeforeState  domain.JSON `json:"before_state,omitempty"`
	AfterState   domain.JSON `json:"after_state,omitempty"`
	Status       string      `json:"status"`
	ErrorMessage string      `json:"error_message,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
}

// AuditLogsFromDomain converts audit logs to responses.
func AuditLogsFromDomain(logs []*domain.AuditLog) []*AuditLogResponse {
	result := make([]*AuditLogResponse, len(logs))
	for i, l := range logs {
		result[i] = &AuditLogResponse{
			ID:           l.ID,
			UserID:       l.UserID,
			Action:       l.Action,
			ResourceType: l.ResourceType,
			ResourceID:   l.ResourceID,
			RequestID:    l.RequestID,
			BeforeState:  l.BeforeState,
			AfterState:   l.AfterState,
			Status:       l.Status,
			ErrorMessage: l.ErrorMessage,
			CreatedAt:    l.CreatedAt,
		}
	}
	return result
}

// ReconciliationResponse compares a recorded balance with the ledger.
type ReconciliationResponse struct {
	AccountID         string          `json:"account_id"`
	RecordedBalance   decimal.Decimal `json:"recorded_balance"`
	CalculatedBalance decimal.Decimal `json:"calculated_balance"`
	Difference        decimal.Decimal `json:"difference"`
	IsReconciled      bool            `json:"is_reconciled"`
	LastChecked       time.Time       `json:"last_checked"`
}

// ReconciliationFromUseCase converts a reconciliation result to response.
func ReconciliationFromUseCase(r *usecase.ReconciliationResult) *ReconciliationResponse {
	return &ReconciliationResponse{
		AccountID:         r.AccountID,
		RecordedBalance:   r.RecordedBalance,
		CalculatedBalance: r.CalculatedBalance,
		Difference:        r.Difference,
		IsReconciled:      r.IsReconciled,
		LastChecked:       r.LastChecked,
	}
}

// MismatchResponse is one account whose balance disagrees with its ledger.
type MismatchResponse struct {
	AccountID         string          `json:"account_id"`
	RecordedBalance   decimal.Decimal `json:"recorded_balance"`
	CalculatedBalance decimal.Decimal `json:"calculated_balance"`
	Difference        decimal.Decimal `json:"difference"`
}

// ConsistencyResponse is the result of a ledger-wide check.
type ConsistencyResponse struct {
	Consistent bool               `json:"consistent"`
	Mismatches []MismatchResponse `json:"mismatches"`
	CheckedAt  time.Time          `json:"checked_at"`
}

// ConsistencyFromUseCase converts a consistency report to response.
func ConsistencyFromUseCase(r *usecase.ConsistencyReport) *ConsistencyResponse {
	mismatches := make([]MismatchResponse, len(r.Mismatches))
	for i, m := range r.Mismatches {
		mismatches[i] = MismatchResponse{
			AccountID:         m.AccountID,
			RecordedBalance:   m.RecordedBalance,
			CalculatedBalance: m.CalculatedBalance,
			Difference:        m.Difference(),
		}
	}
	return &ConsistencyResponse{
		Consistent: r.Consistent,
		Mismatches: mismatches,
		CheckedAt:  r.CheckedAt,
	}
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
