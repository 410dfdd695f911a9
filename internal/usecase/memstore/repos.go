package memstore

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bdCalling-Sdt-hub/trade-connect-backend-globetrotter-sub000/internal/domain"
	"github.com/bdCalling-Sdt-hub/trade-connect-backend-globetrotter-sub000/internal/usecase"
)

// Accounts returns the account repository.
func (s *Store) Accounts() usecase.AccountRepository { return accountRepo{s} }

type accountRepo struct{ s *Store }

func (r accountRepo) Create(_ context.Context, t usecase.Transaction, a *domain.Account) error {
	if err := checkTx(t); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.data.accounts {
		if existing.Email == a.Email {
			return domain.ErrEmailTaken
		}
	}
	r.s.data.accounts[a.ID] = *a
	return nil
}

func (r accountRepo) GetByID(_ context.Context, id string) (*domain.Account, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	a, ok := r.s.data.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return &a, nil
}

func (r accountRepo) GetByEmail(_ context.Context, email string) (*domain.Account, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, a := range r.s.data.accounts {
		if a.Email == email {
			return &a, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (r accountRepo) GetByIDsForUpdate(_ context.Context, t usecase.Transaction, ids []string) ([]*domain.Account, error) {
	if err := checkTx(t); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*domain.Account
	for _, id := range ids {
		if a, ok := r.s.data.accounts[id]; ok {
			out = append(out, &a)
		}
	}
	return out, nil
}

func (r accountRepo) AdjustBalance(_ context.Context, t usecase.Transaction, id string, delta decimal.Decimal, updatedAt time.Time) (*domain.Account, error) {
	if err := checkTx(t); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.data.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	next := a.Balance.Add(delta)
	if next.IsNegative() {
		return nil, domain.ErrInsufficientBalance
	}
	a.Balance = next
	a.Version++
	a.UpdatedAt = updatedAt
	r.s.data.accounts[id] = a
	return &a, nil
}

func (r accountRepo) MarkVerified(_ context.Context, id string, updatedAt time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.data.accounts[id]
	if !ok {
		return domain.ErrAccountNotFound
	}
	a.Verified = true
	a.UpdatedAt = updatedAt
	r.s.data.accounts[id] = a
	return nil
}

func (r accountRepo) List(_ context.Context, limit, offset int) ([]*domain.Account, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	all := make([]*domain.Account, 0, len(r.s.data.accounts))
	for _, a := range r.s.data.accounts {
		all = append(all, &a)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return page(all, limit, offset), nil
}

// LedgerEntries returns the ledger entry repository.
func (s *Store) LedgerEntries() usecase.LedgerEntryRepository { return entryRepo{s} }

type entryRepo struct{ s *Store }

func (r entryRepo) Create(_ context.Context, t usecase.Transaction, e *domain.LedgerEntry) error {
	if err := checkTx(t); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if e.IdempotencyKey != "" {
		for _, existing := range r.s.data.entries {
			if existing.AccountID == e.AccountID && existing.IdempotencyKey == e.IdempotencyKey {
				return domain.ErrDuplicateIdempotency
			}
		}
	}
	r.s.data.entries[e.ID] = *e
	r.s.data.entryOrder = append(r.s.data.entryOrder, e.ID)
	return nil
}

func (r entryRepo) GetByID(_ context.Context, id string) (*domain.LedgerEntry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	e, ok := r.s.data.entries[id]
	if !ok {
		return nil, domain.ErrEntryNotFound
	}
	return &e, nil
}

func (r entryRepo) GetByIdempotencyKey(_ context.Context, accountID, key string) (*domain.LedgerEntry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, e := range r.s.data.entries {
		if e.AccountID == accountID && e.IdempotencyKey == key {
			return &e, nil
		}
	}
	return nil, domain.ErrEntryNotFound
}

func (r entryRepo) ListByAccount(_ context.Context, accountID string, limit, offset int) ([]*domain.LedgerEntry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*domain.LedgerEntry
	for i := len(r.s.data.entryOrder) - 1; i >= 0; i-- {
		e := r.s.data.entries[r.s.data.entryOrder[i]]
		if e.AccountID == accountID {
			out = append(out, &e)
		}
	}
	return page(out, limit, offset), nil
}

// Ledger returns the ledger-wide check repository.
func (s *Store) Ledger() usecase.LedgerRepository { return ledgerRepo{s} }

type ledgerRepo struct{ s *Store }

func (r ledgerRepo) sums() map[string]decimal.Decimal {
	sums := make(map[string]decimal.Decimal)
	for _, e := range r.s.data.entries {
		sums[e.AccountID] = sums[e.AccountID].Add(e.Delta)
	}
	return sums
}

func (r ledgerRepo) FindBalanceMismatches(context.Context) ([]domain.BalanceMismatch, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	sums := r.sums()
	var out []domain.BalanceMismatch
	for id, a := range r.s.data.accounts {
		if !a.Balance.Equal(sums[id]) {
			out = append(out, domain.BalanceMismatch{AccountID: id, RecordedBalance: a.Balance, CalculatedBalance: sums[id]})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AccountID < out[j].AccountID })
	return out, nil
}

func (r ledgerRepo) AccountBalance(_ context.Context, accountID string) (domain.BalanceMismatch, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	a, ok := r.s.data.accounts[accountID]
	if !ok {
		return domain.BalanceMismatch{}, domain.ErrAccountNotFound
	}
	return domain.BalanceMismatch{AccountID: accountID, RecordedBalance: a.Balance, CalculatedBalance: r.sums()[accountID]}, nil
}

// LoveRequests returns the love request repository.
func (s *Store) LoveRequests() usecase.LoveRequestRepository { return loveRequestRepo{s} }

type loveRequestRepo struct{ s *Store }

func (r loveRequestRepo) Create(_ context.Context, t usecase.Transaction, lr *domain.LoveRequest) error {
	if err := checkTx(t); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.data.loveRequests[lr.ID] = *lr
	return nil
}

func (r loveRequestRepo) GetByID(_ context.Context, id string) (*domain.LoveRequest, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	lr, ok := r.s.data.loveRequests[id]
	if !ok {
		return nil, domain.ErrLoveRequestNotFound
	}
	return &lr, nil
}

func (r loveRequestRepo) GetByIDForUpdate(ctx context.Context, t usecase.Transaction, id string) (*domain.LoveRequest, error) {
	if err := checkTx(t); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r loveRequestRepo) UpdateStatus(_ context.Context, t usecase.Transaction, id string, from, to domain.LoveRequestStatus, ledgerEntryID string, updatedAt time.Time) error {
	if err := checkTx(t); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	lr, ok := r.s.data.loveRequests[id]
	if !ok {
		return domain.ErrLoveRequestNotFound
	}
	if lr.Status != from {
		return domain.ErrLoveRequestNotPending
	}
	lr.Status = to
	if ledgerEntryID != "" {
		lr.LedgerEntryID = ledgerEntryID
	}
	lr.UpdatedAt = updatedAt
	r.s.data.loveRequests[id] = lr
	return nil
}

func (r loveRequestRepo) list(match func(domain.LoveRequest) bool, limit, offset int) []*domain.LoveRequest {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*domain.LoveRequest
	for _, lr := range r.s.data.loveRequests {
		if match(lr) {
			out = append(out, &lr)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return page(out, limit, offset)
}

func (r loveRequestRepo) ListIncoming(_ context.Context, targetID string, limit, offset int) ([]*domain.LoveRequest, error) {
	return r.list(func(lr domain.LoveRequest) bool { return lr.TargetID == targetID }, limit, offset), nil
}

func (r loveRequestRepo) ListOutgoing(_ context.Context, requesterID string, limit, offset int) ([]*domain.LoveRequest, error) {
	return r.list(func(lr domain.LoveRequest) bool { return lr.RequesterID == requesterID }, limit, offset), nil
}

// Products returns the product repository.
func (s *Store) Products() usecase.ProductRepository { return productRepo{s} }

type productRepo struct{ s *Store }

func (r productRepo) Create(_ context.Context, p *domain.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.data.products[p.ID] = *p
	return nil
}

func (r productRepo) GetByID(_ context.Context, id string) (*domain.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.data.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return &p, nil
}

// Orders returns the order repository.
func (s *Store) Orders() usecase.OrderRepository { return orderRepo{s} }

type orderRepo struct{ s *Store }

func (r orderRepo) Create(_ context.Context, t usecase.Transaction, o *domain.Order) error {
	if err := checkTx(t); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.data.orders[o.ID] = *o
	return nil
}

func (r orderRepo) GetByID(_ context.Context, id string) (*domain.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	o, ok := r.s.data.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	return &o, nil
}

func (r orderRepo) GetByIDForUpdate(ctx context.Context, t usecase.Transaction, id string) (*domain.Order, error) {
	if err := checkTx(t); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r orderRepo) UpdateStatus(_ context.Context, t usecase.Transaction, id string, from, to domain.OrderStatus, feeAmount decimal.Decimal, updatedAt time.Time) error {
	if err := checkTx(t); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.data.orders[id]
	if !ok {
		return domain.ErrOrderNotFound
	}
	if o.Status != from {
		return domain.ErrInvalidOrderTransition
	}
	o.Status = to
	o.FeeAmount = feeAmount
	o.UpdatedAt = updatedAt
	r.s.data.orders[id] = o
	return nil
}

func (r orderRepo) list(match func(domain.Order) bool, limit, offset int) []*domain.Order {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*domain.Order
	for _, o := range r.s.data.orders {
		if match(o) {
			out = append(out, &o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return page(out, limit, offset)
}

func (r orderRepo) ListByBuyer(_ context.Context, buyerID string, limit, offset int) ([]*domain.Order, error) {
	return r.list(func(o domain.Order) bool { return o.BuyerID == buyerID }, limit, offset), nil
}

func (r orderRepo) ListBySeller(_ context.Context, sellerID string, limit, offset int) ([]*domain.Order, error) {
	return r.list(func(o domain.Order) bool { return o.SellerID == sellerID }, limit, offset), nil
}

// Notifications returns the notification repository.
func (s *Store) Notifications() usecase.NotificationRepository { return notificationRepo{s} }

type notificationRepo struct{ s *Store }

func (r notificationRepo) CreateIfAbsent(_ context.Context, n *domain.Notification) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.data.notifications[n.ID]; ok {
		return false, nil
	}
	r.s.data.notifications[n.ID] = *n
	return true, nil
}

func (r notificationRepo) ListByUser(_ context.Context, userID string, unreadOnly bool, limit, offset int) ([]*domain.Notification, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*domain.Notification
	for _, n := range r.s.data.notifications {
		if n.UserID == userID && (!unreadOnly || !n.Read) {
			out = append(out, &n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return page(out, limit, offset), nil
}

func (r notificationRepo) MarkRead(_ context.Context, userID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n, ok := r.s.data.notifications[id]
	if !ok || n.UserID != userID {
		return domain.ErrNotificationNotFound
	}
	n.Read = true
	r.s.data.notifications[id] = n
	return nil
}

// Outbox returns the outbox repository.
func (s *Store) Outbox() usecase.OutboxRepository { return outboxRepo{s} }

type outboxRepo struct{ s *Store }

func (r outboxRepo) Create(_ context.Context, t usecase.Transaction, e *domain.OutboxEvent) error {
	if err := checkTx(t); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.data.outbox[e.ID] = *e
	return nil
}

func (r outboxRepo) GetUnpublished(_ context.Context, limit int) ([]*domain.OutboxEvent, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*domain.OutboxEvent
	for _, e := range r.s.data.outbox {
		if !e.Published {
			out = append(out, &e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return page(out, limit, 0), nil
}

func (r outboxRepo) MarkPublished(_ context.Context, id string, publishedAt time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.data.outbox[id]
	if !ok {
		return nil
	}
	e.Published = true
	e.PublishedAt = &publishedAt
	r.s.data.outbox[id] = e
	return nil
}

func (r outboxRepo) DeletePublished(_ context.Context, before time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, e := range r.s.data.outbox {
		if e.Published && e.PublishedAt != nil && e.PublishedAt.Before(before) {
			delete(r.s.data.outbox, id)
		}
	}
	return nil
}

// Audit returns the audit repository.
func (s *Store) Audit() usecase.AuditRepository { return auditRepo{s} }

type auditRepo struct{ s *Store }

func (r auditRepo) CreateTx(_ context.Context, t usecase.Transaction, log *domain.AuditLog) error {
	if err := checkTx(t); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.data.audit = append(r.s.data.audit, *log)
	return nil
}

func (r auditRepo) List(_ context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*domain.AuditLog
	for i := len(r.s.data.audit) - 1; i >= 0; i-- {
		l := r.s.data.audit[i]
		if filter.UserID != "" && l.UserID != filter.UserID {
			continue
		}
		if filter.Action != "" && l.Action != filter.Action {
			continue
		}
		if filter.ResourceType != "" && l.ResourceType != filter.ResourceType {
			continue
		}
		if filter.ResourceID != "" && l.ResourceID != filter.ResourceID {
			continue
		}
		out = append(out, &l)
	}
	return page(out, filter.Limit, filter.Offset), nil
}
