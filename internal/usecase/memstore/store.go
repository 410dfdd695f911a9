// Package memstore is an in-memory implementation of the use case
// repositories with transactional rollback, for tests.
//
// Transactions are serialized: Begin blocks until the previous transaction
// commits or rolls back, which gives the same outcome as row locks for the
// workflows under test. Rollback restores the snapshot taken at Begin.
package memstore

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bdCalling-Sdt-hub/trade-connect-backend-globetrotter-sub000/internal/domain"
	"github.com/bdCalling-Sdt-hub/trade-connect-backend-globetrotter-sub000/internal/usecase"
)

var errTxDone = errors.New("memstore: transaction already closed")

type state struct {
	accounts      map[string]domain.Account
	entries       map[string]domain.LedgerEntry
	entryOrder    []string
	loveRequests  map[string]domain.LoveRequest
	products      map[string]domain.Product
	orders        map[string]domain.Order
	notifications map[string]domain.Notification
	outbox        map[string]domain.OutboxEvent
	audit         []domain.AuditLog
}

func newState() *state {
	return &state{
		accounts:      make(map[string]domain.Account),
		entries:       make(map[string]domain.LedgerEntry),
		loveRequests:  make(map[string]domain.LoveRequest),
		products:      make(map[string]domain.Product),
		orders:        make(map[string]domain.Order),
		notifications: make(map[string]domain.Notification),
		outbox:        make(map[string]domain.OutboxEvent),
	}
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.accounts {
		c.accounts[k] = v
	}
	for k, v := range s.entries {
		c.entries[k] = v
	}
	c.entryOrder = append([]string(nil), s.entryOrder...)
	for k, v := range s.loveRequests {
		c.loveRequests[k] = v
	}
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.orders {
		c.orders[k] = v
	}
	for k, v := range s.notifications {
		c.notifications[k] = v
	}
	for k, v := range s.outbox {
		c.outbox[k] = v
	}
	c.audit = append([]domain.AuditLog(nil), s.audit...)
	return c
}

// Store holds all data and hands out repositories bound to it.
type Store struct {
	txMu sync.Mutex
	mu   sync.RWMutex
	data *state
}

// New creates an empty store seeded with the platform account.
func New() *Store {
	s := &Store{data: newState()}
	now := time.Now().UTC()
	s.data.accounts[domain.PlatformAccountID] = domain.Account{
		ID:        domain.PlatformAccountID,
		Name:      "Platform",
		Email:     "platform@localhost",
		Balance:   decimal.Zero,
		Role:      domain.RoleAdmin,
		Privacy:   domain.PrivacyPrivate,
		Verified:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return s
}

// PutAccount inserts or replaces an account outside any transaction.
func (s *Store) PutAccount(a domain.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.accounts[a.ID] = a
}

// PutEntry inserts a ledger entry without touching balances.
func (s *Store) PutEntry(e domain.LedgerEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.entries[e.ID] = e
	s.data.entryOrder = append(s.data.entryOrder, e.ID)
}

// Balance returns the stored balance of an account.
func (s *Store) Balance(id string) decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.accounts[id].Balance
}

// Entries returns all entries of an account in insertion order.
func (s *Store) Entries(accountID string) []domain.LedgerEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.LedgerEntry
	for _, id := range s.data.entryOrder {
		if e := s.data.entries[id]; e.AccountID == accountID {
			out = append(out, e)
		}
	}
	return out
}

// EntryCount returns the number of stored ledger entries.
func (s *Store) EntryCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data.entries)
}

// OrderCount returns the number of stored orders.
func (s *Store) OrderCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data.orders)
}

// OutboxEvents returns all outbox events of the given type.
func (s *Store) OutboxEvents(eventType string) []domain.OutboxEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.OutboxEvent
	for _, e := range s.data.outbox {
		if eventType == "" || e.EventType == eventType {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// AuditLogs returns every audit log written.
func (s *Store) AuditLogs() []domain.AuditLog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.AuditLog(nil), s.data.audit...)
}

// TxManager returns a usecase.TransactionManager over the store.
func (s *Store) TxManager() usecase.TransactionManager { return txManager{s} }

type txManager struct{ s *Store }

func (m txManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.s.txMu.Lock()
	m.s.mu.RLock()
	snapshot := m.s.data.clone()
	m.s.mu.RUnlock()
	return &tx{s: m.s, snapshot: snapshot}, nil
}

type tx struct {
	s        *Store
	snapshot *state
	done     bool
}

func (t *tx) Commit(context.Context) error {
	if t.done {
		return errTxDone
	}
	t.done = true
	t.s.txMu.Unlock()
	return nil
}

func (t *tx) Rollback(context.Context) error {
	if t.done {
		return errTxDone
	}
	t.done = true
	t.s.mu.Lock()
	t.s.data = t.snapshot
	t.s.mu.Unlock()
	t.s.txMu.Unlock()
	return nil
}

func checkTx(t usecase.Transaction) error {
	mt, ok := t.(*tx)
	if !ok || mt.done {
		return errTxDone
	}
	return nil
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	end := offset + limit
	if limit <= 0 || end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}
