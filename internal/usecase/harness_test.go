package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/bdCalling-Sdt-hub/trade-connect-backend-globetrotter-sub000/internal/domain"
	"github.com/bdCalling-Sdt-hub/trade-connect-backend-globetrotter-sub000/internal/infrastructure/metrics"
	"github.com/bdCalling-Sdt-hub/trade-connect-backend-globetrotter-sub000/internal/usecase"
	"github.com/bdCalling-Sdt-hub/trade-connect-backend-globetrotter-sub000/internal/usecase/memstore"
)

// harness wires the workflow use cases over one in-memory store.
type harness struct {
	store    *memstore.Store
	ids      *memstore.IDs
	metrics  *metrics.Metrics
	wallet   *usecase.WalletUseCase
	loves    *usecase.LoveRequestUseCase
	products *usecase.ProductUseCase
	orders   *usecase.OrderUseCase
	recon    *usecase.ReconciliationUseCase
	notifier *usecase.NotificationUseCase

	keys atomic.Int64
}

type harnessOption func(*harnessDeps)

type harnessDeps struct {
	outbox usecase.OutboxRepository
}

// withOutbox replaces the outbox repository, for failure injection.
func withOutbox(wrap func(usecase.OutboxRepository) usecase.OutboxRepository) harnessOption {
	return func(d *harnessDeps) { d.outbox = wrap(d.outbox) }
}

func newHarness(t *testing.T, opts ...harnessOption) *harness {
	t.Helper()

	store := memstore.New()
	ids := &memstore.IDs{}
	m := metrics.New(prometheus.NewRegistry())

	deps := &harnessDeps{outbox: store.Outbox()}
	for _, opt := range opts {
		opt(deps)
	}

	tx := store.TxManager()
	accounts := store.Accounts()
	entries := store.LedgerEntries()

	return &harness{
		store:    store,
		ids:      ids,
		metrics:  m,
		wallet:   usecase.NewWalletUseCase(tx, nil, accounts, entries, deps.outbox, store.Audit(), ids, m),
		loves:    usecase.NewLoveRequestUseCase(tx, nil, accounts, entries, store.LoveRequests(), deps.outbox, store.Audit(), ids, m),
		products: usecase.NewProductUseCase(store.Products(), ids),
		orders: usecase.NewOrderUseCase(tx, nil, accounts, entries, store.Products(), store.Orders(), deps.outbox, store.Audit(), ids,
			decimal.RequireFromString(usecase.DefaultFeeRate), m),
		recon:    usecase.NewReconciliationUseCase(store.Ledger()),
		notifier: usecase.NewNotificationUseCase(store.Notifications(), nil, zerolog.Nop(), m),
	}
}

// user creates a verified account and funds it through a recharge.
func (h *harness) user(t *testing.T, name, balance string) domain.Actor {
	t.Helper()

	now := time.Now().UTC()
	id := h.ids.Generate()
	h.store.PutAccount(domain.Account{
		ID:        id,
		Name:      name,
		Email:     fmt.Sprintf("%s@example.com", id),
		Balance:   decimal.Zero,
		Role:      domain.RoleUser,
		Privacy:   domain.PrivacyPublic,
		Verified:  true,
		CreatedAt: now,
		UpdatedAt: now,
	})
	actor := domain.Actor{ID: id, Role: domain.RoleUser}

	if balance != "" && balance != "0" {
		h.fund(t, actor, balance)
	}

	return actor
}

func (h *harness) fund(t *testing.T, actor domain.Actor, amount string) {
	t.Helper()

	a := decimal.RequireFromString(amount)
	_, err := h.wallet.Recharge(context.Background(), actor, usecase.RechargeInput{
		Amount:         a,
		TotalLove:      a,
		PaymentMethod:  "card",
		IdempotencyKey: h.key(),
	})
	require.NoError(t, err)
}

func (h *harness) key() string {
	return fmt.Sprintf("key-%d", h.keys.Add(1))
}

func (h *harness) balance(id string) decimal.Decimal {
	return h.store.Balance(id)
}

// requireBalance compares decimals by value.
func requireBalance(t *testing.T, h *harness, id, want string) {
	t.Helper()
	got := h.balance(id)
	require.Truef(t, got.Equal(decimal.RequireFromString(want)), "balance of %s: want %s, got %s", id, want, got)
}

// requireConsistent checks that every balance equals the sum of its entries.
func requireConsistent(t *testing.T, h *harness) {
	t.Helper()
	report, err := h.recon.CheckConsistency(context.Background())
	require.NoError(t, err)
	require.Truef(t, report.Consistent, "ledger mismatches: %+v", report.Mismatches)
}

var admin = domain.Actor{ID: "admin-1", Role: domain.RoleAdmin}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// failingOutbox fails Create while enabled, to prove the surrounding
// transaction rolls back.
type failingOutbox struct {
	usecase.OutboxRepository
	enabled *atomic.Bool
}

var errOutboxDown = errors.New("outbox unavailable")

func (f failingOutbox) Create(ctx context.Context, tx usecase.Transaction, event *domain.OutboxEvent) error {
	if f.enabled.Load() {
		return errOutboxDown
	}
	return f.OutboxRepository.Create(ctx, tx, event)
}
