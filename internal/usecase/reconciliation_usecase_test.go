package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bdCalling-Sdt-hub/trade-connect-backend-globetrotter-sub000/internal/domain"
	"github.com/bdCalling-Sdt-hub/trade-connect-backend-globetrotter-sub000/internal/usecase"
	"github.com/bdCalling-Sdt-hub/trade-connect-backend-globetrotter-sub000/internal/usecase/mocks"
)

func TestReconciliationUseCase_ReconcileAccount(t *testing.T) {
	h := newHarness(t)
	alice := h.user(t, "alice", "30")
	bob := h.user(t, "bob", "0")

	_, err := h.wallet.Transfer(context.Background(), alice, usecase.TransferInput{
		ReceiverID: bob.ID, Amount: dec("12.25"), PaymentMethod: "wallet", IdempotencyKey: h.key(),
	})
	require.NoError(t, err)

	result, err := h.recon.ReconcileAccount(context.Background(), alice.ID)
	require.NoError(t, err)

	assert.True(t, result.IsReconciled)
	assert.True(t, result.RecordedBalance.Equal(dec("17.75")))
	assert.True(t, result.CalculatedBalance.Equal(dec("17.75")))
	assert.True(t, result.Difference.IsZero())

	_, err = h.recon.ReconcileAccount(context.Background(), "ghost")
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestReconciliationUseCase_DetectsDrift(t *testing.T) {
	h := newHarness(t)
	alice := h.user(t, "alice", "10")

	// An entry written without moving the balance.
	h.store.PutEntry(domain.LedgerEntry{
		ID:        "stray",
		AccountID: alice.ID,
		Delta:     dec("5"),
		Status:    domain.EntryStatusRecharge,
		CreatedAt: time.Now().UTC(),
	})

	result, err := h.recon.ReconcileAccount(context.Background(), alice.ID)
	require.NoError(t, err)
	assert.False(t, result.IsReconciled)
	assert.True(t, result.Difference.Equal(dec("-5")))

	report, err := h.recon.CheckConsistency(context.Background())
	require.NoError(t, err)
	assert.False(t, report.Consistent)
	require.Len(t, report.Mismatches, 1)
	assert.Equal(t, alice.ID, report.Mismatches[0].AccountID)
	assert.True(t, report.Mismatches[0].Difference().Equal(dec("-5")))
}

func TestReconciliationUseCase_ReadsBalanceAndLedgerTogether(t *testing.T) {
	ledger := mocks.NewMockLedgerRepository()
	calls := 0
	ledger.AccountBalanceFunc = func(_ context.Context, id string) (domain.BalanceMismatch, error) {
		calls++
		return domain.BalanceMismatch{AccountID: id, RecordedBalance: decimal.NewFromInt(8), CalculatedBalance: decimal.NewFromInt(8)}, nil
	}

	result, err := usecase.NewReconciliationUseCase(ledger).ReconcileAccount(context.Background(), "acc-1")
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.True(t, result.IsReconciled)
	assert.True(t, result.RecordedBalance.Equal(decimal.NewFromInt(8)))
}

func TestReconciliationUseCase_RepositoryErrors(t *testing.T) {
	ledger := mocks.NewMockLedgerRepository()

	boom := errors.New("connection reset")
	ledger.AccountBalanceFunc = func(context.Context, string) (domain.BalanceMismatch, error) { return domain.BalanceMismatch{}, boom }
	ledger.FindBalanceMismatchesFunc = func(context.Context) ([]domain.BalanceMismatch, error) { return nil, boom }

	uc := usecase.NewReconciliationUseCase(ledger)

	_, err := uc.ReconcileAccount(context.Background(), "acc-1")
	require.ErrorIs(t, err, boom)

	_, err = uc.CheckConsistency(context.Background())
	require.ErrorIs(t, err, boom)
}

func TestAuditUseCase_List(t *testing.T) {
	h := newHarness(t)
	alice := h.user(t, "alice", "10")
	bob := h.user(t, "bob", "0")

	ctx := domain.ContextWithRequestID(context.Background(), "req-42")
	_, err := h.wallet.Transfer(ctx, alice, usecase.TransferInput{
		ReceiverID: bob.ID, Amount: dec("1"), PaymentMethod: "wallet", IdempotencyKey: h.key(),
	})
	require.NoError(t, err)

	uc := usecase.NewAuditUseCase(h.store.Audit())

	_, err = uc.List(context.Background(), alice, domain.AuditFilter{})
	require.ErrorIs(t, err, domain.ErrInsufficientRole)

	logs, err := uc.List(context.Background(), admin, domain.AuditFilter{Action: string(domain.AuditActionWalletTransfer)})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, alice.ID, logs[0].UserID)
	assert.Equal(t, "req-42", logs[0].RequestID)
	assert.Equal(t, string(domain.AuditStatusSuccess), logs[0].Status)

	all, err := uc.List(context.Background(), admin, domain.AuditFilter{UserID: alice.ID})
	require.NoError(t, err)
	assert.Len(t, all, 2, "recharge and transfer")
}
