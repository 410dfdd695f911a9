package integration

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/bdCalling-Sdt-hub/trade-connect-backend-globetrotter-sub000/internal/domain"
	"github.com/bdCalling-Sdt-hub/trade-connect-backend-globetrotter-sub000/internal/usecase"
	"github.com/bdCalling-Sdt-hub/trade-connect-backend-globetrotter-sub000/tests/testutil"
)

func TestWalletRechargeAndTransfer(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(ctx)

	stack := testutil.NewStack(testDB, decimal.RequireFromString(usecase.DefaultFeeRate))

	alice := testDB.CreateTestAccount(ctx, "alice").Actor()
	bob := testDB.CreateTestAccount(ctx, "bob").Actor()

	entry, err := stack.Wallet.Recharge(ctx, alice, usecase.RechargeInput{
		Amount:         decimal.NewFromInt(100),
		TotalLove:      decimal.NewFromInt(100),
		PaymentMethod:  "card",
		IdempotencyKey: "recharge-1",
	})
	if err != nil {
		t.Fatalf("recharge failed: %v", err)
	}
	if !entry.BalanceAfter.Equal(decimal.NewFromInt(100)) {
		t.Errorf("expected balance after 100, got %s", entry.BalanceAfter)
	}

	t.Run("recharge replay returns the original entry", func(t *testing.T) {
		again, err := stack.Wallet.Recharge(ctx, alice, usecase.RechargeInput{
			Amount:         decimal.NewFromInt(100),
			TotalLove:      decimal.NewFromInt(100),
			PaymentMethod:  "card",
			IdempotencyKey: "recharge-1",
		})
		if err != nil {
			t.Fatalf("replay failed: %v", err)
		}
		if again.ID != entry.ID {
			t.Errorf("expected replayed entry %s, got %s", entry.ID, again.ID)
		}
		if got := stack.Balance(ctx, t, alice.ID); !got.Equal(decimal.NewFromInt(100)) {
			t.Errorf("replay credited twice, balance %s", got)
		}
	})

	t.Run("transfer credits total love", func(t *testing.T) {
		_, err := stack.Wallet.Transfer(ctx, alice, usecase.TransferInput{
			ReceiverID:     bob.ID,
			Amount:         decimal.NewFromInt(40),
			TotalLove:      decimal.NewFromInt(30),
			PaymentMethod:  "wallet",
			IdempotencyKey: "transfer-1",
		})
		if err != nil {
			t.Fatalf("transfer failed: %v", err)
		}

		if got := stack.Balance(ctx, t, alice.ID); !got.Equal(decimal.NewFromInt(60)) {
			t.Errorf("expected sender balance 60, got %s", got)
		}
		if got := stack.Balance(ctx, t, bob.ID); !got.Equal(decimal.NewFromInt(30)) {
			t.Errorf("expected receiver balance 30, got %s", got)
		}
	})

	t.Run("overdraft is rejected", func(t *testing.T) {
		_, err := stack.Wallet.Transfer(ctx, alice, usecase.TransferInput{
			ReceiverID:     bob.ID,
			Amount:         decimal.NewFromInt(1000),
			PaymentMethod:  "wallet",
			IdempotencyKey: "transfer-2",
		})
		if !errors.Is(err, domain.ErrInsufficientBalance) {
			t.Fatalf("expected insufficient balance, got %v", err)
		}
	})

	t.Run("self transfer is rejected", func(t *testing.T) {
		_, err := stack.Wallet.Transfer(ctx, alice, usecase.TransferInput{
			ReceiverID:     alice.ID,
			Amount:         decimal.NewFromInt(1),
			PaymentMethod:  "wallet",
			IdempotencyKey: "transfer-3",
		})
		if domain.KindOf(err) != domain.ValidationError {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	entries, err := stack.Entries.ListByAccount(ctx, alice.ID, 10, 0)
	if err != nil {
		t.Fatalf("list entries: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("expected 2 entries for alice, got %d", len(entries))
	}

	stack.RequireConsistent(ctx, t)
}

func TestConcurrentTransfersNoOverdraft(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(ctx)

	stack := testutil.NewStack(testDB, decimal.RequireFromString(usecase.DefaultFeeRate))

	source := testDB.CreateTestAccount(ctx, "source").Actor()
	dest := testDB.CreateTestAccount(ctx, "dest").Actor()
	stack.Fund(ctx, t, source, decimal.NewFromInt(500))

	// 60 transfers of 10 against a balance of 500: exactly 50 can succeed.
	const attempts = 60
	var (
		wg        sync.WaitGroup
		succeeded atomic.Int32
		rejected  atomic.Int32
	)

	wg.Add(attempts)
	for range attempts {
		go func() {
			defer wg.Done()

			_, err := stack.Wallet.Transfer(ctx, source, usecase.TransferInput{
				ReceiverID:     dest.ID,
				Amount:         decimal.NewFromInt(10),
				PaymentMethod:  "wallet",
				IdempotencyKey: testutil.GenerateID(),
			})
			switch {
			case err == nil:
				succeeded.Add(1)
			case errors.Is(err, domain.ErrInsufficientBalance):
				rejected.Add(1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if succeeded.Load() != 50 || rejected.Load() != 10 {
		t.Errorf("expected 50 successes and 10 rejections, got %d and %d", succeeded.Load(), rejected.Load())
	}
	if got := stack.Balance(ctx, t, source.ID); !got.IsZero() {
		t.Errorf("expected source balance 0, got %s", got)
	}
	if got := stack.Balance(ctx, t, dest.ID); !got.Equal(decimal.NewFromInt(500)) {
		t.Errorf("expected dest balance 500, got %s", got)
	}

	stack.RequireConsistent(ctx, t)
}

func TestConcurrentRechargeSameKey(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(ctx)

	stack := testutil.NewStack(testDB, decimal.RequireFromString(usecase.DefaultFeeRate))
	user := testDB.CreateTestAccount(ctx, "user").Actor()

	const attempts = 10
	ids := make(chan string, attempts)

	var wg sync.WaitGroup
	wg.Add(attempts)
	for range attempts {
		go func() {
			defer wg.Done()

			entry, err := stack.Wallet.Recharge(ctx, user, usecase.RechargeInput{
				Amount:         decimal.NewFromInt(25),
				TotalLove:      decimal.NewFromInt(25),
				PaymentMethod:  "card",
				IdempotencyKey: "same-key",
			})
			if err != nil {
				t.Errorf("recharge failed: %v", err)
				return
			}
			ids <- entry.ID
		}()
	}
	wg.Wait()
	close(ids)

	seen := map[string]bool{}
	for id := range ids {
		seen[id] = true
	}
	if len(seen) != 1 {
		t.Errorf("expected every caller to see one entry, got %d distinct", len(seen))
	}
	if got := stack.Balance(ctx, t, user.ID); !got.Equal(decimal.NewFromInt(25)) {
		t.Errorf("expected a single credit of 25, got %s", got)
	}

	stack.RequireConsistent(ctx, t)
}

func TestReconcileDuringConcurrentTransfers(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(ctx)

	stack := testutil.NewStack(testDB, decimal.RequireFromString(usecase.DefaultFeeRate))

	source := testDB.CreateTestAccount(ctx, "source").Actor()
	dest := testDB.CreateTestAccount(ctx, "dest").Actor()
	stack.Fund(ctx, t, source, decimal.NewFromInt(1000))

	const transfers = 40
	var (
		wg   sync.WaitGroup
		done = make(chan struct{})
	)

	wg.Add(transfers)
	for range transfers {
		go func() {
			defer wg.Done()
			_, err := stack.Wallet.Transfer(ctx, source, usecase.TransferInput{
				ReceiverID:     dest.ID,
				Amount:         decimal.NewFromInt(5),
				PaymentMethod:  "wallet",
				IdempotencyKey: testutil.GenerateID(),
			})
			if err != nil {
				t.Errorf("transfer failed: %v", err)
			}
		}()
	}
	go func() {
		wg.Wait()
		close(done)
	}()

	checks := 0
	for running := true; running; {
		select {
		case <-done:
			running = false
		default:
		}

		for _, id := range []string{source.ID, dest.ID} {
			result, err := stack.Reconciliation.ReconcileAccount(ctx, id)
			if err != nil {
				t.Fatalf("reconcile %s: %v", id, err)
			}
			if !result.IsReconciled {
				t.Fatalf("account %s reported drift %s while transfers ran", id, result.Difference)
			}
			checks++
		}
	}

	if checks == 0 {
		t.Fatal("no reconciliation ran")
	}
	if got := stack.Balance(ctx, t, dest.ID); !got.Equal(decimal.NewFromInt(200)) {
		t.Errorf("expected dest balance 200, got %s", got)
	}
	stack.RequireConsistent(ctx, t)
}
