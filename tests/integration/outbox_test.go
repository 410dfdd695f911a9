package integration

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/bdCalling-Sdt-hub/trade-connect-backend-globetrotter-sub000/internal/domain"
	"github.com/bdCalling-Sdt-hub/trade-connect-backend-globetrotter-sub000/internal/infrastructure/eventpublisher"
	"github.com/bdCalling-Sdt-hub/trade-connect-backend-globetrotter-sub000/internal/usecase"
	"github.com/bdCalling-Sdt-hub/trade-connect-backend-globetrotter-sub000/tests/testutil"
)

func TestOutboxDeliversNotifications(t *testing.T) {
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
	stack.Fund(ctx, t, alice, decimal.NewFromInt(50))

	if _, err := stack.Wallet.Transfer(ctx, alice, usecase.TransferInput{
		ReceiverID:     bob.ID,
		Amount:         decimal.NewFromInt(20),
		PaymentMethod:  "wallet",
		IdempotencyKey: testutil.GenerateID(),
	}); err != nil {
		t.Fatalf("transfer failed: %v", err)
	}

	events, err := stack.Outbox.GetUnpublished(ctx, 10)
	if err != nil {
		t.Fatalf("failed to get unpublished events: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected recharge and transfer events, got %d", len(events))
	}

	publisher := eventpublisher.NewEventPublisher(eventpublisher.Config{
		OutboxRepo: stack.Outbox,
		Publisher:  stack.Notifier,
		Logger:     zerolog.Nop(),
		Metrics:    stack.Metrics,
		BatchSize:  10,
		Interval:   20 * time.Millisecond,
	})

	runCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	go func() { _ = publisher.Start(runCtx) }()

	deadline := time.Now().Add(2 * time.Second)
	for {
		remaining, err := stack.Outbox.GetUnpublished(ctx, 10)
		if err != nil {
			t.Fatalf("failed to poll outbox: %v", err)
		}
		if len(remaining) == 0 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("outbox not drained, %d events left", len(remaining))
		}
		time.Sleep(20 * time.Millisecond)
	}
	cancel()

	received, err := stack.Notifications.ListByUser(ctx, bob.ID, true, 10, 0)
	if err != nil {
		t.Fatalf("list notifications: %v", err)
	}
	if len(received) != 1 {
		t.Fatalf("expected one notification for bob, got %d", len(received))
	}
	if received[0].Type != domain.EventTypeTransferCompleted {
		t.Errorf("expected %s, got %s", domain.EventTypeTransferCompleted, received[0].Type)
	}

	// Redelivery of the same event does not duplicate the notification.
	for _, event := range events {
		if err := stack.Notifier.Publish(ctx, event); err != nil {
			t.Fatalf("republish: %v", err)
		}
	}
	received, err = stack.Notifications.ListByUser(ctx, bob.ID, false, 10, 0)
	if err != nil {
		t.Fatalf("list notifications: %v", err)
	}
	if len(received) != 1 {
		t.Errorf("expected redelivery to be deduplicated, got %d notifications", len(received))
	}

	if err := stack.Notifier.MarkRead(ctx, bob, received[0].ID); err != nil {
		t.Fatalf("mark read: %v", err)
	}
	unread, err := stack.Notifications.ListByUser(ctx, bob.ID, true, 10, 0)
	if err != nil {
		t.Fatalf("list notifications: %v", err)
	}
	if len(unread) != 0 {
		t.Errorf("expected no unread notifications, got %d", len(unread))
	}
}
