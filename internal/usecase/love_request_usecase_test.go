package usecase_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bdCalling-Sdt-hub/trade-connect-backend-globetrotter-sub000/internal/domain"
	"github.com/bdCalling-Sdt-hub/trade-connect-backend-globetrotter-sub000/internal/usecase"
)

func TestLoveRequestUseCase_Create(t *testing.T) {
	h := newHarness(t)
	alice := h.user(t, "alice", "0")
	bob := h.user(t, "bob", "0")

	request, err := h.loves.Create(context.Background(), alice, usecase.CreateLoveRequestInput{
		TargetID: bob.ID,
		Amount:   dec("25"),
	})
	require.NoError(t, err)

	assert.Equal(t, domain.LoveRequestPending, request.Status)
	assert.Equal(t, alice.ID, request.RequesterID)
	assert.Equal(t, bob.ID, request.TargetID)
	assert.Empty(t, request.LedgerEntryID)

	events := h.store.OutboxEvents(domain.EventTypeLoveRequestCreated)
	require.Len(t, events, 1)
	assert.Equal(t, []string{bob.ID}, events[0].Recipients())
	assert.Contains(t, events[0].Message(), "alice")
}

func TestLoveRequestUseCase_CreateErrors(t *testing.T) {
	h := newHarness(t)
	alice := h.user(t, "alice", "0")
	bob := h.user(t, "bob", "0")

	tests := []struct {
		name  string
		input usecase.CreateLoveRequestInput
		want  error
	}{
		{name: "self request", input: usecase.CreateLoveRequestInput{TargetID: alice.ID, Amount: dec("1")}, want: domain.ErrSelfTransfer},
		{name: "unknown target", input: usecase.CreateLoveRequestInput{TargetID: "ghost", Amount: dec("1")}, want: domain.ErrAccountNotFound},
		{name: "zero amount", input: usecase.CreateLoveRequestInput{TargetID: bob.ID}, want: domain.ErrInvalidAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.loves.Create(context.Background(), alice, tt.input)
			require.ErrorIs(t, err, tt.want)
		})
	}

	assert.Empty(t, h.store.OutboxEvents(domain.EventTypeLoveRequestCreated))
}

func TestLoveRequestUseCase_Accept(t *testing.T) {
	h := newHarness(t)
	alice := h.user(t, "alice", "0")
	bob := h.user(t, "bob", "40")

	request, err := h.loves.Create(context.Background(), alice, usecase.CreateLoveRequestInput{TargetID: bob.ID, Amount: dec("25")})
	require.NoError(t, err)

	sent, err := h.loves.Accept(context.Background(), bob, request.ID, usecase.AcceptLoveRequestInput{PaymentMethod: "wallet"})
	require.NoError(t, err)

	requireBalance(t, h, bob.ID, "15")
	requireBalance(t, h, alice.ID, "25")

	assert.Equal(t, bob.ID, sent.AccountID)
	assert.Equal(t, domain.EntryStatusSend, sent.Status)
	assert.Equal(t, domain.ReferenceLoveRequest, sent.ReferenceType)
	assert.Equal(t, request.ID, sent.ReferenceID)

	stored, err := h.loves.Get(context.Background(), alice, request.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.LoveRequestAccepted, stored.Status)
	assert.Equal(t, sent.ID, stored.LedgerEntryID)

	received := h.store.Entries(alice.ID)
	require.Len(t, received, 1)
	assert.Equal(t, domain.EntryStatusReceived, received[0].Status)

	events := h.store.OutboxEvents(domain.EventTypeLoveRequestAccepted)
	require.Len(t, events, 1)
	assert.Equal(t, []string{alice.ID}, events[0].Recipients())

	requireConsistent(t, h)
}

func TestLoveRequestUseCase_AcceptWithLessLove(t *testing.T) {
	h := newHarness(t)
	alice := h.user(t, "alice", "0")
	bob := h.user(t, "bob", "40")

	request, err := h.loves.Create(context.Background(), alice, usecase.CreateLoveRequestInput{TargetID: bob.ID, Amount: dec("20")})
	require.NoError(t, err)

	_, err = h.loves.Accept(context.Background(), bob, request.ID, usecase.AcceptLoveRequestInput{
		Amount:        dec("20"),
		TotalLove:     dec("18"),
		PaymentMethod: "wallet",
	})
	require.NoError(t, err)

	requireBalance(t, h, bob.ID, "20")
	requireBalance(t, h, alice.ID, "18")
	requireConsistent(t, h)
}

func TestLoveRequestUseCase_AcceptErrors(t *testing.T) {
	tests := []struct {
		name    string
		balance string
		input   usecase.AcceptLoveRequestInput
		byOwner bool
		want    error
	}{
		{name: "insufficient balance", balance: "10", input: usecase.AcceptLoveRequestInput{PaymentMethod: "wallet"}, want: domain.ErrInsufficientBalance},
		{name: "requester cannot accept", balance: "100", input: usecase.AcceptLoveRequestInput{PaymentMethod: "wallet"}, byOwner: true, want: domain.ErrNotRequestTarget},
		{name: "amount differs", balance: "100", input: usecase.AcceptLoveRequestInput{Amount: dec("5"), PaymentMethod: "wallet"}, want: domain.ErrInvalidAmount},
		{name: "love exceeds amount", balance: "100", input: usecase.AcceptLoveRequestInput{TotalLove: dec("30"), PaymentMethod: "wallet"}, want: domain.ErrInvalidLoveAmount},
		{name: "missing payment method", balance: "100", input: usecase.AcceptLoveRequestInput{}, want: domain.ErrPaymentMethodRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			alice := h.user(t, "alice", "0")
			bob := h.user(t, "bob", tt.balance)

			request, err := h.loves.Create(context.Background(), alice, usecase.CreateLoveRequestInput{TargetID: bob.ID, Amount: dec("25")})
			require.NoError(t, err)

			actor := bob
			if tt.byOwner {
				actor = alice
			}

			_, err = h.loves.Accept(context.Background(), actor, request.ID, tt.input)
			require.ErrorIs(t, err, tt.want)

			requireBalance(t, h, bob.ID, tt.balance)
			requireBalance(t, h, alice.ID, "0")

			stored, err := h.loves.Get(context.Background(), bob, request.ID)
			require.NoError(t, err)
			assert.Equal(t, domain.LoveRequestPending, stored.Status)
			assert.Empty(t, h.store.OutboxEvents(domain.EventTypeLoveRequestAccepted))
		})
	}
}

func TestLoveRequestUseCase_AcceptUnknownRequest(t *testing.T) {
	h := newHarness(t)
	bob := h.user(t, "bob", "10")

	_, err := h.loves.Accept(context.Background(), bob, "missing", usecase.AcceptLoveRequestInput{PaymentMethod: "wallet"})

	require.ErrorIs(t, err, domain.NotFound)
}

func TestLoveRequestUseCase_Reject(t *testing.T) {
	h := newHarness(t)
	alice := h.user(t, "alice", "0")
	bob := h.user(t, "bob", "40")

	request, err := h.loves.Create(context.Background(), alice, usecase.CreateLoveRequestInput{TargetID: bob.ID, Amount: dec("25")})
	require.NoError(t, err)

	_, err = h.loves.Reject(context.Background(), alice, request.ID)
	require.ErrorIs(t, err, domain.ErrNotRequestTarget)

	rejected, err := h.loves.Reject(context.Background(), bob, request.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.LoveRequestRejected, rejected.Status)

	requireBalance(t, h, bob.ID, "40")
	requireBalance(t, h, alice.ID, "0")

	events := h.store.OutboxEvents(domain.EventTypeLoveRequestRejected)
	require.Len(t, events, 1)
	assert.Equal(t, []string{alice.ID}, events[0].Recipients())

	_, err = h.loves.Accept(context.Background(), bob, request.ID, usecase.AcceptLoveRequestInput{PaymentMethod: "wallet"})
	require.ErrorIs(t, err, domain.ErrLoveRequestNotPending)

	_, err = h.loves.Reject(context.Background(), bob, request.ID)
	require.ErrorIs(t, err, domain.InvalidState)
}

func TestLoveRequestUseCase_AcceptTwice(t *testing.T) {
	h := newHarness(t)
	alice := h.user(t, "alice", "0")
	bob := h.user(t, "bob", "100")

	request, err := h.loves.Create(context.Background(), alice, usecase.CreateLoveRequestInput{TargetID: bob.ID, Amount: dec("25")})
	require.NoError(t, err)

	_, err = h.loves.Accept(context.Background(), bob, request.ID, usecase.AcceptLoveRequestInput{PaymentMethod: "wallet"})
	require.NoError(t, err)

	_, err = h.loves.Accept(context.Background(), bob, request.ID, usecase.AcceptLoveRequestInput{PaymentMethod: "wallet"})
	require.ErrorIs(t, err, domain.ErrLoveRequestNotPending)

	requireBalance(t, h, bob.ID, "75")
	requireBalance(t, h, alice.ID, "25")
}

func TestLoveRequestUseCase_ConcurrentAccept(t *testing.T) {
	h := newHarness(t)
	alice := h.user(t, "alice", "0")
	bob := h.user(t, "bob", "100")
	bobEntriesBefore := len(h.store.Entries(bob.ID))

	request, err := h.loves.Create(context.Background(), alice, usecase.CreateLoveRequestInput{TargetID: bob.ID, Amount: dec("25")})
	require.NoError(t, err)

	const attempts = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		errs      []error
	)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := h.loves.Accept(context.Background(), bob, request.ID, usecase.AcceptLoveRequestInput{PaymentMethod: "wallet"})

			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				succeeded++
				return
			}
			errs = append(errs, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	for _, err := range errs {
		assert.ErrorIs(t, err, domain.InvalidState)
	}

	requireBalance(t, h, bob.ID, "75")
	requireBalance(t, h, alice.ID, "25")
	assert.Len(t, h.store.Entries(bob.ID), bobEntriesBefore+1)
	assert.Len(t, h.store.Entries(alice.ID), 1)
	requireConsistent(t, h)
}

func TestLoveRequestUseCase_GetAndList(t *testing.T) {
	h := newHarness(t)
	alice := h.user(t, "alice", "0")
	bob := h.user(t, "bob", "0")
	carol := h.user(t, "carol", "0")

	first, err := h.loves.Create(context.Background(), alice, usecase.CreateLoveRequestInput{TargetID: bob.ID, Amount: dec("1")})
	require.NoError(t, err)
	_, err = h.loves.Create(context.Background(), carol, usecase.CreateLoveRequestInput{TargetID: bob.ID, Amount: dec("2")})
	require.NoError(t, err)

	_, err = h.loves.Get(context.Background(), carol, first.ID)
	require.ErrorIs(t, err, domain.ErrNotRequestParticipant)

	_, err = h.loves.Get(context.Background(), admin, first.ID)
	require.NoError(t, err)

	incoming, err := h.loves.List(context.Background(), bob, usecase.ListLoveRequestsInput{})
	require.NoError(t, err)
	assert.Len(t, incoming, 2)

	outgoing, err := h.loves.List(context.Background(), alice, usecase.ListLoveRequestsInput{Direction: usecase.LoveRequestsOutgoing})
	require.NoError(t, err)
	require.Len(t, outgoing, 1)
	assert.Equal(t, first.ID, outgoing[0].ID)

	_, err = h.loves.List(context.Background(), alice, usecase.ListLoveRequestsInput{Direction: "sideways"})
	require.ErrorIs(t, err, domain.ValidationError)
}
