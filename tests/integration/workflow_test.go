package integration

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"

	"github.com/bdCalling-Sdt-hub/trade-connect-backend-globetrotter-sub000/internal/domain"
	"github.com/bdCalling-Sdt-hub/trade-connect-backend-globetrotter-sub000/internal/usecase"
	"github.com/bdCalling-Sdt-hub/trade-connect-backend-globetrotter-sub000/tests/testutil"
)

var admin = domain.Actor{ID: domain.PlatformAccountID, Role: domain.RoleAdmin}

func shipping() domain.Shipping {
	addr := gofakeit.Address()
	return domain.Shipping{
		Name:       gofakeit.Name(),
		Phone:      gofakeit.Phone(),
		Address:    addr.Street,
		City:       addr.City,
		PostalCode: addr.Zip,
		Country:    addr.Country,
	}
}

func TestOrderLifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()

	stack := testutil.NewStack(testDB, decimal.RequireFromString("0.05"))

	setup := func(t *testing.T) (buyer, seller domain.Actor, product *domain.Product) {
		t.Helper()
		testDB.TruncateAll(ctx)

		buyer = testDB.CreateTestAccount(ctx, "buyer").Actor()
		seller = testDB.CreateTestAccount(ctx, "seller").Actor()
		stack.Fund(ctx, t, buyer, decimal.NewFromInt(500))

		product, err := stack.Products.Create(ctx, seller, usecase.CreateProductInput{
			Name:  gofakeit.ProductName(),
			Price: decimal.NewFromInt(100),
		})
		if err != nil {
			t.Fatalf("create product: %v", err)
		}
		return buyer, seller, product
	}

	place := func(t *testing.T, buyer domain.Actor, product *domain.Product) *domain.Order {
		t.Helper()
		order, err := stack.Orders.Create(ctx, buyer, usecase.CreateOrderInput{
			ProductID:   product.ID,
			Quantity:    2,
			TotalAmount: decimal.NewFromInt(200),
			Shipping:    shipping(),
		})
		if err != nil {
			t.Fatalf("create order: %v", err)
		}
		return order
	}

	transition := func(t *testing.T, actor domain.Actor, id string, action domain.OrderAction) *domain.Order {
		t.Helper()
		order, err := stack.Orders.Transition(ctx, actor, id, action)
		if err != nil {
			t.Fatalf("%s: %v", action, err)
		}
		return order
	}

	t.Run("delivered order pays seller minus fee", func(t *testing.T) {
		buyer, seller, product := setup(t)

		order := place(t, buyer, product)
		if got := stack.Balance(ctx, t, buyer.ID); !got.Equal(decimal.NewFromInt(300)) {
			t.Fatalf("expected buyer balance 300 after escrow, got %s", got)
		}

		transition(t, seller, order.ID, domain.OrderActionAccept)
		transition(t, seller, order.ID, domain.OrderActionDeliveryRequest)
		done := transition(t, buyer, order.ID, domain.OrderActionAcceptDelivery)

		if done.Status != domain.OrderAcceptDelivery {
			t.Errorf("expected status %s, got %s", domain.OrderAcceptDelivery, done.Status)
		}
		if !done.FeeAmount.Equal(decimal.NewFromInt(10)) {
			t.Errorf("expected fee 10, got %s", done.FeeAmount)
		}
		if got := stack.Balance(ctx, t, seller.ID); !got.Equal(decimal.NewFromInt(190)) {
			t.Errorf("expected seller balance 190, got %s", got)
		}
		if got := stack.Balance(ctx, t, domain.PlatformAccountID); !got.Equal(decimal.NewFromInt(10)) {
			t.Errorf("expected platform balance 10, got %s", got)
		}

		stack.RequireConsistent(ctx, t)
	})

	t.Run("canceled order refunds the buyer", func(t *testing.T) {
		buyer, _, product := setup(t)

		order := place(t, buyer, product)
		transition(t, buyer, order.ID, domain.OrderActionCancel)

		if got := stack.Balance(ctx, t, buyer.ID); !got.Equal(decimal.NewFromInt(500)) {
			t.Errorf("expected refund to 500, got %s", got)
		}

		_, err := stack.Orders.Transition(ctx, buyer, order.ID, domain.OrderActionCancel)
		if domain.KindOf(err) != domain.InvalidState {
			t.Errorf("expected invalid state on second cancel, got %v", err)
		}

		stack.RequireConsistent(ctx, t)
	})

	t.Run("rejected delivery is returned by admin", func(t *testing.T) {
		buyer, seller, product := setup(t)

		order := place(t, buyer, product)
		transition(t, seller, order.ID, domain.OrderActionAccept)
		transition(t, seller, order.ID, domain.OrderActionDeliveryRequest)
		transition(t, buyer, order.ID, domain.OrderActionRejectDelivery)

		_, err := stack.Orders.Transition(ctx, buyer, order.ID, domain.OrderActionReturnAmount)
		if domain.KindOf(err) != domain.Unauthorized {
			t.Fatalf("expected buyer to be refused, got %v", err)
		}

		transition(t, admin, order.ID, domain.OrderActionReturnAmount)

		if got := stack.Balance(ctx, t, buyer.ID); !got.Equal(decimal.NewFromInt(500)) {
			t.Errorf("expected buyer balance 500, got %s", got)
		}
		if got := stack.Balance(ctx, t, seller.ID); !got.IsZero() {
			t.Errorf("expected seller balance 0, got %s", got)
		}

		stack.RequireConsistent(ctx, t)
	})

	t.Run("buyer cannot overdraw", func(t *testing.T) {
		buyer, _, product := setup(t)

		_, err := stack.Orders.Create(ctx, buyer, usecase.CreateOrderInput{
			ProductID:   product.ID,
			Quantity:    6,
			TotalAmount: decimal.NewFromInt(600),
			Shipping:    shipping(),
		})
		if !errors.Is(err, domain.ErrInsufficientBalance) {
			t.Fatalf("expected insufficient balance, got %v", err)
		}
	})
}

func TestLoveRequestLifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(ctx)

	stack := testutil.NewStack(testDB, decimal.RequireFromString(usecase.DefaultFeeRate))

	requester := testDB.CreateTestAccount(ctx, "requester").Actor()
	target := testDB.CreateTestAccount(ctx, "target").Actor()
	stack.Fund(ctx, t, target, decimal.NewFromInt(100))

	request, err := stack.LoveRequests.Create(ctx, requester, usecase.CreateLoveRequestInput{
		TargetID: target.ID,
		Amount:   decimal.NewFromInt(20),
	})
	if err != nil {
		t.Fatalf("create love request: %v", err)
	}

	accept := usecase.AcceptLoveRequestInput{
		Amount:        decimal.NewFromInt(20),
		TotalLove:     decimal.NewFromInt(20),
		PaymentMethod: "wallet",
	}

	if _, err := stack.LoveRequests.Accept(ctx, requester, request.ID, accept); domain.KindOf(err) != domain.Unauthorized {
		t.Fatalf("expected requester to be refused, got %v", err)
	}

	if _, err := stack.LoveRequests.Accept(ctx, target, request.ID, accept); err != nil {
		t.Fatalf("accept: %v", err)
	}

	if got := stack.Balance(ctx, t, target.ID); !got.Equal(decimal.NewFromInt(80)) {
		t.Errorf("expected target balance 80, got %s", got)
	}
	if got := stack.Balance(ctx, t, requester.ID); !got.Equal(decimal.NewFromInt(20)) {
		t.Errorf("expected requester balance 20, got %s", got)
	}

	if _, err := stack.LoveRequests.Accept(ctx, target, request.ID, accept); domain.KindOf(err) != domain.InvalidState {
		t.Errorf("expected second accept to be invalid, got %v", err)
	}
	if _, err := stack.LoveRequests.Reject(ctx, target, request.ID); domain.KindOf(err) != domain.InvalidState {
		t.Errorf("expected reject after accept to be invalid, got %v", err)
	}

	stack.RequireConsistent(ctx, t)
}

func TestLoveRequestConcurrentDecisions(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(ctx)

	stack := testutil.NewStack(testDB, decimal.RequireFromString(usecase.DefaultFeeRate))

	requester := testDB.CreateTestAccount(ctx, "requester").Actor()
	target := testDB.CreateTestAccount(ctx, "target").Actor()
	stack.Fund(ctx, t, target, decimal.NewFromInt(100))

	request, err := stack.LoveRequests.Create(ctx, requester, usecase.CreateLoveRequestInput{
		TargetID: target.ID,
		Amount:   decimal.NewFromInt(30),
	})
	if err != nil {
		t.Fatalf("create love request: %v", err)
	}

	const accepters = 8
	accept := usecase.AcceptLoveRequestInput{
		Amount:        decimal.NewFromInt(30),
		TotalLove:     decimal.NewFromInt(30),
		PaymentMethod: "wallet",
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		accepted int
		rejected int
		refused  int
	)
	start := make(chan struct{})
	record := func(err error, won *int) {
		mu.Lock()
		defer mu.Unlock()
		switch {
		case err == nil:
			*won++
		case domain.KindOf(err) == domain.InvalidState:
			refused++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}

	wg.Add(accepters + 1)
	for range accepters {
		go func() {
			defer wg.Done()
			<-start
			_, err := stack.LoveRequests.Accept(ctx, target, request.ID, accept)
			record(err, &accepted)
		}()
	}
	go func() {
		defer wg.Done()
		<-start
		_, err := stack.LoveRequests.Reject(ctx, target, request.ID)
		record(err, &rejected)
	}()
	close(start)
	wg.Wait()

	if accepted+rejected != 1 || refused != accepters {
		t.Fatalf("expected exactly one decision, got accepted=%d rejected=%d refused=%d", accepted, rejected, refused)
	}

	stored, err := stack.LoveRequests.Get(ctx, target, request.ID)
	if err != nil {
		t.Fatalf("get love request: %v", err)
	}

	wantTarget, wantRequester := decimal.NewFromInt(70), decimal.NewFromInt(30)
	wantStatus := domain.LoveRequestAccepted
	if rejected == 1 {
		wantTarget, wantRequester = decimal.NewFromInt(100), decimal.Zero
		wantStatus = domain.LoveRequestRejected
	}
	if stored.Status != wantStatus {
		t.Errorf("expected status %s, got %s", wantStatus, stored.Status)
	}
	if got := stack.Balance(ctx, t, target.ID); !got.Equal(wantTarget) {
		t.Errorf("expected target balance %s, got %s", wantTarget, got)
	}
	if got := stack.Balance(ctx, t, requester.ID); !got.Equal(wantRequester) {
		t.Errorf("expected requester balance %s, got %s", wantRequester, got)
	}

	stack.RequireConsistent(ctx, t)
}
