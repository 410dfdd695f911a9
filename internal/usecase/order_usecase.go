package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bdCalling-Sdt-hub/trade-connect-backend-globetrotter-sub000/internal/domain"
	"github.com/bdCalling-Sdt-hub/trade-connect-backend-globetrotter-sub000/internal/infrastructure/metrics"
)

// OrderUseCase runs the escrow order workflow. The buyer is debited when the
// order is placed; the funds are released to the seller on delivery or
// refunded on cancel and return.
type OrderUseCase struct {
	txManager   TransactionManager
	retrier     Retrier
	productRepo ProductRepository
	orderRepo   OrderRepository
	ledger      ledgerWriter
	events      recorder
	feeRate     decimal.Decimal
	metrics     *metrics.Metrics
}

// NewOrderUseCase creates a new OrderUseCase. feeRate is the platform's share
// of a delivered order, between 0 and 1.
func NewOrderUseCase(
	txManager TransactionManager,
	retrier Retrier,
	accountRepo AccountRepository,
	entryRepo LedgerEntryRepository,
	productRepo ProductRepository,
	orderRepo OrderRepository,
	outboxRepo OutboxRepository,
	auditRepo AuditRepository,
	idGen IDGenerator,
	feeRate decimal.Decimal,
	metrics *metrics.Metrics,
) *OrderUseCase {
	return &OrderUseCase{
		txManager:   txManager,
		retrier:     retrier,
		productRepo: productRepo,
		orderRepo:   orderRepo,
		ledger:      ledgerWriter{accountRepo: accountRepo, entryRepo: entryRepo, idGen: idGen},
		events:      recorder{outboxRepo: outboxRepo, auditRepo: auditRepo, idGen: idGen},
		feeRate:     feeRate,
		metrics:     metrics,
	}
}

// CreateOrderInput represents input for placing an order.
type CreateOrderInput struct {
	ProductID   string
	Quantity    int32
	TotalAmount decimal.Decimal
	Shipping    domain.Shipping
}

// Create places a pending order and moves TotalAmount from the buyer into escrow.
func (uc *OrderUseCase) Create(ctx context.Context, actor domain.Actor, input CreateOrderInput) (*domain.Order, error) {
	if input.Quantity == 0 {
		input.Quantity = 1
	}
	if err := domain.ValidateQuantity(input.Quantity); err != nil {
		return nil, err
	}
	if err := domain.ValidateAmount(input.TotalAmount); err != nil {
		return nil, err
	}
	if err := domain.ValidateShipping(input.Shipping); err != nil {
		return nil, err
	}

	product, err := uc.productRepo.GetByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}

	if product.OwnerID == actor.ID {
		return nil, domain.ErrOwnProduct
	}

	if expected := product.TotalFor(input.Quantity); !expected.Equal(input.TotalAmount) {
		return nil, fmt.Errorf("%w: expected %s", domain.ErrTotalMismatch, expected)
	}

	start := time.Now()

	var order *domain.Order
	err = inTx(ctx, uc.txManager, uc.retrier, func(ctx context.Context, tx Transaction) error {
		now := time.Now().UTC()

		order = &domain.Order{
			ID:          uc.ledger.idGen.Generate(),
			BuyerID:     actor.ID,
			SellerID:    product.OwnerID,
			ProductID:   product.ID,
			Quantity:    input.Quantity,
			TotalAmount: input.TotalAmount,
			FeeAmount:   decimal.Zero,
			Shipping:    input.Shipping,
			Status:      domain.OrderPending,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		accounts, err := uc.ledger.lock(ctx, tx, order.BuyerID)
		if err != nil {
			return err
		}
		buyer := accounts[order.BuyerID]

		if err := buyer.ValidateDebit(order.TotalAmount); err != nil {
			return err
		}

		if _, err := uc.ledger.post(ctx, tx, posting{
			AccountID:      order.BuyerID,
			CounterpartyID: order.SellerID,
			Delta:          order.TotalAmount.Neg(),
			Amount:         order.TotalAmount,
			TotalLove:      order.TotalAmount,
			Status:         domain.EntryStatusBuy,
			ReferenceType:  domain.ReferenceOrder,
			ReferenceID:    order.ID,
		}, now); err != nil {
			return err
		}

		if err := uc.orderRepo.Create(ctx, tx, order); err != nil {
			return err
		}

		if err := uc.events.notify(ctx, tx, domain.AggregateTypeOrder, order.ID, domain.EventTypeOrderCreated,
			fmt.Sprintf("%s ordered %d x %s", buyer.Name, order.Quantity, product.Name),
			[]string{order.SellerID},
			map[string]any{"total_amount": order.TotalAmount.String(), "product_id": product.ID},
			now,
		); err != nil {
			return err
		}

		return uc.events.audit(ctx, tx, actor.ID, domain.AuditActionOrderCreate, "order", order.ID, nil, order, now)
	})
	if err != nil {
		if uc.metrics != nil && errors.Is(err, domain.InsufficientBalance) {
			uc.metrics.BalanceRejections.WithLabelValues("order").Inc()
		}
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.OrderTransitions.WithLabelValues(string(domain.OrderPending)).Inc()
		uc.metrics.LedgerEntriesTotal.WithLabelValues(string(domain.EntryStatusBuy)).Inc()
		uc.metrics.OperationDuration.WithLabelValues("order_create").Observe(time.Since(start).Seconds())
	}

	return order, nil
}

// Transition applies action to the order on behalf of actor and performs the
// balance effects tied to it.
func (uc *OrderUseCase) Transition(ctx context.Context, actor domain.Actor, id string, action domain.OrderAction) (*domain.Order, error) {
	start := time.Now()

	var (
		order   *domain.Order
		entries []*domain.LedgerEntry
	)
	err := inTx(ctx, uc.txManager, uc.retrier, func(ctx context.Context, tx Transaction) error {
		now := time.Now().UTC()
		entries = entries[:0]

		var err error
		order, err = uc.orderRepo.GetByIDForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}

		to, err := order.Transition(action, actor)
		if err != nil {
			return err
		}

		before := *order

		switch action {
		case domain.OrderActionCancel, domain.OrderActionReturnAmount:
			entry, err := uc.refund(ctx, tx, order, now)
			if err != nil {
				return err
			}
			entries = append(entries, entry)
		case domain.OrderActionAcceptDelivery:
			paid, err := uc.release(ctx, tx, order, now)
			if err != nil {
				return err
			}
			entries = append(entries, paid...)
		}

		if err := uc.orderRepo.UpdateStatus(ctx, tx, order.ID, before.Status, to, order.FeeAmount, now); err != nil {
			return err
		}
		order.Status = to
		order.UpdatedAt = now

		message, recipients := uc.announcement(order, action)
		if err := uc.events.notify(ctx, tx, domain.AggregateTypeOrder, order.ID, orderEventType(action), message, recipients,
			map[string]any{"status": string(to), "total_amount": order.TotalAmount.String()},
			now,
		); err != nil {
			return err
		}

		return uc.events.audit(ctx, tx, actor.ID, domain.OrderAuditAction(action), "order", order.ID, &before, order, now)
	})
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.OrderTransitions.WithLabelValues(string(order.Status)).Inc()
		for _, e := range entries {
			uc.metrics.LedgerEntriesTotal.WithLabelValues(string(e.Status)).Inc()
		}
		if order.FeeAmount.IsPositive() {
			uc.metrics.FeesCollected.Add(order.FeeAmount.InexactFloat64())
		}
		uc.metrics.OperationDuration.WithLabelValues("order_" + string(action)).Observe(time.Since(start).Seconds())
	}

	return order, nil
}

// refund returns the escrowed total to the buyer.
func (uc *OrderUseCase) refund(ctx context.Context, tx Transaction, order *domain.Order, now time.Time) (*domain.LedgerEntry, error) {
	if _, err := uc.ledger.lock(ctx, tx, order.BuyerID); err != nil {
		return nil, err
	}

	return uc.ledger.post(ctx, tx, posting{
		AccountID:      order.BuyerID,
		CounterpartyID: order.SellerID,
		Delta:          order.TotalAmount,
		Amount:         order.TotalAmount,
		TotalLove:      order.TotalAmount,
		Status:         domain.EntryStatusRefund,
		ReferenceType:  domain.ReferenceOrder,
		ReferenceID:    order.ID,
	}, now)
}

// release pays the escrowed total to the seller and moves the fee to the
// platform account. It sets order.FeeAmount.
func (uc *OrderUseCase) release(ctx context.Context, tx Transaction, order *domain.Order, now time.Time) ([]*domain.LedgerEntry, error) {
	fee, net := domain.SplitFee(order.TotalAmount, uc.feeRate)
	order.FeeAmount = fee

	if _, err := uc.ledger.lock(ctx, tx, order.SellerID, domain.PlatformAccountID); err != nil {
		return nil, err
	}

	sale, err := uc.ledger.post(ctx, tx, posting{
		AccountID:      order.SellerID,
		CounterpartyID: order.BuyerID,
		Delta:          order.TotalAmount,
		Amount:         order.TotalAmount,
		TotalLove:      net,
		Status:         domain.EntryStatusSale,
		ReferenceType:  domain.ReferenceOrder,
		ReferenceID:    order.ID,
	}, now)
	if err != nil {
		return nil, err
	}

	if !fee.IsPositive() {
		return []*domain.LedgerEntry{sale}, nil
	}

	sellerFee, err := uc.ledger.post(ctx, tx, posting{
		AccountID:      order.SellerID,
		CounterpartyID: domain.PlatformAccountID,
		Delta:          fee.Neg(),
		Amount:         fee,
		TotalLove:      fee,
		Status:         domain.EntryStatusFee,
		ReferenceType:  domain.ReferenceOrder,
		ReferenceID:    order.ID,
	}, now)
	if err != nil {
		return nil, err
	}

	platformFee, err := uc.ledger.post(ctx, tx, posting{
		AccountID:      domain.PlatformAccountID,
		CounterpartyID: order.SellerID,
		Delta:          fee,
		Amount:         fee,
		TotalLove:      fee,
		Status:         domain.EntryStatusFee,
		ReferenceType:  domain.ReferenceOrder,
		ReferenceID:    order.ID,
	}, now)
	if err != nil {
		return nil, err
	}

	return []*domain.LedgerEntry{sale, sellerFee, platformFee}, nil
}

func (uc *OrderUseCase) announcement(order *domain.Order, action domain.OrderAction) (string, []string) {
	switch action {
	case domain.OrderActionCancel:
		return fmt.Sprintf("Order %s was canceled by the buyer", order.ID), []string{order.SellerID}
	case domain.OrderActionAccept:
		return fmt.Sprintf("Your order %s was accepted", order.ID), []string{order.BuyerID}
	case domain.OrderActionDeliveryRequest:
		return fmt.Sprintf("Order %s is ready, please confirm delivery", order.ID), []string{order.BuyerID}
	case domain.OrderActionAcceptDelivery:
		return fmt.Sprintf("Delivery of order %s was confirmed, %s Love credited", order.ID, order.TotalAmount.Sub(order.FeeAmount)),
			[]string{order.SellerID}
	case domain.OrderActionRejectDelivery:
		return fmt.Sprintf("Delivery of order %s was rejected by the buyer", order.ID),
			[]string{order.SellerID, domain.PlatformAccountID}
	case domain.OrderActionReturnAmount:
		return fmt.Sprintf("%s Love for order %s was returned to the buyer", order.TotalAmount, order.ID),
			[]string{order.BuyerID, order.SellerID}
	}
	return "", nil
}

func orderEventType(action domain.OrderAction) string {
	switch action {
	case domain.OrderActionCancel:
		return domain.EventTypeOrderCanceled
	case domain.OrderActionAccept:
		return domain.EventTypeOrderAccepted
	case domain.OrderActionDeliveryRequest:
		return domain.EventTypeOrderDeliveryRequested
	case domain.OrderActionAcceptDelivery:
		return domain.EventTypeOrderDelivered
	case domain.OrderActionRejectDelivery:
		return domain.EventTypeOrderDeliveryRejected
	case domain.OrderActionReturnAmount:
		return domain.EventTypeOrderAmountReturned
	}
	return "order." + string(action)
}

// Get returns an order visible to the actor.
func (uc *OrderUseCase) Get(ctx context.Context, actor domain.Actor, id string) (*domain.Order, error) {
	order, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !order.CanView(actor) {
		return nil, domain.ErrNotOrderParticipant
	}

	return order, nil
}

// ListOrdersInput represents input for listing orders.
type ListOrdersInput struct {
	As     domain.OrderParty
	Limit  int
	Offset int
}

// List lists the actor's orders as buyer (default) or seller.
func (uc *OrderUseCase) List(ctx context.Context, actor domain.Actor, input ListOrdersInput) ([]*domain.Order, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)

	switch input.As {
	case domain.PartySeller:
		return uc.orderRepo.ListBySeller(ctx, actor.ID, limit, offset)
	case domain.PartyBuyer, "":
		return uc.orderRepo.ListByBuyer(ctx, actor.ID, limit, offset)
	default:
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrInvalidRequest, input.As)
	}
}
