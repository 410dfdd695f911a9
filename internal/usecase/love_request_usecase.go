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

// LoveRequestUseCase handles the request/accept/reject workflow.
type LoveRequestUseCase struct {
	txManager   TransactionManager
	retrier     Retrier
	accountRepo AccountRepository
	requestRepo LoveRequestRepository
	ledger      ledgerWriter
	events      recorder
	metrics     *metrics.Metrics
}

// NewLoveRequestUseCase creates a new LoveRequestUseCase.
func NewLoveRequestUseCase(
	txManager TransactionManager,
	retrier Retrier,
	accountRepo AccountRepository,
	entryRepo LedgerEntryRepository,
	requestRepo LoveRequestRepository,
	outboxRepo OutboxRepository,
	auditRepo AuditRepository,
	idGen IDGenerator,
	metrics *metrics.Metrics,
) *LoveRequestUseCase {
	return &LoveRequestUseCase{
		txManager:   txManager,
		retrier:     retrier,
		accountRepo: accountRepo,
		requestRepo: requestRepo,
		ledger:      ledgerWriter{accountRepo: accountRepo, entryRepo: entryRepo, idGen: idGen},
		events:      recorder{outboxRepo: outboxRepo, auditRepo: auditRepo, idGen: idGen},
		metrics:     metrics,
	}
}

// CreateLoveRequestInput represents input for asking another user for Love.
type CreateLoveRequestInput struct {
	TargetID string
	Amount   decimal.Decimal
}

// Create opens a pending request asking the target to send Amount to the actor.
func (uc *LoveRequestUseCase) Create(ctx context.Context, actor domain.Actor, input CreateLoveRequestInput) (*domain.LoveRequest, error) {
	now := time.Now().UTC()
	request := &domain.LoveRequest{
		ID:          uc.ledger.idGen.Generate(),
		RequesterID: actor.ID,
		TargetID:    input.TargetID,
		Amount:      input.Amount,
		Status:      domain.LoveRequestPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := request.Validate(); err != nil {
		return nil, err
	}

	requester, err := uc.accountRepo.GetByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	if _, err := uc.accountRepo.GetByID(ctx, input.TargetID); err != nil {
		return nil, err
	}

	err = inTx(ctx, uc.txManager, uc.retrier, func(ctx context.Context, tx Transaction) error {
		if err := uc.requestRepo.Create(ctx, tx, request); err != nil {
			return err
		}

		if err := uc.events.notify(ctx, tx, domain.AggregateTypeLoveRequest, request.ID, domain.EventTypeLoveRequestCreated,
			fmt.Sprintf("%s requested %s Love from you", requester.Name, request.Amount),
			[]string{request.TargetID},
			map[string]any{"requester_id": request.RequesterID, "amount": request.Amount.String()},
			now,
		); err != nil {
			return err
		}

		return uc.events.audit(ctx, tx, actor.ID, domain.AuditActionLoveRequestCreate, "love_request", request.ID, nil, request, now)
	})
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.LoveRequests.WithLabelValues("created").Inc()
	}

	return request, nil
}

// AcceptLoveRequestInput represents the target's payment details.
// Zero Amount means the requested amount; zero TotalLove means Amount.
type AcceptLoveRequestInput struct {
	Amount        decimal.Decimal
	TotalLove     decimal.Decimal
	PaymentMethod string
}

// Accept pays a pending request: the target is debited and the requester
// credited in the same transaction that marks the request accepted.
// It returns the target's ledger entry.
func (uc *LoveRequestUseCase) Accept(ctx context.Context, actor domain.Actor, id string, input AcceptLoveRequestInput) (*domain.LedgerEntry, error) {
	if err := domain.ValidatePaymentMethod(input.PaymentMethod); err != nil {
		return nil, err
	}

	start := time.Now()

	var sent *domain.LedgerEntry
	err := inTx(ctx, uc.txManager, uc.retrier, func(ctx context.Context, tx Transaction) error {
		now := time.Now().UTC()

		request, err := uc.requestRepo.GetByIDForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}

		if err := request.CanDecide(actor.ID); err != nil {
			return err
		}

		amount := input.Amount
		if amount.IsZero() {
			amount = request.Amount
		}
		if !amount.Equal(request.Amount) {
			return fmt.Errorf("%w: amount must equal the requested %s", domain.ErrInvalidAmount, request.Amount)
		}

		love := input.TotalLove
		if love.IsZero() {
			love = amount
		}
		if err := domain.ValidateLoveAmount(love, amount); err != nil {
			return err
		}

		accounts, err := uc.ledger.lock(ctx, tx, request.TargetID, request.RequesterID)
		if err != nil {
			return err
		}
		target := accounts[request.TargetID]

		if err := target.ValidateDebit(amount); err != nil {
			return err
		}

		sent, _, err = uc.ledger.payPeer(ctx, tx, request.TargetID, request.RequesterID, amount, love,
			input.PaymentMethod, domain.ReferenceLoveRequest, request.ID, "", now)
		if err != nil {
			return err
		}

		before := *request
		if err := uc.requestRepo.UpdateStatus(ctx, tx, request.ID, domain.LoveRequestPending, domain.LoveRequestAccepted, sent.ID, now); err != nil {
			return err
		}
		request.Status = domain.LoveRequestAccepted
		request.LedgerEntryID = sent.ID
		request.UpdatedAt = now

		if err := uc.events.notify(ctx, tx, domain.AggregateTypeLoveRequest, request.ID, domain.EventTypeLoveRequestAccepted,
			fmt.Sprintf("%s accepted your request and sent %s Love", target.Name, love),
			[]string{request.RequesterID},
			map[string]any{"entry_id": sent.ID, "total_love": love.String()},
			now,
		); err != nil {
			return err
		}

		return uc.events.audit(ctx, tx, actor.ID, domain.AuditActionLoveRequestAccept, "love_request", request.ID, &before, request, now)
	})
	if err != nil {
		if uc.metrics != nil && errors.Is(err, domain.InsufficientBalance) {
			uc.metrics.BalanceRejections.WithLabelValues("love_request").Inc()
		}
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.LoveRequests.WithLabelValues("accepted").Inc()
		uc.metrics.Transfers.Inc()
		uc.metrics.TransferAmount.Observe(sent.Amount.InexactFloat64())
		uc.metrics.LedgerEntriesTotal.WithLabelValues(string(domain.EntryStatusSend)).Inc()
		uc.metrics.LedgerEntriesTotal.WithLabelValues(string(domain.EntryStatusReceived)).Inc()
		uc.metrics.OperationDuration.WithLabelValues("love_request_accept").Observe(time.Since(start).Seconds())
	}

	return sent, nil
}

// Reject declines a pending request. No balance changes.
func (uc *LoveRequestUseCase) Reject(ctx context.Context, actor domain.Actor, id string) (*domain.LoveRequest, error) {
	var request *domain.LoveRequest
	err := inTx(ctx, uc.txManager, uc.retrier, func(ctx context.Context, tx Transaction) error {
		now := time.Now().UTC()

		var err error
		request, err = uc.requestRepo.GetByIDForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}

		if err := request.CanDecide(actor.ID); err != nil {
			return err
		}

		before := *request
		if err := uc.requestRepo.UpdateStatus(ctx, tx, request.ID, domain.LoveRequestPending, domain.LoveRequestRejected, "", now); err != nil {
			return err
		}
		request.Status = domain.LoveRequestRejected
		request.UpdatedAt = now

		if err := uc.events.notify(ctx, tx, domain.AggregateTypeLoveRequest, request.ID, domain.EventTypeLoveRequestRejected,
			fmt.Sprintf("Your request for %s Love was declined", request.Amount),
			[]string{request.RequesterID},
			nil,
			now,
		); err != nil {
			return err
		}

		return uc.events.audit(ctx, tx, actor.ID, domain.AuditActionLoveRequestReject, "love_request", request.ID, &before, request, now)
	})
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.LoveRequests.WithLabelValues("rejected").Inc()
	}

	return request, nil
}

// Get returns a request visible to the actor.
func (uc *LoveRequestUseCase) Get(ctx context.Context, actor domain.Actor, id string) (*domain.LoveRequest, error) {
	request, err := uc.requestRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !request.IsParticipant(actor.ID) && !actor.IsAdmin() {
		return nil, domain.ErrNotRequestParticipant
	}

	return request, nil
}

// LoveRequestDirection selects requests sent or received by the actor.
type LoveRequestDirection string

const (
	LoveRequestsIncoming LoveRequestDirection = "incoming"
	LoveRequestsOutgoing LoveRequestDirection = "outgoing"
)

// ListLoveRequestsInput represents input for listing love requests.
type ListLoveRequestsInput struct {
	Direction LoveRequestDirection
	Limit     int
	Offset    int
}

// List lists the actor's incoming requests by default, or outgoing ones.
func (uc *LoveRequestUseCase) List(ctx context.Context, actor domain.Actor, input ListLoveRequestsInput) ([]*domain.LoveRequest, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)

	switch input.Direction {
	case LoveRequestsOutgoing:
		return uc.requestRepo.ListOutgoing(ctx, actor.ID, limit, offset)
	case LoveRequestsIncoming, "":
		return uc.requestRepo.ListIncoming(ctx, actor.ID, limit, offset)
	default:
		return nil, fmt.Errorf("%w: unknown direction %q", domain.ErrInvalidRequest, input.Direction)
	}
}
