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

// WalletUseCase handles recharges, direct transfers and ledger reads.
type WalletUseCase struct {
	txManager   TransactionManager
	retrier     Retrier
	accountRepo AccountRepository
	entryRepo   LedgerEntryRepository
	ledger      ledgerWriter
	events      recorder
	metrics     *metrics.Metrics
}

// NewWalletUseCase creates a new WalletUseCase.
func NewWalletUseCase(
	txManager TransactionManager,
	retrier Retrier,
	accountRepo AccountRepository,
	entryRepo LedgerEntryRepository,
	outboxRepo OutboxRepository,
	auditRepo AuditRepository,
	idGen IDGenerator,
	metrics *metrics.Metrics,
) *WalletUseCase {
	return &WalletUseCase{
		txManager:   txManager,
		retrier:     retrier,
		accountRepo: accountRepo,
		entryRepo:   entryRepo,
		ledger:      ledgerWriter{accountRepo: accountRepo, entryRepo: entryRepo, idGen: idGen},
		events:      recorder{outboxRepo: outboxRepo, auditRepo: auditRepo, idGen: idGen},
		metrics:     metrics,
	}
}

// RechargeInput represents input for a wallet recharge.
type RechargeInput struct {
	Amount         decimal.Decimal
	TotalLove      decimal.Decimal
	PaymentMethod  string
	IdempotencyKey string
}

// Recharge credits the actor's wallet with TotalLove and records a recharge entry.
// Replaying an idempotency key returns the entry written the first time.
func (uc *WalletUseCase) Recharge(ctx context.Context, actor domain.Actor, input RechargeInput) (*domain.LedgerEntry, error) {
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}
	if err := domain.ValidateAmount(input.TotalLove); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidLoveAmount, err)
	}
	if err := domain.ValidatePaymentMethod(input.PaymentMethod); err != nil {
		return nil, err
	}
	if err := domain.ValidateIdempotencyKey(input.IdempotencyKey); err != nil {
		return nil, err
	}

	if existing, err := uc.replay(ctx, "recharge", actor.ID, input.IdempotencyKey, replayMatch{
		ReferenceType: domain.ReferenceRecharge,
		Amount:        input.Amount,
		TotalLove:     input.TotalLove,
	}); existing != nil || err != nil {
		return existing, err
	}

	start := time.Now()

	var entry *domain.LedgerEntry
	err := inTx(ctx, uc.txManager, uc.retrier, func(ctx context.Context, tx Transaction) error {
		now := time.Now().UTC()
		refID := uc.ledger.idGen.Generate()

		var err error
		entry, err = uc.ledger.post(ctx, tx, posting{
			AccountID:      actor.ID,
			Delta:          input.TotalLove,
			Amount:         input.Amount,
			TotalLove:      input.TotalLove,
			Status:         domain.EntryStatusRecharge,
			ReferenceType:  domain.ReferenceRecharge,
			ReferenceID:    refID,
			PaymentMethod:  input.PaymentMethod,
			IdempotencyKey: input.IdempotencyKey,
		}, now)
		if err != nil {
			return err
		}

		if err := uc.events.notify(ctx, tx, domain.AggregateTypeAccount, actor.ID, domain.EventTypeWalletRecharged,
			fmt.Sprintf("Your wallet was recharged with %s Love", input.TotalLove),
			[]string{actor.ID},
			map[string]any{"entry_id": entry.ID, "total_love": input.TotalLove.String()},
			now,
		); err != nil {
			return err
		}

		return uc.events.audit(ctx, tx, actor.ID, domain.AuditActionWalletRecharge, "ledger_entry", entry.ID, nil, entry, now)
	})
	if errors.Is(err, domain.ErrDuplicateIdempotency) {
		return uc.replay(ctx, "recharge", actor.ID, input.IdempotencyKey, replayMatch{
		ReferenceType: domain.ReferenceRecharge,
		Amount:        input.Amount,
		TotalLove:     input.TotalLove,
	})
	}
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.Recharges.Inc()
		uc.metrics.RechargeAmount.Observe(input.TotalLove.InexactFloat64())
		uc.metrics.LedgerEntriesTotal.WithLabelValues(string(domain.EntryStatusRecharge)).Inc()
		uc.metrics.OperationDuration.WithLabelValues("recharge").Observe(time.Since(start).Seconds())
	}

	return entry, nil
}

// TransferInput represents input for a direct transfer.
type TransferInput struct {
	ReceiverID     string
	Amount         decimal.Decimal
	TotalLove      decimal.Decimal
	PaymentMethod  string
	IdempotencyKey string
}

// Transfer debits the actor by Amount and credits the receiver with TotalLove.
// It returns the sender's entry.
func (uc *WalletUseCase) Transfer(ctx context.Context, actor domain.Actor, input TransferInput) (*domain.LedgerEntry, error) {
	if input.ReceiverID == actor.ID {
		return nil, domain.ErrSelfTransfer
	}
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}
	if input.TotalLove.IsZero() {
		input.TotalLove = input.Amount
	}
	if err := domain.ValidateLoveAmount(input.TotalLove, input.Amount); err != nil {
		return nil, err
	}
	if err := domain.ValidatePaymentMethod(input.PaymentMethod); err != nil {
		return nil, err
	}
	if err := domain.ValidateIdempotencyKey(input.IdempotencyKey); err != nil {
		return nil, err
	}

	if existing, err := uc.replay(ctx, "transfer", actor.ID, input.IdempotencyKey, replayMatch{
		ReferenceType:  domain.ReferenceTransfer,
		CounterpartyID: input.ReceiverID,
		Amount:         input.Amount,
		TotalLove:      input.TotalLove,
	}); existing != nil || err != nil {
		return existing, err
	}

	start := time.Now()

	var sent *domain.LedgerEntry
	err := inTx(ctx, uc.txManager, uc.retrier, func(ctx context.Context, tx Transaction) error {
		now := time.Now().UTC()

		accounts, err := uc.ledger.lock(ctx, tx, actor.ID, input.ReceiverID)
		if err != nil {
			return err
		}
		sender := accounts[actor.ID]

		if err := sender.ValidateDebit(input.Amount); err != nil {
			return err
		}

		transferID := uc.ledger.idGen.Generate()
		sent, _, err = uc.ledger.payPeer(ctx, tx, actor.ID, input.ReceiverID, input.Amount, input.TotalLove,
			input.PaymentMethod, domain.ReferenceTransfer, transferID, input.IdempotencyKey, now)
		if err != nil {
			return err
		}

		if err := uc.events.notify(ctx, tx, domain.AggregateTypeTransfer, transferID, domain.EventTypeTransferCompleted,
			fmt.Sprintf("%s sent you %s Love", sender.Name, input.TotalLove),
			[]string{input.ReceiverID},
			map[string]any{"sender_id": actor.ID, "total_love": input.TotalLove.String()},
			now,
		); err != nil {
			return err
		}

		return uc.events.audit(ctx, tx, actor.ID, domain.AuditActionWalletTransfer, "transfer", transferID, nil, sent, now)
	})
	if errors.Is(err, domain.ErrDuplicateIdempotency) {
		return uc.replay(ctx, "transfer", actor.ID, input.IdempotencyKey, replayMatch{
		ReferenceType:  domain.ReferenceTransfer,
		CounterpartyID: input.ReceiverID,
		Amount:         input.Amount,
		TotalLove:      input.TotalLove,
	})
	}
	if err != nil {
		if uc.metrics != nil && errors.Is(err, domain.InsufficientBalance) {
			uc.metrics.BalanceRejections.WithLabelValues("transfer").Inc()
		}
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.Transfers.Inc()
		uc.metrics.TransferAmount.Observe(input.Amount.InexactFloat64())
		uc.metrics.LedgerEntriesTotal.WithLabelValues(string(domain.EntryStatusSend)).Inc()
		uc.metrics.LedgerEntriesTotal.WithLabelValues(string(domain.EntryStatusReceived)).Inc()
		uc.metrics.OperationDuration.WithLabelValues("transfer").Observe(time.Since(start).Seconds())
	}

	return sent, nil
}

// replayMatch is the request an idempotency key must have been recorded for.
type replayMatch struct {
	ReferenceType  domain.ReferenceType
	CounterpartyID string
	Amount         decimal.Decimal
	TotalLove      decimal.Decimal
}

func (m replayMatch) matches(entry *domain.LedgerEntry) bool {
	return entry.ReferenceType == m.ReferenceType &&
		entry.CounterpartyID == m.CounterpartyID &&
		entry.Amount.Equal(m.Amount) &&
		entry.TotalLove.Equal(m.TotalLove)
}

// replay returns the entry already recorded under the key, or nil when the
// key is unused. A key recorded for a different request is a conflict.
func (uc *WalletUseCase) replay(ctx context.Context, operation, accountID, key string, want replayMatch) (*domain.LedgerEntry, error) {
	entry, err := uc.entryRepo.GetByIdempotencyKey(ctx, accountID, key)
	if errors.Is(err, domain.ErrEntryNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if !want.matches(entry) {
		return nil, fmt.Errorf("%w: key %q belongs to %s %s", domain.ErrIdempotencyKeyMismatch, key, entry.ReferenceType, entry.ID)
	}

	if uc.metrics != nil {
		uc.metrics.IdempotentReplays.WithLabelValues(operation).Inc()
	}

	return entry, nil
}

// ListEntriesInput represents input for listing ledger entries.
type ListEntriesInput struct {
	Limit  int
	Offset int
}

// ListEntries lists the actor's own ledger entries, newest first.
func (uc *WalletUseCase) ListEntries(ctx context.Context, actor domain.Actor, input ListEntriesInput) ([]*domain.LedgerEntry, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)
	return uc.entryRepo.ListByAccount(ctx, actor.ID, limit, offset)
}

// GetEntry returns a ledger entry owned by the actor. Admins may read any entry.
func (uc *WalletUseCase) GetEntry(ctx context.Context, actor domain.Actor, id string) (*domain.LedgerEntry, error) {
	entry, err := uc.entryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if entry.AccountID != actor.ID && !actor.IsAdmin() {
		return nil, domain.ErrEntryNotFound
	}

	return entry, nil
}

// Balance returns the actor's current balance.
func (uc *WalletUseCase) Balance(ctx context.Context, actor domain.Actor) (decimal.Decimal, error) {
	account, err := uc.accountRepo.GetByID(ctx, actor.ID)
	if err != nil {
		return decimal.Zero, err
	}
	return account.Balance, nil
}
