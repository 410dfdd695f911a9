package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bdCalling-Sdt-hub/trade-connect-backend-globetrotter-sub000/internal/domain"
)

// inTx runs fn in one transaction bounded by DefaultTransactionTimeout.
// The whole unit is retried on transient storage failures, so fn must not
// leak state between attempts.
func inTx(ctx context.Context, txManager TransactionManager, retrier Retrier, fn func(ctx context.Context, tx Transaction) error) error {
	run := func() error {
		txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
		defer cancel()

		tx, err := txManager.Begin(txCtx)
		if err != nil {
			return err
		}
		defer func() { _ = tx.Rollback(txCtx) }()

		if err := fn(txCtx, tx); err != nil {
			return err
		}

		return tx.Commit(txCtx)
	}

	if retrier == nil {
		return run()
	}

	return retrier.Retry(ctx, run)
}

// posting describes one balance mutation and the entry that records it.
type posting struct {
	AccountID      string
	CounterpartyID string
	Delta          decimal.Decimal
	Amount         decimal.Decimal
	TotalLove      decimal.Decimal
	Status         domain.EntryStatus
	ReferenceType  domain.ReferenceType
	ReferenceID    string
	PaymentMethod  string
	IdempotencyKey string
}

// ledgerWriter applies postings. Every call changes exactly one balance and
// writes exactly one entry.
type ledgerWriter struct {
	accountRepo AccountRepository
	entryRepo   LedgerEntryRepository
	idGen       IDGenerator
}

func (w ledgerWriter) post(ctx context.Context, tx Transaction, p posting, now time.Time) (*domain.LedgerEntry, error) {
	account, err := w.accountRepo.AdjustBalance(ctx, tx, p.AccountID, p.Delta, now)
	if err != nil {
		return nil, err
	}

	entry := &domain.LedgerEntry{
		ID:             w.idGen.Generate(),
		AccountID:      p.AccountID,
		CounterpartyID: p.CounterpartyID,
		ReferenceID:    p.ReferenceID,
		ReferenceType:  p.ReferenceType,
		Status:         p.Status,
		PaymentMethod:  p.PaymentMethod,
		IdempotencyKey: p.IdempotencyKey,
		Amount:         p.Amount,
		TotalLove:      p.TotalLove,
		Delta:          p.Delta,
		BalanceBefore:  account.Balance.Sub(p.Delta),
		BalanceAfter:   account.Balance,
		AccountVersion: account.Version,
		CreatedAt:      now,
	}

	if err := w.entryRepo.Create(ctx, tx, entry); err != nil {
		return nil, err
	}

	return entry, nil
}

// lock takes row locks on the given accounts in ascending id order and
// returns them keyed by id.
func (w ledgerWriter) lock(ctx context.Context, tx Transaction, ids ...string) (map[string]*domain.Account, error) {
	seen := make(map[string]bool, len(ids))
	unique := make([]string, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}
	sort.Strings(unique)

	accounts, err := w.accountRepo.GetByIDsForUpdate(ctx, tx, unique)
	if err != nil {
		return nil, err
	}

	if len(accounts) != len(unique) {
		return nil, domain.ErrAccountNotFound
	}

	m := make(map[string]*domain.Account, len(accounts))
	for _, a := range accounts {
		m[a.ID] = a
	}

	return m, nil
}

// payPeer moves amount out of from and credits love to to.
func (w ledgerWriter) payPeer(
	ctx context.Context,
	tx Transaction,
	from, to string,
	amount, love decimal.Decimal,
	method string,
	refType domain.ReferenceType,
	refID string,
	idempotencyKey string,
	now time.Time,
) (sent, received *domain.LedgerEntry, err error) {
	sent, err = w.post(ctx, tx, posting{
		AccountID:      from,
		CounterpartyID: to,
		Delta:          amount.Neg(),
		Amount:         amount,
		TotalLove:      love,
		Status:         domain.EntryStatusSend,
		ReferenceType:  refType,
		ReferenceID:    refID,
		PaymentMethod:  method,
		IdempotencyKey: idempotencyKey,
	}, now)
	if err != nil {
		return nil, nil, err
	}

	received, err = w.post(ctx, tx, posting{
		AccountID:      to,
		CounterpartyID: from,
		Delta:          love,
		Amount:         amount,
		TotalLove:      love,
		Status:         domain.EntryStatusReceived,
		ReferenceType:  refType,
		ReferenceID:    refID,
		PaymentMethod:  method,
	}, now)
	if err != nil {
		return nil, nil, err
	}

	return sent, received, nil
}

// recorder writes the outbox event and audit row that accompany a mutation.
type recorder struct {
	outboxRepo OutboxRepository
	auditRepo  AuditRepository
	idGen      IDGenerator
}

func (r recorder) notify(
	ctx context.Context,
	tx Transaction,
	aggregateType, aggregateID, eventType, message string,
	recipients []string,
	fields map[string]any,
	now time.Time,
) error {
	if r.outboxRepo == nil || len(recipients) == 0 {
		return nil
	}

	event := domain.NewOutboxEvent(r.idGen.Generate(), aggregateType, aggregateID, eventType, message, recipients, fields, now)

	return r.outboxRepo.Create(ctx, tx, event)
}

func (r recorder) audit(
	ctx context.Context,
	tx Transaction,
	actorID string,
	action domain.AuditAction,
	resourceType, resourceID string,
	before, after any,
	now time.Time,
) error {
	if r.auditRepo == nil {
		return nil
	}

	if actorID == "" {
		actorID = systemActor
	}

	log := &domain.AuditLog{
		ID:           r.idGen.Generate(),
		UserID:       actorID,
		Action:       string(action),
		ResourceType: resourceType,
		ResourceID:   resourceID,
		RequestID:    domain.RequestIDFromContext(ctx),
		BeforeState:  domain.MarshalState(before),
		AfterState:   domain.MarshalState(after),
		Status:       string(domain.AuditStatusSuccess),
		CreatedAt:    now,
	}

	return r.auditRepo.CreateTx(ctx, tx, log)
}
