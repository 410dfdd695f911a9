package usecase

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/bdCalling-Sdt-hub/trade-connect-backend-globetrotter-sub000/internal/domain"
	"github.com/bdCalling-Sdt-hub/trade-connect-backend-globetrotter-sub000/internal/infrastructure/metrics"
)

// AccountUseCase handles registration, verification, login and account reads.
type AccountUseCase struct {
	txManager   TransactionManager
	retrier     Retrier
	accountRepo AccountRepository
	cache       Cache
	mailer      Mailer
	tokens      TokenIssuer
	idGen       IDGenerator
	events      recorder
	otpTTL      time.Duration
	metrics     *metrics.Metrics
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(
	txManager TransactionManager,
	retrier Retrier,
	accountRepo AccountRepository,
	outboxRepo OutboxRepository,
	auditRepo AuditRepository,
	cache Cache,
	mailer Mailer,
	tokens TokenIssuer,
	idGen IDGenerator,
	otpTTL time.Duration,
	metrics *metrics.Metrics,
) *AccountUseCase {
	if otpTTL <= 0 {
		otpTTL = DefaultOTPTTL
	}

	return &AccountUseCase{
		txManager:   txManager,
		retrier:     retrier,
		accountRepo: accountRepo,
		cache:       cache,
		mailer:      mailer,
		tokens:      tokens,
		idGen:       idGen,
		events:      recorder{outboxRepo: outboxRepo, auditRepo: auditRepo, idGen: idGen},
		otpTTL:      otpTTL,
		metrics:     metrics,
	}
}

// RegisterInput represents input for creating an account.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// Register creates an unverified account with a zero balance and emails a
// verification code. The account is returned even when the mail cannot be
// sent; the caller then asks for a new code with ResendOTP.
func (uc *AccountUseCase) Register(ctx context.Context, input RegisterInput) (*domain.Account, error) {
	if err := domain.ValidateName(input.Name); err != nil {
		return nil, err
	}
	if err := domain.ValidateEmail(input.Email); err != nil {
		return nil, err
	}
	if err := domain.ValidatePassword(input.Password); err != nil {
		return nil, err
	}

	email := domain.NormalizeEmail(input.Email)

	_, err := uc.accountRepo.GetByEmail(ctx, email)
	if err == nil {
		return nil, domain.ErrEmailTaken
	}
	if !errors.Is(err, domain.ErrAccountNotFound) {
		return nil, err
	}

	hash, err := hashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	account := &domain.Account{
		ID:           uc.idGen.Generate(),
		Name:         input.Name,
		Email:        email,
		PasswordHash: hash,
		Balance:      decimal.Zero,
		Role:         domain.RoleUser,
		Privacy:      domain.PrivacyPublic,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = inTx(ctx, uc.txManager, uc.retrier, func(ctx context.Context, tx Transaction) error {
		if err := uc.accountRepo.Create(ctx, tx, account); err != nil {
			return err
		}

		if err := uc.events.notify(ctx, tx, domain.AggregateTypeAccount, account.ID, domain.EventTypeAccountRegistered,
			fmt.Sprintf("Welcome, %s", account.Name),
			[]string{account.ID},
			nil,
			now,
		); err != nil {
			return err
		}

		return uc.events.audit(ctx, tx, account.ID, domain.AuditActionAccountRegister, "account", account.ID, nil, account.Actor(), now)
	})
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.AccountsRegistered.Inc()
	}

	if err := uc.sendOTP(ctx, account); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).
			Str("account_id", account.ID).
			Msg("verification code not delivered, account must request a new one")
	}

	return redact(account), nil
}

// Verify marks the account verified when code matches the last code sent.
func (uc *AccountUseCase) Verify(ctx context.Context, email, code string) (*domain.Account, error) {
	email = domain.NormalizeEmail(email)

	account, err := uc.accountRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if account.Verified {
		return nil, domain.ErrAlreadyVerified
	}

	stored, err := uc.cache.Get(ctx, otpKeyPrefix+email)
	if errors.Is(err, ErrCacheMiss) {
		return nil, domain.ErrInvalidOTP
	}
	if err != nil {
		return nil, err
	}

	if subtle.ConstantTimeCompare([]byte(stored), []byte(code)) != 1 {
		return nil, domain.ErrInvalidOTP
	}

	now := time.Now().UTC()
	if err := uc.accountRepo.MarkVerified(ctx, account.ID, now); err != nil {
		return nil, err
	}

	_ = uc.cache.Delete(ctx, otpKeyPrefix+email)

	account.Verified = true
	account.UpdatedAt = now

	return redact(account), nil
}

// ResendOTP issues a fresh verification code for an unverified account.
func (uc *AccountUseCase) ResendOTP(ctx context.Context, email string) error {
	account, err := uc.accountRepo.GetByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		return err
	}

	if account.Verified {
		return domain.ErrAlreadyVerified
	}

	return uc.sendOTP(ctx, account)
}

func (uc *AccountUseCase) sendOTP(ctx context.Context, account *domain.Account) error {
	code, err := generateOTP()
	if err != nil {
		return err
	}

	if err := uc.cache.Set(ctx, otpKeyPrefix+account.Email, code, uc.otpTTL); err != nil {
		return fmt.Errorf("store verification code: %w", err)
	}

	body := fmt.Sprintf("Hello %s,\n\nYour verification code is %s. It expires in %s.\n", account.Name, code, uc.otpTTL)
	if err := uc.mailer.Send(ctx, account.Email, "Verify your account", body); err != nil {
		return fmt.Errorf("send verification code: %w", err)
	}

	return nil
}

// LoginResult is a signed session for an account.
type LoginResult struct {
	Token   string
	Account *domain.Account
}

// Login checks credentials of a verified account and issues a session token.
func (uc *AccountUseCase) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	account, err := uc.accountRepo.GetByEmail(ctx, domain.NormalizeEmail(email))
	if errors.Is(err, domain.ErrAccountNotFound) {
		uc.recordAuth("invalid_credentials")
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := verifyPassword(account.PasswordHash, password); err != nil {
		uc.recordAuth("invalid_credentials")
		return nil, domain.ErrInvalidCredentials
	}

	if !account.Verified {
		uc.recordAuth("not_verified")
		return nil, domain.ErrAccountNotVerified
	}

	token, err := uc.tokens.Generate(account.ID, account.Email, account.Role)
	if err != nil {
		return nil, err
	}

	uc.recordAuth("success")

	return &LoginResult{Token: token, Account: redact(account)}, nil
}

func (uc *AccountUseCase) recordAuth(status string) {
	if uc.metrics != nil {
		uc.metrics.AuthAttempts.WithLabelValues(status).Inc()
	}
}

// Me returns the actor's own account including balance.
func (uc *AccountUseCase) Me(ctx context.Context, actor domain.Actor) (*domain.Account, error) {
	account, err := uc.accountRepo.GetByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	return redact(account), nil
}

// ListAccountsInput represents input for listing accounts.
type ListAccountsInput struct {
	Limit  int
	Offset int
}

// ListAccounts lists accounts with pagination. Admin only.
func (uc *AccountUseCase) ListAccounts(ctx context.Context, actor domain.Actor, input ListAccountsInput) ([]*domain.Account, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrInsufficientRole
	}

	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)

	accounts, err := uc.accountRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	for _, a := range accounts {
		redact(a)
	}

	return accounts, nil
}

// redact drops the password hash before an account leaves the use case.
func redact(a *domain.Account) *domain.Account {
	a.PasswordHash = ""
	return a
}

// hashPassword hashes a password using bcrypt
func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// verifyPassword verifies a password against a hash
func verifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

// generateOTP returns a uniformly random 6-digit code.
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
