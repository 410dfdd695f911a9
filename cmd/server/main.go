package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	httpAdapter "github.com/bdCalling-Sdt-hub/trade-connect-backend-globetrotter-sub000/internal/adapter/http"
	"github.com/bdCalling-Sdt-hub/trade-connect-backend-globetrotter-sub000/internal/adapter/http/handler"
	"github.com/bdCalling-Sdt-hub/trade-connect-backend-globetrotter-sub000/internal/adapter/http/middleware"
	postgresRepo "github.com/bdCalling-Sdt-hub/trade-connect-backend-globetrotter-sub000/internal/adapter/repository/postgres"
	redisRepo "github.com/bdCalling-Sdt-hub/trade-connect-backend-globetrotter-sub000/internal/adapter/repository/redis"
	"github.com/bdCalling-Sdt-hub/trade-connect-backend-globetrotter-sub000/internal/adapter/websocket"
	"github.com/bdCalling-Sdt-hub/trade-connect-backend-globetrotter-sub000/internal/infrastructure/auth"
	"github.com/bdCalling-Sdt-hub/trade-connect-backend-globetrotter-sub000/internal/infrastructure/config"
	"github.com/bdCalling-Sdt-hub/trade-connect-backend-globetrotter-sub000/internal/infrastructure/eventpublisher"
	"github.com/bdCalling-Sdt-hub/trade-connect-backend-globetrotter-sub000/internal/infrastructure/logger"
	"github.com/bdCalling-Sdt-hub/trade-connect-backend-globetrotter-sub000/internal/infrastructure/mailer"
	"github.com/bdCalling-Sdt-hub/trade-connect-backend-globetrotter-sub000/internal/infrastructure/metrics"
	"github.com/bdCalling-Sdt-hub/trade-connect-backend-globetrotter-sub000/internal/infrastructure/postgres"
	"github.com/bdCalling-Sdt-hub/trade-connect-backend-globetrotter-sub000/internal/infrastructure/redis"
	"github.com/bdCalling-Sdt-hub/trade-connect-backend-globetrotter-sub000/internal/usecase"
)

// limiterIdleTimeout is how long an idle client keeps its rate limiter.
const limiterIdleTimeout = 10 * time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	feeRate, err := cfg.FeeRate()
	if err != nil {
		return err
	}

	if cfg.RunMigrations {
		if err := postgres.NewMigrator(cfg.DatabaseURL, cfg.MigrationsPath, log).Up(); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}
	}

	// Connect to PostgreSQL
	pool, err := postgres.NewPoolWithConfig(ctx, postgres.PoolConfig{
		DatabaseURL:      cfg.DatabaseURL,
		MaxConns:         cfg.DatabaseMaxConns,
		MinConns:         cfg.DatabaseMinConns,
		StatementTimeout: cfg.DatabaseTimeout,
	})
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, redis.ClientConfig{
		URL:            cfg.RedisURL,
		ConnectTimeout: cfg.DatabaseTimeout,
		Logger:         log,
	})
	if err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	retrier := postgresRepo.NewRetrier(log)
	accountRepo := postgresRepo.NewAccountRepository(pool)
	entryRepo := postgresRepo.NewEntryRepository(pool)
	ledgerRepo := postgresRepo.NewLedgerRepository(pool)
	loveRequestRepo := postgresRepo.NewLoveRequestRepository(pool)
	productRepo := postgresRepo.NewProductRepository(pool)
	orderRepo := postgresRepo.NewOrderRepository(pool)
	notificationRepo := postgresRepo.NewNotificationRepository(pool)
	outboxRepo := postgresRepo.NewOutboxRepository(pool)
	auditRepo := postgresRepo.NewAuditRepository(pool)
	idGen := postgresRepo.NewULIDGenerator()

	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	cache := redisRepo.NewCache(redisClient)
	jwt := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)
	hub := websocket.NewHub(log, m, originChecker(cfg.WSAllowedOrigins))
	defer hub.Close()

	// Initialize use cases
	accountUC := usecase.NewAccountUseCase(txManager, retrier, accountRepo, outboxRepo, auditRepo,
		cache, newMailer(cfg, log), jwt, idGen, cfg.OTPTTL, m)
	walletUC := usecase.NewWalletUseCase(txManager, retrier, accountRepo, entryRepo, outboxRepo, auditRepo, idGen, m)
	loveRequestUC := usecase.NewLoveRequestUseCase(txManager, retrier, accountRepo, entryRepo, loveRequestRepo,
		outboxRepo, auditRepo, idGen, m)
	productUC := usecase.NewProductUseCase(productRepo, idGen)
	orderUC := usecase.NewOrderUseCase(txManager, retrier, accountRepo, entryRepo, productRepo, orderRepo,
		outboxRepo, auditRepo, idGen, feeRate, m)
	reconciliationUC := usecase.NewReconciliationUseCase(ledgerRepo)
	notificationUC := usecase.NewNotificationUseCase(notificationRepo, hub, log, m)
	auditUC := usecase.NewAuditUseCase(auditRepo)

	publisher := eventpublisher.NewEventPublisher(eventpublisher.Config{
		OutboxRepo: outboxRepo,
		Publisher:  notificationUC,
		Logger:     log,
		Metrics:    m,
		BatchSize:  cfg.OutboxBatchSize,
		Interval:   cfg.OutboxPollInterval,
		Retention:  cfg.OutboxRetention,
	})

	authLimiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, m)

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		Logger:           log,
		Metrics:          m,
		MetricsHandler:   promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		TokenVerifier:    jwt,
		IdempotencyStore: idempotencyStore,
		IdempotencyTTL:   cfg.IdempotencyTTL,
		AuthRateLimiter:  authLimiter,

		HealthHandler: handler.NewHealthHandler(pool, handler.PingerFunc(func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		})),
		AuthHandler:         handler.NewAuthHandler(accountUC),
		AccountHandler:      handler.NewAccountHandler(accountUC),
		WalletHandler:       handler.NewWalletHandler(walletUC),
		EntryHandler:        handler.NewEntryHandler(walletUC),
		LoveRequestHandler:  handler.NewLoveRequestHandler(loveRequestUC),
		ProductHandler:      handler.NewProductHandler(productUC),
		OrderHandler:        handler.NewOrderHandler(orderUC),
		NotificationHandler: handler.NewNotificationHandler(notificationUC, hub),
		LedgerHandler:       handler.NewLedgerHandler(reconciliationUC),
		AuditHandler:        handler.NewAuditHandler(auditUC),
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	go func() {
		if err := publisher.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error().Err(err).Msg("event publisher stopped")
		}
	}()

	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				authLimiter.CleanupLimiters(limiterIdleTimeout)
			}
		}
	}()

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info().Msg("server stopped")
	return nil
}

// newMailer sends over SMTP when a host is configured and logs otherwise.
func newMailer(cfg *config.Config, log zerolog.Logger) usecase.Mailer {
	if cfg.SMTPHost == "" {
		log.Warn().Msg("SMTP_HOST not set, verification codes are written to the log")
		return mailer.NewLogMailer(log)
	}

	return mailer.NewSMTPMailer(mailer.Config{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.MailFrom,
	})
}

// originChecker accepts websocket upgrades from the listed origins. Requests
// without an Origin header come from non-browser clients and are accepted.
func originChecker(allowed []string) func(*http.Request) bool {
	if len(allowed) == 0 {
		return nil
	}

	set := make(map[string]struct{}, len(allowed))
	for _, origin := range allowed {
		set[strings.ToLower(strings.TrimRight(strings.TrimSpace(origin), "/"))] = struct{}{}
	}

	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		u, err := url.Parse(origin)
		if err != nil || u.Host == "" {
			return false
		}
		_, ok := set[strings.ToLower(u.Scheme+"://"+u.Host)]
		return ok
	}
}
