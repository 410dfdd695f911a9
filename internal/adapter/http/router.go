package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/bdCalling-Sdt-hub/trade-connect-backend-globetrotter-sub000/internal/adapter/http/handler"
	"github.com/bdCalling-Sdt-hub/trade-connect-backend-globetrotter-sub000/internal/adapter/http/middleware"
	"github.com/bdCalling-Sdt-hub/trade-connect-backend-globetrotter-sub000/internal/domain"
	"github.com/bdCalling-Sdt-hub/trade-connect-backend-globetrotter-sub000/internal/infrastructure/metrics"
	"github.com/bdCalling-Sdt-hub/trade-connect-backend-globetrotter-sub000/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	Logger         zerolog.Logger
	Metrics        *metrics.Metrics
	MetricsHandler http.Handler

	TokenVerifier    middleware.TokenVerifier
	IdempotencyStore usecase.IdempotencyStore
	IdempotencyTTL   time.Duration
	// AuthRateLimiter throttles the unauthenticated /auth routes.
	AuthRateLimiter *middleware.RateLimiter

	HealthHandler       *handler.HealthHandler
	AuthHandler         *handler.AuthHandler
	AccountHandler      *handler.AccountHandler
	WalletHandler       *handler.WalletHandler
	EntryHandler        *handler.EntryHandler
	LoveRequestHandler  *handler.LoveRequestHandler
	ProductHandler      *handler.ProductHandler
	OrderHandler        *handler.OrderHandler
	NotificationHandler *handler.NotificationHandler
	LedgerHandler       *handler.LedgerHandler
	AuditHandler        *handler.AuditHandler
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestContext)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery)
	if cfg.Metrics != nil {
		r.Use(middleware.NewMetricsMiddleware(cfg.Metrics).Wrap)
	}

	// Health endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	if cfg.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", cfg.MetricsHandler)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			if cfg.AuthRateLimiter != nil {
				r.Use(cfg.AuthRateLimiter.Limit)
			}
			r.Post("/register", cfg.AuthHandler.Register)
			r.Post("/verify", cfg.AuthHandler.Verify)
			r.Post("/resend-otp", cfg.AuthHandler.ResendOTP)
			r.Post("/login", cfg.AuthHandler.Login)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthMiddleware(cfg.TokenVerifier))
			if cfg.IdempotencyStore != nil {
				r.Use(middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL).Wrap)
			}

			r.Route("/accounts", func(r chi.Router) {
				r.Get("/me", cfg.AccountHandler.Me)
				r.With(middleware.RequireAdmin).Get("/", cfg.AccountHandler.List)
			})

			r.Route("/wallet", func(r chi.Router) {
				r.Post("/recharge", cfg.WalletHandler.Recharge)
				r.Post("/transfer", cfg.WalletHandler.Transfer)
				r.Get("/balance", cfg.WalletHandler.Balance)
				r.Get("/entries", cfg.EntryHandler.List)
				r.Get("/entries/{id}", cfg.EntryHandler.Get)
			})

			r.Route("/love-requests", func(r chi.Router) {
				r.Post("/", cfg.LoveRequestHandler.Create)
				r.Get("/", cfg.LoveRequestHandler.List)
				r.Get("/{id}", cfg.LoveRequestHandler.Get)
				r.Post("/{id}/accept", cfg.LoveRequestHandler.Accept)
				r.Post("/{id}/reject", cfg.LoveRequestHandler.Reject)
			})

			r.Route("/products", func(r chi.Router) {
				r.Post("/", cfg.ProductHandler.Create)
				r.Get("/{id}", cfg.ProductHandler.Get)
			})

			r.Route("/orders", func(r chi.Router) {
				r.Post("/", cfg.OrderHandler.Create)
				r.Get("/", cfg.OrderHandler.List)
				r.Get("/{id}", cfg.OrderHandler.Get)
				r.Post("/{id}/cancel", cfg.OrderHandler.Transition(domain.OrderActionCancel))
				r.Post("/{id}/accept", cfg.OrderHandler.Transition(domain.OrderActionAccept))
				r.Post("/{id}/delivery-request", cfg.OrderHandler.Transition(domain.OrderActionDeliveryRequest))
				r.Post("/{id}/accept-delivery", cfg.OrderHandler.Transition(domain.OrderActionAcceptDelivery))
				r.Post("/{id}/reject-delivery", cfg.OrderHandler.Transition(domain.OrderActionRejectDelivery))
				r.Post("/{id}/return-amount", cfg.OrderHandler.Transition(domain.OrderActionReturnAmount))
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", cfg.NotificationHandler.List)
				r.Get("/stream", cfg.NotificationHandler.Stream)
				r.Post("/{id}/read", cfg.NotificationHandler.MarkRead)
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin)
				r.Get("/ledger/consistency", cfg.LedgerHandler.CheckConsistency)
				r.Get("/ledger/accounts/{id}/reconcile", cfg.LedgerHandler.Reconcile)
				r.Get("/audit-logs", cfg.AuditHandler.List)
			})
		})
	})

	return r
}
