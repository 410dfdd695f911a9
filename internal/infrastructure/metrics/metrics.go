package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "lovewallet"

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Wallet metrics
	Recharges          prometheus.Counter
	RechargeAmount     prometheus.Histogram
	Transfers          prometheus.Counter
	TransferAmount     prometheus.Histogram
	BalanceRejections  *prometheus.CounterVec
	OperationDuration  *prometheus.HistogramVec
	IdempotentReplays  *prometheus.CounterVec
	LedgerEntriesTotal *prometheus.CounterVec

	// Workflow metrics
	LoveRequests     *prometheus.CounterVec
	OrderTransitions *prometheus.CounterVec
	FeesCollected    prometheus.Counter

	// Account metrics
	AccountsRegistered prometheus.Counter

	// Notification metrics
	NotificationsDelivered prometheus.Counter
	NotificationPushErrors prometheus.Counter
	OutboxPublishErrors    prometheus.Counter
	LiveConnections        prometheus.Gauge

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Authentication metrics
	AuthAttempts *prometheus.CounterVec

	// Rate limiting metrics
	RateLimitHits *prometheus.CounterVec

	// Audit metrics
	AuditLogsCreated *prometheus.CounterVec
}

// New creates all metrics and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		Recharges: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "wallet_recharges_total",
			Help:      "Total number of wallet recharges",
		}),
		RechargeAmount: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "wallet_recharge_amount",
			Help:      "Love credited per recharge",
			Buckets:   []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
		}),
		Transfers: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "wallet_transfers_total",
			Help:      "Total number of completed peer transfers, direct or through love requests",
		}),
		TransferAmount: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "wallet_transfer_amount",
			Help:      "Amount debited per peer transfer",
			Buckets:   []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
		}),
		BalanceRejections: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "wallet_insufficient_balance_total",
				Help:      "Operations rejected because the debited balance would go negative",
			},
			[]string{"operation"},
		),
		OperationDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "operation_duration_seconds",
				Help:      "Duration of balance-affecting operations including retries",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		IdempotentReplays: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "idempotent_replays_total",
				Help:      "Requests answered from a previously recorded result",
			},
			[]string{"operation"},
		),
		LedgerEntriesTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "ledger_entries_total",
				Help:      "Ledger entries written by status",
			},
			[]string{"status"},
		),

		LoveRequests: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "love_requests_total",
				Help:      "Love request lifecycle events",
			},
			[]string{"outcome"},
		),
		OrderTransitions: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "order_transitions_total",
				Help:      "Order state transitions by resulting status",
			},
			[]string{"status"},
		),
		FeesCollected: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_fees_collected",
			Help:      "Total Love collected as order fees",
		}),

		AccountsRegistered: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "accounts_registered_total",
			Help:      "Total number of registered accounts",
		}),

		NotificationsDelivered: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_delivered_total",
			Help:      "Notifications persisted for a recipient",
		}),
		NotificationPushErrors: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notification_push_errors_total",
			Help:      "Live pushes that failed and were dropped",
		}),
		OutboxPublishErrors: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "outbox_publish_errors_total",
			Help:      "Outbox events that failed to publish and stay queued",
		}),
		LiveConnections: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "notification_live_connections",
			Help:      "Open notification stream connections",
		}),

		HTTPRequests: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_duration_seconds",
				Help:      "HTTP request duration",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		AuthAttempts: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "auth_attempts_total",
				Help:      "Authentication attempts by outcome",
			},
			[]string{"status"},
		),

		RateLimitHits: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rate_limit_hits_total",
				Help:      "Total rate limit hits",
			},
			[]string{"path"},
		),

		AuditLogsCreated: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "audit_logs_total",
				Help:      "Total audit logs created",
			},
			[]string{"action", "status"},
		),
	}
}
