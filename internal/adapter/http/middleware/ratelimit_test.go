package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/bdCalling-Sdt-hub/trade-connect-backend-globetrotter-sub000/internal/infrastructure/metrics"
)

func TestRateLimiter_LimitsPerClient(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	rl := NewRateLimiter(1, 1, m)
	handler := rl.Limit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	send := func(addr string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	if got := send("1.2.3.4:1000"); got != http.StatusOK {
		t.Fatalf("first request: expected 200, got %d", got)
	}
	if got := send("1.2.3.4:2000"); got != http.StatusTooManyRequests {
		t.Fatalf("second request from same host: expected 429, got %d", got)
	}
	if got := send("5.6.7.8:1000"); got != http.StatusOK {
		t.Fatalf("other client: expected 200, got %d", got)
	}

	if got := testutil.ToFloat64(m.RateLimitHits.WithLabelValues("/api/v1/auth/login")); got != 1 {
		t.Fatalf("expected one rate limit hit, got %v", got)
	}
}

func TestRateLimiter_CleanupLimiters(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(10, 10, nil)
	rl.now = func() time.Time { return now }

	rl.getLimiter("10.0.0.1")
	now = now.Add(time.Hour)
	rl.getLimiter("10.0.0.2")

	rl.CleanupLimiters(30 * time.Minute)

	if rl.Len() != 1 {
		t.Fatalf("expected only the recent client to remain, got %d", rl.Len())
	}
}
