package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap/zaptest"
)

func TestLoggingMiddleware(t *testing.T) {
	logger := zaptest.NewLogger(t)
	var called bool
	handler := loggingMiddleware(logger, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		called = true
		w.WriteHeader(http.StatusAccepted)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if !called {
		t.Fatalf("expected handler to be called")
	}
	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected status 202, got %d", rec.Code)
	}
}

func TestRecoveryMiddleware(t *testing.T) {
	logger := zaptest.NewLogger(t)
	handler := recoveryMiddleware(logger, http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(errors.New("boom"))
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 after panic, got %d", rec.Code)
	}
}

func TestResponseRecorderWriteHeader(t *testing.T) {
	underlying := httptest.NewRecorder()
	rec := &responseRecorder{ResponseWriter: underlying}

	rec.WriteHeader(http.StatusTeapot)

	if rec.status != http.StatusTeapot {
		t.Fatalf("expected status to be recorded")
	}
	if underlying.Code != http.StatusTeapot {
		t.Fatalf("expected status to propagate to ResponseWriter")
	}
}

func TestWithRateLimiterOptionAppliesLimiter(t *testing.T) {
	router := setupTestRouter(t, WithRateLimiter(&staticLimiter{allow: false}))

	rec := serve(router, http.MethodGet, "/api/health")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected rate limiter to block request, got %d", rec.Code)
	}
}

func TestWithRateLimitDisablesLimiterWhenZero(t *testing.T) {
	router := setupTestRouter(t, WithRateLimiter(&staticLimiter{allow: false}), WithRateLimit(0, 0))

	rec := serve(router, http.MethodGet, "/api/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected limiter to be disabled, got %d", rec.Code)
	}
}

func TestWithRateLimitEnforcesLimit(t *testing.T) {
	router := setupTestRouter(t, WithRateLimit(1, 1))

	if rec := serve(router, http.MethodGet, "/api/health"); rec.Code != http.StatusOK {
		t.Fatalf("expected first request to succeed, got %d", rec.Code)
	}
	if rec := serve(router, http.MethodGet, "/api/health"); rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected rate limiter to block second request, got %d", rec.Code)
	}
}

func TestWithMetricsCountsRequests(t *testing.T) {
	metrics := NewMetrics()
	router := setupTestRouter(t, WithMetrics(metrics))

	serve(router, http.MethodGet, "/api/settings")
	serve(router, http.MethodGet, "/api/settings")
	serve(router, http.MethodGet, "/api/unknown")

	if got := testutil.ToFloat64(metrics.requests.WithLabelValues("GET", "GET /api/settings", "200")); got != 2 {
		t.Fatalf("expected 2 settings requests, got %v", got)
	}
	if got := testutil.ToFloat64(metrics.requests.WithLabelValues("GET", "unmatched", "404")); got != 1 {
		t.Fatalf("expected 1 unmatched request, got %v", got)
	}
}

func TestWithMetricsIgnoresEnclosingPattern(t *testing.T) {
	metrics := NewMetrics()
	root := http.NewServeMux()
	root.Handle("/api/", setupTestRouter(t, WithMetrics(metrics)))

	if rec := serve(root, http.MethodOptions, "/api/settings"); rec.Code != http.StatusNoContent {
		t.Fatalf("expected status 204 for preflight, got %d", rec.Code)
	}
	serve(root, http.MethodGet, "/api/settings")

	if got := testutil.ToFloat64(metrics.requests.WithLabelValues("OPTIONS", "unmatched", "204")); got != 1 {
		t.Fatalf("expected preflight labelled unmatched, got %v", got)
	}
	if got := testutil.ToFloat64(metrics.requests.WithLabelValues("OPTIONS", "/api/", "204")); got != 0 {
		t.Fatalf("expected no preflight labelled with enclosing pattern, got %v", got)
	}
	if got := testutil.ToFloat64(metrics.requests.WithLabelValues("GET", "GET /api/settings", "200")); got != 1 {
		t.Fatalf("expected settings request labelled with its route, got %v", got)
	}
}

func TestMetricsHandlerExposesCounters(t *testing.T) {
	metrics := NewMetrics()
	router := setupTestRouter(t, WithMetrics(metrics))
	serve(router, http.MethodGet, "/api/health")

	rec := serve(metrics.Handler(), http.MethodGet, "/metrics")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "coffishop_settings_http_requests_total") {
		t.Fatalf("expected request counter in exposition")
	}
}
