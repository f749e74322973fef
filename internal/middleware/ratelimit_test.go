package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sume/estra/internal/config"
)

func TestLimiter_BurstAndRefill(t *testing.T) {
	l := newLimiter(60, 2) // 1 token/s, burst 2
	t0 := time.Now()

	assert.True(t, l.allow("k", t0))
	assert.True(t, l.allow("k", t0))
	assert.False(t, l.allow("k", t0), "burst exhausted")

	// One second refills exactly one token.
	assert.True(t, l.allow("k", t0.Add(time.Second)))
	assert.False(t, l.allow("k", t0.Add(time.Second)))
}

func TestLimiter_KeysAreIndependent(t *testing.T) {
	l := newLimiter(60, 1)
	t0 := time.Now()

	assert.True(t, l.allow("a", t0))
	assert.False(t, l.allow("a", t0))
	assert.True(t, l.allow("b", t0), "a full bucket for a new client")
}

func TestLimiter_SweepDropsIdleClients(t *testing.T) {
	l := newLimiter(60, 1)
	t0 := time.Now()

	l.allow("old", t0)
	l.allow("recent", t0.Add(6*time.Minute))

	l.mu.Lock()
	l.sweep(t0.Add(6 * time.Minute))
	l.mu.Unlock()

	l.mu.Lock()
	_, oldKept := l.clients["old"]
	_, recentKept := l.clients["recent"]
	l.mu.Unlock()
	assert.False(t, oldKept)
	assert.True(t, recentKept)
}

func rateLimited(t *testing.T, cfg config.RateLimitConfig, path, remote, apiKey string) int {
	t.Helper()
	h := RateLimit(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.RemoteAddr = remote
	if apiKey != "" {
		req.Header.Set("X-API-Key", apiKey)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec.Code
}

func TestRateLimit_DeniesAfterBurst(t *testing.T) {
	cfg := config.RateLimitConfig{Enabled: true, RequestsPerMin: 60, BurstSize: 2}
	h := RateLimit(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/curve", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
		if rec.Code == http.StatusTooManyRequests {
			assert.Equal(t, "60", rec.Header().Get("Retry-After"))
		}
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRateLimit_ExemptPaths(t *testing.T) {
	// Burst 0: every throttled path is denied immediately, so any 200 below
	// proves the path bypassed the limiter.
	cfg := config.RateLimitConfig{Enabled: true, RequestsPerMin: 60, BurstSize: 0}

	assert.Equal(t, http.StatusTooManyRequests, rateLimited(t, cfg, "/api/curve", "10.0.0.1:1234", ""))

	for _, path := range []string{"/health", "/metrics", "/dashboard", "/dashboard/chart", "/ws/chat"} {
		assert.Equal(t, http.StatusOK, rateLimited(t, cfg, path, "10.0.0.1:1234", ""), "path %s", path)
	}
}

func TestRateLimit_KeyedByAPIKeyWhenPresent(t *testing.T) {
	cfg := config.RateLimitConfig{Enabled: true, RequestsPerMin: 60, BurstSize: 1}
	h := RateLimit(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	do := func(apiKey string) int {
		req := httptest.NewRequest(http.MethodGet, "/api/curve", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		if apiKey != "" {
			req.Header.Set("X-API-Key", apiKey)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, do("key-a"))
	assert.Equal(t, http.StatusTooManyRequests, do("key-a"))
	assert.Equal(t, http.StatusOK, do("key-b"), "distinct keys get distinct buckets")
}

func TestRateLimit_DisabledPassesThrough(t *testing.T) {
	cfg := config.RateLimitConfig{Enabled: false, RequestsPerMin: 60, BurstSize: 0}
	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, rateLimited(t, cfg, "/api/curve", "10.0.0.1:1234", ""))
	}
}
