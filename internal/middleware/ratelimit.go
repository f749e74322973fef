package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/sume/estra/internal/config"
)

// client is one token bucket, keyed by API key or remote address.
type client struct {
	tokens float64
	seen   time.Time
}

type limiter struct {
	mu      sync.Mutex
	clients map[string]*client
	rate    float64 // tokens per second
	burst   float64
	births  int // new buckets since the last sweep
}

func newLimiter(requestsPerMin, burstSize int) *limiter {
	return &limiter{
		clients: make(map[string]*client),
		rate:    float64(requestsPerMin) / 60.0,
		burst:   float64(burstSize),
	}
}

// allow refills the client's bucket up to now and takes one token. Taking
// now as a parameter keeps the refill math deterministic under test.
func (l *limiter) allow(key string, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	c, ok := l.clients[key]
	if !ok {
		c = &client{tokens: l.burst, seen: now}
		l.clients[key] = c
		l.births++
		if l.births >= 1024 {
			l.births = 0
			l.sweep(now)
		}
	}

	c.tokens += now.Sub(c.seen).Seconds() * l.rate
	if c.tokens > l.burst {
		c.tokens = l.burst
	}
	c.seen = now

	if c.tokens < 1 {
		return false
	}
	c.tokens--
	return true
}

// sweep drops buckets idle long enough to have refilled completely; their
// next request behaves like a new client anyway. Caller holds mu.
func (l *limiter) sweep(now time.Time) {
	cutoff := now.Add(-5 * time.Minute)
	for key, c := range l.clients {
		if c.seen.Before(cutoff) {
			delete(l.clients, key)
		}
	}
}

// RateLimit returns middleware enforcing a per-client token bucket. Clients
// are keyed by API key when present, remote address otherwise. The paths
// exempt from auth are exempt here too, so the cookie-gated dashboard is
// never throttled under a shared browser key; the websocket upgrade is also
// exempt, being one request for an arbitrarily long chat.
func RateLimit(cfg config.RateLimitConfig) func(http.Handler) http.Handler {
	l := newLimiter(cfg.RequestsPerMin, cfg.BurstSize)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !cfg.Enabled || publicPath(r.URL.Path) || r.URL.Path == "/ws/chat" {
				next.ServeHTTP(w, r)
				return
			}

			key := extractAPIKey(r)
			if key == "" {
				key = r.RemoteAddr
			}

			if !l.allow(key, time.Now()) {
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("Retry-After", "60")
				w.WriteHeader(http.StatusTooManyRequests)
				w.Write([]byte(`{"error":{"message":"Rate limit exceeded","type":"rate_limit_error","code":"rate_limit_exceeded"}}`))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
