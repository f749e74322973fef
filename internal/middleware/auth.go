package middleware

import (
	"net/http"
	"strings"

	"github.com/sume/estra/internal/config"
)

// publicPath reports whether a path bypasses API-key auth: health, metrics
// and the dashboard, which carries its own password gate. The rate limiter
// shares this list so the two features never disagree about a path.
func publicPath(path string) bool {
	return path == "/health" || path == "/metrics" ||
		strings.HasPrefix(path, "/dashboard")
}

// Auth returns middleware that validates API keys from the Authorization
// header.
func Auth(cfg config.AuthConfig) func(http.Handler) http.Handler {
	keySet := make(map[string]bool, len(cfg.Keys))
	for _, k := range cfg.Keys {
		keySet[k] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !cfg.Enabled {
				next.ServeHTTP(w, r)
				return
			}

			if publicPath(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			key := extractAPIKey(r)
			if key == "" || !keySet[key] {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error":{"message":"Invalid or missing API key","type":"authentication_error","code":"invalid_api_key"}}`))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func extractAPIKey(r *http.Request) string {
	// Check Authorization: Bearer <key>
	auth := r.Header.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	// Check X-API-Key header
	if key := r.Header.Get("X-API-Key"); key != "" {
		return key
	}
	return ""
}
