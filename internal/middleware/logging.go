package middleware

import (
	"bufio"
	"encoding/json"
	"log"
	"net"
	"net/http"
	"time"
)

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
	bytes      int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.statusCode = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	n, err := r.ResponseWriter.Write(b)
	r.bytes += n
	return n, err
}

func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Hijack keeps websocket upgrades working behind this middleware.
func (r *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	if hj, ok := r.ResponseWriter.(http.Hijacker); ok {
		return hj.Hijack()
	}
	return nil, nil, http.ErrNotSupported
}

// Logging returns middleware that logs requests in text or json format.
func Logging(format string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, statusCode: 200}

			next.ServeHTTP(rec, r)

			duration := time.Since(start)
			reqID := GetRequestID(r.Context())

			if format == "json" {
				entry, _ := json.Marshal(map[string]any{
					"method":      r.Method,
					"path":        r.URL.Path,
					"status":      rec.statusCode,
					"bytes":       rec.bytes,
					"duration_ms": duration.Milliseconds(),
					"request_id":  reqID,
					"remote":      r.RemoteAddr,
				})
				log.Printf("[http] %s", entry)
				return
			}

			if reqID != "" {
				log.Printf("[http] %s %s %d %v [%s]", r.Method, r.URL.Path, rec.statusCode, duration, reqID)
			} else {
				log.Printf("[http] %s %s %d %v", r.Method, r.URL.Path, rec.statusCode, duration)
			}
		})
	}
}
