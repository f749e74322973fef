package metrics

import (
	"fmt"
	"net/http"
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// Metrics collects Prometheus-compatible counters for the dashboard service.
type Metrics struct {
	mu sync.RWMutex

	// Counters
	RequestsTotal  int64
	ErrorsTotal    int64
	RequestsByPath map[string]*int64
	CacheHits      int64
	CacheMisses    int64
	FetchesTotal   int64
	FetchFailures  int64
	ChatReplies    map[string]*int64 // by provider
	ChatErrors     int64

	// Latency accumulation (ms)
	latencySumMs float64
	latencyCount int64

	startTime time.Time
}

func New() *Metrics {
	return &Metrics{
		RequestsByPath: make(map[string]*int64),
		ChatReplies:    make(map[string]*int64),
		startTime:      time.Now(),
	}
}

// RecordRequest records one handled HTTP request.
func (m *Metrics) RecordRequest(path string, durationMs float64, isError bool) {
	atomic.AddInt64(&m.RequestsTotal, 1)
	if isError {
		atomic.AddInt64(&m.ErrorsTotal, 1)
	}

	m.mu.Lock()
	c, ok := m.RequestsByPath[path]
	if !ok {
		c = new(int64)
		m.RequestsByPath[path] = c
	}
	m.latencySumMs += durationMs
	m.latencyCount++
	m.mu.Unlock()

	atomic.AddInt64(c, 1)
}

// RecordCacheHit / RecordCacheMiss track the summary cache.
func (m *Metrics) RecordCacheHit()  { atomic.AddInt64(&m.CacheHits, 1) }
func (m *Metrics) RecordCacheMiss() { atomic.AddInt64(&m.CacheMisses, 1) }

// RecordFetch records one remote energy-summary fetch.
func (m *Metrics) RecordFetch(ok bool) {
	atomic.AddInt64(&m.FetchesTotal, 1)
	if !ok {
		atomic.AddInt64(&m.FetchFailures, 1)
	}
}

// RecordChat records one assistant reply attributed to a provider.
func (m *Metrics) RecordChat(provider string, isError bool) {
	if isError {
		atomic.AddInt64(&m.ChatErrors, 1)
		return
	}
	m.mu.Lock()
	c, ok := m.ChatReplies[provider]
	if !ok {
		c = new(int64)
		m.ChatReplies[provider] = c
	}
	m.mu.Unlock()
	atomic.AddInt64(c, 1)
}

// Snapshot is a JSON-friendly view for the dashboard status panel.
type Snapshot struct {
	UptimeSec     float64 `json:"uptime_sec"`
	Requests      int64   `json:"requests"`
	Errors        int64   `json:"errors"`
	CacheHits     int64   `json:"cache_hits"`
	CacheMisses   int64   `json:"cache_misses"`
	Fetches       int64   `json:"fetches"`
	FetchFailures int64   `json:"fetch_failures"`
	ChatErrors    int64   `json:"chat_errors"`
	AvgLatencyMs  float64 `json:"avg_latency_ms"`
}

func (m *Metrics) GetSnapshot() Snapshot {
	m.mu.RLock()
	var avg float64
	if m.latencyCount > 0 {
		avg = m.latencySumMs / float64(m.latencyCount)
	}
	m.mu.RUnlock()

	return Snapshot{
		UptimeSec:     time.Since(m.startTime).Seconds(),
		Requests:      atomic.LoadInt64(&m.RequestsTotal),
		Errors:        atomic.LoadInt64(&m.ErrorsTotal),
		CacheHits:     atomic.LoadInt64(&m.CacheHits),
		CacheMisses:   atomic.LoadInt64(&m.CacheMisses),
		Fetches:       atomic.LoadInt64(&m.FetchesTotal),
		FetchFailures: atomic.LoadInt64(&m.FetchFailures),
		ChatErrors:    atomic.LoadInt64(&m.ChatErrors),
		AvgLatencyMs:  avg,
	}
}

// Handler serves the metrics in Prometheus text exposition format.
func (m *Metrics) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; version=0.0.4; charset=utf-8")

		uptime := time.Since(m.startTime).Seconds()
		fmt.Fprintf(w, "# HELP estra_uptime_seconds Service uptime in seconds\n")
		fmt.Fprintf(w, "estra_uptime_seconds %f\n\n", uptime)

		fmt.Fprintf(w, "# HELP estra_requests_total Total number of requests\n")
		fmt.Fprintf(w, "# TYPE estra_requests_total counter\n")
		fmt.Fprintf(w, "estra_requests_total %d\n\n", atomic.LoadInt64(&m.RequestsTotal))

		fmt.Fprintf(w, "# HELP estra_errors_total Total number of request errors\n")
		fmt.Fprintf(w, "# TYPE estra_errors_total counter\n")
		fmt.Fprintf(w, "estra_errors_total %d\n\n", atomic.LoadInt64(&m.ErrorsTotal))

		fmt.Fprintf(w, "# HELP estra_cache_hits_total Energy summary cache hits\n")
		fmt.Fprintf(w, "# TYPE estra_cache_hits_total counter\n")
		fmt.Fprintf(w, "estra_cache_hits_total %d\n\n", atomic.LoadInt64(&m.CacheHits))

		fmt.Fprintf(w, "# HELP estra_cache_misses_total Energy summary cache misses\n")
		fmt.Fprintf(w, "# TYPE estra_cache_misses_total counter\n")
		fmt.Fprintf(w, "estra_cache_misses_total %d\n\n", atomic.LoadInt64(&m.CacheMisses))

		fmt.Fprintf(w, "# HELP estra_endpoint_fetches_total Remote energy-summary fetch attempts\n")
		fmt.Fprintf(w, "# TYPE estra_endpoint_fetches_total counter\n")
		fmt.Fprintf(w, "estra_endpoint_fetches_total %d\n\n", atomic.LoadInt64(&m.FetchesTotal))

		fmt.Fprintf(w, "# HELP estra_endpoint_fetch_failures_total Failed energy-summary fetches\n")
		fmt.Fprintf(w, "# TYPE estra_endpoint_fetch_failures_total counter\n")
		fmt.Fprintf(w, "estra_endpoint_fetch_failures_total %d\n\n", atomic.LoadInt64(&m.FetchFailures))

		fmt.Fprintf(w, "# HELP estra_chat_errors_total Assistant replies that failed\n")
		fmt.Fprintf(w, "# TYPE estra_chat_errors_total counter\n")
		fmt.Fprintf(w, "estra_chat_errors_total %d\n\n", atomic.LoadInt64(&m.ChatErrors))

		// Per-path request counts
		m.mu.RLock()
		paths := make([]string, 0, len(m.RequestsByPath))
		for p := range m.RequestsByPath {
			paths = append(paths, p)
		}
		sort.Strings(paths)

		fmt.Fprintf(w, "# HELP estra_requests_by_path_total Requests per path\n")
		fmt.Fprintf(w, "# TYPE estra_requests_by_path_total counter\n")
		for _, p := range paths {
			fmt.Fprintf(w, "estra_requests_by_path_total{path=%q} %d\n", p, atomic.LoadInt64(m.RequestsByPath[p]))
		}
		fmt.Fprintf(w, "\n")

		providers := make([]string, 0, len(m.ChatReplies))
		for p := range m.ChatReplies {
			providers = append(providers, p)
		}
		sort.Strings(providers)

		fmt.Fprintf(w, "# HELP estra_chat_replies_total Assistant replies per provider\n")
		fmt.Fprintf(w, "# TYPE estra_chat_replies_total counter\n")
		for _, p := range providers {
			fmt.Fprintf(w, "estra_chat_replies_total{provider=%q} %d\n", p, atomic.LoadInt64(m.ChatReplies[p]))
		}
		m.mu.RUnlock()

		m.mu.RLock()
		var avg float64
		if m.latencyCount > 0 {
			avg = m.latencySumMs / float64(m.latencyCount)
		}
		m.mu.RUnlock()
		fmt.Fprintf(w, "\n# HELP estra_request_latency_avg_ms Mean request latency\n")
		fmt.Fprintf(w, "# TYPE estra_request_latency_avg_ms gauge\n")
		fmt.Fprintf(w, "estra_request_latency_avg_ms %f\n", avg)
	}
}
