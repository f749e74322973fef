package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandler_Exposition(t *testing.T) {
	m := New()
	m.RecordRequest("/api/curve", 12.5, false)
	m.RecordRequest("/api/curve", 7.5, false)
	m.RecordRequest("/api/chat", 220, true)
	m.RecordCacheHit()
	m.RecordCacheMiss()
	m.RecordFetch(true)
	m.RecordFetch(false)
	m.RecordChat("canned", false)
	m.RecordChat("openai", true)

	rec := httptest.NewRecorder()
	m.Handler()(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	out := string(body)

	assert.Contains(t, out, "estra_requests_total 3")
	assert.Contains(t, out, "estra_errors_total 1")
	assert.Contains(t, out, "estra_cache_hits_total 1")
	assert.Contains(t, out, "estra_cache_misses_total 1")
	assert.Contains(t, out, "estra_endpoint_fetches_total 2")
	assert.Contains(t, out, "estra_endpoint_fetch_failures_total 1")
	assert.Contains(t, out, `estra_requests_by_path_total{path="/api/curve"} 2`)
	assert.Contains(t, out, `estra_chat_replies_total{provider="canned"} 1`)
	assert.Contains(t, out, "estra_chat_errors_total 1")
}

func TestSnapshot(t *testing.T) {
	m := New()
	m.RecordRequest("/health", 10, false)
	m.RecordRequest("/health", 20, false)

	s := m.GetSnapshot()
	assert.Equal(t, int64(2), s.Requests)
	assert.Equal(t, int64(0), s.Errors)
	assert.InDelta(t, 15.0, s.AvgLatencyMs, 1e-9)
	assert.GreaterOrEqual(t, s.UptimeSec, 0.0)
}
