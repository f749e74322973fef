package endpoint

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetch_SendsAuthAndHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "sume", user)
		assert.Equal(t, "secret", pass)
		assert.Equal(t, userAgent, r.Header.Get("User-Agent"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"total_kwh": 1234.5, "machines": 3}`))
	}))
	defer srv.Close()

	f := New(srv.URL, "sume", "secret", 5*time.Second)
	data, err := f.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1234.5, data["total_kwh"])
	assert.Equal(t, float64(3), data["machines"])
}

func TestFetch_StatusMapping(t *testing.T) {
	cases := []struct {
		status int
		want   error
	}{
		{http.StatusUnauthorized, ErrUnauthorized},
		{http.StatusForbidden, ErrForbidden},
		{http.StatusNotFound, ErrNotFound},
		{http.StatusInternalServerError, ErrServer},
		{http.StatusBadGateway, ErrServer},
	}

	for _, tc := range cases {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
		}))

		f := New(srv.URL, "", "", 5*time.Second)
		_, err := f.Fetch(context.Background())
		assert.ErrorIs(t, err, tc.want, "status %d", tc.status)
		srv.Close()
	}
}

func TestFetch_BadPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer srv.Close()

	f := New(srv.URL, "", "", 5*time.Second)
	_, err := f.Fetch(context.Background())
	assert.ErrorIs(t, err, ErrBadPayload)
}

func TestFetch_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	f := New(srv.URL, "", "", 50*time.Millisecond)
	_, err := f.Fetch(context.Background())
	assert.Error(t, err)
}

func TestFetch_ConnectionError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // closed before use

	f := New(srv.URL, "", "", time.Second)
	_, err := f.Fetch(context.Background())
	assert.Error(t, err)
}
