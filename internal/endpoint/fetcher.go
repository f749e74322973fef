// Package endpoint fetches the remote energy-summary document. The core
// curves never depend on this data; it only feeds the assistant context and
// the raw-data panel on the dashboard.
package endpoint

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

const userAgent = "ESTRA-Dashboard/1.0"

// Summary is the opaque key/value document returned by the energy API.
type Summary map[string]any

// Fetcher performs authenticated GETs against the energy-summary URL.
type Fetcher struct {
	url      string
	username string
	password string
	client   *http.Client
}

// New creates a fetcher. timeout <= 0 falls back to 30 seconds.
func New(url, username, password string, timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Fetcher{
		url:      url,
		username: username,
		password: password,
		client:   &http.Client{Timeout: timeout},
	}
}

// URL returns the configured summary URL.
func (f *Fetcher) URL() string { return f.url }

// Fetch performs one GET and decodes the JSON body. Non-2xx statuses map to
// the sentinel errors in this package.
func (f *Fetcher) Fetch(ctx context.Context) (Summary, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, fmt.Errorf("endpoint: building request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	if f.username != "" {
		req.SetBasicAuth(f.username, f.password)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("endpoint: request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, ErrUnauthorized
	case resp.StatusCode == http.StatusForbidden:
		return nil, ErrForbidden
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode >= 500:
		return nil, fmt.Errorf("%w (status %d)", ErrServer, resp.StatusCode)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, fmt.Errorf("endpoint: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("endpoint: reading response: %w", err)
	}

	var data Summary
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadPayload, err)
	}

	log.Printf("[endpoint] summary fetched (%d bytes, %d fields)", len(body), len(data))
	return data, nil
}
