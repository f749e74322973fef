package endpoint

import "errors"

var (
	// ErrUnauthorized indicates rejected basic-auth credentials (401).
	ErrUnauthorized = errors.New("endpoint: authentication failed")

	// ErrForbidden indicates the credentials lack access (403).
	ErrForbidden = errors.New("endpoint: access forbidden")

	// ErrNotFound indicates the summary path does not exist (404).
	ErrNotFound = errors.New("endpoint: summary not found")

	// ErrServer indicates a 5xx from the energy API.
	ErrServer = errors.New("endpoint: server error")

	// ErrBadPayload indicates a 2xx response that was not valid JSON.
	ErrBadPayload = errors.New("endpoint: response is not valid JSON")
)
