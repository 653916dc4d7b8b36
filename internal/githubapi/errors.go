package githubapi

import (
	"errors"
	"fmt"
)

// Sentinel errors for the failure classes callers care about.
// Match with errors.Is.
var (
	// ErrNotFound means the repository (or the issues resource) does not
	// exist, or the token cannot see it. Never retried.
	ErrNotFound = errors.New("repository or resource not found")

	// ErrRateLimited means the API quota is exhausted. Retried with
	// backoff up to the retry cap, then surfaced.
	ErrRateLimited = errors.New("rate limit exceeded, try again later")

	// ErrInvalidRequest means the request parameters were rejected (422).
	// This indicates a bug in parameter construction, not a transient
	// condition. Never retried.
	ErrInvalidRequest = errors.New("invalid request parameters")
)

// APIError is an HTTP-level failure from the GitHub API.
type APIError struct {
	StatusCode int
	Message    string // GitHub's "message" field when present
	URL        string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("github: %s (HTTP %d)", e.Message, e.StatusCode)
	}
	return fmt.Sprintf("github: HTTP %d for %s", e.StatusCode, e.URL)
}

// Retryable reports whether the failure class may resolve on its own.
func (e *APIError) Retryable() bool {
	return e.StatusCode >= 500 || e.StatusCode == 429
}
