// Package githubapi is a minimal GitHub REST client for listing repository
// issues one server page at a time.
//
// The client owns the transport concerns the rest of the program must not
// care about: bearer-token auth, retry with exponential backoff, and
// total-count estimation from the Link pagination header.
//
// # Retry Policy
//
// Network errors, HTTP 5xx and rate-limit responses (403 with an exhausted
// quota, or 429) are retried up to three times with exponential backoff
// (base 1s, capped at 30s). All other 4xx responses are permanent:
// 404 maps to [ErrNotFound], 422 to [ErrInvalidRequest].
//
// # Total-Count Estimation
//
// The issues endpoint does not return a total count. Two heuristics stand
// in: the rel="last" Link header (last page number times per_page), and a
// short page (fewer records than requested), which proves exhaustion.
// When neither applies the caller must assume more data may exist.
package githubapi
