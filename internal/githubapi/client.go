package githubapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/tomnomnom/linkheader"
	"golang.org/x/oauth2"

	"github.com/issuetop/issuetop/internal/log"
)

const defaultBaseURL = "https://api.github.com"

// ServerPageSize is the fixed per_page used for issue requests. The
// accumulation heuristics assume pages of exactly this size.
const ServerPageSize = 100

// Client talks to the GitHub REST API.
type Client struct {
	httpClient *http.Client
	baseURL    string

	maxTries        int
	initialInterval time.Duration
	maxInterval     time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at a different API root (used in tests).
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithRetryPolicy overrides the backoff parameters.
func WithRetryPolicy(maxTries int, initial, cap time.Duration) Option {
	return func(c *Client) {
		c.maxTries = maxTries
		c.initialInterval = initial
		c.maxInterval = cap
	}
}

// NewClient creates a client. An empty token means unauthenticated
// requests, which work but hit a much lower rate limit.
func NewClient(token string, opts ...Option) *Client {
	hc := &http.Client{Timeout: 30 * time.Second}
	if token != "" {
		hc = &http.Client{
			Timeout: 30 * time.Second,
			Transport: &oauth2.Transport{
				Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}),
			},
		}
	}

	c := &Client{
		httpClient:      hc,
		baseURL:         defaultBaseURL,
		maxTries:        4, // initial attempt + 3 retries
		initialInterval: time.Second,
		maxInterval:     30 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListIssues fetches one server page of issues for owner/repo.
// Transient failures are retried per the package retry policy; the
// returned error is the terminal one.
func (c *Client) ListIssues(ctx context.Context, owner, repo string, opts ListOptions) (*IssuePage, error) {
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.PerPage < 1 {
		opts.PerPage = ServerPageSize
	}

	q := url.Values{}
	q.Set("page", strconv.Itoa(opts.Page))
	q.Set("per_page", strconv.Itoa(opts.PerPage))
	if opts.State != "" {
		q.Set("state", opts.State)
	}
	if opts.Sort != "" {
		q.Set("sort", opts.Sort)
	}
	if opts.Direction != "" {
		q.Set("direction", opts.Direction)
	}
	reqURL := fmt.Sprintf("%s/repos/%s/%s/issues?%s", c.baseURL, owner, repo, q.Encode())

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.initialInterval
	b.MaxInterval = c.maxInterval

	return backoff.Retry(ctx, func() (*IssuePage, error) {
		page, err := c.listIssuesOnce(ctx, reqURL, opts.PerPage)
		if err != nil {
			log.FromContext(ctx).Debug("issue fetch failed",
				"repo", owner+"/"+repo,
				"page", strconv.Itoa(opts.Page),
				"err", err.Error())
		}
		return page, err
	}, backoff.WithBackOff(b), backoff.WithMaxTries(uint(c.maxTries)))
}

// listIssuesOnce performs a single request attempt. Permanent failures
// are wrapped with backoff.Permanent so the retry loop stops.
func (c *Client) listIssuesOnce(ctx context.Context, reqURL string, perPage int) (*IssuePage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, backoff.Permanent(err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	done := log.FromContext(ctx).Request(http.MethodGet, reqURL)
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	done(time.Since(start))
	if err != nil {
		// No response at all: connectivity failure, retryable.
		return nil, fmt.Errorf("github request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, classifyStatus(resp, reqURL)
	}

	var issues []Issue
	if err := json.NewDecoder(resp.Body).Decode(&issues); err != nil {
		return nil, backoff.Permanent(fmt.Errorf("decode issues response: %w", err))
	}

	page := &IssuePage{
		Issues:    issues,
		Exhausted: len(issues) < perPage,
	}
	if last := lastPageFromLink(resp.Header.Get("Link")); last > 0 {
		page.LastPage = last
		page.TotalEstimate = last * perPage
	}
	return page, nil
}

// classifyStatus maps a non-200 response onto the error taxonomy.
func classifyStatus(resp *http.Response, reqURL string) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var payload struct {
		Message string `json:"message"`
	}
	_ = json.Unmarshal(body, &payload)

	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		Message:    payload.Message,
		URL:        reqURL,
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return backoff.Permanent(fmt.Errorf("%w: %s", ErrNotFound, apiErr))
	case resp.StatusCode == http.StatusUnprocessableEntity:
		return backoff.Permanent(fmt.Errorf("%w: %s", ErrInvalidRequest, apiErr))
	case resp.StatusCode == http.StatusTooManyRequests,
		resp.StatusCode == http.StatusForbidden && resp.Header.Get("X-RateLimit-Remaining") == "0":
		// Rate limited: retryable until the retry cap is reached.
		return fmt.Errorf("%w: %s", ErrRateLimited, apiErr)
	case resp.StatusCode >= 500:
		return apiErr
	default:
		return backoff.Permanent(apiErr)
	}
}

// lastPageFromLink extracts the page number of the rel="last" link.
// Returns 0 when the header is absent or unparseable.
func lastPageFromLink(header string) int {
	if header == "" {
		return 0
	}
	for _, link := range linkheader.Parse(header).FilterByRel("last") {
		u, err := url.Parse(link.URL)
		if err != nil {
			continue
		}
		if n, err := strconv.Atoi(u.Query().Get("page")); err == nil && n > 0 {
			return n
		}
	}
	return 0
}
