package githubapi

import (
	"encoding/json"
	"time"
)

// User is the author of an issue.
type User struct {
	Login     string `json:"login"`
	AvatarURL string `json:"avatar_url"`
}

// Label is a repository label attached to an issue.
type Label struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Issue is one record from the repository issues endpoint. Records are
// treated as immutable; identity for caching purposes is the ID field.
type Issue struct {
	ID        int64     `json:"id"`
	Number    int       `json:"number"`
	Title     string    `json:"title"`
	State     string    `json:"state"` // open, closed
	User      User      `json:"user"`
	Labels    []Label   `json:"labels"`
	Comments  int       `json:"comments"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	HTMLURL   string    `json:"html_url"`

	// The issues endpoint also returns pull requests; they carry a
	// pull_request object. We keep them (the table shows everything the
	// endpoint returns) but expose the distinction for display.
	PullRequest json.RawMessage `json:"pull_request,omitempty"`
}

// IsPullRequest reports whether this record is a pull request rather
// than a plain issue.
func (i Issue) IsPullRequest() bool {
	return len(i.PullRequest) > 0
}

// ListOptions are the request parameters for one server page of issues.
type ListOptions struct {
	Page      int    // 1-based server page number
	PerPage   int    // records per server page
	State     string // open, closed, all
	Sort      string // created, updated, comments
	Direction string // asc, desc
}

// IssuePage is one server page of issues plus whatever total-count
// information could be inferred from the response.
type IssuePage struct {
	Issues []Issue

	// LastPage is the page number from the rel="last" Link header,
	// or 0 when the header was absent.
	LastPage int

	// TotalEstimate is LastPage times per_page, or 0 when unknown.
	// It is an upper bound, not an exact count.
	TotalEstimate int

	// Exhausted is true when the page held fewer records than requested,
	// which proves there is no further page.
	Exhausted bool
}
