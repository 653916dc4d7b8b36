package browse

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/issuetop/issuetop/internal/accum"
	"github.com/issuetop/issuetop/internal/githubapi"
)

// Fetcher is the slice of the GitHub client the table needs. Tests
// substitute a fake.
type Fetcher interface {
	ListIssues(ctx context.Context, owner, repo string, opts githubapi.ListOptions) (*githubapi.IssuePage, error)
}

// issuesMsg carries one fetched server page. Key and gen identify the
// view the fetch was issued for; mismatched messages are stale and
// dropped without touching the cache.
type issuesMsg struct {
	key        accum.Key
	gen        int
	serverPage int
	page       *githubapi.IssuePage
}

// fetchFailedMsg carries a terminal fetch error (retries exhausted).
type fetchFailedMsg struct {
	key        accum.Key
	gen        int
	serverPage int
	err        error
}

// searchSettledMsg fires when the search debounce timer for seq expires.
// Only the newest seq is honored; earlier timers are ignored, which is
// what cancels the effect of superseded keystrokes.
type searchSettledMsg struct {
	seq int
}

// statusClearMsg clears a transient status line.
type statusClearMsg struct{}

// searchDebounce is how long search input must be quiet before it
// becomes the active filter key.
const searchDebounce = 400 * time.Millisecond

// fetchCmd issues one server-page request for key. The response comes
// back tagged with key and the generation current at issue time.
func (m *Model) fetchCmd(key accum.Key, serverPage int) tea.Cmd {
	ctx := m.ctx
	fetcher := m.fetcher
	owner, repo := m.owner, m.repo
	gen := m.gen
	opts := githubapi.ListOptions{
		Page:      serverPage,
		PerPage:   githubapi.ServerPageSize,
		State:     key.State,
		Sort:      m.sortField,
		Direction: m.sortDir,
	}
	return func() tea.Msg {
		page, err := fetcher.ListIssues(ctx, owner, repo, opts)
		if err != nil {
			return fetchFailedMsg{key: key, gen: gen, serverPage: serverPage, err: err}
		}
		return issuesMsg{key: key, gen: gen, serverPage: serverPage, page: page}
	}
}

// debounceCmd schedules the settle message for the given sequence number.
func debounceCmd(seq int) tea.Cmd {
	return tea.Tick(searchDebounce, func(time.Time) tea.Msg {
		return searchSettledMsg{seq: seq}
	})
}

// clearStatusCmd clears the status line after a short delay.
func clearStatusCmd() tea.Cmd {
	return tea.Tick(2*time.Second, func(time.Time) tea.Msg {
		return statusClearMsg{}
	})
}
