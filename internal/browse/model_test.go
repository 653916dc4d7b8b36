package browse

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/issuetop/issuetop/internal/accum"
	"github.com/issuetop/issuetop/internal/config"
	"github.com/issuetop/issuetop/internal/githubapi"
	"github.com/issuetop/issuetop/internal/paging"
)

// fakeFetcher records every request and answers from a scripted response.
type fakeFetcher struct {
	mu    sync.Mutex
	calls []githubapi.ListOptions
	page  *githubapi.IssuePage
	err   error
}

func (f *fakeFetcher) ListIssues(_ context.Context, _, _ string, opts githubapi.ListOptions) (*githubapi.IssuePage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, opts)
	if f.err != nil {
		return nil, f.err
	}
	return f.page, nil
}

func (f *fakeFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func newTestModel(f Fetcher) *Model {
	return New(context.Background(), Params{
		Owner:   "golang",
		Repo:    "go",
		Fetcher: f,
		Config:  config.Default(),
	})
}

// issueRange builds n issues with ids starting at first.
func issueRange(first int64, n int) []githubapi.Issue {
	out := make([]githubapi.Issue, n)
	for i := range out {
		id := first + int64(i)
		out[i] = githubapi.Issue{
			ID:     id,
			Number: int(id),
			Title:  fmt.Sprintf("issue %d", id),
			State:  "open",
		}
	}
	return out
}

// mergedMsg builds an issuesMsg addressed to the model's current view.
func mergedMsg(m *Model, serverPage int, issues []githubapi.Issue) issuesMsg {
	return issuesMsg{
		key:        m.cache.ActiveKey(),
		gen:        m.gen,
		serverPage: serverPage,
		page:       &githubapi.IssuePage{Issues: issues},
	}
}

// keyMsg creates a tea.KeyPressMsg for a single-rune key.
func keyMsg(key string) tea.KeyPressMsg {
	r := []rune(key)[0]
	return tea.KeyPressMsg{Code: r, Text: key}
}

// step delivers a message and keeps the concrete model type.
func step(t *testing.T, m *Model, msg tea.Msg) tea.Cmd {
	t.Helper()
	updated, cmd := m.Update(msg)
	if updated.(*Model) != m {
		t.Fatal("Update returned a different model")
	}
	return cmd
}

func TestInitIssuesFirstFetch(t *testing.T) {
	t.Parallel()

	f := &fakeFetcher{page: &githubapi.IssuePage{Issues: issueRange(1, 100), LastPage: 3, TotalEstimate: 300}}
	m := newTestModel(f)

	cmd := m.Init()
	if cmd == nil {
		t.Fatal("Init() returned nil cmd, want first fetch")
	}
	if m.phase != paging.FetchingFirst {
		t.Errorf("phase = %v, want %v", m.phase, paging.FetchingFirst)
	}
	if !m.cache.FetchInFlight() {
		t.Error("fetch flag not set after Init")
	}

	fetchNow(t, m, 1)

	if got := f.callCount(); got != 1 {
		t.Fatalf("fetch calls = %d, want 1", got)
	}
	opts := f.calls[0]
	if opts.Page != 1 || opts.PerPage != githubapi.ServerPageSize {
		t.Errorf("first fetch opts = page %d per_page %d, want 1 and %d", opts.Page, opts.PerPage, githubapi.ServerPageSize)
	}
	if m.phase != paging.Ready {
		t.Errorf("phase after merge = %v, want %v", m.phase, paging.Ready)
	}
	if got := m.cache.Active().Len(); got != 100 {
		t.Errorf("accumulated = %d, want 100", got)
	}
	if m.totalEstimate != 300 {
		t.Errorf("totalEstimate = %d, want 300", m.totalEstimate)
	}
}

func TestStaleResponseDropped(t *testing.T) {
	t.Parallel()

	m := newTestModel(&fakeFetcher{})
	m.Init()
	step(t, m, mergedMsg(m, 1, issueRange(1, 100)))

	// Capture a message for the current view, then move on: the state
	// cycle bumps the generation, making the captured message stale.
	stale := mergedMsg(m, 2, issueRange(101, 100))
	step(t, m, keyMsg("s"))

	if m.cache.ActiveKey().State != "open" {
		t.Fatalf("active state = %q, want %q", m.cache.ActiveKey().State, "open")
	}
	inFlight := m.cache.FetchInFlight()

	step(t, m, stale)

	if got := m.cache.Active().Len(); got != 0 {
		t.Errorf("stale merge touched new entry: len = %d, want 0", got)
	}
	if m.cache.FetchInFlight() != inFlight {
		t.Error("stale response changed the fetch flag")
	}
}

func TestFilterSwitchRestoresPosition(t *testing.T) {
	t.Parallel()

	m := newTestModel(&fakeFetcher{})
	m.Init()
	step(t, m, mergedMsg(m, 1, issueRange(1, 100)))
	step(t, m, mergedMsg(m, 2, issueRange(101, 100)))

	// 200 records at 25/page: navigate to page index 4.
	for range 4 {
		step(t, m, keyMsg("l"))
	}
	if m.pager.Page() != 4 {
		t.Fatalf("page = %d, want 4", m.pager.Page())
	}

	// all -> open: fresh key, position resets, fetch starts.
	cmd := step(t, m, keyMsg("s"))
	if cmd == nil {
		t.Fatal("switch to unfetched key issued no fetch")
	}
	if m.pager.Page() != 0 {
		t.Errorf("page after switch to fresh key = %d, want 0", m.pager.Page())
	}
	step(t, m, mergedMsg(m, 1, issueRange(1000, 40)))

	// open -> closed -> all: back on the first key with position intact.
	step(t, m, keyMsg("s"))
	step(t, m, keyMsg("s"))

	if m.cache.ActiveKey().State != "all" {
		t.Fatalf("active state = %q, want %q", m.cache.ActiveKey().State, "all")
	}
	if got := m.cache.Active().Len(); got != 200 {
		t.Errorf("restored entry len = %d, want 200", got)
	}
	if m.pager.Page() != 4 {
		t.Errorf("restored page = %d, want 4", m.pager.Page())
	}
	if m.phase != paging.Ready {
		t.Errorf("phase = %v, want %v", m.phase, paging.Ready)
	}
}

func TestFetchMoreRestoresPage(t *testing.T) {
	t.Parallel()

	m := newTestModel(&fakeFetcher{})
	m.Init()
	step(t, m, mergedMsg(m, 1, issueRange(1, 100)))

	// Jump to the last local page: 100 records / 25 per page ends on
	// index 3, which trips the fetch-ahead heuristic.
	cmd := step(t, m, keyMsg("G"))
	if cmd == nil {
		t.Fatal("navigation to last page issued no fetch-more")
	}
	if m.phase != paging.FetchingMore {
		t.Fatalf("phase = %v, want %v", m.phase, paging.FetchingMore)
	}
	if m.restorePage != 3 {
		t.Fatalf("restorePage = %d, want 3", m.restorePage)
	}

	step(t, m, mergedMsg(m, 2, issueRange(101, 100)))

	if got := m.cache.Active().Len(); got != 200 {
		t.Errorf("accumulated = %d, want 200", got)
	}
	if m.pager.Page() != 3 {
		t.Errorf("page after merge = %d, want 3 (position kept)", m.pager.Page())
	}
	if m.phase != paging.Ready {
		t.Errorf("phase = %v, want %v", m.phase, paging.Ready)
	}
}

func TestFetchMoreKeepsPositionAfterNavigation(t *testing.T) {
	t.Parallel()

	m := newTestModel(&fakeFetcher{})
	m.Init()
	step(t, m, mergedMsg(m, 1, issueRange(1, 100)))

	// Trigger a fetch-more from the last page, then navigate back to
	// the top while it is still in flight.
	step(t, m, keyMsg("G"))
	if m.phase != paging.FetchingMore {
		t.Fatalf("phase = %v, want %v", m.phase, paging.FetchingMore)
	}
	step(t, m, keyMsg("g"))
	if m.pager.Page() != 0 {
		t.Fatalf("page after g = %d, want 0", m.pager.Page())
	}

	step(t, m, mergedMsg(m, 2, issueRange(101, 100)))

	// The merge must not yank the view back to where the fetch was
	// triggered once the user has moved on.
	if m.pager.Page() != 0 {
		t.Errorf("page after merge = %d, want 0 (user position kept)", m.pager.Page())
	}
	if m.phase != paging.Ready {
		t.Errorf("phase = %v, want %v", m.phase, paging.Ready)
	}
}

func TestFetchMoreNotIssuedMidData(t *testing.T) {
	t.Parallel()

	m := newTestModel(&fakeFetcher{})
	m.Init()
	step(t, m, mergedMsg(m, 1, issueRange(1, 100)))

	// Page index 1 of 4 is far from the trailing edge.
	cmd := step(t, m, keyMsg("l"))
	if cmd != nil {
		t.Error("fetch-more issued while well inside accumulated data")
	}
	if m.phase != paging.Ready {
		t.Errorf("phase = %v, want %v", m.phase, paging.Ready)
	}
}

func TestExhaustedStopsFetchMore(t *testing.T) {
	t.Parallel()

	m := newTestModel(&fakeFetcher{})
	m.Init()

	// A short page means there is no more server data, even though
	// further navigation reaches the trailing edge.
	step(t, m, issuesMsg{
		key:        m.cache.ActiveKey(),
		gen:        m.gen,
		serverPage: 1,
		page:       &githubapi.IssuePage{Issues: issueRange(1, 47), Exhausted: true},
	})

	if cmd := step(t, m, keyMsg("G")); cmd != nil {
		t.Error("fetch-more issued after server reported exhaustion")
	}
}

func TestRefreshReplacesFirstPage(t *testing.T) {
	t.Parallel()

	m := newTestModel(&fakeFetcher{})
	m.Init()
	step(t, m, mergedMsg(m, 1, issueRange(1, 100)))
	step(t, m, mergedMsg(m, 2, issueRange(101, 100)))

	cmd := step(t, m, keyMsg("r"))
	if cmd == nil {
		t.Fatal("refresh issued no fetch")
	}
	// Accumulated data stays visible until the response lands.
	if got := m.cache.Active().Len(); got != 200 {
		t.Fatalf("len during refresh = %d, want 200", got)
	}

	step(t, m, mergedMsg(m, 1, issueRange(500, 30)))

	if got := m.cache.Active().Len(); got != 30 {
		t.Errorf("len after refresh merge = %d, want 30 (page 1 replaces)", got)
	}
	if got := m.cache.Active().Records[0].ID; got != 500 {
		t.Errorf("first record id = %d, want 500", got)
	}
}

func TestFetchFailureKeepsData(t *testing.T) {
	t.Parallel()

	m := newTestModel(&fakeFetcher{})
	m.Init()
	step(t, m, mergedMsg(m, 1, issueRange(1, 100)))
	step(t, m, keyMsg("G")) // triggers fetch-more

	step(t, m, fetchFailedMsg{
		key:        m.cache.ActiveKey(),
		gen:        m.gen,
		serverPage: 2,
		err:        githubapi.ErrRateLimited,
	})

	if !errors.Is(m.err, githubapi.ErrRateLimited) {
		t.Errorf("err = %v, want %v", m.err, githubapi.ErrRateLimited)
	}
	if m.phase != paging.Ready {
		t.Errorf("phase = %v, want %v (accumulated data still browsable)", m.phase, paging.Ready)
	}
	if got := m.cache.Active().Len(); got != 100 {
		t.Errorf("len after failure = %d, want 100", got)
	}
	if m.cache.FetchInFlight() {
		t.Error("fetch flag still set after failure")
	}
}

func TestFirstFetchFailureGoesIdle(t *testing.T) {
	t.Parallel()

	m := newTestModel(&fakeFetcher{})
	m.Init()

	step(t, m, fetchFailedMsg{
		key:        m.cache.ActiveKey(),
		gen:        m.gen,
		serverPage: 1,
		err:        githubapi.ErrNotFound,
	})

	if m.phase != paging.Idle {
		t.Errorf("phase = %v, want %v", m.phase, paging.Idle)
	}
	if !errors.Is(m.Err(), githubapi.ErrNotFound) {
		t.Errorf("Err() = %v, want %v", m.Err(), githubapi.ErrNotFound)
	}
}

func TestSearchSettleSwitchesKey(t *testing.T) {
	t.Parallel()

	m := newTestModel(&fakeFetcher{})
	m.Init()
	step(t, m, mergedMsg(m, 1, issueRange(1, 100)))

	m.searchInput.SetValue("bug")
	m.searchSeq = 3

	// A timer from an earlier keystroke must not apply.
	step(t, m, searchSettledMsg{seq: 2})
	if m.appliedSearch != "" {
		t.Fatalf("superseded settle applied search %q", m.appliedSearch)
	}

	cmd := step(t, m, searchSettledMsg{seq: 3})
	if m.appliedSearch != "bug" {
		t.Fatalf("appliedSearch = %q, want %q", m.appliedSearch, "bug")
	}
	want := accum.Key{State: "all", Search: "bug"}
	if m.cache.ActiveKey() != want {
		t.Errorf("active key = %v, want %v", m.cache.ActiveKey(), want)
	}
	if cmd == nil {
		t.Error("settling a new search issued no fetch")
	}
}

func TestSearchFiltersLocally(t *testing.T) {
	t.Parallel()

	m := newTestModel(&fakeFetcher{})
	m.Init()

	records := issueRange(1, 10)
	records[2].Title = "panic in parser"
	records[7].Title = "parser accepts bad input"
	step(t, m, mergedMsg(m, 1, records))

	m.searchInput.SetValue("parser")
	m.searchSeq = 1
	step(t, m, searchSettledMsg{seq: 1})

	// The new key starts empty; merge the (unfiltered) server page into it.
	step(t, m, mergedMsg(m, 1, records))

	if got := len(m.filtered); got != 2 {
		t.Fatalf("filtered rows = %d, want 2", got)
	}
	if got := m.cache.Active().Len(); got != 10 {
		t.Errorf("accumulated = %d, want 10 (projection is local)", got)
	}
}

func TestSortChangeClearsCache(t *testing.T) {
	t.Parallel()

	m := newTestModel(&fakeFetcher{})
	m.Init()
	step(t, m, mergedMsg(m, 1, issueRange(1, 100)))
	gen := m.gen

	cmd := step(t, m, keyMsg("o"))

	if m.sortField == config.Default().Sort {
		t.Error("sort field did not advance")
	}
	if got := m.cache.Active().Len(); got != 0 {
		t.Errorf("entry len after sort change = %d, want 0 (cache cleared)", got)
	}
	if m.gen == gen {
		t.Error("generation not bumped on sort change")
	}
	if cmd == nil {
		t.Error("sort change issued no refetch")
	}
}

func TestPageSizeKeepsFirstRow(t *testing.T) {
	t.Parallel()

	m := newTestModel(&fakeFetcher{})
	m.Init()
	step(t, m, mergedMsg(m, 1, issueRange(1, 100)))

	// Page index 2 at 25/page starts at row 50; at 50/page that row
	// lives on page index 1.
	step(t, m, keyMsg("l"))
	step(t, m, keyMsg("l"))
	step(t, m, keyMsg("z"))

	if m.pager.Size() != 50 {
		t.Fatalf("size = %d, want 50", m.pager.Size())
	}
	if m.pager.Page() != 1 {
		t.Errorf("page = %d, want 1", m.pager.Page())
	}
}

func TestColumnToggle(t *testing.T) {
	t.Parallel()

	m := newTestModel(&fakeFetcher{})
	cols := columns()

	before := m.visible[cols[0].ID]
	step(t, m, keyMsg("1"))
	if m.visible[cols[0].ID] == before {
		t.Errorf("column %q visibility unchanged after toggle", cols[0].ID)
	}

	vis := m.VisibleColumns()
	if vis[cols[0].ID] == before {
		t.Error("VisibleColumns does not reflect toggle")
	}
}

// fetchNow synchronously runs one fetch for the active view against the
// model's fetcher and delivers the result, standing in for the command
// the event loop would have executed.
func fetchNow(t *testing.T, m *Model, serverPage int) tea.Cmd {
	t.Helper()
	msg := m.fetchCmd(m.cache.ActiveKey(), serverPage)()
	return step(t, m, msg)
}
