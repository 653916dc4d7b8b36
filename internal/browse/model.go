package browse

import (
	"context"
	"slices"
	"strconv"
	"time"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"github.com/atotto/clipboard"

	"github.com/issuetop/issuetop/internal/accum"
	"github.com/issuetop/issuetop/internal/config"
	"github.com/issuetop/issuetop/internal/githubapi"
	"github.com/issuetop/issuetop/internal/log"
	"github.com/issuetop/issuetop/internal/paging"
	"github.com/issuetop/issuetop/internal/view"
)

// Params configure a table model.
type Params struct {
	Owner   string
	Repo    string
	Fetcher Fetcher
	Config  config.Config

	// Columns overrides column visibility (persisted per repo);
	// nil falls back to config and built-in defaults.
	Columns map[string]bool
}

// Model is the bubbletea model for the issue table. Each mounted table
// owns its cache and pager; nothing is module-level.
type Model struct {
	ctx     context.Context
	fetcher Fetcher
	owner   string
	repo    string

	cache    *accum.Cache
	pager    *paging.Pager
	phase    paging.Phase
	filtered []githubapi.Issue

	stateFilter string
	sortField   string
	sortDir     string

	searchInput   textinput.Model
	searchFocused bool
	appliedSearch string
	searchSeq     int

	// gen tags outgoing fetches; it bumps on every view change (filter
	// switch, refresh, clear, sort change) so responses issued for an
	// abandoned view are recognizably stale.
	gen int

	// restorePage is the local page saved when a fetch-more was
	// triggered, restored after the merge unless the user navigated
	// away in the meantime.
	restorePage     int
	movedSinceFetch bool

	cursor  int
	visible map[string]bool

	totalEstimate int
	exhausted     bool

	err      error
	status   string
	showHelp bool

	spin     spinner.Model
	width    int
	height   int
	now      func() time.Time
	quitting bool
}

// New creates a table model for owner/repo. The context carries the
// logger and cancels in-flight fetches on shutdown.
func New(ctx context.Context, p Params) *Model {
	cfg := p.Config

	ti := textinput.New()
	ti.Placeholder = "search title, author, labels"
	ti.CharLimit = 100
	ti.SetWidth(40)

	tiStyles := ti.Styles()
	tiStyles.Cursor.Shape = tea.CursorBar
	tiStyles.Cursor.Blink = true
	ti.SetStyles(tiStyles)

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	vis := defaultVisibility()
	for id, v := range cfg.Columns {
		if _, ok := vis[id]; ok {
			vis[id] = v
		}
	}
	for id, v := range p.Columns {
		if _, ok := vis[id]; ok {
			vis[id] = v
		}
	}

	key := accum.Key{State: cfg.State}
	return &Model{
		ctx:         ctx,
		fetcher:     p.Fetcher,
		owner:       p.Owner,
		repo:        p.Repo,
		cache:       accum.New(key),
		pager:       paging.NewPager(cfg.PageSize),
		phase:       paging.Idle,
		stateFilter: cfg.State,
		sortField:   cfg.Sort,
		sortDir:     cfg.Direction,
		searchInput: ti,
		visible:     vis,
		spin:        sp,
		width:       100,
		now:         time.Now,
	}
}

// VisibleColumns returns the current column visibility for persistence.
func (m *Model) VisibleColumns() map[string]bool {
	out := make(map[string]bool, len(m.visible))
	for id, v := range m.visible {
		out[id] = v
	}
	return out
}

// Err returns the terminal fetch error, if any. Consulted after the
// program exits so first-load failures reach the exit code.
func (m *Model) Err() error {
	return m.err
}

func (m *Model) Init() tea.Cmd {
	m.phase, _ = paging.Transition(m.phase, paging.EventFetchFirst)
	m.cache.BeginFetch()
	return tea.Batch(m.spin.Tick, m.fetchCmd(m.cache.ActiveKey(), 1))
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case issuesMsg:
		return m.onIssues(msg)

	case fetchFailedMsg:
		return m.onFetchFailed(msg)

	case searchSettledMsg:
		if msg.seq != m.searchSeq {
			return m, nil // superseded by later keystrokes
		}
		return m, m.applySearch(m.searchInput.Value())

	case statusClearMsg:
		m.status = ""
		return m, nil

	case tea.KeyPressMsg:
		if m.searchFocused {
			return m.onSearchKey(msg)
		}
		return m.onBrowseKey(msg)

	default:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}
}

// onIssues merges a fetched server page, unless it is stale.
func (m *Model) onIssues(msg issuesMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.gen || msg.key != m.cache.ActiveKey() {
		// The view moved on while this was in flight. Dropping the
		// message is the cancellation model; the active fetch flag
		// belongs to whatever fetch the new view issued.
		return m, nil
	}

	entry := m.cache.MergePage(msg.key, msg.serverPage, msg.page.Issues)
	log.FromContext(m.ctx).Debug("merged server page",
		"key", msg.key.String(),
		"page", strconv.Itoa(msg.serverPage),
		"accumulated", strconv.Itoa(entry.Len()))

	m.err = nil
	if msg.page.TotalEstimate > 0 {
		m.totalEstimate = msg.page.TotalEstimate
	}
	m.exhausted = msg.page.Exhausted
	m.phase, _ = paging.Transition(m.phase, paging.EventMerged)

	m.reproject()
	pc := m.pageCount()
	if msg.serverPage <= 1 || m.movedSinceFetch {
		// Page-1 replacement, or the user navigated while the fetch
		// was in flight: their current position wins.
		m.pager.Clamp(pc)
	} else {
		// The user must not lose their place because data arrived.
		m.pager.Restore(m.restorePage, pc)
	}
	m.cache.SaveLocalPage(m.pager.Page())
	m.clampCursor()

	return m, m.maybeFetchMore()
}

// onFetchFailed surfaces a terminal fetch error. Accumulated data stays
// visible; the entry was never touched.
func (m *Model) onFetchFailed(msg fetchFailedMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.gen || msg.key != m.cache.ActiveKey() {
		return m, nil
	}
	m.cache.EndFetch()
	m.phase, _ = paging.Transition(m.phase, paging.EventFailed)
	m.err = msg.err
	return m, nil
}

func (m *Model) onSearchKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		// Settle immediately instead of waiting out the debounce.
		m.searchFocused = false
		m.searchInput.Blur()
		m.searchSeq++
		return m, m.applySearch(m.searchInput.Value())
	case "esc":
		m.searchFocused = false
		m.searchInput.Blur()
		m.searchInput.SetValue("")
		m.searchSeq++
		return m, m.applySearch("")
	}

	before := m.searchInput.Value()
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	if m.searchInput.Value() == before {
		return m, cmd
	}
	m.searchSeq++
	return m, tea.Batch(cmd, debounceCmd(m.searchSeq))
}

func (m *Model) onBrowseKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "/":
		m.searchFocused = true
		m.searchInput.Focus()
		return m, textinput.Blink

	case "?":
		m.showHelp = !m.showHelp
		return m, nil

	case "j", "down":
		if m.cursor < m.pageRowCount()-1 {
			m.cursor++
		}
		return m, nil

	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "l", "right", "n":
		m.pager.Next(m.pageCount())
		return m, m.afterNavigation()

	case "h", "left", "p":
		m.pager.Prev()
		return m, m.afterNavigation()

	case "g", "home":
		m.pager.First()
		return m, m.afterNavigation()

	case "G", "end":
		m.pager.Last(m.pageCount())
		return m, m.afterNavigation()

	case "s":
		return m, m.cycleState()

	case "z":
		return m, m.cyclePageSize()

	case "o":
		m.sortField = cycle(config.Sorts, m.sortField)
		return m, m.resort()

	case "d":
		m.sortDir = cycle(config.Directions, m.sortDir)
		return m, m.resort()

	case "r":
		return m, m.refresh()

	case "C":
		return m, m.clearCache()

	case "y":
		return m, m.copySelected()

	case "1", "2", "3", "4", "5", "6", "7", "8":
		idx := int(msg.String()[0] - '1')
		cols := columns()
		if idx < len(cols) {
			m.visible[cols[idx].ID] = !m.visible[cols[idx].ID]
		}
		return m, nil
	}

	return m, nil
}

// afterNavigation persists the new position and applies the fetch-ahead
// heuristic. Navigation that itself triggers a fetch does not count as
// moving away from it: maybeFetchMore resets the flag when it fires.
func (m *Model) afterNavigation() tea.Cmd {
	m.movedSinceFetch = true
	m.cache.SaveLocalPage(m.pager.Page())
	m.clampCursor()
	return m.maybeFetchMore()
}

// applySearch makes text the active search, switching the filter key.
func (m *Model) applySearch(text string) tea.Cmd {
	if text == m.appliedSearch {
		return nil
	}
	m.appliedSearch = text
	return m.switchKey(accum.Key{State: m.stateFilter, Search: text})
}

// cycleState advances the server state filter to the next value.
func (m *Model) cycleState() tea.Cmd {
	m.stateFilter = cycle(config.States, m.stateFilter)
	return m.switchKey(accum.Key{State: m.stateFilter, Search: m.appliedSearch})
}

// switchKey activates a filter key: restores its cached entry when one
// exists, otherwise starts a fresh page-1 fetch. Any in-flight response
// becomes stale via the generation bump.
func (m *Model) switchKey(key accum.Key) tea.Cmd {
	m.cache.SaveLocalPage(m.pager.Page())
	m.gen++
	m.cache.EndFetch()
	m.err = nil
	m.totalEstimate = 0
	m.exhausted = false
	m.cursor = 0

	entry, needsFetch := m.cache.Switch(key)
	m.reproject()

	if needsFetch {
		m.pager.Reset()
		m.phase, _ = paging.Transition(m.phase, paging.EventFetchFirst)
		m.cache.BeginFetch()
		return tea.Batch(m.spin.Tick, m.fetchCmd(key, 1))
	}

	m.phase, _ = paging.Transition(m.phase, paging.EventRestored)
	m.pager.Restore(entry.LastLocalPage, m.pageCount())
	return nil
}

// cyclePageSize advances the local page size, keeping the first visible
// row in view.
func (m *Model) cyclePageSize() tea.Cmd {
	m.pager.SetSize(cycleInt(paging.Sizes, m.pager.Size()))
	m.pager.Clamp(m.pageCount())
	return m.afterNavigation()
}

// resort clears the cache and refetches: accumulated entries hold
// records in the old server order, which a new sort invalidates.
func (m *Model) resort() tea.Cmd {
	m.cache.Clear()
	m.gen++
	m.err = nil
	m.totalEstimate = 0
	m.exhausted = false
	m.pager.Reset()
	m.cursor = 0
	m.reproject()
	m.phase, _ = paging.Transition(m.phase, paging.EventFetchFirst)
	m.cache.BeginFetch()
	return tea.Batch(m.spin.Tick, m.fetchCmd(m.cache.ActiveKey(), 1))
}

// refresh refetches page 1 for the active key; the page-1 merge replaces
// the entry wholesale. Accumulated data stays visible until it arrives.
func (m *Model) refresh() tea.Cmd {
	m.gen++
	m.cache.EndFetch()
	m.err = nil
	m.phase, _ = paging.Transition(m.phase, paging.EventFetchFirst)
	m.cache.BeginFetch()
	return tea.Batch(m.spin.Tick, m.fetchCmd(m.cache.ActiveKey(), 1))
}

// clearCache drops every cached entry and starts over at server page 1.
func (m *Model) clearCache() tea.Cmd {
	m.cache.Clear()
	m.status = "cache cleared"
	return tea.Batch(m.resort(), clearStatusCmd())
}

// copySelected puts the selected issue's URL on the clipboard.
func (m *Model) copySelected() tea.Cmd {
	issue := m.selectedIssue()
	if issue == nil {
		return nil
	}
	if err := clipboard.WriteAll(issue.HTMLURL); err != nil {
		m.status = "clipboard unavailable"
	} else {
		m.status = "copied " + issue.HTMLURL
	}
	return clearStatusCmd()
}

// maybeFetchMore triggers the next server page when the reconciler's
// heuristic says the user is running out of accumulated data.
func (m *Model) maybeFetchMore() tea.Cmd {
	if m.phase != paging.Ready {
		return nil
	}
	if m.exhausted {
		return nil // a short page proved there is nothing more
	}
	entry := m.cache.Active()
	if !m.pager.NeedsMore(len(m.filtered), entry.Len(), githubapi.ServerPageSize) {
		return nil
	}
	if !m.cache.BeginFetch() {
		return nil // rapid navigation must not double-issue
	}
	m.restorePage = m.pager.Page()
	m.movedSinceFetch = false
	m.phase, _ = paging.Transition(m.phase, paging.EventFetchMore)
	return tea.Batch(m.spin.Tick, m.fetchCmd(m.cache.ActiveKey(), entry.LastServerPage+1))
}

// reproject recomputes the filtered row set from the active entry.
func (m *Model) reproject() {
	m.filtered = view.Project(m.cache.Active().Records, m.appliedSearch)
}

func (m *Model) pageCount() int {
	return paging.PageCount(len(m.filtered), m.pager.Size())
}

func (m *Model) pageRowCount() int {
	start, end := m.pager.Slice(len(m.filtered))
	return end - start
}

func (m *Model) clampCursor() {
	if n := m.pageRowCount(); m.cursor >= n {
		m.cursor = max(0, n-1)
	}
}

// selectedIssue returns the issue under the cursor, or nil.
func (m *Model) selectedIssue() *githubapi.Issue {
	start, end := m.pager.Slice(len(m.filtered))
	rows := m.filtered[start:end]
	if m.cursor < 0 || m.cursor >= len(rows) {
		return nil
	}
	return &rows[m.cursor]
}

// cycle returns the element after current, wrapping around.
func cycle(values []string, current string) string {
	idx := slices.Index(values, current)
	return values[(idx+1)%len(values)]
}

func cycleInt(values []int, current int) int {
	idx := slices.Index(values, current)
	return values[(idx+1)%len(values)]
}
