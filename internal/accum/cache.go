package accum

import (
	"fmt"

	"github.com/issuetop/issuetop/internal/githubapi"
)

// Key identifies one (server state filter, debounced search text)
// combination. Two equal keys describe the same logical view.
type Key struct {
	State  string // open, closed, all
	Search string // debounced local search text
}

// String returns the deterministic string form of the key.
func (k Key) String() string {
	return fmt.Sprintf("%s|%s", k.State, k.Search)
}

// Entry holds everything accumulated for one key.
type Entry struct {
	// Records is the concatenation of server pages as received,
	// de-duplicated by issue ID. Never re-sorted.
	Records []githubapi.Issue

	// LastServerPage is the highest server page merged so far.
	// Zero means nothing has been fetched yet.
	LastServerPage int

	// LastLocalPage is the local page index the user was on when this
	// entry was last active, restored on switch-back.
	LastLocalPage int

	seen map[int64]struct{}
}

// Len returns the number of accumulated records.
func (e *Entry) Len() int {
	if e == nil {
		return 0
	}
	return len(e.Records)
}

// Cache maps keys to entries and owns the merge semantics for incoming
// server pages. The zero value is not usable; call New.
type Cache struct {
	entries map[Key]*Entry
	active  Key

	// inFlight guards against duplicate concurrent fetch-next-page
	// triggers. Per cache, not per key: only one key is active at a time.
	inFlight bool
}

// New creates an empty cache with the given initial active key.
func New(active Key) *Cache {
	c := &Cache{entries: make(map[Key]*Entry)}
	c.active = active
	c.entries[active] = newEntry()
	return c
}

func newEntry() *Entry {
	return &Entry{seen: make(map[int64]struct{})}
}

// ActiveKey returns the currently active key.
func (c *Cache) ActiveKey() Key {
	return c.active
}

// Active returns the entry for the active key. Never nil.
func (c *Cache) Active() *Entry {
	return c.entries[c.active]
}

// Switch makes key the active view. If an entry already exists its
// accumulated records and positions are restored and needsFetch is
// false. Otherwise an empty entry is created and needsFetch is true,
// signalling that a fresh fetch at server page 1 is required.
func (c *Cache) Switch(key Key) (entry *Entry, needsFetch bool) {
	c.active = key
	if e, ok := c.entries[key]; ok {
		return e, e.LastServerPage == 0
	}
	e := newEntry()
	c.entries[key] = e
	return e, true
}

// MergePage merges one received server page into the entry for key.
//
// Page 1 replaces the entry's records entirely; this covers first load,
// filter change and manual refresh alike, and an empty page 1 is a valid
// "no results" state. Pages beyond 1 append records whose ID has not
// been seen, preserving arrival order. LastServerPage advances and the
// in-flight flag clears.
//
// Callers are responsible for discarding stale responses (key no longer
// active) before calling MergePage.
func (c *Cache) MergePage(key Key, serverPage int, records []githubapi.Issue) *Entry {
	e, ok := c.entries[key]
	if !ok {
		e = newEntry()
		c.entries[key] = e
	}

	if serverPage <= 1 {
		e.Records = e.Records[:0]
		e.seen = make(map[int64]struct{}, len(records))
		for _, r := range records {
			if _, dup := e.seen[r.ID]; dup {
				continue
			}
			e.seen[r.ID] = struct{}{}
			e.Records = append(e.Records, r)
		}
		e.LastServerPage = 1
	} else {
		for _, r := range records {
			if _, dup := e.seen[r.ID]; dup {
				continue
			}
			e.seen[r.ID] = struct{}{}
			e.Records = append(e.Records, r)
		}
		if serverPage > e.LastServerPage {
			e.LastServerPage = serverPage
		}
	}

	c.inFlight = false
	return e
}

// SaveLocalPage records the local page index for the active entry so a
// later switch-back can restore the user's position.
func (c *Cache) SaveLocalPage(index int) {
	if index < 0 {
		index = 0
	}
	c.Active().LastLocalPage = index
}

// BeginFetch marks a fetch as in flight. Returns false when one is
// already outstanding, in which case the caller must not issue another.
func (c *Cache) BeginFetch() bool {
	if c.inFlight {
		return false
	}
	c.inFlight = true
	return true
}

// EndFetch clears the in-flight flag without merging anything. Called on
// fetch failure (the entry stays untouched) and on discarded stale
// responses.
func (c *Cache) EndFetch() {
	c.inFlight = false
}

// FetchInFlight reports whether a fetch is outstanding.
func (c *Cache) FetchInFlight() bool {
	return c.inFlight
}

// Clear removes every entry and resets to a single fresh entry for the
// active key, back at server page 1. The in-flight flag clears so a new
// first-page fetch can be issued immediately.
func (c *Cache) Clear() {
	c.entries = map[Key]*Entry{c.active: newEntry()}
	c.inFlight = false
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	return len(c.entries)
}
