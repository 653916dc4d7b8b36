package paging

// Phase is the pagination lifecycle state for the active filter key.
type Phase int

const (
	// Idle means nothing has been fetched and nothing is in flight.
	Idle Phase = iota
	// FetchingFirst means server page 1 is in flight.
	FetchingFirst
	// Ready means accumulated data is displayable and nothing is in flight.
	Ready
	// FetchingMore means a follow-up server page is in flight while the
	// already-accumulated data stays visible.
	FetchingMore
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case FetchingFirst:
		return "fetching-first"
	case Ready:
		return "ready"
	case FetchingMore:
		return "fetching-more"
	default:
		return "unknown"
	}
}

// Event drives phase transitions.
type Event int

const (
	// EventFetchFirst fires when a fresh page-1 fetch is issued (first
	// load, filter change without a cache entry, manual refresh).
	EventFetchFirst Event = iota
	// EventFetchMore fires when the fetch-ahead heuristic triggers.
	EventFetchMore
	// EventMerged fires when a response was merged into the cache.
	EventMerged
	// EventFailed fires when a fetch failed terminally.
	EventFailed
	// EventRestored fires when switching to a filter key whose entry is
	// already populated, so no fetch is needed.
	EventRestored
)

// Transition is the single transition function for the pagination state
// machine. It returns the next phase and whether the event was legal in
// the current phase; on an illegal event the phase is returned unchanged.
func Transition(p Phase, e Event) (Phase, bool) {
	switch e {
	case EventFetchFirst:
		// Legal from anywhere: filter switches and refreshes may happen
		// mid-fetch, with the stale response discarded on arrival.
		return FetchingFirst, true
	case EventRestored:
		return Ready, true
	case EventFetchMore:
		if p == Ready {
			return FetchingMore, true
		}
	case EventMerged:
		if p == FetchingFirst || p == FetchingMore {
			return Ready, true
		}
	case EventFailed:
		switch p {
		case FetchingFirst:
			return Idle, true
		case FetchingMore:
			// Accumulated data stays usable; the user may retry by
			// navigating again.
			return Ready, true
		}
	}
	return p, false
}
