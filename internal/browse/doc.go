// Package browse is the interactive issue table: the bubbletea controller
// that wires the fetch layer, the accumulation cache, the projection and
// the pagination reconciler together.
//
// Every model owns its own cache instance; nothing is shared between
// mounted tables. All cache mutation happens inside Update, in response to
// key presses and fetch messages, so the bubbletea event loop is the only
// scheduler involved.
//
// Responses are tagged with the filter key and a generation counter when
// the fetch is issued. A response whose tag no longer matches the active
// view is dropped on arrival; switching filters or refreshing mid-fetch
// is cancellation-by-ignoring, never a merge of stale data.
package browse
