// Package accum is the accumulation cache at the heart of the issue table.
//
// The GitHub issues endpoint is paginated server-side, but the table offers
// local search and local pagination over everything fetched so far. This
// package owns the reconciliation between the two: it keeps, per filter
// combination, the full ordered list of records merged across server pages,
// the highest server page merged, and the local page the user was viewing
// when the combination was last active.
//
// # Keys and Entries
//
// A [Key] identifies one (state filter, search text) combination. Distinct
// keys own fully independent entries; switching between keys restores the
// prior entry without a network round trip.
//
// # Merge Semantics
//
// Server page 1 always replaces an entry's records wholesale (first load,
// filter change and manual refresh all look the same). Later pages append
// only records whose ID has not been seen, in arrival order. The cache
// never re-sorts records and never patches fields of an existing record.
//
// A failed fetch changes nothing; the single in-flight flag is cleared so
// the caller may retry.
//
// # Ownership
//
// A Cache instance is owned by one table controller, constructed per
// mounted table. It is not safe for concurrent use; the bubbletea event
// loop serializes all access.
package accum
