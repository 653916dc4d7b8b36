// Package paging slices the filtered record set into local pages and
// decides when approaching the end of accumulated data calls for another
// server page.
//
// Local pages are what the user sees (10/25/50 rows); server pages are the
// 100-record chunks the API hands out. The two are deliberately decoupled:
// the [Pager] owns the local position, and [Pager.NeedsMore] applies the
// fetch-ahead heuristic that bridges them.
//
// # The Fetch-Ahead Heuristic
//
// The API does not reveal a reliable total, so exhaustion is inferred: a
// partial last server page proves there is nothing more, while an exactly
// full one suggests more may exist. NeedsMore is true when the user is on
// the last or second-to-last local page and the accumulated count is a
// nonzero exact multiple of the server page size. When the API keeps
// returning exactly full pages this over-fetches rather than under-fetches;
// that bias is intentional and kept as is.
package paging
