// Package view derives the user-visible row set from accumulated records.
//
// Projection is a pure function: it filters by local search text only and
// never fetches. A search can therefore miss matches that live on server
// pages not yet accumulated; that is an accepted property of the design,
// not something this package tries to hide.
package view

import (
	"strings"

	"github.com/issuetop/issuetop/internal/githubapi"
)

// Project returns, in the same relative order, every record whose title,
// author login or any label name contains search as a case-insensitive
// substring. An empty search returns records unchanged.
func Project(records []githubapi.Issue, search string) []githubapi.Issue {
	if search == "" {
		return records
	}

	needle := strings.ToLower(search)
	filtered := make([]githubapi.Issue, 0, len(records))
	for _, r := range records {
		if Matches(r, needle) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// Matches reports whether the record matches an already-lowercased needle.
// The match is an OR across title, author login and label names.
func Matches(r githubapi.Issue, needle string) bool {
	if strings.Contains(strings.ToLower(r.Title), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(r.User.Login), needle) {
		return true
	}
	for _, l := range r.Labels {
		if strings.Contains(strings.ToLower(l.Name), needle) {
			return true
		}
	}
	return false
}
