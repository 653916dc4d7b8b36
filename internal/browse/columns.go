package browse

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/issuetop/issuetop/internal/githubapi"
)

// Column describes one table column.
type Column struct {
	ID     string
	Title  string
	Render func(githubapi.Issue, time.Time) string
}

// columns is the full ordered column set. Visibility is controlled
// separately; order never changes.
func columns() []Column {
	return []Column{
		{ID: "number", Title: "#", Render: func(i githubapi.Issue, _ time.Time) string {
			return strconv.Itoa(i.Number)
		}},
		{ID: "state", Title: "STATE", Render: func(i githubapi.Issue, _ time.Time) string {
			return i.State
		}},
		{ID: "title", Title: "TITLE", Render: func(i githubapi.Issue, _ time.Time) string {
			title := truncate(i.Title, 70)
			if i.IsPullRequest() {
				return title + " [PR]"
			}
			return title
		}},
		{ID: "author", Title: "AUTHOR", Render: func(i githubapi.Issue, _ time.Time) string {
			return "@" + i.User.Login
		}},
		{ID: "labels", Title: "LABELS", Render: func(i githubapi.Issue, _ time.Time) string {
			names := make([]string, 0, len(i.Labels))
			for _, l := range i.Labels {
				names = append(names, l.Name)
			}
			return strings.Join(names, ",")
		}},
		{ID: "comments", Title: "💬", Render: func(i githubapi.Issue, _ time.Time) string {
			if i.Comments == 0 {
				return ""
			}
			return strconv.Itoa(i.Comments)
		}},
		{ID: "created", Title: "CREATED", Render: func(i githubapi.Issue, now time.Time) string {
			return ageShort(i.CreatedAt, now)
		}},
		{ID: "updated", Title: "UPDATED", Render: func(i githubapi.Issue, now time.Time) string {
			return ageShort(i.UpdatedAt, now)
		}},
	}
}

// defaultVisibility shows everything except the updated column, which
// mostly duplicates created for low-traffic repos.
func defaultVisibility() map[string]bool {
	vis := make(map[string]bool)
	for _, c := range columns() {
		vis[c.ID] = c.ID != "updated"
	}
	return vis
}

// ageShort formats how long ago t was, in the shortest unit that reads
// naturally: 42s, 5m, 3h, 6d, 4mo, 2y.
func ageShort(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	case d < 30*24*time.Hour:
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	case d < 365*24*time.Hour:
		return fmt.Sprintf("%dmo", int(d.Hours()/(24*30)))
	default:
		return fmt.Sprintf("%dy", int(d.Hours()/(24*365)))
	}
}

// truncate shortens s to max runes, appending an ellipsis when cut.
func truncate(s string, max int) string {
	if max <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 1 {
		return string(runes[:max])
	}
	return string(runes[:max-1]) + "…"
}
