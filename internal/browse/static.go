package browse

import (
	"time"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/issuetop/issuetop/internal/githubapi"
	"github.com/issuetop/issuetop/internal/ui/styles"
)

// RenderStatic renders issues as a plain aligned table for
// non-interactive output (pipes, redirects). visible overrides column
// visibility; nil uses the defaults.
func RenderStatic(issues []githubapi.Issue, visible map[string]bool, now time.Time) string {
	if len(issues) == 0 {
		return ""
	}

	vis := defaultVisibility()
	for id, v := range visible {
		if _, ok := vis[id]; ok {
			vis[id] = v
		}
	}

	var headers []string
	var shown []Column
	for _, c := range columns() {
		if !vis[c.ID] {
			continue
		}
		shown = append(shown, c)
		headers = append(headers, c.Title)
	}

	rows := make([][]string, len(issues))
	for i, issue := range issues {
		cells := make([]string, len(shown))
		for j, c := range shown {
			cells[j] = c.Render(issue, now)
		}
		rows[i] = cells
	}

	// Borderless; lipgloss/table sizes the columns from content.
	t := table.New().
		Headers(headers...).
		Rows(rows...).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		BorderColumn(false).
		BorderRow(false).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styles.Header.PaddingRight(2)
			}
			return styles.NormalStyle.PaddingRight(2)
		})

	return t.String() + "\n"
}
