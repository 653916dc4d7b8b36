package browse

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/issuetop/issuetop/internal/githubapi"
	"github.com/issuetop/issuetop/internal/paging"
	"github.com/issuetop/issuetop/internal/ui/styles"
)

func (m *Model) View() tea.View {
	if m.quitting {
		return tea.NewView("")
	}

	var b strings.Builder

	b.WriteString(m.headerView())
	b.WriteString("\n")
	b.WriteString(m.searchView())
	b.WriteString("\n\n")

	start, end := m.pager.Slice(len(m.filtered))
	rows := m.filtered[start:end]

	switch {
	case m.phase == paging.FetchingFirst && len(rows) == 0:
		b.WriteString(m.spin.View() + " loading issues...\n")
	case len(rows) == 0:
		b.WriteString(styles.MutedStyle.Render("no issues match") + "\n")
	default:
		b.WriteString(m.tableView(rows))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.footerView())

	if m.err != nil {
		b.WriteString("\n" + styles.ErrorStyle.Render("error: "+m.err.Error()) +
			styles.MutedStyle.Render("  (r retries)"))
	} else if m.status != "" {
		b.WriteString("\n" + styles.MutedStyle.Render(m.status))
	}

	if m.showHelp {
		b.WriteString("\n\n" + helpView())
	}

	return tea.NewView(b.String())
}

func (m *Model) headerView() string {
	title := styles.Title.Render(fmt.Sprintf("%s/%s", m.owner, m.repo))

	total := ""
	if m.exhausted {
		total = fmt.Sprintf("%d issues", m.cache.Active().Len())
	} else if m.totalEstimate > 0 {
		total = fmt.Sprintf("~%d issues", m.totalEstimate)
	}

	meta := fmt.Sprintf("state:%s sort:%s/%s", m.stateFilter, m.sortField, m.sortDir)
	parts := []string{title, styles.MutedStyle.Render(meta)}
	if total != "" {
		parts = append(parts, styles.MutedStyle.Render(total))
	}
	return strings.Join(parts, "  ")
}

func (m *Model) searchView() string {
	if m.searchFocused {
		return "/" + m.searchInput.View()
	}
	if m.appliedSearch != "" {
		return "/" + m.appliedSearch + styles.MutedStyle.Render("  (esc clears)")
	}
	return styles.MutedStyle.Render("press / to search")
}

func (m *Model) tableView(rows []githubapi.Issue) string {
	cols := columns()
	now := m.now()

	var headers []string
	var stateCol = -1
	visible := make([]Column, 0, len(cols))
	for _, c := range cols {
		if !m.visible[c.ID] {
			continue
		}
		if c.ID == "state" {
			stateCol = len(visible)
		}
		visible = append(visible, c)
		headers = append(headers, c.Title)
	}

	data := make([][]string, len(rows))
	for i, issue := range rows {
		cells := make([]string, len(visible))
		for j, c := range visible {
			cells[j] = c.Render(issue, now)
		}
		data[i] = cells
	}

	cursor := m.cursor
	t := table.New().
		Headers(headers...).
		Rows(data...).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		BorderColumn(false).
		BorderRow(false).
		Width(m.width).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styles.Header.PaddingRight(2)
			}
			if row == cursor {
				return styles.Selected.PaddingRight(2)
			}
			if col == stateCol && row >= 0 && row < len(rows) {
				return styles.StateStyle(rows[row].State).PaddingRight(2)
			}
			return styles.NormalStyle.PaddingRight(2)
		})

	return t.String()
}

func (m *Model) footerView() string {
	pc := m.pageCount()
	pos := fmt.Sprintf("page %d/%d", m.pager.Page()+1, max(pc, 1))
	size := fmt.Sprintf("%d/page", m.pager.Size())

	parts := []string{pos, size, fmt.Sprintf("%d cached", m.cache.Active().Len())}
	if m.phase == paging.FetchingMore {
		parts = append(parts, m.spin.View()+"fetching more")
	} else if m.phase == paging.FetchingFirst {
		parts = append(parts, m.spin.View()+"fetching")
	}
	parts = append(parts, "? help")

	return styles.MutedStyle.Render(strings.Join(parts, "  ·  "))
}

func helpView() string {
	lines := []string{
		"j/k         move cursor",
		"h/l n/p     prev/next page",
		"g/G         first/last page",
		"/           search (enter applies, esc clears)",
		"s           cycle state filter (all/open/closed)",
		"o, d        cycle sort field, toggle direction",
		"z           cycle page size (10/25/50)",
		"r           refresh",
		"C           clear cache",
		"y           copy issue url",
		"1-8         toggle columns",
		"q           quit",
	}
	return styles.MutedStyle.Render(strings.Join(lines, "\n"))
}
