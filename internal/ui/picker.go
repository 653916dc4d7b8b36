// Package ui provides interactive terminal components shared by commands.
package ui

import (
	"errors"
	"os"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/colorprofile"
	"github.com/sahilm/fuzzy"

	"github.com/issuetop/issuetop/internal/ui/styles"
)

// ErrCancelled is returned when the user dismisses a picker.
var ErrCancelled = errors.New("cancelled")

// repoSource implements fuzzy.Source over repo slugs.
type repoSource []string

func (s repoSource) String(i int) string { return s[i] }
func (s repoSource) Len() int            { return len(s) }

// PickRepo runs an interactive fuzzy picker over recently viewed
// repositories and returns the chosen "owner/repo" slug.
func PickRepo(repos []string) (string, error) {
	if len(repos) == 0 {
		return "", errors.New("no recently viewed repositories")
	}

	model := newPickerModel(repos)

	// Output goes to stderr so stdout stays clean for piping.
	profile := colorprofile.Detect(os.Stderr, os.Environ())
	p := tea.NewProgram(model,
		tea.WithOutput(os.Stderr),
		tea.WithColorProfile(profile),
	)

	final, err := p.Run()
	if err != nil {
		return "", err
	}

	m := final.(*pickerModel)
	if m.cancelled || m.choice == "" {
		return "", ErrCancelled
	}
	return m.choice, nil
}

type pickerModel struct {
	repos     []string
	filtered  []fuzzy.Match
	input     textinput.Model
	cursor    int
	choice    string
	cancelled bool
}

func newPickerModel(repos []string) *pickerModel {
	ti := textinput.New()
	ti.Placeholder = "type to filter"
	ti.CharLimit = 100
	ti.SetWidth(40)
	ti.Focus()

	return &pickerModel{
		repos:    repos,
		filtered: allMatches(repos),
		input:    ti,
	}
}

// allMatches lists every repo as a match with no highlighted runes.
func allMatches(repos []string) []fuzzy.Match {
	out := make([]fuzzy.Match, len(repos))
	for i, r := range repos {
		out[i] = fuzzy.Match{Str: r, Index: i}
	}
	return out
}

func (m *pickerModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyPressMsg); ok {
		switch key.String() {
		case "ctrl+c", "esc":
			m.cancelled = true
			return m, tea.Quit

		case "enter":
			if m.cursor < len(m.filtered) {
				m.choice = m.filtered[m.cursor].Str
			}
			return m, tea.Quit

		case "up", "ctrl+p":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case "down", "ctrl+n":
			if m.cursor < len(m.filtered)-1 {
				m.cursor++
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	if query := m.input.Value(); query == "" {
		m.filtered = allMatches(m.repos)
	} else {
		m.filtered = fuzzy.FindFrom(query, repoSource(m.repos))
	}
	if m.cursor >= len(m.filtered) {
		m.cursor = max(0, len(m.filtered)-1)
	}

	return m, cmd
}

func (m *pickerModel) View() tea.View {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Select repository") + "\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	if len(m.filtered) == 0 {
		b.WriteString(styles.MutedStyle.Render("  no matches") + "\n")
	}
	for i, match := range m.filtered {
		prefix := "  "
		style := styles.NormalStyle
		if i == m.cursor {
			prefix = "> "
			style = styles.Selected
		}
		b.WriteString(prefix + renderMatch(match, style) + "\n")
	}

	b.WriteString("\n" + styles.MutedStyle.Render("enter select · esc cancel"))
	return tea.NewView(b.String())
}

// renderMatch renders a match with its fuzzy-matched runes underlined.
func renderMatch(match fuzzy.Match, base lipgloss.Style) string {
	if len(match.MatchedIndexes) == 0 {
		return base.Render(match.Str)
	}

	matched := make(map[int]bool, len(match.MatchedIndexes))
	for _, idx := range match.MatchedIndexes {
		matched[idx] = true
	}

	var b strings.Builder
	for i, r := range match.Str {
		if matched[i] {
			b.WriteString(base.Underline(true).Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}
	return b.String()
}
