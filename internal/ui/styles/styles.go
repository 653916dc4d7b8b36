// Package styles provides shared lipgloss styles for the issue table UI.
//
// This package centralizes color definitions so the interactive table and
// the static (non-TTY) renderer stay visually consistent.
package styles

import "charm.land/lipgloss/v2"

// Palette colors used throughout the UI.
var (
	// Primary is the main accent color (cyan/teal)
	Primary = lipgloss.Color("62")

	// Accent is the highlight color for the selected row (pink)
	Accent = lipgloss.Color("212")

	// Open is the color for open issues (green)
	Open = lipgloss.Color("82")

	// Closed is the color for closed issues (purple)
	Closed = lipgloss.Color("135")

	// Error is used for error messages (red)
	Error = lipgloss.Color("196")

	// Muted is used for secondary text such as timestamps (gray)
	Muted = lipgloss.Color("240")

	// Normal is the standard text color (light gray)
	Normal = lipgloss.Color("252")

	// Warning is used for rate-limit and retry notices (orange)
	Warning = lipgloss.Color("214")
)

// Common styles
var (
	// Title styles the repo header line
	Title = lipgloss.NewStyle().Bold(true).Foreground(Primary)

	// Selected styles the cursor row
	Selected = lipgloss.NewStyle().Foreground(Accent).Bold(true)

	// OpenState styles the "open" state cell
	OpenState = lipgloss.NewStyle().Foreground(Open)

	// ClosedState styles the "closed" state cell
	ClosedState = lipgloss.NewStyle().Foreground(Closed)

	// ErrorStyle styles error lines
	ErrorStyle = lipgloss.NewStyle().Foreground(Error)

	// WarningStyle styles rate-limit and retry notices
	WarningStyle = lipgloss.NewStyle().Foreground(Warning)

	// MutedStyle styles help text and secondary columns
	MutedStyle = lipgloss.NewStyle().Foreground(Muted)

	// NormalStyle styles plain cells
	NormalStyle = lipgloss.NewStyle().Foreground(Normal)

	// Header styles the table header row
	Header = lipgloss.NewStyle().Bold(true).Foreground(Normal)
)

// StateStyle returns the style for an issue state cell.
func StateStyle(state string) lipgloss.Style {
	if state == "open" {
		return OpenState
	}
	return ClosedState
}
