package output

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette — named constants for all ANSI 256 colors used in the CLI.
// These are the single source of truth; never use inline lipgloss.Color literals.
var (
	// ColorCyan is used for identifiable nouns: module ids, scope names, sources.
	ColorCyan = lipgloss.Color("14")

	// ColorGreen is used for the "applied" module status (bright, high-visibility).
	ColorGreen = lipgloss.Color("82")

	// ColorYellow is used for the "planned" and "mocked" module statuses.
	ColorYellow = lipgloss.Color("220")

	// ColorRed is used for the "destroyed" module status.
	ColorRed = lipgloss.Color("196")

	// ColorBoldRed is used for the "failed" module status (matches ERROR level).
	ColorBoldRed = lipgloss.Color("204")

	// ColorGreenCheck is used for the completion checkmark (✔).
	ColorGreenCheck = lipgloss.Color("10")

	// ColorDimGray is used for borders and other structural chrome.
	ColorDimGray = lipgloss.Color("240")
)

// Semantic styles — map domain concepts to visual presentation.
var (
	// StyleNoun styles identifiable nouns (module ids, scope names, sources).
	StyleNoun = lipgloss.NewStyle().Foreground(ColorCyan)

	// StyleAction styles action verbs (planning, applying, destroying).
	StyleAction = lipgloss.NewStyle().Bold(true)

	// StyleDim styles structural chrome (scope prefixes, separators, timestamps).
	StyleDim = lipgloss.NewStyle().Faint(true)

	// StyleSummary styles completion and summary lines.
	StyleSummary = lipgloss.NewStyle().Bold(true)
)

// Styles groups the level styles used by the diff and error renderers.
type Styles struct {
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Muted   lipgloss.Style
	Bold    lipgloss.Style
}

var defaultStyles = &Styles{
	Success: lipgloss.NewStyle().Foreground(ColorGreen),
	Error:   lipgloss.NewStyle().Foreground(ColorBoldRed),
	Warning: lipgloss.NewStyle().Foreground(ColorYellow),
	Muted:   lipgloss.NewStyle().Faint(true),
	Bold:    lipgloss.NewStyle().Bold(true),
}

// GetStyles returns the default style set.
func GetStyles() *Styles {
	return defaultStyles
}

// Module status constants.
const (
	StatusPlanned   = "planned"
	StatusApplied   = "applied"
	StatusDestroyed = "destroyed"
	StatusMocked    = "mocked"
	StatusSkipped   = "skipped"
	StatusFailed    = "failed"
)

// StatusStyle returns the lipgloss style for a given module status string.
// Unknown statuses return an unstyled default.
func StatusStyle(status string) lipgloss.Style {
	switch status {
	case StatusApplied:
		return lipgloss.NewStyle().Foreground(ColorGreen)
	case StatusPlanned, StatusMocked:
		return lipgloss.NewStyle().Foreground(ColorYellow)
	case StatusSkipped:
		return lipgloss.NewStyle().Faint(true)
	case StatusDestroyed:
		return lipgloss.NewStyle().Foreground(ColorRed)
	case StatusFailed:
		return lipgloss.NewStyle().Bold(true).Foreground(ColorBoldRed)
	default:
		return lipgloss.NewStyle()
	}
}

// minModuleColumnWidth is the minimum width for the module id column
// before the status suffix. This ensures status words align consistently.
const minModuleColumnWidth = 48

// FormatModuleLine renders a module id with a right-aligned, color-coded
// status suffix.
//
// Format: m:<scope.path.module>  <status>
//
// The "m:" prefix is dim, the id is cyan, and the status uses StatusStyle.
func FormatModuleLine(id, status string) string {
	padding := minModuleColumnWidth - len(id)
	if padding < 2 {
		padding = 2
	}

	prefix := StyleDim.Render("m:")
	styledID := StyleNoun.Render(id)
	styledStatus := StatusStyle(status).Render(status)

	return prefix + styledID + strings.Repeat(" ", padding) + styledStatus
}

// FormatCheckmark renders a green checkmark with a message for stdout output.
func FormatCheckmark(msg string) string {
	check := lipgloss.NewStyle().Foreground(ColorGreenCheck).Render("✔")
	return check + " " + msg
}
