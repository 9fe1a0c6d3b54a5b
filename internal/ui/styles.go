package ui

import "github.com/charmbracelet/lipgloss"

// Color palette
// - Default (white/black): primary text, missing paths
// - Accent (soft purple #A78BFA): file headers, highlights
// - Muted (gray): secondary info, line numbers
// - No colored success/error/warning - use unicode symbols only

const defaultAccent = "#A78BFA"

var (
	// Accent style for file paths and highlights
	Accent = lipgloss.NewStyle().Foreground(lipgloss.Color(defaultAccent))

	// Muted style for secondary info, hints, line numbers
	Muted = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))

	// Bold style for emphasis
	Bold = lipgloss.NewStyle().Bold(true)
)

// ConfigureTheme applies an optional accent color override from config.
// Accepts ANSI color codes ("0" to "255") or hex colors ("#RRGGBB");
// anything else keeps the default.
func ConfigureTheme(accent string) {
	if accent == "" {
		return
	}
	Accent = Accent.Foreground(lipgloss.Color(accent))
}

// DisableColor strips all styling; output becomes plain text. Used for
// non-TTY output, --no-color, NO_COLOR and `color = "never"`.
func DisableColor() {
	Accent = lipgloss.NewStyle()
	Muted = lipgloss.NewStyle()
	Bold = lipgloss.NewStyle()
}
