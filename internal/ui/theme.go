package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/tada/internal/model"
)

// Styles bundles palette + symbols for one theme.
// All renderers pull from a Styles value instead of package globals.
type Styles struct {
	Theme model.Theme

	Title, Muted, Accent, Success, Error, Pending lipgloss.Style
	Selected, Done, Help, Input, Button           lipgloss.Style
	Border                                        lipgloss.Style

	BoxUnchecked, BoxChecked string
	ThemeIcon                string
}

type palette struct {
	text, muted, accent, success, errorC, pending, border, button, buttonText lipgloss.Color
}

var palettes = map[model.Theme]palette{
	model.ThemeLight: {
		text: "235", muted: "245", accent: "27", success: "28", errorC: "160",
		pending: "130", border: "250", button: "235", buttonText: "255",
	},
	model.ThemeDark: {
		text: "255", muted: "243", accent: "39", success: "42", errorC: "9",
		pending: "214", border: "240", button: "255", buttonText: "0",
	},
}

// NewStyles builds the styles for th.
func NewStyles(th model.Theme) Styles {
	p := palettes[th]
	s := Styles{
		Theme:   th,
		Title:   lipgloss.NewStyle().Bold(true).Foreground(p.text),
		Muted:   lipgloss.NewStyle().Foreground(p.muted),
		Accent:  lipgloss.NewStyle().Foreground(p.accent),
		Success: lipgloss.NewStyle().Foreground(p.success),
		Error:   lipgloss.NewStyle().Foreground(p.errorC).Bold(true),
		Pending: lipgloss.NewStyle().Foreground(p.pending),

		Selected: lipgloss.NewStyle().Bold(true).Foreground(p.accent),
		Done:     lipgloss.NewStyle().Foreground(p.muted).Strikethrough(true),
		Help:     lipgloss.NewStyle().Foreground(p.muted),
		Input:    lipgloss.NewStyle().Foreground(p.text),
		Button:   lipgloss.NewStyle().Foreground(p.buttonText).Background(p.button).Padding(0, 1),
		Border: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.border).
			Padding(0, 1),

		BoxUnchecked: "☐",
		BoxChecked:   "☑",
		ThemeIcon:    "☀",
	}
	if th == model.ThemeDark {
		s.ThemeIcon = "☾"
	}
	return s
}

// DetectTheme is the platform default: dark when the terminal background is dark.
func DetectTheme() model.Theme {
	if lipgloss.HasDarkBackground() {
		return model.ThemeDark
	}
	return model.ThemeLight
}
