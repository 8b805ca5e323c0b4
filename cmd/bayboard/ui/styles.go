// Package ui provides terminal styling and widgets for the bayboard
// CLI: the static table renderer and the interactive board view.
package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/MahlumInnovationsLLC/MasterScheduler-sub010/internal/phase"
)

// Phase segment colors, one per production stage.
var (
	ColorFab        = lipgloss.Color("#2196F3") // blue
	ColorPaint      = lipgloss.Color("#9C27B0") // purple
	ColorProduction = lipgloss.Color("#8BC34A") // green
	ColorIT         = lipgloss.Color("#FFC107") // amber
	ColorNTC        = lipgloss.Color("#FF7043") // orange
	ColorQC         = lipgloss.Color("#26A69A") // teal

	ColorMuted  = lipgloss.Color("240")
	ColorAccent = lipgloss.Color("#8BC34A")
	ColorError  = lipgloss.Color("#e53935")
)

// PhaseColor returns the display color for a phase segment.
func PhaseColor(p phase.Phase) lipgloss.Color {
	switch p {
	case phase.Fab:
		return ColorFab
	case phase.Paint:
		return ColorPaint
	case phase.Production:
		return ColorProduction
	case phase.IT:
		return ColorIT
	case phase.NTC:
		return ColorNTC
	default:
		return ColorQC
	}
}

// Styles holds the shared lipgloss styles for CLI output.
type Styles struct {
	Title    lipgloss.Style
	Bold     lipgloss.Style
	Body     lipgloss.Style
	Muted    lipgloss.Style
	Error    lipgloss.Style
	Selected lipgloss.Style
}

// DefaultStyles returns the standard style set.
func DefaultStyles() Styles {
	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(ColorAccent),
		Bold:     lipgloss.NewStyle().Bold(true),
		Body:     lipgloss.NewStyle(),
		Muted:    lipgloss.NewStyle().Foreground(ColorMuted),
		Error:    lipgloss.NewStyle().Foreground(ColorError),
		Selected: lipgloss.NewStyle().Bold(true).Reverse(true),
	}
}
