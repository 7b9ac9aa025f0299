// Package theme holds the terminal styles used by the drill and stats
// commands.
package theme

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
)

var (
	Primary   = lipgloss.Color("#8B5CF6") // purple
	Secondary = lipgloss.Color("#14B8A6") // teal
	Accent    = lipgloss.Color("#F97316") // orange
	Success   = lipgloss.Color("#22C55E")
	Error     = lipgloss.Color("#F43F5E")
	Text      = lipgloss.Color("#F8FAFC")
	TextDim   = lipgloss.Color("#94A3B8")
	Border    = lipgloss.Color("#334155")
)

var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Heading = lipgloss.NewStyle().
		Bold(true).
		Foreground(Secondary)

	Dim = lipgloss.NewStyle().
		Foreground(TextDim)

	// Prompt is the card question.
	Prompt = lipgloss.NewStyle().
		Bold(true).
		Foreground(Text)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	// NearMiss marks an answer that belongs to some other card.
	NearMiss = lipgloss.NewStyle().
			Foreground(Accent)

	Box = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)
)

// Bar renders a labelled horizontal bar filled to fraction (clamped to
// [0, 1]) followed by the percentage. width covers the whole line.
func Bar(label string, fraction float64, width int) string {
	fraction = min(max(fraction, 0), 1)

	var b strings.Builder
	if label != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(Text).Render(label))
		b.WriteString("  ")
	}
	const pctWidth = 6
	barWidth := max(width-lipgloss.Width(b.String())-pctWidth, 4)
	filled := int(float64(barWidth) * fraction)

	b.WriteString(lipgloss.NewStyle().Background(Secondary).Render(strings.Repeat(" ", filled)))
	b.WriteString(lipgloss.NewStyle().Background(Border).Render(strings.Repeat(" ", barWidth-filled)))
	b.WriteString(Dim.Render(fmt.Sprintf("  %3d%%", int(fraction*100+0.5))))
	return b.String()
}
