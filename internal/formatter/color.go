package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Tiliavir/work-hours-logger/internal/model"
)

// Styles are named by what they mark, not by color.
var (
	textStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ebdbb2"))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#928374"))
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#fe8019")).Bold(true)
	strong     = textStyle.Bold(true)

	workStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#83a598"))
	breakStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#fabd2f"))
	metStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8ec07c"))
	overStyle  = breakStyle
	alertStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#fb4934"))
)

// KindStyle colors work and breaks apart.
func KindStyle(k model.Kind) lipgloss.Style {
	if k == model.KindBreak {
		return breakStyle
	}
	return workStyle
}

// KindBadge returns a colored label such as "● Work".
func KindBadge(k model.Kind) string {
	return KindStyle(k).Render("● " + k.Label())
}

// Header renders an upper-cased title over a rule of the same width.
func Header(text string) string {
	title := strings.ToUpper(text)
	return titleStyle.Render(title) + "\n" + mutedStyle.Render(strings.Repeat("─", len(title)))
}

func Dim(text string) string { return mutedStyle.Render(text) }
func Bold(text string) string { return strong.Render(text) }
func Alert(text string) string { return alertStyle.Render(text) }

// RenderBox wraps content in a rounded border, titled when title is set.
func RenderBox(title, content string) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(mutedStyle.GetForeground()).
		Padding(1, 2)
	if title != "" {
		content = titleStyle.Render(strings.ToUpper(title)) + "\n\n" + content
	}
	return box.Render(content)
}
