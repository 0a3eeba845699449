package log

import (
	"fmt"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"kaspa-wallet-tui/helpers"
	"kaspa-wallet-tui/styles"
)

// Nav returns the navigation bar for the log view
func Nav(width int) string {
	left := styles.Key("↑/↓") + " scroll   " +
		styles.Key("g/G") + " top/bottom   " +
		styles.Key("c") + " clear   " +
		styles.Key("Esc") + " back"

	return styles.NavStyle.Width(width).Render(left)
}

// Height returns the viewport height that fits the given screen height
func Height(height int) int {
	// header, nav, title and borders
	return helpers.Max(3, height-10)
}

// Render renders the log panel
func Render(width int, verbose bool, vp viewport.Model) string {
	title := lipgloss.NewStyle().
		Foreground(styles.CAccent2).
		Bold(true).
		Render("Log")

	if verbose {
		title += styles.MutedStyle.Render("  debug")
	}

	border := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.CBorder).
		Padding(0, 1).
		Width(helpers.Max(0, width-2))

	if vp.TotalLineCount() > vp.Height {
		title += styles.MutedStyle.Render(fmt.Sprintf(" [%d%%]", int(vp.ScrollPercent()*100)))
	}

	return border.Render(title + "\n\n" + vp.View())
}
