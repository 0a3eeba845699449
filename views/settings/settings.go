package settings

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"kaspa-wallet-tui/config"
	"kaspa-wallet-tui/styles"
)

// Nav returns the navigation bar for settings view
func Nav(width int, adding bool) string {
	var left string
	if adding {
		left = strings.Join([]string{
			styles.Key("Enter") + " next",
			styles.Key("Esc") + " cancel",
		}, "   ")
	} else {
		left = strings.Join([]string{
			styles.Key("↑/↓") + " select",
			styles.Key("Enter") + " activate",
			styles.Key("n") + " add",
			styles.Key("d") + " delete",
			styles.Key("Esc") + " back",
		}, "   ")
	}

	return styles.NavStyle.Width(width).Render(left)
}

// Render renders the node settings view
func Render(cfg config.Config, selectedIdx int, path string) string {
	h := styles.TitleStyle.Render("Node Settings")

	lines := []string{h, styles.MutedStyle.Render("Network: " + cfg.Network), ""}

	if len(cfg.Nodes) == 0 {
		lines = append(lines, styles.MutedStyle.Render("No nodes configured."))
		lines = append(lines, "")
		lines = append(lines, styles.MutedStyle.Render("Press ")+styles.Key("n")+styles.MutedStyle.Render(" to add your first node."))
	} else {
		lines = append(lines, styles.MutedStyle.Render("Configured nodes:"))
		lines = append(lines, "")

		for i, node := range cfg.Nodes {
			var marker string
			if node.Active {
				marker = lipgloss.NewStyle().Foreground(styles.CAccent).Render("● ")
			} else {
				marker = styles.MutedStyle.Render("○ ")
			}

			nameStyle := lipgloss.NewStyle().Foreground(styles.CText)
			urlStyle := styles.MutedStyle

			if i == selectedIdx {
				nameStyle = nameStyle.Background(styles.CPanel).Foreground(styles.CAccent2).Bold(true)
				urlStyle = urlStyle.Background(styles.CPanel)
				marker = lipgloss.NewStyle().Foreground(styles.CAccent2).Render("▶ ")
			}

			lines = append(lines, marker+nameStyle.Render(node.Name))
			lines = append(lines, "  "+urlStyle.Render(node.URL))
			lines = append(lines, "")
		}
	}

	if cfg.Adaptor.Enabled {
		lines = append(lines, styles.MutedStyle.Render("Adaptor listening on ")+lipgloss.NewStyle().Foreground(styles.CText).Render(cfg.Adaptor.Listen))
	}
	if path != "" {
		lines = append(lines, styles.MutedStyle.Render("Saved to "+path))
	}

	return strings.Join(lines, "\n")
}
