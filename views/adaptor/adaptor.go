package adaptor

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"kaspa-wallet-tui/styles"
)

// Request is a companion request waiting on the user
type Request struct {
	ID      string
	Kind    string
	Summary string
}

// Nav returns the navigation bar shown while a request is pending
func Nav(width int) string {
	left := strings.Join([]string{
		styles.Key("Enter") + " confirm",
	}, "   ")

	return styles.NavStyle.Width(width).Render(left)
}

func cardStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Width(56).
		Align(lipgloss.Center, lipgloss.Center).
		Background(styles.CPanel).
		Padding(1, 2).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("69"))
}

// Render renders the request card centered in the available area
func Render(width, height int, req Request) string {
	h := styles.TitleStyle.Render("Companion Request")

	id := req.ID
	if id == "" {
		id = "—"
	}
	meta := styles.MutedStyle.Render("request " + id)

	kind := lipgloss.NewStyle().
		Foreground(styles.CAccent).
		Render("[" + req.Kind + "]")

	body := lipgloss.NewStyle().
		Foreground(styles.CText).
		Bold(true).
		Render(req.Summary)

	help := styles.MutedStyle.Render("Press ") + styles.Key("Enter") + styles.MutedStyle.Render(" to answer the request.")

	card := cardStyle().Render(h + "\n" + meta + "\n\n" + kind + "\n" + body + "\n\n" + help)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

// Badge is the one-line indicator shown in the header while a request waits
func Badge(kind string) string {
	return styles.WarnStyle.Render("● adaptor: " + kind)
}
