package accounts

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"kaspa-wallet-tui/helpers"
	"kaspa-wallet-tui/styles"
)

// Row is one account in the picker
type Row struct {
	Name    string
	Address string
	Balance string
}

// Nav returns the navigation bar for the account picker
func Nav(width int) string {
	left := strings.Join([]string{
		styles.Key("↑/↓") + " move",
		styles.Key("Enter") + " select",
		styles.Key("Esc") + " back",
	}, "   ")

	return styles.NavStyle.Width(width).Render(left)
}

// Render renders the account picker
func Render(rows []Row, selectedIdx int) string {
	h := styles.TitleStyle.Render("Select Account")

	if len(rows) == 0 {
		return h + "\n\n" + styles.MutedStyle.Render("Open a wallet to see its accounts.")
	}

	items := make([]string, 0, len(rows))
	for i, r := range rows {
		marker := "  "
		nameStyle := lipgloss.NewStyle().Foreground(styles.CText)
		addr := helpers.FadeString(helpers.ShortenAddr(r.Address), "#3A8F86", "#8AA0B6")
		if i == selectedIdx {
			marker = lipgloss.NewStyle().Foreground(styles.CAccent2).Bold(true).Render("▶ ")
			nameStyle = nameStyle.Foreground(styles.CAccent2).Bold(true)
			addr = lipgloss.NewStyle().Foreground(styles.CText).Render(r.Address)
		}
		items = append(items, marker+nameStyle.Render(r.Name)+"  "+styles.LabelStyle.Render(r.Balance)+"\n  "+addr)
	}

	return h + "\n\n" + strings.Join(items, "\n\n")
}
