package wallets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"kaspa-wallet-tui/helpers"
	"kaspa-wallet-tui/styles"
	"kaspa-wallet-tui/wallet"
)

// Nav returns the navigation bar for the wallet list
func Nav(width int, prompting, open bool) string {
	var hints []string
	if prompting {
		hints = []string{
			styles.Key("Enter") + " open",
			styles.Key("Ctrl+U") + " clear",
			styles.Key("Esc") + " cancel",
		}
	} else {
		hints = []string{
			styles.Key("↑/↓") + " move",
			styles.Key("Enter") + " open",
			styles.Key("r") + " refresh",
		}
		if open {
			hints = append(hints, styles.Key("x")+" close wallet")
		}
		hints = append(hints, styles.Key("Esc")+" back")
	}

	return styles.NavStyle.Width(width).Render(strings.Join(hints, "   "))
}

// RenderList renders the wallet files
func RenderList(list []wallet.WalletDescriptor, selectedIdx int, current string) string {
	if len(list) == 0 {
		return styles.MutedStyle.Render("No wallets found. Press 'r' to ask the node again.")
	}

	var items []string
	for i, w := range list {
		var (
			itemStyle lipgloss.Style
			marker    string
			file      string
		)
		if i == selectedIdx {
			marker = lipgloss.NewStyle().Foreground(styles.CAccent2).Bold(true).Render("▶ ")
			itemStyle = lipgloss.NewStyle().Foreground(styles.CAccent2).Bold(true)
			file = lipgloss.NewStyle().Foreground(styles.CText).Render(w.Filename)
		} else {
			marker = "  "
			itemStyle = lipgloss.NewStyle().Foreground(styles.CText)
			file = helpers.FadeString(w.Filename, "#3A8F86", "#8AA0B6")
		}

		label := w.Label()
		if w.Filename == current {
			label = "✓ " + label
		}
		items = append(items, marker+itemStyle.Render(label)+"\n  "+file)
	}

	return strings.Join(items, "\n\n")
}

// Render renders the wallet list with the secret prompt below it
func Render(list []wallet.WalletDescriptor, selectedIdx int, current, prompt string, opening bool, spinnerView string) string {
	header := styles.TitleStyle.Render("Wallets")
	subtitle := styles.MutedStyle.Render("Pick a wallet file to open")

	content := header + "\n" + subtitle + "\n\n" + RenderList(list, selectedIdx, current)

	switch {
	case opening:
		content += "\n\n" + spinnerView + " opening wallet…"
	case prompt != "":
		content += "\n\n" + styles.PanelStyle.Render(prompt)
	}

	statusBar := styles.MutedStyle.Render(fmt.Sprintf("%d wallets", len(list)))
	return content + "\n\n" + statusBar
}
