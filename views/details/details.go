package details

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"kaspa-wallet-tui/styles"
)

// Account is what the details view shows for the selected account
type Account struct {
	Name         string
	ID           string
	Kind         string
	Address      string
	Mature       string
	Pending      string
	MatureUtxos  int
	PendingUtxos int
	HasBalance   bool
	Transactions []Transaction
	Total        uint64
	Loading      bool
}

// Transaction is one history row
type Transaction struct {
	ID        string
	Direction string
	Value     string
	DAAScore  uint64
	Incoming  bool
}

// Nav returns the navigation bar for the details view
func Nav(width int, multi bool) string {
	hints := []string{
		styles.Key("Enter") + " send",
		styles.Key("t") + " transfer",
		styles.Key("c") + " copy address",
		styles.Key("r") + " QR code",
	}
	if multi {
		hints = append(hints, styles.Key("x")+" switch account")
	}
	hints = append(hints, styles.Key("Esc")+" back")

	return styles.NavStyle.Width(width).Render(strings.Join(hints, "   "))
}

// Render renders the account details view
func Render(acc Account, qr, copiedMsg, spinnerView string) string {
	h := styles.TitleStyle.Render("Account Details")

	addrStyle := lipgloss.NewStyle().Foreground(styles.CMuted).Underline(true)
	sub := addrStyle.Render(acc.Address)
	if acc.Name != "" {
		nameStyle := lipgloss.NewStyle().Foreground(styles.CAccent2).Italic(true)
		sub = nameStyle.Render("\""+acc.Name+"\"") + "  " + sub
	}
	if copiedMsg != "" {
		sub += "  " + lipgloss.NewStyle().Foreground(styles.CAccent).Render(copiedMsg)
	}

	meta := styles.MutedStyle.Render(fmt.Sprintf("%s  ·  %s", acc.Kind, acc.ID))
	lines := []string{h, sub, meta, ""}

	if qr != "" {
		lines = append(lines, qr, "")
	}

	if !acc.HasBalance {
		lines = append(lines, spinnerView+" waiting for balance…")
	} else {
		lines = append(lines,
			fmt.Sprintf("%s  %s  %s",
				styles.LabelStyle.Render("Balance"),
				lipgloss.NewStyle().Foreground(styles.CText).Render(acc.Mature),
				styles.MutedStyle.Render(fmt.Sprintf("(%d UTXOs)", acc.MatureUtxos)),
			),
		)
		if acc.Pending != "" {
			lines = append(lines, fmt.Sprintf("%s  %s  %s",
				styles.LabelStyle.Render("Pending"),
				styles.WarnStyle.Render(acc.Pending),
				styles.MutedStyle.Render(fmt.Sprintf("(%d UTXOs)", acc.PendingUtxos)),
			))
		}
	}
	lines = append(lines, "")

	if acc.Loading {
		return strings.Join(append(lines, spinnerView+" loading transactions…"), "\n")
	}

	if len(acc.Transactions) == 0 {
		lines = append(lines, styles.MutedStyle.Render("No transactions yet."))
		return strings.Join(lines, "\n")
	}

	lines = append(lines, styles.MutedStyle.Render(fmt.Sprintf("Transactions (%d of %d)", len(acc.Transactions), acc.Total)))
	for _, tx := range acc.Transactions {
		valueStyle := styles.ErrorStyle
		if tx.Incoming {
			valueStyle = styles.SuccessStyle
		}
		row := fmt.Sprintf("%-9s %s  %s  %s",
			lipgloss.NewStyle().Foreground(styles.CAccent).Render(tx.Direction),
			valueStyle.Render(tx.Value),
			styles.MutedStyle.Render(fmt.Sprintf("DAA %d", tx.DAAScore)),
			styles.MutedStyle.Render(tx.ID),
		)
		lines = append(lines, row)
	}

	return strings.Join(lines, "\n")
}
