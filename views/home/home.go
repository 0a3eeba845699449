package home

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"kaspa-wallet-tui/helpers"
	"kaspa-wallet-tui/styles"
)

// Status is the node and wallet summary shown on the overview
type Status struct {
	Connected     bool
	Synced        bool
	SyncText      string
	URL           string
	Network       string
	ServerVersion string
	DAAScore      string
	Peers         string
	TPS           string
	Mempool       string
	WalletOpen    bool
	Hint          string
	Feerate       []FeerateRow
	Accounts      []AccountRow
	Total         string
}

// FeerateRow is one fee bucket
type FeerateRow struct {
	Label   string
	Feerate string
	ETA     string
}

// AccountRow is one account line
type AccountRow struct {
	Name    string
	Address string
	Balance string
}

// Nav returns the navigation bar for the overview
func Nav(width int) string {
	left := strings.Join([]string{
		styles.Key("f") + " fee estimate",
		styles.Key("a") + " accounts",
		styles.Key("w") + " wallets",
		styles.Key("s") + " settings",
		styles.Key("l") + " logs",
		styles.Key("q") + " quit",
	}, "   ")

	return styles.NavStyle.Width(width).Render(left)
}

// Render renders the overview
func Render(width int, st Status) string {
	h := styles.TitleStyle.Render("Overview")

	lines := []string{h, "", renderNode(st), ""}

	if len(st.Feerate) > 0 {
		lines = append(lines, styles.MutedStyle.Render("Fee rates"))
		for _, f := range st.Feerate {
			lines = append(lines, fmt.Sprintf("  %-9s %s  %s",
				styles.LabelStyle.Render(f.Label),
				lipgloss.NewStyle().Foreground(styles.CText).Render(f.Feerate),
				styles.MutedStyle.Render(f.ETA),
			))
		}
		lines = append(lines, "")
	}

	if !st.WalletOpen {
		lines = append(lines, styles.MutedStyle.Render("No wallet open. Press ")+styles.Key("w")+styles.MutedStyle.Render(" to pick one."))
	} else {
		lines = append(lines, renderAccounts(width, st)...)
	}

	if st.Hint != "" {
		lines = append(lines, "", styles.MutedStyle.Render("Hint: ")+helpers.FadeString(st.Hint, "#70C7BA", "#79C0FF"))
	}

	return strings.Join(lines, "\n")
}

func renderNode(st Status) string {
	var state string
	switch {
	case !st.Connected:
		state = styles.ErrorStyle.Render("● disconnected")
	case st.Synced:
		state = styles.SuccessStyle.Render("● synced")
	default:
		state = styles.WarnStyle.Render("● syncing")
		if st.SyncText != "" {
			state += styles.MutedStyle.Render("  " + st.SyncText)
		}
	}

	rows := []string{state}
	add := func(label, value string) {
		if value == "" {
			return
		}
		rows = append(rows, fmt.Sprintf("%s %s", styles.LabelStyle.Render(label), value))
	}
	add("Node   ", st.URL)
	add("Network", st.Network)
	add("Version", st.ServerVersion)
	add("DAA    ", st.DAAScore)
	if st.Peers != "" {
		add("Peers  ", st.Peers+styles.MutedStyle.Render("   TPS ")+st.TPS+styles.MutedStyle.Render("   mempool ")+st.Mempool)
	}
	return styles.PanelStyle.Render(strings.Join(rows, "\n"))
}

func renderAccounts(width int, st Status) []string {
	out := []string{styles.MutedStyle.Render(fmt.Sprintf("Accounts (%d)", len(st.Accounts)))}
	if len(st.Accounts) == 0 {
		return append(out, styles.MutedStyle.Render("  This wallet has no accounts."))
	}
	nameWidth := 0
	for _, a := range st.Accounts {
		nameWidth = helpers.Max(nameWidth, lipgloss.Width(a.Name))
	}
	for _, a := range st.Accounts {
		name := lipgloss.NewStyle().Width(nameWidth).Foreground(styles.CText).Render(a.Name)
		addr := helpers.FadeString(helpers.ShortenAddr(a.Address), "#70C7BA", "#79C0FF")
		out = append(out, fmt.Sprintf("  %s  %s  %s", name, addr, styles.LabelStyle.Render(a.Balance)))
	}
	if st.Total != "" {
		out = append(out, "", fmt.Sprintf("  %s %s", styles.MutedStyle.Render("Total"), styles.LabelStyle.Render(st.Total)))
	}
	return out
}
