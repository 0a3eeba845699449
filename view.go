package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"kaspa-wallet-tui/core"
	"kaspa-wallet-tui/events"
	"kaspa-wallet-tui/helpers"
	"kaspa-wallet-tui/interop"
	"kaspa-wallet-tui/styles"
	adaptorview "kaspa-wallet-tui/views/adaptor"
)

// -------------------- VIEW --------------------

const headerHeight = 4

// navigator is implemented by modules with their own navigation bar.
type navigator interface {
	Nav(c *core.Core, width int) string
}

func (m *model) globalHeader() string {
	c := m.core
	st := c.State()
	availableWidth := helpers.Max(0, m.w-8)

	var status string
	switch {
	case !st.IsConnected():
		status = styles.ErrorStyle.Bold(true).Render("○ Disconnected")
	case !st.IsSynced():
		text := "Syncing"
		if ss, ok := st.SyncState(); ok {
			text = "Syncing " + ss.String()
		}
		status = styles.WarnStyle.Bold(true).Render("◐ " + text)
	default:
		status = lipgloss.NewStyle().Foreground(styles.CAccent).Bold(true).Render("● Connected")
	}

	titleText := lipgloss.NewStyle().Bold(true).Render(helpers.FadeString("kaspa wallet", "#70C7BA", "#82CFFD"))

	var right []string
	right = append(right, styles.LabelStyle.Render(string(c.Network())))
	if score, ok := st.DAAScore(); ok {
		right = append(right, styles.MutedStyle.Render(fmt.Sprintf("DAA %d", score)))
	}
	if mt, ok := c.Metrics(); ok {
		right = append(right, styles.MutedStyle.Render(fmt.Sprintf("%d peers  %.1f tps", mt.Peers, mt.TPS)))
	}
	if req, ok := c.AdaptorRequest(); ok {
		right = append(right, adaptorview.Badge(req.Request.Kind().String()))
	}
	rightText := strings.Join(right, "  ")

	statusWidth := lipgloss.Width(status)
	titleWidth := lipgloss.Width(titleText)
	rightWidth := lipgloss.Width(rightText)
	totalOtherWidth := statusWidth + titleWidth + rightWidth

	var headerLine string
	if totalOtherWidth+4 > availableWidth {
		headerLine = titleText + "\n" + status + "  " + rightText
	} else {
		remainingSpace := availableWidth - totalOtherWidth
		leftPadding := remainingSpace / 2
		rightPadding := remainingSpace - leftPadding
		headerLine = status +
			strings.Repeat(" ", helpers.Max(1, leftPadding)) +
			titleText +
			strings.Repeat(" ", helpers.Max(1, rightPadding)) +
			rightText
	}

	separator := lipgloss.NewStyle().
		Foreground(styles.CBorder).
		Render(strings.Repeat("─", availableWidth))

	return headerLine + "\n" + separator + "\n" + m.breadcrumb()
}

// breadcrumb shows the module tabs with the current one highlighted
func (m *model) breadcrumb() string {
	reg := m.core.Registry()
	var tabs []string
	for _, mod := range reg.Modules() {
		label := mod.Kind().String()
		if mod.Kind() == reg.CurrentKind() {
			tabs = append(tabs, styles.LabelStyle.Render("["+label+"]"))
		} else {
			tabs = append(tabs, styles.MutedStyle.Render(label))
		}
	}
	return strings.Join(tabs, "  ")
}

func (m *model) notifications() string {
	notes := m.core.Notifications().Active()
	if len(notes) == 0 {
		return ""
	}
	lines := make([]string, 0, len(notes))
	for _, n := range notes {
		var style lipgloss.Style
		switch n.Level {
		case events.LevelSuccess:
			style = styles.SuccessStyle
		case events.LevelWarning:
			style = styles.WarnStyle
		case events.LevelError:
			style = styles.ErrorStyle
		default:
			style = styles.MutedStyle
		}
		lines = append(lines, style.Render("• "+n.Message))
	}
	return strings.Join(lines, "\n")
}

func adaptorRequest(req interop.PendingRequest) adaptorview.Request {
	r := adaptorview.Request{ID: req.CorrelationID(), Kind: req.Request.Kind().String()}
	switch p := req.Request.(type) {
	case interop.TestRequest:
		r.Summary = p.Data
	case interop.SignMessageRequest:
		r.Summary = p.Message
	case interop.ConnectRequest:
		r.Summary = "Open a wallet and select an account to connect."
	}
	return r
}

func (m *model) View() string {
	if m.w == 0 {
		return ""
	}
	c := m.core
	panelWidth := helpers.Max(0, m.w-2)
	contentWidth := helpers.Max(0, m.w-8)
	bodyHeight := helpers.Max(1, m.h-headerHeight-10)

	headerPanel := styles.PanelStyle.Padding(0, 2).Width(panelWidth).Render(m.globalHeader())

	var pageContent, nav string
	if c.AdaptorBlocksUI() {
		req, _ := c.AdaptorRequest()
		pageContent = adaptorview.Render(contentWidth, bodyHeight, adaptorRequest(req))
		nav = adaptorview.Nav(panelWidth)
	} else {
		cur := c.Registry().Current()
		pageContent = cur.View(c, contentWidth, bodyHeight)
		if n, ok := cur.(navigator); ok {
			nav = n.Nav(c, panelWidth)
		}
	}

	parts := []string{headerPanel}
	if ex := c.Exception(); ex != "" {
		parts = append(parts, styles.WarnStyle.Bold(true).Width(panelWidth).Render("⚠ "+ex+"  (esc to dismiss)"))
	}
	parts = append(parts, styles.PanelStyle.Width(panelWidth).Render(pageContent))
	if notes := m.notifications(); notes != "" {
		parts = append(parts, notes)
	}
	if nav != "" {
		parts = append(parts, nav)
	}

	return styles.AppStyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}
