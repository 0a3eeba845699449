package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// Theme colors
var (
	CBg      = lipgloss.Color("#0B0F14") // near-black
	CPanel   = lipgloss.Color("#0F1720")
	CBorder  = lipgloss.Color("#3A8F86")
	CMuted   = lipgloss.Color("#8AA0B6")
	CText    = lipgloss.Color("#D6E2F0")
	CAccent  = lipgloss.Color("#70C7BA") // kaspa teal
	CAccent2 = lipgloss.Color("#79C0FF")
	CWarn    = lipgloss.Color("#FFA657")
	CError   = lipgloss.Color("#FF5F5F")
	COk      = lipgloss.Color("#7EE787")
)

// Shared styles
var (
	AppStyle = lipgloss.NewStyle().
			Background(CBg).
			Foreground(CText)

	TitleStyle = lipgloss.NewStyle().
			Foreground(CAccent).
			Bold(true)

	PanelStyle = lipgloss.NewStyle().
			Background(CPanel).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(CBorder).
			Padding(1, 2)

	NavStyle = lipgloss.NewStyle().
			Background(CPanel).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(CBorder).
			Padding(0, 1)

	HotkeyStyle = lipgloss.NewStyle().
			Foreground(CMuted)

	HotkeyKeyStyle = lipgloss.NewStyle().
			Foreground(CAccent).
			Bold(true)

	MutedStyle   = lipgloss.NewStyle().Foreground(CMuted)
	ErrorStyle   = lipgloss.NewStyle().Foreground(CError)
	WarnStyle    = lipgloss.NewStyle().Foreground(CWarn)
	SuccessStyle = lipgloss.NewStyle().Foreground(COk)
	LabelStyle   = lipgloss.NewStyle().Foreground(CAccent2).Bold(true)
)

// Key renders a key with accent styling
func Key(s string) string {
	return HotkeyKeyStyle.Render(s)
}

// Hint renders a "key action" pair for navigation bars
func Hint(key, action string) string {
	return Key(key) + " " + HotkeyStyle.Render(action)
}

// LogStyles is the palette used by the diagnostics logger
func LogStyles() *log.Styles {
	return &log.Styles{
		Timestamp: lipgloss.NewStyle().Foreground(CMuted),
		Caller:    lipgloss.NewStyle().Faint(true),
		Prefix:    lipgloss.NewStyle().Bold(true).Foreground(CAccent2),
		Message:   lipgloss.NewStyle().Foreground(CText),
		Key:       lipgloss.NewStyle().Foreground(CAccent),
		Value:     lipgloss.NewStyle().Foreground(CText),
		Separator: lipgloss.NewStyle().Faint(true),
		Levels: map[log.Level]lipgloss.Style{
			log.DebugLevel: lipgloss.NewStyle().Foreground(CMuted).SetString("DEBUG"),
			log.InfoLevel:  lipgloss.NewStyle().Foreground(CAccent2).SetString("INFO"),
			log.WarnLevel:  lipgloss.NewStyle().Foreground(CWarn).SetString("WARN"),
			log.ErrorLevel: lipgloss.NewStyle().Foreground(CError).SetString("ERROR"),
		},
	}
}
