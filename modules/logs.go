package modules

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"kaspa-wallet-tui/core"
	"kaspa-wallet-tui/helpers"
	logview "kaspa-wallet-tui/views/log"
)

// Logs shows the diagnostics buffer. The logger runs at debug level while
// this module is current.
type Logs struct {
	buffer *helpers.LogBuffer
	vp     viewport.Model
	shown  int
	follow bool
}

func NewLogs(buffer *helpers.LogBuffer) *Logs {
	return &Logs{
		buffer: buffer,
		vp:     viewport.New(80, 10),
		follow: true,
	}
}

func (l *Logs) Kind() core.ModuleKind { return core.KindLogs }
func (l *Logs) Init(*core.Core)        { l.refresh() }
func (l *Logs) Reset(*core.Core)       {}

// refresh copies new log output into the viewport.
func (l *Logs) refresh() {
	if n := l.buffer.Len(); n != l.shown {
		l.shown = n
		l.vp.SetContent(l.buffer.String())
		if l.follow {
			l.vp.GotoBottom()
		}
	}
}

func (l *Logs) Update(c *core.Core, msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		l.vp.Width = helpers.Max(0, msg.Width-6)
		l.vp.Height = logview.Height(msg.Height)
		l.shown = -1
	case tea.KeyMsg:
		switch msg.String() {
		case "g", "home":
			l.follow = false
			l.vp.GotoTop()
		case "G", "end":
			l.follow = true
			l.vp.GotoBottom()
		case "c":
			l.buffer.Reset()
			c.Logger().Debug("log cleared")
		default:
			l.vp, cmd = l.vp.Update(msg)
			l.follow = l.vp.AtBottom()
		}
	}
	l.refresh()
	return cmd
}

func (l *Logs) View(c *core.Core, width, height int) string {
	return logview.Render(width, c.VerboseLogging(), l.vp)
}

func (l *Logs) Nav(_ *core.Core, width int) string {
	return logview.Nav(width)
}
