package main

import (
	tea "github.com/charmbracelet/bubbletea"

	"kaspa-wallet-tui/core"
)

// -------------------- MODEL --------------------

// model is the bubbletea root. All application state lives in the core;
// the model only knows the terminal size.
type model struct {
	core *core.Core
	w, h int
}

func newModel(c *core.Core) *model {
	return &model{core: c}
}

// Init implements tea.Model and arms the event wait
func (m *model) Init() tea.Cmd {
	return tea.Batch(
		waitForEvents(m.core.Interop().Events()),
		tick(),
		m.core.Broadcast(core.RefreshMsg{}),
	)
}
