package main

import (
	tea "github.com/charmbracelet/bubbletea"

	"kaspa-wallet-tui/core"
)

// -------------------- UPDATE --------------------

// globalKeys maps hotkeys that work from every module unless it captures input.
var globalKeys = map[string]core.ModuleKind{
	"h": core.KindOverview,
	"a": core.KindAccountManager,
	"w": core.KindWalletOpen,
	"s": core.KindSettings,
	"l": core.KindLogs,
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	c := m.core
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.w, m.h = msg.Width, msg.Height
		return m, c.Broadcast(msg)

	case eventsReadyMsg:
		c.Drain()
		if c.ShouldQuit() {
			c.Logger().Info("exit requested")
			return m, tea.Quit
		}
		return m, tea.Batch(
			c.Broadcast(core.RefreshMsg{}),
			waitForEvents(c.Interop().Events()),
		)

	case tickMsg:
		return m, tick()

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}

	// spinner ticks, clipboard results and debounce ticks find their owner
	return m, c.Broadcast(msg)
}

func (m *model) handleKey(msg tea.KeyMsg) tea.Cmd {
	c := m.core
	if msg.String() == "ctrl+c" {
		return tea.Quit
	}
	if c.UpdateAdaptor(msg) {
		return nil
	}

	if !c.CapturesInput() {
		key := msg.String()
		if kind, ok := globalKeys[key]; ok && c.Registry().Has(kind) {
			if c.Registry().CurrentKind() != kind {
				c.Select(kind)
			}
			return nil
		}
		switch key {
		case "q":
			return tea.Quit
		case "esc":
			if c.Exception() != "" {
				c.DismissException()
				return nil
			}
			if c.Back() {
				return nil
			}
		}
	}

	return c.Registry().Current().Update(c, msg)
}
