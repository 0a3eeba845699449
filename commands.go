package main

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"kaspa-wallet-tui/events"
)

const tickInterval = time.Second

// waitForEvents blocks until the channel signals pending events. It is
// re-armed after every drain.
func waitForEvents(ch *events.Channel) tea.Cmd {
	return func() tea.Msg {
		<-ch.Notify()
		return eventsReadyMsg{}
	}
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
