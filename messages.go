package main

import "time"

// eventsReadyMsg is delivered when the event channel has something to drain.
type eventsReadyMsg struct{}

// tickMsg expires notifications and keeps the status bar current.
type tickMsg time.Time
