package core

import (
	"time"

	"kaspa-wallet-tui/events"
)

const (
	notifyTTL        = 4 * time.Second
	notifyErrorTTL   = 8 * time.Second
	maxNotifications = 5
)

type Notification struct {
	Level   events.NotifyLevel
	Message string
	Expires time.Time
}

// Notifications is the toast stack shown over the current module.
type Notifications struct {
	items []Notification
	now   func() time.Time
}

func NewNotifications() *Notifications {
	return &Notifications{now: time.Now}
}

func (n *Notifications) Push(level events.NotifyLevel, msg string) {
	ttl := notifyTTL
	if level == events.LevelError {
		ttl = notifyErrorTTL
	}
	n.items = append(n.items, Notification{Level: level, Message: msg, Expires: n.now().Add(ttl)})
	if len(n.items) > maxNotifications {
		n.items = n.items[len(n.items)-maxNotifications:]
	}
}

// Active prunes expired toasts and returns the rest, oldest first.
func (n *Notifications) Active() []Notification {
	now := n.now()
	kept := n.items[:0]
	for _, it := range n.items {
		if now.Before(it.Expires) {
			kept = append(kept, it)
		}
	}
	n.items = kept
	return append([]Notification(nil), kept...)
}

func (n *Notifications) Clear() {
	n.items = nil
}
