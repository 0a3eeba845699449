// Package events carries everything the background side of the application
// tells the UI: backend notifications, task failures and wake-up requests.
package events

import (
	"time"

	"kaspa-wallet-tui/wallet"
)

// Event is anything that can be posted to a Channel.
type Event interface {
	event()
}

type (
	// Wallet wraps a notification from the wallet backend.
	Wallet struct {
		Event wallet.Event
	}

	// Error reports a failed background task.
	Error struct {
		Err error
	}

	// WalletList is the sorted result of wallet enumeration.
	WalletList struct {
		Wallets []wallet.WalletDescriptor
	}

	Notify struct {
		Level   NotifyLevel
		Message string
	}

	// Metrics is a node throughput snapshot.
	Metrics struct {
		Peers       int
		TPS         float64
		MempoolSize uint64
		Time        time.Time
	}

	Feerate struct {
		Estimate wallet.FeerateEstimate
	}

	// Transactions is the result of a history page request. Err is set when
	// the page could not be fetched.
	Transactions struct {
		Account wallet.AccountID
		Page    wallet.TransactionsPage
		Err     error
	}

	// Repaint asks the UI to redraw without any state change.
	Repaint struct{}

	Exit struct{}
)

type NotifyLevel uint8

const (
	LevelInfo NotifyLevel = iota
	LevelSuccess
	LevelWarning
	LevelError
)

func (l NotifyLevel) String() string {
	switch l {
	case LevelSuccess:
		return "success"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

func (Wallet) event()       {}
func (Error) event()        {}
func (WalletList) event()   {}
func (Notify) event()       {}
func (Metrics) event()      {}
func (Feerate) event()      {}
func (Transactions) event() {}
func (Repaint) event()      {}
func (Exit) event()         {}
