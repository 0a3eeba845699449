package core

import "kaspa-wallet-tui/wallet"

// State is the connection and sync snapshot. Only the reducer mutates it;
// everything else reads it through the accessors.
type State struct {
	connected     bool
	synced        *bool
	syncState     *wallet.SyncState
	serverVersion string
	url           string
	network       wallet.NetworkID
	daaScore      *uint64
	open          bool
}

func (s *State) IsConnected() bool { return s.connected }
func (s *State) IsOpen() bool      { return s.open }

// IsSynced reports whether the node declared itself synced or the sync
// descriptor reached completion.
func (s *State) IsSynced() bool {
	if s.synced != nil && *s.synced {
		return true
	}
	return s.syncState != nil && s.syncState.IsSynced()
}

// SyncedFlag returns the explicit synced flag, or nil when unknown.
func (s *State) SyncedFlag() *bool {
	if s.synced == nil {
		return nil
	}
	v := *s.synced
	return &v
}

func (s *State) SyncState() (wallet.SyncState, bool) {
	if s.syncState == nil {
		return wallet.SyncState{}, false
	}
	return *s.syncState, true
}

func (s *State) ServerVersion() string     { return s.serverVersion }
func (s *State) URL() string               { return s.url }
func (s *State) Network() wallet.NetworkID { return s.network }

func (s *State) DAAScore() (uint64, bool) {
	if s.daaScore == nil {
		return 0, false
	}
	return *s.daaScore, true
}

// resetConnection returns every connection-derived field to unknown. The
// open flag belongs to the wallet and is kept.
func (s *State) resetConnection() {
	*s = State{open: s.open}
}

func (s *State) setSynced(v bool) {
	s.synced = &v
}
