package wallet

// Event is a notification emitted by the wallet backend.
type Event interface {
	walletEvent()
}

type (
	Connect struct {
		URL     string
		Network NetworkID
	}

	Disconnect struct {
		URL     string
		Network NetworkID
	}

	SyncStateChange struct {
		State SyncState
	}

	ServerStatus struct {
		IsSynced      bool
		ServerVersion string
		URL           string
		Network       NetworkID
	}

	DAAScoreChange struct {
		Score uint64
	}

	// WalletOpen carries the descriptors of every account in the wallet.
	// A nil slice means the backend did not supply them.
	WalletOpen struct {
		Accounts []AccountDescriptor
	}

	WalletReload struct {
		Accounts []AccountDescriptor
	}

	WalletClose struct{}

	WalletError struct {
		Message string
	}

	WalletHint struct {
		Hint *Hint
	}

	// BalanceUpdate replaces the balance tuple of an account. A nil Balance
	// means the backend has no balance for the account yet.
	BalanceUpdate struct {
		ID              AccountID
		Balance         *Balance
		MatureUtxoSize  int
		PendingUtxoSize int
	}

	External   struct{ Record TransactionRecord }
	PendingTx  struct{ Record TransactionRecord }
	Maturity   struct{ Record TransactionRecord }
	OutgoingTx struct{ Record TransactionRecord }
	Reorg      struct{ Record TransactionRecord }

	UtxoIndexNotEnabled struct {
		URL string
	}
)

func (Connect) walletEvent()             {}
func (Disconnect) walletEvent()          {}
func (SyncStateChange) walletEvent()     {}
func (ServerStatus) walletEvent()        {}
func (DAAScoreChange) walletEvent()      {}
func (WalletOpen) walletEvent()          {}
func (WalletReload) walletEvent()        {}
func (WalletClose) walletEvent()         {}
func (WalletError) walletEvent()         {}
func (WalletHint) walletEvent()          {}
func (BalanceUpdate) walletEvent()       {}
func (External) walletEvent()            {}
func (PendingTx) walletEvent()           {}
func (Maturity) walletEvent()            {}
func (OutgoingTx) walletEvent()          {}
func (Reorg) walletEvent()               {}
func (UtxoIndexNotEnabled) walletEvent() {}
