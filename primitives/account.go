package primitives

import (
	"sync"
	"sync/atomic"

	"kaspa-wallet-tui/wallet"
)

// Transaction is a record as held by an account.
type Transaction struct {
	Record wallet.TransactionRecord
}

func (t *Transaction) Key() wallet.TransactionID {
	return t.Record.ID
}

func NewTransaction(rec wallet.TransactionRecord) *Transaction {
	return &Transaction{Record: rec}
}

type TransactionCollection = Collection[wallet.TransactionID, *Transaction]

// BalanceInfo is replaced as a whole on every update.
type BalanceInfo struct {
	Balance         *wallet.Balance
	MatureUtxoSize  int
	PendingUtxoSize int
}

// Account is shared between the reducer, which mutates it, and modules and
// tasks which read it. Every field is guarded.
type Account struct {
	id wallet.AccountID

	mtx          sync.RWMutex
	descriptor   wallet.AccountDescriptor
	balance      *BalanceInfo
	transactions *TransactionCollection

	totalTransactions atomic.Uint64
	loading           atomic.Bool
}

func (a *Account) Key() wallet.AccountID {
	return a.id
}

func NewAccount(desc wallet.AccountDescriptor) *Account {
	return &Account{
		id:           desc.ID,
		descriptor:   desc,
		transactions: NewCollection[wallet.TransactionID, *Transaction](),
	}
}

func (a *Account) ID() wallet.AccountID {
	return a.id
}

func (a *Account) Descriptor() wallet.AccountDescriptor {
	a.mtx.RLock()
	defer a.mtx.RUnlock()
	return a.descriptor
}

func (a *Account) UpdateDescriptor(desc wallet.AccountDescriptor) {
	a.mtx.Lock()
	a.descriptor = desc
	a.mtx.Unlock()
}

func (a *Account) Name() string {
	return a.Descriptor().Name
}

// NameOrID returns the account name, falling back to the short id.
func (a *Account) NameOrID() string {
	if n := a.Name(); n != "" {
		return n
	}
	return a.id.Short()
}

func (a *Account) ReceiveAddress() string {
	return a.Descriptor().ReceiveAddress
}

// Balance returns a snapshot of the last balance update, or nil.
func (a *Account) Balance() *BalanceInfo {
	a.mtx.RLock()
	defer a.mtx.RUnlock()
	if a.balance == nil {
		return nil
	}
	b := *a.balance
	if b.Balance != nil {
		bal := *b.Balance
		b.Balance = &bal
	}
	return &b
}

func (a *Account) UpdateBalance(info BalanceInfo) {
	if info.MatureUtxoSize < 0 {
		info.MatureUtxoSize = 0
	}
	if info.PendingUtxoSize < 0 {
		info.PendingUtxoSize = 0
	}
	a.mtx.Lock()
	a.balance = &info
	a.mtx.Unlock()
}

// UpsertTransaction inserts rec or replaces the record with the same id.
func (a *Account) UpsertTransaction(rec wallet.TransactionRecord) {
	a.mtx.Lock()
	defer a.mtx.Unlock()
	if !a.transactions.Contains(rec.ID) {
		a.totalTransactions.Add(1)
	}
	a.transactions.ReplaceOrInsert(NewTransaction(rec))
}

func (a *Account) RemoveTransaction(id wallet.TransactionID) bool {
	a.mtx.Lock()
	defer a.mtx.Unlock()
	if !a.transactions.Remove(id) {
		return false
	}
	a.totalTransactions.Add(^uint64(0))
	return true
}

func (a *Account) Transaction(id wallet.TransactionID) (wallet.TransactionRecord, bool) {
	a.mtx.RLock()
	defer a.mtx.RUnlock()
	tx, ok := a.transactions.Get(id)
	if !ok {
		return wallet.TransactionRecord{}, false
	}
	return tx.Record, true
}

// Transactions returns records newest first.
func (a *Account) Transactions() []wallet.TransactionRecord {
	a.mtx.RLock()
	defer a.mtx.RUnlock()
	items := a.transactions.Reverse()
	out := make([]wallet.TransactionRecord, len(items))
	for i, tx := range items {
		out[i] = tx.Record
	}
	return out
}

func (a *Account) TransactionCount() int {
	a.mtx.RLock()
	defer a.mtx.RUnlock()
	return a.transactions.Len()
}

func (a *Account) TotalTransactions() uint64 {
	return a.totalTransactions.Load()
}

// LoadTransactions replaces the held records with recs, given newest first.
// total is the size of the full history, which may exceed len(recs).
func (a *Account) LoadTransactions(recs []wallet.TransactionRecord, total uint64) {
	a.mtx.Lock()
	a.transactions.Clear()
	for i := len(recs) - 1; i >= 0; i-- {
		a.transactions.ReplaceOrInsert(NewTransaction(recs[i]))
	}
	a.mtx.Unlock()
	a.totalTransactions.Store(total)
}

func (a *Account) SetLoading(v bool) {
	a.loading.Store(v)
}

func (a *Account) IsLoading() bool {
	return a.loading.Load()
}

type AccountCollection = Collection[wallet.AccountID, *Account]

func NewAccountCollection() *AccountCollection {
	return NewCollection[wallet.AccountID, *Account]()
}

// AccountsFromDescriptors builds accounts preserving descriptor order.
func AccountsFromDescriptors(descs []wallet.AccountDescriptor) []*Account {
	out := make([]*Account, 0, len(descs))
	for _, d := range descs {
		out = append(out, NewAccount(d))
	}
	return out
}
