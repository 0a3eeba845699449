package primitives

import (
	"testing"

	"github.com/stretchr/testify/require"

	"kaspa-wallet-tui/wallet"
)

func record(id string, value uint64) wallet.TransactionRecord {
	return wallet.TransactionRecord{
		ID:      wallet.TransactionID(id),
		Binding: wallet.AccountBinding("acc"),
		Value:   value,
	}
}

func TestReplaceOrInsertKeepsPosition(t *testing.T) {
	c := NewCollection[wallet.TransactionID, *Transaction]()
	c.ReplaceOrInsert(NewTransaction(record("a", 1)))
	c.ReplaceOrInsert(NewTransaction(record("b", 2)))
	c.ReplaceOrInsert(NewTransaction(record("c", 3)))

	c.ReplaceOrInsert(NewTransaction(record("b", 20)))
	require.Equal(t, 3, c.Len())

	items := c.Items()
	require.Equal(t, wallet.TransactionID("b"), items[1].Key())
	require.Equal(t, uint64(20), items[1].Record.Value)

	got, ok := c.Get("b")
	require.True(t, ok)
	require.Equal(t, uint64(20), got.Record.Value)
}

func TestReplaceOrInsertIdempotent(t *testing.T) {
	c := NewCollection[wallet.TransactionID, *Transaction]()
	rec := record("x", 5)
	c.ReplaceOrInsert(NewTransaction(rec))
	c.ReplaceOrInsert(NewTransaction(rec))
	require.Equal(t, 1, c.Len())
}

func TestRemove(t *testing.T) {
	c := NewCollection[wallet.TransactionID, *Transaction]()
	c.Load([]*Transaction{
		NewTransaction(record("a", 1)),
		NewTransaction(record("b", 2)),
		NewTransaction(record("c", 3)),
	})

	require.False(t, c.Remove("missing"))
	require.Equal(t, 3, c.Len())

	require.True(t, c.Remove("a"))
	require.Equal(t, 2, c.Len())
	require.False(t, c.Contains("a"))

	// indices after the removed entry must still resolve
	got, ok := c.Get("c")
	require.True(t, ok)
	require.Equal(t, uint64(3), got.Record.Value)

	first, ok := c.First()
	require.True(t, ok)
	require.Equal(t, wallet.TransactionID("b"), first.Key())

	rev := c.Reverse()
	require.Equal(t, wallet.TransactionID("c"), rev[0].Key())
}

func TestZeroValueCollection(t *testing.T) {
	var c Collection[wallet.TransactionID, *Transaction]
	require.True(t, c.IsEmpty())
	require.False(t, c.Remove("a"))
	c.ReplaceOrInsert(NewTransaction(record("a", 1)))
	require.Equal(t, 1, c.Len())
}
