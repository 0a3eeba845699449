package events

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"kaspa-wallet-tui/wallet"
)

func TestChannelFIFO(t *testing.T) {
	ch := NewChannel()
	for i := uint64(0); i < 5; i++ {
		require.NoError(t, ch.Send(Wallet{Event: wallet.DAAScoreChange{Score: i}}))
	}
	require.Equal(t, 5, ch.Len())

	first, ok := ch.TryRecv()
	require.True(t, ok)
	require.Equal(t, uint64(0), first.(Wallet).Event.(wallet.DAAScoreChange).Score)

	rest := ch.Drain()
	require.Len(t, rest, 4)
	for i, ev := range rest {
		require.Equal(t, uint64(i+1), ev.(Wallet).Event.(wallet.DAAScoreChange).Score)
	}
	require.Zero(t, ch.Len())
	require.Nil(t, ch.Drain())

	_, ok = ch.TryRecv()
	require.False(t, ok)
}

func TestChannelNotifyCoalesces(t *testing.T) {
	ch := NewChannel()
	require.NoError(t, ch.Send(Repaint{}))
	require.NoError(t, ch.Send(Repaint{}))

	select {
	case <-ch.Notify():
	default:
		t.Fatal("expected a pending wake-up")
	}
	select {
	case <-ch.Notify():
		t.Fatal("wake-ups should coalesce")
	default:
	}
	require.Len(t, ch.Drain(), 2)
}

func TestChannelConcurrentProducers(t *testing.T) {
	ch := NewChannel()
	const producers, each = 8, 250

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < each; i++ {
				_ = ch.Send(Repaint{})
			}
		}()
	}
	wg.Wait()
	require.Len(t, ch.Drain(), producers*each)
}

func TestChannelClose(t *testing.T) {
	ch := NewChannel()
	require.NoError(t, ch.Send(Error{Err: errors.New("boom")}))
	ch.Close()

	require.ErrorIs(t, ch.Send(Repaint{}), ErrClosed)
	require.Len(t, ch.Drain(), 1)
}
