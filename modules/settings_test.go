package modules

import (
	"testing"

	"github.com/stretchr/testify/require"

	"kaspa-wallet-tui/wallet"
)

type switchRecorder struct {
	urls     []string
	networks []wallet.NetworkID
}

func (s *switchRecorder) SetURL(url string, network wallet.NetworkID) {
	s.urls = append(s.urls, url)
	s.networks = append(s.networks, network)
}

func TestValidateNodeURL(t *testing.T) {
	require.NoError(t, validateNodeURL("ws://127.0.0.1:17110"))
	require.NoError(t, validateNodeURL(" wss://node.example.org "))
	require.Error(t, validateNodeURL("http://127.0.0.1:17110"))
	require.Error(t, validateNodeURL("ws://"))
	require.Error(t, validateNodeURL("::"))
}

func TestSettingsNodes(t *testing.T) {
	sw := &switchRecorder{}
	s := NewSettings(sw)
	h := newHarness(t, s)
	c := h.core

	require.Error(t, s.AddNode(c, "bad", "tcp://host"))
	require.Len(t, c.Config.Nodes, 1)

	require.NoError(t, s.AddNode(c, "", "ws://10.0.0.2:17210"))
	require.Len(t, c.Config.Nodes, 2)
	require.Equal(t, "ws://10.0.0.2:17210", c.Config.Nodes[1].Name)

	s.Activate(c, 1)
	require.True(t, c.Config.Nodes[1].Active)
	require.False(t, c.Config.Nodes[0].Active)
	require.Equal(t, []string{"ws://10.0.0.2:17210"}, sw.urls)
	require.Equal(t, wallet.Testnet10, sw.networks[0])

	// deleting the active node falls back to the first one
	s.Delete(c, 1)
	require.Len(t, c.Config.Nodes, 1)
	require.True(t, c.Config.Nodes[0].Active)
	require.Equal(t, "ws://127.0.0.1:17110", sw.urls[len(sw.urls)-1])

	s.Delete(c, 0)
	require.Len(t, c.Config.Nodes, 1)
	require.NotEmpty(t, c.Notifications().Active())
}
