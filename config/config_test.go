package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"kaspa-wallet-tui/wallet"
)

func TestLoadOrCreateWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	cfg, err := LoadOrCreate(path)
	require.NoError(t, err)
	require.Equal(t, DefaultConfig().Network, cfg.Network)
	require.Len(t, cfg.Nodes, 1)
	require.Equal(t, "127.0.0.1:17999", cfg.Adaptor.Listen)

	_, err = os.Stat(path)
	require.NoError(t, err)
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	cfg := DefaultConfig()
	cfg.Network = string(wallet.Testnet11)
	cfg.Nodes = append(cfg.Nodes, NodeURL{Name: "remote", URL: "wss://node.example:443"})
	cfg.SetActiveNode(1)
	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, wallet.Testnet11, got.NetworkID())
	node, ok := got.ActiveNode()
	require.True(t, ok)
	require.Equal(t, "remote", node.Name)
}

func TestEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, Save(path, DefaultConfig()))

	t.Setenv("KNG_NETWORK", "testnet-10")
	t.Setenv("KNG_ADAPTOR_LISTEN", "127.0.0.1:9000")

	got, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "testnet-10", got.Network)
	require.Equal(t, "127.0.0.1:9000", got.Adaptor.Listen)
}

func TestLoadRejectsUnknownNetwork(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"network":"moonnet"}`), 0o600))

	_, err := Load(path)
	require.Error(t, err)
}

func TestActiveNodeFallback(t *testing.T) {
	var cfg Config
	_, ok := cfg.ActiveNode()
	require.False(t, ok)

	cfg.Nodes = []NodeURL{{Name: "a"}, {Name: "b"}}
	node, ok := cfg.ActiveNode()
	require.True(t, ok)
	require.Equal(t, "a", node.Name)
}
