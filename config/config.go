package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"kaspa-wallet-tui/wallet"
)

const EnvPrefix = "KNG"

// Config represents the application configuration
type Config struct {
	Network       string        `json:"network" mapstructure:"network"`
	Nodes         []NodeURL     `json:"nodes" mapstructure:"nodes"`
	Logger        bool          `json:"logger" mapstructure:"logger"`
	DeveloperMode bool          `json:"developer_mode" mapstructure:"developer_mode"`
	LastWallet    string        `json:"last_wallet,omitempty" mapstructure:"last_wallet"`
	Adaptor       AdaptorConfig `json:"adaptor" mapstructure:"adaptor"`
}

// NodeURL represents a wallet node endpoint
type NodeURL struct {
	Name   string `json:"name" mapstructure:"name"`
	URL    string `json:"url" mapstructure:"url"`
	Active bool   `json:"active" mapstructure:"active"`
}

// AdaptorConfig controls the listener companion processes talk to
type AdaptorConfig struct {
	Enabled        bool     `json:"enabled" mapstructure:"enabled"`
	Listen         string   `json:"listen" mapstructure:"listen"`
	AllowedOrigins []string `json:"allowed_origins" mapstructure:"allowed_origins"`
}

// DefaultConfig returns a new configuration with sensible defaults
func DefaultConfig() Config {
	return Config{
		Network: string(wallet.Mainnet),
		Nodes: []NodeURL{
			{
				Name:   "Local node",
				URL:    "ws://127.0.0.1:17110",
				Active: true,
			},
		},
		Logger: true,
		Adaptor: AdaptorConfig{
			Enabled:        false,
			Listen:         "127.0.0.1:17999",
			AllowedOrigins: []string{"chrome-extension://*"},
		},
	}
}

// DefaultPath is the config location in the user's home directory
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "kaspa-wallet-tui.json"
	}
	return filepath.Join(home, ".kaspa-wallet-tui", "config.json")
}

func newViper(path string) *viper.Viper {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	def := DefaultConfig()
	v.SetDefault("network", def.Network)
	v.SetDefault("nodes", def.Nodes)
	v.SetDefault("logger", def.Logger)
	v.SetDefault("developer_mode", def.DeveloperMode)
	v.SetDefault("last_wallet", "")
	v.SetDefault("adaptor.enabled", def.Adaptor.Enabled)
	v.SetDefault("adaptor.listen", def.Adaptor.Listen)
	v.SetDefault("adaptor.allowed_origins", def.Adaptor.AllowedOrigins)
	return v
}

// Load reads the config from path. Environment variables prefixed with
// KNG_ override file values.
func Load(path string) (Config, error) {
	v := newViper(path)
	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	return decode(v)
}

func decode(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if _, err := wallet.ParseNetworkID(cfg.Network); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Save writes the config to path
func Save(path string, cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// LoadOrCreate loads config from path, or writes the defaults if the file
// does not exist yet
func LoadOrCreate(path string) (Config, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err := Save(path, DefaultConfig()); err != nil {
			return Config{}, err
		}
	}
	return Load(path)
}

// ActiveNode returns the URL of the active node, or the first one
func (c Config) ActiveNode() (NodeURL, bool) {
	for _, n := range c.Nodes {
		if n.Active {
			return n, true
		}
	}
	if len(c.Nodes) > 0 {
		return c.Nodes[0], true
	}
	return NodeURL{}, false
}

// SetActiveNode marks the node at index i active and every other inactive
func (c *Config) SetActiveNode(i int) {
	for j := range c.Nodes {
		c.Nodes[j].Active = j == i
	}
}

func (c Config) NetworkID() wallet.NetworkID {
	n, err := wallet.ParseNetworkID(c.Network)
	if err != nil {
		return wallet.Mainnet
	}
	return n
}
