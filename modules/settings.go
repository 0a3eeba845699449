package modules

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"kaspa-wallet-tui/config"
	"kaspa-wallet-tui/core"
	"kaspa-wallet-tui/events"
	"kaspa-wallet-tui/views/settings"
	"kaspa-wallet-tui/wallet"
)

// NodeSwitcher is the backend client as far as settings are concerned.
type NodeSwitcher interface {
	SetURL(url string, network wallet.NetworkID)
}

// Settings manages the node endpoints.
type Settings struct {
	cursor   int
	form     *huh.Form
	formName string
	formURL  string
	nodes    NodeSwitcher
}

func NewSettings(nodes NodeSwitcher) *Settings {
	return &Settings{nodes: nodes}
}

func (s *Settings) Kind() core.ModuleKind { return core.KindSettings }
func (s *Settings) Init(*core.Core)        {}
func (s *Settings) Reset(*core.Core)       {}

func (s *Settings) CapturesInput() bool {
	return s.form != nil
}

func validateNodeURL(v string) error {
	u, err := url.Parse(strings.TrimSpace(v))
	if err != nil {
		return err
	}
	if u.Scheme != "ws" && u.Scheme != "wss" {
		return errors.New("the URL must start with ws:// or wss://")
	}
	if u.Host == "" {
		return errors.New("the URL has no host")
	}
	return nil
}

func (s *Settings) createAddNodeForm() tea.Cmd {
	s.formName = ""
	s.formURL = ""

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Node Name").
				Description("A friendly name for this node").
				Value(&s.formName).
				Placeholder("My node"),

			huh.NewInput().
				Title("Node URL").
				Description("The wallet RPC endpoint (ws://...)").
				Value(&s.formURL).
				Placeholder("ws://127.0.0.1:17110").
				Validate(validateNodeURL),
		),
	).WithTheme(huh.ThemeCatppuccin())

	return s.form.Init()
}

// AddNode appends a node and saves the configuration.
func (s *Settings) AddNode(c *core.Core, name, rawURL string) error {
	rawURL = strings.TrimSpace(rawURL)
	if err := validateNodeURL(rawURL); err != nil {
		return err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = rawURL
	}
	c.Config.Nodes = append(c.Config.Nodes, config.NodeURL{Name: name, URL: rawURL})
	c.Logger().Info("node added", "name", name, "url", rawURL)
	s.save(c)
	return nil
}

// Activate makes the node at idx active and reconnects to it.
func (s *Settings) Activate(c *core.Core, idx int) {
	if idx < 0 || idx >= len(c.Config.Nodes) {
		return
	}
	c.Config.SetActiveNode(idx)
	node := c.Config.Nodes[idx]
	c.Logger().Info("switching node", "name", node.Name, "url", node.URL)
	if s.nodes != nil {
		s.nodes.SetURL(node.URL, c.Config.NetworkID())
	}
	s.save(c)
}

// Delete removes the node at idx. The last node cannot be removed.
func (s *Settings) Delete(c *core.Core, idx int) {
	nodes := c.Config.Nodes
	if idx < 0 || idx >= len(nodes) {
		return
	}
	if len(nodes) == 1 {
		c.Notify(events.LevelWarning, "At least one node must remain")
		return
	}
	wasActive := nodes[idx].Active
	c.Config.Nodes = append(nodes[:idx:idx], nodes[idx+1:]...)
	if s.cursor >= len(c.Config.Nodes) {
		s.cursor = len(c.Config.Nodes) - 1
	}
	if wasActive {
		s.Activate(c, 0)
		return
	}
	s.save(c)
}

func (s *Settings) save(c *core.Core) {
	if c.ConfigPath == "" {
		return
	}
	if err := config.Save(c.ConfigPath, c.Config); err != nil {
		c.Logger().Error("config not saved", "path", c.ConfigPath, "err", err)
		c.Notify(events.LevelError, fmt.Sprintf("Unable to save settings: %v", err))
	}
}

func (s *Settings) Update(c *core.Core, msg tea.Msg) tea.Cmd {
	if s.form != nil {
		if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
			s.form = nil
			return nil
		}
		if _, ok := msg.(core.RefreshMsg); ok {
			return nil
		}
		form, cmd := s.form.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			s.form = f
			switch s.form.State {
			case huh.StateCompleted:
				if err := s.AddNode(c, s.formName, s.formURL); err != nil {
					c.Notify(events.LevelError, err.Error())
				}
				s.form = nil
				return nil
			case huh.StateAborted:
				s.form = nil
				return nil
			}
		}
		return cmd
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch key.String() {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < len(c.Config.Nodes)-1 {
			s.cursor++
		}
	case "enter":
		s.Activate(c, s.cursor)
	case "n":
		return s.createAddNodeForm()
	case "d":
		s.Delete(c, s.cursor)
	}
	return nil
}

func (s *Settings) View(c *core.Core, width, height int) string {
	if s.form != nil {
		return s.form.View()
	}
	return settings.Render(c.Config, s.cursor, c.ConfigPath)
}

func (s *Settings) Nav(_ *core.Core, width int) string {
	return settings.Nav(width, s.form != nil)
}
