package modules

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"kaspa-wallet-tui/config"
	"kaspa-wallet-tui/core"
	"kaspa-wallet-tui/events"
	"kaspa-wallet-tui/secret"
	"kaspa-wallet-tui/styles"
	"kaspa-wallet-tui/views/wallets"
)

// WalletOpen lists the wallet files known to the node and opens one.
type WalletOpen struct {
	cursor    int
	prompting bool
	opening   bool
	filename  string
	current   string
	secret    *secret.Field

	enumerated bool
	listed     int
	result     *sendSlot
	spinner    spinner.Model
}

func NewWalletOpen() *WalletOpen {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.HotkeyKeyStyle
	return &WalletOpen{
		secret:  secret.New("Wallet secret"),
		result:  &sendSlot{},
		spinner: s,
	}
}

func (w *WalletOpen) Kind() core.ModuleKind { return core.KindWalletOpen }

func (w *WalletOpen) Init(*core.Core) {}

func (w *WalletOpen) Reset(*core.Core) {
	w.current = ""
	w.cancelPrompt()
}

// CapturesInput is true while the secret prompt is shown.
func (w *WalletOpen) CapturesInput() bool {
	return w.prompting || w.opening
}

// Current is the file name of the wallet opened from here.
func (w *WalletOpen) Current() string { return w.current }

func (w *WalletOpen) Opening() bool { return w.opening }

func (w *WalletOpen) cancelPrompt() {
	w.secret.Zeroize()
	w.secret.Focused = false
	w.prompting = false
}

// Enumerate asks the node for its wallet files.
func (w *WalletOpen) Enumerate(c *core.Core) {
	w.enumerated = true
	in := c.Interop()
	in.Spawn("wallet list", func(ctx context.Context) error {
		list, err := in.Wallet().WalletEnumerate(ctx)
		if err != nil {
			return err
		}
		in.Send(events.WalletList{Wallets: list})
		return nil
	})
}

// Open submits the secret for the selected wallet. The field is wiped
// before the request leaves the UI goroutine.
func (w *WalletOpen) Open(c *core.Core) tea.Cmd {
	list := c.WalletList()
	if w.cursor >= len(list) || w.opening {
		return nil
	}
	if w.secret.IsEmpty() {
		c.Notify(events.LevelWarning, "Enter the wallet secret")
		return nil
	}
	filename := list[w.cursor].Filename
	pass := w.secret.Bytes()
	w.cancelPrompt()
	w.opening = true
	w.filename = filename

	in := c.Interop()
	slot := w.result
	c.Logger().Info("opening wallet", "file", filename)
	in.Spawn("open wallet", func(ctx context.Context) error {
		defer secret.Wipe(pass)
		err := in.Wallet().WalletOpen(ctx, filename, pass)
		slot.complete(sendOutcome{Err: err})
		in.RequestRepaint()
		return nil
	})
	return w.spinner.Tick
}

// CloseWallet asks the backend to close the open wallet.
func (w *WalletOpen) CloseWallet(c *core.Core) {
	if !c.State().IsOpen() {
		return
	}
	in := c.Interop()
	in.Spawn("close wallet", func(ctx context.Context) error {
		return in.Wallet().WalletClose(ctx)
	})
}

func (w *WalletOpen) collect(c *core.Core) {
	if !w.opening {
		return
	}
	out, ok := w.result.take()
	if !ok {
		return
	}
	w.opening = false
	if out.Err != nil {
		c.Logger().Error("wallet open failed", "file", w.filename, "err", out.Err)
		c.Notify(events.LevelError, "Unable to open wallet: "+out.Err.Error())
		return
	}
	w.current = w.filename
	c.Config.LastWallet = w.filename
	if c.ConfigPath != "" {
		if err := config.Save(c.ConfigPath, c.Config); err != nil {
			c.Logger().Warn("config not saved", "err", err)
		}
	}
	if c.Registry().Has(core.KindAccountManager) {
		c.Select(core.KindAccountManager)
	}
}

func (w *WalletOpen) Update(c *core.Core, msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case core.RefreshMsg:
		w.collect(c)
		if !c.State().IsConnected() {
			w.enumerated = false
		} else if !w.enumerated {
			w.Enumerate(c)
		}
		if n := len(c.WalletList()); n != w.listed {
			w.listed = n
			w.cursor = 0
			w.selectLast(c)
		}
	case spinner.TickMsg:
		if !w.opening {
			return nil
		}
		var cmd tea.Cmd
		w.spinner, cmd = w.spinner.Update(msg)
		return cmd
	case tea.KeyMsg:
		return w.updateKeys(c, msg)
	}
	return nil
}

func (w *WalletOpen) selectLast(c *core.Core) {
	for i, d := range c.WalletList() {
		if d.Filename == c.Config.LastWallet {
			w.cursor = i
		}
	}
}

func (w *WalletOpen) updateKeys(c *core.Core, msg tea.KeyMsg) tea.Cmd {
	if w.opening {
		return nil
	}
	if w.prompting {
		switch msg.String() {
		case "esc":
			w.cancelPrompt()
		case "enter":
			return w.Open(c)
		default:
			w.secret.Update(msg)
		}
		return nil
	}

	list := c.WalletList()
	switch msg.String() {
	case "up", "k":
		if w.cursor > 0 {
			w.cursor--
		}
	case "down", "j":
		if w.cursor < len(list)-1 {
			w.cursor++
		}
	case "enter":
		if w.cursor < len(list) {
			w.prompting = true
			w.secret.Focused = true
		}
	case "r":
		w.Enumerate(c)
	case "x":
		w.CloseWallet(c)
	}
	return nil
}

func (w *WalletOpen) View(c *core.Core, width, height int) string {
	var prompt string
	if w.prompting {
		prompt = w.secret.View()
	}
	return wallets.Render(c.WalletList(), w.cursor, w.current, prompt, w.opening, w.spinner.View())
}

func (w *WalletOpen) Nav(c *core.Core, width int) string {
	return wallets.Nav(width, w.prompting, c.State().IsOpen())
}
