// Package core owns the application state. Backend events are reduced into
// it on the UI goroutine, and the module registry decides what is shown.
package core

import (
	"errors"
	"fmt"
	"sort"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"kaspa-wallet-tui/config"
	"kaspa-wallet-tui/events"
	"kaspa-wallet-tui/interop"
	"kaspa-wallet-tui/primitives"
	"kaspa-wallet-tui/wallet"
)

var (
	ErrUnknownAccount     = errors.New("core: unknown account")
	ErrCustomBinding      = errors.New("core: custom transaction binding is not supported")
	ErrMissingDescriptors = errors.New("core: wallet event without account descriptors")
)

// AccountProvider is implemented by the account manager module.
type AccountProvider interface {
	Account() *primitives.Account
}

// AccountsObserver is implemented by modules that hold on to accounts and
// need to know when the collection is rebuilt.
type AccountsObserver interface {
	AccountsChanged(c *Core)
}

type Options struct {
	Interop    *interop.Interop
	Logger     *log.Logger
	Config     config.Config
	ConfigPath string
}

// Core is used from the UI goroutine only.
type Core struct {
	state      State
	accounts   *primitives.AccountCollection
	walletList []wallet.WalletDescriptor
	hint       *wallet.Hint
	metrics    *events.Metrics
	feerate    *wallet.FeerateEstimate
	exception  string

	notifications *Notifications
	registry      *Registry
	interop       *interop.Interop
	logger        *log.Logger
	baseLevel     log.Level

	Config     config.Config
	ConfigPath string

	quit bool
}

// New registers modules, selects the overview and runs every module's Init.
func New(opts Options, modules ...Module) *Core {
	c := &Core{
		notifications: NewNotifications(),
		registry:      NewRegistry(),
		interop:       opts.Interop,
		logger:        opts.Logger,
		baseLevel:     opts.Logger.GetLevel(),
		Config:        opts.Config,
		ConfigPath:    opts.ConfigPath,
	}
	for _, m := range modules {
		c.registry.Register(m)
	}
	c.registry.OnChange(c.applyModuleFlags)
	c.registry.SetInitial(KindOverview)
	for _, m := range c.registry.Modules() {
		m.Init(c)
	}
	return c
}

func (c *Core) State() *State                 { return &c.state }
func (c *Core) Interop() *interop.Interop     { return c.interop }
func (c *Core) Logger() *log.Logger           { return c.logger }
func (c *Core) Registry() *Registry           { return c.registry }
func (c *Core) Notifications() *Notifications { return c.notifications }
func (c *Core) Hint() *wallet.Hint            { return c.hint }
func (c *Core) Exception() string             { return c.exception }
func (c *Core) ShouldQuit() bool              { return c.quit }

// Accounts returns the open wallet's accounts, or nil when no wallet is open.
func (c *Core) Accounts() *primitives.AccountCollection {
	return c.accounts
}

func (c *Core) WalletList() []wallet.WalletDescriptor {
	return c.walletList
}

func (c *Core) Metrics() (events.Metrics, bool) {
	if c.metrics == nil {
		return events.Metrics{}, false
	}
	return *c.metrics, true
}

func (c *Core) Feerate() (wallet.FeerateEstimate, bool) {
	if c.feerate == nil {
		return wallet.FeerateEstimate{}, false
	}
	return *c.feerate, true
}

func (c *Core) DismissException() {
	c.exception = ""
}

// Network is the node's network, or the configured one before the node
// reported it.
func (c *Core) Network() wallet.NetworkID {
	if n := c.state.Network(); n != "" {
		return n
	}
	return c.Config.NetworkID()
}

// RefreshMsg is delivered to every module after the event channel was drained.
type RefreshMsg struct{}

// Broadcast hands msg to every module, not only the current one.
func (c *Core) Broadcast(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	for _, m := range c.registry.Modules() {
		if cmd := m.Update(c, msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}

// CapturesInput reports whether the current module wants every key.
func (c *Core) CapturesInput() bool {
	if ic, ok := c.registry.Current().(InputCapturer); ok {
		return ic.CapturesInput()
	}
	return false
}

// Select navigates to the module of kind k.
func (c *Core) Select(k ModuleKind) {
	c.registry.Select(k)
}

func (c *Core) Back() bool {
	return c.registry.Back()
}

// applyModuleFlags is the one place process-wide flags follow navigation.
func (c *Core) applyModuleFlags(current ModuleKind) {
	if current == KindLogs {
		c.logger.SetLevel(log.DebugLevel)
	} else {
		c.logger.SetLevel(c.baseLevel)
	}
}

// VerboseLogging reports whether debug output is currently enabled.
func (c *Core) VerboseLogging() bool {
	return c.logger.GetLevel() == log.DebugLevel
}

// ActiveAccount returns the account selected in the account manager.
func (c *Core) ActiveAccount() *primitives.Account {
	m := c.registry.Get(KindAccountManager)
	p, ok := m.(AccountProvider)
	if !ok {
		panic(fmt.Sprintf("core: %T does not provide accounts", m))
	}
	return p.Account()
}

func (c *Core) Notify(level events.NotifyLevel, msg string) {
	c.notifications.Push(level, msg)
}

// Drain applies every queued event in order. Rejected events are logged and
// skipped. It returns the number of events processed.
func (c *Core) Drain() int {
	evs := c.interop.Events().Drain()
	for _, ev := range evs {
		if err := c.HandleEvent(ev); err != nil {
			c.logger.Error("event rejected", "event", eventName(ev), "err", err)
		}
	}
	return len(evs)
}

// HandleEvent applies one event. An error means the event was rejected and
// state is unchanged.
func (c *Core) HandleEvent(ev events.Event) error {
	switch ev := ev.(type) {
	case events.Wallet:
		return c.handleWallet(ev.Event)
	case events.Error:
		c.logger.Error("background task failed", "err", ev.Err)
		c.notifications.Push(events.LevelError, ev.Err.Error())
	case events.WalletList:
		list := append([]wallet.WalletDescriptor(nil), ev.Wallets...)
		sort.SliceStable(list, func(i, j int) bool { return list[i].Label() < list[j].Label() })
		c.walletList = list
	case events.Notify:
		c.notifications.Push(ev.Level, ev.Message)
	case events.Metrics:
		m := ev
		c.metrics = &m
	case events.Feerate:
		f := ev.Estimate
		c.feerate = &f
	case events.Transactions:
		return c.loadTransactions(ev)
	case events.Exit:
		c.quit = true
	case events.Repaint:
	default:
		return fmt.Errorf("core: unhandled event %T", ev)
	}
	return nil
}

func (c *Core) handleWallet(ev wallet.Event) error {
	switch ev := ev.(type) {
	case wallet.Connect:
		c.state.connected = true
		c.state.url = ev.URL
		c.state.network = ev.Network
		c.logger.Info("connected", "url", ev.URL, "network", ev.Network)

	case wallet.Disconnect:
		c.state.resetConnection()
		c.metrics = nil
		c.logger.Info("disconnected")

	case wallet.SyncStateChange:
		s := ev.State
		c.state.syncState = &s

	case wallet.ServerStatus:
		c.state.setSynced(ev.IsSynced)
		c.state.serverVersion = ev.ServerVersion
		c.state.url = ev.URL
		c.state.network = ev.Network

	case wallet.DAAScoreChange:
		score := ev.Score
		c.state.daaScore = &score

	case wallet.WalletOpen:
		return c.loadAccounts(ev.Accounts)

	case wallet.WalletReload:
		return c.loadAccounts(ev.Accounts)

	case wallet.WalletClose:
		c.state.open = false
		c.accounts = nil
		c.hint = nil
		for _, m := range c.registry.Modules() {
			m.Reset(c)
		}
		c.logger.Info("wallet closed")

	case wallet.WalletError:
		c.logger.Error("wallet error", "msg", ev.Message)
		c.notifications.Push(events.LevelError, ev.Message)

	case wallet.WalletHint:
		c.hint = ev.Hint

	case wallet.BalanceUpdate:
		acc, err := c.account(ev.ID)
		if err != nil {
			return err
		}
		acc.UpdateBalance(primitives.BalanceInfo{
			Balance:         ev.Balance,
			MatureUtxoSize:  ev.MatureUtxoSize,
			PendingUtxoSize: ev.PendingUtxoSize,
		})

	case wallet.External:
		return c.upsertTransaction(ev.Record)
	case wallet.PendingTx:
		return c.upsertTransaction(ev.Record)
	case wallet.Maturity:
		return c.upsertTransaction(ev.Record)
	case wallet.OutgoingTx:
		return c.upsertTransaction(ev.Record)

	case wallet.Reorg:
		acc, err := c.bindingAccount(ev.Record.Binding)
		if err != nil {
			return err
		}
		acc.RemoveTransaction(ev.Record.ID)

	case wallet.UtxoIndexNotEnabled:
		c.exception = fmt.Sprintf("The node at %s does not have the UTXO index enabled. Restart it with --utxoindex.", ev.URL)
		c.logger.Warn("utxo index not enabled", "url", ev.URL)

	default:
		return fmt.Errorf("core: unhandled wallet event %T", ev)
	}
	return nil
}

func (c *Core) loadAccounts(descs []wallet.AccountDescriptor) error {
	c.state.open = true
	if descs == nil {
		return ErrMissingDescriptors
	}
	accounts := primitives.NewAccountCollection()
	accounts.Load(primitives.AccountsFromDescriptors(descs))
	c.accounts = accounts
	c.logger.Info("wallet accounts loaded", "count", accounts.Len())

	for _, m := range c.registry.Modules() {
		if o, ok := m.(AccountsObserver); ok {
			o.AccountsChanged(c)
		}
	}
	return nil
}

// loadTransactions replaces the history of an account with a fetched page
// and clears its loading flag.
func (c *Core) loadTransactions(ev events.Transactions) error {
	acc, err := c.account(ev.Account)
	if err != nil {
		return err
	}
	acc.SetLoading(false)
	if ev.Err != nil {
		c.logger.Error("transaction history failed", "account", ev.Account, "err", ev.Err)
		c.notifications.Push(events.LevelError, ev.Err.Error())
		return nil
	}
	acc.LoadTransactions(ev.Page.Transactions, ev.Page.Total)
	return nil
}

func (c *Core) account(id wallet.AccountID) (*primitives.Account, error) {
	if c.accounts == nil {
		return nil, fmt.Errorf("%w %s: no wallet open", ErrUnknownAccount, id)
	}
	acc, ok := c.accounts.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w %s", ErrUnknownAccount, id)
	}
	return acc, nil
}

func (c *Core) bindingAccount(b wallet.Binding) (*primitives.Account, error) {
	if b.Kind != wallet.BindingAccount {
		return nil, fmt.Errorf("%w: %q", ErrCustomBinding, b.Custom)
	}
	return c.account(b.Account)
}

func (c *Core) upsertTransaction(rec wallet.TransactionRecord) error {
	acc, err := c.bindingAccount(rec.Binding)
	if err != nil {
		return err
	}
	acc.UpsertTransaction(rec)
	return nil
}

func eventName(ev events.Event) string {
	if w, ok := ev.(events.Wallet); ok {
		return fmt.Sprintf("%T", w.Event)
	}
	return fmt.Sprintf("%T", ev)
}
