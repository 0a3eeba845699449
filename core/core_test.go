package core

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"

	"kaspa-wallet-tui/config"
	"kaspa-wallet-tui/events"
	"kaspa-wallet-tui/interop"
	"kaspa-wallet-tui/primitives"
	"kaspa-wallet-tui/wallet"
)

type stubModule struct {
	kind   ModuleKind
	inits  int
	resets int
}

func (m *stubModule) Kind() ModuleKind              { return m.kind }
func (m *stubModule) Init(*Core)                    { m.inits++ }
func (m *stubModule) Reset(*Core)                   { m.resets++ }
func (m *stubModule) Update(*Core, tea.Msg) tea.Cmd { return nil }
func (m *stubModule) View(*Core, int, int) string   { return m.kind.String() }

type managerStub struct {
	*stubModule
	account *primitives.Account
	changes int
}

func (m *managerStub) Account() *primitives.Account { return m.account }
func (m *managerStub) AccountsChanged(*Core)        { m.changes++ }

type fixture struct {
	core    *Core
	ch      *events.Channel
	logs    *bytes.Buffer
	modules map[ModuleKind]*stubModule
	manager *managerStub
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ch := events.NewChannel()
	logs := &bytes.Buffer{}
	logger := log.New(logs)
	logger.SetLevel(log.InfoLevel)

	mods := map[ModuleKind]*stubModule{}
	var (
		list    []Module
		manager *managerStub
	)
	for _, k := range []ModuleKind{KindOverview, KindAccountManager, KindSettings, KindLogs} {
		m := &stubModule{kind: k}
		mods[k] = m
		if k == KindAccountManager {
			manager = &managerStub{stubModule: m}
			list = append(list, manager)
			continue
		}
		list = append(list, m)
	}
	c := New(Options{
		Interop: interop.New(ch, nil, logger),
		Logger:  logger,
		Config:  config.DefaultConfig(),
	}, list...)
	return &fixture{core: c, ch: ch, logs: logs, modules: mods, manager: manager}
}

func (f *fixture) apply(t *testing.T, evs ...wallet.Event) {
	t.Helper()
	for _, ev := range evs {
		require.NoError(t, f.core.HandleEvent(events.Wallet{Event: ev}))
	}
}

func descriptors(ids ...string) []wallet.AccountDescriptor {
	out := make([]wallet.AccountDescriptor, 0, len(ids))
	for _, id := range ids {
		out = append(out, wallet.AccountDescriptor{ID: wallet.AccountID(id), ReceiveAddress: "kaspatest:" + id})
	}
	return out
}

func TestNewInitsModules(t *testing.T) {
	f := newFixture(t)
	for _, m := range f.modules {
		require.Equal(t, 1, m.inits)
	}
	require.Equal(t, KindOverview, f.core.Registry().CurrentKind())
	require.False(t, f.core.Registry().HasStack())
}

func TestDisconnectResetsConnectionState(t *testing.T) {
	sequences := [][]wallet.Event{
		{wallet.Connect{URL: "ws://a", Network: wallet.Mainnet}},
		{
			wallet.Connect{URL: "ws://a", Network: wallet.Mainnet},
			wallet.ServerStatus{IsSynced: true, ServerVersion: "0.14.1", URL: "ws://a", Network: wallet.Mainnet},
			wallet.DAAScoreChange{Score: 9000},
		},
		{
			wallet.SyncStateChange{State: wallet.SyncState{Stage: wallet.StageHeaders, Processed: 10, Total: 100}},
			wallet.DAAScoreChange{Score: 1},
			wallet.Connect{URL: "ws://b", Network: wallet.Testnet10},
		},
	}
	for _, seq := range sequences {
		f := newFixture(t)
		f.apply(t, wallet.WalletOpen{Accounts: descriptors("a")})
		f.apply(t, seq...)
		require.NoError(t, f.core.HandleEvent(events.Metrics{Peers: 3}))

		f.apply(t, wallet.Disconnect{})
		st := f.core.State()
		require.False(t, st.IsConnected())
		require.False(t, st.IsSynced())
		require.Nil(t, st.SyncedFlag())
		_, ok := st.SyncState()
		require.False(t, ok)
		require.Empty(t, st.ServerVersion())
		require.Empty(t, st.URL())
		require.Empty(t, st.Network())
		_, ok = st.DAAScore()
		require.False(t, ok)
		_, ok = f.core.Metrics()
		require.False(t, ok)

		// the wallet itself stays open
		require.True(t, st.IsOpen())
	}
}

func TestServerStatusSyncedOverridesStaleDescriptor(t *testing.T) {
	f := newFixture(t)
	f.apply(t, wallet.SyncStateChange{State: wallet.SyncState{Stage: wallet.StageBlocks, Processed: 1, Total: 2}})
	require.False(t, f.core.State().IsSynced())

	f.apply(t, wallet.ServerStatus{IsSynced: true, ServerVersion: "1", URL: "ws://a", Network: wallet.Mainnet})
	require.True(t, f.core.State().IsSynced())

	// the descriptor is only replaced by sync state events
	ss, ok := f.core.State().SyncState()
	require.True(t, ok)
	require.Equal(t, wallet.StageBlocks, ss.Stage)
}

func TestSyncStateLeavesServerFlagAlone(t *testing.T) {
	f := newFixture(t)
	f.apply(t, wallet.SyncStateChange{State: wallet.SyncState{Stage: wallet.StageSynced}})
	require.True(t, f.core.State().IsSynced())
	require.Nil(t, f.core.State().SyncedFlag())

	f.apply(t, wallet.ServerStatus{IsSynced: false})
	require.True(t, f.core.State().IsSynced())
	require.False(t, *f.core.State().SyncedFlag())
	ss, ok := f.core.State().SyncState()
	require.True(t, ok)
	require.True(t, ss.IsSynced())
}

func TestResyncWithoutServerStatus(t *testing.T) {
	f := newFixture(t)
	f.apply(t, wallet.SyncStateChange{State: wallet.SyncState{Stage: wallet.StageSynced}})
	require.True(t, f.core.State().IsSynced())

	f.apply(t, wallet.SyncStateChange{State: wallet.SyncState{Stage: wallet.StageUtxoResync, Processed: 1, Total: 10}})
	require.False(t, f.core.State().IsSynced())
	require.Nil(t, f.core.State().SyncedFlag())
}

func TestWalletOpenAndClose(t *testing.T) {
	f := newFixture(t)
	f.apply(t, wallet.WalletHint{Hint: &wallet.Hint{Text: "moon"}})
	f.apply(t, wallet.WalletOpen{Accounts: descriptors("a", "b")})

	require.True(t, f.core.State().IsOpen())
	require.Equal(t, 2, f.core.Accounts().Len())
	require.Equal(t, 1, f.manager.changes)

	f.apply(t, wallet.WalletReload{Accounts: descriptors("c")})
	require.Equal(t, 1, f.core.Accounts().Len())
	require.True(t, f.core.Accounts().Contains("c"))

	f.apply(t, wallet.WalletClose{})
	require.False(t, f.core.State().IsOpen())
	require.Nil(t, f.core.Accounts())
	require.Nil(t, f.core.Hint())
	for _, m := range f.modules {
		require.Equal(t, 1, m.resets)
	}
}

func TestWalletOpenWithoutDescriptors(t *testing.T) {
	f := newFixture(t)
	err := f.core.HandleEvent(events.Wallet{Event: wallet.WalletOpen{}})
	require.ErrorIs(t, err, ErrMissingDescriptors)
	require.True(t, f.core.State().IsOpen())
	require.Nil(t, f.core.Accounts())
}

func TestTransactionEvents(t *testing.T) {
	f := newFixture(t)
	f.apply(t, wallet.WalletOpen{Accounts: descriptors("a")})
	rec := wallet.TransactionRecord{ID: "tx1", Binding: wallet.AccountBinding("a"), Value: 5}

	f.apply(t, wallet.PendingTx{Record: rec})
	rec.Value = 7
	f.apply(t, wallet.Maturity{Record: rec})

	acc, _ := f.core.Accounts().Get("a")
	require.Equal(t, 1, acc.TransactionCount())
	got, ok := acc.Transaction("tx1")
	require.True(t, ok)
	require.Equal(t, uint64(7), got.Value)

	f.apply(t, wallet.Reorg{Record: wallet.TransactionRecord{ID: "missing", Binding: wallet.AccountBinding("a")}})
	require.Equal(t, 1, acc.TransactionCount())

	f.apply(t, wallet.Reorg{Record: rec})
	require.Zero(t, acc.TransactionCount())
}

func TestCustomBindingRejected(t *testing.T) {
	f := newFixture(t)
	f.apply(t, wallet.WalletOpen{Accounts: descriptors("a")})
	rec := wallet.TransactionRecord{ID: "tx", Binding: wallet.Binding{Kind: wallet.BindingCustom, Custom: "x"}}

	err := f.core.HandleEvent(events.Wallet{Event: wallet.External{Record: rec}})
	require.ErrorIs(t, err, ErrCustomBinding)
	acc, _ := f.core.Accounts().Get("a")
	require.Zero(t, acc.TransactionCount())
}

func TestTransactionsPageReplacesHistory(t *testing.T) {
	f := newFixture(t)
	f.apply(t, wallet.WalletOpen{Accounts: descriptors("a")})
	acc, _ := f.core.Accounts().Get("a")
	acc.UpsertTransaction(wallet.TransactionRecord{ID: "stale", Binding: wallet.AccountBinding("a")})
	acc.SetLoading(true)

	page := wallet.TransactionsPage{
		Transactions: []wallet.TransactionRecord{
			{ID: "new", Binding: wallet.AccountBinding("a"), Value: 2},
			{ID: "old", Binding: wallet.AccountBinding("a"), Value: 1},
		},
		Total: 40,
	}
	require.NoError(t, f.core.HandleEvent(events.Transactions{Account: "a", Page: page}))

	require.False(t, acc.IsLoading())
	require.Equal(t, uint64(40), acc.TotalTransactions())
	txs := acc.Transactions()
	require.Len(t, txs, 2)
	require.Equal(t, wallet.TransactionID("new"), txs[0].ID)
	require.Equal(t, wallet.TransactionID("old"), txs[1].ID)
	_, ok := acc.Transaction("stale")
	require.False(t, ok)
}

func TestTransactionsFailureClearsLoading(t *testing.T) {
	f := newFixture(t)
	f.apply(t, wallet.WalletOpen{Accounts: descriptors("a")})
	acc, _ := f.core.Accounts().Get("a")
	acc.UpsertTransaction(wallet.TransactionRecord{ID: "kept", Binding: wallet.AccountBinding("a")})
	acc.SetLoading(true)

	require.NoError(t, f.core.HandleEvent(events.Transactions{Account: "a", Err: errors.New("history unavailable")}))
	require.False(t, acc.IsLoading())
	require.Equal(t, 1, acc.TransactionCount())
	notes := f.core.Notifications().Active()
	require.Equal(t, events.LevelError, notes[len(notes)-1].Level)

	err := f.core.HandleEvent(events.Transactions{Account: "ghost"})
	require.ErrorIs(t, err, ErrUnknownAccount)
}

func TestBalanceForUnknownAccount(t *testing.T) {
	f := newFixture(t)
	f.apply(t, wallet.WalletOpen{Accounts: descriptors("a")})

	require.NoError(t, f.ch.Send(events.Wallet{Event: wallet.BalanceUpdate{ID: "ghost", Balance: &wallet.Balance{Mature: 1}}}))
	require.NoError(t, f.ch.Send(events.Wallet{Event: wallet.BalanceUpdate{ID: "a", Balance: &wallet.Balance{Mature: 2}}}))
	require.Equal(t, 2, f.core.Drain())

	require.Equal(t, 1, f.core.Accounts().Len())
	require.False(t, f.core.Accounts().Contains("ghost"))
	acc, _ := f.core.Accounts().Get("a")
	require.Equal(t, uint64(2), acc.Balance().Balance.Mature)
	require.Contains(t, f.logs.String(), "event rejected")
	require.Contains(t, f.logs.String(), "ghost")
}

func TestApplicationEvents(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.core.HandleEvent(events.WalletList{Wallets: []wallet.WalletDescriptor{{Filename: "b"}, {Filename: "a"}}}))
	require.Equal(t, "a", f.core.WalletList()[0].Filename)

	require.NoError(t, f.core.HandleEvent(events.Error{Err: errors.New("estimate: boom")}))
	active := f.core.Notifications().Active()
	require.Len(t, active, 1)
	require.Equal(t, events.LevelError, active[0].Level)

	f.apply(t, wallet.UtxoIndexNotEnabled{URL: "ws://x"})
	require.Contains(t, f.core.Exception(), "ws://x")
	f.core.DismissException()
	require.Empty(t, f.core.Exception())

	require.NoError(t, f.core.HandleEvent(events.Exit{}))
	require.True(t, f.core.ShouldQuit())
}

func TestNavigation(t *testing.T) {
	f := newFixture(t)
	r := f.core.Registry()

	f.core.Select(KindSettings)
	require.Equal(t, KindSettings, r.CurrentKind())
	require.Equal(t, []ModuleKind{KindOverview}, r.Stack())

	// reselecting the current module does not grow the stack
	f.core.Select(KindSettings)
	require.Len(t, r.Stack(), 1)

	require.True(t, f.core.Back())
	require.Equal(t, KindOverview, r.CurrentKind())
	require.False(t, f.core.Back())
	require.Equal(t, KindOverview, r.CurrentKind())

	require.Panics(t, func() { f.core.Select(KindWalletOpen) })
	require.Equal(t, KindOverview, r.CurrentKind())
}

func TestLogsModuleEnablesVerboseLogging(t *testing.T) {
	f := newFixture(t)
	require.False(t, f.core.VerboseLogging())

	f.core.Select(KindLogs)
	require.True(t, f.core.VerboseLogging())

	f.core.Back()
	require.False(t, f.core.VerboseLogging())
}

func TestActiveAccountRequiresProvider(t *testing.T) {
	r := NewRegistry()
	r.Register(&stubModule{kind: KindAccountManager})
	c := &Core{registry: r}
	require.Panics(t, func() { c.ActiveAccount() })
}

func TestRegisterTwicePanics(t *testing.T) {
	r := NewRegistry()
	r.Register(&stubModule{kind: KindLogs})
	require.Panics(t, func() { r.Register(&stubModule{kind: KindLogs}) })
}

func TestAdaptorConnectAnsweredWithActiveAccount(t *testing.T) {
	f := newFixture(t)
	adaptor := f.core.Interop().Adaptor()

	respc := make(chan interop.Response, 1)
	go func() {
		resp, _ := adaptor.HandleMessage(context.Background(), interop.PendingRequest{Request: interop.ConnectRequest{}})
		respc <- resp
	}()
	require.Eventually(t, func() bool { _, ok := adaptor.Pending(); return ok }, time.Second, 5*time.Millisecond)

	// no account selected yet: the request stays pending
	_, ok := f.core.AdaptorRequest()
	require.True(t, ok)
	require.False(t, f.core.AdaptorBlocksUI())

	f.manager.account = primitives.NewAccount(descriptors("a")[0])
	_, ok = f.core.AdaptorRequest()
	require.False(t, ok)
	require.Equal(t, interop.ConnectResponse{Address: "kaspatest:a"}, <-respc)
}

func TestAdaptorTestRequestNeedsConfirmation(t *testing.T) {
	f := newFixture(t)
	adaptor := f.core.Interop().Adaptor()

	respc := make(chan interop.Response, 1)
	go func() {
		resp, _ := adaptor.HandleMessage(context.Background(), interop.PendingRequest{Request: interop.TestRequest{Data: "hello"}})
		respc <- resp
	}()
	require.Eventually(t, f.core.AdaptorBlocksUI, time.Second, 5*time.Millisecond)

	require.True(t, f.core.UpdateAdaptor(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")}))
	require.True(t, f.core.AdaptorBlocksUI())

	require.True(t, f.core.UpdateAdaptor(tea.KeyMsg{Type: tea.KeyEnter}))
	require.Equal(t, interop.TestResponse{Response: "hello"}, <-respc)
	require.False(t, f.core.AdaptorBlocksUI())
	require.False(t, f.core.UpdateAdaptor(tea.KeyMsg{Type: tea.KeyEnter}))
}
