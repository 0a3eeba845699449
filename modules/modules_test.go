package modules

import (
	"context"
	"io"
	"sync"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"

	"kaspa-wallet-tui/config"
	"kaspa-wallet-tui/core"
	"kaspa-wallet-tui/events"
	"kaspa-wallet-tui/interop"
	"kaspa-wallet-tui/wallet"
)

const testAddr = "kaspatest:qqkl0ct62rv6dz74pff2kx5sfyasl4z28uekevau23g877r5gt6userwyrmtt"

type fakeAPI struct {
	mtx sync.Mutex

	estimateFn func(ctx context.Context, req wallet.AccountEstimateRequest) (wallet.GeneratorSummary, error)
	estimates  []wallet.AccountEstimateRequest

	sendErr     error
	sends       []wallet.AccountSendRequest
	sentSecrets []string

	openErr error
	opened  []string
	closes  int

	list []wallet.WalletDescriptor

	pages      map[wallet.AccountID]wallet.TransactionsPage
	historyErr error
	history    []wallet.TransactionsRequest
}

func (f *fakeAPI) WalletEnumerate(context.Context) ([]wallet.WalletDescriptor, error) {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	return append([]wallet.WalletDescriptor(nil), f.list...), nil
}

func (f *fakeAPI) WalletOpen(_ context.Context, filename string, secret []byte) error {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	f.opened = append(f.opened, filename+":"+string(secret))
	return f.openErr
}

func (f *fakeAPI) WalletClose(context.Context) error {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	f.closes++
	return nil
}

func (f *fakeAPI) AccountEstimate(ctx context.Context, req wallet.AccountEstimateRequest) (wallet.GeneratorSummary, error) {
	f.mtx.Lock()
	f.estimates = append(f.estimates, req)
	fn := f.estimateFn
	f.mtx.Unlock()
	if fn != nil {
		return fn(ctx, req)
	}
	return wallet.GeneratorSummary{AggregateMass: 2000, AggregateFees: 2000, NumberOfTransactions: 1, NumberOfUtxos: 1}, nil
}

func (f *fakeAPI) AccountSend(_ context.Context, req wallet.AccountSendRequest) (wallet.SendResponse, error) {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	f.sends = append(f.sends, req)
	f.sentSecrets = append(f.sentSecrets, string(req.WalletSecret))
	if f.sendErr != nil {
		return wallet.SendResponse{}, f.sendErr
	}
	return wallet.SendResponse{TransactionIDs: []wallet.TransactionID{"tx1"}}, nil
}

func (f *fakeAPI) FeeEstimate(context.Context) (wallet.FeerateEstimate, error) {
	return wallet.FeerateEstimate{}, nil
}

func (f *fakeAPI) AccountTransactions(_ context.Context, req wallet.TransactionsRequest) (wallet.TransactionsPage, error) {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	f.history = append(f.history, req)
	if f.historyErr != nil {
		return wallet.TransactionsPage{}, f.historyErr
	}
	return f.pages[req.AccountID], nil
}

func (f *fakeAPI) historyCount() int {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	return len(f.history)
}

func (f *fakeAPI) estimateCount() int {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	return len(f.estimates)
}

func (f *fakeAPI) lastEstimate() wallet.AccountEstimateRequest {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	return f.estimates[len(f.estimates)-1]
}

func (f *fakeAPI) sendCount() int {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	return len(f.sends)
}

type harness struct {
	core    *core.Core
	api     *fakeAPI
	ch      *events.Channel
	manager *AccountManager
}

func testAccount(id, name string) wallet.AccountDescriptor {
	return wallet.AccountDescriptor{
		ID:             wallet.AccountID(id),
		Name:           name,
		Kind:           wallet.KindBip32,
		ReceiveAddress: testAddr,
	}
}

func newHarness(t *testing.T, modules ...core.Module) *harness {
	t.Helper()
	ch := events.NewChannel()
	api := &fakeAPI{}
	logger := log.New(io.Discard)
	in := interop.New(ch, api, logger)
	t.Cleanup(func() {
		in.Shutdown()
		_ = in.Join()
	})

	cfg := config.DefaultConfig()
	cfg.Network = string(wallet.Testnet10)

	manager := NewAccountManager()
	manager.clipboard = func(string) error { return nil }
	all := append([]core.Module{NewOverview(), manager}, modules...)
	c := core.New(core.Options{Interop: in, Logger: logger, Config: cfg}, all...)
	return &harness{core: c, api: api, ch: ch, manager: manager}
}

func (h *harness) open(t *testing.T, accounts ...wallet.AccountDescriptor) {
	t.Helper()
	require.NoError(t, h.core.HandleEvent(events.Wallet{Event: wallet.WalletOpen{Accounts: accounts}}))
}
