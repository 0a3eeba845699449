// Package modules holds the screens registered with the core. Each module
// keeps its own UI state and reads everything else from the core.
package modules

import (
	"context"
	"fmt"
	"math"

	tea "github.com/charmbracelet/bubbletea"

	"kaspa-wallet-tui/core"
	"kaspa-wallet-tui/events"
	"kaspa-wallet-tui/helpers"
	"kaspa-wallet-tui/views/home"
)

// Overview is the landing screen: node status, fee rates and the accounts
// of the open wallet.
type Overview struct{}

func NewOverview() *Overview {
	return &Overview{}
}

func (o *Overview) Kind() core.ModuleKind { return core.KindOverview }
func (o *Overview) Init(*core.Core)        {}
func (o *Overview) Reset(*core.Core)       {}

func (o *Overview) Update(c *core.Core, msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "f" {
		requestFeerate(c)
	}
	return nil
}

// requestFeerate asks the node for fresh fee buckets.
func requestFeerate(c *core.Core) {
	if !c.State().IsConnected() {
		c.Notify(events.LevelWarning, "Not connected to a node")
		return
	}
	in := c.Interop()
	in.Spawn("fee estimate", func(ctx context.Context) error {
		est, err := in.Wallet().FeeEstimate(ctx)
		if err != nil {
			return err
		}
		in.Send(events.Feerate{Estimate: est})
		return nil
	})
}

func (o *Overview) View(c *core.Core, width, height int) string {
	return home.Render(width, OverviewStatus(c))
}

func (o *Overview) Nav(_ *core.Core, width int) string {
	return home.Nav(width)
}

// OverviewStatus collects what the overview shows from the core state.
func OverviewStatus(c *core.Core) home.Status {
	st := c.State()
	network := c.Network()
	s := home.Status{
		Connected:     st.IsConnected(),
		Synced:        st.IsSynced(),
		URL:           st.URL(),
		Network:       string(st.Network()),
		ServerVersion: st.ServerVersion(),
		WalletOpen:    st.IsOpen(),
	}
	if ss, ok := st.SyncState(); ok {
		s.SyncText = ss.String()
	}
	if score, ok := st.DAAScore(); ok {
		s.DAAScore = fmt.Sprintf("%d", score)
	}
	if m, ok := c.Metrics(); ok {
		s.Peers = fmt.Sprintf("%d", m.Peers)
		s.TPS = fmt.Sprintf("%.2f", m.TPS)
		s.Mempool = fmt.Sprintf("%d", m.MempoolSize)
	}
	if h := c.Hint(); h != nil {
		s.Hint = h.Text
	}
	if rates, ok := c.Feerate(); ok {
		for _, b := range feeBuckets {
			bucket := b.pick(rates)
			s.Feerate = append(s.Feerate, home.FeerateRow{
				Label:   b.String(),
				Feerate: fmt.Sprintf("%.2f sompi/g", bucket.Feerate),
				ETA:     helpers.FormatDurationEstimate(math.Max(bucket.Seconds, 1)),
			})
		}
	}
	if accs := c.Accounts(); accs != nil {
		var total uint64
		for _, acc := range accs.Items() {
			row := home.AccountRow{Name: acc.NameOrID(), Address: acc.ReceiveAddress(), Balance: "—"}
			if b := acc.Balance(); b != nil && b.Balance != nil {
				row.Balance = helpers.FormatKAS(b.Balance.Mature, network)
				total += b.Balance.Mature
			}
			s.Accounts = append(s.Accounts, row)
		}
		if len(s.Accounts) > 1 {
			s.Total = helpers.FormatKAS(total, network)
		}
	}
	return s
}
