package modules

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"kaspa-wallet-tui/core"
	"kaspa-wallet-tui/events"
	"kaspa-wallet-tui/helpers"
	"kaspa-wallet-tui/primitives"
	"kaspa-wallet-tui/secret"
	"kaspa-wallet-tui/styles"
	"kaspa-wallet-tui/views/accounts"
	"kaspa-wallet-tui/views/details"
	"kaspa-wallet-tui/views/send"
	"kaspa-wallet-tui/wallet"
)

const (
	defaultEstimateDebounce = 300 * time.Millisecond
	maxTransactionRows      = 12
	historyPageSize         = 64
)

type managerState uint8

const (
	stateSelect managerState = iota
	stateOverview
)

// Action is the step of the send workflow.
type Action uint8

const (
	ActionNone Action = iota
	ActionEstimating
	ActionSending
	ActionProcessing
)

func (a Action) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionEstimating:
		return "estimating"
	case ActionSending:
		return "sending"
	case ActionProcessing:
		return "processing"
	default:
		return fmt.Sprintf("action(%d)", uint8(a))
	}
}

type TransactionKind uint8

const (
	TransactionSend TransactionKind = iota
	TransactionTransfer
)

type Focus uint8

const (
	FocusNone Focus = iota
	FocusAddress
	FocusAmount
	FocusFees
	FocusWalletSecret
	FocusPaymentSecret
)

// FeeBucket selects one of the node's feerate buckets.
type FeeBucket uint8

const (
	BucketLow FeeBucket = iota
	BucketEconomic
	BucketPriority
)

var feeBuckets = []FeeBucket{BucketLow, BucketEconomic, BucketPriority}

func (b FeeBucket) String() string {
	switch b {
	case BucketLow:
		return "Low"
	case BucketEconomic:
		return "Economic"
	default:
		return "Priority"
	}
}

func (b FeeBucket) key() string {
	return fmt.Sprintf("f%d", uint8(b)+1)
}

func (b FeeBucket) pick(f wallet.FeerateEstimate) wallet.FeerateBucket {
	switch b {
	case BucketLow:
		return f.Low
	case BucketEconomic:
		return f.Normal
	default:
		return f.Priority
	}
}

// priorityFee is the fee paid on top of the minimum for the given bucket.
func priorityFee(bucket wallet.FeerateBucket, mass uint64) uint64 {
	return uint64(math.Max(bucket.Feerate-1, 0) * float64(mass))
}

type (
	estimateTickMsg  struct{ seq uint64 }
	addressCopiedMsg struct{ err error }
	clearCopiedMsg   struct{}
)

// sendContext is everything tied to one send or transfer. It is replaced
// as a whole when the workflow resets.
type sendContext struct {
	kind       TransactionKind
	transferTo *primitives.Account

	address textinput.Model
	amount  textinput.Model
	fees    textinput.Model

	addressStatus helpers.AddressStatus
	amountSompi   uint64
	amountValid   bool
	priorityFee   uint64
	feeValid      bool

	estimate        *estimateSlot
	requestEstimate bool

	action        Action
	focus         Focus
	walletSecret  *secret.Field
	paymentSecret *secret.Field
	result        *sendSlot
}

func newInput(placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Prompt = "› "
	ti.Cursor.SetMode(cursor.CursorStatic)
	return ti
}

func newSendContext() sendContext {
	return sendContext{
		address:       newInput("kaspa:…", 80),
		amount:        newInput("0.0", 24),
		fees:          newInput("0", 24),
		feeValid:      true,
		estimate:      newEstimateSlot(),
		result:        &sendSlot{},
		walletSecret:  secret.New(""),
		paymentSecret: secret.New(""),
	}
}

func (s *sendContext) zeroize() {
	s.walletSecret.Zeroize()
	s.paymentSecret.Zeroize()
}

// AccountManager shows the selected account and runs the send workflow.
type AccountManager struct {
	state   managerState
	account *primitives.Account
	cursor  int
	ctx     sendContext

	debounce    time.Duration
	debounceSeq uint64

	spinner   spinner.Model
	showQR    bool
	copied    string
	clipboard func(string) error
}

func NewAccountManager() *AccountManager {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.HotkeyKeyStyle
	return &AccountManager{
		ctx:       newSendContext(),
		debounce:  defaultEstimateDebounce,
		spinner:   s,
		clipboard: clipboard.WriteAll,
	}
}

func (m *AccountManager) Kind() core.ModuleKind { return core.KindAccountManager }

func (m *AccountManager) Init(c *core.Core) {
	m.AccountsChanged(c)
}

func (m *AccountManager) Reset(*core.Core) {
	m.account = nil
	m.state = stateSelect
	m.cursor = 0
	m.showQR = false
	m.copied = ""
	m.resetSendState()
}

// Account returns the selected account, or nil.
func (m *AccountManager) Account() *primitives.Account {
	return m.account
}

// AccountsChanged rebinds the selection to the rebuilt collection.
func (m *AccountManager) AccountsChanged(c *core.Core) {
	accs := c.Accounts()
	if m.account != nil {
		var (
			acc *primitives.Account
			ok  bool
		)
		if accs != nil {
			acc, ok = accs.Get(m.account.ID())
		}
		if ok {
			m.account = acc
			m.loadHistory(c, acc)
		} else {
			m.Reset(c)
		}
	}
	if m.ctx.transferTo != nil {
		var (
			acc *primitives.Account
			ok  bool
		)
		if accs != nil {
			acc, ok = accs.Get(m.ctx.transferTo.ID())
		}
		if ok {
			m.ctx.transferTo = acc
		} else {
			m.retargetTransfer(c)
		}
	}
	if m.account == nil && accs != nil && accs.Len() == 1 {
		first, _ := accs.First()
		m.SelectAccount(c, first)
	}
	if accs != nil && m.cursor >= accs.Len() {
		m.cursor = 0
	}
}

// SelectAccount switches to the account overview.
func (m *AccountManager) SelectAccount(c *core.Core, acc *primitives.Account) tea.Cmd {
	if acc == nil {
		m.Reset(c)
		return nil
	}
	m.resetSendState()
	m.account = acc
	m.state = stateOverview
	m.showQR = false
	c.Logger().Debug("account selected", "account", acc.NameOrID())
	m.loadHistory(c, acc)
	return m.spinner.Tick
}

// loadHistory fetches the newest page of account history. The account shows
// as loading until the page or its failure reaches the reducer.
func (m *AccountManager) loadHistory(c *core.Core, acc *primitives.Account) {
	if !c.State().IsConnected() || acc.IsLoading() {
		return
	}
	acc.SetLoading(true)
	in := c.Interop()
	req := wallet.TransactionsRequest{AccountID: acc.ID(), Start: 0, End: historyPageSize}
	in.Spawn("transactions", func(ctx context.Context) error {
		page, err := in.Wallet().AccountTransactions(ctx, req)
		in.Send(events.Transactions{Account: req.AccountID, Page: page, Err: err})
		return nil
	})
}

func (m *AccountManager) Action() Action { return m.ctx.action }
func (m *AccountManager) Focus() Focus   { return m.ctx.focus }

func (m *AccountManager) TransactionKind() TransactionKind { return m.ctx.kind }

// InOverview reports whether an account is selected.
func (m *AccountManager) InOverview() bool {
	return m.state == stateOverview && m.account != nil
}

func (m *AccountManager) Estimate() Estimate {
	return m.ctx.estimate.Load()
}

// Amount returns the parsed amount in sompi and whether it is valid.
func (m *AccountManager) Amount() (uint64, bool) {
	return m.ctx.amountSompi, m.ctx.amountValid
}

func (m *AccountManager) PriorityFee() uint64 {
	return m.ctx.priorityFee
}

func (m *AccountManager) FeeText() string {
	return m.ctx.fees.Value()
}

func (m *AccountManager) AddressStatus() helpers.AddressStatus {
	return m.ctx.addressStatus
}

func (m *AccountManager) TransferTarget() *primitives.Account {
	return m.ctx.transferTo
}

func (m *AccountManager) WalletSecret() *secret.Field  { return m.ctx.walletSecret }
func (m *AccountManager) PaymentSecret() *secret.Field { return m.ctx.paymentSecret }

// CapturesInput is true while a form is being filled in.
func (m *AccountManager) CapturesInput() bool {
	return m.ctx.action != ActionNone
}

func (m *AccountManager) resetSendState() {
	m.ctx.zeroize()
	m.ctx = newSendContext()
}

// StartSend enters the estimating step for a send to an address or a
// transfer to another account of the wallet.
func (m *AccountManager) StartSend(c *core.Core, kind TransactionKind) tea.Cmd {
	if !m.InOverview() || m.ctx.action != ActionNone {
		return nil
	}
	if kind == TransactionTransfer {
		targets := m.transferTargets(c)
		if len(targets) == 0 {
			c.Notify(events.LevelWarning, "There is no other account to transfer to")
			return nil
		}
		m.ctx.transferTo = targets[0]
	}
	m.ctx.kind = kind
	m.ctx.action = ActionEstimating
	if kind == TransactionTransfer {
		m.setFocus(FocusAmount)
	} else {
		m.setFocus(FocusAddress)
	}
	m.fetchFeerate(c)
	return m.spinner.Tick
}

// Cancel leaves the estimating or sending step and wipes the secrets.
func (m *AccountManager) Cancel() {
	if m.ctx.action != ActionEstimating && m.ctx.action != ActionSending {
		return
	}
	m.resetSendState()
}

func (m *AccountManager) transferTargets(c *core.Core) []*primitives.Account {
	accs := c.Accounts()
	if accs == nil || m.account == nil {
		return nil
	}
	var out []*primitives.Account
	for _, acc := range accs.Items() {
		if acc.ID() != m.account.ID() {
			out = append(out, acc)
		}
	}
	return out
}

// retargetTransfer handles a transfer target that left the wallet. A prompt
// for the secret is abandoned; while estimating, the first remaining account
// becomes the target and any estimate against the old one is dropped.
func (m *AccountManager) retargetTransfer(c *core.Core) {
	gone := m.ctx.transferTo.NameOrID()
	c.Logger().Info("transfer target removed", "account", gone)
	if m.ctx.action == ActionSending {
		m.resetSendState()
		c.Notify(events.LevelWarning, fmt.Sprintf("Transfer cancelled: account %s is no longer in the wallet", gone))
		return
	}
	m.ctx.transferTo = nil
	if targets := m.transferTargets(c); len(targets) > 0 {
		m.ctx.transferTo = targets[0]
	}
	if m.ctx.action == ActionEstimating {
		m.ctx.estimate.Reset(Estimate{})
		m.ctx.requestEstimate = m.ctx.amountValid && m.ctx.feeValid && m.ctx.transferTo != nil
	}
}

func (m *AccountManager) cycleTransferTarget(c *core.Core, dir int) {
	targets := m.transferTargets(c)
	if len(targets) == 0 {
		return
	}
	idx := 0
	for i, acc := range targets {
		if m.ctx.transferTo != nil && acc.ID() == m.ctx.transferTo.ID() {
			idx = i
			break
		}
	}
	idx = (idx + dir + len(targets)) % len(targets)
	m.ctx.transferTo = targets[idx]
	m.ctx.requestEstimate = m.ctx.amountValid && m.ctx.feeValid
}

func (m *AccountManager) setFocus(f Focus) {
	m.ctx.focus = f
	m.ctx.address.Blur()
	m.ctx.amount.Blur()
	m.ctx.fees.Blur()
	m.ctx.walletSecret.Focused = f == FocusWalletSecret
	m.ctx.paymentSecret.Focused = f == FocusPaymentSecret
	switch f {
	case FocusAddress:
		if m.ctx.kind == TransactionSend {
			m.ctx.address.Focus()
		}
	case FocusAmount:
		m.ctx.amount.Focus()
	case FocusFees:
		m.ctx.fees.Focus()
	}
}

func (m *AccountManager) cycleFocus(dir int) {
	order := []Focus{FocusAddress, FocusAmount, FocusFees}
	idx := 0
	for i, f := range order {
		if f == m.ctx.focus {
			idx = i
		}
	}
	m.setFocus(order[(idx+dir+len(order))%len(order)])
}

// SetAddressText replaces the destination address.
func (m *AccountManager) SetAddressText(c *core.Core, text string) tea.Cmd {
	m.ctx.address.SetValue(text)
	m.onAddressChanged(c)
	return m.scheduleEstimate()
}

// SetAmountText replaces the amount. An empty amount clears the estimate,
// an invalid one replaces it with an error.
func (m *AccountManager) SetAmountText(text string) tea.Cmd {
	m.ctx.amount.SetValue(text)
	m.onAmountChanged()
	return m.scheduleEstimate()
}

// SetFeeText replaces the priority fee. Empty means no priority fee.
func (m *AccountManager) SetFeeText(text string) tea.Cmd {
	m.ctx.fees.SetValue(text)
	m.onFeesChanged()
	return m.scheduleEstimate()
}

func (m *AccountManager) onAddressChanged(c *core.Core) {
	prev := m.ctx.addressStatus
	m.ctx.addressStatus = helpers.ValidateAddress(strings.TrimSpace(m.ctx.address.Value()), c.Network())
	if prev == helpers.AddressValid || m.ctx.addressStatus == helpers.AddressValid {
		m.ctx.requestEstimate = m.ctx.amountValid && m.ctx.feeValid
	}
}

func (m *AccountManager) onAmountChanged() {
	sompi, ok, err := helpers.ParseSompi(m.ctx.amount.Value())
	switch {
	case err != nil:
		m.ctx.amountSompi, m.ctx.amountValid = 0, false
		m.ctx.requestEstimate = false
		m.ctx.estimate.Reset(Estimate{State: EstimateError, Err: "Invalid amount: " + err.Error()})
	case !ok:
		m.ctx.amountSompi, m.ctx.amountValid = 0, false
		m.ctx.requestEstimate = false
		m.ctx.estimate.Reset(Estimate{})
	default:
		m.ctx.amountSompi, m.ctx.amountValid = sompi, true
		m.ctx.requestEstimate = m.ctx.feeValid
	}
}

func (m *AccountManager) onFeesChanged() {
	sompi, ok, err := helpers.ParseSompi(m.ctx.fees.Value())
	switch {
	case err != nil:
		m.ctx.priorityFee, m.ctx.feeValid = 0, false
		m.ctx.requestEstimate = false
		m.ctx.estimate.Reset(Estimate{State: EstimateError, Err: "Invalid fee amount: " + err.Error()})
		return
	case !ok:
		m.ctx.priorityFee = 0
	default:
		m.ctx.priorityFee = sompi
	}
	m.ctx.feeValid = true
	if m.ctx.amountValid {
		m.ctx.requestEstimate = true
	} else if _, set, _ := helpers.ParseSompi(m.ctx.amount.Value()); !set {
		m.ctx.estimate.Reset(Estimate{})
	}
}

// SelectFeeBucket fills the priority fee from a feerate bucket and the
// current estimate's mass, then asks for a fresh estimate. It needs a
// successful estimate to take the mass from.
func (m *AccountManager) SelectFeeBucket(c *core.Core, b FeeBucket) tea.Cmd {
	if m.ctx.action != ActionEstimating {
		return nil
	}
	rates, ok := c.Feerate()
	if !ok {
		c.Notify(events.LevelWarning, "Fee rates are not available yet")
		return nil
	}
	est := m.ctx.estimate.Load()
	if est.State != EstimateSummary {
		c.Notify(events.LevelWarning, "Fee buckets need a successful estimate first")
		return nil
	}
	m.ctx.fees.SetValue(helpers.FormatFeeText(priorityFee(b.pick(rates), est.Summary.AggregateMass)))
	m.onFeesChanged()
	m.ctx.requestEstimate = true
	return m.scheduleEstimate()
}

func (m *AccountManager) scheduleEstimate() tea.Cmd {
	if !m.ctx.requestEstimate {
		return nil
	}
	m.debounceSeq++
	seq := m.debounceSeq
	return tea.Tick(m.debounce, func(time.Time) tea.Msg {
		return estimateTickMsg{seq: seq}
	})
}

func (m *AccountManager) destination() wallet.Destination {
	d := wallet.Destination{Amount: m.ctx.amountSompi}
	switch {
	case m.ctx.kind == TransactionTransfer && m.ctx.transferTo != nil:
		d.Account = m.ctx.transferTo.ID()
	case m.ctx.addressStatus == helpers.AddressValid:
		d.Address = strings.TrimSpace(m.ctx.address.Value())
	default:
		// the mass does not depend on the address, so estimate against our own
		d.Address = m.account.ReceiveAddress()
	}
	return d
}

func (m *AccountManager) feePolicy() wallet.FeePolicy {
	return wallet.FeePolicy{PriorityFee: m.ctx.priorityFee, SenderPays: true}
}

// FlushEstimate launches an estimate for the current inputs if one was
// requested since the last launch.
func (m *AccountManager) FlushEstimate(c *core.Core) {
	if !m.ctx.requestEstimate || m.ctx.action != ActionEstimating || m.account == nil {
		return
	}
	m.ctx.requestEstimate = false
	if !m.ctx.amountValid || !m.ctx.feeValid {
		return
	}

	req := wallet.AccountEstimateRequest{
		TaskID:      uuid.New(),
		AccountID:   m.account.ID(),
		Destination: m.destination(),
		FeePolicy:   m.feePolicy(),
	}
	slot := m.ctx.estimate
	epoch := slot.Launch()
	in := c.Interop()
	logger := c.Logger()
	logger.Debug("estimate requested", "task", req.TaskID, "account", req.AccountID, "amount", req.Destination.Amount)

	in.Spawn("estimate", func(ctx context.Context) error {
		summary, err := in.Wallet().AccountEstimate(ctx, req)
		v := Estimate{State: EstimateSummary, Summary: summary}
		if err != nil {
			v = Estimate{State: EstimateError, Err: err.Error()}
		}
		if !slot.Complete(epoch, v) {
			logger.Debug("stale estimate dropped", "task", req.TaskID)
		}
		in.RequestRepaint()
		return nil
	})
}

func (m *AccountManager) destinationReady() bool {
	if m.ctx.kind == TransactionTransfer {
		return m.ctx.transferTo != nil
	}
	return m.ctx.addressStatus == helpers.AddressValid
}

// CanSend reports whether the estimating step may move on to the secret prompt.
func (m *AccountManager) CanSend() bool {
	return m.ctx.action == ActionEstimating &&
		m.ctx.amountValid && m.ctx.feeValid &&
		m.ctx.estimate.Load().State == EstimateSummary &&
		m.destinationReady()
}

// RequestSend moves to the secret prompt, or focuses the destination when
// it is what blocks the send.
func (m *AccountManager) RequestSend() {
	if m.ctx.action != ActionEstimating {
		return
	}
	if m.CanSend() {
		m.ctx.action = ActionSending
		m.setFocus(FocusWalletSecret)
		return
	}
	if !m.destinationReady() {
		m.setFocus(FocusAddress)
	}
}

// Submit sends the transaction. The secrets are copied into the request and
// the fields are wiped immediately; the copies are wiped when the send returns.
func (m *AccountManager) Submit(c *core.Core) tea.Cmd {
	if m.ctx.action != ActionSending || m.account == nil {
		return nil
	}
	if m.ctx.walletSecret.IsEmpty() {
		c.Notify(events.LevelWarning, "Enter the wallet secret to send")
		m.setFocus(FocusWalletSecret)
		return nil
	}

	req := wallet.AccountSendRequest{
		AccountID:    m.account.ID(),
		Destination:  m.destination(),
		WalletSecret: m.ctx.walletSecret.Bytes(),
		FeePolicy:    m.feePolicy(),
	}
	if !m.ctx.paymentSecret.IsEmpty() {
		req.PaymentSecret = m.ctx.paymentSecret.Bytes()
	}
	m.ctx.zeroize()
	m.ctx.action = ActionProcessing
	m.setFocus(FocusNone)

	in := c.Interop()
	slot := m.ctx.result
	c.Logger().Info("sending", "account", m.account.NameOrID(), "amount", req.Destination.Amount, "transfer", req.Destination.IsTransfer())

	in.Spawn("send", func(ctx context.Context) error {
		defer secret.Wipe(req.WalletSecret)
		defer secret.Wipe(req.PaymentSecret)
		// a submitted send is never abandoned halfway
		resp, err := in.Wallet().AccountSend(context.WithoutCancel(ctx), req)
		slot.complete(sendOutcome{Response: resp, Err: err})
		in.RequestRepaint()
		return nil
	})
	return m.spinner.Tick
}

// collectSend finishes the workflow once the send task reported back.
func (m *AccountManager) collectSend(c *core.Core) {
	if m.ctx.action != ActionProcessing {
		return
	}
	out, ok := m.ctx.result.take()
	if !ok {
		return
	}
	if out.Err != nil {
		c.Logger().Error("send failed", "account", m.account.NameOrID(), "err", out.Err)
		c.Notify(events.LevelError, "Send failed: "+out.Err.Error())
	} else {
		c.Logger().Info("transaction sent", "account", m.account.NameOrID(), "transactions", len(out.Response.TransactionIDs))
		c.Notify(events.LevelSuccess, "Sent "+helpers.FormatKAS(m.ctx.amountSompi, c.Network()))
	}
	m.resetSendState()
}

func (m *AccountManager) fetchFeerate(c *core.Core) {
	if c.State().IsConnected() {
		requestFeerate(c)
	}
}

func copyAddress(write func(string) error, addr string) tea.Cmd {
	return func() tea.Msg {
		return addressCopiedMsg{err: write(addr)}
	}
}

func (m *AccountManager) Update(c *core.Core, msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case core.RefreshMsg:
		m.collectSend(c)
	case estimateTickMsg:
		if msg.seq == m.debounceSeq {
			m.FlushEstimate(c)
		}
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return cmd
	case addressCopiedMsg:
		if msg.err != nil {
			c.Notify(events.LevelWarning, "Clipboard unavailable: "+msg.err.Error())
			return nil
		}
		m.copied = "✓ Copied address to clipboard"
		return tea.Tick(2*time.Second, func(time.Time) tea.Msg { return clearCopiedMsg{} })
	case clearCopiedMsg:
		m.copied = ""
	case tea.KeyMsg:
		return m.updateKeys(c, msg)
	}
	return nil
}

func (m *AccountManager) updateKeys(c *core.Core, msg tea.KeyMsg) tea.Cmd {
	if !m.InOverview() {
		return m.updateSelect(c, msg)
	}
	switch m.ctx.action {
	case ActionNone:
		return m.updateOverview(c, msg)
	case ActionEstimating:
		return m.updateEstimating(c, msg)
	case ActionSending:
		return m.updateSending(c, msg)
	}
	return nil
}

func (m *AccountManager) updateSelect(c *core.Core, msg tea.KeyMsg) tea.Cmd {
	accs := c.Accounts()
	if accs == nil || accs.IsEmpty() {
		return nil
	}
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < accs.Len()-1 {
			m.cursor++
		}
	case "enter":
		items := accs.Items()
		if m.cursor < len(items) {
			return m.SelectAccount(c, items[m.cursor])
		}
	}
	return nil
}

func (m *AccountManager) updateOverview(c *core.Core, msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		return m.StartSend(c, TransactionSend)
	case "t":
		return m.StartSend(c, TransactionTransfer)
	case "c":
		return copyAddress(m.clipboard, m.account.ReceiveAddress())
	case "r":
		m.showQR = !m.showQR
	case "x":
		if accs := c.Accounts(); accs != nil && accs.Len() > 1 {
			m.account = nil
			m.state = stateSelect
		}
	}
	return nil
}

func (m *AccountManager) updateEstimating(c *core.Core, msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.Cancel()
		return nil
	case "tab", "down":
		m.cycleFocus(1)
		return nil
	case "shift+tab", "up":
		m.cycleFocus(-1)
		return nil
	case "f1", "f2", "f3":
		return m.SelectFeeBucket(c, FeeBucket(msg.String()[1]-'1'))
	case "enter":
		if m.ctx.focus == FocusAddress {
			m.setFocus(FocusAmount)
			return nil
		}
		m.RequestSend()
		return nil
	}

	var cmd tea.Cmd
	switch m.ctx.focus {
	case FocusAddress:
		if m.ctx.kind == TransactionTransfer {
			switch msg.String() {
			case "left":
				m.cycleTransferTarget(c, -1)
			case "right", " ":
				m.cycleTransferTarget(c, 1)
			}
			break
		}
		m.ctx.address, cmd = m.ctx.address.Update(msg)
		m.onAddressChanged(c)
	case FocusAmount:
		m.ctx.amount, cmd = m.ctx.amount.Update(msg)
		m.onAmountChanged()
	case FocusFees:
		m.ctx.fees, cmd = m.ctx.fees.Update(msg)
		m.onFeesChanged()
	}
	return tea.Batch(cmd, m.scheduleEstimate())
}

func (m *AccountManager) updateSending(c *core.Core, msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.Cancel()
	case "tab", "shift+tab":
		if m.ctx.focus == FocusWalletSecret {
			m.setFocus(FocusPaymentSecret)
		} else {
			m.setFocus(FocusWalletSecret)
		}
	case "enter":
		return m.Submit(c)
	default:
		if m.ctx.focus == FocusPaymentSecret {
			m.ctx.paymentSecret.Update(msg)
		} else {
			m.ctx.walletSecret.Update(msg)
		}
	}
	return nil
}

func (m *AccountManager) View(c *core.Core, width, height int) string {
	accs := c.Accounts()
	if accs == nil {
		return accounts.Render(nil, 0)
	}
	if !m.InOverview() {
		return accounts.Render(accountRows(accs.Items(), c.Network()), m.cursor)
	}
	if m.ctx.action != ActionNone {
		return send.Render(width, m.sendForm(c))
	}
	var qr string
	if m.showQR {
		qr = helpers.RenderQR(m.account.ReceiveAddress())
	}
	return details.Render(m.detailsView(c), qr, m.copied, m.spinner.View())
}

// Nav returns the navigation bar matching the current step.
func (m *AccountManager) Nav(c *core.Core, width int) string {
	switch {
	case !m.InOverview():
		return accounts.Nav(width)
	case m.ctx.action == ActionNone:
		accs := c.Accounts()
		return details.Nav(width, accs != nil && accs.Len() > 1)
	default:
		return send.Nav(width, m.ctx.action != ActionEstimating)
	}
}

func accountRows(items []*primitives.Account, network wallet.NetworkID) []accounts.Row {
	rows := make([]accounts.Row, 0, len(items))
	for _, acc := range items {
		balance := "—"
		if b := acc.Balance(); b != nil && b.Balance != nil {
			balance = helpers.FormatKAS(b.Balance.Mature, network)
		}
		rows = append(rows, accounts.Row{Name: acc.NameOrID(), Address: acc.ReceiveAddress(), Balance: balance})
	}
	return rows
}

func (m *AccountManager) detailsView(c *core.Core) details.Account {
	acc := m.account
	network := c.Network()
	d := details.Account{
		Name:    acc.Name(),
		ID:      string(acc.ID()),
		Kind:    string(acc.Descriptor().Kind),
		Address: acc.ReceiveAddress(),
		Total:   acc.TotalTransactions(),
		Loading: acc.IsLoading(),
	}
	if b := acc.Balance(); b != nil && b.Balance != nil {
		d.HasBalance = true
		d.Mature = helpers.FormatKAS(b.Balance.Mature, network)
		if b.Balance.Pending > 0 {
			d.Pending = helpers.FormatKAS(b.Balance.Pending, network)
		}
		d.MatureUtxos = b.MatureUtxoSize
		d.PendingUtxos = b.PendingUtxoSize
	}
	txs := acc.Transactions()
	if len(txs) > maxTransactionRows {
		txs = txs[:maxTransactionRows]
	}
	if d.Total < uint64(acc.TransactionCount()) {
		d.Total = uint64(acc.TransactionCount())
	}
	for _, rec := range txs {
		d.Transactions = append(d.Transactions, details.Transaction{
			ID:        helpers.ShortenAddr(string(rec.ID)),
			Direction: rec.Dir.String(),
			Value:     helpers.FormatKAS(rec.Value, network),
			DAAScore:  rec.DAAScore,
			Incoming:  rec.Dir == wallet.Incoming || rec.Dir == wallet.Matured,
		})
	}
	return d
}

func (m *AccountManager) sendForm(c *core.Core) send.Form {
	network := c.Network()
	f := send.Form{
		Title:      "Send",
		From:       m.account.NameOrID(),
		Sending:    m.ctx.action == ActionSending,
		Processing: m.ctx.action == ActionProcessing,
		CanSend:    m.CanSend(),
		Spinner:    m.spinner.View(),
	}
	if b := m.account.Balance(); b != nil && b.Balance != nil {
		f.Available = helpers.FormatKAS(b.Balance.Mature, network)
	}

	if m.ctx.kind == TransactionTransfer {
		f.Title = "Transfer"
		target := "—"
		if m.ctx.transferTo != nil {
			target = "‹ " + m.ctx.transferTo.NameOrID() + " ›"
		}
		f.Fields = append(f.Fields, send.Field{Label: "To account", View: target, Focused: m.ctx.focus == FocusAddress})
	} else {
		field := send.Field{Label: "Destination address", View: m.ctx.address.View(), Focused: m.ctx.focus == FocusAddress}
		switch m.ctx.addressStatus {
		case helpers.AddressNetworkMismatch:
			field.Note, field.Warn = "Address belongs to a different network than "+string(network), true
		case helpers.AddressInvalid:
			field.Note, field.Warn = "Invalid address", true
		}
		f.Fields = append(f.Fields, field)
	}
	f.Fields = append(f.Fields,
		send.Field{Label: "Amount (" + helpers.Suffix(network) + ")", View: m.ctx.amount.View(), Focused: m.ctx.focus == FocusAmount},
		send.Field{Label: "Priority fee (" + helpers.Suffix(network) + ")", View: m.ctx.fees.View(), Focused: m.ctx.focus == FocusFees},
	)

	est := m.ctx.estimate.Load()
	f.Estimate = send.Estimate{Pending: m.ctx.estimate.Pending()}
	switch est.State {
	case EstimateError:
		f.Estimate.Err = est.Err
	case EstimateSummary:
		s := est.Summary
		f.Estimate.Ready = true
		f.Estimate.Fees = helpers.FormatKAS(s.AggregateFees, network)
		f.Estimate.Stages = s.Stages()
		f.Estimate.Utxos = s.NumberOfUtxos
		if s.FinalAmount != nil {
			f.Estimate.Final = helpers.FormatKAS(*s.FinalAmount+s.AggregateFees, network)
		} else {
			f.Estimate.Final = helpers.FormatKAS(m.ctx.amountSompi+s.AggregateFees, network)
		}
	}

	if rates, ok := c.Feerate(); ok && m.ctx.action == ActionEstimating && est.State == EstimateSummary {
		for _, b := range feeBuckets {
			bucket := b.pick(rates)
			seconds := math.Max(bucket.Seconds, 1) * float64(est.Summary.Stages())
			total := uint64(bucket.Feerate * float64(est.Summary.AggregateMass))
			f.Buckets = append(f.Buckets, send.Bucket{
				Key:   strings.ToUpper(b.key()),
				Label: b.String(),
				Fee:   helpers.FormatKAS(total, network),
				ETA:   helpers.FormatDurationEstimate(seconds),
			})
		}
	}

	f.Secrets = []send.Field{
		{Label: "Wallet secret", View: m.ctx.walletSecret.View(), Focused: m.ctx.focus == FocusWalletSecret},
		{Label: "Payment secret (optional)", View: m.ctx.paymentSecret.View(), Focused: m.ctx.focus == FocusPaymentSecret},
	}
	return f
}
