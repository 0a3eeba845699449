package rpc

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"kaspa-wallet-tui/events"
	"kaspa-wallet-tui/wallet"
)

const (
	defaultDialTimeout    = 8 * time.Second
	defaultCallTimeout    = 30 * time.Second
	defaultReconnectDelay = 3 * time.Second
)

// Client talks JSON-RPC over a websocket to the wallet backend. It implements
// wallet.API, and as an interop service it keeps the connection alive and
// forwards notifications to the event channel.
type Client struct {
	events *events.Channel
	logger *log.Logger

	DialTimeout    time.Duration
	CallTimeout    time.Duration
	ReconnectDelay time.Duration

	mtx      sync.Mutex
	url      string
	network  wallet.NetworkID
	conn     *websocket.Conn
	pending  map[uint64]chan message
	redial   chan struct{}
	writeMtx sync.Mutex
	nextID   atomic.Uint64
}

func New(url string, network wallet.NetworkID, ch *events.Channel, logger *log.Logger) *Client {
	return &Client{
		events:         ch,
		logger:         logger,
		DialTimeout:    defaultDialTimeout,
		CallTimeout:    defaultCallTimeout,
		ReconnectDelay: defaultReconnectDelay,
		url:            url,
		network:        network,
		pending:        make(map[uint64]chan message),
		redial:         make(chan struct{}, 1),
	}
}

func (c *Client) Name() string {
	return "wallet-rpc"
}

func (c *Client) URL() string {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	return c.url
}

// SetURL switches to another node. The current connection is dropped and the
// service reconnects to url.
func (c *Client) SetURL(url string, network wallet.NetworkID) {
	c.mtx.Lock()
	c.url = url
	c.network = network
	conn := c.conn
	c.mtx.Unlock()

	if conn != nil {
		conn.Close()
	}
	select {
	case c.redial <- struct{}{}:
	default:
	}
}

func (c *Client) Connected() bool {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	return c.conn != nil
}

// Run maintains the connection until ctx is cancelled.
func (c *Client) Run(ctx context.Context) error {
	for {
		url := c.URL()
		conn, err := c.dial(ctx, url)
		if err != nil {
			c.logger.Warn("wallet connection failed", "url", url, "err", err)
		} else {
			c.serve(ctx, conn, url)
		}

		if ctx.Err() != nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return nil
		case <-c.redial:
		case <-time.After(c.ReconnectDelay):
		}
	}
}

func (c *Client) dial(ctx context.Context, url string) (*websocket.Conn, error) {
	ctx, cancel := context.WithTimeout(ctx, c.DialTimeout)
	defer cancel()
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	return conn, err
}

func (c *Client) serve(ctx context.Context, conn *websocket.Conn, url string) {
	c.mtx.Lock()
	c.conn = conn
	network := c.network
	c.mtx.Unlock()

	c.logger.Info("wallet connected", "url", url)
	c.send(events.Wallet{Event: wallet.Connect{URL: url, Network: network}})

	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	c.readLoop(conn)
	close(done)

	c.mtx.Lock()
	if c.conn == conn {
		c.conn = nil
	}
	for id, ch := range c.pending {
		close(ch)
		delete(c.pending, id)
	}
	c.mtx.Unlock()
	conn.Close()

	c.logger.Info("wallet disconnected", "url", url)
	c.send(events.Wallet{Event: wallet.Disconnect{URL: url, Network: network}})
}

func (c *Client) readLoop(conn *websocket.Conn) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.logger.Debug("wallet read failed", "err", err)
			}
			return
		}

		var msg message
		if err := json.Unmarshal(data, &msg); err != nil {
			c.logger.Warn("malformed wallet message", "err", err)
			continue
		}

		if msg.ID != nil {
			c.mtx.Lock()
			ch, ok := c.pending[*msg.ID]
			delete(c.pending, *msg.ID)
			c.mtx.Unlock()
			if ok {
				ch <- msg
			}
			continue
		}

		ev, err := decodeNotification(msg.Method, msg.Params)
		if err != nil {
			c.logger.Warn("bad wallet notification", "method", msg.Method, "err", err)
			continue
		}
		if ev == nil {
			c.logger.Debug("ignoring wallet notification", "method", msg.Method)
			continue
		}
		c.send(ev)
	}
}

func (c *Client) send(ev events.Event) {
	if err := c.events.Send(ev); err != nil {
		c.logger.Debug("event dropped", "err", err)
	}
}

// call performs one request and decodes the result into out.
func (c *Client) call(ctx context.Context, method string, params, out interface{}) error {
	id := c.nextID.Add(1)
	ch := make(chan message, 1)

	c.mtx.Lock()
	conn := c.conn
	if conn == nil {
		c.mtx.Unlock()
		return wallet.ErrNotConnected
	}
	c.pending[id] = ch
	c.mtx.Unlock()

	data, err := json.Marshal(request{JSONRPC: "2.0", ID: id, Method: method, Params: params})
	if err != nil {
		c.forget(id)
		return err
	}

	c.writeMtx.Lock()
	err = conn.WriteMessage(websocket.TextMessage, data)
	c.writeMtx.Unlock()
	if err != nil {
		c.forget(id)
		return fmt.Errorf("%s: %w", method, err)
	}

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.CallTimeout)
		defer cancel()
	}

	select {
	case msg, ok := <-ch:
		if !ok {
			return fmt.Errorf("%s: %w", method, wallet.ErrNotConnected)
		}
		if msg.Error != nil {
			return fmt.Errorf("%s: %w", method, msg.Error)
		}
		if out == nil || len(msg.Result) == 0 {
			return nil
		}
		if err := json.Unmarshal(msg.Result, out); err != nil {
			return fmt.Errorf("%s: decode result: %w", method, err)
		}
		return nil
	case <-ctx.Done():
		c.forget(id)
		return ctx.Err()
	}
}

func (c *Client) forget(id uint64) {
	c.mtx.Lock()
	delete(c.pending, id)
	c.mtx.Unlock()
}

// WalletEnumerate returns wallet files sorted by label
func (c *Client) WalletEnumerate(ctx context.Context) ([]wallet.WalletDescriptor, error) {
	var out struct {
		Wallets []wallet.WalletDescriptor `json:"walletDescriptors"`
	}
	if err := c.call(ctx, MethodWalletEnumerate, struct{}{}, &out); err != nil {
		return nil, err
	}
	sort.Slice(out.Wallets, func(i, j int) bool {
		return out.Wallets[i].Label() < out.Wallets[j].Label()
	})
	return out.Wallets, nil
}

func (c *Client) WalletOpen(ctx context.Context, filename string, secret []byte) error {
	return c.call(ctx, MethodWalletOpen, walletOpenParams{Filename: filename, WalletSecret: secret}, nil)
}

func (c *Client) WalletClose(ctx context.Context) error {
	return c.call(ctx, MethodWalletClose, struct{}{}, nil)
}

func (c *Client) AccountEstimate(ctx context.Context, req wallet.AccountEstimateRequest) (wallet.GeneratorSummary, error) {
	var out struct {
		Summary wallet.GeneratorSummary `json:"generatorSummary"`
	}
	err := c.call(ctx, MethodAccountEstimate, req, &out)
	return out.Summary, err
}

func (c *Client) AccountSend(ctx context.Context, req wallet.AccountSendRequest) (wallet.SendResponse, error) {
	var out wallet.SendResponse
	err := c.call(ctx, MethodAccountSend, req, &out)
	return out, err
}

func (c *Client) FeeEstimate(ctx context.Context) (wallet.FeerateEstimate, error) {
	var out struct {
		Estimate wallet.FeerateEstimate `json:"estimate"`
	}
	err := c.call(ctx, MethodFeeEstimate, struct{}{}, &out)
	return out.Estimate, err
}

// AccountTransactions fetches one page of account history.
func (c *Client) AccountTransactions(ctx context.Context, req wallet.TransactionsRequest) (wallet.TransactionsPage, error) {
	var out wallet.TransactionsPage
	err := c.call(ctx, MethodTransactions, req, &out)
	return out, err
}
