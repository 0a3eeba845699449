package rpc

import (
	"encoding/json"
	"fmt"
	"time"

	"kaspa-wallet-tui/events"
	"kaspa-wallet-tui/wallet"
)

// Wallet RPC methods
const (
	MethodWalletEnumerate = "walletEnumerate"
	MethodWalletOpen      = "walletOpen"
	MethodWalletClose     = "walletClose"
	MethodAccountEstimate = "accountsEstimate"
	MethodAccountSend     = "accountsSend"
	MethodFeeEstimate     = "feeEstimate"
	MethodTransactions    = "transactionsDataGet"
)

type request struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      uint64      `json:"id"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params,omitempty"`
}

// message is anything the server sends: a response carries an id, a
// notification carries a method.
type message struct {
	ID     *uint64         `json:"id,omitempty"`
	Method string          `json:"method,omitempty"`
	Params json.RawMessage `json:"params,omitempty"`
	Result json.RawMessage `json:"result,omitempty"`
	Error  *Error          `json:"error,omitempty"`
}

// Error is a JSON-RPC error returned by the server.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

// Server error codes with a typed wallet counterpart
const (
	CodeInvalidSecret     = -32010
	CodeInsufficientFunds = -32011
)

func (e *Error) Unwrap() error {
	switch e.Code {
	case CodeInvalidSecret:
		return wallet.ErrInvalidSecret
	case CodeInsufficientFunds:
		return wallet.ErrInsufficientFunds
	}
	return nil
}

type walletOpenParams struct {
	Filename     string `json:"filename"`
	WalletSecret []byte `json:"walletSecret"`
}

type connectParams struct {
	URL     string           `json:"url"`
	Network wallet.NetworkID `json:"networkId"`
}

type serverStatusParams struct {
	IsSynced      bool             `json:"isSynced"`
	ServerVersion string           `json:"serverVersion"`
	URL           string           `json:"url"`
	Network       wallet.NetworkID `json:"networkId"`
}

type accountsParams struct {
	Accounts *[]wallet.AccountDescriptor `json:"accountDescriptors"`
}

type balanceParams struct {
	ID              wallet.AccountID `json:"id"`
	Balance         *wallet.Balance  `json:"balance"`
	MatureUtxoSize  int              `json:"matureUtxoSize"`
	PendingUtxoSize int              `json:"pendingUtxoSize"`
}

type recordParams struct {
	Record wallet.TransactionRecord `json:"record"`
}

type metricsParams struct {
	Peers       int     `json:"peers"`
	TPS         float64 `json:"tps"`
	MempoolSize uint64  `json:"mempoolSize"`
	UnixMillis  int64   `json:"unixtime"`
}

// decodeNotification translates a server notification into an application
// event. Unknown methods yield a nil event.
func decodeNotification(method string, params json.RawMessage) (events.Event, error) {
	var ev wallet.Event
	switch method {
	case "connect", "disconnect":
		var p connectParams
		if err := unmarshal(params, &p); err != nil {
			return nil, err
		}
		if method == "connect" {
			ev = wallet.Connect{URL: p.URL, Network: p.Network}
		} else {
			ev = wallet.Disconnect{URL: p.URL, Network: p.Network}
		}
	case "syncState":
		var p wallet.SyncState
		if err := unmarshal(params, &p); err != nil {
			return nil, err
		}
		ev = wallet.SyncStateChange{State: p}
	case "serverStatus":
		var p serverStatusParams
		if err := unmarshal(params, &p); err != nil {
			return nil, err
		}
		ev = wallet.ServerStatus{IsSynced: p.IsSynced, ServerVersion: p.ServerVersion, URL: p.URL, Network: p.Network}
	case "daaScoreChange":
		var p struct {
			Score uint64 `json:"currentDaaScore"`
		}
		if err := unmarshal(params, &p); err != nil {
			return nil, err
		}
		ev = wallet.DAAScoreChange{Score: p.Score}
	case "walletOpen", "walletReload":
		var p accountsParams
		if err := unmarshal(params, &p); err != nil {
			return nil, err
		}
		var accounts []wallet.AccountDescriptor
		if p.Accounts != nil {
			accounts = *p.Accounts
			if accounts == nil {
				accounts = []wallet.AccountDescriptor{}
			}
		}
		if method == "walletOpen" {
			ev = wallet.WalletOpen{Accounts: accounts}
		} else {
			ev = wallet.WalletReload{Accounts: accounts}
		}
	case "walletClose":
		ev = wallet.WalletClose{}
	case "walletError":
		var p struct {
			Message string `json:"message"`
		}
		if err := unmarshal(params, &p); err != nil {
			return nil, err
		}
		ev = wallet.WalletError{Message: p.Message}
	case "walletHint":
		var p struct {
			Hint *wallet.Hint `json:"hint"`
		}
		if err := unmarshal(params, &p); err != nil {
			return nil, err
		}
		ev = wallet.WalletHint{Hint: p.Hint}
	case "balance":
		var p balanceParams
		if err := unmarshal(params, &p); err != nil {
			return nil, err
		}
		ev = wallet.BalanceUpdate{ID: p.ID, Balance: p.Balance, MatureUtxoSize: p.MatureUtxoSize, PendingUtxoSize: p.PendingUtxoSize}
	case "external", "pending", "maturity", "outgoing", "reorg":
		var p recordParams
		if err := unmarshal(params, &p); err != nil {
			return nil, err
		}
		switch method {
		case "external":
			ev = wallet.External{Record: p.Record}
		case "pending":
			ev = wallet.PendingTx{Record: p.Record}
		case "maturity":
			ev = wallet.Maturity{Record: p.Record}
		case "outgoing":
			ev = wallet.OutgoingTx{Record: p.Record}
		default:
			ev = wallet.Reorg{Record: p.Record}
		}
	case "utxoIndexNotEnabled":
		var p struct {
			URL string `json:"url"`
		}
		if err := unmarshal(params, &p); err != nil {
			return nil, err
		}
		ev = wallet.UtxoIndexNotEnabled{URL: p.URL}
	case "metrics":
		var p metricsParams
		if err := unmarshal(params, &p); err != nil {
			return nil, err
		}
		return events.Metrics{Peers: p.Peers, TPS: p.TPS, MempoolSize: p.MempoolSize, Time: time.UnixMilli(p.UnixMillis)}, nil
	default:
		return nil, nil
	}
	return events.Wallet{Event: ev}, nil
}

func unmarshal(raw json.RawMessage, v interface{}) error {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode notification params: %w", err)
	}
	return nil
}
