package wallet

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNotConnected      = errors.New("wallet: not connected")
	ErrInvalidSecret     = errors.New("wallet: invalid wallet secret")
	ErrInsufficientFunds = errors.New("wallet: insufficient funds")
)

// FeePolicy controls how network fees are added to a transaction.
type FeePolicy struct {
	PriorityFee uint64 `json:"priorityFeeSompi"`
	SenderPays  bool   `json:"senderPays"`
}

// Destination is a payment target. An empty Address with a non-empty Account
// denotes a transfer between accounts of the open wallet.
type Destination struct {
	Address string    `json:"address,omitempty"`
	Account AccountID `json:"account,omitempty"`
	Amount  uint64    `json:"amount"`
}

func (d Destination) IsTransfer() bool {
	return d.Address == "" && d.Account != ""
}

type AccountEstimateRequest struct {
	TaskID      uuid.UUID   `json:"taskId"`
	AccountID   AccountID   `json:"accountId"`
	Destination Destination `json:"destination"`
	FeePolicy   FeePolicy   `json:"feePolicy"`
	Payload     []byte      `json:"payload,omitempty"`
}

type AccountSendRequest struct {
	AccountID     AccountID   `json:"accountId"`
	Destination   Destination `json:"destination"`
	WalletSecret  []byte      `json:"walletSecret"`
	PaymentSecret []byte      `json:"paymentSecret,omitempty"`
	FeePolicy     FeePolicy   `json:"feePolicy"`
	Payload       []byte      `json:"payload,omitempty"`
}

// GeneratorSummary describes the transactions an estimate or send would produce.
type GeneratorSummary struct {
	AggregateMass        uint64         `json:"aggregateMass"`
	AggregateFees        uint64         `json:"aggregateFees"`
	NumberOfTransactions int            `json:"numberOfGeneratedTransactions"`
	NumberOfUtxos        int            `json:"aggregatedUtxos"`
	FinalAmount          *uint64        `json:"finalTransactionAmount,omitempty"`
	FinalTransactionID   *TransactionID `json:"finalTransactionId,omitempty"`
}

// Stages is the number of chained transactions the generator needs.
func (s GeneratorSummary) Stages() int {
	if s.NumberOfTransactions < 1 {
		return 1
	}
	return s.NumberOfTransactions
}

type SendResponse struct {
	Summary        GeneratorSummary `json:"generatorSummary"`
	TransactionIDs []TransactionID  `json:"transactionIds"`
}

// FeerateBucket pairs a feerate with its expected confirmation time.
type FeerateBucket struct {
	Feerate float64 `json:"feerate"`
	Seconds float64 `json:"estimatedSeconds"`
}

type FeerateEstimate struct {
	Priority FeerateBucket `json:"priorityBucket"`
	Normal   FeerateBucket `json:"normalBuckets"`
	Low      FeerateBucket `json:"lowBuckets"`
}

// TransactionsRequest selects the records [Start, End) of an account,
// newest first.
type TransactionsRequest struct {
	AccountID AccountID `json:"accountId"`
	Start     uint64    `json:"start"`
	End       uint64    `json:"end"`
}

// TransactionsPage holds one page of records, newest first, and the number
// of records the account has in total.
type TransactionsPage struct {
	Transactions []TransactionRecord `json:"transactions"`
	Total        uint64              `json:"total"`
}

// API is the wallet backend as seen by the client.
type API interface {
	WalletEnumerate(ctx context.Context) ([]WalletDescriptor, error)
	WalletOpen(ctx context.Context, filename string, secret []byte) error
	WalletClose(ctx context.Context) error
	AccountEstimate(ctx context.Context, req AccountEstimateRequest) (GeneratorSummary, error)
	AccountSend(ctx context.Context, req AccountSendRequest) (SendResponse, error)
	FeeEstimate(ctx context.Context) (FeerateEstimate, error)
	AccountTransactions(ctx context.Context, req TransactionsRequest) (TransactionsPage, error)
}
