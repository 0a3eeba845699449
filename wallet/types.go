package wallet

import (
	"fmt"
	"strings"
)

// SompiPerKaspa is the number of smallest units in one KAS.
const SompiPerKaspa uint64 = 100_000_000

type AccountID string

func (id AccountID) Short() string {
	if len(id) <= 12 {
		return string(id)
	}
	return string(id[:6]) + "…" + string(id[len(id)-4:])
}

type TransactionID string

// NetworkID identifies the network a node or address belongs to.
type NetworkID string

const (
	Mainnet   NetworkID = "mainnet"
	Testnet10 NetworkID = "testnet-10"
	Testnet11 NetworkID = "testnet-11"
	Devnet    NetworkID = "devnet"
	Simnet    NetworkID = "simnet"
)

// AddressPrefix returns the address prefix used on the network.
func (n NetworkID) AddressPrefix() string {
	switch {
	case n == Mainnet:
		return "kaspa"
	case strings.HasPrefix(string(n), "testnet"):
		return "kaspatest"
	case n == Devnet:
		return "kaspadev"
	case n == Simnet:
		return "kaspasim"
	default:
		return ""
	}
}

func ParseNetworkID(s string) (NetworkID, error) {
	switch n := NetworkID(strings.ToLower(strings.TrimSpace(s))); n {
	case Mainnet, Testnet10, Testnet11, Devnet, Simnet:
		return n, nil
	}
	return "", fmt.Errorf("unknown network %q", s)
}

// AccountKind is the derivation scheme of an account.
type AccountKind string

const (
	KindBip32    AccountKind = "bip32"
	KindLegacy   AccountKind = "legacy"
	KindMultisig AccountKind = "multisig"
	KindKeypair  AccountKind = "keypair"
	KindResident AccountKind = "resident"
)

type AccountDescriptor struct {
	ID             AccountID   `json:"accountId"`
	Name           string      `json:"accountName,omitempty"`
	Kind           AccountKind `json:"kind"`
	AccountIndex   *uint64     `json:"accountIndex,omitempty"`
	XpubKeys       []string    `json:"xpubKeys,omitempty"`
	ReceiveAddress string      `json:"receiveAddress,omitempty"`
	ChangeAddress  string      `json:"changeAddress,omitempty"`
}

// Balance is expressed in sompi.
type Balance struct {
	Mature  uint64 `json:"mature"`
	Pending uint64 `json:"pending"`
}

func (b Balance) Total() uint64 {
	return b.Mature + b.Pending
}

// Direction classifies a transaction record by the notification that produced it.
type Direction uint8

const (
	Incoming Direction = iota
	Outgoing
	Pending
	Matured
	Reorged
)

func (d Direction) String() string {
	switch d {
	case Incoming:
		return "incoming"
	case Outgoing:
		return "outgoing"
	case Pending:
		return "pending"
	case Matured:
		return "matured"
	case Reorged:
		return "reorg"
	default:
		return fmt.Sprintf("direction(%d)", uint8(d))
	}
}

type BindingKind uint8

const (
	BindingAccount BindingKind = iota
	BindingCustom
)

// Binding ties a transaction record to its owner.
type Binding struct {
	Kind    BindingKind `json:"kind"`
	Account AccountID   `json:"account,omitempty"`
	Custom  string      `json:"custom,omitempty"`
}

func AccountBinding(id AccountID) Binding {
	return Binding{Kind: BindingAccount, Account: id}
}

type TransactionRecord struct {
	ID       TransactionID `json:"id"`
	Binding  Binding       `json:"binding"`
	Dir      Direction     `json:"direction"`
	Value    uint64        `json:"value"`
	Fees     uint64        `json:"fees,omitempty"`
	DAAScore uint64        `json:"blockDaaScore"`
	Note     string        `json:"note,omitempty"`
}

// SyncStage names the phase the node reports while synchronizing.
type SyncStage uint8

const (
	StageUnknown SyncStage = iota
	StageProof
	StageHeaders
	StageBlocks
	StageUtxoResync
	StageTrustSync
	StageNotSynced
	StageSynced
)

func (s SyncStage) String() string {
	return [...]string{"unknown", "proof", "headers", "blocks", "utxo-resync", "trust-sync", "not-synced", "synced"}[s]
}

// SyncState is the sync progress descriptor.
type SyncState struct {
	Stage     SyncStage `json:"stage"`
	Processed uint64    `json:"processed,omitempty"`
	Total     uint64    `json:"total,omitempty"`
}

func (s SyncState) IsSynced() bool {
	return s.Stage == StageSynced
}

func (s SyncState) String() string {
	if s.Total > 0 {
		return fmt.Sprintf("%s %d/%d", s.Stage, s.Processed, s.Total)
	}
	return s.Stage.String()
}

type Hint struct {
	Text string `json:"text"`
}

type WalletDescriptor struct {
	Title    string `json:"title,omitempty"`
	Filename string `json:"filename"`
}

func (d WalletDescriptor) Label() string {
	if d.Title != "" {
		return d.Title
	}
	return d.Filename
}
