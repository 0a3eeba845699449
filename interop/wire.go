package interop

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/rlp"
)

// WireVersion is bumped on any incompatible change to the envelopes.
const WireVersion uint = 1

var (
	ErrWireVersion = errors.New("interop: unsupported wire version")
	ErrUnknownKind = errors.New("interop: unknown message kind")
	ErrEmptyID     = errors.New("interop: empty correlation id")
)

type RequestKind uint8

const (
	KindTest RequestKind = iota + 1
	KindConnect
	KindSignMessage
)

func (k RequestKind) String() string {
	switch k {
	case KindTest:
		return "test"
	case KindConnect:
		return "connect"
	case KindSignMessage:
		return "sign-message"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Request is a typed payload sent by a companion process.
type Request interface {
	Kind() RequestKind
}

type TestRequest struct {
	Data string
}

type ConnectRequest struct{}

// SignMessageRequest is not handled by the bridge itself and is passed
// through to the primary UI.
type SignMessageRequest struct {
	Message string
}

func (TestRequest) Kind() RequestKind        { return KindTest }
func (ConnectRequest) Kind() RequestKind     { return KindConnect }
func (SignMessageRequest) Kind() RequestKind { return KindSignMessage }

type Response interface {
	Kind() RequestKind
}

type TestResponse struct {
	Response string
}

type ConnectResponse struct {
	Address string
}

type SignMessageResponse struct {
	Signature []byte
}

func (TestResponse) Kind() RequestKind        { return KindTest }
func (ConnectResponse) Kind() RequestKind     { return KindConnect }
func (SignMessageResponse) Kind() RequestKind { return KindSignMessage }

// PendingRequest is a decoded request awaiting a response. A nil ID marks a
// request that expects no correlation; an empty ID cannot be encoded since
// it is indistinguishable from nil on the wire.
type PendingRequest struct {
	ID      *string
	Request Request
}

func (p PendingRequest) CorrelationID() string {
	if p.ID == nil {
		return ""
	}
	return *p.ID
}

type requestEnvelope struct {
	Version uint
	ID      *string `rlp:"nil"`
	Kind    uint8
	Payload []byte
}

type responseEnvelope struct {
	Version uint
	ID      string
	Kind    uint8
	Error   string
	Payload []byte
}

// EncodeRequest serializes a request envelope.
func EncodeRequest(req PendingRequest) ([]byte, error) {
	if req.ID != nil && *req.ID == "" {
		return nil, ErrEmptyID
	}
	payload, err := rlp.EncodeToBytes(req.Request)
	if err != nil {
		return nil, fmt.Errorf("encode %s request: %w", req.Request.Kind(), err)
	}
	return rlp.EncodeToBytes(&requestEnvelope{
		Version: WireVersion,
		ID:      req.ID,
		Kind:    uint8(req.Request.Kind()),
		Payload: payload,
	})
}

func DecodeRequest(data []byte) (PendingRequest, error) {
	var env requestEnvelope
	if err := rlp.DecodeBytes(data, &env); err != nil {
		return PendingRequest{}, fmt.Errorf("decode request envelope: %w", err)
	}
	if env.Version != WireVersion {
		return PendingRequest{}, fmt.Errorf("%w: %d", ErrWireVersion, env.Version)
	}

	var (
		req Request
		err error
	)
	switch RequestKind(env.Kind) {
	case KindTest:
		var r TestRequest
		err = rlp.DecodeBytes(env.Payload, &r)
		req = r
	case KindConnect:
		var r ConnectRequest
		err = rlp.DecodeBytes(env.Payload, &r)
		req = r
	case KindSignMessage:
		var r SignMessageRequest
		err = rlp.DecodeBytes(env.Payload, &r)
		req = r
	default:
		return PendingRequest{}, fmt.Errorf("%w: %d", ErrUnknownKind, env.Kind)
	}
	if err != nil {
		return PendingRequest{}, fmt.Errorf("decode %s request: %w", RequestKind(env.Kind), err)
	}
	return PendingRequest{ID: env.ID, Request: req}, nil
}

// EncodeResponse serializes resp for the request with correlation id id.
func EncodeResponse(id string, resp Response) ([]byte, error) {
	payload, err := rlp.EncodeToBytes(resp)
	if err != nil {
		return nil, fmt.Errorf("encode %s response: %w", resp.Kind(), err)
	}
	return rlp.EncodeToBytes(&responseEnvelope{
		Version: WireVersion,
		ID:      id,
		Kind:    uint8(resp.Kind()),
		Payload: payload,
	})
}

// EncodeError serializes a failure reply.
func EncodeError(id string, cause error) ([]byte, error) {
	return rlp.EncodeToBytes(&responseEnvelope{
		Version: WireVersion,
		ID:      id,
		Error:   cause.Error(),
	})
}

// RemoteError is a failure reported in a response envelope.
type RemoteError struct {
	Message string
}

func (e *RemoteError) Error() string {
	return "interop: remote error: " + e.Message
}

// DecodeResponse parses a response envelope. A failure reply is returned as
// a *RemoteError.
func DecodeResponse(data []byte) (string, Response, error) {
	var env responseEnvelope
	if err := rlp.DecodeBytes(data, &env); err != nil {
		return "", nil, fmt.Errorf("decode response envelope: %w", err)
	}
	if env.Version != WireVersion {
		return env.ID, nil, fmt.Errorf("%w: %d", ErrWireVersion, env.Version)
	}
	if env.Error != "" {
		return env.ID, nil, &RemoteError{Message: env.Error}
	}

	var (
		resp Response
		err  error
	)
	switch RequestKind(env.Kind) {
	case KindTest:
		var r TestResponse
		err = rlp.DecodeBytes(env.Payload, &r)
		resp = r
	case KindConnect:
		var r ConnectResponse
		err = rlp.DecodeBytes(env.Payload, &r)
		resp = r
	case KindSignMessage:
		var r SignMessageResponse
		err = rlp.DecodeBytes(env.Payload, &r)
		resp = r
	default:
		return env.ID, nil, fmt.Errorf("%w: %d", ErrUnknownKind, env.Kind)
	}
	if err != nil {
		return env.ID, nil, fmt.Errorf("decode %s response: %w", RequestKind(env.Kind), err)
	}
	return env.ID, resp, nil
}
