package interop

import (
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestRequestRoundTrip(t *testing.T) {
	for _, req := range []PendingRequest{
		{ID: strPtr("42"), Request: TestRequest{Data: "ping"}},
		{Request: ConnectRequest{}},
		{ID: strPtr("a-b"), Request: SignMessageRequest{Message: "hello"}},
	} {
		data, err := EncodeRequest(req)
		require.NoError(t, err)

		got, err := DecodeRequest(data)
		require.NoError(t, err)
		require.Equal(t, req.Request, got.Request)
		require.Equal(t, req.CorrelationID(), got.CorrelationID())
	}
}

func TestDecodeRequestWithoutID(t *testing.T) {
	data, err := EncodeRequest(PendingRequest{Request: ConnectRequest{}})
	require.NoError(t, err)
	got, err := DecodeRequest(data)
	require.NoError(t, err)
	require.Nil(t, got.ID)
}

func TestEncodeRequestRejectsEmptyID(t *testing.T) {
	_, err := EncodeRequest(PendingRequest{ID: strPtr(""), Request: TestRequest{Data: "ping"}})
	require.ErrorIs(t, err, ErrEmptyID)

	data, err := EncodeRequest(PendingRequest{ID: strPtr(" "), Request: TestRequest{Data: "ping"}})
	require.NoError(t, err)
	got, err := DecodeRequest(data)
	require.NoError(t, err)
	require.NotNil(t, got.ID)
	require.Equal(t, " ", *got.ID)
}

func TestDecodeRequestRejectsVersion(t *testing.T) {
	data, err := rlp.EncodeToBytes(&requestEnvelope{Version: WireVersion + 1, Kind: uint8(KindTest)})
	require.NoError(t, err)
	_, err = DecodeRequest(data)
	require.ErrorIs(t, err, ErrWireVersion)
}

func TestDecodeRequestRejectsKind(t *testing.T) {
	data, err := rlp.EncodeToBytes(&requestEnvelope{Version: WireVersion, Kind: 99})
	require.NoError(t, err)
	_, err = DecodeRequest(data)
	require.ErrorIs(t, err, ErrUnknownKind)

	_, err = DecodeRequest([]byte{0xff, 0x00})
	require.Error(t, err)
}

func TestResponseRoundTrip(t *testing.T) {
	data, err := EncodeResponse("7", ConnectResponse{Address: "kaspa:qq"})
	require.NoError(t, err)
	id, resp, err := DecodeResponse(data)
	require.NoError(t, err)
	require.Equal(t, "7", id)
	require.Equal(t, ConnectResponse{Address: "kaspa:qq"}, resp)

	data, err = EncodeError("8", ErrBusy)
	require.NoError(t, err)
	id, _, err = DecodeResponse(data)
	require.Equal(t, "8", id)
	var remote *RemoteError
	require.True(t, errors.As(err, &remote))
	require.Equal(t, ErrBusy.Error(), remote.Message)
}
