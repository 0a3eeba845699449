package interop

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

func waitPending(t *testing.T, a *Adaptor) PendingRequest {
	t.Helper()
	var req PendingRequest
	require.Eventually(t, func() bool {
		var ok bool
		req, ok = a.Pending()
		return ok
	}, time.Second, 5*time.Millisecond)
	return req
}

func TestAdaptorRoundTrip(t *testing.T) {
	woken := make(chan struct{}, 4)
	a := NewAdaptor(func() { woken <- struct{}{} })

	type result struct {
		resp Response
		err  error
	}
	done := make(chan result, 1)
	go func() {
		resp, err := a.HandleMessage(context.Background(), PendingRequest{ID: strPtr("1"), Request: TestRequest{Data: "x"}})
		done <- result{resp, err}
	}()

	req := waitPending(t, a)
	require.Equal(t, TestRequest{Data: "x"}, req.Request)
	<-woken

	require.NoError(t, a.Respond(TestResponse{Response: "ok"}))
	res := <-done
	require.NoError(t, res.err)
	require.Equal(t, TestResponse{Response: "ok"}, res.resp)

	_, ok := a.Pending()
	require.False(t, ok)
	require.ErrorIs(t, a.Respond(TestResponse{}), ErrNoPendingRequest)
}

func TestAdaptorRejectsSecondRequest(t *testing.T) {
	a := NewAdaptor(nil)

	first := make(chan Response, 1)
	go func() {
		resp, _ := a.HandleMessage(context.Background(), PendingRequest{ID: strPtr("1"), Request: TestRequest{Data: "first"}})
		first <- resp
	}()
	waitPending(t, a)

	_, err := a.HandleMessage(context.Background(), PendingRequest{ID: strPtr("2"), Request: TestRequest{Data: "second"}})
	require.ErrorIs(t, err, ErrBusy)

	req, ok := a.Pending()
	require.True(t, ok)
	require.Equal(t, "1", req.CorrelationID())

	require.NoError(t, a.Respond(TestResponse{Response: "done"}))
	require.Equal(t, TestResponse{Response: "done"}, <-first)
}

func TestAdaptorCancellationWithdrawsRequest(t *testing.T) {
	a := NewAdaptor(nil)
	ctx, cancel := context.WithCancel(context.Background())

	errc := make(chan error, 1)
	go func() {
		_, err := a.HandleMessage(ctx, PendingRequest{Request: ConnectRequest{}})
		errc <- err
	}()
	waitPending(t, a)

	cancel()
	require.ErrorIs(t, <-errc, context.Canceled)
	_, ok := a.Pending()
	require.False(t, ok)
}

func newTestTransport(t *testing.T, a *Adaptor) (*Transport, string) {
	t.Helper()
	tr := NewTransport("", []string{"chrome-extension://*"}, a, log.New(io.Discard))
	srv := httptest.NewServer(tr.Handler())
	t.Cleanup(srv.Close)
	return tr, "ws" + strings.TrimPrefix(srv.URL, "http") + "/adaptor"
}

func TestTransportCall(t *testing.T) {
	a := NewAdaptor(nil)
	_, url := newTestTransport(t, a)

	go func() {
		for i := 0; i < 200; i++ {
			if req, ok := a.Pending(); ok {
				if _, isConnect := req.Request.(ConnectRequest); isConnect {
					_ = a.Respond(ConnectResponse{Address: "kaspatest:qq"})
				}
				return
			}
			time.Sleep(5 * time.Millisecond)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	resp, err := Call(ctx, url, PendingRequest{ID: strPtr("c1"), Request: ConnectRequest{}})
	require.NoError(t, err)
	require.Equal(t, ConnectResponse{Address: "kaspatest:qq"}, resp)
}

func TestTransportRejectsForeignOrigin(t *testing.T) {
	_, url := newTestTransport(t, NewAdaptor(nil))

	hdr := http.Header{}
	hdr.Set("Origin", "https://evil.example")
	_, resp, err := websocket.DefaultDialer.Dial(url, hdr)
	require.Error(t, err)
	require.NotNil(t, resp)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	hdr.Set("Origin", "chrome-extension://abcdef")
	conn, _, err := websocket.DefaultDialer.Dial(url, hdr)
	require.NoError(t, err)
	conn.Close()
}

func TestTransportMalformedInput(t *testing.T) {
	_, url := newTestTransport(t, NewAdaptor(nil))

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("hello")))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	_, _, err = DecodeResponse(data)
	require.ErrorContains(t, err, ErrUnexpectedMessage.Error())

	require.NoError(t, conn.WriteMessage(websocket.BinaryMessage, []byte{0x01, 0x02}))
	_, data, err = conn.ReadMessage()
	require.NoError(t, err)
	_, _, err = DecodeResponse(data)
	var remote *RemoteError
	require.ErrorAs(t, err, &remote)
}
