package interop

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

const (
	defaultRequestTimeout = 5 * time.Minute
	writeWait             = 10 * time.Second
	maxMessageSize        = 1 << 20
)

var ErrUnexpectedMessage = errors.New("interop: expected a binary message")

// Transport exposes the adaptor to companion processes over a websocket.
// Each binary frame carries one request envelope and is answered with one
// response envelope on the same connection.
type Transport struct {
	addr    string
	origins []string
	adaptor *Adaptor
	logger  *log.Logger

	RequestTimeout time.Duration

	upgrader websocket.Upgrader
	baseCtx  context.Context
}

func NewTransport(addr string, allowedOrigins []string, adaptor *Adaptor, logger *log.Logger) *Transport {
	t := &Transport{
		addr:           addr,
		origins:        allowedOrigins,
		adaptor:        adaptor,
		logger:         logger,
		RequestTimeout: defaultRequestTimeout,
		baseCtx:        context.Background(),
	}
	t.upgrader = websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin:     func(r *http.Request) bool { return t.originAllowed(r.Header.Get("Origin")) },
	}
	return t
}

func (t *Transport) Name() string {
	return "adaptor-transport"
}

// originAllowed accepts requests without an Origin header (native clients)
// and browser origins matching one of the configured patterns.
func (t *Transport) originAllowed(origin string) bool {
	if origin == "" {
		return true
	}
	for _, pattern := range t.origins {
		if ok, _ := path.Match(pattern, origin); ok {
			return true
		}
	}
	return false
}

func (t *Transport) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/adaptor", t.serveWS)
	return mux
}

func (t *Transport) Run(ctx context.Context) error {
	t.baseCtx = ctx
	srv := &http.Server{
		Addr:              t.addr,
		Handler:           t.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	t.logger.Info("adaptor listening", "addr", t.addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("adaptor listener: %w", err)
	}
	return nil
}

func (t *Transport) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := t.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error
		t.logger.Warn("adaptor upgrade rejected", "origin", r.Header.Get("Origin"), "err", err)
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxMessageSize)

	for {
		kind, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				t.logger.Debug("adaptor connection dropped", "err", err)
			}
			return
		}

		var reply []byte
		if kind != websocket.BinaryMessage {
			reply = mustEncodeError("", ErrUnexpectedMessage)
		} else {
			ctx, cancel := context.WithTimeout(t.baseCtx, t.RequestTimeout)
			reply = t.adaptor.HandleBytes(ctx, data)
			cancel()
		}

		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.BinaryMessage, reply); err != nil {
			t.logger.Debug("adaptor write failed", "err", err)
			return
		}
	}
}

// Call sends one request to an adaptor transport at url and waits for the reply.
func Call(ctx context.Context, url string, req PendingRequest) (Response, error) {
	payload, err := EncodeRequest(req)
	if err != nil {
		return nil, err
	}
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial adaptor: %w", err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetReadDeadline(deadline)
	}
	if err := conn.WriteMessage(websocket.BinaryMessage, payload); err != nil {
		return nil, err
	}
	_, data, err := conn.ReadMessage()
	if err != nil {
		return nil, err
	}
	_, resp, err := DecodeResponse(data)
	return resp, err
}
