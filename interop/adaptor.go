package interop

import (
	"context"
	"errors"
	"sync"
)

var (
	// ErrBusy is returned when a request arrives while another is pending.
	ErrBusy             = errors.New("interop: adaptor busy")
	ErrNoPendingRequest = errors.New("interop: no pending request")
)

type pendingSlot struct {
	req  PendingRequest
	resp chan Response
}

// Adaptor hands one externally triggered request at a time to the UI and
// waits for the UI to answer it.
type Adaptor struct {
	mtx     sync.Mutex
	pending *pendingSlot
	wake    func()
}

// NewAdaptor returns an adaptor that calls wake whenever a request becomes
// pending.
func NewAdaptor(wake func()) *Adaptor {
	if wake == nil {
		wake = func() {}
	}
	return &Adaptor{wake: wake}
}

// HandleMessage publishes req and blocks until the UI responds or ctx ends.
// On cancellation the request is withdrawn.
func (a *Adaptor) HandleMessage(ctx context.Context, req PendingRequest) (Response, error) {
	slot := &pendingSlot{req: req, resp: make(chan Response, 1)}

	a.mtx.Lock()
	if a.pending != nil {
		a.mtx.Unlock()
		return nil, ErrBusy
	}
	a.pending = slot
	a.mtx.Unlock()
	a.wake()

	select {
	case resp := <-slot.resp:
		return resp, nil
	case <-ctx.Done():
		a.mtx.Lock()
		if a.pending == slot {
			a.pending = nil
		}
		a.mtx.Unlock()
		// the UI may have answered concurrently with cancellation
		select {
		case resp := <-slot.resp:
			return resp, nil
		default:
		}
		a.wake()
		return nil, ctx.Err()
	}
}

// Pending returns the request awaiting a response, if any.
func (a *Adaptor) Pending() (PendingRequest, bool) {
	a.mtx.Lock()
	defer a.mtx.Unlock()
	if a.pending == nil {
		return PendingRequest{}, false
	}
	return a.pending.req, true
}

// Respond dispatches resp to the waiting caller and clears the pending slot.
func (a *Adaptor) Respond(resp Response) error {
	a.mtx.Lock()
	defer a.mtx.Unlock()
	if a.pending == nil {
		return ErrNoPendingRequest
	}
	a.pending.resp <- resp
	a.pending = nil
	return nil
}

// HandleBytes decodes a request envelope, waits for the UI and returns the
// encoded reply. Failures are encoded as error envelopes.
func (a *Adaptor) HandleBytes(ctx context.Context, data []byte) []byte {
	req, err := DecodeRequest(data)
	if err != nil {
		return mustEncodeError("", err)
	}
	resp, err := a.HandleMessage(ctx, req)
	if err != nil {
		return mustEncodeError(req.CorrelationID(), err)
	}
	out, err := EncodeResponse(req.CorrelationID(), resp)
	if err != nil {
		return mustEncodeError(req.CorrelationID(), err)
	}
	return out
}

func mustEncodeError(id string, cause error) []byte {
	out, err := EncodeError(id, cause)
	if err != nil {
		panic(err)
	}
	return out
}
