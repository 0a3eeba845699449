package modules

import (
	"sync"

	"kaspa-wallet-tui/wallet"
)

type EstimateState uint8

const (
	EstimateNone EstimateState = iota
	EstimateSummary
	EstimateError
)

// Estimate is the outcome shown under the send form.
type Estimate struct {
	State   EstimateState
	Summary wallet.GeneratorSummary
	Err     string
}

// estimateSlot holds the most recently completed estimate. Estimates are
// never cancelled, so whichever finishes last wins. Results from tasks
// launched before the last Reset are dropped.
type estimateSlot struct {
	mtx      sync.Mutex
	value    Estimate
	epoch    uint64
	inflight int
}

func newEstimateSlot() *estimateSlot {
	return &estimateSlot{}
}

func (s *estimateSlot) Load() Estimate {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return s.value
}

func (s *estimateSlot) Epoch() uint64 {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return s.epoch
}

// Launch records a new estimate task and returns the epoch it belongs to.
func (s *estimateSlot) Launch() uint64 {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	s.inflight++
	return s.epoch
}

// Pending reports whether any estimate task is still running.
func (s *estimateSlot) Pending() bool {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return s.inflight > 0
}

// Reset stores v and invalidates estimates still in flight.
func (s *estimateSlot) Reset(v Estimate) {
	s.mtx.Lock()
	s.epoch++
	s.value = v
	s.mtx.Unlock()
}

// Complete stores the result of an estimate launched at epoch. It reports
// whether the result was kept.
func (s *estimateSlot) Complete(epoch uint64, v Estimate) bool {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	if s.inflight > 0 {
		s.inflight--
	}
	if epoch != s.epoch {
		return false
	}
	s.value = v
	return true
}

type sendOutcome struct {
	Response wallet.SendResponse
	Err      error
}

// sendSlot carries the result of a send back to the UI goroutine.
type sendSlot struct {
	mtx     sync.Mutex
	done    bool
	outcome sendOutcome
}

func (s *sendSlot) complete(o sendOutcome) {
	s.mtx.Lock()
	s.done = true
	s.outcome = o
	s.mtx.Unlock()
}

// take returns the outcome once and clears the slot.
func (s *sendSlot) take() (sendOutcome, bool) {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	if !s.done {
		return sendOutcome{}, false
	}
	o := s.outcome
	s.done = false
	s.outcome = sendOutcome{}
	return o, true
}
