package interop

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"

	"kaspa-wallet-tui/events"
)

type blockingService struct {
	name    string
	started chan struct{}
}

func (s *blockingService) Name() string { return s.name }

func (s *blockingService) Run(ctx context.Context) error {
	close(s.started)
	<-ctx.Done()
	return ctx.Err()
}

type failingService struct{}

func (failingService) Name() string              { return "broken" }
func (failingService) Run(context.Context) error { return errors.New("bind: address in use") }

func TestSpawnRoutesErrors(t *testing.T) {
	ch := events.NewChannel()
	it := New(ch, nil, log.New(io.Discard))

	it.Spawn("estimate", func(context.Context) error { return errors.New("no utxos") })
	it.Spawn("noop", func(context.Context) error { return nil })
	require.NoError(t, it.Join())

	evs := ch.Drain()
	require.Len(t, evs, 1)
	ev, ok := evs[0].(events.Error)
	require.True(t, ok)
	require.EqualError(t, ev.Err, "estimate: no utxos")
}

func TestStartShutdownJoin(t *testing.T) {
	ch := events.NewChannel()
	svc := &blockingService{name: "node", started: make(chan struct{})}
	it := New(ch, nil, log.New(io.Discard), svc)

	it.Start()
	it.Start()
	<-svc.started

	it.Shutdown()
	require.NoError(t, it.Join())
	require.Zero(t, ch.Len())
}

func TestFailingServiceReported(t *testing.T) {
	ch := events.NewChannel()
	it := New(ch, nil, log.New(io.Discard), failingService{})
	it.Start()

	err := it.Join()
	require.ErrorContains(t, err, "broken: bind: address in use")

	evs := ch.Drain()
	require.Len(t, evs, 1)
	require.IsType(t, events.Error{}, evs[0])
}

func TestRegisterBeforeStart(t *testing.T) {
	ch := events.NewChannel()
	it := New(ch, nil, log.New(io.Discard))
	svc := &blockingService{name: "adaptor", started: make(chan struct{})}
	it.Register(svc)
	it.Start()
	<-svc.started

	// too late, never started
	it.Register(failingService{})

	it.Shutdown()
	require.NoError(t, it.Join())
}
