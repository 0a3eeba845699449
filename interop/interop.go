// Package interop connects the UI to everything running in the background:
// the wallet backend, the adaptor bridge and long-running services.
package interop

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"kaspa-wallet-tui/events"
	"kaspa-wallet-tui/wallet"
)

// Service is a long-running background component.
type Service interface {
	Name() string
	Run(ctx context.Context) error
}

// Interop is created once in main and handed to every consumer.
type Interop struct {
	events   *events.Channel
	wallet   wallet.API
	adaptor  *Adaptor
	logger   *log.Logger
	services []Service

	mtx     sync.Mutex
	ctx     context.Context
	cancel  context.CancelFunc
	group   *errgroup.Group
	tasks   sync.WaitGroup
	started bool
}

func New(ch *events.Channel, api wallet.API, logger *log.Logger, services ...Service) *Interop {
	ctx, cancel := context.WithCancel(context.Background())
	return &Interop{
		events:   ch,
		wallet:   api,
		adaptor:  NewAdaptor(ch.Wake),
		logger:   logger,
		services: services,
		ctx:      ctx,
		cancel:   cancel,
	}
}

func (i *Interop) Events() *events.Channel { return i.events }
func (i *Interop) Wallet() wallet.API      { return i.wallet }
func (i *Interop) Adaptor() *Adaptor       { return i.adaptor }
func (i *Interop) Logger() *log.Logger     { return i.logger }

// Register adds a service. It has no effect once Start was called.
func (i *Interop) Register(svc Service) {
	i.mtx.Lock()
	defer i.mtx.Unlock()
	if !i.started {
		i.services = append(i.services, svc)
	}
}

// Start launches every service. Calling it again is a no-op.
func (i *Interop) Start() {
	i.mtx.Lock()
	defer i.mtx.Unlock()
	if i.started {
		return
	}
	i.started = true

	g, gctx := errgroup.WithContext(i.ctx)
	for _, svc := range i.services {
		svc := svc
		i.logger.Debug("starting service", "service", svc.Name())
		g.Go(func() error {
			err := svc.Run(gctx)
			if err != nil && !errors.Is(err, context.Canceled) {
				err = fmt.Errorf("%s: %w", svc.Name(), err)
				_ = i.events.Send(events.Error{Err: err})
				return err
			}
			return nil
		})
	}
	i.group = g
}

// Shutdown asks services and in-flight tasks to stop.
func (i *Interop) Shutdown() {
	i.cancel()
	i.events.Wake()
}

// Join waits for services and spawned tasks to finish.
func (i *Interop) Join() error {
	i.mtx.Lock()
	g := i.group
	i.mtx.Unlock()

	var err error
	if g != nil {
		err = g.Wait()
	}
	i.tasks.Wait()
	return err
}

// Spawn runs task in the background. A failure is posted to the event
// channel as events.Error.
func (i *Interop) Spawn(name string, task func(ctx context.Context) error) {
	i.tasks.Add(1)
	go func() {
		defer i.tasks.Done()
		if err := task(i.ctx); err != nil {
			i.logger.Error("task failed", "task", name, "err", err)
			_ = i.events.Send(events.Error{Err: fmt.Errorf("%s: %w", name, err)})
		}
	}()
}

// Send posts an event for the UI.
func (i *Interop) Send(ev events.Event) {
	if err := i.events.Send(ev); err != nil {
		i.logger.Debug("event dropped", "err", err)
	}
}

// RequestRepaint wakes the UI without posting an event.
func (i *Interop) RequestRepaint() {
	i.events.Wake()
}
