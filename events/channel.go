package events

import (
	"container/list"
	"errors"
	"sync"
)

var ErrClosed = errors.New("events: channel closed")

// Channel is an unbounded multi-producer queue with a single consumer. Send
// never blocks. Every Send leaves a pending signal on Notify so a consumer
// waiting for work wakes up at least once per burst.
type Channel struct {
	mtx    sync.Mutex
	queue  *list.List
	closed bool
	notify chan struct{}
}

func NewChannel() *Channel {
	return &Channel{
		queue:  list.New(),
		notify: make(chan struct{}, 1),
	}
}

func (c *Channel) Send(ev Event) error {
	c.mtx.Lock()
	if c.closed {
		c.mtx.Unlock()
		return ErrClosed
	}
	c.queue.PushBack(ev)
	c.mtx.Unlock()
	c.Wake()
	return nil
}

// Wake signals the consumer without enqueueing anything.
func (c *Channel) Wake() {
	select {
	case c.notify <- struct{}{}:
	default:
	}
}

// Notify returns the wake-up signal. It is never closed.
func (c *Channel) Notify() <-chan struct{} {
	return c.notify
}

func (c *Channel) TryRecv() (Event, bool) {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	front := c.queue.Front()
	if front == nil {
		return nil, false
	}
	return c.queue.Remove(front).(Event), true
}

// Drain removes every queued event in FIFO order.
func (c *Channel) Drain() []Event {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	if c.queue.Len() == 0 {
		return nil
	}
	out := make([]Event, 0, c.queue.Len())
	for e := c.queue.Front(); e != nil; e = e.Next() {
		out = append(out, e.Value.(Event))
	}
	c.queue.Init()
	return out
}

func (c *Channel) Len() int {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	return c.queue.Len()
}

// Close rejects further sends. Events already queued can still be drained.
func (c *Channel) Close() {
	c.mtx.Lock()
	c.closed = true
	c.mtx.Unlock()
	c.Wake()
}
