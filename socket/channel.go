package socket

import (
	"errors"
	"sync"
)

var (
	ErrChannelBusy   = errors.New("live channel outbox is full")
	ErrChannelClosed = errors.New("live channel is closed")
)

// Emitter is the part of a socket.io connection used to deliver events.
type Emitter interface {
	ID() string
	Emit(eventName string, v ...interface{})
}

type outgoing struct {
	event   string
	payload any
}

// ConnChannel delivers pushes to one connection through a bounded outbox
// drained by a single writer goroutine.
type ConnChannel struct {
	conn   Emitter
	outbox chan outgoing
	done   chan struct{}

	mu     sync.RWMutex
	closed bool
}

// NewConnChannel starts the writer goroutine for conn.
func NewConnChannel(conn Emitter, buffer int) *ConnChannel {
	if buffer < 1 {
		buffer = 1
	}
	c := &ConnChannel{
		conn:   conn,
		outbox: make(chan outgoing, buffer),
		done:   make(chan struct{}),
	}
	go c.run()
	return c
}

func (c *ConnChannel) ID() string { return c.conn.ID() }

func (c *ConnChannel) Push(event string, payload any) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return ErrChannelClosed
	}
	select {
	case c.outbox <- outgoing{event: event, payload: payload}:
		return nil
	default:
		return ErrChannelBusy
	}
}

// Close stops accepting pushes. Queued events are still delivered.
func (c *ConnChannel) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.outbox)
	}
}

// Done is closed once the writer goroutine has drained the outbox.
func (c *ConnChannel) Done() <-chan struct{} { return c.done }

func (c *ConnChannel) run() {
	defer close(c.done)
	for msg := range c.outbox {
		c.conn.Emit(msg.event, msg.payload)
	}
}
