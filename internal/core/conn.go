package core

import (
	"sync"

	"github.com/google/uuid"
)

// outboundBuffer bounds how many undelivered events a connection may queue
// before further events are dropped for it.
const outboundBuffer = 32

// Conn is one physical transport session. It is bound to at most one
// Identity, exactly once, after a successful auth. The transport layer owns
// the Conn for its whole lifetime; the Identity only holds a weak reference
// back through its connection set.
type Conn struct {
	ID string

	mu       sync.Mutex
	identity *Identity
	closed   bool
	outbound chan Payload
}

// NewConn constructs an unbound connection with an initialized event queue.
func NewConn() *Conn {
	return &Conn{
		ID:       uuid.NewString(),
		outbound: make(chan Payload, outboundBuffer),
	}
}

// Identity returns the bound identity, or nil while unauthenticated.
func (c *Conn) Identity() *Identity {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.identity
}

// bind links the connection to an identity. Binding is one-shot: a second
// bind fails with ErrAlreadyBound and leaves the existing link untouched.
func (c *Conn) bind(id *Identity) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrConnClosed
	}
	if c.identity != nil {
		return ErrAlreadyBound
	}
	c.identity = id
	return nil
}

// Send enqueues an event for the write loop without blocking. A full queue
// drops the event and reports false; a slow consumer must never stall a
// broadcast to everyone else.
func (c *Conn) Send(p Payload) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.outbound <- p:
		return true
	default:
		return false
	}
}

// Outbound exposes the event queue to the connection's write loop.
func (c *Conn) Outbound() <-chan Payload {
	return c.outbound
}

// Close marks the connection closed and releases its write loop. Safe to
// call more than once.
func (c *Conn) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.outbound)
}
