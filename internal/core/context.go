package core

import "context"

// Context carries per-invocation state into a command handler: the request
// context, the invoking connection, and handles back to the presence
// registry and the router itself.
type Context struct {
	context.Context

	Conn     *Conn
	Registry *Registry
	Router   *Router
}

// Identity returns the identity bound to the invoking connection, or nil if
// the connection has not authenticated yet.
func (c *Context) Identity() *Identity {
	return c.Conn.Identity()
}

// Send enqueues an event for the invoking connection only.
func (c *Context) Send(event Payload) bool {
	return c.Conn.Send(event)
}
