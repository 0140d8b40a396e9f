package core

import (
	"sort"
	"sync"
)

// Registry is the authoritative online-user mapping and the broadcast
// engine over it. It contains an Identity exactly while at least one live
// connection is bound to it. One mutex serializes every bind/unbind and
// every fan-out snapshot; the lock is never held across a network write —
// delivery is a non-blocking enqueue on each target connection's queue,
// performed after the target set has been snapshotted and the lock
// released.
type Registry struct {
	mu     sync.Mutex
	online map[string]*Identity
}

// NewRegistry constructs an empty presence registry. Presence always starts
// empty; it is never restored from storage.
func NewRegistry() *Registry {
	return &Registry{online: make(map[string]*Identity)}
}

// Bind links conn to the identity for username, inserting the identity into
// the registry if this is its first live connection. It reports whether the
// identity just transitioned online. Binding a conn that is already bound
// fails with ErrAlreadyBound and changes nothing.
func (r *Registry) Bind(userID int64, username string, conn *Conn) (id *Identity, first bool, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.online[username]
	if !ok {
		id = newIdentity(userID, username)
	}

	if err := conn.bind(id); err != nil {
		return nil, false, err
	}

	if !ok {
		r.online[username] = id
		first = true
	}
	id.conns[conn] = struct{}{}
	return id, first, nil
}

// Unbind removes conn from its identity's connection set. If that was the
// identity's last connection, the identity leaves the registry and last is
// true. Unbinding an unbound or already-removed conn is an idempotent
// no-op; concurrent disconnects race here by design.
func (r *Registry) Unbind(conn *Conn) (username string, last bool) {
	id := conn.Identity()
	if id == nil {
		return "", false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := id.conns[conn]; !ok {
		return "", false
	}
	delete(id.conns, conn)
	if len(id.conns) == 0 {
		delete(r.online, id.Username)
		return id.Username, true
	}
	return id.Username, false
}

// Lookup returns the online identity for username, if any.
func (r *Registry) Lookup(username string) (*Identity, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.online[username]
	return id, ok
}

// Usernames returns a sorted snapshot of everyone online.
func (r *Registry) Usernames() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.online))
	for name := range r.online {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// BroadcastAll delivers event to every connection of every online identity,
// optionally excluding one identity (a caller that must not see its own
// join). Delivery to each socket is independent: a full queue drops the
// event for that socket only.
func (r *Registry) BroadcastAll(event Payload, except *Identity) {
	r.mu.Lock()
	targets := make([]*Conn, 0, len(r.online))
	for _, id := range r.online {
		if id == except {
			continue
		}
		for c := range id.conns {
			targets = append(targets, c)
		}
	}
	r.mu.Unlock()

	for _, c := range targets {
		c.Send(event)
	}
}

// BroadcastTo delivers event to all sockets of the named identity. It
// reports false without delivering anything if the user is not online.
func (r *Registry) BroadcastTo(username string, event Payload) bool {
	r.mu.Lock()
	id, ok := r.online[username]
	if !ok {
		r.mu.Unlock()
		return false
	}
	targets := make([]*Conn, 0, len(id.conns))
	for c := range id.conns {
		targets = append(targets, c)
	}
	r.mu.Unlock()

	for _, c := range targets {
		c.Send(event)
	}
	return true
}
