package core

// Identity is a durable user as seen by the presence engine: the persisted
// record's key data plus the set of live connections currently bound to it.
// The connection set is rebuilt empty on every process start; liveness is
// never persisted. All access to conns happens under the Registry's lock.
type Identity struct {
	UserID   int64
	Username string

	conns map[*Conn]struct{}
}

func newIdentity(userID int64, username string) *Identity {
	return &Identity{
		UserID:   userID,
		Username: username,
		conns:    make(map[*Conn]struct{}),
	}
}
