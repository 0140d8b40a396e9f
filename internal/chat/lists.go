package chat

import (
	"rwci-server/internal/core"
)

// The snapshot commands are pure reads with no side effects, callable
// before auth: the auth handshake itself relies on them. Their results are
// returned untagged; the router injects the type from the registered name.

func (s *Service) handleUserList(_ *core.Context, _ core.Fields) (core.Payload, error) {
	return core.Payload{"users": s.registry.Usernames()}, nil
}

func (s *Service) handleChannelList(_ *core.Context, _ core.Fields) (core.Payload, error) {
	return core.Payload{"channels": s.channels}, nil
}

func (s *Service) handleDefaultChannel(_ *core.Context, _ core.Fields) (core.Payload, error) {
	return core.Payload{"channel": s.defaultChannel}, nil
}
