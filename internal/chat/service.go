// Package chat implements the RWCI command set on top of the core engine:
// auth, channel messages, direct messages, typing indicators and the
// read-only snapshot commands used during the auth handshake.
package chat

import (
	"context"

	"github.com/rs/zerolog"

	"rwci-server/internal/auth"
	"rwci-server/internal/core"
	"rwci-server/internal/proto"
)

// Service wires the command router, presence registry, identity store and
// channel configuration into one chat engine. The transport layer feeds it
// raw frames and disconnect signals; everything else happens here.
type Service struct {
	registry *core.Registry
	router   *core.Router
	auth     *auth.Service

	channels       []string
	defaultChannel string

	log *zerolog.Logger
}

// NewService builds the chat service and registers its command handlers.
// The channel set is fixed configuration; it is copied, not shared.
func NewService(registry *core.Registry, router *core.Router, authService *auth.Service, channels []string, defaultChannel string, logger *zerolog.Logger) *Service {
	s := &Service{
		registry:       registry,
		router:         router,
		auth:           authService,
		channels:       append([]string(nil), channels...),
		defaultChannel: defaultChannel,
		log:            logger,
	}

	// Wire names are fixed by the protocol; they need not match any Go
	// identifier, so reserved or hyphenated names would register the
	// same way.
	router.Register(proto.CmdAuth, s.handleAuth)
	router.Register(proto.CmdMessage, s.handleChannelMessage)
	router.Register(proto.CmdDirectMessage, s.handleDirectMessage)
	router.Register(proto.CmdTyping, s.handleTyping)
	router.Register(proto.CmdUserList, s.handleUserList)
	router.Register(proto.CmdChannelList, s.handleChannelList)
	router.Register(proto.CmdDefaultChannel, s.handleDefaultChannel)

	return s
}

// Registry exposes the presence registry, mostly for tests and wiring.
func (s *Service) Registry() *core.Registry {
	return s.registry
}

// HandleFrame routes one inbound frame from conn. Frame-level failures are
// contained inside the router; this never errors and never closes conn.
func (s *Service) HandleFrame(ctx context.Context, conn *core.Conn, raw []byte) {
	s.router.Dispatch(&core.Context{
		Context:  ctx,
		Conn:     conn,
		Registry: s.registry,
		Router:   s.router,
	}, raw)
}

// HandleDisconnect runs the lifecycle teardown for conn, in any state:
// unbind from its identity if bound, and if that identity just went
// offline, tell everyone left. Safe to call more than once.
func (s *Service) HandleDisconnect(conn *core.Conn) {
	username, last := s.registry.Unbind(conn)
	conn.Close()
	if !last {
		return
	}

	s.log.Info().Str("username", username).Msg("user went offline")
	s.registry.BroadcastAll(core.Payload{
		core.TypeField: proto.EvtQuit,
		"username":     username,
	}, nil)
}
