package chat

import (
	"rwci-server/internal/core"
	"rwci-server/internal/proto"
)

// handleChannelMessage fans a chat message out to every online identity,
// sender included. The channel tag travels with the event but does not
// filter delivery; channels are labels, not subscriptions.
func (s *Service) handleChannelMessage(ctx *core.Context, fields core.Fields) (core.Payload, error) {
	identity := ctx.Identity()
	if identity == nil {
		return nil, core.ErrUnauthenticatedUsage()
	}

	text, ok := fields.String("message")
	if !ok {
		return nil, core.ErrBadRequest("message is required")
	}
	channel := fields.StringOr("channel", s.defaultChannel)

	s.registry.BroadcastAll(core.Payload{
		core.TypeField: proto.CmdMessage,
		"channel":      channel,
		"author":       identity.Username,
		"message":      text,
	}, nil)
	return nil, nil
}

// handleDirectMessage delivers to every socket of one recipient. An offline
// or unknown recipient is rejected to the sender; nothing is delivered
// anywhere else.
func (s *Service) handleDirectMessage(ctx *core.Context, fields core.Fields) (core.Payload, error) {
	identity := ctx.Identity()
	if identity == nil {
		return nil, core.ErrUnauthenticatedUsage()
	}

	text, ok := fields.String("message")
	if !ok {
		return nil, core.ErrBadRequest("message is required")
	}
	recipient, ok := fields.String("recipient")
	if !ok {
		return nil, core.ErrBadRequest("recipient is required")
	}

	delivered := s.registry.BroadcastTo(recipient, core.Payload{
		core.TypeField: proto.CmdDirectMessage,
		"author":       identity.Username,
		"message":      text,
	})
	if !delivered {
		return nil, core.ErrRecipientOffline(recipient)
	}
	return nil, nil
}

// handleTyping tells everyone online that the caller is composing.
func (s *Service) handleTyping(ctx *core.Context, _ core.Fields) (core.Payload, error) {
	identity := ctx.Identity()
	if identity == nil {
		return nil, core.ErrUnauthenticatedUsage()
	}

	s.registry.BroadcastAll(core.Payload{
		core.TypeField: proto.CmdTyping,
		"username":     identity.Username,
	}, nil)
	return nil, nil
}
