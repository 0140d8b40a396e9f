package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

// Handler processes one inbound command. A non-nil result is delivered back
// to the invoking connection; a nil result sends nothing. Returning a
// *CoreError delivers a rejection to the sender; any other error is logged
// and the frame dropped. Either way the connection stays open.
type Handler func(ctx *Context, fields Fields) (Payload, error)

// Router maps command names to handlers, decodes inbound frames and shapes
// handler results into tagged events.
type Router struct {
	mu       sync.RWMutex
	handlers map[string]Handler
	log      *zerolog.Logger
}

// NewRouter builds an empty command router.
func NewRouter(logger *zerolog.Logger) *Router {
	return &Router{
		handlers: make(map[string]Handler),
		log:      logger,
	}
}

// Register associates a command name with a handler. The name is the wire
// name and need not match any Go identifier. Re-registering a name replaces
// the prior handler: last write wins.
func (r *Router) Register(name string, h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[name] = h
}

// Invoke runs the handler registered under name and tags its result: a
// result lacking the type discriminant gets it injected using the command's
// registered name. Nothing is sent; callers deliver the result themselves.
func (r *Router) Invoke(name string, ctx *Context, fields Fields) (Payload, error) {
	r.mu.RLock()
	h, ok := r.handlers[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCommand, name)
	}

	out, err := h(ctx, fields)
	if err != nil {
		return nil, err
	}
	if out == nil {
		return nil, nil
	}
	if _, tagged := out[TypeField]; !tagged {
		out[TypeField] = name
	}
	return out, nil
}

// Dispatch decodes one raw frame, routes it to the matching handler and
// delivers the tagged result, if any, to the invoking connection. Every
// failure is contained to this frame: malformed or unknown frames are
// logged and dropped, handler rejections go back to the sender only, and
// the connection always stays open.
func (r *Router) Dispatch(ctx *Context, raw []byte) {
	var fields Fields
	if err := json.Unmarshal(raw, &fields); err != nil {
		derr := &DecodeError{Err: err}
		r.log.Warn().Err(derr).Str("conn_id", ctx.Conn.ID).Msg("drop undecodable frame")
		return
	}

	name, ok := fields.String(TypeField)
	if !ok || name == "" {
		r.log.Warn().Str("conn_id", ctx.Conn.ID).Msg("drop frame without type")
		return
	}

	out, err := r.Invoke(name, ctx, fields)
	if err != nil {
		var ce *CoreError
		switch {
		case errors.As(err, &ce):
			ctx.Send(errorEvent(ce))
		case errors.Is(err, ErrUnknownCommand):
			r.log.Warn().Str("conn_id", ctx.Conn.ID).Str("command", name).Msg("drop unknown command")
		default:
			r.log.Error().Err(err).Str("conn_id", ctx.Conn.ID).Str("command", name).Msg("command handler failed")
		}
		return
	}
	if out != nil {
		ctx.Send(out)
	}
}

func errorEvent(ce *CoreError) Payload {
	return Payload{
		TypeField: EventError,
		"code":    ce.Code,
		"msg":     ce.Message,
	}
}
