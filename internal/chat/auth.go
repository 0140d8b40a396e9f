package chat

import (
	"fmt"

	"rwci-server/internal/auth"
	"rwci-server/internal/core"
	"rwci-server/internal/proto"
)

// handleAuth logs a user in, creating an account on first contact. On
// success the caller receives, strictly in order: the auth result, the
// user list, the channel list and the default channel. Only after that
// snapshot, and only if this was the identity's first connection, do the
// other online users get a join event — so the caller is never told about
// its own join.
func (s *Service) handleAuth(ctx *core.Context, fields core.Fields) (core.Payload, error) {
	// Binding is one-shot. Re-auth on a bound connection fails closed
	// without touching existing state; it must not hijack the session.
	if ctx.Identity() != nil {
		return core.Payload{"new_account": false, "success": false}, nil
	}

	username, _ := fields.String("username")
	password, _ := fields.String("password")
	token, _ := fields.String("token")

	var res auth.Result
	var err error
	if password == "" && token != "" {
		res, err = s.auth.AuthenticateToken(ctx, token)
		if err == nil && res.OK && username != "" && res.User.Username != username {
			// A token for somebody else does not log in as username.
			res = auth.Result{}
		}
	} else {
		res, err = s.auth.Authenticate(ctx, username, password)
	}
	if err != nil {
		// Storage fault. The caller just sees a failed login; details
		// stay in the log.
		s.log.Error().Err(err).Str("conn_id", ctx.Conn.ID).Msg("auth failed")
		return core.Payload{"new_account": false, "success": false}, nil
	}

	reply := core.Payload{"new_account": res.NewAccount, "success": res.OK}
	if !res.OK {
		return reply, nil
	}

	if sessionToken, err := s.auth.IssueToken(res.User); err == nil {
		reply["token"] = sessionToken
	} else {
		s.log.Warn().Err(err).Str("username", res.User.Username).Msg("issue token failed")
	}

	identity, first, err := s.registry.Bind(res.User.ID, res.User.Username, ctx.Conn)
	if err != nil {
		// Lost a race with another auth on this same connection.
		return core.Payload{"new_account": false, "success": false}, nil
	}

	s.log.Info().
		Str("username", identity.Username).
		Str("conn_id", ctx.Conn.ID).
		Bool("new_account", res.NewAccount).
		Bool("first_conn", first).
		Msg("user authenticated")

	reply[core.TypeField] = proto.CmdAuth
	ctx.Send(reply)
	if err := s.sendSnapshot(ctx); err != nil {
		return nil, err
	}

	if first {
		s.registry.BroadcastAll(core.Payload{
			core.TypeField: proto.EvtJoin,
			"username":     identity.Username,
		}, identity)
	}
	return nil, nil
}

// sendSnapshot delivers the post-auth state replies by invoking the
// snapshot commands through the router, so each arrives tagged exactly as
// if the client had asked for it.
func (s *Service) sendSnapshot(ctx *core.Context) error {
	for _, name := range []string{proto.CmdUserList, proto.CmdChannelList, proto.CmdDefaultChannel} {
		out, err := ctx.Router.Invoke(name, ctx, nil)
		if err != nil {
			return fmt.Errorf("invoke %s: %w", name, err)
		}
		ctx.Send(out)
	}
	return nil
}
