// Package proto names the RWCI wire protocol: one JSON record per text
// frame, discriminated by a "type" field. Commands and events share the
// same shape and travel in opposite directions.
package proto

import "rwci-server/internal/core"

// Command names accepted from clients.
const (
	CmdAuth           = "auth"
	CmdMessage        = "message"
	CmdDirectMessage  = "direct_message"
	CmdTyping         = "typing"
	CmdUserList       = "user_list"
	CmdChannelList    = "channel_list"
	CmdDefaultChannel = "default_channel"
)

// Event names emitted by the server that are not command replies. EvtError
// aliases the router-owned rejection tag.
const (
	EvtJoin  = "join"
	EvtQuit  = "quit"
	EvtError = core.EventError
)

// AuthResult is the reply to an auth command. Token is present only on
// success and can replace the password on a later connection.
type AuthResult struct {
	Type       string `json:"type"`
	NewAccount bool   `json:"new_account"`
	Success    bool   `json:"success"`
	Token      string `json:"token,omitempty"`
}

// UserList is a snapshot of everyone online.
type UserList struct {
	Type  string   `json:"type"`
	Users []string `json:"users"`
}

// ChannelList is the configured channel set.
type ChannelList struct {
	Type     string   `json:"type"`
	Channels []string `json:"channels"`
}

// DefaultChannel names the channel clients should open first.
type DefaultChannel struct {
	Type    string `json:"type"`
	Channel string `json:"channel"`
}

// Presence announces a user coming online (join) or going offline (quit).
type Presence struct {
	Type     string `json:"type"`
	Username string `json:"username"`
}

// ChannelMessage is a message fanned out to all online users. The channel
// tag is descriptive metadata, not a delivery filter.
type ChannelMessage struct {
	Type    string `json:"type"`
	Channel string `json:"channel"`
	Author  string `json:"author"`
	Message string `json:"message"`
}

// DirectMessage is delivered to all sockets of a single recipient.
type DirectMessage struct {
	Type    string `json:"type"`
	Author  string `json:"author"`
	Message string `json:"message"`
}

// Typing announces that a user is composing a message.
type Typing struct {
	Type     string `json:"type"`
	Username string `json:"username"`
}

// Error is a per-frame rejection; it never closes the connection.
type Error struct {
	Type string `json:"type"`
	Code string `json:"code"`
	Msg  string `json:"msg"`
}
