package core

import "errors"

// EventError is the wire name of rejection events built by the router. The
// proto package re-exports it so the name has a single owner.
const EventError = "error"

// Error codes for domain errors.
const (
	ErrCodeBadRequest       = "bad_request"
	ErrCodeUnauthenticated  = "unauthenticated"
	ErrCodeUnknownRecipient = "unknown_recipient"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrAlreadyBound   = errors.New("connection already bound")
	ErrConnClosed     = errors.New("connection closed")
)

// DecodeError reports a frame that could not be decoded. The frame is
// dropped; the connection stays open.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return "decode frame: " + e.Err.Error()
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// CoreError wraps a code and human-readable message. Handlers return it to
// have a rejection delivered to the sender without touching anyone else.
type CoreError struct {
	Code    string
	Message string
}

func (e *CoreError) Error() string {
	return e.Message
}

func coreError(code, msg string) *CoreError {
	return &CoreError{Code: code, Message: msg}
}

// ErrUnauthenticatedUsage rejects an authenticated-only command invoked on an
// unbound connection.
func ErrUnauthenticatedUsage() *CoreError {
	return coreError(ErrCodeUnauthenticated, "authentication required")
}

// ErrRecipientOffline rejects a direct message whose recipient is not online.
func ErrRecipientOffline(username string) *CoreError {
	return coreError(ErrCodeUnknownRecipient, "recipient not online: "+username)
}

// ErrBadRequest rejects a command missing a required field.
func ErrBadRequest(msg string) *CoreError {
	return coreError(ErrCodeBadRequest, msg)
}
