package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrNetwork is returned when the backend cannot be reached or answers
	// with a non-2xx status.
	ErrNetwork = errors.New("network failure")

	// ErrMalformed is returned when the backend answers success:false, an
	// undecodable body, or a body without the expected albums field.
	ErrMalformed = errors.New("malformed response")

	// ErrNotFound is returned by Album when the backend has no such album.
	ErrNotFound = errors.New("album not found")
)

// Error carries the failure class together with the server's own message,
// when it sent one.
type Error struct {
	// Kind is one of ErrNetwork, ErrMalformed or ErrNotFound.
	Kind error

	// Op names the endpoint, e.g. "albums page 3".
	Op string

	// Message is the server's "error" text. May be empty.
	Message string

	// Err is the underlying cause. May be nil.
	Err error
}

func (e *Error) Error() string {
	msg := e.Op + ": " + e.Kind.Error()
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// User-facing messages.
const (
	MsgNetwork   = "network error, please try again"
	MsgMalformed = "could not load albums"
	MsgNotFound  = "album not found"
)

// UserMessage returns the one-line message shown to the user for err.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var ce *Error
	switch {
	case errors.Is(err, ErrNotFound):
		return MsgNotFound
	case errors.Is(err, ErrMalformed):
		if errors.As(err, &ce) && ce.Message != "" {
			return ce.Message
		}
		return MsgMalformed
	case errors.Is(err, ErrNetwork):
		return MsgNetwork
	default:
		return err.Error()
	}
}
