package wtss

import (
	"errors"
	"fmt"
)

// Kind classifies client failures so callers can discriminate without
// string matching.
type Kind string

const (
	// KindInvalidArgument reports a client-side validation failure.
	KindInvalidArgument Kind = "invalid_argument"
	// KindNetwork reports a connection or transport failure.
	KindNetwork Kind = "network"
	// KindDecode reports a response body that is not valid JSON.
	KindDecode Kind = "decode"
	// KindService reports a non-success HTTP status from the remote service.
	KindService Kind = "service"
	// KindSchema reports a decoded document missing an expected key.
	KindSchema Kind = "schema"
	// KindParse reports a timeline entry that does not match the date format.
	KindParse Kind = "parse"
	// KindNotFound reports an attribute lookup miss.
	KindNotFound Kind = "not_found"
)

// Error is the error type returned by all package operations.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Message != "" {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the Kind of err if it is (or wraps) a *wtss.Error,
// and "" otherwise.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

func newError(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

func wrapError(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Message: msg, Err: err}
}

func invalidArgument(msg string) *Error { return newError(KindInvalidArgument, msg) }
