// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package channelerr defines the shared error taxonomy used across the
// channel proxy, connection registry, and acceptor. Every failure a caller
// might need to branch on is one of the Code values below, optionally
// wrapping a transport or codec error for logging.
package channelerr

import "fmt"

// Code identifies a class of failure a caller can compare against with
// errors.Is, independent of any wrapped underlying cause.
type Code int

const (
	// Success is never itself returned as an error; it exists so a Code
	// zero value reads as "no error" rather than an unnamed failure.
	Success Code = iota

	// OperationFailed indicates an operation was attempted in a state that
	// does not allow it: Start on a channel that was already started, Listen
	// on an acceptor that is already listening, or Accept before Listen.
	OperationFailed

	// ChannelStopped indicates an operation was attempted, or a
	// subscriber was notified, after the channel stopped.
	ChannelStopped

	// BadStream indicates a framing violation: invalid heading, bad
	// magic, oversized payload, checksum mismatch, or trailing bytes
	// after a codec parse.
	BadStream

	// ServiceStopped indicates the registry or acceptor has been
	// stopped.
	ServiceStopped

	// AddressInUse indicates a registry store was rejected because a
	// member already exists with the candidate's authority or nonce.
	AddressInUse

	// NotFound indicates a registry remove was attempted for a channel
	// the registry does not hold.
	NotFound

	// TransportError wraps an error translated from the underlying
	// socket (read/write/close/listen/accept failures).
	TransportError

	// ParseError wraps an error returned by the codec while decoding a
	// message payload.
	ParseError
)

var codeStrings = map[Code]string{
	Success:         "success",
	OperationFailed: "operation failed",
	ChannelStopped:  "channel stopped",
	BadStream:       "bad stream",
	ServiceStopped:  "service stopped",
	AddressInUse:    "address in use",
	NotFound:        "not found",
	TransportError:  "transport error",
	ParseError:      "parse error",
}

// String returns the human-readable name of the code.
func (c Code) String() string {
	if s, ok := codeStrings[c]; ok {
		return s
	}
	return fmt.Sprintf("unknown error code (%d)", int(c))
}

// Error is the concrete error type returned by every operation in this
// module. It carries a Code that callers branch on and an optional wrapped
// cause used only for logging and diagnostics.
type Error struct {
	Code Code
	Err  error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s", e.Code, e.Err)
	}
	return e.Code.String()
}

// Unwrap allows errors.Is/errors.As to reach the wrapped cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is a *Error with the same Code, ignoring any
// wrapped cause. This lets call sites write errors.Is(err, ErrBadStream)
// without caring whether ErrBadStream itself carries a cause.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// New returns an *Error with the given code and no wrapped cause.
func New(code Code) *Error {
	return &Error{Code: code}
}

// Wrap returns an *Error with the given code, wrapping err for context.
// Wrap(code, nil) is equivalent to New(code).
func Wrap(code Code, err error) *Error {
	return &Error{Code: code, Err: err}
}

// Sentinel errors, one per failure code, none carrying a wrapped cause.
// Compare against these with errors.Is; Error.Is matches on Code alone so a
// Wrap(TransportError, ...) value still satisfies
// errors.Is(err, ErrTransportError).
var (
	ErrOperationFailed = New(OperationFailed)
	ErrChannelStopped  = New(ChannelStopped)
	ErrBadStream       = New(BadStream)
	ErrServiceStopped  = New(ServiceStopped)
	ErrAddressInUse    = New(AddressInUse)
	ErrNotFound        = New(NotFound)
	ErrTransportError  = New(TransportError)
	ErrParseError      = New(ParseError)
)
