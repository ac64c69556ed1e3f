// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package wire is the Bitcoin wire protocol codec: it serializes typed
// messages to bytes and parses byte streams back into typed messages for a
// negotiated protocol version and network magic. The channel package frames
// its reads and writes with it; nothing in this package knows about
// sockets, subscribers, or registries.
package wire

import (
	"bytes"
	"fmt"
	"io"
)

// Command strings identifying each supported message type. Each message's
// Command method returns one of these, and it is this string — not the Go
// type — that is written into a heading's command field and used to decide
// which typed subscriber a channel dispatches to.
const (
	CmdVersion = "version"
	CmdVerAck  = "verack"
	CmdPing    = "ping"
	CmdPong    = "pong"
	CmdAddr    = "addr"
	CmdGetAddr = "getaddr"
)

// MessageError describes a problem encountered while serializing or
// parsing a message, distinguishing it from a transport or framing error.
type MessageError struct {
	Func        string
	Description string
}

func (e *MessageError) Error() string {
	if e.Func != "" {
		return fmt.Sprintf("%s: %s", e.Func, e.Description)
	}
	return e.Description
}

func messageError(fn, desc string) *MessageError {
	return &MessageError{Func: fn, Description: desc}
}

// Message is the interface every typed wire message implements. A type that
// implements Message has complete control over its own wire representation.
type Message interface {
	BtcDecode(r io.Reader, pver uint32) error
	BtcEncode(w io.Writer, pver uint32) error
	Command() string
	MaxPayloadLength(pver uint32) uint32
}

// makeEmptyMessage returns a zero-valued message for the given command, or
// ErrUnknownMessage if the command is not registered.
func makeEmptyMessage(command string) (Message, error) {
	switch command {
	case CmdVersion:
		return &MsgVersion{}, nil
	case CmdVerAck:
		return &MsgVerAck{}, nil
	case CmdPing:
		return &MsgPing{}, nil
	case CmdPong:
		return &MsgPong{}, nil
	case CmdAddr:
		return &MsgAddr{}, nil
	case CmdGetAddr:
		return &MsgGetAddr{}, nil
	}

	return nil, ErrUnknownMessage
}

// ErrUnknownMessage is returned by Parse when the heading's command does not
// name a registered message type.
var ErrUnknownMessage = fmt.Errorf("received unknown message")

// MaxPayload returns the largest payload a channel buffer must accommodate
// for the given protocol version. All message types currently registered
// have fixed, version-independent payloads well under MaxMessagePayload, so
// every version maps to the same ceiling; the hook exists so a future
// higher version (e.g. one adding a large inventory message) can raise it
// without touching callers.
func MaxPayload(pver uint32) uint32 {
	return MaxMessagePayload
}

// Serialize writes msg's complete frame (heading + payload) for the given
// protocol version and network magic to w.
func Serialize(w io.Writer, msg Message, pver uint32, magic BitcoinNet) error {
	var payload bytes.Buffer
	if err := msg.BtcEncode(&payload, pver); err != nil {
		return err
	}

	length := payload.Len()
	maxAllowed := msg.MaxPayloadLength(pver)
	if uint32(length) > maxAllowed {
		str := fmt.Sprintf("message payload is too large - encoded "+
			"%d bytes, but maximum message payload is %d bytes",
			length, maxAllowed)
		return messageError("Serialize", str)
	}

	command := msg.Command()
	if len(command) > CommandSize {
		return messageError("Serialize", "command too long: "+command)
	}

	hdr := Heading{
		Magic:         magic,
		Command:       command,
		PayloadLength: uint32(length),
		Checksum:      CheckSum(payload.Bytes()),
	}

	if err := WriteHeading(w, &hdr); err != nil {
		return err
	}
	_, err := w.Write(payload.Bytes())
	return err
}

// Parse decodes a single message body for the given protocol version and
// returns the resulting typed message. Parse returns ErrUnknownMessage for
// an unregistered command or the underlying decode error as appropriate; callers
// perform the fixed heading-level checks (magic, size, checksum)
// themselves before calling Parse, so the specific failure reason stays
// distinguishable.
func Parse(command string, pver uint32, r io.Reader) (Message, error) {
	msg, err := makeEmptyMessage(command)
	if err != nil {
		return nil, err
	}

	if err := msg.BtcDecode(r, pver); err != nil {
		return nil, err
	}

	return msg, nil
}
