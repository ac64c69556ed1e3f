// Copyright (c) 2013-2015 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"fmt"
	"io"
	"time"
)

// MaxUserAgentLen is the maximum allowed length for the user agent field in
// a version message (MsgVersion).
const MaxUserAgentLen = 256

// DefaultUserAgent is used when a caller does not supply its own.
const DefaultUserAgent = "/bchannel:0.1.0/"

// MsgVersion implements the Message interface and represents a Bitcoin
// version message. It is sent first by both sides of a connection as the
// start of the handshake negotiated above this package; this package only
// frames, serializes, and parses it — it does not drive the handshake.
type MsgVersion struct {
	// Version of the protocol the transmitting peer is using.
	ProtocolVersion int32

	// Bitfield identifying the services supported by the transmitting peer.
	Services ServiceFlag

	// Time the message was generated.
	Timestamp time.Time

	// Address and services of the receiving peer.
	AddrYou NetAddress

	// Address and services of the transmitting peer. Included for
	// historical reasons; the actual address is determined by the
	// transport, not trusted from this field.
	AddrMe NetAddress

	// Unique value associated with the version message that is used to
	// detect self connections.
	Nonce uint64

	// User agent of the transmitting peer.
	UserAgent string

	// Last block seen by the transmitting peer.
	LastBlock int32

	// Whether transaction relay to the transmitting peer is disabled
	// until a filter is set, per BIP0037. Absent from older peers, in
	// which case it decodes as false.
	DisableRelayTx bool
}

// HasService returns whether the specified service is supported by the peer
// advertising this version message.
func (msg *MsgVersion) HasService(service ServiceFlag) bool {
	return msg.Services&service == service
}

// AddService adds service as a supported service by the peer generating the
// message.
func (msg *MsgVersion) AddService(service ServiceFlag) {
	msg.Services |= service
}

// BtcDecode decodes r using the Bitcoin protocol encoding into the
// receiver. This is part of the Message interface implementation.
func (msg *MsgVersion) BtcDecode(r io.Reader, pver uint32) error {
	var sec int64
	if err := readElements(r, &msg.ProtocolVersion, &msg.Services); err != nil {
		return err
	}
	if err := readElement(r, &sec); err != nil {
		return err
	}
	msg.Timestamp = time.Unix(sec, 0)

	if err := readNetAddress(r, pver, &msg.AddrYou, false); err != nil {
		return err
	}

	// The following fields are absent from the earliest nodes we might
	// still encounter on a test network.
	if int64(msg.ProtocolVersion) == 0 {
		return nil
	}

	if err := readNetAddress(r, pver, &msg.AddrMe, false); err != nil {
		return err
	}
	if err := readElement(r, &msg.Nonce); err != nil {
		return err
	}

	userAgent, err := ReadVarString(r)
	if err != nil {
		return err
	}
	if len(userAgent) > MaxUserAgentLen {
		str := fmt.Sprintf("user agent too long [len %d, max %d]",
			len(userAgent), MaxUserAgentLen)
		return messageError("MsgVersion.BtcDecode", str)
	}
	msg.UserAgent = userAgent

	if err := readElement(r, &msg.LastBlock); err != nil {
		return err
	}

	// DisableRelayTx was added in a later protocol version, so its
	// absence (EOF) is not itself an error.
	if err := readElement(r, &msg.DisableRelayTx); err != nil {
		if err != io.EOF {
			return err
		}
		msg.DisableRelayTx = false
	}

	return nil
}

// BtcEncode encodes the receiver to w using the Bitcoin protocol encoding.
// This is part of the Message interface implementation.
func (msg *MsgVersion) BtcEncode(w io.Writer, pver uint32) error {
	if len(msg.UserAgent) > MaxUserAgentLen {
		str := fmt.Sprintf("user agent too long [len %d, max %d]",
			len(msg.UserAgent), MaxUserAgentLen)
		return messageError("MsgVersion.BtcEncode", str)
	}

	if err := writeElements(w, msg.ProtocolVersion, msg.Services,
		msg.Timestamp.Unix()); err != nil {
		return err
	}
	if err := writeNetAddress(w, pver, &msg.AddrYou, false); err != nil {
		return err
	}
	if err := writeNetAddress(w, pver, &msg.AddrMe, false); err != nil {
		return err
	}
	if err := writeElement(w, msg.Nonce); err != nil {
		return err
	}
	if err := WriteVarString(w, msg.UserAgent); err != nil {
		return err
	}
	if err := writeElement(w, msg.LastBlock); err != nil {
		return err
	}
	return writeElement(w, msg.DisableRelayTx)
}

// Command returns the protocol command string for the message. This is
// part of the Message interface implementation.
func (msg *MsgVersion) Command() string {
	return CmdVersion
}

// MaxPayloadLength returns the maximum length the payload can be for the
// receiver. This is part of the Message interface implementation.
func (msg *MsgVersion) MaxPayloadLength(pver uint32) uint32 {
	// 4 (version) + 8 (services) + 8 (timestamp) + 26*2 (addresses,
	// without timestamp) + 8 (nonce) + VarInt + MaxUserAgentLen +
	// 4 (last block) + 1 (relay)
	return 33 + 2*26 + uint32(VarIntSerializeSize(MaxUserAgentLen)) +
		MaxUserAgentLen
}

// NewMsgVersion returns a new Bitcoin version message that conforms to the
// Message interface using the passed parameters and defaults for the
// remaining fields.
func NewMsgVersion(me, you *NetAddress, nonce uint64, lastBlock int32) *MsgVersion {
	return &MsgVersion{
		ProtocolVersion: int32(ProtocolVersion),
		Services:        0,
		Timestamp:       time.Unix(time.Now().Unix(), 0),
		AddrYou:         *you,
		AddrMe:          *me,
		Nonce:           nonce,
		UserAgent:       DefaultUserAgent,
		LastBlock:       lastBlock,
		DisableRelayTx:  false,
	}
}
