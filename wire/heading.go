// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"io"
)

// HeadingSize is the number of bytes in a frame heading: magic (4) +
// command (12) + payload length (4) + checksum (4).
const HeadingSize = 24

// CommandSize is the fixed size of the command field of a heading. Shorter
// commands are zero padded.
const CommandSize = 12

// MaxMessagePayload is the maximum payload size this package will ever
// construct or accept for the highest protocol version it knows about,
// regardless of what MaxPayloadLength reports for a given message type. It
// is the capacity of a channel's reusable payload buffer.
const MaxMessagePayload = 32 * 1024 * 1024

// Heading is the decoded form of a frame's 24-byte prefix. It is exported
// so a channel proxy can perform its own heading-level validation (magic,
// payload size) independently of decoding the payload, distinguishing the
// two failure reasons the way a caller framing the stream itself needs to.
type Heading struct {
	Magic         BitcoinNet
	Command       string
	PayloadLength uint32
	Checksum      [4]byte
}

// ReadHeading reads and decodes a 24-byte heading from r. It does not
// validate the heading; callers compare Magic and PayloadLength themselves
// so the specific failure (bad magic vs. oversized payload) can be
// distinguished by the caller.
func ReadHeading(r io.Reader) (*Heading, error) {
	var raw [HeadingSize]byte
	if _, err := io.ReadFull(r, raw[:]); err != nil {
		return nil, err
	}

	hr := bytes.NewReader(raw[:])
	hdr := Heading{}
	var command [CommandSize]byte
	if err := readElements(hr, &hdr.Magic, &command, &hdr.PayloadLength,
		&hdr.Checksum); err != nil {
		return nil, err
	}
	hdr.Command = string(bytes.TrimRight(command[:], "\x00"))

	return &hdr, nil
}

// WriteHeading encodes hdr as its 24-byte wire form and writes it to w.
func WriteHeading(w io.Writer, hdr *Heading) error {
	if len(hdr.Command) > CommandSize {
		return messageError("WriteHeading",
			"command too long: "+hdr.Command)
	}

	var command [CommandSize]byte
	copy(command[:], hdr.Command)

	return writeElements(w, hdr.Magic, command, hdr.PayloadLength, hdr.Checksum)
}
