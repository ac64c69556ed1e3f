// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"testing"
)

func TestGetAddr(t *testing.T) {
	msg := NewMsgGetAddr()

	if cmd := msg.Command(); cmd != CmdGetAddr {
		t.Fatalf("Command: wrong command - got %v want %v", cmd, CmdGetAddr)
	}
	if got := msg.MaxPayloadLength(ProtocolVersion); got != 0 {
		t.Fatalf("MaxPayloadLength: got %v want 0", got)
	}

	var buf bytes.Buffer
	if err := msg.BtcEncode(&buf, ProtocolVersion); err != nil {
		t.Fatalf("BtcEncode error %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("BtcEncode: expected empty payload, got %d bytes", buf.Len())
	}
}
