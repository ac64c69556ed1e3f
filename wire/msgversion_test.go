// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"net"
	"testing"
)

func TestVersion(t *testing.T) {
	me := NewNetAddressIPPort(net.ParseIP("127.0.0.1"), 8333, SFNodeNetwork)
	you := NewNetAddressIPPort(net.ParseIP("192.168.0.1"), 8333, SFNodeNetwork)

	msg := NewMsgVersion(me, you, 123123, 0)
	if cmd := msg.Command(); cmd != CmdVersion {
		t.Fatalf("Command: wrong command - got %v want %v", cmd, CmdVersion)
	}
	if msg.ProtocolVersion != int32(ProtocolVersion) {
		t.Fatalf("NewMsgVersion: wrong protocol version - got %v, want %v",
			msg.ProtocolVersion, ProtocolVersion)
	}

	msg.AddService(SFNodeBloom)
	if !msg.HasService(SFNodeBloom) {
		t.Fatal("AddService/HasService: service not set")
	}
}

func TestVersionWire(t *testing.T) {
	me := NewNetAddressIPPort(net.ParseIP("127.0.0.1"), 8333, SFNodeNetwork)
	you := NewNetAddressIPPort(net.ParseIP("192.168.0.1"), 8333, SFNodeNetwork)
	in := NewMsgVersion(me, you, 123123, 500)
	in.UserAgent = "/bchannel-test:0.1/"

	var buf bytes.Buffer
	if err := in.BtcEncode(&buf, ProtocolVersion); err != nil {
		t.Fatalf("BtcEncode error %v", err)
	}

	var out MsgVersion
	if err := out.BtcDecode(bytes.NewReader(buf.Bytes()), ProtocolVersion); err != nil {
		t.Fatalf("BtcDecode error %v", err)
	}

	if out.ProtocolVersion != in.ProtocolVersion {
		t.Errorf("ProtocolVersion: got %v want %v", out.ProtocolVersion, in.ProtocolVersion)
	}
	if out.Nonce != in.Nonce {
		t.Errorf("Nonce: got %v want %v", out.Nonce, in.Nonce)
	}
	if out.UserAgent != in.UserAgent {
		t.Errorf("UserAgent: got %v want %v", out.UserAgent, in.UserAgent)
	}
	if out.LastBlock != in.LastBlock {
		t.Errorf("LastBlock: got %v want %v", out.LastBlock, in.LastBlock)
	}
}

func TestVersionUserAgentTooLong(t *testing.T) {
	me := NewNetAddressIPPort(net.ParseIP("127.0.0.1"), 8333, SFNodeNetwork)
	you := NewNetAddressIPPort(net.ParseIP("192.168.0.1"), 8333, SFNodeNetwork)
	msg := NewMsgVersion(me, you, 1, 0)

	agent := make([]byte, MaxUserAgentLen+1)
	for i := range agent {
		agent[i] = 'a'
	}
	msg.UserAgent = string(agent)

	var buf bytes.Buffer
	if err := msg.BtcEncode(&buf, ProtocolVersion); err == nil {
		t.Fatal("BtcEncode: expected error for oversized user agent")
	}
}
