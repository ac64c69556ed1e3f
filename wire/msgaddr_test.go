// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"net"
	"testing"
	"time"
)

func TestAddr(t *testing.T) {
	msg := NewMsgAddr()
	if cmd := msg.Command(); cmd != CmdAddr {
		t.Fatalf("Command: wrong command - got %v want %v", cmd, CmdAddr)
	}

	na := NewNetAddressIPPort(net.ParseIP("127.0.0.1"), 8333, SFNodeNetwork)
	if err := msg.AddAddress(na); err != nil {
		t.Fatalf("AddAddress: unexpected error %v", err)
	}
	if len(msg.AddrList) != 1 {
		t.Fatalf("AddAddress: got %d addresses, want 1", len(msg.AddrList))
	}

	msg.ClearAddresses()
	if len(msg.AddrList) != 0 {
		t.Fatalf("ClearAddresses: got %d addresses, want 0", len(msg.AddrList))
	}
}

func TestAddrWire(t *testing.T) {
	msg := NewMsgAddr()
	na := NewNetAddressTimestamp(
		time.Unix(0x495fab29, 0), SFNodeNetwork,
		net.ParseIP("127.0.0.1"), 8333,
	)
	if err := msg.AddAddress(na); err != nil {
		t.Fatalf("AddAddress: unexpected error %v", err)
	}

	var buf bytes.Buffer
	if err := msg.BtcEncode(&buf, ProtocolVersion); err != nil {
		t.Fatalf("BtcEncode error %v", err)
	}

	var out MsgAddr
	if err := out.BtcDecode(bytes.NewReader(buf.Bytes()), ProtocolVersion); err != nil {
		t.Fatalf("BtcDecode error %v", err)
	}
	if len(out.AddrList) != 1 {
		t.Fatalf("BtcDecode: got %d addresses, want 1", len(out.AddrList))
	}
	if !out.AddrList[0].IP.Equal(na.IP) {
		t.Fatalf("BtcDecode: got IP %v want %v", out.AddrList[0].IP, na.IP)
	}
	if out.AddrList[0].Port != na.Port {
		t.Fatalf("BtcDecode: got port %v want %v", out.AddrList[0].Port, na.Port)
	}
}

func TestAddrTooMany(t *testing.T) {
	msg := NewMsgAddr()
	na := NewNetAddressIPPort(net.ParseIP("127.0.0.1"), 8333, SFNodeNetwork)
	for i := 0; i < MaxAddrPerMsg; i++ {
		if err := msg.AddAddress(na); err != nil {
			t.Fatalf("AddAddress #%d: unexpected error %v", i, err)
		}
	}
	if err := msg.AddAddress(na); err == nil {
		t.Fatal("AddAddress: expected error adding one too many addresses")
	}
}
