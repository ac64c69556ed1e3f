// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// ProtocolVersion is the latest protocol version this package
	// supports and the version newly constructed channels negotiate down
	// from.
	ProtocolVersion uint32 = 70016

	// MultipleAddressVersion is the protocol version which added support
	// for the addr message carrying more than one address.
	MultipleAddressVersion uint32 = 209

	// BIP0031Version is the protocol version which added the nonce field
	// to the ping message and the pong message itself.
	BIP0031Version uint32 = 60001

	// NetAddressTimeVersion is the protocol version which added the
	// timestamp field to NetAddress.
	NetAddressTimeVersion uint32 = 31402
)

// ServiceFlag identifies services supported by a peer.
type ServiceFlag uint64

const (
	// SFNodeNetwork is a flag used to indicate a peer is a full node.
	SFNodeNetwork ServiceFlag = 1 << iota

	// SFNodeGetUTXO is a flag used to indicate a peer supports the
	// getutxo/utxos protocol extension.
	SFNodeGetUTXO

	// SFNodeBloom is a flag used to indicate a peer supports bloom
	// filtering.
	SFNodeBloom
)

var sfStrings = map[ServiceFlag]string{
	SFNodeNetwork: "SFNodeNetwork",
	SFNodeGetUTXO: "SFNodeGetUTXO",
	SFNodeBloom:   "SFNodeBloom",
}

var orderedSFStrings = []ServiceFlag{
	SFNodeNetwork,
	SFNodeGetUTXO,
	SFNodeBloom,
}

// String returns the ServiceFlag in human-readable form.
func (f ServiceFlag) String() string {
	if f == 0 {
		return "0x0"
	}

	s := ""
	for _, flag := range orderedSFStrings {
		if f&flag == flag {
			s += sfStrings[flag] + "|"
			f -= flag
		}
	}

	s = strings.TrimRight(s, "|")
	if f != 0 {
		s += "|0x" + strconv.FormatUint(uint64(f), 16)
	}
	return strings.TrimLeft(s, "|")
}

// BitcoinNet represents the magic 4-byte constant identifying the network a
// message belongs to. Headings whose magic does not match the configured
// value are rejected as bad_stream by the channel package's read loop;
// ReadHeading itself does not check it.
type BitcoinNet uint32

// Constants identifying the well-known Bitcoin networks. A channel is
// configured with exactly one of these (or a caller-supplied custom value)
// as its network_magic option.
const (
	// MainNet represents the main Bitcoin network.
	MainNet BitcoinNet = 0xd9b4bef9

	// TestNet3 represents the test network (version 3).
	TestNet3 BitcoinNet = 0x0709110b

	// SimNet represents the simulation test network.
	SimNet BitcoinNet = 0x12141c16
)

var bnStrings = map[BitcoinNet]string{
	MainNet:  "MainNet",
	TestNet3: "TestNet3",
	SimNet:   "SimNet",
}

// String returns the BitcoinNet in human-readable form.
func (n BitcoinNet) String() string {
	if s, ok := bnStrings[n]; ok {
		return s
	}
	return fmt.Sprintf("Unknown BitcoinNet (0x%08x)", uint32(n))
}
