// Copyright (c) 2014-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package chaincfg defines the named network presets a channel proxy needs
// to frame wire traffic: the magic that must prefix every heading, the
// conventional listen port, and a human-readable name for logging and
// configuration. Genesis blocks, checkpoints, and consensus-deployment
// parameters belong to chain-state packages this module does not have.
package chaincfg

import (
	"errors"

	"github.com/btcguild/bchannel/wire"
)

// Params defines a Bitcoin network by the handful of fields the channel
// proxy and acceptor actually consume.
type Params struct {
	// Name is a human-readable identifier for the network.
	Name string

	// Net is the magic four bytes every heading on this network must
	// carry.
	Net wire.BitcoinNet

	// DefaultPort is the conventional peer-to-peer listen port.
	DefaultPort string
}

// registeredNets tracks which Params have been registered so duplicate or
// conflicting registration is caught early.
var registeredNets = make(map[wire.BitcoinNet]struct{})

var errDuplicateNet = errors.New("chaincfg: duplicate network")

// Register records params.Net as a registered network. It returns an error
// if the network has already been registered. Only the Net value is kept;
// there is no lookup of Params by Net.
func Register(params *Params) error {
	if _, ok := registeredNets[params.Net]; ok {
		return errDuplicateNet
	}
	registeredNets[params.Net] = struct{}{}
	return nil
}

func init() {
	for _, p := range []*Params{&MainNetParams, &TestNet3Params, &SimNetParams} {
		if err := Register(p); err != nil {
			panic(err)
		}
	}
}
