// Copyright (c) 2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package connmgr

import (
	"net"
	"testing"

	"github.com/btcguild/bchannel/channel"
	"github.com/btcguild/bchannel/channelerr"
	"github.com/btcguild/bchannel/wire"
	"github.com/stretchr/testify/require"
)

// testChannel returns a Channel backed by a real loopback TCP connection,
// since a channel's authority is derived from a *net.TCPAddr.
func testChannel(t *testing.T, nonce uint64) (*channel.Channel, net.Conn) {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { ln.Close() })

	accepted := make(chan net.Conn, 1)
	go func() {
		conn, err := ln.Accept()
		if err == nil {
			accepted <- conn
		}
	}()

	client, err := net.Dial("tcp", ln.Addr().String())
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	server := <-accepted

	ch, err := channel.New(server, channel.Config{
		Magic:           wire.MainNet,
		ProtocolMaximum: wire.ProtocolVersion,
		Nonce:           nonce,
	})
	require.NoError(t, err)
	return ch, client
}

func TestRegistryStoreRejectsDuplicateNonce(t *testing.T) {
	r := NewRegistry(4)

	a, _ := testChannel(t, 42)
	b, _ := testChannel(t, 42)

	require.NoError(t, r.Store(a))
	err := r.Store(b)
	require.ErrorIs(t, err, channelerr.ErrAddressInUse)
}

func TestRegistryRemoveIsIdempotent(t *testing.T) {
	r := NewRegistry(4)
	a, _ := testChannel(t, 1)

	require.NoError(t, r.Store(a))
	require.NoError(t, r.Remove(a))

	err := r.Remove(a)
	require.ErrorIs(t, err, channelerr.ErrNotFound)
	require.Equal(t, 0, r.Count())
}

func TestRegistryExists(t *testing.T) {
	r := NewRegistry(4)
	a, _ := testChannel(t, 1)

	require.False(t, r.Exists(a.Authority()))
	require.NoError(t, r.Store(a))
	require.True(t, r.Exists(a.Authority()))
}

func TestRegistryStopStopsMembersAndFreezes(t *testing.T) {
	r := NewRegistry(4)
	a, _ := testChannel(t, 1)
	require.NoError(t, r.Store(a))

	stopped := make(chan error, 1)
	a.SubscribeStop(func(err error) { stopped <- err })

	r.Stop(channelerr.ErrServiceStopped)
	require.ErrorIs(t, <-stopped, channelerr.ErrServiceStopped)

	b, _ := testChannel(t, 2)
	err := r.Store(b)
	require.ErrorIs(t, err, channelerr.ErrServiceStopped)
}

func TestRegistryStopIsIdempotent(t *testing.T) {
	r := NewRegistry(4)
	r.Stop(channelerr.ErrServiceStopped)
	r.Stop(channelerr.ErrServiceStopped)
}
