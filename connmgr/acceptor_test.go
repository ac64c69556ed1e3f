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

func testAcceptor(t *testing.T) *Acceptor {
	t.Helper()
	return NewAcceptor(channel.Config{
		Magic:           wire.MainNet,
		ProtocolMaximum: wire.ProtocolVersion,
		Nonce:           1,
	})
}

func TestAcceptorListenAndAccept(t *testing.T) {
	a := testAcceptor(t)

	listenErr := make(chan error, 1)
	a.Listen("127.0.0.1:0", func(err error) { listenErr <- err })
	require.NoError(t, <-listenErr)
	t.Cleanup(a.Stop)

	addr := a.listener.Addr().String()

	accepted := make(chan struct {
		ch  *channel.Channel
		err error
	}, 1)
	go a.Accept(func(ch *channel.Channel, err error) {
		accepted <- struct {
			ch  *channel.Channel
			err error
		}{ch, err}
	})

	conn, err := net.Dial("tcp", addr)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	result := <-accepted
	require.NoError(t, result.err)
	require.NotNil(t, result.ch)
}

func TestAcceptorListenTwiceFails(t *testing.T) {
	a := testAcceptor(t)

	first := make(chan error, 1)
	a.Listen("127.0.0.1:0", func(err error) { first <- err })
	require.NoError(t, <-first)
	t.Cleanup(a.Stop)

	second := make(chan error, 1)
	a.Listen("127.0.0.1:0", func(err error) { second <- err })
	require.ErrorIs(t, <-second, channelerr.ErrOperationFailed)
}

func TestAcceptorStopCancelsPendingAccept(t *testing.T) {
	a := testAcceptor(t)

	listenErr := make(chan error, 1)
	a.Listen("127.0.0.1:0", func(err error) { listenErr <- err })
	require.NoError(t, <-listenErr)

	accepted := make(chan error, 1)
	go a.Accept(func(_ *channel.Channel, err error) { accepted <- err })

	a.Stop()

	err := <-accepted
	require.Error(t, err)
}

func TestAcceptorAcceptAfterStop(t *testing.T) {
	a := testAcceptor(t)
	a.Stop()

	accepted := make(chan error, 1)
	a.Accept(func(_ *channel.Channel, err error) { accepted <- err })
	require.ErrorIs(t, <-accepted, channelerr.ErrServiceStopped)
}
