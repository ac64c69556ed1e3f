// Copyright (c) 2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package connmgr

import (
	"net"
	"sync"
	"sync/atomic"

	"github.com/btcguild/bchannel/channel"
	"github.com/btcguild/bchannel/channelerr"
)

// Acceptor binds one TCP listening socket and produces channel proxies from
// the connections it accepts. It moves through unbound -> listening -> stopped
// and is never rebound.
type Acceptor struct {
	cfg channel.Config

	mu       sync.Mutex
	listener net.Listener
	stopped  atomic.Bool
}

// NewAcceptor returns an unbound Acceptor that will hand cfg to every
// channel it constructs from an accepted socket.
func NewAcceptor(cfg channel.Config) *Acceptor {
	return &Acceptor{cfg: cfg}
}

// Listen binds addr (host:port form; an empty host binds all interfaces)
// with address reuse enabled, and reports the outcome via handler.
func (a *Acceptor) Listen(addr string, handler func(error)) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopped.Load() {
		if handler != nil {
			handler(channelerr.ErrServiceStopped)
		}
		return
	}
	if a.listener != nil {
		if handler != nil {
			handler(channelerr.ErrOperationFailed)
		}
		return
	}

	ln, err := listenReusable(addr)
	if err != nil {
		if handler != nil {
			handler(channelerr.Wrap(channelerr.TransportError, err))
		}
		return
	}

	a.listener = ln
	log.Infof("Listening on %s", addr)
	if handler != nil {
		handler(nil)
	}
}

// Accept waits for the next inbound connection and reports either a new,
// unstarted channel proxy or an error. It may be called repeatedly, once
// per desired concurrent accept, from any goroutine.
func (a *Acceptor) Accept(onAccepted func(*channel.Channel, error)) {
	a.mu.Lock()
	ln := a.listener
	stopped := a.stopped.Load()
	a.mu.Unlock()

	if stopped {
		if onAccepted != nil {
			onAccepted(nil, channelerr.ErrServiceStopped)
		}
		return
	}
	if ln == nil {
		if onAccepted != nil {
			onAccepted(nil, channelerr.ErrOperationFailed)
		}
		return
	}

	conn, err := ln.Accept()
	if err != nil {
		if a.stopped.Load() {
			if onAccepted != nil {
				onAccepted(nil, channelerr.ErrServiceStopped)
			}
			return
		}
		if onAccepted != nil {
			onAccepted(nil, channelerr.Wrap(channelerr.TransportError, err))
		}
		return
	}

	ch, err := channel.New(conn, a.cfg)
	if err != nil {
		conn.Close()
		if onAccepted != nil {
			onAccepted(nil, err)
		}
		return
	}
	if onAccepted != nil {
		onAccepted(ch, nil)
	}
}

// Stop cancels the listener and every accept blocked on it. It is
// idempotent; subsequent Accept calls fail with service_stopped.
func (a *Acceptor) Stop() {
	if !a.stopped.CompareAndSwap(false, true) {
		return
	}

	a.mu.Lock()
	ln := a.listener
	a.mu.Unlock()

	if ln != nil {
		ln.Close()
	}
	log.Infof("Acceptor stopped")
}
