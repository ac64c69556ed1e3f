// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Command btcchand demonstrates wiring a connection registry and inbound
// acceptor together: it listens for peers, hands each accepted socket a
// channel proxy, registers it, and logs traffic until interrupted.
package main

import (
	"errors"
	"fmt"
	"math/rand"
	"os"
	"os/signal"

	"github.com/btcguild/bchannel/channel"
	"github.com/btcguild/bchannel/channelerr"
	"github.com/btcguild/bchannel/connmgr"
	"github.com/btcguild/bchannel/internal/log"
	"github.com/btcguild/bchannel/wire"
)

func btcChanMain() error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	log.InitLogRotator(cfg.LogFile)
	log.SetLogLevels(cfg.DebugLevel)
	defer log.LogRotator.Close()

	chanCfg := channel.Config{
		Magic:           cfg.activeNetParams.Net,
		ProtocolMaximum: wire.ProtocolVersion,
		Nonce:           rand.Uint64(),
	}

	registry := connmgr.NewRegistry(cfg.MaxInbound)
	acceptor := connmgr.NewAcceptor(chanCfg)

	var listenErr error
	listenDone := make(chan struct{})
	acceptor.Listen(cfg.ListenAddr, func(err error) {
		listenErr = err
		close(listenDone)
	})
	<-listenDone
	if listenErr != nil {
		return listenErr
	}

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)

	go acceptLoop(acceptor, registry)

	<-interrupt
	acceptor.Stop()
	registry.Stop(nil)
	return nil
}

// acceptLoop repeatedly accepts connections until the acceptor stops,
// starting and registering a channel proxy for each one.
func acceptLoop(acceptor *connmgr.Acceptor, registry *connmgr.Registry) {
	for {
		var acceptErr error
		done := make(chan struct{})
		acceptor.Accept(func(ch *channel.Channel, err error) {
			defer close(done)
			acceptErr = err
			if err != nil {
				return
			}
			handleInbound(ch, registry)
		})
		<-done
		if errors.Is(acceptErr, channelerr.ErrServiceStopped) {
			return
		}
	}
}

// handleInbound registers ch, arming its stop subscription to remove it
// again, then starts its read and write loops.
func handleInbound(ch *channel.Channel, registry *connmgr.Registry) {
	if err := registry.Store(ch); err != nil {
		ch.Stop(err)
		return
	}

	ch.SubscribeStop(func(error) {
		registry.Remove(ch)
	})

	ch.Start(func(err error) {
		if err != nil {
			registry.Remove(ch)
		}
	})
}

func main() {
	if err := btcChanMain(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
