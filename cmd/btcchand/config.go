// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/btcguild/bchannel/chaincfg"

	flags "github.com/jessevdk/go-flags"
)

const (
	defaultLogFilename = "btcchand.log"
	defaultLogLevel    = "info"
	defaultMaxInbound  = 125
)

var (
	defaultHomeDir = filepath.Join(os.Getenv("HOME"), ".btcchand")
	defaultLogFile = filepath.Join(defaultHomeDir, defaultLogFilename)
)

// config defines the configuration options for btcchand.
//
// See loadConfig for details on the configuration load process.
type config struct {
	ListenAddr string `short:"l" long:"listen" description:"Address to listen for inbound connections (host:port)"`
	LogFile    string `long:"logfile" description:"Path to the log file"`
	DebugLevel string `short:"d" long:"debuglevel" description:"Logging level {trace, debug, info, warn, error, critical}"`
	TestNet3   bool   `long:"testnet" description:"Use the test network"`
	SimNet     bool   `long:"simnet" description:"Use the simulation test network"`
	MaxInbound int    `long:"maxinbound" description:"Number of inbound connections to preallocate registry capacity for"`

	activeNetParams chaincfg.Params
}

// validLogLevel reports whether logLevel names a level btclog understands.
func validLogLevel(logLevel string) bool {
	switch logLevel {
	case "trace", "debug", "info", "warn", "error", "critical":
		return true
	}
	return false
}

// loadConfig initializes and parses the config using command line options.
//
// The configuration proceeds as follows:
//  1. Start with a default config with sane settings
//  2. Parse command line options, overwriting any defaults they touch
//  3. Resolve the active network and its default listen port
func loadConfig() (*config, []string, error) {
	cfg := config{
		LogFile:    defaultLogFile,
		DebugLevel: defaultLogLevel,
		MaxInbound: defaultMaxInbound,
	}

	parser := flags.NewParser(&cfg, flags.Default)
	remainingArgs, err := parser.Parse()
	if err != nil {
		if e, ok := err.(*flags.Error); !ok || e.Type != flags.ErrHelp {
			parser.WriteHelp(os.Stderr)
		}
		return nil, nil, err
	}

	if cfg.TestNet3 && cfg.SimNet {
		str := "%s: the testnet and simnet params can't be used together -- choose one"
		err := fmt.Errorf(str, "loadConfig")
		fmt.Fprintln(os.Stderr, err)
		parser.WriteHelp(os.Stderr)
		return nil, nil, err
	}

	switch {
	case cfg.TestNet3:
		cfg.activeNetParams = chaincfg.TestNet3Params
	case cfg.SimNet:
		cfg.activeNetParams = chaincfg.SimNetParams
	default:
		cfg.activeNetParams = chaincfg.MainNetParams
	}

	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":" + cfg.activeNetParams.DefaultPort
	}

	if !validLogLevel(cfg.DebugLevel) {
		str := "%s: the specified debug level [%v] is invalid"
		err := fmt.Errorf(str, "loadConfig", cfg.DebugLevel)
		fmt.Fprintln(os.Stderr, err)
		parser.WriteHelp(os.Stderr)
		return nil, nil, err
	}

	return &cfg, remainingArgs, nil
}
