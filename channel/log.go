// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package channel

import (
	"encoding/hex"

	"github.com/btcsuite/btclog"
)

// log is a logger that is initialized with no output filters. This means
// the package will not perform any logging by default until the caller
// requests it. The default amount of logging is none.
var log = btclog.Disabled

// DisableLog disables all library log output. Logging output is disabled
// by default until UseLogger is called.
func DisableLog() {
	log = btclog.Disabled
}

// UseLogger uses a specified Logger to output package logging info.
func UseLogger(logger btclog.Logger) {
	log = logger
}

// logClosure is a closure that can be printed with %v to be used to
// generate expensive-to-create data for a detailed log level and avoid the
// overhead of the calculation if the data isn't printed.
type logClosure func() string

func (c logClosure) String() string {
	return c()
}

func newLogClosure(c func() string) logClosure {
	return logClosure(c)
}

// hexDump returns a logClosure that hex-encodes payload the first time its
// String method is invoked. Callers pass this to Tracef so the encoding is
// skipped entirely when the configured level filters it out.
func hexDump(payload []byte) logClosure {
	return newLogClosure(func() string {
		return hex.EncodeToString(payload)
	})
}
