// Copyright (c) 2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package connmgr implements the connection registry and inbound acceptor
that sit above a single channel proxy.

The Registry is a thread-safe set of live channels, rejecting duplicates by
authority or nonce and stopping every member when it itself is stopped. The
Acceptor binds one TCP listener and turns each accepted socket into a new,
unstarted channel proxy.

Outbound dialing, peer discovery, and address persistence are not this
package's concern; it only tracks channels once they exist and produces new
ones from inbound connections.
*/
package connmgr
