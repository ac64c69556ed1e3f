// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package channel

import (
	"io"
	"net"
	"time"
)

// fakeConn mocks a network connection by implementing the net.Conn
// interface over a pair of io.Pipes, so a test can drive the channel's
// read loop with hand-built byte sequences without opening a real socket.
// Close closes both the read and write ends so a pending Read and a
// pending Write both unblock the way a real closed socket would.
type fakeConn struct {
	r *io.PipeReader
	w *io.PipeWriter

	laddr *net.TCPAddr
	raddr *net.TCPAddr
}

func (c *fakeConn) Read(p []byte) (int, error)  { return c.r.Read(p) }
func (c *fakeConn) Write(p []byte) (int, error) { return c.w.Write(p) }

func (c *fakeConn) Close() error {
	c.r.Close()
	c.w.Close()
	return nil
}

func (c *fakeConn) LocalAddr() net.Addr  { return c.laddr }
func (c *fakeConn) RemoteAddr() net.Addr { return c.raddr }

func (c *fakeConn) SetDeadline(t time.Time) error      { return nil }
func (c *fakeConn) SetReadDeadline(t time.Time) error  { return nil }
func (c *fakeConn) SetWriteDeadline(t time.Time) error { return nil }

// fakePipe wires two fakeConns back to back, full duplex, the way net.Pipe
// does, but with distinct, inspectable TCP addresses on each end.
func fakePipe(laddr, raddr *net.TCPAddr) (*fakeConn, *fakeConn) {
	r1, w1 := io.Pipe()
	r2, w2 := io.Pipe()

	local := &fakeConn{r: r1, w: w2, laddr: laddr, raddr: raddr}
	remote := &fakeConn{r: r2, w: w1, laddr: raddr, raddr: laddr}
	return local, remote
}

func tcpAddr(port int) *net.TCPAddr {
	return &net.TCPAddr{IP: net.ParseIP("127.0.0.1"), Port: port}
}
