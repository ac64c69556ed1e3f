// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package channel

import "github.com/btcguild/bchannel/channelerr"

// writeLoop is the per-channel write strand: it drains sendCh in order and
// writes each frame to the socket before considering the next, so that if
// Send(A) happens-before Send(B) in program order, A's bytes precede B's on
// the wire. Reads and writes proceed independently; a write in flight never
// blocks a read in flight because they operate on disjoint goroutines and
// the net.Conn itself is safe for concurrent one-reader/one-writer use.
func (c *Channel) writeLoop() {
	for {
		select {
		case req := <-c.sendCh:
			c.writeOne(req)

		case <-c.doneCh:
			// Drain whatever was queued at the moment of Stop so every
			// caller still waiting on onSent gets a callback, then exit;
			// no further sends are accepted once doneCh is closed.
			for {
				select {
				case req := <-c.sendCh:
					if req.onSent != nil {
						req.onSent(channelerr.ErrChannelStopped)
					}
				default:
					return
				}
			}
		}
	}
}

func (c *Channel) writeOne(req *sendRequest) {
	if c.stopped.Load() {
		if req.onSent != nil {
			req.onSent(channelerr.ErrChannelStopped)
		}
		return
	}

	_, err := c.conn.Write(req.frame)
	if req.onSent != nil {
		req.onSent(translateErr(err))
	}
}
