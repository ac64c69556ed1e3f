// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package channel

import (
	"bytes"
	"io"

	"github.com/btcguild/bchannel/channelerr"
	"github.com/btcguild/bchannel/wire"
)

// readLoop runs the channel's read strand to completion. It is a strictly
// sequential state machine:
//
//	S0 read heading  -> await exactly HeadingSize bytes
//	S1 validate      -> check magic, payload size <= buffer capacity
//	S2 read payload  -> resize payload buffer, read exactly that many bytes
//	S3 verify        -> recompute checksum(payload); compare to heading
//	S4 dispatch      -> ask the codec to parse; deliver to subscribers
//	S5 -> S0         -> loop
//
// Any failure at S1 through S4 is terminal: the channel stops and the loop
// exits. The heading and payload buffers are not protected by a lock
// because this function is the only reader of the connection and advances
// through S0..S5 without reordering.
func (c *Channel) readLoop() {
	for {
		if c.stopped.Load() {
			return
		}

		hdr, err := wire.ReadHeading(c.conn)
		if err != nil {
			c.Stop(translateErr(err))
			return
		}
		if c.stopped.Load() {
			return
		}

		if hdr.Magic != c.magic {
			log.Warnf("Invalid heading magic (%v) from [%v]", hdr.Magic, c.authority)
			c.Stop(channelerr.ErrBadStream)
			return
		}

		maxPayload := wire.MaxPayload(c.negotiatedVersion.Load())
		if hdr.PayloadLength > maxPayload || hdr.PayloadLength > uint32(cap(c.payloadBuf)) {
			log.Warnf("Oversized payload indicated by %s heading from [%v] (%d bytes)",
				hdr.Command, c.authority, hdr.PayloadLength)
			c.Stop(channelerr.ErrBadStream)
			return
		}

		if c.onActivity != nil {
			c.onActivity()
		}

		payload := c.payloadBuf[:hdr.PayloadLength]
		if _, err := io.ReadFull(c.conn, payload); err != nil {
			c.Stop(translateErr(err))
			return
		}
		if c.stopped.Load() {
			return
		}

		if wire.CheckSum(payload) != hdr.Checksum {
			log.Warnf("Invalid %s payload from [%v]: bad checksum", hdr.Command, c.authority)
			c.Stop(channelerr.ErrBadStream)
			return
		}

		r := bytes.NewReader(payload)
		msg, err := wire.Parse(hdr.Command, c.negotiatedVersion.Load(), r)
		if err != nil {
			log.Warnf("Invalid %s payload from [%v]: %v", hdr.Command, c.authority, err)
			c.Stop(channelerr.Wrap(channelerr.ParseError, err))
			return
		}
		if r.Len() != 0 {
			log.Warnf("Invalid %s payload from [%v]: trailing bytes", hdr.Command, c.authority)
			c.Stop(channelerr.ErrBadStream)
			return
		}

		log.Debugf("Valid %s payload from [%v] (%d bytes)", hdr.Command, c.authority, len(payload))
		log.Tracef("%s payload from [%v]: %v", hdr.Command, c.authority, hexDump(payload))

		c.dispatch(msg)

		if c.onActivity != nil {
			c.onActivity()
		}
	}
}
