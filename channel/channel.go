// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package channel implements the per-connection channel proxy: it owns one
// full-duplex connection to a remote peer, runs a perpetual read loop that
// frames, validates, and dispatches Bitcoin wire messages to typed
// subscribers, and serializes outbound sends. Peer-discovery protocols,
// session/role logic, and the message codec itself are external
// collaborators; this package only frames and moves bytes.
package channel

import (
	"bytes"
	"errors"
	"io"
	"net"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/btcguild/bchannel/channelerr"
	"github.com/btcguild/bchannel/wire"
)

// sendQueueDepth is the number of outbound messages that may be queued
// ahead of the write loop before Send blocks the caller.
const sendQueueDepth = 50

// Authority identifies a peer endpoint by address and port. It is
// comparable so it can be used as a map key by the connection registry.
type Authority struct {
	IP   string
	Port uint16
}

// String returns the authority in host:port form.
func (a Authority) String() string {
	return net.JoinHostPort(a.IP, strconv.Itoa(int(a.Port)))
}

// authorityFromAddr derives an Authority from a net.Addr. It returns an
// error if addr is not a TCP address.
func authorityFromAddr(addr net.Addr) (Authority, error) {
	tcpAddr, ok := addr.(*net.TCPAddr)
	if !ok {
		return Authority{}, channelerr.Wrap(channelerr.TransportError,
			errors.New("address is not a TCP address"))
	}
	return Authority{IP: tcpAddr.IP.String(), Port: uint16(tcpAddr.Port)}, nil
}

// erasedHandler is the type-erased form every Subscribe[M] registration is
// stored as internally; msg is nil and err is non-nil exactly when the
// channel has stopped.
type erasedHandler func(msg wire.Message, err error)

// Config carries the construction-time parameters of a Channel: the
// network magic every heading must match, the protocol version ceiling
// that sizes the reusable payload buffer and bounds the initial negotiated
// version, and the self-chosen nonce used to detect loopback connections.
type Config struct {
	Magic           wire.BitcoinNet
	ProtocolMaximum uint32
	Nonce           uint64
}

// Channel owns one connected socket to a remote peer. It is constructed in
// the idle state, transitions to running exactly once via Start, and
// becomes permanently stopped on any terminal error or external Stop; it
// is never re-entered into running.
type Channel struct {
	conn      net.Conn
	magic     wire.BitcoinNet
	authority Authority
	nonce     uint64

	negotiatedVersion atomic.Uint32
	started           atomic.Bool
	stopped           atomic.Bool
	stopOnce          sync.Once

	payloadBuf []byte

	subMu       sync.Mutex
	subscribers map[string][]erasedHandler
	subsClosed  bool

	stopMu          sync.Mutex
	stopSubscribers []func(error)
	stopSubsClosed  bool

	sendCh chan *sendRequest
	doneCh chan struct{}

	onActivity   func()
	stoppingHook func()
}

type sendRequest struct {
	frame  []byte
	onSent func(error)
}

// New wraps conn as an idle Channel. conn's remote address must be a TCP
// address; this is always true for sockets produced by the acceptor or a
// standard TCP dialer.
func New(conn net.Conn, cfg Config) (*Channel, error) {
	authority, err := authorityFromAddr(conn.RemoteAddr())
	if err != nil {
		return nil, err
	}

	c := &Channel{
		conn:        conn,
		magic:       cfg.Magic,
		authority:   authority,
		nonce:       cfg.Nonce,
		payloadBuf:  make([]byte, 0, wire.MaxPayload(cfg.ProtocolMaximum)),
		subscribers: make(map[string][]erasedHandler),
		sendCh:      make(chan *sendRequest, sendQueueDepth),
		doneCh:      make(chan struct{}),
	}
	c.negotiatedVersion.Store(cfg.ProtocolMaximum)
	return c, nil
}

// Authority returns the peer endpoint captured at construction.
func (c *Channel) Authority() Authority {
	return c.authority
}

// Nonce returns the channel-provided value used to detect self connections.
func (c *Channel) Nonce() uint64 {
	return c.nonce
}

// NegotiatedVersion returns the current negotiated protocol version.
func (c *Channel) NegotiatedVersion() uint32 {
	return c.negotiatedVersion.Load()
}

// SetNegotiatedVersion narrows the negotiated version. Callers are expected
// to never raise it; the channel does not itself enforce monotonicity.
func (c *Channel) SetNegotiatedVersion(v uint32) {
	c.negotiatedVersion.Store(v)
}

// Stopped reports whether the channel has stopped, for callers that want a
// cheap non-blocking probe outside any critical section.
func (c *Channel) Stopped() bool {
	return c.stopped.Load()
}

// SetActivityHook installs a callback invoked after every completed read
// and dispatch, intended for an external keepalive timer. It must be
// called before Start.
func (c *Channel) SetActivityHook(hook func()) {
	c.onActivity = hook
}

// SetStoppingHook installs a callback invoked once, during Stop, before the
// socket is closed, giving an owning subtype a chance to cancel its own
// timers. It must be called before Start.
func (c *Channel) SetStoppingHook(hook func()) {
	c.stoppingHook = hook
}

// Start transitions the channel from idle to running. If Start has already
// been called on this channel (whether still running or already stopped),
// it invokes onStarted with operation_failed and does nothing else.
// Otherwise it invokes onStarted(nil) before the first read is issued, so
// callers can subscribe without missing messages, then starts the read and
// write loops.
func (c *Channel) Start(onStarted func(error)) {
	if !c.started.CompareAndSwap(false, true) {
		if onStarted != nil {
			onStarted(channelerr.ErrOperationFailed)
		}
		return
	}

	if onStarted != nil {
		onStarted(nil)
	}

	go c.writeLoop()
	go c.readLoop()
}

// Send serializes msg under the current negotiated version and configured
// magic, then enqueues the resulting frame for transmission in call order.
// onSent is invoked once the write completes (or is skipped because the
// channel had already stopped). Serialization happens synchronously on the
// caller's goroutine; the write itself happens on the channel's write
// loop.
func (c *Channel) Send(msg wire.Message, onSent func(error)) {
	if c.stopped.Load() {
		if onSent != nil {
			onSent(channelerr.ErrChannelStopped)
		}
		return
	}

	var buf bytes.Buffer
	if err := wire.Serialize(&buf, msg, c.negotiatedVersion.Load(), c.magic); err != nil {
		if onSent != nil {
			onSent(channelerr.Wrap(channelerr.ParseError, err))
		}
		return
	}

	req := &sendRequest{frame: buf.Bytes(), onSent: onSent}
	select {
	case c.sendCh <- req:
	case <-c.doneCh:
		if onSent != nil {
			onSent(channelerr.ErrChannelStopped)
		}
	}
}

// Subscribe registers handler to be invoked for every successfully parsed
// message of type M until the channel stops, at which point it is invoked
// once more with channel_stopped and discarded. If the channel has already
// stopped when Subscribe is called, handler is invoked immediately with
// channel_stopped. Delivery order across handlers registered for the same
// M matches registration order.
func Subscribe[M wire.Message](c *Channel, handler func(msg M, err error)) {
	var zero M
	cmd := zero.Command()

	wrapped := erasedHandler(func(msg wire.Message, err error) {
		if err != nil {
			var z M
			handler(z, err)
			return
		}
		if m, ok := msg.(M); ok {
			handler(m, nil)
		}
	})

	c.subMu.Lock()
	if c.subsClosed {
		c.subMu.Unlock()
		wrapped(nil, channelerr.ErrChannelStopped)
		return
	}
	c.subscribers[cmd] = append(c.subscribers[cmd], wrapped)
	c.subMu.Unlock()
}

// SubscribeStop registers handler to be invoked exactly once with the
// terminal error code when the channel stops. If the channel is already
// stopped, handler is invoked immediately with channel_stopped.
func (c *Channel) SubscribeStop(handler func(error)) {
	c.stopMu.Lock()
	if c.stopSubsClosed {
		c.stopMu.Unlock()
		handler(channelerr.ErrChannelStopped)
		return
	}
	c.stopSubscribers = append(c.stopSubscribers, handler)
	c.stopMu.Unlock()
}

// dispatch delivers msg to every subscriber registered for its command, in
// registration order.
func (c *Channel) dispatch(msg wire.Message) {
	c.subMu.Lock()
	handlers := append([]erasedHandler(nil), c.subscribers[msg.Command()]...)
	c.subMu.Unlock()

	for _, h := range handlers {
		h(msg, nil)
	}
}

// Stop is idempotent and thread-safe. It is deliberately not guarded by a
// single lock spanning the whole sequence below — a concurrent Send may be
// holding the write loop's attention on the socket, and a single enclosing
// lock here would risk deadlock against it. Each step below is
// independently safe to run concurrently with anything else in the
// channel, any number of times; sync.Once only makes the sequence itself
// idempotent.
func (c *Channel) Stop(ec error) {
	if ec == nil {
		ec = channelerr.ErrChannelStopped
	}

	c.stopOnce.Do(func() {
		c.stopped.Store(true)

		c.subMu.Lock()
		c.subsClosed = true
		subs := c.subscribers
		c.subscribers = nil
		c.subMu.Unlock()
		for _, handlers := range subs {
			for _, h := range handlers {
				h(nil, channelerr.ErrChannelStopped)
			}
		}

		c.stopMu.Lock()
		c.stopSubsClosed = true
		stopSubs := c.stopSubscribers
		c.stopSubscribers = nil
		c.stopMu.Unlock()
		for _, h := range stopSubs {
			h(ec)
		}

		if c.stoppingHook != nil {
			c.stoppingHook()
		}

		close(c.doneCh)
		c.conn.Close()
	})
}

// translateErr maps a transport error into the channel error taxonomy. A
// closed-connection error surfaces as channel_stopped since it is almost
// always the direct consequence of this channel's own Stop closing the
// socket out from under an in-flight read or write.
func translateErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, net.ErrClosed) || errors.Is(err, io.ErrClosedPipe) {
		return channelerr.ErrChannelStopped
	}
	return channelerr.Wrap(channelerr.TransportError, err)
}
