// Package stream is the real-time telemetry streaming client: one socket to the
// telemetry endpoint shared by every subscriber, reconnect with bounded linear
// backoff, ordered fan-out of normalized records and a thin command channel.
package stream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"sync"
	"time"

	"github.com/sanjayshukla-jarbits/skyroutex-client-sub001/pkg/model"
	"github.com/sanjayshukla-jarbits/skyroutex-client-sub001/pkg/monitor"
	"github.com/sanjayshukla-jarbits/skyroutex-client-sub001/pkg/normalizer"
)

// DefaultURL is the local development telemetry endpoint.
const DefaultURL = "ws://localhost:8000/ws/telemetry"

// Options configures a Client. Zero values select the defaults.
type Options struct {
	URL       string
	Dialer    Dialer
	Scheduler Scheduler

	MaxAttempts int
	BaseDelay   time.Duration
	CapFactor   int

	Normalize func([]byte) (model.TelemetryRecord, error)
}

// Client owns the single telemetry connection. Build one per process in the
// composition root and hand it to whatever needs it.
type Client struct {
	url       string
	dialer    Dialer
	normalize func([]byte) (model.TelemetryRecord, error)
	logger    *log.Logger
	emit      func(monitor.Event)

	mu         sync.Mutex
	state      State
	conn       Conn
	cancelDial context.CancelFunc
	generation uint64 // bumped on every dial and every teardown
	registry   *Registry
	policy     *ReconnectPolicy
}

// NewClient builds an idle client. emit receives monitoring events and must not
// call back into the client; it may be nil.
func NewClient(opts Options, logger *log.Logger, emit func(monitor.Event)) *Client {
	if opts.URL == "" {
		opts.URL = DefaultURL
	}
	if opts.Dialer == nil {
		opts.Dialer = &WebsocketDialer{}
	}
	if opts.Normalize == nil {
		opts.Normalize = normalizer.Normalize
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Client{
		url:       opts.URL,
		dialer:    opts.Dialer,
		normalize: opts.Normalize,
		logger:    logger,
		emit:      emit,
		state:     StateIdle,
		registry:  NewRegistry(),
		policy:    NewReconnectPolicy(opts.MaxAttempts, opts.BaseDelay, opts.CapFactor, opts.Scheduler),
	}
}

// Connect starts a fresh connection cycle unless a connection is already open
// or in progress. It returns immediately; the outcome arrives through
// subscriber callbacks.
func (c *Client) Connect() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.freshCycleLocked()
}

// Subscribe registers sub and starts a fresh connection cycle if no connection
// is active. The returned func removes exactly this subscription; calling it
// more than once is harmless. Removing the last subscription tears the
// connection down.
func (c *Client) Subscribe(sub Subscription) (unsubscribe func()) {
	c.mu.Lock()
	id := c.registry.Add(sub)
	c.emitEvent(monitor.NewSubscribersChanged(c.registry.Len()))
	c.freshCycleLocked()
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { c.unsubscribe(id) })
	}
}

func (c *Client) unsubscribe(id SubscriptionID) {
	c.mu.Lock()
	removed, empty := c.registry.Remove(id)
	if !removed {
		c.mu.Unlock()
		return
	}
	c.emitEvent(monitor.NewSubscribersChanged(c.registry.Len()))
	if !empty {
		c.mu.Unlock()
		return
	}
	c.logger.Printf("telemetry stream: last subscriber left, disconnecting")
	c.teardownLocked()
}

// Disconnect cancels any pending reconnect, closes the socket, drops every
// subscription and resets the retry counter. No callback starts after it
// returns.
func (c *Client) Disconnect() {
	c.mu.Lock()
	if n := c.registry.Len(); n > 0 {
		c.registry.Clear()
		c.emitEvent(monitor.NewSubscribersChanged(0))
	}
	c.teardownLocked()
}

// Close is Disconnect for io.Closer-style shutdown.
func (c *Client) Close() error {
	c.Disconnect()
	return nil
}

// teardownLocked is entered with c.mu held and releases it.
func (c *Client) teardownLocked() {
	c.registry.Clear()
	c.policy.Cancel()
	c.policy.Reset()
	c.generation++
	gen := c.generation

	conn, cancel := c.conn, c.cancelDial
	c.conn, c.cancelDial = nil, nil
	if conn != nil {
		c.setStateLocked(StateClosing)
	}
	c.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if conn != nil {
		if err := conn.Close(); err != nil {
			c.logger.Printf("telemetry stream: close: %v", err)
		}
	}

	c.mu.Lock()
	if gen == c.generation {
		c.setStateLocked(StateClosed)
	}
	c.mu.Unlock()
}

// freshCycleLocked drops any pending reconnect and the retry count, then dials.
func (c *Client) freshCycleLocked() {
	if c.state == StateOpen || c.state == StateConnecting {
		return
	}
	c.policy.Cancel()
	c.policy.Reset()
	c.connectLocked()
}

func (c *Client) connectLocked() {
	if c.state == StateOpen || c.state == StateConnecting {
		return
	}
	c.generation++
	gen := c.generation
	ctx, cancel := context.WithCancel(context.Background())
	c.cancelDial = cancel
	c.setStateLocked(StateConnecting)
	go c.run(ctx, cancel, gen)
}

// run dials and then becomes the reader goroutine for the connection, so
// OnConnect always precedes the first OnData.
func (c *Client) run(ctx context.Context, cancel context.CancelFunc, gen uint64) {
	defer cancel()

	c.logger.Printf("telemetry stream: connecting to %s", c.url)
	conn, err := c.dialer.Dial(ctx, c.url)
	if err != nil {
		c.handleError(gen, fmt.Errorf("%w: dial %s: %v", ErrConnection, c.url, err), "dial")
		c.handleClose(gen)
		return
	}

	c.mu.Lock()
	if gen != c.generation {
		c.mu.Unlock()
		_ = conn.Close()
		return
	}
	c.conn = conn
	c.cancelDial = nil
	c.setStateLocked(StateOpen)
	c.policy.Reset()
	subs := c.registry.Snapshot()
	c.mu.Unlock()

	c.logger.Printf("telemetry stream: connected to %s", c.url)
	c.fanOut(gen, subs, "on_connect", func(s Subscription) {
		if s.OnConnect != nil {
			s.OnConnect()
		}
	})

	c.readLoop(conn, gen)
}

func (c *Client) readLoop(conn Conn, gen uint64) {
	for {
		data, err := conn.ReadMessage()
		if err != nil {
			if !c.isCurrent(gen) {
				return
			}
			if !isNormalClose(err) {
				c.handleError(gen, fmt.Errorf("%w: read: %v", ErrConnection, err), "read")
			}
			c.handleClose(gen)
			return
		}
		if !c.isCurrent(gen) {
			return
		}
		c.handleFrame(gen, data)
	}
}

func (c *Client) handleFrame(gen uint64, data []byte) {
	rec, err := c.normalize(data)
	if err != nil {
		c.logger.Printf("telemetry stream: dropping frame: %v", err)
		c.emitEvent(monitor.NewFrameDropped(err))
		return
	}

	subs, ok := c.snapshotIfCurrent(gen)
	if !ok {
		return
	}
	c.emitEvent(monitor.NewFrameReceived(rec.VehicleID, time.Since(rec.Timestamp)))
	c.fanOut(gen, subs, "on_data", func(s Subscription) {
		if s.OnData != nil {
			s.OnData(rec)
		}
	})
}

// handleError surfaces a transport error. Recovery is left to handleClose.
func (c *Client) handleError(gen uint64, err error, where string) {
	subs, ok := c.snapshotIfCurrent(gen)
	if !ok {
		return
	}
	c.logger.Printf("telemetry stream: %v", err)
	c.emitEvent(monitor.NewClientError(err, where, monitor.ErrorSeverityWarning))
	c.fanOut(gen, subs, "on_error", func(s Subscription) {
		if s.OnError != nil {
			s.OnError(err)
		}
	})
}

func (c *Client) handleClose(gen uint64) {
	c.mu.Lock()
	if gen != c.generation {
		c.mu.Unlock()
		return
	}
	c.conn = nil
	c.cancelDial = nil
	c.setStateLocked(StateClosed)
	subs := c.registry.Snapshot()
	c.mu.Unlock()

	c.logger.Printf("telemetry stream: disconnected from %s", c.url)
	c.fanOut(gen, subs, "on_disconnect", func(s Subscription) {
		if s.OnDisconnect != nil {
			s.OnDisconnect()
		}
	})

	c.mu.Lock()
	// A callback may have torn down or restarted the connection.
	if gen != c.generation || c.state != StateClosed || c.registry.Len() == 0 {
		c.mu.Unlock()
		return
	}
	delay, scheduled := c.policy.Schedule(c.reconnectFunc(gen))
	attempts := c.policy.Attempts()
	if scheduled {
		c.logger.Printf("telemetry stream: reconnect attempt %d/%d in %s", attempts, c.policy.MaxAttempts, delay)
		c.emitEvent(monitor.NewReconnectScheduled(attempts, delay))
		c.mu.Unlock()
		return
	}
	subs = c.registry.Snapshot()
	c.mu.Unlock()

	c.logger.Printf("telemetry stream: giving up on %s after %d attempts", c.url, c.policy.MaxAttempts)
	c.emitEvent(monitor.NewReconnectExhausted(attempts))
	c.emitEvent(monitor.NewClientError(ErrReconnectExhausted, "reconnect", monitor.ErrorSeverityError))
	c.fanOut(gen, subs, "on_error", func(s Subscription) {
		if s.OnError != nil {
			s.OnError(ErrReconnectExhausted)
		}
	})
}

func (c *Client) reconnectFunc(gen uint64) func() {
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if gen != c.generation || c.state != StateClosed || c.registry.Len() == 0 {
			return
		}
		c.connectLocked()
	}
}

// fanOut delivers to a snapshot of subscribers in registration order. A
// panicking callback is logged and the rest still receive the event.
func (c *Client) fanOut(gen uint64, subs []Subscription, hook string, call func(Subscription)) {
	for _, sub := range subs {
		if !c.isCurrent(gen) {
			return
		}
		c.deliver(hook, sub, call)
	}
}

func (c *Client) deliver(hook string, sub Subscription, call func(Subscription)) {
	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("subscriber %s callback panicked: %v", hook, r)
			c.logger.Printf("telemetry stream: %v", err)
			c.emitEvent(monitor.NewClientError(err, "subscriber_panic", monitor.ErrorSeverityError))
		}
	}()
	call(sub)
}

func (c *Client) isCurrent(gen uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return gen == c.generation
}

func (c *Client) snapshotIfCurrent(gen uint64) ([]Subscription, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation {
		return nil, false
	}
	return c.registry.Snapshot(), true
}

func (c *Client) setStateLocked(s State) {
	if c.state == s {
		return
	}
	c.state = s
	c.emitEvent(monitor.NewConnectionStateChanged(c.url, s.String()))
}

func (c *Client) emitEvent(ev monitor.Event) {
	if c.emit != nil {
		c.emit(ev)
	}
}

func isNormalClose(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed)
}

// State returns the current lifecycle state.
func (c *Client) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// IsConnected reports whether the socket is open.
func (c *Client) IsConnected() bool {
	return c.State() == StateOpen
}

// SubscriberCount returns the number of live subscriptions.
func (c *Client) SubscriberCount() int {
	return c.registry.Len()
}

func (c *Client) URL() string { return c.url }

// Attempts returns the reconnect attempts made since the last successful open.
func (c *Client) Attempts() int {
	return c.policy.Attempts()
}

// ReconnectPending reports whether a reconnect task is armed.
func (c *Client) ReconnectPending() bool {
	return c.policy.Pending()
}
