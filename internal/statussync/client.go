// Package statussync keeps a live status channel to the device open, merges
// every pushed frame into a StatusModel and reconnects with backoff when the
// channel drops.
package statussync

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"pc_restarter/internal/logger"
	"pc_restarter/internal/models"

	"github.com/gorilla/websocket"
)

var (
	ErrAlreadyRunning = errors.New("status sync client already running")
	ErrClosed         = errors.New("status sync client closed")
)

// ConnectionState is the lifecycle of the live channel.
type ConnectionState string

const (
	StateConnecting ConnectionState = "CONNECTING"
	StateOpen       ConnectionState = "OPEN"
	StateClosed     ConnectionState = "CLOSED"
)

// Client owns one live channel and the model it feeds.
type Client struct {
	resolve  EndpointResolver
	onUpdate func(models.StatusModel)
	onLog    func(string)
	opts     Options
	log      *logger.Logger

	// swapped in tests
	jitter func(max time.Duration) time.Duration
	wait   func(ctx context.Context, d time.Duration) bool
	now    func() time.Time

	// mergeMu serializes merges and callbacks in arrival order.
	mergeMu sync.Mutex
	modelMu sync.RWMutex
	model   models.StatusModel

	mu      sync.Mutex
	state   ConnectionState
	backoff *backoff
	running bool
	closed  bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// New builds a client; nothing is dialed until Run.
// onUpdate gets the full merged model after every status frame; onLog gets
// the message of every frame typed "log". Both run on the reading goroutine
// and must not block for long.
func New(resolve EndpointResolver, onUpdate func(models.StatusModel), onLog func(string), opts Options, log *logger.Logger) *Client {
	opts = opts.withDefaults()
	return &Client{
		resolve:  resolve,
		onUpdate: onUpdate,
		onLog:    onLog,
		opts:     opts,
		log:      logger.OrNop(log),
		jitter:   randomJitter,
		wait:     sleepContext,
		now:      time.Now,
		model:    models.NewStatusModel(),
		state:    StateClosed,
		backoff:  newBackoff(opts),
	}
}

// Run connects and keeps reconnecting until ctx is canceled or Close is called.
// Transport failures never surface here; they only schedule the next attempt.
func (c *Client) Run(ctx context.Context) error {
	c.mu.Lock()
	switch {
	case c.closed:
		c.mu.Unlock()
		return ErrClosed
	case c.running:
		c.mu.Unlock()
		return ErrAlreadyRunning
	}
	ctx, cancel := context.WithCancel(ctx)
	c.running = true
	c.cancel = cancel
	c.done = make(chan struct{})
	done := c.done
	c.mu.Unlock()

	defer func() {
		cancel()
		c.mu.Lock()
		c.running = false
		c.state = StateClosed
		c.mu.Unlock()
		close(done)
	}()

	for {
		if ctx.Err() != nil {
			return nil
		}
		c.connectAndRead(ctx)
		if ctx.Err() != nil {
			return nil
		}

		c.mu.Lock()
		delay := c.backoff.Next()
		c.mu.Unlock()
		delay += c.jitter(c.opts.Jitter)

		c.log.Infow("ws_reconnect_scheduled", "delay", delay)
		if !c.wait(ctx, delay) {
			return nil
		}
	}
}

// Close stops the reconnect loop, closes the live channel and waits for Run to return.
func (c *Client) Close() {
	c.mu.Lock()
	c.closed = true
	cancel, done := c.cancel, c.done
	c.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
}

// State reports the channel lifecycle.
func (c *Client) State() ConnectionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// RetryDelay is the base delay the next close will wait (jitter excluded).
func (c *Client) RetryDelay() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.backoff.Current()
}

// Snapshot returns a copy of the merged model. Safe to call from callbacks.
func (c *Client) Snapshot() models.StatusModel {
	c.modelMu.RLock()
	defer c.modelMu.RUnlock()
	return c.model
}

// Ingest dispatches one text frame. Malformed frames are dropped.
func (c *Client) Ingest(frame []byte) {
	patch, err := decodeFrame(frame)
	if err != nil {
		c.log.Debugw("frame_dropped", "err", err)
		return
	}
	if patch.IsLog() {
		c.forwardLog(patch.Message)
		return
	}
	c.ApplyPatch(patch)
}

// ApplyPatch merges a patch obtained outside the channel (HTTP polling)
// through the same ordered merge path.
func (c *Client) ApplyPatch(p models.StatusPatch) {
	c.mergeMu.Lock()
	defer c.mergeMu.Unlock()

	c.modelMu.Lock()
	c.model.Apply(p)
	c.model.UpdatedAt = c.now().UTC()
	snap := c.model
	c.modelMu.Unlock()

	if c.onUpdate != nil {
		c.onUpdate(snap)
	}
}

func (c *Client) forwardLog(msg *string) {
	if msg == nil {
		c.log.Debugw("frame_dropped", "err", "log frame without message")
		return
	}
	c.mergeMu.Lock()
	defer c.mergeMu.Unlock()
	if c.onLog != nil {
		c.onLog(*msg)
	}
}

func (c *Client) setState(s ConnectionState) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}

// connectAndRead runs one connection cycle and returns when it is over.
func (c *Client) connectAndRead(ctx context.Context) {
	url, err := c.resolve()
	if err != nil {
		c.log.Errorw("ws_resolve_failed", "err", err)
		c.setState(StateClosed)
		return
	}

	c.setState(StateConnecting)
	conn, err := c.opts.Dialer.Dial(ctx, url)
	if err != nil {
		c.log.Infow("ws_dial_failed", "url", url, "err", err)
		c.setState(StateClosed)
		return
	}

	c.mu.Lock()
	c.state = StateOpen
	c.backoff.Reset()
	c.mu.Unlock()
	c.log.Infow("ws_connected", "url", url)

	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()

	c.readLoop(conn)

	_ = conn.Close()
	c.setState(StateClosed)
}

func (c *Client) readLoop(conn Conn) {
	for {
		mt, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.log.Infow("ws_read_closed", "err", err)
			} else {
				c.log.Debugw("ws_read_closed", "err", err)
			}
			return
		}
		if mt != websocket.TextMessage {
			c.log.Debugw("frame_dropped", "err", "non-text frame", "type", mt)
			continue
		}
		c.Ingest(data)
	}
}

func randomJitter(max time.Duration) time.Duration {
	if max <= 0 {
		return 0
	}
	return time.Duration(rand.Int63n(int64(max) + 1))
}

func sleepContext(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
