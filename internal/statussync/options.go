package statussync

import "time"

// Reconnect defaults; a zero field in Options falls back to these.
const (
	DefaultInitialRetryDelay = 500 * time.Millisecond
	DefaultMaxRetryDelay     = 8 * time.Second
	DefaultBackoffFactor     = 2.0
	DefaultJitter            = 200 * time.Millisecond
	DefaultPollInterval      = 1200 * time.Millisecond
)

// Options tunes reconnection.
type Options struct {
	InitialRetryDelay time.Duration
	MaxRetryDelay     time.Duration
	BackoffFactor     float64
	// Jitter bounds the random delay added to every retry; negative disables it.
	Jitter            time.Duration

	// Dialer opens the live channel; nil uses gorilla/websocket.
	Dialer Dialer
}

func (o Options) withDefaults() Options {
	if o.InitialRetryDelay <= 0 {
		o.InitialRetryDelay = DefaultInitialRetryDelay
	}
	if o.MaxRetryDelay <= 0 {
		o.MaxRetryDelay = DefaultMaxRetryDelay
	}
	if o.MaxRetryDelay < o.InitialRetryDelay {
		o.MaxRetryDelay = o.InitialRetryDelay
	}
	if o.BackoffFactor < 1 {
		o.BackoffFactor = DefaultBackoffFactor
	}
	switch {
	case o.Jitter == 0:
		o.Jitter = DefaultJitter
	case o.Jitter < 0:
		o.Jitter = 0
	}
	if o.Dialer == nil {
		o.Dialer = NewWebsocketDialer()
	}
	return o
}
