// Package hold turns a sustained press into a single confirmed action.
package hold

import (
	"sync"
	"time"
)

// DefaultTick is how often progress is reported while holding.
const DefaultTick = 50 * time.Millisecond

// State of a gesture.
type State string

const (
	StateIdle    State = "IDLE"
	StateHolding State = "HOLDING"
)

// Option configures a Gesture.
type Option func(*Gesture)

// WithTick sets the progress resolution.
func WithTick(d time.Duration) Option {
	return func(g *Gesture) {
		if d > 0 {
			g.tick = d
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(g *Gesture) {
		if now != nil {
			g.now = now
		}
	}
}

// Gesture is one bound button.
// Callbacks run with the gesture locked and must not call back into it.
type Gesture struct {
	duration   time.Duration
	tick       time.Duration
	onProgress func(fraction float64)
	onConfirm  func()
	now        func() time.Time

	mu    sync.Mutex
	state State
	start time.Time
	stop  chan struct{} // closes the current tick loop
}

// Bind creates a gesture that confirms after duration of continuous holding.
func Bind(duration time.Duration, onProgress func(float64), onConfirm func(), opts ...Option) *Gesture {
	g := &Gesture{
		duration:   duration,
		tick:       DefaultTick,
		onProgress: onProgress,
		onConfirm:  onConfirm,
		now:        time.Now,
		state:      StateIdle,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Press starts a hold. Pressing while already holding restarts from zero.
func (g *Gesture) Press() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.stopTicker()
	g.state = StateHolding
	g.start = g.now()
	g.stop = make(chan struct{})
	g.progress(0)

	if g.duration <= 0 {
		g.confirm()
		return
	}
	go g.tickLoop(g.stop)
}

// Release ends a hold. A hold that already lasted the full duration still
// confirms, so tick resolution never loses a completed hold.
func (g *Gesture) Release() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != StateHolding {
		return
	}
	if g.fraction() >= 1 {
		g.confirm()
		return
	}
	g.reset()
}

// Cancel aborts a hold without ever confirming (pointer left the button, touch cancelled).
func (g *Gesture) Cancel() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != StateHolding {
		return
	}
	g.reset()
}

// Unbind stops any running tick loop; the gesture returns to Idle silently.
func (g *Gesture) Unbind() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.stopTicker()
	g.state = StateIdle
}

// State reports whether a hold is in progress.
func (g *Gesture) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Duration is the hold length required to confirm.
func (g *Gesture) Duration() time.Duration {
	return g.duration
}

func (g *Gesture) tickLoop(stop chan struct{}) {
	t := time.NewTicker(g.tick)
	defer t.Stop()
	for {
		select {
		case <-stop:
			return
		case <-t.C:
			if g.onTick(stop) {
				return
			}
		}
	}
}

// onTick reports progress and confirms at 1. Returns true when the loop must end.
func (g *Gesture) onTick(stop chan struct{}) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	// a newer Press or a Release replaced this loop
	if g.stop != stop || g.state != StateHolding {
		return true
	}
	f := g.fraction()
	if f >= 1 {
		g.confirm()
		return true
	}
	g.progress(f)
	return false
}

func (g *Gesture) fraction() float64 {
	if g.duration <= 0 {
		return 1
	}
	f := float64(g.now().Sub(g.start)) / float64(g.duration)
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	}
	return f
}

// confirm fires once per completed hold and returns to Idle.
func (g *Gesture) confirm() {
	g.progress(1)
	g.stopTicker()
	g.state = StateIdle
	if g.onConfirm != nil {
		g.onConfirm()
	}
	g.progress(0)
}

func (g *Gesture) reset() {
	g.stopTicker()
	g.state = StateIdle
	g.progress(0)
}

func (g *Gesture) stopTicker() {
	if g.stop != nil {
		close(g.stop)
		g.stop = nil
	}
}

func (g *Gesture) progress(f float64) {
	if g.onProgress != nil {
		g.onProgress(f)
	}
}
