package statussync

import "time"

// backoff tracks the reconnect delay: it grows by factor on every close and
// resets to initial on every successful open.
type backoff struct {
	initial time.Duration
	max     time.Duration
	factor  float64
	current time.Duration
}

func newBackoff(o Options) *backoff {
	return &backoff{
		initial: o.InitialRetryDelay,
		max:     o.MaxRetryDelay,
		factor:  o.BackoffFactor,
		current: o.InitialRetryDelay,
	}
}

// Next returns the delay to wait now and advances to the following one.
func (b *backoff) Next() time.Duration {
	d := b.current
	next := time.Duration(float64(b.current) * b.factor)
	if next > b.max || next < b.current {
		next = b.max
	}
	b.current = next
	return d
}

// Reset goes back to the initial delay.
func (b *backoff) Reset() {
	b.current = b.initial
}

// Current is the delay the next close will wait.
func (b *backoff) Current() time.Duration {
	return b.current
}
