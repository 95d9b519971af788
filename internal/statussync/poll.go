package statussync

import (
	"context"
	"errors"
	"sync"
	"time"

	"pc_restarter/internal/logger"
)

var ErrWatcherStopped = errors.New("poll watcher already stopped")

// PollWatcher fetches on a fixed interval until a terminal result is seen or
// it is stopped. Failed fetches are ignored and retried on the next tick.
type PollWatcher[T any] struct {
	interval time.Duration
	fetch    func(ctx context.Context) (T, error)
	terminal func(T) bool
	onResult func(T)
	log      *logger.Logger

	mu       sync.Mutex
	started  bool
	stopped  bool
	cancel   context.CancelFunc
	done     chan struct{}
	doneOnce sync.Once
}

// NewPollWatcher builds a watcher; a non-positive interval uses DefaultPollInterval.
func NewPollWatcher[T any](
	interval time.Duration,
	fetch func(ctx context.Context) (T, error),
	terminal func(T) bool,
	onResult func(T),
	log *logger.Logger,
) *PollWatcher[T] {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &PollWatcher[T]{
		interval: interval,
		fetch:    fetch,
		terminal: terminal,
		onResult: onResult,
		log:      logger.OrNop(log),
		done:     make(chan struct{}),
	}
}

// Start launches the polling goroutine.
func (w *PollWatcher[T]) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	switch {
	case w.stopped:
		return ErrWatcherStopped
	case w.started:
		return ErrAlreadyRunning
	}
	ctx, cancel := context.WithCancel(ctx)
	w.started = true
	w.cancel = cancel
	go w.loop(ctx, cancel)
	return nil
}

// Stop cancels polling. Safe to call more than once and before Start.
func (w *PollWatcher[T]) Stop() {
	w.mu.Lock()
	w.stopped = true
	cancel, started := w.cancel, w.started
	w.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if !started {
		w.finish()
	}
}

// Done is closed once the watcher no longer polls.
func (w *PollWatcher[T]) Done() <-chan struct{} {
	return w.done
}

func (w *PollWatcher[T]) finish() {
	w.doneOnce.Do(func() { close(w.done) })
}

func (w *PollWatcher[T]) loop(ctx context.Context, cancel context.CancelFunc) {
	defer w.finish()
	defer cancel()

	t := time.NewTicker(w.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			res, err := w.fetch(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				w.log.Debugw("poll_failed", "err", err)
				continue
			}
			if w.onResult != nil {
				w.onResult(res)
			}
			if w.terminal != nil && w.terminal(res) {
				w.mu.Lock()
				w.stopped = true
				w.mu.Unlock()
				return
			}
		}
	}
}
