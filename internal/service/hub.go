package service

import "sync"

const defaultHubBuffer = 32

// Hub fans frames out to browser subscribers. A subscriber that falls behind
// loses frames instead of stalling the status merge.
type Hub struct {
	mu     sync.RWMutex
	subs   map[chan Frame]struct{}
	buffer int
}

func NewHub(buffer int) *Hub {
	if buffer <= 0 {
		buffer = defaultHubBuffer
	}
	return &Hub{subs: make(map[chan Frame]struct{}), buffer: buffer}
}

// Subscribe registers a receiver. The returned func unsubscribes and closes the channel.
func (h *Hub) Subscribe() (<-chan Frame, func()) {
	ch := make(chan Frame, h.buffer)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, ch)
			h.mu.Unlock()
			close(ch)
		})
	}
}

// Publish never blocks.
func (h *Hub) Publish(f Frame) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch := range h.subs {
		select {
		case ch <- f:
		default:
		}
	}
}

// Len reports the number of live subscribers.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
