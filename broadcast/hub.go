package broadcast

import (
	"sync"

	"github.com/google/uuid"

	"github.com/lixenwraith/scrolldeck/parameter"
	"github.com/lixenwraith/scrolldeck/session"
)

// Hub fans session snapshots out to stream subscribers
type Hub struct {
	mu     sync.Mutex
	subs   map[string]chan session.State
	buffer int
	closed bool
}

// NewHub creates an empty hub, buffer <= 0 uses the default
func NewHub(buffer int) *Hub {
	if buffer <= 0 {
		buffer = parameter.SubscriberBuffer
	}
	return &Hub{
		subs:   make(map[string]chan session.State),
		buffer: buffer,
	}
}

// Subscribe registers a new subscriber and returns its id and channel
// The channel is closed on Unsubscribe or Close
func (h *Hub) Subscribe() (string, <-chan session.State) {
	id := uuid.NewString()
	ch := make(chan session.State, h.buffer)

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		close(ch)
		return id, ch
	}
	h.subs[id] = ch
	return id, ch
}

// Unsubscribe removes a subscriber and closes its channel
func (h *Hub) Unsubscribe(id string) {
	h.mu.Lock()
	if ch, ok := h.subs[id]; ok {
		delete(h.subs, id)
		close(ch)
	}
	h.mu.Unlock()
}

// Publish delivers st to every subscriber without blocking
func (h *Hub) Publish(st session.State) {
	h.mu.Lock()
	for _, ch := range h.subs {
		select {
		case ch <- st:
		default:
			// Lagging subscriber, the next snapshot catches it up
		}
	}
	h.mu.Unlock()
}

// Len returns the subscriber count
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Close drops every subscriber, later subscriptions get a closed channel
func (h *Hub) Close() {
	h.mu.Lock()
	for id, ch := range h.subs {
		delete(h.subs, id)
		close(ch)
	}
	h.closed = true
	h.mu.Unlock()
}
