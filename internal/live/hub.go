package live

import "sync"

// Hub fans live events out to SSE subscribers.
// subs maps booking id to the set of subscriber channels.
type Hub struct {
	mu   sync.RWMutex
	subs map[int32]map[chan Event]struct{}
}

func NewHub() *Hub {
	return &Hub{
		subs: make(map[int32]map[chan Event]struct{}),
	}
}

// Subscribe registers a listener for one booking's events. The returned
// cancel func must be called when the client disconnects. The channel is
// buffered; a subscriber that falls behind drops events rather than
// blocking the broadcaster.
func (h *Hub) Subscribe(bookingID int32) (<-chan Event, func()) {
	ch := make(chan Event, 16)

	h.mu.Lock()
	if _, ok := h.subs[bookingID]; !ok {
		h.subs[bookingID] = make(map[chan Event]struct{})
	}
	h.subs[bookingID][ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if set, ok := h.subs[bookingID]; ok {
			delete(set, ch)
			if len(set) == 0 {
				delete(h.subs, bookingID)
			}
		}
		h.mu.Unlock()
	}
	return ch, cancel
}

// Broadcast delivers an event to every subscriber of its booking.
func (h *Hub) Broadcast(ev Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch := range h.subs[ev.BookingID] {
		select {
		case ch <- ev:
		default:
		}
	}
}

// SubscriberCount reports how many listeners a booking currently has.
func (h *Hub) SubscriberCount(bookingID int32) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[bookingID])
}
