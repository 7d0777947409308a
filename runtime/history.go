package runtime

import (
	"chat-relay/contract"
	"chat-relay/domain"
	"sync"

	"github.com/samber/lo"
)

var _ contract.IHistory = (*History)(nil)

// History is the append-only log of dispatched events.
// With a capacity it behaves as a ring buffer and evicts the oldest event,
// otherwise it grows for the lifetime of the process.
type History struct {
	mu       sync.Mutex
	events   []domain.ChatEvent
	capacity int
	start    int
}

// NewHistory builds an unbounded log when capacity <= 0.
func NewHistory(capacity int) *History {
	if capacity < 0 {
		capacity = 0
	}
	return &History{capacity: capacity, events: make([]domain.ChatEvent, 0, capacity)}
}

func (h *History) Append(evt domain.ChatEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.capacity == 0 || len(h.events) < h.capacity {
		h.events = append(h.events, evt)
		return
	}
	h.events[h.start] = evt
	h.start = (h.start + 1) % h.capacity
}

// Snapshot returns a point-in-time copy in insertion order.
func (h *History) Snapshot() []domain.ChatEvent {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]domain.ChatEvent, 0, len(h.events))
	out = append(out, h.events[h.start:]...)
	out = append(out, h.events[:h.start]...)
	return out
}

func (h *History) SnapshotOf(topic domain.TopicName) []domain.ChatEvent {
	return lo.Filter(h.Snapshot(), func(evt domain.ChatEvent, _ int) bool {
		return evt.Topic == topic
	})
}

func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.events)
}
