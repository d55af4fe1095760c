package store

import (
	"encoding/json"
	"sync"
)

// hub fans document change events out to subscribers. Both store
// implementations publish into one; it is what makes Subscribe live.
type hub struct {
	mu     sync.RWMutex
	nextID int
	subs   map[int]*subscriber
}

type subscriber struct {
	collection string
	filter     Filter
	id         string // non-empty for single-record subscriptions
	fn         func(Event)
}

func newHub() *hub {
	return &hub{subs: make(map[int]*subscriber)}
}

func (h *hub) add(s *subscriber) Unsubscribe {
	h.mu.Lock()
	id := h.nextID
	h.nextID++
	h.subs[id] = s
	h.mu.Unlock()

	return func() {
		h.mu.Lock()
		delete(h.subs, id)
		h.mu.Unlock()
	}
}

// publish delivers an event to every matching subscriber. Callbacks run
// on the publisher's goroutine; subscribers must not block.
func (h *hub) publish(ev Event) {
	h.mu.RLock()
	targets := make([]*subscriber, 0, len(h.subs))
	for _, s := range h.subs {
		if s.collection != ev.Collection {
			continue
		}
		if s.id != "" {
			if s.id == ev.ID {
				targets = append(targets, s)
			}
			continue
		}
		if len(s.filter) == 0 || ev.Deleted {
			targets = append(targets, s)
			continue
		}
		var doc map[string]any
		if err := json.Unmarshal(ev.Doc, &doc); err == nil && s.filter.Matches(doc) {
			targets = append(targets, s)
		}
	}
	h.mu.RUnlock()

	for _, s := range targets {
		s.fn(ev)
	}
}
