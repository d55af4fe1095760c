package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// MemoryStore is an in-process DocumentStore. It backs tests and local
// development; semantics match the Postgres implementation, including
// top-level partial merges and snapshot-then-live subscriptions.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]map[string]json.RawMessage // collection -> id -> doc
	hub  *hub
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string]map[string]json.RawMessage),
		hub:  newHub(),
	}
}

func (m *MemoryStore) CreateRecord(_ context.Context, collection, id string, doc any) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}

	m.mu.Lock()
	if m.data[collection] == nil {
		m.data[collection] = make(map[string]json.RawMessage)
	}
	m.data[collection][id] = raw
	m.mu.Unlock()

	m.hub.publish(Event{Collection: collection, ID: id, Doc: raw})
	return nil
}

func (m *MemoryStore) UpdateRecord(_ context.Context, collection, id string, partial map[string]any) error {
	m.mu.Lock()
	existing, ok := m.data[collection][id]
	if !ok {
		m.mu.Unlock()
		return ErrNotFound
	}

	var doc map[string]any
	if err := json.Unmarshal(existing, &doc); err != nil {
		m.mu.Unlock()
		return fmt.Errorf("failed to decode stored document: %w", err)
	}
	for k, v := range partial {
		doc[k] = v
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		m.mu.Unlock()
		return fmt.Errorf("failed to encode document: %w", err)
	}
	m.data[collection][id] = raw
	m.mu.Unlock()

	m.hub.publish(Event{Collection: collection, ID: id, Doc: raw})
	return nil
}

func (m *MemoryStore) DeleteRecord(_ context.Context, collection, id string) error {
	m.mu.Lock()
	_, ok := m.data[collection][id]
	delete(m.data[collection], id)
	m.mu.Unlock()

	if !ok {
		return ErrNotFound
	}
	m.hub.publish(Event{Collection: collection, ID: id, Deleted: true})
	return nil
}

func (m *MemoryStore) GetRecord(_ context.Context, collection, id string) (json.RawMessage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	raw, ok := m.data[collection][id]
	if !ok {
		return nil, ErrNotFound
	}
	return raw, nil
}

func (m *MemoryStore) QueryRecords(_ context.Context, collection string, filter Filter) ([]json.RawMessage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []json.RawMessage
	for _, raw := range m.data[collection] {
		if len(filter) > 0 {
			var doc map[string]any
			if err := json.Unmarshal(raw, &doc); err != nil || !filter.Matches(doc) {
				continue
			}
		}
		out = append(out, raw)
	}
	return out, nil
}

func (m *MemoryStore) Subscribe(collection string, filter Filter, fn func(Event)) Unsubscribe {
	unsub := m.hub.add(&subscriber{collection: collection, filter: filter, fn: fn})

	snapshot, _ := m.QueryRecords(context.Background(), collection, filter)
	for _, raw := range snapshot {
		var doc struct {
			ID string `json:"id"`
		}
		_ = json.Unmarshal(raw, &doc)
		fn(Event{Collection: collection, ID: doc.ID, Doc: raw, Snapshot: true})
	}
	return unsub
}

func (m *MemoryStore) SubscribeRecord(collection, id string, fn func(Event)) Unsubscribe {
	unsub := m.hub.add(&subscriber{collection: collection, id: id, fn: fn})

	if raw, err := m.GetRecord(context.Background(), collection, id); err == nil {
		fn(Event{Collection: collection, ID: id, Doc: raw, Snapshot: true})
	}
	return unsub
}
