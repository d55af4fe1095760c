package store_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"designflow-backend/internal/store"
)

type testDoc struct {
	ID       string `json:"id"`
	ClientID string `json:"clientId"`
	Status   string `json:"status"`
	Notes    string `json:"notes,omitempty"`
}

func TestMemoryStore_CreateAndGet(t *testing.T) {
	m := store.NewMemoryStore()
	ctx := context.Background()

	doc := testDoc{ID: "ORD-AAAA", ClientID: "c1", Status: "Pending"}
	require.NoError(t, m.CreateRecord(ctx, store.CollectionOrders, doc.ID, doc))

	raw, err := m.GetRecord(ctx, store.CollectionOrders, "ORD-AAAA")
	require.NoError(t, err)

	var got testDoc
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, doc, got)
}

func TestMemoryStore_GetMissing(t *testing.T) {
	m := store.NewMemoryStore()
	_, err := m.GetRecord(context.Background(), store.CollectionOrders, "nope")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestMemoryStore_UpdateMergesPartial(t *testing.T) {
	m := store.NewMemoryStore()
	ctx := context.Background()

	doc := testDoc{ID: "ORD-AAAA", ClientID: "c1", Status: "Pending", Notes: "keep me"}
	require.NoError(t, m.CreateRecord(ctx, store.CollectionOrders, doc.ID, doc))

	require.NoError(t, m.UpdateRecord(ctx, store.CollectionOrders, doc.ID, map[string]any{"status": "Reviewing"}))

	raw, err := m.GetRecord(ctx, store.CollectionOrders, doc.ID)
	require.NoError(t, err)
	var got testDoc
	require.NoError(t, json.Unmarshal(raw, &got))

	assert.Equal(t, "Reviewing", got.Status)
	assert.Equal(t, "keep me", got.Notes)
	assert.Equal(t, "c1", got.ClientID)
}

func TestMemoryStore_UpdateMissing(t *testing.T) {
	m := store.NewMemoryStore()
	err := m.UpdateRecord(context.Background(), store.CollectionOrders, "nope", map[string]any{"status": "x"})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestMemoryStore_QueryWithFilter(t *testing.T) {
	m := store.NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, m.CreateRecord(ctx, store.CollectionOrders, "a", testDoc{ID: "a", ClientID: "c1"}))
	require.NoError(t, m.CreateRecord(ctx, store.CollectionOrders, "b", testDoc{ID: "b", ClientID: "c2"}))
	require.NoError(t, m.CreateRecord(ctx, store.CollectionOrders, "c", testDoc{ID: "c", ClientID: "c1"}))

	docs, err := m.QueryRecords(ctx, store.CollectionOrders, store.Filter{"clientId": "c1"})
	require.NoError(t, err)
	assert.Len(t, docs, 2)

	all, err := m.QueryRecords(ctx, store.CollectionOrders, nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestMemoryStore_SubscribeSnapshotThenLive(t *testing.T) {
	m := store.NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, m.CreateRecord(ctx, store.CollectionOrders, "a", testDoc{ID: "a", ClientID: "c1"}))

	var events []store.Event
	unsub := m.Subscribe(store.CollectionOrders, store.Filter{"clientId": "c1"}, func(ev store.Event) {
		events = append(events, ev)
	})
	defer unsub()

	require.Len(t, events, 1)
	assert.True(t, events[0].Snapshot)
	assert.Equal(t, "a", events[0].ID)

	require.NoError(t, m.CreateRecord(ctx, store.CollectionOrders, "b", testDoc{ID: "b", ClientID: "c1"}))
	require.Len(t, events, 2)
	assert.False(t, events[1].Snapshot)
	assert.Equal(t, "b", events[1].ID)

	// Other clients' writes do not reach a filtered subscription.
	require.NoError(t, m.CreateRecord(ctx, store.CollectionOrders, "x", testDoc{ID: "x", ClientID: "c2"}))
	assert.Len(t, events, 2)
}

func TestMemoryStore_SubscribeStopsAfterUnsubscribe(t *testing.T) {
	m := store.NewMemoryStore()
	ctx := context.Background()

	var count int
	unsub := m.Subscribe(store.CollectionOrders, nil, func(store.Event) { count++ })

	require.NoError(t, m.CreateRecord(ctx, store.CollectionOrders, "a", testDoc{ID: "a"}))
	assert.Equal(t, 1, count)

	unsub()
	require.NoError(t, m.CreateRecord(ctx, store.CollectionOrders, "b", testDoc{ID: "b"}))
	assert.Equal(t, 1, count)
}

func TestMemoryStore_SubscribeRecord(t *testing.T) {
	m := store.NewMemoryStore()
	ctx := context.Background()

	var events []store.Event
	unsub := m.SubscribeRecord(store.CollectionOrders, "a", func(ev store.Event) {
		events = append(events, ev)
	})
	defer unsub()

	// Missing record yields no snapshot.
	assert.Empty(t, events)

	require.NoError(t, m.CreateRecord(ctx, store.CollectionOrders, "a", testDoc{ID: "a"}))
	require.NoError(t, m.CreateRecord(ctx, store.CollectionOrders, "other", testDoc{ID: "other"}))
	require.NoError(t, m.DeleteRecord(ctx, store.CollectionOrders, "a"))

	require.Len(t, events, 2)
	assert.Equal(t, "a", events[0].ID)
	assert.True(t, events[1].Deleted)
}
