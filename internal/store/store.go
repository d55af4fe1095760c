// Package store defines the persistence gateway: a document store with
// live change subscriptions and a blob store for binary assets. Any
// document-store/object-store pair satisfying these interfaces works;
// the shipped implementations are Postgres (JSONB documents) and
// Supabase Storage, with an in-memory store for tests.
package store

import (
	"context"
	"encoding/json"
	"errors"
)

// Collection names used by the application.
const (
	CollectionOrders = "orders"
	CollectionUsers  = "users"
)

var ErrNotFound = errors.New("record not found")

// Filter matches documents by equality on top-level fields. A nil or
// empty filter matches everything.
type Filter map[string]any

// Matches evaluates the filter against a decoded document.
func (f Filter) Matches(doc map[string]any) bool {
	for k, want := range f {
		got, ok := doc[k]
		if !ok {
			return false
		}
		wb, _ := json.Marshal(want)
		gb, _ := json.Marshal(got)
		if string(wb) != string(gb) {
			return false
		}
	}
	return true
}

// Event is one change pushed to subscribers. Snapshot events replay the
// current state on (re)subscription; live events follow writes. Deleted
// marks record removal.
type Event struct {
	Collection string
	ID         string
	Doc        json.RawMessage
	Deleted    bool
	Snapshot   bool
}

// Unsubscribe tears down a subscription. Every Subscribe call must be
// paired with a call to its Unsubscribe when the owning view exits.
type Unsubscribe func()

// DocumentStore is the abstract document half of the persistence gateway.
// Writes are last-write-wins at the field level: UpdateRecord merges the
// partial into the stored document with no version check.
type DocumentStore interface {
	CreateRecord(ctx context.Context, collection, id string, doc any) error
	UpdateRecord(ctx context.Context, collection, id string, partial map[string]any) error
	DeleteRecord(ctx context.Context, collection, id string) error
	GetRecord(ctx context.Context, collection, id string) (json.RawMessage, error)
	QueryRecords(ctx context.Context, collection string, filter Filter) ([]json.RawMessage, error)

	// Subscribe delivers the full matching state as snapshot events,
	// then incremental events for every subsequent write. Delivery
	// order across concurrent writers is not guaranteed beyond
	// last-write-wins.
	Subscribe(collection string, filter Filter, fn func(Event)) Unsubscribe

	// SubscribeRecord is Subscribe scoped to a single document id.
	// A missing record yields no snapshot event, not an error.
	SubscribeRecord(collection, id string, fn func(Event)) Unsubscribe
}

// BlobStore is the abstract object-storage half of the gateway. Uploads
// return the public URL of the stored object.
type BlobStore interface {
	Upload(ctx context.Context, data []byte, path, contentType string) (string, error)
	UploadWithProgress(ctx context.Context, data []byte, path, contentType string, onProgress func(float64)) (string, error)
	DeleteByURL(ctx context.Context, url string) error
}
