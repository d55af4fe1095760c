// Package realtime projects the order collection into live client views.
// Each watch owns a subscription on the document store, folds change
// events into a local replica and re-emits the projected view after
// every event.
package realtime

import (
	"encoding/json"
	"sort"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"designflow-backend/internal/models"
	"designflow-backend/internal/store"
)

// Query narrows and orders the admin's all-orders view. Search matches
// case-insensitively on client name or order id; Status filters exactly
// when set.
type Query struct {
	Search  string
	Status  models.Status
	SortAsc bool
}

type Synchronizer struct {
	docs store.DocumentStore
	log  *logrus.Logger
}

func NewSynchronizer(docs store.DocumentStore, log *logrus.Logger) *Synchronizer {
	return &Synchronizer{docs: docs, log: log}
}

// WatchOrder streams one order by id. A missing or deleted order is
// reported as nil, not as an error.
func (s *Synchronizer) WatchOrder(id string, fn func(*models.Order)) store.Unsubscribe {
	// Live events arrive on the publisher's goroutine; the mutex keeps
	// the initial not-found emit ordered before any of them.
	var mu sync.Mutex
	delivered := false

	unsub := s.docs.SubscribeRecord(store.CollectionOrders, id, func(ev store.Event) {
		if ev.Deleted {
			mu.Lock()
			delivered = true
			fn(nil)
			mu.Unlock()
			return
		}
		var o models.Order
		if err := json.Unmarshal(ev.Doc, &o); err != nil {
			s.log.WithField("order_id", id).WithError(err).Error("Failed to decode order event")
			return
		}
		mu.Lock()
		delivered = true
		fn(&o)
		mu.Unlock()
	})

	// No snapshot event means the order does not exist yet.
	mu.Lock()
	if !delivered {
		fn(nil)
	}
	delivered = true
	mu.Unlock()
	return unsub
}

// WatchAll streams the full order list for the admin dashboard, filtered
// and sorted per the query. Asset-purged orders stay visible; the purge
// flag travels on the order itself.
func (s *Synchronizer) WatchAll(q Query, fn func([]models.Order)) store.Unsubscribe {
	return s.watch(nil, func(orders []models.Order) {
		fn(Project(orders, q))
	})
}

// WatchByClient streams one client's orders, newest first.
func (s *Synchronizer) WatchByClient(clientID string, fn func([]models.Order)) store.Unsubscribe {
	return s.watch(store.Filter{"clientId": clientID}, func(orders []models.Order) {
		fn(Project(orders, Query{}))
	})
}

// watch folds events into a replica keyed by order id and hands the
// replica's values to emit after each event. Snapshot events arrive
// before the subscription returns, so the first emit carries current
// state.
func (s *Synchronizer) watch(filter store.Filter, emit func([]models.Order)) store.Unsubscribe {
	var mu sync.Mutex
	replica := make(map[string]models.Order)

	return s.docs.Subscribe(store.CollectionOrders, filter, func(ev store.Event) {
		mu.Lock()
		if ev.Deleted {
			delete(replica, ev.ID)
		} else {
			var o models.Order
			if err := json.Unmarshal(ev.Doc, &o); err != nil {
				mu.Unlock()
				s.log.WithField("order_id", ev.ID).WithError(err).Error("Failed to decode order event")
				return
			}
			replica[ev.ID] = o
		}
		orders := make([]models.Order, 0, len(replica))
		for _, o := range replica {
			orders = append(orders, o)
		}
		mu.Unlock()
		emit(orders)
	})
}

// Project applies the query to a materialized order list.
func Project(orders []models.Order, q Query) []models.Order {
	out := make([]models.Order, 0, len(orders))
	search := strings.ToLower(strings.TrimSpace(q.Search))
	for _, o := range orders {
		if q.Status != "" && o.Status != q.Status {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(o.ClientName), search) &&
			!strings.Contains(strings.ToLower(o.ID), search) {
			continue
		}
		out = append(out, o)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if q.SortAsc {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}
