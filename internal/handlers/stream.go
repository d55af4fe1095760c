package handlers

import (
	"io"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"designflow-backend/internal/middleware"
	"designflow-backend/internal/models"
	"designflow-backend/internal/realtime"
)

// StreamHandler exposes the live views over server-sent events. Each
// connection owns one synchronizer watch; the watch is torn down when
// the client disconnects.
type StreamHandler struct {
	sync *realtime.Synchronizer
	log  *logrus.Logger
}

func NewStreamHandler(sync *realtime.Synchronizer, log *logrus.Logger) *StreamHandler {
	return &StreamHandler{sync: sync, log: log}
}

// StreamOrder pushes one order's current state on every change. A
// missing order streams null rather than closing with an error, so the
// tracking page can wait for it to appear.
// GET /orders/:order_id/stream
func (h *StreamHandler) StreamOrder(c *gin.Context) {
	userID := c.GetString(middleware.UserIDKey)
	isAdmin := c.GetString(middleware.RoleKey) == middleware.RoleAdmin
	orderID := c.Param("order_id")

	events := newEventBuffer()
	unsub := h.sync.WatchOrder(orderID, func(o *models.Order) {
		if o != nil && o.ClientID != userID && !isAdmin {
			// Hide other clients' orders the same way a missing one hides.
			o = nil
		}
		events.push(o)
	})
	defer unsub()

	h.stream(c, "order", events)
}

// StreamAllOrders pushes the admin dashboard list on every change.
// GET /admin/orders/stream
func (h *StreamHandler) StreamAllOrders(c *gin.Context) {
	q := realtime.Query{
		Search:  c.Query("search"),
		Status:  models.Status(c.Query("status")),
		SortAsc: c.Query("sort") == "asc",
	}
	if q.Status != "" && !q.Status.Valid() {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "unknown status"})
		return
	}

	events := newEventBuffer()
	unsub := h.sync.WatchAll(q, func(list []models.Order) {
		events.push(list)
	})
	defer unsub()

	h.stream(c, "orders", events)
}

// StreamMyOrders pushes the caller's order list on every change.
// GET /orders/stream
func (h *StreamHandler) StreamMyOrders(c *gin.Context) {
	userID := c.GetString(middleware.UserIDKey)

	events := newEventBuffer()
	unsub := h.sync.WatchByClient(userID, func(list []models.Order) {
		events.push(list)
	})
	defer unsub()

	h.stream(c, "orders", events)
}

func (h *StreamHandler) stream(c *gin.Context, event string, events *eventBuffer) {
	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case <-c.Request.Context().Done():
			return false
		case v := <-events.ch:
			c.SSEvent(event, v)
			return true
		}
	})
}

// eventBuffer is a one-slot mailbox: a slow consumer sees the latest
// state, never a backlog of stale ones.
type eventBuffer struct {
	mu sync.Mutex
	ch chan any
}

func newEventBuffer() *eventBuffer {
	return &eventBuffer{ch: make(chan any, 1)}
}

// push replaces whatever is waiting in the slot. The mutex serializes
// pushers, so after the drain the send cannot block: only the consumer
// receives from the channel.
func (b *eventBuffer) push(v any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	select {
	case <-b.ch:
	default:
	}
	b.ch <- v
}
