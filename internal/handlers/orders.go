package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"designflow-backend/internal/intake"
	"designflow-backend/internal/middleware"
	"designflow-backend/internal/models"
	"designflow-backend/internal/notify"
	"designflow-backend/internal/orders"
	"designflow-backend/internal/store"
	"designflow-backend/internal/supabase"
)

// OrdersHandler owns the client-facing order endpoints: submission,
// lookup and the draft approve/revise/cancel verbs.
type OrdersHandler struct {
	docs     store.DocumentStore
	builder  *orders.Builder
	notifier *notify.Notifier
	rt       *supabase.RealtimeClient
	log      *logrus.Logger
}

func NewOrdersHandler(docs store.DocumentStore, builder *orders.Builder, notifier *notify.Notifier, rt *supabase.RealtimeClient, log *logrus.Logger) *OrdersHandler {
	return &OrdersHandler{
		docs:     docs,
		builder:  builder,
		notifier: notifier,
		rt:       rt,
		log:      log,
	}
}

// SubmitOrder finalizes the intake wizard: validates the brief, uploads
// staged assets and persists the order aggregate. POST /orders
func (h *OrdersHandler) SubmitOrder(c *gin.Context) {
	userID := c.GetString(middleware.UserIDKey)

	var req models.SubmitOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}

	if step, fields := intake.ValidateSubmission(&req); len(fields) > 0 {
		h.log.WithFields(logrus.Fields{"step": step, "fields": len(fields)}).Info("Order submission rejected by validation")
		c.JSON(http.StatusUnprocessableEntity, models.ValidationErrorResponse{
			Error:  "validation failed",
			Fields: fields,
		})
		return
	}

	if req.EditID != "" {
		existing, err := h.loadOrder(c, req.EditID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "order not found"})
			} else {
				c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to load order", Message: err.Error()})
			}
			return
		}
		if existing.ClientID != userID {
			c.JSON(http.StatusForbidden, models.ErrorResponse{Error: "order belongs to another client"})
			return
		}
		if existing.Status != models.StatusPending && existing.Status != models.StatusReviewing {
			c.JSON(http.StatusConflict, models.ErrorResponse{
				Error:   "order can no longer be edited",
				Message: "orders are editable only before work starts",
			})
			return
		}
	}

	order, failed, err := h.builder.Build(c.Request.Context(), userID, &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "failed to build order", Message: err.Error()})
		return
	}

	if err := h.docs.CreateRecord(c.Request.Context(), store.CollectionOrders, order.ID, order); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to save order", Message: err.Error()})
		return
	}

	// Edits of an existing order do not re-alert the admin.
	if req.EditID == "" {
		h.notifier.OrderPlaced(order)
		if h.rt != nil {
			if err := h.rt.PublishOrderEvent(order.ID, "order_created",
				supabase.OrderCreatedPayload(order.ID, order.ClientID, order.ServiceType)); err != nil {
				h.log.WithError(err).Warn("Failed to broadcast order_created event")
			}
		}
	}

	h.log.WithFields(logrus.Fields{
		"order_id":  order.ID,
		"client_id": userID,
		"service":   order.ServiceID,
	}).Info("Order submitted")

	c.JSON(http.StatusCreated, models.SubmitOrderResponse{Order: *order, FailedAssets: failed})
}

// GetOrder returns one order. Clients may only read their own.
// GET /orders/:order_id
func (h *OrdersHandler) GetOrder(c *gin.Context) {
	order, ok := h.loadOwnedOrder(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, order)
}

// ListMyOrders returns the caller's orders, newest first. GET /orders
func (h *OrdersHandler) ListMyOrders(c *gin.Context) {
	userID := c.GetString(middleware.UserIDKey)

	docs, err := h.docs.QueryRecords(c.Request.Context(), store.CollectionOrders, store.Filter{"clientId": userID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to list orders", Message: err.Error()})
		return
	}

	list := make([]models.Order, 0, len(docs))
	for _, doc := range docs {
		var o models.Order
		if err := json.Unmarshal(doc, &o); err != nil {
			h.log.WithError(err).Error("Skipping undecodable order document")
			continue
		}
		list = append(list, o)
	}
	sortByCreatedDesc(list)

	c.JSON(http.StatusOK, models.OrderListResponse{Orders: list})
}

// GetHelpLink returns a WhatsApp click-to-chat link for asking the
// studio about an order. GET /orders/:order_id/help
func (h *OrdersHandler) GetHelpLink(c *gin.Context) {
	order, ok := h.loadOwnedOrder(c)
	if !ok {
		return
	}
	link := h.notifier.HelpLink(order.ID)
	if link == "" {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "support contact not configured"})
		return
	}
	c.JSON(http.StatusOK, models.HelpLinkResponse{WhatsAppLink: link})
}

// CancelOrder lets the client cancel before payment is requested.
// POST /orders/:order_id/cancel
func (h *OrdersHandler) CancelOrder(c *gin.Context) {
	h.clientTransition(c, models.StatusCancelled, "")
}

// ApproveDraft moves a sent draft on to payment.
// POST /orders/:order_id/approve
func (h *OrdersHandler) ApproveDraft(c *gin.Context) {
	h.clientTransition(c, models.StatusWaitingPayment, "")
}

// RequestRevision sends a draft back with the client's notes.
// POST /orders/:order_id/revision
func (h *OrdersHandler) RequestRevision(c *gin.Context) {
	var req models.RevisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}
	h.clientTransition(c, models.StatusRevision, req.Notes)
}

func (h *OrdersHandler) clientTransition(c *gin.Context, to models.Status, notes string) {
	order, ok := h.loadOwnedOrder(c)
	if !ok {
		return
	}

	if err := orders.Transition(orders.ActorClient, order.Status, to, notes); err != nil {
		status := http.StatusConflict
		if errors.Is(err, orders.ErrRevisionNotesRequired) {
			status = http.StatusBadRequest
		}
		c.JSON(status, models.ErrorResponse{Error: err.Error()})
		return
	}

	partial := map[string]any{"status": to}
	if to == models.StatusRevision {
		partial["revisionNotes"] = notes
	}
	if err := h.docs.UpdateRecord(c.Request.Context(), store.CollectionOrders, order.ID, partial); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to update order", Message: err.Error()})
		return
	}

	if h.rt != nil {
		if err := h.rt.PublishOrderEvent(order.ID, "status_changed",
			supabase.StatusChangedPayload(order.ID, string(order.Status), string(to))); err != nil {
			h.log.WithError(err).Warn("Failed to broadcast status_changed event")
		}
	}

	order.Status = to
	if to == models.StatusRevision {
		order.RevisionNotes = notes
	}

	h.log.WithFields(logrus.Fields{
		"order_id": order.ID,
		"status":   to,
	}).Info("Client updated order status")

	c.JSON(http.StatusOK, order)
}

func (h *OrdersHandler) loadOrder(c *gin.Context, id string) (*models.Order, error) {
	doc, err := h.docs.GetRecord(c.Request.Context(), store.CollectionOrders, id)
	if err != nil {
		return nil, err
	}
	var o models.Order
	if err := json.Unmarshal(doc, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

// loadOwnedOrder reads :order_id and enforces ownership, writing the
// error response itself on failure.
func (h *OrdersHandler) loadOwnedOrder(c *gin.Context) (*models.Order, bool) {
	userID := c.GetString(middleware.UserIDKey)
	orderID := c.Param("order_id")

	order, err := h.loadOrder(c, orderID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "order not found"})
		} else {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to load order", Message: err.Error()})
		}
		return nil, false
	}
	if order.ClientID != userID && c.GetString(middleware.RoleKey) != middleware.RoleAdmin {
		c.JSON(http.StatusForbidden, models.ErrorResponse{Error: "order belongs to another client"})
		return nil, false
	}
	return order, true
}
