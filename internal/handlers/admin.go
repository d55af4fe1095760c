package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"designflow-backend/internal/models"
	"designflow-backend/internal/notify"
	"designflow-backend/internal/orders"
	"designflow-backend/internal/realtime"
	"designflow-backend/internal/store"
	"designflow-backend/internal/supabase"
)

// AdminHandler owns the dashboard endpoints: the order list, the save
// flow with its client notification, and deliverable uploads.
type AdminHandler struct {
	docs     store.DocumentStore
	blobs    store.BlobStore
	notifier *notify.Notifier
	rt       *supabase.RealtimeClient
	log      *logrus.Logger
}

func NewAdminHandler(docs store.DocumentStore, blobs store.BlobStore, notifier *notify.Notifier, rt *supabase.RealtimeClient, log *logrus.Logger) *AdminHandler {
	return &AdminHandler{
		docs:     docs,
		blobs:    blobs,
		notifier: notifier,
		rt:       rt,
		log:      log,
	}
}

// ListOrders returns every order, filtered and sorted by query params:
// search (name or id), status (exact), sort (asc|desc, default desc).
// GET /admin/orders
func (h *AdminHandler) ListOrders(c *gin.Context) {
	q := realtime.Query{
		Search:  c.Query("search"),
		Status:  models.Status(c.Query("status")),
		SortAsc: c.Query("sort") == "asc",
	}
	if q.Status != "" && !q.Status.Valid() {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: fmt.Sprintf("unknown status %q", q.Status)})
		return
	}

	docs, err := h.docs.QueryRecords(c.Request.Context(), store.CollectionOrders, nil)
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

	c.JSON(http.StatusOK, models.OrderListResponse{Orders: realtime.Project(list, q)})
}

// SaveOrder applies the dashboard modal's save: status, ETA and the
// staged deliverable references. When the status changed, the client is
// emailed exactly once and a WhatsApp link is returned for the operator.
// PUT /admin/orders/:order_id
func (h *AdminHandler) SaveOrder(c *gin.Context) {
	order, ok := h.load(c)
	if !ok {
		return
	}

	var req models.AdminSaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}

	if err := orders.Transition(orders.ActorAdmin, order.Status, req.Status, ""); err != nil {
		c.JSON(http.StatusConflict, models.ErrorResponse{Error: err.Error()})
		return
	}

	partial := map[string]any{"status": req.Status}
	if req.EstimatedCompletion != "" {
		partial["estimatedCompletion"] = req.EstimatedCompletion
		order.EstimatedCompletion = req.EstimatedCompletion
	}
	if req.DraftImg != nil {
		partial["draftImg"] = *req.DraftImg
		order.DraftImg = *req.DraftImg
	}
	if req.FinalFiles != nil {
		partial["finalFiles"] = req.FinalFiles
		order.FinalFiles = req.FinalFiles
	}

	if err := h.docs.UpdateRecord(c.Request.Context(), store.CollectionOrders, order.ID, partial); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to save order", Message: err.Error()})
		return
	}

	notified := orders.ShouldNotify(order.Status, req.Status)
	resp := models.AdminSaveResponse{Notified: notified}
	if notified {
		h.notifier.StatusChanged(order, req.Status)
		resp.WhatsAppLink = notify.BuildWhatsAppLink(order.Mobile, req.Status)
		if h.rt != nil {
			if err := h.rt.PublishOrderEvent(order.ID, "status_changed",
				supabase.StatusChangedPayload(order.ID, string(order.Status), string(req.Status))); err != nil {
				h.log.WithError(err).Warn("Failed to broadcast status_changed event")
			}
		}
	}

	h.log.WithFields(logrus.Fields{
		"order_id": order.ID,
		"from":     order.Status,
		"to":       req.Status,
		"notified": notified,
	}).Info("Admin saved order")

	order.Status = req.Status
	resp.Order = *order
	c.JSON(http.StatusOK, resp)
}

// UploadDraft stores a draft image for client review and suggests the
// status move. The suggestion takes effect only through SaveOrder.
// POST /admin/orders/:order_id/draft
func (h *AdminHandler) UploadDraft(c *gin.Context) {
	order, ok := h.load(c)
	if !ok {
		return
	}

	name, contentType, data, ok := h.readUpload(c, "file")
	if !ok {
		return
	}

	path := supabase.DraftPath(order.ClientID, order.ID, name, time.Now())
	url, err := h.blobs.Upload(c.Request.Context(), data, path, contentType)
	if err != nil {
		c.JSON(http.StatusBadGateway, models.ErrorResponse{Error: "failed to upload draft", Message: err.Error()})
		return
	}

	if h.rt != nil {
		if err := h.rt.PublishOrderEvent(order.ID, "draft_uploaded", supabase.DraftUploadedPayload(order.ID, url)); err != nil {
			h.log.WithError(err).Warn("Failed to broadcast draft_uploaded event")
		}
	}

	c.JSON(http.StatusOK, models.DraftUploadResponse{
		URL:             url,
		SuggestedStatus: orders.SuggestStatusForDraft(order.Status),
	})
}

// RemoveDraft deletes the stored draft image and clears the reference.
// DELETE /admin/orders/:order_id/draft
func (h *AdminHandler) RemoveDraft(c *gin.Context) {
	order, ok := h.load(c)
	if !ok {
		return
	}
	if order.DraftImg == "" {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "order has no draft"})
		return
	}

	if err := h.blobs.DeleteByURL(c.Request.Context(), order.DraftImg); err != nil {
		// Missing blobs are not worth failing the request over.
		h.log.WithField("order_id", order.ID).WithError(err).Warn("Failed to delete draft blob")
	}
	if err := h.docs.UpdateRecord(c.Request.Context(), store.CollectionOrders, order.ID, map[string]any{"draftImg": ""}); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to update order", Message: err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// UploadFinalFiles stores the deliverables released on completion.
// Uploads that fail are reported back, not fatal.
// POST /admin/orders/:order_id/final
func (h *AdminHandler) UploadFinalFiles(c *gin.Context) {
	order, ok := h.load(c)
	if !ok {
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid multipart form", Message: err.Error()})
		return
	}
	files := form.File["files"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "no files provided"})
		return
	}

	resp := models.FinalUploadResponse{}
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			resp.FailedAssets = append(resp.FailedAssets, fh.Filename)
			continue
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			resp.FailedAssets = append(resp.FailedAssets, fh.Filename)
			continue
		}

		contentType := fh.Header.Get("Content-Type")
		path := supabase.FinalAssetPath(order.ClientID, order.ID, fh.Filename, time.Now())
		url, err := h.blobs.Upload(c.Request.Context(), data, path, contentType)
		if err != nil {
			h.log.WithFields(logrus.Fields{
				"order_id": order.ID,
				"file":     fh.Filename,
			}).WithError(err).Warn("Final file upload failed")
			resp.FailedAssets = append(resp.FailedAssets, fh.Filename)
			continue
		}
		resp.Files = append(resp.Files, models.Asset{Name: fh.Filename, Type: contentType, Data: url})
	}

	if h.rt != nil && len(resp.Files) > 0 {
		if err := h.rt.PublishClientEvent(order.ClientID, "final_files_ready",
			supabase.FinalFilesReadyPayload(order.ID, len(resp.Files))); err != nil {
			h.log.WithError(err).Warn("Failed to broadcast final_files_ready event")
		}
	}

	c.JSON(http.StatusOK, resp)
}

// PurgeAssets erases every stored binary for an order and flags the
// order so both dashboards show the files as deleted. The order record
// itself survives.
// DELETE /admin/orders/:order_id/assets
func (h *AdminHandler) PurgeAssets(c *gin.Context) {
	order, ok := h.load(c)
	if !ok {
		return
	}

	urls := make([]string, 0, len(order.Files)+len(order.VoiceClips)+len(order.FinalFiles)+1)
	for _, a := range order.Files {
		urls = append(urls, a.Data)
	}
	for _, a := range order.VoiceClips {
		urls = append(urls, a.Data)
	}
	for _, a := range order.FinalFiles {
		urls = append(urls, a.Data)
	}
	if order.DraftImg != "" {
		urls = append(urls, order.DraftImg)
	}

	for _, u := range urls {
		if err := h.blobs.DeleteByURL(c.Request.Context(), u); err != nil {
			h.log.WithFields(logrus.Fields{"order_id": order.ID, "url": u}).WithError(err).Warn("Failed to delete asset blob")
		}
	}

	partial := map[string]any{
		"isDeletedByAdmin": true,
		"files":            []models.Asset{},
		"voiceClips":       []models.Asset{},
		"finalFiles":       []models.Asset{},
		"draftImg":         "",
	}
	if err := h.docs.UpdateRecord(c.Request.Context(), store.CollectionOrders, order.ID, partial); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to update order", Message: err.Error()})
		return
	}

	h.log.WithField("order_id", order.ID).Info("Order assets purged")
	c.Status(http.StatusNoContent)
}

// ExportPalette downloads the order's color palette as a text file.
// GET /admin/orders/:order_id/palette
func (h *AdminHandler) ExportPalette(c *gin.Context) {
	order, ok := h.load(c)
	if !ok {
		return
	}
	content := fmt.Sprintf("Palette: %s", strings.Join(order.ColorPalette, ", "))
	c.Header("Content-Disposition", `attachment; filename="palette.txt"`)
	c.Data(http.StatusOK, "text/plain", []byte(content))
}

func (h *AdminHandler) load(c *gin.Context) (*models.Order, bool) {
	orderID := c.Param("order_id")
	doc, err := h.docs.GetRecord(c.Request.Context(), store.CollectionOrders, orderID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "order not found"})
		} else {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to load order", Message: err.Error()})
		}
		return nil, false
	}
	var o models.Order
	if err := json.Unmarshal(doc, &o); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "corrupt order document", Message: err.Error()})
		return nil, false
	}
	return &o, true
}

func (h *AdminHandler) readUpload(c *gin.Context, field string) (name, contentType string, data []byte, ok bool) {
	fh, err := c.FormFile(field)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "missing file", Message: err.Error()})
		return "", "", nil, false
	}
	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "failed to open upload", Message: err.Error()})
		return "", "", nil, false
	}
	defer f.Close()
	data, err = io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "failed to read upload", Message: err.Error()})
		return "", "", nil, false
	}
	return fh.Filename, fh.Header.Get("Content-Type"), data, true
}
