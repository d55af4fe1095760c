package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"designflow-backend/internal/catalog"
	"designflow-backend/internal/config"
	"designflow-backend/internal/handlers"
	"designflow-backend/internal/middleware"
	"designflow-backend/internal/models"
	"designflow-backend/internal/notify"
	"designflow-backend/internal/orders"
	"designflow-backend/internal/realtime"
	"designflow-backend/internal/store"
)

// fakeBlobStore records uploads and fails any path containing failWhen.
type fakeBlobStore struct {
	mu       sync.Mutex
	uploads  map[string][]byte
	deleted  []string
	failWhen string
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{uploads: map[string][]byte{}}
}

func (f *fakeBlobStore) Upload(ctx context.Context, data []byte, path, contentType string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWhen != "" && strings.Contains(path, f.failWhen) {
		return "", fmt.Errorf("upload refused for %s", path)
	}
	f.uploads[path] = data
	return "https://blobs.test/" + path, nil
}

func (f *fakeBlobStore) UploadWithProgress(ctx context.Context, data []byte, path, contentType string, onProgress func(float64)) (string, error) {
	return f.Upload(ctx, data, path, contentType)
}

func (f *fakeBlobStore) DeleteByURL(ctx context.Context, url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, url)
	delete(f.uploads, strings.TrimPrefix(url, "https://blobs.test/"))
	return nil
}

type testEnv struct {
	router *gin.Engine
	docs   *store.MemoryStore
	blobs  *fakeBlobStore
}

// authAs injects identity the way AuthMiddleware would after parsing a
// token, keeping handler tests independent of JWT plumbing.
func authAs(userID, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDKey, userID)
		if role != "" {
			c.Set(middleware.RoleKey, role)
		}
		c.Next()
	}
}

func newTestEnv(t *testing.T, userID, role string) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logrus.New()
	log.SetOutput(io.Discard)

	docs := store.NewMemoryStore()
	blobs := newFakeBlobStore()
	cfg := &config.Config{BaseURL: "http://localhost:8080", AdminWhatsApp: "94712132855"}
	notifier := notify.New(cfg, log)
	builder := orders.NewBuilder(blobs, log, time.Second)
	sync := realtime.NewSynchronizer(docs, log)

	ordersHandler := handlers.NewOrdersHandler(docs, builder, notifier, nil, log)
	adminHandler := handlers.NewAdminHandler(docs, blobs, notifier, nil, log)
	usersHandler := handlers.NewUsersHandler(docs, log)
	streamHandler := handlers.NewStreamHandler(sync, log)

	router := gin.New()
	router.GET("/health", handlers.HealthHandler)
	router.GET("/api/v1/services", handlers.ListServices)
	router.GET("/api/v1/services/:service_id/presets", handlers.ListPresets)

	api := router.Group("/api/v1")
	api.Use(authAs(userID, role))
	api.PUT("/users/me", usersHandler.UpsertProfile)
	api.POST("/orders", ordersHandler.SubmitOrder)
	api.GET("/orders", ordersHandler.ListMyOrders)
	api.GET("/orders/stream", streamHandler.StreamMyOrders)
	api.GET("/orders/:order_id", ordersHandler.GetOrder)
	api.GET("/orders/:order_id/stream", streamHandler.StreamOrder)
	api.GET("/orders/:order_id/help", ordersHandler.GetHelpLink)
	api.POST("/orders/:order_id/cancel", ordersHandler.CancelOrder)
	api.POST("/orders/:order_id/approve", ordersHandler.ApproveDraft)
	api.POST("/orders/:order_id/revision", ordersHandler.RequestRevision)

	admin := api.Group("/admin")
	admin.Use(middleware.AdminOnly())
	admin.GET("/orders", adminHandler.ListOrders)
	admin.PUT("/orders/:order_id", adminHandler.SaveOrder)
	admin.POST("/orders/:order_id/draft", adminHandler.UploadDraft)
	admin.DELETE("/orders/:order_id/draft", adminHandler.RemoveDraft)
	admin.POST("/orders/:order_id/final", adminHandler.UploadFinalFiles)
	admin.DELETE("/orders/:order_id/assets", adminHandler.PurgeAssets)
	admin.GET("/orders/:order_id/palette", adminHandler.ExportPalette)

	return &testEnv{router: router, docs: docs, blobs: blobs}
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(b)
	}
	req, _ := http.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) seedOrder(t *testing.T, o models.Order) {
	t.Helper()
	if err := e.docs.CreateRecord(context.Background(), store.CollectionOrders, o.ID, o); err != nil {
		t.Fatalf("seed order: %v", err)
	}
}

func submitBody() models.SubmitOrderRequest {
	return models.SubmitOrderRequest{
		Name:         "Nadia Perera",
		Email:        "nadia@example.com",
		Mobile:       "+94712345678",
		ServiceID:    catalog.ServiceBook,
		Requirements: "A moody thriller cover",
		ColorPalette: []string{"#101010"},
		Dimensions:   models.Dimensions{Width: 6, Height: 9, Unit: "in", PPI: 300},
	}
}
