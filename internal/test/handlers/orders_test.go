package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"designflow-backend/internal/models"
	"designflow-backend/internal/store"
)

func TestHealthHandler(t *testing.T) {
	env := newTestEnv(t, "user-1", "")

	w := env.do(t, "GET", "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ok")
}

func TestListServices(t *testing.T) {
	env := newTestEnv(t, "user-1", "")

	w := env.do(t, "GET", "/api/v1/services", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "s_book")
	assert.Contains(t, w.Body.String(), "Book Covers")
}

func TestListPresets(t *testing.T) {
	env := newTestEnv(t, "user-1", "")

	w := env.do(t, "GET", "/api/v1/services/s_social/presets", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Instagram Square")

	w = env.do(t, "GET", "/api/v1/services/s_nothing/presets", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSubmitOrder(t *testing.T) {
	env := newTestEnv(t, "client-1", "")

	body := submitBody()
	body.Files = []models.StagedAsset{{Name: "ref.jpg", Type: "image/jpeg", Data: []byte("jpeg")}}

	w := env.do(t, "POST", "/api/v1/orders", body)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp models.SubmitOrderResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Regexp(t, `^ORD-`, resp.Order.ID)
	assert.Equal(t, "client-1", resp.Order.ClientID)
	assert.Equal(t, models.StatusPending, resp.Order.Status)
	assert.Empty(t, resp.FailedAssets)

	// The order is persisted and readable back.
	_, err := env.docs.GetRecord(context.Background(), store.CollectionOrders, resp.Order.ID)
	assert.NoError(t, err)
}

func TestSubmitOrder_ValidationFailure(t *testing.T) {
	env := newTestEnv(t, "client-1", "")

	body := submitBody()
	body.Requirements = ""

	w := env.do(t, "POST", "/api/v1/orders", body)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp models.ValidationErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Fields, "requirements")
}

func TestSubmitOrder_FailedAssetReported(t *testing.T) {
	env := newTestEnv(t, "client-1", "")
	env.blobs.failWhen = "broken"

	body := submitBody()
	body.Files = []models.StagedAsset{{Name: "broken.png", Type: "image/png", Data: []byte("x")}}

	w := env.do(t, "POST", "/api/v1/orders", body)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp models.SubmitOrderResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"broken.png"}, resp.FailedAssets)
	assert.Empty(t, resp.Order.Files)
}

func TestSubmitOrder_EditKeepsID(t *testing.T) {
	env := newTestEnv(t, "client-1", "")
	env.seedOrder(t, models.Order{ID: "ORD-AB23", ClientID: "client-1", Status: models.StatusPending, CreatedAt: time.Now()})

	body := submitBody()
	body.EditID = "ORD-AB23"

	w := env.do(t, "POST", "/api/v1/orders", body)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp models.SubmitOrderResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ORD-AB23", resp.Order.ID)
}

func TestSubmitOrder_EditForeignOrderForbidden(t *testing.T) {
	env := newTestEnv(t, "client-1", "")
	env.seedOrder(t, models.Order{ID: "ORD-AB23", ClientID: "someone-else", Status: models.StatusPending, CreatedAt: time.Now()})

	body := submitBody()
	body.EditID = "ORD-AB23"

	w := env.do(t, "POST", "/api/v1/orders", body)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestSubmitOrder_EditAfterWorkStartedConflicts(t *testing.T) {
	env := newTestEnv(t, "client-1", "")
	env.seedOrder(t, models.Order{ID: "ORD-AB23", ClientID: "client-1", Status: models.StatusInProgress, CreatedAt: time.Now()})

	body := submitBody()
	body.EditID = "ORD-AB23"

	w := env.do(t, "POST", "/api/v1/orders", body)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestGetOrder_OwnershipEnforced(t *testing.T) {
	env := newTestEnv(t, "client-1", "")
	env.seedOrder(t, models.Order{ID: "ORD-MINE", ClientID: "client-1", Status: models.StatusPending, CreatedAt: time.Now()})
	env.seedOrder(t, models.Order{ID: "ORD-THRS", ClientID: "client-2", Status: models.StatusPending, CreatedAt: time.Now()})

	w := env.do(t, "GET", "/api/v1/orders/ORD-MINE", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, "GET", "/api/v1/orders/ORD-THRS", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = env.do(t, "GET", "/api/v1/orders/ORD-NONE", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListMyOrders_NewestFirst(t *testing.T) {
	env := newTestEnv(t, "client-1", "")
	now := time.Now()
	env.seedOrder(t, models.Order{ID: "ORD-OLDR", ClientID: "client-1", Status: models.StatusPending, CreatedAt: now.Add(-time.Hour)})
	env.seedOrder(t, models.Order{ID: "ORD-NEWR", ClientID: "client-1", Status: models.StatusPending, CreatedAt: now})
	env.seedOrder(t, models.Order{ID: "ORD-THRS", ClientID: "client-2", Status: models.StatusPending, CreatedAt: now})

	w := env.do(t, "GET", "/api/v1/orders", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.OrderListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Orders, 2)
	assert.Equal(t, "ORD-NEWR", resp.Orders[0].ID)
	assert.Equal(t, "ORD-OLDR", resp.Orders[1].ID)
}

func TestApproveDraft(t *testing.T) {
	env := newTestEnv(t, "client-1", "")
	env.seedOrder(t, models.Order{ID: "ORD-AB23", ClientID: "client-1", Status: models.StatusDraftSent, CreatedAt: time.Now()})

	w := env.do(t, "POST", "/api/v1/orders/ORD-AB23/approve", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got models.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, models.StatusWaitingPayment, got.Status)
}

func TestApproveDraft_WithoutDraftConflicts(t *testing.T) {
	env := newTestEnv(t, "client-1", "")
	env.seedOrder(t, models.Order{ID: "ORD-AB23", ClientID: "client-1", Status: models.StatusInProgress, CreatedAt: time.Now()})

	w := env.do(t, "POST", "/api/v1/orders/ORD-AB23/approve", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRequestRevision(t *testing.T) {
	env := newTestEnv(t, "client-1", "")
	env.seedOrder(t, models.Order{ID: "ORD-AB23", ClientID: "client-1", Status: models.StatusDraftSent, CreatedAt: time.Now()})

	w := env.do(t, "POST", "/api/v1/orders/ORD-AB23/revision", models.RevisionRequest{Notes: "bigger logo"})
	require.Equal(t, http.StatusOK, w.Code)

	var got models.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, models.StatusRevision, got.Status)
	assert.Equal(t, "bigger logo", got.RevisionNotes)
}

func TestRequestRevision_EmptyNotesRejected(t *testing.T) {
	env := newTestEnv(t, "client-1", "")
	env.seedOrder(t, models.Order{ID: "ORD-AB23", ClientID: "client-1", Status: models.StatusDraftSent, CreatedAt: time.Now()})

	w := env.do(t, "POST", "/api/v1/orders/ORD-AB23/revision", models.RevisionRequest{Notes: "  "})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCancelOrder(t *testing.T) {
	env := newTestEnv(t, "client-1", "")
	env.seedOrder(t, models.Order{ID: "ORD-AB23", ClientID: "client-1", Status: models.StatusReviewing, CreatedAt: time.Now()})

	w := env.do(t, "POST", "/api/v1/orders/ORD-AB23/cancel", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got models.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, models.StatusCancelled, got.Status)
}

func TestCancelOrder_ClosedWindow(t *testing.T) {
	env := newTestEnv(t, "client-1", "")
	env.seedOrder(t, models.Order{ID: "ORD-AB23", ClientID: "client-1", Status: models.StatusWaitingPayment, CreatedAt: time.Now()})

	w := env.do(t, "POST", "/api/v1/orders/ORD-AB23/cancel", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestUpsertProfile(t *testing.T) {
	env := newTestEnv(t, "user-7", "")

	w := env.do(t, "PUT", "/api/v1/users/me", models.UpsertProfileRequest{
		Name:     "Nadia Perera",
		Email:    "nadia@example.com",
		Provider: "google",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var got models.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "user-7", got.ID)
	assert.Equal(t, "google", got.Provider)
}

func TestUpsertProfile_UnknownProviderRejected(t *testing.T) {
	env := newTestEnv(t, "user-7", "")

	w := env.do(t, "PUT", "/api/v1/users/me", models.UpsertProfileRequest{
		Name:     "Nadia Perera",
		Email:    "nadia@example.com",
		Provider: "myspace",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetHelpLink(t *testing.T) {
	env := newTestEnv(t, "client-1", "")
	env.seedOrder(t, models.Order{ID: "ORD-AB23", ClientID: "client-1", Status: models.StatusDraftSent, CreatedAt: time.Now()})

	w := env.do(t, "GET", "/api/v1/orders/ORD-AB23/help", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got models.HelpLinkResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Contains(t, got.WhatsAppLink, "phone=94712132855")
	assert.Contains(t, got.WhatsAppLink, "ORD-AB23")
}

func TestGetHelpLink_ForeignOrderForbidden(t *testing.T) {
	env := newTestEnv(t, "client-2", "")
	env.seedOrder(t, models.Order{ID: "ORD-AB23", ClientID: "client-1", Status: models.StatusDraftSent, CreatedAt: time.Now()})

	w := env.do(t, "GET", "/api/v1/orders/ORD-AB23/help", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
