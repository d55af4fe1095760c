package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"designflow-backend/internal/middleware"
	"designflow-backend/internal/models"
	"designflow-backend/internal/store"
)

type UsersHandler struct {
	docs store.DocumentStore
	log  *logrus.Logger
}

func NewUsersHandler(docs store.DocumentStore, log *logrus.Logger) *UsersHandler {
	return &UsersHandler{docs: docs, log: log}
}

// UpsertProfile mirrors the identity provider's profile on sign-in. The
// write merges over any previous record, so a provider change or avatar
// update lands without losing the document. PUT /users/me
func (h *UsersHandler) UpsertProfile(c *gin.Context) {
	userID := c.GetString(middleware.UserIDKey)

	var req models.UpsertProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}

	user := models.User{
		ID:       userID,
		Name:     req.Name,
		Email:    req.Email,
		Avatar:   req.Avatar,
		Provider: req.Provider,
	}

	if err := h.docs.CreateRecord(c.Request.Context(), store.CollectionUsers, userID, user); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to save profile", Message: err.Error()})
		return
	}

	h.log.WithFields(logrus.Fields{
		"user_id":  userID,
		"provider": req.Provider,
	}).Info("Profile upserted")

	c.JSON(http.StatusOK, user)
}
