package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"designflow-backend/internal/catalog"
	"designflow-backend/internal/models"
)

// ListServices returns the service catalog. GET /services
func ListServices(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"services": catalog.Services})
}

// ListPresets returns the dimension presets for one service.
// GET /services/:service_id/presets
func ListPresets(c *gin.Context) {
	id := c.Param("service_id")
	if _, ok := catalog.ServiceByID(id); !ok {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "service not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"presets": catalog.PresetsFor(id)})
}
