// Package handler exposes the catalog module's HTTP endpoints.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"propertychat_backend/internal/catalog/service"
	"propertychat_backend/internal/catalog/transport"
	"propertychat_backend/platform/httpkit"
)

type Handler struct {
	svc *service.Service
}

func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// ListProperties returns the published listing.
// GET /api/v1/properties
func (h *Handler) ListProperties(c *gin.Context) {
	property, ok := h.svc.CurrentListing(c.Request.Context())
	if !ok {
		httpkit.JSON(c, http.StatusOK, transport.PropertiesResponse{
			Success: false,
			Data:    []*transport.Property{},
		})
		return
	}

	httpkit.JSON(c, http.StatusOK, transport.PropertiesResponse{
		Success: true,
		Data:    []*transport.Property{property},
	})
}
