package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/tuition-adp-api/internal/service"
	"github.com/noah-isme/tuition-adp-api/pkg/response"
)

// AdminHandler exposes destructive administrative operations.
type AdminHandler struct {
	snapshots *service.SnapshotService
}

func NewAdminHandler(snapshots *service.SnapshotService) *AdminHandler {
	return &AdminHandler{snapshots: snapshots}
}

// Reset godoc
// @Summary Wipe all data and reseed the demo dataset
// @Tags Admin
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /admin/reset [post]
func (h *AdminHandler) Reset(c *gin.Context) {
	ctx := c.Request.Context()
	if err := h.snapshots.ResetAllData(ctx); err != nil {
		response.Error(c, err)
		return
	}

	snap, err := h.snapshots.Current(ctx)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, snap)
}
