package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/tuition-adp-api/internal/service"
	"github.com/noah-isme/tuition-adp-api/pkg/response"
)

// SnapshotHandler serves the role-scoped application snapshot.
type SnapshotHandler struct {
	snapshots *service.SnapshotService
	dues      *service.DuesService
	logger    *zap.Logger
}

func NewSnapshotHandler(snapshots *service.SnapshotService, dues *service.DuesService, logger *zap.Logger) *SnapshotHandler {
	return &SnapshotHandler{snapshots: snapshots, dues: dues, logger: logger}
}

// Get godoc
// @Summary Fetch the application data snapshot scoped to the caller
// @Tags Snapshot
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /snapshot [get]
func (h *SnapshotHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	// admin loads also top up missing monthly dues; a failed pass must not
	// block the snapshot itself
	if _, err := h.dues.Ensure(ctx, actorRole(c)); err != nil && h.logger != nil {
		h.logger.Warn("monthly dues reconciliation failed", zap.Error(err))
	}

	snap, err := h.snapshots.Scoped(ctx, actorRole(c), actorTeachers(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, snap)
}

// Refresh godoc
// @Summary Reload the snapshot from the backing store
// @Tags Snapshot
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /snapshot/refresh [post]
func (h *SnapshotHandler) Refresh(c *gin.Context) {
	ctx := c.Request.Context()
	if err := h.snapshots.Refresh(ctx); err != nil {
		response.Error(c, err)
		return
	}

	snap, err := h.snapshots.Scoped(ctx, actorRole(c), actorTeachers(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, snap)
}
