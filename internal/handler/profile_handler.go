package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/tuition-adp-api/internal/models"
	"github.com/noah-isme/tuition-adp-api/internal/service"
	apperrors "github.com/noah-isme/tuition-adp-api/pkg/errors"
	"github.com/noah-isme/tuition-adp-api/pkg/response"
)

// ProfileHandler exposes the business profile endpoints.
type ProfileHandler struct {
	snapshots *service.SnapshotService
}

func NewProfileHandler(snapshots *service.SnapshotService) *ProfileHandler {
	return &ProfileHandler{snapshots: snapshots}
}

// Get godoc
// @Summary Fetch the business profile
// @Tags Profile
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /profile [get]
func (h *ProfileHandler) Get(c *gin.Context) {
	snap, err := h.snapshots.Current(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, snap.Profile)
}

// Update godoc
// @Summary Save the business profile
// @Tags Profile
// @Accept json
// @Produce json
// @Param payload body models.ProfileInput true "Profile payload"
// @Success 200 {object} response.Envelope
// @Router /profile [put]
func (h *ProfileHandler) Update(c *gin.Context) {
	var input models.ProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, apperrors.Wrap(err, apperrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	profile, err := h.snapshots.UpdateProfile(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, profile)
}
