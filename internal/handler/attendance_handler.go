package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/tuition-adp-api/internal/models"
	"github.com/noah-isme/tuition-adp-api/internal/repository"
	"github.com/noah-isme/tuition-adp-api/internal/service"
	apperrors "github.com/noah-isme/tuition-adp-api/pkg/errors"
	"github.com/noah-isme/tuition-adp-api/pkg/response"
)

// AttendanceHandler exposes the attendance sheet save operation.
type AttendanceHandler struct {
	snapshots *service.SnapshotService
}

func NewAttendanceHandler(snapshots *service.SnapshotService) *AttendanceHandler {
	return &AttendanceHandler{snapshots: snapshots}
}

// SaveAttendanceRequest is one attendance sheet for one date.
type SaveAttendanceRequest struct {
	Date    string                   `json:"date" binding:"required"`
	Entries []models.AttendanceDraft `json:"entries" binding:"required,dive"`
}

// Save godoc
// @Summary Save the attendance sheet for a date
// @Tags Attendance
// @Accept json
// @Produce json
// @Param payload body SaveAttendanceRequest true "Attendance sheet"
// @Success 200 {object} response.Envelope
// @Router /attendance [post]
func (h *AttendanceHandler) Save(c *gin.Context) {
	var req SaveAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.Wrap(err, apperrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	date := repository.ParseDate(req.Date)
	if date.IsZero() {
		response.Error(c, apperrors.Clone(apperrors.ErrValidation, "date must be formatted YYYY-MM-DD"))
		return
	}

	records, err := h.snapshots.SaveAttendance(c.Request.Context(), date, req.Entries)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, records)
}
