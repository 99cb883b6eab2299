package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/tuition-adp-api/internal/service"
	"github.com/noah-isme/tuition-adp-api/pkg/response"
)

// DashboardHandler exposes derived dashboard views.
type DashboardHandler struct {
	dashboard *service.DashboardService
}

func NewDashboardHandler(dashboard *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// Metrics godoc
// @Summary Headline metrics for a month scope
// @Tags Dashboard
// @Produce json
// @Param month query string false "Month key (YYYY-MM) or \"all\"; defaults to the current month"
// @Success 200 {object} response.Envelope
// @Router /dashboard/metrics [get]
func (h *DashboardHandler) Metrics(c *gin.Context) {
	metrics, err := h.dashboard.Metrics(c.Request.Context(), c.Query("month"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, metrics)
}

// Trend godoc
// @Summary Income vs expense trend
// @Tags Dashboard
// @Produce json
// @Param month query string false "Month key (YYYY-MM) or \"all\" for the six-month window"
// @Success 200 {object} response.Envelope
// @Router /dashboard/trend [get]
func (h *DashboardHandler) Trend(c *gin.Context) {
	points, err := h.dashboard.Trend(c.Request.Context(), c.Query("month"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, points)
}

// Expenses godoc
// @Summary Expense breakdown by category
// @Tags Dashboard
// @Produce json
// @Param month query string false "Month key (YYYY-MM) or \"all\""
// @Success 200 {object} response.Envelope
// @Router /dashboard/expenses [get]
func (h *DashboardHandler) Expenses(c *gin.Context) {
	slices, err := h.dashboard.Expenses(c.Request.Context(), c.Query("month"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, slices)
}

// Months godoc
// @Summary Selectable month scopes
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /dashboard/months [get]
func (h *DashboardHandler) Months(c *gin.Context) {
	options, err := h.dashboard.MonthOptions(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, options)
}
