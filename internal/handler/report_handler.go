package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/tuition-adp-api/internal/service"
	"github.com/noah-isme/tuition-adp-api/pkg/response"
)

// ReportHandler serves downloadable reports.
type ReportHandler struct {
	reports *service.ReportService
}

func NewReportHandler(reports *service.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// Finance godoc
// @Summary Download the finance report as PDF
// @Tags Reports
// @Produce application/pdf
// @Param month query string false "Month key (YYYY-MM) or \"all\""
// @Success 200 {file} binary
// @Router /reports/finance [get]
func (h *ReportHandler) Finance(c *gin.Context) {
	doc, filename, err := h.reports.FinancePDF(c.Request.Context(), c.Query("month"))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", doc)
}
