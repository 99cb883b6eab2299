package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/tuition-adp-api/internal/models"
	"github.com/noah-isme/tuition-adp-api/internal/service"
	apperrors "github.com/noah-isme/tuition-adp-api/pkg/errors"
	"github.com/noah-isme/tuition-adp-api/pkg/response"
)

// FinanceHandler exposes finance transaction mutations.
type FinanceHandler struct {
	snapshots *service.SnapshotService
}

func NewFinanceHandler(snapshots *service.SnapshotService) *FinanceHandler {
	return &FinanceHandler{snapshots: snapshots}
}

// Create godoc
// @Summary Record a transaction
// @Tags Finance
// @Accept json
// @Produce json
// @Param payload body models.TransactionInput true "Transaction payload"
// @Success 201 {object} response.Envelope
// @Router /finances [post]
func (h *FinanceHandler) Create(c *gin.Context) {
	var input models.TransactionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, apperrors.Wrap(err, apperrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	tx, err := h.snapshots.AddTransaction(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, tx)
}

// Update godoc
// @Summary Update a transaction
// @Tags Finance
// @Accept json
// @Produce json
// @Param id path string true "Transaction ID"
// @Param payload body models.TransactionInput true "Transaction payload"
// @Success 200 {object} response.Envelope
// @Router /finances/{id} [put]
func (h *FinanceHandler) Update(c *gin.Context) {
	var input models.TransactionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, apperrors.Wrap(err, apperrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	tx, err := h.snapshots.UpdateTransaction(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, tx)
}

// Delete godoc
// @Summary Delete a transaction
// @Tags Finance
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 204
// @Router /finances/{id} [delete]
func (h *FinanceHandler) Delete(c *gin.Context) {
	if err := h.snapshots.DeleteTransaction(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ToggleStatus godoc
// @Summary Toggle a transaction between paid and pending
// @Tags Finance
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} response.Envelope
// @Router /finances/{id}/toggle-status [patch]
func (h *FinanceHandler) ToggleStatus(c *gin.Context) {
	tx, err := h.snapshots.ToggleTransactionStatus(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, tx)
}

// Categories godoc
// @Summary Transaction category options
// @Tags Finance
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /finances/categories [get]
func (h *FinanceHandler) Categories(c *gin.Context) {
	response.JSON(c, http.StatusOK, models.TransactionCategories)
}
