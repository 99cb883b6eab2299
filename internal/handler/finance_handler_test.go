package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/tuition-adp-api/internal/models"
)

func TestFinanceHandlerCreate(t *testing.T) {
	fix := newFixture(t)
	handler := NewFinanceHandler(fix.snapshots)

	rec, c := testContext(t, http.MethodPost, "/finances", models.TransactionInput{
		Type:        models.TransactionExpense,
		Category:    "Supplies",
		Amount:      1200,
		Date:        "2026-08-20",
		Description: "Whiteboard markers",
		Status:      models.TransactionPaid,
	})
	asAdmin(c)
	handler.Create(c)

	require.Equal(t, http.StatusCreated, rec.Code)
	var tx models.FinanceTransaction
	decodeEnvelope(t, rec, &tx)
	assert.NotEmpty(t, tx.ID)
	assert.InDelta(t, 1200, tx.Amount, 0.001)
}

func TestFinanceHandlerCreateRejectsNonPositiveAmount(t *testing.T) {
	fix := newFixture(t)
	handler := NewFinanceHandler(fix.snapshots)

	for _, amount := range []float64{0, -500} {
		rec, c := testContext(t, http.MethodPost, "/finances", models.TransactionInput{
			Type:     models.TransactionIncome,
			Category: models.CategoryStudentFee,
			Amount:   amount,
			Date:     "2026-08-20",
			Status:   models.TransactionPending,
		})
		asAdmin(c)
		handler.Create(c)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "VALIDATION_ERROR", errorField(t, rec, "code"))
	}
}

func TestFinanceHandlerToggleStatus(t *testing.T) {
	fix := newFixture(t)
	handler := NewFinanceHandler(fix.snapshots)

	rec, c := testContext(t, http.MethodPatch, "/finances/fin-014/toggle-status", nil)
	asAdmin(c)
	c.Params = gin.Params{{Key: "id", Value: "fin-014"}}
	handler.ToggleStatus(c)

	require.Equal(t, http.StatusOK, rec.Code)
	var tx models.FinanceTransaction
	decodeEnvelope(t, rec, &tx)
	assert.Equal(t, models.TransactionPaid, tx.Status)
}
