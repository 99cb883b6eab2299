package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/tuition-adp-api/internal/models"
)

func txOn(day time.Time, txType, category, status string, amount float64) models.FinanceTransaction {
	return models.FinanceTransaction{
		ID: "tx", Type: txType, Category: category, Status: status, Amount: amount, Date: day,
	}
}

func TestCalculateDashboardMetrics(t *testing.T) {
	day := time.Date(2026, time.August, 10, 0, 0, 0, 0, time.UTC)
	finances := []models.FinanceTransaction{
		txOn(day, models.TransactionIncome, "Tuition", models.TransactionPaid, 5000),
		txOn(day, models.TransactionIncome, "Tuition", models.TransactionPending, 2000),
		txOn(day, models.TransactionExpense, "Rent", models.TransactionPaid, 1500),
	}
	students := []models.Student{
		{ID: "s1", Status: models.StudentActive},
		{ID: "s2", Status: models.StudentInactive},
	}

	metrics := CalculateDashboardMetrics(finances, students, "2026-08")

	assert.Equal(t, float64(5000), metrics.TotalRevenue)
	assert.Equal(t, float64(1500), metrics.TotalExpenses)
	assert.Equal(t, float64(3500), metrics.NetProfit)
	assert.Equal(t, 1, metrics.ActiveStudents)
	// pending income counts as a pending fee only in the Student Fee category
	assert.Equal(t, float64(0), metrics.FeesPending)

	finances[1].Category = models.CategoryStudentFee
	metrics = CalculateDashboardMetrics(finances, students, "2026-08")
	assert.Equal(t, float64(2000), metrics.FeesPending)
}

func TestCalculateDashboardMetricsIgnoresOtherMonths(t *testing.T) {
	finances := []models.FinanceTransaction{
		txOn(time.Date(2026, time.July, 10, 0, 0, 0, 0, time.UTC), models.TransactionIncome, "Tuition", models.TransactionPaid, 9000),
	}

	metrics := CalculateDashboardMetrics(finances, nil, "2026-08")
	assert.Equal(t, float64(0), metrics.TotalRevenue)
}

func TestCalculateDashboardMetricsUnparsableDate(t *testing.T) {
	finances := []models.FinanceTransaction{
		{ID: "bad", Type: models.TransactionIncome, Status: models.TransactionPaid, Amount: 100}, // zero date
	}

	metrics := CalculateDashboardMetrics(finances, nil, "2026-08")
	assert.Equal(t, float64(0), metrics.TotalRevenue)
}

func TestIncomeExpenseTrendWindow(t *testing.T) {
	now := time.Date(2026, time.August, 30, 0, 0, 0, 0, time.UTC)
	finances := []models.FinanceTransaction{
		txOn(time.Date(2026, time.August, 2, 0, 0, 0, 0, time.UTC), models.TransactionIncome, "Tuition", models.TransactionPaid, 4000),
	}

	points := IncomeExpenseTrend(finances, AllMonthsValue, now)

	require.Len(t, points, MonthsToShow)
	assert.Equal(t, "Mar", points[0].Month)
	assert.Equal(t, "Aug", points[5].Month)
	for _, p := range points[:5] {
		assert.Equal(t, float64(0), p.Income)
		assert.Equal(t, float64(0), p.Expense)
	}
	assert.Equal(t, float64(4000), points[5].Income)
}

func TestIncomeExpenseTrendSingleMonth(t *testing.T) {
	finances := []models.FinanceTransaction{
		txOn(time.Date(2026, time.May, 2, 0, 0, 0, 0, time.UTC), models.TransactionExpense, "Rent", models.TransactionPaid, 1200),
	}

	points := IncomeExpenseTrend(finances, "2026-05", time.Now().UTC())

	require.Len(t, points, 1)
	assert.Equal(t, "May", points[0].Month)
	assert.Equal(t, float64(1200), points[0].Expense)
}

func TestExpenseBreakdownSortedDescending(t *testing.T) {
	day := time.Date(2026, time.August, 3, 0, 0, 0, 0, time.UTC)
	finances := []models.FinanceTransaction{
		txOn(day, models.TransactionExpense, "Rent", models.TransactionPaid, 12000),
		txOn(day, models.TransactionExpense, "Utilities", models.TransactionPaid, 3800),
		txOn(day, models.TransactionExpense, "Salary", models.TransactionPaid, 20000),
		txOn(day, models.TransactionIncome, models.CategoryStudentFee, models.TransactionPaid, 9000),
	}

	slices := ExpenseBreakdown(finances, AllMonthsValue)

	require.Len(t, slices, 3)
	assert.Equal(t, "Salary", slices[0].Name)
	assert.Equal(t, "Rent", slices[1].Name)
	assert.Equal(t, "Utilities", slices[2].Name)
}

func TestAvailableMonthOptions(t *testing.T) {
	now := time.Date(2026, time.August, 30, 0, 0, 0, 0, time.UTC)
	finances := []models.FinanceTransaction{
		txOn(time.Date(2026, time.June, 2, 0, 0, 0, 0, time.UTC), models.TransactionIncome, "Tuition", models.TransactionPaid, 100),
		txOn(time.Date(2025, time.December, 9, 0, 0, 0, 0, time.UTC), models.TransactionExpense, "Rent", models.TransactionPaid, 100),
		{ID: "bad", Type: models.TransactionIncome}, // zero date, no month
	}

	options := AvailableMonthOptions(finances, now)

	require.Len(t, options, 4)
	assert.Equal(t, AllMonthsValue, options[0].Value)
	assert.Equal(t, AllMonthsLabel, options[0].Label)
	assert.Equal(t, "2026-08", options[1].Value)
	assert.Equal(t, "August 2026", options[1].Label)
	assert.Equal(t, "2026-06", options[2].Value)
	assert.Equal(t, "2025-12", options[3].Value)
	assert.Equal(t, "December 2025", options[3].Label)
}

func TestFilterTransactionsByMonth(t *testing.T) {
	finances := []models.FinanceTransaction{
		txOn(time.Date(2026, time.June, 2, 0, 0, 0, 0, time.UTC), models.TransactionIncome, "Tuition", models.TransactionPaid, 100),
		txOn(time.Date(2026, time.July, 2, 0, 0, 0, 0, time.UTC), models.TransactionIncome, "Tuition", models.TransactionPaid, 100),
	}

	assert.Len(t, FilterTransactionsByMonth(finances, AllMonthsValue), 2)
	assert.Len(t, FilterTransactionsByMonth(finances, "2026-06"), 1)
	assert.Empty(t, FilterTransactionsByMonth(finances, "2026-01"))
}
