package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/tuition-adp-api/internal/repository"
	"github.com/noah-isme/tuition-adp-api/pkg/export"
)

// ReportService renders finance reports as PDF documents.
type ReportService struct {
	snapshots *SnapshotService
	exporter  *export.PDFExporter
	logger    *zap.Logger
}

func NewReportService(snapshots *SnapshotService, exporter *export.PDFExporter, logger *zap.Logger) *ReportService {
	return &ReportService{snapshots: snapshots, exporter: exporter, logger: logger}
}

// FinancePDF renders the finance report for a month scope and returns the
// document plus a suggested filename.
func (s *ReportService) FinancePDF(ctx context.Context, monthKey string) ([]byte, string, error) {
	if monthKey == "" {
		monthKey = AllMonthsValue
	}

	snap, err := s.snapshots.Current(ctx)
	if err != nil {
		return nil, "", err
	}

	scoped := FilterTransactionsByMonth(snap.Transactions, monthKey)
	metrics := CalculateDashboardMetrics(snap.Transactions, snap.Students, monthKey)

	scopeLabel := AllMonthsLabel
	if monthKey != AllMonthsValue {
		scopeLabel = monthLabelLong(monthKey)
	}

	summary := []export.SummaryLine{
		{Label: "Business", Value: snap.Profile.Name},
		{Label: "Scope", Value: scopeLabel},
		{Label: "Total Revenue", Value: formatAmount(metrics.TotalRevenue)},
		{Label: "Total Expenses", Value: formatAmount(metrics.TotalExpenses)},
		{Label: "Net Profit", Value: formatAmount(metrics.NetProfit)},
		{Label: "Fees Pending", Value: formatAmount(metrics.FeesPending)},
		{Label: "Active Students", Value: fmt.Sprintf("%d", metrics.ActiveStudents)},
	}

	headers := []string{"Date", "Type", "Category", "Description", "Student", "Status", "Amount"}
	rows := make([]map[string]string, 0, len(scoped))
	for _, tx := range scoped {
		rows = append(rows, map[string]string{
			"Date":        repository.FormatDate(tx.Date),
			"Type":        tx.Type,
			"Category":    tx.Category,
			"Description": tx.Description,
			"Student":     tx.StudentName,
			"Status":      tx.Status,
			"Amount":      formatAmount(tx.Amount),
		})
	}

	doc, err := s.exporter.Render("Finance Report", summary, export.Dataset{Headers: headers, Rows: rows})
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("finance-report-%s-%s.pdf", monthKey, time.Now().UTC().Format(repository.DateLayout))
	return doc, filename, nil
}

// formatAmount renders an amount in rupees. The core PDF fonts cannot
// encode the rupee sign, so reports use the "Rs." prefix.
func formatAmount(v float64) string {
	return fmt.Sprintf("Rs. %.2f", v)
}
