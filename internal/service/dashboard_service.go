package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/tuition-adp-api/internal/dto"
	"github.com/noah-isme/tuition-adp-api/internal/models"
	apperrors "github.com/noah-isme/tuition-adp-api/pkg/errors"
)

const (
	// MonthsToShow is the width of the trailing trend window.
	MonthsToShow = 6

	// AllMonthsValue is the sentinel month key meaning "no month filter".
	AllMonthsValue = "all"
	AllMonthsLabel = "All Months (Consolidated)"

	monthKeyLayout = "2006-01"
)

// MonthKey renders a date as a YYYY-MM key. The zero time yields an empty
// key so unparsable dates never match a specific month filter.
func MonthKey(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(monthKeyLayout)
}

// CurrentMonthKey returns the month key for now.
func CurrentMonthKey(now time.Time) string {
	return MonthKey(now)
}

// FilterTransactionsByMonth is the identity for the "all" sentinel,
// otherwise an exact month-key match.
func FilterTransactionsByMonth(finances []models.FinanceTransaction, monthKey string) []models.FinanceTransaction {
	if monthKey == AllMonthsValue || monthKey == "" {
		return finances
	}
	filtered := make([]models.FinanceTransaction, 0, len(finances))
	for _, tx := range finances {
		if MonthKey(tx.Date) == monthKey {
			filtered = append(filtered, tx)
		}
	}
	return filtered
}

// CalculateDashboardMetrics computes the headline numbers for one month
// scope. Revenue counts only paid income; expenses count regardless of
// status; pending fees count only the Student Fee category.
func CalculateDashboardMetrics(finances []models.FinanceTransaction, students []models.Student, monthKey string) dto.DashboardMetrics {
	scoped := FilterTransactionsByMonth(finances, monthKey)

	metrics := dto.DashboardMetrics{}
	for _, tx := range scoped {
		switch {
		case tx.Type == models.TransactionIncome && tx.Status == models.TransactionPaid:
			metrics.TotalRevenue += tx.Amount
		case tx.Type == models.TransactionExpense:
			metrics.TotalExpenses += tx.Amount
		}
		if tx.Category == models.CategoryStudentFee && tx.Status == models.TransactionPending {
			metrics.FeesPending += tx.Amount
		}
	}
	metrics.NetProfit = metrics.TotalRevenue - metrics.TotalExpenses

	for _, st := range students {
		if st.Status == models.StudentActive {
			metrics.ActiveStudents++
		}
	}
	return metrics
}

// IncomeExpenseTrend returns a single point for a specific month, or the
// trailing six-month window ending at now, oldest first and zero-filled.
func IncomeExpenseTrend(finances []models.FinanceTransaction, monthKey string, now time.Time) []dto.TrendPoint {
	if monthKey != AllMonthsValue && monthKey != "" {
		return []dto.TrendPoint{trendPointFor(finances, monthKey)}
	}

	points := make([]dto.TrendPoint, 0, MonthsToShow)
	for idx := MonthsToShow - 1; idx >= 0; idx-- {
		month := time.Date(now.Year(), now.Month()-time.Month(idx), 1, 0, 0, 0, 0, time.UTC)
		points = append(points, trendPointFor(finances, MonthKey(month)))
	}
	return points
}

func trendPointFor(finances []models.FinanceTransaction, monthKey string) dto.TrendPoint {
	point := dto.TrendPoint{Month: monthLabelShort(monthKey)}
	for _, tx := range finances {
		if MonthKey(tx.Date) != monthKey {
			continue
		}
		switch {
		case tx.Type == models.TransactionIncome && tx.Status == models.TransactionPaid:
			point.Income += tx.Amount
		case tx.Type == models.TransactionExpense:
			point.Expense += tx.Amount
		}
	}
	return point
}

// ExpenseBreakdown groups expense transactions by category, summing
// amounts, sorted by value descending.
func ExpenseBreakdown(finances []models.FinanceTransaction, monthKey string) []dto.ExpenseSlice {
	grouped := make(map[string]float64)
	for _, tx := range finances {
		if tx.Type != models.TransactionExpense {
			continue
		}
		if monthKey != AllMonthsValue && monthKey != "" && MonthKey(tx.Date) != monthKey {
			continue
		}
		grouped[tx.Category] += tx.Amount
	}

	slices := make([]dto.ExpenseSlice, 0, len(grouped))
	for name, value := range grouped {
		slices = append(slices, dto.ExpenseSlice{Name: name, Value: value})
	}
	sort.SliceStable(slices, func(i, j int) bool {
		if slices[i].Value != slices[j].Value {
			return slices[i].Value > slices[j].Value
		}
		return slices[i].Name < slices[j].Name
	})
	return slices
}

// AvailableMonthOptions returns the distinct transaction months plus the
// current month, newest first, prefixed with the consolidated option.
func AvailableMonthOptions(finances []models.FinanceTransaction, now time.Time) []dto.MonthOption {
	keys := make(map[string]struct{}, len(finances)+1)
	for _, tx := range finances {
		if key := MonthKey(tx.Date); key != "" {
			keys[key] = struct{}{}
		}
	}
	keys[CurrentMonthKey(now)] = struct{}{}

	sorted := make([]string, 0, len(keys))
	for key := range keys {
		sorted = append(sorted, key)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(sorted)))

	options := make([]dto.MonthOption, 0, len(sorted)+1)
	options = append(options, dto.MonthOption{Value: AllMonthsValue, Label: AllMonthsLabel})
	for _, key := range sorted {
		options = append(options, dto.MonthOption{Value: key, Label: monthLabelLong(key)})
	}
	return options
}

func monthLabelShort(monthKey string) string {
	t, err := time.Parse(monthKeyLayout, monthKey)
	if err != nil {
		return monthKey
	}
	return t.Format("Jan")
}

func monthLabelLong(monthKey string) string {
	t, err := time.Parse(monthKeyLayout, monthKey)
	if err != nil {
		return monthKey
	}
	return t.Format("January 2006")
}

// DashboardService serves derived dashboard views over the current
// snapshot, optionally caching them in Redis per month scope.
type DashboardService struct {
	snapshots *SnapshotService
	cache     CacheReader
	metrics   *MetricsService
	logger    *zap.Logger

	cacheEnabled bool
	cacheTTL     time.Duration
}

// CacheReader is the slice of the cache repository the dashboard needs.
type CacheReader interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

// DashboardServiceParams bundles constructor dependencies.
type DashboardServiceParams struct {
	Snapshots    *SnapshotService
	Cache        CacheReader
	Metrics      *MetricsService
	Logger       *zap.Logger
	CacheEnabled bool
	CacheTTL     time.Duration
}

func NewDashboardService(params DashboardServiceParams) *DashboardService {
	ttl := params.CacheTTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &DashboardService{
		snapshots:    params.Snapshots,
		cache:        params.Cache,
		metrics:      params.Metrics,
		logger:       params.Logger,
		cacheEnabled: params.CacheEnabled && params.Cache != nil,
		cacheTTL:     ttl,
	}
}

const dashboardCachePrefix = "dashboard"

// Metrics returns the headline metrics for the requested month scope.
// An empty month defaults to the current month.
func (s *DashboardService) Metrics(ctx context.Context, monthKey string) (dto.DashboardMetrics, error) {
	if monthKey == "" {
		monthKey = CurrentMonthKey(time.Now().UTC())
	}

	var cached dto.DashboardMetrics
	key := fmt.Sprintf("%s:metrics:%s", dashboardCachePrefix, monthKey)
	if s.readCache(ctx, key, &cached) {
		return cached, nil
	}

	snap, err := s.snapshots.Current(ctx)
	if err != nil {
		return dto.DashboardMetrics{}, err
	}

	metrics := CalculateDashboardMetrics(snap.Transactions, snap.Students, monthKey)
	s.writeCache(ctx, key, metrics)
	return metrics, nil
}

// Trend returns the income/expense series for the month scope.
func (s *DashboardService) Trend(ctx context.Context, monthKey string) ([]dto.TrendPoint, error) {
	if monthKey == "" {
		monthKey = AllMonthsValue
	}

	var cached []dto.TrendPoint
	key := fmt.Sprintf("%s:trend:%s", dashboardCachePrefix, monthKey)
	if s.readCache(ctx, key, &cached) {
		return cached, nil
	}

	snap, err := s.snapshots.Current(ctx)
	if err != nil {
		return nil, err
	}

	points := IncomeExpenseTrend(snap.Transactions, monthKey, time.Now().UTC())
	s.writeCache(ctx, key, points)
	return points, nil
}

// Expenses returns the category breakdown for the month scope.
func (s *DashboardService) Expenses(ctx context.Context, monthKey string) ([]dto.ExpenseSlice, error) {
	if monthKey == "" {
		monthKey = AllMonthsValue
	}

	var cached []dto.ExpenseSlice
	key := fmt.Sprintf("%s:expenses:%s", dashboardCachePrefix, monthKey)
	if s.readCache(ctx, key, &cached) {
		return cached, nil
	}

	snap, err := s.snapshots.Current(ctx)
	if err != nil {
		return nil, err
	}

	slices := ExpenseBreakdown(snap.Transactions, monthKey)
	s.writeCache(ctx, key, slices)
	return slices, nil
}

// MonthOptions returns the selectable month scopes.
func (s *DashboardService) MonthOptions(ctx context.Context) ([]dto.MonthOption, error) {
	snap, err := s.snapshots.Current(ctx)
	if err != nil {
		return nil, err
	}
	return AvailableMonthOptions(snap.Transactions, time.Now().UTC()), nil
}

// Invalidate drops every cached dashboard view. Wired into the snapshot
// orchestrator so each mutation clears stale aggregates.
func (s *DashboardService) Invalidate(ctx context.Context) {
	if !s.cacheEnabled {
		return
	}
	if err := s.cache.DeleteByPattern(ctx, dashboardCachePrefix+":*"); err != nil && s.logger != nil {
		s.logger.Warn("dashboard cache invalidation failed", zap.Error(err))
	}
}

func (s *DashboardService) readCache(ctx context.Context, key string, dest interface{}) bool {
	if !s.cacheEnabled {
		return false
	}
	start := time.Now()
	err := s.cache.Get(ctx, key, dest)
	hit := err == nil
	s.metrics.RecordCacheLookup(hit, time.Since(start))
	if err != nil && err != apperrors.ErrCacheMiss && s.logger != nil {
		s.logger.Warn("dashboard cache read failed", zap.String("key", key), zap.Error(err))
	}
	return hit
}

func (s *DashboardService) writeCache(ctx context.Context, key string, value interface{}) {
	if !s.cacheEnabled {
		return
	}
	if err := s.cache.Set(ctx, key, value, s.cacheTTL); err != nil && s.logger != nil {
		s.logger.Warn("dashboard cache write failed", zap.String("key", key), zap.Error(err))
	}
}
