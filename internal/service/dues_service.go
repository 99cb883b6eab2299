package service

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/tuition-adp-api/internal/models"
	"github.com/noah-isme/tuition-adp-api/internal/repository"
)

// DuesNote marks reconciler-generated rows.
const DuesNote = "Auto-generated monthly due"

// DuesService synthesizes a pending Student Fee transaction for every
// active student who has none in the current month. Passes are guarded by
// a boolean in-flight flag: overlapping triggers are dropped, not queued.
type DuesService struct {
	snapshots *SnapshotService
	store     repository.DataStore
	logger    *zap.Logger
	metrics   *MetricsService

	defaultMonthlyFee float64
	authEnabled       bool

	inFlight atomic.Bool
}

// DuesServiceParams bundles constructor dependencies.
type DuesServiceParams struct {
	Snapshots         *SnapshotService
	Store             repository.DataStore
	Logger            *zap.Logger
	Metrics           *MetricsService
	DefaultMonthlyFee float64
	AuthEnabled       bool
}

func NewDuesService(params DuesServiceParams) *DuesService {
	fee := params.DefaultMonthlyFee
	if fee <= 0 {
		fee = models.DefaultMonthlyFee
	}
	return &DuesService{
		snapshots:         params.Snapshots,
		store:             params.Store,
		logger:            params.Logger,
		metrics:           params.Metrics,
		defaultMonthlyFee: fee,
		authEnabled:       params.AuthEnabled,
	}
}

// Ensure runs one reconciliation pass for the current month and returns how
// many dues were created. Restricted roles never trigger generation; with
// auth disabled every caller counts as admin. A pass already in flight
// makes the call a no-op.
func (s *DuesService) Ensure(ctx context.Context, role models.AppRole) (int, error) {
	if s.authEnabled && role != models.RoleAdmin {
		return 0, nil
	}
	if !s.inFlight.CompareAndSwap(false, true) {
		return 0, nil
	}
	defer s.inFlight.Store(false)

	snap, err := s.snapshots.Current(ctx)
	if err != nil {
		return 0, err
	}

	now := time.Now().UTC()
	currentMonth := CurrentMonthKey(now)

	covered := make(map[string]struct{})
	for _, tx := range snap.Transactions {
		if tx.Category != models.CategoryStudentFee || tx.StudentID == "" {
			continue
		}
		if MonthKey(tx.Date) == currentMonth {
			covered[tx.StudentID] = struct{}{}
		}
	}

	inputs := make([]models.TransactionInput, 0)
	for _, st := range snap.Students {
		if st.Status != models.StudentActive {
			continue
		}
		if _, ok := covered[st.ID]; ok {
			continue
		}
		fee := st.MonthlyFee
		if fee <= 0 {
			fee = s.defaultMonthlyFee
		}
		inputs = append(inputs, models.TransactionInput{
			Type:        models.TransactionIncome,
			Category:    models.CategoryStudentFee,
			Amount:      fee,
			Date:        repository.FormatDate(now),
			Description: fmt.Sprintf("%s fee due", now.Format("January 2006")),
			StudentID:   st.ID,
			StudentName: st.Name,
			Status:      models.TransactionPending,
			Note:        DuesNote,
		})
	}
	if len(inputs) == 0 {
		return 0, nil
	}

	// create concurrently; merge into the snapshot only if every create
	// succeeded so a pass lands all-or-nothing
	created := make([]models.FinanceTransaction, len(inputs))
	errs := make([]error, len(inputs))
	var wg sync.WaitGroup
	for i := range inputs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tx, err := s.store.AddTransaction(ctx, inputs[i])
			if err != nil {
				errs[i] = err
				return
			}
			created[i] = *tx
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			if s.logger != nil {
				s.logger.Warn("monthly dues pass aborted", zap.Error(err))
			}
			return 0, err
		}
	}

	s.snapshots.MergeTransactions(ctx, created)
	s.metrics.RecordDuesCreated(len(created))
	if s.logger != nil {
		s.logger.Info("monthly dues generated",
			zap.Int("count", len(created)),
			zap.String("month", currentMonth),
		)
	}
	return len(created), nil
}
