package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/tuition-adp-api/internal/access"
	"github.com/noah-isme/tuition-adp-api/internal/models"
	"github.com/noah-isme/tuition-adp-api/internal/repository"
)

// SnapshotService owns the canonical application snapshot. Every mutation
// goes through the store first and is applied to the in-memory snapshot
// only after the store accepted it, with copy-on-write replacement so
// readers never observe a half-applied aggregate.
type SnapshotService struct {
	store   repository.DataStore
	logger  *zap.Logger
	metrics *MetricsService

	// invoked after every applied mutation, outside the lock
	onMutation func(context.Context)

	mu       sync.RWMutex
	snapshot models.AppDataSnapshot
	loaded   bool
}

func NewSnapshotService(store repository.DataStore, logger *zap.Logger, metrics *MetricsService) *SnapshotService {
	return &SnapshotService{store: store, logger: logger, metrics: metrics}
}

// SetMutationHook registers a callback fired after each applied mutation.
// Used to invalidate derived caches and re-run the dues pass. Must be called
// before serving traffic.
func (s *SnapshotService) SetMutationHook(hook func(context.Context)) {
	s.onMutation = hook
}

// Refresh reloads the canonical snapshot from the store.
func (s *SnapshotService) Refresh(ctx context.Context) error {
	snap, err := s.store.Snapshot(ctx)
	if err != nil {
		return err
	}
	snap.Normalize()

	s.mu.Lock()
	s.snapshot = snap
	s.loaded = true
	s.mu.Unlock()

	s.metrics.RecordSnapshotRefresh()
	return nil
}

// Current returns the canonical snapshot, loading it on first use.
func (s *SnapshotService) Current(ctx context.Context) (models.AppDataSnapshot, error) {
	s.mu.RLock()
	if s.loaded {
		snap := s.snapshot
		s.mu.RUnlock()
		return snap, nil
	}
	s.mu.RUnlock()

	if err := s.Refresh(ctx); err != nil {
		return models.AppDataSnapshot{}, err
	}

	s.mu.RLock()
	snap := s.snapshot
	s.mu.RUnlock()
	return snap, nil
}

// Scoped returns the slice of the snapshot visible to the given actor.
func (s *SnapshotService) Scoped(ctx context.Context, role models.AppRole, assignedTeachers []string) (models.AppDataSnapshot, error) {
	snap, err := s.Current(ctx)
	if err != nil {
		return models.AppDataSnapshot{}, err
	}
	return access.ApplyRoleScope(snap, role, assignedTeachers), nil
}

func (s *SnapshotService) apply(ctx context.Context, mutate func(snap *models.AppDataSnapshot)) {
	s.mu.Lock()
	next := s.snapshot
	mutate(&next)
	next.Normalize()
	s.snapshot = next
	s.mu.Unlock()

	if s.onMutation != nil {
		s.onMutation(ctx)
	}
}

// --- students ---

func (s *SnapshotService) AddStudent(ctx context.Context, input models.StudentInput) (*models.Student, error) {
	student, err := s.store.AddStudent(ctx, input)
	if err != nil {
		return nil, err
	}
	s.apply(ctx, func(snap *models.AppDataSnapshot) {
		snap.Students = append(append([]models.Student(nil), snap.Students...), *student)
	})
	return student, nil
}

func (s *SnapshotService) UpdateStudent(ctx context.Context, id string, input models.StudentInput) (*models.Student, error) {
	student, err := s.store.UpdateStudent(ctx, id, input)
	if err != nil {
		return nil, err
	}
	s.apply(ctx, func(snap *models.AppDataSnapshot) {
		students := append([]models.Student(nil), snap.Students...)
		for i := range students {
			if students[i].ID == id {
				students[i] = *student
				break
			}
		}
		snap.Students = students
	})
	return student, nil
}

// DeleteStudent applies the same cascade locally that the store performs:
// attendance rows go away, finance rows keep their history but lose the link.
func (s *SnapshotService) DeleteStudent(ctx context.Context, id string) error {
	if err := s.store.DeleteStudent(ctx, id); err != nil {
		return err
	}
	s.apply(ctx, func(snap *models.AppDataSnapshot) {
		students := make([]models.Student, 0, len(snap.Students))
		for _, st := range snap.Students {
			if st.ID != id {
				students = append(students, st)
			}
		}
		snap.Students = students

		attendance := make([]models.AttendanceRecord, 0, len(snap.Attendance))
		for _, a := range snap.Attendance {
			if a.StudentID != id {
				attendance = append(attendance, a)
			}
		}
		snap.Attendance = attendance

		transactions := append([]models.FinanceTransaction(nil), snap.Transactions...)
		for i := range transactions {
			if transactions[i].StudentID == id {
				transactions[i].StudentID = ""
			}
		}
		snap.Transactions = transactions
	})
	return nil
}

// --- transactions ---

func (s *SnapshotService) AddTransaction(ctx context.Context, input models.TransactionInput) (*models.FinanceTransaction, error) {
	tx, err := s.store.AddTransaction(ctx, input)
	if err != nil {
		return nil, err
	}
	s.apply(ctx, func(snap *models.AppDataSnapshot) {
		snap.Transactions = append(append([]models.FinanceTransaction(nil), snap.Transactions...), *tx)
	})
	return tx, nil
}

func (s *SnapshotService) UpdateTransaction(ctx context.Context, id string, input models.TransactionInput) (*models.FinanceTransaction, error) {
	tx, err := s.store.UpdateTransaction(ctx, id, input)
	if err != nil {
		return nil, err
	}
	s.applyTransactionReplace(ctx, *tx)
	return tx, nil
}

func (s *SnapshotService) ToggleTransactionStatus(ctx context.Context, id string) (*models.FinanceTransaction, error) {
	tx, err := s.store.ToggleTransactionStatus(ctx, id)
	if err != nil {
		return nil, err
	}
	s.applyTransactionReplace(ctx, *tx)
	return tx, nil
}

func (s *SnapshotService) applyTransactionReplace(ctx context.Context, tx models.FinanceTransaction) {
	s.apply(ctx, func(snap *models.AppDataSnapshot) {
		transactions := append([]models.FinanceTransaction(nil), snap.Transactions...)
		for i := range transactions {
			if transactions[i].ID == tx.ID {
				transactions[i] = tx
				break
			}
		}
		snap.Transactions = transactions
	})
}

func (s *SnapshotService) DeleteTransaction(ctx context.Context, id string) error {
	if err := s.store.DeleteTransaction(ctx, id); err != nil {
		return err
	}
	s.apply(ctx, func(snap *models.AppDataSnapshot) {
		transactions := make([]models.FinanceTransaction, 0, len(snap.Transactions))
		for _, tx := range snap.Transactions {
			if tx.ID != id {
				transactions = append(transactions, tx)
			}
		}
		snap.Transactions = transactions
	})
	return nil
}

// MergeTransactions appends a batch of already-persisted transactions in a
// single atomic replacement. Used by the dues reconciler so a pass lands
// all-or-nothing.
func (s *SnapshotService) MergeTransactions(ctx context.Context, txs []models.FinanceTransaction) {
	if len(txs) == 0 {
		return
	}
	s.apply(ctx, func(snap *models.AppDataSnapshot) {
		snap.Transactions = append(append([]models.FinanceTransaction(nil), snap.Transactions...), txs...)
	})
}

// --- attendance / profile / reset ---

func (s *SnapshotService) SaveAttendance(ctx context.Context, date time.Time, entries []models.AttendanceDraft) ([]models.AttendanceRecord, error) {
	saved, err := s.store.SaveAttendance(ctx, date, entries)
	if err != nil {
		return nil, err
	}

	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	s.apply(ctx, func(snap *models.AppDataSnapshot) {
		attendance := make([]models.AttendanceRecord, 0, len(snap.Attendance)+len(saved))
		for _, a := range snap.Attendance {
			if !a.Date.Equal(day) {
				attendance = append(attendance, a)
			}
		}
		attendance = append(attendance, saved...)
		snap.Attendance = attendance
	})
	return saved, nil
}

func (s *SnapshotService) UpdateProfile(ctx context.Context, input models.ProfileInput) (*models.BusinessProfile, error) {
	profile, err := s.store.UpdateProfile(ctx, input)
	if err != nil {
		return nil, err
	}
	s.apply(ctx, func(snap *models.AppDataSnapshot) {
		snap.Profile = *profile
	})
	return profile, nil
}

// ResetAllData wipes and reseeds through the store, then reloads the
// canonical snapshot from scratch.
func (s *SnapshotService) ResetAllData(ctx context.Context) error {
	if err := s.store.ResetAllData(ctx); err != nil {
		return err
	}
	if err := s.Refresh(ctx); err != nil {
		return err
	}
	if s.onMutation != nil {
		s.onMutation(ctx)
	}
	if s.logger != nil {
		s.logger.Info("all data reset to demo dataset")
	}
	return nil
}

// Store exposes the backing store for services that need direct access
// (user management, auth).
func (s *SnapshotService) Store() repository.DataStore {
	return s.store
}
