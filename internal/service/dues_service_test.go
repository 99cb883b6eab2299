package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/tuition-adp-api/internal/models"
	"github.com/noah-isme/tuition-adp-api/internal/repository"
)

func newDuesFixture(t *testing.T, authEnabled bool) (*DuesService, *SnapshotService) {
	t.Helper()

	store := repository.NewMemoryStore(time.Now().UTC())
	snapshots := NewSnapshotService(store, zap.NewNop(), nil)
	dues := NewDuesService(DuesServiceParams{
		Snapshots:         snapshots,
		Store:             store,
		Logger:            zap.NewNop(),
		DefaultMonthlyFee: 3000,
		AuthEnabled:       authEnabled,
	})
	return dues, snapshots
}

func TestDuesEnsureCreatesMissingDues(t *testing.T) {
	dues, snapshots := newDuesFixture(t, true)
	ctx := context.Background()

	before, err := snapshots.Current(ctx)
	require.NoError(t, err)

	// stu-003 already has a Student Fee row this month; the other four
	// active students are uncovered
	created, err := dues.Ensure(ctx, models.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, 4, created)

	after, err := snapshots.Current(ctx)
	require.NoError(t, err)
	assert.Len(t, after.Transactions, len(before.Transactions)+4)

	month := CurrentMonthKey(time.Now().UTC())
	for _, tx := range after.Transactions {
		if tx.Note != DuesNote {
			continue
		}
		assert.Equal(t, models.TransactionPending, tx.Status)
		assert.Equal(t, models.CategoryStudentFee, tx.Category)
		assert.Equal(t, month, MonthKey(tx.Date))
		assert.Contains(t, tx.Description, "fee due")
	}
}

func TestDuesEnsureIsIdempotent(t *testing.T) {
	dues, snapshots := newDuesFixture(t, true)
	ctx := context.Background()

	first, err := dues.Ensure(ctx, models.RoleAdmin)
	require.NoError(t, err)
	require.Positive(t, first)

	afterFirst, err := snapshots.Current(ctx)
	require.NoError(t, err)

	second, err := dues.Ensure(ctx, models.RoleAdmin)
	require.NoError(t, err)
	assert.Zero(t, second)

	afterSecond, err := snapshots.Current(ctx)
	require.NoError(t, err)
	assert.Len(t, afterSecond.Transactions, len(afterFirst.Transactions))
}

func TestDuesEnsureSkipsRestrictedRole(t *testing.T) {
	dues, _ := newDuesFixture(t, true)

	created, err := dues.Ensure(context.Background(), models.RoleStudentsOnly)
	require.NoError(t, err)
	assert.Zero(t, created)
}

func TestDuesEnsureAuthDisabledTreatsCallerAsAdmin(t *testing.T) {
	dues, _ := newDuesFixture(t, false)

	created, err := dues.Ensure(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, 4, created)
}

func TestDuesEnsureRunsFromMutationHook(t *testing.T) {
	dues, snapshots := newDuesFixture(t, true)
	ctx := context.Background()

	snapshots.SetMutationHook(func(ctx context.Context) {
		_, _ = dues.Ensure(ctx, models.RoleAdmin)
	})

	// settle the seeded backlog so only the new student is uncovered
	_, err := dues.Ensure(ctx, models.RoleAdmin)
	require.NoError(t, err)

	student, err := snapshots.AddStudent(ctx, models.StudentInput{
		Name:       "Tara Nair",
		Phone:      "+91-9876543299",
		Batch:      models.BatchMorning,
		JoinDate:   repository.FormatDate(time.Now().UTC()),
		Status:     models.StudentActive,
		MonthlyFee: 2800,
		Teacher:    "Priya Mehta",
	})
	require.NoError(t, err)

	// the due lands as part of the mutation, no snapshot load needed
	snap, err := snapshots.Current(ctx)
	require.NoError(t, err)
	var found bool
	for _, tx := range snap.Transactions {
		if tx.Note == DuesNote && tx.StudentID == student.ID {
			found = true
			assert.InDelta(t, 2800, tx.Amount, 0.001)
			assert.Equal(t, models.TransactionPending, tx.Status)
		}
	}
	assert.True(t, found)
}

// gatedStore parks every transaction insert until released so a pass can be
// held open mid-flight.
type gatedStore struct {
	repository.DataStore
	once    sync.Once
	entered chan struct{}
	release chan struct{}
}

func (g *gatedStore) AddTransaction(ctx context.Context, input models.TransactionInput) (*models.FinanceTransaction, error) {
	g.once.Do(func() { close(g.entered) })
	<-g.release
	return g.DataStore.AddTransaction(ctx, input)
}

func TestDuesEnsureOverlappingPassIsDropped(t *testing.T) {
	gate := &gatedStore{
		DataStore: repository.NewMemoryStore(time.Now().UTC()),
		entered:   make(chan struct{}),
		release:   make(chan struct{}),
	}
	snapshots := NewSnapshotService(gate, zap.NewNop(), nil)
	dues := NewDuesService(DuesServiceParams{
		Snapshots:   snapshots,
		Store:       gate,
		Logger:      zap.NewNop(),
		AuthEnabled: true,
	})
	ctx := context.Background()

	var firstCreated int
	var firstErr error
	done := make(chan struct{})
	go func() {
		defer close(done)
		firstCreated, firstErr = dues.Ensure(ctx, models.RoleAdmin)
	}()
	<-gate.entered

	// a second trigger while the first pass is mid-insert is a no-op
	second, err := dues.Ensure(ctx, models.RoleAdmin)
	require.NoError(t, err)
	assert.Zero(t, second)

	close(gate.release)
	<-done
	require.NoError(t, firstErr)
	assert.Equal(t, 4, firstCreated)
}

// faultyStore fails transaction inserts while the flag is up.
type faultyStore struct {
	repository.DataStore
	fail atomic.Bool
}

func (f *faultyStore) AddTransaction(ctx context.Context, input models.TransactionInput) (*models.FinanceTransaction, error) {
	if f.fail.Load() {
		return nil, errors.New("insert rejected")
	}
	return f.DataStore.AddTransaction(ctx, input)
}

func TestDuesEnsureReleasesGuardAfterFailedPass(t *testing.T) {
	faulty := &faultyStore{DataStore: repository.NewMemoryStore(time.Now().UTC())}
	faulty.fail.Store(true)
	snapshots := NewSnapshotService(faulty, zap.NewNop(), nil)
	dues := NewDuesService(DuesServiceParams{
		Snapshots:   snapshots,
		Store:       faulty,
		Logger:      zap.NewNop(),
		AuthEnabled: true,
	})
	ctx := context.Background()

	_, err := dues.Ensure(ctx, models.RoleAdmin)
	require.Error(t, err)

	// the failed pass must not leave the guard held
	faulty.fail.Store(false)
	created, err := dues.Ensure(ctx, models.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, 4, created)
}

func TestDuesEnsureInactiveStudentsAreSkipped(t *testing.T) {
	dues, snapshots := newDuesFixture(t, true)
	ctx := context.Background()

	_, err := dues.Ensure(ctx, models.RoleAdmin)
	require.NoError(t, err)

	snap, err := snapshots.Current(ctx)
	require.NoError(t, err)
	for _, tx := range snap.Transactions {
		if tx.Note == DuesNote {
			// stu-005 is inactive and must never receive a due
			assert.NotEqual(t, "stu-005", tx.StudentID)
		}
	}
}
