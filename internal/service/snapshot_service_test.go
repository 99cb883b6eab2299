package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/tuition-adp-api/internal/models"
	"github.com/noah-isme/tuition-adp-api/internal/repository"
)

func newSnapshotFixture(t *testing.T) *SnapshotService {
	t.Helper()
	store := repository.NewMemoryStore(time.Now().UTC())
	return NewSnapshotService(store, zap.NewNop(), nil)
}

func TestSnapshotServiceLoadsOnFirstUse(t *testing.T) {
	svc := newSnapshotFixture(t)

	snap, err := svc.Current(context.Background())
	require.NoError(t, err)
	assert.Len(t, snap.Students, 6)
	assert.Len(t, snap.Transactions, 17)
}

func TestSnapshotServiceDeleteStudentCascades(t *testing.T) {
	svc := newSnapshotFixture(t)
	ctx := context.Background()

	require.NoError(t, svc.DeleteStudent(ctx, "stu-003"))

	snap, err := svc.Current(ctx)
	require.NoError(t, err)

	assert.Len(t, snap.Students, 5)
	for _, a := range snap.Attendance {
		assert.NotEqual(t, "stu-003", a.StudentID)
	}
	// finance rows survive with the link cleared
	assert.Len(t, snap.Transactions, 17)
	for _, tx := range snap.Transactions {
		assert.NotEqual(t, "stu-003", tx.StudentID)
	}
}

func TestSnapshotServiceMutationHookFires(t *testing.T) {
	svc := newSnapshotFixture(t)
	ctx := context.Background()

	fired := 0
	svc.SetMutationHook(func(context.Context) { fired++ })

	_, err := svc.AddStudent(ctx, models.StudentInput{
		Name: "New Kid", Phone: "+91-2", Batch: models.BatchMorning,
		JoinDate: "2026-02-01", Status: models.StudentActive, MonthlyFee: 2800,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, fired)

	require.NoError(t, svc.ResetAllData(ctx))
	assert.Equal(t, 2, fired)
}

func TestSnapshotServiceResetRestoresDemoCounts(t *testing.T) {
	svc := newSnapshotFixture(t)
	ctx := context.Background()

	_, err := svc.AddTransaction(ctx, models.TransactionInput{
		Type: models.TransactionExpense, Category: "Supplies", Amount: 700,
		Date: "2026-08-01", Status: models.TransactionPaid,
	})
	require.NoError(t, err)

	require.NoError(t, svc.ResetAllData(ctx))

	snap, err := svc.Current(ctx)
	require.NoError(t, err)
	assert.Len(t, snap.Students, 6)
	assert.Len(t, snap.Transactions, 17)
	assert.Len(t, snap.Attendance, 5)
}

func TestSnapshotServiceScopedView(t *testing.T) {
	svc := newSnapshotFixture(t)

	scoped, err := svc.Scoped(context.Background(), models.RoleStudentsOnly, []string{"Priya Mehta"})
	require.NoError(t, err)

	for _, st := range scoped.Students {
		assert.Equal(t, "Priya Mehta", st.Teacher)
	}
	for _, tx := range scoped.Transactions {
		assert.NotEmpty(t, tx.StudentID)
	}
}

func TestSnapshotServiceSaveAttendanceReplacesDay(t *testing.T) {
	svc := newSnapshotFixture(t)
	ctx := context.Background()
	day := time.Now().UTC()

	saved, err := svc.SaveAttendance(ctx, day, []models.AttendanceDraft{
		{StudentID: "stu-001", Status: models.AttendanceAbsent},
	})
	require.NoError(t, err)
	require.NotEmpty(t, saved)

	snap, err := svc.Current(ctx)
	require.NoError(t, err)

	count := 0
	for _, a := range snap.Attendance {
		if a.StudentID == "stu-001" && a.Date.Equal(time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)) {
			count++
			assert.Equal(t, models.AttendanceAbsent, a.Status)
		}
	}
	assert.Equal(t, 1, count)
}
