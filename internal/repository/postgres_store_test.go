package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/tuition-adp-api/internal/models"
	apperrors "github.com/noah-isme/tuition-adp-api/pkg/errors"
)

func newMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return sqlx.NewDb(db, "sqlmock"), mock
}

func undefinedTable() *pq.Error  { return &pq.Error{Code: "42P01"} }
func undefinedColumn() *pq.Error { return &pq.Error{Code: "42703"} }

func TestPostgresStoreSnapshotMissingTables(t *testing.T) {
	db, mock := newMock(t)
	store := NewPostgresStore(db, 3000)

	mock.ExpectQuery("SELECT id, name, phone").WillReturnError(undefinedTable())
	mock.ExpectQuery("SELECT id, type, category").WillReturnError(undefinedTable())
	mock.ExpectQuery("SELECT id, student_id, student_name").WillReturnError(undefinedTable())
	mock.ExpectQuery("SELECT name, owner, phone").WillReturnError(undefinedTable())

	snap, err := store.Snapshot(context.Background())
	require.NoError(t, err)

	assert.Empty(t, snap.Students)
	assert.Empty(t, snap.Transactions)
	assert.Empty(t, snap.Attendance)
	assert.Equal(t, "Learn N Grow English Coaching", snap.Profile.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreSnapshotCoercionAndBackfill(t *testing.T) {
	db, mock := newMock(t)
	store := NewPostgresStore(db, 3000)
	day := time.Date(2026, time.August, 5, 0, 0, 0, 0, time.UTC)

	studentRows := sqlmock.NewRows([]string{"id", "name", "phone", "batch", "join_date", "status", "monthly_fee", "teacher", "created_at"}).
		AddRow("s1", "Rohan Verma", "+91-9876543212", nil, nil, nil, nil, nil, nil)
	mock.ExpectQuery("SELECT id, name, phone").WillReturnRows(studentRows)

	// student_name column missing: reduced select plus name backfill
	mock.ExpectQuery("SELECT id, type, category").WillReturnError(undefinedColumn())
	txRows := sqlmock.NewRows([]string{"id", "type", "category", "amount", "date", "description", "student_id", "status", "note", "created_at"}).
		AddRow("t1", "income", "Student Fee", nil, day, "fee", "s1", nil, nil, nil)
	mock.ExpectQuery("SELECT id, type, category").WillReturnRows(txRows)

	mock.ExpectQuery("SELECT id, student_id, student_name, batch, teacher").WillReturnError(undefinedColumn())
	mock.ExpectQuery("SELECT id, student_id, student_name, batch, attendance_date").WillReturnError(undefinedColumn())
	attRows := sqlmock.NewRows([]string{"id", "student_id", "attendance_date", "status"}).
		AddRow("a1", "s1", day, "present")
	mock.ExpectQuery("SELECT id, student_id, attendance_date").WillReturnRows(attRows)

	mock.ExpectQuery("SELECT name, owner, phone").WillReturnRows(
		sqlmock.NewRows([]string{"name", "owner", "phone", "email", "address"}),
	)

	snap, err := store.Snapshot(context.Background())
	require.NoError(t, err)

	require.Len(t, snap.Students, 1)
	assert.Equal(t, models.BatchMorning, snap.Students[0].Batch)
	assert.Equal(t, models.StudentActive, snap.Students[0].Status)
	assert.Equal(t, float64(3000), snap.Students[0].MonthlyFee)

	require.Len(t, snap.Transactions, 1)
	assert.Equal(t, float64(0), snap.Transactions[0].Amount)
	assert.Equal(t, models.TransactionPaid, snap.Transactions[0].Status)
	assert.Equal(t, "Rohan Verma", snap.Transactions[0].StudentName)

	require.Len(t, snap.Attendance, 1)
	assert.Equal(t, "Rohan Verma", snap.Attendance[0].StudentName)
	assert.Equal(t, models.BatchMorning, snap.Attendance[0].Batch)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreDeleteTransactionNotFound(t *testing.T) {
	db, mock := newMock(t)
	store := NewPostgresStore(db, 3000)

	mock.ExpectExec("DELETE FROM finance_transactions").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := store.DeleteTransaction(context.Background(), "missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreToggleTransactionStatus(t *testing.T) {
	db, mock := newMock(t)
	store := NewPostgresStore(db, 3000)
	day := time.Date(2026, time.August, 5, 0, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"id", "type", "category", "amount", "date", "description", "student_id", "student_name", "status", "note", "created_at"}).
		AddRow("t1", "income", "Student Fee", 2500.0, day, "fee", "s1", "Rohan Verma", "paid", nil, nil)
	mock.ExpectQuery("UPDATE finance_transactions").WillReturnRows(rows)

	tx, err := store.ToggleTransactionStatus(context.Background(), "t1")
	require.NoError(t, err)
	assert.Equal(t, models.TransactionPaid, tx.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreCreateUserAccessConflict(t *testing.T) {
	db, mock := newMock(t)
	store := NewPostgresStore(db, 3000)

	mock.ExpectExec("INSERT INTO user_access").WillReturnError(&pq.Error{Code: "23505"})

	_, err := store.CreateUserAccess(context.Background(), models.CreateUserInput{
		Email: "dup@learnngrow.in", Password: "secret1", Role: string(models.RoleAdmin),
	})
	require.Error(t, err)

	appErr := apperrors.FromError(err)
	assert.Equal(t, apperrors.ErrConflict.Code, appErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreClassifiesUnreachableDatabase(t *testing.T) {
	db, mock := newMock(t)
	store := NewPostgresStore(db, 3000)

	mock.ExpectExec("DELETE FROM finance_transactions").
		WillReturnError(errors.New("dial tcp 127.0.0.1:5432: connect: connection refused"))

	err := store.DeleteTransaction(context.Background(), "t1")
	require.Error(t, err)

	appErr := apperrors.FromError(err)
	assert.Equal(t, apperrors.ErrStoreUnavailable.Code, appErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
