package repository

import (
	"context"
	"strings"
	"time"

	"github.com/noah-isme/tuition-adp-api/internal/models"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// DataStore is the persistence contract. Two implementations exist: a
// PostgreSQL store and an in-memory store seeded with demo data. The
// implementation is chosen once at startup.
type DataStore interface {
	Snapshot(ctx context.Context) (models.AppDataSnapshot, error)

	AddStudent(ctx context.Context, input models.StudentInput) (*models.Student, error)
	UpdateStudent(ctx context.Context, id string, input models.StudentInput) (*models.Student, error)
	DeleteStudent(ctx context.Context, id string) error

	AddTransaction(ctx context.Context, input models.TransactionInput) (*models.FinanceTransaction, error)
	UpdateTransaction(ctx context.Context, id string, input models.TransactionInput) (*models.FinanceTransaction, error)
	DeleteTransaction(ctx context.Context, id string) error
	ToggleTransactionStatus(ctx context.Context, id string) (*models.FinanceTransaction, error)

	SaveAttendance(ctx context.Context, date time.Time, entries []models.AttendanceDraft) ([]models.AttendanceRecord, error)

	UpdateProfile(ctx context.Context, input models.ProfileInput) (*models.BusinessProfile, error)
	ResetAllData(ctx context.Context) error

	ListUserAccess(ctx context.Context) ([]models.UserAccess, error)
	CreateUserAccess(ctx context.Context, input models.CreateUserInput) (*models.UserAccess, error)
	UpdateUserAccessRole(ctx context.Context, userID string, input models.UpdateRoleInput) (*models.UserAccess, error)
	DeleteUserAccess(ctx context.Context, userID, mode string) error
	AccountByEmail(ctx context.Context, email string) (*models.UserAccount, error)

	Ping(ctx context.Context) error
}

// ParseDate parses a wire date, tolerating full timestamps. The zero time
// signals an unparsable value; callers treat such rows as outside any month.
func ParseDate(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}
	}
	if t, err := time.Parse(DateLayout, raw); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t
	}
	return time.Time{}
}

// FormatDate renders a date in the wire format.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

// LinkKey builds the identity key used to re-link finance rows to students
// after a reset, where fresh IDs are assigned.
func LinkKey(name, phone string) string {
	return strings.ToLower(strings.TrimSpace(name)) + "::" + strings.ToLower(strings.TrimSpace(phone))
}
