package access

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/tuition-adp-api/internal/models"
)

func scopeFixture() models.AppDataSnapshot {
	return models.AppDataSnapshot{
		Students: []models.Student{
			{ID: "s1", Name: "Aarav", Teacher: "Priya Mehta"},
			{ID: "s2", Name: "Diya", Teacher: "Rahul Verma"},
			{ID: "s3", Name: "Ishaan", Teacher: ""},
		},
		Transactions: []models.FinanceTransaction{
			{ID: "t1", StudentID: "s1", Category: models.CategoryStudentFee, Amount: 3000},
			{ID: "t2", StudentID: "s2", Category: models.CategoryStudentFee, Amount: 3000},
			{ID: "t3", StudentID: "", Category: "Rent", Amount: 12000},
		},
		Attendance: []models.AttendanceRecord{
			{ID: "a1", StudentID: "s1"},
			{ID: "a2", StudentID: "s2"},
			{ID: "a3", StudentID: "gone", Teacher: "priya mehta"},
		},
	}
}

func TestApplyRoleScopeAdminSeesEverything(t *testing.T) {
	snap := scopeFixture()

	scoped := ApplyRoleScope(snap, models.RoleAdmin, nil)

	assert.Len(t, scoped.Students, 3)
	assert.Len(t, scoped.Transactions, 3)
	assert.Len(t, scoped.Attendance, 3)
}

func TestApplyRoleScopeRestrictedByTeacher(t *testing.T) {
	snap := scopeFixture()

	scoped := ApplyRoleScope(snap, models.RoleStudentsOnly, []string{"  priya MEHTA "})

	if assert.Len(t, scoped.Students, 1) {
		assert.Equal(t, "s1", scoped.Students[0].ID)
	}

	// t3 has no student link and must never appear for restricted actors.
	if assert.Len(t, scoped.Transactions, 1) {
		assert.Equal(t, "t1", scoped.Transactions[0].ID)
	}

	// a3 matches by its own teacher field even though its student is gone.
	assert.Len(t, scoped.Attendance, 2)
}

func TestApplyRoleScopeEmptyTeacherSetFailsClosed(t *testing.T) {
	snap := scopeFixture()

	scoped := ApplyRoleScope(snap, models.RoleStudentsOnly, []string{"  ", ""})

	assert.Empty(t, scoped.Students)
	assert.Empty(t, scoped.Transactions)
	assert.Empty(t, scoped.Attendance)
	assert.NotNil(t, scoped.Students)
}

func TestApplyRoleScopeAbsentRoleIsNoOp(t *testing.T) {
	snap := scopeFixture()

	scoped := ApplyRoleScope(snap, "", nil)

	assert.Len(t, scoped.Students, 3)
	assert.Len(t, scoped.Transactions, 3)
}

func TestNormalizeTeacherNames(t *testing.T) {
	got := NormalizeTeacherNames([]string{" Priya Mehta ", "priya mehta", "", "Rahul Verma"})

	assert.Equal(t, []string{"Priya Mehta", "Rahul Verma"}, got)
}
