package access

import (
	"strings"

	"github.com/noah-isme/tuition-adp-api/internal/models"
)

// NormalizeTeacherNames trims, drops empties and deduplicates names
// case-insensitively while preserving the first spelling seen.
func NormalizeTeacherNames(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	normalized := make([]string, 0, len(values))

	for _, value := range values {
		next := strings.TrimSpace(value)
		if next == "" {
			continue
		}
		key := strings.ToLower(next)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		normalized = append(normalized, next)
	}

	return normalized
}

// ApplyRoleScope returns the slice of the snapshot the actor may see.
//
// Admins see everything. For students_only the permitted teacher set decides:
// an empty set yields empty students/attendance/finances (fail closed).
// Otherwise a student is kept when their teacher matches a permitted name,
// an attendance row is kept when its student is kept or its own teacher
// matches, and a finance row is kept only when it links to a kept student.
// Finance rows without a student link are never visible to restricted actors.
func ApplyRoleScope(snapshot models.AppDataSnapshot, role models.AppRole, assignedTeachers []string) models.AppDataSnapshot {
	if role != models.RoleStudentsOnly {
		if role == models.RoleAdmin || role == "" {
			snapshot.Normalize()
			return snapshot
		}
		// unknown role: fail closed
		return emptyScope(snapshot)
	}

	permitted := make(map[string]struct{})
	for _, name := range NormalizeTeacherNames(assignedTeachers) {
		permitted[strings.ToLower(name)] = struct{}{}
	}
	if len(permitted) == 0 {
		return emptyScope(snapshot)
	}

	matches := func(teacher string) bool {
		key := strings.ToLower(strings.TrimSpace(teacher))
		if key == "" {
			return false
		}
		_, ok := permitted[key]
		return ok
	}

	keptStudents := make(map[string]struct{})
	students := make([]models.Student, 0, len(snapshot.Students))
	for _, s := range snapshot.Students {
		if matches(s.Teacher) {
			keptStudents[s.ID] = struct{}{}
			students = append(students, s)
		}
	}

	attendance := make([]models.AttendanceRecord, 0, len(snapshot.Attendance))
	for _, a := range snapshot.Attendance {
		if _, ok := keptStudents[a.StudentID]; ok || matches(a.Teacher) {
			attendance = append(attendance, a)
		}
	}

	transactions := make([]models.FinanceTransaction, 0, len(snapshot.Transactions))
	for _, t := range snapshot.Transactions {
		if t.StudentID == "" {
			continue
		}
		if _, ok := keptStudents[t.StudentID]; ok {
			transactions = append(transactions, t)
		}
	}

	return models.AppDataSnapshot{
		Students:     students,
		Transactions: transactions,
		Attendance:   attendance,
		Profile:      snapshot.Profile,
	}
}

func emptyScope(snapshot models.AppDataSnapshot) models.AppDataSnapshot {
	return models.AppDataSnapshot{
		Students:     []models.Student{},
		Transactions: []models.FinanceTransaction{},
		Attendance:   []models.AttendanceRecord{},
		Profile:      snapshot.Profile,
	}
}
