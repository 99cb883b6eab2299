package repository

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/tuition-adp-api/internal/models"
)

// dateFromOffset builds a date relative to now, shifted by whole months and
// pinned to a day of month. Overflow normalises the same way the calendar
// does (Jan 31 + 1 month = Mar 3).
func dateFromOffset(now time.Time, monthOffset, day int) time.Time {
	return time.Date(now.Year(), now.Month()+time.Month(monthOffset), day, 0, 0, 0, 0, time.UTC)
}

func demoStudents(now time.Time) []models.Student {
	return []models.Student{
		{ID: "stu-001", Name: "Aarav Sharma", Phone: "+91-9876543210", Batch: models.BatchMorning, JoinDate: dateFromOffset(now, -5, 8), Status: models.StudentActive, MonthlyFee: 3000, Teacher: "Priya Mehta"},
		{ID: "stu-002", Name: "Meera Joshi", Phone: "+91-9876543211", Batch: models.BatchEvening, JoinDate: dateFromOffset(now, -4, 14), Status: models.StudentActive, MonthlyFee: 3000, Teacher: "Rahul Verma"},
		{ID: "stu-003", Name: "Rohan Verma", Phone: "+91-9876543212", Batch: models.BatchMorning, JoinDate: dateFromOffset(now, -3, 5), Status: models.StudentActive, MonthlyFee: 3000, Teacher: "Priya Mehta"},
		{ID: "stu-004", Name: "Isha Kapoor", Phone: "+91-9876543213", Batch: models.BatchEvening, JoinDate: dateFromOffset(now, -2, 20), Status: models.StudentActive, MonthlyFee: 3000, Teacher: "Rahul Verma"},
		{ID: "stu-005", Name: "Kabir Singh", Phone: "+91-9876543214", Batch: models.BatchMorning, JoinDate: dateFromOffset(now, -1, 7), Status: models.StudentInactive, MonthlyFee: 3000, Teacher: "Priya Mehta"},
		{ID: "stu-006", Name: "Anaya Mishra", Phone: "+91-9876543215", Batch: models.BatchEvening, JoinDate: dateFromOffset(now, -1, 17), Status: models.StudentActive, MonthlyFee: 3000, Teacher: "Rahul Verma"},
	}
}

func demoTransactions(now time.Time) []models.FinanceTransaction {
	return []models.FinanceTransaction{
		{ID: "fin-001", Date: dateFromOffset(now, -5, 3), Category: models.CategoryStudentFee, Type: models.TransactionIncome, Amount: 8800, Status: models.TransactionPaid, Description: "Batch A fee collection"},
		{ID: "fin-002", Date: dateFromOffset(now, -5, 4), Category: "Rent", Type: models.TransactionExpense, Amount: 12000, Status: models.TransactionPaid, Description: "Center rent"},
		{ID: "fin-003", Date: dateFromOffset(now, -5, 9), Category: "Salary", Type: models.TransactionExpense, Amount: 18000, Status: models.TransactionPaid, Description: "Tutor payroll"},
		{ID: "fin-004", Date: dateFromOffset(now, -4, 3), Category: models.CategoryStudentFee, Type: models.TransactionIncome, Amount: 12000, Status: models.TransactionPaid, Description: "Monthly fee collection"},
		{ID: "fin-005", Date: dateFromOffset(now, -4, 5), Category: "Utilities", Type: models.TransactionExpense, Amount: 3500, Status: models.TransactionPaid, Description: "Electricity and internet"},
		{ID: "fin-006", Date: dateFromOffset(now, -4, 9), Category: "Rent", Type: models.TransactionExpense, Amount: 12000, Status: models.TransactionPaid, Description: "Center rent"},
		{ID: "fin-007", Date: dateFromOffset(now, -3, 2), Category: models.CategoryStudentFee, Type: models.TransactionIncome, Amount: 13800, Status: models.TransactionPaid, Description: "Monthly fee collection"},
		{ID: "fin-008", Date: dateFromOffset(now, -3, 11), Category: "Salary", Type: models.TransactionExpense, Amount: 19000, Status: models.TransactionPaid, Description: "Tutor payroll"},
		{ID: "fin-009", Date: dateFromOffset(now, -2, 2), Category: models.CategoryStudentFee, Type: models.TransactionIncome, Amount: 15200, Status: models.TransactionPaid, Description: "Monthly fee collection"},
		{ID: "fin-010", Date: dateFromOffset(now, -2, 7), Category: "Rent", Type: models.TransactionExpense, Amount: 12000, Status: models.TransactionPaid, Description: "Center rent"},
		{ID: "fin-011", Date: dateFromOffset(now, -1, 4), Category: models.CategoryStudentFee, Type: models.TransactionIncome, Amount: 16600, Status: models.TransactionPaid, Description: "Monthly fee collection"},
		{ID: "fin-012", Date: dateFromOffset(now, -1, 10), Category: "Salary", Type: models.TransactionExpense, Amount: 20000, Status: models.TransactionPaid, Description: "Tutor payroll"},
		{ID: "fin-013", Date: dateFromOffset(now, 0, 2), Category: models.CategoryStudentFee, Type: models.TransactionIncome, Amount: 13400, Status: models.TransactionPaid, Description: "Monthly collection"},
		{ID: "fin-014", Date: dateFromOffset(now, 0, 5), Category: models.CategoryStudentFee, Type: models.TransactionIncome, Amount: 2500, Status: models.TransactionPending, Description: "Rohan fee pending", StudentID: "stu-003", StudentName: "Rohan Verma"},
		{ID: "fin-015", Date: dateFromOffset(now, 0, 8), Category: "Rent", Type: models.TransactionExpense, Amount: 12000, Status: models.TransactionPaid, Description: "Center rent"},
		{ID: "fin-016", Date: dateFromOffset(now, 0, 12), Category: "Utilities", Type: models.TransactionExpense, Amount: 3800, Status: models.TransactionPaid, Description: "Electricity and internet"},
		{ID: "fin-017", Date: dateFromOffset(now, 0, 14), Category: "Salary", Type: models.TransactionExpense, Amount: 20000, Status: models.TransactionPaid, Description: "Tutor payroll"},
	}
}

func demoAttendance(now time.Time) []models.AttendanceRecord {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return []models.AttendanceRecord{
		{ID: "att-001", StudentID: "stu-001", StudentName: "Aarav Sharma", Batch: models.BatchMorning, Teacher: "Priya Mehta", Date: today, Status: models.AttendancePresent},
		{ID: "att-002", StudentID: "stu-002", StudentName: "Meera Joshi", Batch: models.BatchEvening, Teacher: "Rahul Verma", Date: today, Status: models.AttendancePresent},
		{ID: "att-003", StudentID: "stu-003", StudentName: "Rohan Verma", Batch: models.BatchMorning, Teacher: "Priya Mehta", Date: today, Status: models.AttendanceAbsent, Note: "Sick leave"},
		{ID: "att-004", StudentID: "stu-004", StudentName: "Isha Kapoor", Batch: models.BatchEvening, Teacher: "Rahul Verma", Date: today, Status: models.AttendancePresent},
		{ID: "att-005", StudentID: "stu-006", StudentName: "Anaya Mishra", Batch: models.BatchEvening, Teacher: "Rahul Verma", Date: today, Status: models.AttendancePresent},
	}
}

func demoProfile() models.BusinessProfile {
	return models.BusinessProfile{
		Name:    "Learn N Grow English Coaching",
		Owner:   "Ritesh Bisht",
		Phone:   "+91-9876500000",
		Address: "Main Market Road, Haldwani, Uttarakhand",
	}
}

func demoAccounts(now time.Time) []models.UserAccount {
	hash := func(password string) string {
		h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return ""
		}
		return string(h)
	}

	return []models.UserAccount{
		{
			UserID:       "usr-001",
			Email:        "admin@learnngrow.in",
			PasswordHash: hash("admin123"),
			Role:         models.RoleAdmin,
			CreatedAt:    now,
		},
		{
			UserID:           "usr-002",
			Email:            "priya@learnngrow.in",
			PasswordHash:     hash("teach123"),
			Role:             models.RoleStudentsOnly,
			AssignedTeachers: []string{"Priya Mehta"},
			CreatedAt:        now,
		},
	}
}
