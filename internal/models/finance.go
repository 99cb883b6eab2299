package models

import "time"

// Transaction types.
const (
	TransactionIncome  = "income"
	TransactionExpense = "expense"
)

// Transaction statuses.
const (
	TransactionPaid    = "paid"
	TransactionPending = "pending"
)

// CategoryStudentFee marks fee income linked to a student. Pending dues are
// counted only within this category.
const CategoryStudentFee = "Student Fee"

// TransactionCategories is the fixed category set offered to clients.
var TransactionCategories = []string{
	CategoryStudentFee,
	"Rent",
	"Salary",
	"Utilities",
	"Marketing",
	"Supplies",
}

// FinanceTransaction is a single income or expense entry. StudentID is empty
// for rows not tied to a student.
type FinanceTransaction struct {
	ID          string    `json:"id" db:"id"`
	Type        string    `json:"type" db:"type"`
	Category    string    `json:"category" db:"category"`
	Amount      float64   `json:"amount" db:"amount"`
	Date        time.Time `json:"date" db:"date"`
	Description string    `json:"description" db:"description"`
	StudentID   string    `json:"studentId,omitempty" db:"student_id"`
	StudentName string    `json:"studentName,omitempty" db:"student_name"`
	Status      string    `json:"status" db:"status"`
	Note        string    `json:"note,omitempty" db:"note"`
	CreatedAt   time.Time `json:"createdAt,omitempty" db:"created_at"`
}

// TransactionInput carries client-supplied transaction fields.
type TransactionInput struct {
	Type        string  `json:"type" binding:"required,oneof=income expense"`
	Category    string  `json:"category" binding:"required"`
	Amount      float64 `json:"amount" binding:"gt=0"`
	Date        string  `json:"date" binding:"required"`
	Description string  `json:"description"`
	StudentID   string  `json:"studentId"`
	StudentName string  `json:"studentName"`
	Status      string  `json:"status" binding:"required,oneof=paid pending"`
	Note        string  `json:"note"`
}
