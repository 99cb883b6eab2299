package models

import "time"

// Batch identifies the session a student attends.
const (
	BatchMorning = "morning"
	BatchEvening = "evening"
)

// Student lifecycle states.
const (
	StudentActive   = "active"
	StudentInactive = "inactive"
)

// DefaultMonthlyFee is applied when a stored fee is missing or unparsable.
const DefaultMonthlyFee = 3000

// Student is an enrolled student record.
type Student struct {
	ID         string    `json:"id" db:"id"`
	Name       string    `json:"name" db:"name"`
	Phone      string    `json:"phone" db:"phone"`
	Batch      string    `json:"batch" db:"batch"`
	JoinDate   time.Time `json:"joinDate" db:"join_date"`
	Status     string    `json:"status" db:"status"`
	MonthlyFee float64   `json:"monthlyFee" db:"monthly_fee"`
	Teacher    string    `json:"teacher,omitempty" db:"teacher"`
	CreatedAt  time.Time `json:"createdAt,omitempty" db:"created_at"`
}

// StudentInput carries client-supplied student fields.
type StudentInput struct {
	Name       string  `json:"name" binding:"required"`
	Phone      string  `json:"phone" binding:"required"`
	Batch      string  `json:"batch" binding:"required,oneof=morning evening"`
	JoinDate   string  `json:"joinDate" binding:"required"`
	Status     string  `json:"status" binding:"required,oneof=active inactive"`
	MonthlyFee float64 `json:"monthlyFee" binding:"gte=0"`
	Teacher    string  `json:"teacher"`
}
