package models

// AppDataSnapshot is the full application dataset handed to clients in one
// payload. Slices are never nil so the JSON shape stays stable.
type AppDataSnapshot struct {
	Students     []Student            `json:"students"`
	Transactions []FinanceTransaction `json:"transactions"`
	Attendance   []AttendanceRecord   `json:"attendance"`
	Profile      BusinessProfile      `json:"profile"`
}

// Normalize replaces nil slices with empty ones.
func (s *AppDataSnapshot) Normalize() {
	if s.Students == nil {
		s.Students = []Student{}
	}
	if s.Transactions == nil {
		s.Transactions = []FinanceTransaction{}
	}
	if s.Attendance == nil {
		s.Attendance = []AttendanceRecord{}
	}
}
