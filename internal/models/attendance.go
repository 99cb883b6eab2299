package models

import "time"

// Attendance statuses.
const (
	AttendancePresent = "present"
	AttendanceAbsent  = "absent"
)

// AttendanceRecord marks one student on one date. A student has at most one
// record per date; saving again overwrites the previous status.
type AttendanceRecord struct {
	ID          string    `json:"id" db:"id"`
	StudentID   string    `json:"studentId" db:"student_id"`
	StudentName string    `json:"studentName,omitempty" db:"student_name"`
	Batch       string    `json:"batch,omitempty" db:"batch"`
	Teacher     string    `json:"teacher,omitempty" db:"teacher"`
	Date        time.Time `json:"date" db:"attendance_date"`
	Status      string    `json:"status" db:"status"`
	Note        string    `json:"note,omitempty" db:"note"`
}

// AttendanceDraft is one entry of a client-submitted attendance sheet. The
// sheet date is carried once at the request level.
type AttendanceDraft struct {
	StudentID string `json:"studentId" binding:"required"`
	Status    string `json:"status" binding:"required,oneof=present absent"`
	Note      string `json:"note"`
}
