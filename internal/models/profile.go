package models

// BusinessProfile is the singleton organisation profile shown on the
// dashboard and printed on reports.
type BusinessProfile struct {
	Name    string `json:"name" db:"name"`
	Owner   string `json:"owner" db:"owner"`
	Phone   string `json:"phone" db:"phone"`
	Email   string `json:"email" db:"email"`
	Address string `json:"address" db:"address"`
}

// ProfileInput carries client-supplied profile fields.
type ProfileInput struct {
	Name    string `json:"name" binding:"required"`
	Owner   string `json:"owner"`
	Phone   string `json:"phone"`
	Email   string `json:"email" binding:"omitempty,email"`
	Address string `json:"address"`
}
