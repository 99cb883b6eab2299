package models

import "time"

// AppRole is an application role after normalisation. Legacy records may
// store "teacher"; it is treated as RoleStudentsOnly everywhere.
type AppRole string

const (
	RoleAdmin        AppRole = "admin"
	RoleStudentsOnly AppRole = "students_only"

	// LegacyRoleTeacher is accepted on read for backward compatibility.
	LegacyRoleTeacher = "teacher"
)

// Delete modes for user removal.
const (
	DeleteModeAccess = "access" // remove role/permissions, keep the account
	DeleteModeUser   = "user"   // remove the account entirely
)

// UserAccess is a user's role assignment and teacher scoping.
type UserAccess struct {
	UserID           string    `json:"userId" db:"user_id"`
	Email            string    `json:"email" db:"email"`
	Role             AppRole   `json:"role" db:"role"`
	AssignedTeachers []string  `json:"assignedTeachers,omitempty" db:"assigned_teachers"`
	CreatedAt        time.Time `json:"createdAt,omitempty" db:"created_at"`
}

// UserAccount is an account row including the credential hash. The hash
// never leaves the repository layer.
type UserAccount struct {
	UserID           string    `json:"userId" db:"user_id"`
	Email            string    `json:"email" db:"email"`
	PasswordHash     string    `json:"-" db:"password_hash"`
	Role             AppRole   `json:"role" db:"role"`
	AssignedTeachers []string  `json:"assignedTeachers,omitempty" db:"-"`
	CreatedAt        time.Time `json:"createdAt,omitempty" db:"created_at"`
}

// CreateUserInput carries fields for provisioning a new user.
type CreateUserInput struct {
	Email            string   `json:"email" binding:"required,email"`
	Password         string   `json:"password" binding:"required,min=6"`
	Role             string   `json:"role" binding:"required"`
	AssignedTeachers []string `json:"assignedTeachers"`
}

// UpdateRoleInput carries a role change for an existing user.
type UpdateRoleInput struct {
	Role             string   `json:"role" binding:"required"`
	AssignedTeachers []string `json:"assignedTeachers"`
}

// NavItem is one navigation entry surfaced to a client, already filtered by
// the caller's role.
type NavItem struct {
	Title string `json:"title"`
	Path  string `json:"path"`
	Icon  string `json:"icon,omitempty"`
}
