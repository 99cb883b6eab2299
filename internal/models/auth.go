package models

import "github.com/golang-jwt/jwt/v5"

// LoginRequest carries credentials for authentication.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse returns the issued token and the caller's access profile.
type LoginResponse struct {
	Token string     `json:"token"`
	User  UserAccess `json:"user"`
}

// JWTClaims embeds registered claims plus application identity fields.
type JWTClaims struct {
	UserID           string   `json:"uid"`
	Email            string   `json:"email"`
	Role             string   `json:"role"`
	AssignedTeachers []string `json:"assignedTeachers,omitempty"`
	jwt.RegisteredClaims
}
