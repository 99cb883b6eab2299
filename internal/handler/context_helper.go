package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/tuition-adp-api/internal/middleware"
	"github.com/noah-isme/tuition-adp-api/internal/models"
)

// actorRole returns the authenticated role, empty when unassigned.
func actorRole(c *gin.Context) models.AppRole {
	claims, ok := middleware.CurrentClaims(c)
	if !ok {
		return ""
	}
	return models.AppRole(claims.Role)
}

// actorTeachers returns the authenticated assigned-teacher set.
func actorTeachers(c *gin.Context) []string {
	claims, ok := middleware.CurrentClaims(c)
	if !ok {
		return nil
	}
	return claims.AssignedTeachers
}

// actorID returns the authenticated user id, empty in no-auth mode.
func actorID(c *gin.Context) string {
	claims, ok := middleware.CurrentClaims(c)
	if !ok {
		return ""
	}
	return claims.UserID
}
