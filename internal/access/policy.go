package access

import (
	"strings"

	"github.com/noah-isme/tuition-adp-api/internal/models"
)

var publicPaths = []string{"/login"}

// DefaultNavItems is the full client navigation before role filtering.
func DefaultNavItems() []models.NavItem {
	return []models.NavItem{
		{Title: "Dashboard", Path: "/", Icon: "layout-dashboard"},
		{Title: "Students", Path: "/students", Icon: "users"},
		{Title: "Finance", Path: "/finance", Icon: "indian-rupee"},
		{Title: "Attendance", Path: "/attendance", Icon: "calendar-check"},
		{Title: "Settings", Path: "/settings", Icon: "settings"},
	}
}

// IsPublicPath reports whether a path is reachable without authentication.
func IsPublicPath(path string) bool {
	for _, p := range publicPaths {
		if path == p || strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return false
}

// DefaultPathForRole returns the landing path for a role.
func DefaultPathForRole(role models.AppRole) string {
	if role == models.RoleStudentsOnly {
		return "/students"
	}
	return "/"
}

// CanRoleAccessPath decides whether a role may open a client path. Unknown
// roles get nothing beyond the public paths.
func CanRoleAccessPath(role models.AppRole, path string) bool {
	if IsPublicPath(path) {
		return true
	}

	switch role {
	case models.RoleAdmin:
		return true
	case models.RoleStudentsOnly:
		return path == "/students" || strings.HasPrefix(path, "/students/")
	}

	return false
}

// FilterNavItemsByRole trims the navigation to what the role may open. With
// auth disabled, or before a role is known, every item passes through, the
// same bypass the role scope applies for an absent role.
func FilterNavItemsByRole(items []models.NavItem, role models.AppRole, authEnabled bool) []models.NavItem {
	if !authEnabled || role == "" {
		out := make([]models.NavItem, len(items))
		copy(out, items)
		return out
	}

	out := make([]models.NavItem, 0, len(items))
	for _, item := range items {
		if CanRoleAccessPath(role, item.Path) {
			out = append(out, item)
		}
	}
	return out
}

// NormalizeStoredRole maps a persisted role value onto an application role.
// Legacy "teacher" rows behave as students_only. Anything else is treated as
// unassigned.
func NormalizeStoredRole(stored string) (models.AppRole, bool) {
	switch strings.TrimSpace(stored) {
	case string(models.RoleAdmin):
		return models.RoleAdmin, true
	case string(models.RoleStudentsOnly), models.LegacyRoleTeacher:
		return models.RoleStudentsOnly, true
	}
	return "", false
}
