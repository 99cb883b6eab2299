package access

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/tuition-adp-api/internal/models"
)

func TestCanRoleAccessPath(t *testing.T) {
	assert.True(t, CanRoleAccessPath(models.RoleAdmin, "/settings"))
	assert.True(t, CanRoleAccessPath(models.RoleStudentsOnly, "/students"))
	assert.True(t, CanRoleAccessPath(models.RoleStudentsOnly, "/students/s1"))
	assert.False(t, CanRoleAccessPath(models.RoleStudentsOnly, "/finance"))
	assert.False(t, CanRoleAccessPath("mystery", "/students"))
	assert.True(t, CanRoleAccessPath("", "/login"))
}

func TestDefaultPathForRole(t *testing.T) {
	assert.Equal(t, "/students", DefaultPathForRole(models.RoleStudentsOnly))
	assert.Equal(t, "/", DefaultPathForRole(models.RoleAdmin))
}

func TestFilterNavItemsByRole(t *testing.T) {
	items := []models.NavItem{
		{Title: "Dashboard", Path: "/"},
		{Title: "Students", Path: "/students"},
		{Title: "Finance", Path: "/finance"},
	}

	restricted := FilterNavItemsByRole(items, models.RoleStudentsOnly, true)
	if assert.Len(t, restricted, 1) {
		assert.Equal(t, "/students", restricted[0].Path)
	}

	open := FilterNavItemsByRole(items, "", false)
	assert.Len(t, open, 3)

	// an actor with no role yet sees the full nav even with auth on,
	// mirroring the absent-role bypass in ApplyRoleScope
	unassigned := FilterNavItemsByRole(items, "", true)
	assert.Len(t, unassigned, 3)
}

func TestNormalizeStoredRole(t *testing.T) {
	role, ok := NormalizeStoredRole("teacher")
	assert.True(t, ok)
	assert.Equal(t, models.RoleStudentsOnly, role)

	role, ok = NormalizeStoredRole(" admin ")
	assert.True(t, ok)
	assert.Equal(t, models.RoleAdmin, role)

	_, ok = NormalizeStoredRole("superuser")
	assert.False(t, ok)

	_, ok = NormalizeStoredRole("")
	assert.False(t, ok)
}
