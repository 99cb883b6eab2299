package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/tuition-adp-api/internal/models"
	"github.com/noah-isme/tuition-adp-api/internal/repository"
	apperrors "github.com/noah-isme/tuition-adp-api/pkg/errors"
)

// seeded accounts: usr-001 (admin), usr-002 (students_only)
func newAccessFixture(t *testing.T) *AccessService {
	t.Helper()
	store := repository.NewMemoryStore(time.Now().UTC())
	return NewAccessService(store, zap.NewNop())
}

func TestAccessServiceLastAdminCannotBeDemoted(t *testing.T) {
	svc := newAccessFixture(t)
	ctx := context.Background()

	_, err := svc.UpdateRole(ctx, "usr-002", "usr-001", models.UpdateRoleInput{
		Role: string(models.RoleStudentsOnly), AssignedTeachers: []string{"Priya Mehta"},
	})
	assert.ErrorIs(t, err, apperrors.ErrLastAdmin)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	admins := 0
	for _, u := range list {
		if u.Role == models.RoleAdmin {
			admins++
		}
	}
	assert.Equal(t, 1, admins)
}

func TestAccessServiceLastAdminCannotBeDeleted(t *testing.T) {
	svc := newAccessFixture(t)

	err := svc.Delete(context.Background(), "usr-002", "usr-001", models.DeleteModeUser)
	assert.ErrorIs(t, err, apperrors.ErrLastAdmin)
}

func TestAccessServiceDemoteAllowedWithSecondAdmin(t *testing.T) {
	svc := newAccessFixture(t)
	ctx := context.Background()

	second, err := svc.Create(ctx, models.CreateUserInput{
		Email: "second@learnngrow.in", Password: "secret1", Role: string(models.RoleAdmin),
	})
	require.NoError(t, err)

	updated, err := svc.UpdateRole(ctx, second.UserID, "usr-001", models.UpdateRoleInput{
		Role: string(models.RoleStudentsOnly), AssignedTeachers: []string{"Rahul Verma"},
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleStudentsOnly, updated.Role)
}

func TestAccessServiceSelfLockout(t *testing.T) {
	svc := newAccessFixture(t)
	ctx := context.Background()

	_, err := svc.UpdateRole(ctx, "usr-001", "usr-001", models.UpdateRoleInput{
		Role: string(models.RoleStudentsOnly), AssignedTeachers: []string{"Priya Mehta"},
	})
	assert.ErrorIs(t, err, apperrors.ErrSelfLockout)

	err = svc.Delete(ctx, "usr-001", "usr-001", models.DeleteModeUser)
	assert.ErrorIs(t, err, apperrors.ErrSelfLockout)
}

func TestAccessServiceCreateNormalizesLegacyTeacherRole(t *testing.T) {
	svc := newAccessFixture(t)

	created, err := svc.Create(context.Background(), models.CreateUserInput{
		Email: "legacy@learnngrow.in", Password: "secret1",
		Role: models.LegacyRoleTeacher, AssignedTeachers: []string{" Priya Mehta ", "priya mehta"},
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleStudentsOnly, created.Role)
	assert.Equal(t, []string{"Priya Mehta"}, created.AssignedTeachers)
}

func TestAccessServiceStudentsOnlyRequiresTeachers(t *testing.T) {
	svc := newAccessFixture(t)

	_, err := svc.Create(context.Background(), models.CreateUserInput{
		Email: "noteachers@learnngrow.in", Password: "secret1",
		Role: string(models.RoleStudentsOnly),
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrValidation.Code, apperrors.FromError(err).Code)
}

func TestAccessServiceRejectsUnknownRole(t *testing.T) {
	svc := newAccessFixture(t)

	_, err := svc.Create(context.Background(), models.CreateUserInput{
		Email: "odd@learnngrow.in", Password: "secret1", Role: "superuser",
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrValidation.Code, apperrors.FromError(err).Code)
}

func TestAccessServiceDeleteModeValidation(t *testing.T) {
	svc := newAccessFixture(t)

	err := svc.Delete(context.Background(), "usr-001", "usr-002", "purge")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrValidation.Code, apperrors.FromError(err).Code)

	// empty mode defaults to access removal
	require.NoError(t, svc.Delete(context.Background(), "usr-001", "usr-002", ""))
}
