package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/tuition-adp-api/internal/access"
	"github.com/noah-isme/tuition-adp-api/internal/models"
	"github.com/noah-isme/tuition-adp-api/internal/repository"
	apperrors "github.com/noah-isme/tuition-adp-api/pkg/errors"
)

// AccessService manages user role assignments. It enforces the two rules
// that sit above the store: an actor never modifies their own account, and
// the last admin can never be demoted or removed.
type AccessService struct {
	store    repository.DataStore
	validate *validator.Validate
	logger   *zap.Logger
}

func NewAccessService(store repository.DataStore, logger *zap.Logger) *AccessService {
	return &AccessService{
		store:    store,
		validate: validator.New(),
		logger:   logger,
	}
}

// List returns every user with their stored role normalised (legacy
// "teacher" rows surface as students_only, unknown roles as unassigned).
func (s *AccessService) List(ctx context.Context) ([]models.UserAccess, error) {
	list, err := s.store.ListUserAccess(ctx)
	if err != nil {
		return nil, err
	}
	for i := range list {
		if role, ok := access.NormalizeStoredRole(string(list[i].Role)); ok {
			list[i].Role = role
		} else {
			list[i].Role = ""
		}
		list[i].AssignedTeachers = access.NormalizeTeacherNames(list[i].AssignedTeachers)
	}
	return list, nil
}

// Create provisions a new user with an initial role.
func (s *AccessService) Create(ctx context.Context, input models.CreateUserInput) (*models.UserAccess, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrValidation.Code, apperrors.ErrValidation.Status, "invalid user input")
	}

	role, teachers, err := normalizeRoleInput(input.Role, input.AssignedTeachers)
	if err != nil {
		return nil, err
	}
	input.Role = string(role)
	input.AssignedTeachers = teachers

	created, err := s.store.CreateUserAccess(ctx, input)
	if err != nil {
		return nil, err
	}
	if s.logger != nil {
		s.logger.Info("user access created", zap.String("user_id", created.UserID), zap.String("role", string(created.Role)))
	}
	return created, nil
}

// UpdateRole changes a user's role. Demoting the last admin or targeting
// yourself is rejected before any write.
func (s *AccessService) UpdateRole(ctx context.Context, actorID, userID string, input models.UpdateRoleInput) (*models.UserAccess, error) {
	if actorID != "" && actorID == userID {
		return nil, apperrors.ErrSelfLockout
	}

	role, teachers, err := normalizeRoleInput(input.Role, input.AssignedTeachers)
	if err != nil {
		return nil, err
	}
	input.Role = string(role)
	input.AssignedTeachers = teachers

	list, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	target, ok := findUser(list, userID)
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	if target.Role == models.RoleAdmin && role != models.RoleAdmin {
		if countAdmins(list) <= 1 {
			return nil, apperrors.ErrLastAdmin
		}
	}

	updated, err := s.store.UpdateUserAccessRole(ctx, userID, input)
	if err != nil {
		return nil, err
	}
	if s.logger != nil {
		s.logger.Info("user role updated", zap.String("user_id", userID), zap.String("role", string(role)))
	}
	return updated, nil
}

// Delete removes a user's access (mode "access") or the whole account
// (mode "user"). Same guards as UpdateRole.
func (s *AccessService) Delete(ctx context.Context, actorID, userID, mode string) error {
	if actorID != "" && actorID == userID {
		return apperrors.ErrSelfLockout
	}

	switch mode {
	case "":
		mode = models.DeleteModeAccess
	case models.DeleteModeAccess, models.DeleteModeUser:
	default:
		return apperrors.Clone(apperrors.ErrValidation, "delete mode must be \"access\" or \"user\"")
	}

	list, err := s.List(ctx)
	if err != nil {
		return err
	}
	target, ok := findUser(list, userID)
	if !ok {
		return apperrors.ErrNotFound
	}
	if target.Role == models.RoleAdmin && countAdmins(list) <= 1 {
		return apperrors.ErrLastAdmin
	}

	if err := s.store.DeleteUserAccess(ctx, userID, mode); err != nil {
		return err
	}
	if s.logger != nil {
		s.logger.Info("user access removed", zap.String("user_id", userID), zap.String("mode", mode))
	}
	return nil
}

func normalizeRoleInput(rawRole string, rawTeachers []string) (models.AppRole, []string, error) {
	role, ok := access.NormalizeStoredRole(rawRole)
	if !ok {
		return "", nil, apperrors.Clone(apperrors.ErrValidation, "role must be \"admin\" or \"students_only\"")
	}

	if role != models.RoleStudentsOnly {
		return role, nil, nil
	}

	teachers := access.NormalizeTeacherNames(rawTeachers)
	if len(teachers) == 0 {
		return "", nil, apperrors.Clone(apperrors.ErrValidation, "at least one assigned teacher is required for the students_only role")
	}
	return role, teachers, nil
}

func findUser(list []models.UserAccess, userID string) (models.UserAccess, bool) {
	for _, u := range list {
		if u.UserID == userID {
			return u, true
		}
	}
	return models.UserAccess{}, false
}

func countAdmins(list []models.UserAccess) int {
	count := 0
	for _, u := range list {
		if u.Role == models.RoleAdmin {
			count++
		}
	}
	return count
}
