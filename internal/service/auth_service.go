package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/tuition-adp-api/internal/access"
	"github.com/noah-isme/tuition-adp-api/internal/models"
	"github.com/noah-isme/tuition-adp-api/internal/repository"
	"github.com/noah-isme/tuition-adp-api/pkg/config"
	apperrors "github.com/noah-isme/tuition-adp-api/pkg/errors"
)

// AuthService verifies credentials and issues/validates JWTs carrying the
// caller's role and assigned teachers.
type AuthService struct {
	store  repository.DataStore
	cfg    config.JWTConfig
	logger *zap.Logger
}

func NewAuthService(store repository.DataStore, cfg config.JWTConfig, logger *zap.Logger) *AuthService {
	return &AuthService{store: store, cfg: cfg, logger: logger}
}

// Login checks the credentials and returns a signed token plus the user's
// access profile. A valid account with no assigned role may still log in;
// the scoping layer gives it nothing.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	account, err := s.store.AccountByEmail(ctx, req.Email)
	if err != nil {
		appErr := apperrors.FromError(err)
		if appErr.Code == apperrors.ErrNotFound.Code {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)) != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	role := ""
	if normalized, ok := access.NormalizeStoredRole(string(account.Role)); ok {
		role = string(normalized)
	}
	teachers := access.NormalizeTeacherNames(account.AssignedTeachers)

	now := time.Now().UTC()
	claims := models.JWTClaims{
		UserID:           account.UserID,
		Email:            account.Email,
		Role:             role,
		AssignedTeachers: teachers,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   account.UserID,
			Issuer:    s.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.Expiration)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrInternal.Code, apperrors.ErrInternal.Status, "sign token")
	}

	if s.logger != nil {
		s.logger.Info("user logged in", zap.String("user_id", account.UserID), zap.String("role", role))
	}

	return &models.LoginResponse{
		Token: token,
		User: models.UserAccess{
			UserID:           account.UserID,
			Email:            account.Email,
			Role:             models.AppRole(role),
			AssignedTeachers: teachers,
			CreatedAt:        account.CreatedAt,
		},
	}, nil
}

// ValidateToken parses and verifies a bearer token.
func (s *AuthService) ValidateToken(raw string) (*models.JWTClaims, error) {
	claims := &models.JWTClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperrors.ErrUnauthorized
		}
		return []byte(s.cfg.Secret), nil
	})
	if err != nil || !token.Valid {
		return nil, apperrors.ErrUnauthorized
	}
	return claims, nil
}
