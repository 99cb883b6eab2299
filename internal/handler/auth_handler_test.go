package handler

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/tuition-adp-api/internal/models"
	"github.com/noah-isme/tuition-adp-api/internal/service"
	"github.com/noah-isme/tuition-adp-api/pkg/config"
)

func newAuthHandler(t *testing.T) *AuthHandler {
	t.Helper()
	fix := newFixture(t)
	auth := service.NewAuthService(fix.store, config.JWTConfig{
		Secret:     "test-secret",
		Expiration: time.Hour,
		Issuer:     "tuition-adp-api",
	}, zap.NewNop())
	return NewAuthHandler(auth)
}

func TestAuthHandlerLoginSuccess(t *testing.T) {
	handler := newAuthHandler(t)

	rec, c := testContext(t, http.MethodPost, "/auth/login", models.LoginRequest{
		Email:    "admin@learnngrow.in",
		Password: "admin123",
	})
	handler.Login(c)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp models.LoginResponse
	decodeEnvelope(t, rec, &resp)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, models.RoleAdmin, resp.User.Role)
}

func TestAuthHandlerLoginWrongPassword(t *testing.T) {
	handler := newAuthHandler(t)

	rec, c := testContext(t, http.MethodPost, "/auth/login", models.LoginRequest{
		Email:    "admin@learnngrow.in",
		Password: "nope",
	})
	handler.Login(c)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "INVALID_CREDENTIALS", errorField(t, rec, "code"))
}

func TestAuthHandlerLoginMissingFields(t *testing.T) {
	handler := newAuthHandler(t)

	rec, c := testContext(t, http.MethodPost, "/auth/login", map[string]string{"email": "admin@learnngrow.in"})
	handler.Login(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
