package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/tuition-adp-api/internal/models"
)

type navigationPayload struct {
	Items       []models.NavItem `json:"items"`
	DefaultPath string           `json:"defaultPath"`
}

func TestNavigationHandlerAdminSeesEverything(t *testing.T) {
	handler := NewNavigationHandler(true)

	rec, c := testContext(t, http.MethodGet, "/navigation", nil)
	asAdmin(c)
	handler.Get(c)

	require.Equal(t, http.StatusOK, rec.Code)
	var payload navigationPayload
	decodeEnvelope(t, rec, &payload)
	assert.Len(t, payload.Items, 5)
	assert.Equal(t, "/", payload.DefaultPath)
}

func TestNavigationHandlerRestrictedSeesStudentsOnly(t *testing.T) {
	handler := NewNavigationHandler(true)

	rec, c := testContext(t, http.MethodGet, "/navigation", nil)
	asRestricted(c)
	handler.Get(c)

	require.Equal(t, http.StatusOK, rec.Code)
	var payload navigationPayload
	decodeEnvelope(t, rec, &payload)
	require.Len(t, payload.Items, 1)
	assert.Equal(t, "/students", payload.Items[0].Path)
	assert.Equal(t, "/students", payload.DefaultPath)
}
