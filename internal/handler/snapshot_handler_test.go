package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/tuition-adp-api/internal/middleware"
	"github.com/noah-isme/tuition-adp-api/internal/models"
	"github.com/noah-isme/tuition-adp-api/internal/repository"
	"github.com/noah-isme/tuition-adp-api/internal/service"
)

type fixture struct {
	store     *repository.MemoryStore
	snapshots *service.SnapshotService
	dues      *service.DuesService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := repository.NewMemoryStore(time.Now().UTC())
	snapshots := service.NewSnapshotService(store, zap.NewNop(), nil)
	dues := service.NewDuesService(service.DuesServiceParams{
		Snapshots:   snapshots,
		Store:       store,
		Logger:      zap.NewNop(),
		AuthEnabled: true,
	})
	return &fixture{store: store, snapshots: snapshots, dues: dues}
}

func testContext(t *testing.T, method, target string, body interface{}) (*httptest.ResponseRecorder, *gin.Context) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	return rec, c
}

func asAdmin(c *gin.Context) {
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "usr-001", Role: string(models.RoleAdmin)})
}

func asRestricted(c *gin.Context) {
	c.Set(middleware.ContextUserKey, &models.JWTClaims{
		UserID:           "usr-002",
		Role:             string(models.RoleStudentsOnly),
		AssignedTeachers: []string{"Priya Mehta"},
	})
}

type responseEnvelope struct {
	Data  json.RawMessage        `json:"data"`
	Error map[string]interface{} `json:"error"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder, dest interface{}) {
	t.Helper()
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Data)
	require.NoError(t, json.Unmarshal(envelope.Data, dest))
}

func errorField(t *testing.T, rec *httptest.ResponseRecorder, field string) string {
	t.Helper()
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Error)
	value, _ := envelope.Error[field].(string)
	return value
}

func TestSnapshotHandlerScopedForRestrictedRole(t *testing.T) {
	fix := newFixture(t)
	handler := NewSnapshotHandler(fix.snapshots, fix.dues, zap.NewNop())

	rec, c := testContext(t, http.MethodGet, "/snapshot", nil)
	asRestricted(c)
	handler.Get(c)

	require.Equal(t, http.StatusOK, rec.Code)
	var snap models.AppDataSnapshot
	decodeEnvelope(t, rec, &snap)

	require.Len(t, snap.Students, 3)
	for _, s := range snap.Students {
		assert.Equal(t, "Priya Mehta", s.Teacher)
	}
	// only the finance row linked to a visible student survives
	require.Len(t, snap.Transactions, 1)
	assert.Equal(t, "fin-014", snap.Transactions[0].ID)
	assert.Len(t, snap.Attendance, 2)
}

func TestSnapshotHandlerAdminTopsUpDues(t *testing.T) {
	fix := newFixture(t)
	handler := NewSnapshotHandler(fix.snapshots, fix.dues, zap.NewNop())

	rec, c := testContext(t, http.MethodGet, "/snapshot", nil)
	asAdmin(c)
	handler.Get(c)

	require.Equal(t, http.StatusOK, rec.Code)
	var snap models.AppDataSnapshot
	decodeEnvelope(t, rec, &snap)

	assert.Len(t, snap.Students, 6)
	// four active students without a current-month fee row receive a due
	assert.Len(t, snap.Transactions, 17+4)
}

func TestSnapshotHandlerRefresh(t *testing.T) {
	fix := newFixture(t)
	handler := NewSnapshotHandler(fix.snapshots, fix.dues, zap.NewNop())

	rec, c := testContext(t, http.MethodPost, "/snapshot/refresh", nil)
	asAdmin(c)
	handler.Refresh(c)

	require.Equal(t, http.StatusOK, rec.Code)
	var snap models.AppDataSnapshot
	decodeEnvelope(t, rec, &snap)
	assert.Len(t, snap.Students, 6)
	assert.Equal(t, "Learn N Grow English Coaching", snap.Profile.Name)
}
