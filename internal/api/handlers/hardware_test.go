package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"smarthelmet-backend/internal/models"
	"smarthelmet-backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBikeStore keeps the last upserted snapshot in memory.
type fakeBikeStore struct {
	snapshots map[string]models.StatusSnapshot
	blocked   map[string]bool
}

func newFakeBikeStore() *fakeBikeStore {
	return &fakeBikeStore{
		snapshots: make(map[string]models.StatusSnapshot),
		blocked:   make(map[string]bool),
	}
}

func (f *fakeBikeStore) UpsertStatus(bikeID string, snapshot models.StatusSnapshot) error {
	f.snapshots[bikeID] = snapshot
	return nil
}

func (f *fakeBikeStore) FindByBikeID(bikeID string) (*models.Bike, error) {
	snapshot := f.snapshots[bikeID]
	return &models.Bike{
		BikeID:          bikeID,
		IgnitionBlocked: f.blocked[bikeID],
		LastStatus:      &snapshot,
	}, nil
}

type fakeAlertStore struct {
	created []models.Alert
}

func (f *fakeAlertStore) Create(alert *models.Alert) (*models.Alert, error) {
	f.created = append(f.created, *alert)
	return alert, nil
}

func setupHardwareRouter(bikes *fakeBikeStore, alerts *fakeAlertStore) *gin.Engine {
	gin.SetMode(gin.TestMode)

	service := services.NewHardwareService(bikes, alerts, nil, nil)
	handler := NewHardwareHandler(service)

	router := gin.New()
	router.POST("/api/hardware/status", handler.PostStatus)
	return router
}

func postStatus(t *testing.T, router *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/hardware/status", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestPostStatusViolatingReport(t *testing.T) {
	bikes := newFakeBikeStore()
	alerts := &fakeAlertStore{}
	router := setupHardwareRouter(bikes, alerts)

	w := postStatus(t, router, `{"bikeId":"B1","helmetWorn":false,"alcoholDetected":true,"ignitionStatus":"attempted"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp services.StatusResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.False(t, resp.IgnitionAllowed)

	require.Len(t, alerts.created, 2)
	assert.Equal(t, models.AlertTypeAlcohol, alerts.created[0].Type)
	assert.Equal(t, models.SeverityHigh, alerts.created[0].Severity)
	assert.Equal(t, models.AlertTypeHelmet, alerts.created[1].Type)
	assert.Equal(t, models.SeverityMedium, alerts.created[1].Severity)

	snapshot, ok := bikes.snapshots["B1"]
	require.True(t, ok)
	assert.True(t, snapshot.AlcoholDetected)
	assert.Equal(t, models.IgnitionAttempted, snapshot.IgnitionStatus)
}

func TestPostStatusCleanReport(t *testing.T) {
	bikes := newFakeBikeStore()
	alerts := &fakeAlertStore{}
	router := setupHardwareRouter(bikes, alerts)

	w := postStatus(t, router, `{"bikeId":"B1","helmetWorn":true,"battery":85}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp services.StatusResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.IgnitionAllowed)
	assert.Empty(t, alerts.created)
	assert.Equal(t, 85, bikes.snapshots["B1"].Battery)
}

func TestPostStatusMissingBikeID(t *testing.T) {
	bikes := newFakeBikeStore()
	alerts := &fakeAlertStore{}
	router := setupHardwareRouter(bikes, alerts)

	w := postStatus(t, router, `{"helmetWorn":true}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "missing")

	// Nothing is persisted for a rejected report.
	assert.Empty(t, bikes.snapshots)
	assert.Empty(t, alerts.created)
}

func TestPostStatusWrongTypesDegradeToDefaults(t *testing.T) {
	bikes := newFakeBikeStore()
	alerts := &fakeAlertStore{}
	router := setupHardwareRouter(bikes, alerts)

	w := postStatus(t, router, `{"bikeId":"B1","helmetWorn":"yes","battery":"full","ignitionStatus":7}`)
	require.Equal(t, http.StatusOK, w.Code)

	snapshot := bikes.snapshots["B1"]
	assert.False(t, snapshot.HelmetWorn)
	assert.Equal(t, 0, snapshot.Battery)
	assert.Equal(t, models.IgnitionOff, snapshot.IgnitionStatus)
}

func TestPostStatusMalformedBody(t *testing.T) {
	router := setupHardwareRouter(newFakeBikeStore(), &fakeAlertStore{})

	w := postStatus(t, router, `not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPostStatusReportsAdminBlock(t *testing.T) {
	bikes := newFakeBikeStore()
	bikes.blocked["B1"] = true
	router := setupHardwareRouter(bikes, &fakeAlertStore{})

	w := postStatus(t, router, `{"bikeId":"B1","helmetWorn":true}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp services.StatusResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.IgnitionAllowed)
	assert.True(t, resp.IgnitionBlocked)
}
