package services

import (
	"testing"

	"smarthelmet-backend/internal/evaluator"
	"smarthelmet-backend/internal/models"
	"smarthelmet-backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockBikeStatusStore struct {
	mock.Mock
}

func (m *mockBikeStatusStore) UpsertStatus(bikeID string, snapshot models.StatusSnapshot) error {
	args := m.Called(bikeID, snapshot)
	return args.Error(0)
}

func (m *mockBikeStatusStore) FindByBikeID(bikeID string) (*models.Bike, error) {
	args := m.Called(bikeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Bike), args.Error(1)
}

type mockAlertStore struct {
	mock.Mock
}

func (m *mockAlertStore) Create(alert *models.Alert) (*models.Alert, error) {
	args := m.Called(alert)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Alert), args.Error(1)
}

// recordingNotifier captures published events in order.
type recordingNotifier struct {
	events []publishedEvent
}

type publishedEvent struct {
	kind   string
	bikeID string
	data   interface{}
}

func (n *recordingNotifier) PublishStatus(bikeID string, snapshot interface{}) {
	n.events = append(n.events, publishedEvent{kind: "status", bikeID: bikeID, data: snapshot})
}

func (n *recordingNotifier) PublishAlert(bikeID string, alert interface{}) {
	n.events = append(n.events, publishedEvent{kind: "alert", bikeID: bikeID, data: alert})
}

type mockStatusCache struct {
	mock.Mock
}

func (m *mockStatusCache) SetStatus(bikeID string, snapshot models.StatusSnapshot) error {
	args := m.Called(bikeID, snapshot)
	return args.Error(0)
}

func TestProcessReportDrunkRiderAttemptingIgnition(t *testing.T) {
	bikes := new(mockBikeStatusStore)
	alerts := new(mockAlertStore)
	notifier := &recordingNotifier{}
	cache := new(mockStatusCache)

	bikes.On("UpsertStatus", "B1", mock.AnythingOfType("models.StatusSnapshot")).Return(nil)
	bikes.On("FindByBikeID", "B1").Return(&models.Bike{BikeID: "B1", IgnitionBlocked: false}, nil)
	alerts.On("Create", mock.AnythingOfType("*models.Alert")).Return(&models.Alert{}, nil).Twice()
	cache.On("SetStatus", "B1", mock.AnythingOfType("models.StatusSnapshot")).Return(nil)

	service := NewHardwareService(bikes, alerts, notifier, cache)

	resp, err := service.ProcessReport(map[string]interface{}{
		"bikeId":          "B1",
		"helmetWorn":      false,
		"alcoholDetected": true,
		"ignitionStatus":  "attempted",
	})
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.False(t, resp.IgnitionAllowed)
	assert.False(t, resp.IgnitionBlocked)

	// Both violations persist: alcohol first, then helmet.
	createdTypes := make([]string, 0, 2)
	for _, call := range alerts.Calls {
		createdTypes = append(createdTypes, call.Arguments.Get(0).(*models.Alert).Type)
	}
	assert.Equal(t, []string{models.AlertTypeAlcohol, models.AlertTypeHelmet}, createdTypes)

	// One status event followed by one event per alert.
	require.Len(t, notifier.events, 3)
	assert.Equal(t, "status", notifier.events[0].kind)
	assert.Equal(t, "alert", notifier.events[1].kind)
	assert.Equal(t, "alert", notifier.events[2].kind)
	for _, event := range notifier.events {
		assert.Equal(t, "B1", event.bikeID)
	}

	bikes.AssertExpectations(t)
	alerts.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestProcessReportCleanRide(t *testing.T) {
	bikes := new(mockBikeStatusStore)
	alerts := new(mockAlertStore)
	notifier := &recordingNotifier{}
	cache := new(mockStatusCache)

	bikes.On("UpsertStatus", "B1", mock.AnythingOfType("models.StatusSnapshot")).Return(nil)
	bikes.On("FindByBikeID", "B1").Return(&models.Bike{BikeID: "B1"}, nil)
	cache.On("SetStatus", "B1", mock.AnythingOfType("models.StatusSnapshot")).Return(nil)

	service := NewHardwareService(bikes, alerts, notifier, cache)

	resp, err := service.ProcessReport(map[string]interface{}{
		"bikeId":     "B1",
		"helmetWorn": true,
		"battery":    float64(85),
	})
	require.NoError(t, err)

	assert.True(t, resp.IgnitionAllowed)
	alerts.AssertNotCalled(t, "Create", mock.Anything)

	require.Len(t, notifier.events, 1)
	assert.Equal(t, "status", notifier.events[0].kind)
}

func TestProcessReportMissingBikeID(t *testing.T) {
	bikes := new(mockBikeStatusStore)
	alerts := new(mockAlertStore)

	service := NewHardwareService(bikes, alerts, nil, nil)

	_, err := service.ProcessReport(map[string]interface{}{"helmetWorn": true})
	assert.ErrorIs(t, err, evaluator.ErrMissingBikeID)

	// No side effects on a rejected report.
	bikes.AssertNotCalled(t, "UpsertStatus", mock.Anything, mock.Anything)
	alerts.AssertNotCalled(t, "Create", mock.Anything)
}

func TestProcessReportReportsAdminBlock(t *testing.T) {
	bikes := new(mockBikeStatusStore)
	alerts := new(mockAlertStore)

	bikes.On("UpsertStatus", "B2", mock.AnythingOfType("models.StatusSnapshot")).Return(nil)
	bikes.On("FindByBikeID", "B2").Return(&models.Bike{BikeID: "B2", IgnitionBlocked: true}, nil)

	service := NewHardwareService(bikes, alerts, nil, nil)

	resp, err := service.ProcessReport(map[string]interface{}{
		"bikeId":     "B2",
		"helmetWorn": true,
	})
	require.NoError(t, err)

	// Sensor gate and admin gate are reported independently.
	assert.True(t, resp.IgnitionAllowed)
	assert.True(t, resp.IgnitionBlocked)
}

func TestProcessReportUpsertFailure(t *testing.T) {
	bikes := new(mockBikeStatusStore)
	alerts := new(mockAlertStore)

	bikes.On("UpsertStatus", "B1", mock.AnythingOfType("models.StatusSnapshot")).Return(assert.AnError)

	service := NewHardwareService(bikes, alerts, nil, nil)

	_, err := service.ProcessReport(map[string]interface{}{"bikeId": "B1"})
	assert.Error(t, err)
	assert.NotErrorIs(t, err, evaluator.ErrMissingBikeID)
}

func TestProcessReportBikeVanishedAfterUpsert(t *testing.T) {
	bikes := new(mockBikeStatusStore)
	alerts := new(mockAlertStore)

	bikes.On("UpsertStatus", "B1", mock.AnythingOfType("models.StatusSnapshot")).Return(nil)
	bikes.On("FindByBikeID", "B1").Return(nil, repository.ErrNotFound)

	service := NewHardwareService(bikes, alerts, nil, nil)

	resp, err := service.ProcessReport(map[string]interface{}{
		"bikeId":     "B1",
		"helmetWorn": true,
	})
	require.NoError(t, err)
	assert.False(t, resp.IgnitionBlocked)
}
