package services

import (
	"testing"

	"smarthelmet-backend/internal/models"
	"smarthelmet-backend/internal/repository"
	"smarthelmet-backend/pkg/command"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockBikeControlStore struct {
	mock.Mock
}

func (m *mockBikeControlStore) SetIgnitionBlocked(bikeID string, blocked bool) (*models.Bike, error) {
	args := m.Called(bikeID, blocked)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Bike), args.Error(1)
}

func (m *mockBikeControlStore) PairHelmet(bikeID, helmetID string) (*models.Bike, error) {
	args := m.Called(bikeID, helmetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Bike), args.Error(1)
}

type mockCommandPublisher struct {
	mock.Mock
}

func (m *mockCommandPublisher) PublishControl(bikeID, cmd string) error {
	args := m.Called(bikeID, cmd)
	return args.Error(0)
}

func (m *mockCommandPublisher) PublishPairing(bikeID, helmetID string) error {
	args := m.Called(bikeID, helmetID)
	return args.Error(0)
}

func TestSetIgnitionBlock(t *testing.T) {
	bikes := new(mockBikeControlStore)
	publisher := new(mockCommandPublisher)

	bikes.On("SetIgnitionBlocked", "BIKE123", true).Return(&models.Bike{BikeID: "BIKE123", IgnitionBlocked: true}, nil)
	publisher.On("PublishControl", "BIKE123", command.CommandBlock).Return(nil)

	service := NewAdminService(bikes, publisher)

	bike, err := service.SetIgnition("BIKE123", true)
	require.NoError(t, err)
	assert.True(t, bike.IgnitionBlocked)

	publisher.AssertExpectations(t)
}

func TestSetIgnitionAllow(t *testing.T) {
	bikes := new(mockBikeControlStore)
	publisher := new(mockCommandPublisher)

	bikes.On("SetIgnitionBlocked", "BIKE123", false).Return(&models.Bike{BikeID: "BIKE123"}, nil)
	publisher.On("PublishControl", "BIKE123", command.CommandAllow).Return(nil)

	service := NewAdminService(bikes, publisher)

	_, err := service.SetIgnition("BIKE123", false)
	require.NoError(t, err)

	publisher.AssertExpectations(t)
}

func TestSetIgnitionUnknownBikeDoesNotPublish(t *testing.T) {
	bikes := new(mockBikeControlStore)
	publisher := new(mockCommandPublisher)

	bikes.On("SetIgnitionBlocked", "GHOST", true).Return(nil, repository.ErrNotFound)

	service := NewAdminService(bikes, publisher)

	_, err := service.SetIgnition("GHOST", true)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	publisher.AssertNotCalled(t, "PublishControl", mock.Anything, mock.Anything)
}

func TestSetIgnitionPublishFailureStillSucceeds(t *testing.T) {
	bikes := new(mockBikeControlStore)
	publisher := new(mockCommandPublisher)

	bikes.On("SetIgnitionBlocked", "BIKE123", true).Return(&models.Bike{BikeID: "BIKE123", IgnitionBlocked: true}, nil)
	publisher.On("PublishControl", "BIKE123", command.CommandBlock).Return(assert.AnError)

	service := NewAdminService(bikes, publisher)

	// The database write is authoritative; the publish is best-effort.
	bike, err := service.SetIgnition("BIKE123", true)
	require.NoError(t, err)
	assert.True(t, bike.IgnitionBlocked)
}

func TestPairHelmet(t *testing.T) {
	bikes := new(mockBikeControlStore)
	publisher := new(mockCommandPublisher)

	bikes.On("PairHelmet", "BIKE123", "HELMET42").Return(&models.Bike{BikeID: "BIKE123", HelmetID: "HELMET42"}, nil)
	publisher.On("PublishPairing", "BIKE123", "HELMET42").Return(nil)

	service := NewAdminService(bikes, publisher)

	bike, err := service.PairHelmet("BIKE123", "HELMET42")
	require.NoError(t, err)
	assert.Equal(t, "HELMET42", bike.HelmetID)

	publisher.AssertExpectations(t)
}

func TestPairHelmetUnknownBikeDoesNotPublish(t *testing.T) {
	bikes := new(mockBikeControlStore)
	publisher := new(mockCommandPublisher)

	bikes.On("PairHelmet", "GHOST", "HELMET42").Return(nil, repository.ErrNotFound)

	service := NewAdminService(bikes, publisher)

	_, err := service.PairHelmet("GHOST", "HELMET42")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	publisher.AssertNotCalled(t, "PublishPairing", mock.Anything, mock.Anything)
}
