package services

import (
	"log"
	"time"

	"smarthelmet-backend/internal/models"
	"smarthelmet-backend/internal/repository"
	"smarthelmet-backend/pkg/livecache"

	"go.mongodb.org/mongo-driver/bson"
)

type RegisterBikeRequest struct {
	BikeID             string `json:"bikeId" validate:"required"`
	BikeName           string `json:"bikeName"`
	BikeModel          string `json:"bikeModel"`
	RegistrationNumber string `json:"registrationNumber"`
	OwnerID            string `json:"ownerId"`
	HelmetID           string `json:"helmetId"`
}

type UpdateBikeRequest struct {
	BikeName           *string `json:"bikeName"`
	BikeModel          *string `json:"bikeModel"`
	RegistrationNumber *string `json:"registrationNumber"`
	OwnerID            *string `json:"ownerId"`
	IsActive           *bool   `json:"isActive"`
}

type BikeService struct {
	bikes *repository.BikeRepository
	users *repository.UserRepository
	live  *livecache.Cache
}

func NewBikeService(bikes *repository.BikeRepository, users *repository.UserRepository, live *livecache.Cache) *BikeService {
	return &BikeService{
		bikes: bikes,
		users: users,
		live:  live,
	}
}

func (s *BikeService) RegisterBike(req RegisterBikeRequest) (*models.Bike, error) {
	now := time.Now().UTC()
	bike := &models.Bike{
		BikeID:             req.BikeID,
		BikeName:           req.BikeName,
		BikeModel:          req.BikeModel,
		RegistrationNumber: req.RegistrationNumber,
		OwnerID:            req.OwnerID,
		HelmetID:           req.HelmetID,
		IsActive:           true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	return s.bikes.Create(bike)
}

func (s *BikeService) GetBikes() ([]*models.BikeWithOwner, error) {
	bikes, err := s.bikes.FindAll()
	if err != nil {
		return nil, err
	}

	result := make([]*models.BikeWithOwner, 0, len(bikes))
	for _, bike := range bikes {
		result = append(result, s.withOwner(bike))
	}

	return result, nil
}

// GetBike returns the bike with its owner resolved and the freshest
// status available: the live cache entry when present, otherwise the
// persisted snapshot.
func (s *BikeService) GetBike(bikeID string) (*models.BikeWithOwner, error) {
	bike, err := s.bikes.FindByBikeID(bikeID)
	if err != nil {
		return nil, err
	}

	if s.live != nil {
		snapshot, err := s.live.GetStatus(bikeID)
		if err != nil {
			log.Printf("Failed to read live status for %s: %v", bikeID, err)
		} else if snapshot != nil {
			bike.LastStatus = snapshot
			bike.LastSeen = &snapshot.LastSeen
		}
	}

	return s.withOwner(bike), nil
}

func (s *BikeService) GetBikesByOwner(ownerID string) ([]*models.Bike, error) {
	return s.bikes.FindByOwnerID(ownerID)
}

func (s *BikeService) UpdateBike(bikeID string, req UpdateBikeRequest) (*models.Bike, error) {
	fields := bson.M{}
	if req.BikeName != nil {
		fields["bike_name"] = *req.BikeName
	}
	if req.BikeModel != nil {
		fields["bike_model"] = *req.BikeModel
	}
	if req.RegistrationNumber != nil {
		fields["registration_number"] = *req.RegistrationNumber
	}
	if req.OwnerID != nil {
		fields["owner_id"] = *req.OwnerID
	}
	if req.IsActive != nil {
		fields["is_active"] = *req.IsActive
	}

	if len(fields) == 0 {
		return s.bikes.FindByBikeID(bikeID)
	}

	return s.bikes.Update(bikeID, fields)
}

// withOwner resolves the bike's weak owner reference. A dangling or
// malformed reference yields a nil owner, never an error.
func (s *BikeService) withOwner(bike *models.Bike) *models.BikeWithOwner {
	result := &models.BikeWithOwner{Bike: *bike}

	if bike.OwnerID == "" {
		return result
	}

	owner, err := s.users.FindByID(bike.OwnerID)
	if err != nil {
		if err != repository.ErrNotFound && err != repository.ErrInvalidID {
			log.Printf("Failed to resolve owner %s for bike %s: %v", bike.OwnerID, bike.BikeID, err)
		}
		return result
	}

	result.Owner = &models.BikeOwner{
		ID:       owner.ID.Hex(),
		Username: owner.Username,
		Email:    owner.Email,
	}

	return result
}
