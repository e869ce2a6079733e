package services

import (
	"log"

	"smarthelmet-backend/internal/models"
	"smarthelmet-backend/pkg/command"
)

// BikeControlStore is the slice of the bike repository the admin
// control path needs.
type BikeControlStore interface {
	SetIgnitionBlocked(bikeID string, blocked bool) (*models.Bike, error)
	PairHelmet(bikeID, helmetID string) (*models.Bike, error)
}

// CommandPublisher delivers control commands to the hardware.
type CommandPublisher interface {
	PublishControl(bikeID, cmd string) error
	PublishPairing(bikeID, helmetID string) error
}

// AdminService persists administrator overrides and relays them to the
// hardware. The database write is authoritative; the publish is
// best-effort and a failure is logged, never rolled back.
type AdminService struct {
	bikes     BikeControlStore
	publisher CommandPublisher
}

func NewAdminService(bikes BikeControlStore, publisher CommandPublisher) *AdminService {
	return &AdminService{
		bikes:     bikes,
		publisher: publisher,
	}
}

// SetIgnition persists the block/allow override for the bike and then
// publishes the matching control command. repository.ErrNotFound
// passes through when the bike is unknown, and nothing is published.
func (s *AdminService) SetIgnition(bikeID string, block bool) (*models.Bike, error) {
	bike, err := s.bikes.SetIgnitionBlocked(bikeID, block)
	if err != nil {
		return nil, err
	}

	cmd := command.CommandAllow
	if block {
		cmd = command.CommandBlock
	}

	if err := s.publisher.PublishControl(bikeID, cmd); err != nil {
		log.Printf("Failed to publish %s command for bike %s: %v", cmd, bikeID, err)
	}

	return bike, nil
}

// PairHelmet records the helmet association and relays the helmet id
// to the bike's pairing channel.
func (s *AdminService) PairHelmet(bikeID, helmetID string) (*models.Bike, error) {
	bike, err := s.bikes.PairHelmet(bikeID, helmetID)
	if err != nil {
		return nil, err
	}

	if err := s.publisher.PublishPairing(bikeID, helmetID); err != nil {
		log.Printf("Failed to publish pairing for bike %s: %v", bikeID, err)
	}

	return bike, nil
}
