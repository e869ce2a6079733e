package services

import (
	"fmt"
	"log"
	"time"

	"smarthelmet-backend/internal/evaluator"
	"smarthelmet-backend/internal/models"
	"smarthelmet-backend/internal/repository"
)

// BikeStatusStore is the slice of the bike repository the intake path
// needs.
type BikeStatusStore interface {
	UpsertStatus(bikeID string, snapshot models.StatusSnapshot) error
	FindByBikeID(bikeID string) (*models.Bike, error)
}

// AlertStore persists violation alerts.
type AlertStore interface {
	Create(alert *models.Alert) (*models.Alert, error)
}

// Notifier pushes evaluator output to real-time subscribers.
type Notifier interface {
	PublishStatus(bikeID string, snapshot interface{})
	PublishAlert(bikeID string, alert interface{})
}

// StatusCache keeps the latest snapshot hot for dashboard reads.
type StatusCache interface {
	SetStatus(bikeID string, snapshot models.StatusSnapshot) error
}

// StatusResponse is the body returned to the reporting hardware. It
// carries both ignition gates: IgnitionAllowed is the sensor verdict
// for this report, IgnitionBlocked the standing administrator override.
// The firmware ANDs them.
type StatusResponse struct {
	Success         bool   `json:"success"`
	IgnitionAllowed bool   `json:"ignitionAllowed"`
	IgnitionBlocked bool   `json:"ignitionBlocked"`
	Message         string `json:"message"`
}

// HardwareService runs the status intake pipeline: parse, evaluate,
// persist, notify, cache.
type HardwareService struct {
	bikes    BikeStatusStore
	alerts   AlertStore
	notifier Notifier
	cache    StatusCache
}

func NewHardwareService(bikes BikeStatusStore, alerts AlertStore, notifier Notifier, cache StatusCache) *HardwareService {
	return &HardwareService{
		bikes:    bikes,
		alerts:   alerts,
		notifier: notifier,
		cache:    cache,
	}
}

// ProcessReport consumes one hardware status report. The bike snapshot
// write and alert inserts are the durable outcome; notification and
// cache failures are logged and never fail the request.
func (s *HardwareService) ProcessReport(raw map[string]interface{}) (*StatusResponse, error) {
	report, err := evaluator.ParseReport(raw)
	if err != nil {
		return nil, err
	}

	result := evaluator.Evaluate(report, time.Now().UTC())

	if err := s.bikes.UpsertStatus(report.BikeID, result.Snapshot); err != nil {
		return nil, fmt.Errorf("failed to update bike status: %w", err)
	}

	// The admin override lives on the bike document, not in the report.
	ignitionBlocked := false
	bike, err := s.bikes.FindByBikeID(report.BikeID)
	switch {
	case err == nil:
		ignitionBlocked = bike.IgnitionBlocked
	case err == repository.ErrNotFound:
		// Upsert raced with a delete; report the default.
	default:
		log.Printf("Failed to read bike %s after status update: %v", report.BikeID, err)
	}

	if s.notifier != nil {
		s.notifier.PublishStatus(report.BikeID, result.Snapshot)
	}

	for i := range result.Alerts {
		created, err := s.alerts.Create(&result.Alerts[i])
		if err != nil {
			return nil, fmt.Errorf("failed to persist alert: %w", err)
		}
		if s.notifier != nil {
			s.notifier.PublishAlert(report.BikeID, created)
		}
	}

	if s.cache != nil {
		if err := s.cache.SetStatus(report.BikeID, result.Snapshot); err != nil {
			log.Printf("Failed to cache status for %s: %v", report.BikeID, err)
		}
	}

	return &StatusResponse{
		Success:         true,
		IgnitionAllowed: result.IgnitionAllowed,
		IgnitionBlocked: ignitionBlocked,
		Message:         "Status updated successfully",
	}, nil
}
