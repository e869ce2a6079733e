package services

import (
	"smarthelmet-backend/internal/models"
	"smarthelmet-backend/internal/repository"
)

const defaultAlertLimit = 50

// AlertResolver is the slice of the alert repository the resolve flow
// needs.
type AlertResolver interface {
	FindByID(id string) (*models.Alert, error)
	Find(bikeID string, limit int64) ([]*models.Alert, error)
	Resolve(id, resolvedBy, notes string) (*models.Alert, error)
}

type AlertService struct {
	alerts AlertResolver
}

func NewAlertService(alerts AlertResolver) *AlertService {
	return &AlertService{alerts: alerts}
}

// GetAlerts lists alerts newest first, optionally scoped to one bike.
func (s *AlertService) GetAlerts(bikeID string, limit int64) ([]*models.Alert, error) {
	if limit <= 0 {
		limit = defaultAlertLimit
	}
	return s.alerts.Find(bikeID, limit)
}

// ResolveAlert marks the alert resolved. Resolving an already-resolved
// alert is idempotent: the alert comes back unchanged, with its
// original resolution metadata. repository.ErrNotFound means the id
// matched nothing at all.
func (s *AlertService) ResolveAlert(id, resolvedBy, notes string) (*models.Alert, error) {
	alert, err := s.alerts.Resolve(id, resolvedBy, notes)
	if err == nil {
		return alert, nil
	}
	if err != repository.ErrNotFound {
		return nil, err
	}

	// The conditional update matched nothing. Distinguish "absent"
	// from "already resolved".
	existing, findErr := s.alerts.FindByID(id)
	if findErr != nil {
		return nil, findErr
	}
	if existing.Resolved {
		return existing, nil
	}

	return nil, repository.ErrNotFound
}
