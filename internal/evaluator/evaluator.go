package evaluator

import (
	"errors"
	"time"

	"smarthelmet-backend/internal/models"
)

// ErrMissingBikeID is returned when a report carries no bike identity.
// It is the only condition that refuses evaluation; every other field
// degrades to its default.
var ErrMissingBikeID = errors.New("bikeId is required")

// StatusReport is one hardware status report. It has no persisted
// identity; it is fully consumed by a single evaluation.
type StatusReport struct {
	BikeID          string `json:"bikeId"`
	HelmetWorn      bool   `json:"helmetWorn"`
	AlcoholDetected bool   `json:"alcoholDetected"`
	Battery         int    `json:"battery"`
	IgnitionStatus  string `json:"ignitionStatus"`
}

// Result is the evaluator's verdict for one report.
type Result struct {
	// IgnitionAllowed is the sensor gate only: helmet worn and no
	// alcohol. The administrator ignition_blocked flag is a separate
	// gate enforced over the control channel; the firmware ANDs both.
	IgnitionAllowed bool
	Alerts          []models.Alert
	Snapshot        models.StatusSnapshot
}

// ParseReport builds a StatusReport from a decoded JSON body. Fields
// that are absent or of the wrong type fall back to their defaults;
// only a missing bikeId aborts.
func ParseReport(raw map[string]interface{}) (StatusReport, error) {
	report := StatusReport{IgnitionStatus: models.IgnitionOff}

	if id, ok := raw["bikeId"].(string); ok {
		report.BikeID = id
	}
	if report.BikeID == "" {
		return StatusReport{}, ErrMissingBikeID
	}

	if v, ok := raw["helmetWorn"].(bool); ok {
		report.HelmetWorn = v
	}
	if v, ok := raw["alcoholDetected"].(bool); ok {
		report.AlcoholDetected = v
	}
	if v, ok := raw["battery"].(float64); ok {
		report.Battery = int(v)
	}
	if v, ok := raw["ignitionStatus"].(string); ok && v != "" {
		report.IgnitionStatus = v
	}

	return report, nil
}

// Evaluate turns one status report into the ignition decision, the
// alerts to persist and the snapshot to cache on the bike. It is pure:
// no prior alert history or bike state is consulted, and every
// qualifying report produces new alerts.
func Evaluate(report StatusReport, now time.Time) Result {
	result := Result{
		IgnitionAllowed: report.HelmetWorn && !report.AlcoholDetected,
		Snapshot: models.StatusSnapshot{
			HelmetWorn:      report.HelmetWorn,
			AlcoholDetected: report.AlcoholDetected,
			Battery:         report.Battery,
			IgnitionStatus:  report.IgnitionStatus,
			LastSeen:        now,
			IsActive:        true,
		},
	}

	if report.AlcoholDetected {
		result.Alerts = append(result.Alerts, models.Alert{
			BikeID:    report.BikeID,
			Type:      models.AlertTypeAlcohol,
			Severity:  models.SeverityHigh,
			Message:   "Alcohol detected! Ignition blocked.",
			Timestamp: now,
			Resolved:  false,
		})
	}

	if !report.HelmetWorn && report.IgnitionStatus == models.IgnitionAttempted {
		result.Alerts = append(result.Alerts, models.Alert{
			BikeID:    report.BikeID,
			Type:      models.AlertTypeHelmet,
			Severity:  models.SeverityMedium,
			Message:   "Helmet not worn! Ignition blocked.",
			Timestamp: now,
			Resolved:  false,
		})
	}

	return result
}
