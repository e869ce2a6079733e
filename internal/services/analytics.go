package services

import (
	"log"
	"math"
	"time"

	"smarthelmet-backend/internal/models"
	"smarthelmet-backend/internal/repository"
)

// DashboardSummary is the headline counters for the dashboard view.
// HelmetViolations and AlcoholDetections duplicate the attempt counts
// under the names the charting panels bind to.
type DashboardSummary struct {
	TotalRides        int64 `json:"totalRides"`
	SuccessfulRides   int64 `json:"successfulRides"`
	HelmetAttempts    int64 `json:"helmetAttempts"`
	AlcoholAttempts   int64 `json:"alcoholAttempts"`
	HelmetViolations  int64 `json:"helmetViolations"`
	AlcoholDetections int64 `json:"alcoholDetections"`
}

// TimeseriesPoint is one ride sample for charting, oldest first.
type TimeseriesPoint struct {
	Date            time.Time `json:"date"`
	HelmetWorn      bool      `json:"helmetWorn"`
	AlcoholDetected bool      `json:"alcoholDetected"`
}

// DetailedReport lists rides and alerts in a window, newest first.
type DetailedReport struct {
	Rides  []*models.Ride  `json:"rides"`
	Alerts []*models.Alert `json:"alerts"`
}

// BikeStats is the per-bike rollup in the fleet overview.
type BikeStats struct {
	TotalRides      int64   `json:"totalRides"`
	SuccessfulRides int64   `json:"successfulRides"`
	SuccessRate     float64 `json:"successRate"`
	ActiveAlerts    int64   `json:"activeAlerts"`
}

// FleetBike is one bike in the fleet overview with its stats and
// resolved owner.
type FleetBike struct {
	models.Bike
	Owner *models.BikeOwner `json:"owner,omitempty"`
	Stats BikeStats         `json:"stats"`
}

// FleetOverview is the whole-fleet rollup.
type FleetOverview struct {
	TotalBikes  int          `json:"totalBikes"`
	ActiveBikes int          `json:"activeBikes"`
	Bikes       []*FleetBike `json:"bikes"`
}

// UserStats aggregates across all bikes owned by one user.
type UserStats struct {
	TotalRides        int64 `json:"totalRides"`
	SuccessfulRides   int64 `json:"successfulRides"`
	HelmetViolations  int64 `json:"helmetViolations"`
	AlcoholDetections int64 `json:"alcoholDetections"`
	Bikes             int   `json:"bikes"`
}

// AnalyticsService answers the read-only aggregation queries behind
// the dashboard. Everything is plain counting; success means a ride
// with the helmet worn and no alcohol detected.
type AnalyticsService struct {
	rides  *repository.RideRepository
	alerts *repository.AlertRepository
	bikes  *repository.BikeRepository
	users  *repository.UserRepository
}

func NewAnalyticsService(rides *repository.RideRepository, alerts *repository.AlertRepository, bikes *repository.BikeRepository, users *repository.UserRepository) *AnalyticsService {
	return &AnalyticsService{
		rides:  rides,
		alerts: alerts,
		bikes:  bikes,
		users:  users,
	}
}

// GetDashboard returns the headline counters, optionally scoped to one
// bike.
func (s *AnalyticsService) GetDashboard(bikeID string) (*DashboardSummary, error) {
	totalRides, err := s.rides.Count(bikeID)
	if err != nil {
		return nil, err
	}

	successfulRides, err := s.rides.CountSuccessful(bikeID)
	if err != nil {
		return nil, err
	}

	helmetAttempts, err := s.alerts.CountByType(bikeID, models.AlertTypeHelmet)
	if err != nil {
		return nil, err
	}

	alcoholAttempts, err := s.alerts.CountByType(bikeID, models.AlertTypeAlcohol)
	if err != nil {
		return nil, err
	}

	return &DashboardSummary{
		TotalRides:        totalRides,
		SuccessfulRides:   successfulRides,
		HelmetAttempts:    helmetAttempts,
		AlcoholAttempts:   alcoholAttempts,
		HelmetViolations:  helmetAttempts,
		AlcoholDetections: alcoholAttempts,
	}, nil
}

// ReportSummary is the legacy whole-system counters endpoint payload.
type ReportSummary struct {
	HelmetAttempts  int64 `json:"helmetAttempts"`
	AlcoholAttempts int64 `json:"alcoholAttempts"`
	SuccessfulRides int64 `json:"successfulRides"`
}

// GetSummary returns system-wide violation and ride counters.
func (s *AnalyticsService) GetSummary() (*ReportSummary, error) {
	helmetAttempts, err := s.alerts.CountByType("", models.AlertTypeHelmet)
	if err != nil {
		return nil, err
	}

	alcoholAttempts, err := s.alerts.CountByType("", models.AlertTypeAlcohol)
	if err != nil {
		return nil, err
	}

	successfulRides, err := s.rides.CountSuccessful("")
	if err != nil {
		return nil, err
	}

	return &ReportSummary{
		HelmetAttempts:  helmetAttempts,
		AlcoholAttempts: alcoholAttempts,
		SuccessfulRides: successfulRides,
	}, nil
}

// GetTimeseries returns ride samples for the last N days, oldest
// first. Days defaults to 7.
func (s *AnalyticsService) GetTimeseries(bikeID string, days int) ([]TimeseriesPoint, error) {
	if days <= 0 {
		days = 7
	}

	since := time.Now().UTC().AddDate(0, 0, -days)
	rides, err := s.rides.FindSince(bikeID, since)
	if err != nil {
		return nil, err
	}

	points := make([]TimeseriesPoint, 0, len(rides))
	for _, ride := range rides {
		points = append(points, TimeseriesPoint{
			Date:            ride.Timestamp,
			HelmetWorn:      ride.HelmetWorn,
			AlcoholDetected: ride.AlcoholDetected,
		})
	}

	return points, nil
}

// GetReport lists rides and alerts in the window, newest first. A zero
// start or end leaves the window unbounded.
func (s *AnalyticsService) GetReport(bikeID string, start, end time.Time) (*DetailedReport, error) {
	rides, err := s.rides.FindInRange(bikeID, start, end)
	if err != nil {
		return nil, err
	}

	alerts, err := s.alerts.FindInRange(bikeID, start, end)
	if err != nil {
		return nil, err
	}

	if rides == nil {
		rides = []*models.Ride{}
	}
	if alerts == nil {
		alerts = []*models.Alert{}
	}

	return &DetailedReport{Rides: rides, Alerts: alerts}, nil
}

// GetFleetOverview rolls up per-bike ride and alert stats across the
// whole fleet.
func (s *AnalyticsService) GetFleetOverview() (*FleetOverview, error) {
	bikes, err := s.bikes.FindAll()
	if err != nil {
		return nil, err
	}

	overview := &FleetOverview{
		TotalBikes: len(bikes),
		Bikes:      make([]*FleetBike, 0, len(bikes)),
	}

	for _, bike := range bikes {
		if bike.IsActive {
			overview.ActiveBikes++
		}

		totalRides, err := s.rides.Count(bike.BikeID)
		if err != nil {
			return nil, err
		}

		successfulRides, err := s.rides.CountSuccessful(bike.BikeID)
		if err != nil {
			return nil, err
		}

		activeAlerts, err := s.alerts.CountUnresolved(bike.BikeID)
		if err != nil {
			return nil, err
		}

		fleetBike := &FleetBike{
			Bike: *bike,
			Stats: BikeStats{
				TotalRides:      totalRides,
				SuccessfulRides: successfulRides,
				SuccessRate:     successRate(successfulRides, totalRides),
				ActiveAlerts:    activeAlerts,
			},
		}

		if bike.OwnerID != "" {
			owner, err := s.users.FindByID(bike.OwnerID)
			if err == nil {
				fleetBike.Owner = &models.BikeOwner{
					ID:       owner.ID.Hex(),
					Username: owner.Username,
				}
			} else if err != repository.ErrNotFound && err != repository.ErrInvalidID {
				log.Printf("Failed to resolve owner %s for bike %s: %v", bike.OwnerID, bike.BikeID, err)
			}
		}

		overview.Bikes = append(overview.Bikes, fleetBike)
	}

	return overview, nil
}

// GetUserStats aggregates ride and violation counts across all bikes
// owned by the user. A user with no bikes gets all zeros.
func (s *AnalyticsService) GetUserStats(userID string) (*UserStats, error) {
	bikes, err := s.bikes.FindByOwnerID(userID)
	if err != nil {
		return nil, err
	}

	stats := &UserStats{Bikes: len(bikes)}
	if len(bikes) == 0 {
		return stats, nil
	}

	bikeIDs := make([]string, 0, len(bikes))
	for _, bike := range bikes {
		bikeIDs = append(bikeIDs, bike.BikeID)
	}

	if stats.TotalRides, err = s.rides.CountForBikes(bikeIDs); err != nil {
		return nil, err
	}
	if stats.SuccessfulRides, err = s.rides.CountSuccessfulForBikes(bikeIDs); err != nil {
		return nil, err
	}
	if stats.HelmetViolations, err = s.alerts.CountByTypeForBikes(bikeIDs, models.AlertTypeHelmet); err != nil {
		return nil, err
	}
	if stats.AlcoholDetections, err = s.alerts.CountByTypeForBikes(bikeIDs, models.AlertTypeAlcohol); err != nil {
		return nil, err
	}

	return stats, nil
}

// successRate is the share of successful rides as a percentage,
// rounded to one decimal. Zero rides yields 0, not NaN.
func successRate(successful, total int64) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(successful)/float64(total)*1000) / 10
}
