package handlers

import (
	"net/http"
	"strconv"
	"time"

	"smarthelmet-backend/internal/services"
	"smarthelmet-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type AnalyticsHandler struct {
	analyticsService *services.AnalyticsService
}

func NewAnalyticsHandler(analyticsService *services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

// GetDashboard returns the headline counters
func (h *AnalyticsHandler) GetDashboard(c *gin.Context) {
	summary, err := h.analyticsService.GetDashboard(c.Query("bikeId"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "internal", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

// GetSummary returns system-wide violation and ride counters
func (h *AnalyticsHandler) GetSummary(c *gin.Context) {
	summary, err := h.analyticsService.GetSummary()
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "internal", err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// GetTimeseries returns ride samples for charting
func (h *AnalyticsHandler) GetTimeseries(c *gin.Context) {
	days, _ := strconv.Atoi(c.Query("days"))

	points, err := h.analyticsService.GetTimeseries(c.Query("bikeId"), days)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "internal", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"timeseries": points})
}

// GetReport returns rides and alerts in a date window
func (h *AnalyticsHandler) GetReport(c *gin.Context) {
	var start, end time.Time
	startDate := c.Query("startDate")
	endDate := c.Query("endDate")

	if startDate != "" && endDate != "" {
		var err error
		if start, err = time.Parse(time.RFC3339, startDate); err != nil {
			utils.ErrorMessageResponse(c, http.StatusBadRequest, "invalid_date", "startDate must be RFC 3339")
			return
		}
		if end, err = time.Parse(time.RFC3339, endDate); err != nil {
			utils.ErrorMessageResponse(c, http.StatusBadRequest, "invalid_date", "endDate must be RFC 3339")
			return
		}
	}

	report, err := h.analyticsService.GetReport(c.Query("bikeId"), start, end)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "internal", err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// GetFleetOverview returns per-bike stats across the fleet
func (h *AnalyticsHandler) GetFleetOverview(c *gin.Context) {
	overview, err := h.analyticsService.GetFleetOverview()
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "internal", err)
		return
	}

	c.JSON(http.StatusOK, overview)
}

// GetUserStats aggregates across one user's bikes
func (h *AnalyticsHandler) GetUserStats(c *gin.Context) {
	stats, err := h.analyticsService.GetUserStats(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "internal", err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
