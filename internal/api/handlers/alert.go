package handlers

import (
	"net/http"
	"strconv"

	"smarthelmet-backend/internal/models"
	"smarthelmet-backend/internal/repository"
	"smarthelmet-backend/internal/services"
	"smarthelmet-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type AlertHandler struct {
	alertService *services.AlertService
}

func NewAlertHandler(alertService *services.AlertService) *AlertHandler {
	return &AlertHandler{alertService: alertService}
}

type resolveAlertRequest struct {
	Notes string `json:"notes"`
}

// GetAlerts lists alerts newest first, optionally filtered by bike
func (h *AlertHandler) GetAlerts(c *gin.Context) {
	limit, _ := strconv.ParseInt(c.Query("limit"), 10, 64)

	alerts, err := h.alertService.GetAlerts(c.Query("bikeId"), limit)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "internal", err)
		return
	}

	if alerts == nil {
		alerts = []*models.Alert{}
	}

	c.JSON(http.StatusOK, alerts)
}

// ResolveAlert marks an alert resolved
func (h *AlertHandler) ResolveAlert(c *gin.Context) {
	// The notes body is optional.
	var req resolveAlertRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "invalid_request", err)
			return
		}
	}

	alert, err := h.alertService.ResolveAlert(c.Param("id"), c.GetString("username"), req.Notes)
	if err != nil {
		if err == repository.ErrNotFound || err == repository.ErrInvalidID {
			utils.ErrorMessageResponse(c, http.StatusNotFound, "not_found", "Alert not found")
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "internal", err)
		return
	}

	c.JSON(http.StatusOK, alert)
}
