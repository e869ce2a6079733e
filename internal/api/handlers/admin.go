package handlers

import (
	"net/http"

	"smarthelmet-backend/internal/repository"
	"smarthelmet-backend/internal/services"
	"smarthelmet-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type AdminHandler struct {
	adminService *services.AdminService
	validator    *validator.Validate
}

func NewAdminHandler(adminService *services.AdminService) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
		validator:    validator.New(),
	}
}

type IgnitionRequest struct {
	Block *bool `json:"block" validate:"required"`
}

type PairRequest struct {
	BikeID   string `json:"bikeId" validate:"required"`
	HelmetID string `json:"helmetId" validate:"required"`
}

// SetIgnition blocks or allows a bike's ignition remotely
func (h *AdminHandler) SetIgnition(c *gin.Context) {
	var req IgnitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	bike, err := h.adminService.SetIgnition(c.Param("bikeId"), *req.Block)
	if err != nil {
		if err == repository.ErrNotFound {
			utils.ErrorMessageResponse(c, http.StatusNotFound, "not_found", "Bike not found")
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "internal", err)
		return
	}

	c.JSON(http.StatusOK, bike)
}

// PairHelmet associates a helmet with a bike and relays the pairing
func (h *AdminHandler) PairHelmet(c *gin.Context) {
	var req PairRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	bike, err := h.adminService.PairHelmet(req.BikeID, req.HelmetID)
	if err != nil {
		if err == repository.ErrNotFound {
			utils.ErrorMessageResponse(c, http.StatusNotFound, "not_found", "Bike not found")
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "internal", err)
		return
	}

	c.JSON(http.StatusOK, bike)
}
