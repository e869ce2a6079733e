package handlers

import (
	"net/http"

	"smarthelmet-backend/internal/repository"
	"smarthelmet-backend/internal/services"
	"smarthelmet-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type BikeHandler struct {
	bikeService *services.BikeService
	validator   *validator.Validate
}

func NewBikeHandler(bikeService *services.BikeService) *BikeHandler {
	return &BikeHandler{
		bikeService: bikeService,
		validator:   validator.New(),
	}
}

// RegisterBike registers a new bike
func (h *BikeHandler) RegisterBike(c *gin.Context) {
	var req services.RegisterBikeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	bike, err := h.bikeService.RegisterBike(req)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "internal", err)
		return
	}

	c.JSON(http.StatusCreated, bike)
}

// GetBikes lists all bikes with owners resolved
func (h *BikeHandler) GetBikes(c *gin.Context) {
	bikes, err := h.bikeService.GetBikes()
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "internal", err)
		return
	}

	c.JSON(http.StatusOK, bikes)
}

// GetBike returns one bike with its freshest status
func (h *BikeHandler) GetBike(c *gin.Context) {
	bike, err := h.bikeService.GetBike(c.Param("bikeId"))
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

// UpdateBike updates bike metadata
func (h *BikeHandler) UpdateBike(c *gin.Context) {
	var req services.UpdateBikeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	bike, err := h.bikeService.UpdateBike(c.Param("bikeId"), req)
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
