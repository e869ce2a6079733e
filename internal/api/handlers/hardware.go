package handlers

import (
	"net/http"

	"smarthelmet-backend/internal/evaluator"
	"smarthelmet-backend/internal/services"
	"smarthelmet-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type HardwareHandler struct {
	hardwareService *services.HardwareService
}

func NewHardwareHandler(hardwareService *services.HardwareService) *HardwareHandler {
	return &HardwareHandler{hardwareService: hardwareService}
}

// PostStatus ingests one hardware status report. The body is decoded
// into a loose map so that absent or mistyped optional fields degrade
// to their defaults instead of rejecting the report; only a missing
// bikeId is a client error.
func (h *HardwareHandler) PostStatus(c *gin.Context) {
	var raw map[string]interface{}
	if err := c.ShouldBindJSON(&raw); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	resp, err := h.hardwareService.ProcessReport(raw)
	if err != nil {
		if err == evaluator.ErrMissingBikeID {
			utils.ErrorMessageResponse(c, http.StatusBadRequest, "missing", "bikeId is required")
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "internal", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
