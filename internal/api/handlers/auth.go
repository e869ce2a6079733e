package handlers

import (
	"net/http"

	"smarthelmet-backend/internal/repository"
	"smarthelmet-backend/internal/services"
	"smarthelmet-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type AuthHandler struct {
	authService *services.AuthService
	validator   *validator.Validate
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validator:   validator.New(),
	}
}

// Register creates a new dashboard account
func (h *AuthHandler) Register(c *gin.Context) {
	var req services.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	user, err := h.authService.Register(req)
	if err != nil {
		if err == repository.ErrDuplicateUsername {
			utils.ErrorMessageResponse(c, http.StatusBadRequest, "exists", "Username already exists")
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "internal", err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// Login verifies credentials and returns a token
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	resp, err := h.authService.Login(req)
	if err != nil {
		if err == services.ErrInvalidCredentials {
			utils.ErrorMessageResponse(c, http.StatusUnauthorized, "invalid_credentials", "Invalid username or password")
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "internal", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
