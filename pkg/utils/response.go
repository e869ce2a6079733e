package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// ErrorBody is the uniform failure payload: a short machine-readable
// code plus an optional human-readable message.
type ErrorBody struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// ErrorResponse sends an error response
func ErrorResponse(c *gin.Context, statusCode int, code string, err error) {
	body := ErrorBody{Error: code}
	if err != nil {
		body.Message = err.Error()
	}
	c.JSON(statusCode, body)
}

// ErrorMessageResponse sends an error response with an explicit message
func ErrorMessageResponse(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, ErrorBody{Error: code, Message: message})
}

// ValidationErrorResponse sends a 400 with user-friendly field messages
func ValidationErrorResponse(c *gin.Context, err error) {
	message := err.Error()

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		message = ""
		for i, fieldError := range validationErrors {
			if i > 0 {
				message += "; "
			}
			message += getValidationErrorMessage(fieldError)
		}
	}

	c.JSON(http.StatusBadRequest, ErrorBody{Error: "validation", Message: message})
}

// getValidationErrorMessage returns a user-friendly validation error message
func getValidationErrorMessage(fieldError validator.FieldError) string {
	field := fieldError.Field()
	tag := fieldError.Tag()

	switch tag {
	case "required":
		return field + " is required"
	case "min":
		return field + " must be at least " + fieldError.Param() + " characters long"
	case "max":
		return field + " must be at most " + fieldError.Param() + " characters long"
	case "oneof":
		return field + " must be one of: " + fieldError.Param()
	default:
		return field + " is invalid"
	}
}
