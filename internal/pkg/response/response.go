package response

import (
	"errors"
	"net/http"

	"carrental/internal/domain"

	"github.com/gin-gonic/gin"
)

func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"data":    data,
	})
}

func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

func ErrorWithDetails(c *gin.Context, statusCode int, code string, message string, details any) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}

// Abort writes the error envelope and stops the handler chain.
func Abort(c *gin.Context, statusCode int, code string, message string) {
	Error(c, statusCode, code, message)
	c.Abort()
}

type mapping struct {
	target  error
	status  int
	code    string
	message string
}

var mappings = []mapping{
	{domain.ErrVehicleUnavailable, http.StatusConflict, "VEHICLE_UNAVAILABLE", "Vehicle not available for these dates"},
	{domain.ErrInvalidStateTransition, http.StatusConflict, "INVALID_STATE_TRANSITION", "Operation not allowed in current state"},
	{domain.ErrInvalidExtension, http.StatusBadRequest, "INVALID_EXTENSION", "New end date must be after the current end date"},
	{domain.ErrValidation, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request"},
	{domain.ErrNotFound, http.StatusNotFound, "NOT_FOUND", "Resource not found"},
	{domain.ErrForbidden, http.StatusForbidden, "FORBIDDEN", "Access denied"},
}

// FromError maps a service error onto the HTTP envelope. Unknown errors are
// recorded on the gin context and reported as a generic failure.
func FromError(c *gin.Context, err error) {
	status, code, message := Classify(err)
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	Error(c, status, code, message)
}

func Classify(err error) (int, string, string) {
	for _, m := range mappings {
		if errors.Is(err, m.target) {
			return m.status, m.code, m.message
		}
	}
	return http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong, please try again"
}
