package helpers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/farellandr/melaka-tickets/internal/apperr"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func HTTPStatusText(code int) string {
	return http.StatusText(code)
}

// StatusFor maps an error kind to the HTTP status of direct-HTTP functions.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, apperr.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, apperr.ErrPermissionDenied):
		return http.StatusForbidden
	case errors.Is(err, apperr.ErrInvalidArgument):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func RespondWithError(c *gin.Context, statusCode int, customMessage string) {
	if customMessage == "" {
		customMessage = HTTPStatusText(statusCode)
	}

	c.AbortWithStatusJSON(statusCode, ErrorResponse{
		Error: customMessage,
	})
}

// RespondWithErr writes err with its mapped status. Server errors are attached to the context for reporting.
func RespondWithErr(c *gin.Context, err error) {
	status := StatusFor(err)
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}

	RespondWithError(c, status, err.Error())
}
