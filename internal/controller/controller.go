// Package controller provides shared helpers for the HTTP handler packages.
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/riyanshibariyaa/jp5/internal/ats"
	"github.com/riyanshibariyaa/jp5/internal/utilities"
)

// RespondServiceError translates a pipeline service error into an HTTP
// response. Unknown errors become a 500 with the error text attached.
func RespondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ats.ErrAuthRequired):
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
	case errors.Is(err, ats.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, utilities.ErrorResponse{Error: err.Error()})
	case errors.Is(err, ats.ErrNotFound):
		c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: err.Error()})
	case errors.Is(err, ats.ErrDuplicateApplication):
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: err.Error()})
	case errors.Is(err, ats.ErrDuplicateOrder):
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: err.Error()})
	case errors.Is(err, ats.ErrInvalidTransition):
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: err.Error()})
	case errors.Is(err, ats.ErrUnsupportedFormat):
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: err.Error()})
	}
}
