package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"driverpay/internal/logger"
	"driverpay/internal/repository"
	"driverpay/internal/service"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// respondError sends an error response with the appropriate HTTP status code.
func respondError(c *gin.Context, err error) {
	code := mapErrorToHTTPStatus(err)
	if code == http.StatusInternalServerError {
		logger.WithContext(c.Request.Context()).Error("request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		_ = c.Error(err)
	}
	c.JSON(code, ErrorResponse{Error: err.Error()})
}

// respondJSON sends a JSON response with the given status code.
func respondJSON(c *gin.Context, code int, data any) {
	c.JSON(code, data)
}

// mapErrorToHTTPStatus maps service/repository errors to HTTP status codes.
func mapErrorToHTTPStatus(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound

	// Validation errors - Bad Request
	case errors.Is(err, service.ErrInvalidDriverID),
		errors.Is(err, service.ErrInvalidDriverName),
		errors.Is(err, service.ErrInvalidVehicleNumber),
		errors.Is(err, service.ErrInvalidPaymentPreference),
		errors.Is(err, service.ErrInvalidPickupPoint),
		errors.Is(err, service.ErrInvalidDestination),
		errors.Is(err, service.ErrInvalidAmount),
		errors.Is(err, service.ErrInvalidSettlementID),
		errors.Is(err, service.ErrInvalidSettlementType),
		errors.Is(err, service.ErrInvalidSettlementStatus):
		return http.StatusBadRequest

	// Conflict errors
	case errors.Is(err, service.ErrSettlementAlreadyPaid),
		errors.Is(err, service.ErrDriverHasPendingSettlements),
		errors.Is(err, service.ErrDriverBusy),
		errors.Is(err, repository.ErrStatusConflict):
		return http.StatusConflict

	// Default to internal server error
	default:
		return http.StatusInternalServerError
	}
}
