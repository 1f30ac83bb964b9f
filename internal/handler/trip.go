package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"driverpay/internal/service"
)

// TripHandler handles HTTP requests for trips.
type TripHandler struct {
	tripService *service.TripService
}

// NewTripHandler creates a new TripHandler.
func NewTripHandler(tripService *service.TripService) *TripHandler {
	return &TripHandler{tripService: tripService}
}

// CreateTripRequest is the HTTP request body for logging a trip.
// Amounts may be numbers or numeric strings; empty means not supplied.
type CreateTripRequest struct {
	DriverID     string `json:"driverId" binding:"required"`
	PickupPoint  string `json:"pickupPoint" binding:"required"`
	Destination  string `json:"destination" binding:"required"`
	BattaAmount  Amount `json:"battaAmount"`
	SalaryAmount Amount `json:"salaryAmount"`
	TotalAmount  Amount `json:"totalAmount"`
}

// List handles GET /api/trips
func (h *TripHandler) List(c *gin.Context) {
	trips, err := h.tripService.ListTrips(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toTripResponses(trips))
}

// Create handles POST /api/trips
func (h *TripHandler) Create(c *gin.Context) {
	var req CreateTripRequest
	if !bindJSON(c, &req) {
		return
	}

	trip, err := h.tripService.CreateTrip(c.Request.Context(), service.CreateTripRequest{
		DriverID:     req.DriverID,
		PickupPoint:  req.PickupPoint,
		Destination:  req.Destination,
		BattaAmount:  req.BattaAmount.Float64(),
		SalaryAmount: req.SalaryAmount.Float64(),
		TotalAmount:  req.TotalAmount.Float64(),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toTripResponse(trip))
}
