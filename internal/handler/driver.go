package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"driverpay/internal/domain"
	"driverpay/internal/service"
)

// DriverHandler handles HTTP requests for drivers.
type DriverHandler struct {
	driverService *service.DriverService
}

// NewDriverHandler creates a new DriverHandler.
func NewDriverHandler(driverService *service.DriverService) *DriverHandler {
	return &DriverHandler{driverService: driverService}
}

// CreateDriverRequest is the HTTP request body for adding a driver.
type CreateDriverRequest struct {
	Name              string `json:"name" binding:"required"`
	VehicleNumber     string `json:"vehicleNumber" binding:"required"`
	PaymentPreference string `json:"paymentPreference" binding:"required,oneof=BATTA SALARY BOTH"`
}

// UpdateDriverRequest is the HTTP request body for changing a driver's payment preference.
type UpdateDriverRequest struct {
	PaymentPreference string `json:"paymentPreference" binding:"required,oneof=BATTA SALARY BOTH"`
}

// List handles GET /api/drivers
func (h *DriverHandler) List(c *gin.Context) {
	drivers, err := h.driverService.ListDrivers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toDriverResponses(drivers))
}

// Get handles GET /api/drivers/:id
func (h *DriverHandler) Get(c *gin.Context) {
	driver, err := h.driverService.GetDriver(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toDriverResponse(driver))
}

// Create handles POST /api/drivers
func (h *DriverHandler) Create(c *gin.Context) {
	var req CreateDriverRequest
	if !bindJSON(c, &req) {
		return
	}

	driver, err := h.driverService.CreateDriver(c.Request.Context(), service.CreateDriverRequest{
		Name:              req.Name,
		VehicleNumber:     req.VehicleNumber,
		PaymentPreference: domain.PaymentPreference(req.PaymentPreference),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toDriverResponse(driver))
}

// Update handles PUT /api/drivers/:id
func (h *DriverHandler) Update(c *gin.Context) {
	driverID := c.Param("id")

	var req UpdateDriverRequest
	if !bindJSON(c, &req) {
		return
	}

	driver, err := h.driverService.UpdatePaymentPreference(c.Request.Context(), driverID, domain.PaymentPreference(req.PaymentPreference))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toDriverResponse(driver))
}

// Delete handles DELETE /api/drivers/:id
func (h *DriverHandler) Delete(c *gin.Context) {
	if err := h.driverService.DeleteDriver(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
