package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"driverpay/internal/domain"
	"driverpay/internal/service"
)

// SettlementHandler handles HTTP requests for settlements and payment history.
type SettlementHandler struct {
	settlementService *service.SettlementService
}

// NewSettlementHandler creates a new SettlementHandler.
func NewSettlementHandler(settlementService *service.SettlementService) *SettlementHandler {
	return &SettlementHandler{settlementService: settlementService}
}

// ListSettlementsQuery holds the optional settlement filters.
type ListSettlementsQuery struct {
	Type   string `form:"type" binding:"omitempty,oneof=BATTA SALARY"`
	Status string `form:"status" binding:"omitempty,oneof=PENDING PAID"`
}

// List handles GET /api/settlements
func (h *SettlementHandler) List(c *gin.Context) {
	var query ListSettlementsQuery
	if !bindQuery(c, &query) {
		return
	}

	settlements, err := h.settlementService.ListSettlements(c.Request.Context(), domain.SettlementFilter{
		Type:   domain.SettlementType(query.Type),
		Status: domain.SettlementStatus(query.Status),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toSettlementResponses(settlements))
}

// Pay handles PUT /api/settlements/:id/pay
func (h *SettlementHandler) Pay(c *gin.Context) {
	settlement, err := h.settlementService.Settle(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toSettlementResponse(settlement))
}

// History handles GET /api/history
func (h *SettlementHandler) History(c *gin.Context) {
	history, err := h.settlementService.PaymentHistory(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, toSettlementResponses(history))
}
