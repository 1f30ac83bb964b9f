package handler

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"driverpay/internal/domain"
	"driverpay/internal/repository"
	"driverpay/internal/service"
)

func TestMapErrorToHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{repository.ErrNotFound, http.StatusNotFound},
		{fmt.Errorf("get driver: %w", repository.ErrNotFound), http.StatusNotFound},
		{service.ErrInvalidDriverName, http.StatusBadRequest},
		{service.ErrInvalidPaymentPreference, http.StatusBadRequest},
		{service.ErrInvalidAmount, http.StatusBadRequest},
		{service.ErrInvalidSettlementType, http.StatusBadRequest},
		{service.ErrSettlementAlreadyPaid, http.StatusConflict},
		{service.ErrDriverHasPendingSettlements, http.StatusConflict},
		{service.ErrDriverBusy, http.StatusConflict},
		{errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, mapErrorToHTTPStatus(tt.err))
		})
	}
}

func TestToSettlementResponse(t *testing.T) {
	date := time.Date(2024, 5, 1, 8, 30, 0, 0, time.UTC)

	pending := toSettlementResponse(&domain.Settlement{
		ID: "s1", TripID: "t1", DriverID: "d1", DriverName: "Ravi",
		Amount: 500, Type: domain.SettlementTypeBatta, Status: domain.SettlementStatusPending, Date: date,
	})
	assert.Equal(t, "2024-05-01T08:30:00Z", pending.Date)
	assert.Empty(t, pending.PaidAt)
	assert.Equal(t, "BATTA", pending.Type)

	paid := toSettlementResponse(&domain.Settlement{
		ID: "s2", Status: domain.SettlementStatusPaid, Date: date, PaidAt: date.Add(time.Hour),
	})
	assert.Equal(t, "2024-05-01T09:30:00Z", paid.PaidAt)
}

func TestToDashboardResponse_EmptyRecentTrips(t *testing.T) {
	resp := toDashboardResponse(&domain.DashboardStats{})
	assert.NotNil(t, resp.RecentTrips)
	assert.Len(t, resp.RecentTrips, 0)
}
