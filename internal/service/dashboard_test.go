package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"driverpay/internal/domain"
)

func TestComputeDashboard(t *testing.T) {
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	trips := []*domain.Trip{
		{ID: "t1", Date: base},
		{ID: "t2", Date: base.Add(time.Hour)},
	}
	settlements := []*domain.Settlement{
		{ID: "s1", Amount: 500, Status: domain.SettlementStatusPaid},
		{ID: "s2", Amount: 700, Status: domain.SettlementStatusPending},
		{ID: "s3", Amount: 100, Status: domain.SettlementStatusPending},
	}

	stats := ComputeDashboard(4, trips, settlements)

	assert.Equal(t, 4, stats.TotalDrivers)
	assert.Equal(t, 2, stats.TotalTrips)
	assert.Equal(t, 800.0, stats.TotalPendingAmount)
	assert.Equal(t, 500.0, stats.TotalPaidAmount)
	require.Len(t, stats.RecentTrips, 2)
	assert.Equal(t, "t2", stats.RecentTrips[0].ID)
}

func TestComputeDashboard_Empty(t *testing.T) {
	stats := ComputeDashboard(0, nil, nil)

	assert.Zero(t, stats.TotalDrivers)
	assert.Zero(t, stats.TotalPendingAmount)
	assert.NotNil(t, stats.RecentTrips)
	assert.Empty(t, stats.RecentTrips)
}

func TestRecentTrips_DoesNotReorderInput(t *testing.T) {
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	trips := []*domain.Trip{
		{ID: "old", Date: base},
		{ID: "new", Date: base.Add(time.Hour)},
	}

	recent := RecentTrips(trips, 1)

	require.Len(t, recent, 1)
	assert.Equal(t, "new", recent[0].ID)
	assert.Equal(t, "old", trips[0].ID)
}

func TestPaidHistory(t *testing.T) {
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	settlements := []*domain.Settlement{
		{ID: "a", Status: domain.SettlementStatusPaid, PaidAt: base},
		{ID: "b", Status: domain.SettlementStatusPending},
		{ID: "c", Status: domain.SettlementStatusPaid, PaidAt: base.Add(2 * time.Hour)},
		{ID: "d", Status: domain.SettlementStatusPaid, PaidAt: base.Add(time.Hour)},
	}

	history := PaidHistory(settlements)

	ids := make([]string, 0, len(history))
	for _, s := range history {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []string{"c", "d", "a"}, ids)
}

func TestFilterSettlements(t *testing.T) {
	settlements := []*domain.Settlement{
		{ID: "a", Type: domain.SettlementTypeBatta, Status: domain.SettlementStatusPaid},
		{ID: "b", Type: domain.SettlementTypeSalary, Status: domain.SettlementStatusPending},
		{ID: "c", Type: domain.SettlementTypeBatta, Status: domain.SettlementStatusPending},
	}

	got := FilterSettlements(settlements, domain.SettlementFilter{
		Type:   domain.SettlementTypeBatta,
		Status: domain.SettlementStatusPending,
	})

	require.Len(t, got, 1)
	assert.Equal(t, "c", got[0].ID)
}
