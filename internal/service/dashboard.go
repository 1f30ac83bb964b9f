package service

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"driverpay/internal/domain"
	"driverpay/internal/logger"
	"driverpay/internal/redis"
	"driverpay/internal/repository"
)

// DashboardService derives the summary shown on the dashboard.
type DashboardService struct {
	store repository.Store
	cache redis.CacheStoreInterface
}

// NewDashboardService creates a new DashboardService. cache may be nil.
func NewDashboardService(store repository.Store, cache redis.CacheStoreInterface) *DashboardService {
	return &DashboardService{store: store, cache: cache}
}

// Stats returns driver and trip counts, pending and paid totals, and the
// most recent trips. A cached snapshot is served when available.
func (s *DashboardService) Stats(ctx context.Context) (*domain.DashboardStats, error) {
	if s.cache != nil {
		cached, err := s.cache.GetDashboard(ctx)
		if err != nil {
			logger.WithContext(ctx).Warn("dashboard cache read failed", zap.Error(err))
		} else if cached != nil {
			if cached.RecentTrips == nil {
				cached.RecentTrips = []*domain.Trip{}
			}
			return cached, nil
		}
	}

	driverCount, err := s.store.Drivers().Count(ctx)
	if err != nil {
		return nil, err
	}

	trips, err := s.store.Trips().GetAll(ctx)
	if err != nil {
		return nil, err
	}

	settlements, err := s.store.Settlements().GetAll(ctx)
	if err != nil {
		return nil, err
	}

	stats := ComputeDashboard(driverCount, trips, settlements)

	if s.cache != nil {
		if err := s.cache.SetDashboard(ctx, stats); err != nil {
			logger.WithContext(ctx).Warn("dashboard cache write failed", zap.Error(err))
		}
	}

	return stats, nil
}

// ComputeDashboard aggregates the given collections. Empty inputs give zero
// totals and an empty recent-trips list.
func ComputeDashboard(driverCount int, trips []*domain.Trip, settlements []*domain.Settlement) *domain.DashboardStats {
	stats := &domain.DashboardStats{
		TotalDrivers: driverCount,
		TotalTrips:   len(trips),
		RecentTrips:  RecentTrips(trips, domain.RecentTripsLimit),
	}

	for _, settlement := range settlements {
		switch settlement.Status {
		case domain.SettlementStatusPending:
			stats.TotalPendingAmount += settlement.Amount
		case domain.SettlementStatusPaid:
			stats.TotalPaidAmount += settlement.Amount
		}
	}

	return stats
}

// RecentTrips returns up to limit trips ordered by date, newest first.
// The input slice is not modified.
func RecentTrips(trips []*domain.Trip, limit int) []*domain.Trip {
	sorted := make([]*domain.Trip, len(trips))
	copy(sorted, trips)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})

	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}
