package redis

import (
	"context"
	"time"

	"driverpay/internal/domain"
)

// CacheStoreInterface defines the cache operations used by the services.
type CacheStoreInterface interface {
	GetDriver(ctx context.Context, driverID string) (*CachedDriver, error)
	SetDriver(ctx context.Context, driver *CachedDriver) error
	InvalidateDriver(ctx context.Context, driverID string) error

	GetDashboard(ctx context.Context) (*domain.DashboardStats, error)
	SetDashboard(ctx context.Context, stats *domain.DashboardStats) error
	InvalidateDashboard(ctx context.Context) error
}

// LockStoreInterface defines per-driver locking.
type LockStoreInterface interface {
	AcquireDriverLock(ctx context.Context, driverID string, ttl time.Duration) (string, bool, error)
	ReleaseDriverLock(ctx context.Context, driverID, token string) error
}

// Ensure concrete types implement interfaces.
var (
	_ CacheStoreInterface = (*CacheStore)(nil)
	_ LockStoreInterface  = (*LockStore)(nil)
)
