package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"driverpay/internal/domain"
)

// Default cache TTLs.
const (
	DefaultDriverCacheTTL    = 5 * time.Minute
	DefaultDashboardCacheTTL = 15 * time.Second
)

// Keys.
const (
	driverCachePrefix = "cache:driver:"
	dashboardCacheKey = "cache:dashboard"
)

// CacheStore handles entity caching in Redis.
type CacheStore struct {
	client       *redis.Client
	driverTTL    time.Duration
	dashboardTTL time.Duration
}

// NewCacheStore creates a new CacheStore. Zero TTLs fall back to the defaults.
func NewCacheStore(client *redis.Client, driverTTL, dashboardTTL time.Duration) *CacheStore {
	if driverTTL <= 0 {
		driverTTL = DefaultDriverCacheTTL
	}
	if dashboardTTL <= 0 {
		dashboardTTL = DefaultDashboardCacheTTL
	}
	return &CacheStore{
		client:       client,
		driverTTL:    driverTTL,
		dashboardTTL: dashboardTTL,
	}
}

// CachedDriver represents a cached driver entity.
type CachedDriver struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	VehicleNumber     string    `json:"vehicle_number"`
	PaymentPreference string    `json:"payment_preference"`
	CreatedAt         time.Time `json:"created_at"`
}

// GetDriver retrieves a driver from cache. A miss returns nil, nil.
func (s *CacheStore) GetDriver(ctx context.Context, driverID string) (*CachedDriver, error) {
	var driver CachedDriver
	found, err := s.getJSON(ctx, driverCachePrefix+driverID, &driver)
	if err != nil || !found {
		return nil, err
	}
	return &driver, nil
}

// SetDriver stores a driver in cache.
func (s *CacheStore) SetDriver(ctx context.Context, driver *CachedDriver) error {
	return s.setJSON(ctx, driverCachePrefix+driver.ID, driver, s.driverTTL)
}

// InvalidateDriver removes a driver from cache.
func (s *CacheStore) InvalidateDriver(ctx context.Context, driverID string) error {
	return s.client.Del(ctx, driverCachePrefix+driverID).Err()
}

// GetDashboard retrieves the cached dashboard snapshot. A miss returns nil, nil.
func (s *CacheStore) GetDashboard(ctx context.Context) (*domain.DashboardStats, error) {
	var stats domain.DashboardStats
	found, err := s.getJSON(ctx, dashboardCacheKey, &stats)
	if err != nil || !found {
		return nil, err
	}
	return &stats, nil
}

// SetDashboard stores the dashboard snapshot.
func (s *CacheStore) SetDashboard(ctx context.Context, stats *domain.DashboardStats) error {
	return s.setJSON(ctx, dashboardCacheKey, stats, s.dashboardTTL)
}

// InvalidateDashboard drops the dashboard snapshot.
func (s *CacheStore) InvalidateDashboard(ctx context.Context) error {
	return s.client.Del(ctx, dashboardCacheKey).Err()
}

func (s *CacheStore) getJSON(ctx context.Context, key string, dst any) (bool, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}

	if err := json.Unmarshal(data, dst); err != nil {
		return false, err
	}
	return true, nil
}

func (s *CacheStore) setJSON(ctx context.Context, key string, v any, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, data, ttl).Err()
}
