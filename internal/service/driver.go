package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"driverpay/internal/domain"
	"driverpay/internal/logger"
	"driverpay/internal/redis"
	"driverpay/internal/repository"
)

// DriverService handles driver operations.
type DriverService struct {
	store  repository.Store
	cache  redis.CacheStoreInterface
	locker redis.LockStoreInterface
	now    func() time.Time
}

// NewDriverService creates a new DriverService. cache and locker may be nil.
func NewDriverService(store repository.Store, cache redis.CacheStoreInterface, locker redis.LockStoreInterface) *DriverService {
	return &DriverService{
		store:  store,
		cache:  cache,
		locker: locker,
		now:    time.Now,
	}
}

// CreateDriverRequest contains the parameters for adding a driver.
type CreateDriverRequest struct {
	Name              string
	VehicleNumber     string
	PaymentPreference domain.PaymentPreference
}

// CreateDriver adds a new driver.
func (s *DriverService) CreateDriver(ctx context.Context, req CreateDriverRequest) (*domain.Driver, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrInvalidDriverName
	}

	vehicle := strings.TrimSpace(req.VehicleNumber)
	if vehicle == "" {
		return nil, ErrInvalidVehicleNumber
	}

	if !req.PaymentPreference.Valid() {
		return nil, ErrInvalidPaymentPreference
	}

	driver := &domain.Driver{
		ID:                uuid.New().String(),
		Name:              name,
		VehicleNumber:     vehicle,
		PaymentPreference: req.PaymentPreference,
		CreatedAt:         s.now().UTC(),
	}

	if err := s.store.Drivers().Create(ctx, driver); err != nil {
		return nil, err
	}

	invalidateDashboard(ctx, s.cache)
	return driver, nil
}

// ListDrivers returns all drivers.
func (s *DriverService) ListDrivers(ctx context.Context) ([]*domain.Driver, error) {
	return s.store.Drivers().GetAll(ctx)
}

// GetDriver retrieves a driver, reading through the cache when one is configured.
func (s *DriverService) GetDriver(ctx context.Context, driverID string) (*domain.Driver, error) {
	if driverID == "" {
		return nil, ErrInvalidDriverID
	}

	if s.cache != nil {
		cached, err := s.cache.GetDriver(ctx, driverID)
		if err != nil {
			logger.WithContext(ctx).Warn("driver cache read failed", zap.String("driver_id", driverID), zap.Error(err))
		} else if cached != nil {
			return fromCachedDriver(cached), nil
		}
	}

	driver, err := s.store.Drivers().GetByID(ctx, driverID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.fillDriverCache(ctx, driver)
	}

	return driver, nil
}

// fillDriverCache stores a driver read from the database. With a locker the
// driver is re-read under its lock, so an update that committed after the
// first read cannot be overwritten by the older copy. The fill is skipped
// while a writer holds the lock.
func (s *DriverService) fillDriverCache(ctx context.Context, driver *domain.Driver) {
	log := logger.WithContext(ctx)

	if s.locker != nil {
		token, acquired, err := s.locker.AcquireDriverLock(ctx, driver.ID, driverLockTTL)
		if err != nil {
			log.Warn("driver lock unavailable, skipping cache fill", zap.String("driver_id", driver.ID), zap.Error(err))
			return
		}
		if !acquired {
			return
		}
		defer func() {
			if err := s.locker.ReleaseDriverLock(context.WithoutCancel(ctx), driver.ID, token); err != nil {
				log.Warn("failed to release driver lock", zap.String("driver_id", driver.ID), zap.Error(err))
			}
		}()

		fresh, err := s.store.Drivers().GetByID(ctx, driver.ID)
		if err != nil {
			return
		}
		driver = fresh
	}

	if err := s.cache.SetDriver(ctx, toCachedDriver(driver)); err != nil {
		log.Warn("driver cache write failed", zap.String("driver_id", driver.ID), zap.Error(err))
	}
}

// UpdatePaymentPreference changes how future trips of the driver are split.
// Existing trips and settlements are not touched.
func (s *DriverService) UpdatePaymentPreference(ctx context.Context, driverID string, pref domain.PaymentPreference) (*domain.Driver, error) {
	if driverID == "" {
		return nil, ErrInvalidDriverID
	}

	if !pref.Valid() {
		return nil, ErrInvalidPaymentPreference
	}

	err := s.withDriverLock(ctx, driverID, func() error {
		if err := s.store.Drivers().UpdatePaymentPreference(ctx, driverID, pref); err != nil {
			return err
		}
		invalidateDriver(ctx, s.cache, driverID)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.store.Drivers().GetByID(ctx, driverID)
}

// DeleteDriver removes a driver who has no pending settlements.
// Trips and paid settlements keep their driver id and name snapshot.
func (s *DriverService) DeleteDriver(ctx context.Context, driverID string) error {
	if driverID == "" {
		return ErrInvalidDriverID
	}

	err := s.withDriverLock(ctx, driverID, func() error {
		err := s.store.WithinTx(ctx, func(tx repository.Store) error {
			pending, err := tx.Settlements().CountPendingByDriverID(ctx, driverID)
			if err != nil {
				return err
			}
			if pending > 0 {
				return ErrDriverHasPendingSettlements
			}
			return tx.Drivers().Delete(ctx, driverID)
		})
		if err != nil {
			return err
		}

		invalidateDriver(ctx, s.cache, driverID)
		return nil
	})
	if err != nil {
		return err
	}

	invalidateDashboard(ctx, s.cache)

	logger.WithContext(ctx).Info("driver deleted", zap.String("driver_id", driverID))
	return nil
}

func toCachedDriver(d *domain.Driver) *redis.CachedDriver {
	return &redis.CachedDriver{
		ID:                d.ID,
		Name:              d.Name,
		VehicleNumber:     d.VehicleNumber,
		PaymentPreference: string(d.PaymentPreference),
		CreatedAt:         d.CreatedAt,
	}
}

func fromCachedDriver(c *redis.CachedDriver) *domain.Driver {
	return &domain.Driver{
		ID:                c.ID,
		Name:              c.Name,
		VehicleNumber:     c.VehicleNumber,
		PaymentPreference: domain.PaymentPreference(c.PaymentPreference),
		CreatedAt:         c.CreatedAt,
	}
}

// invalidateDriver drops the cached driver after a write. A failure leaves
// the old entry until the TTL expires.
func invalidateDriver(ctx context.Context, cache redis.CacheStoreInterface, driverID string) {
	if cache == nil {
		return
	}
	if err := cache.InvalidateDriver(ctx, driverID); err != nil {
		logger.WithContext(ctx).Warn("driver cache invalidation failed", zap.String("driver_id", driverID), zap.Error(err))
	}
}

// invalidateDashboard drops the cached dashboard after a write.
// A failure only delays freshness until the TTL expires.
func invalidateDashboard(ctx context.Context, cache redis.CacheStoreInterface) {
	if cache == nil {
		return
	}
	if err := cache.InvalidateDashboard(ctx); err != nil {
		logger.WithContext(ctx).Warn("dashboard cache invalidation failed", zap.Error(err))
	}
}
