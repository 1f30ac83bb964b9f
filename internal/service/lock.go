package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"driverpay/internal/logger"
)

const (
	driverLockTTL      = 10 * time.Second
	driverLockAttempts = 5
	driverLockBackoff  = 50 * time.Millisecond
)

// withDriverLock runs fn while holding the driver's lock. Without a locker,
// or when Redis is unreachable, fn runs unlocked.
func (s *DriverService) withDriverLock(ctx context.Context, driverID string, fn func() error) error {
	if s.locker == nil {
		return fn()
	}

	var (
		token    string
		acquired bool
		err      error
	)
	for attempt := 0; attempt < driverLockAttempts; attempt++ {
		token, acquired, err = s.locker.AcquireDriverLock(ctx, driverID, driverLockTTL)
		if err != nil {
			logger.WithContext(ctx).Warn("driver lock unavailable, continuing unlocked",
				zap.String("driver_id", driverID),
				zap.Error(err),
			)
			return fn()
		}
		if acquired {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(driverLockBackoff):
		}
	}
	if !acquired {
		return ErrDriverBusy
	}

	defer func() {
		if err := s.locker.ReleaseDriverLock(context.WithoutCancel(ctx), driverID, token); err != nil {
			logger.WithContext(ctx).Warn("failed to release driver lock",
				zap.String("driver_id", driverID),
				zap.Error(err),
			)
		}
	}()

	return fn()
}
