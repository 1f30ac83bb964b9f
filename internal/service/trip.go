package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"driverpay/internal/domain"
	"driverpay/internal/logger"
	"driverpay/internal/redis"
	"driverpay/internal/repository"
)

// TripService handles trip logging and the settlements created with each trip.
type TripService struct {
	store         repository.Store
	driverService *DriverService
	cache         redis.CacheStoreInterface
	now           func() time.Time
}

// NewTripService creates a new TripService. cache may be nil.
func NewTripService(store repository.Store, driverService *DriverService, cache redis.CacheStoreInterface) *TripService {
	return &TripService{
		store:         store,
		driverService: driverService,
		cache:         cache,
		now:           time.Now,
	}
}

// CreateTripRequest contains the parameters for logging a trip.
// Zero amounts are treated as not supplied.
type CreateTripRequest struct {
	DriverID     string
	PickupPoint  string
	Destination  string
	BattaAmount  float64
	SalaryAmount float64
	TotalAmount  float64
}

// CreateTrip logs a trip for a driver and opens one PENDING settlement for
// each non-zero component of the split. The driver is read and the trip and
// its settlements are written in one transaction, under the driver's lock.
func (s *TripService) CreateTrip(ctx context.Context, req CreateTripRequest) (*domain.Trip, error) {
	driverID := strings.TrimSpace(req.DriverID)
	if driverID == "" {
		return nil, ErrInvalidDriverID
	}

	pickup := strings.TrimSpace(req.PickupPoint)
	if pickup == "" {
		return nil, ErrInvalidPickupPoint
	}

	destination := strings.TrimSpace(req.Destination)
	if destination == "" {
		return nil, ErrInvalidDestination
	}

	var (
		trip        *domain.Trip
		settlements []*domain.Settlement
	)
	err := s.driverService.withDriverLock(ctx, driverID, func() error {
		return s.store.WithinTx(ctx, func(tx repository.Store) error {
			driver, err := tx.Drivers().GetByID(ctx, driverID)
			if err != nil {
				return err
			}

			split, err := ComputeSplit(driver.PaymentPreference, SplitRequest{
				BattaAmount:  req.BattaAmount,
				SalaryAmount: req.SalaryAmount,
				TotalAmount:  req.TotalAmount,
			})
			if err != nil {
				return err
			}

			trip = &domain.Trip{
				ID:           uuid.New().String(),
				DriverID:     driver.ID,
				DriverName:   driver.Name,
				PickupPoint:  pickup,
				Destination:  destination,
				Route:        domain.BuildRoute(pickup, destination),
				BattaAmount:  split.BattaAmount,
				SalaryAmount: split.SalaryAmount,
				TotalAmount:  split.Total(),
				Date:         s.now().UTC(),
			}
			settlements = settlementsForTrip(trip, driver)

			if err := tx.Trips().Create(ctx, trip); err != nil {
				return fmt.Errorf("create trip: %w", err)
			}
			for _, settlement := range settlements {
				if err := tx.Settlements().Create(ctx, settlement); err != nil {
					return fmt.Errorf("create %s settlement: %w", settlement.Type, err)
				}
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	tripsCreatedTotal.Inc()
	for _, settlement := range settlements {
		settlementsCreatedTotal.WithLabelValues(string(settlement.Type)).Inc()
	}
	invalidateDashboard(ctx, s.cache)

	logger.WithContext(ctx).Info("trip created",
		zap.String("trip_id", trip.ID),
		zap.String("driver_id", trip.DriverID),
		zap.Float64("batta_amount", trip.BattaAmount),
		zap.Float64("salary_amount", trip.SalaryAmount),
		zap.Int("settlements", len(settlements)),
	)

	return trip, nil
}

// ListTrips returns all trips, oldest first.
func (s *TripService) ListTrips(ctx context.Context) ([]*domain.Trip, error) {
	return s.store.Trips().GetAll(ctx)
}

// settlementsForTrip builds the PENDING settlements owed for a trip,
// at most one per type and none for a zero component.
func settlementsForTrip(trip *domain.Trip, driver *domain.Driver) []*domain.Settlement {
	parts := []struct {
		typ    domain.SettlementType
		amount float64
	}{
		{domain.SettlementTypeBatta, trip.BattaAmount},
		{domain.SettlementTypeSalary, trip.SalaryAmount},
	}

	var settlements []*domain.Settlement
	for _, part := range parts {
		if part.amount <= 0 {
			continue
		}
		settlements = append(settlements, &domain.Settlement{
			ID:         uuid.New().String(),
			TripID:     trip.ID,
			DriverID:   driver.ID,
			DriverName: driver.Name,
			Amount:     part.amount,
			Type:       part.typ,
			Status:     domain.SettlementStatusPending,
			Date:       trip.Date,
		})
	}
	return settlements
}
