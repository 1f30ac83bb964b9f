package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"go.uber.org/zap"

	"driverpay/internal/domain"
	"driverpay/internal/logger"
	"driverpay/internal/redis"
	"driverpay/internal/repository"
)

// SettlementService handles settlement payment and listing.
type SettlementService struct {
	store repository.Store
	cache redis.CacheStoreInterface
	now   func() time.Time
}

// NewSettlementService creates a new SettlementService. cache may be nil.
func NewSettlementService(store repository.Store, cache redis.CacheStoreInterface) *SettlementService {
	return &SettlementService{
		store: store,
		cache: cache,
		now:   time.Now,
	}
}

// Settle marks a PENDING settlement as PAID.
// Settling is one-shot: a PAID settlement yields ErrSettlementAlreadyPaid.
func (s *SettlementService) Settle(ctx context.Context, settlementID string) (*domain.Settlement, error) {
	if settlementID == "" {
		return nil, ErrInvalidSettlementID
	}

	current, err := s.store.Settlements().GetByID(ctx, settlementID)
	if err != nil {
		return nil, err
	}

	if current.IsPaid() {
		return nil, ErrSettlementAlreadyPaid
	}

	paidAt := s.now().UTC()
	if paidAt.Before(current.Date) {
		paidAt = current.Date
	}

	settled, err := s.store.Settlements().MarkPaid(ctx, settlementID, paidAt)
	if err != nil {
		if errors.Is(err, repository.ErrStatusConflict) {
			return nil, ErrSettlementAlreadyPaid
		}
		return nil, err
	}

	settlementsPaidTotal.WithLabelValues(string(settled.Type)).Inc()
	settlementAmountPaidTotal.WithLabelValues(string(settled.Type)).Add(settled.Amount)
	invalidateDashboard(ctx, s.cache)

	logger.WithContext(ctx).Info("settlement paid",
		zap.String("settlement_id", settled.ID),
		zap.String("driver_id", settled.DriverID),
		zap.String("type", string(settled.Type)),
		zap.Float64("amount", settled.Amount),
	)

	return settled, nil
}

// ListSettlements returns the settlements matching every non-empty filter field,
// in store order.
func (s *SettlementService) ListSettlements(ctx context.Context, filter domain.SettlementFilter) ([]*domain.Settlement, error) {
	if filter.Type != "" && !filter.Type.Valid() {
		return nil, ErrInvalidSettlementType
	}
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, ErrInvalidSettlementStatus
	}

	all, err := s.store.Settlements().GetAll(ctx)
	if err != nil {
		return nil, err
	}

	return FilterSettlements(all, filter), nil
}

// PaymentHistory returns PAID settlements, most recently paid first.
func (s *SettlementService) PaymentHistory(ctx context.Context) ([]*domain.Settlement, error) {
	all, err := s.store.Settlements().GetAll(ctx)
	if err != nil {
		return nil, err
	}

	return PaidHistory(all), nil
}

// FilterSettlements keeps the settlements matching filter, preserving order.
func FilterSettlements(settlements []*domain.Settlement, filter domain.SettlementFilter) []*domain.Settlement {
	out := make([]*domain.Settlement, 0, len(settlements))
	for _, settlement := range settlements {
		if filter.Matches(settlement) {
			out = append(out, settlement)
		}
	}
	return out
}

// PaidHistory keeps PAID settlements ordered by paid-at, newest first.
func PaidHistory(settlements []*domain.Settlement) []*domain.Settlement {
	paid := FilterSettlements(settlements, domain.SettlementFilter{Status: domain.SettlementStatusPaid})
	sort.SliceStable(paid, func(i, j int) bool {
		return paid[i].PaidAt.After(paid[j].PaidAt)
	})
	return paid
}
