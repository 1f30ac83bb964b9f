package repository

import (
	"context"
	"time"

	"driverpay/internal/domain"
)

// SettlementRepository defines the persistence operations for settlements.
type SettlementRepository interface {
	// Create persists a new settlement.
	Create(ctx context.Context, settlement *domain.Settlement) error

	// GetByID retrieves a settlement by ID.
	GetByID(ctx context.Context, id string) (*domain.Settlement, error)

	// GetAll retrieves all settlements in store order.
	GetAll(ctx context.Context) ([]*domain.Settlement, error)

	// CountPendingByDriverID returns the number of PENDING settlements for a driver.
	CountPendingByDriverID(ctx context.Context, driverID string) (int, error)

	// MarkPaid moves a PENDING settlement to PAID and returns the updated row.
	// Returns ErrNotFound if the settlement does not exist and
	// ErrStatusConflict if it is no longer PENDING.
	MarkPaid(ctx context.Context, id string, paidAt time.Time) (*domain.Settlement, error)
}
