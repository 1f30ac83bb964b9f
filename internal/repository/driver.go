package repository

import (
	"context"

	"driverpay/internal/domain"
)

// DriverRepository defines the persistence operations for drivers.
type DriverRepository interface {
	// Create adds a new driver.
	Create(ctx context.Context, driver *domain.Driver) error

	// GetByID retrieves a driver by ID.
	GetByID(ctx context.Context, id string) (*domain.Driver, error)

	// GetAll retrieves all drivers.
	GetAll(ctx context.Context) ([]*domain.Driver, error)

	// Count returns the number of drivers.
	Count(ctx context.Context) (int, error)

	// UpdatePaymentPreference changes the payment preference of a driver.
	UpdatePaymentPreference(ctx context.Context, id string, pref domain.PaymentPreference) error

	// Delete removes a driver.
	Delete(ctx context.Context, id string) error
}
