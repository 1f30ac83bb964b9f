package repository

import (
	"context"

	"driverpay/internal/domain"
)

// TripRepository defines the persistence operations for trips.
type TripRepository interface {
	// Create persists a new trip.
	Create(ctx context.Context, trip *domain.Trip) error

	// GetAll retrieves all trips, oldest first.
	GetAll(ctx context.Context) ([]*domain.Trip, error)
}
