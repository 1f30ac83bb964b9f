package postgres

import (
	"context"
	"database/sql"

	"driverpay/internal/domain"
	"driverpay/internal/repository"
)

// TripRepository is a PostgreSQL implementation of repository.TripRepository.
type TripRepository struct {
	q Querier
}

// NewTripRepository creates a new PostgreSQL trip repository.
func NewTripRepository(db *sql.DB) *TripRepository {
	return &TripRepository{q: db}
}

// NewTripRepositoryWithTx creates a trip repository using a transaction.
func NewTripRepositoryWithTx(tx *sql.Tx) *TripRepository {
	return &TripRepository{q: tx}
}

// Create persists a new trip.
func (r *TripRepository) Create(ctx context.Context, trip *domain.Trip) error {
	query := `
		INSERT INTO trips (id, driver_id, driver_name, pickup_point, destination, route,
			batta_amount, salary_amount, total_amount, date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.q.ExecContext(ctx, query,
		trip.ID,
		trip.DriverID,
		trip.DriverName,
		trip.PickupPoint,
		trip.Destination,
		trip.Route,
		trip.BattaAmount,
		trip.SalaryAmount,
		trip.TotalAmount,
		trip.Date,
	)

	return err
}

// GetAll retrieves all trips, oldest first.
func (r *TripRepository) GetAll(ctx context.Context) ([]*domain.Trip, error) {
	query := `
		SELECT id, driver_id, driver_name, pickup_point, destination, route,
			batta_amount, salary_amount, total_amount, date
		FROM trips ORDER BY date, id
	`

	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	trips := []*domain.Trip{}
	for rows.Next() {
		var trip domain.Trip
		if err := rows.Scan(
			&trip.ID,
			&trip.DriverID,
			&trip.DriverName,
			&trip.PickupPoint,
			&trip.Destination,
			&trip.Route,
			&trip.BattaAmount,
			&trip.SalaryAmount,
			&trip.TotalAmount,
			&trip.Date,
		); err != nil {
			return nil, err
		}
		trips = append(trips, &trip)
	}

	return trips, rows.Err()
}

// Ensure TripRepository implements repository.TripRepository.
var _ repository.TripRepository = (*TripRepository)(nil)
