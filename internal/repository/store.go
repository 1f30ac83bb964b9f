package repository

import "context"

// Store groups the repositories behind one persistence backend.
type Store interface {
	Drivers() DriverRepository
	Trips() TripRepository
	Settlements() SettlementRepository

	// WithinTx runs fn with repositories bound to a single transaction.
	// The transaction commits if fn returns nil and rolls back otherwise.
	WithinTx(ctx context.Context, fn func(tx Store) error) error
}
