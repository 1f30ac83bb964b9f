package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"driverpay/internal/repository"
)

// Store is a PostgreSQL implementation of repository.Store.
type Store struct {
	db          *sql.DB // nil when the store is bound to a transaction
	drivers     *DriverRepository
	trips       *TripRepository
	settlements *SettlementRepository
}

// NewStore creates a store backed by the connection pool.
func NewStore(db *sql.DB) *Store {
	return &Store{
		db:          db,
		drivers:     NewDriverRepository(db),
		trips:       NewTripRepository(db),
		settlements: NewSettlementRepository(db),
	}
}

func newTxStore(tx *sql.Tx) *Store {
	return &Store{
		drivers:     NewDriverRepositoryWithTx(tx),
		trips:       NewTripRepositoryWithTx(tx),
		settlements: NewSettlementRepositoryWithTx(tx),
	}
}

func (s *Store) Drivers() repository.DriverRepository {
	return s.drivers
}

func (s *Store) Trips() repository.TripRepository {
	return s.trips
}

func (s *Store) Settlements() repository.SettlementRepository {
	return s.settlements
}

// WithinTx runs fn inside a transaction. Nested calls reuse the outer transaction.
func (s *Store) WithinTx(ctx context.Context, fn func(tx repository.Store) error) (err error) {
	if s.db == nil {
		return fn(s)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = fn(newTxStore(tx)); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// Ensure Store implements repository.Store.
var _ repository.Store = (*Store)(nil)
