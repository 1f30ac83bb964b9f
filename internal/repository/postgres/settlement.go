package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"driverpay/internal/domain"
	"driverpay/internal/repository"
)

const settlementColumns = `id, trip_id, driver_id, driver_name, amount, type, status, date, paid_at`

// SettlementRepository is a PostgreSQL implementation of repository.SettlementRepository.
type SettlementRepository struct {
	q Querier
}

// NewSettlementRepository creates a new PostgreSQL settlement repository.
func NewSettlementRepository(db *sql.DB) *SettlementRepository {
	return &SettlementRepository{q: db}
}

// NewSettlementRepositoryWithTx creates a settlement repository using a transaction.
func NewSettlementRepositoryWithTx(tx *sql.Tx) *SettlementRepository {
	return &SettlementRepository{q: tx}
}

// Create persists a new settlement.
func (r *SettlementRepository) Create(ctx context.Context, settlement *domain.Settlement) error {
	query := `
		INSERT INTO settlements (` + settlementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	var paidAt sql.NullTime
	if !settlement.PaidAt.IsZero() {
		paidAt = sql.NullTime{Time: settlement.PaidAt, Valid: true}
	}

	_, err := r.q.ExecContext(ctx, query,
		settlement.ID,
		settlement.TripID,
		settlement.DriverID,
		settlement.DriverName,
		settlement.Amount,
		settlement.Type,
		settlement.Status,
		settlement.Date,
		paidAt,
	)

	return err
}

// GetByID retrieves a settlement by ID.
func (r *SettlementRepository) GetByID(ctx context.Context, id string) (*domain.Settlement, error) {
	query := `SELECT ` + settlementColumns + ` FROM settlements WHERE id = $1`

	settlement, err := scanSettlement(r.q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return settlement, nil
}

// GetAll retrieves all settlements in store order.
func (r *SettlementRepository) GetAll(ctx context.Context) ([]*domain.Settlement, error) {
	query := `SELECT ` + settlementColumns + ` FROM settlements ORDER BY date, id`

	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	settlements := []*domain.Settlement{}
	for rows.Next() {
		settlement, err := scanSettlement(rows)
		if err != nil {
			return nil, err
		}
		settlements = append(settlements, settlement)
	}

	return settlements, rows.Err()
}

// CountPendingByDriverID returns the number of PENDING settlements for a driver.
func (r *SettlementRepository) CountPendingByDriverID(ctx context.Context, driverID string) (int, error) {
	query := `SELECT COUNT(*) FROM settlements WHERE driver_id = $1 AND status = $2`

	var n int
	err := r.q.QueryRowContext(ctx, query, driverID, domain.SettlementStatusPending).Scan(&n)
	return n, err
}

// MarkPaid moves a PENDING settlement to PAID and returns the updated row.
// The status guard in the WHERE clause makes concurrent calls race-safe:
// only one of them can match the PENDING row.
func (r *SettlementRepository) MarkPaid(ctx context.Context, id string, paidAt time.Time) (*domain.Settlement, error) {
	query := `
		UPDATE settlements SET status = $1, paid_at = $2
		WHERE id = $3 AND status = $4
		RETURNING ` + settlementColumns

	settlement, err := scanSettlement(r.q.QueryRowContext(ctx, query,
		domain.SettlementStatusPaid,
		paidAt,
		id,
		domain.SettlementStatusPending,
	))
	if err == nil {
		return settlement, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	// Nothing matched: either the row is gone or it is no longer PENDING.
	if _, err := r.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return nil, repository.ErrStatusConflict
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanSettlement(row rowScanner) (*domain.Settlement, error) {
	var settlement domain.Settlement
	var paidAt sql.NullTime

	if err := row.Scan(
		&settlement.ID,
		&settlement.TripID,
		&settlement.DriverID,
		&settlement.DriverName,
		&settlement.Amount,
		&settlement.Type,
		&settlement.Status,
		&settlement.Date,
		&paidAt,
	); err != nil {
		return nil, err
	}

	if paidAt.Valid {
		settlement.PaidAt = paidAt.Time
	}

	return &settlement, nil
}

// Ensure SettlementRepository implements repository.SettlementRepository.
var _ repository.SettlementRepository = (*SettlementRepository)(nil)
