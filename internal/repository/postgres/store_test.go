package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"driverpay/internal/domain"
	"driverpay/internal/repository"
)

func TestStore_WithinTx_Commit(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewStore(db)
	date := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO trips")).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO settlements")).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := store.WithinTx(context.Background(), func(tx repository.Store) error {
		if err := tx.Trips().Create(context.Background(), &domain.Trip{ID: "t1", DriverID: "d1", Date: date}); err != nil {
			return err
		}
		return tx.Settlements().Create(context.Background(), &domain.Settlement{
			ID: "s1", TripID: "t1", Type: domain.SettlementTypeBatta, Status: domain.SettlementStatusPending, Date: date,
		})
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_WithinTx_RollbackOnError(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewStore(db)
	insertErr := errors.New("unique violation")

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO trips")).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO settlements")).WillReturnError(insertErr)
	mock.ExpectRollback()

	err := store.WithinTx(context.Background(), func(tx repository.Store) error {
		if err := tx.Trips().Create(context.Background(), &domain.Trip{ID: "t1"}); err != nil {
			return err
		}
		return tx.Settlements().Create(context.Background(), &domain.Settlement{ID: "s1", TripID: "t1"})
	})

	assert.ErrorIs(t, err, insertErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_WithinTx_BeginError(t *testing.T) {
	db, mock := newMockDB(t)
	store := NewStore(db)

	mock.ExpectBegin().WillReturnError(errors.New("too many connections"))

	called := false
	err := store.WithinTx(context.Background(), func(tx repository.Store) error {
		called = true
		return nil
	})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "begin transaction")
	assert.False(t, called)
}

func TestDriverRepository_Delete_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewDriverRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM drivers WHERE id = $1")).
		WithArgs("ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "ghost")

	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDriverRepository_UpdatePaymentPreference(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewDriverRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE drivers SET payment_preference = $1 WHERE id = $2")).
		WithArgs("SALARY", "d1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdatePaymentPreference(context.Background(), "d1", domain.PaymentPreferenceSalary)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDriverRepository_GetAll(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewDriverRepository(db)
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("FROM drivers ORDER BY created_at, id")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "vehicle_number", "payment_preference", "created_at"}).
			AddRow("d1", "Ravi", "TN-09-1234", "BOTH", created))

	drivers, err := repo.GetAll(context.Background())

	require.NoError(t, err)
	require.Len(t, drivers, 1)
	assert.Equal(t, domain.PaymentPreferenceBoth, drivers[0].PaymentPreference)
	assert.Equal(t, "TN-09-1234", drivers[0].VehicleNumber)
}

func TestMigrate(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS drivers")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, Migrate(context.Background(), db))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSchema_AmountsUnscaled(t *testing.T) {
	// Amount columns keep whatever precision the service computed.
	assert.NotContains(t, schemaSQL, "NUMERIC(")
	assert.Contains(t, schemaSQL, "amount      NUMERIC NOT NULL")
}
