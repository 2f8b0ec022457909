package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/wms/backend/internal/domain/shared"
	"github.com/wms/backend/internal/domain/shared/valueobject"
)

func newMockRecordRepository(t *testing.T) (*GormRecordRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})
	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormRecordRepository(gormDB), mock, mockDB
}

func recordRows(id, warehouseID uuid.UUID) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "warehouse_id", "sku", "product_name", "location", "zone",
		"lot_number", "cartons", "boxes", "units", "carton_rate", "box_rate",
		"version", "created_at", "updated_at",
	}).AddRow(
		id, warehouseID, "SKU-1", "Widget", "A1-2", "A",
		"LOT-9", int64(10), int64(0), int64(5), int64(12), int64(4),
		1, time.Now(), time.Now(),
	)
}

func TestGormRecordRepository_FindByID(t *testing.T) {
	t.Run("finds existing record", func(t *testing.T) {
		repo, mock, mockDB := newMockRecordRepository(t)
		defer mockDB.Close()

		recordID := uuid.New()
		warehouseID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "inventory_records" WHERE id = \$1`).
			WithArgs(recordID, 1).
			WillReturnRows(recordRows(recordID, warehouseID))

		record, err := repo.FindByID(context.Background(), recordID)

		require.NoError(t, err)
		assert.Equal(t, recordID, record.ID)
		assert.Equal(t, "SKU-1", record.SKU)
		assert.Equal(t, int64(125), record.AvailablePieces())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps missing record to not found", func(t *testing.T) {
		repo, mock, mockDB := newMockRecordRepository(t)
		defer mockDB.Close()

		recordID := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "inventory_records" WHERE id = \$1`).
			WithArgs(recordID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		record, err := repo.FindByID(context.Background(), recordID)

		assert.Nil(t, record)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormRecordRepository_SnapshotBySKUs(t *testing.T) {
	repo, mock, mockDB := newMockRecordRepository(t)
	defer mockDB.Close()

	warehouseID := uuid.New()
	mock.ExpectQuery(`SELECT \* FROM "inventory_records" WHERE warehouse_id = \$1 AND sku IN \(\$2,\$3\) ORDER BY created_at ASC, location ASC`).
		WithArgs(warehouseID, "SKU-1", "SKU-2").
		WillReturnRows(recordRows(uuid.New(), warehouseID))

	records, err := repo.SnapshotBySKUs(context.Background(), warehouseID, []string{"SKU-1", "SKU-2"})

	require.NoError(t, err)
	assert.Len(t, records, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormRecordRepository_DecrementTiers(t *testing.T) {
	take := valueobject.MustNewTierQuantity(4, 0, 2, 12, 4)

	t.Run("decrements when every tier still holds enough", func(t *testing.T) {
		repo, mock, mockDB := newMockRecordRepository(t)
		defer mockDB.Close()

		recordID := uuid.New()
		mock.ExpectExec(`UPDATE "inventory_records" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.DecrementTiers(context.Background(), recordID, take)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("reports conflict when the guarded update matches nothing", func(t *testing.T) {
		repo, mock, mockDB := newMockRecordRepository(t)
		defer mockDB.Close()

		recordID := uuid.New()
		mock.ExpectExec(`UPDATE "inventory_records" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.DecrementTiers(context.Background(), recordID, take)

		assert.Equal(t, shared.ErrConcurrencyConflict, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormRecordRepository_ReplaceTiers(t *testing.T) {
	expected := valueobject.MustNewTierQuantity(0, 2, 0, 12, 4)
	next := valueobject.MustNewTierQuantity(0, 1, 1, 12, 4)

	t.Run("rewrites tiers while the snapshot still holds", func(t *testing.T) {
		repo, mock, mockDB := newMockRecordRepository(t)
		defer mockDB.Close()

		mock.ExpectExec(`UPDATE "inventory_records" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.ReplaceTiers(context.Background(), uuid.New(), expected, next)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("reports conflict when the tiers changed underneath", func(t *testing.T) {
		repo, mock, mockDB := newMockRecordRepository(t)
		defer mockDB.Close()

		mock.ExpectExec(`UPDATE "inventory_records" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.ReplaceTiers(context.Background(), uuid.New(), expected, next)

		assert.Equal(t, shared.ErrConcurrencyConflict, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormRecordRepository_IncrementTiers(t *testing.T) {
	t.Run("adds stock back", func(t *testing.T) {
		repo, mock, mockDB := newMockRecordRepository(t)
		defer mockDB.Close()

		mock.ExpectExec(`UPDATE "inventory_records" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.IncrementTiers(context.Background(), uuid.New(), valueobject.MustNewTierQuantity(1, 0, 0, 12, 4))

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing record reported as not found", func(t *testing.T) {
		repo, mock, mockDB := newMockRecordRepository(t)
		defer mockDB.Close()

		mock.ExpectExec(`UPDATE "inventory_records" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.IncrementTiers(context.Background(), uuid.New(), valueobject.MustNewTierQuantity(1, 0, 0, 12, 4))

		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormRecordRepository_FindAtLocation(t *testing.T) {
	repo, mock, mockDB := newMockRecordRepository(t)
	defer mockDB.Close()

	warehouseID := uuid.New()
	mock.ExpectQuery(`SELECT \* FROM "inventory_records" WHERE warehouse_id = \$1 AND location = \$2 AND sku = \$3 AND lot_number = \$4`).
		WithArgs(warehouseID, "B3-1", "SKU-1", "LOT-9", 1).
		WillReturnRows(recordRows(uuid.New(), warehouseID))

	record, err := repo.FindAtLocation(context.Background(), warehouseID, "B3-1", "SKU-1", "LOT-9")

	require.NoError(t, err)
	assert.Equal(t, "SKU-1", record.SKU)
	assert.NoError(t, mock.ExpectationsWereMet())
}
