package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wms/backend/internal/domain/inventory"
	"github.com/wms/backend/internal/domain/shared"
	"github.com/wms/backend/internal/domain/shared/valueobject"
)

// GormRecordRepository implements inventory.RecordRepository using GORM
type GormRecordRepository struct {
	db *gorm.DB
}

// NewGormRecordRepository creates a new GormRecordRepository
func NewGormRecordRepository(db *gorm.DB) *GormRecordRepository {
	return &GormRecordRepository{db: db}
}

// FindByID finds an inventory record by its ID
func (r *GormRecordRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Record, error) {
	var record inventory.Record
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// SnapshotBySKUs returns all records of the given SKUs in a warehouse,
// ordered by creation time so the snapshot itself is deterministic.
func (r *GormRecordRepository) SnapshotBySKUs(ctx context.Context, warehouseID uuid.UUID, skus []string) ([]inventory.Record, error) {
	var records []inventory.Record
	if err := r.db.WithContext(ctx).
		Where("warehouse_id = ? AND sku IN ?", warehouseID, skus).
		Order("created_at ASC, location ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// FindBySKU returns all records of one SKU in a warehouse
func (r *GormRecordRepository) FindBySKU(ctx context.Context, warehouseID uuid.UUID, sku string) ([]inventory.Record, error) {
	var records []inventory.Record
	if err := r.db.WithContext(ctx).
		Where("warehouse_id = ? AND sku = ?", warehouseID, sku).
		Order("created_at ASC, location ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// FindAtLocation finds the record holding a SKU/lot at a specific location
func (r *GormRecordRepository) FindAtLocation(ctx context.Context, warehouseID uuid.UUID, location, sku, lotNumber string) (*inventory.Record, error) {
	var record inventory.Record
	if err := r.db.WithContext(ctx).
		Where("warehouse_id = ? AND location = ? AND sku = ? AND lot_number = ?",
			warehouseID, location, sku, lotNumber).
		First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// Save creates or updates a record
func (r *GormRecordRepository) Save(ctx context.Context, record *inventory.Record) error {
	return r.db.WithContext(ctx).Save(record).Error
}

// DecrementTiers atomically subtracts tier counts from a record. The UPDATE
// only matches while every tier still holds the amount taken; zero affected
// rows means another operation got there first and the caller must retry or
// give up with CONCURRENCY_CONFLICT.
func (r *GormRecordRepository) DecrementTiers(ctx context.Context, id uuid.UUID, take valueobject.TierQuantity) error {
	result := r.db.WithContext(ctx).Model(&inventory.Record{}).
		Where("id = ? AND cartons >= ? AND boxes >= ? AND units >= ?",
			id, take.Cartons, take.Boxes, take.Units).
		Updates(map[string]interface{}{
			"cartons":    gorm.Expr("cartons - ?", take.Cartons),
			"boxes":      gorm.Expr("boxes - ?", take.Boxes),
			"units":      gorm.Expr("units - ?", take.Units),
			"version":    gorm.Expr("version + 1"),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// IncrementTiers atomically adds tier counts back to a record
func (r *GormRecordRepository) IncrementTiers(ctx context.Context, id uuid.UUID, give valueobject.TierQuantity) error {
	result := r.db.WithContext(ctx).Model(&inventory.Record{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"cartons":    gorm.Expr("cartons + ?", give.Cartons),
			"boxes":      gorm.Expr("boxes + ?", give.Boxes),
			"units":      gorm.Expr("units + ?", give.Units),
			"version":    gorm.Expr("version + 1"),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// ReplaceTiers rewrites a record's tier counts, guarded on the tiers still
// holding the snapshot the caller split against. Same compare-and-swap
// contract as DecrementTiers; zero affected rows means the stock changed
// under the caller.
func (r *GormRecordRepository) ReplaceTiers(ctx context.Context, id uuid.UUID, expected, next valueobject.TierQuantity) error {
	result := r.db.WithContext(ctx).Model(&inventory.Record{}).
		Where("id = ? AND cartons = ? AND boxes = ? AND units = ?",
			id, expected.Cartons, expected.Boxes, expected.Units).
		Updates(map[string]interface{}{
			"cartons":    next.Cartons,
			"boxes":      next.Boxes,
			"units":      next.Units,
			"version":    gorm.Expr("version + 1"),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// Delete removes a record
func (r *GormRecordRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&inventory.Record{}, "id = ?", id).Error
}

var _ inventory.RecordRepository = (*GormRecordRepository)(nil)
