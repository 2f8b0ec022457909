package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wms/backend/internal/domain/inventory"
)

// GormMovementRepository implements inventory.MovementRepository using GORM.
// The movement log is strictly append-only: no update or delete methods.
type GormMovementRepository struct {
	db *gorm.DB
}

// NewGormMovementRepository creates a new GormMovementRepository
func NewGormMovementRepository(db *gorm.DB) *GormMovementRepository {
	return &GormMovementRepository{db: db}
}

// Append writes one movement entry
func (r *GormMovementRepository) Append(ctx context.Context, movement *inventory.Movement) error {
	return r.db.WithContext(ctx).Create(movement).Error
}

// ListByRecord returns movements touching a record, newest first
func (r *GormMovementRepository) ListByRecord(ctx context.Context, recordID uuid.UUID) ([]inventory.Movement, error) {
	var movements []inventory.Movement
	if err := r.db.WithContext(ctx).
		Where("record_id = ?", recordID).
		Order("moved_at DESC").
		Find(&movements).Error; err != nil {
		return nil, err
	}
	return movements, nil
}

// ListBySource returns movements produced by one source document
func (r *GormMovementRepository) ListBySource(ctx context.Context, sourceType inventory.MovementSourceType, sourceID string) ([]inventory.Movement, error) {
	var movements []inventory.Movement
	if err := r.db.WithContext(ctx).
		Where("source_type = ? AND source_id = ?", sourceType, sourceID).
		Order("moved_at ASC").
		Find(&movements).Error; err != nil {
		return nil, err
	}
	return movements, nil
}

var _ inventory.MovementRepository = (*GormMovementRepository)(nil)
