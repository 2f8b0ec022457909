package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wms/backend/internal/domain/shared"
	"github.com/wms/backend/internal/domain/transfer"
)

// GormTransferOrderRepository implements transfer.TransferOrderRepository
// using GORM
type GormTransferOrderRepository struct {
	db *gorm.DB
}

// NewGormTransferOrderRepository creates a new GormTransferOrderRepository
func NewGormTransferOrderRepository(db *gorm.DB) *GormTransferOrderRepository {
	return &GormTransferOrderRepository{db: db}
}

// FindByID finds a transfer order with its lines
func (r *GormTransferOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*transfer.TransferOrder, error) {
	var order transfer.TransferOrder
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindByOrderNo finds a transfer order by its business key
func (r *GormTransferOrderRepository) FindByOrderNo(ctx context.Context, orderNo string) (*transfer.TransferOrder, error) {
	var order transfer.TransferOrder
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		First(&order, "order_no = ?", orderNo).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// List returns orders, optionally filtered by status, newest first
func (r *GormTransferOrderRepository) List(ctx context.Context, status transfer.OrderStatus, limit, offset int) ([]transfer.TransferOrder, error) {
	query := r.db.WithContext(ctx).Model(&transfer.TransferOrder{}).Preload("Lines")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var orders []transfer.TransferOrder
	if err := query.Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Save creates an order with its lines
func (r *GormTransferOrderRepository) Save(ctx context.Context, order *transfer.TransferOrder) error {
	return r.db.WithContext(ctx).Create(order).Error
}

// Update persists state changes of an order and its lines. The version guard
// rejects lost updates when two actors drive the same order concurrently.
func (r *GormTransferOrderRepository) Update(ctx context.Context, order *transfer.TransferOrder) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&transfer.TransferOrder{}).
			Where("id = ? AND version < ?", order.ID, order.Version).
			Select("Status", "SubmittedBy", "SubmittedAt", "ApprovedBy", "ApprovedAt",
				"ExecutedAt", "FinishedAt", "FailureReason", "Version", "UpdatedAt").
			Updates(order)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrConcurrencyConflict
		}
		for i := range order.Lines {
			if err := tx.Save(&order.Lines[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

var _ transfer.TransferOrderRepository = (*GormTransferOrderRepository)(nil)
