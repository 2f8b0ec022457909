package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/wms/backend/internal/domain/shared"
	"github.com/wms/backend/internal/domain/shared/valueobject"
)

// MovementSourceType identifies the kind of operation that moved stock.
type MovementSourceType string

const (
	// MovementSourceTransfer is a location-to-location transfer
	MovementSourceTransfer MovementSourceType = "TRANSFER"
	// MovementSourcePicking is a pick executed against an allocation plan
	MovementSourcePicking MovementSourceType = "PICKING"
	// MovementSourceReceiving is stock arriving into the warehouse
	MovementSourceReceiving MovementSourceType = "RECEIVING"
)

// IsValid returns true if the source type is known.
func (s MovementSourceType) IsValid() bool {
	switch s {
	case MovementSourceTransfer, MovementSourcePicking, MovementSourceReceiving:
		return true
	}
	return false
}

// Movement is one entry of the append-only movement log. Every applied
// mutation writes exactly one entry. Entries are never updated or deleted;
// corrections are recorded as new movements.
type Movement struct {
	shared.BaseEntity
	RecordID     uuid.UUID          `gorm:"type:uuid;not null;index"`
	SKU          string             `gorm:"type:varchar(50);not null;index"`
	FromLocation string             `gorm:"type:varchar(30);not null"`
	ToLocation   string             `gorm:"type:varchar(30);not null"`
	Cartons      int64              `gorm:"not null"`
	Boxes        int64              `gorm:"not null"`
	Units        int64              `gorm:"not null"`
	Pieces       int64              `gorm:"not null"` // base-unit total, denormalized for reporting
	SourceType   MovementSourceType `gorm:"type:varchar(20);not null;index:idx_movement_source,priority:1"`
	SourceID     string             `gorm:"type:varchar(50);not null;index:idx_movement_source,priority:2"`
	Actor        string             `gorm:"type:varchar(100);not null"`
	MovedAt      time.Time          `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (Movement) TableName() string {
	return "stock_movements"
}

// NewMovement creates a movement log entry for an applied mutation.
func NewMovement(
	recordID uuid.UUID,
	sku, fromLocation, toLocation string,
	quantity valueobject.TierQuantity,
	sourceType MovementSourceType,
	sourceID, actor string,
) (*Movement, error) {
	if recordID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_RECORD", "Record ID cannot be empty")
	}
	if !sourceType.IsValid() {
		return nil, shared.NewDomainError("INVALID_SOURCE_TYPE", "Invalid movement source type")
	}
	if sourceID == "" {
		return nil, shared.NewDomainError("INVALID_SOURCE_ID", "Source ID cannot be empty")
	}
	if quantity.IsZero() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Movement quantity must be positive")
	}

	return &Movement{
		BaseEntity:   shared.NewBaseEntity(),
		RecordID:     recordID,
		SKU:          sku,
		FromLocation: fromLocation,
		ToLocation:   toLocation,
		Cartons:      quantity.Cartons,
		Boxes:        quantity.Boxes,
		Units:        quantity.Units,
		Pieces:       quantity.Pieces(),
		SourceType:   sourceType,
		SourceID:     sourceID,
		Actor:        actor,
		MovedAt:      time.Now(),
	}, nil
}
