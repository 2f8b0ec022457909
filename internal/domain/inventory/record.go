package inventory

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/wms/backend/internal/domain/shared"
	"github.com/wms/backend/internal/domain/shared/valueobject"
	"github.com/wms/backend/internal/domain/warehouse"
)

// Record represents stock of one SKU physically present at one warehouse
// location, optionally carrying a lot number and manufacture date. It is the
// aggregate root for stock mutations; within a single planning call records
// are treated as an immutable snapshot.
type Record struct {
	shared.BaseAggregateRoot
	WarehouseID     uuid.UUID  `gorm:"type:uuid;not null;index:idx_record_wh_sku,priority:1"`
	SKU             string     `gorm:"type:varchar(50);not null;index:idx_record_wh_sku,priority:2"`
	ProductName     string     `gorm:"type:varchar(255);not null"`
	Location        string     `gorm:"type:varchar(30);not null;index"`
	Zone            string     `gorm:"type:varchar(30);not null"`
	LotNumber       string     `gorm:"type:varchar(50)"` // empty = no lot tracking
	ManufactureDate *time.Time `gorm:"type:date"`
	Cartons         int64      `gorm:"not null;default:0"`
	Boxes           int64      `gorm:"not null;default:0"`
	Units           int64      `gorm:"not null;default:0"`
	CartonRate      int64      `gorm:"not null;default:1"` // base units per carton, fixed per SKU
	BoxRate         int64      `gorm:"not null;default:1"` // base units per box, fixed per SKU
}

// TableName returns the table name for GORM
func (Record) TableName() string {
	return "inventory_records"
}

// NewRecord creates a new inventory record for stock received at a location.
func NewRecord(
	warehouseID uuid.UUID,
	sku, productName, location, zone string,
	lotNumber string,
	manufactureDate *time.Time,
	quantity valueobject.TierQuantity,
) (*Record, error) {
	sku = strings.TrimSpace(sku)
	if warehouseID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_WAREHOUSE", "Warehouse ID cannot be empty")
	}
	if sku == "" {
		return nil, shared.NewDomainError("INVALID_SKU", "SKU cannot be empty")
	}
	if !warehouse.IsValidLocationCode(location) {
		return nil, shared.NewDomainError("INVALID_LOCATION", "Location code does not match the location grammar")
	}

	r := &Record{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		WarehouseID:       warehouseID,
		SKU:               sku,
		ProductName:       productName,
		Location:          strings.TrimSpace(location),
		Zone:              strings.TrimSpace(zone),
		LotNumber:         strings.TrimSpace(lotNumber),
		ManufactureDate:   manufactureDate,
		Cartons:           quantity.Cartons,
		Boxes:             quantity.Boxes,
		Units:             quantity.Units,
		CartonRate:        quantity.CartonRate,
		BoxRate:           quantity.BoxRate,
	}
	r.AddDomainEvent(NewStockReceivedEvent(r))
	return r, nil
}

// Quantity returns the record's stock as a tier quantity. This is the single
// construction point for quantities crossing the persistence boundary; raw
// row values are normalized here (see valueobject.TierQuantityFromRow).
func (r *Record) Quantity() valueobject.TierQuantity {
	return valueobject.TierQuantityFromRow(r.Cartons, r.Boxes, r.Units, r.CartonRate, r.BoxRate)
}

// AvailablePieces returns the base-unit-equivalent total at this location.
func (r *Record) AvailablePieces() int64 {
	return r.Quantity().Pieces()
}

// HasStock returns true if any tier holds stock.
func (r *Record) HasStock() bool {
	return !r.Quantity().IsZero()
}

// SetQuantity replaces the record's tier counts. Rates are kept: they are
// fixed per SKU and never change through stock movements.
func (r *Record) SetQuantity(q valueobject.TierQuantity) error {
	if !r.Quantity().SameRates(q) {
		return shared.NewDomainError("INVALID_QUANTITY", "Conversion rates cannot change on an existing record")
	}
	if q.Cartons < 0 || q.Boxes < 0 || q.Units < 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Tier counts cannot be negative")
	}
	r.Cartons = q.Cartons
	r.Boxes = q.Boxes
	r.Units = q.Units
	r.UpdatedAt = time.Now()
	r.IncrementVersion()
	return nil
}

// AddStock increases the record's tier counts, e.g. when a transfer arrives
// at a destination location that already holds the same SKU and lot.
func (r *Record) AddStock(q valueobject.TierQuantity) error {
	sum, err := r.Quantity().Add(q)
	if err != nil {
		return err
	}
	return r.SetQuantity(sum)
}

// SameStock reports whether another record holds the same SKU and lot, which
// makes the two mergeable at one location.
func (r *Record) SameStock(sku, lotNumber string) bool {
	return r.SKU == sku && r.LotNumber == lotNumber
}
