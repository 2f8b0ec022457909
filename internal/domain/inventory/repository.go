package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/wms/backend/internal/domain/shared/valueobject"
)

// RecordRepository is the persistence contract for inventory records.
//
// DecrementTiers is the concurrency-control primitive the execution workflow
// relies on: it must decrement each tier only if the current stored value is
// still at least the amount taken (a conditional update), and report
// CONCURRENCY_CONFLICT otherwise. This is what prevents two racing transfers
// from over-committing the same location.
type RecordRepository interface {
	// FindByID finds an inventory record by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Record, error)

	// SnapshotBySKUs returns all records of the given SKUs in a warehouse.
	// The result is the read-only snapshot a planning call works over.
	SnapshotBySKUs(ctx context.Context, warehouseID uuid.UUID, skus []string) ([]Record, error)

	// FindBySKU returns all records of one SKU in a warehouse
	FindBySKU(ctx context.Context, warehouseID uuid.UUID, sku string) ([]Record, error)

	// FindAtLocation finds the record holding a SKU/lot at a specific
	// location, or shared.ErrNotFound
	FindAtLocation(ctx context.Context, warehouseID uuid.UUID, location, sku, lotNumber string) (*Record, error)

	// Save creates or updates a record
	Save(ctx context.Context, record *Record) error

	// DecrementTiers atomically subtracts the taken tier counts from a record,
	// failing with CONCURRENCY_CONFLICT when any tier no longer holds the
	// required amount (compare-and-swap semantics)
	DecrementTiers(ctx context.Context, id uuid.UUID, take valueobject.TierQuantity) error

	// IncrementTiers atomically adds tier counts back to a record. Used by the
	// destination side of a transfer and by compensation
	IncrementTiers(ctx context.Context, id uuid.UUID, give valueobject.TierQuantity) error

	// ReplaceTiers atomically rewrites a record's tier counts, guarded on the
	// tiers still matching the snapshot the caller read; CONCURRENCY_CONFLICT
	// otherwise. A move that breaks a box open shifts stock between tiers, so
	// its source write cannot be expressed as a plain decrement
	ReplaceTiers(ctx context.Context, id uuid.UUID, expected, next valueobject.TierQuantity) error

	// Delete removes a record
	Delete(ctx context.Context, id uuid.UUID) error
}

// MovementRepository is the persistence contract for the append-only
// movement log.
type MovementRepository interface {
	// Append writes one movement entry
	Append(ctx context.Context, movement *Movement) error

	// ListByRecord returns movements touching a record, newest first
	ListByRecord(ctx context.Context, recordID uuid.UUID) ([]Movement, error)

	// ListBySource returns movements produced by one source document
	ListBySource(ctx context.Context, sourceType MovementSourceType, sourceID string) ([]Movement, error)
}
