package inventory

import (
	"github.com/wms/backend/internal/domain/shared"
)

// Event type constants for the inventory aggregate
const (
	EventTypeStockReceived = "inventory.stock_received"
	EventTypeStockMoved    = "inventory.stock_moved"
)

// StockReceivedEvent is emitted when a new record is created for stock
// arriving at a location.
type StockReceivedEvent struct {
	shared.BaseDomainEvent
	SKU      string `json:"sku"`
	Location string `json:"location"`
	Pieces   int64  `json:"pieces"`
}

// NewStockReceivedEvent creates a StockReceivedEvent from a record
func NewStockReceivedEvent(r *Record) *StockReceivedEvent {
	return &StockReceivedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockReceived, "InventoryRecord", r.ID),
		SKU:             r.SKU,
		Location:        r.Location,
		Pieces:          r.AvailablePieces(),
	}
}

// StockMovedEvent is emitted for every applied mutation, mirroring the
// movement log entry.
type StockMovedEvent struct {
	shared.BaseDomainEvent
	SKU          string `json:"sku"`
	FromLocation string `json:"from_location"`
	ToLocation   string `json:"to_location"`
	Pieces       int64  `json:"pieces"`
	Actor        string `json:"actor"`
}

// NewStockMovedEvent creates a StockMovedEvent from a movement entry
func NewStockMovedEvent(m *Movement) *StockMovedEvent {
	return &StockMovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockMoved, "InventoryRecord", m.RecordID),
		SKU:             m.SKU,
		FromLocation:    m.FromLocation,
		ToLocation:      m.ToLocation,
		Pieces:          m.Pieces,
		Actor:           m.Actor,
	}
}
