package inventory

import (
	"time"

	"github.com/wms/backend/internal/domain/inventory"
)

// CreateRecordRequest registers stock received at a location
type CreateRecordRequest struct {
	WarehouseID     string     `json:"warehouse_id" binding:"required,uuid"`
	SKU             string     `json:"sku" binding:"required"`
	ProductName     string     `json:"product_name" binding:"required"`
	Location        string     `json:"location" binding:"required,location"`
	Zone            string     `json:"zone"`
	LotNumber       string     `json:"lot_number"`
	ManufactureDate *time.Time `json:"manufacture_date"`
	Cartons         int64      `json:"cartons" binding:"gte=0"`
	Boxes           int64      `json:"boxes" binding:"gte=0"`
	Units           int64      `json:"units" binding:"gte=0"`
	CartonRate      int64      `json:"carton_rate" binding:"required,gte=1"`
	BoxRate         int64      `json:"box_rate" binding:"required,gte=1"`
}

// RecordResponse is an inventory record as returned to clients
type RecordResponse struct {
	ID              string     `json:"id"`
	WarehouseID     string     `json:"warehouse_id"`
	SKU             string     `json:"sku"`
	ProductName     string     `json:"product_name"`
	Location        string     `json:"location"`
	Zone            string     `json:"zone"`
	LotNumber       string     `json:"lot_number,omitempty"`
	ManufactureDate *time.Time `json:"manufacture_date,omitempty"`
	Cartons         int64      `json:"cartons"`
	Boxes           int64      `json:"boxes"`
	Units           int64      `json:"units"`
	CartonRate      int64      `json:"carton_rate"`
	BoxRate         int64      `json:"box_rate"`
	Pieces          int64      `json:"pieces"`
	CreatedAt       time.Time  `json:"created_at"`
}

// MovementResponse is one movement log entry as returned to clients
type MovementResponse struct {
	ID           string    `json:"id"`
	RecordID     string    `json:"record_id"`
	SKU          string    `json:"sku"`
	FromLocation string    `json:"from_location"`
	ToLocation   string    `json:"to_location"`
	Cartons      int64     `json:"cartons"`
	Boxes        int64     `json:"boxes"`
	Units        int64     `json:"units"`
	Pieces       int64     `json:"pieces"`
	SourceType   string    `json:"source_type"`
	SourceID     string    `json:"source_id"`
	Actor        string    `json:"actor"`
	MovedAt      time.Time `json:"moved_at"`
}

func toRecordResponse(r *inventory.Record) RecordResponse {
	return RecordResponse{
		ID:              r.ID.String(),
		WarehouseID:     r.WarehouseID.String(),
		SKU:             r.SKU,
		ProductName:     r.ProductName,
		Location:        r.Location,
		Zone:            r.Zone,
		LotNumber:       r.LotNumber,
		ManufactureDate: r.ManufactureDate,
		Cartons:         r.Cartons,
		Boxes:           r.Boxes,
		Units:           r.Units,
		CartonRate:      r.CartonRate,
		BoxRate:         r.BoxRate,
		Pieces:          r.AvailablePieces(),
		CreatedAt:       r.CreatedAt,
	}
}

func toMovementResponse(m *inventory.Movement) MovementResponse {
	return MovementResponse{
		ID:           m.ID.String(),
		RecordID:     m.RecordID.String(),
		SKU:          m.SKU,
		FromLocation: m.FromLocation,
		ToLocation:   m.ToLocation,
		Cartons:      m.Cartons,
		Boxes:        m.Boxes,
		Units:        m.Units,
		Pieces:       m.Pieces,
		SourceType:   string(m.SourceType),
		SourceID:     m.SourceID,
		Actor:        m.Actor,
		MovedAt:      m.MovedAt,
	}
}
