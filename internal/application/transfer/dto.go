package transfer

import (
	"time"

	"github.com/wms/backend/internal/domain/transfer"
)

// LineRequest is one stock move of a transfer creation request. Mode "FULL"
// relocates the record's entire quantity; "PARTIAL" moves the given tier
// counts, clamped to availability at execution time; "PIECES" moves a plain
// pieces amount, decomposed against the source's tiers at execution time.
type LineRequest struct {
	RecordID   string `json:"record_id" binding:"required,uuid"`
	ToLocation string `json:"to_location" binding:"required,location"`
	Mode       string `json:"mode" binding:"required,oneof=FULL PARTIAL PIECES"`
	Cartons    int64  `json:"cartons" binding:"gte=0"`
	Boxes      int64  `json:"boxes" binding:"gte=0"`
	Units      int64  `json:"units" binding:"gte=0"`
	Pieces     int64  `json:"pieces" binding:"gte=0"`
}

// CreateRequest creates a draft transfer order
type CreateRequest struct {
	Remark string        `json:"remark"`
	Lines  []LineRequest `json:"lines" binding:"required,min=1,dive"`
}

// LineResponse is one line of an order as returned to clients
type LineResponse struct {
	ID           string `json:"id"`
	RecordID     string `json:"record_id"`
	SKU          string `json:"sku"`
	FromLocation string `json:"from_location"`
	ToLocation   string `json:"to_location"`
	Mode         string `json:"mode"`
	Cartons      int64  `json:"cartons"`
	Boxes        int64  `json:"boxes"`
	Units        int64  `json:"units"`
	Pieces       int64  `json:"pieces"`
	Applied      bool   `json:"applied"`
}

// OrderResponse is a transfer order as returned to clients
type OrderResponse struct {
	ID            string         `json:"id"`
	OrderNo       string         `json:"order_no"`
	Status        string         `json:"status"`
	Remark        string         `json:"remark,omitempty"`
	CreatedBy     string         `json:"created_by"`
	SubmittedBy   string         `json:"submitted_by,omitempty"`
	SubmittedAt   *time.Time     `json:"submitted_at,omitempty"`
	ApprovedBy    string         `json:"approved_by,omitempty"`
	ApprovedAt    *time.Time     `json:"approved_at,omitempty"`
	ExecutedAt    *time.Time     `json:"executed_at,omitempty"`
	FinishedAt    *time.Time     `json:"finished_at,omitempty"`
	FailureReason string         `json:"failure_reason,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	Lines         []LineResponse `json:"lines"`
}

// MutationResult is the instruction emitted for one successfully executed
// line: what was decremented at the source and what was written at the
// destination
type MutationResult struct {
	LineID              string `json:"line_id"`
	RecordID            string `json:"record_id"`
	NewSourcePieces     int64  `json:"new_source_pieces"`
	DestinationLocation string `json:"destination_location"`
	DestinationPieces   int64  `json:"destination_pieces"`
}

// ExecuteResponse reports the outcome of running an approved order
type ExecuteResponse struct {
	Order     OrderResponse    `json:"order"`
	Mutations []MutationResult `json:"mutations"`
}

func toOrderResponse(o *transfer.TransferOrder) OrderResponse {
	resp := OrderResponse{
		ID:            o.ID.String(),
		OrderNo:       o.OrderNo,
		Status:        o.Status.String(),
		Remark:        o.Remark,
		CreatedBy:     o.CreatedBy,
		SubmittedBy:   o.SubmittedBy,
		SubmittedAt:   o.SubmittedAt,
		ApprovedBy:    o.ApprovedBy,
		ApprovedAt:    o.ApprovedAt,
		ExecutedAt:    o.ExecutedAt,
		FinishedAt:    o.FinishedAt,
		FailureReason: o.FailureReason,
		CreatedAt:     o.CreatedAt,
		Lines:         make([]LineResponse, 0, len(o.Lines)),
	}
	for _, l := range o.Lines {
		resp.Lines = append(resp.Lines, LineResponse{
			ID:           l.ID.String(),
			RecordID:     l.RecordID.String(),
			SKU:          l.SKU,
			FromLocation: l.FromLocation,
			ToLocation:   l.ToLocation,
			Mode:         string(l.Mode),
			Cartons:      l.Cartons,
			Boxes:        l.Boxes,
			Units:        l.Units,
			Pieces:       l.RequestedPieces(),
			Applied:      l.Applied,
		})
	}
	return resp
}
