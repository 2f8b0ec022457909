package transfer

import (
	"time"

	"github.com/google/uuid"
	"github.com/wms/backend/internal/domain/shared"
	"github.com/wms/backend/internal/domain/shared/valueobject"
	"github.com/wms/backend/internal/domain/warehouse"
)

// OrderStatus represents the lifecycle state of a transfer order
type OrderStatus string

const (
	// OrderStatusDraft means the order is being assembled and can still change
	OrderStatusDraft OrderStatus = "DRAFT"
	// OrderStatusPending means the order was submitted and awaits approval
	OrderStatusPending OrderStatus = "PENDING"
	// OrderStatusApproved means an authorized actor approved the order
	OrderStatusApproved OrderStatus = "APPROVED"
	// OrderStatusExecuting means stock writes for the order are in flight
	OrderStatusExecuting OrderStatus = "EXECUTING"
	// OrderStatusCompleted means every line was applied and persisted
	OrderStatusCompleted OrderStatus = "COMPLETED"
	// OrderStatusFailed means execution failed and all applied lines were compensated
	OrderStatusFailed OrderStatus = "FAILED"
	// OrderStatusCancelled means the order was discarded before execution
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// String returns the string representation
func (s OrderStatus) String() string {
	return string(s)
}

// IsTerminal returns true if no further transitions are accepted
func (s OrderStatus) IsTerminal() bool {
	switch s {
	case OrderStatusCompleted, OrderStatusFailed, OrderStatusCancelled:
		return true
	}
	return false
}

// Line is one stock move within a transfer order: a quantity carved off one
// source record and bound for one destination location. Applied tracks
// execution progress so a retried run never re-applies a line.
type Line struct {
	shared.BaseEntity
	TransferOrderID uuid.UUID `gorm:"type:uuid;not null;index"`
	RecordID        uuid.UUID `gorm:"type:uuid;not null"`
	SKU             string    `gorm:"size:64;not null"`
	FromLocation    string    `gorm:"size:32;not null"`
	ToLocation      string    `gorm:"size:32;not null"`
	Mode            SplitMode `gorm:"size:16;not null"`
	Cartons         int64     `gorm:"not null;default:0"`
	Boxes           int64     `gorm:"not null;default:0"`
	Units           int64     `gorm:"not null;default:0"`
	CartonRate      int64     `gorm:"not null;default:1"`
	BoxRate         int64     `gorm:"not null;default:1"`
	Pieces          int64     `gorm:"not null;default:0"`
	Applied         bool      `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (Line) TableName() string {
	return "transfer_lines"
}

// Quantity returns the line's requested tier quantity. For full-mode lines
// the stored counts are the source snapshot taken at order creation.
func (l *Line) Quantity() valueobject.TierQuantity {
	return valueobject.TierQuantityFromRow(l.Cartons, l.Boxes, l.Units, l.CartonRate, l.BoxRate)
}

// SplitRequest returns the splitter request this line represents.
func (l *Line) SplitRequest() SplitRequest {
	switch l.Mode {
	case SplitModeFull:
		return FullSplit()
	case SplitModePieces:
		return PiecesSplit(l.Pieces)
	}
	return PartialSplit(l.Quantity())
}

// RequestedPieces returns the pieces-equivalent amount the line asks to move.
func (l *Line) RequestedPieces() int64 {
	if l.Mode == SplitModePieces {
		return l.Pieces
	}
	return l.Quantity().Pieces()
}

// TransferOrder is the aggregate root driving a stock transfer through its
// workflow: draft -> pending -> approved -> executing -> completed or failed,
// with cancellation allowed any time before execution starts.
type TransferOrder struct {
	shared.BaseAggregateRoot
	OrderNo       string      `gorm:"size:32;uniqueIndex;not null"`
	Status        OrderStatus `gorm:"size:16;not null;default:'DRAFT'"`
	Remark        string      `gorm:"size:255"`
	CreatedBy     string      `gorm:"size:64;not null"`
	SubmittedBy   string      `gorm:"size:64"`
	SubmittedAt   *time.Time
	ApprovedBy    string `gorm:"size:64"`
	ApprovedAt    *time.Time
	ExecutedAt    *time.Time
	FinishedAt    *time.Time
	FailureReason string `gorm:"size:255"`
	Lines         []Line `gorm:"foreignKey:TransferOrderID"`
}

// TableName returns the table name for GORM
func (TransferOrder) TableName() string {
	return "transfer_orders"
}

// NewTransferOrder creates a draft transfer order for the given actor.
func NewTransferOrder(orderNo, actor, remark string) (*TransferOrder, error) {
	if orderNo == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Order number is required")
	}
	if actor == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Actor is required")
	}
	return &TransferOrder{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderNo:           orderNo,
		Status:            OrderStatusDraft,
		Remark:            remark,
		CreatedBy:         actor,
		Lines:             make([]Line, 0),
	}, nil
}

// AddLine appends a stock move to a draft order.
func (o *TransferOrder) AddLine(recordID uuid.UUID, sku, from, to string, req SplitRequest) error {
	if o.Status != OrderStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Lines can only be added to a draft order")
	}
	if recordID == uuid.Nil || sku == "" {
		return shared.NewDomainError("INVALID_INPUT", "Line requires a record and SKU")
	}
	if !warehouse.IsValidLocationCode(to) {
		return shared.NewDomainError("INVALID_INPUT", "Destination location code is not valid")
	}
	if from == to {
		return shared.NewDomainError("INVALID_INPUT", "Source and destination locations are identical")
	}
	if !req.Mode.IsValid() {
		return shared.NewDomainError("INVALID_QUANTITY", "Unknown split mode")
	}
	if req.Mode == SplitModePartial && req.Quantity.IsZero() {
		return shared.NewDomainError("INVALID_QUANTITY", "Partial transfer quantity cannot be zero")
	}
	if req.Mode == SplitModePieces && req.Pieces <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Pieces transfer amount must be positive")
	}

	o.Lines = append(o.Lines, Line{
		BaseEntity:      shared.NewBaseEntity(),
		TransferOrderID: o.ID,
		RecordID:        recordID,
		SKU:             sku,
		FromLocation:    from,
		ToLocation:      to,
		Mode:            req.Mode,
		Cartons:         req.Quantity.Cartons,
		Boxes:           req.Quantity.Boxes,
		Units:           req.Quantity.Units,
		CartonRate:      req.Quantity.CartonRate,
		BoxRate:         req.Quantity.BoxRate,
		Pieces:          req.Pieces,
	})
	o.UpdatedAt = time.Now()
	return nil
}

// Submit moves a draft order to pending. Any authenticated actor may submit;
// no stock is touched.
func (o *TransferOrder) Submit(actor string) error {
	if o.Status != OrderStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Only draft orders can be submitted")
	}
	if len(o.Lines) == 0 {
		return shared.NewDomainError("INVALID_INPUT", "Cannot submit an order without lines")
	}
	now := time.Now()
	o.Status = OrderStatusPending
	o.SubmittedBy = actor
	o.SubmittedAt = &now
	o.UpdatedAt = now
	o.IncrementVersion()
	o.AddDomainEvent(NewOrderSubmittedEvent(o, actor))
	return nil
}

// Approve moves a pending order to approved. The caller is responsible for
// checking the actor's permission first; the aggregate only guards state.
func (o *TransferOrder) Approve(actor string) error {
	if o.Status != OrderStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Only pending orders can be approved")
	}
	now := time.Now()
	o.Status = OrderStatusApproved
	o.ApprovedBy = actor
	o.ApprovedAt = &now
	o.UpdatedAt = now
	o.IncrementVersion()
	o.AddDomainEvent(NewOrderApprovedEvent(o, actor))
	return nil
}

// StartExecution moves an approved order to executing. From this point the
// order can no longer be cancelled; it runs to completed or failed. An order
// already in EXECUTING is accepted again so an interrupted run can resume;
// the per-line idempotency keys keep the replay from re-applying stock.
func (o *TransferOrder) StartExecution() error {
	now := time.Now()
	switch o.Status {
	case OrderStatusApproved:
		o.Status = OrderStatusExecuting
		o.ExecutedAt = &now
	case OrderStatusExecuting:
		// resume; keep the original ExecutedAt
	default:
		return shared.NewDomainError("INVALID_STATE", "Only approved orders can start executing")
	}
	o.UpdatedAt = now
	o.IncrementVersion()
	return nil
}

// MarkLineApplied records that a line's stock writes succeeded.
func (o *TransferOrder) MarkLineApplied(lineID uuid.UUID) error {
	if o.Status != OrderStatusExecuting {
		return shared.NewDomainError("INVALID_STATE", "Lines can only be applied while executing")
	}
	for i := range o.Lines {
		if o.Lines[i].ID == lineID {
			o.Lines[i].Applied = true
			o.Lines[i].UpdatedAt = time.Now()
			return nil
		}
	}
	return shared.ErrNotFound
}

// AppliedLines returns the lines whose stock writes already succeeded.
func (o *TransferOrder) AppliedLines() []Line {
	applied := make([]Line, 0, len(o.Lines))
	for _, l := range o.Lines {
		if l.Applied {
			applied = append(applied, l)
		}
	}
	return applied
}

// Complete moves an executing order to completed.
func (o *TransferOrder) Complete() error {
	if o.Status != OrderStatusExecuting {
		return shared.NewDomainError("INVALID_STATE", "Only executing orders can complete")
	}
	now := time.Now()
	o.Status = OrderStatusCompleted
	o.FinishedAt = &now
	o.UpdatedAt = now
	o.IncrementVersion()
	o.AddDomainEvent(NewOrderCompletedEvent(o))
	return nil
}

// Fail moves an executing order to failed. By the time this is called every
// previously applied line must already have been compensated, leaving zero
// net stock movement.
func (o *TransferOrder) Fail(reason string) error {
	if o.Status != OrderStatusExecuting {
		return shared.NewDomainError("INVALID_STATE", "Only executing orders can fail")
	}
	now := time.Now()
	o.Status = OrderStatusFailed
	o.FailureReason = reason
	o.FinishedAt = &now
	o.UpdatedAt = now
	for i := range o.Lines {
		o.Lines[i].Applied = false
	}
	o.IncrementVersion()
	o.AddDomainEvent(NewOrderFailedEvent(o, reason))
	return nil
}

// Cancel discards an order before execution. Draft, pending and approved
// orders cancel with zero side effects; executing and terminal orders refuse.
func (o *TransferOrder) Cancel(actor string) error {
	switch o.Status {
	case OrderStatusDraft, OrderStatusPending, OrderStatusApproved:
	default:
		return shared.NewDomainError("INVALID_STATE", "Order can no longer be cancelled")
	}
	now := time.Now()
	o.Status = OrderStatusCancelled
	o.FinishedAt = &now
	o.UpdatedAt = now
	o.IncrementVersion()
	o.AddDomainEvent(NewOrderCancelledEvent(o, actor))
	return nil
}
