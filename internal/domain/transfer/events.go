package transfer

import (
	"github.com/wms/backend/internal/domain/shared"
)

// Event type constants for the transfer aggregate
const (
	EventTypeOrderSubmitted = "transfer.order_submitted"
	EventTypeOrderApproved  = "transfer.order_approved"
	EventTypeOrderCompleted = "transfer.order_completed"
	EventTypeOrderFailed    = "transfer.order_failed"
	EventTypeOrderCancelled = "transfer.order_cancelled"
)

// OrderSubmittedEvent is emitted when a draft order is submitted for approval
type OrderSubmittedEvent struct {
	shared.BaseDomainEvent
	OrderNo string `json:"order_no"`
	Actor   string `json:"actor"`
	Lines   int    `json:"lines"`
}

// NewOrderSubmittedEvent creates an OrderSubmittedEvent
func NewOrderSubmittedEvent(o *TransferOrder, actor string) *OrderSubmittedEvent {
	return &OrderSubmittedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderSubmitted, "TransferOrder", o.ID),
		OrderNo:         o.OrderNo,
		Actor:           actor,
		Lines:           len(o.Lines),
	}
}

// OrderApprovedEvent is emitted when a pending order is approved
type OrderApprovedEvent struct {
	shared.BaseDomainEvent
	OrderNo string `json:"order_no"`
	Actor   string `json:"actor"`
}

// NewOrderApprovedEvent creates an OrderApprovedEvent
func NewOrderApprovedEvent(o *TransferOrder, actor string) *OrderApprovedEvent {
	return &OrderApprovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderApproved, "TransferOrder", o.ID),
		OrderNo:         o.OrderNo,
		Actor:           actor,
	}
}

// OrderCompletedEvent is emitted when every line of an order was applied
type OrderCompletedEvent struct {
	shared.BaseDomainEvent
	OrderNo string `json:"order_no"`
	Lines   int    `json:"lines"`
}

// NewOrderCompletedEvent creates an OrderCompletedEvent
func NewOrderCompletedEvent(o *TransferOrder) *OrderCompletedEvent {
	return &OrderCompletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCompleted, "TransferOrder", o.ID),
		OrderNo:         o.OrderNo,
		Lines:           len(o.Lines),
	}
}

// OrderFailedEvent is emitted when execution failed and was compensated
type OrderFailedEvent struct {
	shared.BaseDomainEvent
	OrderNo string `json:"order_no"`
	Reason  string `json:"reason"`
}

// NewOrderFailedEvent creates an OrderFailedEvent
func NewOrderFailedEvent(o *TransferOrder, reason string) *OrderFailedEvent {
	return &OrderFailedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderFailed, "TransferOrder", o.ID),
		OrderNo:         o.OrderNo,
		Reason:          reason,
	}
}

// OrderCancelledEvent is emitted when an order is discarded before execution
type OrderCancelledEvent struct {
	shared.BaseDomainEvent
	OrderNo string `json:"order_no"`
	Actor   string `json:"actor"`
}

// NewOrderCancelledEvent creates an OrderCancelledEvent
func NewOrderCancelledEvent(o *TransferOrder, actor string) *OrderCancelledEvent {
	return &OrderCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCancelled, "TransferOrder", o.ID),
		OrderNo:         o.OrderNo,
		Actor:           actor,
	}
}
