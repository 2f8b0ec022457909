package transfer

import (
	"context"

	"github.com/google/uuid"
)

// Authorizer decides whether an actor may approve transfer orders. Approval
// needs elevated permission; submission does not.
type Authorizer interface {
	CanApprove(ctx context.Context, actor string) (bool, error)
}

// TransferOrderRepository defines persistence for transfer orders
type TransferOrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*TransferOrder, error)
	FindByOrderNo(ctx context.Context, orderNo string) (*TransferOrder, error)
	List(ctx context.Context, status OrderStatus, limit, offset int) ([]TransferOrder, error)
	Save(ctx context.Context, order *TransferOrder) error
	Update(ctx context.Context, order *TransferOrder) error
}
