package auth

import (
	"context"

	"github.com/wms/backend/internal/domain/transfer"
)

// StaticAuthorizer grants transfer approval to a configured list of actors.
// An empty list means nobody can approve.
type StaticAuthorizer struct {
	approvers map[string]struct{}
}

// NewStaticAuthorizer creates an authorizer from the configured approver list
func NewStaticAuthorizer(approvers []string) *StaticAuthorizer {
	set := make(map[string]struct{}, len(approvers))
	for _, a := range approvers {
		set[a] = struct{}{}
	}
	return &StaticAuthorizer{approvers: set}
}

// CanApprove reports whether the actor may approve transfer orders
func (a *StaticAuthorizer) CanApprove(ctx context.Context, actor string) (bool, error) {
	_, ok := a.approvers[actor]
	return ok, nil
}

var _ transfer.Authorizer = (*StaticAuthorizer)(nil)
