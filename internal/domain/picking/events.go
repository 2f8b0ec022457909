package picking

import (
	"github.com/google/uuid"
	"github.com/wms/backend/internal/domain/shared"
)

// Event type constants for picking
const (
	EventTypePlanGenerated = "picking.plan_generated"
)

// PlanGeneratedEvent is emitted when a planning call produced its plans and
// route. Carries headline numbers only; the full plan is transient output.
type PlanGeneratedEvent struct {
	shared.BaseDomainEvent
	PlanID            uuid.UUID `json:"plan_id"`
	TotalProducts     int       `json:"total_products"`
	SufficientCount   int       `json:"sufficient_count"`
	InsufficientCount int       `json:"insufficient_count"`
	NotFoundCount     int       `json:"not_found_count"`
	RouteSteps        int       `json:"route_steps"`
}

// NewPlanGeneratedEvent creates a PlanGeneratedEvent
func NewPlanGeneratedEvent(planID uuid.UUID, plans []ProductPlan, route []RouteStep) *PlanGeneratedEvent {
	e := &PlanGeneratedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePlanGenerated, "PickingPlan", planID),
		PlanID:          planID,
		TotalProducts:   len(plans),
		RouteSteps:      len(route),
	}
	for _, p := range plans {
		switch p.Status {
		case PlanStatusSufficient:
			e.SufficientCount++
		case PlanStatusInsufficient:
			e.InsufficientCount++
		case PlanStatusNotFound:
			e.NotFoundCount++
		}
	}
	return e
}
