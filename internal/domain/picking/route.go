package picking

import (
	"sort"

	"github.com/google/uuid"
	"github.com/wms/backend/internal/domain/warehouse"
)

// RouteStep is one stop of the consolidated picking route: pick a quantity of
// one product at one location. Steps are numbered 1..N in walking order.
type RouteStep struct {
	Sequence    int       `json:"sequence"`
	Location    string    `json:"location"`
	Zone        string    `json:"zone"`
	ProductCode string    `json:"product_code"`
	ProductName string    `json:"product_name"`
	Quantity    int64     `json:"quantity"`
	RecordID    uuid.UUID `json:"record_id"`
}

// RouteBuilder consolidates the non-zero picks of one or more plans into a
// single ordered walking route through the warehouse.
type RouteBuilder struct{}

// NewRouteBuilder creates a new route builder
func NewRouteBuilder() *RouteBuilder {
	return &RouteBuilder{}
}

// Build flattens every allocation line with a positive pick across all plans
// and orders them by parsed location code (row, then level, then position),
// producing a single-pass walking order that minimizes backtracking through
// the aisles. The route re-orders the allocation, it never re-quantifies it:
// per product, route quantities sum to exactly the plan's picks.
func (b *RouteBuilder) Build(plans []ProductPlan) []RouteStep {
	type flatLine struct {
		step RouteStep
		loc  warehouse.Location
		ord  int // original flatten order, final tie-break for determinism
	}

	flat := make([]flatLine, 0)
	for _, plan := range plans {
		for _, line := range plan.Lines {
			if line.ToPick <= 0 {
				continue
			}
			flat = append(flat, flatLine{
				step: RouteStep{
					Location:    line.Location,
					Zone:        line.Zone,
					ProductCode: plan.ProductCode,
					ProductName: plan.ProductName,
					Quantity:    line.ToPick,
					RecordID:    line.RecordID,
				},
				loc: warehouse.ParseLocation(line.Location),
				ord: len(flat),
			})
		}
	}

	sort.Slice(flat, func(i, j int) bool {
		if flat[i].loc.Before(flat[j].loc) {
			return true
		}
		if flat[j].loc.Before(flat[i].loc) {
			return false
		}
		return flat[i].ord < flat[j].ord
	})

	route := make([]RouteStep, len(flat))
	for i, f := range flat {
		f.step.Sequence = i + 1
		route[i] = f.step
	}
	return route
}

// DistinctLocations counts the distinct location codes appearing in a route.
func DistinctLocations(route []RouteStep) int {
	seen := make(map[string]struct{}, len(route))
	for _, step := range route {
		seen[step.Location] = struct{}{}
	}
	return len(seen)
}
