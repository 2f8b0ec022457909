package picking

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wms/backend/internal/domain/inventory"
	"github.com/wms/backend/internal/domain/picking"
	"github.com/wms/backend/internal/domain/shared"
)

// Service orchestrates picking plan generation: it fetches the stock
// snapshot, runs the allocation engine and route builder over it, and shapes
// the summary. Planning has no side effects on stock; the snapshot is taken
// once and may be stale by the time a plan is executed.
type Service struct {
	records   inventory.RecordRepository
	allocator *picking.Allocator
	routes    *picking.RouteBuilder
	publisher shared.EventPublisher
	logger    *zap.Logger
}

// NewService creates a picking application service
func NewService(records inventory.RecordRepository, publisher shared.EventPublisher, logger *zap.Logger) *Service {
	return &Service{
		records:   records,
		allocator: picking.NewAllocator(),
		routes:    picking.NewRouteBuilder(),
		publisher: publisher,
		logger:    logger,
	}
}

// PlanPicking produces allocation plans and a consolidated walking route for
// the requested needs. Shortfalls and unknown SKUs are reported in the plan,
// never as errors; a plan is produced for every valid request.
func (s *Service) PlanPicking(ctx context.Context, req PlanRequest) (*PlanResponse, error) {
	warehouseID, err := uuid.Parse(req.WarehouseID)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_WAREHOUSE", "Warehouse ID is not a valid UUID")
	}

	needs := make([]picking.ProductNeed, 0, len(req.Needs))
	skus := make([]string, 0, len(req.Needs))
	for _, n := range req.Needs {
		if n.NeededPieces <= 0 {
			return nil, shared.NewDomainError("INVALID_QUANTITY", "Needed pieces must be positive")
		}
		needs = append(needs, picking.ProductNeed{
			ProductCode:  n.ProductCode,
			ProductName:  n.ProductName,
			NeededPieces: n.NeededPieces,
			UnitCode:     n.UnitCode,
		})
		skus = append(skus, n.ProductCode)
	}

	snapshot, err := s.records.SnapshotBySKUs(ctx, warehouseID, skus)
	if err != nil {
		s.logger.Error("failed to fetch inventory snapshot",
			zap.String("warehouse_id", req.WarehouseID),
			zap.Error(err))
		return nil, err
	}

	plans := s.allocator.Allocate(needs, snapshot)
	route := s.routes.Build(plans)

	planID := uuid.New()
	resp := &PlanResponse{
		PlanID:  planID.String(),
		Plans:   plans,
		Route:   route,
		Summary: summarize(plans, route),
	}

	if err := s.publisher.Publish(ctx, picking.NewPlanGeneratedEvent(planID, plans, route)); err != nil {
		s.logger.Warn("failed to publish plan event", zap.Error(err))
	}

	s.logger.Info("picking plan generated",
		zap.String("plan_id", resp.PlanID),
		zap.Int("products", resp.Summary.TotalProducts),
		zap.Int("sufficient", resp.Summary.SufficientProducts),
		zap.Int("route_steps", len(route)))
	return resp, nil
}

func summarize(plans []picking.ProductPlan, route []picking.RouteStep) PlanSummary {
	summary := PlanSummary{
		TotalProducts:  len(plans),
		TotalLocations: picking.DistinctLocations(route),
	}
	for _, p := range plans {
		switch p.Status {
		case picking.PlanStatusSufficient:
			summary.SufficientProducts++
		case picking.PlanStatusInsufficient:
			summary.InsufficientProducts++
		case picking.PlanStatusNotFound:
			summary.NotFoundProducts++
		}
	}
	return summary
}
