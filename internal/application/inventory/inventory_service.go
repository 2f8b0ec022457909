package inventory

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wms/backend/internal/domain/inventory"
	"github.com/wms/backend/internal/domain/shared"
	"github.com/wms/backend/internal/domain/shared/valueobject"
)

// Service manages inventory records and exposes the movement log
type Service struct {
	records   inventory.RecordRepository
	movements inventory.MovementRepository
	publisher shared.EventPublisher
	logger    *zap.Logger
}

// NewService creates an inventory application service
func NewService(records inventory.RecordRepository, movements inventory.MovementRepository, publisher shared.EventPublisher, logger *zap.Logger) *Service {
	return &Service{
		records:   records,
		movements: movements,
		publisher: publisher,
		logger:    logger,
	}
}

// CreateRecord registers stock received at a location. If a record for the
// same SKU and lot already exists there, the quantity merges into it instead
// of creating a duplicate row.
func (s *Service) CreateRecord(ctx context.Context, req CreateRecordRequest) (*RecordResponse, error) {
	warehouseID, err := uuid.Parse(req.WarehouseID)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_WAREHOUSE", "Warehouse ID is not a valid UUID")
	}

	quantity, err := valueobject.NewTierQuantity(req.Cartons, req.Boxes, req.Units, req.CartonRate, req.BoxRate)
	if err != nil {
		return nil, err
	}

	existing, err := s.records.FindAtLocation(ctx, warehouseID, req.Location, req.SKU, req.LotNumber)
	switch {
	case err == nil:
		if err := existing.AddStock(quantity); err != nil {
			return nil, err
		}
		if err := s.records.Save(ctx, existing); err != nil {
			return nil, err
		}
		resp := toRecordResponse(existing)
		return &resp, nil
	case !isNotFound(err):
		// Only an authoritative "no record there" may fall through to the
		// create path; anything else would risk a duplicate row.
		return nil, err
	}

	record, err := inventory.NewRecord(
		warehouseID, req.SKU, req.ProductName, req.Location, req.Zone,
		req.LotNumber, req.ManufactureDate, quantity)
	if err != nil {
		return nil, err
	}
	if err := s.records.Save(ctx, record); err != nil {
		return nil, err
	}

	if err := s.publisher.Publish(ctx, record.GetDomainEvents()...); err != nil {
		s.logger.Warn("failed to publish record events", zap.Error(err))
	}
	record.ClearDomainEvents()

	s.logger.Info("inventory record created",
		zap.String("sku", record.SKU),
		zap.String("location", record.Location),
		zap.Int64("pieces", record.AvailablePieces()))
	resp := toRecordResponse(record)
	return &resp, nil
}

// GetRecord returns one record by ID
func (s *Service) GetRecord(ctx context.Context, id uuid.UUID) (*RecordResponse, error) {
	record, err := s.records.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toRecordResponse(record)
	return &resp, nil
}

// ListBySKU returns all records of one SKU in a warehouse
func (s *Service) ListBySKU(ctx context.Context, warehouseID uuid.UUID, sku string) ([]RecordResponse, error) {
	records, err := s.records.FindBySKU(ctx, warehouseID, sku)
	if err != nil {
		return nil, err
	}
	out := make([]RecordResponse, 0, len(records))
	for i := range records {
		out = append(out, toRecordResponse(&records[i]))
	}
	return out, nil
}

// ListMovements returns the movement log entries touching a record
func (s *Service) ListMovements(ctx context.Context, recordID uuid.UUID) ([]MovementResponse, error) {
	movements, err := s.movements.ListByRecord(ctx, recordID)
	if err != nil {
		return nil, err
	}
	out := make([]MovementResponse, 0, len(movements))
	for i := range movements {
		out = append(out, toMovementResponse(&movements[i]))
	}
	return out, nil
}

func isNotFound(err error) bool {
	var derr *shared.DomainError
	return errors.As(err, &derr) && derr.Code == "NOT_FOUND"
}
