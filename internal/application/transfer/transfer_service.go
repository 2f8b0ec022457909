package transfer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wms/backend/internal/domain/inventory"
	"github.com/wms/backend/internal/domain/shared"
	"github.com/wms/backend/internal/domain/shared/valueobject"
	"github.com/wms/backend/internal/domain/transfer"
)

// Config tunes transfer execution
type Config struct {
	// MaxRetries bounds how often a conflicted conditional write is retried
	// per line before the whole transfer is failed and compensated
	MaxRetries int
	// IdempotencyTTL is how long applied-line markers are kept
	IdempotencyTTL time.Duration
}

// DefaultConfig returns the default execution tuning
func DefaultConfig() Config {
	return Config{
		MaxRetries:     3,
		IdempotencyTTL: 24 * time.Hour,
	}
}

// Service drives transfer orders through their workflow. Execution applies
// one conditional stock write per line and is all-or-nothing per order: if
// any line cannot be applied, every previously applied line is reverse-applied
// before the order is marked failed, leaving zero net stock movement.
type Service struct {
	orders      transfer.TransferOrderRepository
	records     inventory.RecordRepository
	movements   inventory.MovementRepository
	idempotency shared.IdempotencyStore
	authorizer  transfer.Authorizer
	splitter    *transfer.Splitter
	publisher   shared.EventPublisher
	logger      *zap.Logger
	cfg         Config
}

// NewService creates a transfer application service
func NewService(
	orders transfer.TransferOrderRepository,
	records inventory.RecordRepository,
	movements inventory.MovementRepository,
	idempotency shared.IdempotencyStore,
	authorizer transfer.Authorizer,
	publisher shared.EventPublisher,
	logger *zap.Logger,
	cfg Config,
) *Service {
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = DefaultConfig().MaxRetries
	}
	if cfg.IdempotencyTTL <= 0 {
		cfg.IdempotencyTTL = DefaultConfig().IdempotencyTTL
	}
	return &Service{
		orders:      orders,
		records:     records,
		movements:   movements,
		idempotency: idempotency,
		authorizer:  authorizer,
		splitter:    transfer.NewSplitter(),
		publisher:   publisher,
		logger:      logger,
		cfg:         cfg,
	}
}

// Create builds a draft transfer order from the requested lines. Each line's
// source record must exist; the line snapshots the record's SKU and location.
func (s *Service) Create(ctx context.Context, actor string, req CreateRequest) (*OrderResponse, error) {
	order, err := transfer.NewTransferOrder(newOrderNo(), actor, req.Remark)
	if err != nil {
		return nil, err
	}

	for _, lr := range req.Lines {
		recordID, err := uuid.Parse(lr.RecordID)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_INPUT", "Record ID is not a valid UUID")
		}
		record, err := s.records.FindByID(ctx, recordID)
		if err != nil {
			return nil, err
		}

		var split transfer.SplitRequest
		switch transfer.SplitMode(lr.Mode) {
		case transfer.SplitModeFull:
			split = transfer.FullSplit()
		case transfer.SplitModePartial:
			split = transfer.PartialSplit(valueobject.TierQuantityFromRow(
				lr.Cartons, lr.Boxes, lr.Units, record.CartonRate, record.BoxRate))
		case transfer.SplitModePieces:
			split = transfer.PiecesSplit(lr.Pieces)
		default:
			return nil, shared.NewDomainError("INVALID_QUANTITY", "Unknown split mode")
		}

		if err := order.AddLine(record.ID, record.SKU, record.Location, lr.ToLocation, split); err != nil {
			return nil, err
		}
	}

	if err := s.orders.Save(ctx, order); err != nil {
		return nil, err
	}
	s.logger.Info("transfer order created",
		zap.String("order_no", order.OrderNo),
		zap.String("actor", actor),
		zap.Int("lines", len(order.Lines)))
	resp := toOrderResponse(order)
	return &resp, nil
}

// Submit moves a draft order to pending
func (s *Service) Submit(ctx context.Context, id uuid.UUID, actor string) (*OrderResponse, error) {
	return s.transition(ctx, id, func(o *transfer.TransferOrder) error {
		return o.Submit(actor)
	})
}

// Approve moves a pending order to approved. Approval needs elevated
// permission, checked against the authorizer.
func (s *Service) Approve(ctx context.Context, id uuid.UUID, actor string) (*OrderResponse, error) {
	ok, err := s.authorizer.CanApprove(ctx, actor)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, shared.ErrForbidden
	}
	return s.transition(ctx, id, func(o *transfer.TransferOrder) error {
		return o.Approve(actor)
	})
}

// Cancel discards an order before execution, with zero stock effect
func (s *Service) Cancel(ctx context.Context, id uuid.UUID, actor string) (*OrderResponse, error) {
	return s.transition(ctx, id, func(o *transfer.TransferOrder) error {
		return o.Cancel(actor)
	})
}

// Get returns one order by ID
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toOrderResponse(order)
	return &resp, nil
}

// List returns orders, optionally filtered by status
func (s *Service) List(ctx context.Context, status transfer.OrderStatus, limit, offset int) ([]OrderResponse, error) {
	orders, err := s.orders.List(ctx, status, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, toOrderResponse(&orders[i]))
	}
	return out, nil
}

func (s *Service) transition(ctx context.Context, id uuid.UUID, fn func(*transfer.TransferOrder) error) (*OrderResponse, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(order); err != nil {
		return nil, err
	}
	if err := s.orders.Update(ctx, order); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, order)
	resp := toOrderResponse(order)
	return &resp, nil
}

// appliedMutation remembers one applied line so a later failure in the same
// run can reverse it exactly.
type appliedMutation struct {
	lineID       uuid.UUID
	sourceID     uuid.UUID
	destID       uuid.UUID
	destLocation string
	fromLocation string
	sku          string
	quantity     valueobject.TierQuantity
	newSource    int64
}

// Execute runs an approved order: per line, split the source quantity,
// conditionally decrement the source record, add to (or create) the
// destination record, and log the movement. A line whose conditional write
// keeps losing to concurrent operations fails the order; previously applied
// lines are reverse-applied first. Lines already applied by an earlier,
// interrupted run are skipped via the idempotency store.
func (s *Service) Execute(ctx context.Context, id uuid.UUID, actor string) (*ExecuteResponse, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := order.StartExecution(); err != nil {
		return nil, err
	}
	if err := s.orders.Update(ctx, order); err != nil {
		return nil, err
	}

	applied := make([]appliedMutation, 0, len(order.Lines))
	for i := range order.Lines {
		line := &order.Lines[i]

		key := lineKey(order.ID, line.ID)
		done, err := s.idempotency.IsApplied(ctx, key)
		if err != nil {
			return s.failAndCompensate(ctx, order, applied, actor, err)
		}
		if done {
			_ = order.MarkLineApplied(line.ID)
			continue
		}

		mutation, err := s.executeLine(ctx, order, line, actor)
		if err != nil {
			return s.failAndCompensate(ctx, order, applied, actor, err)
		}
		applied = append(applied, *mutation)
		if _, err := s.idempotency.MarkApplied(ctx, key, s.cfg.IdempotencyTTL); err != nil {
			s.logger.Warn("failed to mark line applied", zap.String("key", key), zap.Error(err))
		}
		_ = order.MarkLineApplied(line.ID)
	}

	if err := order.Complete(); err != nil {
		return nil, err
	}
	if err := s.orders.Update(ctx, order); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, order)

	s.logger.Info("transfer order executed",
		zap.String("order_no", order.OrderNo),
		zap.Int("lines", len(order.Lines)),
		zap.Int("mutations", len(applied)))

	resp := &ExecuteResponse{Order: toOrderResponse(order), Mutations: make([]MutationResult, 0, len(applied))}
	for _, m := range applied {
		resp.Mutations = append(resp.Mutations, MutationResult{
			LineID:              m.lineID.String(),
			RecordID:            m.sourceID.String(),
			NewSourcePieces:     m.newSource,
			DestinationLocation: m.destLocation,
			DestinationPieces:   m.quantity.Pieces(),
		})
	}
	return resp, nil
}

// executeLine applies one line. A split that yields nothing to move is an
// error: the order was created against a stock snapshot that no longer holds,
// and completing it silently would report a move that never happened.
func (s *Service) executeLine(ctx context.Context, order *transfer.TransferOrder, line *transfer.Line, actor string) (*appliedMutation, error) {
	for attempt := 0; attempt <= s.cfg.MaxRetries; attempt++ {
		// Re-read per attempt: a lost conditional write means the stock
		// changed, so the split must be recomputed against current state.
		record, err := s.records.FindByID(ctx, line.RecordID)
		if err != nil {
			return nil, err
		}

		result, err := s.splitter.Split(record.Quantity(), line.SplitRequest())
		if err != nil {
			return nil, err
		}
		if result.Destination.IsZero() {
			return nil, shared.NewDomainError("INVALID_QUANTITY", "Line has no stock left to move at the source")
		}

		// A pieces split may break a box open, shifting stock between tiers
		// at the source, so it writes the computed remainder outright. Both
		// writes carry the same conditional-update contract.
		var takeErr error
		if line.Mode == transfer.SplitModePieces {
			takeErr = s.records.ReplaceTiers(ctx, record.ID, record.Quantity(), result.SourceRemainder)
		} else {
			takeErr = s.records.DecrementTiers(ctx, record.ID, result.Destination)
		}
		if takeErr != nil {
			if isConcurrencyConflict(takeErr) {
				s.logger.Warn("conditional source write lost, retrying",
					zap.String("order_no", order.OrderNo),
					zap.String("record_id", record.ID.String()),
					zap.Int("attempt", attempt+1))
				continue
			}
			return nil, takeErr
		}

		destID, err := s.upsertDestination(ctx, record, line.ToLocation, result.Destination)
		if err != nil {
			// The source decrement already happened; hand the quantity back
			// before reporting the failure.
			if incErr := s.records.IncrementTiers(ctx, record.ID, result.Destination); incErr != nil {
				s.logger.Error("failed to restore source after destination write failure",
					zap.String("record_id", record.ID.String()), zap.Error(incErr))
			}
			return nil, err
		}

		movement, err := inventory.NewMovement(
			record.ID, record.SKU, record.Location, line.ToLocation,
			result.Destination, inventory.MovementSourceTransfer, order.OrderNo, actor)
		if err != nil {
			return nil, err
		}
		if err := s.movements.Append(ctx, movement); err != nil {
			return nil, err
		}
		if err := s.publisher.Publish(ctx, inventory.NewStockMovedEvent(movement)); err != nil {
			s.logger.Warn("failed to publish stock moved event", zap.Error(err))
		}

		return &appliedMutation{
			lineID:       line.ID,
			sourceID:     record.ID,
			destID:       destID,
			destLocation: line.ToLocation,
			fromLocation: record.Location,
			sku:          record.SKU,
			quantity:     result.Destination,
			newSource:    result.SourceRemainder.Pieces(),
		}, nil
	}
	return nil, shared.ErrConcurrencyConflict
}

// upsertDestination adds the moved quantity to an existing record holding the
// same SKU and lot at the target location, or creates a fresh record there.
func (s *Service) upsertDestination(ctx context.Context, source *inventory.Record, toLocation string, q valueobject.TierQuantity) (uuid.UUID, error) {
	dest, err := s.records.FindAtLocation(ctx, source.WarehouseID, toLocation, source.SKU, source.LotNumber)
	switch {
	case err == nil:
		return dest.ID, s.records.IncrementTiers(ctx, dest.ID, q)
	case isNotFound(err):
		created, err := inventory.NewRecord(
			source.WarehouseID, source.SKU, source.ProductName,
			toLocation, source.Zone, source.LotNumber, source.ManufactureDate, q)
		if err != nil {
			return uuid.Nil, err
		}
		if err := s.records.Save(ctx, created); err != nil {
			return uuid.Nil, err
		}
		return created.ID, nil
	default:
		return uuid.Nil, err
	}
}

// failAndCompensate reverse-applies every mutation of this run, clears the
// idempotency markers so a later retry can replay the lines, and marks the
// order failed. The reversals are logged as movements too.
func (s *Service) failAndCompensate(ctx context.Context, order *transfer.TransferOrder, applied []appliedMutation, actor string, cause error) (*ExecuteResponse, error) {
	s.logger.Error("transfer execution failed, compensating",
		zap.String("order_no", order.OrderNo),
		zap.Int("applied_lines", len(applied)),
		zap.Error(cause))

	for i := len(applied) - 1; i >= 0; i-- {
		m := applied[i]
		if err := s.records.DecrementTiers(ctx, m.destID, m.quantity); err != nil {
			s.logger.Error("compensation: failed to take back destination stock",
				zap.String("record_id", m.destID.String()), zap.Error(err))
			continue
		}
		if err := s.records.IncrementTiers(ctx, m.sourceID, m.quantity); err != nil {
			s.logger.Error("compensation: failed to restore source stock",
				zap.String("record_id", m.sourceID.String()), zap.Error(err))
			continue
		}
		if movement, err := inventory.NewMovement(
			m.sourceID, m.sku, m.destLocation, m.fromLocation,
			m.quantity, inventory.MovementSourceTransfer, order.OrderNo, actor); err == nil {
			if appendErr := s.movements.Append(ctx, movement); appendErr != nil {
				s.logger.Error("compensation: failed to log reversal movement", zap.Error(appendErr))
			}
		}
		if err := s.idempotency.Clear(ctx, lineKey(order.ID, m.lineID)); err != nil {
			s.logger.Warn("compensation: failed to clear idempotency key", zap.Error(err))
		}
	}

	if err := order.Fail(cause.Error()); err != nil {
		return nil, err
	}
	if err := s.orders.Update(ctx, order); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, order)
	return &ExecuteResponse{Order: toOrderResponse(order)}, nil
}

func (s *Service) publishEvents(ctx context.Context, order *transfer.TransferOrder) {
	events := order.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	if err := s.publisher.Publish(ctx, events...); err != nil {
		s.logger.Warn("failed to publish transfer events", zap.Error(err))
	}
	order.ClearDomainEvents()
}

func lineKey(orderID, lineID uuid.UUID) string {
	return orderID.String() + ":" + lineID.String()
}

func isConcurrencyConflict(err error) bool {
	var derr *shared.DomainError
	return errors.As(err, &derr) && derr.Code == "CONCURRENCY_CONFLICT"
}

func isNotFound(err error) bool {
	var derr *shared.DomainError
	return errors.As(err, &derr) && derr.Code == "NOT_FOUND"
}

func newOrderNo() string {
	suffix := strings.ToUpper(uuid.New().String()[:8])
	return fmt.Sprintf("TRF-%s-%s", time.Now().Format("20060102"), suffix)
}
