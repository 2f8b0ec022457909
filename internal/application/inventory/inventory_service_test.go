package inventory

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wms/backend/internal/domain/inventory"
	"github.com/wms/backend/internal/domain/shared"
	"github.com/wms/backend/internal/domain/shared/valueobject"
)

type stubRecordRepo struct {
	records map[uuid.UUID]*inventory.Record
	// lookupErr makes FindAtLocation fail with this error instead of looking
	lookupErr error
	saved     []*inventory.Record
}

func newStubRecordRepo() *stubRecordRepo {
	return &stubRecordRepo{records: make(map[uuid.UUID]*inventory.Record)}
}

func (s *stubRecordRepo) add(r *inventory.Record) { s.records[r.ID] = r }

func (s *stubRecordRepo) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Record, error) {
	if r, ok := s.records[id]; ok {
		return r, nil
	}
	return nil, shared.ErrNotFound
}

func (s *stubRecordRepo) SnapshotBySKUs(ctx context.Context, warehouseID uuid.UUID, skus []string) ([]inventory.Record, error) {
	return nil, nil
}

func (s *stubRecordRepo) FindBySKU(ctx context.Context, warehouseID uuid.UUID, sku string) ([]inventory.Record, error) {
	out := make([]inventory.Record, 0)
	for _, r := range s.records {
		if r.WarehouseID == warehouseID && r.SKU == sku {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (s *stubRecordRepo) FindAtLocation(ctx context.Context, warehouseID uuid.UUID, location, sku, lotNumber string) (*inventory.Record, error) {
	if s.lookupErr != nil {
		return nil, s.lookupErr
	}
	for _, r := range s.records {
		if r.WarehouseID == warehouseID && r.Location == location && r.SameStock(sku, lotNumber) {
			return r, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (s *stubRecordRepo) Save(ctx context.Context, record *inventory.Record) error {
	s.records[record.ID] = record
	s.saved = append(s.saved, record)
	return nil
}

func (s *stubRecordRepo) DecrementTiers(ctx context.Context, id uuid.UUID, take valueobject.TierQuantity) error {
	return nil
}

func (s *stubRecordRepo) IncrementTiers(ctx context.Context, id uuid.UUID, give valueobject.TierQuantity) error {
	return nil
}

func (s *stubRecordRepo) ReplaceTiers(ctx context.Context, id uuid.UUID, expected, next valueobject.TierQuantity) error {
	return nil
}

func (s *stubRecordRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(s.records, id)
	return nil
}

type stubMovementRepo struct{}

func (stubMovementRepo) Append(ctx context.Context, movement *inventory.Movement) error { return nil }

func (stubMovementRepo) ListByRecord(ctx context.Context, recordID uuid.UUID) ([]inventory.Movement, error) {
	return nil, nil
}

func (stubMovementRepo) ListBySource(ctx context.Context, sourceType inventory.MovementSourceType, sourceID string) ([]inventory.Movement, error) {
	return nil, nil
}

type nopPublisher struct{}

func (nopPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error { return nil }

func newTestService() (*Service, *stubRecordRepo) {
	records := newStubRecordRepo()
	svc := NewService(records, stubMovementRepo{}, nopPublisher{}, zap.NewNop())
	return svc, records
}

func receivingRequest(warehouseID uuid.UUID) CreateRecordRequest {
	return CreateRecordRequest{
		WarehouseID: warehouseID.String(),
		SKU:         "SKU-1",
		ProductName: "Widget",
		Location:    "A1-2",
		Zone:        "A",
		LotNumber:   "LOT-9",
		Cartons:     2,
		Boxes:       1,
		Units:       3,
		CartonRate:  12,
		BoxRate:     4,
	}
}

func TestCreateRecord(t *testing.T) {
	t.Run("new stock creates a record", func(t *testing.T) {
		svc, records := newTestService()
		warehouseID := uuid.New()

		resp, err := svc.CreateRecord(context.Background(), receivingRequest(warehouseID))
		require.NoError(t, err)
		assert.Equal(t, int64(31), resp.Pieces)
		assert.Len(t, records.saved, 1)
	})

	t.Run("same stock at the same location merges", func(t *testing.T) {
		svc, records := newTestService()
		warehouseID := uuid.New()

		existing, err := inventory.NewRecord(
			warehouseID, "SKU-1", "Widget", "A1-2", "A", "LOT-9", nil,
			valueobject.MustNewTierQuantity(1, 0, 0, 12, 4))
		require.NoError(t, err)
		records.add(existing)

		resp, err := svc.CreateRecord(context.Background(), receivingRequest(warehouseID))
		require.NoError(t, err)
		assert.Equal(t, existing.ID.String(), resp.ID, "quantity merges into the existing record")
		assert.Equal(t, int64(43), resp.Pieces)
	})

	t.Run("lookup failure does not create a duplicate", func(t *testing.T) {
		svc, records := newTestService()
		records.lookupErr = errors.New("read tcp: connection reset by peer")

		_, err := svc.CreateRecord(context.Background(), receivingRequest(uuid.New()))
		require.Error(t, err)
		assert.Empty(t, records.saved, "nothing may be written while existence is unknown")
	})

	t.Run("invalid warehouse id rejected", func(t *testing.T) {
		svc, _ := newTestService()
		req := receivingRequest(uuid.New())
		req.WarehouseID = "not-a-uuid"

		_, err := svc.CreateRecord(context.Background(), req)
		var derr *shared.DomainError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, "INVALID_WAREHOUSE", derr.Code)
	})
}
