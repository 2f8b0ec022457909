package picking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wms/backend/internal/domain/inventory"
	"github.com/wms/backend/internal/domain/shared"
	"github.com/wms/backend/internal/domain/shared/valueobject"
)

func testRecord(sku, location string, createdAt time.Time, q valueobject.TierQuantity) inventory.Record {
	r := inventory.Record{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SKU:               sku,
		ProductName:       "Product " + sku,
		Location:          location,
		Zone:              "Z-" + location[:1],
		Cartons:           q.Cartons,
		Boxes:             q.Boxes,
		Units:             q.Units,
		CartonRate:        q.CartonRate,
		BoxRate:           q.BoxRate,
	}
	r.CreatedAt = createdAt
	return r
}

func piecesRecord(sku, location string, createdAt time.Time, pieces int64) inventory.Record {
	return testRecord(sku, location, createdAt, valueobject.TierQuantityFromRow(0, 0, pieces, 12, 4))
}

func TestAllocatorSpansLocationsFIFO(t *testing.T) {
	allocator := NewAllocator()

	t.Run("need split across two locations oldest first", func(t *testing.T) {
		// 100 pieces needed; A1 (older) holds 60, B2 holds 80.
		snapshot := []inventory.Record{
			piecesRecord("L3-8G", "B2", time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), 80),
			piecesRecord("L3-8G", "A1", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 60),
		}
		needs := []ProductNeed{{ProductCode: "L3-8G", ProductName: "Widget", NeededPieces: 100}}

		plans := allocator.Allocate(needs, snapshot)
		require.Len(t, plans, 1)
		plan := plans[0]

		assert.Equal(t, PlanStatusSufficient, plan.Status)
		assert.Equal(t, int64(140), plan.TotalAvailable)
		assert.Equal(t, int64(100), plan.TotalPicked)
		assert.Equal(t, int64(100), plan.Percentage)

		require.Len(t, plan.Lines, 2)
		assert.Equal(t, "A1", plan.Lines[0].Location)
		assert.Equal(t, int64(60), plan.Lines[0].ToPick)
		assert.Equal(t, int64(0), plan.Lines[0].Remaining)
		assert.Equal(t, "B2", plan.Lines[1].Location)
		assert.Equal(t, int64(40), plan.Lines[1].ToPick)
		assert.Equal(t, int64(40), plan.Lines[1].Remaining)
	})

	t.Run("older record fully exhausted before newer is touched", func(t *testing.T) {
		old := piecesRecord("SKU-1", "C3", time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC), 25)
		newer := piecesRecord("SKU-1", "A1", time.Date(2023, 7, 1, 0, 0, 0, 0, time.UTC), 100)
		plans := allocator.Allocate(
			[]ProductNeed{{ProductCode: "SKU-1", NeededPieces: 40}},
			[]inventory.Record{newer, old},
		)
		plan := plans[0]

		require.Len(t, plan.Lines, 2)
		assert.Equal(t, "C3", plan.Lines[0].Location)
		assert.Equal(t, plan.Lines[0].Available, plan.Lines[0].ToPick, "oldest record must be drained first")
		assert.Equal(t, int64(15), plan.Lines[1].ToPick)
	})

	t.Run("equal timestamps tie-break by location", func(t *testing.T) {
		at := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
		plans := allocator.Allocate(
			[]ProductNeed{{ProductCode: "SKU-2", NeededPieces: 10}},
			[]inventory.Record{
				piecesRecord("SKU-2", "B1", at, 10),
				piecesRecord("SKU-2", "A9", at, 10),
			},
		)
		require.NotEmpty(t, plans[0].Lines)
		assert.Equal(t, "A9", plans[0].Lines[0].Location)
	})
}

func TestAllocatorShortfallAndNotFound(t *testing.T) {
	allocator := NewAllocator()

	t.Run("insufficient stock is reported not errored", func(t *testing.T) {
		// Need 50, one location holds 30.
		plans := allocator.Allocate(
			[]ProductNeed{{ProductCode: "SKU-3", NeededPieces: 50}},
			[]inventory.Record{piecesRecord("SKU-3", "A1", time.Now(), 30)},
		)
		plan := plans[0]

		assert.Equal(t, PlanStatusInsufficient, plan.Status)
		assert.Equal(t, int64(60), plan.Percentage)
		assert.Equal(t, int64(30), plan.TotalPicked)
		require.Len(t, plan.Lines, 1)
		assert.Equal(t, int64(30), plan.Lines[0].ToPick)
	})

	t.Run("unknown SKU yields empty not-found plan", func(t *testing.T) {
		plans := allocator.Allocate(
			[]ProductNeed{{ProductCode: "NOPE", NeededPieces: 10}},
			[]inventory.Record{piecesRecord("SKU-3", "A1", time.Now(), 30)},
		)
		plan := plans[0]

		assert.Equal(t, PlanStatusNotFound, plan.Status)
		assert.Empty(t, plan.Lines)
		assert.Equal(t, int64(0), plan.TotalAvailable)
	})

	t.Run("zero-quantity records counted in availability but never emitted", func(t *testing.T) {
		plans := allocator.Allocate(
			[]ProductNeed{{ProductCode: "SKU-4", NeededPieces: 10}},
			[]inventory.Record{
				piecesRecord("SKU-4", "A1", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 0),
				piecesRecord("SKU-4", "A2", time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), 10),
			},
		)
		plan := plans[0]

		assert.Equal(t, PlanStatusSufficient, plan.Status)
		require.Len(t, plan.Lines, 1)
		assert.Equal(t, "A2", plan.Lines[0].Location)
	})
}

func TestAllocatorTierBreakdown(t *testing.T) {
	allocator := NewAllocator()

	t.Run("line breakdown is largest-unit-first against the record's tiers", func(t *testing.T) {
		q := valueobject.MustNewTierQuantity(10, 0, 5, 12, 4) // 125 pieces
		plans := allocator.Allocate(
			[]ProductNeed{{ProductCode: "SKU-5", NeededPieces: 50}},
			[]inventory.Record{testRecord("SKU-5", "A1", time.Now(), q)},
		)
		line := plans[0].Lines[0]

		assert.Equal(t, int64(50), line.ToPick)
		assert.Equal(t, int64(4), line.Breakdown.Cartons)
		assert.Equal(t, int64(0), line.Breakdown.Boxes)
		assert.Equal(t, int64(2), line.Breakdown.Units)
		assert.Equal(t, int64(50), line.Breakdown.Pieces())
	})
}

func TestAllocatorInvariants(t *testing.T) {
	allocator := NewAllocator()
	snapshot := []inventory.Record{
		piecesRecord("SKU-6", "A1-2", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 17),
		piecesRecord("SKU-6", "B4-1", time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), 9),
		piecesRecord("SKU-6", "C2-8", time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), 31),
		piecesRecord("SKU-7", "A2-1", time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), 5),
	}
	needs := []ProductNeed{
		{ProductCode: "SKU-6", NeededPieces: 40},
		{ProductCode: "SKU-7", NeededPieces: 50},
	}

	t.Run("no over-allocation", func(t *testing.T) {
		for _, plan := range allocator.Allocate(needs, snapshot) {
			var picked int64
			for _, line := range plan.Lines {
				assert.LessOrEqual(t, line.ToPick, line.Available)
				assert.Equal(t, line.Available-line.ToPick, line.Remaining)
				picked += line.ToPick
			}
			assert.LessOrEqual(t, picked, plan.TotalNeeded)
			assert.Equal(t, picked, plan.TotalPicked)
		}
	})

	t.Run("status matches picked totals", func(t *testing.T) {
		plans := allocator.Allocate(needs, snapshot)
		assert.Equal(t, PlanStatusSufficient, plans[0].Status)
		assert.Equal(t, plans[0].TotalNeeded, plans[0].TotalPicked)
		assert.Equal(t, PlanStatusInsufficient, plans[1].Status)
		assert.Less(t, plans[1].TotalPicked, plans[1].TotalNeeded)
	})

	t.Run("deterministic across repeated runs and input order", func(t *testing.T) {
		first := allocator.Allocate(needs, snapshot)
		for i := 0; i < 10; i++ {
			shuffled := []inventory.Record{snapshot[3], snapshot[1], snapshot[0], snapshot[2]}
			assert.Equal(t, first, allocator.Allocate(needs, shuffled))
		}
	})

	t.Run("snapshot is never mutated", func(t *testing.T) {
		before := make([]int64, len(snapshot))
		for i, r := range snapshot {
			before[i] = r.AvailablePieces()
		}
		allocator.Allocate(needs, snapshot)
		for i, r := range snapshot {
			assert.Equal(t, before[i], r.AvailablePieces())
		}
	})
}

func TestFulfillmentPercentage(t *testing.T) {
	assert.Equal(t, int64(60), fulfillmentPercentage(30, 50))
	assert.Equal(t, int64(100), fulfillmentPercentage(50, 50))
	assert.Equal(t, int64(0), fulfillmentPercentage(0, 50))
	assert.Equal(t, int64(33), fulfillmentPercentage(1, 3))
	assert.Equal(t, int64(67), fulfillmentPercentage(2, 3))
	assert.Equal(t, int64(0), fulfillmentPercentage(10, 0))
}
