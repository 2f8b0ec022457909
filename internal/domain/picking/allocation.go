package picking

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/wms/backend/internal/domain/inventory"
	"github.com/wms/backend/internal/domain/shared/valueobject"
)

// PlanStatus represents the fulfillment state of one product's allocation plan
type PlanStatus string

const (
	// PlanStatusSufficient means the full needed quantity was allocated
	PlanStatusSufficient PlanStatus = "SUFFICIENT"
	// PlanStatusInsufficient means some but not all of the need was allocated
	PlanStatusInsufficient PlanStatus = "INSUFFICIENT"
	// PlanStatusNotFound means no inventory record matches the SKU at all
	PlanStatusNotFound PlanStatus = "NOT_FOUND"
)

// String returns the string representation
func (s PlanStatus) String() string {
	return string(s)
}

// IsValid returns true if the status is one of the defined values
func (s PlanStatus) IsValid() bool {
	switch s {
	case PlanStatusSufficient, PlanStatusInsufficient, PlanStatusNotFound:
		return true
	}
	return false
}

// ProductNeed is one line item of a demand document (e.g. a packing list):
// a required quantity of one SKU, expressed in pieces.
type ProductNeed struct {
	ProductCode  string `json:"product_code"`
	ProductName  string `json:"product_name"`
	NeededPieces int64  `json:"needed_pieces"`
	UnitCode     string `json:"unit_code"`
}

// AllocationLine is one pick against one inventory record: how much of the
// record's stock the plan draws, in pieces and as a tier breakdown taken
// against the record's own tier counts. toPick never exceeds available and
// remaining is always available - toPick.
type AllocationLine struct {
	RecordID        uuid.UUID                 `json:"record_id"`
	Location        string                    `json:"location"`
	Zone            string                    `json:"zone"`
	LotNumber       string                    `json:"lot_number,omitempty"`
	ManufactureDate *time.Time                `json:"manufacture_date,omitempty"`
	Available       int64                     `json:"available"`
	ToPick          int64                     `json:"to_pick"`
	Remaining       int64                     `json:"remaining"`
	Breakdown       valueobject.TierQuantity  `json:"breakdown"`
}

// ProductPlan is the per-product allocation result: which locations to draw
// from, in FIFO order, and how the need is covered. A shortfall is a normal,
// reportable plan state, never an error.
type ProductPlan struct {
	ProductCode    string           `json:"product_code"`
	ProductName    string           `json:"product_name"`
	TotalNeeded    int64            `json:"total_needed"`
	TotalAvailable int64            `json:"total_available"`
	TotalPicked    int64            `json:"total_picked"`
	Percentage     int64            `json:"percentage"`
	Status         PlanStatus       `json:"status"`
	Lines          []AllocationLine `json:"lines"`
}

// Allocator selects inventory records for each product need and greedily
// allocates across locations in FIFO order. It is a pure domain service:
// it never mutates the snapshot and produces identical output for identical
// input.
type Allocator struct{}

// NewAllocator creates a new allocation engine
func NewAllocator() *Allocator {
	return &Allocator{}
}

// Allocate builds one ProductPlan per need against the snapshot.
// For each need, matching records are ordered by creation time ascending with
// location code as the tie-break (the FIFO contract: oldest stock is offered
// first, deterministically), then walked greedily: each record contributes
// min(available, remaining need), decomposed largest-unit-first against the
// record's own tiers.
func (a *Allocator) Allocate(needs []ProductNeed, snapshot []inventory.Record) []ProductPlan {
	plans := make([]ProductPlan, 0, len(needs))
	for _, need := range needs {
		plans = append(plans, a.allocateOne(need, snapshot))
	}
	return plans
}

func (a *Allocator) allocateOne(need ProductNeed, snapshot []inventory.Record) ProductPlan {
	plan := ProductPlan{
		ProductCode: need.ProductCode,
		ProductName: need.ProductName,
		TotalNeeded: need.NeededPieces,
		Lines:       make([]AllocationLine, 0),
	}

	matching := make([]inventory.Record, 0)
	for _, r := range snapshot {
		if r.SKU == need.ProductCode {
			matching = append(matching, r)
		}
	}
	if len(matching) == 0 {
		plan.Status = PlanStatusNotFound
		return plan
	}

	sort.Slice(matching, func(i, j int) bool {
		if !matching[i].CreatedAt.Equal(matching[j].CreatedAt) {
			return matching[i].CreatedAt.Before(matching[j].CreatedAt)
		}
		return matching[i].Location < matching[j].Location
	})

	remainingNeed := need.NeededPieces
	for _, record := range matching {
		quantity := record.Quantity()
		available := quantity.Pieces()
		plan.TotalAvailable += available

		if available <= 0 || remainingNeed <= 0 {
			continue
		}

		take := remainingNeed
		if available < take {
			take = available
		}

		// take <= available always holds, so Decompose cannot fail here.
		breakdown, err := quantity.Decompose(take)
		if err != nil {
			continue
		}

		plan.Lines = append(plan.Lines, AllocationLine{
			RecordID:        record.ID,
			Location:        record.Location,
			Zone:            record.Zone,
			LotNumber:       record.LotNumber,
			ManufactureDate: record.ManufactureDate,
			Available:       available,
			ToPick:          take,
			Remaining:       available - take,
			Breakdown:       breakdown,
		})
		plan.TotalPicked += take
		remainingNeed -= take
	}

	plan.Percentage = fulfillmentPercentage(plan.TotalPicked, plan.TotalNeeded)
	if remainingNeed == 0 {
		plan.Status = PlanStatusSufficient
	} else {
		plan.Status = PlanStatusInsufficient
	}
	return plan
}

// fulfillmentPercentage returns min(100, round(100*picked/needed)), using
// decimal round-half-up so the result is stable across platforms.
func fulfillmentPercentage(picked, needed int64) int64 {
	if needed <= 0 {
		return 0
	}
	pct := decimal.NewFromInt(picked).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(needed)).
		Round(0).
		IntPart()
	if pct > 100 {
		pct = 100
	}
	return pct
}
