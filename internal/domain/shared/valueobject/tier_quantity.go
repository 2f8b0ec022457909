package valueobject

import (
	"fmt"

	"github.com/wms/backend/internal/domain/shared"
)

// TierQuantity is a value object representing stock held in the three nested
// packaging tiers used throughout the warehouse: cartons, inner boxes, and
// loose base units (pieces). Conversion rates are fixed per SKU and never
// change within a planning or transfer operation.
// It is immutable - all operations return new TierQuantity instances.
type TierQuantity struct {
	Cartons    int64 `json:"cartons"`
	Boxes      int64 `json:"boxes"`
	Units      int64 `json:"units"`
	CartonRate int64 `json:"carton_rate"` // base units per carton
	BoxRate    int64 `json:"box_rate"`    // base units per box
}

// NewTierQuantity creates a validated TierQuantity.
// Tier counts must be non-negative and rates must be at least 1.
func NewTierQuantity(cartons, boxes, units, cartonRate, boxRate int64) (TierQuantity, error) {
	if cartons < 0 || boxes < 0 || units < 0 {
		return TierQuantity{}, shared.NewDomainError("INVALID_QUANTITY", "Tier counts cannot be negative")
	}
	if cartonRate < 1 || boxRate < 1 {
		return TierQuantity{}, shared.NewDomainError("INVALID_QUANTITY", "Conversion rates must be at least 1")
	}
	return TierQuantity{
		Cartons:    cartons,
		Boxes:      boxes,
		Units:      units,
		CartonRate: cartonRate,
		BoxRate:    boxRate,
	}, nil
}

// MustNewTierQuantity creates a TierQuantity and panics on error.
// Use only when you're certain the inputs are valid.
func MustNewTierQuantity(cartons, boxes, units, cartonRate, boxRate int64) TierQuantity {
	q, err := NewTierQuantity(cartons, boxes, units, cartonRate, boxRate)
	if err != nil {
		panic(err)
	}
	return q
}

// TierQuantityFromRow builds a TierQuantity from raw persistence values.
// This is the single construction point for data crossing the system boundary;
// the default rules applied here are deliberate and documented:
//   - negative or missing tier counts are treated as 0
//   - missing or non-positive rates are treated as 1 (the tier then counts as
//     loose base units, which keeps piece totals well-defined)
func TierQuantityFromRow(cartons, boxes, units, cartonRate, boxRate int64) TierQuantity {
	if cartons < 0 {
		cartons = 0
	}
	if boxes < 0 {
		boxes = 0
	}
	if units < 0 {
		units = 0
	}
	if cartonRate < 1 {
		cartonRate = 1
	}
	if boxRate < 1 {
		boxRate = 1
	}
	return TierQuantity{
		Cartons:    cartons,
		Boxes:      boxes,
		Units:      units,
		CartonRate: cartonRate,
		BoxRate:    boxRate,
	}
}

// ZeroTierQuantity returns an empty quantity carrying the given rates.
func ZeroTierQuantity(cartonRate, boxRate int64) TierQuantity {
	return TierQuantityFromRow(0, 0, 0, cartonRate, boxRate)
}

// Pieces returns the base-unit-equivalent total quantity.
func (q TierQuantity) Pieces() int64 {
	return q.Cartons*q.CartonRate + q.Boxes*q.BoxRate + q.Units
}

// IsZero returns true if no stock is held in any tier.
func (q TierQuantity) IsZero() bool {
	return q.Cartons == 0 && q.Boxes == 0 && q.Units == 0
}

// SameRates returns true if both quantities share the same conversion rates.
// Tier arithmetic is only defined within one SKU, where rates are fixed.
func (q TierQuantity) SameRates(other TierQuantity) bool {
	return q.CartonRate == other.CartonRate && q.BoxRate == other.BoxRate
}

// Add returns the component-wise sum of both quantities.
// Returns error if conversion rates differ.
func (q TierQuantity) Add(other TierQuantity) (TierQuantity, error) {
	if !q.SameRates(other) {
		return TierQuantity{}, shared.NewDomainError("INVALID_QUANTITY",
			"Cannot add tier quantities with different conversion rates")
	}
	return TierQuantity{
		Cartons:    q.Cartons + other.Cartons,
		Boxes:      q.Boxes + other.Boxes,
		Units:      q.Units + other.Units,
		CartonRate: q.CartonRate,
		BoxRate:    q.BoxRate,
	}, nil
}

// Sub returns the component-wise difference of both quantities.
// Returns error if rates differ or any component would go negative.
func (q TierQuantity) Sub(other TierQuantity) (TierQuantity, error) {
	if !q.SameRates(other) {
		return TierQuantity{}, shared.NewDomainError("INVALID_QUANTITY",
			"Cannot subtract tier quantities with different conversion rates")
	}
	if other.Cartons > q.Cartons || other.Boxes > q.Boxes || other.Units > q.Units {
		return TierQuantity{}, shared.NewDomainError("INVALID_QUANTITY",
			"Resulting tier quantity would be negative")
	}
	return TierQuantity{
		Cartons:    q.Cartons - other.Cartons,
		Boxes:      q.Boxes - other.Boxes,
		Units:      q.Units - other.Units,
		CartonRate: q.CartonRate,
		BoxRate:    q.BoxRate,
	}, nil
}

// Decompose breaks a target pieces amount into a tier quantity bounded by the
// availability in each tier, using a largest-unit-first greedy rule: take as
// many whole cartons as fit, then as many boxes as fit, then the rest as loose
// units. This minimizes the number of discrete handling units and is
// deterministic for identical inputs.
// Returns INVALID_QUANTITY if pieces is negative or exceeds Pieces().
func (q TierQuantity) Decompose(pieces int64) (TierQuantity, error) {
	if pieces < 0 {
		return TierQuantity{}, shared.NewDomainError("INVALID_QUANTITY",
			"Pieces to decompose cannot be negative")
	}
	if pieces > q.Pieces() {
		return TierQuantity{}, shared.NewDomainError("INVALID_QUANTITY",
			fmt.Sprintf("Pieces to decompose (%d) exceed availability (%d)", pieces, q.Pieces()))
	}

	cartons := pieces / q.CartonRate
	if cartons > q.Cartons {
		cartons = q.Cartons
	}
	remainder := pieces - cartons*q.CartonRate

	boxes := remainder / q.BoxRate
	if boxes > q.Boxes {
		boxes = q.Boxes
	}
	remainder -= boxes * q.BoxRate

	// The remainder lands in loose units. It can exceed the loose-unit count
	// when a box has to be broken open; conserving the pieces total takes
	// precedence over the per-tier cap for the last tier.
	return TierQuantity{
		Cartons:    cartons,
		Boxes:      boxes,
		Units:      remainder,
		CartonRate: q.CartonRate,
		BoxRate:    q.BoxRate,
	}, nil
}

// ClampTo returns a copy of q with each tier count capped at the
// corresponding availability in limit. Rates are taken from limit.
func (q TierQuantity) ClampTo(limit TierQuantity) TierQuantity {
	out := TierQuantity{
		Cartons:    q.Cartons,
		Boxes:      q.Boxes,
		Units:      q.Units,
		CartonRate: limit.CartonRate,
		BoxRate:    limit.BoxRate,
	}
	if out.Cartons < 0 {
		out.Cartons = 0
	}
	if out.Boxes < 0 {
		out.Boxes = 0
	}
	if out.Units < 0 {
		out.Units = 0
	}
	if out.Cartons > limit.Cartons {
		out.Cartons = limit.Cartons
	}
	if out.Boxes > limit.Boxes {
		out.Boxes = limit.Boxes
	}
	if out.Units > limit.Units {
		out.Units = limit.Units
	}
	return out
}

// String returns a compact representation, e.g. "3c+2b+5u (=125 pcs)".
func (q TierQuantity) String() string {
	return fmt.Sprintf("%dc+%db+%du (=%d pcs)", q.Cartons, q.Boxes, q.Units, q.Pieces())
}
