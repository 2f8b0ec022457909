package transfer

import (
	"github.com/wms/backend/internal/domain/shared"
	"github.com/wms/backend/internal/domain/shared/valueobject"
)

// SplitMode selects how a transfer request draws from the source record
type SplitMode string

const (
	// SplitModeFull relocates the record's entire quantity
	SplitModeFull SplitMode = "FULL"
	// SplitModePartial moves an explicit tier quantity, clamped to availability
	SplitModePartial SplitMode = "PARTIAL"
	// SplitModePieces moves a pieces-equivalent amount, decomposed
	// largest-unit-first against the source's tiers. This is how an
	// allocation plan line is executed as a movement.
	SplitModePieces SplitMode = "PIECES"
)

// IsValid returns true if the mode is one of the defined values
func (m SplitMode) IsValid() bool {
	return m == SplitModeFull || m == SplitModePartial || m == SplitModePieces
}

// SplitRequest describes what to carve off a source record. Quantity applies
// to partial requests, Pieces to pieces requests; full-mode requests ignore
// both.
type SplitRequest struct {
	Mode     SplitMode
	Quantity valueobject.TierQuantity
	Pieces   int64
}

// FullSplit requests the record's entire quantity.
func FullSplit() SplitRequest {
	return SplitRequest{Mode: SplitModeFull}
}

// PartialSplit requests an explicit tier quantity.
func PartialSplit(q valueobject.TierQuantity) SplitRequest {
	return SplitRequest{Mode: SplitModePartial, Quantity: q}
}

// PiecesSplit requests a pieces-equivalent amount.
func PiecesSplit(pieces int64) SplitRequest {
	return SplitRequest{Mode: SplitModePieces, Pieces: pieces}
}

// SplitResult is the outcome of one split: what moves to the destination and
// what stays at the source. The two always sum to the source quantity in
// pieces.
type SplitResult struct {
	Destination     valueobject.TierQuantity `json:"destination"`
	SourceRemainder valueobject.TierQuantity `json:"source_remainder"`
}

// Splitter carves a destination allocation and a source remainder out of a
// single source quantity. Pure domain service, no state.
type Splitter struct{}

// NewSplitter creates a new transfer splitter
func NewSplitter() *Splitter {
	return &Splitter{}
}

// Split computes the destination/remainder pair for a source quantity.
//   - Full mode: the whole quantity moves, the remainder is zero.
//   - Partial mode: each requested tier count is clamped to the source's
//     availability in that tier (over-asking shrinks the move, it is not an
//     error), and the remainder is the component-wise difference.
//   - Pieces mode: the requested pieces amount is decomposed against the
//     source's tiers (see SplitPieces); asking for more pieces than the
//     source holds is an error, not a clamp.
//
// The pieces-conservation invariant is checked unconditionally before
// returning. A violation means the arithmetic itself is broken and surfaces
// as a CONSERVATION_VIOLATION error, which callers must treat as fatal for
// the operation.
func (s *Splitter) Split(source valueobject.TierQuantity, req SplitRequest) (SplitResult, error) {
	if !req.Mode.IsValid() {
		return SplitResult{}, shared.NewDomainError("INVALID_QUANTITY", "Unknown split mode")
	}

	var result SplitResult
	switch req.Mode {
	case SplitModeFull:
		result.Destination = source
		result.SourceRemainder = valueobject.ZeroTierQuantity(source.CartonRate, source.BoxRate)
	case SplitModePartial:
		result.Destination = req.Quantity.ClampTo(source)
		remainder, err := source.Sub(result.Destination)
		if err != nil {
			return SplitResult{}, err
		}
		result.SourceRemainder = remainder
	case SplitModePieces:
		return s.SplitPieces(source, req.Pieces)
	}

	return result, s.checkConservation(source, result)
}

// SplitPieces carves a pieces-equivalent amount off the source, decomposing
// it largest-unit-first against the source's own tiers. This is the execution
// step behind "plan line -> movement": the allocation engine hands over a
// pieces count and the split turns it into concrete tier quantities.
func (s *Splitter) SplitPieces(source valueobject.TierQuantity, pieces int64) (SplitResult, error) {
	destination, err := source.Decompose(pieces)
	if err != nil {
		return SplitResult{}, err
	}

	// Decompose never over-takes cartons or boxes, but its loose-unit count
	// may exceed the source's when a box has to be broken open. Borrow from
	// the smaller tier first so the remainder stays non-negative per tier.
	cartons := source.Cartons - destination.Cartons
	boxes := source.Boxes - destination.Boxes
	units := source.Units - destination.Units
	for units < 0 && boxes > 0 {
		boxes--
		units += source.BoxRate
	}
	for units < 0 && cartons > 0 {
		cartons--
		units += source.CartonRate
	}

	result := SplitResult{
		Destination:     destination,
		SourceRemainder: valueobject.TierQuantityFromRow(cartons, boxes, units, source.CartonRate, source.BoxRate),
	}
	return result, s.checkConservation(source, result)
}

func (s *Splitter) checkConservation(source valueobject.TierQuantity, r SplitResult) error {
	if r.Destination.Pieces()+r.SourceRemainder.Pieces() != source.Pieces() {
		return shared.ErrConservation
	}
	return nil
}
