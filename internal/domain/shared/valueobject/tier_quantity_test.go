package valueobject

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTierQuantity(t *testing.T) {
	t.Run("creates valid quantity", func(t *testing.T) {
		q, err := NewTierQuantity(2, 3, 4, 24, 6)
		require.NoError(t, err)
		assert.Equal(t, int64(2*24+3*6+4), q.Pieces())
	})

	t.Run("rejects negative tier counts", func(t *testing.T) {
		_, err := NewTierQuantity(-1, 0, 0, 24, 6)
		assert.Error(t, err)
	})

	t.Run("rejects zero rates", func(t *testing.T) {
		_, err := NewTierQuantity(1, 0, 0, 0, 6)
		assert.Error(t, err)
	})
}

func TestTierQuantityFromRow(t *testing.T) {
	t.Run("defaults negative counts to zero", func(t *testing.T) {
		q := TierQuantityFromRow(-5, -1, 10, 12, 4)
		assert.Equal(t, int64(0), q.Cartons)
		assert.Equal(t, int64(0), q.Boxes)
		assert.Equal(t, int64(10), q.Units)
	})

	t.Run("defaults missing rates to one", func(t *testing.T) {
		q := TierQuantityFromRow(3, 2, 1, 0, -7)
		assert.Equal(t, int64(1), q.CartonRate)
		assert.Equal(t, int64(1), q.BoxRate)
		assert.Equal(t, int64(6), q.Pieces())
	})
}

func TestTierQuantityPieces(t *testing.T) {
	t.Run("sums all three tiers", func(t *testing.T) {
		q := MustNewTierQuantity(10, 0, 5, 12, 4)
		assert.Equal(t, int64(125), q.Pieces())
	})

	t.Run("zero quantity has zero pieces", func(t *testing.T) {
		q := ZeroTierQuantity(12, 4)
		assert.True(t, q.IsZero())
		assert.Equal(t, int64(0), q.Pieces())
	})
}

func TestTierQuantityDecompose(t *testing.T) {
	t.Run("takes largest units first", func(t *testing.T) {
		// Scenario: 10 cartons of 12 plus 5 loose = 125 pieces, request 50.
		q := MustNewTierQuantity(10, 0, 5, 12, 4)
		got, err := q.Decompose(50)
		require.NoError(t, err)
		assert.Equal(t, int64(4), got.Cartons)
		assert.Equal(t, int64(0), got.Boxes)
		assert.Equal(t, int64(2), got.Units)
		assert.Equal(t, int64(50), got.Pieces())
	})

	t.Run("spills into boxes when cartons run out", func(t *testing.T) {
		q := MustNewTierQuantity(1, 5, 10, 24, 6)
		got, err := q.Decompose(40)
		require.NoError(t, err)
		assert.Equal(t, int64(1), got.Cartons)
		assert.Equal(t, int64(2), got.Boxes)
		assert.Equal(t, int64(4), got.Units)
		assert.Equal(t, int64(40), got.Pieces())
	})

	t.Run("caps cartons at availability", func(t *testing.T) {
		// 96 pieces would fit in 4 cartons, but only 2 exist.
		q := MustNewTierQuantity(2, 10, 0, 24, 6)
		got, err := q.Decompose(96)
		require.NoError(t, err)
		assert.Equal(t, int64(2), got.Cartons)
		assert.Equal(t, int64(8), got.Boxes)
		assert.Equal(t, int64(0), got.Units)
		assert.Equal(t, int64(96), got.Pieces())
	})

	t.Run("exact full availability", func(t *testing.T) {
		q := MustNewTierQuantity(3, 2, 1, 10, 5)
		got, err := q.Decompose(q.Pieces())
		require.NoError(t, err)
		assert.Equal(t, q.Pieces(), got.Pieces())
		assert.LessOrEqual(t, got.Cartons, q.Cartons)
		assert.LessOrEqual(t, got.Boxes, q.Boxes)
		assert.LessOrEqual(t, got.Units, q.Units)
	})

	t.Run("zero pieces yields zero breakdown", func(t *testing.T) {
		q := MustNewTierQuantity(3, 2, 1, 10, 5)
		got, err := q.Decompose(0)
		require.NoError(t, err)
		assert.True(t, got.IsZero())
	})

	t.Run("rejects negative pieces", func(t *testing.T) {
		q := MustNewTierQuantity(3, 2, 1, 10, 5)
		_, err := q.Decompose(-1)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "negative")
	})

	t.Run("rejects pieces above availability", func(t *testing.T) {
		q := MustNewTierQuantity(1, 0, 0, 10, 5)
		_, err := q.Decompose(11)
		assert.Error(t, err)
	})

	t.Run("never exceeds per-tier availability", func(t *testing.T) {
		q := MustNewTierQuantity(2, 3, 7, 20, 5)
		for pieces := int64(0); pieces <= q.Pieces(); pieces++ {
			got, err := q.Decompose(pieces)
			require.NoError(t, err)
			assert.Equal(t, pieces, got.Pieces())
			assert.LessOrEqual(t, got.Cartons, q.Cartons)
			assert.LessOrEqual(t, got.Boxes, q.Boxes)
			assert.LessOrEqual(t, got.Units, q.Units)
		}
	})
}

func TestTierQuantityArithmetic(t *testing.T) {
	t.Run("Add sums component-wise", func(t *testing.T) {
		a := MustNewTierQuantity(1, 2, 3, 10, 5)
		b := MustNewTierQuantity(4, 0, 1, 10, 5)
		sum, err := a.Add(b)
		require.NoError(t, err)
		assert.Equal(t, int64(5), sum.Cartons)
		assert.Equal(t, int64(2), sum.Boxes)
		assert.Equal(t, int64(4), sum.Units)
	})

	t.Run("Add rejects mismatched rates", func(t *testing.T) {
		a := MustNewTierQuantity(1, 2, 3, 10, 5)
		b := MustNewTierQuantity(1, 2, 3, 12, 5)
		_, err := a.Add(b)
		assert.Error(t, err)
	})

	t.Run("Sub rejects negative result", func(t *testing.T) {
		a := MustNewTierQuantity(1, 0, 0, 10, 5)
		b := MustNewTierQuantity(2, 0, 0, 10, 5)
		_, err := a.Sub(b)
		assert.Error(t, err)
	})

	t.Run("Sub preserves pieces arithmetic", func(t *testing.T) {
		a := MustNewTierQuantity(5, 4, 3, 10, 5)
		b := MustNewTierQuantity(2, 1, 3, 10, 5)
		diff, err := a.Sub(b)
		require.NoError(t, err)
		assert.Equal(t, a.Pieces()-b.Pieces(), diff.Pieces())
	})
}

func TestTierQuantityClampTo(t *testing.T) {
	t.Run("caps each tier at availability", func(t *testing.T) {
		limit := MustNewTierQuantity(3, 2, 10, 12, 4)
		req := TierQuantity{Cartons: 5, Boxes: 1, Units: 20, CartonRate: 12, BoxRate: 4}
		got := req.ClampTo(limit)
		assert.Equal(t, int64(3), got.Cartons)
		assert.Equal(t, int64(1), got.Boxes)
		assert.Equal(t, int64(10), got.Units)
	})

	t.Run("zeroes negative requests", func(t *testing.T) {
		limit := MustNewTierQuantity(3, 2, 10, 12, 4)
		req := TierQuantity{Cartons: -1, Boxes: -2, Units: -3, CartonRate: 12, BoxRate: 4}
		got := req.ClampTo(limit)
		assert.True(t, got.IsZero())
	})

	t.Run("adopts the limit's rates", func(t *testing.T) {
		limit := MustNewTierQuantity(3, 2, 10, 12, 4)
		req := TierQuantity{Cartons: 1, CartonRate: 99, BoxRate: 99}
		got := req.ClampTo(limit)
		assert.Equal(t, int64(12), got.CartonRate)
		assert.Equal(t, int64(4), got.BoxRate)
	})
}
