package warehouse

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLocation(t *testing.T) {
	t.Run("parses row, level and position", func(t *testing.T) {
		l := ParseLocation("B2-07")
		assert.True(t, l.Parsed())
		assert.Equal(t, "B", l.Row)
		assert.Equal(t, 2, l.Level)
		assert.Equal(t, 7, l.Position)
	})

	t.Run("position defaults to zero", func(t *testing.T) {
		l := ParseLocation("A1")
		assert.True(t, l.Parsed())
		assert.Equal(t, 0, l.Position)
	})

	t.Run("multi-letter rows", func(t *testing.T) {
		l := ParseLocation("AA10-3")
		assert.True(t, l.Parsed())
		assert.Equal(t, "AA", l.Row)
		assert.Equal(t, 10, l.Level)
	})

	t.Run("normalizes case and whitespace", func(t *testing.T) {
		l := ParseLocation("  b3-1 ")
		assert.True(t, l.Parsed())
		assert.Equal(t, "B", l.Row)
		assert.Equal(t, "b3-1", l.Code)
	})

	t.Run("keeps malformed codes verbatim", func(t *testing.T) {
		l := ParseLocation("DOCK/IN")
		assert.False(t, l.Parsed())
		assert.Equal(t, "DOCK/IN", l.Code)
	})
}

func TestIsValidLocationCode(t *testing.T) {
	assert.True(t, IsValidLocationCode("A1"))
	assert.True(t, IsValidLocationCode("C12-4"))
	assert.False(t, IsValidLocationCode(""))
	assert.False(t, IsValidLocationCode("1A"))
	assert.False(t, IsValidLocationCode("A1-"))
}

func TestLocationOrdering(t *testing.T) {
	t.Run("walking order is row, level, position", func(t *testing.T) {
		codes := []string{"B1-2", "A2-1", "A1-9", "B1-1", "A1-10"}
		locs := make([]Location, len(codes))
		for i, c := range codes {
			locs[i] = ParseLocation(c)
		}
		sort.Slice(locs, func(i, j int) bool { return locs[i].Before(locs[j]) })

		got := make([]string, len(locs))
		for i, l := range locs {
			got[i] = l.Code
		}
		assert.Equal(t, []string{"A1-9", "A1-10", "A2-1", "B1-1", "B1-2"}, got)
	})

	t.Run("numeric ordering beats lexical", func(t *testing.T) {
		// Lexically "A10" < "A2", but level 2 is walked before level 10.
		assert.True(t, ParseLocation("A2").Before(ParseLocation("A10")))
	})

	t.Run("unparseable codes sort last", func(t *testing.T) {
		assert.True(t, ParseLocation("Z99-99").Before(ParseLocation("DOCK/IN")))
		assert.True(t, ParseLocation("DOCK/IN").Before(ParseLocation("DOCK/OUT")))
	})
}
