package warehouse

import (
	"regexp"
	"strconv"
	"strings"
)

// Location is a parsed warehouse location code. Codes follow the grammar
// <row letters><level digits>[-<position digits>], e.g. "A1", "B2-07",
// "AA10-3": the row identifies the aisle, the level the shelf height, and the
// optional position the slot along the aisle. Parsed codes sort in single-pass
// walking order: row first, then level, then position.
type Location struct {
	Code     string
	Row      string
	Level    int
	Position int
	parsed   bool
}

var locationPattern = regexp.MustCompile(`^([A-Za-z]+)(\d+)(?:-(\d+))?$`)

// ParseLocation parses a location code. Codes that do not match the grammar
// are preserved verbatim and sort after all parseable codes, lexically, so
// route ordering stays deterministic even with malformed data.
func ParseLocation(code string) Location {
	trimmed := strings.TrimSpace(code)
	m := locationPattern.FindStringSubmatch(trimmed)
	if m == nil {
		return Location{Code: trimmed}
	}

	level, _ := strconv.Atoi(m[2])
	position := 0
	if m[3] != "" {
		position, _ = strconv.Atoi(m[3])
	}
	return Location{
		Code:     trimmed,
		Row:      strings.ToUpper(m[1]),
		Level:    level,
		Position: position,
		parsed:   true,
	}
}

// IsValidLocationCode reports whether a code matches the location grammar.
func IsValidLocationCode(code string) bool {
	return locationPattern.MatchString(strings.TrimSpace(code))
}

// Parsed returns true if the code matched the location grammar.
func (l Location) Parsed() bool {
	return l.parsed
}

// Before reports whether l precedes other in walking order.
func (l Location) Before(other Location) bool {
	// Parseable locations always precede unparseable ones.
	if l.parsed != other.parsed {
		return l.parsed
	}
	if !l.parsed {
		return l.Code < other.Code
	}
	if l.Row != other.Row {
		return l.Row < other.Row
	}
	if l.Level != other.Level {
		return l.Level < other.Level
	}
	if l.Position != other.Position {
		return l.Position < other.Position
	}
	return l.Code < other.Code
}

// String returns the original location code.
func (l Location) String() string {
	return l.Code
}
