package cellsheet

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPositionStringRoundTrip(t *testing.T) {
	cases := []struct {
		pos Position
		str string
	}{
		{Position{0, 0}, "A1"},
		{Position{8, 25}, "Z9"},
		{Position{99, 26}, "AA100"},
		{Position{0, 51}, "AZ1"},
		{Position{0, 52}, "BA1"},
	}

	for _, tc := range cases {
		t.Run(tc.str, func(t *testing.T) {
			require.Equal(t, tc.str, tc.pos.String())
			require.Equal(t, tc.pos, ParsePosition(tc.str))
		})
	}
}

func TestPositionRoundTripForAllValid(t *testing.T) {
	// P6: from_string(p.to_string()) == p for every valid position we sample.
	for _, row := range []int{0, 1, 26, 99, MaxRows - 1} {
		for _, col := range []int{0, 1, 25, 26, 51, 52, MaxCols - 1} {
			p := Position{Row: row, Col: col}
			require.True(t, p.IsValid())
			got := ParsePosition(p.String())
			require.Equal(t, p, got)
		}
	}
}

func TestParsePositionInvalid(t *testing.T) {
	invalid := []string{
		"",
		"1A",
		"A",
		"AAAA1",
		"A12345678901234567",
		"A0",          // row becomes -1
		"A-1",
		"A1A",
		"A1 ",
		" A1",
		"ABCD1",
		"A123456789012345", // too many digits
	}

	for _, s := range invalid {
		t.Run(s, func(t *testing.T) {
			require.Equal(t, NonePosition, ParsePosition(s))
		})
	}
}

func TestParsePositionLowercase(t *testing.T) {
	// spec.md requires an uppercase-only letter run; lowercase must be
	// rejected outright, not silently normalized.
	require.Equal(t, NonePosition, ParsePosition("a1"))
}

func TestParsePositionOutOfGrid(t *testing.T) {
	require.Equal(t, NonePosition, ParsePosition("A99999999"))
}

func TestPositionOrdering(t *testing.T) {
	a := Position{Row: 0, Col: 5}
	b := Position{Row: 0, Col: 6}
	c := Position{Row: 1, Col: 0}

	require.True(t, a.Less(b))
	require.True(t, b.Less(c))
	require.False(t, b.Less(a))
}

func TestNonePositionIsInvalid(t *testing.T) {
	require.False(t, NonePosition.IsValid())
	require.Equal(t, "", NonePosition.String())
}
