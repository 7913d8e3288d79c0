package yinsh

import (
	"testing"

	"github.com/temhelk/yngine-go/pkg/bitboard"
)

func TestCoordRoundTrip(t *testing.T) {
	for x := uint8(0); x < 11; x++ {
		for y := uint8(0); y < 11; y++ {
			idx := bitboard.CoordsToIndex(x, y)
			s := FormatCoord(idx)
			got, err := ParseCoord(s)
			if err != nil {
				t.Fatalf("ParseCoord(%q) failed: %v", s, err)
			}
			if got != idx {
				t.Errorf("round trip for %d: FormatCoord=%q, ParseCoord back=%d", idx, s, got)
			}
		}
	}
}

func TestParseCoordLowercase(t *testing.T) {
	got, err := ParseCoord("a1")
	if err != nil {
		t.Fatalf("ParseCoord(\"a1\") failed: %v", err)
	}
	want, _ := ParseCoord("A1")
	if got != want {
		t.Errorf("ParseCoord(\"a1\") = %d, want %d", got, want)
	}
}

func TestParseCoordRejectsGarbage(t *testing.T) {
	for _, s := range []string{"", "Z", "A", "A0", "A12"} {
		if _, err := ParseCoord(s); err == nil {
			t.Errorf("ParseCoord(%q) should have failed", s)
		}
	}
}

func TestMoveStringParseRoundTrip(t *testing.T) {
	from := bitboard.CoordsToIndex(3, 3)
	to := bitboard.IndexMoveDirection(from, bitboard.NE, 3)
	rowFrom := bitboard.CoordsToIndex(1, 1)

	moves := []Move{
		PlaceRing(from),
		NewRingMove(from, to, bitboard.NE),
		NewRemoveRow(rowFrom, bitboard.SE),
		RemoveRing(from),
		Pass(),
	}

	for _, m := range moves {
		s := m.String()
		parsed, err := ParseMove(s)
		if err != nil {
			t.Fatalf("ParseMove(%q) failed: %v", s, err)
		}
		if !parsed.Equal(m) {
			t.Errorf("round trip for %q: got %+v, want %+v", s, parsed, m)
		}
	}
}

func TestDirectionBetweenRejectsMisalignedCells(t *testing.T) {
	a, _ := ParseCoord("A1")
	b, _ := ParseCoord("B5")
	_, _, err := directionBetween(a, b)
	if err == nil {
		t.Errorf("directionBetween(A1, B5) should fail, cells aren't aligned on any axis")
	}
}
