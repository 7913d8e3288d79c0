package yinsh

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/temhelk/yngine-go/pkg/bitboard"
)

// FormatCoord renders an index in Yinsh coordinate notation: letters A..K
// for columns (x), digits 1..11 for rows (y).
func FormatCoord(index uint8) string {
	x, y := bitboard.IndexToCoords(index)
	return fmt.Sprintf("%c%d", 'A'+x, y+1)
}

// ParseCoord parses Yinsh coordinate notation back to an index. The engine
// does not canonicalize the geometry: this only round-trips via the
// index/(x,y) mapping, it does not validate that the cell is in-play.
func ParseCoord(s string) (uint8, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return 0, fmt.Errorf("yinsh: coordinate %q too short", s)
	}
	col := s[0]
	if col < 'A' || col > 'K' {
		if col >= 'a' && col <= 'k' {
			col = col - 'a' + 'A'
		} else {
			return 0, fmt.Errorf("yinsh: invalid column %q", s)
		}
	}
	x := col - 'A'

	row, err := strconv.Atoi(s[1:])
	if err != nil || row < 1 || row > 11 {
		return 0, fmt.Errorf("yinsh: invalid row in %q", s)
	}
	y := uint8(row - 1)

	return bitboard.CoordsToIndex(x, y), nil
}

// axisVec mirrors bitboard's internal direction_to_vec2 table; duplicated
// here (small, six entries) so notation parsing can recover a direction
// from a pair of coordinates without exporting bitboard internals.
var axisVec = [6][2]int{
	{1, 0},  // SE
	{0, 1},  // NE
	{-1, 1}, // N
	{-1, 0}, // NW
	{0, -1}, // SW
	{1, -1}, // S
}

// directionBetween determines the direction and step count of the segment
// from `from` to `to`, assuming the two cells are aligned on one of the six
// axes (as they always are for engine-generated moves).
func directionBetween(from, to uint8) (bitboard.Direction, uint8, error) {
	fx, fy := bitboard.IndexToCoords(from)
	tx, ty := bitboard.IndexToCoords(to)
	dx := int(tx) - int(fx)
	dy := int(ty) - int(fy)

	for i, v := range axisVec {
		if v[0] == 0 && dx != 0 {
			continue
		}
		if v[1] == 0 && dy != 0 {
			continue
		}

		var n int
		if v[0] != 0 {
			n = dx / v[0]
		} else {
			n = dy / v[1]
		}

		if n <= 0 {
			continue
		}
		if v[0]*n == dx && v[1]*n == dy {
			return bitboard.Direction(i), uint8(n), nil
		}
	}

	return 0, 0, fmt.Errorf("yinsh: %s-%s are not aligned on any axis", FormatCoord(from), FormatCoord(to))
}

// String renders a move in the CLI's bit-exact notation:
// placement "P <coord>", ring move "M <from>-<to>", row removal
// "X <from>-<to>", ring removal "R <coord>", pass "-".
func (m Move) String() string {
	switch m.Kind {
	case KindPlaceRing:
		return fmt.Sprintf("P %s", FormatCoord(m.Index))
	case KindRingMove:
		return fmt.Sprintf("M %s-%s", FormatCoord(m.From), FormatCoord(m.To))
	case KindRemoveRow:
		return fmt.Sprintf("X %s-%s", FormatCoord(m.From), FormatCoord(m.RowEnd()))
	case KindRemoveRing:
		return fmt.Sprintf("R %s", FormatCoord(m.Index))
	case KindPass:
		return "-"
	default:
		return fmt.Sprintf("<invalid move kind %d>", uint8(m.Kind))
	}
}

// ParseMove parses the CLI's move notation produced by Move.String.
func ParseMove(s string) (Move, error) {
	s = strings.TrimSpace(s)
	if s == "-" {
		return Pass(), nil
	}

	fields := strings.Fields(s)
	if len(fields) != 2 {
		return Move{}, fmt.Errorf("yinsh: malformed move %q", s)
	}

	tag, arg := fields[0], fields[1]
	switch tag {
	case "P":
		idx, err := ParseCoord(arg)
		if err != nil {
			return Move{}, err
		}
		return PlaceRing(idx), nil
	case "R":
		idx, err := ParseCoord(arg)
		if err != nil {
			return Move{}, err
		}
		return RemoveRing(idx), nil
	case "M", "X":
		parts := strings.SplitN(arg, "-", 2)
		if len(parts) != 2 {
			return Move{}, fmt.Errorf("yinsh: malformed move %q", s)
		}
		from, err := ParseCoord(parts[0])
		if err != nil {
			return Move{}, err
		}
		to, err := ParseCoord(parts[1])
		if err != nil {
			return Move{}, err
		}
		dir, steps, err := directionBetween(from, to)
		if err != nil {
			return Move{}, err
		}
		if tag == "M" {
			return NewRingMove(from, to, dir), nil
		}
		if steps != 4 {
			return Move{}, fmt.Errorf("yinsh: row removal %q does not span exactly 5 cells", s)
		}
		return NewRemoveRow(from, dir), nil
	default:
		return Move{}, fmt.Errorf("yinsh: unknown move tag %q", tag)
	}
}
