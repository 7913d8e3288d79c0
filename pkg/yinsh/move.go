// Package yinsh implements the Yinsh board state, legal move generation,
// move application and random playouts described by the engine's core
// specification.
package yinsh

import (
	"fmt"

	"github.com/temhelk/yngine-go/pkg/bitboard"
)

// Kind discriminates the five move variants. Dispatch on Kind is always an
// exhaustive switch; there is no virtual dispatch here.
type Kind uint8

const (
	KindPlaceRing Kind = iota
	KindRingMove
	KindRemoveRow
	KindRemoveRing
	KindPass
)

func (k Kind) String() string {
	switch k {
	case KindPlaceRing:
		return "PlaceRing"
	case KindRingMove:
		return "RingMove"
	case KindRemoveRow:
		return "RemoveRow"
	case KindRemoveRing:
		return "RemoveRing"
	case KindPass:
		return "Pass"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Move is a tagged union over the five Yinsh move variants. Only the fields
// relevant to Kind are meaningful; constructors below are the only
// sanctioned way to build one.
type Move struct {
	Kind      Kind
	Index     uint8             // PlaceRing, RemoveRing
	From      uint8             // RingMove, RemoveRow
	To        uint8             // RingMove
	Direction bitboard.Direction // RingMove, RemoveRow
}

// PlaceRing builds a ring-placement move onto an empty cell.
func PlaceRing(index uint8) Move {
	return Move{Kind: KindPlaceRing, Index: index}
}

// NewRingMove builds a ring move from `from` to `to` sliding/jumping in
// direction d.
func NewRingMove(from, to uint8, d bitboard.Direction) Move {
	return Move{Kind: KindRingMove, From: from, To: to, Direction: d}
}

// NewRemoveRow builds a row-removal move: the five markers of
// line(from, d, 5) are removed.
func NewRemoveRow(from uint8, d bitboard.Direction) Move {
	return Move{Kind: KindRemoveRow, From: from, Direction: d}
}

// RemoveRing builds a ring-removal move.
func RemoveRing(index uint8) Move {
	return Move{Kind: KindRemoveRing, Index: index}
}

// Pass builds the forced-pass move used when a player has no legal ring
// move (spec's designer-clarified policy, see board.go).
func Pass() Move {
	return Move{Kind: KindPass}
}

// RowEnd returns the far end of a row-removal move's five-cell line, i.e.
// index_move_direction(from, dir, 4).
func (m Move) RowEnd() uint8 {
	return bitboard.IndexMoveDirection(m.From, m.Direction, 4)
}

// Equal compares two moves, normalizing row-removal's two equivalent
// representations: (from, d) == (from+4d, opposite(d)).
func (m Move) Equal(other Move) bool {
	if m.Kind != other.Kind {
		return false
	}
	switch m.Kind {
	case KindPlaceRing, KindRemoveRing:
		return m.Index == other.Index
	case KindRingMove:
		return m.From == other.From && m.To == other.To && m.Direction == other.Direction
	case KindRemoveRow:
		if m.From == other.From && m.Direction == other.Direction {
			return true
		}
		return m.RowEnd() == other.From && m.Direction.Opposite() == other.Direction
	case KindPass:
		return true
	default:
		return false
	}
}

// MoveListCapacity is the fixed capacity of a MoveList.
const MoveListCapacity = 128

// MoveList is a bounded, stack-allocated list of legal moves. Callers must
// Reset it between generation calls.
type MoveList struct {
	moves [MoveListCapacity]Move
	size  int
}

// Len returns the number of moves currently stored.
func (l *MoveList) Len() int {
	return l.size
}

// Append adds a move to the list. Panics if the list is already full,
// mirroring the original's assert(size < MOVE_LIST_NUMBER).
func (l *MoveList) Append(m Move) {
	if l.size >= MoveListCapacity {
		panic("yinsh: move list overflow")
	}
	l.moves[l.size] = m
	l.size++
}

// Get returns the move at index i.
func (l *MoveList) Get(i int) Move {
	return l.moves[i]
}

// Reset empties the list without reallocating its backing array.
func (l *MoveList) Reset() {
	l.size = 0
}

// All returns a slice view over the moves currently stored. The slice
// aliases the list's backing array and is invalidated by the next Append
// after a Reset.
func (l *MoveList) All() []Move {
	return l.moves[:l.size]
}
