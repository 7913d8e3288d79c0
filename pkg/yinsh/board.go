package yinsh

import (
	"fmt"

	"github.com/temhelk/yngine-go/pkg/bitboard"
)

// Color is one of the two players.
type Color uint8

const (
	White Color = iota
	Black
)

func (c Color) String() string {
	if c == White {
		return "White"
	}
	return "Black"
}

// Opposite returns the other player's color.
func (c Color) Opposite() Color {
	if c == White {
		return Black
	}
	return White
}

// NextAction names the phase of play the board is currently in.
type NextAction uint8

const (
	ActionPlaceRing NextAction = iota
	ActionRingMovement
	ActionRowRemoval
	ActionRingRemoval
	ActionDone
)

func (a NextAction) String() string {
	switch a {
	case ActionPlaceRing:
		return "PlaceRing"
	case ActionRingMovement:
		return "RingMovement"
	case ActionRowRemoval:
		return "RowRemoval"
	case ActionRingRemoval:
		return "RingRemoval"
	case ActionDone:
		return "Done"
	default:
		return fmt.Sprintf("NextAction(%d)", uint8(a))
	}
}

// Result is the outcome of a terminated game.
type Result uint8

const (
	Draw Result = iota
	WhiteWon
	BlackWon
)

func (r Result) String() string {
	switch r {
	case Draw:
		return "Draw"
	case WhiteWon:
		return "WhiteWon"
	case BlackWon:
		return "BlackWon"
	default:
		return fmt.Sprintf("Result(%d)", uint8(r))
	}
}

// axes lists the three board axes used when scanning for rows off the move
// axis.
var axes = [3]bitboard.Direction{bitboard.SE, bitboard.NE, bitboard.N}

// BoardState is the complete, freely-copyable state of a Yinsh game: four
// bitboards plus the handful of scalar fields needed to know whose turn it
// is and what they're allowed to do. Every MCTS iteration works on its own
// copy seeded from the root state, replaying moves along the selected path.
type BoardState struct {
	NextAction NextAction

	// LastRingMoveColor is the color that made the last ring-placement or
	// ring-move action — "last mover" toggles after every player-turn
	// phase. The color to move now is always LastRingMoveColor.Opposite().
	LastRingMoveColor Color

	// RowRemovalColor is the color currently choosing a row or ring to
	// remove; only meaningful during ActionRowRemoval/ActionRingRemoval.
	RowRemovalColor Color

	// LastRingMove is the most recent ring move (from, to, direction);
	// consulted only once at least one ring move has happened.
	LastRingMove Move

	WhiteRings   bitboard.Bitboard
	BlackRings   bitboard.Bitboard
	WhiteMarkers bitboard.Bitboard
	BlackMarkers bitboard.Bitboard
}

// New returns a fresh Yinsh board at the start of the placement phase.
func New() BoardState {
	return BoardState{
		NextAction:        ActionPlaceRing,
		RowRemovalColor:   Black,
		LastRingMoveColor: Black,
		LastRingMove:      NewRingMove(0, 0, bitboard.SE),
	}
}

// ColorToMove returns the color whose turn it currently is.
func (b *BoardState) ColorToMove() Color {
	return b.LastRingMoveColor.Opposite()
}

func (b *BoardState) ringsOf(c Color) bitboard.Bitboard {
	if c == White {
		return b.WhiteRings
	}
	return b.BlackRings
}

func (b *BoardState) markersOf(c Color) bitboard.Bitboard {
	if c == White {
		return b.WhiteMarkers
	}
	return b.BlackMarkers
}

func (b *BoardState) setRings(c Color, bb bitboard.Bitboard) {
	if c == White {
		b.WhiteRings = bb
	} else {
		b.BlackRings = bb
	}
}

func (b *BoardState) setMarkers(c Color, bb bitboard.Bitboard) {
	if c == White {
		b.WhiteMarkers = bb
	} else {
		b.BlackMarkers = bb
	}
}

// GenerateMoves appends every legal move for the current phase to list,
// which must be empty (caller calls Reset beforehand). Always produces at
// least one move.
func (b *BoardState) GenerateMoves(list *MoveList) {
	switch b.NextAction {
	case ActionPlaceRing:
		b.generateRingPlacement(list)
	case ActionRingMovement:
		b.generateRingMoves(list)
	case ActionRowRemoval:
		b.generateRowRemoval(list)
	case ActionRingRemoval:
		b.generateRingRemoval(list)
	case ActionDone:
		panic("yinsh: GenerateMoves called on a terminated board")
	}

	if list.Len() == 0 {
		panic("yinsh: move generation produced zero moves")
	}
}

func (b *BoardState) generateRingPlacement(list *MoveList) {
	occupancy := b.WhiteRings.Or(b.BlackRings)
	empty := occupancy.Not().And(bitboard.InPlayMask)

	for empty.Any() {
		var idx uint8
		idx, empty = empty.BitScanAndReset()
		list.Append(PlaceRing(idx))
	}
}

func (b *BoardState) generateRingMoves(list *MoveList) {
	allRings := b.WhiteRings.Or(b.BlackRings)
	allMarkers := b.WhiteMarkers.Or(b.BlackMarkers)

	mover := b.ColorToMove()
	ourRings := b.ringsOf(mover)

	for ourRings.Any() {
		var ringIndex uint8
		ringIndex, ourRings = ourRings.BitScanAndReset()

		for d := bitboard.Direction(0); d < 6; d++ {
			ray := bitboard.Rays[ringIndex][d]

			blockingRings := allRings.And(ray)

			var reachable bitboard.Bitboard
			if blockingRings.Any() {
				closest := blockingRings.BitScanDirection(d)
				blockRay := bitboard.Rays[closest][d].SetBit(closest)
				reachable = ray.AndNot(blockRay)
			} else {
				reachable = ray
			}

			markersOnWay := allMarkers.And(ray)
			emptyOnWay := markersOnWay.Not().And(ray)
			markersShifted := markersOnWay.ShiftDirection(d)
			emptyAfterMarkers := markersShifted.And(emptyOnWay)

			var allowed bitboard.Bitboard
			if emptyAfterMarkers.Any() {
				e := emptyAfterMarkers.BitScanDirection(d)
				forbidden := bitboard.Rays[e][d]
				allowed = reachable.AndNot(allMarkers).AndNot(forbidden)
			} else {
				allowed = reachable.AndNot(allMarkers)
			}

			for allowed.Any() {
				var to uint8
				to, allowed = allowed.BitScanAndReset()
				list.Append(NewRingMove(ringIndex, to, d))
			}
		}
	}

	if list.Len() == 0 {
		list.Append(Pass())
	}
}

func (b *BoardState) generateRowRemoval(list *MoveList) {
	last := b.LastRingMove
	d := last.Direction

	rayFromFrom := bitboard.Rays[last.From][d]
	rayFromTo := bitboard.Rays[last.To][d]
	affected := rayFromFrom.AndNot(rayFromTo).SetBit(last.From)

	markers := b.markersOf(b.RowRemovalColor)

	// Rows along the move axis: only when the mover's color is the
	// row-removal color and the mover left a marker at `from`.
	if b.LastRingMoveColor == b.RowRemovalColor && markers.GetBit(last.From) {
		lFwd := lengthOfRow(markers, last.From, d)
		lBwd := lengthOfRow(markers, last.From, d.Opposite())
		total := int(lFwd) + int(lBwd) + 1

		if total >= 5 {
			numRows := total - 4
			backEnd := bitboard.IndexMoveDirection(last.From, d.Opposite(), lBwd)
			for k := 0; k < numRows; k++ {
				from := bitboard.IndexMoveDirection(backEnd, d, uint8(k))
				list.Append(NewRemoveRow(from, d))
			}
		}
	}

	// Rows along the other two axes, for every affected marker of the
	// row-removal color.
	affectedMarkers := markers.And(affected)
	for affectedMarkers.Any() {
		var marker uint8
		marker, affectedMarkers = affectedMarkers.BitScanAndReset()

		for _, axis := range axes {
			if axis == d || axis == d.Opposite() {
				continue
			}

			lFwd := lengthOfRow(markers, marker, axis)
			lBwd := lengthOfRow(markers, marker, axis.Opposite())
			total := int(lFwd) + int(lBwd) + 1

			if total >= 5 {
				numRows := total - 4
				backEnd := bitboard.IndexMoveDirection(marker, axis.Opposite(), lBwd)
				for k := 0; k < numRows; k++ {
					from := bitboard.IndexMoveDirection(backEnd, axis, uint8(k))
					list.Append(NewRemoveRow(from, axis))
				}
			}
		}
	}
}

func (b *BoardState) generateRingRemoval(list *MoveList) {
	rings := b.ringsOf(b.RowRemovalColor)
	for rings.Any() {
		var idx uint8
		idx, rings = rings.BitScanAndReset()
		list.Append(RemoveRing(idx))
	}
}

// lengthOfRow counts the run of consecutive set bits in bitboard bb
// starting one step beyond index along direction d.
func lengthOfRow(bb bitboard.Bitboard, index uint8, d bitboard.Direction) uint8 {
	ray := bitboard.Rays[index][d]
	empties := bb.Not().And(ray)

	if empties.Any() {
		e := empties.BitScanDirection(d)
		rayFromEmpty := bitboard.Rays[e][d].SetBit(e)
		markersInRow := ray.AndNot(rayFromEmpty)
		return uint8(markersInRow.Popcount())
	}
	return uint8(ray.Popcount())
}

// lineInDirection returns the `length`-cell line starting at index and
// running in direction d, inclusive of index.
func lineInDirection(index uint8, d bitboard.Direction, length uint8) bitboard.Bitboard {
	rayFromIndex := bitboard.Rays[index][d].SetBit(index)
	endIndex := bitboard.IndexMoveDirection(index, d, length-1)
	rayFromEnd := bitboard.Rays[endIndex][d]
	return rayFromIndex.AndNot(rayFromEnd)
}

// ApplyMove applies move to the board, advancing NextAction and toggling
// colors as described by the engine's core specification. The caller must
// ensure move is legal for the current state; ApplyMove only asserts
// invariants in debug builds (see assert.go).
func (b *BoardState) ApplyMove(m Move) {
	switch m.Kind {
	case KindPlaceRing:
		b.applyPlaceRing(m)
	case KindRingMove:
		b.applyRingMove(m)
	case KindRemoveRow:
		b.applyRemoveRow(m)
	case KindRemoveRing:
		b.applyRemoveRing(m)
	case KindPass:
		b.LastRingMoveColor = b.LastRingMoveColor.Opposite()
	default:
		panic(fmt.Sprintf("yinsh: invalid move kind %d", uint8(m.Kind)))
	}
}

func (b *BoardState) applyPlaceRing(m Move) {
	mover := b.ColorToMove()
	assertf(!b.ringsOf(mover).GetBit(m.Index), "yinsh: placing ring on occupied cell %s", FormatCoord(m.Index))
	b.setRings(mover, b.ringsOf(mover).SetBit(m.Index))

	b.LastRingMoveColor = b.LastRingMoveColor.Opposite()

	if b.BlackRings.Popcount() == 5 && b.WhiteRings.Popcount() == 5 {
		b.NextAction = ActionRingMovement
	}
}

func (b *BoardState) applyRingMove(m Move) {
	mover := b.ColorToMove()
	allMarkers := b.WhiteMarkers.Or(b.BlackMarkers)
	assertf(!allMarkers.GetBit(m.To), "yinsh: ring move onto occupied marker at %s", FormatCoord(m.To))

	b.setRings(mover, b.ringsOf(mover).ClearBit(m.From).SetBit(m.To))
	b.setMarkers(mover, b.markersOf(mover).SetBit(m.From))

	rayFromFrom := bitboard.Rays[m.From][m.Direction]
	rayFromTo := bitboard.Rays[m.To][m.Direction]
	flipMask := rayFromFrom.AndNot(rayFromTo)

	blackToFlip := b.BlackMarkers.And(flipMask)
	whiteToFlip := b.WhiteMarkers.And(flipMask)

	b.WhiteMarkers = b.WhiteMarkers.AndNot(flipMask).Or(blackToFlip)
	b.BlackMarkers = b.BlackMarkers.AndNot(flipMask).Or(whiteToFlip)

	b.LastRingMove = m
	b.LastRingMoveColor = b.LastRingMoveColor.Opposite()

	if rowColor, ok := b.checkRows(m); ok {
		b.NextAction = ActionRowRemoval
		b.RowRemovalColor = rowColor
	} else if b.WhiteMarkers.Popcount()+b.BlackMarkers.Popcount() == 51 {
		b.NextAction = ActionDone
	}
}

func (b *BoardState) applyRemoveRow(m Move) {
	removeMarkers := lineInDirection(m.From, m.Direction, 5)
	assertf(removeMarkers.Popcount() == 5, "yinsh: row removal line is not 5 cells")

	markers := b.markersOf(b.RowRemovalColor)
	assertf(markers.And(removeMarkers).Popcount() == 5, "yinsh: row removal line is not fully occupied by %s", b.RowRemovalColor)
	b.setMarkers(b.RowRemovalColor, markers.AndNot(removeMarkers))

	b.NextAction = ActionRingRemoval
}

func (b *BoardState) applyRemoveRing(m Move) {
	b.setRings(b.RowRemovalColor, b.ringsOf(b.RowRemovalColor).ClearBit(m.Index))

	if b.WhiteRings.Popcount() == 2 || b.BlackRings.Popcount() == 2 {
		b.NextAction = ActionDone
		return
	}

	if rowColor, ok := b.checkRows(b.LastRingMove); ok {
		b.NextAction = ActionRowRemoval
		b.RowRemovalColor = rowColor
	} else {
		b.NextAction = ActionRingMovement
	}
}

// checkRows reports whether the last ring move produced a row of 5+ for
// some color, and if so which (mover's color takes priority over the
// opponent's when both appear on the same move).
func (b *BoardState) checkRows(last Move) (Color, bool) {
	d := last.Direction
	rayFromFrom := bitboard.Rays[last.From][d]
	rayFromTo := bitboard.Rays[last.To][d]
	affected := rayFromFrom.AndNot(rayFromTo).SetBit(last.From)

	moverMarkers := b.markersOf(b.LastRingMoveColor)
	if moverMarkers.GetBit(last.From) {
		lFwd := lengthOfRow(moverMarkers, last.From, d)
		lBwd := lengthOfRow(moverMarkers, last.From, d.Opposite())
		if int(lFwd)+int(lBwd) >= 4 {
			return b.LastRingMoveColor, true
		}
	}

	checkColors := [2]Color{b.LastRingMoveColor, b.LastRingMoveColor.Opposite()}
	for _, color := range checkColors {
		colorMarkers := b.markersOf(color)
		affectedMarkers := colorMarkers.And(affected)

		for affectedMarkers.Any() {
			var marker uint8
			marker, affectedMarkers = affectedMarkers.BitScanAndReset()

			for _, axis := range axes {
				if axis == d || axis == d.Opposite() {
					continue
				}

				lFwd := lengthOfRow(colorMarkers, marker, axis)
				lBwd := lengthOfRow(colorMarkers, marker, axis.Opposite())
				if int(lFwd)+int(lBwd) >= 4 {
					return color, true
				}
			}
		}
	}

	return 0, false
}

// Playout plays uniformly-random legal moves from the current state until
// the game is done, using rng as the source of randomness.
func (b *BoardState) Playout(rng RNG) {
	var list MoveList
	for b.NextAction != ActionDone {
		b.GenerateMoves(&list)
		choice := list.Get(int(rng.Intn(list.Len())))
		b.ApplyMove(choice)
		list.Reset()
	}
}

// GameResult reports the outcome of a terminated board. Panics if the game
// is not yet done.
func (b *BoardState) GameResult() Result {
	if b.NextAction != ActionDone {
		panic("yinsh: GameResult called on a non-terminal board")
	}

	whiteRings := b.WhiteRings.Popcount()
	blackRings := b.BlackRings.Popcount()

	switch {
	case whiteRings == blackRings:
		return Draw
	case whiteRings < blackRings:
		return WhiteWon
	default:
		return BlackWon
	}
}

// String renders the board with 'A'/'a' for White rings/markers, 'B'/'b'
// for Black, '.' for empty in-play cells, matching the original's
// operator<<(ostream&, BoardState).
func (b *BoardState) String() string {
	out := make([]byte, 0, 1024)
	render := func(x, y uint8) {
		idx := bitboard.CoordsToIndex(x, y)
		if !bitboard.InPlayMask.GetBit(idx) {
			out = append(out, ' ', ' ')
			return
		}
		var ch byte
		switch {
		case b.WhiteRings.GetBit(idx):
			ch = 'A'
		case b.WhiteMarkers.GetBit(idx):
			ch = 'a'
		case b.BlackRings.GetBit(idx):
			ch = 'B'
		case b.BlackMarkers.GetBit(idx):
			ch = 'b'
		default:
			ch = '.'
		}
		out = append(out, ch, ' ')
	}

	for y := 10; y >= 0; y-- {
		for t := 0; t < y; t++ {
			out = append(out, ' ', ' ')
		}
		diagLen := 11 - y
		for n := 0; n < diagLen; n++ {
			render(uint8(n), uint8(y+n))
		}
		out = append(out, '\n')
	}
	for x := 1; x < 11; x++ {
		for t := 0; t < x; t++ {
			out = append(out, ' ', ' ')
		}
		diagLen := 11 - x
		for n := 0; n < diagLen; n++ {
			render(uint8(x+n), uint8(n))
		}
		out = append(out, '\n')
	}
	return string(out)
}
