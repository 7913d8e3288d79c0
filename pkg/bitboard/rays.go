package bitboard

// directionVec gives the (dx, dy) step for each direction, matching the
// original's direction_to_vec2 table.
var directionVec = [6][2]int8{
	{1, 0},  // SE
	{0, 1},  // NE
	{-1, 1}, // N
	{-1, 0}, // NW
	{0, -1}, // SW
	{1, -1}, // S
}

// Rays[i][d] is the bitboard of every in-play cell strictly beyond cell i
// when walking in direction d until leaving the 85-cell playing field. Built
// once at package init, a pure function of board geometry (spec contract:
// generated exactly once, never mutated afterwards).
var Rays [121][6]Bitboard

func init() {
	for index := uint8(0); index < 121; index++ {
		if !IsIndexInGame(index) {
			continue
		}
		x, y := IndexToCoords(index)
		for d := Direction(0); d < 6; d++ {
			var ray Bitboard
			dx, dy := directionVec[d][0], directionVec[d][1]
			cx, cy := int16(x)+int16(dx), int16(y)+int16(dy)
			for cx >= 0 && cy >= 0 && AreCoordsInGame(uint8(cx), uint8(cy)) {
				ray = ray.SetBit(CoordsToIndex(uint8(cx), uint8(cy)))
				cx += int16(dx)
				cy += int16(dy)
			}
			Rays[index][d] = ray
		}
	}
}
