package yinsh

import "testing"

func TestNewBoardStartsAtPlacementWithEmptyBoard(t *testing.T) {
	b := New()
	if b.NextAction != ActionPlaceRing {
		t.Fatalf("NextAction = %s, want %s", b.NextAction, ActionPlaceRing)
	}

	var list MoveList
	b.GenerateMoves(&list)
	if list.Len() != 85 {
		t.Errorf("initial placement move count = %d, want 85", list.Len())
	}
}

func TestWhiteMovesFirst(t *testing.T) {
	b := New()
	if got := b.ColorToMove(); got != White {
		t.Errorf("ColorToMove() on a fresh board = %s, want %s", got, White)
	}
}

func TestPlacingAllTenRingsEntersRingMovementPhase(t *testing.T) {
	b := New()
	var list MoveList

	for i := 0; i < 10; i++ {
		list.Reset()
		b.GenerateMoves(&list)
		if b.NextAction != ActionPlaceRing {
			t.Fatalf("left placement phase after only %d placements", i)
		}
		b.ApplyMove(list.Get(0))
	}

	if b.NextAction != ActionRingMovement {
		t.Fatalf("NextAction after 10 placements = %s, want %s", b.NextAction, ActionRingMovement)
	}
	if b.WhiteRings.Popcount() != 5 || b.BlackRings.Popcount() != 5 {
		t.Errorf("ring counts after placement: white=%d black=%d, want 5/5", b.WhiteRings.Popcount(), b.BlackRings.Popcount())
	}
}

func TestPlacementPhaseNeverGeneratesPass(t *testing.T) {
	b := New()
	var list MoveList
	b.GenerateMoves(&list)
	for i := 0; i < list.Len(); i++ {
		if list.Get(i).Kind == KindPass {
			t.Errorf("placement phase should never generate a pass move")
		}
	}
}

func TestRandomPlayoutAlwaysTerminates(t *testing.T) {
	rng := NewMT19937(1337)
	for game := 0; game < 20; game++ {
		b := New()
		b.Playout(rng)
		if b.NextAction != ActionDone {
			t.Fatalf("game %d: Playout returned with NextAction = %s, want %s", game, b.NextAction, ActionDone)
		}
		// Must not panic, and must return one of the three results.
		switch b.GameResult() {
		case Draw, WhiteWon, BlackWon:
		default:
			t.Fatalf("game %d: GameResult() returned an invalid value", game)
		}
	}
}

func TestGameResultPanicsBeforeGameIsDone(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("GameResult on a non-terminal board should panic")
		}
	}()

	b := New()
	b.GameResult()
}

func TestApplyPlaceRingTogglesMover(t *testing.T) {
	b := New()
	before := b.ColorToMove()
	b.ApplyMove(PlaceRing(0))
	after := b.ColorToMove()

	if before == after {
		t.Errorf("ColorToMove did not toggle after a placement: %s then %s", before, after)
	}
	if !b.ringsOf(before).GetBit(0) {
		t.Errorf("placed ring not reflected on %s's ring bitboard", before)
	}
}

func TestPassTogglesMoverWithoutChangingBoard(t *testing.T) {
	b := New()
	before := b
	mover := b.ColorToMove()
	b.ApplyMove(Pass())

	if b.ColorToMove() == mover {
		t.Error("Pass should toggle the mover")
	}
	if !b.WhiteRings.Equal(before.WhiteRings) || !b.BlackRings.Equal(before.BlackRings) {
		t.Error("Pass should not change ring placement")
	}
}
