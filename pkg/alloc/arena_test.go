package alloc

import "testing"

func TestArenaAllocateBumpsCursor(t *testing.T) {
	a := NewArena(4096)
	defer a.Close()

	type pair struct{ x, y int64 }

	p1 := Allocate[pair](a)
	if p1 == nil {
		t.Fatal("Allocate returned nil on a fresh arena")
	}
	p1.x, p1.y = 1, 2

	p2 := Allocate[pair](a)
	if p2 == nil {
		t.Fatal("second Allocate returned nil")
	}
	if p1 == p2 {
		t.Fatal("two allocations returned the same address")
	}
	if p2.x != 0 || p2.y != 0 {
		t.Errorf("fresh allocation should be zeroed, got %+v", *p2)
	}
	if p1.x != 1 || p1.y != 2 {
		t.Errorf("the second allocation should not overwrite the first allocation's memory")
	}
}

func TestArenaExhaustionReturnsNil(t *testing.T) {
	a := NewArena(8)
	defer a.Close()

	type big struct{ data [16]byte }
	if p := Allocate[big](a); p != nil {
		t.Error("expected nil from an allocation larger than the arena's capacity")
	}
}

func TestArenaClearReclaimsSpace(t *testing.T) {
	a := NewArena(48)
	defer a.Close()

	type chunk struct{ data [32]byte }
	if Allocate[chunk](a) == nil {
		t.Fatal("first allocation should succeed")
	}
	if Allocate[chunk](a) != nil {
		t.Fatal("second allocation should have exhausted the arena")
	}

	a.Clear()
	if Allocate[chunk](a) == nil {
		t.Fatal("allocation after Clear should succeed again")
	}
}
