package yinsh

import "testing"

func TestMT19937IsDeterministicForASeed(t *testing.T) {
	a := NewMT19937(1337)
	b := NewMT19937(1337)

	for i := 0; i < 1000; i++ {
		if x, y := a.Uint32(), b.Uint32(); x != y {
			t.Fatalf("two generators seeded identically diverged at draw %d: %d != %d", i, x, y)
		}
	}
}

func TestMT19937DifferentSeedsDiverge(t *testing.T) {
	a := NewMT19937(1)
	b := NewMT19937(2)

	same := true
	for i := 0; i < 16; i++ {
		if a.Uint32() != b.Uint32() {
			same = false
			break
		}
	}
	if same {
		t.Error("generators with different seeds produced identical streams")
	}
}

func TestIntnStaysInRange(t *testing.T) {
	rng := NewMT19937(42)
	for i := 0; i < 10000; i++ {
		n := 1 + i%37
		v := rng.Intn(n)
		if v < 0 || v >= n {
			t.Fatalf("Intn(%d) = %d, out of range", n, v)
		}
	}
}

func TestIntnDistributesAcrossFullRange(t *testing.T) {
	rng := NewMT19937(7)
	seen := make(map[int]bool)
	for i := 0; i < 500; i++ {
		seen[rng.Intn(10)] = true
	}
	if len(seen) != 10 {
		t.Errorf("Intn(10) over 500 draws only produced %d distinct values, want 10", len(seen))
	}
}
