package mcts

import (
	"testing"
	"time"
)

func TestLimiterDefaultIsInfinite(t *testing.T) {
	limiter := NewLimiter(64)
	limiter.Reset()

	if !limiter.Ok(1_000_000, 1_000_000) || !limiter.Expand() {
		t.Errorf("default limiter should search infinitely, ok=%v expand=%v", limiter.Ok(1_000_000, 1_000_000), limiter.Expand())
	}
}

func TestLimiterCycles(t *testing.T) {
	limiter := NewLimiter(64)
	limiter.SetLimits(DefaultLimits().SetCycles(100))
	limiter.Reset()

	if ok := limiter.Ok(1, 101); ok {
		t.Errorf("cycles=101 against limit 100: ok=%v, want false", ok)
	}
	if ok := limiter.Ok(1, 99); !ok {
		t.Errorf("cycles=99 against limit 100: ok=%v, want true", ok)
	}
}

func TestLimiterByteSize(t *testing.T) {
	limiter := NewLimiter(32)
	limiter.SetLimits(DefaultLimits().SetByteSize(10 * 32))
	limiter.Reset()

	if ok := limiter.Ok(10, 1); ok {
		t.Errorf("size=10 against a 10-node budget: ok=%v, want false", ok)
	}
	if ok := limiter.Ok(9, 1); !ok {
		t.Errorf("size=9 against a 10-node budget: ok=%v, want true", ok)
	}
}

func TestLimiterMovetime(t *testing.T) {
	limiter := NewLimiter(32)
	limiter.SetLimits(DefaultLimits().SetMovetime(50))
	limiter.Reset()
	time.Sleep(60 * time.Millisecond)

	if ok := limiter.Ok(1, 1); ok {
		t.Error("movetime elapsed: ok=true, want false")
	}

	limiter.Reset()
	if ok := limiter.Ok(1, 1); !ok {
		t.Error("movetime just reset: ok=false, want true")
	}
}

func TestLimiterMemoryAloneDoesNotStopWhenCyclesIsAlsoSet(t *testing.T) {
	limiter := NewLimiter(32)
	limiter.SetLimits(DefaultLimits().SetCycles(100).SetByteSize(32 * 10))
	limiter.Reset()

	// Memory exhausted but cycles still has budget: search continues with
	// expansion disabled rather than stopping outright.
	if ok := limiter.Ok(10, 1); !ok {
		t.Error("expected search to continue past memory exhaustion while cycles remain")
	}
	if limiter.Expand() {
		t.Error("expected Expand() to be disabled once memory is exhausted")
	}
}

func TestStopReasonString(t *testing.T) {
	reason := StopMovetime | StopCycles
	got := reason.String()
	if got != "Movetime|Cycles" {
		t.Errorf("StopReason.String() = %q, want %q", got, "Movetime|Cycles")
	}
}
