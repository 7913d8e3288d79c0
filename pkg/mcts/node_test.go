package mcts

import (
	"math"
	"testing"

	"github.com/temhelk/yngine-go/pkg/alloc"
	"github.com/temhelk/yngine-go/pkg/yinsh"
)

func TestUCTOfUnvisitedNodeIsInfinite(t *testing.T) {
	pool := alloc.NewPool[Node](4096)
	defer pool.Close()

	n := newNode(pool, yinsh.Pass(), nil, yinsh.White)
	if got := n.ComputeUCT(10); !math.IsInf(got, 1) {
		t.Errorf("ComputeUCT on an unvisited node = %v, want +Inf", got)
	}
}

func TestHalfWinsAndSimulationsPacking(t *testing.T) {
	pool := alloc.NewPool[Node](4096)
	defer pool.Close()

	n := newNode(pool, yinsh.Pass(), nil, yinsh.White)
	n.AddHalfWinsAndSimulations(2, 1)
	n.AddHalfWinsAndSimulations(0, 1)

	halfWins, simulations := n.HalfWinsAndSimulations()
	if halfWins != 2 || simulations != 2 {
		t.Errorf("HalfWinsAndSimulations() = (%d, %d), want (2, 2)", halfWins, simulations)
	}
}

func TestCreateChildrenIsIdempotent(t *testing.T) {
	pool := alloc.NewPool[Node](1 << 20)
	defer pool.Close()

	root := newNode(pool, yinsh.Pass(), nil, yinsh.Black)
	board := yinsh.New()
	rng := yinsh.NewMT19937(1)

	root.CreateChildren(pool, &board, rng)
	first := root.FirstChild
	if first == nil {
		t.Fatal("expected children after CreateChildren")
	}

	root.CreateChildren(pool, &board, rng)
	if root.FirstChild != first {
		t.Error("a second CreateChildren call should be a no-op")
	}
}

func TestAddChildExhaustsThenMarksFullyExpanded(t *testing.T) {
	pool := alloc.NewPool[Node](1 << 20)
	defer pool.Close()

	root := newNode(pool, yinsh.Pass(), nil, yinsh.Black)
	board := yinsh.New()
	rng := yinsh.NewMT19937(2)
	root.CreateChildren(pool, &board, rng)

	seen := map[*Node]bool{}
	for {
		child := root.AddChild()
		if child == root {
			break
		}
		if seen[child] {
			t.Fatal("AddChild handed out the same child twice before exhausting the list")
		}
		seen[child] = true
	}

	if !root.IsFullyExpanded() {
		t.Error("expected IsFullyExpanded() after every child was handed out")
	}

	count := 0
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		count++
	}
	if count != len(seen) {
		t.Errorf("AddChild handed out %d children, but the list has %d", len(seen), count)
	}
}
