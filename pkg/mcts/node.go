// Package mcts implements a parallel, lock-free Monte Carlo Tree Search
// over yinsh.BoardState. Nodes carry a packed atomic win/visit counter and
// publish their child list exactly once via compare-and-swap, so multiple
// search workers can walk and grow the same tree without a mutex.
package mcts

import (
	"math"
	"sync/atomic"

	"github.com/temhelk/yngine-go/pkg/alloc"
	"github.com/temhelk/yngine-go/pkg/yinsh"
)

// ExplorationConstant is the UCT formula's c parameter. Mutable before a
// search starts; changing it mid-search produces an inconsistent tree.
var ExplorationConstant float64 = 0.5

// Node is one vertex of the search tree. BoardState is never stored here —
// workers replay moves from the root instead — so a node stays small and
// a modest memory budget holds a very large tree.
type Node struct {
	// statsWord packs (half_wins uint32 << 32 | simulations uint32): one
	// atomic add backs up both numbers together, so a reader never
	// observes a half-updated pair.
	statsWord atomic.Uint64

	isParent        atomic.Bool
	isExpandable    atomic.Bool
	isFullyExpanded atomic.Bool
	unexpandedChild atomic.Pointer[Node]

	ParentMove  yinsh.Move
	Color       yinsh.Color
	Parent      *Node
	FirstChild  *Node
	NextSibling *Node
}

// newNode carves a zeroed node from pool and fills in its identity. The
// atomic fields start zero-valued from the pool, which is exactly the
// state a brand new node needs.
func newNode(pool *alloc.Pool[Node], parentMove yinsh.Move, parent *Node, color yinsh.Color) *Node {
	n := pool.Allocate()
	if n == nil {
		return nil
	}
	n.ParentMove = parentMove
	n.Parent = parent
	n.Color = color
	return n
}

// AddHalfWinsAndSimulations folds a playout's result into this node's
// counters with a single atomic add.
func (n *Node) AddHalfWinsAndSimulations(halfWins, simulations uint32) {
	n.statsWord.Add(uint64(halfWins)<<32 | uint64(simulations))
}

// HalfWinsAndSimulations decodes the packed counter.
func (n *Node) HalfWinsAndSimulations() (halfWins, simulations uint32) {
	word := n.statsWord.Load()
	return uint32(word >> 32), uint32(word)
}

// ComputeUCT evaluates the UCT formula for this node given its parent's
// total simulation count. An unvisited child scores +Inf, guaranteeing
// every sibling is tried once before any is revisited.
func (n *Node) ComputeUCT(parentSimulations uint32) float64 {
	halfWins, simulations := n.HalfWinsAndSimulations()
	if simulations == 0 {
		return math.Inf(1)
	}

	exploitation := (float64(halfWins) / 2) / float64(simulations)
	exploration := ExplorationConstant * math.Sqrt(math.Log(float64(parentSimulations))/float64(simulations))

	return exploitation + exploration
}

// IsFullyExpanded reports whether every child of this node has been handed
// out at least once by AddChild.
func (n *Node) IsFullyExpanded() bool {
	return n.isFullyExpanded.Load()
}

// CreateChildren materializes this node's full child list from board's
// legal moves, exactly once: the first caller to flip isParent does the
// work, every later caller (from any goroutine) is a no-op. board must be
// the position this node was reached at. It reports how many children this
// call itself created, 0 for every caller that lost the race or found the
// pool exhausted, so the caller can safely count pool usage exactly once
// per node.
func (n *Node) CreateChildren(pool *alloc.Pool[Node], board *yinsh.BoardState, rng yinsh.RNG) int {
	if n.isParent.Swap(true) {
		return 0
	}

	var moves yinsh.MoveList
	board.GenerateMoves(&moves)
	shuffleMoves(&moves, rng)

	nodeColor := board.ColorToMove()

	first := newNode(pool, moves.Get(0), n, nodeColor)
	if first == nil {
		n.isParent.Store(false)
		return 0
	}

	last := first
	count := 1
	for i := 1; i < moves.Len(); i++ {
		child := newNode(pool, moves.Get(i), n, nodeColor)
		if child == nil {
			// Pool exhausted partway through: unwind what we built so the
			// tree never has a node that thinks it's a parent without a
			// full sibling chain.
			current := first
			for current != nil {
				next := current.NextSibling
				pool.Free(current)
				current = next
			}
			n.isParent.Store(false)
			return 0
		}

		last.NextSibling = child
		last = child
		count++
	}

	n.FirstChild = first
	n.unexpandedChild.Store(first)
	n.isExpandable.Store(true)
	return count
}

// AddChild hands out the next never-yet-visited child, or this node itself
// once every child has been handed out at least once.
func (n *Node) AddChild() *Node {
	if !n.isExpandable.Load() {
		return n
	}

	for {
		expected := n.unexpandedChild.Load()
		if expected == nil {
			return n
		}

		desired := expected.NextSibling
		if n.unexpandedChild.CompareAndSwap(expected, desired) {
			if expected.NextSibling == nil {
				n.isFullyExpanded.Store(true)
			}
			return expected
		}
	}
}

// shuffleMoves randomizes move order in place before the child list is
// built, so concurrent workers fan out across siblings instead of always
// expanding the same first move first.
func shuffleMoves(moves *yinsh.MoveList, rng yinsh.RNG) {
	all := moves.All()
	for i := len(all) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		all[i], all[j] = all[j], all[i]
	}
}
