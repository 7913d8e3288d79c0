package mcts

import (
	"math"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/temhelk/yngine-go/pkg/alloc"
	"github.com/temhelk/yngine-go/pkg/yinsh"
)

// nodeByteSize is used to translate a byte budget into a ceiling on the
// number of tree nodes created, when a memory limit is set.
const nodeByteSize = 64

// Engine owns one search tree and the board position it's rooted at.
// Safe for one search at a time; ApplyMove and SetBoard must not race a
// running search.
type Engine struct {
	board yinsh.BoardState
	pool  *alloc.Pool[Node]
	root  *Node

	limiter *Limiter
	wg      sync.WaitGroup

	size   atomic.Uint32
	cycles atomic.Uint32

	seed    int64
	seeded  bool
	logger  zerolog.Logger
}

// NewEngine allocates a node pool of memoryLimitBytes and returns an
// engine positioned at the standard Yinsh starting position.
func NewEngine(memoryLimitBytes uint64) *Engine {
	return &Engine{
		board:   yinsh.New(),
		pool:    alloc.NewPool[Node](memoryLimitBytes),
		limiter: NewLimiter(nodeByteSize),
		logger:  log.Logger.With().Str("component", "mcts").Logger(),
	}
}

// SetBoard discards the current tree and repositions the engine, as if a
// brand new game had started from board.
func (e *Engine) SetBoard(board yinsh.BoardState) {
	e.board = board
	e.root = nil
	e.pool.Clear()
}

// Board returns the engine's current position.
func (e *Engine) Board() yinsh.BoardState {
	return e.board
}

// Reseed pins the base seed handed to every search worker's RNG, instead
// of deriving it from the current time. Intended for reproducible test
// runs; a zero call (never invoked) keeps the default time-based seeding.
func (e *Engine) Reseed(seed int64) {
	e.seed = seed
	e.seeded = true
}

// ApplyMove advances the board and, if a tree exists, reroots it at the
// child matching move — every sibling subtree is freed back to the pool.
// If no child of the current root matches (the tree was never expanded
// that far), the whole tree is discarded and the next search starts cold.
func (e *Engine) ApplyMove(move yinsh.Move) {
	e.board.ApplyMove(move)

	if e.root == nil {
		return
	}

	var newRoot *Node
	child := e.root.FirstChild
	for child != nil {
		next := child.NextSibling
		if child.ParentMove.Equal(move) {
			newRoot = child
		} else {
			e.freeSubtree(child)
		}
		child = next
	}

	if newRoot != nil {
		newRoot.NextSibling = nil
		newRoot.Parent = nil
	}
	e.root = newRoot
}

func (e *Engine) freeSubtree(node *Node) {
	child := node.FirstChild
	for child != nil {
		next := child.NextSibling
		e.freeSubtree(child)
		child = next
	}
	e.pool.Free(node)
}

// Search runs a blocking search under limits and returns the most-visited
// root child's move. If the current position has exactly one legal move,
// it's returned immediately without touching the tree.
func (e *Engine) Search(limits *Limits) yinsh.Move {
	var rootMoves yinsh.MoveList
	e.board.GenerateMoves(&rootMoves)
	if rootMoves.Len() == 1 {
		return rootMoves.Get(0)
	}

	if e.root == nil {
		e.root = newNode(e.pool, yinsh.Pass(), nil, e.board.ColorToMove().Opposite())
		if e.root == nil {
			panic("mcts: failed to allocate root node, pool exhausted")
		}
	}

	e.limiter.SetLimits(limits)
	e.limiter.Reset()
	e.size.Store(0)
	e.cycles.Store(0)

	threads := max(1, limits.NThreads)
	e.wg.Add(threads)
	for workerID := 0; workerID < threads; workerID++ {
		go e.searchWorker(workerID)
	}
	e.wg.Wait()
	e.limiter.EvaluateStopReason(e.size.Load(), e.cycles.Load())

	best := bestChild(e.root)
	halfWins, simulations := best.HalfWinsAndSimulations()
	_, rootSimulations := e.root.HalfWinsAndSimulations()

	e.logger.Debug().
		Str("move", best.ParentMove.String()).
		Float64("win_rate", float64(halfWins)/2/float64(simulations)).
		Float64("confidence", float64(simulations)/float64(rootSimulations)).
		Uint32("iterations", rootSimulations).
		Uint64("pool_used_bytes", e.pool.UsedBytes()).
		Str("stop_reason", e.limiter.StopReason().String()).
		Msg("engine.search.done")

	return best.ParentMove
}

// bestChild returns the root child with the most simulations, the same
// selection rule the original engine reports its move with.
func bestChild(root *Node) *Node {
	var most *Node
	var mostSimulations uint32

	for child := root.FirstChild; child != nil; child = child.NextSibling {
		_, simulations := child.HalfWinsAndSimulations()
		if most == nil || simulations > mostSimulations {
			most = child
			mostSimulations = simulations
		}
	}

	return most
}

func (e *Engine) searchWorker(workerID int) {
	defer e.wg.Done()

	base := e.seed
	if !e.seeded {
		base = SeedGeneratorFn()
	}
	rng := yinsh.NewMT19937(uint32(base + int64(workerID)))

	for e.limiter.Ok(e.size.Load(), e.cycles.Load()) {
		node, board := selectNode(e.root, e.board)
		node = expandNode(node, &board, e.pool, rng, &e.size)

		playoutBoard := board
		playoutBoard.Playout(rng)
		result := playoutBoard.GameResult()

		backup(node, result)
		e.cycles.Add(1)
	}
}

// selectNode walks down the tree from root via UCT while every node on
// the path is fully expanded, replaying the chosen moves on a local copy
// of the board so the caller never mutates the shared root position.
func selectNode(root *Node, rootBoard yinsh.BoardState) (*Node, yinsh.BoardState) {
	current := root
	board := rootBoard

	for current.IsFullyExpanded() {
		_, parentSimulations := current.HalfWinsAndSimulations()

		best := current.FirstChild
		bestUCT := best.ComputeUCT(parentSimulations)

		for child := best.NextSibling; child != nil; child = child.NextSibling {
			if math.IsInf(bestUCT, 1) {
				break
			}

			uct := child.ComputeUCT(parentSimulations)
			if uct > bestUCT {
				bestUCT = uct
				best = child
			}
		}

		current = best
		board.ApplyMove(current.ParentMove)
	}

	return current, board
}

// expandNode materializes node's children (idempotently, across every
// concurrent caller) and hands back one of them to simulate from, unless
// the game is already decided at this node.
func expandNode(node *Node, board *yinsh.BoardState, pool *alloc.Pool[Node], rng yinsh.RNG, size *atomic.Uint32) *Node {
	if board.NextAction == yinsh.ActionDone {
		return node
	}

	created := node.CreateChildren(pool, board, rng)
	if created > 0 {
		size.Add(uint32(created))
	}

	return node.AddChild()
}

// backup walks from node to the root, crediting each ancestor with one
// simulation plus one half-win for a draw, or two half-wins when the
// playout's winner matches that ancestor's color. The root itself only
// gets its simulation count incremented; it has no color to score a win
// against.
func backup(node *Node, result yinsh.Result) {
	current := node
	for current.Parent != nil {
		var halfWins uint32
		switch {
		case result == yinsh.Draw:
			halfWins = 1
		case result == yinsh.WhiteWon && current.Color == yinsh.White:
			halfWins = 2
		case result == yinsh.BlackWon && current.Color == yinsh.Black:
			halfWins = 2
		}

		current.AddHalfWinsAndSimulations(halfWins, 1)
		current = current.Parent
	}

	current.AddHalfWinsAndSimulations(0, 1)
}
