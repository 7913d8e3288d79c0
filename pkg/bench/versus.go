// Package bench pits two engine search budgets against each other over a
// series of games and tallies the result, the way a bot author checks
// whether a change actually makes the engine stronger before trusting it.
package bench

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/temhelk/yngine-go/pkg/mcts"
	"github.com/temhelk/yngine-go/pkg/yinsh"
)

// MatchResult is the outcome of one game from player 1's perspective.
type MatchResult int

const (
	Player1Win MatchResult = 1
	Player2Win MatchResult = -1
	MatchDraw  MatchResult = 0
)

// Stats accumulates results across every game of a Versus run.
type Stats struct {
	player1Wins uint32
	player2Wins uint32
	draws       uint32
}

func (s *Stats) Player1Wins() int { return int(atomic.LoadUint32(&s.player1Wins)) }
func (s *Stats) Player2Wins() int { return int(atomic.LoadUint32(&s.player2Wins)) }
func (s *Stats) Draws() int       { return int(atomic.LoadUint32(&s.draws)) }
func (s *Stats) Total() int       { return s.Player1Wins() + s.Player2Wins() + s.Draws() }

// WorkerReport describes one worker's progress, delivered to a Listener
// after each finished game.
type WorkerReport struct {
	WorkerID      int
	FinishedGames int
	Stats         Stats
}

// Listener observes a Versus run's progress. OnGameFinished is called from
// the worker goroutine that finished the game; OnRunFinished is called once,
// from Run's own goroutine, after every worker has returned.
type Listener interface {
	OnGameFinished(WorkerReport)
	OnRunFinished(Stats)
}

// NopListener discards every event.
type NopListener struct{}

func (NopListener) OnGameFinished(WorkerReport) {}
func (NopListener) OnRunFinished(Stats)         {}

// Config configures a Versus run: two independent search budgets (e.g.
// comparing a larger node pool or a longer movetime against a baseline),
// played from the standard starting position, alternating who moves
// first each game.
type Config struct {
	Games           int
	Workers         int
	Player1Limits   *mcts.Limits
	Player2Limits   *mcts.Limits
	MemoryPerEngine uint64
	Listener        Listener
}

// Run plays Games games split evenly across Workers goroutines, each
// worker owning its own pair of engines so no state is shared between
// games in flight. Returns the accumulated Stats; ctx cancellation stops
// after the game in progress on each worker finishes.
func Run(ctx context.Context, cfg Config) *Stats {
	if cfg.Listener == nil {
		cfg.Listener = NopListener{}
	}
	workers := max(1, cfg.Workers)

	stats := &Stats{}
	var wg sync.WaitGroup

	gamesPerWorker := cfg.Games / workers
	extra := cfg.Games % workers

	for w := 0; w < workers; w++ {
		n := gamesPerWorker
		if w < extra {
			n++
		}
		wg.Add(1)
		go func(workerID, nGames int) {
			defer wg.Done()
			runWorker(ctx, cfg, workerID, nGames, stats)
		}(w, n)
	}

	wg.Wait()
	cfg.Listener.OnRunFinished(*stats)
	return stats
}

func runWorker(ctx context.Context, cfg Config, workerID, nGames int, stats *Stats) {
	engine1 := mcts.NewEngine(cfg.MemoryPerEngine)
	engine2 := mcts.NewEngine(cfg.MemoryPerEngine)

	finished := 0
	for i := 0; i < nGames; i++ {
		select {
		case <-ctx.Done():
			return
		default:
		}

		// Alternate who moves first so neither side keeps a first-move
		// advantage across the whole run.
		player1First := (workerID+i)%2 == 0
		result := playGame(engine1, engine2, cfg.Player1Limits, cfg.Player2Limits, player1First)

		switch result {
		case MatchDraw:
			atomic.AddUint32(&stats.draws, 1)
		case Player1Win:
			atomic.AddUint32(&stats.player1Wins, 1)
		case Player2Win:
			atomic.AddUint32(&stats.player2Wins, 1)
		}

		finished++
		cfg.Listener.OnGameFinished(WorkerReport{WorkerID: workerID, FinishedGames: finished, Stats: *stats})
	}
}

// decidingColor reports which color owns the next action: the player
// removing a row or a ring keeps the seat for every sub-action of that
// turn, even though LastRingMoveColor (and so ColorToMove) doesn't change
// until the ring-movement phase resumes.
func decidingColor(board yinsh.BoardState) yinsh.Color {
	switch board.NextAction {
	case yinsh.ActionRowRemoval, yinsh.ActionRingRemoval:
		return board.RowRemovalColor
	default:
		return board.ColorToMove()
	}
}

// playGame plays one game to completion. player1First decides which
// player places first (and so plays White, per the standard Yinsh
// opening); it alternates across a run so neither engine always gets the
// first-move seat. Each action within a turn is searched by the engine
// that owns the color actually deciding it, not by strict alternation:
// a row or ring removal belongs to the same player as the ring move that
// triggered it.
func playGame(engine1, engine2 *mcts.Engine, limits1, limits2 *mcts.Limits, player1First bool) MatchResult {
	engine1.SetBoard(yinsh.New())
	engine2.SetBoard(yinsh.New())

	white, black := engine1, engine2
	whiteLimits, blackLimits := limits1, limits2
	if !player1First {
		white, black = engine2, engine1
		whiteLimits, blackLimits = limits2, limits1
	}

	board := white.Board()
	for board.NextAction != yinsh.ActionDone {
		toMove, toMoveLimits := white, whiteLimits
		if decidingColor(board) == yinsh.Black {
			toMove, toMoveLimits = black, blackLimits
		}

		move := toMove.Search(toMoveLimits)
		white.ApplyMove(move)
		black.ApplyMove(move)
		board = white.Board()
	}

	switch board.GameResult() {
	case yinsh.Draw:
		return MatchDraw
	case yinsh.WhiteWon:
		if player1First {
			return Player1Win
		}
		return Player2Win
	default: // BlackWon
		if player1First {
			return Player2Win
		}
		return Player1Win
	}
}
