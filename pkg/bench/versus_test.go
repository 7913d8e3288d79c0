package bench

import (
	"context"
	"testing"

	"github.com/temhelk/yngine-go/pkg/mcts"
)

func TestRunTalliesEveryGame(t *testing.T) {
	cfg := Config{
		Games:           6,
		Workers:         2,
		Player1Limits:   mcts.DefaultLimits().SetCycles(20),
		Player2Limits:   mcts.DefaultLimits().SetCycles(20),
		MemoryPerEngine: 1 << 21,
	}

	stats := Run(context.Background(), cfg)
	if stats.Total() != cfg.Games {
		t.Errorf("Stats.Total() = %d, want %d", stats.Total(), cfg.Games)
	}
}

func TestRunRespectsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := Config{
		Games:           10,
		Workers:         2,
		Player1Limits:   mcts.DefaultLimits().SetCycles(20),
		Player2Limits:   mcts.DefaultLimits().SetCycles(20),
		MemoryPerEngine: 1 << 21,
	}

	stats := Run(ctx, cfg)
	if stats.Total() >= cfg.Games {
		t.Errorf("expected cancellation to cut the run short, got Total()=%d of %d", stats.Total(), cfg.Games)
	}
}
