package bench

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// TermListener prints a single, continuously-rewritten progress line and
// a colored final summary to out.
type TermListener struct {
	out        io.Writer
	totalGames int
	profile    termenv.Profile
}

// NewTermListener returns a listener targeting out (typically os.Stdout),
// expecting totalGames games in the run.
func NewTermListener(out io.Writer, totalGames int) *TermListener {
	return &TermListener{out: out, totalGames: totalGames, profile: termenv.ColorProfile()}
}

func (l *TermListener) OnGameFinished(report WorkerReport) {
	fmt.Fprintf(l.out, "\r%s %d/%d games — p1 %d, p2 %d, draws %d",
		l.profile.String("versus").Foreground(l.profile.Color("#5FAFFF")),
		report.Stats.Total(), l.totalGames,
		report.Stats.Player1Wins(), report.Stats.Player2Wins(), report.Stats.Draws())
}

func (l *TermListener) OnRunFinished(stats Stats) {
	fmt.Fprintf(l.out, "\n%s p1=%d p2=%d draws=%d (of %d)\n",
		l.profile.String("done").Foreground(l.profile.Color("#5FFF87")),
		stats.Player1Wins(), stats.Player2Wins(), stats.Draws(), stats.Total())
}
