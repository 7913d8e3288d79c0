package mcts

import (
	"encoding/json"
	"math"
	"strings"
)

// Limits bounds a single search: any combination of a time budget, an
// iteration (cycle) budget, and a memory budget for the node pool can be
// active at once. The first time or cycle limit hit stops the search; a
// memory limit stops it only when no time or cycle limit is set, otherwise
// reaching it just clears the Limiter's Expand flag.
type Limits struct {
	Cycles   uint32
	Movetime int
	Infinite bool
	NThreads int
	ByteSize int64
}

func (l Limits) String() string {
	builder := strings.Builder{}
	_ = json.NewEncoder(&builder).Encode(l)
	return builder.String()
}

const (
	DefaultMovetimeLimit int    = -1
	DefaultByteSizeLimit int64  = -1
	DefaultCyclesLimit   uint32 = math.MaxInt32*2 + 1
)

func DefaultLimits() *Limits {
	return &Limits{
		Cycles:   DefaultCyclesLimit,
		Movetime: DefaultMovetimeLimit,
		Infinite: true,
		NThreads: 1,
		ByteSize: DefaultByteSizeLimit,
	}
}

// SetCycles bounds the search to at most visits total MCTS iterations —
// the "int" arm of the original engine's search-limit variant.
func (l *Limits) SetCycles(visits uint32) *Limits {
	l.Cycles = visits
	l.Infinite = false
	return l
}

// SetMovetime bounds the search to movetime milliseconds — the "float
// seconds" arm of the original engine's search-limit variant.
func (l *Limits) SetMovetime(movetime int) *Limits {
	l.Movetime = movetime
	l.Infinite = false
	return l
}

func (l *Limits) SetInfinite(infinite bool) {
	l.Infinite = infinite
}

func (l *Limits) SetThreads(threads int) *Limits {
	l.NThreads = max(threads, 1)
	return l
}

func (l *Limits) SetMbSize(mbsize int) *Limits {
	return l.SetByteSize(int64(mbsize) * (1 << 20))
}

func (l *Limits) SetByteSize(bytesize int64) *Limits {
	l.ByteSize = bytesize
	l.Infinite = false
	return l
}

func (l *Limits) InfiniteSize() bool {
	return l.ByteSize == -1
}
