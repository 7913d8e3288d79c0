package mcts

import (
	"context"
	"math"
	"sync/atomic"
	"unsafe"
)

// StopReason records why a search ended, as a bitmask since more than one
// limit can trip on the same check.
type StopReason int

const (
	StopNone      StopReason = iota
	StopInterrupt StopReason = 1  // Stopped by user, by calling SetStop(true) or context cancellation
	StopMovetime  StopReason = 2  // Time limit reached
	StopMemory    StopReason = 4  // Node pool exhausted
	StopCycles    StopReason = 16 // Iteration limit reached
)

func (sr StopReason) String() string {
	if sr == StopNone {
		return "None"
	}

	reasons := []struct {
		flag StopReason
		name string
	}{
		{StopInterrupt, "Interrupt"},
		{StopMovetime, "Movetime"},
		{StopMemory, "Memory"},
		{StopCycles, "Cycles"},
	}

	var result string
	for _, r := range reasons {
		if sr&r.flag == r.flag {
			if result != "" {
				result += "|"
			}
			result += r.name
		}
	}

	return result
}

const (
	stopMask   int = int(StopInterrupt)
	timeMask   int = int(StopMovetime)
	memoryMask int = int(StopMemory)
	cyclesMask int = int(StopCycles)
)

// Limiter tracks a single search's stopping conditions across every
// worker goroutine: a deadline timer, a pool-size ceiling, and an
// iteration ceiling, plus an externally-settable stop flag and context.
type Limiter struct {
	limits     *Limits
	Timer      *_Timer
	nodeSize   uint32
	maxSize    uint32
	expand     atomic.Bool
	stop       atomic.Bool
	areSetMask int
	reason     StopReason
	ctx        context.Context
}

func NewLimiter(nodesize uint32) *Limiter {
	limiter := &Limiter{
		limits:   DefaultLimits(),
		Timer:    _NewTimer(),
		nodeSize: nodesize,
		ctx:      context.Background(),
	}

	limiter.expand.Store(true)
	return limiter
}

func (l *Limiter) Reset() {
	l.Timer.Movetime(l.limits.Movetime)
	l.Timer.Reset()
	l.stop.Store(false)
	l.expand.Store(true)
	l.reason = StopNone

	if l.limits.ByteSize != DefaultByteSizeLimit {
		l.maxSize = uint32(l.limits.ByteSize) / l.nodeSize
	} else {
		l.maxSize = math.MaxUint32
	}

	l.areSetMask = toMask(l.Timer.IsSet(), 1) |
		toMask(l.limits.ByteSize != DefaultByteSizeLimit, 2) |
		toMask(l.limits.Cycles != DefaultCyclesLimit, 4)
}

func (l *Limiter) EvaluateStopReason(size, cycles uint32) {
	okMask := l.OkMask(size, cycles)
	reason := StopNone

	if okMask&stopMask == stopMask {
		reason |= StopInterrupt
	}
	if okMask&timeMask == timeMask {
		reason |= StopMovetime
	}
	if okMask&memoryMask == memoryMask {
		reason |= StopMemory
	}
	if okMask&cyclesMask == cyclesMask {
		reason |= StopCycles
	}

	l.reason = reason
}

func (l *Limiter) StopReason() StopReason {
	return l.reason
}

func (l *Limiter) SetContext(ctx context.Context) {
	l.ctx = ctx
}

func (l *Limiter) SetStop(v bool) {
	l.stop.Store(v)
}

func (l *Limiter) Stop() bool {
	select {
	case <-l.ctx.Done():
		l.stop.Store(true)
	default:
	}
	return l.stop.Load()
}

func (l *Limiter) SetLimits(limits *Limits) {
	l.limits = limits
}

func (l *Limiter) Limits() *Limits {
	return l.limits
}

func (l *Limiter) Elapsed() uint32 {
	return uint32(l.Timer.Deltatime())
}

func (l *Limiter) Expand() bool {
	return l.expand.Load()
}

func toMask(val bool, offset int) int {
	return int(*(*byte)(unsafe.Pointer(&val))) << offset
}

func (l *Limiter) LimitMask(size, cycles uint32) int {
	stop := l.Stop()
	if l.limits.Infinite {
		return toMask(stop, 0)
	}

	limitMask := 0
	limitMask |= toMask(stop, 0)
	limitMask |= toMask(l.Timer.IsEnd(), 1)
	limitMask |= toMask(l.maxSize <= size, 2)
	limitMask |= toMask(l.limits.Cycles <= cycles, 4)

	return limitMask
}

func (l *Limiter) OkMask(size, cycles uint32) int {
	limitMask := l.LimitMask(size, cycles)

	// Memory exhaustion alone shouldn't stop a search that also has a
	// time or cycle budget — just freeze tree growth and let the other
	// limit end it.
	if (l.areSetMask&memoryMask) == memoryMask && (l.areSetMask&(timeMask|cyclesMask)) != 0 {
		if limitMask&memoryMask == memoryMask {
			l.expand.Store(false)
			limitMask ^= memoryMask
		}
	}

	return limitMask
}

func (l *Limiter) Ok(size, cycles uint32) bool {
	return l.OkMask(size, cycles) == 0
}
