package mcts

import "time"

// mainThreadId is the index of the first search worker. No code path treats
// it specially: Search itself evaluates the stop reason and reports the
// result once every worker has joined.
const mainThreadId = 0

// SeedGeneratorFnType produces a fresh seed for a search worker's RNG.
type SeedGeneratorFnType func() int64

var SeedGeneratorFn SeedGeneratorFnType = func() int64 {
	return time.Now().UnixNano()
}

// SetSeedGeneratorFn overrides how worker goroutines seed their random
// number generator; tests use this to get reproducible playouts.
func SetSeedGeneratorFn(f SeedGeneratorFnType) {
	if f != nil {
		SeedGeneratorFn = f
	}
}
