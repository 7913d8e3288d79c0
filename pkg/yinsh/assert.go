//go:build debug

package yinsh

import "fmt"

// assertf panics with a formatted message when cond is false. Used for
// invariants that a correct caller can never trip (illegal moves, a
// corrupted board) - the same direct panic-on-violation style the rest of
// this module's call sites use for caller-contract violations. Compiled in
// only under -tags debug, mirroring the original engine's #ifdef DEBUG.
func assertf(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Sprintf(format, args...))
	}
}
