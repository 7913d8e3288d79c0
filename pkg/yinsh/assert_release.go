//go:build !debug

package yinsh

// assertf is a no-op outside -tags debug builds, so invariant checks carry
// no cost in a release binary.
func assertf(cond bool, format string, args ...any) {}
