// Package debug gates internal invariant checks. Violations of the
// arithmetic contracts (an out-of-range limb array reaching a
// canonical-only routine, mismatched batch lengths) are programming errors,
// not runtime conditions: Assert panics in debug builds and compiles to
// nothing otherwise.
package debug

// Assert panics with msg if the condition does not hold, debug builds only.
func Assert(condition bool, msg string) {
	if Debug && !condition {
		panic("assertion failed: " + msg)
	}
}
