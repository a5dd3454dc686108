//go:build !debug

package debug

// Debug is false in release builds; build with -tags=debug to enable
// assertions.
const Debug = false
