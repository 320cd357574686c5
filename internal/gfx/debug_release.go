//go:build slrelease

package gfx

// DebugAssert is a no-op in release builds (-tags slrelease). See debug.go.
func DebugAssert(cond bool, msg string) {}
