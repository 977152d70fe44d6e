//go:build !raptor_debug

package raptor

// debugAssert is compiled out in release builds. Build with
// -tags raptor_debug to turn it into a panic during development, per
// "diagnostic assertions are active in debug builds and replaced by
// release-mode checks" (§7).
func debugAssert(cond bool, msg string) {}
