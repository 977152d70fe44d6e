//go:build raptor_debug

package raptor

func debugAssert(cond bool, msg string) {
	if !cond {
		panic("raptor: assertion failed: " + msg)
	}
}
