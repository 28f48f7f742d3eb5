package crypto

import "runtime"

// Wipe zeroes b in place. It is best-effort: the runtime may already have
// copied the bytes elsewhere.
//
//go:noinline
func Wipe(b []byte) {
	clear(b)
	runtime.KeepAlive(b)
}
