package crypto

import "runtime"

// Wipe zeroes b in place. Copies made elsewhere, such as string
// conversions of the same bytes, are not reached.
//
//go:noinline
func Wipe(b []byte) {
	clear(b)
	runtime.KeepAlive(b)
}
