// Package memwipe provides best-effort zeroization of sensitive buffers.
package memwipe

import "runtime"

// Wipe overwrites b with zeros. Marked noinline so the compiler cannot prove
// the buffer dead afterward and elide the stores.
//
//go:noinline
func Wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
	runtime.KeepAlive(&b)
}
