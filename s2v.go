package siv

import (
	"crypto/subtle"

	"github.com/codahale/siv/hazmat/cmac"
	"github.com/codahale/siv/hazmat/gf128"
)

// s2v implements the S2V pseudo-random function from RFC 5297 §2.4. terminal
// is the final string S_n (the plaintext); prior holds S_1..S_n-1 in order.
// Both the empty terminal string and an empty prior sequence are well defined.
func s2v(mac *cmac.CMAC, terminal []byte, prior AssociatedData) []byte {
	d := mac.Sum(make([]byte, cmac.BlockSize))

	for _, s := range prior {
		d = xor(gf128.Double(d), mac.Sum(s))
	}

	var t []byte
	if len(terminal) >= cmac.BlockSize {
		t = xorend(terminal, d)
	} else {
		t = xor(gf128.Double(d), pad(terminal))
	}
	return mac.Sum(t)
}

// pad fills s out to one block by appending a single 0x80 byte and zeros
// (RFC 5297 §2.1). s must be shorter than a block.
func pad(s []byte) []byte {
	if len(s) >= cmac.BlockSize {
		panic("siv: pad input must be shorter than one block")
	}
	p := make([]byte, cmac.BlockSize)
	copy(p, s)
	p[len(s)] = 0x80
	return p
}

// xor returns a XOR b truncated to len(a). len(a) must not exceed len(b).
func xor(a, b []byte) []byte {
	if len(a) > len(b) {
		panic("siv: xor requires len(a) <= len(b)")
	}
	out := make([]byte, len(a))
	subtle.XORBytes(out, a, b[:len(a)])
	return out
}

// xorend returns a copy of a with b XORed into its rightmost len(b) bytes,
// leaving the left prefix untouched. len(a) must be at least len(b).
func xorend(a, b []byte) []byte {
	if len(a) < len(b) {
		panic("siv: xorend requires len(a) >= len(b)")
	}
	out := make([]byte, len(a))
	n := copy(out, a[:len(a)-len(b)])
	subtle.XORBytes(out[n:], a[n:], b)
	return out
}
