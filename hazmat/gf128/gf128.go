// Package gf128 implements doubling (multiplication by x) in GF(2^128), the
// finite field used by the CMAC and SIV constructions (RFC 4493, RFC 5297).
//
// Field elements are 16-byte strings, most significant byte first, reduced by
// the polynomial x^128 + x^7 + x^2 + x + 1. Doubling is a single left shift
// with a conditional XOR of the low byte 0x87; the conditional is resolved
// with bitmask arithmetic rather than a branch or table lookup, so the
// operation runs in constant time even when the element is secret.
package gf128

// BlockSize is the size of a field element in bytes.
const BlockSize = 16

// poly is the low byte of the reducing polynomial.
const poly = 0x87

// Double returns block multiplied by x in GF(2^128). The input is not
// modified. Panics if block is not BlockSize bytes.
func Double(block []byte) []byte {
	if len(block) != BlockSize {
		panic("gf128: block must be 16 bytes")
	}

	out := make([]byte, BlockSize)
	carry := block[0] >> 7
	for i := range BlockSize - 1 {
		out[i] = block[i]<<1 | block[i+1]>>7
	}
	out[BlockSize-1] = block[BlockSize-1] << 1

	// Fold in the reduction iff the shifted-out bit was set. The mask is
	// 0xFF or 0x00 depending on the carry, with no data-dependent branch.
	out[BlockSize-1] ^= poly & byte(0-carry)

	return out
}
