// Package cmac implements the AES-CMAC message authentication code as
// specified in RFC 4493 and NIST SP 800-38B.
//
// CMAC is keyed with an AES key of 16, 24, or 32 bytes and produces a 16-byte
// tag. An instance is stateless between calls to Sum, but a single instance
// is not safe for concurrent use; construct one per goroutine.
package cmac

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/subtle"

	"github.com/codahale/siv/hazmat/gf128"
)

const (
	// BlockSize is the CMAC block size in bytes.
	BlockSize = aes.BlockSize

	// TagSize is the size of a CMAC tag in bytes.
	TagSize = aes.BlockSize
)

// CMAC is an AES-CMAC instance with precomputed subkeys.
type CMAC struct {
	b      cipher.Block
	k1, k2 []byte
}

// New returns a CMAC instance keyed with the given AES key. The key must be
// 16, 24, or 32 bytes.
func New(key []byte) (*CMAC, error) {
	b, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	// L = AES(K, 0^128); K1 = dbl(L); K2 = dbl(K1).
	l := make([]byte, BlockSize)
	b.Encrypt(l, l)
	k1 := gf128.Double(l)
	k2 := gf128.Double(k1)

	return &CMAC{b: b, k1: k1, k2: k2}, nil
}

// Sum returns the CMAC tag of message. The empty message is valid and
// produces a well-defined tag.
func (c *CMAC) Sum(message []byte) []byte {
	// All blocks but the last are folded into the chaining state.
	state := make([]byte, BlockSize)
	blocks := (len(message) + BlockSize - 1) / BlockSize
	if blocks == 0 {
		blocks = 1
	}
	for i := range blocks - 1 {
		subtle.XORBytes(state, state, message[i*BlockSize:(i+1)*BlockSize])
		c.b.Encrypt(state, state)
	}

	// The final block is masked with K1 if complete, padded with 10* and
	// masked with K2 if not.
	rem := message[(blocks-1)*BlockSize:]
	last := make([]byte, BlockSize)
	copy(last, rem)
	if len(rem) == BlockSize {
		subtle.XORBytes(last, last, c.k1)
	} else {
		last[len(rem)] = 0x80
		subtle.XORBytes(last, last, c.k2)
	}

	tag := make([]byte, TagSize)
	subtle.XORBytes(tag, last, state)
	c.b.Encrypt(tag, tag)
	return tag
}
