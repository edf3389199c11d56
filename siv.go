// Package siv implements the AES-SIV deterministic authenticated encryption
// mode specified in RFC 5297.
//
// AES-SIV binds a payload and an ordered sequence of associated-data strings
// into a single ciphertext using two keys: a MAC key for the S2V pseudo-random
// function and an AES key for counter-mode encryption. The 16-byte synthetic
// IV derived by S2V doubles as the authentication tag and the counter-mode
// seed, so no external nonce is required. Encrypting the same inputs twice
// yields the same ciphertext; this is the deterministic-AEAD tradeoff, leaking
// equality of whole messages and nothing else. To get conventional
// nonce-based AEAD, pass a random nonce as the final associated-data string.
package siv

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/subtle"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/codahale/siv/hazmat/cmac"
	"github.com/codahale/siv/internal/memwipe"
)

const (
	// IVSize is the length of the synthetic IV that prefixes every ciphertext.
	IVSize = 16

	// Overhead is the number of bytes Encrypt adds to a plaintext.
	Overhead = IVSize
)

var (
	// ErrInvalidKeyLength is returned when a key is not 16, 24, or 32 bytes.
	ErrInvalidKeyLength = errors.New("siv: invalid key length")

	// ErrCiphertextTooShort is returned by Decrypt when the ciphertext cannot
	// contain a synthetic IV.
	ErrCiphertextTooShort = errors.New("siv: ciphertext shorter than one IV")

	// ErrAuthenticationFailed is returned by Decrypt when the synthetic IV
	// does not match the decrypted payload and associated data. No plaintext
	// is returned alongside it.
	ErrAuthenticationFailed = errors.New("siv: authentication failed")
)

// AssociatedData is an ordered sequence of byte strings authenticated along
// with the payload but not encrypted. Order is part of the security contract:
// the same strings in a different order produce a different synthetic IV, and
// decryption fails unless the order matches the encrypting call exactly.
type AssociatedData [][]byte

// newCipher constructs the AES block cipher used for the counter-mode
// keystream. It is a variable so the tests can observe that invalid keys are
// rejected before any block cipher is constructed.
var newCipher = aes.NewCipher

// Encrypt deterministically encrypts and authenticates plaintext and the
// associated-data strings, returning the synthetic IV followed by the
// encrypted payload. The result is exactly Overhead bytes longer than the
// plaintext. A nil or empty plaintext and a nil associated-data sequence are
// both valid.
//
// aesKey must be 16, 24, or 32 bytes and is used only in the forward (encrypt)
// direction; macKey keys S2V's CMAC and is bound to the same lengths by the
// CMAC primitive. Returns ErrInvalidKeyLength before any cryptographic
// operation if either key is rejected.
func Encrypt(aesKey, macKey, plaintext []byte, ad AssociatedData) ([]byte, error) {
	if !validKeyLength(aesKey) {
		return nil, fmt.Errorf("%w: AES key is %d bytes", ErrInvalidKeyLength, len(aesKey))
	}
	mac, err := cmac.New(macKey)
	if err != nil {
		return nil, fmt.Errorf("%w: MAC key is %d bytes", ErrInvalidKeyLength, len(macKey))
	}

	iv := s2v(mac, plaintext, ad)

	b, err := newCipher(aesKey)
	if err != nil {
		return nil, fmt.Errorf("siv: %w", err)
	}

	out := make([]byte, IVSize+len(plaintext))
	copy(out, iv)
	ctrXOR(b, iv, out[IVSize:], plaintext)
	return out, nil
}

// Decrypt authenticates and decrypts a ciphertext produced by Encrypt. The
// associated-data strings must match the encrypting call in content and
// order. On any authentication failure the candidate plaintext is wiped and
// ErrAuthenticationFailed is returned; unauthenticated plaintext is never
// surfaced.
func Decrypt(aesKey, macKey, ciphertext []byte, ad AssociatedData) ([]byte, error) {
	if len(ciphertext) < IVSize {
		return nil, ErrCiphertextTooShort
	}
	if !validKeyLength(aesKey) {
		return nil, fmt.Errorf("%w: AES key is %d bytes", ErrInvalidKeyLength, len(aesKey))
	}
	mac, err := cmac.New(macKey)
	if err != nil {
		return nil, fmt.Errorf("%w: MAC key is %d bytes", ErrInvalidKeyLength, len(macKey))
	}

	iv, payload := ciphertext[:IVSize], ciphertext[IVSize:]

	b, err := newCipher(aesKey)
	if err != nil {
		return nil, fmt.Errorf("siv: %w", err)
	}

	plaintext := make([]byte, len(payload))
	ctrXOR(b, iv, plaintext, payload)

	control := s2v(mac, plaintext, ad)
	if subtle.ConstantTimeCompare(control, iv) != 1 {
		memwipe.Wipe(plaintext)
		return nil, ErrAuthenticationFailed
	}
	return plaintext, nil
}

// ctrXOR XORs src into dst under the AES-CTR keystream seeded by the
// synthetic IV. The counter block is the IV with the most significant bit of
// bytes 8 and 12 cleared; bytes [8,16) then form a 64-bit big-endian counter.
// Clearing those bits keeps carries from crossing the two 32-bit halves, so
// implementations using 32-bit and 64-bit counter arithmetic produce the same
// keystream (RFC 5297 §2.5) - an interoperability requirement, not a security
// one.
func ctrXOR(b cipher.Block, iv, dst, src []byte) {
	var ctr [aes.BlockSize]byte
	copy(ctr[:], iv)
	ctr[8] &= 0x7f
	ctr[12] &= 0x7f
	c0 := binary.BigEndian.Uint64(ctr[8:])

	var ks [aes.BlockSize]byte
	for i := uint64(0); len(src) > 0; i++ {
		binary.BigEndian.PutUint64(ctr[8:], c0+i)
		b.Encrypt(ks[:], ctr[:])
		n := subtle.XORBytes(dst, src, ks[:])
		dst, src = dst[n:], src[n:]
	}
}

func validKeyLength(key []byte) bool {
	switch len(key) {
	case 16, 24, 32:
		return true
	}
	return false
}
