package siv

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/codahale/siv/internal/memwipe"
)

// ErrKeyExtraction is returned when an opaque key handle cannot produce raw
// key bytes. It is detected before any cryptographic operation.
var ErrKeyExtraction = errors.New("siv: cannot extract key bytes")

// Key is an opaque handle to symmetric key material, mirroring key objects
// held by external keystores. ExtractBytes returns a transient copy of the
// raw key; the Keyed functions wipe that copy on every exit path and never
// mutate the handle itself.
type Key interface {
	ExtractBytes() ([]byte, error)
}

// RawKey adapts an in-memory byte slice to the Key interface. ExtractBytes
// returns a copy, so wiping the transient buffer never touches the original
// slice.
type RawKey []byte

// ExtractBytes returns a copy of the key material. A nil RawKey is an
// extraction failure, not an empty key.
func (k RawKey) ExtractBytes() ([]byte, error) {
	if k == nil {
		return nil, errors.New("no key material")
	}
	return bytes.Clone(k), nil
}

// EncryptKeyed is Encrypt for keys held behind opaque handles. Both keys are
// extracted into transient buffers which are zero-filled before the function
// returns, whether it succeeds or fails.
func EncryptKeyed(aesKey, macKey Key, plaintext []byte, ad AssociatedData) ([]byte, error) {
	ak, mk, err := extractKeys(aesKey, macKey)
	if err != nil {
		return nil, err
	}
	defer memwipe.Wipe(ak)
	defer memwipe.Wipe(mk)
	return Encrypt(ak, mk, plaintext, ad)
}

// DecryptKeyed is Decrypt for keys held behind opaque handles, with the same
// guarantees as EncryptKeyed.
func DecryptKeyed(aesKey, macKey Key, ciphertext []byte, ad AssociatedData) ([]byte, error) {
	ak, mk, err := extractKeys(aesKey, macKey)
	if err != nil {
		return nil, err
	}
	defer memwipe.Wipe(ak)
	defer memwipe.Wipe(mk)
	return Decrypt(ak, mk, ciphertext, ad)
}

func extractKeys(aesKey, macKey Key) (ak, mk []byte, err error) {
	ak, err = aesKey.ExtractBytes()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: AES key: %v", ErrKeyExtraction, err)
	}
	mk, err = macKey.ExtractBytes()
	if err != nil {
		memwipe.Wipe(ak)
		return nil, nil, fmt.Errorf("%w: MAC key: %v", ErrKeyExtraction, err)
	}
	return ak, mk, nil
}
