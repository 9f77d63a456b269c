// Package digest adapts [blake3.Hasher] to [hash.Hash], for callers that
// want BLAKE3 as a drop-in replacement for a standard library hash.
package digest

import (
	"crypto/subtle"
	"hash"

	"github.com/codahale/blake3"
)

// Size is the digest length in bytes.
const Size = blake3.Size

// New returns a plain-hash-mode hash.Hash.
func New() hash.Hash {
	return blake3.New()
}

// NewKeyed returns a keyed-MAC-mode hash.Hash. key must be exactly
// [blake3.KeySize] bytes.
func NewKeyed(key *[blake3.KeySize]byte) hash.Hash {
	return blake3.NewKeyed(key)
}

// NewDeriveKey returns a key-derivation-mode hash.Hash: Write feeds key
// material, Sum returns the derived key.
func NewDeriveKey(context string) hash.Hash {
	return blake3.NewDeriveKey(context)
}

// VerifyKeyed reports whether tag is the keyed-MAC of msg under key,
// comparing in constant time so a verifier's timing can't leak how many
// leading bytes of an attacker-supplied tag were correct.
func VerifyKeyed(key *[blake3.KeySize]byte, msg, tag []byte) bool {
	want := blake3.HashKeyed(key, msg)
	return subtle.ConstantTimeCompare(want[:], tag) == 1
}
