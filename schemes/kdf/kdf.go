// Package kdf provides a labeled key-derivation façade over BLAKE3's
// derive-key mode, the same "one secret in, one secret out, bound to a
// domain string" shape as the teacher's basic/mhf context-derivation step,
// but using BLAKE3's two-pass construction directly rather than a
// memory-hard function (BLAKE3 derive-key is not a password hash; don't
// use this package for passwords).
package kdf

import "github.com/codahale/blake3"

// Derive returns an outLen-byte key derived from context and keyMaterial.
// context should be a unique, application-specific constant string (e.g.
// "example.com 2026-07-30 12:00:00 session key"); keyMaterial is the input
// secret (a master key, a shared secret, etc.).
//
// outLen may be any non-negative length; lengths other than 32 use BLAKE3's
// XOF finalization.
func Derive(context string, keyMaterial []byte, outLen int) []byte {
	h := blake3.NewDeriveKey(context)
	_, _ = h.Write(keyMaterial)

	if outLen == blake3.Size {
		return h.Sum(nil)
	}

	out := make([]byte, outLen)
	_, _ = h.XOF().Read(out)
	return out
}

// DeriveMulti derives len(labels) independent keys of outLen bytes each
// from a single keyMaterial, one per label, by folding the label into the
// context string. Labels must be distinct for the derived keys to be
// independent.
func DeriveMulti(context string, labels []string, keyMaterial []byte, outLen int) [][]byte {
	out := make([][]byte, len(labels))
	for i, label := range labels {
		out[i] = Derive(context+"\x00"+label, keyMaterial, outLen)
	}
	return out
}
