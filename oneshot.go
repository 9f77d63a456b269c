package blake3

// Hash computes the 32-byte BLAKE3 digest of data in plain-hash mode.
func Hash(data []byte) [Size]byte {
	h := New()
	_, _ = h.Write(data)
	var out [Size]byte
	copy(out[:], h.Sum(nil))
	return out
}

// HashKeyed computes the 32-byte BLAKE3 keyed-MAC of data under key.
func HashKeyed(key *[KeySize]byte, data []byte) [Size]byte {
	h := NewKeyed(key)
	_, _ = h.Write(data)
	var out [Size]byte
	copy(out[:], h.Sum(nil))
	return out
}

// DeriveKey derives a 32-byte key from context and keyMaterial using
// BLAKE3's key-derivation mode: context is hashed with DeriveKeyContext
// into an intermediate key, which is then used to hash keyMaterial with
// DeriveKeyMaterial.
func DeriveKey(context string, keyMaterial []byte) [Size]byte {
	h := NewDeriveKey(context)
	_, _ = h.Write(keyMaterial)
	var out [Size]byte
	copy(out[:], h.Sum(nil))
	return out
}
