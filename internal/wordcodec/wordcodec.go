// Package wordcodec converts between little-endian byte encodings and the
// 32-bit words BLAKE3's compression function operates on.
package wordcodec

import "encoding/binary"

// LoadBlock reads a 64-byte block as 16 little-endian 32-bit words.
func LoadBlock(block *[64]byte) [16]uint32 {
	var words [16]uint32
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(block[i*4 : i*4+4])
	}
	return words
}

// StoreWords writes the little-endian encoding of words into dst, truncating
// to at most n bytes.
func StoreWords(dst []byte, words []uint32, n int) {
	var tmp [4]byte
	for _, w := range words {
		if n <= 0 {
			return
		}
		binary.LittleEndian.PutUint32(tmp[:], w)
		take := min(n, 4)
		copy(dst, tmp[:take])
		dst = dst[take:]
		n -= take
	}
}

// LoadKey reads a 32-byte key as 8 little-endian 32-bit words.
func LoadKey(key *[32]byte) [8]uint32 {
	var words [8]uint32
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(key[i*4 : i*4+4])
	}
	return words
}
