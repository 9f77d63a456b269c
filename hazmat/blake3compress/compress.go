// Package blake3compress implements the BLAKE3 compression function: the
// single block-sized primitive every other layer (chunk state, tree
// reduction, output expansion) is built from.
//
// The function is pure and allocation-free. It is deliberately portable —
// no build tags, no assembly — because every SIMD batching layer above it
// must reduce to exactly this arithmetic; see [CompressBatch].
package blake3compress

import "math/bits"

// Domain flags, ORed into every compression's flags word. Exactly one of
// the keying-mode flags (KeyedHash, DeriveKeyContext, DeriveKeyMaterial) is
// chosen at Hasher construction and carried on every subsequent block.
const (
	ChunkStart        uint32 = 1 << 0
	ChunkEnd          uint32 = 1 << 1
	Parent            uint32 = 1 << 2
	Root              uint32 = 1 << 3
	KeyedHash         uint32 = 1 << 4
	DeriveKeyContext  uint32 = 1 << 5
	DeriveKeyMaterial uint32 = 1 << 6
)

// IV holds the eight SHA-256 initialization constants. It seeds the
// plain-hash chaining value, and its first four words fill state words
// 8..11 of every compression.
var IV = [8]uint32{
	0x6a09e667, 0xbb67ae85, 0x3c6ef372, 0xa54ff53a,
	0x510e527f, 0x9b05688c, 0x1f83d9ab, 0x5be0cd19,
}

// schedule is the fixed message permutation applied before each of the
// seven rounds. schedule[r][i] gives the block word index used as m[i] in
// round r.
var schedule = [7][16]uint8{
	{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15},
	{2, 6, 3, 10, 7, 0, 4, 13, 1, 11, 12, 5, 9, 14, 15, 8},
	{3, 4, 10, 12, 13, 2, 7, 14, 6, 5, 9, 0, 11, 15, 8, 1},
	{10, 7, 12, 9, 14, 3, 13, 15, 4, 0, 11, 2, 5, 8, 1, 6},
	{12, 13, 9, 11, 15, 10, 14, 8, 7, 2, 5, 3, 0, 1, 6, 4},
	{9, 14, 11, 5, 8, 12, 15, 1, 13, 3, 0, 10, 2, 6, 4, 7},
	{11, 15, 5, 0, 1, 9, 8, 6, 14, 10, 2, 12, 3, 4, 7, 13},
}

func rotr32(x uint32, n uint32) uint32 {
	return bits.RotateLeft32(x, -int(n))
}

// g applies one quarter-round to state words a, b, c, d using message words
// mx and my.
func g(state *[16]uint32, a, b, c, d int, mx, my uint32) {
	state[a] += state[b] + mx
	state[d] = rotr32(state[d]^state[a], 16)
	state[c] += state[d]
	state[b] = rotr32(state[b]^state[c], 12)

	state[a] += state[b] + my
	state[d] = rotr32(state[d]^state[a], 8)
	state[c] += state[d]
	state[b] = rotr32(state[b]^state[c], 7)
}

// Compress runs the BLAKE3 compression function on an 8-word chaining
// value and a 16-word message block, returning the full 16-word output
// state. The low 8 words are the next chaining value; the full 16 words
// are used when expanding root output.
func Compress(cv *[8]uint32, block *[16]uint32, counter uint64, blockLen uint32, flags uint32) [16]uint32 {
	state := [16]uint32{
		cv[0], cv[1], cv[2], cv[3], cv[4], cv[5], cv[6], cv[7],
		IV[0], IV[1], IV[2], IV[3],
		uint32(counter), uint32(counter >> 32),
		blockLen, flags,
	}

	for round := 0; round < 7; round++ {
		s := &schedule[round]
		m := [16]uint32{
			block[s[0]], block[s[1]], block[s[2]], block[s[3]],
			block[s[4]], block[s[5]], block[s[6]], block[s[7]],
			block[s[8]], block[s[9]], block[s[10]], block[s[11]],
			block[s[12]], block[s[13]], block[s[14]], block[s[15]],
		}

		g(&state, 0, 4, 8, 12, m[0], m[1])
		g(&state, 1, 5, 9, 13, m[2], m[3])
		g(&state, 2, 6, 10, 14, m[4], m[5])
		g(&state, 3, 7, 11, 15, m[6], m[7])

		g(&state, 0, 5, 10, 15, m[8], m[9])
		g(&state, 1, 6, 11, 12, m[10], m[11])
		g(&state, 2, 7, 8, 13, m[12], m[13])
		g(&state, 3, 4, 9, 14, m[14], m[15])
	}

	for i := 0; i < 8; i++ {
		state[i] ^= state[i+8]
		state[i+8] ^= cv[i]
	}

	return state
}

// CompressCV is Compress truncated to the next chaining value (the low 8
// output words).
func CompressCV(cv *[8]uint32, block *[16]uint32, counter uint64, blockLen uint32, flags uint32) [8]uint32 {
	out := Compress(cv, block, counter, blockLen, flags)
	return [8]uint32{out[0], out[1], out[2], out[3], out[4], out[5], out[6], out[7]}
}
