// Package blake3 implements BLAKE3, a cryptographic hash function with
// three keying modes (plain hash, keyed MAC, key derivation) and an
// extendable-output finalization.
//
// Hasher satisfies [hash.Hash]; for output longer than 32 bytes, use
// [Hasher.XOF]. The compression, chunk, and tree layers live in
// hazmat/blake3compress, hazmat/blake3chunk, and hazmat/blake3tree.
package blake3

import (
	"hash"

	"github.com/codahale/blake3/hazmat/blake3chunk"
	"github.com/codahale/blake3/hazmat/blake3compress"
	"github.com/codahale/blake3/hazmat/blake3tree"
	"github.com/codahale/blake3/internal/wordcodec"
)

// Size is the default output length in bytes.
const Size = 32

// KeySize is the required key length in bytes for [NewKeyed].
const KeySize = 32

// BlockSize is reported for [hash.Hash] compatibility; BLAKE3 has no
// meaningful block size for callers (it doesn't affect digest computation
// the way it does for a Merkle-Damgård construction), so this mirrors the
// internal block length.
const BlockSize = blake3chunk.BlockLen

// minSimdChunks is the fewest leading full chunks worth handing to the
// batched compressor in one Write call; below this the per-call overhead
// of assembling lanes isn't worth it. 4 matches this module's chosen SIMD
// lane width (see SPEC_FULL.md's "Batch dispatch threshold").
const minSimdChunks = 4

// Hasher is a streaming BLAKE3 instance. The zero value is not usable; use
// [New], [NewKeyed], or [NewDeriveKey].
type Hasher struct {
	keyWords [8]uint32
	flags    uint32
	chunk    blake3chunk.State
	stack    blake3tree.Stack
}

var _ hash.Hash = (*Hasher)(nil)

// New returns a Hasher in plain-hash mode.
func New() *Hasher {
	h := &Hasher{keyWords: blake3compress.IV}
	h.chunk = blake3chunk.New(h.keyWords, 0, 0)
	return h
}

// NewKeyed returns a Hasher in keyed-MAC mode. key must be exactly
// [KeySize] bytes.
func NewKeyed(key *[KeySize]byte) *Hasher {
	h := &Hasher{keyWords: wordcodec.LoadKey(key), flags: blake3compress.KeyedHash}
	h.chunk = blake3chunk.New(h.keyWords, 0, h.flags)
	return h
}

// NewDeriveKey returns a Hasher in key-derivation mode: context is hashed
// with DeriveKeyContext into a 32-byte key, which becomes the key for
// absorbing key material with DeriveKeyMaterial. Feed key material to the
// returned Hasher via Write, then Sum or XOF.
func NewDeriveKey(context string) *Hasher {
	ctxHasher := &Hasher{keyWords: blake3compress.IV, flags: blake3compress.DeriveKeyContext}
	ctxHasher.chunk = blake3chunk.New(ctxHasher.keyWords, 0, ctxHasher.flags)
	_, _ = ctxHasher.Write([]byte(context))

	var contextKey [32]byte
	ctxHasher.finalOutput().RootBytes(contextKey[:])

	h := &Hasher{keyWords: wordcodec.LoadKey(&contextKey), flags: blake3compress.DeriveKeyMaterial}
	h.chunk = blake3chunk.New(h.keyWords, 0, h.flags)
	return h
}

// Write absorbs p into the hash state. It never returns an error.
//
// Streaming update algorithm (§4.6): when the current chunk is empty and
// the input holds more than one chunk, the leading full chunks (holding
// back the last one, which must still flow through the chunk state so a
// possible single-chunk root gets the right flags) are dispatched through
// the batched compressor, provided there are at least minSimdChunks of
// them. Otherwise bytes accumulate in
// the chunk state, which is flushed to the tree whenever it fills.
func (h *Hasher) Write(p []byte) (int, error) {
	n := len(p)

	for len(p) > 0 {
		if h.chunk.Len() == 0 && len(p) > blake3chunk.Len {
			fullChunks := len(p) / blake3chunk.Len
			if len(p)%blake3chunk.Len == 0 {
				fullChunks--
			}
			if fullChunks >= minSimdChunks {
				h.absorbFullChunks(p[:fullChunks*blake3chunk.Len])
				p = p[fullChunks*blake3chunk.Len:]
				continue
			}
		}

		if h.chunk.Len() == blake3chunk.Len {
			h.flushChunk()
		}

		want := min(blake3chunk.Len-h.chunk.Len(), len(p))
		h.chunk.Update(p[:want])
		p = p[want:]
	}

	return n, nil
}

// absorbFullChunks compresses data (an exact multiple of chunk length) via
// the batched compressor, min(8, remaining) chunks at a time, feeding each
// resulting CV into the tree stack, then reinitializes the chunk state at
// the next counter so the caller can continue with the remainder.
func (h *Hasher) absorbFullChunks(data []byte) {
	total := len(data) / blake3chunk.Len
	counter := h.chunk.Counter()

	for total > 0 {
		batch := min(total, 8)
		cvs := blake3chunk.BatchChainingValues(data[:batch*blake3chunk.Len], batch, h.keyWords, counter, h.flags)
		for _, cv := range cvs {
			counter++
			h.stack.AddChunkChainingValue(cv, counter, h.keyWords, h.flags)
		}
		data = data[batch*blake3chunk.Len:]
		total -= batch
	}

	h.chunk = blake3chunk.New(h.keyWords, counter, h.flags)
}

// flushChunk finalizes the current (full) chunk into the tree and starts
// the next one.
func (h *Hasher) flushChunk() {
	cv := h.chunk.Output().ChainingValue()
	total := h.chunk.Counter() + 1
	h.stack.AddChunkChainingValue(cv, total, h.keyWords, h.flags)
	h.chunk = blake3chunk.New(h.keyWords, total, h.flags)
}

// finalOutput builds the root output record without mutating h: the
// in-progress chunk's output, reduced against a clone of the stack. This
// is what makes Sum/XOF idempotent and non-destructive (§9's resolved open
// question).
func (h *Hasher) finalOutput() blake3compress.Output {
	stack := h.stack.Clone()
	return stack.Reduce(h.chunk.Output(), h.keyWords, h.flags)
}

// Sum appends the 32-byte BLAKE3 digest to b. It does not modify h; later
// Writes extend the hash rather than being ignored.
func (h *Hasher) Sum(b []byte) []byte {
	out := make([]byte, Size)
	h.finalOutput().RootBytes(out)
	return append(b, out...)
}

// XOF returns a reader that squeezes an arbitrary number of output bytes
// starting from the root, without mutating h. Successive reads of length
// L1 then L2-L1 bytes produce the same bytes as one read of L2 bytes
// (the prefix property).
func (h *Hasher) XOF() *OutputReader {
	return &OutputReader{root: h.finalOutput()}
}

// Reset returns the Hasher to a fresh state with the same key words and
// flags (so the same keying mode / derived key is retained).
func (h *Hasher) Reset() {
	h.stack = blake3tree.Stack{}
	h.chunk = blake3chunk.New(h.keyWords, 0, h.flags)
}

// Size returns the default digest length in bytes.
func (h *Hasher) Size() int { return Size }

// BlockSize returns the internal block length in bytes.
func (h *Hasher) BlockSize() int { return BlockSize }

// OutputReader squeezes extendable output from a finalized root. It holds
// no reference to the Hasher that produced it, so further Writes to the
// originating Hasher do not affect a previously obtained OutputReader.
type OutputReader struct {
	root     blake3compress.Output
	produced uint64
}

// Read fills p with the next len(p) bytes of output, continuing from
// wherever the previous Read left off. It always returns len(p), nil.
//
// The root's byte stream is the concatenation of Compress calls at output
// counters 0, 1, 2, ...; each Read seeks to the right counter and offset
// within that counter's 64-byte output to continue exactly where the last
// Read stopped.
func (r *OutputReader) Read(p []byte) (int, error) {
	n := len(p)
	flags := r.root.Flags | blake3compress.Root

	for len(p) > 0 {
		counter := r.produced / 64
		offset := int(r.produced % 64)

		words := blake3compress.Compress(&r.root.InputCV, &r.root.Block, counter, r.root.BlockLen, flags)
		var block [64]byte
		wordcodec.StoreWords(block[:], words[:], 64)

		take := min(len(p), 64-offset)
		copy(p, block[offset:offset+take])
		p = p[take:]
		r.produced += uint64(take)
	}

	return n, nil
}
