// Package blake3chunk implements the BLAKE3 chunk state machine: a
// 1024-byte accumulator that compresses 16 64-byte blocks with the correct
// CHUNK_START/CHUNK_END flag pattern and yields a single chunk chaining
// value.
package blake3chunk

import (
	"github.com/codahale/blake3/hazmat/blake3compress"
	"github.com/codahale/blake3/internal/wordcodec"
)

// Len is the number of bytes in a complete chunk.
const Len = 1024

// BlockLen is the number of bytes in a complete block.
const BlockLen = 64

// blocksPerChunk is the number of blocks in a complete chunk.
const blocksPerChunk = Len / BlockLen

// State is an in-progress chunk: a running chaining value, a staging block
// buffer, and the bookkeeping needed to set CHUNK_START/CHUNK_END
// correctly regardless of how Update's input is split.
type State struct {
	cv               [8]uint32
	counter          uint64
	block            [BlockLen]byte
	blockLen         int
	blocksCompressed int
	flags            uint32
}

// New starts a chunk with the given key words (the hasher's running CV
// seed), chunk counter, and domain flags.
func New(keyWords [8]uint32, counter uint64, flags uint32) State {
	return State{cv: keyWords, counter: counter, flags: flags}
}

// Len returns the number of bytes absorbed so far, in [0, 1024].
func (s *State) Len() int {
	return s.blocksCompressed*BlockLen + s.blockLen
}

// Counter returns the chunk's 0-based index in the input stream.
func (s *State) Counter() uint64 {
	return s.counter
}

// startFlag returns ChunkStart if this is the chunk's first block.
func (s *State) startFlag() uint32 {
	if s.blocksCompressed == 0 {
		return blake3compress.ChunkStart
	}
	return 0
}

// Update absorbs p into the chunk. The caller must not pass more than
// Len()'s remaining capacity (1024 - Len()) bytes; the hasher façade
// enforces chunk boundaries before calling Update.
func (s *State) Update(p []byte) {
	for len(p) > 0 {
		if s.blockLen == BlockLen {
			words := wordcodec.LoadBlock(&s.block)
			s.cv = blake3compress.CompressCV(&s.cv, &words, s.counter, BlockLen, s.flags|s.startFlag())
			s.blocksCompressed++
			s.blockLen = 0
			s.block = [BlockLen]byte{}
		}

		want := min(BlockLen-s.blockLen, len(p))
		copy(s.block[s.blockLen:], p[:want])
		s.blockLen += want
		p = p[want:]
	}
}

// Output packs the partial (or empty) final block into a zero-padded
// buffer and returns the chunk's single output record, carrying
// CHUNK_END (and CHUNK_START if the chunk never filled a block).
func (s *State) Output() blake3compress.Output {
	var padded [BlockLen]byte
	copy(padded[:], s.block[:s.blockLen])
	return blake3compress.Output{
		InputCV:  s.cv,
		Block:    wordcodec.LoadBlock(&padded),
		Counter:  s.counter,
		BlockLen: uint32(s.blockLen),
		Flags:    s.flags | s.startFlag() | blake3compress.ChunkEnd,
	}
}

// ChainingValue computes the chunk's CV for an already-full (1024-byte)
// chunk by compressing all 16 blocks sequentially on a single lane. It is
// a standalone reference for the incremental State; the hasher itself does
// not call it.
func ChainingValue(chunk *[Len]byte, keyWords [8]uint32, counter uint64, flags uint32) [8]uint32 {
	cv := keyWords
	for i := 0; i < blocksPerChunk; i++ {
		var block [BlockLen]byte
		copy(block[:], chunk[i*BlockLen:(i+1)*BlockLen])
		words := wordcodec.LoadBlock(&block)
		blockFlags := flags
		if i == 0 {
			blockFlags |= blake3compress.ChunkStart
		}
		if i == blocksPerChunk-1 {
			blockFlags |= blake3compress.ChunkEnd
		}
		cv = blake3compress.CompressCV(&cv, &words, counter, BlockLen, blockFlags)
	}
	return cv
}
