package blake3chunk

import (
	"github.com/codahale/blake3/hazmat/blake3compress"
	"github.com/codahale/blake3/internal/wordcodec"
)

// BatchChainingValues computes the chaining values of n complete,
// contiguous chunks starting at data[0], using [blake3compress.CompressBatch]
// to compress the same block index across all n chunks together. Each
// chunk still requires 16 sequential compressions (the per-chunk CV chains
// block to block), but each of those 16 steps is issued as one batch across
// all n chunks. CompressBatch groups the batch by the host's lane width;
// every width runs the portable scalar compressor lane by lane.
//
// data must be exactly n*Len bytes.
func BatchChainingValues(data []byte, n int, keyWords [8]uint32, baseCounter uint64, flags uint32) [][8]uint32 {
	cvs := make([][8]uint32, n)
	for i := range cvs {
		cvs[i] = keyWords
	}

	lanes := make([]blake3compress.Lane, n)
	for block := 0; block < blocksPerChunk; block++ {
		blockFlags := flags
		if block == 0 {
			blockFlags |= blake3compress.ChunkStart
		}
		if block == blocksPerChunk-1 {
			blockFlags |= blake3compress.ChunkEnd
		}

		for i := 0; i < n; i++ {
			off := i*Len + block*BlockLen
			var raw [BlockLen]byte
			copy(raw[:], data[off:off+BlockLen])
			lanes[i] = blake3compress.Lane{
				CV:      cvs[i],
				Block:   wordcodec.LoadBlock(&raw),
				Counter: baseCounter + uint64(i),
			}
		}

		next := blake3compress.CompressBatch(lanes, BlockLen, blockFlags)
		copy(cvs, next)
	}

	return cvs
}
