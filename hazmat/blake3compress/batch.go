package blake3compress

import "github.com/codahale/blake3/internal/cpufeature"

// Lane is one (chaining value, block, counter) tuple to be compressed.
// Lanes sharing a CompressBatch call share flags and blockLen, matching the
// hardware constraint that a real SIMD implementation only batches
// same-shape work.
type Lane struct {
	CV      [8]uint32
	Block   [16]uint32
	Counter uint64
}

// CompressBatch compresses each lane's (cv, block, counter) independently,
// returning the next chaining value per lane. It dispatches across the
// host's detected batch width (8, then 4, then singleton) the same way the
// chunk/tree layer dispatches full chunks, cascading down until all lanes
// are consumed; every width reduces to identical calls to [CompressCV], so
// the output is bitwise independent of the batch width chosen.
func CompressBatch(lanes []Lane, blockLen uint32, flags uint32) [][8]uint32 {
	out := make([][8]uint32, len(lanes))
	width := cpufeature.Lanes()

	i := 0
	if width >= 8 {
		for i+8 <= len(lanes) {
			compressN(lanes[i:i+8], blockLen, flags, out[i:i+8])
			i += 8
		}
	}
	if width >= 4 {
		for i+4 <= len(lanes) {
			compressN(lanes[i:i+4], blockLen, flags, out[i:i+4])
			i += 4
		}
	}
	for ; i < len(lanes); i++ {
		out[i] = CompressCV(&lanes[i].CV, &lanes[i].Block, lanes[i].Counter, blockLen, flags)
	}
	return out
}

// compressN computes lanes[i]'s chaining values into out. This is where a
// true vector backend would issue one SIMD instruction stream across all
// of lanes; the portable fallback here simply evaluates each lane's
// scalar compression, which is correct for any batch width by
// construction (see [CompressBatch]'s doc comment).
func compressN(lanes []Lane, blockLen uint32, flags uint32, out [][8]uint32) {
	for i := range lanes {
		out[i] = CompressCV(&lanes[i].CV, &lanes[i].Block, lanes[i].Counter, blockLen, flags)
	}
}
