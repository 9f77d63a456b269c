package blake3compress_test

import (
	"testing"

	"github.com/codahale/blake3/hazmat/blake3compress"
	"github.com/codahale/blake3/internal/cpufeature"
)

// TestCompressBatchMatchesScalar checks that CompressBatch, at every
// supported lane width, produces exactly the chaining values a per-lane
// CompressCV call would (Testable Property 2 at the primitive level).
func TestCompressBatchMatchesScalar(t *testing.T) {
	const n = 13 // deliberately not a multiple of any lane width
	lanes := make([]blake3compress.Lane, n)
	want := make([][8]uint32, n)

	for i := range lanes {
		var block [16]uint32
		for j := range block {
			block[j] = uint32((i+1)*31 + j)
		}
		lane := blake3compress.Lane{CV: blake3compress.IV, Block: block, Counter: uint64(i)}
		lanes[i] = lane
		want[i] = blake3compress.CompressCV(&lane.CV, &lane.Block, lane.Counter, 64, blake3compress.ChunkStart)
	}

	for _, width := range []int{1, 4, 8} {
		cpufeature.WithForcedLanes(width, func() {
			got := blake3compress.CompressBatch(lanes, 64, blake3compress.ChunkStart)
			if len(got) != n {
				t.Fatalf("width=%d: got %d outputs, want %d", width, len(got), n)
			}
			for i := range got {
				if got[i] != want[i] {
					t.Errorf("width=%d lane=%d: got %v, want %v", width, i, got[i], want[i])
				}
			}
		})
	}
}

// TestCompressBatchEmpty checks that an empty lane slice doesn't panic and
// returns an empty slice.
func TestCompressBatchEmpty(t *testing.T) {
	got := blake3compress.CompressBatch(nil, 64, 0)
	if len(got) != 0 {
		t.Errorf("got %d outputs, want 0", len(got))
	}
}
