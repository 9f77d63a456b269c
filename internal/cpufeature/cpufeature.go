// Package cpufeature caches the host's SIMD batch width for BLAKE3's
// multi-lane compressor behind a single process-wide, write-once flag.
//
// The probe itself (CPUID leaf 1 OSXSAVE/AVX bits, XGETBV for XMM/YMM state,
// CPUID leaf 7 AVX2/AVX-512) is performed by klauspost/cpuid/v2 at package
// init. We only cache the derived lane count, and we cache it with an
// atomic store/load so concurrent readers never observe a torn value, per
// the "write-once, idempotent" contract a process-wide feature cache must
// honor.
package cpufeature

import (
	"sync/atomic"

	"github.com/klauspost/cpuid/v2"
)

var lanes atomic.Int32

func init() {
	lanes.Store(int32(detectLanes()))
}

func detectLanes() int {
	switch {
	case cpuid.CPU.Has(cpuid.AVX512F) && cpuid.CPU.Has(cpuid.AVX512VL):
		return 8
	case cpuid.CPU.Has(cpuid.AVX2):
		return 4
	case cpuid.CPU.Has(cpuid.ASIMD):
		return 4
	default:
		return 1
	}
}

// Lanes returns the number of (block, counter, flags) tuples the host can
// compress in parallel. It is always a cached, idempotent value: 1, 4, or 8.
func Lanes() int {
	return int(lanes.Load())
}

// WithForcedLanes runs fn with the batch width pinned to n, restoring the
// width that was in effect before the call afterward. It is not safe for concurrent use with other
// callers of WithForcedLanes.
func WithForcedLanes(n int, fn func()) {
	prev := lanes.Swap(int32(n))
	defer lanes.Store(prev)
	fn()
}
