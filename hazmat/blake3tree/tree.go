// Package blake3tree implements the BLAKE3 Merkle-tree assembler: a
// bounded stack that reduces a stream of chunk chaining values into parent
// chaining values, maintaining the invariant that after N chunks the stack
// holds popcount(N) CVs, largest subtree at the bottom.
package blake3tree

import "github.com/codahale/blake3/hazmat/blake3compress"

// MaxDepth is the largest stack depth ever needed: 2^54 chunks cover the
// algorithm's 2^64-byte input ceiling (1024 bytes/chunk), and popcount of
// any 64-bit chunk count is at most 54 when the low 10 bits are forced to
// zero by the 1024-byte chunking. 54 slots, allocated inline, is exact.
const MaxDepth = 54

// Stack holds the CVs of subtrees not yet merged into a larger subtree.
type Stack struct {
	cvs [MaxDepth][8]uint32
	len int
}

// Depth returns the number of CVs currently on the stack.
func (s *Stack) Depth() int {
	return s.len
}

func (s *Stack) push(cv [8]uint32) {
	s.cvs[s.len] = cv
	s.len++
}

func (s *Stack) pop() [8]uint32 {
	s.len--
	return s.cvs[s.len]
}

// AddChunkChainingValue feeds the CV of the totalChunks-th chunk (1-based
// count) into the stack, merging with already-stacked subtrees while the
// low bit of the running count is zero, per BLAKE3's popcount stack
// discipline.
func (s *Stack) AddChunkChainingValue(newCV [8]uint32, totalChunks uint64, keyWords [8]uint32, flags uint32) {
	for totalChunks&1 == 0 {
		left := s.pop()
		parent := blake3compress.ParentOutput(left, newCV, keyWords, flags)
		newCV = parent.ChainingValue()
		totalChunks >>= 1
	}
	s.push(newCV)
}

// Clone returns a copy of the stack, used at finalize time to reduce without
// mutating the caller's stack (finalize must be non-destructive).
func (s *Stack) Clone() Stack {
	return *s
}

// Reduce runs the finalize-time reduction: starting from the in-progress
// chunk's own output record, repeatedly pop the top CV and wrap the
// current record in a parent output, until the stack is empty. The
// receiver is consumed (it should be a [Stack.Clone]); the returned
// Output has ROOT added by the caller once finalize completes.
func (s *Stack) Reduce(chunkOutput blake3compress.Output, keyWords [8]uint32, flags uint32) blake3compress.Output {
	out := chunkOutput
	for s.len > 0 {
		left := s.pop()
		right := out.ChainingValue()
		out = blake3compress.ParentOutput(left, right, keyWords, flags)
	}
	return out
}
