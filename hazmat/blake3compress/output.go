package blake3compress

import "github.com/codahale/blake3/internal/wordcodec"

// Output is a deferred compression: the inputs needed to produce either a
// chaining value (if reduced with further parents) or root bytes (if this
// is the outermost record), without committing to which until finalize
// completes.
type Output struct {
	InputCV  [8]uint32
	Block    [16]uint32
	Counter  uint64
	BlockLen uint32
	Flags    uint32
}

// ChainingValue reduces the output to its 8-word chaining value.
func (o *Output) ChainingValue() [8]uint32 {
	return CompressCV(&o.InputCV, &o.Block, o.Counter, o.BlockLen, o.Flags)
}

// RootBytes expands the output into len(out) bytes of root material, using
// an incrementing output-block counter distinct from the chunk counter
// carried in o.Counter (which is ignored here; root expansion always starts
// its own counter at zero).
func (o *Output) RootBytes(out []byte) {
	flags := o.Flags | Root
	var outputCounter uint64
	for len(out) > 0 {
		words := Compress(&o.InputCV, &o.Block, outputCounter, o.BlockLen, flags)
		n := min(len(out), 64)
		wordcodec.StoreWords(out[:n], words[:], n)
		out = out[n:]
		outputCounter++
	}
}

// ParentOutput builds a parent-node output from two child chaining values.
func ParentOutput(left, right [8]uint32, keyWords [8]uint32, flags uint32) Output {
	var block [16]uint32
	copy(block[:8], left[:])
	copy(block[8:], right[:])
	return Output{
		InputCV:  keyWords,
		Block:    block,
		Counter:  0,
		BlockLen: 64,
		Flags:    flags | Parent,
	}
}
