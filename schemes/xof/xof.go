// Package xof provides an incremental extendable-output façade over
// [blake3.Hasher], grounded on the teacher pack's kt128.Hasher: write
// message bytes, then Read squeezes as much output as you like, with a
// guaranteed prefix relationship between successive output lengths.
package xof

import (
	"io"

	"github.com/codahale/blake3"
)

// Hasher is an io.ReadWriter: Write absorbs input, Read squeezes output.
// Once Read has been called, further Writes are not permitted (mirrors
// kt128.Hasher's write-then-read contract).
type Hasher struct {
	h         *blake3.Hasher
	out       *blake3.OutputReader
	squeezing bool
}

// New returns a new Hasher in plain-hash mode.
func New() *Hasher {
	return &Hasher{h: blake3.New()}
}

// NewKeyed returns a new Hasher in keyed-MAC mode.
func NewKeyed(key *[blake3.KeySize]byte) *Hasher {
	return &Hasher{h: blake3.NewKeyed(key)}
}

// Write absorbs p. It must not be called after Read.
func (x *Hasher) Write(p []byte) (int, error) {
	if x.squeezing {
		panic("xof: Write after Read")
	}
	return x.h.Write(p)
}

// Read squeezes len(p) bytes of output, continuing from the previous Read
// call if any. The first Read finalizes absorption.
func (x *Hasher) Read(p []byte) (int, error) {
	if !x.squeezing {
		x.out = x.h.XOF()
		x.squeezing = true
	}
	return x.out.Read(p)
}

var _ io.ReadWriter = (*Hasher)(nil)
