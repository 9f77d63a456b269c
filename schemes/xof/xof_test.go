package xof_test

import (
	"bytes"
	"testing"

	"github.com/codahale/blake3"
	"github.com/codahale/blake3/schemes/xof"
)

func ptn(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i % 251)
	}
	return b
}

// TestReadMatchesHasherXOF checks that xof.Hasher's Read agrees byte for
// byte with calling Hasher.XOF directly.
func TestReadMatchesHasherXOF(t *testing.T) {
	msg := ptn(4913)

	h := blake3.New()
	_, _ = h.Write(msg)
	want := make([]byte, 200)
	_, _ = h.XOF().Read(want)

	x := xof.New()
	_, _ = x.Write(msg)
	got := make([]byte, 200)
	_, _ = x.Read(got)

	if !bytes.Equal(got, want) {
		t.Errorf("got %x, want %x", got, want)
	}
}

// TestIncrementalReadContinuesStream checks that repeated Read calls
// continue the same output stream rather than restarting it.
func TestIncrementalReadContinuesStream(t *testing.T) {
	msg := ptn(1000)

	x := xof.New()
	_, _ = x.Write(msg)

	var got bytes.Buffer
	for _, n := range []int{1, 7, 16, 32, 64, 100} {
		buf := make([]byte, n)
		_, _ = x.Read(buf)
		got.Write(buf)
	}

	h := blake3.New()
	_, _ = h.Write(msg)
	want := make([]byte, got.Len())
	_, _ = h.XOF().Read(want)

	if !bytes.Equal(got.Bytes(), want) {
		t.Error("incremental xof.Hasher reads don't match one continuous XOF read")
	}
}

// TestWriteAfterReadPanics checks that the write-then-read-only contract
// is enforced.
func TestWriteAfterReadPanics(t *testing.T) {
	x := xof.New()
	_, _ = x.Write(ptn(10))
	_, _ = x.Read(make([]byte, 32))

	defer func() {
		if recover() == nil {
			t.Error("Write after Read did not panic")
		}
	}()
	_, _ = x.Write(ptn(10))
}

// TestNewKeyedAgreesWithHasher checks the keyed constructor against the
// equivalent Hasher-based path.
func TestNewKeyedAgreesWithHasher(t *testing.T) {
	var key [blake3.KeySize]byte
	copy(key[:], ptn(32))
	msg := ptn(256)

	h := blake3.NewKeyed(&key)
	_, _ = h.Write(msg)
	want := make([]byte, 96)
	_, _ = h.XOF().Read(want)

	x := xof.NewKeyed(&key)
	_, _ = x.Write(msg)
	got := make([]byte, 96)
	_, _ = x.Read(got)

	if !bytes.Equal(got, want) {
		t.Errorf("got %x, want %x", got, want)
	}
}
