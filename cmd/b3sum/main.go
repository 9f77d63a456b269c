// Command b3sum computes BLAKE3 digests of files or standard input.
//
// This is the external harness the core hashing package deliberately knows
// nothing about: it consumes only blake3's public API (New, NewKeyed,
// NewDeriveKey, Hasher, OutputReader) and owns its own CLI, logging, and I/O
// concerns.
package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/codahale/blake3"
)

var (
	keyHex    string
	deriveCtx string
	outLen    int
	verbose   bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "b3sum [file ...]",
		Short: "Compute BLAKE3 digests",
		Long: "b3sum computes BLAKE3 digests of files or, with no arguments, standard input.\n" +
			"Use --key to compute a keyed MAC, or --derive-context to derive a key from\n" +
			"the input treated as key material.",
		RunE: run,
	}

	root.Flags().StringVar(&keyHex, "key", "", "32-byte hex-encoded key for keyed-MAC mode")
	root.Flags().StringVar(&deriveCtx, "derive-context", "", "context string for key-derivation mode (input is treated as key material)")
	root.Flags().IntVar(&outLen, "length", blake3.Size, "output length in bytes (extendable output)")
	root.Flags().BoolVarP(&verbose, "verbose", "v", false, "log the selected hasher mode and output length")

	return root
}

func run(cmd *cobra.Command, args []string) error {
	log := newLogger()

	h, err := newHasher(log)
	if err != nil {
		return err
	}

	if len(args) == 0 {
		return hashOne(cmd.OutOrStdout(), h, "-", os.Stdin, log)
	}

	for _, name := range args {
		f, err := os.Open(name)
		if err != nil {
			return fmt.Errorf("b3sum: %w", err)
		}
		err = hashOne(cmd.OutOrStdout(), h, name, f, log)
		_ = f.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

// hasherFactory produces a fresh Hasher per input, since Hasher carries
// streaming state that must not be reused across files.
type hasherFactory func() *blake3.Hasher

func newHasher(log zerolog.Logger) (hasherFactory, error) {
	switch {
	case keyHex != "" && deriveCtx != "":
		return nil, fmt.Errorf("b3sum: --key and --derive-context are mutually exclusive")
	case keyHex != "":
		raw, err := hex.DecodeString(keyHex)
		if err != nil || len(raw) != blake3.KeySize {
			return nil, fmt.Errorf("b3sum: --key must be %d hex-encoded bytes", blake3.KeySize)
		}
		var key [blake3.KeySize]byte
		copy(key[:], raw)
		log.Debug().Str("mode", "keyed").Msg("selected hasher mode")
		return func() *blake3.Hasher { return blake3.NewKeyed(&key) }, nil
	case deriveCtx != "":
		log.Debug().Str("mode", "derive-key").Str("context", deriveCtx).Msg("selected hasher mode")
		return func() *blake3.Hasher { return blake3.NewDeriveKey(deriveCtx) }, nil
	default:
		log.Debug().Str("mode", "plain").Msg("selected hasher mode")
		return blake3.New, nil
	}
}

func hashOne(w io.Writer, newHasher hasherFactory, name string, r io.Reader, log zerolog.Logger) error {
	h := newHasher()
	if _, err := io.Copy(h, r); err != nil {
		return fmt.Errorf("b3sum: reading %s: %w", name, err)
	}

	out := make([]byte, outLen)
	_, _ = h.XOF().Read(out)

	log.Debug().Str("file", name).Int("length", outLen).Msg("wrote digest")
	_, err := fmt.Fprintf(w, "%x  %s\n", out, name)
	return err
}

func newLogger() zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
}
