// Package crunch compresses small binary blobs into a compact
// self-describing bitstream and losslessly recovers them. Two interchangeable
// cores are provided: an optimal LZ77-style parser over a hybrid-coded
// offset/length stream, and a standalone canonical Huffman codec. Both share
// the bit-level primitives in the bitstream subpackage.
package crunch

import (
	"github.com/bytepack/crunch/internal/cerr"
	"github.com/bytepack/crunch/internal/huffman"
	"github.com/bytepack/crunch/internal/lz"
)

// Mode selects which codec Compress/Decompress use.
type Mode int

const (
	// LZ selects the optimal LZ77-style parser and its bitstream format.
	LZ Mode = iota
	// Huffman selects the standalone canonical Huffman codec.
	Huffman
)

// Sentinel errors surfaced at the package boundary; see internal/cerr for
// the canonical definitions.
var (
	// ErrInputTooSmall is returned when compressing fewer than two bytes.
	ErrInputTooSmall = cerr.ErrInputTooSmall
	// ErrMalformedInput is returned when decompressing a corrupt or
	// truncated stream.
	ErrMalformedInput = cerr.ErrMalformedInput
)

// Compress encodes data under the given mode.
func Compress(mode Mode, data []byte) ([]byte, error) {
	switch mode {
	case LZ:
		return lz.Encode(data)
	case Huffman:
		return huffman.Encode(data)
	default:
		panic("crunch: unknown mode")
	}
}

// Decompress decodes data that was produced by Compress under the given
// mode.
func Decompress(mode Mode, data []byte) ([]byte, error) {
	switch mode {
	case LZ:
		return lz.Decode(data)
	case Huffman:
		return huffman.Decode(data)
	default:
		panic("crunch: unknown mode")
	}
}

// String names a Mode; the name is also the mode argument the crunch
// command accepts.
func (m Mode) String() string {
	switch m {
	case LZ:
		return "lz"
	case Huffman:
		return "huffman"
	default:
		return "unknown"
	}
}
