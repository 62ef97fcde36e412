package crunch_test

import (
	"bytes"
	"errors"
	"math/rand"
	"testing"

	"github.com/bytepack/crunch"
)

func TestCompressDecompressBothModes(t *testing.T) {
	inputs := [][]byte{
		[]byte("the cat sat on the mat singinging"),
		[]byte("aa"),
		bytes.Repeat([]byte{0x42}, 4096),
	}

	for _, mode := range []crunch.Mode{crunch.LZ, crunch.Huffman} {
		for _, in := range inputs {
			compressed, err := crunch.Compress(mode, in)
			if err != nil {
				t.Fatalf("%s: Compress: %v", mode, err)
			}
			out, err := crunch.Decompress(mode, compressed)
			if err != nil {
				t.Fatalf("%s: Decompress: %v", mode, err)
			}
			if !bytes.Equal(out, in) {
				t.Errorf("%s: round trip mismatch for %d-byte input", mode, len(in))
			}
		}
	}
}

func TestCompressTooSmall(t *testing.T) {
	for _, mode := range []crunch.Mode{crunch.LZ, crunch.Huffman} {
		_, err := crunch.Compress(mode, []byte{0})
		if !errors.Is(err, crunch.ErrInputTooSmall) {
			t.Errorf("%s: got err %v, want ErrInputTooSmall", mode, err)
		}
	}
}

func TestRandomBinaryRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	data := make([]byte, 8320)
	rng.Read(data)

	for _, mode := range []crunch.Mode{crunch.LZ, crunch.Huffman} {
		compressed, err := crunch.Compress(mode, data)
		if err != nil {
			t.Fatalf("%s: Compress: %v", mode, err)
		}
		out, err := crunch.Decompress(mode, compressed)
		if err != nil {
			t.Fatalf("%s: Decompress: %v", mode, err)
		}
		if !bytes.Equal(out, data) {
			t.Errorf("%s: round trip mismatch on 8320-byte input", mode)
		}
	}
}
