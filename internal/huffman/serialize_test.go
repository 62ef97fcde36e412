package huffman_test

import (
	"math/rand"
	"testing"

	"github.com/bytepack/crunch/internal/huffman"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	inputs := []string{
		"the cat sat on the mat singinging",
		"aa",
		"ab",
		"aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
	}
	for _, in := range inputs {
		encoded, err := huffman.Encode([]byte(in))
		if err != nil {
			t.Fatalf("Encode(%q): %v", in, err)
		}
		decoded, err := huffman.Decode(encoded)
		if err != nil {
			t.Fatalf("Decode(%q): %v", in, err)
		}
		if string(decoded) != in {
			t.Errorf("round trip mismatch: got %q, want %q", decoded, in)
		}
	}
}

func TestEncodeDecodeRoundTripRandomBinary(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	data := make([]byte, 8320)
	rng.Read(data)

	encoded, err := huffman.Encode(data)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	decoded, err := huffman.Decode(encoded)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(decoded) != len(data) {
		t.Fatalf("decoded length = %d, want %d", len(decoded), len(data))
	}
	for i := range data {
		if decoded[i] != data[i] {
			t.Fatalf("byte %d mismatch: got %d, want %d", i, decoded[i], data[i])
		}
	}
}

func TestEncodeTooSmall(t *testing.T) {
	if _, err := huffman.Encode([]byte{1}); err == nil {
		t.Fatal("expected error for 1-byte input")
	}
}
