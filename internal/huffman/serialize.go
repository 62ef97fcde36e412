package huffman

import (
	"github.com/bytepack/crunch/internal/bitstream"
	"github.com/bytepack/crunch/internal/cerr"
)

// alphabetSize is the number of distinct payload symbols: every possible
// source byte value.
const alphabetSize = 256

// metaAlphabetSize is the number of distinct payload code-length values a
// meta symbol can name (0, meaning unused, through MaxCodeLength).
const metaAlphabetSize = MaxCodeLength + 1

// metaMaxLength bounds the meta tree itself, per §6.2's 3-bit length field.
const metaMaxLength = 7

// Encode serialises data as a Huffman-coded bitstream: a length-limited
// meta table describing the payload's code lengths, the source length,
// then the payload.
func Encode(data []byte) ([]byte, error) {
	if len(data) < 2 {
		return nil, cerr.ErrInputTooSmall
	}

	freqs := make([]uint32, alphabetSize)
	for _, b := range data {
		freqs[b]++
	}

	payloadLengths := BuildLengths(freqs, MaxCodeLength)
	payloadCodes := BuildCanonical(payloadLengths)

	metaFreqs := make([]uint32, metaAlphabetSize)
	for _, l := range payloadLengths {
		metaFreqs[l]++
	}
	metaLengths := BuildLengths(metaFreqs, metaMaxLength)
	metaCodes := BuildCanonical(metaLengths)

	w := bitstream.NewWriter()

	for l := 0; l < metaAlphabetSize; l++ {
		w.AddValue(uint32(metaLengths[l]), 3)
	}

	for s := 0; s < alphabetSize; s++ {
		metaCodes.Write(w, int(payloadLengths[s]))
	}

	w.AddValue(uint32(len(data)&0xFF), 8)
	w.AddValue(uint32((len(data)>>8)&0xFF), 8)

	for _, b := range data {
		payloadCodes.Write(w, int(b))
	}

	return w.Bytes(), nil
}

// Decode reverses Encode.
func Decode(data []byte) ([]byte, error) {
	r := bitstream.NewReader(data)

	metaLengths := make([]uint8, metaAlphabetSize)
	for l := 0; l < metaAlphabetSize; l++ {
		metaLengths[l] = uint8(r.GetValue(3))
	}
	metaDecoder := NewDecoder(metaLengths)

	payloadLengths := make([]uint8, alphabetSize)
	for s := 0; s < alphabetSize; s++ {
		payloadLengths[s] = uint8(metaDecoder.ReadSymbol(r))
	}
	payloadDecoder := NewDecoder(payloadLengths)

	low := r.GetValue(8)
	high := r.GetValue(8)
	sourceLength := int(low) | int(high)<<8

	if r.Err() != nil {
		return nil, cerr.ErrMalformedInput
	}

	out := make([]byte, sourceLength)
	for i := range out {
		out[i] = byte(payloadDecoder.ReadSymbol(r))
	}

	if r.Err() != nil {
		return nil, cerr.ErrMalformedInput
	}

	return out, nil
}
