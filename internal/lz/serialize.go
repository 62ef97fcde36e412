package lz

import (
	"github.com/bytepack/crunch/internal/bitstream"
	"github.com/bytepack/crunch/internal/cerr"
	"github.com/bytepack/crunch/internal/refs"
	"github.com/bytepack/crunch/internal/token"
)

// block is one homogeneous run in the serialised stream: isLiteral marks
// its type, and items holds the tokens it covers (already split to at
// most 256 per the elias-gamma run-length field).
type block struct {
	isLiteral bool
	items     []token.Token
}

// splitIntoBlocks groups tok into maximal same-type runs and splits each
// run into chunks of at most 256, matching the serialiser's block model.
// tok must already be free of runs whose length is an exact multiple of
// 256 unless they are the stream's final run — see fixPathologicalRuns.
func splitIntoBlocks(tok []token.Token) []block {
	var blocks []block

	i := 0
	for i < len(tok) {
		isLiteral := tok[i].IsLiteral()
		j := i
		for j < len(tok) && tok[j].IsLiteral() == isLiteral {
			j++
		}

		pos := i
		for pos < j {
			size := j - pos
			if size > 256 {
				size = 256
			}
			blocks = append(blocks, block{isLiteral: isLiteral, items: tok[pos : pos+size]})
			pos += size
		}

		i = j
	}

	return blocks
}

// Encode runs the optimal parser over data and serialises the result using
// the lz bitstream format.
func Encode(data []byte) ([]byte, error) {
	tbl, err := refs.Build(data)
	if err != nil {
		return nil, err
	}

	result := Parse(tbl)

	tok := make([]token.Token, len(result.Items))
	for i, item := range result.Items {
		tok[i] = item.Token
	}
	tok = fixPathologicalRuns(tok, data)

	blocks := splitIntoBlocks(tok)

	w := bitstream.NewWriter()
	w.AddHybrid(uint32(len(blocks)), 8)
	w.AddValue(uint32(result.NumFixedBits-1), 3)

	for _, b := range blocks {
		// A run of exactly 256 items is written as the elias-gamma
		// encoding of 256, which the reader sees as the sentinel 0.
		w.AddEliasGamma(uint32(len(b.items)))

		if b.isLiteral {
			for _, t := range b.items {
				w.AddValue(uint32(t.Value), 8)
			}
		} else {
			for _, t := range b.items {
				w.AddHybrid(uint32(t.Offset)-1, result.NumFixedBits)
				w.AddEliasGamma(uint32(t.LengthMinusOne))
			}
		}
	}

	return w.Bytes(), nil
}

// Decode reverses Encode, reconstructing the original byte sequence from a
// serialised lz bitstream.
func Decode(data []byte) ([]byte, error) {
	r := bitstream.NewReader(data)

	numBlocks := r.GetHybrid(8)
	numFixedBits := uint(r.GetValue(3)) + 1

	var out []byte

	isLiteral := true
	for i := uint16(0); i < numBlocks; i++ {
		rawRunLength := r.GetEliasGamma()
		runLength := int(rawRunLength)
		if rawRunLength == 0 {
			runLength = 256
		}

		if isLiteral {
			for n := 0; n < runLength; n++ {
				out = append(out, r.GetValue(8))
			}
		} else {
			for n := 0; n < runLength; n++ {
				offset := int(r.GetHybrid(numFixedBits)) + 1
				length := int(r.GetEliasGamma()) + 1
				if offset > len(out) {
					return nil, cerr.ErrMalformedInput
				}
				start := len(out) - offset
				for k := 0; k < length; k++ {
					out = append(out, out[start+k])
				}
			}
		}

		if rawRunLength != 0 {
			isLiteral = !isLiteral
		}

		if r.Err() != nil {
			return nil, cerr.ErrMalformedInput
		}
	}

	if r.Err() != nil {
		return nil, cerr.ErrMalformedInput
	}

	return out, nil
}
