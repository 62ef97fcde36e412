package huffman

import "github.com/bytepack/crunch/internal/bitstream"

// Codes holds the canonical encoder table: for each symbol, the bit
// pattern and length to write. Unused symbols have Length 0.
type Codes struct {
	Values  []uint32
	Lengths []uint8
}

// BuildCanonical assigns canonical codes from a code-length array: symbols
// are ordered (length ascending, symbol ascending) and assigned sequential
// counters, shifting left whenever the length advances.
func BuildCanonical(lengths []uint8) *Codes {
	codes := &Codes{
		Values:  make([]uint32, len(lengths)),
		Lengths: append([]uint8(nil), lengths...),
	}

	maxLen := uint8(0)
	for _, l := range lengths {
		if l > maxLen {
			maxLen = l
		}
	}

	code := uint32(0)
	for length := uint8(1); length <= maxLen; length++ {
		for s, l := range lengths {
			if l == length {
				codes.Values[s] = code
				code++
			}
		}
		code <<= 1
	}

	return codes
}

// Write emits symbol's canonical code to w.
func (c *Codes) Write(w *bitstream.Writer, symbol int) {
	w.AddValue(c.Values[symbol], uint(c.Lengths[symbol]))
}

// Decoder resolves canonical codes back to symbols by bucketing candidates
// per bit length, per §4.8: num_codes_of_length counts symbols of each
// length, and dictionary lists them in canonical order.
type Decoder struct {
	numCodesOfLength [MaxCodeLength + 1]uint32
	base             [MaxCodeLength + 1]uint32
	dictionary       []uint16
	maxLength        uint8
}

// NewDecoder builds a Decoder from a code-length array indexed by symbol.
func NewDecoder(lengths []uint8) *Decoder {
	d := &Decoder{}

	for _, l := range lengths {
		if l > 0 {
			d.numCodesOfLength[l]++
			if l > d.maxLength {
				d.maxLength = l
			}
		}
	}

	var base uint32
	for length := uint8(1); length <= MaxCodeLength; length++ {
		d.base[length] = base
		base += d.numCodesOfLength[length]
	}

	d.dictionary = make([]uint16, base)
	cursor := append([]uint32(nil), d.base[:]...)
	for s, l := range lengths {
		if l == 0 {
			continue
		}
		d.dictionary[cursor[l]] = uint16(s)
		cursor[l]++
	}

	return d
}

// ReadSymbol decodes one canonical-coded symbol from r.
func (d *Decoder) ReadSymbol(r *bitstream.Reader) uint16 {
	length := uint8(1)
	v := r.GetBit()
	for {
		if length > MaxCodeLength {
			r.Fail()
			return 0
		}
		count := d.numCodesOfLength[length]
		if v < count {
			return d.dictionary[d.base[length]+v]
		}
		v -= count
		v = v<<1 | r.GetBit()
		length++
		if r.Err() != nil {
			return 0
		}
	}
}
