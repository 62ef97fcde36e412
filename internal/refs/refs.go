// Package refs builds, for each position in a source buffer, the list of
// candidate tokens (one literal plus a strictly-lengthening sequence of
// back-references) that the LZ parser chooses between.
package refs

import (
	"github.com/bytepack/crunch/internal/cerr"
	"github.com/bytepack/crunch/internal/token"
)

// Table maps a source position to its ordered list of candidate tokens: the
// literal first, then references in strictly increasing length.
type Table struct {
	tokens [][]token.Token
}

// Len returns the number of source positions indexed.
func (t *Table) Len() int {
	return len(t.tokens)
}

// Tokens returns the candidate token list for position i.
func (t *Table) Tokens(i int) []token.Token {
	return t.tokens[i]
}

// Build indexes every 16-bit byte-pair value in data and, for each
// position, enumerates the literal plus the dominating back-references
// found by scanning nearer-to-farther through earlier occurrences of the
// same byte pair. data must be at least 2 bytes long.
func Build(data []byte) (*Table, error) {
	n := len(data)
	if n < 2 {
		return nil, cerr.ErrInputTooSmall
	}

	// buckets[key] holds, in ascending order, every position j < current i
	// at which the byte pair identified by key begins. It is grown
	// incrementally so that at the time position i is processed it only
	// contains strictly earlier positions.
	buckets := make([][]int32, 1<<16)

	tokens := make([][]token.Token, n)

	for i := 0; i < n; i++ {
		list := make([]token.Token, 1, 4)
		list[0] = token.Literal(data[i])

		if i < n-1 {
			key := uint16(data[i]) | uint16(data[i+1])<<8
			positions := buckets[key]

			maxLen := n - i
			if maxLen > 256 {
				maxLen = 256
			}

			bestLengthMinusOne := 0
			for m := len(positions) - 1; m >= 0; m-- {
				j := int(positions[m])
				length := 1
				for length < maxLen && data[i+length] == data[j+length] {
					length++
				}
				if length-1 > bestLengthMinusOne {
					list = append(list, token.Reference(uint16(i-j), uint8(length-1)))
					bestLengthMinusOne = length - 1
				}
			}

			buckets[key] = append(buckets[key], int32(i))
		}

		tokens[i] = list
	}

	return &Table{tokens: tokens}, nil
}
