package lz

import "github.com/bytepack/crunch/internal/token"

// fixPathologicalRuns rewrites tok so that no non-final maximal run of
// same-typed tokens has a length that is an exact multiple of 256.
//
// The bitstream's run-length field is Elias-gamma coded over [1, 256], and
// a block of exactly 256 reads back as the sentinel 0, which deliberately
// suppresses the type toggle the next block would otherwise trigger. That
// suppression is correct when the block genuinely continues the same run,
// but wrong when the block is the run's true last one and a different-typed
// run follows: the decoder would stay on the wrong expected type and
// desync. Since every block but a run's last must be exactly 256 anyway (to
// avoid toggling away from the run's own type mid-run), a run whose length
// lands exactly on a multiple of 256 has no valid chunking at all — its
// final chunk is forced to be 256 too.
//
// The fix moves one token across the run boundary, re-expressed as
// literals (always valid: a literal can hold any byte), until no run is
// left landing on a multiple of 256. Every fix fully consumes one
// reference token, so the number of reference tokens strictly decreases
// and the loop terminates.
func fixPathologicalRuns(tok []token.Token, data []byte) []token.Token {
	for {
		fixedSomething := false
		pos := 0

		for i := 0; i < len(tok); {
			isLiteral := tok[i].IsLiteral()
			j := i
			p := pos
			for j < len(tok) && tok[j].IsLiteral() == isLiteral {
				p += int(tok[j].Length())
				j++
			}
			runLength := j - i
			isLastRun := j == len(tok)

			if !isLastRun && runLength > 0 && runLength%256 == 0 {
				if isLiteral {
					next := tok[j]
					lits := literalsFor(next, data, p)
					tail := append([]token.Token{}, tok[j+1:]...)
					tok = append(tok[:j], append(lits, tail...)...)
				} else {
					last := tok[j-1]
					lastStart := p - int(last.Length())
					lits := literalsFor(last, data, lastStart)
					tail := append([]token.Token{}, tok[j:]...)
					tok = append(tok[:j-1], append(lits, tail...)...)
				}
				fixedSomething = true
				break
			}

			pos = p
			i = j
		}

		if !fixedSomething {
			return tok
		}
	}
}

// literalsFor expands t, a token starting at source position start, into
// one literal token per byte it covers.
func literalsFor(t token.Token, data []byte, start int) []token.Token {
	length := int(t.Length())
	lits := make([]token.Token, length)
	for k := 0; k < length; k++ {
		lits[k] = token.Literal(data[start+k])
	}
	return lits
}
