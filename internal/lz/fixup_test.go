package lz

import (
	"testing"

	"github.com/bytepack/crunch/internal/token"
)

// assertNoBadRun fails the test if any non-final maximal same-type run in
// tok has a length that is an exact, positive multiple of 256.
func assertNoBadRun(t *testing.T, tok []token.Token) {
	t.Helper()
	i := 0
	for i < len(tok) {
		isLiteral := tok[i].IsLiteral()
		j := i
		for j < len(tok) && tok[j].IsLiteral() == isLiteral {
			j++
		}
		runLength := j - i
		isLastRun := j == len(tok)
		if !isLastRun && runLength > 0 && runLength%256 == 0 {
			t.Fatalf("run [%d:%d) (isLiteral=%v, length=%d) is a non-final multiple of 256", i, j, isLiteral, runLength)
		}
		i = j
	}
}

func totalLength(tok []token.Token) uint32 {
	var n uint32
	for _, t := range tok {
		n += t.Length()
	}
	return n
}

func TestFixPathologicalRunsLiteralRun(t *testing.T) {
	tok := make([]token.Token, 0, 259)
	for i := 0; i < 256; i++ {
		tok = append(tok, token.Literal(byte(i)))
	}
	tok = append(tok, token.Reference(1, 4), token.Reference(1, 3))
	for i := 0; i < 10; i++ {
		tok = append(tok, token.Literal(byte(i)))
	}

	data := make([]byte, totalLength(tok))
	for i := range data {
		data[i] = byte(i)
	}

	want := totalLength(tok)
	fixed := fixPathologicalRuns(tok, data)

	assertNoBadRun(t, fixed)
	if totalLength(fixed) != want {
		t.Fatalf("byte coverage changed: got %d, want %d", totalLength(fixed), want)
	}
}

func TestFixPathologicalRunsReferenceRun(t *testing.T) {
	tok := make([]token.Token, 0, 263)
	for i := 0; i < 3; i++ {
		tok = append(tok, token.Literal(byte(i)))
	}
	for i := 0; i < 256; i++ {
		tok = append(tok, token.Reference(1, 1))
	}
	for i := 0; i < 4; i++ {
		tok = append(tok, token.Literal(byte(i)))
	}

	data := make([]byte, totalLength(tok))
	for i := range data {
		data[i] = byte(i)
	}

	want := totalLength(tok)
	fixed := fixPathologicalRuns(tok, data)

	assertNoBadRun(t, fixed)
	if totalLength(fixed) != want {
		t.Fatalf("byte coverage changed: got %d, want %d", totalLength(fixed), want)
	}
}

func TestFixPathologicalRunsFinalRunUntouched(t *testing.T) {
	tok := make([]token.Token, 0, 256)
	for i := 0; i < 256; i++ {
		tok = append(tok, token.Literal(byte(i)))
	}
	data := make([]byte, 256)

	fixed := fixPathologicalRuns(tok, data)

	if len(fixed) != 256 {
		t.Fatalf("final run was modified: got %d tokens, want 256", len(fixed))
	}
}
