// Package lz implements the optimal LZ77-style parser: a dynamic program,
// swept over eight candidate hybrid-code fixed-bit widths, that selects the
// token sequence minimising the exact serialised bitstream cost.
package lz

import (
	"math"

	"github.com/bytepack/crunch/internal/bitstream"
	"github.com/bytepack/crunch/internal/refs"
	"github.com/bytepack/crunch/internal/token"
)

// minFixedBits and maxFixedBits bound the hybrid-code parameter the parser
// sweeps over; the serialised format stores num_fixed_bits-1 in 3 bits.
const (
	minFixedBits = 1
	maxFixedBits = 8
)

// Item is one chosen step of a parse: the token at that position, the
// length of the same-typed run it starts (its tally), and the total bit
// cost of the stream from this position to the end.
type Item struct {
	Token     token.Token
	Tally     uint32
	TotalCost uint64
}

// Result is the output of Parse: the chosen items in source order, and the
// num_fixed_bits parameter the serialiser must use for reference offsets.
type Result struct {
	Items        []Item
	NumFixedBits uint
}

// tallyCost is the bit cost of the Elias-gamma encoded run-length prefixing
// a block, for a run of the given tally (tally is always in [1, 256]).
func tallyCost(tally uint32) uint64 {
	return uint64(bitstream.EliasGammaCost(tally))
}

// tokenCost returns the bit cost of token t under hybrid-code parameter k,
// not counting its block's tally prefix.
func tokenCost(t token.Token, k uint) uint64 {
	if t.IsLiteral() {
		return 8
	}
	offsetValue := uint32(t.Offset) - 1
	lengthValue := uint32(t.LengthMinusOne)
	return uint64(bitstream.HybridCost(offsetValue, k)) + uint64(bitstream.EliasGammaCost(lengthValue))
}

// state is one entry of the DP table: the item chosen at a position plus
// the number of source bytes it covers.
type state struct {
	item   Item
	length uint32
}

// runDP runs the position-indexed dynamic program for a single
// num_fixed_bits value k, returning best[0..N] (best[N] is the zero-cost
// sentinel).
func runDP(tbl *refs.Table, k uint) []state {
	n := tbl.Len()
	best := make([]state, n+1)
	// best[n] is the sentinel: tally 0, total cost 0. Its token value is
	// never inspected because every lookup guards i+length == n first.

	offsetBudget := uint32(256) << k

	for i := n - 1; i >= 0; i-- {
		best[i].item.TotalCost = math.MaxUint64

		candidates := tbl.Tokens(i)
		literal := candidates[0]

		considerLength := func(t token.Token, length uint32) {
			nextIdx := i + int(length)
			next := best[nextIdx]

			sameType := nextIdx != n && token.SameType(t, next.item.Token)

			var newTally uint32
			if sameType {
				newTally = (next.item.Tally % 256) + 1
			} else {
				newTally = 1
			}

			cost := tokenCost(t, k) + tallyCost(newTally) + next.item.TotalCost
			if newTally != 1 {
				cost -= tallyCost(next.item.Tally)
			}

			if cost < best[i].item.TotalCost {
				best[i] = state{
					item: Item{
						Token:     t,
						Tally:     newTally,
						TotalCost: cost,
					},
					length: length,
				}
			}
		}

		considerLength(literal, 1)

		for _, ref := range candidates[1:] {
			if uint32(ref.Offset) > offsetBudget {
				continue
			}
			maxLength := ref.Length()
			for length := maxLength; length >= 2; length-- {
				considerLength(ref.WithLength(length), length)
			}
		}
	}

	return best
}

// traceOut walks best from position 0 to N, emitting the chosen items in
// source order.
func traceOut(best []state, n int) []Item {
	items := make([]Item, 0, n)
	for i := 0; i < n; {
		st := best[i]
		items = append(items, st.item)
		i += int(st.length)
	}
	return items
}

// Parse runs the optimal parser over tbl, sweeping num_fixed_bits from 1
// to 8 and keeping the cheapest overall encoding.
func Parse(tbl *refs.Table) Result {
	n := tbl.Len()

	var bestResult Result
	bestCost := uint64(math.MaxUint64)

	for k := uint(minFixedBits); k <= maxFixedBits; k++ {
		best := runDP(tbl, k)
		cost := best[0].item.TotalCost
		if cost < bestCost {
			bestCost = cost
			bestResult = Result{
				Items:        traceOut(best, n),
				NumFixedBits: k,
			}
		}
	}

	return bestResult
}
