// Package huffman implements a canonical Huffman codec with Kraft-based
// length limiting: tree construction by two-finger merge, canonical code
// assignment, a sparse decoder dictionary, and the serialised format that
// embeds a meta-coded length table ahead of the payload.
package huffman

import (
	"math"
	"sort"
)

// MaxCodeLength is the longest code length the canonical assignment and
// decoder support; the serialised format's meta table can only describe
// lengths 0..15.
const MaxCodeLength = 15

// leaf is one used symbol, kept alongside its original frequency so the
// tree walk can scatter the resulting depths back by symbol.
type leaf struct {
	symbol uint16
	freq   uint32
}

// node is one entry of the merge array: either one of the sorted leaves or
// an internal node appended during the merge. isLeaf disambiguates a node
// with both children at index 0, which would otherwise be indistinguishable
// from a genuine leaf.
type node struct {
	freq   uint32
	isLeaf bool
	left   int
	right  int
}

// BuildLengths constructs a canonical-ready code-length array from a
// frequency table. freqs is indexed by symbol; freqs[s] == 0 means symbol s
// is unused. maxCodeLength of 0 limits lengths to MaxCodeLength; any other
// value is the limit. Lengths over the limit are clamped to it via the Kraft
// length limiter.
//
// The returned slice has the same length as freqs; unused symbols get
// length 0.
func BuildLengths(freqs []uint32, maxCodeLength uint8) []uint8 {
	lengths := make([]uint8, len(freqs))

	leaves := make([]leaf, 0, len(freqs))
	for s, f := range freqs {
		if f > 0 {
			leaves = append(leaves, leaf{symbol: uint16(s), freq: f})
		}
	}

	switch len(leaves) {
	case 0:
		return lengths
	case 1:
		lengths[leaves[0].symbol] = 1
		return lengths
	}

	sort.SliceStable(leaves, func(i, j int) bool { return leaves[i].freq < leaves[j].freq })

	numLeaves := len(leaves)
	nodes := make([]node, numLeaves, numLeaves*2)
	for i, l := range leaves {
		nodes[i] = node{freq: l.freq, isLeaf: true}
	}

	leafIdx := 0
	treeIdx := numLeaves

	freqAt := func(i, end int) uint32 {
		if i >= end {
			return math.MaxUint32
		}
		return nodes[i].freq
	}

	selectSmaller := func() int {
		// Ties prefer the leaf queue: it produces a more balanced tree
		// and a lower maximum code length.
		if freqAt(leafIdx, numLeaves) <= freqAt(treeIdx, len(nodes)) {
			i := leafIdx
			leafIdx++
			return i
		}
		i := treeIdx
		treeIdx++
		return i
	}

	for (numLeaves-leafIdx)+(len(nodes)-treeIdx) > 1 {
		left := selectSmaller()
		right := selectSmaller()
		nodes = append(nodes, node{
			freq:  nodes[left].freq + nodes[right].freq,
			left:  left,
			right: right,
		})
	}

	depths := make([]int, len(nodes))
	root := len(nodes) - 1
	depths[root] = 0

	stack := []int{root}
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if nodes[i].isLeaf {
			continue
		}
		depths[nodes[i].left] = depths[i] + 1
		depths[nodes[i].right] = depths[i] + 1
		stack = append(stack, nodes[i].left, nodes[i].right)
	}

	leafOrderLengths := make([]uint8, numLeaves)
	maxLen := uint8(0)
	for i := 0; i < numLeaves; i++ {
		leafOrderLengths[i] = uint8(depths[i])
		if leafOrderLengths[i] > maxLen {
			maxLen = leafOrderLengths[i]
		}
	}

	limit := maxCodeLength
	if limit == 0 && maxLen > MaxCodeLength {
		limit = MaxCodeLength
	}
	if limit > 0 && maxLen > limit {
		// The limiter's input is ordered by ascending length (descending
		// frequency); the stable sort keeps equal lengths in leaf order.
		order := make([]int, numLeaves)
		for i := range order {
			order[i] = i
		}
		sort.SliceStable(order, func(a, b int) bool { return leafOrderLengths[order[a]] < leafOrderLengths[order[b]] })
		descFreqOrder := make([]uint8, numLeaves)
		for i, idx := range order {
			descFreqOrder[i] = leafOrderLengths[idx]
		}
		LengthLimit(descFreqOrder, limit)
		for i, idx := range order {
			leafOrderLengths[idx] = descFreqOrder[i]
		}
	}

	for i, l := range leaves {
		lengths[l.symbol] = leafOrderLengths[i]
	}

	return lengths
}
