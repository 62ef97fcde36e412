package huffman

// LengthLimit redistributes lengths, ordered by ascending length (i.e.
// descending frequency), so that none exceeds L while preserving the Kraft
// inequality Σ 2^(L-len[i]) ≤ 2^L. It mutates lengths in place.
func LengthLimit(lengths []uint8, L uint8) {
	if len(lengths) == 0 {
		return
	}

	maxK := uint64(1) << L

	kraftTerm := func(length uint8) uint64 {
		return uint64(1) << (L - length)
	}

	// Pass 1: clamp every length to L.
	var k uint64
	for i, length := range lengths {
		if length > L {
			lengths[i] = L
		}
		k += kraftTerm(lengths[i])
	}

	// Pass 2: lengthen from the front until the Kraft sum drops below
	// 2^L.
	for i := 0; i < len(lengths) && k >= maxK; i++ {
		for lengths[i] < L && k >= maxK {
			lengths[i]++
			k -= kraftTerm(lengths[i])
		}
	}

	// Pass 3: shorten from the back wherever that keeps the Kraft sum
	// below 2^L.
	for i := len(lengths) - 1; i >= 0; i-- {
		for lengths[i] > 1 {
			candidate := lengths[i] - 1
			term := kraftTerm(candidate)
			if k+term >= maxK {
				break
			}
			k += term
			lengths[i] = candidate
		}
	}
}
