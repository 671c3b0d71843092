//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package session

import "github.com/Kaladin13/mpc-core/types"

// ceilBatches returns the number of K-wide batches needed to cover n
// items, following the specification's "one batch per K AND gates"
// sizing rule generalized to any K-wide quantity (evaluator input
// bits, AND gates). Zero items need zero batches.
func ceilBatches(n int) int {
	if n == 0 {
		return 0
	}
	return (n + types.K - 1) / types.K
}

// chunkBits packs the idx-th K-wide slice of bits into a Block128,
// zero-padded past the end of bits. Callers only ask for idx values
// within range of ceilBatches(len(bits)), so the padding only ever
// covers the final, partial batch.
func chunkBits(bits []bool, idx int) types.Block128 {
	start := idx * types.K
	var b types.Block128
	for i := 0; i < types.K; i++ {
		pos := start + i
		if pos >= len(bits) {
			break
		}
		if bits[pos] {
			b = b.SetBit(i, 1)
		}
	}
	return b
}
