//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

// Package leakyand implements the leaky-AND sub-protocol that turns a
// batch of K authenticated bits and a locally-known batch of plaintext
// bits into their bitwise AND, using only a
// single message in each direction and the correlation-robust hash
// family from package xhash. It is "leaky" because the message that
// carries the masked bit can reveal one bit of the recipient's
// plaintext input on a malicious deviation; callers are expected to
// pair it with the session's consistency checks rather than trust it
// in isolation.
package leakyand

import (
	"github.com/Kaladin13/mpc-core/types"
	"github.com/Kaladin13/mpc-core/xhash"
)

// Hashes holds the K two-row messages produced by ComputeHashes, one
// pair per authenticated bit in the batch.
type Hashes [types.K][2]types.MacType

// ComputeHashes is run by the party holding Δ and the K keys of the
// peer's authenticated bits (the "x" operand), combined with its own
// locally-known bits for the "y" operand of the AND. randomBits is a
// one-time mask, fresh per batch, that hides this party's share of the
// result from the hash values alone.
func ComputeHashes(delta types.Delta, randomBits, yBits types.Block128, keys [types.K]types.KeyType) Hashes {
	var out Hashes
	for i := 0; i < types.K; i++ {
		r := randomBits.Bit(i)
		y := yBits.Bit(i)

		h0 := xhash.HKey(keys[i])
		out[i][0] = types.MacType(types.Block128(h0).SetBit(0, types.Block128(h0).Bit(0)^r))

		flippedKey := delta.Xor(types.MacType(keys[i]))
		h1 := xhash.HMac(flippedKey)
		out[i][1] = types.MacType(types.Block128(h1).SetBit(0, types.Block128(h1).Bit(0)^r^y))
	}
	return out
}

// DeriveShares is run by the party holding the K authenticated bits
// themselves (the "x" operand, known in the clear to this party) and
// their MACs against the peer's Δ. It consumes the peer's Hashes and
// the same randomBits value the peer used; XORing that mask back out
// of the per-bit hash comparisons leaves the full bitwise (x AND y) of
// the batch, which is what it returns.
func DeriveShares(randomBits, xBits types.Block128, macs [types.K]types.MacType, hashes Hashes) types.Block128 {
	var result types.Block128
	for i := 0; i < types.K; i++ {
		idx := xBits.Bit(i)
		h := xhash.HMac(macs[i])
		diff := types.Block128(hashes[i][idx]).Xor(types.Block128(h))
		var isSet uint
		if !diff.IsZero() {
			isSet = 1
		}
		result = result.SetBit(i, isSet)
	}
	return result.Xor(randomBits)
}
