//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

// Package cointoss implements a three-move commit-reveal coin toss
// that lets two parties agree on a shared random 32-byte value neither
// side could have biased alone: each party commits to its own coin
// share with a BLAKE3 digest, the shares are then disclosed, and each
// side verifies the peer's disclosed share against its earlier
// commitment before XORing the two shares together.
package cointoss

import (
	"errors"

	"github.com/Kaladin13/mpc-core/xhash"
)

// CoinLen is the byte length of a coin share and of the resulting
// shared coin.
const CoinLen = 32

// ErrCommitmentMismatch is returned by Finish when the peer's
// disclosed share does not match its earlier commitment.
var ErrCommitmentMismatch = errors.New("cointoss: commitment does not match disclosed share")

// Share is a party's local random coin together with the commitment it
// has already published to the peer.
type Share struct {
	coin       [CoinLen]byte
	commitment [xhash.OutLen]byte
}

// Init samples no randomness itself: callers supply their own coin so
// that the package composes with any session RNG. It returns the
// Share to keep locally and the commitment message to send first.
func Init(coin [CoinLen]byte) (Share, [xhash.OutLen]byte) {
	s := Share{coin: coin, commitment: xhash.FullDigest(coin[:])}
	return s, s.commitment
}

// Disclose returns the message to send at the protocol's second step,
// revealing the coin committed to at Init.
func Disclose(s Share) [CoinLen]byte {
	return s.coin
}

// Finish verifies peerCommitment against the peerCoin disclosed at the
// second step and, on success, returns the shared coin: the local
// share XORed with the peer's.
func Finish(s Share, peerCommitment [xhash.OutLen]byte, peerCoin [CoinLen]byte) ([CoinLen]byte, error) {
	if xhash.FullDigest(peerCoin[:]) != peerCommitment {
		return [CoinLen]byte{}, ErrCommitmentMismatch
	}
	var out [CoinLen]byte
	for i := range out {
		out[i] = s.coin[i] ^ peerCoin[i]
	}
	return out, nil
}
