//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package otext

import (
	"crypto/cipher"

	"golang.org/x/crypto/chacha20"

	"github.com/Kaladin13/mpc-core/baseot"
	"github.com/Kaladin13/mpc-core/xhash"
)

// newColumnStream expands a base-OT chosen message (a baseot.MsgLen
// seed) into a ChaCha20 key stream. The 128-bit seed is widened to the
// cipher's 256-bit key by a single BLAKE3 call; the nonce is fixed at
// zero because every column's seed is drawn independently and used for
// exactly one stream, so key reuse across distinct seeds cannot arise.
func newColumnStream(seed [baseot.MsgLen]byte) (cipher.Stream, error) {
	key := xhash.FullDigest(seed[:])
	var nonce [chacha20.NonceSize]byte
	return chacha20.NewUnauthenticatedCipher(key[:], nonce[:])
}

// drawBlock reads the next 16 bytes of keystream from s as a
// little-endian 128-bit word.
func drawBlock(s cipher.Stream) [16]byte {
	var buf [16]byte
	s.XORKeyStream(buf[:], buf[:])
	return buf
}
