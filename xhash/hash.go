//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

// Package xhash implements the correlation-robust hash family used to
// build garbled tables and to derive leaky-AND masks. All operations
// are built on a single extendable-output hash (BLAKE3) and are
// domain-separated by the number and order of their inputs: H(m),
// H(k1,k2), and HGate(labelX, labelY, gate, row) must never collide
// across call shapes.
package xhash

import (
	"fmt"
	"io"

	"github.com/zeebo/blake3"

	"github.com/Kaladin13/mpc-core/mpcerr"
	"github.com/Kaladin13/mpc-core/types"
)

// OutLen is the byte length of a full BLAKE3 digest, used for the
// coin-tossing commitment (32 bytes).
const OutLen = 32

// H hashes a single 128-bit block and returns a 128-bit digest. It is
// the one-argument member of the hash family: callers feed it either a
// MacType or a KeyType depending on which side of the IT-MAC relation
// they are hashing (leaky-AND hashes both, see package leakyand).
func H(m types.Block128) types.MacType {
	data := m.Bytes()
	h := blake3.New()
	h.Write(data[:])
	return types.MacType(readBlock(h))
}

// HKey hashes a 128-bit key, a thin alias of H for call-site clarity.
func HKey(k types.KeyType) types.MacType {
	return H(types.Block128(k))
}

// HMac hashes a 128-bit MAC, a thin alias of H for call-site clarity.
func HMac(m types.MacType) types.MacType {
	return H(types.Block128(m))
}

// H2 hashes two 128-bit keys, in order, and returns a 128-bit digest.
// H2(k1,k2) != H2(k2,k1) for almost all distinct inputs because the
// two halves are written to the hasher in sequence, not combined
// commutatively.
func H2(k1, k2 types.KeyType) types.MacType {
	d1 := types.Block128(k1).Bytes()
	d2 := types.Block128(k2).Bytes()
	h := blake3.New()
	h.Write(d1[:])
	h.Write(d2[:])
	return types.MacType(readBlock(h))
}

// GateShare is the output of HGate: a candidate authenticated-bit
// share for one row of one AND gate's garbled table.
type GateShare struct {
	Mac types.MacType
	Key types.KeyType
	Bit bool
}

// ErrZeroBlock is returned when a garbling hash call yields a
// forbidden all-zero MAC or Key half. The spec treats this as a fatal
// precondition violation: a zero block is a catastrophic collision
// signal, not something to silently retry around.
var ErrZeroBlock = fmt.Errorf("%w: xhash: hash output was the zero block", mpcerr.ErrProtocolInvariant)

// HGate computes one row of an AND gate's garbled table: the XOF
// output of (labelX, labelY, gate, row), split into a 16-byte MAC
// half, a 16-byte Key half, and a 1-byte (bit-valued) tail, consumed
// from the hash's extendable output in that order. Domain separation
// across gates and rows comes entirely from the gate index and row
// byte being part of the hashed message, following
// garbling_hash::new in the reference implementation.
func HGate(labelX, labelY types.WireLabel, gate uint64, row byte) (GateShare, error) {
	lx := types.Block128(labelX).Bytes()
	ly := types.Block128(labelY).Bytes()

	var gateBuf [8]byte
	putUint64LE(gateBuf[:], gate)

	h := blake3.New()
	h.Write(lx[:])
	h.Write(ly[:])
	h.Write(gateBuf[:])
	h.Write([]byte{row})

	xof := h.Digest()

	var macBuf, keyBuf [16]byte
	var bitBuf [1]byte
	if _, err := io.ReadFull(xof, macBuf[:]); err != nil {
		return GateShare{}, err
	}
	if _, err := io.ReadFull(xof, keyBuf[:]); err != nil {
		return GateShare{}, err
	}
	if _, err := io.ReadFull(xof, bitBuf[:]); err != nil {
		return GateShare{}, err
	}

	var mac, key types.Block128
	mac.SetBytes(macBuf[:])
	key.SetBytes(keyBuf[:])
	if mac.IsZero() || key.IsZero() {
		return GateShare{}, ErrZeroBlock
	}

	return GateShare{
		Mac: types.MacType(mac),
		Key: types.KeyType(key),
		Bit: bitBuf[0]&1 == 1,
	}, nil
}

// FullDigest returns the full 32-byte BLAKE3 digest of data, used for
// the coin-tossing commitment (the only place the core needs more
// than a 128-bit hash output).
func FullDigest(data []byte) [OutLen]byte {
	var out [OutLen]byte
	h := blake3.New()
	h.Write(data)
	sum := h.Sum(nil)
	copy(out[:], sum)
	return out
}

func readBlock(h *blake3.Hasher) types.Block128 {
	xof := h.Digest()
	var buf [16]byte
	io.ReadFull(xof, buf[:])
	var b types.Block128
	b.SetBytes(buf[:])
	return b
}

func putUint64LE(buf []byte, v uint64) {
	for i := 0; i < 8; i++ {
		buf[i] = byte(v >> uint(8*i))
	}
}
