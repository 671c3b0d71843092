//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package session

import (
	"github.com/Kaladin13/mpc-core/circuit"
	"github.com/Kaladin13/mpc-core/garble"
	"github.com/Kaladin13/mpc-core/leakyand"
	"github.com/Kaladin13/mpc-core/otext"
	"github.com/Kaladin13/mpc-core/types"
)

// Message is the session's wire envelope: a round's payload, carrying
// only the fields that round actually uses. It plays the role the
// teacher's p2p.Conn send/receive pair plays for a live connection;
// here the driver (package mpccore's Simulate, or any caller wiring
// the two sides over a real transport) passes values of this type
// directly between Run calls instead of framing them with
// SendUint32/SendData, since transport framing is outside this
// package's scope.
type Message struct {
	// Fingerprint is sent once, at session start, by the contributor.
	Fingerprint *circuit.Fingerprint
	// CoinCommit carries a coin-toss commitment: the contributor's at
	// session start, the evaluator's one round later.
	CoinCommit *[32]byte
	// CoinReveal carries a coin-toss disclosure, the move after the
	// matching CoinCommit.
	CoinReveal *[32]byte

	// OtInit is the evaluator's leaky-delta OT-extension setup message.
	OtInit *otext.Init
	// OtReply is the contributor's leaky-delta OT-extension setup
	// message, answering OtInit.
	OtReply *otext.Reply
	// OtInitReply is the evaluator's final OT-extension setup message.
	OtInitReply *otext.InitReply
	// EvalBatchU is this round's correlation-extension batch, carrying
	// either a chunk of the evaluator's own input bits or, during an
	// AND-triple batch, a fresh self-test nonce blinded behind the
	// OT-extension streams. Reused across both batch kinds because both
	// are just "the next K bits the receiver is authenticating".
	EvalBatchU *[types.K]types.Block128

	// AndRandomReveal is the evaluator's plaintext self-test nonce for
	// the AND-triple batch this round authenticates: unlike the
	// evaluator's real input bits, it carries no secret and is
	// disclosed in the same message as EvalBatchU.
	AndRandomReveal *types.Block128
	// AndRandomBits and AndHashes are the contributor's reply to an
	// AND-triple batch's hash phase: randomBits is the one-time mask
	// ComputeHashes used, and AndHashes are its two-row messages per
	// authenticated bit of the batch.
	AndRandomBits *types.Block128
	AndHashes     *leakyand.Hashes
	// AndShareReveal is the evaluator's derived leaky-AND share for the
	// batch, sent back so the contributor can recompute the same share
	// from its own side of the OT-extension relation and catch any
	// disagreement between the two (see DESIGN.md).
	AndShareReveal *types.Block128

	// ContribLabels discloses the contributor's own input-wire labels,
	// in contributor-input order: since the contributor knows its own
	// bits, no OT is needed for these.
	ContribLabels []garble.EvalWire
	// AndTables carries one garbled table per AND gate, in circuit
	// order.
	AndTables []garble.Table

	// OutputReveal carries, for each output gate in circuit order, the
	// point-and-permute tag of the contributor's base label: the
	// evaluator XORs this against the tag of its own recovered label
	// to decode the real output bit.
	OutputReveal []bool
}
