//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

// Package otext implements leaky-Δ OT extension: K base OTs
// (package baseot), amortized via IKNP-style correlation, into
// arbitrarily many authenticated bits. One party holds a session-fixed
// Δ (types.Delta) and receives a KeyType per batch bit; the other
// holds the bits themselves and receives a MacType per bit, such that
// Mac == Key ^ (bit * Δ) for every bit produced.
//
// The setup phase mirrors the base OT's own three moves, batched
// across K columns: the party without Δ acts as K base-OT senders and
// the Δ-holder acts as K base-OT receivers, choosing bit i of Δ as its
// i-th choice bit. Once setup completes, both sides seed K independent
// ChaCha20 streams from the column seeds and derive new authenticated
// bits from them with one message (the K u values) per batch, following the
// correlated-OT-extension structure of the reference IKNP
// implementation (see otext/*_test.go for the cross-checked protocol).
package otext

import (
	"crypto/cipher"
	"io"

	"github.com/Kaladin13/mpc-core/baseot"
	"github.com/Kaladin13/mpc-core/types"
)

// Receiver is the party without Δ. It holds the plaintext bits of
// every batch and, after setup, produces a MacType per bit.
type Receiver struct {
	senders [types.K]*baseot.Sender
	seed0   [types.K][baseot.MsgLen]byte
	seed1   [types.K][baseot.MsgLen]byte
	stream0 [types.K]cipher.Stream
	stream1 [types.K]cipher.Stream
}

// Sender is the party holding Δ. After setup it produces a KeyType per
// bit, matching the Receiver's MacType for the same bit index.
type Sender struct {
	delta   types.Delta
	recvrs  [types.K]*baseot.Receiver
	seed    [types.K][baseot.MsgLen]byte
	streams [types.K]cipher.Stream
}

// NewReceiver starts the setup phase from the side without Δ: it creates
// K base-OT sender states (step 1 of the spec's three-move setup) and
// returns the Init message to send to the Δ-holder.
func NewReceiver(rng io.Reader) (*Receiver, Init, error) {
	var r Receiver
	var init Init
	for i := 0; i < types.K; i++ {
		s, colInit, err := baseot.NewSender(rng)
		if err != nil {
			return nil, Init{}, err
		}
		if _, err := io.ReadFull(rng, r.seed0[i][:]); err != nil {
			return nil, Init{}, err
		}
		if _, err := io.ReadFull(rng, r.seed1[i][:]); err != nil {
			return nil, Init{}, err
		}
		r.senders[i] = s
		init.Cols[i] = colInit
	}
	return &r, init, nil
}

// NewSender consumes the Receiver's Init message and the party's
// session Δ, choosing bit i of Δ as the i-th base-OT choice bit (step
// 2). It returns the Reply message to send back.
func NewSender(rng io.Reader, delta types.Delta, init Init) (*Sender, Reply, error) {
	var s Sender
	s.delta = delta
	var reply Reply
	for i := 0; i < types.K; i++ {
		choice := delta.Bit(i) == 1
		recv, colReply, err := baseot.InitReceiver(rng, init.Cols[i], choice)
		if err != nil {
			return nil, Reply{}, err
		}
		s.recvrs[i] = recv
		reply.Cols[i] = colReply
	}
	return &s, reply, nil
}

// CompleteReceiver consumes the Sender's Reply, masking the two random
// seeds of every column behind the base OT so only the Δ-selected one
// will decrypt (step 3), and seeds the K stream pairs the Receiver
// will draw batch material from.
func (r *Receiver) CompleteReceiver(reply Reply) (InitReply, error) {
	var out InitReply
	for i := 0; i < types.K; i++ {
		colInitReply, err := r.senders[i].Send(reply.Cols[i], r.seed0[i], r.seed1[i])
		if err != nil {
			return InitReply{}, err
		}
		out.Cols[i] = colInitReply

		s0, err := newColumnStream(r.seed0[i])
		if err != nil {
			return InitReply{}, err
		}
		s1, err := newColumnStream(r.seed1[i])
		if err != nil {
			return InitReply{}, err
		}
		r.stream0[i] = s0
		r.stream1[i] = s1
	}
	return out, nil
}

// CompleteSender consumes the Receiver's InitReply, decrypting the
// Δ-selected seed of every column and seeding the Sender's K streams.
// After this call, Sender is ready to produce batches.
func (s *Sender) CompleteSender(initReply InitReply) error {
	for i := 0; i < types.K; i++ {
		seed := s.recvrs[i].Recv(initReply.Cols[i])
		s.seed[i] = seed
		stream, err := newColumnStream(seed)
		if err != nil {
			return err
		}
		s.streams[i] = stream
	}
	return nil
}

// NextBatch draws K fresh authenticated bits, with x supplying their
// K plaintext values (bit j of x is the j-th produced bit). For each
// column i it draws two blocks from the column's streams and publishes
// u_i = t0_i ^ t1_i ^ x; the K rows t0_i, bit-transposed, become the
// MACs of the K produced bits. u must be sent to the Sender's
// NextBatch.
func (r *Receiver) NextBatch(x types.Block128) (macs [types.K]types.MacType, u [types.K]types.Block128) {
	var rows [types.K]types.Block128
	for i := 0; i < types.K; i++ {
		var t0, t1 types.Block128
		t0.SetBytes(sliceOf(drawBlock(r.stream0[i])))
		t1.SetBytes(sliceOf(drawBlock(r.stream1[i])))
		rows[i] = t0
		u[i] = t0.Xor(t1).Xor(x)
	}
	cols := matrixTranspose(rows)
	for j := 0; j < types.K; j++ {
		macs[j] = types.MacType(cols[j])
	}
	return macs, u
}

// NextBatch consumes the Receiver's u values for this batch and
// produces the K keys matching its MACs: Mac_j == Key_j ^ (bit_j * Δ)
// for every j, where bit_j is bit j of the Receiver's x.
func (s *Sender) NextBatch(u [types.K]types.Block128) (keys [types.K]types.KeyType) {
	var rows [types.K]types.Block128
	for i := 0; i < types.K; i++ {
		var q types.Block128
		q.SetBytes(sliceOf(drawBlock(s.streams[i])))
		if s.delta.Bit(i) == 1 {
			q = q.Xor(u[i])
		}
		rows[i] = q
	}
	cols := matrixTranspose(rows)
	for j := 0; j < types.K; j++ {
		keys[j] = types.KeyType(cols[j])
	}
	return keys
}

// matrixTranspose treats rows as a K x K bit matrix (row i's bit j is
// rows[i].Bit(j)) and returns its transpose, packed the same way
// (output column j's bit i is rows[i].Bit(j)).
func matrixTranspose(rows [types.K]types.Block128) (cols [types.K]types.Block128) {
	for i := 0; i < types.K; i++ {
		for j := 0; j < types.K; j++ {
			if rows[i].Bit(j) == 1 {
				cols[j] = cols[j].SetBit(i, 1)
			}
		}
	}
	return cols
}

func sliceOf(b [16]byte) []byte { return b[:] }
