//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

// Package baseot implements the single base 1-out-of-2 oblivious
// transfer instance that bootstraps the leaky-Δ OT extension
// (package otext). It follows the Chou-Orlandi protocol, "The
// Simplest Protocol for Oblivious Transfer"
// (https://eprint.iacr.org/2015/267.pdf), over the P-256 curve: a
// three-move Diffie-Hellman handshake in which the sender publishes a
// public point, the receiver blinds its choice bit into the point it
// returns, and the sender masks both candidate 16-byte messages so
// that only the chosen one decrypts.
package baseot

import (
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math/big"
)

// MsgLen is the byte length of one masked ciphertext in an
// InitReply, and therefore of each chosen message returned to the
// receiver.
const MsgLen = 16

var curve = elliptic.P256()

// ErrPointNotOnCurve signals that a received point does not lie on
// the active curve. Package otext and the session return it
// unchanged, and it ends the session.
var ErrPointNotOnCurve = errors.New("baseot: point not on curve")

// Init is the sender's first-move public value A = g^a, serialized as
// a fixed-width point encoding.
type Init struct {
	data [65]byte // elliptic.Marshal(P256, x, y) - uncompressed point
}

// Bytes returns Init's fixed-width wire encoding.
func (m Init) Bytes() []byte { return m.data[:] }

// InitFromBytes parses a fixed-width Init encoding.
func InitFromBytes(b []byte) (Init, error) {
	var m Init
	if len(b) != len(m.data) {
		return Init{}, fmt.Errorf("baseot: invalid Init length %d", len(b))
	}
	copy(m.data[:], b)
	return m, nil
}

// Reply is the receiver's choice-dependent point B.
type Reply struct {
	data [65]byte
}

// Bytes returns Reply's fixed-width wire encoding.
func (m Reply) Bytes() []byte { return m.data[:] }

// ReplyFromBytes parses a fixed-width Reply encoding.
func ReplyFromBytes(b []byte) (Reply, error) {
	var m Reply
	if len(b) != len(m.data) {
		return Reply{}, fmt.Errorf("baseot: invalid Reply length %d", len(b))
	}
	copy(m.data[:], b)
	return m, nil
}

// InitReply carries the sender's two masked 16-byte messages.
type InitReply struct {
	E0 [MsgLen]byte
	E1 [MsgLen]byte
}

// Bytes returns InitReply's fixed-width wire encoding (2*MsgLen
// bytes).
func (m InitReply) Bytes() []byte {
	out := make([]byte, 2*MsgLen)
	copy(out[:MsgLen], m.E0[:])
	copy(out[MsgLen:], m.E1[:])
	return out
}

// InitReplyFromBytes parses a fixed-width InitReply encoding. Any
// length other than 2*MsgLen is a deserialization error.
func InitReplyFromBytes(b []byte) (InitReply, error) {
	var m InitReply
	if len(b) != 2*MsgLen {
		return InitReply{}, fmt.Errorf("baseot: invalid InitReply length %d, want %d", len(b), 2*MsgLen)
	}
	copy(m.E0[:], b[:MsgLen])
	copy(m.E1[:], b[MsgLen:])
	return m, nil
}

// Sender holds the sender-side state of a single OT instance, between
// publishing Init and receiving the receiver's Reply.
type Sender struct {
	a      *big.Int
	ax, ay *big.Int
	aInvX  *big.Int
	aInvY  *big.Int
}

// NewSender creates a fresh sender state and its Init message.
func NewSender(rng io.Reader) (*Sender, Init, error) {
	params := curve.Params()
	a, err := rand.Int(rng, params.N)
	if err != nil {
		return nil, Init{}, err
	}
	ax, ay := curve.ScalarBaseMult(a.Bytes())
	aax, aay := curve.ScalarMult(ax, ay, a.Bytes())

	aInvX := new(big.Int).Set(aax)
	aInvY := new(big.Int).Sub(params.P, aay)

	s := &Sender{
		a:     a,
		ax:    ax,
		ay:    ay,
		aInvX: aInvX,
		aInvY: aInvY,
	}

	var init Init
	copy(init.data[:], elliptic.Marshal(curve, ax, ay))
	return s, init, nil
}

// Send consumes the receiver's Reply and the two candidate 16-byte
// messages, producing the InitReply of which only the chosen message
// will decrypt under the receiver's Recv.
func (s *Sender) Send(reply Reply, m0, m1 [MsgLen]byte) (InitReply, error) {
	bx, by := elliptic.Unmarshal(curve, reply.data[:])
	if bx == nil || !curve.IsOnCurve(bx, by) {
		return InitReply{}, ErrPointNotOnCurve
	}

	// E0 is masked with B^a, which equals the receiver's A^b when its
	// choice is 0; E1 is masked with B^a minus A^a (adding aInvX/aInvY),
	// which equals A^b when its choice is 1.
	b0x, b0y := curve.ScalarMult(bx, by, s.a.Bytes())
	b1x, b1y := curve.Add(b0x, b0y, s.aInvX, s.aInvY)

	var reply0 InitReply
	mask0 := deriveMask(b0x, b0y)
	mask1 := deriveMask(b1x, b1y)
	reply0.E0 = xor16(mask0, m0)
	reply0.E1 = xor16(mask1, m1)
	return reply0, nil
}

// Receiver holds the receiver-side state of a single OT instance,
// between replying to the sender's Init and receiving the sender's
// InitReply.
type Receiver struct {
	choice bool
	b      *big.Int
	asx    *big.Int
	asy    *big.Int
}

// InitReceiver consumes the sender's Init and the receiver's choice
// bit, producing the receiver state and its Reply message.
func InitReceiver(rng io.Reader, init Init, choice bool) (*Receiver, Reply, error) {
	ax, ay := elliptic.Unmarshal(curve, init.data[:])
	if ax == nil || !curve.IsOnCurve(ax, ay) {
		return nil, Reply{}, ErrPointNotOnCurve
	}

	params := curve.Params()
	b, err := rand.Int(rng, params.N)
	if err != nil {
		return nil, Reply{}, err
	}

	bx, by := curve.ScalarBaseMult(b.Bytes())
	if choice {
		bx, by = curve.Add(bx, by, ax, ay)
	}

	asx, asy := curve.ScalarMult(ax, ay, b.Bytes())

	r := &Receiver{
		choice: choice,
		b:      b,
		asx:    asx,
		asy:    asy,
	}

	var reply Reply
	copy(reply.data[:], elliptic.Marshal(curve, bx, by))
	return r, reply, nil
}

// Recv decrypts the chosen message from the sender's InitReply.
func (r *Receiver) Recv(m InitReply) [MsgLen]byte {
	mask := deriveMask(r.asx, r.asy)
	if r.choice {
		return xor16(mask, m.E1)
	}
	return xor16(mask, m.E0)
}

func deriveMask(x, y *big.Int) [MsgLen]byte {
	h := sha256.New()
	h.Write(x.Bytes())
	h.Write(y.Bytes())
	var idBuf [8]byte
	binary.BigEndian.PutUint64(idBuf[:], 0)
	h.Write(idBuf[:])
	sum := h.Sum(nil)
	var out [MsgLen]byte
	copy(out[:], sum[:MsgLen])
	return out
}

func xor16(a, b [MsgLen]byte) [MsgLen]byte {
	var out [MsgLen]byte
	for i := range out {
		out[i] = a[i] ^ b[i]
	}
	return out
}
