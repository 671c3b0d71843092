//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package session

import (
	"crypto/rand"
	"fmt"
	"io"

	"github.com/markkurossi/text/superscript"

	"github.com/Kaladin13/mpc-core/circuit"
	"github.com/Kaladin13/mpc-core/cointoss"
	"github.com/Kaladin13/mpc-core/garble"
	"github.com/Kaladin13/mpc-core/leakyand"
	"github.com/Kaladin13/mpc-core/mpcerr"
	"github.com/Kaladin13/mpc-core/otext"
	"github.com/Kaladin13/mpc-core/types"
)

// Evaluator is the other side of a session: it holds no Δ, only the
// labels the contributor and the OT extension hand it, and recovers
// the circuit's output without ever learning a wire's other label.
//
// Like Contributor, its round count is derived from the circuit's
// evaluator-input width and AND-gate count rather than fixed, so
// circuits of arbitrary size can be evaluated: an input width or
// AND-gate count beyond K just adds more K-wide batches, not a hard
// ceiling.
type Evaluator struct {
	c         *circuit.Circuit
	inputBits []bool
	rng       io.Reader

	coin          cointoss.Share
	commit        [32]byte
	contribCommit [32]byte

	otRecv *otext.Receiver
	otInit otext.Init

	totalEvalBatches int
	totalAndBatches  int
	totalItems       int

	evalMacs []types.MacType

	andRE         types.Block128
	andMacs       [types.K]types.MacType
	andRandomMask types.Block128

	step int
}

// NewEvaluator starts a session as the evaluator. Its own first
// message is sent one round later, from Run, since the contributor
// speaks first; New only prepares the coin-toss share and OT-extension
// receiver state it will need then.
func NewEvaluator(c *circuit.Circuit, inputBits []bool, rng io.Reader) (*Evaluator, error) {
	if rng == nil {
		rng = rand.Reader
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	_, evalN := c.CountInputs()
	if len(inputBits) != evalN {
		return nil, fmt.Errorf("%w: evaluator supplied %d bits, circuit wants %d",
			mpcerr.ErrInputShape, len(inputBits), evalN)
	}

	var coin [cointoss.CoinLen]byte
	if _, err := io.ReadFull(rng, coin[:]); err != nil {
		return nil, err
	}
	share, commit := cointoss.Init(coin)

	recv, otInit, err := otext.NewReceiver(rng)
	if err != nil {
		return nil, err
	}

	totalEvalBatches := ceilBatches(evalN)
	totalAndBatches := ceilBatches(c.CountAndGates())

	return &Evaluator{
		c:                c,
		inputBits:        inputBits,
		rng:              rng,
		coin:             share,
		commit:           commit,
		otRecv:           recv,
		otInit:           otInit,
		totalEvalBatches: totalEvalBatches,
		totalAndBatches:  totalAndBatches,
		totalItems:       totalEvalBatches + 2*totalAndBatches,
	}, nil
}

// Steps reports the number of Run calls this Evaluator makes, a
// function of the circuit's evaluator-input width and AND-gate count.
func (e *Evaluator) Steps() int { return stepsFor(e.totalItems) }

// String renders a short debug label identifying the role and the
// round the evaluator is about to run, e.g. "Evaluator¹".
func (e *Evaluator) String() string {
	return fmt.Sprintf("Evaluator%s", superscript.Itoa(e.step))
}

// Run advances the session by one round, consuming the contributor's
// latest message and returning the evaluator's reply.
func (e *Evaluator) Run(in Message) (Message, error) {
	switch e.step {
	case 0:
		return e.runHandshake(in)
	case 1:
		return e.runSetupBatch(in)
	default:
		if e.step >= e.Steps() {
			return Message{}, fmt.Errorf("%w: evaluator has no more rounds", mpcerr.ErrProtocolInvariant)
		}
		return e.runItem(in)
	}
}

// runHandshake checks the contributor's circuit fingerprint and
// records its coin commitment, then replies with the evaluator's own
// commitment and OT-extension Init.
func (e *Evaluator) runHandshake(in Message) (Message, error) {
	if in.Fingerprint == nil || in.CoinCommit == nil {
		return Message{}, fmt.Errorf("%w: missing contributor setup fields", mpcerr.ErrProtocolInvariant)
	}
	if *in.Fingerprint != e.c.Fingerprint() {
		return Message{}, fmt.Errorf("%w: circuit fingerprint mismatch", mpcerr.ErrProtocolInvariant)
	}
	e.contribCommit = *in.CoinCommit
	e.step = 1

	return Message{
		CoinCommit: &e.commit,
		OtInit:     &e.otInit,
	}, nil
}

// runSetupBatch verifies the contributor's coin disclosure and
// completes the OT extension. If the circuit needs at least one
// K-wide batch, item 0's request rides along in this same reply;
// otherwise this round is the session's last from the evaluator's
// side, and its own final Run call carries nothing further.
func (e *Evaluator) runSetupBatch(in Message) (Message, error) {
	if in.CoinReveal == nil || in.OtReply == nil {
		return Message{}, fmt.Errorf("%w: missing contributor garble-round fields", mpcerr.ErrProtocolInvariant)
	}
	if _, err := cointoss.Finish(e.coin, e.contribCommit, *in.CoinReveal); err != nil {
		return Message{}, fmt.Errorf("%w: %v", mpcerr.ErrMAC, err)
	}

	initReply, err := e.otRecv.CompleteReceiver(*in.OtReply)
	if err != nil {
		return Message{}, err
	}

	reply := Message{OtInitReply: &initReply}
	if e.totalItems > 0 {
		item, err := e.issueItem(0, Message{})
		if err != nil {
			return Message{}, err
		}
		reply.EvalBatchU = item.EvalBatchU
		reply.AndRandomReveal = item.AndRandomReveal
		reply.AndShareReveal = item.AndShareReveal
	}
	e.step = 2
	return reply, nil
}

// runItem issues the request for item step-1, using the contributor's
// previous reply (the result of item step-2) when the item being
// issued needs it: an itemAndVerify request is computed directly from
// the matching itemAndHash reply that just arrived.
func (e *Evaluator) runItem(in Message) (Message, error) {
	idx := e.step - 1
	reply, err := e.issueItem(idx, in)
	if err != nil {
		return Message{}, err
	}
	e.step++
	return reply, nil
}

// issueItem builds the request message for item idx.
func (e *Evaluator) issueItem(idx int, in Message) (Message, error) {
	kind, batchIdx := itemAt(idx, e.totalEvalBatches)
	switch kind {
	case itemEvalBatch:
		chunk := chunkBits(e.inputBits, batchIdx)
		macs, u := e.otRecv.NextBatch(chunk)
		e.evalMacs = append(e.evalMacs, macs[:]...)
		return Message{EvalBatchU: &u}, nil

	case itemAndHash:
		rE, err := types.RandomBlock128(e.rng)
		if err != nil {
			return Message{}, err
		}
		macs, u := e.otRecv.NextBatch(rE)
		e.andRE = rE
		e.andMacs = macs
		return Message{EvalBatchU: &u, AndRandomReveal: &rE}, nil

	case itemAndVerify:
		if in.AndHashes == nil || in.AndRandomBits == nil {
			return Message{}, fmt.Errorf("%w: missing AND-triple batch %d hashes", mpcerr.ErrProtocolInvariant, batchIdx)
		}
		e.andRandomMask = *in.AndRandomBits
		share := leakyand.DeriveShares(e.andRandomMask, e.andRE, e.andMacs, *in.AndHashes)
		return Message{AndShareReveal: &share}, nil

	default:
		return Message{}, fmt.Errorf("%w: unknown item kind", mpcerr.ErrProtocolInvariant)
	}
}

// Output consumes the contributor's final message and evaluates the
// garbled circuit, decoding the real output bits. Every AND-triple
// batch's consistency check already ran to completion as part of the
// round exchange (the contributor aborts with mpcerr.ErrMAC on
// disagreement), so by the time Output runs there is nothing left to
// check; it only has garbling work to do.
func (e *Evaluator) Output(in Message) ([]bool, error) {
	if e.step != e.Steps() {
		return nil, fmt.Errorf("%w: session not finished", mpcerr.ErrProtocolInvariant)
	}

	wires := make([]garble.EvalWire, len(e.c.Gates))
	ci, ei, ai := 0, 0, 0

	for i, g := range e.c.Gates {
		switch g.Kind {
		case circuit.InContrib:
			if ci >= len(in.ContribLabels) {
				return nil, fmt.Errorf("%w: not enough contributor labels", mpcerr.ErrProtocolInvariant)
			}
			wires[i] = in.ContribLabels[ci]
			ci++

		case circuit.InEval:
			if ei >= len(e.evalMacs) {
				return nil, fmt.Errorf("%w: not enough evaluator MACs", mpcerr.ErrProtocolInvariant)
			}
			wires[i] = garble.EvalWire{Label: e.evalMacs[ei]}
			ei++

		case circuit.Xor:
			wires[i] = garble.XorEval(wires[g.X], wires[g.Y])

		case circuit.Not:
			wires[i] = garble.NotEval(wires[g.X])

		case circuit.And:
			if ai >= len(in.AndTables) {
				return nil, fmt.Errorf("%w: not enough garbled tables", mpcerr.ErrProtocolInvariant)
			}
			out, err := garble.EvalAnd(uint64(i), wires[g.X], wires[g.Y], in.AndTables[ai])
			if err != nil {
				return nil, err
			}
			wires[i] = out
			ai++

		default:
			return nil, fmt.Errorf("%w: gate %d has unknown kind %v", mpcerr.ErrProtocolInvariant, i, g.Kind)
		}
	}

	if len(in.OutputReveal) != len(e.c.OutputGates) {
		return nil, fmt.Errorf("%w: output reveal count mismatch", mpcerr.ErrProtocolInvariant)
	}
	out := make([]bool, len(e.c.OutputGates))
	for idx, o := range e.c.OutputGates {
		out[idx] = wires[o].Tag() != in.OutputReveal[idx]
	}
	return out, nil
}
