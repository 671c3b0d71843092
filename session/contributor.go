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

// itemKind distinguishes the three kinds of per-K batch the session
// runs after setup, in the order they occur: one evalBatch per K
// evaluator input bits, then one (itemAndHash, itemAndVerify) pair per
// K AND gates in the circuit.
type itemKind int

const (
	itemEvalBatch itemKind = iota
	itemAndHash
	itemAndVerify
)

// itemAt maps a flat item index to its kind and its batch index within
// that kind, given how many evalBatch items precede the AND-triple
// items.
func itemAt(idx, totalEvalBatches int) (itemKind, int) {
	if idx < totalEvalBatches {
		return itemEvalBatch, idx
	}
	rest := idx - totalEvalBatches
	b := rest / 2
	if rest%2 == 0 {
		return itemAndHash, b
	}
	return itemAndVerify, b
}

// stepsFor returns the number of Run calls each side makes for a
// session with the given total item count: one round for the
// handshake, one for OT-extension setup (which also carries item 0's
// request/reply when there is one), and one more per remaining item.
func stepsFor(totalItems int) int {
	if totalItems+1 < 2 {
		return 2
	}
	return totalItems + 1
}

// Contributor is the garbler's side of a session: it holds Δ and the
// base label of every wire, and at the end of the session discloses
// its own input labels and the garbled AND tables.
//
// The session's round count is not fixed: it is derived, once, from
// the circuit's evaluator-input width and AND-gate count, following
// the specification's rule of batching both OT-extension and
// AND-triple production one batch per K items. A circuit with no AND
// gates and at most K evaluator input bits runs the same two rounds
// the session always needed for handshake and OT-extension setup;
// anything larger adds one round per additional batch item, where an
// evaluator-input batch is one item and an AND-triple batch two.
type Contributor struct {
	c         *circuit.Circuit
	inputBits []bool
	rng       io.Reader
	delta     types.Delta

	coin       cointoss.Share
	peerCommit [32]byte

	otSender *otext.Sender

	totalEvalBatches int
	totalAndBatches  int
	totalItems       int

	evalKeys []types.KeyType

	andKeys       [types.K]types.KeyType
	andRE         types.Block128
	andHashes     leakyand.Hashes
	andRandomMask types.Block128

	step int
}

// NewContributor starts a session as the contributor: it samples Δ and
// a coin-toss share, and returns the first message to send the
// evaluator (circuit fingerprint plus coin commitment).
func NewContributor(c *circuit.Circuit, inputBits []bool, rng io.Reader) (*Contributor, Message, error) {
	if rng == nil {
		rng = rand.Reader
	}
	if err := c.Validate(); err != nil {
		return nil, Message{}, err
	}
	contribN, _ := c.CountInputs()
	if len(inputBits) != contribN {
		return nil, Message{}, fmt.Errorf("%w: contributor supplied %d bits, circuit wants %d",
			mpcerr.ErrInputShape, len(inputBits), contribN)
	}

	delta, err := types.NewDelta(rng)
	if err != nil {
		return nil, Message{}, err
	}
	var coin [cointoss.CoinLen]byte
	if _, err := io.ReadFull(rng, coin[:]); err != nil {
		return nil, Message{}, err
	}
	share, commit := cointoss.Init(coin)

	_, evalN := c.CountInputs()
	totalEvalBatches := ceilBatches(evalN)
	totalAndBatches := ceilBatches(c.CountAndGates())

	fp := c.Fingerprint()
	return &Contributor{
			c:                c,
			inputBits:        inputBits,
			rng:              rng,
			delta:            delta,
			coin:             share,
			totalEvalBatches: totalEvalBatches,
			totalAndBatches:  totalAndBatches,
			totalItems:       totalEvalBatches + 2*totalAndBatches,
		}, Message{
			Fingerprint: &fp,
			CoinCommit:  &commit,
		}, nil
}

// Steps reports the number of Run calls this Contributor makes, a
// function of the circuit's evaluator-input width and AND-gate count.
func (ctr *Contributor) Steps() int { return stepsFor(ctr.totalItems) }

func (ctr *Contributor) lastStep() int { return ctr.Steps() - 1 }

// String renders a short debug label identifying the role and the
// round the contributor is about to run, e.g. "Contributor¹".
func (ctr *Contributor) String() string {
	return fmt.Sprintf("Contributor%s", superscript.Itoa(ctr.step))
}

// Run advances the session by one round, consuming the evaluator's
// latest message and returning the contributor's reply.
func (ctr *Contributor) Run(in Message) (Message, error) {
	switch ctr.step {
	case 0:
		return ctr.runSetup(in)
	case 1:
		return ctr.runSetupBatch(in)
	default:
		if ctr.step > ctr.lastStep() {
			return Message{}, fmt.Errorf("%w: contributor has no more rounds", mpcerr.ErrProtocolInvariant)
		}
		return ctr.runItem(in)
	}
}

// runSetup handles the evaluator's coin commitment and OT-extension
// Init, replying with the contributor's coin disclosure and OT Reply.
func (ctr *Contributor) runSetup(in Message) (Message, error) {
	if in.CoinCommit == nil || in.OtInit == nil {
		return Message{}, fmt.Errorf("%w: missing evaluator setup fields", mpcerr.ErrProtocolInvariant)
	}
	ctr.peerCommit = *in.CoinCommit

	sender, reply, err := otext.NewSender(ctr.rng, ctr.delta, *in.OtInit)
	if err != nil {
		return Message{}, err
	}
	ctr.otSender = sender
	ctr.step = 1

	reveal := cointoss.Disclose(ctr.coin)
	return Message{
		CoinReveal: &reveal,
		OtReply:    &reply,
	}, nil
}

// runSetupBatch handles the evaluator's coin disclosure and final
// OT-extension message, completing the OT extension. If the circuit
// needs at least one K-wide batch, the evaluator's request for item 0
// rides along in this same message and is handled here too; otherwise
// this round is the session's last, and the contributor's reply
// carries the final garble output directly.
func (ctr *Contributor) runSetupBatch(in Message) (Message, error) {
	if in.CoinReveal == nil || in.OtInitReply == nil {
		return Message{}, fmt.Errorf("%w: missing evaluator garble-round fields", mpcerr.ErrProtocolInvariant)
	}
	if _, err := cointoss.Finish(ctr.coin, ctr.peerCommit, *in.CoinReveal); err != nil {
		return Message{}, fmt.Errorf("%w: %v", mpcerr.ErrMAC, err)
	}
	if err := ctr.otSender.CompleteSender(*in.OtInitReply); err != nil {
		return Message{}, err
	}

	last := ctr.step == ctr.lastStep()
	var reply Message
	if ctr.totalItems > 0 {
		var err error
		reply, err = ctr.handleItem(0, in)
		if err != nil {
			return Message{}, err
		}
	}
	ctr.step++
	if last {
		return ctr.attachFinal(reply)
	}
	return reply, nil
}

// runItem handles a later round: item index step-1, whose request
// arrived bundled in the previous round's reply (or, for an
// itemAndVerify item, was just derived by the evaluator from the
// matching itemAndHash reply).
func (ctr *Contributor) runItem(in Message) (Message, error) {
	idx := ctr.step - 1
	last := ctr.step == ctr.lastStep()
	reply, err := ctr.handleItem(idx, in)
	if err != nil {
		return Message{}, err
	}
	ctr.step++
	if last {
		return ctr.attachFinal(reply)
	}
	return reply, nil
}

// handleItem processes one K-wide batch item and returns that item's
// reply (final-round fields, if any, are attached by the caller).
func (ctr *Contributor) handleItem(idx int, in Message) (Message, error) {
	kind, batchIdx := itemAt(idx, ctr.totalEvalBatches)
	switch kind {
	case itemEvalBatch:
		if in.EvalBatchU == nil {
			return Message{}, fmt.Errorf("%w: missing evaluator batch %d", mpcerr.ErrProtocolInvariant, batchIdx)
		}
		keys := ctr.otSender.NextBatch(*in.EvalBatchU)
		ctr.evalKeys = append(ctr.evalKeys, keys[:]...)
		return Message{}, nil

	case itemAndHash:
		if in.EvalBatchU == nil || in.AndRandomReveal == nil {
			return Message{}, fmt.Errorf("%w: missing AND-triple batch %d request", mpcerr.ErrProtocolInvariant, batchIdx)
		}
		keys := ctr.otSender.NextBatch(*in.EvalBatchU)
		ctr.andKeys = keys
		ctr.andRE = *in.AndRandomReveal

		randomMask, err := types.RandomBlock128(ctr.rng)
		if err != nil {
			return Message{}, err
		}
		rC, err := types.RandomBlock128(ctr.rng)
		if err != nil {
			return Message{}, err
		}
		hashes := leakyand.ComputeHashes(ctr.delta, randomMask, rC, keys)
		ctr.andHashes = hashes
		ctr.andRandomMask = randomMask

		return Message{
			AndHashes:     &hashes,
			AndRandomBits: &randomMask,
		}, nil

	case itemAndVerify:
		if in.AndShareReveal == nil {
			return Message{}, fmt.Errorf("%w: missing AND-triple batch %d share", mpcerr.ErrProtocolInvariant, batchIdx)
		}
		var macsExpected [types.K]types.MacType
		for j := 0; j < types.K; j++ {
			mac := types.MacType(ctr.andKeys[j])
			if ctr.andRE.Bit(j) == 1 {
				mac = ctr.delta.Xor(mac)
			}
			macsExpected[j] = mac
		}
		expected := leakyand.DeriveShares(ctr.andRandomMask, ctr.andRE, macsExpected, ctr.andHashes)
		if expected != *in.AndShareReveal {
			return Message{}, fmt.Errorf("%w: leaky-AND triple batch %d disagreement", mpcerr.ErrMAC, batchIdx)
		}
		return Message{}, nil

	default:
		return Message{}, fmt.Errorf("%w: unknown item kind", mpcerr.ErrProtocolInvariant)
	}
}

// attachFinal garbles the circuit end to end, now that every
// evaluator-input-key batch has been processed, and merges the
// contributor's final message (its own input labels, the garbled AND
// tables, and the output-decoding tags) into reply.
func (ctr *Contributor) attachFinal(reply Message) (Message, error) {
	wires := make([]garble.ContribWire, len(ctr.c.Gates))
	var andTables []garble.Table
	var contribLabels []garble.EvalWire
	ci, ei := 0, 0

	for i, g := range ctr.c.Gates {
		switch g.Kind {
		case circuit.InContrib:
			key, err := types.RandomBlock128(ctr.rng)
			if err != nil {
				return Message{}, err
			}
			w := garble.ContribWire{Key: types.KeyType(key)}
			wires[i] = w

			label := types.MacType(w.Key)
			if ctr.inputBits[ci] {
				label = label.Xor(types.MacType(ctr.delta))
			}
			contribLabels = append(contribLabels, garble.EvalWire{Label: label})
			ci++

		case circuit.InEval:
			if ei >= len(ctr.evalKeys) {
				return Message{}, fmt.Errorf("%w: not enough evaluator-input keys", mpcerr.ErrProtocolInvariant)
			}
			wires[i] = garble.ContribWire{Key: ctr.evalKeys[ei]}
			ei++

		case circuit.Xor:
			wires[i] = garble.XorContrib(wires[g.X], wires[g.Y])

		case circuit.Not:
			wires[i] = garble.NotContrib(wires[g.X], ctr.delta)

		case circuit.And:
			out, table, err := garble.GarbleAnd(ctr.rng, ctr.delta, uint64(i), wires[g.X], wires[g.Y])
			if err != nil {
				return Message{}, err
			}
			wires[i] = out
			andTables = append(andTables, table)

		default:
			return Message{}, fmt.Errorf("%w: gate %d has unknown kind %v", mpcerr.ErrProtocolInvariant, i, g.Kind)
		}
	}

	outputReveal := make([]bool, len(ctr.c.OutputGates))
	for i, o := range ctr.c.OutputGates {
		outputReveal[i] = wires[o].Tag()
	}

	reply.ContribLabels = contribLabels
	reply.AndTables = andTables
	reply.OutputReveal = outputReveal
	return reply, nil
}
