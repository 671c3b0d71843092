//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

// Package circuit implements the opaque Boolean-circuit representation
// the core treats as its unit of work: an ordered, topologically
// sorted gate list plus a list of output gate indices. The
// source-language front-end that produces these circuits is an
// external collaborator, out of scope here.
package circuit

import (
	"encoding/binary"
	"fmt"

	"github.com/zeebo/blake3"

	"github.com/Kaladin13/mpc-core/mpcerr"
)

// Kind tags a Gate's operation.
type Kind byte

const (
	// InContrib marks a gate as one of the contributor's input wires.
	InContrib Kind = iota
	// InEval marks a gate as one of the evaluator's input wires.
	InEval
	// Xor is a free (non-cryptographic) binary gate.
	Xor
	// And is the only gate requiring a garbled table.
	And
	// Not is a free (non-cryptographic) unary gate.
	Not
)

func (k Kind) String() string {
	switch k {
	case InContrib:
		return "InContrib"
	case InEval:
		return "InEval"
	case Xor:
		return "Xor"
	case And:
		return "And"
	case Not:
		return "Not"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Index is a position in a Circuit's gate list.
type Index uint32

// Gate is one node of the circuit DAG. Only X and Y are meaningful for
// binary gates (Xor, And); only X is meaningful for Not; neither is
// meaningful for the two input kinds.
type Gate struct {
	Kind Kind
	X    Index
	Y    Index
}

// Circuit is an ordered gate list plus the indices, in output order,
// whose values the session discloses to the evaluator at the end of a
// run.
type Circuit struct {
	Gates       []Gate
	OutputGates []Index
}

// ErrTopology signals that a gate references a position at or after
// its own index, or that an output index is out of range.
var ErrTopology = fmt.Errorf("%w: circuit: gate references a non-prior position", mpcerr.ErrProtocolInvariant)

// Validate checks topological ordering: every gate operand must name a
// strictly earlier gate, and every output index must be in range.
func (c *Circuit) Validate() error {
	for i, g := range c.Gates {
		switch g.Kind {
		case InContrib, InEval:
		case Not:
			if int(g.X) >= i {
				return fmt.Errorf("%w: gate %d Not references %d", ErrTopology, i, g.X)
			}
		case Xor, And:
			if int(g.X) >= i || int(g.Y) >= i {
				return fmt.Errorf("%w: gate %d references %d,%d", ErrTopology, i, g.X, g.Y)
			}
		default:
			return fmt.Errorf("%w: gate %d has unknown kind %v", ErrTopology, i, g.Kind)
		}
	}
	for _, o := range c.OutputGates {
		if int(o) >= len(c.Gates) {
			return fmt.Errorf("%w: output index %d out of range", ErrTopology, o)
		}
	}
	return nil
}

// CountInputs returns the number of InContrib and InEval gates, in
// that order, so callers can validate input-bit-vector lengths before
// starting a session.
func (c *Circuit) CountInputs() (contrib, eval int) {
	for _, g := range c.Gates {
		switch g.Kind {
		case InContrib:
			contrib++
		case InEval:
			eval++
		}
	}
	return
}

// CountAndGates returns the number of And gates, the unit the session
// batches garbled-table and AND-triple production in.
func (c *Circuit) CountAndGates() int {
	n := 0
	for _, g := range c.Gates {
		if g.Kind == And {
			n++
		}
	}
	return n
}

// Fingerprint is the BLAKE3 digest of a canonical byte encoding of the
// circuit, the CircuitBlake3Hash both session endpoints must agree on
// before any cryptography runs.
type Fingerprint [32]byte

// Fingerprint computes the circuit's fingerprint.
func (c *Circuit) Fingerprint() Fingerprint {
	h := blake3.New()
	var buf [9]byte
	for _, g := range c.Gates {
		buf[0] = byte(g.Kind)
		binary.LittleEndian.PutUint32(buf[1:5], uint32(g.X))
		binary.LittleEndian.PutUint32(buf[5:9], uint32(g.Y))
		h.Write(buf[:])
	}
	for _, o := range c.OutputGates {
		var ob [4]byte
		binary.LittleEndian.PutUint32(ob[:], uint32(o))
		h.Write(ob[:])
	}
	var out Fingerprint
	copy(out[:], h.Sum(nil))
	return out
}

// Report renders a one-line gate-count summary, e.g. "12 gates (XOR:
// 4, NOT: 2, AND: 3, IN: 3)".
func (c *Circuit) Report() string {
	var xorN, notN, andN, inN int
	for _, g := range c.Gates {
		switch g.Kind {
		case Xor:
			xorN++
		case Not:
			notN++
		case And:
			andN++
		case InContrib, InEval:
			inN++
		}
	}
	return fmt.Sprintf("%d gates (XOR: %d, NOT: %d, AND: %d, IN: %d)",
		len(c.Gates), xorN, notN, andN, inN)
}

// Eval evaluates the circuit in the clear, given the full bit
// assignment for every InContrib/InEval gate in circuit order. It
// exists purely as the reference oracle Simulate's correctness tests
// check themselves against.
func (c *Circuit) Eval(contribBits, evalBits []bool) ([]bool, error) {
	wires := make([]bool, len(c.Gates))
	ci, ei := 0, 0
	for i, g := range c.Gates {
		switch g.Kind {
		case InContrib:
			if ci >= len(contribBits) {
				return nil, fmt.Errorf("circuit: not enough contributor bits")
			}
			wires[i] = contribBits[ci]
			ci++
		case InEval:
			if ei >= len(evalBits) {
				return nil, fmt.Errorf("circuit: not enough evaluator bits")
			}
			wires[i] = evalBits[ei]
			ei++
		case Xor:
			wires[i] = wires[g.X] != wires[g.Y]
		case And:
			wires[i] = wires[g.X] && wires[g.Y]
		case Not:
			wires[i] = !wires[g.X]
		}
	}
	out := make([]bool, len(c.OutputGates))
	for i, o := range c.OutputGates {
		out[i] = wires[o]
	}
	return out, nil
}
