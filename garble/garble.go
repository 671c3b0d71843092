//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

// Package garble builds and evaluates per-AND-gate garbled tables. XOR
// and NOT gates need no cryptography (FreeXOR: every wire's two
// candidate labels differ by the garbler's global Δ, so XOR/NOT
// propagate by XORing labels, see XorContrib/XorEval and
// NotContrib/NotEval below). Only AND
// consumes a hash call, following xhash.HGate and the teacher's
// label-propagation convention in circuit/helpers.go, generalized from
// plain labels to the authenticated-bit representation the session
// tracks.
//
// The point-and-permute tag that selects a garbled-table row is the
// label's own low bit rather than a separately tracked field: since
// types.NewDelta fixes Δ's low bit to 1, a wire's two candidate labels
// (which differ by Δ) always disagree in that bit, so it is a free,
// automatically consistent row selector.
package garble

import (
	"io"

	"github.com/Kaladin13/mpc-core/types"
	"github.com/Kaladin13/mpc-core/xhash"
)

// ContribWire is the garbler's view of one circuit wire: its base
// label, conventionally the label for bit 0. The label for bit 1 is
// always Key ^ Δ and is never stored separately.
type ContribWire struct {
	Key types.KeyType
}

// Tag returns the point-and-permute tag of the wire's base label.
func (w ContribWire) Tag() bool { return types.Block128(w.Key).Bit(0) == 1 }

// EvalWire is the evaluator's view of one circuit wire: the single
// label matching the wire's real bit value.
type EvalWire struct {
	Label types.MacType
}

// Tag returns the point-and-permute tag of the evaluator's held label.
func (w EvalWire) Tag() bool { return types.Block128(w.Label).Bit(0) == 1 }

// XorContrib propagates an XOR gate on the garbler's side.
func XorContrib(a, b ContribWire) ContribWire {
	return ContribWire{Key: a.Key.Xor(b.Key)}
}

// XorEval propagates an XOR gate on the evaluator's side.
func XorEval(a, b EvalWire) EvalWire {
	return EvalWire{Label: a.Label.Xor(b.Label)}
}

// NotContrib propagates a NOT gate on the garbler's side: the output
// wire's "bit 0" label is the input wire's "bit 1" label.
func NotContrib(a ContribWire, delta types.Delta) ContribWire {
	return ContribWire{Key: a.Key.Xor(types.KeyType(delta))}
}

// NotEval propagates a NOT gate on the evaluator's side. The label is
// reused unchanged: the relabeling that makes NOT free happens
// entirely in the garbler's bookkeeping.
func NotEval(a EvalWire) EvalWire { return a }

// Row is one published entry of an AND gate's garbled table.
type Row struct {
	Label types.MacType
}

func xorRow(a, b Row) Row {
	return Row{Label: a.Label.Xor(b.Label)}
}

func rowFromShare(s xhash.GateShare) Row {
	return Row{Label: s.Mac}
}

// Table is the four published rows of an AND gate's garbled table,
// indexed by 2*tagX + tagY.
type Table [4]Row

func rowIndex(tagX, tagY bool) int {
	i, j := 0, 0
	if tagX {
		i = 1
	}
	if tagY {
		j = 1
	}
	return 2*i + j
}

// GarbleAnd builds the garbled table for one AND gate. It samples a
// fresh output-wire key, then for each of the four (bitX, bitY)
// combinations consistent with x and y's tag schemes, masks the
// resulting output label with xhash.HGate keyed by that combination's
// candidate labels. Only HGate's Mac component is used as the pad:
// its Key component is still computed (and its all-zero precondition
// still enforced) but deliberately discarded, since revealing it to
// the evaluator would hand over the garbler's secret base key for the
// output wire.
func GarbleAnd(rng io.Reader, delta types.Delta, gate uint64, x, y ContribWire) (ContribWire, Table, error) {
	outKeyBlock, err := types.RandomBlock128(rng)
	if err != nil {
		return ContribWire{}, Table{}, err
	}
	out := ContribWire{Key: types.KeyType(outKeyBlock)}

	var table Table
	for _, tagX := range []bool{false, true} {
		for _, tagY := range []bool{false, true} {
			bitX := tagX != x.Tag()
			bitY := tagY != y.Tag()
			bitOut := bitX && bitY

			labelX := x.Key
			if bitX {
				labelX = labelX.Xor(types.KeyType(delta))
			}
			labelY := y.Key
			if bitY {
				labelY = labelY.Xor(types.KeyType(delta))
			}

			r := rowIndex(tagX, tagY)
			share, err := xhash.HGate(types.WireLabel(labelX), types.WireLabel(labelY), gate, byte(r))
			if err != nil {
				return ContribWire{}, Table{}, err
			}

			desiredLabel := types.MacType(out.Key)
			if bitOut {
				desiredLabel = desiredLabel.Xor(types.MacType(delta))
			}
			table[r] = xorRow(Row{Label: desiredLabel}, rowFromShare(share))
		}
	}
	return out, table, nil
}

// EvalAnd evaluates one AND gate's garbled table against the
// evaluator's real input labels, recovering the real output label
// without learning any of the other three rows' content.
func EvalAnd(gate uint64, x, y EvalWire, table Table) (EvalWire, error) {
	r := rowIndex(x.Tag(), y.Tag())
	share, err := xhash.HGate(types.WireLabel(x.Label), types.WireLabel(y.Label), gate, byte(r))
	if err != nil {
		return EvalWire{}, err
	}
	recovered := xorRow(table[r], rowFromShare(share))
	return EvalWire{Label: recovered.Label}, nil
}
