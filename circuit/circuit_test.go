//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package circuit

import (
	"errors"
	"testing"
)

func TestValidateRejectsForwardReference(t *testing.T) {
	c := Circuit{Gates: []Gate{
		{Kind: InContrib},
		{Kind: Xor, X: 0, Y: 5},
	}}
	if err := c.Validate(); !errors.Is(err, ErrTopology) {
		t.Fatalf("expected ErrTopology, got %v", err)
	}
}

func TestValidateAcceptsWellFormedCircuit(t *testing.T) {
	c := Circuit{
		Gates: []Gate{
			{Kind: InContrib},
			{Kind: InEval},
			{Kind: And, X: 0, Y: 1},
		},
		OutputGates: []Index{2},
	}
	if err := c.Validate(); err != nil {
		t.Fatal(err)
	}
}

func TestFingerprintDeterministic(t *testing.T) {
	c := Circuit{Gates: []Gate{{Kind: InContrib}, {Kind: InEval}, {Kind: And, X: 0, Y: 1}}, OutputGates: []Index{2}}
	if c.Fingerprint() != c.Fingerprint() {
		t.Fatal("fingerprint is not deterministic")
	}
}

func TestFingerprintDiffersOnTopologyChange(t *testing.T) {
	c1 := Circuit{Gates: []Gate{{Kind: InContrib}, {Kind: InEval}, {Kind: And, X: 0, Y: 1}}, OutputGates: []Index{2}}
	c2 := Circuit{Gates: []Gate{{Kind: InContrib}, {Kind: InEval}, {Kind: Xor, X: 0, Y: 1}}, OutputGates: []Index{2}}
	if c1.Fingerprint() == c2.Fingerprint() {
		t.Fatal("fingerprint collided across different circuits")
	}
}

func TestEvalAndGate(t *testing.T) {
	c := Circuit{
		Gates:       []Gate{{Kind: InContrib}, {Kind: InEval}, {Kind: And, X: 0, Y: 1}},
		OutputGates: []Index{2},
	}
	out, err := c.Eval([]bool{true}, []bool{true})
	if err != nil {
		t.Fatal(err)
	}
	if !out[0] {
		t.Fatal("AND(true,true) should be true")
	}

	out, err = c.Eval([]bool{true}, []bool{false})
	if err != nil {
		t.Fatal(err)
	}
	if out[0] {
		t.Fatal("AND(true,false) should be false")
	}
}

func TestEvalXorGate(t *testing.T) {
	c := Circuit{
		Gates:       []Gate{{Kind: InContrib}, {Kind: InEval}, {Kind: Xor, X: 0, Y: 1}},
		OutputGates: []Index{2},
	}
	out, err := c.Eval([]bool{true}, []bool{false})
	if err != nil {
		t.Fatal(err)
	}
	if !out[0] {
		t.Fatal("XOR(true,false) should be true")
	}
}

func TestEvalNotGate(t *testing.T) {
	c := Circuit{
		Gates:       []Gate{{Kind: InContrib}, {Kind: Not, X: 0}},
		OutputGates: []Index{1},
	}
	out, err := c.Eval([]bool{true}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if out[0] {
		t.Fatal("NOT(true) should be false")
	}
}

func TestFourBitAdder(t *testing.T) {
	// a + b over 4 bits, ripple-carry, LSB first. a = 0b0011, b = 0b0101.
	a := []bool{true, true, false, false}
	b := []bool{true, false, true, false}

	var gates []Gate
	for i := 0; i < 4; i++ {
		gates = append(gates, Gate{Kind: InContrib})
	}
	for i := 0; i < 4; i++ {
		gates = append(gates, Gate{Kind: InEval})
	}

	carry := -1 // index of the carry wire, or -1 meaning "false"
	sumIdx := make([]Index, 4)
	xorIdx := func(x, y Index) Index {
		gates = append(gates, Gate{Kind: Xor, X: x, Y: y})
		return Index(len(gates) - 1)
	}
	andIdx := func(x, y Index) Index {
		gates = append(gates, Gate{Kind: And, X: x, Y: y})
		return Index(len(gates) - 1)
	}

	for i := 0; i < 4; i++ {
		ai, bi := Index(i), Index(4+i)
		axb := xorIdx(ai, bi)
		if carry < 0 {
			sumIdx[i] = axb
			carry = int(andIdx(ai, bi))
			continue
		}
		ci := Index(carry)
		sumIdx[i] = xorIdx(axb, ci)
		c1 := andIdx(axb, ci)
		c2 := andIdx(ai, bi)
		carry = int(xorIdx(c1, c2))
	}

	c := Circuit{Gates: gates, OutputGates: append(append([]Index{}, sumIdx...), Index(carry))}
	if err := c.Validate(); err != nil {
		t.Fatal(err)
	}

	out, err := c.Eval(a, b)
	if err != nil {
		t.Fatal(err)
	}

	want := []bool{false, false, false, true, false} // 0b1000, no final carry
	for i := range want {
		if out[i] != want[i] {
			t.Fatalf("bit %d: got %v, want %v (full = %v)", i, out[i], want[i], out)
		}
	}
}
