//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package mpccore

import (
	"testing"

	"github.com/Kaladin13/mpc-core/circuit"
)

func adderCircuit(t *testing.T) *circuit.Circuit {
	t.Helper()
	gates := []circuit.Gate{
		{Kind: circuit.InContrib}, // 0: a0
		{Kind: circuit.InContrib}, // 1: a1
		{Kind: circuit.InEval},    // 2: b0
		{Kind: circuit.InEval},    // 3: b1
		{Kind: circuit.Xor, X: 0, Y: 2},  // 4: a0^b0
		{Kind: circuit.And, X: 0, Y: 2},  // 5: a0&b0 (carry0)
		{Kind: circuit.Xor, X: 1, Y: 3},  // 6: a1^b1
		{Kind: circuit.Xor, X: 6, Y: 5},  // 7: sum1
		{Kind: circuit.And, X: 6, Y: 5},  // 8
		{Kind: circuit.And, X: 1, Y: 3},  // 9
		{Kind: circuit.Xor, X: 8, Y: 9},  // 10: carry1
	}
	c := &circuit.Circuit{
		Gates:       gates,
		OutputGates: []circuit.Index{4, 7, 10},
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("circuit invalid: %v", err)
	}
	return c
}

func TestSimulateTwoBitAdder(t *testing.T) {
	c := adderCircuit(t)
	for _, tc := range []struct {
		a0, a1, b0, b1 bool
	}{
		{false, false, false, false},
		{true, false, false, false},
		{false, false, true, false},
		{true, true, true, true},
		{true, false, true, false},
	} {
		contribBits := []bool{tc.a0, tc.a1}
		evalBits := []bool{tc.b0, tc.b1}

		out, err := Simulate(c, contribBits, evalBits, Config{})
		if err != nil {
			t.Fatalf("Simulate(%+v): %v", tc, err)
		}
		want, err := c.Eval(contribBits, evalBits)
		if err != nil {
			t.Fatalf("reference Eval(%+v): %v", tc, err)
		}
		if len(out) != len(want) {
			t.Fatalf("%+v: output length %d, want %d", tc, len(out), len(want))
		}
		for i := range want {
			if out[i] != want[i] {
				t.Errorf("%+v: bit %d got %v, want %v", tc, i, out[i], want[i])
			}
		}
	}
}

func TestSimulateRejectsMalformedCircuit(t *testing.T) {
	bad := &circuit.Circuit{
		Gates: []circuit.Gate{
			{Kind: circuit.Xor, X: 0, Y: 0},
		},
	}
	if _, err := Simulate(bad, nil, nil, Config{}); err == nil {
		t.Fatal("expected topology error, got nil")
	}
}

func TestRoleString(t *testing.T) {
	if Contributor.String() != "contributor" {
		t.Errorf("Contributor.String() = %q", Contributor.String())
	}
	if Evaluator.String() != "evaluator" {
		t.Errorf("Evaluator.String() = %q", Evaluator.String())
	}
}
