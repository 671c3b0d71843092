//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package garble

import (
	"crypto/rand"
	"testing"

	"github.com/Kaladin13/mpc-core/types"
)

func randContribWire(t *testing.T) ContribWire {
	t.Helper()
	k, err := types.RandomBlock128(rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	return ContribWire{Key: types.KeyType(k)}
}

// label derives the evaluator-facing label for a given real bit, as
// the session does when it discloses an input wire.
func label(w ContribWire, delta types.Delta, bit bool) EvalWire {
	l := types.MacType(w.Key)
	if bit {
		l = l.Xor(types.MacType(delta))
	}
	return EvalWire{Label: l}
}

func TestAndGateAllCombinations(t *testing.T) {
	delta, err := types.NewDelta(rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	x := randContribWire(t)
	y := randContribWire(t)

	out, table, err := GarbleAnd(rand.Reader, delta, 7, x, y)
	if err != nil {
		t.Fatal(err)
	}

	for _, bx := range []bool{false, true} {
		for _, by := range []bool{false, true} {
			evalX := label(x, delta, bx)
			evalY := label(y, delta, by)

			got, err := EvalAnd(7, evalX, evalY, table)
			if err != nil {
				t.Fatal(err)
			}

			wantBit := bx && by
			wantLabel := label(out, delta, wantBit)
			if got != wantLabel {
				t.Fatalf("AND(%v,%v): got %+v, want %+v", bx, by, got, wantLabel)
			}
		}
	}
}

func TestXorAndNotFreePropagation(t *testing.T) {
	delta, err := types.NewDelta(rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	x := randContribWire(t)
	y := randContribWire(t)

	for _, bx := range []bool{false, true} {
		for _, by := range []bool{false, true} {
			evalX := label(x, delta, bx)
			evalY := label(y, delta, by)

			xorOutC := XorContrib(x, y)
			xorOutE := XorEval(evalX, evalY)
			wantXor := label(xorOutC, delta, bx != by)
			if xorOutE != wantXor {
				t.Fatalf("XOR(%v,%v): got %+v, want %+v", bx, by, xorOutE, wantXor)
			}

			notOutC := NotContrib(x, delta)
			notOutE := NotEval(evalX)
			wantNot := label(notOutC, delta, !bx)
			if notOutE != wantNot {
				t.Fatalf("NOT(%v): got %+v, want %+v", bx, notOutE, wantNot)
			}
		}
	}
}

func TestAndGateIndependentGarblingsDiffer(t *testing.T) {
	delta, err := types.NewDelta(rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	x := randContribWire(t)
	y := randContribWire(t)

	_, table1, err := GarbleAnd(rand.Reader, delta, 3, x, y)
	if err != nil {
		t.Fatal(err)
	}
	_, table2, err := GarbleAnd(rand.Reader, delta, 3, x, y)
	if err != nil {
		t.Fatal(err)
	}
	if table1 == table2 {
		t.Fatal("two independent garblings of the same gate produced identical tables")
	}
}
