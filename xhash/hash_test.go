//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package xhash

import (
	"math/big"
	"testing"

	"github.com/Kaladin13/mpc-core/types"
)

func blockFromDecimal(t *testing.T, s string) types.Block128 {
	t.Helper()
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		t.Fatalf("invalid decimal literal %q", s)
	}
	buf := n.Bytes() // big-endian
	var le [16]byte
	for i, b := range buf {
		le[len(buf)-1-i] = b
	}
	var b types.Block128
	b.SetBytes(le[:])
	return b
}

func blockToDecimal(b types.Block128) *big.Int {
	buf := b.Bytes()
	be := make([]byte, 16)
	for i, c := range buf {
		be[15-i] = c
	}
	return new(big.Int).SetBytes(be)
}

func TestHashPinnedVectors(t *testing.T) {
	r0 := blockFromDecimal(t, "164479851121213158701332959497568687214")
	r1 := blockFromDecimal(t, "32869993993155099816536977414117934351")

	h0 := H(r0)
	want0, _ := new(big.Int).SetString("252301825721988224801639279640745335827", 10)
	if got := blockToDecimal(types.Block128(h0)); got.Cmp(want0) != 0 {
		t.Fatalf("H(r0) = %s, want %s", got, want0)
	}

	h1 := H(r1)
	want1, _ := new(big.Int).SetString("19881579897213927600698344798095172587", 10)
	if got := blockToDecimal(types.Block128(h1)); got.Cmp(want1) != 0 {
		t.Fatalf("H(r1) = %s, want %s", got, want1)
	}

	h2 := H2(types.KeyType(r0), types.KeyType(r1))
	want2, _ := new(big.Int).SetString("265242760764573362325515364989468422452", 10)
	if got := blockToDecimal(types.Block128(h2)); got.Cmp(want2) != 0 {
		t.Fatalf("H2(r0,r1) = %s, want %s", got, want2)
	}
}

func TestHDeterministic(t *testing.T) {
	var b types.Block128
	b.Lo, b.Hi = 42, 7
	if H(b) != H(b) {
		t.Fatal("H is not deterministic")
	}
}

func TestH2Asymmetric(t *testing.T) {
	k1 := types.KeyType{Lo: 1}
	k2 := types.KeyType{Lo: 2}
	if H2(k1, k2) == H2(k2, k1) {
		t.Fatal("H2 must be non-commutative")
	}
}

func TestHGateDisjointRows(t *testing.T) {
	lx := types.WireLabel{Lo: 0}
	ly := types.WireLabel{Lo: 1}

	h0, err := HGate(lx, ly, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	h1, err := HGate(lx, ly, 0, 1)
	if err != nil {
		t.Fatal(err)
	}
	if h0 == h1 {
		t.Fatal("HGate rows 0 and 1 must be disjoint")
	}
}

func TestHGateNeverZero(t *testing.T) {
	lx := types.WireLabel{Lo: 123, Hi: 456}
	ly := types.WireLabel{Lo: 789, Hi: 1011}
	for row := byte(0); row < 4; row++ {
		share, err := HGate(lx, ly, 5, row)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if types.Block128(share.Mac).IsZero() || types.Block128(share.Key).IsZero() {
			t.Fatal("HGate produced a zero half without erroring")
		}
	}
}

func TestFullDigestLength(t *testing.T) {
	d := FullDigest([]byte("coin"))
	if len(d) != OutLen {
		t.Fatalf("digest length = %d, want %d", len(d), OutLen)
	}
}
