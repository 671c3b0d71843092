//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package otext

import (
	"crypto/rand"
	"testing"

	"github.com/Kaladin13/mpc-core/types"
)

func setupPair(t *testing.T) (*Receiver, *Sender) {
	t.Helper()
	delta, err := types.NewDelta(rand.Reader)
	if err != nil {
		t.Fatal(err)
	}

	recv, init, err := NewReceiver(rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	send, reply, err := NewSender(rand.Reader, delta, init)
	if err != nil {
		t.Fatal(err)
	}
	initReply, err := recv.CompleteReceiver(reply)
	if err != nil {
		t.Fatal(err)
	}
	if err := send.CompleteSender(initReply); err != nil {
		t.Fatal(err)
	}
	return recv, send
}

func TestSetupMessageRoundTrip(t *testing.T) {
	recv, init, err := NewReceiver(rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	delta, _ := types.NewDelta(rand.Reader)
	send, reply, err := NewSender(rand.Reader, delta, init)
	if err != nil {
		t.Fatal(err)
	}
	initReply, err := recv.CompleteReceiver(reply)
	if err != nil {
		t.Fatal(err)
	}
	if err := send.CompleteSender(initReply); err != nil {
		t.Fatal(err)
	}

	gotInit, err := InitFromBytes(init.Bytes())
	if err != nil || gotInit != init {
		t.Fatalf("Init round-trip failed: %v", err)
	}
	gotReply, err := ReplyFromBytes(reply.Bytes())
	if err != nil || gotReply != reply {
		t.Fatalf("Reply round-trip failed: %v", err)
	}
	gotInitReply, err := InitReplyFromBytes(initReply.Bytes())
	if err != nil || gotInitReply != initReply {
		t.Fatalf("InitReply round-trip failed: %v", err)
	}
}

func TestInitBadLength(t *testing.T) {
	if _, err := InitFromBytes(make([]byte, 3)); err == nil {
		t.Fatal("expected error for wrong-length Init")
	}
}

func TestBatchSatisfiesITMAC(t *testing.T) {
	recv, send := setupPair(t)

	x, err := types.RandomBlock128(rand.Reader)
	if err != nil {
		t.Fatal(err)
	}

	macs, u := recv.NextBatch(x)
	keys := send.NextBatch(u)

	for j := 0; j < types.K; j++ {
		bit := x.Bit(j) == 1
		share := types.BitShare{Bit: bit, Mac: macs[j]}
		if !share.Verify(keys[j], send.delta) {
			t.Fatalf("bit %d: IT-MAC relation failed (bit=%v)", j, bit)
		}
	}
}

func TestBatchKeyMismatchFailsVerify(t *testing.T) {
	recv, send := setupPair(t)

	x, _ := types.RandomBlock128(rand.Reader)
	macs, u := recv.NextBatch(x)
	keys := send.NextBatch(u)

	// Flip the claimed bit for index 0; NewDelta forces delta's bit 0
	// to 1, so delta is never zero and verification must now fail.
	flipped := types.BitShare{Bit: x.Bit(0) == 0, Mac: macs[0]}
	if flipped.Verify(keys[0], send.delta) {
		t.Fatal("verification succeeded for a flipped bit")
	}
}

func TestMultipleBatchesIndependent(t *testing.T) {
	recv, send := setupPair(t)

	x1, _ := types.RandomBlock128(rand.Reader)
	x2, _ := types.RandomBlock128(rand.Reader)

	macs1, u1 := recv.NextBatch(x1)
	keys1 := send.NextBatch(u1)
	macs2, u2 := recv.NextBatch(x2)
	keys2 := send.NextBatch(u2)

	for j := 0; j < types.K; j++ {
		s1 := types.BitShare{Bit: x1.Bit(j) == 1, Mac: macs1[j]}
		if !s1.Verify(keys1[j], send.delta) {
			t.Fatalf("batch1 bit %d failed", j)
		}
		s2 := types.BitShare{Bit: x2.Bit(j) == 1, Mac: macs2[j]}
		if !s2.Verify(keys2[j], send.delta) {
			t.Fatalf("batch2 bit %d failed", j)
		}
	}
}
