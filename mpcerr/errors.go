//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

// Package mpcerr defines the sentinel error values shared by every
// layer of the core, so callers can errors.Is against one taxonomy
// regardless of which package actually detected the fault.
package mpcerr

import "errors"

var (
	// ErrProtocolInvariant signals a hash yielded a forbidden zero
	// block, an index was out of range, a gate referenced a later
	// gate, or an output count mismatch.
	ErrProtocolInvariant = errors.New("mpc: protocol invariant violated")
	// ErrMAC signals a coin-toss commitment mismatch or a failed
	// authenticated-bit check.
	ErrMAC = errors.New("mpc: MAC verification failed")
	// ErrOtInitDeserialization signals a malformed incoming
	// OT-extension message.
	ErrOtInitDeserialization = errors.New("mpc: OT-extension message deserialization failed")
	// ErrInputShape signals a caller-supplied input bit vector of the
	// wrong length for the circuit.
	ErrInputShape = errors.New("mpc: input bit vector has the wrong length")
	// ErrSerialization signals an underlying wire-format serialization
	// failure.
	ErrSerialization = errors.New("mpc: serialization failed")
)
