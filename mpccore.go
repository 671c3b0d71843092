//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

// Package mpccore ties the cryptographic core together: the
// Contributor/Evaluator session drivers (package session) operating
// over a circuit (package circuit), plus the in-process Simulate
// driver used by tests and the cmd/mpcsim tool.
package mpccore

import (
	"crypto/rand"
	"io"

	"github.com/Kaladin13/mpc-core/circuit"
	"github.com/Kaladin13/mpc-core/mpcerr"
	"github.com/Kaladin13/mpc-core/session"
)

// Role distinguishes which side of a two-party session a participant
// plays.
type Role int

const (
	// Contributor holds the global Δ and garbles the circuit.
	Contributor Role = iota
	// Evaluator holds no Δ and evaluates the garbled circuit.
	Evaluator
)

func (r Role) String() string {
	if r == Contributor {
		return "contributor"
	}
	return "evaluator"
}

// Config carries the session's randomness source. A zero Config uses
// crypto/rand.Reader, mirroring the teacher's env.Config.GetRandom
// default, but passed per call rather than held process-global.
// Simulate hands the same reader to both the contributor and the
// evaluator.
type Config struct {
	Rand io.Reader
}

func (c Config) rand() io.Reader {
	if c.Rand != nil {
		return c.Rand
	}
	return rand.Reader
}

// Sentinel errors, matching the error taxonomy of the specification:
// every one is fatal and terminates the session it occurred in. They
// are aliases of package mpcerr's values so that session, garble,
// otext and mpccore all satisfy errors.Is against the same taxonomy
// without mpccore importing session importing mpccore.
var (
	ErrProtocolInvariant     = mpcerr.ErrProtocolInvariant
	ErrMAC                   = mpcerr.ErrMAC
	ErrOtInitDeserialization = mpcerr.ErrOtInitDeserialization
	ErrInputShape            = mpcerr.ErrInputShape
	ErrSerialization         = mpcerr.ErrSerialization
)

// Simulate runs a full Contributor/Evaluator session in-process over
// an in-memory message queue, looping Steps() times exactly as the
// reference simulator does, and returns the evaluator's decoded
// output bits.
func Simulate(c *circuit.Circuit, inputContrib, inputEval []bool, cfg Config) ([]bool, error) {
	contrib, firstMsg, err := session.NewContributor(c, inputContrib, cfg.rand())
	if err != nil {
		return nil, err
	}
	eval, err := session.NewEvaluator(c, inputEval, cfg.rand())
	if err != nil {
		return nil, err
	}

	if contrib.Steps() != eval.Steps() {
		return nil, ErrProtocolInvariant
	}

	msg := firstMsg
	for i := 0; i < contrib.Steps(); i++ {
		evalOut, err := eval.Run(msg)
		if err != nil {
			return nil, err
		}
		msg, err = contrib.Run(evalOut)
		if err != nil {
			return nil, err
		}
	}

	return eval.Output(msg)
}
