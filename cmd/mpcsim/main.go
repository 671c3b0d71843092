//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

// Command mpcsim runs a two-party session against a binary circuit
// file in a single process, the same in-memory driver package
// mpccore's test suite uses, and prints the evaluator's decoded
// output bits. It exists for local experimentation with circuits in
// the binary format that cmd/mpcstat also reads; a real two-process deployment
// would replace mpccore.Simulate's in-memory loop with a transport
// that frames session.Message the way the teacher's p2p.Conn frames
// its own protocol messages.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/Kaladin13/mpc-core"
	"github.com/Kaladin13/mpc-core/circuit"
)

func main() {
	log.SetFlags(0)

	file := flag.String("c", "", "circuit file")
	contribBits := flag.String("a", "", "contributor input bits, e.g. 1011")
	evalBits := flag.String("b", "", "evaluator input bits, e.g. 0110")
	role := flag.String("role", "contributor", "which role this invocation narrates: contributor or evaluator")
	flag.Parse()

	var r mpccore.Role
	switch *role {
	case "contributor":
		r = mpccore.Contributor
	case "evaluator":
		r = mpccore.Evaluator
	default:
		log.Fatalf("unknown role %q, want contributor or evaluator", *role)
	}

	if *file == "" {
		fmt.Println("usage: mpcsim -c circuit-file [-a bits] [-b bits]")
		os.Exit(1)
	}

	f, err := os.Open(*file)
	if err != nil {
		log.Fatal(err)
	}
	c, err := circuit.Load(f)
	f.Close()
	if err != nil {
		log.Fatal(err)
	}

	a, err := parseBits(*contribBits)
	if err != nil {
		log.Fatalf("contributor bits: %v", err)
	}
	b, err := parseBits(*evalBits)
	if err != nil {
		log.Fatalf("evaluator bits: %v", err)
	}

	fmt.Printf("%s: %s\n", r, c.Report())
	out, err := mpccore.Simulate(c, a, b, mpccore.Config{})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Print("output:")
	for _, bit := range out {
		if bit {
			fmt.Print(" 1")
		} else {
			fmt.Print(" 0")
		}
	}
	fmt.Println()
}

func parseBits(s string) ([]bool, error) {
	if s == "" {
		return nil, nil
	}
	bits := make([]bool, len(s))
	for i, r := range s {
		switch r {
		case '0':
			bits[i] = false
		case '1':
			bits[i] = true
		default:
			return nil, fmt.Errorf("invalid bit %q at position %d", r, i)
		}
	}
	return bits, nil
}
