//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

// Command mpcstat prints a gate-count table for one or more binary
// circuit files, in the style of the teacher's objdump tool.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/markkurossi/tabulate"

	"github.com/Kaladin13/mpc-core/circuit"
)

func main() {
	log.SetFlags(0)

	if len(os.Args) < 2 {
		fmt.Println("usage: mpcstat circuit-file...")
		os.Exit(1)
	}
	if err := dumpCircuits(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

func dumpCircuits(files []string) error {
	type named struct {
		name string
		c    *circuit.Circuit
	}
	var circuits []named

	for _, file := range files {
		f, err := os.Open(file)
		if err != nil {
			return err
		}
		c, err := circuit.Load(f)
		f.Close()
		if err != nil {
			return fmt.Errorf("%s: %w", file, err)
		}
		circuits = append(circuits, named{name: file, c: c})
	}

	tab := tabulate.New(tabulate.Github)
	tab.Header("File")
	tab.Header("IN").SetAlign(tabulate.MR)
	tab.Header("XOR").SetAlign(tabulate.MR)
	tab.Header("NOT").SetAlign(tabulate.MR)
	tab.Header("AND").SetAlign(tabulate.MR)
	tab.Header("Gates").SetAlign(tabulate.MR)
	tab.Header("Fingerprint")

	for _, nc := range circuits {
		contrib, eval := nc.c.CountInputs()
		row := tab.Row()
		row.Column(nc.name)
		row.Column(fmt.Sprintf("%d/%d", contrib, eval))
		row.Column(fmt.Sprintf("%d", countKind(nc.c, circuit.Xor)))
		row.Column(fmt.Sprintf("%d", countKind(nc.c, circuit.Not)))
		row.Column(fmt.Sprintf("%d", nc.c.CountAndGates()))
		row.Column(fmt.Sprintf("%d", len(nc.c.Gates)))
		fp := nc.c.Fingerprint()
		row.Column(fmt.Sprintf("%x", fp[:8]))
	}
	tab.Print(os.Stdout)

	return nil
}

func countKind(c *circuit.Circuit, k circuit.Kind) int {
	n := 0
	for _, g := range c.Gates {
		if g.Kind == k {
			n++
		}
	}
	return n
}
