//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package circuit

import (
	"encoding/binary"
	"fmt"
	"io"
)

// magic tags the binary circuit format so Load can reject unrelated
// files early instead of misparsing them.
const magic = 0x6d706363 // "mpcc"

// Marshal writes the circuit in its binary wire format: a magic
// header, gate count and output count, the gate list, and the output
// index list, all little-endian, mirroring the teacher's
// Circuit.Marshal layout generalized from this package's five-kind
// gate set.
func (c *Circuit) Marshal(out io.Writer) error {
	header := []uint32{magic, uint32(len(c.Gates)), uint32(len(c.OutputGates))}
	for _, v := range header {
		if err := binary.Write(out, binary.LittleEndian, v); err != nil {
			return err
		}
	}
	for _, g := range c.Gates {
		if err := binary.Write(out, binary.LittleEndian, byte(g.Kind)); err != nil {
			return err
		}
		if err := binary.Write(out, binary.LittleEndian, uint32(g.X)); err != nil {
			return err
		}
		if err := binary.Write(out, binary.LittleEndian, uint32(g.Y)); err != nil {
			return err
		}
	}
	for _, o := range c.OutputGates {
		if err := binary.Write(out, binary.LittleEndian, uint32(o)); err != nil {
			return err
		}
	}
	return nil
}

// Load parses a circuit from its binary wire format and validates its
// topology before returning it.
func Load(in io.Reader) (*Circuit, error) {
	var header [3]uint32
	for i := range header {
		if err := binary.Read(in, binary.LittleEndian, &header[i]); err != nil {
			return nil, fmt.Errorf("circuit: reading header: %w", err)
		}
	}
	if header[0] != magic {
		return nil, fmt.Errorf("circuit: bad magic %#x", header[0])
	}
	c := &Circuit{
		Gates:       make([]Gate, header[1]),
		OutputGates: make([]Index, header[2]),
	}
	for i := range c.Gates {
		var kind byte
		var x, y uint32
		if err := binary.Read(in, binary.LittleEndian, &kind); err != nil {
			return nil, fmt.Errorf("circuit: reading gate %d: %w", i, err)
		}
		if err := binary.Read(in, binary.LittleEndian, &x); err != nil {
			return nil, fmt.Errorf("circuit: reading gate %d: %w", i, err)
		}
		if err := binary.Read(in, binary.LittleEndian, &y); err != nil {
			return nil, fmt.Errorf("circuit: reading gate %d: %w", i, err)
		}
		c.Gates[i] = Gate{Kind: Kind(kind), X: Index(x), Y: Index(y)}
	}
	for i := range c.OutputGates {
		var o uint32
		if err := binary.Read(in, binary.LittleEndian, &o); err != nil {
			return nil, fmt.Errorf("circuit: reading output %d: %w", i, err)
		}
		c.OutputGates[i] = Index(o)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}
