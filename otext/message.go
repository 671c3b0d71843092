//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package otext

import (
	"fmt"

	"github.com/Kaladin13/mpc-core/baseot"
	"github.com/Kaladin13/mpc-core/mpcerr"
	"github.com/Kaladin13/mpc-core/types"
)

// Init is the first extension-setup message: one base-OT Init value
// per column, sent from the party without Δ to the party holding Δ.
type Init struct {
	Cols [types.K]baseot.Init
}

// Bytes serializes Init as K concatenated base-OT Init blocks.
func (m Init) Bytes() []byte {
	out := make([]byte, 0, types.K*len(baseot.Init{}.Bytes()))
	for i := range m.Cols {
		out = append(out, m.Cols[i].Bytes()...)
	}
	return out
}

// InitFromBytes parses a K-column Init message.
func InitFromBytes(b []byte) (Init, error) {
	var m Init
	width := len(baseot.Init{}.Bytes())
	if len(b) != types.K*width {
		return Init{}, fmt.Errorf("%w: otext: invalid Init length %d, want %d", mpcerr.ErrOtInitDeserialization, len(b), types.K*width)
	}
	for i := range m.Cols {
		col, err := baseot.InitFromBytes(b[i*width : (i+1)*width])
		if err != nil {
			return Init{}, err
		}
		m.Cols[i] = col
	}
	return m, nil
}

// Reply is the second extension-setup message: one base-OT Reply per
// column, sent from the Δ-holding party back to the initiator.
type Reply struct {
	Cols [types.K]baseot.Reply
}

// Bytes serializes Reply as K concatenated base-OT Reply blocks.
func (m Reply) Bytes() []byte {
	out := make([]byte, 0, types.K*len(baseot.Reply{}.Bytes()))
	for i := range m.Cols {
		out = append(out, m.Cols[i].Bytes()...)
	}
	return out
}

// ReplyFromBytes parses a K-column Reply message.
func ReplyFromBytes(b []byte) (Reply, error) {
	var m Reply
	width := len(baseot.Reply{}.Bytes())
	if len(b) != types.K*width {
		return Reply{}, fmt.Errorf("%w: otext: invalid Reply length %d, want %d", mpcerr.ErrOtInitDeserialization, len(b), types.K*width)
	}
	for i := range m.Cols {
		col, err := baseot.ReplyFromBytes(b[i*width : (i+1)*width])
		if err != nil {
			return Reply{}, err
		}
		m.Cols[i] = col
	}
	return m, nil
}

// InitReply is the third extension-setup message: one base-OT
// InitReply per column (2*MsgLen bytes each), carrying the two masked
// stream seeds of every column.
type InitReply struct {
	Cols [types.K]baseot.InitReply
}

// Bytes serializes InitReply as K concatenated base-OT InitReply
// blocks (types.K * 2*baseot.MsgLen bytes total).
func (m InitReply) Bytes() []byte {
	out := make([]byte, 0, types.K*2*baseot.MsgLen)
	for i := range m.Cols {
		out = append(out, m.Cols[i].Bytes()...)
	}
	return out
}

// InitReplyFromBytes parses a K-column InitReply message. Any length
// other than types.K*2*baseot.MsgLen is a deserialization error.
func InitReplyFromBytes(b []byte) (InitReply, error) {
	var m InitReply
	const width = 2 * baseot.MsgLen
	if len(b) != types.K*width {
		return InitReply{}, fmt.Errorf("%w: otext: invalid InitReply length %d, want %d", mpcerr.ErrOtInitDeserialization, len(b), types.K*width)
	}
	for i := range m.Cols {
		col, err := baseot.InitReplyFromBytes(b[i*width : (i+1)*width])
		if err != nil {
			return InitReply{}, err
		}
		m.Cols[i] = col
	}
	return m, nil
}
