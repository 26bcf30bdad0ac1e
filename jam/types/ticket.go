// Copyright 2024 Quince Labs (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package types

import (
	"fmt"

	"github.com/quincelabs/quince/lib/common"
	"github.com/quincelabs/quince/pkg/codec"
)

// TicketBody is an anonymous entry in the sealing lottery: the VRF
// output identifying the ticket and the attempt counter it was made
// with.
type TicketBody struct {
	ID      common.Hash
	Attempt uint8
}

// Encode returns the ticket identifier followed by the attempt byte.
func (t TicketBody) Encode() ([]byte, error) {
	enc := make([]byte, 0, common.HashLength+1)
	enc = append(enc, t.ID[:]...)
	enc = append(enc, t.Attempt)
	return enc, nil
}

// DecodeTicketBody reads a ticket body from the front of data.
func DecodeTicketBody(data []byte) (TicketBody, []byte, error) {
	var t TicketBody
	rest, err := takeArray(data, t.ID[:])
	if err != nil {
		return TicketBody{}, nil, fmt.Errorf("decoding ticket id: %w", err)
	}
	t.Attempt, rest, err = codec.DecodeUint8(rest)
	if err != nil {
		return TicketBody{}, nil, fmt.Errorf("decoding ticket attempt: %w", err)
	}
	return t, rest, nil
}

// TicketProof is the extrinsic form of a ticket: the attempt counter
// and the ring VRF proof that anonymously authorizes it.
type TicketProof struct {
	Attempt uint8
	Proof   TicketProofSignature
}

// Encode returns the attempt byte followed by the raw proof.
func (t TicketProof) Encode() ([]byte, error) {
	enc := make([]byte, 0, 1+len(t.Proof))
	enc = append(enc, t.Attempt)
	enc = append(enc, t.Proof[:]...)
	return enc, nil
}

// DecodeTicketProof reads a ticket proof from the front of data.
func DecodeTicketProof(data []byte) (TicketProof, []byte, error) {
	var t TicketProof
	attempt, rest, err := codec.DecodeUint8(data)
	if err != nil {
		return TicketProof{}, nil, fmt.Errorf("decoding ticket attempt: %w", err)
	}
	t.Attempt = attempt
	rest, err = takeArray(rest, t.Proof[:])
	if err != nil {
		return TicketProof{}, nil, fmt.Errorf("decoding ticket proof: %w", err)
	}
	return t, rest, nil
}
