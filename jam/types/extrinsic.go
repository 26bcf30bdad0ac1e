// Copyright 2024 Quince Labs (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package types

import (
	"fmt"

	"github.com/quincelabs/quince/jam/params"
	"github.com/quincelabs/quince/lib/common"
	"github.com/quincelabs/quince/pkg/codec"
)

// Extrinsic carries the block's external input, one variable-length
// sequence per input class plus the dispute record.
type Extrinsic struct {
	Tickets    []TicketProof
	Preimages  []Preimage
	Guarantees []Guarantee
	Assurances []Assurance
	Disputes   Disputes
}

// Encode serializes the extrinsic in ticket, preimage, guarantee,
// assurance, dispute order.
func (e *Extrinsic) Encode(cfg *params.Spec) ([]byte, error) {
	tickets, err := codec.EncodeSequence(e.Tickets, TicketProof.Encode)
	if err != nil {
		return nil, fmt.Errorf("encoding tickets: %w", err)
	}
	preimages, err := codec.EncodeSequence(e.Preimages, Preimage.Encode)
	if err != nil {
		return nil, fmt.Errorf("encoding preimages: %w", err)
	}
	guarantees, err := codec.EncodeSequence(e.Guarantees,
		func(g Guarantee) ([]byte, error) { return g.Encode(cfg) })
	if err != nil {
		return nil, fmt.Errorf("encoding guarantees: %w", err)
	}
	assurances, err := codec.EncodeSequence(e.Assurances,
		func(a Assurance) ([]byte, error) { return a.Encode(cfg) })
	if err != nil {
		return nil, fmt.Errorf("encoding assurances: %w", err)
	}
	disputes, err := e.Disputes.Encode(cfg)
	if err != nil {
		return nil, fmt.Errorf("encoding disputes: %w", err)
	}

	enc := tickets
	enc = append(enc, preimages...)
	enc = append(enc, guarantees...)
	enc = append(enc, assurances...)
	return append(enc, disputes...), nil
}

// Hash returns the blake2b digest of the serialized extrinsic.
func (e *Extrinsic) Hash(cfg *params.Spec) (common.Hash, error) {
	enc, err := e.Encode(cfg)
	if err != nil {
		return common.Hash{}, err
	}
	return common.Blake2b256(enc), nil
}

// DecodeExtrinsic reads an extrinsic from the front of data.
func DecodeExtrinsic(data []byte, cfg *params.Spec) (*Extrinsic, []byte, error) {
	e := new(Extrinsic)
	var err error
	rest := data
	e.Tickets, rest, err = codec.DecodeSequence(rest, DecodeTicketProof)
	if err != nil {
		return nil, nil, fmt.Errorf("decoding tickets: %w", err)
	}
	e.Preimages, rest, err = codec.DecodeSequence(rest, DecodePreimage)
	if err != nil {
		return nil, nil, fmt.Errorf("decoding preimages: %w", err)
	}
	e.Guarantees, rest, err = codec.DecodeSequence(rest,
		func(data []byte) (Guarantee, []byte, error) {
			return DecodeGuarantee(data, cfg)
		})
	if err != nil {
		return nil, nil, fmt.Errorf("decoding guarantees: %w", err)
	}
	e.Assurances, rest, err = codec.DecodeSequence(rest,
		func(data []byte) (Assurance, []byte, error) {
			return DecodeAssurance(data, cfg)
		})
	if err != nil {
		return nil, nil, fmt.Errorf("decoding assurances: %w", err)
	}
	e.Disputes, rest, err = DecodeDisputes(rest, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("decoding disputes: %w", err)
	}
	return e, rest, nil
}
