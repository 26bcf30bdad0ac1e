// Copyright 2024 Quince Labs (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package types

import (
	"fmt"

	"github.com/quincelabs/quince/jam/params"
	"github.com/quincelabs/quince/lib/common"
	"github.com/quincelabs/quince/pkg/codec"
)

// Assurance is a validator's attestation that it holds its erasure
// chunks for the work reports pending on the cores flagged in the
// bitfield. The bitfield carries one bit per core.
type Assurance struct {
	Anchor         common.Hash
	Bitfield       []bool
	ValidatorIndex ValidatorIndex
	Signature      Signature
}

// Encode serializes the assurance. The bitfield is packed into one bit
// per core with zero padding to a whole byte.
func (a *Assurance) Encode(cfg *params.Spec) ([]byte, error) {
	if len(a.Bitfield) != cfg.Cores {
		return nil, fmt.Errorf("encoding assurance bitfield: %w: have %d bits, want %d",
			codec.ErrLengthMismatch, len(a.Bitfield), cfg.Cores)
	}
	var enc []byte
	enc = append(enc, a.Anchor[:]...)
	enc = append(enc, codec.EncodeBits(a.Bitfield)...)
	enc = append(enc, codec.EncodeUint16(uint16(a.ValidatorIndex))...)
	enc = append(enc, a.Signature[:]...)
	return enc, nil
}

// DecodeAssurance reads an assurance from the front of data.
func DecodeAssurance(data []byte, cfg *params.Spec) (Assurance, []byte, error) {
	var a Assurance
	rest, err := takeArray(data, a.Anchor[:])
	if err != nil {
		return Assurance{}, nil, fmt.Errorf("decoding assurance anchor: %w", err)
	}
	a.Bitfield, rest, err = codec.DecodeBits(rest, cfg.Cores)
	if err != nil {
		return Assurance{}, nil, fmt.Errorf("decoding assurance bitfield: %w", err)
	}
	a.ValidatorIndex, rest, err = decodeValidatorIndex(rest)
	if err != nil {
		return Assurance{}, nil, fmt.Errorf("decoding assurance validator index: %w", err)
	}
	rest, err = takeArray(rest, a.Signature[:])
	if err != nil {
		return Assurance{}, nil, fmt.Errorf("decoding assurance signature: %w", err)
	}
	return a, rest, nil
}
