// Copyright 2024 Quince Labs (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package types

import (
	"fmt"

	"github.com/quincelabs/quince/jam/params"
)

// Block pairs a sealed header with its extrinsic.
type Block struct {
	Header    Header
	Extrinsic Extrinsic
}

// Encode serializes the header followed by the extrinsic.
func (b *Block) Encode(cfg *params.Spec) ([]byte, error) {
	header, err := b.Header.Encode(cfg)
	if err != nil {
		return nil, fmt.Errorf("encoding header: %w", err)
	}
	extrinsic, err := b.Extrinsic.Encode(cfg)
	if err != nil {
		return nil, fmt.Errorf("encoding extrinsic: %w", err)
	}
	return append(header, extrinsic...), nil
}

// DecodeBlock reads a block from the front of data.
func DecodeBlock(data []byte, cfg *params.Spec) (*Block, []byte, error) {
	header, rest, err := DecodeHeader(data, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("decoding header: %w", err)
	}
	extrinsic, rest, err := DecodeExtrinsic(rest, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("decoding extrinsic: %w", err)
	}
	return &Block{Header: *header, Extrinsic: *extrinsic}, rest, nil
}
