// Copyright 2024 Quince Labs (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package types

import (
	"fmt"

	"github.com/quincelabs/quince/lib/common"
	"github.com/quincelabs/quince/pkg/codec"
)

// ServiceMetadata is the fixed-size account record serialized per
// service. The footprint fields summarize the account's item count and
// octet usage so balance checks do not need the items themselves.
type ServiceMetadata struct {
	CodeHash         common.Hash
	Balance          uint64
	MinAccumulateGas Gas
	MinTransferGas   Gas
	FootprintOctets  uint64
	FootprintItems   uint32
}

// Encode serializes the record into its fixed 68 bytes.
func (m *ServiceMetadata) Encode() ([]byte, error) {
	enc := make([]byte, 0, 68)
	enc = append(enc, m.CodeHash[:]...)
	enc = append(enc, codec.EncodeUint64(m.Balance)...)
	enc = append(enc, codec.EncodeUint64(uint64(m.MinAccumulateGas))...)
	enc = append(enc, codec.EncodeUint64(uint64(m.MinTransferGas))...)
	enc = append(enc, codec.EncodeUint64(m.FootprintOctets)...)
	return append(enc, codec.EncodeUint32(m.FootprintItems)...), nil
}

// DecodeServiceMetadata reads a service record from the front of data.
func DecodeServiceMetadata(data []byte) (ServiceMetadata, []byte, error) {
	var m ServiceMetadata
	rest, err := takeArray(data, m.CodeHash[:])
	if err != nil {
		return ServiceMetadata{}, nil, fmt.Errorf("decoding service code hash: %w", err)
	}
	m.Balance, rest, err = codec.DecodeUint64(rest)
	if err != nil {
		return ServiceMetadata{}, nil, fmt.Errorf("decoding service balance: %w", err)
	}
	m.MinAccumulateGas, rest, err = decodeGas(rest)
	if err != nil {
		return ServiceMetadata{}, nil, fmt.Errorf("decoding accumulate gas floor: %w", err)
	}
	m.MinTransferGas, rest, err = decodeGas(rest)
	if err != nil {
		return ServiceMetadata{}, nil, fmt.Errorf("decoding transfer gas floor: %w", err)
	}
	m.FootprintOctets, rest, err = codec.DecodeUint64(rest)
	if err != nil {
		return ServiceMetadata{}, nil, fmt.Errorf("decoding footprint octets: %w", err)
	}
	m.FootprintItems, rest, err = codec.DecodeUint32(rest)
	if err != nil {
		return ServiceMetadata{}, nil, fmt.Errorf("decoding footprint items: %w", err)
	}
	return m, rest, nil
}
