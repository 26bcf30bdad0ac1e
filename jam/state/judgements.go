// Copyright 2024 Quince Labs (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package state

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/quincelabs/quince/jam/types"
	"github.com/quincelabs/quince/lib/common"
	"github.com/quincelabs/quince/pkg/codec"
)

// DisputeRecords is the judgements chapter: work reports judged good,
// bad or of unknowable validity, and the keys of misbehaving
// validators. Each list is serialized in ascending byte order.
type DisputeRecords struct {
	Good      []common.Hash
	Bad       []common.Hash
	Wonky     []common.Hash
	Offenders []types.Ed25519Key
}

// Encode serializes the chapter. The stored records are not mutated;
// sorting happens on copies.
func (d *DisputeRecords) Encode() ([]byte, error) {
	var enc []byte
	for _, list := range []struct {
		name   string
		hashes []common.Hash
	}{
		{"good reports", d.Good},
		{"bad reports", d.Bad},
		{"wonky reports", d.Wonky},
	} {
		b, err := codec.EncodeSequence(sortedHashes(list.hashes), encodeHash)
		if err != nil {
			return nil, fmt.Errorf("encoding %s: %w", list.name, err)
		}
		enc = append(enc, b...)
	}

	offenders := make([]types.Ed25519Key, len(d.Offenders))
	copy(offenders, d.Offenders)
	sort.Slice(offenders, func(i, j int) bool {
		return bytes.Compare(offenders[i][:], offenders[j][:]) < 0
	})
	b, err := codec.EncodeSequence(offenders,
		func(k types.Ed25519Key) ([]byte, error) { return k[:], nil })
	if err != nil {
		return nil, fmt.Errorf("encoding offenders: %w", err)
	}
	return append(enc, b...), nil
}

func sortedHashes(hashes []common.Hash) []common.Hash {
	sorted := make([]common.Hash, len(hashes))
	copy(sorted, hashes)
	sort.Slice(sorted, func(i, j int) bool {
		return bytes.Compare(sorted[i][:], sorted[j][:]) < 0
	})
	return sorted
}

// DecodeDisputeRecords reads the judgements chapter from the front of
// data.
func DecodeDisputeRecords(data []byte) (DisputeRecords, []byte, error) {
	var d DisputeRecords
	var err error
	d.Good, data, err = codec.DecodeSequence(data, decodeHash)
	if err != nil {
		return DisputeRecords{}, nil, fmt.Errorf("decoding good reports: %w", err)
	}
	d.Bad, data, err = codec.DecodeSequence(data, decodeHash)
	if err != nil {
		return DisputeRecords{}, nil, fmt.Errorf("decoding bad reports: %w", err)
	}
	d.Wonky, data, err = codec.DecodeSequence(data, decodeHash)
	if err != nil {
		return DisputeRecords{}, nil, fmt.Errorf("decoding wonky reports: %w", err)
	}
	d.Offenders, data, err = codec.DecodeSequence(data, decodeOffenderKey)
	if err != nil {
		return DisputeRecords{}, nil, fmt.Errorf("decoding offenders: %w", err)
	}
	return d, data, nil
}

func decodeOffenderKey(data []byte) (types.Ed25519Key, []byte, error) {
	var k types.Ed25519Key
	b, rest, err := codec.TakeBytes(data, len(k))
	if err != nil {
		return types.Ed25519Key{}, nil, err
	}
	copy(k[:], b)
	return k, rest, nil
}
