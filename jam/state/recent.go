// Copyright 2024 Quince Labs (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package state

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/quincelabs/quince/jam/params"
	"github.com/quincelabs/quince/jam/types"
	"github.com/quincelabs/quince/lib/common"
	"github.com/quincelabs/quince/pkg/codec"
)

// BlockInfo is one entry of the recent-history chapter: a block's
// header hash, the accumulation-output mountain range after it, its
// posterior state root and the work packages it reported.
type BlockInfo struct {
	HeaderHash common.Hash
	MMRPeaks   []*common.Hash
	StateRoot  common.Hash
	Reported   []types.SegmentRootPair
}

// Encode serializes the entry. Reported pairs are written in work
// package hash order.
func (b *BlockInfo) Encode() ([]byte, error) {
	var enc []byte
	enc = append(enc, b.HeaderHash[:]...)

	peaks, err := codec.EncodeSequence(b.MMRPeaks,
		func(peak *common.Hash) ([]byte, error) {
			return codec.EncodeOption(peak, encodeHash)
		})
	if err != nil {
		return nil, fmt.Errorf("encoding mmr peaks: %w", err)
	}
	enc = append(enc, peaks...)
	enc = append(enc, b.StateRoot[:]...)

	reported := make([]types.SegmentRootPair, len(b.Reported))
	copy(reported, b.Reported)
	sort.Slice(reported, func(i, j int) bool {
		return bytes.Compare(reported[i].WorkPackageHash[:], reported[j].WorkPackageHash[:]) < 0
	})
	pairs, err := codec.EncodeSequence(reported, encodeSegmentRootPair)
	if err != nil {
		return nil, fmt.Errorf("encoding reported packages: %w", err)
	}
	return append(enc, pairs...), nil
}

// DecodeBlockInfo reads a recent-history entry from the front of data.
func DecodeBlockInfo(data []byte) (BlockInfo, []byte, error) {
	var b BlockInfo
	header, rest, err := codec.TakeBytes(data, common.HashLength)
	if err != nil {
		return BlockInfo{}, nil, fmt.Errorf("decoding header hash: %w", err)
	}
	b.HeaderHash = common.NewHash(header)

	b.MMRPeaks, rest, err = codec.DecodeSequence(rest,
		func(data []byte) (*common.Hash, []byte, error) {
			return codec.DecodeOption(data, decodeHash)
		})
	if err != nil {
		return BlockInfo{}, nil, fmt.Errorf("decoding mmr peaks: %w", err)
	}

	stateRoot, rest, err := codec.TakeBytes(rest, common.HashLength)
	if err != nil {
		return BlockInfo{}, nil, fmt.Errorf("decoding state root: %w", err)
	}
	b.StateRoot = common.NewHash(stateRoot)

	b.Reported, rest, err = codec.DecodeSequence(rest, decodeSegmentRootPair)
	if err != nil {
		return BlockInfo{}, nil, fmt.Errorf("decoding reported packages: %w", err)
	}
	return b, rest, nil
}

func encodeSegmentRootPair(p types.SegmentRootPair) ([]byte, error) {
	return append(p.WorkPackageHash.Bytes(), p.SegmentRoot[:]...), nil
}

func decodeSegmentRootPair(data []byte) (types.SegmentRootPair, []byte, error) {
	var p types.SegmentRootPair
	pkg, rest, err := codec.TakeBytes(data, common.HashLength)
	if err != nil {
		return types.SegmentRootPair{}, nil, err
	}
	p.WorkPackageHash = common.NewHash(pkg)
	root, rest, err := codec.TakeBytes(rest, common.HashLength)
	if err != nil {
		return types.SegmentRootPair{}, nil, err
	}
	p.SegmentRoot = common.NewHash(root)
	return p, rest, nil
}

// EncodeRecentBlocks serializes the recent-history chapter, oldest
// entry first. At most cfg.RecentHistorySize entries are kept.
func EncodeRecentBlocks(blocks []BlockInfo, cfg *params.Spec) ([]byte, error) {
	if len(blocks) > cfg.RecentHistorySize {
		return nil, fmt.Errorf("%w: history has %d entries, want at most %d",
			codec.ErrValueOutOfRange, len(blocks), cfg.RecentHistorySize)
	}
	enc, err := codec.EncodeSequence(blocks,
		func(b BlockInfo) ([]byte, error) {
			return b.Encode()
		})
	if err != nil {
		return nil, fmt.Errorf("encoding recent blocks: %w", err)
	}
	return enc, nil
}

// DecodeRecentBlocks reads the recent-history chapter from the front
// of data.
func DecodeRecentBlocks(data []byte, cfg *params.Spec) ([]BlockInfo, []byte, error) {
	blocks, rest, err := codec.DecodeSequence(data, DecodeBlockInfo)
	if err != nil {
		return nil, nil, fmt.Errorf("decoding recent blocks: %w", err)
	}
	if len(blocks) > cfg.RecentHistorySize {
		return nil, nil, fmt.Errorf("%w: history has %d entries, want at most %d",
			codec.ErrValueOutOfRange, len(blocks), cfg.RecentHistorySize)
	}
	return blocks, rest, nil
}
