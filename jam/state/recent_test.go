// Copyright 2024 Quince Labs (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package state

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/quincelabs/quince/jam/params"
	"github.com/quincelabs/quince/jam/types"
	"github.com/quincelabs/quince/lib/common"
	"github.com/quincelabs/quince/pkg/codec"
)

func testBlockInfo() BlockInfo {
	peak := testHash(0x11)
	return BlockInfo{
		HeaderHash: testHash(0x01),
		MMRPeaks:   []*common.Hash{nil, &peak},
		StateRoot:  testHash(0x02),
		Reported: []types.SegmentRootPair{
			{WorkPackageHash: testHash(0xbb), SegmentRoot: testHash(0x04)},
			{WorkPackageHash: testHash(0xaa), SegmentRoot: testHash(0x03)},
		},
	}
}

func Test_BlockInfo_Codec(t *testing.T) {
	t.Parallel()

	info := testBlockInfo()

	enc, err := info.Encode()
	assert.NoError(t, err)
	// header hash, peak sequence, state root, reported sequence
	assert.Len(t, enc, 32+(1+1+33)+32+(1+2*64))

	decoded, rest, err := DecodeBlockInfo(enc)
	assert.NoError(t, err)
	assert.Equal(t, []byte{}, rest)

	// Reported pairs come back in work package hash order.
	expected := info
	expected.Reported = []types.SegmentRootPair{
		info.Reported[1],
		info.Reported[0],
	}
	assert.Equal(t, expected, decoded)
}

func Test_BlockInfo_Encode_empty(t *testing.T) {
	t.Parallel()

	info := BlockInfo{
		HeaderHash: testHash(0x01),
		StateRoot:  testHash(0x02),
	}

	enc, err := info.Encode()
	assert.NoError(t, err)

	expected := append(testHash(0x01).Bytes(), 0x00)
	expected = append(expected, testHash(0x02).Bytes()...)
	expected = append(expected, 0x00)
	assert.Equal(t, expected, enc)
}

func Test_DecodeBlockInfo_errors(t *testing.T) {
	t.Parallel()

	info := testBlockInfo()
	valid, err := info.Encode()
	assert.NoError(t, err)

	testCases := map[string]struct {
		data       []byte
		sentinel   error
		errMessage string
	}{
		"empty": {
			sentinel:   codec.ErrInsufficientData,
			errMessage: "decoding header hash: insufficient data: need 32 bytes, have 0",
		},
		"truncated peaks": {
			data:       valid[:33],
			sentinel:   codec.ErrInsufficientData,
			errMessage: "decoding mmr peaks: insufficient data: sequence claims 2 items with 0 bytes remaining",
		},
		"truncated state root": {
			data:       valid[:len(valid)-130],
			sentinel:   codec.ErrInsufficientData,
			errMessage: "decoding state root: insufficient data: need 32 bytes, have 31",
		},
	}

	for name, testCase := range testCases {
		testCase := testCase
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, _, err := DecodeBlockInfo(testCase.data)
			assert.ErrorIs(t, err, testCase.sentinel)
			assert.EqualError(t, err, testCase.errMessage)
		})
	}
}

func Test_RecentBlocks_Codec(t *testing.T) {
	t.Parallel()

	cfg := params.Tiny()
	blocks := []BlockInfo{testBlockInfo()}

	enc, err := EncodeRecentBlocks(blocks, cfg)
	assert.NoError(t, err)

	decoded, rest, err := DecodeRecentBlocks(enc, cfg)
	assert.NoError(t, err)
	assert.Equal(t, []byte{}, rest)
	assert.Len(t, decoded, 1)
}

func Test_EncodeRecentBlocks_bound(t *testing.T) {
	t.Parallel()

	cfg := params.Tiny()
	blocks := make([]BlockInfo, cfg.RecentHistorySize+1)

	_, err := EncodeRecentBlocks(blocks, cfg)
	assert.ErrorIs(t, err, codec.ErrValueOutOfRange)
	assert.EqualError(t, err, "value out of range: history has 9 entries, want at most 8")
}
