// Copyright 2024 Quince Labs (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package types

import (
	"testing"

	"github.com/quincelabs/quince/jam/params"
	"github.com/quincelabs/quince/pkg/codec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Block_Codec(t *testing.T) {
	t.Parallel()

	cfg := params.Tiny()
	block := Block{
		Header: Header{
			Parent:      testHash(0x81),
			Slot:        3,
			AuthorIndex: 2,
			Seal:        VRFSignature{0x82},
		},
		Extrinsic: *testExtrinsic(cfg),
	}

	enc, err := block.Encode(cfg)
	require.NoError(t, err)

	decoded, rest, err := DecodeBlock(enc, cfg)
	require.NoError(t, err)
	assert.Equal(t, &block, decoded)
	assert.Equal(t, []byte{}, rest)
}

func Test_DecodeBlock(t *testing.T) {
	t.Parallel()

	cfg := params.Tiny()

	_, _, err := DecodeBlock([]byte{0x01}, cfg)
	assert.ErrorIs(t, err, codec.ErrInsufficientData)
	assert.EqualError(t, err, "decoding header: decoding parent hash: "+
		"insufficient data: need 32 bytes, have 1")
}
