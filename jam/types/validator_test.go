// Copyright 2024 Quince Labs (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package types

import (
	"testing"

	"github.com/quincelabs/quince/pkg/codec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ValidatorKey_Codec(t *testing.T) {
	t.Parallel()

	var key ValidatorKey
	for i := range key.Bandersnatch {
		key.Bandersnatch[i] = 1
	}
	for i := range key.Ed25519 {
		key.Ed25519[i] = 2
	}
	for i := range key.BLS {
		key.BLS[i] = 3
	}
	for i := range key.Metadata {
		key.Metadata[i] = 4
	}

	enc, err := key.Encode()
	require.NoError(t, err)
	require.Len(t, enc, 336)
	assert.Equal(t, byte(1), enc[0])
	assert.Equal(t, byte(2), enc[32])
	assert.Equal(t, byte(3), enc[64])
	assert.Equal(t, byte(4), enc[208])
	assert.Equal(t, byte(4), enc[335])

	decoded, rest, err := DecodeValidatorKey(enc)
	require.NoError(t, err)
	assert.Equal(t, key, decoded)
	assert.Equal(t, []byte{}, rest)

	_, _, err = DecodeValidatorKey(enc[:335])
	assert.ErrorIs(t, err, codec.ErrInsufficientData)
	assert.EqualError(t, err, "decoding validator key: insufficient data: "+
		"need 128 bytes, have 127")
}
