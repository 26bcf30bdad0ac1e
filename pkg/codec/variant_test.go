// Copyright 2024 Quince Labs (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uint64Ptr(x uint64) *uint64 { return &x }

func Test_EncodeOption(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		value      *uint64
		enc        []byte
		errWrapped error
		errMessage string
	}{
		"nil": {
			enc: []byte{0x00},
		},
		"value": {
			value: uint64Ptr(128),
			enc:   []byte{0x01, 0x80, 0x80},
		},
	}

	for name, testCase := range testCases {
		testCase := testCase
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			enc, err := EncodeOption(testCase.value, encodeNaturalItem)

			assert.ErrorIs(t, err, testCase.errWrapped)
			if testCase.errWrapped != nil {
				assert.EqualError(t, err, testCase.errMessage)
			}
			assert.Equal(t, testCase.enc, enc)
		})
	}
}

func Test_DecodeOption(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		data       []byte
		value      *uint64
		rest       []byte
		errWrapped error
		errMessage string
	}{
		"no data": {
			errWrapped: ErrInsufficientData,
			errMessage: "insufficient data: no bytes for option discriminator",
		},
		"nil": {
			data: []byte{0x00, 0xaa},
			rest: []byte{0xaa},
		},
		"value": {
			data:  []byte{0x01, 0x80, 0x80, 0xaa},
			value: uint64Ptr(128),
			rest:  []byte{0xaa},
		},
		"bad discriminator": {
			data:       []byte{0x02},
			errWrapped: ErrInvalidDiscriminator,
			errMessage: "invalid discriminator: option discriminator 0x02",
		},
		"value decoding error": {
			data:       []byte{0x01, 0x80},
			errWrapped: ErrInsufficientData,
			errMessage: "decoding option value: insufficient data: natural needs 2 bytes, have 1",
		},
	}

	for name, testCase := range testCases {
		testCase := testCase
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			value, rest, err := DecodeOption(testCase.data, DecodeNatural)

			assert.ErrorIs(t, err, testCase.errWrapped)
			if testCase.errWrapped != nil {
				assert.EqualError(t, err, testCase.errMessage)
			}
			assert.Equal(t, testCase.value, value)
			assert.Equal(t, testCase.rest, rest)
		})
	}
}

func Test_Bool(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []byte{0x01}, EncodeBool(true))
	assert.Equal(t, []byte{0x00}, EncodeBool(false))

	b, rest, err := DecodeBool([]byte{0x01, 0xaa})
	require.NoError(t, err)
	assert.True(t, b)
	assert.Equal(t, []byte{0xaa}, rest)

	b, rest, err = DecodeBool([]byte{0x00})
	require.NoError(t, err)
	assert.False(t, b)
	assert.Empty(t, rest)

	_, _, err = DecodeBool(nil)
	assert.ErrorIs(t, err, ErrInsufficientData)

	_, _, err = DecodeBool([]byte{0x02})
	assert.ErrorIs(t, err, ErrInvalidDiscriminator)
	assert.EqualError(t, err, "invalid discriminator: boolean 0x02")
}

func Test_Union(t *testing.T) {
	t.Parallel()

	decoders := map[uint8]DecodeFunc[uint64]{
		0: DecodeNatural,
		2: func(data []byte) (uint64, []byte, error) {
			return DecodeUint64(data)
		},
	}

	enc, err := EncodeUnion(0, 300, encodeNaturalItem)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0x81, 0x2c}, enc)

	tag, value, rest, err := DecodeUnion(append(enc, 0xff), decoders)
	require.NoError(t, err)
	assert.Equal(t, uint8(0), tag)
	assert.Equal(t, uint64(300), value)
	assert.Equal(t, []byte{0xff}, rest)

	_, _, _, err = DecodeUnion(nil, decoders)
	assert.ErrorIs(t, err, ErrInsufficientData)
	assert.EqualError(t, err, "insufficient data: no bytes for union tag")

	_, _, _, err = DecodeUnion([]byte{0x01}, decoders)
	assert.ErrorIs(t, err, ErrInvalidDiscriminator)
	assert.EqualError(t, err, "invalid discriminator: union tag 0x01")

	_, _, _, err = DecodeUnion([]byte{0x02, 0x01}, decoders)
	assert.ErrorIs(t, err, ErrInsufficientData)
	assert.EqualError(t, err,
		"decoding union variant 0x02: insufficient data: 8-byte integer, have 1 bytes")
}
