// Copyright 2024 Quince Labs (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package codec

import (
	"fmt"
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_EncodeUint(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		x          uint64
		width      uint8
		enc        []byte
		errWrapped error
		errMessage string
	}{
		"zero single byte": {
			x:     0,
			width: 1,
			enc:   []byte{0x00},
		},
		"four byte": {
			x:     0x12345678,
			width: 4,
			enc:   []byte{0x78, 0x56, 0x34, 0x12},
		},
		"largest two byte": {
			x:     math.MaxUint16,
			width: 2,
			enc:   []byte{0xff, 0xff},
		},
		"largest eight byte": {
			x:     math.MaxUint64,
			width: 8,
			enc:   []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff},
		},
		"value overflows width": {
			x:          256,
			width:      1,
			errWrapped: ErrValueOutOfRange,
			errMessage: "value out of range: 256 overflows 1-byte encoding",
		},
		"unsupported width": {
			x:          1,
			width:      3,
			errWrapped: ErrInvalidWidth,
			errMessage: "invalid byte width: 3",
		},
	}

	for name, testCase := range testCases {
		testCase := testCase
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			enc, err := EncodeUint(testCase.x, testCase.width)

			assert.ErrorIs(t, err, testCase.errWrapped)
			if testCase.errWrapped != nil {
				assert.EqualError(t, err, testCase.errMessage)
			}
			assert.Equal(t, testCase.enc, enc)
		})
	}
}

func Test_DecodeUint(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		data       []byte
		width      uint8
		x          uint64
		rest       []byte
		errWrapped error
		errMessage string
	}{
		"four byte": {
			data:  []byte{0x78, 0x56, 0x34, 0x12},
			width: 4,
			x:     0x12345678,
			rest:  []byte{},
		},
		"two byte with remainder": {
			data:  []byte{0x34, 0x12, 0xff},
			width: 2,
			x:     0x1234,
			rest:  []byte{0xff},
		},
		"short input": {
			data:       []byte{0x01, 0x02},
			width:      4,
			errWrapped: ErrInsufficientData,
			errMessage: "insufficient data: 4-byte integer, have 2 bytes",
		},
		"unsupported width": {
			data:       []byte{0x01, 0x02, 0x03, 0x04, 0x05},
			width:      5,
			errWrapped: ErrInvalidWidth,
			errMessage: "invalid byte width: 5",
		},
	}

	for name, testCase := range testCases {
		testCase := testCase
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			x, rest, err := DecodeUint(testCase.data, testCase.width)

			assert.ErrorIs(t, err, testCase.errWrapped)
			if testCase.errWrapped != nil {
				assert.EqualError(t, err, testCase.errMessage)
			}
			assert.Equal(t, testCase.x, x)
			assert.Equal(t, testCase.rest, rest)
		})
	}
}

func Test_FixedWidthHelpers(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []byte{0x34, 0x12}, EncodeUint16(0x1234))
	assert.Equal(t, []byte{0x78, 0x56, 0x34, 0x12}, EncodeUint32(0x12345678))
	assert.Equal(t, []byte{0xef, 0xcd, 0xab, 0x89, 0x67, 0x45, 0x23, 0x01},
		EncodeUint64(0x0123456789abcdef))

	x8, rest, err := DecodeUint8([]byte{0x2a, 0xff})
	require.NoError(t, err)
	assert.Equal(t, uint8(0x2a), x8)
	assert.Equal(t, []byte{0xff}, rest)

	x16, rest, err := DecodeUint16([]byte{0x34, 0x12})
	require.NoError(t, err)
	assert.Equal(t, uint16(0x1234), x16)
	assert.Empty(t, rest)

	x32, rest, err := DecodeUint32([]byte{0x78, 0x56, 0x34, 0x12})
	require.NoError(t, err)
	assert.Equal(t, uint32(0x12345678), x32)
	assert.Empty(t, rest)

	x64, rest, err := DecodeUint64([]byte{0xef, 0xcd, 0xab, 0x89, 0x67, 0x45, 0x23, 0x01})
	require.NoError(t, err)
	assert.Equal(t, uint64(0x0123456789abcdef), x64)
	assert.Empty(t, rest)

	_, _, err = DecodeUint32([]byte{0x01})
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func Test_EncodeBigUint(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		x          *big.Int
		width      uint8
		enc        []byte
		errWrapped error
		errMessage string
	}{
		"single byte": {
			x:     big.NewInt(0x2a),
			width: 1,
			enc:   []byte{0x2a},
		},
		"sixteen byte": {
			x:     new(big.Int).Lsh(big.NewInt(1), 64),
			width: 16,
			enc: []byte{
				0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
				0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
			},
		},
		"negative": {
			x:          big.NewInt(-5),
			width:      8,
			errWrapped: ErrNegativeValue,
			errMessage: "value cannot be negative: -5",
		},
		"value overflows width": {
			x:          big.NewInt(256),
			width:      1,
			errWrapped: ErrValueOutOfRange,
			errMessage: "value out of range: 256 overflows 1-byte encoding",
		},
		"unsupported width": {
			x:          big.NewInt(1),
			width:      24,
			errWrapped: ErrInvalidWidth,
			errMessage: "invalid byte width: 24",
		},
	}

	for name, testCase := range testCases {
		testCase := testCase
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			enc, err := EncodeBigUint(testCase.x, testCase.width)

			assert.ErrorIs(t, err, testCase.errWrapped)
			if testCase.errWrapped != nil {
				assert.EqualError(t, err, testCase.errMessage)
			}
			assert.Equal(t, testCase.enc, enc)
		})
	}
}

func Test_BigUint_RoundTrip(t *testing.T) {
	t.Parallel()

	widths := []uint8{1, 2, 4, 8, 16, 32}

	for _, width := range widths {
		width := width
		t.Run(fmt.Sprintf("width %d", width), func(t *testing.T) {
			t.Parallel()

			largest := new(big.Int).Lsh(big.NewInt(1), uint(width)*8)
			largest.Sub(largest, big.NewInt(1))

			for _, x := range []*big.Int{big.NewInt(0), big.NewInt(1), largest} {
				enc, err := EncodeBigUint(x, width)
				require.NoError(t, err)
				require.Len(t, enc, int(width))

				decoded, rest, err := DecodeBigUint(enc, width)
				require.NoError(t, err)
				assert.Equal(t, x.String(), decoded.String())
				assert.Empty(t, rest)
			}
		})
	}
}
