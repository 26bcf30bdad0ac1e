// Copyright 2024 Quince Labs (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package codec

import (
	"fmt"
	"math/big"

	"golang.org/x/exp/constraints"
)

// EncodeUint returns the little-endian encoding of x in exactly width
// bytes. Width must be one of 1, 2, 4 or 8 and x must fit.
func EncodeUint(x uint64, width uint8) ([]byte, error) {
	switch width {
	case 1, 2, 4, 8:
	default:
		return nil, fmt.Errorf("%w: %d", ErrInvalidWidth, width)
	}
	if width < 8 && x >= uint64(1)<<(8*width) {
		return nil, fmt.Errorf("%w: %d overflows %d-byte encoding",
			ErrValueOutOfRange, x, width)
	}
	return encodeUintLE(x, uint(width)), nil
}

// DecodeUint reads a little-endian integer of exactly width bytes from
// the front of data. Width must be one of 1, 2, 4 or 8.
func DecodeUint(data []byte, width uint8) (uint64, []byte, error) {
	switch width {
	case 1, 2, 4, 8:
	default:
		return 0, nil, fmt.Errorf("%w: %d", ErrInvalidWidth, width)
	}
	return decodeUintLE[uint64](data, uint(width))
}

func encodeUintLE[T constraints.Unsigned](x T, width uint) []byte {
	enc := make([]byte, width)
	for i := uint(0); i < width; i++ {
		enc[i] = byte(x >> (8 * i))
	}
	return enc
}

func decodeUintLE[T constraints.Unsigned](data []byte, width uint) (T, []byte, error) {
	if uint(len(data)) < width {
		return 0, nil, fmt.Errorf("%w: %d-byte integer, have %d bytes",
			ErrInsufficientData, width, len(data))
	}
	var x T
	for i := uint(0); i < width; i++ {
		x |= T(data[i]) << (8 * i)
	}
	return x, data[width:], nil
}

// EncodeUint16 returns the 2-byte little-endian encoding of x.
func EncodeUint16(x uint16) []byte { return encodeUintLE(x, 2) }

// EncodeUint32 returns the 4-byte little-endian encoding of x.
func EncodeUint32(x uint32) []byte { return encodeUintLE(x, 4) }

// EncodeUint64 returns the 8-byte little-endian encoding of x.
func EncodeUint64(x uint64) []byte { return encodeUintLE(x, 8) }

// DecodeUint8 reads a single byte from the front of data.
func DecodeUint8(data []byte) (uint8, []byte, error) {
	return decodeUintLE[uint8](data, 1)
}

// DecodeUint16 reads a 2-byte little-endian integer from the front of data.
func DecodeUint16(data []byte) (uint16, []byte, error) {
	return decodeUintLE[uint16](data, 2)
}

// DecodeUint32 reads a 4-byte little-endian integer from the front of data.
func DecodeUint32(data []byte) (uint32, []byte, error) {
	return decodeUintLE[uint32](data, 4)
}

// DecodeUint64 reads an 8-byte little-endian integer from the front of data.
func DecodeUint64(data []byte) (uint64, []byte, error) {
	return decodeUintLE[uint64](data, 8)
}

func validBigWidth(width uint8) bool {
	switch width {
	case 1, 2, 4, 8, 16, 32:
		return true
	}
	return false
}

// EncodeBigUint returns the little-endian encoding of x in exactly width
// bytes, for widths of 1, 2, 4, 8, 16 or 32.
func EncodeBigUint(x *big.Int, width uint8) ([]byte, error) {
	if !validBigWidth(width) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWidth, width)
	}
	if x.Sign() < 0 {
		return nil, fmt.Errorf("%w: %s", ErrNegativeValue, x)
	}
	if x.BitLen() > int(width)*8 {
		return nil, fmt.Errorf("%w: %s overflows %d-byte encoding",
			ErrValueOutOfRange, x, width)
	}
	enc := make([]byte, width)
	x.FillBytes(enc)
	reverseBytes(enc)
	return enc, nil
}

// DecodeBigUint reads a little-endian integer of exactly width bytes
// from the front of data, for widths of 1, 2, 4, 8, 16 or 32.
func DecodeBigUint(data []byte, width uint8) (*big.Int, []byte, error) {
	if !validBigWidth(width) {
		return nil, nil, fmt.Errorf("%w: %d", ErrInvalidWidth, width)
	}
	if len(data) < int(width) {
		return nil, nil, fmt.Errorf("%w: %d-byte integer, have %d bytes",
			ErrInsufficientData, width, len(data))
	}
	be := make([]byte, width)
	copy(be, data[:width])
	reverseBytes(be)
	return new(big.Int).SetBytes(be), data[width:], nil
}

func reverseBytes(b []byte) {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}
