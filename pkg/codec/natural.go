// Copyright 2024 Quince Labs (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package codec

import (
	"encoding/binary"
	"fmt"
	"math/big"
	"math/bits"
)

// maxNaturalBits is the width of the natural number domain. Values of
// 2^64 and above have no encoding.
const maxNaturalBits = 64

// EncodeNatural returns the canonical variable-length encoding of x.
// Zero encodes as a single zero byte and values below 128 as a single
// byte holding the value. Larger values take a prefix byte whose run of
// leading one bits gives the number of little-endian payload bytes that
// follow, with the remaining prefix bits holding the most significant
// part of the value.
func EncodeNatural(x uint64) []byte {
	if x < 1<<7 {
		return []byte{byte(x)}
	}

	for l := uint(1); l < 8; l++ {
		if x >= uint64(1)<<(7*(l+1)) {
			continue
		}
		enc := make([]byte, l+1)
		enc[0] = 0xff<<(8-l) | byte(x>>(8*l))
		for i := uint(0); i < l; i++ {
			enc[1+i] = byte(x >> (8 * i))
		}
		return enc
	}

	enc := make([]byte, 9)
	enc[0] = 0xff
	binary.LittleEndian.PutUint64(enc[1:], x)
	return enc
}

// DecodeNatural reads a variable-length natural from the front of data
// and returns it with the unconsumed remainder. Encodings longer than
// the value requires are rejected with ErrInvalidPrefix.
func DecodeNatural(data []byte) (x uint64, rest []byte, err error) {
	if len(data) == 0 {
		return 0, nil, fmt.Errorf("%w: no bytes for natural prefix", ErrInsufficientData)
	}

	prefix := data[0]
	if prefix < 1<<7 {
		return uint64(prefix), data[1:], nil
	}

	l := uint(bits.LeadingZeros8(^prefix))
	if len(data) < int(l)+1 {
		return 0, nil, fmt.Errorf("%w: natural needs %d bytes, have %d",
			ErrInsufficientData, l+1, len(data))
	}

	for i := uint(0); i < l; i++ {
		x |= uint64(data[1+i]) << (8 * i)
	}
	if l < 8 {
		x |= uint64(prefix&(0xff>>l)) << (8 * l)
	}

	if x < uint64(1)<<(7*l) {
		return 0, nil, fmt.Errorf("%w: %d-byte encoding of %d is not minimal",
			ErrInvalidPrefix, l+1, x)
	}
	return x, data[1+l:], nil
}

var naturalLimit = new(big.Int).Lsh(big.NewInt(1), maxNaturalBits)

// EncodeNaturalBig is the arbitrary-precision form of EncodeNatural.
// Negative values and values of 2^64 or above cannot be encoded.
func EncodeNaturalBig(x *big.Int) ([]byte, error) {
	if x.Sign() < 0 {
		return nil, fmt.Errorf("%w: %s", ErrNegativeValue, x)
	}
	if x.Cmp(naturalLimit) >= 0 {
		return nil, fmt.Errorf("%w: %s is not below 2^%d",
			ErrValueOutOfRange, x, maxNaturalBits)
	}
	return EncodeNatural(x.Uint64()), nil
}

// DecodeNaturalBig is the arbitrary-precision form of DecodeNatural.
func DecodeNaturalBig(data []byte) (*big.Int, []byte, error) {
	x, rest, err := DecodeNatural(data)
	if err != nil {
		return nil, nil, err
	}
	return new(big.Int).SetUint64(x), rest, nil
}
