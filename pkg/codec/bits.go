// Copyright 2024 Quince Labs (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package codec

import (
	"fmt"
)

const bitsPerByte = 8

// EncodeBits packs bits least significant first into the minimum number
// of whole bytes. No length marker is written since bitfield widths are
// fixed by the protocol.
func EncodeBits(bits []bool) []byte {
	enc := make([]byte, (len(bits)+bitsPerByte-1)/bitsPerByte)
	for i, bit := range bits {
		if bit {
			enc[i/bitsPerByte] |= 1 << (i % bitsPerByte)
		}
	}
	return enc
}

// DecodeBits reads count bits packed least significant first from the
// front of data. Padding bits in the final byte must be zero.
func DecodeBits(data []byte, count int) ([]bool, []byte, error) {
	numBytes := (count + bitsPerByte - 1) / bitsPerByte
	if len(data) < numBytes {
		return nil, nil, fmt.Errorf("%w: %d bits need %d bytes, have %d",
			ErrInsufficientData, count, numBytes, len(data))
	}
	if count%bitsPerByte != 0 {
		if pad := data[numBytes-1] >> (count % bitsPerByte); pad != 0 {
			return nil, nil, fmt.Errorf("%w: %08b", ErrNonZeroPadding, data[numBytes-1])
		}
	}
	bits := make([]bool, count)
	for i := range bits {
		bits[i] = data[i/bitsPerByte]&(1<<(i%bitsPerByte)) != 0
	}
	return bits, data[numBytes:], nil
}
