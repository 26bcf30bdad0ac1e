// Copyright 2024 Quince Labs (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package codec

import (
	"fmt"
)

// EncodeFixedSequence concatenates the encodings of items, which must
// number exactly count. No length marker is written since the count is
// fixed by the protocol.
func EncodeFixedSequence[T any](items []T, count int, encode EncodeFunc[T]) ([]byte, error) {
	if len(items) != count {
		return nil, fmt.Errorf("%w: have %d items, want %d",
			ErrLengthMismatch, len(items), count)
	}
	var enc []byte
	for i := range items {
		b, err := encode(items[i])
		if err != nil {
			return nil, fmt.Errorf("encoding item %d: %w", i, err)
		}
		enc = append(enc, b...)
	}
	return enc, nil
}

// DecodeFixedSequence reads exactly count items from the front of data.
func DecodeFixedSequence[T any](data []byte, count int, decode DecodeFunc[T]) ([]T, []byte, error) {
	if count == 0 {
		return nil, data, nil
	}
	items := make([]T, 0, count)
	rest := data
	for i := 0; i < count; i++ {
		item, r, err := decode(rest)
		if err != nil {
			return nil, nil, fmt.Errorf("decoding item %d: %w", i, err)
		}
		items = append(items, item)
		rest = r
	}
	return items, rest, nil
}

// EncodeSequence writes the item count as a natural followed by the
// encoding of each item in order.
func EncodeSequence[T any](items []T, encode EncodeFunc[T]) ([]byte, error) {
	enc := EncodeNatural(uint64(len(items)))
	for i := range items {
		b, err := encode(items[i])
		if err != nil {
			return nil, fmt.Errorf("encoding item %d: %w", i, err)
		}
		enc = append(enc, b...)
	}
	return enc, nil
}

// DecodeSequence reads a natural item count from the front of data and
// then that many items. The declared count is checked against the
// remaining input before anything is allocated, since every item
// occupies at least one byte.
func DecodeSequence[T any](data []byte, decode DecodeFunc[T]) ([]T, []byte, error) {
	count, rest, err := DecodeNatural(data)
	if err != nil {
		return nil, nil, fmt.Errorf("decoding sequence length: %w", err)
	}
	if count > uint64(len(rest)) {
		return nil, nil, fmt.Errorf("%w: sequence claims %d items with %d bytes remaining",
			ErrInsufficientData, count, len(rest))
	}
	if count == 0 {
		return nil, rest, nil
	}
	items := make([]T, 0, count)
	for i := uint64(0); i < count; i++ {
		var item T
		item, rest, err = decode(rest)
		if err != nil {
			return nil, nil, fmt.Errorf("decoding item %d: %w", i, err)
		}
		items = append(items, item)
	}
	return items, rest, nil
}

// EncodeBytes writes the length of b as a natural followed by b itself.
func EncodeBytes(b []byte) []byte {
	return append(EncodeNatural(uint64(len(b))), b...)
}

// DecodeBytes reads a length-prefixed blob from the front of data. The
// returned slice is a copy and does not alias data.
func DecodeBytes(data []byte) ([]byte, []byte, error) {
	length, rest, err := DecodeNatural(data)
	if err != nil {
		return nil, nil, fmt.Errorf("decoding blob length: %w", err)
	}
	if length > uint64(len(rest)) {
		return nil, nil, fmt.Errorf("%w: blob claims %d bytes with %d remaining",
			ErrInsufficientData, length, len(rest))
	}
	b := make([]byte, length)
	copy(b, rest[:length])
	return b, rest[length:], nil
}

// TakeBytes reads exactly n bytes from the front of data. The returned
// slice is a copy and does not alias data.
func TakeBytes(data []byte, n int) ([]byte, []byte, error) {
	if len(data) < n {
		return nil, nil, fmt.Errorf("%w: need %d bytes, have %d",
			ErrInsufficientData, n, len(data))
	}
	b := make([]byte, n)
	copy(b, data[:n])
	return b, data[n:], nil
}
