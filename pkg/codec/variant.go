// Copyright 2024 Quince Labs (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package codec

import (
	"fmt"
)

// EncodeOption writes a zero byte for nil, or a one byte followed by
// the encoding of the pointed-to value.
func EncodeOption[T any](value *T, encode EncodeFunc[T]) ([]byte, error) {
	if value == nil {
		return []byte{0}, nil
	}
	b, err := encode(*value)
	if err != nil {
		return nil, fmt.Errorf("encoding option value: %w", err)
	}
	return append([]byte{1}, b...), nil
}

// DecodeOption reads an option discriminator from the front of data and,
// when it is one, the value that follows. Discriminators other than zero
// and one are rejected.
func DecodeOption[T any](data []byte, decode DecodeFunc[T]) (*T, []byte, error) {
	if len(data) == 0 {
		return nil, nil, fmt.Errorf("%w: no bytes for option discriminator", ErrInsufficientData)
	}
	switch data[0] {
	case 0:
		return nil, data[1:], nil
	case 1:
		value, rest, err := decode(data[1:])
		if err != nil {
			return nil, nil, fmt.Errorf("decoding option value: %w", err)
		}
		return &value, rest, nil
	default:
		return nil, nil, fmt.Errorf("%w: option discriminator 0x%02x",
			ErrInvalidDiscriminator, data[0])
	}
}

// EncodeBool writes a single byte, one for true and zero for false.
func EncodeBool(b bool) []byte {
	if b {
		return []byte{1}
	}
	return []byte{0}
}

// DecodeBool reads a boolean from the front of data. Bytes other than
// zero and one are rejected.
func DecodeBool(data []byte) (bool, []byte, error) {
	if len(data) == 0 {
		return false, nil, fmt.Errorf("%w: no bytes for boolean", ErrInsufficientData)
	}
	switch data[0] {
	case 0:
		return false, data[1:], nil
	case 1:
		return true, data[1:], nil
	default:
		return false, nil, fmt.Errorf("%w: boolean 0x%02x", ErrInvalidDiscriminator, data[0])
	}
}

// EncodeUnion writes the variant tag followed by the encoding of value.
func EncodeUnion[T any](tag uint8, value T, encode EncodeFunc[T]) ([]byte, error) {
	b, err := encode(value)
	if err != nil {
		return nil, fmt.Errorf("encoding union variant 0x%02x: %w", tag, err)
	}
	return append([]byte{tag}, b...), nil
}

// DecodeUnion reads a variant tag from the front of data and dispatches
// to the decoder registered for it. Tags without a decoder are rejected.
func DecodeUnion[T any](data []byte, decoders map[uint8]DecodeFunc[T]) (uint8, T, []byte, error) {
	var zero T
	if len(data) == 0 {
		return 0, zero, nil, fmt.Errorf("%w: no bytes for union tag", ErrInsufficientData)
	}
	tag := data[0]
	decode, ok := decoders[tag]
	if !ok {
		return 0, zero, nil, fmt.Errorf("%w: union tag 0x%02x", ErrInvalidDiscriminator, tag)
	}
	value, rest, err := decode(data[1:])
	if err != nil {
		return 0, zero, nil, fmt.Errorf("decoding union variant 0x%02x: %w", tag, err)
	}
	return tag, value, rest, nil
}
