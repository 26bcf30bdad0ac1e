// Copyright 2024 Quince Labs (ON)
// SPDX-License-Identifier: LGPL-3.0-only

// Package codec implements the canonical binary serialization used across
// the protocol: variable-length naturals, fixed-width little-endian
// integers and the generic collection forms built from them. Every value
// has exactly one valid encoding; decoding rejects any bytes that deviate
// from it so that hashes and signatures computed over encodings are
// meaningful.
//
// Decoding functions consume from the front of the input and return the
// unread remainder, so record decoders thread a single byte slice through
// successive calls.
package codec

// EncodeFunc serializes a single element of a collection.
type EncodeFunc[T any] func(value T) ([]byte, error)

// DecodeFunc deserializes a single element from the front of data and
// returns the decoded value together with the unconsumed remainder.
type DecodeFunc[T any] func(data []byte) (value T, rest []byte, err error)
