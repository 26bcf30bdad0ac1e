// Copyright 2024 Quince Labs (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package common

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// HashLength is the byte length of a Hash.
const HashLength = 32

// Hash is a 32-byte digest.
type Hash [HashLength]byte

// NewHash copies the first 32 bytes of in into a Hash.
func NewHash(in []byte) (h Hash) {
	copy(h[:], in)
	return h
}

// Bytes returns the hash as a byte slice.
func (h Hash) Bytes() []byte {
	b := make([]byte, HashLength)
	copy(b, h[:])
	return b
}

// String returns the hex representation of the hash with a 0x prefix.
func (h Hash) String() string {
	return fmt.Sprintf("0x%x", h[:])
}

// IsEmpty returns true if the hash is all zeroes.
func (h Hash) IsEmpty() bool {
	return h == Hash{}
}

// MustHexToHash converts a 0x-prefixed hex string of 64 digits to a Hash.
// It panics on malformed input, so it is intended for fixed inputs such
// as test vectors and chain constants.
func MustHexToHash(in string) Hash {
	if !strings.HasPrefix(in, "0x") {
		panic(fmt.Sprintf("hash %q has no 0x prefix", in))
	}
	b, err := hex.DecodeString(in[2:])
	if err != nil {
		panic(err)
	}
	if len(b) != HashLength {
		panic(fmt.Sprintf("hash %q has %d bytes, want %d", in, len(b), HashLength))
	}
	return NewHash(b)
}
