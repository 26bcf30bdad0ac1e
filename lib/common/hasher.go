// Copyright 2024 Quince Labs (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package common

import (
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
)

// Blake2b256 returns the 256-bit blake2b hash of the input data. It is
// the digest used for headers, extrinsics and state keys.
func Blake2b256(in []byte) Hash {
	return blake2b.Sum256(in)
}

// Keccak256 returns the keccak256 hash of the input data. It is the
// digest used when folding history peaks for external consumers.
func Keccak256(in []byte) Hash {
	h := sha3.NewLegacyKeccak256()
	_, _ = h.Write(in)
	return NewHash(h.Sum(nil))
}
