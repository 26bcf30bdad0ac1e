// Copyright 2024 Quince Labs (ON)
// SPDX-License-Identifier: LGPL-3.0-only

// Package statekey builds the fixed 31-byte keys under which every
// piece of chain state sits in the flat key/value map handed to the
// state trie. Keys come in three shapes: whole-chapter keys, chapter
// keys scoped to a service, and service item keys that interleave the
// service identifier with a digest of the item's identity.
package statekey

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/quincelabs/quince/lib/common"
)

// Length is the byte length of every state key.
const Length = 31

// Key is a 31-byte state trie key.
type Key [Length]byte

// HashFunc digests the auxiliary blob of a service item key.
type HashFunc func([]byte) common.Hash

// ErrKeyLength is returned when raw bytes of the wrong length are
// converted to a Key.
var ErrKeyLength = errors.New("invalid state key length")

// Chapter returns the key for a protocol chapter: the chapter index
// followed by thirty zero bytes.
func Chapter(chapter uint8) (k Key) {
	k[0] = chapter
	return k
}

// ChapterService returns the key for per-service data under a chapter.
// The little-endian service identifier bytes sit at offsets 1, 3, 5 and
// 7 with zero bytes between and after them.
func ChapterService(chapter uint8, service uint32) (k Key) {
	k[0] = chapter
	for i := 0; i < 4; i++ {
		k[1+2*i] = byte(service >> (8 * i))
	}
	return k
}

// Service returns the key for an item held by a service. The first four
// bytes of the blob digest are interleaved with the four little-endian
// service identifier bytes and the following digest bytes fill the rest
// of the key. Items differing anywhere in their digests map to distinct
// keys for any fixed service.
func Service(service uint32, blob []byte, hash HashFunc) (k Key) {
	digest := hash(blob)
	for i := 0; i < 4; i++ {
		k[2*i] = byte(service >> (8 * i))
		k[2*i+1] = digest[i]
	}
	copy(k[8:], digest[4:Length-4])
	return k
}

// FromBytes converts raw bytes, such as a database key, back into a Key.
func FromBytes(in []byte) (Key, error) {
	if len(in) != Length {
		return Key{}, fmt.Errorf("%w: have %d bytes, want %d", ErrKeyLength, len(in), Length)
	}
	var k Key
	copy(k[:], in)
	return k, nil
}

// Bytes returns the key as a byte slice.
func (k Key) Bytes() []byte {
	b := make([]byte, Length)
	copy(b, k[:])
	return b
}

// Compare returns -1, 0 or 1 ordering k against other bytewise.
func (k Key) Compare(other Key) int {
	return bytes.Compare(k[:], other[:])
}

// String returns the hex representation of the key with a 0x prefix.
func (k Key) String() string {
	return fmt.Sprintf("0x%x", k[:])
}
