// Copyright 2024 Quince Labs (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Blake2b256(t *testing.T) {
	t.Parallel()

	// blake2b-256 of the empty string
	expected := MustHexToHash("0x0e5751c026e543b2e8ab2eb06099daa1d1e5df47778f7787faab45cdf12fe3a8")
	assert.Equal(t, expected, Blake2b256(nil))

	assert.NotEqual(t, Blake2b256([]byte("a")), Blake2b256([]byte("b")))
}

func Test_Keccak256(t *testing.T) {
	t.Parallel()

	// keccak256 of the empty string
	expected := MustHexToHash("0xc5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470")
	assert.Equal(t, expected, Keccak256(nil))
}

func Test_Hash(t *testing.T) {
	t.Parallel()

	h := NewHash([]byte{0x01, 0x02})
	assert.Equal(t, "0x0102000000000000000000000000000000000000000000000000000000000000", h.String())
	assert.False(t, h.IsEmpty())
	assert.True(t, Hash{}.IsEmpty())

	b := h.Bytes()
	b[0] = 0xff
	assert.Equal(t, uint8(0x01), h[0])

	assert.Panics(t, func() { MustHexToHash("abcd") })
	assert.Panics(t, func() { MustHexToHash("0x01") })
}
