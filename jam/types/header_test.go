// Copyright 2024 Quince Labs (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package types

import (
	"testing"

	"github.com/quincelabs/quince/jam/params"
	"github.com/quincelabs/quince/pkg/codec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEpochMark(cfg *params.Spec) *EpochMark {
	mark := &EpochMark{
		Entropy:        testHash(0x21),
		TicketsEntropy: testHash(0x22),
		Validators:     make([]EpochMarkValidator, cfg.Validators),
	}
	for i := range mark.Validators {
		mark.Validators[i].Bandersnatch[0] = byte(i + 1)
		mark.Validators[i].Ed25519[0] = byte(i + 1)
	}
	return mark
}

func testTicketsMark(cfg *params.Spec) *TicketsMark {
	mark := make(TicketsMark, cfg.EpochLength)
	for i := range mark {
		mark[i] = TicketBody{ID: testHash(byte(i + 1)), Attempt: uint8(i % 3)}
	}
	return &mark
}

func Test_Header_Codec(t *testing.T) {
	t.Parallel()

	cfg := params.Tiny()

	testCases := map[string]struct {
		header Header
	}{
		"no marks": {
			header: Header{
				Parent:         testHash(0x01),
				PriorStateRoot: testHash(0x02),
				ExtrinsicHash:  testHash(0x03),
				Slot:           99,
				AuthorIndex:    5,
				EntropySource:  VRFSignature{0x0e},
				Seal:           VRFSignature{0x05},
			},
		},
		"epoch mark": {
			header: Header{
				Parent:    testHash(0x04),
				Slot:      12,
				EpochMark: testEpochMark(cfg),
			},
		},
		"tickets mark and offenders": {
			header: Header{
				Slot:        11,
				TicketsMark: testTicketsMark(cfg),
				Offenders:   []Ed25519Key{{0x0f}, {0x10}},
			},
		},
	}

	for name, testCase := range testCases {
		testCase := testCase
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			enc, err := testCase.header.Encode(cfg)
			require.NoError(t, err)

			unsealed, err := testCase.header.EncodeUnsealed(cfg)
			require.NoError(t, err)
			require.Len(t, enc, len(unsealed)+len(testCase.header.Seal))
			assert.Equal(t, unsealed, enc[:len(unsealed)])

			decoded, rest, err := DecodeHeader(enc, cfg)
			require.NoError(t, err)
			assert.Equal(t, &testCase.header, decoded)
			assert.Equal(t, []byte{}, rest)
		})
	}
}

func Test_DecodeHeader(t *testing.T) {
	t.Parallel()

	cfg := params.Tiny()

	valid, err := (&Header{Slot: 1}).Encode(cfg)
	require.NoError(t, err)
	// parent, prior state root and extrinsic hash then the slot.
	const slotEnd = 3*32 + 4

	testCases := map[string]struct {
		data       []byte
		errWrapped error
		errMessage string
	}{
		"empty input": {
			errWrapped: codec.ErrInsufficientData,
			errMessage: "decoding parent hash: insufficient data: " +
				"need 32 bytes, have 0",
		},
		"bad epoch mark discriminator": {
			data:       append(append([]byte{}, valid[:slotEnd]...), 0x02),
			errWrapped: codec.ErrInvalidDiscriminator,
			errMessage: "decoding epoch mark: invalid discriminator: " +
				"option discriminator 0x02",
		},
		"truncated seal": {
			data:       valid[:len(valid)-1],
			errWrapped: codec.ErrInsufficientData,
			errMessage: "decoding seal: insufficient data: " +
				"need 96 bytes, have 95",
		},
	}

	for name, testCase := range testCases {
		testCase := testCase
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, _, err := DecodeHeader(testCase.data, cfg)

			assert.ErrorIs(t, err, testCase.errWrapped)
			assert.EqualError(t, err, testCase.errMessage)
		})
	}
}

func Test_Header_Hash(t *testing.T) {
	t.Parallel()

	cfg := params.Tiny()
	header := Header{Slot: 7}

	first, err := header.Hash(cfg)
	require.NoError(t, err)
	again, err := header.Hash(cfg)
	require.NoError(t, err)
	assert.Equal(t, first, again)

	header.Seal[0] = 1
	resealed, err := header.Hash(cfg)
	require.NoError(t, err)
	assert.NotEqual(t, first, resealed)
}

func Test_TicketsMark_Encode(t *testing.T) {
	t.Parallel()

	cfg := params.Tiny()

	_, err := make(TicketsMark, 3).Encode(cfg)
	assert.ErrorIs(t, err, codec.ErrLengthMismatch)
	assert.EqualError(t, err, "encoding tickets mark: length mismatch: "+
		"have 3 items, want 12")
}

func Test_EpochMark_Codec(t *testing.T) {
	t.Parallel()

	cfg := params.Tiny()
	mark := testEpochMark(cfg)

	enc, err := mark.Encode(cfg)
	require.NoError(t, err)
	require.Len(t, enc, 2*32+cfg.Validators*64)

	decoded, rest, err := DecodeEpochMark(enc, cfg)
	require.NoError(t, err)
	assert.Equal(t, *mark, decoded)
	assert.Equal(t, []byte{}, rest)

	mark.Validators = mark.Validators[:2]
	_, err = mark.Encode(cfg)
	assert.ErrorIs(t, err, codec.ErrLengthMismatch)
	assert.EqualError(t, err, "encoding epoch mark validators: "+
		"length mismatch: have 2 items, want 6")
}
