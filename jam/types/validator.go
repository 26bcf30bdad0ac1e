// Copyright 2024 Quince Labs (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package types

import (
	"fmt"
)

// ValidatorKey bundles the public keys and metadata a validator
// registers. It serializes to exactly 336 bytes.
type ValidatorKey struct {
	Bandersnatch BandersnatchKey
	Ed25519      Ed25519Key
	BLS          BLSKey
	Metadata     ValidatorMetadata
}

// Encode returns the concatenation of the four fixed-size fields.
func (v *ValidatorKey) Encode() ([]byte, error) {
	enc := make([]byte, 0, 336)
	enc = append(enc, v.Bandersnatch[:]...)
	enc = append(enc, v.Ed25519[:]...)
	enc = append(enc, v.BLS[:]...)
	enc = append(enc, v.Metadata[:]...)
	return enc, nil
}

// DecodeValidatorKey reads a validator key from the front of data.
func DecodeValidatorKey(data []byte) (ValidatorKey, []byte, error) {
	var v ValidatorKey
	rest := data
	var err error
	for _, field := range [][]byte{
		v.Bandersnatch[:], v.Ed25519[:], v.BLS[:], v.Metadata[:],
	} {
		rest, err = takeArray(rest, field)
		if err != nil {
			return ValidatorKey{}, nil, fmt.Errorf("decoding validator key: %w", err)
		}
	}
	return v, rest, nil
}
