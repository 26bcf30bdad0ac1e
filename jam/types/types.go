// Copyright 2024 Quince Labs (ON)
// SPDX-License-Identifier: LGPL-3.0-only

// Package types defines the protocol's richly-typed records and their
// canonical serialization: block headers, the five extrinsic kinds,
// work packages and the reports produced from them. Field order on the
// wire always matches declaration order, fixed-size arrays are written
// raw and every count that the protocol fixes comes from params.Spec.
package types

import (
	"fmt"

	"github.com/quincelabs/quince/lib/common"
	"github.com/quincelabs/quince/pkg/codec"
)

type (
	// ServiceID identifies a service account.
	ServiceID uint32
	// TimeSlot is a slot index since the common era.
	TimeSlot uint32
	// ValidatorIndex is a position in the validator set.
	ValidatorIndex uint16
	// CoreIndex is a position in the core set.
	CoreIndex uint16
	// Gas is an amount of computation.
	Gas uint64
)

type (
	// BandersnatchKey is a bandersnatch public key.
	BandersnatchKey [32]byte
	// Ed25519Key is an ed25519 public key.
	Ed25519Key [32]byte
	// BLSKey is a BLS public key.
	BLSKey [144]byte
	// ValidatorMetadata is the opaque metadata tail of a validator key.
	ValidatorMetadata [128]byte
	// Signature is an ed25519 signature.
	Signature [64]byte
	// VRFSignature is a bandersnatch signature carrying a VRF output.
	VRFSignature [96]byte
	// TicketProofSignature is a bandersnatch ring VRF proof.
	TicketProofSignature [784]byte
	// RingCommitment is a commitment to a bandersnatch ring of validator
	// keys, used to verify ticket proofs.
	RingCommitment [144]byte
)

func decodeHash(data []byte) (common.Hash, []byte, error) {
	b, rest, err := codec.TakeBytes(data, common.HashLength)
	if err != nil {
		return common.Hash{}, nil, err
	}
	return common.NewHash(b), rest, nil
}

func decodeServiceID(data []byte) (ServiceID, []byte, error) {
	x, rest, err := codec.DecodeUint32(data)
	return ServiceID(x), rest, err
}

func decodeTimeSlot(data []byte) (TimeSlot, []byte, error) {
	x, rest, err := codec.DecodeUint32(data)
	return TimeSlot(x), rest, err
}

func decodeValidatorIndex(data []byte) (ValidatorIndex, []byte, error) {
	x, rest, err := codec.DecodeUint16(data)
	return ValidatorIndex(x), rest, err
}

func decodeCoreIndex(data []byte) (CoreIndex, []byte, error) {
	x, rest, err := codec.DecodeUint16(data)
	return CoreIndex(x), rest, err
}

func decodeGas(data []byte) (Gas, []byte, error) {
	x, rest, err := codec.DecodeUint64(data)
	return Gas(x), rest, err
}

func decodeEd25519Key(data []byte) (Ed25519Key, []byte, error) {
	var k Ed25519Key
	rest, err := takeArray(data, k[:])
	if err != nil {
		return Ed25519Key{}, nil, err
	}
	return k, rest, nil
}

// takeArray fills dst from the front of data and returns the remainder.
func takeArray(data, dst []byte) ([]byte, error) {
	if len(data) < len(dst) {
		return nil, fmt.Errorf("%w: need %d bytes, have %d",
			codec.ErrInsufficientData, len(dst), len(data))
	}
	copy(dst, data[:len(dst)])
	return data[len(dst):], nil
}
