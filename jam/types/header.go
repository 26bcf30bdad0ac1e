// Copyright 2024 Quince Labs (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package types

import (
	"fmt"

	"github.com/quincelabs/quince/jam/params"
	"github.com/quincelabs/quince/lib/common"
	"github.com/quincelabs/quince/pkg/codec"
)

// EpochMarkValidator is the key pair published for one validator in an
// epoch mark.
type EpochMarkValidator struct {
	Bandersnatch BandersnatchKey
	Ed25519      Ed25519Key
}

// EpochMark announces the entropy and validator keys of the next epoch.
// It appears in the first header of each epoch.
type EpochMark struct {
	Entropy        common.Hash
	TicketsEntropy common.Hash
	Validators     []EpochMarkValidator
}

// Encode serializes the mark. The validator sequence is written without
// a length since it always holds one entry per validator.
func (m *EpochMark) Encode(cfg *params.Spec) ([]byte, error) {
	enc := make([]byte, 0, 2*common.HashLength+64*len(m.Validators))
	enc = append(enc, m.Entropy[:]...)
	enc = append(enc, m.TicketsEntropy[:]...)
	seq, err := codec.EncodeFixedSequence(m.Validators, cfg.Validators,
		func(v EpochMarkValidator) ([]byte, error) {
			e := make([]byte, 0, 64)
			e = append(e, v.Bandersnatch[:]...)
			e = append(e, v.Ed25519[:]...)
			return e, nil
		})
	if err != nil {
		return nil, fmt.Errorf("encoding epoch mark validators: %w", err)
	}
	return append(enc, seq...), nil
}

// DecodeEpochMark reads an epoch mark from the front of data.
func DecodeEpochMark(data []byte, cfg *params.Spec) (EpochMark, []byte, error) {
	var m EpochMark
	rest, err := takeArray(data, m.Entropy[:])
	if err != nil {
		return EpochMark{}, nil, fmt.Errorf("decoding epoch mark entropy: %w", err)
	}
	rest, err = takeArray(rest, m.TicketsEntropy[:])
	if err != nil {
		return EpochMark{}, nil, fmt.Errorf("decoding epoch mark tickets entropy: %w", err)
	}
	m.Validators, rest, err = codec.DecodeFixedSequence(rest, cfg.Validators,
		func(data []byte) (EpochMarkValidator, []byte, error) {
			var v EpochMarkValidator
			rest, err := takeArray(data, v.Bandersnatch[:])
			if err != nil {
				return EpochMarkValidator{}, nil, err
			}
			rest, err = takeArray(rest, v.Ed25519[:])
			if err != nil {
				return EpochMarkValidator{}, nil, err
			}
			return v, rest, nil
		})
	if err != nil {
		return EpochMark{}, nil, fmt.Errorf("decoding epoch mark validators: %w", err)
	}
	return m, rest, nil
}

// TicketsMark publishes the epoch's sealing tickets in sealing order.
// It appears in the first header after the ticket submission deadline
// and always holds one ticket per timeslot of the epoch.
type TicketsMark []TicketBody

// Encode serializes the tickets without a length marker.
func (tm TicketsMark) Encode(cfg *params.Spec) ([]byte, error) {
	enc, err := codec.EncodeFixedSequence(tm, cfg.EpochLength, TicketBody.Encode)
	if err != nil {
		return nil, fmt.Errorf("encoding tickets mark: %w", err)
	}
	return enc, nil
}

// DecodeTicketsMark reads one ticket per epoch timeslot from the front
// of data.
func DecodeTicketsMark(data []byte, cfg *params.Spec) (TicketsMark, []byte, error) {
	tickets, rest, err := codec.DecodeFixedSequence(data, cfg.EpochLength, DecodeTicketBody)
	if err != nil {
		return nil, fmt.Errorf("decoding tickets mark: %w", err)
	}
	return tickets, rest, nil
}

// Header is a block header.
type Header struct {
	Parent         common.Hash
	PriorStateRoot common.Hash
	ExtrinsicHash  common.Hash
	Slot           TimeSlot
	EpochMark      *EpochMark
	TicketsMark    *TicketsMark
	Offenders      []Ed25519Key
	AuthorIndex    ValidatorIndex
	EntropySource  VRFSignature
	Seal           VRFSignature
}

// EncodeUnsealed serializes every field but the seal. The unsealed
// encoding is the message the block author's seal signs.
func (h *Header) EncodeUnsealed(cfg *params.Spec) ([]byte, error) {
	var enc []byte
	enc = append(enc, h.Parent[:]...)
	enc = append(enc, h.PriorStateRoot[:]...)
	enc = append(enc, h.ExtrinsicHash[:]...)
	enc = append(enc, codec.EncodeUint32(uint32(h.Slot))...)

	epochMark, err := codec.EncodeOption(h.EpochMark,
		func(m EpochMark) ([]byte, error) { return m.Encode(cfg) })
	if err != nil {
		return nil, fmt.Errorf("encoding epoch mark: %w", err)
	}
	enc = append(enc, epochMark...)

	ticketsMark, err := codec.EncodeOption(h.TicketsMark,
		func(tm TicketsMark) ([]byte, error) { return tm.Encode(cfg) })
	if err != nil {
		return nil, fmt.Errorf("encoding tickets mark: %w", err)
	}
	enc = append(enc, ticketsMark...)

	offenders, err := codec.EncodeSequence(h.Offenders,
		func(k Ed25519Key) ([]byte, error) { return k[:], nil })
	if err != nil {
		return nil, fmt.Errorf("encoding offenders: %w", err)
	}
	enc = append(enc, offenders...)

	enc = append(enc, codec.EncodeUint16(uint16(h.AuthorIndex))...)
	enc = append(enc, h.EntropySource[:]...)
	return enc, nil
}

// Encode serializes the header including its seal.
func (h *Header) Encode(cfg *params.Spec) ([]byte, error) {
	enc, err := h.EncodeUnsealed(cfg)
	if err != nil {
		return nil, err
	}
	return append(enc, h.Seal[:]...), nil
}

// Hash returns the blake2b digest of the sealed header encoding.
func (h *Header) Hash(cfg *params.Spec) (common.Hash, error) {
	enc, err := h.Encode(cfg)
	if err != nil {
		return common.Hash{}, fmt.Errorf("encoding header: %w", err)
	}
	return common.Blake2b256(enc), nil
}

// DecodeHeader reads a sealed header from the front of data.
func DecodeHeader(data []byte, cfg *params.Spec) (*Header, []byte, error) {
	h := new(Header)
	rest, err := takeArray(data, h.Parent[:])
	if err != nil {
		return nil, nil, fmt.Errorf("decoding parent hash: %w", err)
	}
	rest, err = takeArray(rest, h.PriorStateRoot[:])
	if err != nil {
		return nil, nil, fmt.Errorf("decoding prior state root: %w", err)
	}
	rest, err = takeArray(rest, h.ExtrinsicHash[:])
	if err != nil {
		return nil, nil, fmt.Errorf("decoding extrinsic hash: %w", err)
	}
	h.Slot, rest, err = decodeTimeSlot(rest)
	if err != nil {
		return nil, nil, fmt.Errorf("decoding slot: %w", err)
	}
	h.EpochMark, rest, err = codec.DecodeOption(rest,
		func(data []byte) (EpochMark, []byte, error) { return DecodeEpochMark(data, cfg) })
	if err != nil {
		return nil, nil, fmt.Errorf("decoding epoch mark: %w", err)
	}
	h.TicketsMark, rest, err = codec.DecodeOption(rest,
		func(data []byte) (TicketsMark, []byte, error) { return DecodeTicketsMark(data, cfg) })
	if err != nil {
		return nil, nil, fmt.Errorf("decoding tickets mark: %w", err)
	}
	h.Offenders, rest, err = codec.DecodeSequence(rest, decodeEd25519Key)
	if err != nil {
		return nil, nil, fmt.Errorf("decoding offenders: %w", err)
	}
	h.AuthorIndex, rest, err = decodeValidatorIndex(rest)
	if err != nil {
		return nil, nil, fmt.Errorf("decoding author index: %w", err)
	}
	rest, err = takeArray(rest, h.EntropySource[:])
	if err != nil {
		return nil, nil, fmt.Errorf("decoding entropy source: %w", err)
	}
	rest, err = takeArray(rest, h.Seal[:])
	if err != nil {
		return nil, nil, fmt.Errorf("decoding seal: %w", err)
	}
	return h, rest, nil
}
