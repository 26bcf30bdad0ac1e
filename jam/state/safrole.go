// Copyright 2024 Quince Labs (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package state

import (
	"errors"
	"fmt"

	"github.com/quincelabs/quince/jam/params"
	"github.com/quincelabs/quince/jam/types"
	"github.com/quincelabs/quince/pkg/codec"
)

// ErrSealerSeries is returned when a sealer series does not hold
// exactly one of its two variants.
var ErrSealerSeries = errors.New("sealer series must hold exactly one of tickets or keys")

const (
	sealerTagTickets  uint8 = 0
	sealerTagFallback uint8 = 1
)

// SealerSeries is the slot sealer sequence for the current epoch.
// Either Tickets holds one ticket per timeslot, or, when the lottery
// did not fill, Keys holds one fallback bandersnatch key per timeslot.
// Exactly one of the two is set.
type SealerSeries struct {
	Tickets []types.TicketBody
	Keys    []types.BandersnatchKey
}

// Encode serializes the series as a tagged variant.
func (s *SealerSeries) Encode(cfg *params.Spec) ([]byte, error) {
	switch {
	case s.Tickets != nil && s.Keys == nil:
		return codec.EncodeUnion(sealerTagTickets, s.Tickets,
			func(tickets []types.TicketBody) ([]byte, error) {
				return codec.EncodeFixedSequence(tickets, cfg.EpochLength, types.TicketBody.Encode)
			})
	case s.Keys != nil && s.Tickets == nil:
		return codec.EncodeUnion(sealerTagFallback, s.Keys,
			func(keys []types.BandersnatchKey) ([]byte, error) {
				return codec.EncodeFixedSequence(keys, cfg.EpochLength,
					func(k types.BandersnatchKey) ([]byte, error) { return k[:], nil })
			})
	default:
		return nil, ErrSealerSeries
	}
}

// DecodeSealerSeries reads a sealer series from the front of data.
func DecodeSealerSeries(data []byte, cfg *params.Spec) (SealerSeries, []byte, error) {
	decoders := map[uint8]codec.DecodeFunc[SealerSeries]{
		sealerTagTickets: func(data []byte) (SealerSeries, []byte, error) {
			tickets, rest, err := codec.DecodeFixedSequence(data, cfg.EpochLength, types.DecodeTicketBody)
			if err != nil {
				return SealerSeries{}, nil, err
			}
			return SealerSeries{Tickets: tickets}, rest, nil
		},
		sealerTagFallback: func(data []byte) (SealerSeries, []byte, error) {
			keys, rest, err := codec.DecodeFixedSequence(data, cfg.EpochLength, decodeBandersnatchKey)
			if err != nil {
				return SealerSeries{}, nil, err
			}
			return SealerSeries{Keys: keys}, rest, nil
		},
	}
	_, series, rest, err := codec.DecodeUnion(data, decoders)
	if err != nil {
		return SealerSeries{}, nil, fmt.Errorf("decoding sealer series: %w", err)
	}
	return series, rest, nil
}

func decodeBandersnatchKey(data []byte) (types.BandersnatchKey, []byte, error) {
	var k types.BandersnatchKey
	b, rest, err := codec.TakeBytes(data, len(k))
	if err != nil {
		return types.BandersnatchKey{}, nil, err
	}
	copy(k[:], b)
	return k, rest, nil
}

// SafroleState is the sealing-lottery chapter: the validator set being
// keyed for the next epoch, its ring commitment, the sealer series for
// the current epoch and the accumulator of winning tickets.
type SafroleState struct {
	PendingValidators []types.ValidatorKey
	RingRoot          types.RingCommitment
	Sealers           SealerSeries
	TicketAccumulator []types.TicketBody
}

// Encode serializes the chapter.
func (s *SafroleState) Encode(cfg *params.Spec) ([]byte, error) {
	pending, err := encodeValidatorSet(s.PendingValidators, cfg)
	if err != nil {
		return nil, fmt.Errorf("encoding pending validators: %w", err)
	}
	enc := append(pending, s.RingRoot[:]...)

	sealers, err := s.Sealers.Encode(cfg)
	if err != nil {
		return nil, fmt.Errorf("encoding sealer series: %w", err)
	}
	enc = append(enc, sealers...)

	if len(s.TicketAccumulator) > cfg.EpochLength {
		return nil, fmt.Errorf("%w: accumulator has %d tickets, want at most %d",
			codec.ErrValueOutOfRange, len(s.TicketAccumulator), cfg.EpochLength)
	}
	accumulator, err := codec.EncodeSequence(s.TicketAccumulator, types.TicketBody.Encode)
	if err != nil {
		return nil, fmt.Errorf("encoding ticket accumulator: %w", err)
	}
	return append(enc, accumulator...), nil
}

// DecodeSafroleState reads the sealing-lottery chapter from the front
// of data.
func DecodeSafroleState(data []byte, cfg *params.Spec) (SafroleState, []byte, error) {
	var s SafroleState
	var err error
	s.PendingValidators, data, err = decodeValidatorSet(data, cfg)
	if err != nil {
		return SafroleState{}, nil, fmt.Errorf("decoding pending validators: %w", err)
	}

	root, data, err := codec.TakeBytes(data, len(s.RingRoot))
	if err != nil {
		return SafroleState{}, nil, fmt.Errorf("decoding ring root: %w", err)
	}
	copy(s.RingRoot[:], root)

	s.Sealers, data, err = DecodeSealerSeries(data, cfg)
	if err != nil {
		return SafroleState{}, nil, err
	}

	s.TicketAccumulator, data, err = codec.DecodeSequence(data, types.DecodeTicketBody)
	if err != nil {
		return SafroleState{}, nil, fmt.Errorf("decoding ticket accumulator: %w", err)
	}
	if len(s.TicketAccumulator) > cfg.EpochLength {
		return SafroleState{}, nil, fmt.Errorf("%w: accumulator has %d tickets, want at most %d",
			codec.ErrValueOutOfRange, len(s.TicketAccumulator), cfg.EpochLength)
	}
	return s, data, nil
}
