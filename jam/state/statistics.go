// Copyright 2024 Quince Labs (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package state

import (
	"fmt"

	"github.com/quincelabs/quince/jam/params"
	"github.com/quincelabs/quince/pkg/codec"
)

// ActivityRecord tallies one validator's activity within an epoch.
type ActivityRecord struct {
	Blocks        uint32
	Tickets       uint32
	Preimages     uint32
	PreimageBytes uint32
	Guarantees    uint32
	Assurances    uint32
}

// Encode serializes the record as six little-endian counters.
func (r ActivityRecord) Encode() ([]byte, error) {
	enc := make([]byte, 0, 24)
	for _, counter := range [...]uint32{
		r.Blocks, r.Tickets, r.Preimages, r.PreimageBytes, r.Guarantees, r.Assurances,
	} {
		enc = append(enc, codec.EncodeUint32(counter)...)
	}
	return enc, nil
}

// DecodeActivityRecord reads an activity record from the front of data.
func DecodeActivityRecord(data []byte) (ActivityRecord, []byte, error) {
	var r ActivityRecord
	rest := data
	var err error
	for _, counter := range [...]*uint32{
		&r.Blocks, &r.Tickets, &r.Preimages, &r.PreimageBytes, &r.Guarantees, &r.Assurances,
	} {
		*counter, rest, err = codec.DecodeUint32(rest)
		if err != nil {
			return ActivityRecord{}, nil, err
		}
	}
	return r, rest, nil
}

// Statistics is the validator-activity chapter: one record per
// validator for the current epoch and one for the epoch before it.
type Statistics struct {
	Current []ActivityRecord
	Last    []ActivityRecord
}

// Encode serializes the chapter.
func (s *Statistics) Encode(cfg *params.Spec) ([]byte, error) {
	current, err := codec.EncodeFixedSequence(s.Current, cfg.Validators, ActivityRecord.Encode)
	if err != nil {
		return nil, fmt.Errorf("encoding current epoch statistics: %w", err)
	}
	last, err := codec.EncodeFixedSequence(s.Last, cfg.Validators, ActivityRecord.Encode)
	if err != nil {
		return nil, fmt.Errorf("encoding last epoch statistics: %w", err)
	}
	return append(current, last...), nil
}

// DecodeStatistics reads the validator-activity chapter from the front
// of data.
func DecodeStatistics(data []byte, cfg *params.Spec) (Statistics, []byte, error) {
	var s Statistics
	var err error
	s.Current, data, err = codec.DecodeFixedSequence(data, cfg.Validators, DecodeActivityRecord)
	if err != nil {
		return Statistics{}, nil, fmt.Errorf("decoding current epoch statistics: %w", err)
	}
	s.Last, data, err = codec.DecodeFixedSequence(data, cfg.Validators, DecodeActivityRecord)
	if err != nil {
		return Statistics{}, nil, fmt.Errorf("decoding last epoch statistics: %w", err)
	}
	return s, data, nil
}
