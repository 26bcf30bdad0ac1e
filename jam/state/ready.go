// Copyright 2024 Quince Labs (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package state

import (
	"fmt"

	"github.com/quincelabs/quince/jam/params"
	"github.com/quincelabs/quince/jam/types"
	"github.com/quincelabs/quince/lib/common"
	"github.com/quincelabs/quince/pkg/codec"
)

// ReadyRecord is a work report queued for accumulation together with
// the package hashes it still waits on.
type ReadyRecord struct {
	Report       types.WorkReport
	Dependencies []common.Hash
}

// Encode serializes the record.
func (r *ReadyRecord) Encode(cfg *params.Spec) ([]byte, error) {
	report, err := r.Report.Encode(cfg)
	if err != nil {
		return nil, fmt.Errorf("encoding ready report: %w", err)
	}
	deps, err := codec.EncodeSequence(r.Dependencies, encodeHash)
	if err != nil {
		return nil, fmt.Errorf("encoding ready dependencies: %w", err)
	}
	return append(report, deps...), nil
}

// DecodeReadyRecord reads a ready record from the front of data.
func DecodeReadyRecord(data []byte, cfg *params.Spec) (ReadyRecord, []byte, error) {
	report, rest, err := types.DecodeWorkReport(data, cfg)
	if err != nil {
		return ReadyRecord{}, nil, fmt.Errorf("decoding ready report: %w", err)
	}
	deps, rest, err := codec.DecodeSequence(rest, decodeHash)
	if err != nil {
		return ReadyRecord{}, nil, fmt.Errorf("decoding ready dependencies: %w", err)
	}
	return ReadyRecord{Report: *report, Dependencies: deps}, rest, nil
}

// ReadyQueue holds, for each timeslot phase of the epoch, the reports
// waiting on unaccumulated dependencies.
type ReadyQueue [][]ReadyRecord

// Encode serializes one variable-length record list per epoch phase.
func (q ReadyQueue) Encode(cfg *params.Spec) ([]byte, error) {
	enc, err := codec.EncodeFixedSequence(q, cfg.EpochLength,
		func(records []ReadyRecord) ([]byte, error) {
			return codec.EncodeSequence(records,
				func(r ReadyRecord) ([]byte, error) { return r.Encode(cfg) })
		})
	if err != nil {
		return nil, fmt.Errorf("encoding ready queue: %w", err)
	}
	return enc, nil
}

// DecodeReadyQueue reads the ready-queue chapter from the front of
// data.
func DecodeReadyQueue(data []byte, cfg *params.Spec) (ReadyQueue, []byte, error) {
	queue, rest, err := codec.DecodeFixedSequence(data, cfg.EpochLength,
		func(data []byte) ([]ReadyRecord, []byte, error) {
			return codec.DecodeSequence(data,
				func(data []byte) (ReadyRecord, []byte, error) {
					return DecodeReadyRecord(data, cfg)
				})
		})
	if err != nil {
		return nil, nil, fmt.Errorf("decoding ready queue: %w", err)
	}
	return queue, rest, nil
}

// AccumulationHistory holds, for each timeslot phase of the epoch, the
// set of package hashes accumulated in that slot. Each set is
// serialized in ascending byte order.
type AccumulationHistory [][]common.Hash

// Encode serializes the chapter. Sorting happens on copies.
func (h AccumulationHistory) Encode(cfg *params.Spec) ([]byte, error) {
	enc, err := codec.EncodeFixedSequence(h, cfg.EpochLength,
		func(hashes []common.Hash) ([]byte, error) {
			return codec.EncodeSequence(sortedHashes(hashes), encodeHash)
		})
	if err != nil {
		return nil, fmt.Errorf("encoding accumulation history: %w", err)
	}
	return enc, nil
}

// DecodeAccumulationHistory reads the chapter from the front of data.
func DecodeAccumulationHistory(data []byte, cfg *params.Spec) (AccumulationHistory, []byte, error) {
	history, rest, err := codec.DecodeFixedSequence(data, cfg.EpochLength,
		func(data []byte) ([]common.Hash, []byte, error) {
			return codec.DecodeSequence(data, decodeHash)
		})
	if err != nil {
		return nil, nil, fmt.Errorf("decoding accumulation history: %w", err)
	}
	return history, rest, nil
}
