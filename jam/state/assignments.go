// Copyright 2024 Quince Labs (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package state

import (
	"fmt"

	"github.com/quincelabs/quince/jam/params"
	"github.com/quincelabs/quince/jam/types"
	"github.com/quincelabs/quince/pkg/codec"
)

// Assignment is a work report pending availability on a core, together
// with the timeslot at which the report times out.
type Assignment struct {
	Report  types.WorkReport
	Timeout types.TimeSlot
}

// Encode serializes the assignment.
func (a *Assignment) Encode(cfg *params.Spec) ([]byte, error) {
	report, err := a.Report.Encode(cfg)
	if err != nil {
		return nil, fmt.Errorf("encoding assigned report: %w", err)
	}
	return append(report, codec.EncodeUint32(uint32(a.Timeout))...), nil
}

// DecodeAssignment reads an assignment from the front of data.
func DecodeAssignment(data []byte, cfg *params.Spec) (Assignment, []byte, error) {
	report, rest, err := types.DecodeWorkReport(data, cfg)
	if err != nil {
		return Assignment{}, nil, fmt.Errorf("decoding assigned report: %w", err)
	}
	timeout, rest, err := codec.DecodeUint32(rest)
	if err != nil {
		return Assignment{}, nil, fmt.Errorf("decoding assignment timeout: %w", err)
	}
	return Assignment{Report: *report, Timeout: types.TimeSlot(timeout)}, rest, nil
}

// EncodeCoreAssignments serializes one optional assignment per core.
// The slice must hold exactly cfg.Cores entries; nil entries stand for
// cores with nothing pending.
func EncodeCoreAssignments(assignments []*Assignment, cfg *params.Spec) ([]byte, error) {
	enc, err := codec.EncodeFixedSequence(assignments, cfg.Cores,
		func(a *Assignment) ([]byte, error) {
			return codec.EncodeOption(a, func(a Assignment) ([]byte, error) {
				return a.Encode(cfg)
			})
		})
	if err != nil {
		return nil, fmt.Errorf("encoding core assignments: %w", err)
	}
	return enc, nil
}

// DecodeCoreAssignments reads one optional assignment per core from
// the front of data.
func DecodeCoreAssignments(data []byte, cfg *params.Spec) ([]*Assignment, []byte, error) {
	assignments, rest, err := codec.DecodeFixedSequence(data, cfg.Cores,
		func(data []byte) (*Assignment, []byte, error) {
			return codec.DecodeOption(data, func(data []byte) (Assignment, []byte, error) {
				return DecodeAssignment(data, cfg)
			})
		})
	if err != nil {
		return nil, nil, fmt.Errorf("decoding core assignments: %w", err)
	}
	return assignments, rest, nil
}
