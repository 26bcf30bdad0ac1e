// Copyright 2024 Quince Labs (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package types

import (
	"fmt"

	"github.com/quincelabs/quince/jam/params"
	"github.com/quincelabs/quince/lib/common"
	"github.com/quincelabs/quince/pkg/codec"
)

// AvailabilitySpec pins down the erasure-coded form of a work package:
// what to fetch, how long it is and the roots to verify it against.
type AvailabilitySpec struct {
	PackageHash  common.Hash
	BundleLength uint32
	ErasureRoot  common.Hash
	SegmentRoot  common.Hash
	SegmentCount uint16
}

// Encode serializes the availability spec.
func (s *AvailabilitySpec) Encode() ([]byte, error) {
	var enc []byte
	enc = append(enc, s.PackageHash[:]...)
	enc = append(enc, codec.EncodeUint32(s.BundleLength)...)
	enc = append(enc, s.ErasureRoot[:]...)
	enc = append(enc, s.SegmentRoot[:]...)
	enc = append(enc, codec.EncodeUint16(s.SegmentCount)...)
	return enc, nil
}

// DecodeAvailabilitySpec reads an availability spec from the front of data.
func DecodeAvailabilitySpec(data []byte) (AvailabilitySpec, []byte, error) {
	var s AvailabilitySpec
	rest, err := takeArray(data, s.PackageHash[:])
	if err != nil {
		return AvailabilitySpec{}, nil, fmt.Errorf("decoding package hash: %w", err)
	}
	s.BundleLength, rest, err = codec.DecodeUint32(rest)
	if err != nil {
		return AvailabilitySpec{}, nil, fmt.Errorf("decoding bundle length: %w", err)
	}
	rest, err = takeArray(rest, s.ErasureRoot[:])
	if err != nil {
		return AvailabilitySpec{}, nil, fmt.Errorf("decoding erasure root: %w", err)
	}
	rest, err = takeArray(rest, s.SegmentRoot[:])
	if err != nil {
		return AvailabilitySpec{}, nil, fmt.Errorf("decoding segment root: %w", err)
	}
	s.SegmentCount, rest, err = codec.DecodeUint16(rest)
	if err != nil {
		return AvailabilitySpec{}, nil, fmt.Errorf("decoding segment count: %w", err)
	}
	return s, rest, nil
}

// RefinementContext anchors a work report to the chain state it was
// refined against.
type RefinementContext struct {
	Anchor           common.Hash
	StateRoot        common.Hash
	BeefyRoot        common.Hash
	LookupAnchor     common.Hash
	LookupAnchorSlot TimeSlot
	Prerequisites    []common.Hash
}

// Encode serializes the context.
func (c *RefinementContext) Encode() ([]byte, error) {
	var enc []byte
	enc = append(enc, c.Anchor[:]...)
	enc = append(enc, c.StateRoot[:]...)
	enc = append(enc, c.BeefyRoot[:]...)
	enc = append(enc, c.LookupAnchor[:]...)
	enc = append(enc, codec.EncodeUint32(uint32(c.LookupAnchorSlot))...)
	prereqs, err := codec.EncodeSequence(c.Prerequisites,
		func(h common.Hash) ([]byte, error) { return h[:], nil })
	if err != nil {
		return nil, fmt.Errorf("encoding prerequisites: %w", err)
	}
	return append(enc, prereqs...), nil
}

// DecodeRefinementContext reads a refinement context from the front of data.
func DecodeRefinementContext(data []byte) (RefinementContext, []byte, error) {
	var c RefinementContext
	rest := data
	var err error
	for _, field := range []struct {
		name string
		dst  []byte
	}{
		{"anchor", c.Anchor[:]},
		{"state root", c.StateRoot[:]},
		{"beefy root", c.BeefyRoot[:]},
		{"lookup anchor", c.LookupAnchor[:]},
	} {
		rest, err = takeArray(rest, field.dst)
		if err != nil {
			return RefinementContext{}, nil, fmt.Errorf("decoding %s: %w", field.name, err)
		}
	}
	c.LookupAnchorSlot, rest, err = decodeTimeSlot(rest)
	if err != nil {
		return RefinementContext{}, nil, fmt.Errorf("decoding lookup anchor slot: %w", err)
	}
	c.Prerequisites, rest, err = codec.DecodeSequence(rest, decodeHash)
	if err != nil {
		return RefinementContext{}, nil, fmt.Errorf("decoding prerequisites: %w", err)
	}
	return c, rest, nil
}

// WorkError classifies a refinement that produced no output.
type WorkError uint8

const (
	// WorkErrOutOfGas means refinement exhausted its gas allowance.
	WorkErrOutOfGas WorkError = iota + 1
	// WorkErrPanic means refinement trapped.
	WorkErrPanic
	// WorkErrBadCode means the service code preimage was unavailable.
	WorkErrBadCode
	// WorkErrCodeOversize means the service code exceeded the size limit.
	WorkErrCodeOversize
)

// WorkOutput is the outcome of refining one work item: the output blob
// on success, otherwise the error class that ended it.
type WorkOutput struct {
	// Data holds the refinement output. It is only meaningful when Err
	// is zero.
	Data []byte
	Err  WorkError
}

// Encode serializes the output as a tagged union: tag zero carries the
// length-prefixed blob, error tags carry nothing.
func (o WorkOutput) Encode() ([]byte, error) {
	if o.Err == 0 {
		return codec.EncodeUnion(0, o.Data,
			func(b []byte) ([]byte, error) { return codec.EncodeBytes(b), nil })
	}
	if o.Err > WorkErrCodeOversize {
		return nil, fmt.Errorf("%w: work error %d", codec.ErrInvalidDiscriminator, o.Err)
	}
	return []byte{byte(o.Err)}, nil
}

func decodedWorkError(e WorkError) codec.DecodeFunc[WorkOutput] {
	return func(data []byte) (WorkOutput, []byte, error) {
		return WorkOutput{Err: e}, data, nil
	}
}

var workOutputDecoders = map[uint8]codec.DecodeFunc[WorkOutput]{
	0: func(data []byte) (WorkOutput, []byte, error) {
		blob, rest, err := codec.DecodeBytes(data)
		if err != nil {
			return WorkOutput{}, nil, err
		}
		return WorkOutput{Data: blob}, rest, nil
	},
	uint8(WorkErrOutOfGas):     decodedWorkError(WorkErrOutOfGas),
	uint8(WorkErrPanic):        decodedWorkError(WorkErrPanic),
	uint8(WorkErrBadCode):      decodedWorkError(WorkErrBadCode),
	uint8(WorkErrCodeOversize): decodedWorkError(WorkErrCodeOversize),
}

// DecodeWorkOutput reads a work output from the front of data.
func DecodeWorkOutput(data []byte) (WorkOutput, []byte, error) {
	_, out, rest, err := codec.DecodeUnion(data, workOutputDecoders)
	if err != nil {
		return WorkOutput{}, nil, fmt.Errorf("decoding work output: %w", err)
	}
	return out, rest, nil
}

// WorkResult is the outcome of one work item within a report.
type WorkResult struct {
	Service       ServiceID
	CodeHash      common.Hash
	PayloadHash   common.Hash
	AccumulateGas Gas
	Output        WorkOutput
}

// Encode serializes the result.
func (r WorkResult) Encode() ([]byte, error) {
	var enc []byte
	enc = append(enc, codec.EncodeUint32(uint32(r.Service))...)
	enc = append(enc, r.CodeHash[:]...)
	enc = append(enc, r.PayloadHash[:]...)
	enc = append(enc, codec.EncodeUint64(uint64(r.AccumulateGas))...)
	output, err := r.Output.Encode()
	if err != nil {
		return nil, fmt.Errorf("encoding work output: %w", err)
	}
	return append(enc, output...), nil
}

// DecodeWorkResult reads a work result from the front of data.
func DecodeWorkResult(data []byte) (WorkResult, []byte, error) {
	var r WorkResult
	var err error
	rest := data
	r.Service, rest, err = decodeServiceID(rest)
	if err != nil {
		return WorkResult{}, nil, fmt.Errorf("decoding result service: %w", err)
	}
	rest, err = takeArray(rest, r.CodeHash[:])
	if err != nil {
		return WorkResult{}, nil, fmt.Errorf("decoding result code hash: %w", err)
	}
	rest, err = takeArray(rest, r.PayloadHash[:])
	if err != nil {
		return WorkResult{}, nil, fmt.Errorf("decoding result payload hash: %w", err)
	}
	r.AccumulateGas, rest, err = decodeGas(rest)
	if err != nil {
		return WorkResult{}, nil, fmt.Errorf("decoding result gas: %w", err)
	}
	r.Output, rest, err = DecodeWorkOutput(rest)
	if err != nil {
		return WorkResult{}, nil, err
	}
	return r, rest, nil
}

// SegmentRootPair maps a work package hash to the segment root its
// exports were committed under. Lookups are sorted by package hash.
type SegmentRootPair struct {
	WorkPackageHash common.Hash
	SegmentRoot     common.Hash
}

// WorkReport is the refinement outcome a core's guarantors publish.
type WorkReport struct {
	PackageSpec       AvailabilitySpec
	Context           RefinementContext
	CoreIndex         CoreIndex
	AuthorizerHash    common.Hash
	AuthOutput        []byte
	SegmentRootLookup []SegmentRootPair
	Results           []WorkResult
}

// Encode serializes the report. A report carries at least one result
// and at most the per-package item limit.
func (w *WorkReport) Encode(cfg *params.Spec) ([]byte, error) {
	if len(w.Results) == 0 || len(w.Results) > cfg.MaxWorkItems {
		return nil, fmt.Errorf("%w: report has %d results, want 1 to %d",
			codec.ErrLengthMismatch, len(w.Results), cfg.MaxWorkItems)
	}
	enc, err := w.PackageSpec.Encode()
	if err != nil {
		return nil, fmt.Errorf("encoding package spec: %w", err)
	}
	context, err := w.Context.Encode()
	if err != nil {
		return nil, fmt.Errorf("encoding context: %w", err)
	}
	enc = append(enc, context...)
	enc = append(enc, codec.EncodeUint16(uint16(w.CoreIndex))...)
	enc = append(enc, w.AuthorizerHash[:]...)
	enc = append(enc, codec.EncodeBytes(w.AuthOutput)...)

	lookup, err := codec.EncodeSequence(w.SegmentRootLookup,
		func(p SegmentRootPair) ([]byte, error) {
			return append(p.WorkPackageHash.Bytes(), p.SegmentRoot[:]...), nil
		})
	if err != nil {
		return nil, fmt.Errorf("encoding segment root lookup: %w", err)
	}
	enc = append(enc, lookup...)

	results, err := codec.EncodeSequence(w.Results, WorkResult.Encode)
	if err != nil {
		return nil, fmt.Errorf("encoding results: %w", err)
	}
	return append(enc, results...), nil
}

// DecodeWorkReport reads a work report from the front of data.
func DecodeWorkReport(data []byte, cfg *params.Spec) (*WorkReport, []byte, error) {
	w := new(WorkReport)
	var err error
	rest := data
	w.PackageSpec, rest, err = DecodeAvailabilitySpec(rest)
	if err != nil {
		return nil, nil, fmt.Errorf("decoding package spec: %w", err)
	}
	w.Context, rest, err = DecodeRefinementContext(rest)
	if err != nil {
		return nil, nil, fmt.Errorf("decoding context: %w", err)
	}
	w.CoreIndex, rest, err = decodeCoreIndex(rest)
	if err != nil {
		return nil, nil, fmt.Errorf("decoding core index: %w", err)
	}
	rest, err = takeArray(rest, w.AuthorizerHash[:])
	if err != nil {
		return nil, nil, fmt.Errorf("decoding authorizer hash: %w", err)
	}
	w.AuthOutput, rest, err = codec.DecodeBytes(rest)
	if err != nil {
		return nil, nil, fmt.Errorf("decoding authorizer output: %w", err)
	}
	w.SegmentRootLookup, rest, err = codec.DecodeSequence(rest, decodeSegmentRootPair)
	if err != nil {
		return nil, nil, fmt.Errorf("decoding segment root lookup: %w", err)
	}
	w.Results, rest, err = codec.DecodeSequence(rest, DecodeWorkResult)
	if err != nil {
		return nil, nil, fmt.Errorf("decoding results: %w", err)
	}
	if len(w.Results) == 0 || len(w.Results) > cfg.MaxWorkItems {
		return nil, nil, fmt.Errorf("%w: report has %d results, want 1 to %d",
			codec.ErrLengthMismatch, len(w.Results), cfg.MaxWorkItems)
	}
	return w, rest, nil
}

func decodeSegmentRootPair(data []byte) (SegmentRootPair, []byte, error) {
	var p SegmentRootPair
	rest, err := takeArray(data, p.WorkPackageHash[:])
	if err != nil {
		return SegmentRootPair{}, nil, err
	}
	rest, err = takeArray(rest, p.SegmentRoot[:])
	if err != nil {
		return SegmentRootPair{}, nil, err
	}
	return p, rest, nil
}
