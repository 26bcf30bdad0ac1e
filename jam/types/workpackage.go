// Copyright 2024 Quince Labs (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package types

import (
	"fmt"

	"github.com/quincelabs/quince/jam/params"
	"github.com/quincelabs/quince/lib/common"
	"github.com/quincelabs/quince/pkg/codec"
)

// ImportSpec names one segment a work item imports: the export tree it
// came from and the segment's index within it.
type ImportSpec struct {
	TreeRoot common.Hash
	Index    uint16
}

// ExtrinsicSpec names one extrinsic blob a work item reads, by hash and
// length.
type ExtrinsicSpec struct {
	Hash   common.Hash
	Length uint32
}

// WorkItem is one unit of computation inside a work package.
type WorkItem struct {
	Service            ServiceID
	CodeHash           common.Hash
	Payload            []byte
	RefineGasLimit     Gas
	AccumulateGasLimit Gas
	ImportSegments     []ImportSpec
	Extrinsics         []ExtrinsicSpec
	ExportCount        uint16
}

// Encode serializes the work item.
func (w *WorkItem) Encode() ([]byte, error) {
	var enc []byte
	enc = append(enc, codec.EncodeUint32(uint32(w.Service))...)
	enc = append(enc, w.CodeHash[:]...)
	enc = append(enc, codec.EncodeBytes(w.Payload)...)
	enc = append(enc, codec.EncodeUint64(uint64(w.RefineGasLimit))...)
	enc = append(enc, codec.EncodeUint64(uint64(w.AccumulateGasLimit))...)

	imports, err := codec.EncodeSequence(w.ImportSegments,
		func(s ImportSpec) ([]byte, error) {
			return append(s.TreeRoot.Bytes(), codec.EncodeUint16(s.Index)...), nil
		})
	if err != nil {
		return nil, fmt.Errorf("encoding import segments: %w", err)
	}
	enc = append(enc, imports...)

	extrinsics, err := codec.EncodeSequence(w.Extrinsics,
		func(s ExtrinsicSpec) ([]byte, error) {
			return append(s.Hash.Bytes(), codec.EncodeUint32(s.Length)...), nil
		})
	if err != nil {
		return nil, fmt.Errorf("encoding extrinsic specs: %w", err)
	}
	enc = append(enc, extrinsics...)

	return append(enc, codec.EncodeUint16(w.ExportCount)...), nil
}

// DecodeWorkItem reads a work item from the front of data.
func DecodeWorkItem(data []byte) (WorkItem, []byte, error) {
	var w WorkItem
	var err error
	rest := data
	w.Service, rest, err = decodeServiceID(rest)
	if err != nil {
		return WorkItem{}, nil, fmt.Errorf("decoding item service: %w", err)
	}
	rest, err = takeArray(rest, w.CodeHash[:])
	if err != nil {
		return WorkItem{}, nil, fmt.Errorf("decoding item code hash: %w", err)
	}
	w.Payload, rest, err = codec.DecodeBytes(rest)
	if err != nil {
		return WorkItem{}, nil, fmt.Errorf("decoding item payload: %w", err)
	}
	w.RefineGasLimit, rest, err = decodeGas(rest)
	if err != nil {
		return WorkItem{}, nil, fmt.Errorf("decoding refine gas limit: %w", err)
	}
	w.AccumulateGasLimit, rest, err = decodeGas(rest)
	if err != nil {
		return WorkItem{}, nil, fmt.Errorf("decoding accumulate gas limit: %w", err)
	}
	w.ImportSegments, rest, err = codec.DecodeSequence(rest, decodeImportSpec)
	if err != nil {
		return WorkItem{}, nil, fmt.Errorf("decoding import segments: %w", err)
	}
	w.Extrinsics, rest, err = codec.DecodeSequence(rest, decodeExtrinsicSpec)
	if err != nil {
		return WorkItem{}, nil, fmt.Errorf("decoding extrinsic specs: %w", err)
	}
	w.ExportCount, rest, err = codec.DecodeUint16(rest)
	if err != nil {
		return WorkItem{}, nil, fmt.Errorf("decoding export count: %w", err)
	}
	return w, rest, nil
}

func decodeImportSpec(data []byte) (ImportSpec, []byte, error) {
	var s ImportSpec
	rest, err := takeArray(data, s.TreeRoot[:])
	if err != nil {
		return ImportSpec{}, nil, err
	}
	s.Index, rest, err = codec.DecodeUint16(rest)
	if err != nil {
		return ImportSpec{}, nil, err
	}
	return s, rest, nil
}

func decodeExtrinsicSpec(data []byte) (ExtrinsicSpec, []byte, error) {
	var s ExtrinsicSpec
	rest, err := takeArray(data, s.Hash[:])
	if err != nil {
		return ExtrinsicSpec{}, nil, err
	}
	s.Length, rest, err = codec.DecodeUint32(rest)
	if err != nil {
		return ExtrinsicSpec{}, nil, err
	}
	return s, rest, nil
}

// Authorizer is the code and parameterization that admits a work
// package onto a core.
type Authorizer struct {
	CodeHash common.Hash
	Params   []byte
}

// WorkPackage bundles work items with the authorization that lets them
// run.
type WorkPackage struct {
	Authorization []byte
	AuthCodeHost  ServiceID
	Authorizer    Authorizer
	Context       RefinementContext
	Items         []WorkItem
}

// Encode serializes the package. A package carries at least one item
// and at most the per-package item limit.
func (p *WorkPackage) Encode(cfg *params.Spec) ([]byte, error) {
	if len(p.Items) == 0 || len(p.Items) > cfg.MaxWorkItems {
		return nil, fmt.Errorf("%w: package has %d items, want 1 to %d",
			codec.ErrLengthMismatch, len(p.Items), cfg.MaxWorkItems)
	}
	enc := codec.EncodeBytes(p.Authorization)
	enc = append(enc, codec.EncodeUint32(uint32(p.AuthCodeHost))...)
	enc = append(enc, p.Authorizer.CodeHash[:]...)
	enc = append(enc, codec.EncodeBytes(p.Authorizer.Params)...)
	context, err := p.Context.Encode()
	if err != nil {
		return nil, fmt.Errorf("encoding package context: %w", err)
	}
	enc = append(enc, context...)
	items, err := codec.EncodeSequence(p.Items,
		func(w WorkItem) ([]byte, error) { return w.Encode() })
	if err != nil {
		return nil, fmt.Errorf("encoding package items: %w", err)
	}
	return append(enc, items...), nil
}

// DecodeWorkPackage reads a work package from the front of data.
func DecodeWorkPackage(data []byte, cfg *params.Spec) (*WorkPackage, []byte, error) {
	p := new(WorkPackage)
	var err error
	rest := data
	p.Authorization, rest, err = codec.DecodeBytes(rest)
	if err != nil {
		return nil, nil, fmt.Errorf("decoding package authorization: %w", err)
	}
	p.AuthCodeHost, rest, err = decodeServiceID(rest)
	if err != nil {
		return nil, nil, fmt.Errorf("decoding package auth code host: %w", err)
	}
	rest, err = takeArray(rest, p.Authorizer.CodeHash[:])
	if err != nil {
		return nil, nil, fmt.Errorf("decoding authorizer code hash: %w", err)
	}
	p.Authorizer.Params, rest, err = codec.DecodeBytes(rest)
	if err != nil {
		return nil, nil, fmt.Errorf("decoding authorizer params: %w", err)
	}
	p.Context, rest, err = DecodeRefinementContext(rest)
	if err != nil {
		return nil, nil, fmt.Errorf("decoding package context: %w", err)
	}
	p.Items, rest, err = codec.DecodeSequence(rest, DecodeWorkItem)
	if err != nil {
		return nil, nil, fmt.Errorf("decoding package items: %w", err)
	}
	if len(p.Items) == 0 || len(p.Items) > cfg.MaxWorkItems {
		return nil, nil, fmt.Errorf("%w: package has %d items, want 1 to %d",
			codec.ErrLengthMismatch, len(p.Items), cfg.MaxWorkItems)
	}
	return p, rest, nil
}
