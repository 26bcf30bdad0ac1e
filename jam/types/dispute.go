// Copyright 2024 Quince Labs (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package types

import (
	"fmt"

	"github.com/quincelabs/quince/jam/params"
	"github.com/quincelabs/quince/lib/common"
	"github.com/quincelabs/quince/pkg/codec"
)

// Judgement is one validator's vote on the validity of a work report.
type Judgement struct {
	Valid          bool
	ValidatorIndex ValidatorIndex
	Signature      Signature
}

// Encode serializes the judgement.
func (j Judgement) Encode() ([]byte, error) {
	enc := codec.EncodeBool(j.Valid)
	enc = append(enc, codec.EncodeUint16(uint16(j.ValidatorIndex))...)
	return append(enc, j.Signature[:]...), nil
}

// DecodeJudgement reads a judgement from the front of data.
func DecodeJudgement(data []byte) (Judgement, []byte, error) {
	var j Judgement
	var err error
	j.Valid, data, err = codec.DecodeBool(data)
	if err != nil {
		return Judgement{}, nil, fmt.Errorf("decoding judgement vote: %w", err)
	}
	j.ValidatorIndex, data, err = decodeValidatorIndex(data)
	if err != nil {
		return Judgement{}, nil, fmt.Errorf("decoding judgement validator index: %w", err)
	}
	data, err = takeArray(data, j.Signature[:])
	if err != nil {
		return Judgement{}, nil, fmt.Errorf("decoding judgement signature: %w", err)
	}
	return j, data, nil
}

// Verdict collects a supermajority of judgements on one work report.
// Judgements are sorted by validator index.
type Verdict struct {
	Target common.Hash
	Age    uint32
	Votes  []Judgement
}

// Encode serializes the verdict. The vote sequence is written without a
// length since a verdict always carries a supermajority of votes.
func (v *Verdict) Encode(cfg *params.Spec) ([]byte, error) {
	var enc []byte
	enc = append(enc, v.Target[:]...)
	enc = append(enc, codec.EncodeUint32(v.Age)...)
	votes, err := codec.EncodeFixedSequence(v.Votes, cfg.SuperMajority(), Judgement.Encode)
	if err != nil {
		return nil, fmt.Errorf("encoding verdict votes: %w", err)
	}
	return append(enc, votes...), nil
}

// DecodeVerdict reads a verdict from the front of data.
func DecodeVerdict(data []byte, cfg *params.Spec) (Verdict, []byte, error) {
	var v Verdict
	rest, err := takeArray(data, v.Target[:])
	if err != nil {
		return Verdict{}, nil, fmt.Errorf("decoding verdict target: %w", err)
	}
	v.Age, rest, err = codec.DecodeUint32(rest)
	if err != nil {
		return Verdict{}, nil, fmt.Errorf("decoding verdict age: %w", err)
	}
	v.Votes, rest, err = codec.DecodeFixedSequence(rest, cfg.SuperMajority(), DecodeJudgement)
	if err != nil {
		return Verdict{}, nil, fmt.Errorf("decoding verdict votes: %w", err)
	}
	return v, rest, nil
}

// Culprit identifies a validator that guaranteed a report judged bad.
type Culprit struct {
	Target    common.Hash
	Key       Ed25519Key
	Signature Signature
}

// Encode serializes the culprit.
func (c Culprit) Encode() ([]byte, error) {
	var enc []byte
	enc = append(enc, c.Target[:]...)
	enc = append(enc, c.Key[:]...)
	return append(enc, c.Signature[:]...), nil
}

// DecodeCulprit reads a culprit from the front of data.
func DecodeCulprit(data []byte) (Culprit, []byte, error) {
	var c Culprit
	rest := data
	var err error
	for _, field := range [][]byte{c.Target[:], c.Key[:], c.Signature[:]} {
		rest, err = takeArray(rest, field)
		if err != nil {
			return Culprit{}, nil, fmt.Errorf("decoding culprit: %w", err)
		}
	}
	return c, rest, nil
}

// Fault identifies a validator whose judgement contradicted the verdict.
type Fault struct {
	Target    common.Hash
	Valid     bool
	Key       Ed25519Key
	Signature Signature
}

// Encode serializes the fault.
func (f Fault) Encode() ([]byte, error) {
	var enc []byte
	enc = append(enc, f.Target[:]...)
	enc = append(enc, codec.EncodeBool(f.Valid)...)
	enc = append(enc, f.Key[:]...)
	return append(enc, f.Signature[:]...), nil
}

// DecodeFault reads a fault from the front of data.
func DecodeFault(data []byte) (Fault, []byte, error) {
	var f Fault
	rest, err := takeArray(data, f.Target[:])
	if err != nil {
		return Fault{}, nil, fmt.Errorf("decoding fault target: %w", err)
	}
	f.Valid, rest, err = codec.DecodeBool(rest)
	if err != nil {
		return Fault{}, nil, fmt.Errorf("decoding fault vote: %w", err)
	}
	rest, err = takeArray(rest, f.Key[:])
	if err != nil {
		return Fault{}, nil, fmt.Errorf("decoding fault key: %w", err)
	}
	rest, err = takeArray(rest, f.Signature[:])
	if err != nil {
		return Fault{}, nil, fmt.Errorf("decoding fault signature: %w", err)
	}
	return f, rest, nil
}

// Disputes carries the verdicts reached off-chain and the offence
// evidence that accompanies them. Verdicts are sorted by target,
// culprits and faults by key.
type Disputes struct {
	Verdicts []Verdict
	Culprits []Culprit
	Faults   []Fault
}

// Encode serializes the three dispute sequences.
func (d *Disputes) Encode(cfg *params.Spec) ([]byte, error) {
	verdicts, err := codec.EncodeSequence(d.Verdicts,
		func(v Verdict) ([]byte, error) { return v.Encode(cfg) })
	if err != nil {
		return nil, fmt.Errorf("encoding verdicts: %w", err)
	}
	culprits, err := codec.EncodeSequence(d.Culprits, Culprit.Encode)
	if err != nil {
		return nil, fmt.Errorf("encoding culprits: %w", err)
	}
	faults, err := codec.EncodeSequence(d.Faults, Fault.Encode)
	if err != nil {
		return nil, fmt.Errorf("encoding faults: %w", err)
	}
	enc := append(verdicts, culprits...)
	return append(enc, faults...), nil
}

// DecodeDisputes reads a disputes extrinsic from the front of data.
func DecodeDisputes(data []byte, cfg *params.Spec) (Disputes, []byte, error) {
	var d Disputes
	var err error
	rest := data
	d.Verdicts, rest, err = codec.DecodeSequence(rest,
		func(data []byte) (Verdict, []byte, error) { return DecodeVerdict(data, cfg) })
	if err != nil {
		return Disputes{}, nil, fmt.Errorf("decoding verdicts: %w", err)
	}
	d.Culprits, rest, err = codec.DecodeSequence(rest, DecodeCulprit)
	if err != nil {
		return Disputes{}, nil, fmt.Errorf("decoding culprits: %w", err)
	}
	d.Faults, rest, err = codec.DecodeSequence(rest, DecodeFault)
	if err != nil {
		return Disputes{}, nil, fmt.Errorf("decoding faults: %w", err)
	}
	return d, rest, nil
}
