// Copyright 2024 Quince Labs (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package types

import (
	"fmt"

	"github.com/quincelabs/quince/jam/params"
	"github.com/quincelabs/quince/pkg/codec"
)

// Credential is one guarantor's signature over a report, tagged with
// the signer's position in the validator set. Credentials on a
// guarantee are sorted by validator index.
type Credential struct {
	ValidatorIndex ValidatorIndex
	Signature      Signature
}

// Encode serializes the credential.
func (c Credential) Encode() ([]byte, error) {
	enc := codec.EncodeUint16(uint16(c.ValidatorIndex))
	return append(enc, c.Signature[:]...), nil
}

// DecodeCredential reads a credential from the front of data.
func DecodeCredential(data []byte) (Credential, []byte, error) {
	var c Credential
	var err error
	c.ValidatorIndex, data, err = decodeValidatorIndex(data)
	if err != nil {
		return Credential{}, nil, fmt.Errorf("decoding credential validator index: %w", err)
	}
	data, err = takeArray(data, c.Signature[:])
	if err != nil {
		return Credential{}, nil, fmt.Errorf("decoding credential signature: %w", err)
	}
	return c, data, nil
}

// Guarantee publishes a work report with the signatures of the core's
// guarantors and the timeslot the report was made in.
type Guarantee struct {
	Report      WorkReport
	Slot        TimeSlot
	Credentials []Credential
}

// Encode serializes the guarantee.
func (g *Guarantee) Encode(cfg *params.Spec) ([]byte, error) {
	enc, err := g.Report.Encode(cfg)
	if err != nil {
		return nil, fmt.Errorf("encoding guaranteed report: %w", err)
	}
	enc = append(enc, codec.EncodeUint32(uint32(g.Slot))...)
	credentials, err := codec.EncodeSequence(g.Credentials, Credential.Encode)
	if err != nil {
		return nil, fmt.Errorf("encoding credentials: %w", err)
	}
	return append(enc, credentials...), nil
}

// DecodeGuarantee reads a guarantee from the front of data.
func DecodeGuarantee(data []byte, cfg *params.Spec) (Guarantee, []byte, error) {
	var g Guarantee
	report, rest, err := DecodeWorkReport(data, cfg)
	if err != nil {
		return Guarantee{}, nil, fmt.Errorf("decoding guaranteed report: %w", err)
	}
	g.Report = *report
	g.Slot, rest, err = decodeTimeSlot(rest)
	if err != nil {
		return Guarantee{}, nil, fmt.Errorf("decoding guarantee slot: %w", err)
	}
	g.Credentials, rest, err = codec.DecodeSequence(rest, DecodeCredential)
	if err != nil {
		return Guarantee{}, nil, fmt.Errorf("decoding credentials: %w", err)
	}
	return g, rest, nil
}
