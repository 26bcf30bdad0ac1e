// Copyright 2024 Quince Labs (ON)
// SPDX-License-Identifier: LGPL-3.0-only

// Package params holds the protocol constants that size fixed-length
// structures on the wire and in state. Callers thread a *Spec through
// encoding and decoding so that the same code serves every deployment
// profile.
package params

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Spec is the set of protocol parameters a chain deployment fixes at
// genesis.
type Spec struct {
	// Validators is the number of validators in a full set.
	Validators int `validate:"required,min=1"`
	// Cores is the number of processing cores.
	Cores int `validate:"required,min=1"`
	// EpochLength is the number of timeslots in an epoch.
	EpochLength int `validate:"required,min=1"`
	// MaxAuthPool is the most authorizer hashes a core pool may hold.
	MaxAuthPool int `validate:"required,min=1"`
	// AuthQueueLen is the fixed length of a core's authorizer queue.
	AuthQueueLen int `validate:"required,min=1"`
	// MaxWorkItems is the most results a work report may carry and the
	// most items a work package may carry.
	MaxWorkItems int `validate:"required,min=1"`
	// RecentHistorySize is the number of recent blocks kept in state.
	RecentHistorySize int `validate:"required,min=1"`
}

// Tiny returns the reduced profile used by test networks.
func Tiny() *Spec {
	return &Spec{
		Validators:        6,
		Cores:             2,
		EpochLength:       12,
		MaxAuthPool:       8,
		AuthQueueLen:      80,
		MaxWorkItems:      4,
		RecentHistorySize: 8,
	}
}

// Full returns the production profile.
func Full() *Spec {
	return &Spec{
		Validators:        1023,
		Cores:             341,
		EpochLength:       600,
		MaxAuthPool:       8,
		AuthQueueLen:      80,
		MaxWorkItems:      16,
		RecentHistorySize: 8,
	}
}

// Validate checks that every parameter is in its legal range.
func (s *Spec) Validate() error {
	if err := validator.New().Struct(s); err != nil {
		return fmt.Errorf("validating parameter spec: %w", err)
	}
	return nil
}

// SuperMajority is the number of validator judgements a verdict needs,
// two thirds of the validator set plus one.
func (s *Spec) SuperMajority() int {
	return s.Validators*2/3 + 1
}

// BitfieldBytes is the byte length of a per-core availability bitfield.
func (s *Spec) BitfieldBytes() int {
	return (s.Cores + 7) / 8
}
