// Copyright 2024 Quince Labs (ON)
// SPDX-License-Identifier: LGPL-3.0-only

// Package state models the protocol's full working state and flattens
// it into the 31-byte-keyed mapping handed to Merkleization. Chapter
// values are serialized with the pkg/codec primitives; the mapping is
// held in a key-ordered Map and can be persisted through StateDB.
package state

import (
	"fmt"

	"github.com/quincelabs/quince/jam/params"
	"github.com/quincelabs/quince/jam/types"
	"github.com/quincelabs/quince/lib/common"
	"github.com/quincelabs/quince/pkg/codec"
)

// State carries every chapter of protocol state plus the service
// accounts.
type State struct {
	AuthPools           AuthPools                           // α
	AuthQueues          AuthQueues                          // φ
	RecentBlocks        []BlockInfo                         // β
	Safrole             SafroleState                        // γ
	PastJudgements      DisputeRecords                      // ψ
	Entropy             EntropyPool                         // η
	QueuedValidators    []types.ValidatorKey                // ι
	CurrentValidators   []types.ValidatorKey                // κ
	PreviousValidators  []types.ValidatorKey                // λ
	CoreAssignments     []*Assignment                       // ρ
	Timeslot            types.TimeSlot                      // τ
	Privileges          Privileges                          // χ
	Statistics          Statistics                          // π
	ReadyQueue          ReadyQueue                          // ϑ
	AccumulationHistory AccumulationHistory                 // ξ
	Services            map[types.ServiceID]*ServiceAccount // δ
}

func encodeHash(h common.Hash) ([]byte, error) {
	return h.Bytes(), nil
}

func decodeHash(data []byte) (common.Hash, []byte, error) {
	b, rest, err := codec.TakeBytes(data, common.HashLength)
	if err != nil {
		return common.Hash{}, nil, err
	}
	return common.NewHash(b), rest, nil
}

// AuthPools is the per-core pool of authorizer hashes admitted for
// incoming work packages. Each pool holds at most cfg.MaxAuthPool
// entries.
type AuthPools [][]common.Hash

// Encode serializes one variable-length pool per core.
func (p AuthPools) Encode(cfg *params.Spec) ([]byte, error) {
	return codec.EncodeFixedSequence(p, cfg.Cores,
		func(pool []common.Hash) ([]byte, error) {
			if len(pool) > cfg.MaxAuthPool {
				return nil, fmt.Errorf("%w: pool has %d entries, want at most %d",
					codec.ErrLengthMismatch, len(pool), cfg.MaxAuthPool)
			}
			return codec.EncodeSequence(pool, encodeHash)
		})
}

// DecodeAuthPools reads one pool per core from the front of data.
func DecodeAuthPools(data []byte, cfg *params.Spec) (AuthPools, []byte, error) {
	return codec.DecodeFixedSequence(data, cfg.Cores,
		func(data []byte) ([]common.Hash, []byte, error) {
			pool, rest, err := codec.DecodeSequence(data, decodeHash)
			if err != nil {
				return nil, nil, err
			}
			if len(pool) > cfg.MaxAuthPool {
				return nil, nil, fmt.Errorf("%w: pool has %d entries, want at most %d",
					codec.ErrLengthMismatch, len(pool), cfg.MaxAuthPool)
			}
			return pool, rest, nil
		})
}

// AuthQueues is the per-core queue of upcoming authorizer hashes, a
// fixed cfg.AuthQueueLen entries per core.
type AuthQueues [][]common.Hash

// Encode serializes one fixed-length queue per core.
func (q AuthQueues) Encode(cfg *params.Spec) ([]byte, error) {
	return codec.EncodeFixedSequence(q, cfg.Cores,
		func(queue []common.Hash) ([]byte, error) {
			return codec.EncodeFixedSequence(queue, cfg.AuthQueueLen, encodeHash)
		})
}

// DecodeAuthQueues reads one queue per core from the front of data.
func DecodeAuthQueues(data []byte, cfg *params.Spec) (AuthQueues, []byte, error) {
	return codec.DecodeFixedSequence(data, cfg.Cores,
		func(data []byte) ([]common.Hash, []byte, error) {
			return codec.DecodeFixedSequence(data, cfg.AuthQueueLen, decodeHash)
		})
}

// EntropyPool holds the current epoch entropy accumulator and the three
// preceding epochs' values.
type EntropyPool [4]common.Hash

// Encode serializes the four accumulator values.
func (e EntropyPool) Encode() ([]byte, error) {
	enc := make([]byte, 0, 4*common.HashLength)
	for i := range e {
		enc = append(enc, e[i][:]...)
	}
	return enc, nil
}

// DecodeEntropyPool reads the four accumulator values from the front of
// data.
func DecodeEntropyPool(data []byte) (EntropyPool, []byte, error) {
	var e EntropyPool
	rest := data
	for i := range e {
		b, r, err := codec.TakeBytes(rest, common.HashLength)
		if err != nil {
			return EntropyPool{}, nil, fmt.Errorf("decoding entropy %d: %w", i, err)
		}
		e[i] = common.NewHash(b)
		rest = r
	}
	return e, rest, nil
}

func encodeValidatorSet(keys []types.ValidatorKey, cfg *params.Spec) ([]byte, error) {
	return codec.EncodeFixedSequence(keys, cfg.Validators,
		func(k types.ValidatorKey) ([]byte, error) { return k.Encode() })
}

func decodeValidatorSet(data []byte, cfg *params.Spec) ([]types.ValidatorKey, []byte, error) {
	return codec.DecodeFixedSequence(data, cfg.Validators, types.DecodeValidatorKey)
}
