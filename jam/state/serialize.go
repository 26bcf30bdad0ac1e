// Copyright 2024 Quince Labs (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package state

import (
	"errors"
	"fmt"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/quincelabs/quince/jam/params"
	"github.com/quincelabs/quince/jam/types"
	"github.com/quincelabs/quince/pkg/codec"
	"github.com/quincelabs/quince/pkg/statekey"
)

// State chapter indices.
const (
	authPoolsChapter           uint8 = 1
	authQueuesChapter          uint8 = 2
	recentBlocksChapter        uint8 = 3
	safroleChapter             uint8 = 4
	judgementsChapter          uint8 = 5
	entropyChapter             uint8 = 6
	queuedValidatorsChapter    uint8 = 7
	currentValidatorsChapter   uint8 = 8
	previousValidatorsChapter  uint8 = 9
	coreAssignmentsChapter     uint8 = 10
	timeslotChapter            uint8 = 11
	privilegesChapter          uint8 = 12
	statisticsChapter          uint8 = 13
	readyQueueChapter          uint8 = 14
	accumulationHistoryChapter uint8 = 15

	serviceChapter uint8 = 255
)

// ErrMissingChapter is returned when a state map lacks a chapter entry
// every serialized state must carry.
var ErrMissingChapter = errors.New("missing state chapter")

// SerializeState flattens a state into its keyed map form: one entry
// per protocol chapter, one metadata entry per service and one entry
// per storage item, preimage and preimage request.
func SerializeState(s *State, cfg *params.Spec) (*Map, error) {
	m := NewMap()

	chapters := []struct {
		chapter uint8
		name    string
		encode  func() ([]byte, error)
	}{
		{authPoolsChapter, "authorizer pools", func() ([]byte, error) { return s.AuthPools.Encode(cfg) }},
		{authQueuesChapter, "authorizer queues", func() ([]byte, error) { return s.AuthQueues.Encode(cfg) }},
		{recentBlocksChapter, "recent blocks", func() ([]byte, error) { return EncodeRecentBlocks(s.RecentBlocks, cfg) }},
		{safroleChapter, "sealing lottery", func() ([]byte, error) { return s.Safrole.Encode(cfg) }},
		{judgementsChapter, "judgements", s.PastJudgements.Encode},
		{entropyChapter, "entropy pool", s.Entropy.Encode},
		{queuedValidatorsChapter, "queued validators", func() ([]byte, error) { return encodeValidatorSet(s.QueuedValidators, cfg) }},
		{currentValidatorsChapter, "current validators", func() ([]byte, error) { return encodeValidatorSet(s.CurrentValidators, cfg) }},
		{previousValidatorsChapter, "previous validators", func() ([]byte, error) { return encodeValidatorSet(s.PreviousValidators, cfg) }},
		{coreAssignmentsChapter, "core assignments", func() ([]byte, error) { return EncodeCoreAssignments(s.CoreAssignments, cfg) }},
		{timeslotChapter, "timeslot", func() ([]byte, error) { return codec.EncodeUint32(uint32(s.Timeslot)), nil }},
		{privilegesChapter, "privileges", s.Privileges.Encode},
		{statisticsChapter, "statistics", func() ([]byte, error) { return s.Statistics.Encode(cfg) }},
		{readyQueueChapter, "ready queue", func() ([]byte, error) { return s.ReadyQueue.Encode(cfg) }},
		{accumulationHistoryChapter, "accumulation history", func() ([]byte, error) { return s.AccumulationHistory.Encode(cfg) }},
	}
	for _, c := range chapters {
		enc, err := c.encode()
		if err != nil {
			return nil, fmt.Errorf("encoding %s: %w", c.name, err)
		}
		m.Set(statekey.Chapter(c.chapter), enc)
	}

	ids := maps.Keys(s.Services)
	slices.Sort(ids)
	for _, id := range ids {
		if err := serializeAccount(m, id, s.Services[id]); err != nil {
			return nil, fmt.Errorf("serializing service %d: %w", id, err)
		}
	}
	return m, nil
}

func serializeAccount(m *Map, id types.ServiceID, account *ServiceAccount) error {
	metadata := account.Metadata()
	enc, err := metadata.Encode()
	if err != nil {
		return fmt.Errorf("encoding metadata: %w", err)
	}
	m.Set(MetadataKey(id), enc)

	for key, value := range account.Storage {
		m.Set(StorageKey(id, key), value)
	}
	for hash, blob := range account.Preimages {
		m.Set(PreimageKey(id, hash), blob)
	}
	for request, slots := range account.Requests {
		enc, err := encodeRequestTimeslots(slots)
		if err != nil {
			return err
		}
		m.Set(RequestStateKey(id, request), enc)
	}
	return nil
}

// DeserializeState rebuilds a state from its keyed map form. Chapter
// entries and service metadata records are restored; storage items,
// preimages and preimage requests sit under one-way hashed keys and
// stay in the map only, so the restored accounts carry nil item maps.
func DeserializeState(m *Map, cfg *params.Spec) (*State, error) {
	s := &State{}

	chapters := []struct {
		chapter uint8
		name    string
		decode  func(data []byte) ([]byte, error)
	}{
		{authPoolsChapter, "authorizer pools", func(data []byte) (rest []byte, err error) {
			s.AuthPools, rest, err = DecodeAuthPools(data, cfg)
			return rest, err
		}},
		{authQueuesChapter, "authorizer queues", func(data []byte) (rest []byte, err error) {
			s.AuthQueues, rest, err = DecodeAuthQueues(data, cfg)
			return rest, err
		}},
		{recentBlocksChapter, "recent blocks", func(data []byte) (rest []byte, err error) {
			s.RecentBlocks, rest, err = DecodeRecentBlocks(data, cfg)
			return rest, err
		}},
		{safroleChapter, "sealing lottery", func(data []byte) (rest []byte, err error) {
			s.Safrole, rest, err = DecodeSafroleState(data, cfg)
			return rest, err
		}},
		{judgementsChapter, "judgements", func(data []byte) (rest []byte, err error) {
			s.PastJudgements, rest, err = DecodeDisputeRecords(data)
			return rest, err
		}},
		{entropyChapter, "entropy pool", func(data []byte) (rest []byte, err error) {
			s.Entropy, rest, err = DecodeEntropyPool(data)
			return rest, err
		}},
		{queuedValidatorsChapter, "queued validators", func(data []byte) (rest []byte, err error) {
			s.QueuedValidators, rest, err = decodeValidatorSet(data, cfg)
			return rest, err
		}},
		{currentValidatorsChapter, "current validators", func(data []byte) (rest []byte, err error) {
			s.CurrentValidators, rest, err = decodeValidatorSet(data, cfg)
			return rest, err
		}},
		{previousValidatorsChapter, "previous validators", func(data []byte) (rest []byte, err error) {
			s.PreviousValidators, rest, err = decodeValidatorSet(data, cfg)
			return rest, err
		}},
		{coreAssignmentsChapter, "core assignments", func(data []byte) (rest []byte, err error) {
			s.CoreAssignments, rest, err = DecodeCoreAssignments(data, cfg)
			return rest, err
		}},
		{timeslotChapter, "timeslot", func(data []byte) (rest []byte, err error) {
			slot, rest, err := codec.DecodeUint32(data)
			s.Timeslot = types.TimeSlot(slot)
			return rest, err
		}},
		{privilegesChapter, "privileges", func(data []byte) (rest []byte, err error) {
			s.Privileges, rest, err = DecodePrivileges(data)
			return rest, err
		}},
		{statisticsChapter, "statistics", func(data []byte) (rest []byte, err error) {
			s.Statistics, rest, err = DecodeStatistics(data, cfg)
			return rest, err
		}},
		{readyQueueChapter, "ready queue", func(data []byte) (rest []byte, err error) {
			s.ReadyQueue, rest, err = DecodeReadyQueue(data, cfg)
			return rest, err
		}},
		{accumulationHistoryChapter, "accumulation history", func(data []byte) (rest []byte, err error) {
			s.AccumulationHistory, rest, err = DecodeAccumulationHistory(data, cfg)
			return rest, err
		}},
	}
	for _, c := range chapters {
		value, ok := m.Get(statekey.Chapter(c.chapter))
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingChapter, c.name)
		}
		rest, err := c.decode(value)
		if err != nil {
			return nil, fmt.Errorf("decoding %s: %w", c.name, err)
		}
		if len(rest) != 0 {
			return nil, fmt.Errorf("%w: %s carries %d trailing bytes",
				codec.ErrLengthMismatch, c.name, len(rest))
		}
	}

	if err := restoreServices(m, s); err != nil {
		return nil, err
	}
	return s, nil
}

// restoreServices scans for chapter-255 records. The service identifier
// is recoverable from the key layout; item keys are digests and carry
// no identifier to invert.
func restoreServices(m *Map, s *State) error {
	var scanErr error
	m.Ascend(func(key statekey.Key, value []byte) bool {
		id, ok := serviceMetadataID(key)
		if !ok {
			return true
		}
		metadata, rest, err := types.DecodeServiceMetadata(value)
		if err != nil {
			scanErr = fmt.Errorf("decoding service %d metadata: %w", id, err)
			return false
		}
		if len(rest) != 0 {
			scanErr = fmt.Errorf("%w: service %d metadata carries %d trailing bytes",
				codec.ErrLengthMismatch, id, len(rest))
			return false
		}
		if s.Services == nil {
			s.Services = make(map[types.ServiceID]*ServiceAccount)
		}
		s.Services[id] = &ServiceAccount{
			CodeHash:         metadata.CodeHash,
			Balance:          metadata.Balance,
			MinAccumulateGas: metadata.MinAccumulateGas,
			MinTransferGas:   metadata.MinTransferGas,
		}
		return true
	})
	return scanErr
}

// serviceMetadataID reports whether key has the chapter-255 metadata
// shape and, if so, the service identifier it carries.
func serviceMetadataID(key statekey.Key) (types.ServiceID, bool) {
	if key[0] != serviceChapter {
		return 0, false
	}
	for i := 2; i <= 6; i += 2 {
		if key[i] != 0 {
			return 0, false
		}
	}
	for i := 8; i < statekey.Length; i++ {
		if key[i] != 0 {
			return 0, false
		}
	}
	id := uint32(key[1]) | uint32(key[3])<<8 | uint32(key[5])<<16 | uint32(key[7])<<24
	return types.ServiceID(id), true
}
