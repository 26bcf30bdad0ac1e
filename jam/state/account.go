// Copyright 2024 Quince Labs (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package state

import (
	"fmt"
	"math"

	"github.com/quincelabs/quince/jam/types"
	"github.com/quincelabs/quince/lib/common"
	"github.com/quincelabs/quince/pkg/codec"
	"github.com/quincelabs/quince/pkg/statekey"
)

// Storage and preimage item keys are disambiguated from preimage
// request keys by sentinel length values no real request can carry.
const (
	storageSentinel  uint32 = math.MaxUint32
	preimageSentinel uint32 = math.MaxUint32 - 1
)

// RequestKey identifies a preimage request: the hash requested and the
// byte length the preimage must have.
type RequestKey struct {
	Hash   common.Hash
	Length uint32
}

// ServiceAccount is the full state of one service: its metadata, its
// key/value storage, the preimages it holds and the preimage requests
// it has open.
type ServiceAccount struct {
	CodeHash         common.Hash
	Balance          uint64
	MinAccumulateGas types.Gas
	MinTransferGas   types.Gas
	Storage          map[common.Hash][]byte
	Preimages        map[common.Hash][]byte
	Requests         map[RequestKey][]types.TimeSlot
}

// FootprintItems counts the account's state items: two per preimage
// request plus one per storage entry.
func (a *ServiceAccount) FootprintItems() uint32 {
	return uint32(2*len(a.Requests) + len(a.Storage))
}

// FootprintOctets sums the account's storage footprint: 81 plus the
// requested length per preimage request and 34 plus the value length
// per storage entry.
func (a *ServiceAccount) FootprintOctets() uint64 {
	var octets uint64
	for key := range a.Requests {
		octets += 81 + uint64(key.Length)
	}
	for _, value := range a.Storage {
		octets += 34 + uint64(len(value))
	}
	return octets
}

// Metadata returns the account's chapter record.
func (a *ServiceAccount) Metadata() types.ServiceMetadata {
	return types.ServiceMetadata{
		CodeHash:         a.CodeHash,
		Balance:          a.Balance,
		MinAccumulateGas: a.MinAccumulateGas,
		MinTransferGas:   a.MinTransferGas,
		FootprintOctets:  a.FootprintOctets(),
		FootprintItems:   a.FootprintItems(),
	}
}

// StorageKey returns the state key of a storage entry held by service.
func StorageKey(service types.ServiceID, key common.Hash) statekey.Key {
	blob := append(codec.EncodeUint32(storageSentinel), key[:]...)
	return statekey.Service(uint32(service), blob, common.Blake2b256)
}

// PreimageKey returns the state key of a preimage held by service.
func PreimageKey(service types.ServiceID, hash common.Hash) statekey.Key {
	blob := append(codec.EncodeUint32(preimageSentinel), hash[:]...)
	return statekey.Service(uint32(service), blob, common.Blake2b256)
}

// RequestStateKey returns the state key of a preimage request held by
// service.
func RequestStateKey(service types.ServiceID, request RequestKey) statekey.Key {
	blob := append(codec.EncodeUint32(request.Length), request.Hash[:]...)
	return statekey.Service(uint32(service), blob, common.Blake2b256)
}

// MetadataKey returns the state key of a service's metadata record.
func MetadataKey(service types.ServiceID) statekey.Key {
	return statekey.ChapterService(serviceChapter, uint32(service))
}

func encodeRequestTimeslots(slots []types.TimeSlot) ([]byte, error) {
	enc, err := codec.EncodeSequence(slots,
		func(slot types.TimeSlot) ([]byte, error) {
			return codec.EncodeUint32(uint32(slot)), nil
		})
	if err != nil {
		return nil, fmt.Errorf("encoding request timeslots: %w", err)
	}
	return enc, nil
}

func decodeRequestTimeslots(data []byte) ([]types.TimeSlot, []byte, error) {
	slots, rest, err := codec.DecodeSequence(data,
		func(data []byte) (types.TimeSlot, []byte, error) {
			slot, rest, err := codec.DecodeUint32(data)
			return types.TimeSlot(slot), rest, err
		})
	if err != nil {
		return nil, nil, fmt.Errorf("decoding request timeslots: %w", err)
	}
	return slots, rest, nil
}
