// Copyright 2024 Quince Labs (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package state

import (
	"fmt"
	"sort"

	"github.com/quincelabs/quince/jam/types"
	"github.com/quincelabs/quince/pkg/codec"
)

// GasPrivilege grants a service an amount of gas in every block's
// accumulation regardless of reported work.
type GasPrivilege struct {
	Service types.ServiceID
	Gas     types.Gas
}

// Privileges is the privileged-services chapter: the manager service
// and the services empowered to alter authorizer queues and the
// validator set, plus the always-accumulate grants.
type Privileges struct {
	Manager          types.ServiceID
	Assign           types.ServiceID
	Designate        types.ServiceID
	AlwaysAccumulate []GasPrivilege
}

// Encode serializes the chapter. Grants are written in ascending
// service order; the stored slice is not mutated.
func (p *Privileges) Encode() ([]byte, error) {
	enc := codec.EncodeUint32(uint32(p.Manager))
	enc = append(enc, codec.EncodeUint32(uint32(p.Assign))...)
	enc = append(enc, codec.EncodeUint32(uint32(p.Designate))...)

	grants := make([]GasPrivilege, len(p.AlwaysAccumulate))
	copy(grants, p.AlwaysAccumulate)
	sort.Slice(grants, func(i, j int) bool {
		return grants[i].Service < grants[j].Service
	})
	b, err := codec.EncodeSequence(grants,
		func(g GasPrivilege) ([]byte, error) {
			enc := codec.EncodeUint32(uint32(g.Service))
			return append(enc, codec.EncodeUint64(uint64(g.Gas))...), nil
		})
	if err != nil {
		return nil, fmt.Errorf("encoding gas privileges: %w", err)
	}
	return append(enc, b...), nil
}

// DecodePrivileges reads the privileged-services chapter from the
// front of data.
func DecodePrivileges(data []byte) (Privileges, []byte, error) {
	var p Privileges
	manager, rest, err := codec.DecodeUint32(data)
	if err != nil {
		return Privileges{}, nil, fmt.Errorf("decoding manager service: %w", err)
	}
	p.Manager = types.ServiceID(manager)

	assign, rest, err := codec.DecodeUint32(rest)
	if err != nil {
		return Privileges{}, nil, fmt.Errorf("decoding assign service: %w", err)
	}
	p.Assign = types.ServiceID(assign)

	designate, rest, err := codec.DecodeUint32(rest)
	if err != nil {
		return Privileges{}, nil, fmt.Errorf("decoding designate service: %w", err)
	}
	p.Designate = types.ServiceID(designate)

	p.AlwaysAccumulate, rest, err = codec.DecodeSequence(rest, decodeGasPrivilege)
	if err != nil {
		return Privileges{}, nil, fmt.Errorf("decoding gas privileges: %w", err)
	}
	return p, rest, nil
}

func decodeGasPrivilege(data []byte) (GasPrivilege, []byte, error) {
	service, rest, err := codec.DecodeUint32(data)
	if err != nil {
		return GasPrivilege{}, nil, err
	}
	gas, rest, err := codec.DecodeUint64(rest)
	if err != nil {
		return GasPrivilege{}, nil, err
	}
	return GasPrivilege{Service: types.ServiceID(service), Gas: types.Gas(gas)}, rest, nil
}
