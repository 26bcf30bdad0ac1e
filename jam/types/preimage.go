// Copyright 2024 Quince Labs (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package types

import (
	"fmt"

	"github.com/quincelabs/quince/pkg/codec"
)

// Preimage supplies the data a service has requested by hash. Entries
// in the preimages extrinsic are sorted by requester then blob.
type Preimage struct {
	Requester ServiceID
	Blob      []byte
}

// Encode returns the requester identifier followed by the
// length-prefixed blob.
func (p Preimage) Encode() ([]byte, error) {
	enc := codec.EncodeUint32(uint32(p.Requester))
	return append(enc, codec.EncodeBytes(p.Blob)...), nil
}

// DecodePreimage reads a preimage from the front of data.
func DecodePreimage(data []byte) (Preimage, []byte, error) {
	var p Preimage
	var err error
	p.Requester, data, err = decodeServiceID(data)
	if err != nil {
		return Preimage{}, nil, fmt.Errorf("decoding preimage requester: %w", err)
	}
	p.Blob, data, err = codec.DecodeBytes(data)
	if err != nil {
		return Preimage{}, nil, fmt.Errorf("decoding preimage blob: %w", err)
	}
	return p, data, nil
}
