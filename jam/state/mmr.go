// Copyright 2024 Quince Labs (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package state

import (
	"github.com/quincelabs/quince/lib/common"
)

// AppendMMR adds a leaf to a Merkle mountain range peak list and
// returns the updated list. Peaks merge left to right under keccak, so
// slot n holds the root of a complete tree of 2^n leaves or nil. The
// input slice may be reused for the result.
func AppendMMR(peaks []*common.Hash, leaf common.Hash) []*common.Hash {
	return placePeak(peaks, leaf, 0)
}

func placePeak(peaks []*common.Hash, item common.Hash, n int) []*common.Hash {
	if n >= len(peaks) {
		return append(peaks, &item)
	}
	if peaks[n] == nil {
		peaks[n] = &item
		return peaks
	}
	merged := common.Keccak256(append(peaks[n].Bytes(), item[:]...))
	peaks[n] = nil
	return placePeak(peaks, merged, n+1)
}

// SuperPeak folds a peak list into the single commitment placed in
// recent-history records. The zero hash stands for an empty range.
func SuperPeak(peaks []*common.Hash) common.Hash {
	present := make([]common.Hash, 0, len(peaks))
	for _, peak := range peaks {
		if peak != nil {
			present = append(present, *peak)
		}
	}
	return foldPeaks(present)
}

func foldPeaks(hashes []common.Hash) common.Hash {
	switch len(hashes) {
	case 0:
		return common.Hash{}
	case 1:
		return hashes[0]
	}
	rest := foldPeaks(hashes[:len(hashes)-1])
	last := hashes[len(hashes)-1]
	preimage := make([]byte, 0, 4+2*common.HashLength)
	preimage = append(preimage, "peak"...)
	preimage = append(preimage, rest[:]...)
	preimage = append(preimage, last[:]...)
	return common.Keccak256(preimage)
}
