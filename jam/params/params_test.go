// Copyright 2024 Quince Labs (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package params

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Presets(t *testing.T) {
	t.Parallel()

	require.NoError(t, Tiny().Validate())
	require.NoError(t, Full().Validate())

	assert.Equal(t, 5, Tiny().SuperMajority())
	assert.Equal(t, 683, Full().SuperMajority())

	assert.Equal(t, 1, Tiny().BitfieldBytes())
	assert.Equal(t, 43, Full().BitfieldBytes())
}

func Test_Spec_Validate(t *testing.T) {
	t.Parallel()

	spec := Tiny()
	spec.Cores = 0
	assert.Error(t, spec.Validate())

	spec = Full()
	spec.EpochLength = -1
	assert.Error(t, spec.Validate())
}
