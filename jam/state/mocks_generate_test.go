// Copyright 2024 Quince Labs (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package state

//go:generate mockgen -package=$GOPACKAGE -destination=mocks_test.go . Database
