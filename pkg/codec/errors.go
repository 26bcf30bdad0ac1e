// Copyright 2024 Quince Labs (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package codec

import "errors"

var (
	// ErrNegativeValue is returned when encoding a negative integer.
	ErrNegativeValue = errors.New("value cannot be negative")
	// ErrValueOutOfRange is returned when a value does not fit the
	// requested encoding.
	ErrValueOutOfRange = errors.New("value out of range")
	// ErrInsufficientData is returned when the input ends before the
	// encoding it claims to hold.
	ErrInsufficientData = errors.New("insufficient data")
	// ErrInvalidPrefix is returned when a variable-length integer is not
	// in its shortest form.
	ErrInvalidPrefix        = errors.New("invalid length prefix")
	ErrInvalidDiscriminator = errors.New("invalid discriminator")
	ErrLengthMismatch       = errors.New("length mismatch")
	ErrInvalidWidth         = errors.New("invalid byte width")
	ErrNonZeroPadding       = errors.New("non-zero padding bits")
)
