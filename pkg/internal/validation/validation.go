// Package validation holds the two error families of the protection layer
// and the shared parameter checks behind them. Configuration errors surface
// once, at construction; data format errors surface per call and leave the
// caller's protection state untouched.
package validation

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig reports a profile configuration that violates a
	// construction-time constraint.
	ErrInvalidConfig = errors.New("invalid profile configuration")

	// ErrInvalidDataFormat reports a buffer whose length does not fit the
	// configured layout.
	ErrInvalidDataFormat = errors.New("invalid data format")
)

// DataLengthRange checks that the buffer length in bytes falls inside the
// configured [min, max] window.
func DataLengthRange(length, minBytes, maxBytes int) error {
	if length < minBytes || length > maxBytes {
		return fmt.Errorf("%w: data length %d bytes outside [%d, %d]",
			ErrInvalidDataFormat, length, minBytes, maxBytes)
	}
	return nil
}

// DataLengthExact checks that the buffer length in bytes matches the fixed
// configured length.
func DataLengthExact(length, wantBytes int) error {
	if length != wantBytes {
		return fmt.Errorf("%w: data length %d bytes, want %d",
			ErrInvalidDataFormat, length, wantBytes)
	}
	return nil
}

// DataLengthAtLeast checks that the buffer length in bytes meets a lower
// bound derived from the layout.
func DataLengthAtLeast(length, minBytes int) error {
	if length < minBytes {
		return fmt.Errorf("%w: data length %d bytes, need at least %d",
			ErrInvalidDataFormat, length, minBytes)
	}
	return nil
}

// MinDataLength checks a configured minimum length in bits against its
// allowed window.
func MinDataLength(bits, lowBits, highBits uint32) error {
	if bits < lowBits || bits > highBits {
		return fmt.Errorf("%w: min data length %d bits outside [%d, %d]",
			ErrInvalidConfig, bits, lowBits, highBits)
	}
	return nil
}

// MinDataLengthAtLeast checks a configured minimum length in bits against a
// lower bound only.
func MinDataLengthAtLeast(bits, lowBits uint32) error {
	if bits < lowBits {
		return fmt.Errorf("%w: min data length %d bits, need at least %d",
			ErrInvalidConfig, bits, lowBits)
	}
	return nil
}

// MaxDataLength checks a configured maximum length in bits against the
// configured minimum.
func MaxDataLength(maxBits, minBits uint32) error {
	if maxBits < minBits {
		return fmt.Errorf("%w: max data length %d bits below min %d",
			ErrInvalidConfig, maxBits, minBits)
	}
	return nil
}

// MaxDeltaCounter checks a configured counter tolerance against an open
// upper bound. Zero allows nothing through and a value at the domain
// maximum makes every delta acceptable, so both are rejected.
func MaxDeltaCounter(delta, maxValue uint32) error {
	if delta == 0 || delta >= maxValue {
		return fmt.Errorf("%w: max delta counter %d outside (0, %d)",
			ErrInvalidConfig, delta, maxValue)
	}
	return nil
}

// MaxDeltaCounterInclusive checks a configured counter tolerance where the
// domain maximum itself is a legal setting.
func MaxDeltaCounterInclusive(delta, maxValue uint32) error {
	if delta == 0 || delta > maxValue {
		return fmt.Errorf("%w: max delta counter %d outside (0, %d]",
			ErrInvalidConfig, delta, maxValue)
	}
	return nil
}

// OffsetWithinData checks that a header placed at the configured bit offset
// still fits inside the configured data length.
func OffsetWithinData(offsetBits, dataLengthBits, headerBits uint32) error {
	if offsetBits+headerBits > dataLengthBits {
		return fmt.Errorf("%w: offset %d bits leaves no room for %d header bits in %d",
			ErrInvalidConfig, offsetBits, headerBits, dataLengthBits)
	}
	return nil
}

// Aligned checks that a configured bit offset is a multiple of align.
func Aligned(offsetBits, align uint32, name string) error {
	if offsetBits%align != 0 {
		return fmt.Errorf("%w: %s %d bits not aligned to %d",
			ErrInvalidConfig, name, offsetBits, align)
	}
	return nil
}

// MultipleOfByte checks that a configured bit length is byte aligned.
func MultipleOfByte(bits uint32, name string) error {
	if bits%8 != 0 {
		return fmt.Errorf("%w: %s %d bits not a whole number of bytes",
			ErrInvalidConfig, name, bits)
	}
	return nil
}
