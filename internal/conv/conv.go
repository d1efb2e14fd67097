// Package conv provides safe integer conversion helpers for the
// compiler core.
//
// These functions perform bounds checking before narrowing integer conversions
// to prevent silent overflow. They panic on overflow since this indicates a
// programming error (e.g., a DFA with more states than the serialized
// blob's int32 state-label field can represent).
package conv

import "math"

// IntToUint32 safely converts an int to uint32.
// Panics if n < 0 or n > math.MaxUint32.
//
//go:inline
func IntToUint32(n int) uint32 {
	// Use uint for comparison to avoid overflow on 32-bit platforms
	// where int cannot represent math.MaxUint32
	if n < 0 || uint(n) > math.MaxUint32 {
		panic("integer overflow: int value out of uint32 range")
	}
	return uint32(n)
}

// IntToUint16 safely converts an int to uint16.
// Panics if n < 0 or n > math.MaxUint16.
//
//go:inline
func IntToUint16(n int) uint16 {
	if n < 0 || n > math.MaxUint16 {
		panic("integer overflow: int value out of uint16 range")
	}
	return uint16(n)
}

// Uint64ToUint32 safely converts a uint64 to uint32.
// Panics if n > math.MaxUint32.
//
//go:inline
func Uint64ToUint32(n uint64) uint32 {
	if n > math.MaxUint32 {
		panic("integer overflow: uint64 value out of uint32 range")
	}
	return uint32(n)
}

// Uint64ToUint16 safely converts a uint64 to uint16.
// Panics if n > math.MaxUint16.
//
//go:inline
func Uint64ToUint16(n uint64) uint16 {
	if n > math.MaxUint16 {
		panic("integer overflow: uint64 value out of uint16 range")
	}
	return uint16(n)
}

// Uint32ToInt32 safely converts a uint32 to int32. Panics if n exceeds
// math.MaxInt32, since the serialized blob reserves negative int32
// values (specifically -1) as the "deleted state" sentinel — a state
// label that silently wrapped negative would be misread as deleted.
//
//go:inline
func Uint32ToInt32(n uint32) int32 {
	if n > math.MaxInt32 {
		panic("integer overflow: uint32 value out of int32 range")
	}
	return int32(n)
}
