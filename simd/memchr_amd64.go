//go:build amd64

// Package simd provides SIMD-accelerated byte searching. It automatically
// selects the best implementation based on available CPU features
// (AVX2 on x86-64) and falls back to an optimized pure Go implementation
// on other platforms or for small inputs.
//
// Its one caller, ruleset.AddRuleVec, uses it to scan rule-vector
// components for an embedded NUL separator byte before joining them.
package simd

import "golang.org/x/sys/cpu"

// hasAVX2 indicates whether the CPU supports AVX2 instructions (256-bit
// SIMD). AVX2 was introduced in Intel Haswell (2013) and AMD Excavator
// (2015).
var hasAVX2 = cpu.X86.HasAVX2

// memchrAVX2 is implemented in memchr_amd64.s using 256-bit vector
// operations.
//
//go:noescape
func memchrAVX2(haystack []byte, needle byte) int

// Memchr returns the index of the first instance of needle in haystack,
// or -1 if needle is not present in haystack.
//
// This function is equivalent to bytes.IndexByte but uses AVX2
// instructions when available on x86-64 platforms, falling back to a
// pure Go implementation on other architectures or for small inputs
// where SIMD setup overhead outweighs the benefit.
func Memchr(haystack []byte, needle byte) int {
	if len(haystack) == 0 {
		return -1
	}

	// For small inputs (< 32 bytes), the setup cost of SIMD outweighs
	// the benefits.
	if hasAVX2 && len(haystack) >= 32 {
		return memchrAVX2(haystack, needle)
	}

	return memchrGeneric(haystack, needle)
}
