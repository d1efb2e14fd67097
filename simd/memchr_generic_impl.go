package simd

import (
	"encoding/binary"
	"math/bits"
)

// memchrGeneric implements pure Go byte search using SWAR (SIMD Within A
// Register) technique, processing 8 bytes at a time via uint64 bitwise
// operations. It is the fallback on amd64 for small inputs or when AVX2
// is unavailable, and the sole implementation on other platforms.
func memchrGeneric(haystack []byte, needle byte) int {
	haystackLen := len(haystack)
	if haystackLen == 0 {
		return -1
	}

	if haystackLen < 8 {
		for idx := 0; idx < haystackLen; idx++ {
			if haystack[idx] == needle {
				return idx
			}
		}
		return -1
	}

	// Broadcast needle to all 8 bytes of a uint64.
	needleMask := uint64(needle) * 0x0101010101010101

	idx := 0
	for idx+8 <= haystackLen {
		chunk := binary.LittleEndian.Uint64(haystack[idx:])

		// XOR makes matching bytes become 0x00.
		xor := chunk ^ needleMask

		// Zero-byte detection (Hacker's Delight): subtracting 0x01 from
		// each byte borrows iff the byte was 0x00; AND with ^xor isolates
		// those bytes; AND with 0x80 extracts the marker bit.
		const lo8 = 0x0101010101010101
		const hi8 = 0x8080808080808080
		hasZero := (xor - lo8) & ^xor & hi8

		if hasZero != 0 {
			return idx + bits.TrailingZeros64(hasZero)/8
		}

		idx += 8
	}

	for idx < haystackLen {
		if haystack[idx] == needle {
			return idx
		}
		idx++
	}

	return -1
}
