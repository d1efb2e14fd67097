//go:build !amd64

package simd

// Memchr returns the index of the first instance of needle in haystack,
// or -1 if needle is not present in haystack.
//
// On non-amd64 platforms this uses memchrGeneric's pure Go SWAR (SIMD
// Within A Register) implementation.
func Memchr(haystack []byte, needle byte) int {
	return memchrGeneric(haystack, needle)
}
