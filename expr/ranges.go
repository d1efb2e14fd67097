package expr

import "sort"

// ByteRange is an inclusive [Lo, Hi] range of byte values, used to
// represent an AnyChar leaf's matching set (spec.md §3).
type ByteRange struct {
	Lo, Hi byte
}

// normalizeRanges sorts and merges overlapping or adjacent ranges.
func normalizeRanges(rs []ByteRange) []ByteRange {
	if len(rs) == 0 {
		return nil
	}
	sort.Slice(rs, func(i, j int) bool { return rs[i].Lo < rs[j].Lo })
	out := make([]ByteRange, 0, len(rs))
	cur := rs[0]
	for _, r := range rs[1:] {
		if int(r.Lo) <= int(cur.Hi)+1 {
			if r.Hi > cur.Hi {
				cur.Hi = r.Hi
			}
			continue
		}
		out = append(out, cur)
		cur = r
	}
	return append(out, cur)
}

// complementRanges returns the ranges covering every byte in [lo, hi] not
// covered by rs. rs is assumed normalized.
func complementRanges(rs []ByteRange, lo, hi byte) []ByteRange {
	var out []ByteRange
	next := int(lo)
	for _, r := range rs {
		if int(r.Lo) > next {
			out = append(out, ByteRange{Lo: byte(next), Hi: r.Lo - 1})
		}
		if int(r.Hi)+1 > next {
			next = int(r.Hi) + 1
		}
		if next > int(hi) {
			return out
		}
	}
	if next <= int(hi) {
		out = append(out, ByteRange{Lo: byte(next), Hi: hi})
	}
	return out
}

// excludeNull removes byte 0x00 from rs: no leaf ever matches the
// reserved separator byte (spec.md §3).
func excludeNull(rs []ByteRange) []ByteRange {
	var out []ByteRange
	for _, r := range rs {
		if r.Lo == 0 {
			if r.Hi == 0 {
				continue
			}
			r.Lo = 1
		}
		out = append(out, r)
	}
	return out
}

// containsByte reports whether any range in rs contains b.
func containsByte(rs []ByteRange, b byte) bool {
	for _, r := range rs {
		if b >= r.Lo && b <= r.Hi {
			return true
		}
	}
	return false
}
