// Package dfaconst builds a DFA from an expression tree by the classical
// followpos-based subset construction (stage S3, spec.md §4.3), and
// reduces each state's accept leaves into a permission/audit mask
// (§4.5).
//
// Grounded on dfa/lazy/state.go's State and dfa/lazy/cache.go's Cache
// for the dedup-table shape; the hashing and subset-construction
// algorithm themselves are new, implementing spec.md §4.3 directly,
// since the teacher determinizes lazily from an NFA and never computes
// followpos.
package dfaconst

import (
	"hash/maphash"
	"sort"

	"github.com/coregx/maccomp/expr"
)

var nodeSetHashSeed = maphash.MakeSeed()

// mixPosition hashes a single PositionID for NodeSet's commutative XOR
// mix (spec.md §4.3's "Hashing" paragraph).
func mixPosition(p expr.PositionID) uint64 {
	var buf [4]byte
	buf[0] = byte(p)
	buf[1] = byte(p >> 8)
	buf[2] = byte(p >> 16)
	buf[3] = byte(p >> 24)
	var h maphash.Hash
	h.SetSeed(nodeSetHashSeed)
	h.Write(buf[:])
	return h.Sum64()
}

// NodeSet is a canonicalized, content-hashed set of expression-tree
// positions. Two NodeSets with the same members are equal regardless of
// the order positions were supplied in (spec.md §3).
type NodeSet struct {
	positions []expr.PositionID // sorted, deduplicated
	hash      uint64
}

// NewNodeSet builds a canonical NodeSet from an unsorted, possibly
// duplicate-containing slice of positions. positions is not mutated.
func NewNodeSet(positions []expr.PositionID) NodeSet {
	sorted := append([]expr.PositionID(nil), positions...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	deduped := sorted[:0]
	first := true
	var prev expr.PositionID
	for _, p := range sorted {
		if first || p != prev {
			deduped = append(deduped, p)
			prev = p
			first = false
		}
	}

	var h uint64
	for _, p := range deduped {
		h ^= mixPosition(p)
	}
	return NodeSet{positions: deduped, hash: h}
}

// Positions returns the set's members in sorted order.
func (s NodeSet) Positions() []expr.PositionID { return s.positions }

// Hash returns the set's commutative content hash, a candidate filter
// only — Equal is the true equality test.
func (s NodeSet) Hash() uint64 { return s.hash }

// Empty reports whether the set has no members (the dead state's set).
func (s NodeSet) Empty() bool { return len(s.positions) == 0 }

// Equal reports whether s and o contain exactly the same positions.
func (s NodeSet) Equal(o NodeSet) bool {
	if len(s.positions) != len(o.positions) {
		return false
	}
	for i, p := range s.positions {
		if o.positions[i] != p {
			return false
		}
	}
	return true
}

// stateTable deduplicates NodeSets during subset construction, keyed by
// hash with element-wise equality as the tiebreaker (spec.md §3, §4.3).
// Adapted from dfa/lazy/cache.go's Cache, minus its sync.RWMutex: §5
// mandates single-threaded, non-suspending construction, so there is no
// concurrent access to guard against.
type stateTable struct {
	buckets map[uint64][]StateID
	states  []*State
}

func newStateTable() *stateTable {
	return &stateTable{buckets: make(map[uint64][]StateID)}
}

// getOrCreate returns the canonical state for ns, creating one via
// makeFn (and reporting created=true) if none exists yet. Enqueuing a
// new state is left to the caller.
func (tbl *stateTable) getOrCreate(ns NodeSet, makeFn func(id StateID) *State) (st *State, created bool) {
	for _, id := range tbl.buckets[ns.hash] {
		cand := tbl.states[id]
		if cand.Positions.Equal(ns) {
			return cand, false
		}
	}
	id := StateID(len(tbl.states))
	st = makeFn(id)
	st.Positions = ns
	tbl.states = append(tbl.states, st)
	tbl.buckets[ns.hash] = append(tbl.buckets[ns.hash], id)
	return st, true
}
