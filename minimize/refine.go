package minimize

import (
	"sort"

	"github.com/coregx/maccomp/dfaconst"
	"github.com/coregx/maccomp/permbits"
)

// initialKey groups states into their starting blocks per spec.md
// §4.4's two knobs. Non-accepting states never share a block with
// accepting ones, regardless of flags.
type initialKey struct {
	accepting    bool
	perms, audit permbits.Mask
	quiet        permbits.Mask
	fingerprint  uint64
}

// initialPartition builds the starting blocks before refinement.
func initialPartition(dfa *dfaconst.DFA, flags Flags) *partition {
	groups := make(map[initialKey][]dfaconst.StateID)
	var order []initialKey

	for _, st := range dfa.States {
		k := initialKey{accepting: st.Accept.IsAccepting()}
		if k.accepting && flags.HashPerms {
			k.perms, k.audit, k.quiet = st.Accept.Perms, st.Accept.Audit, st.Accept.Quiet
		}
		if flags.HashTrans {
			k.fingerprint = transitionFingerprint(dfa, st)
		}
		if _, ok := groups[k]; !ok {
			order = append(order, k)
		}
		groups[k] = append(groups[k], st.ID)
	}

	p := newPartition()
	for _, k := range order {
		p.addBlock(groups[k])
	}
	return p
}

// transitionFingerprint is a djb2 hash keyed on st's ordered-byte
// transition pattern plus the size of each target's own transition
// table. It never looks at target identity, so it's stable under
// partition equivalence before the partition itself has stabilized.
// Ported from spec.md §4.4's description directly; djb2 is not used
// elsewhere in the corpus (the teacher's dfa/lazy/state.go hashes with
// hash/fnv), but the spec names djb2 specifically and the transition
// fingerprint's composition rules differ enough from a set-membership
// hash that reusing ComputeStateKey's FNV-1a scheme would not fit.
func transitionFingerprint(dfa *dfaconst.DFA, st *dfaconst.State) uint64 {
	h := uint64(5381)
	mix := func(v uint64) {
		h = h*33 + v
	}

	keys := make([]byte, 0, len(st.Cases.Map))
	for b := range st.Cases.Map {
		keys = append(keys, b)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	for _, b := range keys {
		target := dfa.State(st.Cases.Map[b])
		mix(uint64(b))
		mix(uint64(len(target.Cases.Map)))
	}
	mix(uint64(len(dfa.State(st.Cases.Default).Cases.Map)))
	return h
}

// sameMappings is spec.md §4.4's representative-comparison test:
// default transitions must land in the same block, and the explicit
// transition maps must share identical key sets whose targets are
// also pairwise in the same block.
func sameMappings(dfa *dfaconst.DFA, r, s dfaconst.StateID) bool {
	rst, sst := dfa.State(r), dfa.State(s)

	if dfa.State(rst.Cases.Default).Partition != dfa.State(sst.Cases.Default).Partition {
		return false
	}
	if len(rst.Cases.Map) != len(sst.Cases.Map) {
		return false
	}
	for b, rTarget := range rst.Cases.Map {
		sTarget, ok := sst.Cases.Map[b]
		if !ok {
			return false
		}
		if dfa.State(rTarget).Partition != dfa.State(sTarget).Partition {
			return false
		}
	}
	return true
}

// refine runs the migrate-then-patch loop until a full traversal of
// the block list produces no splits. Back-pointers for states that
// migrate out of a block are patched immediately after that block's
// scan completes — never mid-scan, since the scan's own stay/migrate
// decisions are made against the pre-split assignment.
func refine(dfa *dfaconst.DFA, flags Flags) *partition {
	p := initialPartition(dfa, flags)
	patchBackpointers(dfa, p)

	for {
		splitAny := false
		for i := 0; i < len(p.order); i++ {
			blockID := p.order[i]
			block := p.members[blockID]
			if len(block) <= 1 {
				continue
			}
			rep := block[0]
			stay := []dfaconst.StateID{rep}
			var migrate []dfaconst.StateID
			for _, id := range block[1:] {
				if sameMappings(dfa, rep, id) {
					stay = append(stay, id)
				} else {
					migrate = append(migrate, id)
				}
			}
			if len(migrate) == 0 {
				continue
			}
			p.members[blockID] = stay
			newID := p.insertAfter(i, migrate)
			for _, id := range migrate {
				dfa.State(id).Partition = newID
			}
			splitAny = true
		}
		if !splitAny {
			break
		}
	}
	return p
}
