package minimize

import "github.com/coregx/maccomp/dfaconst"

// merge collapses each of p's blocks into its representative (the
// first member in insertion order), retargets every surviving
// transition to representatives, and unions accept/audit/quiet masks
// across a block's members (spec.md §4.4's merge phase). Returns a
// freshly reindexed DFA; non-representatives are dropped.
func merge(dfa *dfaconst.DFA, p *partition) *dfaconst.DFA {
	remap := make([]dfaconst.StateID, len(dfa.States))
	kept := make([]*dfaconst.State, 0, len(p.order))

	for _, blockID := range p.order {
		block := p.members[blockID]
		rep := block[0]
		mask := dfa.State(rep).Accept
		for _, id := range block[1:] {
			m := dfa.State(id).Accept
			mask.Perms |= m.Perms
			mask.Audit |= m.Audit
			mask.Quiet |= m.Quiet
		}

		newID := dfaconst.StateID(len(kept))
		for _, id := range block {
			remap[id] = newID
		}
		st := dfa.State(rep)
		kept = append(kept, &dfaconst.State{
			ID:     newID,
			Cases:  st.Cases,
			Accept: mask,
		})
	}

	for _, st := range kept {
		st.Cases.Default = remap[st.Cases.Default]
		if st.Cases.Map == nil {
			continue
		}
		m := make(map[byte]dfaconst.StateID, len(st.Cases.Map))
		for b, target := range st.Cases.Map {
			nt := remap[target]
			if nt == st.Cases.Default {
				continue // invariant I4: re-absorb into default post-merge
			}
			m[b] = nt
		}
		if len(m) == 0 {
			m = nil
		}
		st.Cases.Map = m
	}

	return &dfaconst.DFA{
		States: kept,
		Start:  remap[dfa.Start],
		Dead:   remap[dfa.Dead],
	}
}
