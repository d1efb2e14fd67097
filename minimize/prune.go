package minimize

import "github.com/coregx/maccomp/dfaconst"

// Prune runs the reachability pass of spec.md §4.4: a BFS from start
// plus nonmatching (the dead state) over every transition, discarding
// states never visited, and returns a freshly reindexed DFA holding
// only the reachable ones. Grounded structurally on dfaconst.Build's
// own FIFO work-queue shape, applied here to an already-built DFA's
// transition graph rather than to followpos-derived NodeSets.
func Prune(dfa *dfaconst.DFA) *dfaconst.DFA {
	n := len(dfa.States)
	visited := make([]bool, n)
	queue := make([]dfaconst.StateID, 0, n)

	enqueue := func(id dfaconst.StateID) {
		if !visited[id] {
			visited[id] = true
			queue = append(queue, id)
		}
	}
	enqueue(dfa.Start)
	enqueue(dfa.Dead)

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		st := dfa.State(id)
		enqueue(st.Cases.Default)
		for _, target := range st.Cases.Map {
			enqueue(target)
		}
	}

	remap := make([]dfaconst.StateID, n)
	kept := make([]*dfaconst.State, 0, n)
	for old := 0; old < n; old++ {
		if !visited[old] {
			remap[old] = dfaconst.InvalidState
			continue
		}
		st := dfa.State(dfaconst.StateID(old))
		remap[old] = dfaconst.StateID(len(kept))
		kept = append(kept, &dfaconst.State{
			ID:     dfaconst.StateID(len(kept)),
			Cases:  st.Cases,
			Accept: st.Accept,
		})
	}
	for _, st := range kept {
		st.Cases.Default = remap[st.Cases.Default]
		if st.Cases.Map != nil {
			m := make(map[byte]dfaconst.StateID, len(st.Cases.Map))
			for b, target := range st.Cases.Map {
				m[b] = remap[target]
			}
			st.Cases.Map = m
		}
	}

	return &dfaconst.DFA{
		States: kept,
		Start:  remap[dfa.Start],
		Dead:   remap[dfa.Dead],
	}
}
