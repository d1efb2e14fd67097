package minimize

import "github.com/coregx/maccomp/dfaconst"

// Minimize runs the full spec.md §4.4 reduction over dfa: a
// reachability prune, Hopcroft-style partition refinement, and a merge
// pass that collapses each surviving block to its representative. With
// flags.HashPerms and flags.HashTrans both false the result is the
// true minimum DFA; setting either preserves more of the unminimized
// state count in exchange for a cheaper refinement pass.
func Minimize(dfa *dfaconst.DFA, flags Flags) *dfaconst.DFA {
	pruned := Prune(dfa)
	p := refine(pruned, flags)
	return merge(pruned, p)
}
