package minimize

import (
	"testing"

	"github.com/coregx/maccomp/dfaconst"
)

func state(id dfaconst.StateID, def dfaconst.StateID, m map[byte]dfaconst.StateID, accept dfaconst.AcceptMask) *dfaconst.State {
	return &dfaconst.State{ID: id, Cases: dfaconst.Cases{Default: def, Map: m}, Accept: accept}
}

func TestPruneRemovesUnreachableStates(t *testing.T) {
	dfa := &dfaconst.DFA{
		States: []*dfaconst.State{
			state(0, 0, nil, dfaconst.AcceptMask{}),                             // dead
			state(1, 0, map[byte]dfaconst.StateID{'a': 2}, dfaconst.AcceptMask{}), // start
			state(2, 0, nil, dfaconst.AcceptMask{Perms: 0x1}),                   // reachable accept
			state(3, 0, nil, dfaconst.AcceptMask{Perms: 0x2}),                   // orphan, unreachable
		},
		Start: 1,
		Dead:  0,
	}
	pruned := Prune(dfa)
	if len(pruned.States) != 3 {
		t.Fatalf("len(States) = %d, want 3 (dead, start, reachable accept)", len(pruned.States))
	}
	for _, st := range pruned.States {
		if st.Accept.Perms == 0x2 {
			t.Fatal("orphan state's accept mask leaked into the pruned DFA")
		}
	}
}

func TestMinimizeMergesEquivalentDeadEnds(t *testing.T) {
	dfa := &dfaconst.DFA{
		States: []*dfaconst.State{
			state(0, 0, nil, dfaconst.AcceptMask{}),
			state(1, 0, map[byte]dfaconst.StateID{'a': 2, 'b': 3}, dfaconst.AcceptMask{}),
			state(2, 0, nil, dfaconst.AcceptMask{Perms: 0x1}),
			state(3, 0, nil, dfaconst.AcceptMask{Perms: 0x1}),
		},
		Start: 1,
		Dead:  0,
	}
	got := Minimize(dfa, Flags{})
	if len(got.States) != 3 {
		t.Fatalf("len(States) = %d, want 3 (dead, start, one merged accept state)", len(got.States))
	}
	start := got.State(got.Start)
	aTarget := start.Cases.Map['a']
	bTarget := start.Cases.Map['b']
	if aTarget != bTarget {
		t.Fatalf("equivalent dead-end states were not merged: 'a' -> %d, 'b' -> %d", aTarget, bTarget)
	}
	if got.State(aTarget).Accept.Perms != 0x1 {
		t.Fatalf("merged state's Perms = %#x, want 0x1", got.State(aTarget).Accept.Perms)
	}
}

func TestMinimizeHashPermsPreservesDistinctAccept(t *testing.T) {
	build := func() *dfaconst.DFA {
		return &dfaconst.DFA{
			States: []*dfaconst.State{
				state(0, 0, nil, dfaconst.AcceptMask{}),
				state(1, 0, map[byte]dfaconst.StateID{'a': 2, 'b': 3}, dfaconst.AcceptMask{}),
				state(2, 0, nil, dfaconst.AcceptMask{Perms: 0x1}),
				state(3, 0, nil, dfaconst.AcceptMask{Perms: 0x2}),
			},
			Start: 1,
			Dead:  0,
		}
	}

	merged := Minimize(build(), Flags{})
	if len(merged.States) != 3 {
		t.Fatalf("hash_perms=false: len(States) = %d, want 3 (distinguishable accept states merged)", len(merged.States))
	}
	mstart := merged.State(merged.Start)
	if merged.State(mstart.Cases.Map['a']).Accept.Perms != 0x3 {
		t.Fatalf("hash_perms=false must union perms across merged states, got %#x",
			merged.State(mstart.Cases.Map['a']).Accept.Perms)
	}

	kept := Minimize(build(), Flags{HashPerms: true})
	if len(kept.States) != 4 {
		t.Fatalf("hash_perms=true: len(States) = %d, want 4 (accept states kept separate)", len(kept.States))
	}
	kstart := kept.State(kept.Start)
	aPerms := kept.State(kstart.Cases.Map['a']).Accept.Perms
	bPerms := kept.State(kstart.Cases.Map['b']).Accept.Perms
	if aPerms == bPerms {
		t.Fatalf("hash_perms=true must not union distinct accept masks: both = %#x", aPerms)
	}
	if aPerms&0x3 == 0x3 || bPerms&0x3 == 0x3 {
		t.Fatal("hash_perms=true merged masks that should have stayed separate")
	}
}

func TestMinimizeDoesNotMergeStatesWithDifferentFutures(t *testing.T) {
	dfa := &dfaconst.DFA{
		States: []*dfaconst.State{
			state(0, 0, nil, dfaconst.AcceptMask{}),
			state(1, 0, map[byte]dfaconst.StateID{'a': 2, 'c': 3}, dfaconst.AcceptMask{}),
			state(2, 0, nil, dfaconst.AcceptMask{Perms: 0x1}),
			state(3, 0, map[byte]dfaconst.StateID{'z': 2}, dfaconst.AcceptMask{Perms: 0x1}),
		},
		Start: 1,
		Dead:  0,
	}
	got := Minimize(dfa, Flags{})
	// state 2 (terminal) and state 3 (has an outgoing 'z' edge) share an
	// accept mask but differ in transition shape; they must not collapse.
	if len(got.States) != 4 {
		t.Fatalf("len(States) = %d, want 4 (states with different futures stay distinct)", len(got.States))
	}
}

func TestMinimizePreservesInvariantI4(t *testing.T) {
	dfa := &dfaconst.DFA{
		States: []*dfaconst.State{
			state(0, 0, nil, dfaconst.AcceptMask{}),
			state(1, 0, map[byte]dfaconst.StateID{'a': 2, 'b': 3}, dfaconst.AcceptMask{}),
			state(2, 0, nil, dfaconst.AcceptMask{Perms: 0x1}),
			state(3, 0, nil, dfaconst.AcceptMask{Perms: 0x1}),
		},
		Start: 1,
		Dead:  0,
	}
	got := Minimize(dfa, Flags{})
	for _, st := range got.States {
		for b, target := range st.Cases.Map {
			if target == st.Cases.Default {
				t.Fatalf("invariant I4 violated: state %d byte %q explicit target equals default", st.ID, b)
			}
		}
	}
}
