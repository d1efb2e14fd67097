package alphabet

import (
	"sort"

	"github.com/coregx/maccomp/dfaconst"
)

// Compute assigns each of the 256 bytes to an equivalence class such
// that two bytes share a class iff they transition to the same target
// in every state of dfa, including via the default fall-through
// (spec.md §4.6). All bytes start in class 0; states are processed in
// id order and, within a state, classes that this state's transitions
// distinguish are split in ascending class-id then ascending
// target-StateID order — the smallest target keeps the existing class
// id, the rest are assigned fresh ones — so two runs over the same DFA
// always produce byte-identical class assignments (spec.md §5).
func Compute(dfa *dfaconst.DFA) Classes {
	var classes [256]byte
	nextClass := byte(1)

	for _, st := range dfa.States {
		target := func(b byte) dfaconst.StateID {
			if t, ok := st.Cases.Map[b]; ok {
				return t
			}
			return st.Cases.Default
		}

		byClass := make(map[byte]map[dfaconst.StateID][]byte)
		for b := 0; b < 256; b++ {
			cl := classes[b]
			if byClass[cl] == nil {
				byClass[cl] = make(map[dfaconst.StateID][]byte)
			}
			t := target(byte(b))
			byClass[cl][t] = append(byClass[cl][t], byte(b))
		}

		presentClasses := make([]byte, 0, len(byClass))
		for cl := range byClass {
			presentClasses = append(presentClasses, cl)
		}
		sort.Slice(presentClasses, func(i, j int) bool { return presentClasses[i] < presentClasses[j] })

		for _, cl := range presentClasses {
			byTarget := byClass[cl]
			if len(byTarget) <= 1 {
				continue // this state doesn't distinguish class cl
			}
			targets := make([]dfaconst.StateID, 0, len(byTarget))
			for t := range byTarget {
				targets = append(targets, t)
			}
			sort.Slice(targets, func(i, j int) bool { return targets[i] < targets[j] })

			for i, t := range targets {
				if i == 0 {
					continue // smallest target StateID keeps class cl
				}
				for _, b := range byTarget[t] {
					classes[b] = nextClass
				}
				nextClass++
			}
		}
	}

	return Classes{classes: classes}
}
