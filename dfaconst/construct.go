package dfaconst

import (
	"sort"

	"github.com/coregx/maccomp/expr"
)

// Build runs subset construction over tree's followpos table, producing
// an unminimized DFA whose states' accept masks are already reduced per
// §4.5 (spec.md §4.3). Grounded structurally on dfa/lazy/builder.go's
// Build() orchestration (validate → create cache → create start state →
// drain a work queue, registering new states as they're discovered),
// adapted from lazy, on-demand determinization to eager, exhaustive
// determinization: the serializer needs a complete table, not a cache
// that fills in during search. New states are discovered in sorted
// byte order so that state IDs and edge enumeration are stable across
// repeated runs over the same input, matching the sort-before-iterate
// discipline minimize/refine.go and alphabet/compress.go already use.
func Build(tree *expr.Tree) (*DFA, error) {
	tbl := newStateTable()

	dead, _ := tbl.getOrCreate(NewNodeSet(nil), func(id StateID) *State {
		return &State{ID: id}
	})
	dead.Cases = Cases{Default: dead.ID}

	var startPositions []expr.PositionID
	if root := tree.Root(); root != expr.InvalidNode {
		startPositions = tree.Node(root).Firstpos()
	}
	start, _ := tbl.getOrCreate(NewNodeSet(startPositions), func(id StateID) *State {
		return &State{ID: id}
	})

	queue := []StateID{start.ID}
	enqueued := map[StateID]bool{start.ID: true}

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		st := tbl.states[id]
		if st.ID == dead.ID {
			continue
		}

		byByte := make(map[byte][]expr.PositionID)
		for _, p := range st.Positions.Positions() {
			node := tree.PositionNode(p)
			switch node.Kind() {
			case expr.KindChar:
				fp := tree.Followpos(p)
				byByte[node.Byte()] = append(byByte[node.Byte()], fp...)
			case expr.KindAnyChar:
				fp := tree.Followpos(p)
				for _, r := range node.Ranges() {
					for b := int(r.Lo); b <= int(r.Hi); b++ {
						byByte[byte(b)] = append(byByte[byte(b)], fp...)
					}
				}
			case expr.KindAccept:
				// Contributes nothing to transitions; tags the state.
			}
		}

		keys := make([]byte, 0, len(byByte))
		for b := range byByte {
			keys = append(keys, b)
		}
		sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

		cases := Cases{Default: dead.ID}
		var explicit map[byte]StateID
		for _, b := range keys {
			positions := byByte[b]
			ns := NewNodeSet(positions)
			target, created := tbl.getOrCreate(ns, func(id StateID) *State {
				return &State{ID: id}
			})
			if target.ID == cases.Default {
				continue // invariant I4: absorbed into default
			}
			if explicit == nil {
				explicit = make(map[byte]StateID, len(byByte))
			}
			explicit[b] = target.ID
			if created && !enqueued[target.ID] {
				queue = append(queue, target.ID)
				enqueued[target.ID] = true
			}
		}
		cases.Map = explicit
		st.Cases = cases
	}

	dfa := &DFA{States: tbl.states, Start: start.ID, Dead: dead.ID}
	for _, st := range dfa.States {
		mask, err := reduceAccept(tree, st.ID, st.Positions)
		if err != nil {
			return nil, err
		}
		st.Accept = mask
	}
	for _, st := range dfa.States {
		st.Positions = NodeSet{}
	}
	return dfa, nil
}
