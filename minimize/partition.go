// Package minimize implements the two-phase DFA reduction from
// spec.md §4.4: a reachability prune followed by Hopcroft-style
// partition refinement and a final merge pass.
package minimize

import "github.com/coregx/maccomp/dfaconst"

// Flags selects which optimality-for-speed trade-offs the initial
// partitioning takes. Both false yields the true minimum DFA; setting
// either preserves distinctions among states that the refinement loop
// never re-merges, trading state count for compile speed.
type Flags struct {
	// HashPerms gives each distinct (accept, audit) tuple its own
	// initial block instead of lumping every accepting state together.
	HashPerms bool
	// HashTrans further refines the initial block key by a djb2
	// transition fingerprint.
	HashTrans bool
}

// partition is the mutable list of blocks the refinement loop iterates
// over. Blocks are identified by a stable id (stored in every member's
// dfaconst.State.Partition field) that never changes once assigned;
// order tracks the list position ids currently occupy, which is what
// moves when a block splits and its new partner is inserted
// immediately after it (spec.md §4.4). Keeping id and position
// separate means inserting a block never requires re-patching any
// other block's members.
type partition struct {
	order   []int
	members map[int][]dfaconst.StateID
	next    int
}

func newPartition() *partition {
	return &partition{members: make(map[int][]dfaconst.StateID)}
}

// addBlock appends a new block at the end of the order and returns its
// id.
func (p *partition) addBlock(block []dfaconst.StateID) int {
	id := p.next
	p.next++
	p.order = append(p.order, id)
	p.members[id] = block
	return id
}

// insertAfter inserts block immediately after the block currently at
// position i, returning the new block's id.
func (p *partition) insertAfter(i int, block []dfaconst.StateID) int {
	id := p.next
	p.next++
	p.members[id] = block
	p.order = append(p.order, 0)
	copy(p.order[i+2:], p.order[i+1:])
	p.order[i+1] = id
	return id
}

// patchBackpointers stamps every state's Partition field with its
// block's current id.
func patchBackpointers(dfa *dfaconst.DFA, p *partition) {
	for _, id := range p.order {
		for _, sid := range p.members[id] {
			dfa.State(sid).Partition = id
		}
	}
}
