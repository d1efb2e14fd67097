package dfaconst

import "github.com/coregx/maccomp/permbits"

// StateID identifies a DFA state (spec.md §3).
type StateID uint32

// InvalidState marks the absence of a state.
const InvalidState StateID = 0xFFFFFFFF

// AcceptMask is the (perms, audit, quiet) reduction of a state's accept
// leaves (spec.md §3, §4.5). Quiet marks the subset of denied
// permission bits whose audit-control should be suppressed — the
// "PACK_AUDIT_CTL(audit, quiet & deny)" step in §4.5's final rule.
type AcceptMask struct {
	Perms permbits.Mask
	Audit permbits.Mask
	Quiet permbits.Mask
}

// IsAccepting reports whether the mask carries any permission bits.
func (a AcceptMask) IsAccepting() bool { return a.Perms != 0 }

// Cases is a DFA state's transition table (spec.md §3): an optional
// default fall-through target plus explicit per-byte overrides.
// Invariant I4: Map never contains a byte whose target equals Default.
type Cases struct {
	Default StateID
	Map     map[byte]StateID
}

// State is one DFA state (spec.md §3). Grounded on dfa/lazy/state.go's
// State, renamed to this module's vocabulary: isMatch becomes the
// permission-carrying AcceptMask, and nfaStates becomes the NodeSet of
// expression-tree positions this state represents during construction.
type State struct {
	ID     StateID
	Cases  Cases
	Accept AcceptMask

	// Positions is cleared (set to the zero NodeSet) by Build once subset
	// construction completes, per spec.md §3's lifecycle rule.
	Positions NodeSet

	// Partition is scratch space used only during minimization (spec.md
	// §9's "State–Partition back-pointer" discipline): it reflects the
	// previous refinement pass's block until the current pass finishes
	// scanning that block.
	Partition int
}

// DFA owns a set of States and designates the Start and Dead states
// (spec.md §3).
type DFA struct {
	States []*State
	Start  StateID
	Dead   StateID
}

// State returns the state with the given ID.
func (d *DFA) State(id StateID) *State { return d.States[id] }
