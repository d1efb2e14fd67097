package dfaconst

import "fmt"

// ErrInconsistentExec reports that two accept leaves of the same kind
// (normal or exact) contributing to the same DFA state both set the
// exec-type bit of one class (user or other) but disagree on that
// class's exec bits (spec.md §4.5, §7). Leaves that engage different
// classes do not conflict. This
// is a ruleset-level failure, not merely a flagged state, resolving the
// AA_ERROR_BIT open question in spec.md §9.
type ErrInconsistentExec struct {
	StateID StateID
}

func (e *ErrInconsistentExec) Error() string {
	return fmt.Sprintf("dfaconst: state %d has conflicting exec-type qualifiers among its accept leaves", e.StateID)
}

// ErrInvariant reports an internal invariant violation: a bug, never
// expected from well-formed input (spec.md §7).
type ErrInvariant struct {
	Msg string
}

func (e *ErrInvariant) Error() string {
	return "dfaconst: invariant violation: " + e.Msg
}
