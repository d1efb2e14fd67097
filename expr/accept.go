package expr

import "github.com/coregx/maccomp/permbits"

// AcceptKind tags an Accept leaf's role in §4.5's mask reduction
// (spec.md §3, §4.2). This tagged-variant shape replaces the
// inheritance-plus-runtime-casts the original implementation used to
// distinguish MatchFlag / ExactMatchFlag / DenyMatchFlag (spec.md §9).
type AcceptKind uint8

const (
	// Normal is an ordinary, non-exact, non-deny accept leaf.
	Normal AcceptKind = iota
	// Exact marks a leaf from a pattern with no wildcards; its
	// permissions override the exec-type-class portion of Normal
	// accepts in the same state.
	Exact
	// Deny marks a leaf from a deny rule; its bits are collected
	// separately and subtracted from the final accept mask.
	Deny
)

// String renders the kind name for diagnostics.
func (k AcceptKind) String() string {
	switch k {
	case Normal:
		return "normal"
	case Exact:
		return "exact"
	case Deny:
		return "deny"
	default:
		return "unknown"
	}
}

// Accept carries one rule's permission/audit contribution, attached to
// an Accept leaf of the expression tree.
type Accept struct {
	Kind   AcceptKind
	Perms  permbits.Mask
	Audit  permbits.Mask
	// RuleIndex identifies the originating rule, for diagnostics only.
	RuleIndex int
}
