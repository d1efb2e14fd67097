package dfaconst

import (
	"github.com/coregx/maccomp/expr"
	"github.com/coregx/maccomp/permbits"
)

// classConflict reports whether acc (the union of perms accumulated so
// far) and leaf (a newly-merged accept leaf's perms) disagree about the
// same exec-type class — spec.md §4.5's "conflicting exec modifiers ...
// to the same exec-type class" test. Grounded on
// original_source/libapparmor_re/hfa.cc's diff_qualifiers, but scoped
// per class rather than compared as one combined field: the C source
// flags a conflict whenever *any* exec-type bit is set on both sides
// even if they're different classes (user vs. other), which would
// reject the ordinary case of one rule granting user-domain exec and
// another granting other-domain exec on the same path. Spec.md's text
// is more precise ("the same exec-type class"), so conflicts are
// checked independently per class here.
func classConflict(acc, leaf permbits.Mask) bool {
	for _, c := range [...]permbits.ExecClass{permbits.UserClass, permbits.OtherClass} {
		t := permbits.TypeBit(c)
		if acc&t == 0 || leaf&t == 0 {
			continue
		}
		mask := t | permbits.BaseExecBit(c)
		if acc&mask != leaf&mask {
			return true
		}
	}
	return false
}

// reduceAccept computes a state's accept mask from the accept leaves
// among its positions, per spec.md §4.5. It returns ErrInconsistentExec
// if two normal, or two exact, accept leaves disagree on the exec-type
// field. Grounded on original_source/libapparmor_re/hfa.cc's
// accept_perms, translated from its incremental C++ OR-and-check loop.
func reduceAccept(tree *expr.Tree, id StateID, positions NodeSet) (AcceptMask, error) {
	var perms, audit permbits.Mask
	var exactPerms, exactAudit permbits.Mask
	var deny, quiet permbits.Mask

	for _, p := range positions.Positions() {
		node := tree.PositionNode(p)
		if node.Kind() != expr.KindAccept {
			continue
		}
		a := node.AcceptInfo()
		switch a.Kind {
		case expr.Exact:
			if classConflict(exactPerms, a.Perms) {
				return AcceptMask{}, &ErrInconsistentExec{StateID: id}
			}
			exactPerms |= a.Perms
			exactAudit |= a.Audit
		case expr.Deny:
			deny |= a.Perms
			quiet |= a.Audit
		default: // expr.Normal
			if classConflict(perms, a.Perms) {
				return AcceptMask{}, &ErrInconsistentExec{StateID: id}
			}
			perms |= a.Perms
			audit |= a.Audit
		}
	}

	// Step 1: exact matches override only the non-exec-type portion by
	// default. The excluded portion is both classes' full subfields (type
	// qualifier bit plus base exec bit), not just the qualifier bits:
	// a class is all-or-nothing once an exact match engages it (step 2).
	perms |= exactPerms &^ (permbits.ClassMask(permbits.UserClass) | permbits.ClassMask(permbits.OtherClass))

	// Step 2: for each exec-type class, an engaged exact match replaces
	// that class's whole subfield in perms/audit, base exec bit included —
	// an exact match that grants the type qualifier without the base exec
	// bit must clear a base bit a prior normal leaf had set, not just
	// shadow the qualifier.
	for _, c := range [...]permbits.ExecClass{permbits.UserClass, permbits.OtherClass} {
		if exactPerms&permbits.TypeBit(c) == 0 {
			continue
		}
		mask := permbits.ClassMask(c)
		perms = (exactPerms & mask) | (perms &^ mask)
		audit = (exactAudit & mask) | (audit &^ mask)
	}

	// Step 3: clear a class's exec-type bit if its base exec bit is
	// also denied.
	if perms&permbits.UserExec&deny != 0 {
		perms &^= permbits.UserExecType
	}
	if perms&permbits.OtherExec&deny != 0 {
		perms &^= permbits.OtherExecType
	}

	// Step 4: subtract denied bits; pack the quiet-on-deny audit flags.
	perms &^= deny

	return AcceptMask{Perms: perms, Audit: audit, Quiet: quiet & deny}, nil
}
