// Package ruleset is the external API a policy parser drives to turn
// rule tuples into a compiled, minimized DFA plus its serialized blob
// (spec.md §6). It orchestrates the S1–S5 pipeline: glob translation
// (package glob), expression-tree construction (package expr), subset
// construction (package dfaconst), minimization (package minimize),
// alphabet compression (package alphabet), and the optional literal
// fast-path index (package fastpath).
//
// Grounded on a "thread one result through sequential stages, fail
// fast" orchestration shape, adapted from compiling one pattern into a
// matcher to compiling many permission-tagged rules into a Ruleset.
package ruleset

import (
	"bytes"
	"log/slog"

	"github.com/coregx/maccomp/alphabet"
	"github.com/coregx/maccomp/dfaconst"
	"github.com/coregx/maccomp/expr"
	"github.com/coregx/maccomp/fastpath"
	"github.com/coregx/maccomp/glob"
	"github.com/coregx/maccomp/literal"
	"github.com/coregx/maccomp/minimize"
	"github.com/coregx/maccomp/permbits"
	"github.com/coregx/maccomp/serialize"
	"github.com/coregx/maccomp/simd"
)

// Ruleset accumulates rules across AddRule/AddRuleVec calls and
// compiles them into a Compiled DFA via CreateDFA. It carries no
// package-level mutable state (spec.md §5's "no shared mutable
// resources between compilations"): every field below lives on the
// value itself, so two Rulesets on independent goroutines never
// interfere.
type Ruleset struct {
	tree     *expr.Tree
	interner *permbits.Interner
	fast     *fastpath.Builder
	patterns []string // translated regex per rule, for DumpRuleExpr
	permIDs  []int    // interned (perms, audit) id per rule, for DumpRuleExpr

	logger *slog.Logger
}

// New creates an empty Ruleset, applying any options.
func New(opts ...Option) *Ruleset {
	r := &Ruleset{
		tree:     expr.NewTree(),
		interner: permbits.NewInterner(),
		fast:     fastpath.NewBuilder(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// AddRule translates pattern as a policy glob, parses it into the
// shared expression tree, and tags its accept leaf with perms/audit.
// A pattern using no wildcard construct (glob.Basic) is tagged Exact
// so it can override Normal accepts' exec-type class in the same DFA
// state (spec.md §4.5); a deny rule is always tagged Deny regardless
// of pattern shape.
func (r *Ruleset) AddRule(pattern []byte, deny bool, perms, audit uint32) error {
	anchored := true
	translated, class, warnings, err := glob.Translate(pattern, anchored)
	if err != nil {
		return err
	}
	for _, w := range warnings {
		r.log("glob translation warning", "pattern", w.Pattern, "pos", w.Pos, "msg", w.Msg)
	}

	kind := expr.Normal
	switch {
	case deny:
		kind = expr.Deny
	case class == glob.Basic:
		kind = expr.Exact
	}

	ruleIndex := len(r.patterns)
	if err := r.tree.AddRule(translated, kind, perms, audit, ruleIndex); err != nil {
		return err
	}
	r.patterns = append(r.patterns, translated)
	r.permIDs = append(r.permIDs, r.interner.Intern(perms, audit))

	// The fast-path index is a pure hint over literal-class rules; a
	// deny rule can subtract from an overlapping grant elsewhere in
	// the ruleset, which a standalone literal lookup can't represent,
	// so only non-deny Basic/TailGlob rules are indexed.
	if !deny && (class == glob.Basic || class == glob.TailGlob) {
		lit := literal.NewLiteral(literalPrefix(pattern), class == glob.Basic)
		r.fast.Add(lit, ruleIndex, dfaconst.AcceptMask{Perms: perms, Audit: audit})
	}

	return nil
}

// AddRuleVec joins components with the 0x00 separator byte and adds
// the result as a single rule, enabling multi-field matching such as a
// mount rule's class-byte + mount-point + device + type + flags
// tuple (spec.md §6). Each component is scanned for an embedded NUL
// byte first, since one would silently corrupt the field boundaries
// the separator is meant to establish.
func (r *Ruleset) AddRuleVec(deny bool, perms, audit uint32, components [][]byte) error {
	for i, c := range components {
		if simd.Memchr(c, 0x00) != -1 {
			return &ComponentError{Index: i}
		}
	}
	joined := bytes.Join(components, []byte{0x00})
	return r.AddRule(joined, deny, perms, audit)
}

// CreateDFA compiles every rule added so far into a minimized,
// alphabet-compressed DFA plus its optional fast-path index.
func (r *Ruleset) CreateDFA(flags Flags) (*Compiled, error) {
	if flags&DumpRuleExpr != 0 {
		for i, p := range r.patterns {
			perms, audit := r.interner.Lookup(r.permIDs[i])
			r.log("rule expression", "rule", i, "regex", p, "perm_id", r.permIDs[i], "perms", perms, "audit", audit)
		}
	}

	if flags&DumpProgress != 0 {
		r.log("stage S3: subset construction")
	}
	dfa, err := dfaconst.Build(r.tree)
	if err != nil {
		return nil, err
	}
	if flags&DumpNodeToDFA != 0 {
		r.log("subset construction complete", "states", len(dfa.States))
	}

	if flags&DumpUnreachable != 0 {
		pruned := minimize.Prune(dfa)
		r.log("unreachable states", "count", len(dfa.States)-len(pruned.States))
	}

	if flags&DumpProgress != 0 {
		r.log("stage S4: minimization")
	}
	minFlags := minimize.Flags{
		HashPerms: flags&ControlMinimizeHashPerms != 0,
		HashTrans: flags&ControlMinimizeHashTrans != 0,
	}
	minimized := minimize.Minimize(dfa, minFlags)

	if flags&DumpProgress != 0 {
		r.log("stage S4b: alphabet compression")
	}
	classes := alphabet.Compute(minimized)
	if flags&DumpEquivStats != 0 {
		r.log("alphabet classes", "count", classes.AlphabetLen())
	}

	fast, err := r.fast.Build()
	if err != nil {
		return nil, err
	}

	if flags&DumpStats != 0 {
		r.log("compilation complete", "states", len(minimized.States), "fastpath_literals", fast.Len(), "distinct_perm_sets", r.interner.Len())
	}

	return &Compiled{DFA: minimized, Classes: classes, Fast: fast}, nil
}

// Reset discards every rule added so far and clears the permission
// interner, matching reset_matchflags() in spec.md §6. The Ruleset is
// left ready to accept a fresh set of rules.
func (r *Ruleset) Reset() {
	r.tree = expr.NewTree()
	r.interner.Reset()
	r.fast = fastpath.NewBuilder()
	r.patterns = nil
	r.permIDs = nil
}

// Compiled bundles the artifacts one CreateDFA call produces: the
// minimized DFA, its compressed alphabet, and the optional literal
// fast-path index (spec.md §6, §4.7 EXPANSION).
type Compiled struct {
	DFA     *dfaconst.DFA
	Classes alphabet.Classes
	Fast    *fastpath.Index
}

// Blob serializes the compiled DFA to the kernel-facing binary layout
// spec.md §6 documents (§4.8 EXPANSION).
func (c *Compiled) Blob() ([]byte, error) {
	return serialize.Encode(c.DFA, c.Classes)
}

// literalPrefix extracts the literal byte sequence a Basic or TailGlob
// pattern matches up to its first wildcard construct, decoding a
// glob `\<byte>` escape the same way glob.Translate's own '\\' case
// does: the escaped byte is taken as a literal verbatim, with no
// further `\xNN`-style decoding at this layer.
func literalPrefix(pattern []byte) []byte {
	var out []byte
	i := 0
	for i < len(pattern) {
		b := pattern[i]
		switch b {
		case '*', '?', '[', '{':
			return out
		case '\\':
			if i+1 >= len(pattern) {
				return out
			}
			out = append(out, pattern[i+1])
			i += 2
		default:
			out = append(out, b)
			i++
		}
	}
	return out
}
