// Package fastpath builds an optional literal pre-filter over rules
// whose pattern is a pure literal or a literal prefix plus a trailing
// "**" (spec.md §4.7). It is a pure additional artifact alongside the
// compiled DFA: dropping it never changes what a compile produces,
// only how quickly a caller can short-circuit an exact-literal match
// before falling back to the DFA.
package fastpath

import (
	"bytes"

	"github.com/coregx/ahocorasick"
	"github.com/coregx/maccomp/dfaconst"
	"github.com/coregx/maccomp/literal"
)

// Entry pairs a rule's literal prefix with the accept mask it would
// contribute, so a Lookup hit can be applied without touching the DFA.
type Entry struct {
	Literal   literal.Literal
	RuleIndex int
	Accept    dfaconst.AcceptMask
}

// Builder accumulates literal-class rules before compiling them into
// an Index. Grounded on meta/compile.go's ahocorasick.NewBuilder/
// AddPattern/Build sequence for large literal alternations — same
// dependency, same "collect patterns, build once" shape, repurposed
// from dispatching a single compiled regex to indexing many
// independent policy rules.
type Builder struct {
	ac      *ahocorasick.Builder
	entries []Entry
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{ac: ahocorasick.NewBuilder()}
}

// Add records a literal-class rule's prefix for indexing.
func (b *Builder) Add(lit literal.Literal, ruleIndex int, accept dfaconst.AcceptMask) {
	b.ac.AddPattern(lit.Bytes)
	b.entries = append(b.entries, Entry{Literal: lit, RuleIndex: ruleIndex, Accept: accept})
}

// Build compiles the accumulated patterns into an Index. An empty
// Builder yields a usable, always-miss Index rather than an error,
// since having no literal-class rules is a normal outcome.
func (b *Builder) Build() (*Index, error) {
	if len(b.entries) == 0 {
		return &Index{}, nil
	}
	auto, err := b.ac.Build()
	if err != nil {
		return nil, err
	}
	return &Index{entries: b.entries, automaton: auto}, nil
}

// Index answers "does one of the indexed literal-class rules' literals
// occur in this path" in O(n) time via Aho-Corasick, independent of
// the compiled DFA. A hit means the literal occurs somewhere in the
// haystack; it is not checked to span the whole haystack, and
// Literal.Complete is not consulted.
type Index struct {
	entries   []Entry
	automaton *ahocorasick.Automaton
}

// Len reports how many literal-class rules were indexed.
func (idx *Index) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.entries)
}

// IsMatch reports whether haystack contains any indexed literal,
// without identifying which one.
func (idx *Index) IsMatch(haystack []byte) bool {
	if idx == nil || idx.automaton == nil {
		return false
	}
	return idx.automaton.IsMatch(haystack)
}

// Lookup finds the first indexed literal occurring in haystack and
// returns the Entry whose exact byte content it matched. The
// automaton alone reports only a byte span, not which pattern
// produced it, so the span's length and content are compared against
// the candidate entries to recover the owning rule.
func (idx *Index) Lookup(haystack []byte) (Entry, bool) {
	if idx == nil || idx.automaton == nil {
		return Entry{}, false
	}
	m := idx.automaton.Find(haystack, 0)
	if m == nil {
		return Entry{}, false
	}
	span := haystack[m.Start:m.End]
	for _, e := range idx.entries {
		if len(e.Literal.Bytes) == len(span) && bytes.Equal(e.Literal.Bytes, span) {
			return e, true
		}
	}
	return Entry{}, false
}
