// Package expr builds the expression tree of stage S2 (spec.md §3, §4.2):
// it parses the internal regex string package glob emits, attaches
// permission-tagged Accept leaves, and computes the nullable/firstpos/
// lastpos/followpos attributes the followpos construction (stage S3,
// package dfaconst) needs.
//
// Grounded on nfa/nfa.go's State: a single kind-tagged struct rather than
// an interface hierarchy, matching the teacher's preferred shape for
// automaton node types.
package expr

// Kind identifies the variant of an expression tree Node.
type Kind uint8

const (
	// KindEmpty matches the empty string and consumes no positions; it
	// exists only to represent vacuous concatenation operands (e.g. an
	// empty alternative produced by adjacent '|' or "()").
	KindEmpty Kind = iota
	// KindChar matches one specific byte.
	KindChar
	// KindAnyChar matches any byte within a nominated set of ranges.
	KindAnyChar
	// KindConcat is the sequencing of two sub-expressions.
	KindConcat
	// KindAlt is the alternation of two sub-expressions.
	KindAlt
	// KindStar is zero-or-more repetition.
	KindStar
	// KindPlus is one-or-more repetition.
	KindPlus
	// KindOptional is zero-or-one repetition.
	KindOptional
	// KindAccept is a non-consuming leaf tagging a rule's permission set.
	KindAccept
)

// NodeID is an index into a Tree's node arena.
type NodeID int32

// InvalidNode marks the absence of a node.
const InvalidNode NodeID = -1

// Node is one tagged-variant element of an expression tree. Only the
// fields relevant to Kind are meaningful; this mirrors nfa.State's
// union-style layout.
type Node struct {
	kind Kind

	// KindChar
	b byte
	// KindAnyChar
	ranges []ByteRange
	// KindAccept
	accept Accept

	// KindConcat, KindAlt
	left, right NodeID
	// KindStar, KindPlus, KindOptional
	child NodeID

	// pos is valid for KindChar, KindAnyChar, KindAccept: the leaf's
	// PositionID (spec.md §3).
	pos PositionID

	// Computed attributes (spec.md §3, §4.2).
	nullable bool
	firstpos []PositionID
	lastpos  []PositionID
}

// Kind returns the node's variant tag.
func (n *Node) Kind() Kind { return n.kind }

// Nullable reports whether this subtree can match the empty sequence.
func (n *Node) Nullable() bool { return n.nullable }

// Firstpos returns the positions that can begin a match of this subtree.
func (n *Node) Firstpos() []PositionID { return n.firstpos }

// Lastpos returns the positions that can end a match of this subtree.
func (n *Node) Lastpos() []PositionID { return n.lastpos }

// Byte returns the matched byte for a KindChar node.
func (n *Node) Byte() byte { return n.b }

// Ranges returns the matched byte ranges for a KindAnyChar node.
func (n *Node) Ranges() []ByteRange { return n.ranges }

// AcceptInfo returns the accept payload for a KindAccept node.
func (n *Node) AcceptInfo() Accept { return n.accept }

// Position returns the leaf's PositionID (KindChar/KindAnyChar/KindAccept).
func (n *Node) Position() PositionID { return n.pos }
