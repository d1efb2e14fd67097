package expr

// Tree is an arena of expression nodes plus the per-position followpos
// table (spec.md §3). A Tree accumulates one subtree per AddRule call,
// unioning each into a single root via alternation, mirroring how the
// teacher's nfa.Builder accretes states into one automaton across calls.
type Tree struct {
	nodes        []Node
	followpos    [][]PositionID
	positionNode []NodeID // PositionID -> owning leaf Node
	root         NodeID
}

// NewTree returns an empty expression tree with no rules added.
func NewTree() *Tree {
	return &Tree{root: InvalidNode}
}

// Root returns the tree's combined root, or InvalidNode if no rule has
// been added yet.
func (t *Tree) Root() NodeID { return t.root }

// NumPositions returns the number of leaf positions allocated so far.
func (t *Tree) NumPositions() int { return len(t.followpos) }

// Node returns a pointer to the node identified by id.
func (t *Tree) Node(id NodeID) *Node { return &t.nodes[id] }

// Followpos returns the followpos set of position p.
func (t *Tree) Followpos(p PositionID) []PositionID { return t.followpos[p] }

// PositionNode returns the leaf Node that owns position p (a KindChar,
// KindAnyChar, or KindAccept node), for stage S3's by-byte grouping.
func (t *Tree) PositionNode(p PositionID) *Node { return &t.nodes[t.positionNode[p]] }

func (t *Tree) addNode(n Node) NodeID {
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, n)
	return id
}

func (t *Tree) newPosition() PositionID {
	p := PositionID(len(t.followpos))
	t.followpos = append(t.followpos, nil)
	t.positionNode = append(t.positionNode, InvalidNode)
	return p
}

func (t *Tree) extendFollowpos(positions []PositionID, add []PositionID) {
	if len(add) == 0 {
		return
	}
	for _, p := range positions {
		t.followpos[p] = mergeSorted(t.followpos[p], add)
	}
}

// Empty returns a node matching only the empty sequence; it is the
// identity element for Concat and arises from vacuous alternatives such
// as "()" or the second branch of "a|".
func (t *Tree) Empty() NodeID {
	return t.addNode(Node{kind: KindEmpty, nullable: true})
}

// Char returns a leaf matching exactly the byte b.
func (t *Tree) Char(b byte) NodeID {
	pos := t.newPosition()
	id := t.addNode(Node{
		kind:     KindChar,
		b:        b,
		pos:      pos,
		firstpos: []PositionID{pos},
		lastpos:  []PositionID{pos},
	})
	t.positionNode[pos] = id
	return id
}

// AnyChar returns a leaf matching any byte covered by ranges. Ranges are
// normalized and the reserved NUL byte is always excluded (spec.md §3).
func (t *Tree) AnyChar(ranges []ByteRange) NodeID {
	ranges = excludeNull(normalizeRanges(ranges))
	pos := t.newPosition()
	id := t.addNode(Node{
		kind:     KindAnyChar,
		ranges:   ranges,
		pos:      pos,
		firstpos: []PositionID{pos},
		lastpos:  []PositionID{pos},
	})
	t.positionNode[pos] = id
	return id
}

// acceptLeaf returns a non-consuming leaf tagging a rule's permission
// contribution. It is conventionally nullable: it never itself requires
// a byte to be consumed, so a Concat(pattern, accept) is nullable exactly
// when pattern is (spec.md §4.2, §9).
func (t *Tree) acceptLeaf(a Accept) NodeID {
	pos := t.newPosition()
	id := t.addNode(Node{
		kind:     KindAccept,
		accept:   a,
		pos:      pos,
		nullable: true,
		firstpos: []PositionID{pos},
		lastpos:  []PositionID{pos},
	})
	t.positionNode[pos] = id
	return id
}

// Concat returns the sequencing of a then b, extending followpos per the
// standard recurrence: every position that can end a match of a gets b's
// firstpos added to its followpos set.
func (t *Tree) Concat(a, b NodeID) NodeID {
	na, nb := t.Node(a), t.Node(b)
	id := t.addNode(Node{
		kind:     KindConcat,
		left:     a,
		right:    b,
		nullable: na.nullable && nb.nullable,
	})
	n := t.Node(id)
	n.firstpos = na.firstpos
	if na.nullable {
		n.firstpos = mergeSorted(n.firstpos, nb.firstpos)
	}
	n.lastpos = nb.lastpos
	if nb.nullable {
		n.lastpos = mergeSorted(n.lastpos, na.lastpos)
	}
	t.extendFollowpos(na.lastpos, nb.firstpos)
	return id
}

// Alt returns the alternation of a and b.
func (t *Tree) Alt(a, b NodeID) NodeID {
	na, nb := t.Node(a), t.Node(b)
	id := t.addNode(Node{
		kind:     KindAlt,
		left:     a,
		right:    b,
		nullable: na.nullable || nb.nullable,
		firstpos: mergeSorted(na.firstpos, nb.firstpos),
		lastpos:  mergeSorted(na.lastpos, nb.lastpos),
	})
	return id
}

// Star returns zero-or-more repetition of a.
func (t *Tree) Star(a NodeID) NodeID {
	na := t.Node(a)
	id := t.addNode(Node{
		kind:     KindStar,
		child:    a,
		nullable: true,
		firstpos: na.firstpos,
		lastpos:  na.lastpos,
	})
	t.extendFollowpos(na.lastpos, na.firstpos)
	return id
}

// Plus returns one-or-more repetition of a.
func (t *Tree) Plus(a NodeID) NodeID {
	na := t.Node(a)
	id := t.addNode(Node{
		kind:     KindPlus,
		child:    a,
		nullable: na.nullable,
		firstpos: na.firstpos,
		lastpos:  na.lastpos,
	})
	t.extendFollowpos(na.lastpos, na.firstpos)
	return id
}

// Optional returns zero-or-one repetition of a.
func (t *Tree) Optional(a NodeID) NodeID {
	na := t.Node(a)
	return t.addNode(Node{
		kind:     KindOptional,
		child:    a,
		nullable: true,
		firstpos: na.firstpos,
		lastpos:  na.lastpos,
	})
}

// AddRule parses pattern (the internal-alphabet regex package glob
// produces) and unions it into the tree, tagged with kind/perms/audit on
// its Accept leaf. ruleIndex is carried through for diagnostics only.
func (t *Tree) AddRule(pattern string, kind AcceptKind, perms, audit uint32, ruleIndex int) error {
	p := newParser(t, pattern)
	patternRoot, err := p.parseAlt()
	if err != nil {
		return err
	}
	if p.i != len(p.s) {
		return &ParseError{Pattern: pattern, Pos: p.i, Msg: "unexpected trailing input"}
	}
	acceptNode := t.acceptLeaf(Accept{Kind: kind, Perms: perms, Audit: audit, RuleIndex: ruleIndex})
	ruleNode := t.Concat(patternRoot, acceptNode)
	if t.root == InvalidNode {
		t.root = ruleNode
	} else {
		t.root = t.Alt(t.root, ruleNode)
	}
	return nil
}
