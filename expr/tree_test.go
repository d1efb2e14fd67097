package expr

import (
	"reflect"
	"testing"
)

func TestCharLeafAttributes(t *testing.T) {
	tr := NewTree()
	n := tr.Char('a')
	node := tr.Node(n)
	if node.Nullable() {
		t.Fatal("char leaf must not be nullable")
	}
	if got := node.Firstpos(); !reflect.DeepEqual(got, []PositionID{0}) {
		t.Fatalf("firstpos = %v, want [0]", got)
	}
	if got := node.Lastpos(); !reflect.DeepEqual(got, []PositionID{0}) {
		t.Fatalf("lastpos = %v, want [0]", got)
	}
}

func TestConcatFollowpos(t *testing.T) {
	// "ab": position 0 = 'a', position 1 = 'b'. followpos(0) = {1}.
	tr := NewTree()
	a := tr.Char('a')
	b := tr.Char('b')
	cat := tr.Concat(a, b)
	n := tr.Node(cat)
	if n.Nullable() {
		t.Fatal("concat of two non-nullable leaves must not be nullable")
	}
	if got := tr.Followpos(0); !reflect.DeepEqual(got, []PositionID{1}) {
		t.Fatalf("followpos(0) = %v, want [1]", got)
	}
	if got := tr.Followpos(1); len(got) != 0 {
		t.Fatalf("followpos(1) = %v, want empty", got)
	}
}

func TestStarFollowposLoopsBack(t *testing.T) {
	// "a*": followpos(0) must include 0 itself.
	tr := NewTree()
	a := tr.Char('a')
	star := tr.Star(a)
	n := tr.Node(star)
	if !n.Nullable() {
		t.Fatal("star must be nullable")
	}
	if got := tr.Followpos(0); !reflect.DeepEqual(got, []PositionID{0}) {
		t.Fatalf("followpos(0) = %v, want [0]", got)
	}
}

func TestPlusRequiresOneOccurrence(t *testing.T) {
	tr := NewTree()
	a := tr.Char('a')
	plus := tr.Plus(a)
	n := tr.Node(plus)
	if n.Nullable() {
		t.Fatal("plus over a non-nullable operand must not be nullable")
	}
	if got := tr.Followpos(0); !reflect.DeepEqual(got, []PositionID{0}) {
		t.Fatalf("followpos(0) = %v, want [0]", got)
	}
}

func TestOptionalIsNullableNoFollowposChange(t *testing.T) {
	tr := NewTree()
	a := tr.Char('a')
	opt := tr.Optional(a)
	n := tr.Node(opt)
	if !n.Nullable() {
		t.Fatal("optional must be nullable")
	}
	if got := tr.Followpos(0); len(got) != 0 {
		t.Fatalf("followpos(0) = %v, want empty", got)
	}
}

func TestAltUnionsFirstAndLastpos(t *testing.T) {
	tr := NewTree()
	a := tr.Char('a')
	b := tr.Char('b')
	alt := tr.Alt(a, b)
	n := tr.Node(alt)
	if n.Nullable() {
		t.Fatal("alt of two non-nullable leaves must not be nullable")
	}
	if got := n.Firstpos(); !reflect.DeepEqual(got, []PositionID{0, 1}) {
		t.Fatalf("firstpos = %v, want [0 1]", got)
	}
	if got := n.Lastpos(); !reflect.DeepEqual(got, []PositionID{0, 1}) {
		t.Fatalf("lastpos = %v, want [0 1]", got)
	}
}

func TestAddRuleThreadsAcceptThroughConcat(t *testing.T) {
	// "(a|b)c" with an accept leaf appended: followpos(0)=followpos(1)={2}
	// (the 'c' position), followpos(2)={3} (the accept position).
	tr := NewTree()
	if err := tr.AddRule("(a|b)c", Normal, 0x1, 0x2, 7); err != nil {
		t.Fatalf("AddRule error: %v", err)
	}
	if tr.NumPositions() != 4 {
		t.Fatalf("NumPositions() = %d, want 4", tr.NumPositions())
	}
	if got := tr.Followpos(0); !reflect.DeepEqual(got, []PositionID{2}) {
		t.Fatalf("followpos(0) = %v, want [2]", got)
	}
	if got := tr.Followpos(1); !reflect.DeepEqual(got, []PositionID{2}) {
		t.Fatalf("followpos(1) = %v, want [2]", got)
	}
	if got := tr.Followpos(2); !reflect.DeepEqual(got, []PositionID{3}) {
		t.Fatalf("followpos(2) = %v, want [3]", got)
	}
	acceptNode := tr.Node(tr.Root()).right
	accept := tr.Node(acceptNode).AcceptInfo()
	if accept.Kind != Normal || accept.Perms != 0x1 || accept.Audit != 0x2 || accept.RuleIndex != 7 {
		t.Fatalf("accept = %+v, unexpected", accept)
	}
}

func TestAddRuleSecondRuleUnionsAtRoot(t *testing.T) {
	tr := NewTree()
	if err := tr.AddRule("a", Normal, 0, 0, 0); err != nil {
		t.Fatal(err)
	}
	firstRoot := tr.Root()
	if err := tr.AddRule("b", Normal, 0, 0, 1); err != nil {
		t.Fatal(err)
	}
	root := tr.Node(tr.Root())
	if root.Kind() != KindAlt {
		t.Fatalf("root kind = %v, want KindAlt", root.Kind())
	}
	if root.left != firstRoot {
		t.Fatalf("root.left = %v, want previous root %v", root.left, firstRoot)
	}
}

func TestAddRuleRejectsTrailingGarbage(t *testing.T) {
	tr := NewTree()
	if err := tr.AddRule("a)", Normal, 0, 0, 0); err == nil {
		t.Fatal("expected error for unmatched ')'")
	}
}
