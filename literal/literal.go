// Package literal represents the literal byte sequences the fast-path
// index (package fastpath) indexes ahead of full DFA evaluation: an
// exact-match or tail-glob rule contributes one literal, and a fast
// path lookup can answer certain queries without ever walking the DFA.
package literal

// Literal is a literal byte sequence extracted from a rule pattern's
// non-wildcard prefix. Complete indicates whether Bytes is the whole
// pattern (an exact-match Basic-class rule) or just a required prefix
// (a TailGlob rule, where anything may follow).
type Literal struct {
	// Bytes contains the actual literal byte sequence.
	Bytes []byte

	// Complete is true when Bytes is the entire match, not merely a
	// required prefix.
	Complete bool
}

// NewLiteral creates a Literal from the given byte sequence and
// completeness flag.
func NewLiteral(b []byte, complete bool) Literal {
	return Literal{
		Bytes:    b,
		Complete: complete,
	}
}

// Len returns the length of the literal in bytes.
func (l Literal) Len() int {
	return len(l.Bytes)
}

// String returns a debug representation: "literal{bytes, complete=true/false}".
func (l Literal) String() string {
	complete := "false"
	if l.Complete {
		complete = "true"
	}
	return "literal{" + string(l.Bytes) + ", complete=" + complete + "}"
}
