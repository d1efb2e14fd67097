// Package glob translates policy glob patterns into the internal regex
// alphabet consumed by package expr (spec.md §4.1, stage S1 of the
// compilation pipeline).
//
// The internal alphabet's metacharacters are `. + | ( ) [ ] { } \ * ? ^ $`;
// literal bytes that collide with a metacharacter, or that fall outside
// printable ASCII, are emitted backslash-escaped or as a `\xNN` hex escape.
//
// Grounded on other_examples/canonical-snapd__path_patterns.go's
// createRegex, which implements this exact algorithm (including the
// 50-level nesting bound) against Go's regexp package instead of this
// internal grammar.
package glob

import (
	"bytes"
	"fmt"
)

const maxGroupDepth = 50

// groupFrame tracks one level of `{...}` alternation nesting.
type groupFrame struct {
	// markPos is buf.Len() at the start of the current component (reset
	// after each ',' and on entry to the group); used to detect empty
	// components.
	markPos int
}

// isMetachar reports whether b is one of the internal alphabet's
// metacharacters and therefore needs a backslash when emitted literally.
func isMetachar(b byte) bool {
	switch b {
	case '.', '+', '|', '(', ')', '[', ']', '{', '}', '\\', '*', '?', '^', '$':
		return true
	default:
		return false
	}
}

// emitLiteral writes b to buf as a literal byte in the internal alphabet:
// backslash-escaped if it is a metacharacter, verbatim if printable ASCII,
// or as a `\xNN` hex escape otherwise.
func emitLiteral(buf *bytes.Buffer, b byte) {
	switch {
	case isMetachar(b):
		buf.WriteByte('\\')
		buf.WriteByte(b)
	case b >= 0x20 && b < 0x7f:
		buf.WriteByte(b)
	default:
		fmt.Fprintf(buf, `\x%02x`, b)
	}
}

// allSlash reports whether every byte in b is '/'  (true for an empty b).
func allSlash(b []byte) bool {
	for _, c := range b {
		if c != '/' {
			return false
		}
	}
	return true
}

// constructShape classifies the single "interesting" construct a pattern
// used, for PatternClass determination.
type constructShape uint8

const (
	shapeNone constructShape = iota
	shapeTailDoubleStar
	shapeOther
)

func combineShape(prev, next constructShape) constructShape {
	if next == shapeNone {
		return prev
	}
	if prev == shapeNone {
		return next
	}
	return shapeOther
}

// Translate converts a glob pattern into the internal regex alphabet,
// optionally anchoring it with `^`...`$`. It returns the translated
// string, the pattern's PatternClass, any non-fatal warnings, and an
// error if the pattern could not be translated (spec.md §4.1, §7).
func Translate(pattern []byte, anchored bool) (string, PatternClass, []Warning, error) {
	var buf bytes.Buffer
	var warnings []Warning
	var stack []groupFrame
	shape := shapeNone

	src := string(pattern)
	i := 0
	for i < len(pattern) {
		b := pattern[i]
		switch b {
		case '\\':
			if i+1 >= len(pattern) {
				return "", Invalid, warnings, &SyntaxError{Pattern: src, Pos: i, Msg: "trailing unescaped backslash"}
			}
			next := pattern[i+1]
			if next == '\\' {
				buf.WriteString(`\\`)
				i += 2
				continue
			}
			if !isMetachar(next) {
				warnings = append(warnings, Warning{Pattern: src, Pos: i, Msg: "unnecessary escape dropped"})
			}
			emitLiteral(&buf, next)
			i += 2

		case '*':
			j := i
			for j < len(pattern) && pattern[j] == '*' {
				j++
			}
			double := j-i >= 2
			precededBySlash := buf.Len() > 0 && buf.Bytes()[buf.Len()-1] == '/'
			followedOnlyBySlash := allSlash(pattern[j:])
			if precededBySlash && followedOnlyBySlash {
				buf.WriteString(`[^/\x00]`)
			}
			if double {
				buf.WriteString(`[^\x00]*`)
				if j == len(pattern) {
					shape = combineShape(shape, shapeTailDoubleStar)
				} else {
					shape = combineShape(shape, shapeOther)
				}
			} else {
				buf.WriteString(`[^/\x00]*`)
				shape = combineShape(shape, shapeOther)
			}
			i = j

		case '?':
			buf.WriteString(`[^/\x00]`)
			shape = combineShape(shape, shapeOther)
			i++

		case '[':
			start := i
			i++
			buf.WriteByte('[')
			closed := false
			for i < len(pattern) {
				c := pattern[i]
				if c == '\\' {
					if i+1 >= len(pattern) {
						return "", Invalid, warnings, &SyntaxError{Pattern: src, Pos: i, Msg: "trailing unescaped backslash in character class"}
					}
					buf.WriteByte('\\')
					buf.WriteByte(pattern[i+1])
					i += 2
					continue
				}
				if c == ']' {
					buf.WriteByte(']')
					i++
					closed = true
					break
				}
				buf.WriteByte(c)
				i++
			}
			if !closed {
				return "", Invalid, warnings, &SyntaxError{Pattern: src, Pos: start, Msg: "unclosed character class"}
			}
			shape = combineShape(shape, shapeOther)

		case ']':
			return "", Invalid, warnings, &SyntaxError{Pattern: src, Pos: i, Msg: "unmatched ']'"}

		case '{':
			if len(stack)+1 > maxGroupDepth {
				return "", Invalid, warnings, &SyntaxError{Pattern: src, Pos: i, Msg: "group nesting depth exceeded"}
			}
			buf.WriteByte('(')
			stack = append(stack, groupFrame{markPos: buf.Len()})
			shape = combineShape(shape, shapeOther)
			i++

		case '}':
			if len(stack) == 0 {
				return "", Invalid, warnings, &SyntaxError{Pattern: src, Pos: i, Msg: "unmatched '}'"}
			}
			top := stack[len(stack)-1]
			if buf.Len() == top.markPos {
				return "", Invalid, warnings, &SyntaxError{Pattern: src, Pos: i, Msg: "empty alternation component"}
			}
			stack = stack[:len(stack)-1]
			buf.WriteByte(')')
			i++

		case ',':
			if len(stack) == 0 {
				emitLiteral(&buf, ',')
				i++
				continue
			}
			top := &stack[len(stack)-1]
			if buf.Len() == top.markPos {
				return "", Invalid, warnings, &SyntaxError{Pattern: src, Pos: i, Msg: "empty alternation component"}
			}
			buf.WriteByte('|')
			top.markPos = buf.Len()
			i++

		default:
			emitLiteral(&buf, b)
			i++
		}
	}

	if len(stack) > 0 {
		return "", Invalid, warnings, &SyntaxError{Pattern: src, Pos: len(pattern), Msg: fmt.Sprintf("missing %d closing brace(s)", len(stack))}
	}

	out := buf.String()
	if anchored {
		out = "^" + out + "$"
	}

	var class PatternClass
	switch shape {
	case shapeNone:
		class = Basic
	case shapeTailDoubleStar:
		class = TailGlob
	default:
		class = Regex
	}

	return out, class, warnings, nil
}
